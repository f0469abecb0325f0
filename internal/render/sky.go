package render

import (
	"math"

	"github.com/litescript/orbitnav/internal/geom"
)

// brightStar is a named catalog star. Coordinates are J2000 right ascension
// and declination in degrees.
type brightStar struct {
	name    string
	ra, dec float64
	mag     float64
}

// brightStars are the naked-eye anchors of the backdrop, brightest first.
var brightStars = []brightStar{
	{"Sirius", 101.287, -16.716, -1.46},
	{"Canopus", 95.988, -52.696, -0.74},
	{"Arcturus", 213.915, 19.182, -0.05},
	{"Vega", 279.235, 38.784, 0.03},
	{"Capella", 79.172, 45.998, 0.08},
	{"Rigel", 78.634, -8.202, 0.13},
	{"Procyon", 114.826, 5.225, 0.34},
	{"Achernar", 24.429, -57.237, 0.46},
	{"Betelgeuse", 88.793, 7.407, 0.50},
	{"Hadar", 210.956, -60.373, 0.61},
	{"Altair", 297.696, 8.868, 0.76},
	{"Acrux", 186.650, -63.099, 0.76},
	{"Aldebaran", 68.980, 16.509, 0.85},
	{"Antares", 247.352, -26.432, 0.96},
	{"Spica", 201.298, -11.161, 0.97},
	{"Pollux", 116.329, 28.026, 1.14},
	{"Fomalhaut", 344.413, -29.622, 1.16},
	{"Deneb", 310.358, 45.280, 1.25},
	{"Mimosa", 191.930, -59.689, 1.25},
	{"Regulus", 152.093, 11.967, 1.35},
	{"Adhara", 104.656, -28.972, 1.50},
	{"Castor", 113.650, 31.889, 1.58},
	{"Shaula", 263.402, -37.104, 1.63},
	{"Bellatrix", 81.283, 6.350, 1.64},
	{"Elnath", 81.573, 28.608, 1.65},
	{"Alnilam", 84.053, -1.202, 1.69},
	{"Alnitak", 85.190, -1.943, 1.77},
	{"Alioth", 193.507, 55.960, 1.77},
	{"Dubhe", 165.932, 61.751, 1.79},
	{"Mirfak", 51.081, 49.861, 1.79},
	{"Alkaid", 206.885, 49.313, 1.86},
	{"Polaris", 37.954, 89.264, 2.02},
	{"Hamal", 31.793, 23.463, 2.00},
	{"Mizar", 200.981, 54.925, 2.04},
	{"Alpheratz", 2.097, 29.091, 2.06},
	{"Kochab", 222.676, 74.156, 2.08},
	{"Algol", 47.042, 40.957, 2.12},
	{"Denebola", 177.265, 14.572, 2.13},
	{"Mintaka", 83.002, -0.299, 2.23},
	{"Schedar", 10.127, 56.537, 2.23},
	{"Enif", 326.046, 9.875, 2.39},
	{"Markab", 346.190, 15.205, 2.49},
}

// brightMag is the magnitude below which a star gets the bright glyph.
const brightMag = 1.0

// skyPoint places a direction on a shell of radius with the celestial pole
// along +Y.
func skyPoint(raDeg, decDeg, radius float64) geom.Vec3 {
	ra := raDeg * math.Pi / 180
	dec := decDeg * math.Pi / 180
	return geom.Vec3{
		X: math.Cos(dec) * math.Cos(ra),
		Y: math.Sin(dec),
		Z: -math.Cos(dec) * math.Sin(ra),
	}.Scale(radius)
}

type star struct {
	pos    geom.Vec3
	bright bool
}

// sky returns the catalog stars plus filler faint points on the shell.
func sky(filler int, radius float64) []star {
	out := make([]star, 0, len(brightStars)+filler)
	for _, s := range brightStars {
		out = append(out, star{pos: skyPoint(s.ra, s.dec, radius), bright: s.mag < brightMag})
	}
	for _, p := range starfield(filler, radius) {
		out = append(out, star{pos: p})
	}
	return out
}
