package render

import (
	"math"
	"testing"
)

func TestSkyPointOnShell(t *testing.T) {
	for _, s := range brightStars {
		p := skyPoint(s.ra, s.dec, starShell)
		if math.Abs(p.Norm()-starShell) > 1e-9 {
			t.Errorf("%s at distance %v, want %v", s.name, p.Norm(), starShell)
		}
	}
}

func TestSkyPointPole(t *testing.T) {
	var polaris brightStar
	for _, s := range brightStars {
		if s.name == "Polaris" {
			polaris = s
		}
	}
	if polaris.name == "" {
		t.Fatal("Polaris missing from catalog")
	}
	p := skyPoint(polaris.ra, polaris.dec, 1)
	if p.Y < 0.99 {
		t.Errorf("Polaris y = %v, want close to the +Y pole", p.Y)
	}
}

func TestSkyMixesCatalogAndFiller(t *testing.T) {
	stars := sky(10, 50)
	if len(stars) != len(brightStars)+10 {
		t.Fatalf("got %d stars, want %d", len(stars), len(brightStars)+10)
	}
	bright := 0
	for _, s := range stars {
		if s.bright {
			bright++
		}
	}
	// magnitude < 1 entries: Sirius through Spica
	if bright != 15 {
		t.Errorf("bright stars = %d, want 15", bright)
	}
	for _, s := range stars[len(brightStars):] {
		if s.bright {
			t.Fatal("filler stars are never bright")
		}
	}
}
