package render

import (
	"math"

	"github.com/litescript/orbitnav/internal/geom"
)

// hubMesh is a wireframe solid centered on the origin.
type hubMesh struct {
	verts []geom.Vec3
	edges [][2]int
}

// newIcosahedron builds a regular icosahedron with the given circumradius.
func newIcosahedron(radius float64) hubMesh {
	phi := (1 + math.Sqrt(5)) / 2
	raw := []geom.Vec3{
		{X: -1, Y: phi}, {X: 1, Y: phi}, {X: -1, Y: -phi}, {X: 1, Y: -phi},
		{Y: -1, Z: phi}, {Y: 1, Z: phi}, {Y: -1, Z: -phi}, {Y: 1, Z: -phi},
		{X: phi, Z: -1}, {X: phi, Z: 1}, {X: -phi, Z: -1}, {X: -phi, Z: 1},
	}

	m := hubMesh{verts: make([]geom.Vec3, len(raw))}
	for i, v := range raw {
		m.verts[i] = v.Normalized().Scale(radius)
	}
	// Unnormalized edge length is exactly 2.
	for i := range raw {
		for j := i + 1; j < len(raw); j++ {
			if math.Abs(raw[i].DistanceTo(raw[j])-2) < 1e-9 {
				m.edges = append(m.edges, [2]int{i, j})
			}
		}
	}
	return m
}

// transformed returns the vertices spun about Y and tilted about X.
func (m hubMesh) transformed(spin, tilt float64) []geom.Vec3 {
	out := make([]geom.Vec3, len(m.verts))
	for i, v := range m.verts {
		out[i] = v.RotateY(spin).RotateX(tilt)
	}
	return out
}

// starfield scatters n fixed background points over a distant shell.
func starfield(n int, radius float64) []geom.Vec3 {
	golden := math.Pi * (3 - math.Sqrt(5))
	pts := make([]geom.Vec3, n)
	for i := range pts {
		y := 1 - (float64(i)+0.5)/float64(n)*2
		r := math.Sqrt(1 - y*y)
		a := float64(i) * golden * 7.3
		pts[i] = geom.Vec3{X: math.Cos(a) * r, Y: y, Z: math.Sin(a) * r}.Scale(radius)
	}
	return pts
}
