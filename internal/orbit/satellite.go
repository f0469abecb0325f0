// Package orbit places navigation satellites on distinct orbital planes and
// advances them once per frame.
package orbit

import (
	"math"

	"github.com/litescript/orbitnav/internal/geom"
)

// Category is one navigation entry supplied by the host.
type Category struct {
	ID    string
	Label string
}

// goldenAngle spreads successive plane longitudes (≈137.5°).
var goldenAngle = math.Pi * (3 - math.Sqrt(5))

// Placement tuning. Radius grows and speeds shrink with index so orbits stay
// visually distinguishable; none of these carry physical meaning.
const (
	baseOrbitRadius  = 5.0
	orbitRadiusStep  = 2.0
	baseOrbitSpeed   = 0.004
	orbitSpeedStep   = 0.0004
	minOrbitSpeed    = 0.0004
	baseRotation     = 0.02
	rotationStep     = 0.002
	minRotationSpeed = 0.002

	// LabelOffset lifts a label above its marker along the camera up axis.
	LabelOffset = 1.2
)

// Satellite is the entity record for one category.
type Satellite struct {
	ID    string
	Label string
	Index int

	OrbitRadius   float64
	OrbitSpeed    float64 // radians per frame
	RotationSpeed float64 // marker self-rotation, radians per frame

	PlaneAngle float64
	PlaneTilt  float64

	Phase    float64
	Spin     float64
	Position geom.Vec3

	// Billboard state, refreshed every frame by System.Billboard.
	LabelCenter geom.Vec3
	LabelNormal geom.Vec3
	LabelRight  geom.Vec3
	LabelUp     geom.Vec3
}

// Place builds one satellite per category using a Fibonacci sphere
// distribution for the orbital planes and even initial phase spacing.
func Place(categories []Category) []Satellite {
	n := len(categories)
	sats := make([]Satellite, n)
	for i, c := range categories {
		y := 1.0
		if n > 1 {
			y = 1 - (float64(i)/float64(n-1))*2
		}
		s := Satellite{
			ID:            c.ID,
			Label:         c.Label,
			Index:         i,
			OrbitRadius:   baseOrbitRadius + orbitRadiusStep*float64(i),
			OrbitSpeed:    math.Max(baseOrbitSpeed-orbitSpeedStep*float64(i), minOrbitSpeed),
			RotationSpeed: math.Max(baseRotation-rotationStep*float64(i), minRotationSpeed),
			PlaneAngle:    float64(i) * goldenAngle,
			PlaneTilt:     math.Acos(y),
			Phase:         float64(i) / float64(n) * 2 * math.Pi,
		}
		s.Position = s.positionAt(s.Phase)
		s.LabelCenter = s.Position
		sats[i] = s
	}
	return sats
}

// positionAt returns Ry(−PlaneAngle)·Rx(PlaneTilt)·(cos φ·r, 0, sin φ·r).
func (s *Satellite) positionAt(phase float64) geom.Vec3 {
	base := geom.Vec3{
		X: math.Cos(phase) * s.OrbitRadius,
		Z: math.Sin(phase) * s.OrbitRadius,
	}
	return base.RotateX(s.PlaneTilt).RotateY(-s.PlaneAngle)
}

// advance moves the satellite one frame along its orbit.
func (s *Satellite) advance() {
	s.Phase += s.OrbitSpeed
	s.Spin += s.RotationSpeed
	s.Position = s.positionAt(s.Phase)
}

// billboard turns the label to face the camera and lifts it above the marker.
func (s *Satellite) billboard(cameraPos, cameraUp geom.Vec3) {
	center := s.Position.Add(cameraUp.Scale(LabelOffset))
	normal := cameraPos.Sub(center).Normalized()
	right := cameraUp.Cross(normal)
	if right.Norm() < 1e-9 {
		right = geom.Vec3{Z: 1}.Cross(normal)
	}
	right = right.Normalized()

	s.LabelCenter = center
	s.LabelNormal = normal
	s.LabelRight = right
	s.LabelUp = normal.Cross(right).Normalized()
}
