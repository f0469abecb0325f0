package orbit

import (
	"fmt"
	"math"
	"testing"

	"github.com/litescript/orbitnav/internal/geom"
)

func categories(n int) []Category {
	cats := make([]Category, n)
	for i := range cats {
		cats[i] = Category{ID: fmt.Sprintf("cat-%d", i), Label: fmt.Sprintf("Category %d", i)}
	}
	return cats
}

func TestPlaceCounts(t *testing.T) {
	for _, n := range []int{0, 1, 2, 5, 12} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			sats := Place(categories(n))
			if len(sats) != n {
				t.Fatalf("len = %d, want %d", len(sats), n)
			}
		})
	}
}

func TestPlaceDistinctPlanes(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5, 8, 20} {
		sats := Place(categories(n))
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				a, b := sats[i], sats[j]
				if math.Abs(a.PlaneAngle-b.PlaneAngle) < 1e-9 && math.Abs(a.PlaneTilt-b.PlaneTilt) < 1e-9 {
					t.Errorf("n=%d: satellites %d and %d share plane (%v, %v)", n, i, j, a.PlaneAngle, a.PlaneTilt)
				}
			}
		}
	}
}

func TestPlacePhaseSpacing(t *testing.T) {
	for _, n := range []int{1, 3, 5, 7} {
		sats := Place(categories(n))
		step := 2 * math.Pi / float64(n)
		for i, s := range sats {
			want := float64(i) * step
			if math.Abs(s.Phase-want) > 1e-12 {
				t.Errorf("n=%d: phase[%d] = %v, want %v", n, i, s.Phase, want)
			}
		}
	}
}

func TestPlaceFibonacciTilt(t *testing.T) {
	sats := Place(categories(5))
	// y runs 1, 0.5, 0, -0.5, -1
	wantY := []float64{1, 0.5, 0, -0.5, -1}
	for i, s := range sats {
		if got := math.Cos(s.PlaneTilt); math.Abs(got-wantY[i]) > 1e-12 {
			t.Errorf("cos(tilt[%d]) = %v, want %v", i, got, wantY[i])
		}
		if want := float64(i) * goldenAngle; math.Abs(s.PlaneAngle-want) > 1e-12 {
			t.Errorf("planeAngle[%d] = %v, want %v", i, s.PlaneAngle, want)
		}
	}
}

func TestPlaceIndexScaledSequences(t *testing.T) {
	sats := Place(categories(5))
	wantRadii := []float64{5, 7, 9, 11, 13}
	wantSpeeds := []float64{0.004, 0.0036, 0.0032, 0.0028, 0.0024}

	for i, s := range sats {
		if s.OrbitRadius != wantRadii[i] {
			t.Errorf("radius[%d] = %v, want %v", i, s.OrbitRadius, wantRadii[i])
		}
		if math.Abs(s.OrbitSpeed-wantSpeeds[i]) > 1e-12 {
			t.Errorf("orbitSpeed[%d] = %v, want %v", i, s.OrbitSpeed, wantSpeeds[i])
		}
		if i > 0 {
			if s.OrbitSpeed >= sats[i-1].OrbitSpeed {
				t.Errorf("orbit speed should shrink with index: %v >= %v", s.OrbitSpeed, sats[i-1].OrbitSpeed)
			}
			if s.RotationSpeed >= sats[i-1].RotationSpeed {
				t.Errorf("rotation speed should shrink with index: %v >= %v", s.RotationSpeed, sats[i-1].RotationSpeed)
			}
		}
	}
}

func TestSpeedsStayPositive(t *testing.T) {
	for _, s := range Place(categories(40)) {
		if s.OrbitSpeed <= 0 || s.RotationSpeed <= 0 {
			t.Fatalf("satellite %d has non-positive speed (%v, %v)", s.Index, s.OrbitSpeed, s.RotationSpeed)
		}
	}
}

func TestAdvanceKeepsOrbitRadius(t *testing.T) {
	sys := NewSystem(categories(5))
	for frame := 0; frame < 200; frame++ {
		sys.Advance()
		for i := 0; i < sys.Len(); i++ {
			s := sys.At(i)
			if d := s.Position.Norm(); math.Abs(d-s.OrbitRadius) > 1e-9 {
				t.Fatalf("frame %d: |pos[%d]| = %v, want %v", frame, i, d, s.OrbitRadius)
			}
		}
	}
}

func TestAdvanceAccumulates(t *testing.T) {
	sys := NewSystem(categories(3))
	s := sys.At(1)
	phase0, spin0 := s.Phase, s.Spin

	for i := 0; i < 10; i++ {
		sys.Advance()
	}

	if math.Abs(s.Phase-(phase0+10*s.OrbitSpeed)) > 1e-12 {
		t.Errorf("phase = %v, want %v", s.Phase, phase0+10*s.OrbitSpeed)
	}
	if math.Abs(s.Spin-(spin0+10*s.RotationSpeed)) > 1e-12 {
		t.Errorf("spin = %v, want %v", s.Spin, spin0+10*s.RotationSpeed)
	}
	if math.Abs(sys.HubSpin()-10*HubRotationSpeed) > 1e-12 {
		t.Errorf("hub spin = %v", sys.HubSpin())
	}
	if sys.Frames() != 10 {
		t.Errorf("frames = %d, want 10", sys.Frames())
	}
}

func TestPositionMatchesPlaneTransform(t *testing.T) {
	sys := NewSystem(categories(4))
	s := sys.At(2)
	base := geom.Vec3{X: math.Cos(s.Phase) * s.OrbitRadius, Z: math.Sin(s.Phase) * s.OrbitRadius}
	want := base.RotateX(s.PlaneTilt).RotateY(-s.PlaneAngle)
	if !s.Position.ApproxEqual(want, 1e-12) {
		t.Errorf("position = %v, want %v", s.Position, want)
	}
}

func TestBillboardFacesCamera(t *testing.T) {
	sys := NewSystem(categories(5))
	cams := []geom.Vec3{{X: 0, Y: 10, Z: 15}, {X: 18, Y: 0, Z: 0}, {X: -3, Y: -12, Z: 4}}

	for _, cam := range cams {
		basis := geom.LookAt(cam, geom.Vec3{}, geom.WorldUp)
		sys.Advance()
		sys.Billboard(cam, basis.Up)
		for i := 0; i < sys.Len(); i++ {
			s := sys.At(i)
			toCam := cam.Sub(s.LabelCenter).Normalized()
			if s.LabelNormal.Dot(toCam) < 0.999999 {
				t.Errorf("cam %v: label %d normal %v not facing camera", cam, i, s.LabelNormal)
			}
			if math.Abs(s.LabelRight.Dot(s.LabelNormal)) > 1e-9 || math.Abs(s.LabelUp.Dot(s.LabelNormal)) > 1e-9 {
				t.Errorf("label %d basis not orthogonal", i)
			}
		}
	}
}

func TestLookupByID(t *testing.T) {
	sys := NewSystem([]Category{{"about", "About"}, {"work", "Work"}, {"about", "Dup"}})

	s, ok := sys.ByID("work")
	if !ok || s.Label != "Work" {
		t.Fatalf("ByID(work) = %+v, %v", s, ok)
	}
	if got := sys.IndexOf("about"); got != 0 {
		t.Errorf("IndexOf(about) = %d, want first occurrence 0", got)
	}
	if _, ok := sys.ByID("missing"); ok {
		t.Error("ByID(missing) should fail")
	}
	if sys.At(7) != nil {
		t.Error("At out of range should be nil")
	}
}

func TestEmptySystem(t *testing.T) {
	sys := NewSystem(nil)
	sys.Advance()
	sys.Billboard(geom.Vec3{Z: 10}, geom.WorldUp)
	if sys.Len() != 0 || len(sys.IDs()) != 0 {
		t.Error("empty system should stay empty")
	}
	if sys.OrbitPath(0, 16) != nil {
		t.Error("OrbitPath on empty system should be nil")
	}
}

func TestOrbitPath(t *testing.T) {
	sys := NewSystem(categories(2))
	pts := sys.OrbitPath(1, 32)
	if len(pts) != 32 {
		t.Fatalf("len = %d, want 32", len(pts))
	}
	for _, p := range pts {
		if math.Abs(p.Norm()-sys.At(1).OrbitRadius) > 1e-9 {
			t.Fatalf("ring point %v off radius", p)
		}
	}
}
