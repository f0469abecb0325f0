package pick

import (
	"math"
	"testing"
	"time"

	"github.com/litescript/orbitnav/internal/geom"
	"github.com/litescript/orbitnav/internal/orbit"
)

var testViewport = Viewport{Width: 120, Height: 40, CellAspect: 2}

func frontProjector() Projector {
	return NewProjector(geom.Vec3{Z: 15}, DefaultFOV, testViewport.Aspect())
}

// stage places satellites at fixed positions and aims their labels.
func stage(proj Projector, positions ...geom.Vec3) *orbit.System {
	cats := make([]orbit.Category, len(positions))
	for i := range cats {
		cats[i] = orbit.Category{ID: string(rune('a' + i)), Label: "Label"}
	}
	sys := orbit.NewSystem(cats)
	for i, p := range positions {
		sys.At(i).Position = p
	}
	sys.Billboard(proj.Eye, proj.Basis.Up)
	return sys
}

func cellOf(t *testing.T, proj Projector, p geom.Vec3) (int, int) {
	t.Helper()
	x, y, _, ok := proj.Project(p)
	if !ok {
		t.Fatalf("point %v not projectable", p)
	}
	return testViewport.Cell(x, y)
}

func TestProjectRayRoundTrip(t *testing.T) {
	proj := NewProjector(geom.Vec3{X: 3, Y: 10, Z: 15}, DefaultFOV, 1.5)
	for _, ndc := range [][2]float64{{0, 0}, {0.5, -0.25}, {-0.9, 0.9}} {
		ray := proj.Ray(ndc[0], ndc[1])
		x, y, _, ok := proj.Project(ray.At(7))
		if !ok || math.Abs(x-ndc[0]) > 1e-9 || math.Abs(y-ndc[1]) > 1e-9 {
			t.Errorf("round trip %v -> (%v, %v, %v)", ndc, x, y, ok)
		}
	}
}

func TestProjectBehindCamera(t *testing.T) {
	proj := frontProjector()
	if _, _, _, ok := proj.Project(geom.Vec3{Z: 20}); ok {
		t.Error("point behind the camera should not project")
	}
}

func TestViewportNDC(t *testing.T) {
	vp := Viewport{Width: 4, Height: 2, CellAspect: 2}
	x, y := vp.NDC(0, 0)
	if x != -0.75 || y != 0.5 {
		t.Errorf("NDC(0,0) = (%v, %v), want (-0.75, 0.5)", x, y)
	}
	if col, row := vp.Cell(x, y); col != 0 || row != 0 {
		t.Errorf("Cell round trip = (%d, %d)", col, row)
	}
	if vp.Aspect() != 1 {
		t.Errorf("Aspect() = %v, want 1", vp.Aspect())
	}
}

func TestHitTestMarker(t *testing.T) {
	proj := frontProjector()
	sys := stage(proj, geom.Vec3{X: -4}, geom.Vec3{X: 4})
	e := NewEngine(sys, DefaultRate)

	col, row := cellOf(t, proj, geom.Vec3{X: 4})
	hit, ok := e.HitTest(col, row, proj, testViewport)
	if !ok || hit.ID != "b" || hit.OnLabel {
		t.Fatalf("HitTest = %+v, %v; want marker of b", hit, ok)
	}
}

func TestHitTestLabel(t *testing.T) {
	proj := frontProjector()
	sys := stage(proj, geom.Vec3{X: -4})
	e := NewEngine(sys, DefaultRate)

	col, row := cellOf(t, proj, sys.At(0).LabelCenter)
	hit, ok := e.HitTest(col+2, row, proj, testViewport)
	if !ok || hit.ID != "a" || !hit.OnLabel {
		t.Fatalf("HitTest = %+v, %v; want label of a", hit, ok)
	}
}

func TestHitTestNearestWins(t *testing.T) {
	proj := frontProjector()
	sys := stage(proj, geom.Vec3{}, geom.Vec3{Z: 5})
	e := NewEngine(sys, DefaultRate)

	col, row := cellOf(t, proj, geom.Vec3{})
	hit, ok := e.HitTest(col, row, proj, testViewport)
	if !ok || hit.ID != "b" {
		t.Fatalf("HitTest = %+v, %v; want nearer satellite b", hit, ok)
	}
}

func TestHitTestMiss(t *testing.T) {
	proj := frontProjector()
	sys := stage(proj, geom.Vec3{X: 4})
	e := NewEngine(sys, DefaultRate)

	if _, ok := e.HitTest(0, testViewport.Height-1, proj, testViewport); ok {
		t.Error("corner cell should miss")
	}
	if _, ok := e.HitTest(1, 1, proj, Viewport{}); ok {
		t.Error("empty viewport should never hit")
	}
}

func TestHoverHighlightExclusive(t *testing.T) {
	proj := frontProjector()
	sys := stage(proj, geom.Vec3{X: -4}, geom.Vec3{X: 4})
	e := NewEngine(sys, 0)
	now := time.Unix(0, 0)

	col, row := cellOf(t, proj, geom.Vec3{X: -4})
	if !e.Move(col, row, now, proj, testViewport) {
		t.Fatal("hover onto a should report a change")
	}
	if !e.Highlighted(0) || e.Highlighted(1) || e.Cursor() != CursorPointer {
		t.Fatal("only a should be highlighted with a pointer cursor")
	}

	col, row = cellOf(t, proj, geom.Vec3{X: 4})
	e.Move(col, row, now, proj, testViewport)
	if e.Highlighted(0) || !e.Highlighted(1) {
		t.Fatal("moving to b should reset a")
	}
	if id, _ := e.Hovered(); id != "b" {
		t.Errorf("Hovered() = %q, want b", id)
	}

	e.Move(0, testViewport.Height-1, now, proj, testViewport)
	if e.Highlighted(1) || e.Cursor() != CursorDefault || e.HoveredIndex() != -1 {
		t.Error("empty space should clear highlight and cursor")
	}
}

func TestMoveThrottledThenFlushed(t *testing.T) {
	proj := frontProjector()
	sys := stage(proj, geom.Vec3{X: 4})
	e := NewEngine(sys, DefaultRate)
	start := time.Unix(0, 0)

	e.Move(0, 0, start, proj, testViewport)
	col, row := cellOf(t, proj, geom.Vec3{X: 4})
	if e.Move(col, row, start.Add(time.Millisecond), proj, testViewport) {
		t.Fatal("throttled move must not change hover")
	}
	if e.Stats().Throttled != 1 {
		t.Errorf("Throttled = %d, want 1", e.Stats().Throttled)
	}
	if e.Flush(start.Add(2*time.Millisecond), proj, testViewport) {
		t.Fatal("flush inside the interval must wait")
	}
	if !e.Flush(start.Add(50*time.Millisecond), proj, testViewport) {
		t.Fatal("flush after the interval should resolve the dropped position")
	}
	if id, ok := e.Hovered(); !ok || id != "a" {
		t.Errorf("Hovered() = %q, %v", id, ok)
	}
}

func TestPressResolvesInsideThrottleInterval(t *testing.T) {
	proj := frontProjector()
	sys := stage(proj, geom.Vec3{X: -4}, geom.Vec3{X: 4})
	e := NewEngine(sys, DefaultRate)
	start := time.Unix(0, 0)

	aCol, aRow := cellOf(t, proj, geom.Vec3{X: -4})
	bCol, bRow := cellOf(t, proj, geom.Vec3{X: 4})
	e.Move(aCol, aRow, start, proj, testViewport)
	e.Move(bCol, bRow, start.Add(5*time.Millisecond), proj, testViewport)
	if id, _ := e.Hovered(); id != "a" {
		t.Fatalf("hover before press = %q, want a", id)
	}

	if !e.Press(bCol, bRow, proj, testViewport) {
		t.Fatal("press should move hover to the pressed satellite")
	}
	if id, _, ok := e.Click(true); !ok || id != "b" {
		t.Errorf("Click() = %q, %v, want b", id, ok)
	}
	if e.Flush(start.Add(time.Second), proj, testViewport) {
		t.Error("press should consume the dropped move")
	}
}

func TestHitTestsBoundedPerSecond(t *testing.T) {
	proj := frontProjector()
	sys := stage(proj, geom.Vec3{X: 4})
	e := NewEngine(sys, DefaultRate)
	start := time.Unix(0, 0)

	for i := 0; i < 1000; i++ {
		now := start.Add(time.Duration(i) * time.Millisecond)
		e.Move(i%testViewport.Width, i%testViewport.Height, now, proj, testViewport)
		e.Flush(now, proj, testViewport)
	}
	if got := e.Stats().Executed; got > DefaultRate {
		t.Errorf("executed %d hit-tests in one second, limit %d", got, DefaultRate)
	}
}

func TestClick(t *testing.T) {
	proj := frontProjector()
	sys := stage(proj, geom.Vec3{X: 4})
	e := NewEngine(sys, 0)

	if _, _, ok := e.Click(true); ok {
		t.Error("click with nothing hovered should do nothing")
	}
	e.Focus(0)
	if _, _, ok := e.Click(false); ok {
		t.Error("click during a zoom transition should do nothing")
	}
	id, pos, ok := e.Click(true)
	if !ok || id != "a" || !pos.ApproxEqual(geom.Vec3{X: 4}, 1e-12) {
		t.Errorf("Click() = %q, %v, %v", id, pos, ok)
	}
}

func TestLeaveClearsHover(t *testing.T) {
	sys := stage(frontProjector(), geom.Vec3{X: 4})
	e := NewEngine(sys, 0)
	e.Focus(0)
	if !e.Leave() || e.HoveredIndex() != -1 {
		t.Error("Leave should clear hover")
	}
}

func TestLabelSize(t *testing.T) {
	w, h := LabelSize("About")
	if w != 9 || h != 3 {
		t.Errorf("LabelSize(About) = (%d, %d), want (9, 3)", w, h)
	}
}
