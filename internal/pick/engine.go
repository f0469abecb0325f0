// Package pick resolves which satellite sits under the pointer and tracks
// hover highlight and pointer affordance.
package pick

import (
	"math"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/orbitnav/internal/geom"
	"github.com/litescript/orbitnav/internal/orbit"
)

// MarkerRadius is the world radius of a satellite's hit sphere.
const MarkerRadius = 0.8

// Label boxes are drawn as one text row with a border and one cell of
// padding on each side.
const (
	labelPadding = 1
	labelRows    = 3
)

// LabelSize returns the label box size in cells, border included.
func LabelSize(label string) (w, h int) {
	return lipgloss.Width(label) + 2*labelPadding + 2, labelRows
}

// Cursor is the pointer affordance shown to the user.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorPointer
)

func (c Cursor) String() string {
	if c == CursorPointer {
		return "pointer"
	}
	return "default"
}

// Hit is one resolved intersection.
type Hit struct {
	Index    int
	ID       string
	Distance float64
	OnLabel  bool
}

// Stats counts hit-test activity.
type Stats struct {
	Executed  uint64
	Throttled uint64
}

// Engine performs throttled hit-tests against the satellites of an orbit
// system. It only reads camera and satellite state.
type Engine struct {
	sys      *orbit.System
	throttle Throttle

	hovered   int
	highlight []bool
	cursor    Cursor

	pending bool
	pendCol int
	pendRow int
	stats   Stats
}

// NewEngine returns an engine limited to rate hit-tests per second.
func NewEngine(sys *orbit.System, rate int) *Engine {
	return &Engine{
		sys:       sys,
		throttle:  NewThrottle(rate),
		hovered:   -1,
		highlight: make([]bool, sys.Len()),
	}
}

// Move records a pointer position and hit-tests it if the throttle allows.
// A dropped position is kept so Flush can resolve it later. Reports whether
// the hovered satellite changed.
func (e *Engine) Move(col, row int, now time.Time, proj Projector, vp Viewport) bool {
	if !e.throttle.Allow(now) {
		e.pending = true
		e.pendCol, e.pendRow = col, row
		e.stats.Throttled++
		return false
	}
	e.pending = false
	e.pendCol, e.pendRow = col, row
	return e.resolve(col, row, proj, vp)
}

// Flush resolves a position dropped by the throttle once the throttle
// admits another test. Reports whether the hovered satellite changed.
func (e *Engine) Flush(now time.Time, proj Projector, vp Viewport) bool {
	if !e.pending || !e.throttle.Allow(now) {
		return false
	}
	e.pending = false
	return e.resolve(e.pendCol, e.pendRow, proj, vp)
}

// Press hit-tests a button press at once, bypassing the throttle, so a
// click never acts on a stale hover. Any dropped move is discarded. Reports
// whether the hovered satellite changed.
func (e *Engine) Press(col, row int, proj Projector, vp Viewport) bool {
	e.pending = false
	e.pendCol, e.pendRow = col, row
	return e.resolve(col, row, proj, vp)
}

// Leave clears hover state when the pointer leaves the surface.
func (e *Engine) Leave() bool {
	e.pending = false
	return e.setHover(-1)
}

func (e *Engine) resolve(col, row int, proj Projector, vp Viewport) bool {
	e.stats.Executed++
	hit, ok := e.HitTest(col, row, proj, vp)
	if !ok {
		return e.setHover(-1)
	}
	return e.setHover(hit.Index)
}

// HitTest casts a ray through cell (col, row) and returns the nearest
// satellite whose marker sphere or label box it crosses. It does not touch
// hover state or the throttle.
func (e *Engine) HitTest(col, row int, proj Projector, vp Viewport) (Hit, bool) {
	if !vp.Valid() {
		return Hit{}, false
	}
	x, y := vp.NDC(col, row)
	ray := proj.Ray(x, y)

	best := Hit{Index: -1, Distance: math.Inf(1)}
	for i := 0; i < e.sys.Len(); i++ {
		s := e.sys.At(i)
		if t, ok := geom.IntersectSphere(ray, s.Position, MarkerRadius); ok && t < best.Distance {
			best = Hit{Index: i, ID: s.ID, Distance: t}
		}
		if t, ok := geom.IntersectQuad(ray, labelQuad(s, proj, vp)); ok && t < best.Distance {
			best = Hit{Index: i, ID: s.ID, Distance: t, OnLabel: true}
		}
	}
	if best.Index < 0 {
		return Hit{}, false
	}
	return best, true
}

// labelQuad sizes the label's billboard so it covers exactly the cells the
// renderer draws, independent of distance.
func labelQuad(s *orbit.Satellite, proj Projector, vp Viewport) geom.Quad {
	w, h := LabelSize(s.Label)
	depth := s.LabelCenter.Sub(proj.Eye).Dot(proj.Basis.Forward)
	colW, rowH := proj.WorldPerCell(vp, math.Max(depth, nearPlane))
	return geom.Quad{
		Center: s.LabelCenter,
		Normal: s.LabelNormal,
		Right:  s.LabelRight,
		Up:     s.LabelUp,
		HalfW:  float64(w) / 2 * colW,
		HalfH:  float64(h) / 2 * rowH,
	}
}

// setHover resets every other satellite to its default highlight and
// highlights idx. Reports whether the hovered satellite changed.
func (e *Engine) setHover(idx int) bool {
	if idx == e.hovered {
		return false
	}
	for i := range e.highlight {
		e.highlight[i] = i == idx
	}
	e.hovered = idx
	if idx >= 0 {
		e.cursor = CursorPointer
	} else {
		e.cursor = CursorDefault
	}
	return true
}

// Hovered returns the id of the hovered satellite.
func (e *Engine) Hovered() (string, bool) {
	if e.hovered < 0 {
		return "", false
	}
	return e.sys.At(e.hovered).ID, true
}

// HoveredIndex returns the hovered satellite index, or -1.
func (e *Engine) HoveredIndex() int { return e.hovered }

// Highlighted reports whether satellite i is drawn with the hover color.
func (e *Engine) Highlighted(i int) bool {
	return i >= 0 && i < len(e.highlight) && e.highlight[i]
}

// Cursor returns the current pointer affordance.
func (e *Engine) Cursor() Cursor { return e.cursor }

// Stats returns hit-test counters.
func (e *Engine) Stats() Stats { return e.stats }

// Focus forces hover onto satellite idx, e.g. from keyboard navigation.
// Out of range clears hover.
func (e *Engine) Focus(idx int) bool {
	if idx < 0 || idx >= e.sys.Len() {
		idx = -1
	}
	return e.setHover(idx)
}

// Click returns the hovered satellite as a zoom request when no transition
// is in progress.
func (e *Engine) Click(zoomIdle bool) (id string, pos geom.Vec3, ok bool) {
	if !zoomIdle || e.hovered < 0 {
		return "", geom.Vec3{}, false
	}
	s := e.sys.At(e.hovered)
	return s.ID, s.Position, true
}
