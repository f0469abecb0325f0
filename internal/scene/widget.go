// Package scene ties the camera rig, satellite system, pointer engine, zoom
// machine and renderer into one widget driven by a per-frame tick.
package scene

import (
	"errors"
	"fmt"
	"time"

	"github.com/litescript/orbitnav/internal/audio"
	"github.com/litescript/orbitnav/internal/camera"
	"github.com/litescript/orbitnav/internal/geom"
	"github.com/litescript/orbitnav/internal/logging"
	"github.com/litescript/orbitnav/internal/orbit"
	"github.com/litescript/orbitnav/internal/pick"
	"github.com/litescript/orbitnav/internal/render"
	"github.com/litescript/orbitnav/internal/telemetry"
	"github.com/litescript/orbitnav/internal/zoom"
)

var (
	// ErrNoSurface means there is nothing to draw on.
	ErrNoSurface = errors.New("scene: no render surface")
	// ErrUnknownCategory is returned when selecting an id that has no
	// satellite.
	ErrUnknownCategory = errors.New("scene: unknown category")
	// ErrDisposed is returned by operations on a disposed widget.
	ErrDisposed = errors.New("scene: widget disposed")
	// ErrNothingFocused is returned by SelectFocused without a hovered
	// satellite.
	ErrNothingFocused = errors.New("scene: no satellite focused")
)

// Options configures a widget.
type Options struct {
	Width  int
	Height int

	Camera  camera.Config
	Zoom    zoom.Config
	HitRate int
	FOV     float64

	Renderer *render.Renderer
	Listener zoom.Listener
	Cues     audio.Player
	Metrics  *telemetry.Metrics
	Logger   *logging.Logger
}

// DefaultOptions returns options for a width x height cell surface.
func DefaultOptions(width, height int) Options {
	return Options{
		Width:    width,
		Height:   height,
		Camera:   camera.DefaultConfig(),
		Zoom:     zoom.DefaultConfig(),
		HitRate:  pick.DefaultRate,
		FOV:      pick.DefaultFOV,
		Renderer: render.New(render.FontRounded, true),
	}
}

// Widget is the orbital navigation widget. It is not safe for concurrent
// use; the host drives it from one goroutine.
type Widget struct {
	rig      *camera.Rig
	sys      *orbit.System
	picker   *pick.Engine
	zoom     *zoom.Machine
	renderer *render.Renderer

	vp  pick.Viewport
	fov float64
	eye geom.Vec3

	listener zoom.Listener
	cues     audio.Player
	metrics  *telemetry.Metrics
	log      *logging.Logger

	subs      Subscriptions
	disposed  bool
	frame     string
	lastStats pick.Stats

	press   bool
	pressAt [2]int
	dragged bool
}

// New builds a widget for categories. It fails with ErrNoSurface when the
// surface has no area or there is no renderer.
func New(categories []orbit.Category, opts Options) (*Widget, error) {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	log = log.With("scene")

	if opts.Width <= 0 || opts.Height <= 0 || opts.Renderer == nil {
		log.Warn("no render surface (%dx%d, renderer=%t)", opts.Width, opts.Height, opts.Renderer != nil)
		return nil, ErrNoSurface
	}

	w := &Widget{
		rig:      camera.NewRig(opts.Camera),
		sys:      orbit.NewSystem(categories),
		renderer: opts.Renderer,
		fov:      opts.FOV,
		listener: opts.Listener,
		cues:     opts.Cues,
		metrics:  opts.Metrics,
		log:      log,
	}
	if w.cues == nil {
		w.cues = audio.Silent{}
	}
	w.picker = pick.NewEngine(w.sys, opts.HitRate)
	w.zoom = zoom.New(opts.Zoom, zoom.ListenerFuncs{
		OnZoomStateChanged: w.notifyZoomState,
		OnCategorySelected: w.notifySelected,
	})
	w.vp = pick.Viewport{Width: opts.Width, Height: opts.Height, CellAspect: opts.Camera.CellAspect}
	w.rig.SetAspect(w.vp.Aspect())
	w.eye = w.rig.Position()
	w.sys.Billboard(w.eye, w.rig.Basis().Up)
	w.metrics.SetSatellites(w.sys.Len())

	w.subs.Add("listener", func() { w.listener = nil })
	w.subs.Add("cues", func() {
		w.cues.Close()
		w.cues = audio.Silent{}
	})

	log.Info("widget ready: %d satellites, %dx%d", w.sys.Len(), opts.Width, opts.Height)
	return w, nil
}

func (w *Widget) notifyZoomState(zoomed bool) {
	w.log.Debug("zoom state changed: %t", zoomed)
	if w.listener != nil {
		w.listener.ZoomStateChanged(zoomed)
	}
}

func (w *Widget) notifySelected(id string) {
	w.log.Info("category selected: %s", id)
	if w.listener != nil {
		w.listener.CategorySelected(id)
	}
}

// Subscribe ties a resource's lifetime to the widget. After disposal the
// release runs immediately.
func (w *Widget) Subscribe(name string, release func()) {
	w.subs.Add(name, release)
}

// Subscriptions returns the widget's held subscriptions.
func (w *Widget) Subscriptions() *Subscriptions { return &w.subs }

// Tick runs one frame: zoom step or momentum, satellite motion, label
// billboarding, pending hover resolution and rendering. It reports whether
// the host should schedule another frame.
func (w *Widget) Tick(now time.Time) bool {
	if w.disposed {
		return false
	}

	prev := w.zoom.State()
	if pos, held := w.zoom.Step(now); held {
		w.eye = pos
	} else {
		if w.rig.ApplyMomentum(now) {
			w.metrics.MomentumFrame()
		}
		w.eye = w.rig.Position()
	}
	if s := w.zoom.State(); s != prev {
		w.zoomEntered(s)
	}

	w.sys.Advance()
	proj := w.projector()
	w.sys.Billboard(w.eye, proj.Basis.Up)

	if w.picker.Flush(now, proj, w.vp) {
		w.hoverChanged()
	}

	w.frame = w.renderer.Draw(render.Scene{
		Projector:   proj,
		Viewport:    w.vp,
		System:      w.sys,
		Highlighted: w.picker.Highlighted,
		Selected:    w.zoom.SelectedID(),
	})
	w.metrics.FrameRendered()
	w.recordHitStats()
	return true
}

func (w *Widget) zoomEntered(s zoom.State) {
	w.metrics.ZoomEntered(s.String())
	w.rig.SetLocked(s != zoom.Idle)
	w.log.Debug("zoom: %s", s)
}

func (w *Widget) recordHitStats() {
	st := w.picker.Stats()
	w.metrics.AddHitTests(st.Executed-w.lastStats.Executed, st.Throttled-w.lastStats.Throttled)
	w.lastStats = st
}

func (w *Widget) projector() pick.Projector {
	return pick.NewProjector(w.eye, w.fov, w.rig.Aspect())
}

func (w *Widget) hoverChanged() {
	if id, ok := w.picker.Hovered(); ok {
		w.log.Debug("hover: %s", id)
		w.cues.Hover()
	}
}

// PointerMove handles pointer motion at cell (col, row): it drags the
// camera while pressed and hit-tests for hover. Reports whether anything
// changed.
func (w *Widget) PointerMove(col, row int, now time.Time) bool {
	if w.disposed {
		return false
	}
	changed := false
	if w.press && (col != w.pressAt[0] || row != w.pressAt[1]) {
		w.dragged = true
	}
	if w.rig.DragMove(col, row, now) {
		changed = true
	}
	if w.picker.Move(col, row, now, w.projector(), w.vp) {
		w.hoverChanged()
		changed = true
	}
	return changed
}

// PointerDown starts a drag at cell (col, row). Drags are ignored while the
// zoom transition owns the camera.
func (w *Widget) PointerDown(col, row int, now time.Time) bool {
	if w.disposed {
		return false
	}
	w.press = true
	w.dragged = false
	w.pressAt = [2]int{col, row}
	if w.picker.Press(col, row, w.projector(), w.vp) {
		w.hoverChanged()
	}
	return w.rig.DragStart(col, row, now)
}

// PointerUp ends a drag. A press and release without motion is a click on
// the hovered satellite. Reports whether a zoom started.
func (w *Widget) PointerUp(col, row int, now time.Time) bool {
	if w.disposed {
		return false
	}
	wasPress := w.press && !w.dragged && col == w.pressAt[0] && row == w.pressAt[1]
	w.press = false
	w.rig.DragEnd(now)
	if !wasPress {
		return false
	}
	return w.click(now) == nil
}

// PointerLeave clears hover when the pointer leaves the surface.
func (w *Widget) PointerLeave() {
	if w.disposed {
		return
	}
	w.picker.Leave()
}

// Click requests a zoom to the hovered satellite.
func (w *Widget) Click(now time.Time) error {
	if w.disposed {
		return ErrDisposed
	}
	return w.click(now)
}

func (w *Widget) click(now time.Time) error {
	id, pos, ok := w.picker.Click(w.zoom.Idle())
	if !ok {
		if !w.zoom.Idle() {
			return zoom.ErrBusy
		}
		return ErrNothingFocused
	}
	return w.request(id, pos, now)
}

func (w *Widget) request(id string, pos geom.Vec3, now time.Time) error {
	if err := w.zoom.Request(id, pos, w.eye, now); err != nil {
		w.log.Debug("zoom to %s rejected: %v", id, err)
		return err
	}
	w.zoomEntered(w.zoom.State())
	w.cues.Select()
	return nil
}

// Select zooms to the satellite with id, as a click on it would.
func (w *Widget) Select(id string, now time.Time) error {
	if w.disposed {
		return ErrDisposed
	}
	s, ok := w.sys.ByID(id)
	if !ok {
		return fmt.Errorf("select %q: %w", id, ErrUnknownCategory)
	}
	return w.request(s.ID, s.Position, now)
}

// SelectFocused zooms to the keyboard-focused satellite.
func (w *Widget) SelectFocused(now time.Time) error {
	if w.disposed {
		return ErrDisposed
	}
	return w.click(now)
}

// Focus moves hover by delta satellites, wrapping around. It returns the
// focused id.
func (w *Widget) Focus(delta int) string {
	if w.disposed || w.sys.Len() == 0 {
		return ""
	}
	n := w.sys.Len()
	idx := w.picker.HoveredIndex()
	if idx < 0 {
		if delta > 0 {
			idx = -1
		} else {
			idx = 0
		}
	}
	idx = ((idx+delta)%n + n) % n
	if w.picker.Focus(idx) {
		w.hoverChanged()
	}
	return w.sys.At(idx).ID
}

// Wheel applies a wheel or trackpad gesture.
func (w *Widget) Wheel(e camera.WheelEvent, now time.Time) camera.Gesture {
	if w.disposed {
		return camera.GestureNone
	}
	return w.rig.Wheel(e, now)
}

// Back returns from a zoomed satellite to the home view.
func (w *Widget) Back(now time.Time) error {
	if w.disposed {
		return ErrDisposed
	}
	if err := w.zoom.Deselect(now); err != nil {
		return err
	}
	w.zoomEntered(w.zoom.State())
	w.cues.Back()
	return nil
}

// ResetCamera returns the rig home. It does nothing during a zoom.
func (w *Widget) ResetCamera() bool {
	if w.disposed || !w.zoom.Idle() {
		return false
	}
	w.rig.Reset()
	w.eye = w.rig.Position()
	return true
}

// Resize updates the surface size and camera aspect ratio only.
func (w *Widget) Resize(width, height int) {
	if w.disposed {
		return
	}
	w.vp.Width = max(width, 0)
	w.vp.Height = max(height, 0)
	w.rig.SetAspect(w.vp.Aspect())
}

// Dispose stops the widget and releases every subscription. It is safe to
// call more than once.
func (w *Widget) Dispose() {
	if w.disposed {
		return
	}
	w.disposed = true
	w.subs.ReleaseAll()
	w.log.Info("widget disposed")
}

// Disposed reports whether Dispose has run.
func (w *Widget) Disposed() bool { return w.disposed }

// Frame returns the last rendered frame.
func (w *Widget) Frame() string { return w.frame }

// HitTest reports what lies under cell (col, row) without touching hover
// state or the throttle.
func (w *Widget) HitTest(col, row int) (pick.Hit, bool) {
	return w.picker.HitTest(col, row, w.projector(), w.vp)
}

// CellOf returns the cell the world point p projects to.
func (w *Widget) CellOf(p geom.Vec3) (col, row int, ok bool) {
	x, y, _, ok := w.projector().Project(p)
	if !ok {
		return 0, 0, false
	}
	col, row = w.vp.Cell(x, y)
	return col, row, col >= 0 && col < w.vp.Width && row >= 0 && row < w.vp.Height
}

// ZoomState returns the zoom machine state.
func (w *Widget) ZoomState() zoom.State { return w.zoom.State() }

// Selected returns the id being zoomed to, or "".
func (w *Widget) Selected() string { return w.zoom.SelectedID() }

// Camera returns the rig's spherical state.
func (w *Widget) Camera() camera.State { return w.rig.State() }

// CameraPosition returns the camera position used for the last frame.
func (w *Widget) CameraPosition() geom.Vec3 { return w.eye }

// Hovered returns the hovered satellite id.
func (w *Widget) Hovered() (string, bool) { return w.picker.Hovered() }

// Cursor returns the pointer affordance.
func (w *Widget) Cursor() pick.Cursor { return w.picker.Cursor() }

// HitStats returns hit-test counters.
func (w *Widget) HitStats() pick.Stats { return w.picker.Stats() }

// System exposes the satellites.
func (w *Widget) System() *orbit.System { return w.sys }

// Viewport returns the surface size.
func (w *Widget) Viewport() pick.Viewport { return w.vp }

// Dragging reports whether a camera drag is in progress.
func (w *Widget) Dragging() bool { return w.rig.Dragging() }

// Moving reports whether momentum is still turning the camera.
func (w *Widget) Moving() bool { return w.rig.Moving() }
