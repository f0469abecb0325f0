// Package zoom animates the camera from its resting position to a chosen
// satellite and back.
package zoom

import (
	"errors"
	"time"

	"github.com/litescript/orbitnav/internal/geom"
)

// State is the transition state.
type State int

const (
	Idle State = iota
	ZoomingIn
	Zoomed
	ZoomingOut
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case ZoomingIn:
		return "zooming-in"
	case Zoomed:
		return "zoomed"
	case ZoomingOut:
		return "zooming-out"
	default:
		return "unknown"
	}
}

// Errors returned by Request and Deselect.
var (
	ErrBusy      = errors.New("zoom: transition already in progress")
	ErrNotZoomed = errors.New("zoom: not zoomed")
)

// Listener receives host notifications.
type Listener interface {
	ZoomStateChanged(zoomed bool)
	CategorySelected(id string)
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	OnZoomStateChanged func(zoomed bool)
	OnCategorySelected func(id string)
}

func (l ListenerFuncs) ZoomStateChanged(zoomed bool) {
	if l.OnZoomStateChanged != nil {
		l.OnZoomStateChanged(zoomed)
	}
}

func (l ListenerFuncs) CategorySelected(id string) {
	if l.OnCategorySelected != nil {
		l.OnCategorySelected(id)
	}
}

// Config tunes the transition.
type Config struct {
	Duration time.Duration
	Distance float64 // how far outside the satellite the camera stops
}

// DefaultConfig returns the stock transition tuning.
func DefaultConfig() Config {
	return Config{
		Duration: 1500 * time.Millisecond,
		Distance: 3,
	}
}

// Ease is a cubic ease-in-out on [0, 1].
func Ease(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// TargetFor returns the camera stop for a satellite at pos: just outside
// it along the ray from the origin.
func TargetFor(pos geom.Vec3, distance float64) geom.Vec3 {
	return pos.Add(pos.Normalized().Scale(distance))
}

// Machine is the zoom transition state machine. Transitions are strictly
// linear: Idle → ZoomingIn → Zoomed → ZoomingOut → Idle.
type Machine struct {
	cfg      Config
	listener Listener

	state    State
	start    time.Time
	home     geom.Vec3
	target   geom.Vec3
	selected string
	current  geom.Vec3
}

// New returns an idle machine. A nil listener drops notifications.
func New(cfg Config, l Listener) *Machine {
	if l == nil {
		l = ListenerFuncs{}
	}
	return &Machine{cfg: cfg, listener: l}
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Active reports whether an animation is running.
func (m *Machine) Active() bool {
	return m.state == ZoomingIn || m.state == ZoomingOut
}

// Idle reports whether the camera is back under rig control.
func (m *Machine) Idle() bool { return m.state == Idle }

// SelectedID returns the satellite being zoomed to, or "" when idle.
func (m *Machine) SelectedID() string { return m.selected }

// Target returns the zoom-in stop.
func (m *Machine) Target() geom.Vec3 { return m.target }

// Position returns the camera position last produced by Step.
func (m *Machine) Position() geom.Vec3 { return m.current }

// Request starts zooming from the camera position from toward the satellite
// id at satPos. Only accepted while Idle.
func (m *Machine) Request(id string, satPos, from geom.Vec3, now time.Time) error {
	if m.state != Idle {
		return ErrBusy
	}
	m.state = ZoomingIn
	m.start = now
	m.home = from
	m.current = from
	m.target = TargetFor(satPos, m.cfg.Distance)
	m.selected = id
	return nil
}

// Deselect starts the return to the home position. Only accepted while
// Zoomed.
func (m *Machine) Deselect(now time.Time) error {
	switch m.state {
	case Zoomed:
	case ZoomingIn, ZoomingOut:
		return ErrBusy
	default:
		return ErrNotZoomed
	}
	m.state = ZoomingOut
	m.start = now
	return nil
}

// Progress returns the linear animation progress in [0, 1].
func (m *Machine) Progress(now time.Time) float64 {
	if m.cfg.Duration <= 0 {
		return 1
	}
	p := float64(now.Sub(m.start)) / float64(m.cfg.Duration)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Step advances the animation and returns the camera position for this
// frame. held is false only while Idle, when the rig owns the camera.
func (m *Machine) Step(now time.Time) (pos geom.Vec3, held bool) {
	switch m.state {
	case Idle:
		return geom.Vec3{}, false
	case Zoomed:
		m.current = m.target
		return m.current, true
	}

	p := m.Progress(now)
	e := Ease(p)
	if m.state == ZoomingIn {
		m.current = m.home.Lerp(m.target, e)
	} else {
		m.current = m.target.Lerp(m.home, e)
	}
	if p < 1 {
		return m.current, true
	}

	if m.state == ZoomingIn {
		m.state = Zoomed
		m.current = m.target
		m.listener.ZoomStateChanged(true)
		m.listener.CategorySelected(m.selected)
		return m.current, true
	}

	m.state = Idle
	m.current = m.home
	m.selected = ""
	m.listener.ZoomStateChanged(false)
	return m.current, true
}
