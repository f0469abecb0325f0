// Package camera implements the orbiting camera rig: spherical coordinates
// around the origin steered by drag and wheel gestures with momentum.
package camera

import (
	"math"
	"time"

	"github.com/litescript/orbitnav/internal/geom"
)

// Config tunes the rig. Sensitivities are radians per terminal column.
type Config struct {
	Home              geom.Vec3
	DragSensitivity   float64
	WheelSensitivity  float64
	CellAspect        float64 // cell height / cell width
	Damping           float64
	Epsilon           float64
	MinSampleInterval time.Duration
	WheelWindow       time.Duration
	ReferenceFrame    time.Duration
	ClampPhi          bool
	PhiMargin         float64
}

// DefaultConfig returns the stock rig tuning.
func DefaultConfig() Config {
	return Config{
		Home:              geom.Vec3{X: 0, Y: 10, Z: 15},
		DragSensitivity:   0.04,
		WheelSensitivity:  0.02,
		CellAspect:        2.0,
		Damping:           0.96,
		Epsilon:           0.001,
		MinSampleInterval: 8 * time.Millisecond,
		WheelWindow:       100 * time.Millisecond,
		ReferenceFrame:    time.Second / 60,
		ClampPhi:          true,
		PhiMargin:         0.01,
	}
}

// State is a copy of the rig's spherical coordinates and momentum.
type State struct {
	Radius float64
	Theta  float64
	Phi    float64
	VTheta float64
	VPhi   float64
}

// WheelEvent is one wheel or trackpad notch. DX is horizontal, DY vertical.
type WheelEvent struct {
	DX, DY float64
	Shift  bool
	Ctrl   bool
}

// Gesture classifies a wheel event.
type Gesture int

const (
	GestureNone Gesture = iota
	GestureSpin
	GestureZoom // reserved; the rig does not zoom
)

// Classify distinguishes a spin gesture from the reserved zoom modifier.
// Shift folds a vertical scroll into a horizontal spin.
func (e WheelEvent) Classify() Gesture {
	if e.DX == 0 && e.DY == 0 {
		return GestureNone
	}
	if e.Ctrl {
		return GestureZoom
	}
	return GestureSpin
}

// spinDelta returns the horizontal and vertical spin components.
func (e WheelEvent) spinDelta() (dx, dy float64) {
	if e.Shift && e.DX == 0 {
		return e.DY, 0
	}
	return e.DX, e.DY
}

// Rig owns the camera's spherical state. It is not safe for concurrent use;
// every call comes from the frame loop's goroutine.
type Rig struct {
	cfg    Config
	sph    geom.Spherical
	home   geom.Spherical
	aspect float64

	drag  Momentum
	wheel Momentum

	locked   bool
	pressed  bool
	lastX    int
	lastY    int
	sampleAt time.Time
	pendingT float64
	pendingP float64
}

// NewRig places the camera at cfg.Home looking at the origin.
func NewRig(cfg Config) *Rig {
	home := geom.SphericalFromVec3(cfg.Home)
	return &Rig{
		cfg:    cfg,
		sph:    home,
		home:   home,
		aspect: 1,
		drag:   NewMomentum(SourceDrag, ModeHold, cfg.Damping, cfg.Epsilon, 0),
		wheel:  NewMomentum(SourceWheel, ModeExpire, cfg.Damping, cfg.Epsilon, cfg.WheelWindow),
	}
}

// Position returns the camera position derived from spherical state.
func (r *Rig) Position() geom.Vec3 { return r.sph.ToVec3() }

// Basis returns the camera frame aimed at the origin.
func (r *Rig) Basis() geom.Basis {
	return geom.LookAt(r.Position(), geom.Vec3{}, geom.WorldUp)
}

// HomePosition returns the default camera position.
func (r *Rig) HomePosition() geom.Vec3 { return r.home.ToVec3() }

// Radius returns the fixed orbit radius.
func (r *Rig) Radius() float64 { return r.sph.Radius }

// Aspect returns the surface aspect ratio (width / height in world units).
func (r *Rig) Aspect() float64 { return r.aspect }

// SetAspect updates the aspect ratio only.
func (r *Rig) SetAspect(a float64) {
	if a > 0 {
		r.aspect = a
	}
}

// State returns a snapshot of the spherical coordinates and the combined
// momentum.
func (r *Rig) State() State {
	return State{
		Radius: r.sph.Radius,
		Theta:  r.sph.Theta,
		Phi:    r.sph.Phi,
		VTheta: r.drag.VTheta + r.wheel.VTheta,
		VPhi:   r.drag.VPhi + r.wheel.VPhi,
	}
}

// Locked reports whether input is ignored.
func (r *Rig) Locked() bool { return r.locked }

// SetLocked hands the camera to (or back from) the zoom transition. Locking
// cancels any drag in progress and all momentum.
func (r *Rig) SetLocked(locked bool) {
	r.locked = locked
	if locked {
		r.pressed = false
		r.drag.Release()
		r.drag.Zero()
		r.wheel.Zero()
	}
}

// Dragging reports whether a drag is in progress.
func (r *Rig) Dragging() bool { return r.pressed }

// Moving reports whether momentum is still turning the camera.
func (r *Rig) Moving() bool { return r.drag.Moving() || r.wheel.Moving() }

// DragStart begins a drag at terminal cell (x, y).
func (r *Rig) DragStart(x, y int, now time.Time) bool {
	if r.locked {
		return false
	}
	r.pressed = true
	r.lastX, r.lastY = x, y
	r.sampleAt = now
	r.pendingT, r.pendingP = 0, 0
	r.drag.Zero()
	r.wheel.Zero()
	r.drag.Hold()
	return true
}

// DragMove rotates the camera by the pointer delta since the previous move.
func (r *Rig) DragMove(x, y int, now time.Time) bool {
	if r.locked || !r.pressed {
		return false
	}
	dx := float64(x - r.lastX)
	dy := float64(y-r.lastY) * r.cfg.CellAspect
	r.lastX, r.lastY = x, y

	dTheta := dx * r.cfg.DragSensitivity
	dPhi := dy * r.cfg.DragSensitivity
	r.rotate(dTheta, dPhi)

	r.pendingT += dTheta
	r.pendingP += dPhi
	elapsed := now.Sub(r.sampleAt)
	if elapsed > r.cfg.MinSampleInterval {
		perFrame := float64(r.cfg.ReferenceFrame) / float64(elapsed)
		r.drag.Set(r.pendingT*perFrame, r.pendingP*perFrame, now)
		r.pendingT, r.pendingP = 0, 0
		r.sampleAt = now
	}
	return true
}

// DragEnd releases the drag; the last sampled velocity carries on as
// momentum.
func (r *Rig) DragEnd(now time.Time) bool {
	if !r.pressed {
		return false
	}
	r.pressed = false
	r.drag.Release()
	return true
}

// Wheel applies a spin gesture immediately and arms wheel momentum with its
// delta. The momentum decays for WheelWindow after the last event and then
// stops. The reserved zoom gesture is reported but has no effect.
func (r *Rig) Wheel(e WheelEvent, now time.Time) Gesture {
	g := e.Classify()
	if g != GestureSpin || r.locked {
		return g
	}
	dx, dy := e.spinDelta()
	dTheta := dx * r.cfg.WheelSensitivity
	dPhi := dy * r.cfg.WheelSensitivity
	r.rotate(dTheta, dPhi)
	r.wheel.Set(dTheta, dPhi, now)
	return g
}

// ApplyMomentum advances both momenta by one idle frame. It does nothing
// while locked. Reports whether the camera moved.
func (r *Rig) ApplyMomentum(now time.Time) bool {
	if r.locked {
		return false
	}
	moved := false
	for _, m := range []*Momentum{&r.drag, &r.wheel} {
		if dT, dP, ok := m.Step(now); ok {
			r.rotate(dT, dP)
			moved = true
		}
	}
	return moved
}

// Reset returns the camera to its home position and discards momentum.
func (r *Rig) Reset() {
	r.sph = r.home
	r.pressed = false
	r.drag.Release()
	r.drag.Zero()
	r.wheel.Zero()
}

func (r *Rig) rotate(dTheta, dPhi float64) {
	r.sph.Theta -= dTheta
	r.sph.Phi += dPhi
	if r.cfg.ClampPhi {
		r.sph.Phi = clamp(r.sph.Phi, r.cfg.PhiMargin, math.Pi-r.cfg.PhiMargin)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
