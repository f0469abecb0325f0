package camera

import "time"

// Source identifies the input gesture that produced a momentum.
type Source int

const (
	SourceDrag Source = iota
	SourceWheel
)

func (s Source) String() string {
	switch s {
	case SourceDrag:
		return "drag"
	case SourceWheel:
		return "wheel"
	default:
		return "unknown"
	}
}

// Mode selects how a momentum relates to its Window.
type Mode int

const (
	// ModeHold waits out Window after the last input, then decays to rest.
	ModeHold Mode = iota
	// ModeExpire decays only inside Window and is zeroed once it passes.
	ModeExpire
)

// Momentum is angular velocity that keeps turning the camera after input
// stops, decaying geometrically once per frame. Drag and wheel gestures
// each own one instance; they differ only in Mode and Window.
type Momentum struct {
	Source  Source
	Mode    Mode
	VTheta  float64 // radians per frame, subtracted from theta
	VPhi    float64 // radians per frame, added to phi
	Damping float64
	Epsilon float64

	Window time.Duration

	held      bool
	lastInput time.Time
}

// NewMomentum returns a zeroed momentum for source.
func NewMomentum(src Source, mode Mode, damping, epsilon float64, window time.Duration) Momentum {
	return Momentum{Source: src, Mode: mode, Damping: damping, Epsilon: epsilon, Window: window}
}

// Set replaces the velocity and restarts the hold window.
func (m *Momentum) Set(vTheta, vPhi float64, now time.Time) {
	m.VTheta = vTheta
	m.VPhi = vPhi
	m.lastInput = now
}

// Hold suspends decay until Release, e.g. while a pointer button is down.
func (m *Momentum) Hold() { m.held = true }

// Release lets decay resume.
func (m *Momentum) Release() { m.held = false }

// Zero discards any velocity.
func (m *Momentum) Zero() {
	m.VTheta = 0
	m.VPhi = 0
}

// Moving reports whether any velocity remains.
func (m *Momentum) Moving() bool {
	return m.VTheta != 0 || m.VPhi != 0
}

// Idle reports whether the source has released control at now. A ModeHold
// momentum is idle once Window has passed; ModeExpire is idle unless held.
func (m *Momentum) Idle(now time.Time) bool {
	if m.held {
		return false
	}
	if m.Mode == ModeExpire {
		return true
	}
	return m.Window <= 0 || now.Sub(m.lastInput) >= m.Window
}

// expired reports whether a ModeExpire window has closed at now.
func (m *Momentum) expired(now time.Time) bool {
	return m.Mode == ModeExpire && now.Sub(m.lastInput) >= m.Window
}

// Step applies one frame: it returns the velocity to apply this frame, then
// decays it. Once both components fall below Epsilon, or an expiring window
// closes, the momentum is exactly zero until Set is called again.
func (m *Momentum) Step(now time.Time) (dTheta, dPhi float64, ok bool) {
	if !m.Moving() || !m.Idle(now) {
		return 0, 0, false
	}
	if m.expired(now) {
		m.Zero()
		return 0, 0, false
	}
	dTheta, dPhi = m.VTheta, m.VPhi
	m.VTheta *= m.Damping
	m.VPhi *= m.Damping
	if abs(m.VTheta) < m.Epsilon && abs(m.VPhi) < m.Epsilon {
		m.Zero()
	}
	return dTheta, dPhi, true
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
