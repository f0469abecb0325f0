package orbit

import (
	"math"

	"github.com/litescript/orbitnav/internal/geom"
)

// HubRotationSpeed is the per-frame spin of the central hub mesh.
const HubRotationSpeed = 0.003

// System owns every satellite for the widget's lifetime. Satellites are kept
// in placement order; the id index is the only route from an identity back
// to its record.
type System struct {
	sats    []Satellite
	byID    map[string]int
	hubSpin float64
	frames  uint64
}

// NewSystem places satellites for the given categories. Duplicate ids keep
// the first occurrence in the index.
func NewSystem(categories []Category) *System {
	sats := Place(categories)
	byID := make(map[string]int, len(sats))
	for i, s := range sats {
		if _, dup := byID[s.ID]; !dup {
			byID[s.ID] = i
		}
	}
	return &System{sats: sats, byID: byID}
}

// Len returns the number of satellites.
func (s *System) Len() int { return len(s.sats) }

// At returns the satellite at index i. The pointer stays valid for the
// lifetime of the system.
func (s *System) At(i int) *Satellite {
	if i < 0 || i >= len(s.sats) {
		return nil
	}
	return &s.sats[i]
}

// ByID looks up a satellite by category id.
func (s *System) ByID(id string) (*Satellite, bool) {
	i, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return &s.sats[i], true
}

// IndexOf returns the placement index of id, or -1.
func (s *System) IndexOf(id string) int {
	if i, ok := s.byID[id]; ok {
		return i
	}
	return -1
}

// IDs returns the category ids in placement order.
func (s *System) IDs() []string {
	ids := make([]string, len(s.sats))
	for i, sat := range s.sats {
		ids[i] = sat.ID
	}
	return ids
}

// HubSpin returns the accumulated hub rotation in radians.
func (s *System) HubSpin() float64 { return s.hubSpin }

// Frames returns how many times Advance has run.
func (s *System) Frames() uint64 { return s.frames }

// Advance moves every satellite and the hub forward one frame.
func (s *System) Advance() {
	for i := range s.sats {
		s.sats[i].advance()
	}
	s.hubSpin += HubRotationSpeed
	s.frames++
}

// Billboard re-aims every label at the camera. Must run after Advance and
// after the camera has moved for the frame.
func (s *System) Billboard(cameraPos, cameraUp geom.Vec3) {
	for i := range s.sats {
		s.sats[i].billboard(cameraPos, cameraUp)
	}
}

// OrbitPath samples the full orbit ring of satellite i.
func (s *System) OrbitPath(i, samples int) []geom.Vec3 {
	sat := s.At(i)
	if sat == nil || samples <= 0 {
		return nil
	}
	pts := make([]geom.Vec3, samples)
	for k := 0; k < samples; k++ {
		pts[k] = sat.positionAt(2 * math.Pi * float64(k) / float64(samples))
	}
	return pts
}
