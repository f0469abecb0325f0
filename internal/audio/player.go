package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Player plays interaction cues. Implementations must not block the caller.
type Player interface {
	Hover()
	Select()
	Back()
	Close()
}

// Silent is a Player that plays nothing.
type Silent struct{}

func (Silent) Hover()  {}
func (Silent) Select() {}
func (Silent) Back()   {}
func (Silent) Close()  {}

// Speaker plays cues through the system audio device.
type Speaker struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	volume float64
	open   bool
}

// NewSpeaker opens the audio device. Callers fall back to Silent on error.
func NewSpeaker(volume float64) (*Speaker, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	s := &Speaker{mixer: &beep.Mixer{}, volume: volume, open: true}
	speaker.Play(s.mixer)
	return s, nil
}

func (s *Speaker) play(c Cue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return
	}
	st := Build(c, s.volume, sampleRate)
	if st == nil {
		return
	}
	// the mixer is read by the speaker goroutine
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

func (s *Speaker) Hover()  { s.play(CueHover) }
func (s *Speaker) Select() { s.play(CueSelect) }
func (s *Speaker) Back()   { s.play(CueBack) }

// Close silences pending cues and releases the device.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return
	}
	speaker.Clear()
	speaker.Close()
	s.open = false
}
