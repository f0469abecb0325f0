package audio

import (
	"time"

	"github.com/gopxl/beep"
)

// Cue identifies an interaction sound.
type Cue int

const (
	CueHover Cue = iota
	CueSelect
	CueBack
)

func (c Cue) String() string {
	switch c {
	case CueHover:
		return "hover"
	case CueSelect:
		return "select"
	case CueBack:
		return "back"
	default:
		return "unknown"
	}
}

const (
	hoverLength = 30 * time.Millisecond
	noteLength  = 90 * time.Millisecond
	attack      = 4 * time.Millisecond
	release     = 25 * time.Millisecond
)

func note(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return Fade(Tone(freq, d, wave, rate), d, attack, release, rate)
}

// Build returns a fresh streamer for c at volume (0..1), or nil for an
// unknown cue.
func Build(c Cue, volume float64, rate beep.SampleRate) beep.Streamer {
	var s beep.Streamer
	switch c {
	case CueHover:
		// short tick, high triangle
		s = note(1568, hoverLength, WaveTriangle, rate)
	case CueSelect:
		// rising fifth with an octave shimmer on the second note
		s = beep.Seq(
			note(659.25, noteLength, WaveSine, rate),
			beep.Mix(
				gain(note(987.77, 2*noteLength, WaveSine, rate), 0.7),
				gain(note(1975.5, 2*noteLength, WaveSine, rate), 0.3),
			),
		)
	case CueBack:
		// falling pair
		s = beep.Seq(
			note(783.99, noteLength, WaveSine, rate),
			note(523.25, noteLength, WaveSine, rate),
		)
	default:
		return nil
	}
	return gain(s, volume)
}
