package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// launchDuration is the length of one launch cue.
const launchDuration = 250 * time.Millisecond

// LaunchGenerator synthesizes a short falling sweep over filtered noise.
type LaunchGenerator struct {
	sr      beep.SampleRate
	pos     int
	samples int
	base    float64
	noise   uint32
	lowpass float64
}

// NewLaunchGenerator creates a launch sound generator. speed shifts the sweep
// start between 300 Hz and 900 Hz.
func NewLaunchGenerator(sr beep.SampleRate, speed float64) *LaunchGenerator {
	return &LaunchGenerator{
		sr:      sr,
		samples: sr.N(launchDuration),
		base:    300 + math.Min(math.Max(speed, 0), 60)*10,
		noise:   0x9e3779b9,
	}
}

// Len is the cue length in samples.
func (g *LaunchGenerator) Len() int {
	return g.samples
}

func (g *LaunchGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.samples {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.samples {
			return i, true
		}
		progress := float64(g.pos) / float64(g.samples)
		t := float64(g.pos) / float64(g.sr)

		// Sweep down an octave
		freq := g.base * (1 - 0.5*progress)
		tone := math.Sin(2 * math.Pi * freq * t)

		// xorshift noise through a one-pole lowpass
		g.noise ^= g.noise << 13
		g.noise ^= g.noise >> 17
		g.noise ^= g.noise << 5
		white := float64(g.noise)/float64(math.MaxUint32)*2 - 1
		g.lowpass += 0.2 * (white - g.lowpass)

		attack := math.Min(progress/0.05, 1)
		envelope := attack * (1 - progress) * (1 - progress)
		sample := envelope * (0.25*tone + 0.35*g.lowpass)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *LaunchGenerator) Err() error {
	return nil
}
