// Package audio plays synthesized positional cues through the beep speaker.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)

	// DefaultMaxDistance is where a cue fades to silence.
	DefaultMaxDistance = 120
)

// Listener represents the audio listener position and orientation
type Listener struct {
	Position mgl32.Vec3
	Forward  mgl32.Vec3
	Right    mgl32.Vec3
}

// Manager handles audio playback
type Manager struct {
	mu          sync.Mutex
	listener    Listener
	mixer       *beep.Mixer
	volume      float64
	maxDistance float32
	initialized bool
}

var globalManager *Manager

// Init opens the speaker. volume is linear gain in [0, 1].
func Init(volume float64) error {
	m := &Manager{
		mixer:       &beep.Mixer{},
		volume:      volume,
		maxDistance: DefaultMaxDistance,
		listener: Listener{
			Forward: mgl32.Vec3{0, 0, -1},
			Right:   mgl32.Vec3{1, 0, 0},
		},
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(m.mixer)
	m.initialized = true
	globalManager = m
	return nil
}

// Close silences everything. beep has no speaker shutdown, clearing the mixer is enough.
func Close() {
	if globalManager == nil {
		return
	}
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()
	speaker.Lock()
	globalManager.mixer.Clear()
	speaker.Unlock()
	globalManager.initialized = false
}

// SetListener updates the listener position and orientation
func SetListener(pos, forward, up mgl32.Vec3) {
	if globalManager == nil {
		return
	}
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()
	globalManager.listener = NewListener(pos, forward, up)
}

// NewListener normalizes forward, defaulting to -Z, and derives right as forward x up.
func NewListener(pos, forward, up mgl32.Vec3) Listener {
	l := Listener{Position: pos}
	if forward.Len() > 0.001 {
		l.Forward = forward.Normalize()
	} else {
		l.Forward = mgl32.Vec3{0, 0, -1}
	}
	right := l.Forward.Cross(up)
	if right.Len() > 0.001 {
		l.Right = right.Normalize()
	} else {
		l.Right = mgl32.Vec3{1, 0, 0}
	}
	return l
}

// Spatialize returns the gain in [0, 1] and the stereo pan in [-1, 1] of a
// source at pos. Gain falls off linearly to zero at maxDistance; sources
// behind the listener lose up to 30%.
func (l Listener) Spatialize(pos mgl32.Vec3, maxDistance float32) (gain, pan float64) {
	toSource := pos.Sub(l.Position)
	distance := toSource.Len()
	if distance >= maxDistance {
		return 0, 0
	}
	gain = float64(1 - distance/maxDistance)
	if distance < 0.001 {
		return gain, 0
	}

	direction := toSource.Mul(1 / distance)
	pan = float64(direction.Dot(l.Right))
	pan = math.Max(-1, math.Min(1, pan))

	if front := float64(direction.Dot(l.Forward)); front < 0 {
		gain *= 0.7 + 0.3*math.Abs(front)
	}
	return gain, pan
}

// PlayLaunch plays the launch whoosh from pos. Faster projectiles sound higher.
func PlayLaunch(pos mgl32.Vec3, speed float32) {
	if globalManager == nil {
		return
	}
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()
	if !globalManager.initialized {
		return
	}

	gain, pan := globalManager.listener.Spatialize(pos, globalManager.maxDistance)
	gain *= globalManager.volume
	if gain <= 0 {
		return
	}

	gen := NewLaunchGenerator(sampleRate, float64(speed))
	streamer := &effects.Pan{
		Streamer: withGain(beep.Take(gen.Len(), gen), gain),
		Pan:      pan,
	}
	speaker.Lock()
	globalManager.mixer.Add(streamer)
	speaker.Unlock()
}

// withGain maps linear gain onto beep's base-2 volume.
func withGain(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}
