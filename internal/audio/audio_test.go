package audio

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gopxl/beep"
)

func TestNewListenerDefaults(t *testing.T) {
	l := NewListener(mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{})
	if l.Forward != (mgl32.Vec3{0, 0, -1}) {
		t.Errorf("forward = %v, want -Z", l.Forward)
	}
	if l.Right != (mgl32.Vec3{1, 0, 0}) {
		t.Errorf("right = %v, want +X", l.Right)
	}

	l = NewListener(mgl32.Vec3{}, mgl32.Vec3{0, 0, -5}, mgl32.Vec3{0, 1, 0})
	if !l.Right.ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, 1e-6) {
		t.Errorf("right = %v, want +X", l.Right)
	}
}

func TestSpatialize(t *testing.T) {
	l := NewListener(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})

	gain, pan := l.Spatialize(mgl32.Vec3{10, 0, 0}, 100)
	if math.Abs(gain-0.9) > 1e-6 || math.Abs(pan-1) > 1e-6 {
		t.Errorf("right source: gain=%v pan=%v, want 0.9, 1", gain, pan)
	}

	_, pan = l.Spatialize(mgl32.Vec3{-10, 0, 0}, 100)
	if math.Abs(pan+1) > 1e-6 {
		t.Errorf("left source: pan=%v, want -1", pan)
	}

	gain, pan = l.Spatialize(mgl32.Vec3{}, 100)
	if gain != 1 || pan != 0 {
		t.Errorf("source at listener: gain=%v pan=%v", gain, pan)
	}

	if gain, _ := l.Spatialize(mgl32.Vec3{0, 0, -150}, 100); gain != 0 {
		t.Errorf("out of range gain = %v, want 0", gain)
	}

	front, _ := l.Spatialize(mgl32.Vec3{0, 0, -20}, 100)
	behind, _ := l.Spatialize(mgl32.Vec3{15, 0, 15}, 100)
	if behind >= front {
		t.Errorf("source behind (%v) should be quieter than in front (%v)", behind, front)
	}
}

func TestLaunchGenerator(t *testing.T) {
	rate := beep.SampleRate(44100)
	g := NewLaunchGenerator(rate, 24)
	if g.Len() != rate.N(launchDuration) {
		t.Fatalf("len = %d, want %d", g.Len(), rate.N(launchDuration))
	}

	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for {
		n, ok := g.Stream(buf)
		if !ok {
			break
		}
		for i := 0; i < n; i++ {
			if buf[i][0] < -1 || buf[i][0] > 1 {
				t.Fatalf("sample %d out of range: %f", total+i, buf[i][0])
			}
			if buf[i][0] != buf[i][1] {
				t.Fatalf("sample %d is not mono", total+i)
			}
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		total += n
	}

	if total != g.Len() {
		t.Errorf("streamed %d samples, want %d", total, g.Len())
	}
	if peak == 0 {
		t.Error("generator produced silence")
	}
	if g.Err() != nil {
		t.Errorf("err = %v", g.Err())
	}
}

func TestLaunchGeneratorPitchFollowsSpeed(t *testing.T) {
	slow := NewLaunchGenerator(sampleRate, 0)
	fast := NewLaunchGenerator(sampleRate, 1000)
	if slow.base != 300 || fast.base != 900 {
		t.Errorf("base = %v / %v, want 300 / 900", slow.base, fast.base)
	}
}

func TestPlayLaunchWithoutInit(t *testing.T) {
	globalManager = nil
	// must not panic or block
	PlayLaunch(mgl32.Vec3{}, 24)
	SetListener(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	Close()
}
