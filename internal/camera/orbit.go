package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const maxPitch = math.Pi/2 - 0.01

// Orbit keeps the camera on a sphere around Target. Yaw and Pitch are radians.
type Orbit struct {
	Target      mgl32.Vec3
	Distance    float32
	Yaw         float32
	Pitch       float32
	MinDistance float32
	MaxDistance float32
	RotateSpeed float32 // radians per pixel
	ZoomSpeed   float32 // fraction per wheel notch
}

// NewOrbit derives the orbit from a starting position.
func NewOrbit(position, target mgl32.Vec3) *Orbit {
	offset := position.Sub(target)
	dist := offset.Len()
	o := &Orbit{
		Target:      target,
		Distance:    dist,
		MinDistance: 1,
		MaxDistance: 1000,
		RotateSpeed: 0.005,
		ZoomSpeed:   0.05,
	}
	if dist > 0 {
		o.Yaw = float32(math.Atan2(float64(offset.X()), float64(offset.Z())))
		o.Pitch = float32(math.Asin(float64(offset.Y() / dist)))
	}
	o.Pitch = clampPitch(o.Pitch)
	return o
}

// Rotate turns the view by a pointer drag of (dx, dy) pixels.
func (o *Orbit) Rotate(dx, dy float32) {
	o.Yaw -= dx * o.RotateSpeed
	o.Pitch = clampPitch(o.Pitch + dy*o.RotateSpeed)
}

// Zoom moves towards the target for positive wheel values.
func (o *Orbit) Zoom(wheel float32) {
	d := o.Distance * float32(math.Pow(float64(1-o.ZoomSpeed), float64(wheel)))
	o.Distance = max(o.MinDistance, min(o.MaxDistance, d))
}

func (o *Orbit) Position() mgl32.Vec3 {
	cp := float32(math.Cos(float64(o.Pitch)))
	offset := mgl32.Vec3{
		cp * float32(math.Sin(float64(o.Yaw))),
		float32(math.Sin(float64(o.Pitch))),
		cp * float32(math.Cos(float64(o.Yaw))),
	}
	return o.Target.Add(offset.Mul(o.Distance))
}

// Apply writes the orbit placement into c.
func (o *Orbit) Apply(c *Camera) {
	c.Position = o.Position()
	c.Target = o.Target
}

func clampPitch(p float32) float32 {
	return max(-maxPitch, min(maxPitch, p))
}
