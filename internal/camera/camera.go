// Package camera holds view state and turns pointer positions into world rays.
package camera

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var ErrDegenerateRay = errors.New("camera: pointer does not unproject to a ray")

// Ray is a half line with a unit direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Camera is a perspective camera. Fovy is the vertical field of view in degrees.
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
	Fovy     float32
	Aspect   float32
	Near     float32
	Far      float32
}

func New(position, target mgl32.Vec3) *Camera {
	return &Camera{
		Position: position,
		Target:   target,
		Up:       mgl32.Vec3{0, 1, 0},
		Fovy:     60,
		Aspect:   1,
		Near:     0.1,
		Far:      2000,
	}
}

// SetViewport updates the aspect ratio after a resize.
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.Fovy), c.Aspect, c.Near, c.Far)
}

// Forward is the unit view direction.
func (c *Camera) Forward() mgl32.Vec3 {
	d := c.Target.Sub(c.Position)
	if d.Len() == 0 {
		return mgl32.Vec3{0, 0, -1}
	}
	return d.Normalize()
}

// Unproject maps a pointer in normalized device coordinates (x right, y up,
// both in [-1, 1]) to a ray starting at the camera position.
func (c *Camera) Unproject(ndc mgl32.Vec2) (Ray, error) {
	vp := c.Projection().Mul4(c.View())
	if det := vp.Det(); det == 0 || !finite(det) {
		return Ray{}, ErrDegenerateRay
	}
	p := vp.Inv().Mul4x1(mgl32.Vec4{ndc.X(), ndc.Y(), 0.5, 1})
	if p.W() == 0 {
		return Ray{}, ErrDegenerateRay
	}
	dir := p.Vec3().Mul(1 / p.W()).Sub(c.Position)
	l := dir.Len()
	if l < 1e-9 || !finite(l) {
		return Ray{}, ErrDegenerateRay
	}
	return Ray{Origin: c.Position, Direction: dir.Normalize()}, nil
}

func finite(v float32) bool {
	return !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0)
}

// PointerNDC converts a pixel position in a width x height viewport to
// normalized device coordinates.
func PointerNDC(x, y float32, width, height int) mgl32.Vec2 {
	if width <= 0 || height <= 0 {
		return mgl32.Vec2{}
	}
	return mgl32.Vec2{
		x/float32(width)*2 - 1,
		-(y/float32(height)*2 - 1),
	}
}
