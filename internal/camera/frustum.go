package camera

import "github.com/go-gl/mathgl/mgl32"

// Frustum represents the 6 planes of a view frustum for culling
type Frustum struct {
	planes [6]Plane // left, right, bottom, top, near, far
}

// Plane is n.p + d = 0 with n pointing into the frustum.
type Plane struct {
	Normal   mgl32.Vec3
	Distance float32
}

// ExtractFrustum extracts frustum planes from a view-projection matrix
// Uses the Gribb/Hartmann method for plane extraction
func ExtractFrustum(vp mgl32.Mat4) Frustum {
	r0, r1, r2, r3 := vp.Row(0), vp.Row(1), vp.Row(2), vp.Row(3)

	var f Frustum
	for i, p := range [6]mgl32.Vec4{
		r3.Add(r0), // left
		r3.Sub(r0), // right
		r3.Add(r1), // bottom
		r3.Sub(r1), // top
		r3.Add(r2), // near
		r3.Sub(r2), // far
	} {
		f.planes[i] = normalizePlane(Plane{Normal: p.Vec3(), Distance: p.W()})
	}
	return f
}

// Frustum of the camera's current view and projection.
func (c *Camera) Frustum() Frustum {
	return ExtractFrustum(c.Projection().Mul4(c.View()))
}

func normalizePlane(p Plane) Plane {
	length := p.Normal.Len()
	if length == 0 {
		return p
	}
	return Plane{
		Normal:   p.Normal.Mul(1 / length),
		Distance: p.Distance / length,
	}
}

// ContainsSphere tests if a sphere is inside or intersects the frustum
func (f *Frustum) ContainsSphere(center mgl32.Vec3, radius float32) bool {
	for _, p := range f.planes {
		if p.Normal.Dot(center)+p.Distance < -radius {
			return false
		}
	}
	return true
}

func (f *Frustum) ContainsPoint(point mgl32.Vec3) bool {
	for _, p := range f.planes {
		if p.Normal.Dot(point)+p.Distance < 0 {
			return false
		}
	}
	return true
}
