package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// OBB represents an Oriented Bounding Box
type OBB struct {
	Center   mgl32.Vec3    // World-space center
	HalfSize mgl32.Vec3    // Half-extents along local axes
	Axes     [3]mgl32.Vec3 // Local X, Y, Z axes (rotated)
}

// NewOBB builds an OBB from a transform and half extents.
func NewOBB(t Transform, halfSize mgl32.Vec3) OBB {
	return OBB{
		Center:   t.Origin,
		HalfSize: halfSize,
		Axes: [3]mgl32.Vec3{
			t.Rotation.Rotate(mgl32.Vec3{1, 0, 0}),
			t.Rotation.Rotate(mgl32.Vec3{0, 1, 0}),
			t.Rotation.Rotate(mgl32.Vec3{0, 0, 1}),
		},
	}
}

// NewAABBasOBB creates an axis-aligned OBB (no rotation)
func NewAABBasOBB(center, halfSize mgl32.Vec3) OBB {
	return NewOBB(Transform{Origin: center, Rotation: mgl32.QuatIdent()}, halfSize)
}

// projectedRadius is the half length of the OBB projected onto axis.
func (o OBB) projectedRadius(axis mgl32.Vec3) float32 {
	return o.HalfSize.X()*absf(o.Axes[0].Dot(axis)) +
		o.HalfSize.Y()*absf(o.Axes[1].Dot(axis)) +
		o.HalfSize.Z()*absf(o.Axes[2].Dot(axis))
}

// ResolveOBB runs the separating axis test and returns the minimum translation
// vector to push 'a' out of 'b'.
// ok is false when the boxes are separated.
func (a OBB) ResolveOBB(b OBB) (mgl32.Vec3, bool) {
	t := b.Center.Sub(a.Center)
	minPenetration := float32(math.MaxFloat32)
	var mtv mgl32.Vec3
	separated := false

	// 3 face normals of each box plus 9 edge cross products
	testAxis := func(axis mgl32.Vec3) {
		if separated || axis.Len() < 0.0001 {
			return
		}
		axis = axis.Normalize()

		dist := t.Dot(axis)
		penetration := a.projectedRadius(axis) + b.projectedRadius(axis) - absf(dist)
		if penetration < 0 {
			separated = true
			return
		}
		if penetration < minPenetration {
			minPenetration = penetration
			// Push in the direction away from B
			if dist < 0 {
				mtv = axis.Mul(penetration)
			} else {
				mtv = axis.Mul(-penetration)
			}
		}
	}

	for i := range 3 {
		testAxis(a.Axes[i])
	}
	for i := range 3 {
		testAxis(b.Axes[i])
	}
	for i := range 3 {
		for j := range 3 {
			testAxis(a.Axes[i].Cross(b.Axes[j]))
		}
	}

	if separated {
		return mgl32.Vec3{}, false
	}
	return mtv, true
}

// Contains reports whether p lies inside the box.
func (o OBB) Contains(p mgl32.Vec3) bool {
	local := p.Sub(o.Center)
	for i := range 3 {
		if absf(local.Dot(o.Axes[i])) > o.HalfSize[i] {
			return false
		}
	}
	return true
}

// ClosestPointOnOBB returns the closest point on or in the OBB to the given point
func ClosestPointOnOBB(o OBB, point mgl32.Vec3) mgl32.Vec3 {
	local := point.Sub(o.Center)
	result := o.Center
	for i := range 3 {
		d := clampf(local.Dot(o.Axes[i]), -o.HalfSize[i], o.HalfSize[i])
		result = result.Add(o.Axes[i].Mul(d))
	}
	return result
}
