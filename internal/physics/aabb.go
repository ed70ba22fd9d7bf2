package physics

import "github.com/go-gl/mathgl/mgl32"

type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// NewAABBFromCenter creates an AABB from a center point and half extents.
func NewAABBFromCenter(center, half mgl32.Vec3) AABB {
	return AABB{
		Min: center.Sub(half),
		Max: center.Add(half),
	}
}

// BodyAABB bounds a body by its shape's bounding sphere, or by the rotated
// half extents for a heightfield.
func BodyAABB(b *RigidBody) AABB {
	t := b.transform
	if hf, ok := b.shape.(*HeightfieldTerrainShape); ok {
		o := NewOBB(t, hf.HalfExtents())
		var half mgl32.Vec3
		for i := range 3 {
			axis := mgl32.Vec3{}
			axis[i] = 1
			half[i] = o.projectedRadius(axis)
		}
		return NewAABBFromCenter(t.Origin, half)
	}
	r := b.shape.BoundingRadius() + b.shape.Margin()
	return NewAABBFromCenter(t.Origin, mgl32.Vec3{r, r, r})
}

func (a AABB) Intersects(b AABB) bool {
	return a.Min.X() <= b.Max.X() && a.Max.X() >= b.Min.X() &&
		a.Min.Y() <= b.Max.Y() && a.Max.Y() >= b.Min.Y() &&
		a.Min.Z() <= b.Max.Z() && a.Max.Z() >= b.Min.Z()
}

// RayIntersects performs the slab test and returns the entry distance.
func (a AABB) RayIntersects(origin, dir mgl32.Vec3, maxDistance float32) (float32, bool) {
	tmin, tmax := float32(0), maxDistance
	for i := range 3 {
		if dir[i] == 0 {
			if origin[i] < a.Min[i] || origin[i] > a.Max[i] {
				return 0, false
			}
			continue
		}
		t1 := (a.Min[i] - origin[i]) / dir[i]
		t2 := (a.Max[i] - origin[i]) / dir[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}
