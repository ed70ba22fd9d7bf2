package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type RaycastHit struct {
	Body     *RigidBody
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
	Distance float32
}

// Raycast checks for intersection with all bodies and returns the closest hit
func (w *World) Raycast(origin, direction mgl32.Vec3, maxDistance float32) (RaycastHit, bool) {
	if direction.Len() == 0 {
		return RaycastHit{}, false
	}
	direction = direction.Normalize()
	var closestHit RaycastHit
	closestHit.Distance = maxDistance
	hit := false

	for _, b := range w.bodies {
		if _, ok := BodyAABB(b).RayIntersects(origin, direction, closestHit.Distance); !ok {
			continue
		}
		h, ok := raycastBody(b, origin, direction, closestHit.Distance)
		if ok && h.Distance <= closestHit.Distance {
			closestHit = h
			closestHit.Body = b
			hit = true
		}
	}

	return closestHit, hit
}

func raycastBody(b *RigidBody, origin, dir mgl32.Vec3, maxDistance float32) (RaycastHit, bool) {
	t := b.transform
	switch s := b.shape.(type) {
	case *SphereShape:
		return raycastSphere(origin, dir, t.Origin, s.Radius, maxDistance)
	case *HeightfieldTerrainShape:
		lo := t.InverseApply(origin)
		ld := t.Rotation.Conjugate().Rotate(dir)
		dist, n, ok := s.raycastLocal(lo, ld, maxDistance)
		if !ok {
			return RaycastHit{}, false
		}
		return RaycastHit{
			Point:    origin.Add(dir.Mul(dist)),
			Normal:   t.Rotation.Rotate(n),
			Distance: dist,
		}, true
	case ConvexShape:
		return raycastOBB(origin, dir, NewOBB(t, s.HalfExtents()), maxDistance)
	}
	return RaycastHit{}, false
}

// raycastOBB runs the slab test in the box's local frame.
func raycastOBB(origin, dir mgl32.Vec3, o OBB, maxDistance float32) (RaycastHit, bool) {
	rel := origin.Sub(o.Center)
	var lo, ld mgl32.Vec3
	for i := range 3 {
		lo[i] = rel.Dot(o.Axes[i])
		ld[i] = dir.Dot(o.Axes[i])
	}
	box := AABB{Min: o.HalfSize.Mul(-1), Max: o.HalfSize}
	dist, ok := box.RayIntersects(lo, ld, maxDistance)
	if !ok {
		return RaycastHit{}, false
	}

	// Normal of the face that was hit
	p := lo.Add(ld.Mul(dist))
	axis, best := 0, float32(math.MaxFloat32)
	for i := range 3 {
		if d := absf(absf(p[i]) - o.HalfSize[i]); d < best {
			axis, best = i, d
		}
	}
	normal := o.Axes[axis].Mul(signf(p[axis]))

	return RaycastHit{Point: origin.Add(dir.Mul(dist)), Normal: normal, Distance: dist}, true
}

func raycastSphere(origin, direction, center mgl32.Vec3, radius, maxDistance float32) (RaycastHit, bool) {
	oc := origin.Sub(center)
	a := direction.Dot(direction)
	b := 2.0 * oc.Dot(direction)
	c := oc.Dot(oc) - radius*radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return RaycastHit{}, false
	}

	t := (-b - float32(math.Sqrt(float64(discriminant)))) / (2 * a)
	if t < 0 {
		t = (-b + float32(math.Sqrt(float64(discriminant)))) / (2 * a)
	}
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}

	point := origin.Add(direction.Mul(t))
	normal := point.Sub(center).Normalize()

	return RaycastHit{Point: point, Normal: normal, Distance: t}, true
}
