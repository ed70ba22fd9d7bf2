package physics

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Solver tuning
const (
	correctionPercent   = 0.8  // share of penetration removed per substep
	penetrationSlop     = 0.01 // penetration tolerated without correction
	restitutionVelocity = 1.0  // closing speed below which contacts don't bounce
	wakeVelocity        = SleepLinearThreshold * 2
)

// contact is a single manifold point. Normal points from B towards A.
type contact struct {
	a, b   *RigidBody
	normal mgl32.Vec3
	point  mgl32.Vec3
	depth  float32
	points int // size of the manifold this point belongs to
}

// appendContacts runs the narrow phase for a pair. Normals push a out of b.
func appendContacts(dst []contact, a, b *RigidBody) []contact {
	_, aHF := a.shape.(*HeightfieldTerrainShape)
	hf, bHF := b.shape.(*HeightfieldTerrainShape)
	switch {
	case aHF && bHF:
		return dst
	case aHF:
		start := len(dst)
		dst = appendContacts(dst, b, a)
		for i := start; i < len(dst); i++ {
			dst[i].a, dst[i].b = a, b
			dst[i].normal = dst[i].normal.Mul(-1)
		}
		return dst
	case bHF:
		ca, ok := a.shape.(ConvexShape)
		if !ok {
			return dst
		}
		return convexVsHeightfield(dst, a, ca, b, hf)
	}
	if c, ok := collideConvex(a, b); ok {
		dst = append(dst, c)
	}
	return dst
}

func collideConvex(a, b *RigidBody) (contact, bool) {
	ca, okA := a.shape.(ConvexShape)
	cb, okB := b.shape.(ConvexShape)
	if !okA || !okB {
		return contact{}, false
	}

	sa, aSphere := ca.(*SphereShape)
	sb, bSphere := cb.(*SphereShape)
	switch {
	case aSphere && bSphere:
		return sphereVsSphere(a, sa, b, sb)
	case aSphere:
		return sphereVsConvex(a, sa, b, cb)
	case bSphere:
		c, hit := sphereVsConvex(b, sb, a, ca)
		if hit {
			c.a, c.b = a, b
			c.normal = c.normal.Mul(-1)
		}
		return c, hit
	}
	return convexVsConvex(a, ca, b, cb)
}

func sphereVsSphere(a *RigidBody, sa *SphereShape, b *RigidBody, sb *SphereShape) (contact, bool) {
	diff := a.transform.Origin.Sub(b.transform.Origin)
	dist := diff.Len()
	minDist := sa.Radius + sb.Radius
	if dist >= minDist {
		return contact{}, false
	}

	normal := mgl32.Vec3{0, 1, 0}
	if dist > 0.0001 {
		normal = diff.Mul(1 / dist)
	}
	return contact{
		a:      a,
		b:      b,
		normal: normal,
		point:  b.transform.Origin.Add(normal.Mul(sb.Radius)),
		depth:  minDist - dist,
	}, true
}

// sphereVsConvex treats the convex shape as its oriented bounding box.
func sphereVsConvex(a *RigidBody, sa *SphereShape, b *RigidBody, cb ConvexShape) (contact, bool) {
	obb := NewOBB(b.transform, cb.HalfExtents())
	center := a.transform.Origin

	if obb.Contains(center) {
		// Deep penetration: fall back to box-vs-box separation
		mtv, ok := NewAABBasOBB(center, sa.HalfExtents()).ResolveOBB(obb)
		if !ok {
			return contact{}, false
		}
		depth := mtv.Len()
		if depth < 0.0001 {
			return contact{}, false
		}
		return contact{a: a, b: b, normal: mtv.Mul(1 / depth), point: center, depth: depth}, true
	}

	closest := ClosestPointOnOBB(obb, center)
	diff := center.Sub(closest)
	dist := diff.Len()
	if dist >= sa.Radius || dist < 0.0001 {
		return contact{}, false
	}
	return contact{
		a:      a,
		b:      b,
		normal: diff.Mul(1 / dist),
		point:  closest,
		depth:  sa.Radius - dist,
	}, true
}

func convexVsConvex(a *RigidBody, ca ConvexShape, b *RigidBody, cb ConvexShape) (contact, bool) {
	obbA := NewOBB(a.transform, ca.HalfExtents())
	obbB := NewOBB(b.transform, cb.HalfExtents())

	pushOut, ok := obbA.ResolveOBB(obbB)
	if !ok {
		return contact{}, false
	}
	depth := pushOut.Len()
	if depth < 0.0001 {
		return contact{}, false
	}
	normal := pushOut.Mul(1 / depth)

	// Deepest point of A against B's surface
	local := a.transform.Rotation.Conjugate().Rotate(normal.Mul(-1))
	point := a.transform.Apply(ca.Support(local))
	return contact{a: a, b: b, normal: normal, point: point, depth: depth}, true
}

// convexVsHeightfield tests the hull points of the convex body (or its support
// point opposite the terrain normal, for round shapes) against the surface.
func convexVsHeightfield(dst []contact, a *RigidBody, ca ConvexShape, b *RigidBody, hf *HeightfieldTerrainShape) []contact {
	ht := b.transform
	center := ht.InverseApply(a.transform.Origin)

	_, n, ok := hf.SurfaceAt(center.X(), center.Z())
	if !ok {
		return dst
	}

	rel := ht.Rotation.Conjugate().Mul(a.transform.Rotation)
	var local []mgl32.Vec3
	if hs, ok := ca.(hullShape); ok {
		local = hs.hullPoints()
	} else {
		local = []mgl32.Vec3{ca.Support(rel.Conjugate().Rotate(n.Mul(-1)))}
	}

	start := len(dst)
	for _, p := range local {
		q := center.Add(rel.Rotate(p))
		y, ns, ok := hf.SurfaceAt(q.X(), q.Z())
		if !ok {
			// Point hangs over the edge; use the surface under the centre
			y, ns, _ = hf.SurfaceAt(center.X(), center.Z())
		}
		depth := (y - q.Y()) * ns.Y()
		if depth <= 0 {
			continue
		}
		dst = append(dst, contact{
			a:      a,
			b:      b,
			normal: ht.Rotation.Rotate(ns),
			point:  ht.Apply(q),
			depth:  depth,
		})
	}
	for i := start; i < len(dst); i++ {
		dst[i].points = len(dst) - start
	}
	return dst
}

// effectiveMass returns the inverse of the impulse denominator along dir.
func effectiveMass(c *contact, ra, rb, dir mgl32.Vec3) float32 {
	k := c.a.invMass + c.b.invMass
	k += dir.Dot(c.a.invInertiaW.Mul3x1(ra.Cross(dir)).Cross(ra))
	k += dir.Dot(c.b.invInertiaW.Mul3x1(rb.Cross(dir)).Cross(rb))
	return k
}

// resolveVelocity applies a normal impulse with restitution, then Coulomb friction.
func resolveVelocity(c *contact) {
	ra := c.point.Sub(c.a.transform.Origin)
	rb := c.point.Sub(c.b.transform.Origin)

	rel := c.a.velocityAt(ra).Sub(c.b.velocityAt(rb))
	vn := rel.Dot(c.normal)
	if vn > 0 {
		return
	}

	k := effectiveMass(c, ra, rb, c.normal)
	if k <= 0 {
		return
	}

	e := c.a.restitution * c.b.restitution
	if -vn < restitutionVelocity {
		e = 0
	}
	j := -(1 + e) * vn / k
	impulse := c.normal.Mul(j)
	c.a.applyImpulse(impulse, ra)
	c.b.applyImpulse(impulse.Mul(-1), rb)

	// Friction along the remaining tangential velocity
	rel = c.a.velocityAt(ra).Sub(c.b.velocityAt(rb))
	tangent := rel.Sub(c.normal.Mul(rel.Dot(c.normal)))
	if tangent.Len() < 0.0001 {
		return
	}
	tangent = tangent.Normalize()
	kt := effectiveMass(c, ra, rb, tangent)
	if kt <= 0 {
		return
	}
	mu := c.a.friction * c.b.friction
	jt := clampf(-rel.Dot(tangent)/kt, -mu*j, mu*j)
	fImpulse := tangent.Mul(jt)
	c.a.applyImpulse(fImpulse, ra)
	c.b.applyImpulse(fImpulse.Mul(-1), rb)
}

// correctPosition splits the remaining penetration by inverse mass.
func correctPosition(c *contact) {
	total := c.a.invMass + c.b.invMass
	if total == 0 {
		return
	}
	amount := max(c.depth-penetrationSlop, 0) / total * correctionPercent
	if c.points > 1 {
		amount /= float32(c.points)
	}
	if amount == 0 {
		return
	}
	correction := c.normal.Mul(amount)
	if c.a.invMass > 0 {
		c.a.transform.Origin = c.a.transform.Origin.Add(correction.Mul(c.a.invMass))
	}
	if c.b.invMass > 0 {
		c.b.transform.Origin = c.b.transform.Origin.Sub(correction.Mul(c.b.invMass))
	}
}

// wakeOnImpact wakes a sleeping dynamic body hit by a fast-moving one.
func wakeOnImpact(c *contact) {
	rel := c.a.linearVel.Sub(c.b.linearVel)
	if rel.Len() <= wakeVelocity {
		return
	}
	if c.a.state == IslandSleeping {
		c.a.Activate()
	}
	if c.b.state == IslandSleeping {
		c.b.Activate()
	}
}
