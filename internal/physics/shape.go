package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultMargin is the collision margin a shape starts with until SetMargin is called.
const DefaultMargin = 0.04

type ShapeType int

const (
	SphereShapeType ShapeType = iota
	BoxShapeType
	CylinderShapeType
	ConeShapeType
	HeightfieldShapeType
)

func (t ShapeType) String() string {
	switch t {
	case SphereShapeType:
		return "sphere"
	case BoxShapeType:
		return "box"
	case CylinderShapeType:
		return "cylinder"
	case ConeShapeType:
		return "cone"
	case HeightfieldShapeType:
		return "heightfield"
	}
	return "unknown"
}

// Shape is a collision shape. A shape may be shared by several bodies.
type Shape interface {
	Type() ShapeType
	// CalculateLocalInertia returns the diagonal of the inertia tensor in the shape frame.
	CalculateLocalInertia(mass float32) mgl32.Vec3
	Margin() float32
	SetMargin(margin float32)
	// BoundingRadius is the radius of a sphere centred on the shape origin enclosing it.
	BoundingRadius() float32
}

// ConvexShape is a closed convex primitive centred on its origin.
type ConvexShape interface {
	Shape
	HalfExtents() mgl32.Vec3
	// Support returns the furthest point of the shape along dir, in the shape frame.
	Support(dir mgl32.Vec3) mgl32.Vec3
}

// hullPoints are sampled for terrain contact by shapes with flat faces or rims.
type hullShape interface {
	hullPoints() []mgl32.Vec3
}

// rimSegments is the number of points sampled around a circular rim.
const rimSegments = 12

func rim(radius, y float32) []mgl32.Vec3 {
	pts := make([]mgl32.Vec3, rimSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / rimSegments
		pts[i] = mgl32.Vec3{radius * float32(math.Cos(a)), y, radius * float32(math.Sin(a))}
	}
	return pts
}

type convexBase struct {
	margin float32
}

func (c *convexBase) Margin() float32 {
	return c.margin
}

func (c *convexBase) SetMargin(margin float32) {
	c.margin = margin
}

// boxInertia is the solid-box tensor for full extents lx, ly, lz.
func boxInertia(mass float32, l mgl32.Vec3) mgl32.Vec3 {
	lx2, ly2, lz2 := l.X()*l.X(), l.Y()*l.Y(), l.Z()*l.Z()
	k := mass / 12
	return mgl32.Vec3{k * (ly2 + lz2), k * (lx2 + lz2), k * (lx2 + ly2)}
}

type SphereShape struct {
	convexBase
	Radius float32
}

func NewSphereShape(radius float32) *SphereShape {
	return &SphereShape{convexBase: convexBase{margin: DefaultMargin}, Radius: radius}
}

func (s *SphereShape) Type() ShapeType { return SphereShapeType }

func (s *SphereShape) CalculateLocalInertia(mass float32) mgl32.Vec3 {
	i := 0.4 * mass * s.Radius * s.Radius
	return mgl32.Vec3{i, i, i}
}

func (s *SphereShape) BoundingRadius() float32 { return s.Radius }

func (s *SphereShape) HalfExtents() mgl32.Vec3 {
	return mgl32.Vec3{s.Radius, s.Radius, s.Radius}
}

func (s *SphereShape) Support(dir mgl32.Vec3) mgl32.Vec3 {
	if dir.Len() < 1e-6 {
		return mgl32.Vec3{s.Radius, 0, 0}
	}
	return dir.Normalize().Mul(s.Radius)
}

// BoxShape is described by its half extents.
type BoxShape struct {
	convexBase
	halfExtents mgl32.Vec3
}

func NewBoxShape(halfExtents mgl32.Vec3) *BoxShape {
	return &BoxShape{convexBase: convexBase{margin: DefaultMargin}, halfExtents: halfExtents}
}

func (b *BoxShape) Type() ShapeType { return BoxShapeType }

func (b *BoxShape) CalculateLocalInertia(mass float32) mgl32.Vec3 {
	return boxInertia(mass, b.halfExtents.Mul(2))
}

func (b *BoxShape) BoundingRadius() float32 { return b.halfExtents.Len() }

func (b *BoxShape) HalfExtents() mgl32.Vec3 { return b.halfExtents }

func (b *BoxShape) hullPoints() []mgl32.Vec3 {
	h := b.halfExtents
	pts := make([]mgl32.Vec3, 0, 8)
	for _, x := range []float32{-1, 1} {
		for _, y := range []float32{-1, 1} {
			for _, z := range []float32{-1, 1} {
				pts = append(pts, mgl32.Vec3{x * h.X(), y * h.Y(), z * h.Z()})
			}
		}
	}
	return pts
}

func (b *BoxShape) Support(dir mgl32.Vec3) mgl32.Vec3 {
	h := b.halfExtents
	return mgl32.Vec3{signf(dir.X()) * h.X(), signf(dir.Y()) * h.Y(), signf(dir.Z()) * h.Z()}
}

// CylinderShape is aligned with the Y axis. Half extents are (radius, halfHeight, radius).
type CylinderShape struct {
	convexBase
	halfExtents mgl32.Vec3
}

func NewCylinderShape(halfExtents mgl32.Vec3) *CylinderShape {
	return &CylinderShape{convexBase: convexBase{margin: DefaultMargin}, halfExtents: halfExtents}
}

func (c *CylinderShape) Type() ShapeType { return CylinderShapeType }

func (c *CylinderShape) Radius() float32 { return c.halfExtents.X() }

func (c *CylinderShape) Height() float32 { return c.halfExtents.Y() * 2 }

func (c *CylinderShape) CalculateLocalInertia(mass float32) mgl32.Vec3 {
	r2 := c.Radius() * c.Radius()
	h2 := c.Height() * c.Height()
	side := mass * (h2/12 + r2/4)
	return mgl32.Vec3{side, mass * r2 / 2, side}
}

func (c *CylinderShape) BoundingRadius() float32 {
	return float32(math.Hypot(float64(c.Radius()), float64(c.halfExtents.Y())))
}

func (c *CylinderShape) HalfExtents() mgl32.Vec3 { return c.halfExtents }

func (c *CylinderShape) hullPoints() []mgl32.Vec3 {
	return append(rim(c.Radius(), c.halfExtents.Y()), rim(c.Radius(), -c.halfExtents.Y())...)
}

func (c *CylinderShape) Support(dir mgl32.Vec3) mgl32.Vec3 {
	p := radialSupport(dir, c.Radius())
	p[1] = signf(dir.Y()) * c.halfExtents.Y()
	return p
}

// ConeShape is aligned with the Y axis, centred at half height, apex up.
type ConeShape struct {
	convexBase
	radius   float32
	height   float32
	sinAngle float32
}

func NewConeShape(radius, height float32) *ConeShape {
	return &ConeShape{
		convexBase: convexBase{margin: DefaultMargin},
		radius:     radius,
		height:     height,
		sinAngle:   radius / float32(math.Hypot(float64(radius), float64(height))),
	}
}

func (c *ConeShape) Type() ShapeType { return ConeShapeType }

func (c *ConeShape) Radius() float32 { return c.radius }

func (c *ConeShape) Height() float32 { return c.height }

// CalculateLocalInertia approximates the cone by its bounding box.
func (c *ConeShape) CalculateLocalInertia(mass float32) mgl32.Vec3 {
	return boxInertia(mass, mgl32.Vec3{2 * c.radius, c.height, 2 * c.radius})
}

func (c *ConeShape) BoundingRadius() float32 {
	return float32(math.Hypot(float64(c.radius), float64(c.height/2)))
}

func (c *ConeShape) HalfExtents() mgl32.Vec3 {
	return mgl32.Vec3{c.radius, c.height / 2, c.radius}
}

func (c *ConeShape) hullPoints() []mgl32.Vec3 {
	return append(rim(c.radius, -c.height/2), mgl32.Vec3{0, c.height / 2, 0})
}

func (c *ConeShape) Support(dir mgl32.Vec3) mgl32.Vec3 {
	half := c.height / 2
	if dir.Y() > dir.Len()*c.sinAngle {
		return mgl32.Vec3{0, half, 0}
	}
	p := radialSupport(dir, c.radius)
	p[1] = -half
	return p
}

// radialSupport projects dir onto XZ and scales it to radius.
func radialSupport(dir mgl32.Vec3, radius float32) mgl32.Vec3 {
	s := float32(math.Hypot(float64(dir.X()), float64(dir.Z())))
	if s < 1e-6 {
		return mgl32.Vec3{}
	}
	return mgl32.Vec3{radius * dir.X() / s, 0, radius * dir.Z() / s}
}
