// Package shapes pairs visual geometry with a collision shape of the same size.
package shapes

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"

	"terrainsim/internal/engine"
	"terrainsim/internal/physics"
)

// Margin is the collision margin applied to every primitive except the cone.
const Margin = 0.05

var ErrUnknownKind = errors.New("shapes: unknown kind")

type Kind int

const (
	Sphere Kind = iota
	Box
	Cylinder
	Cone
)

// Kinds lists every primitive Make can build.
var Kinds = []Kind{Sphere, Box, Cylinder, Cone}

func (k Kind) String() string {
	switch k {
	case Sphere:
		return "sphere"
	case Box:
		return "box"
	case Cylinder:
		return "cylinder"
	case Cone:
		return "cone"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Random picks a kind uniformly.
func Random(rng *rand.Rand) Kind {
	return Kinds[rng.Intn(len(Kinds))]
}

// Make draws the dimensions of kind from [1, 1+sizeFactor) ([2, 2+sizeFactor)
// for cone height) and returns a visual geometry and collision shape that agree.
// The cone keeps the default margin; the other primitives get Margin.
func Make(kind Kind, sizeFactor float32, rng *rand.Rand) (engine.Geometry, physics.Shape, error) {
	dim := func(base float32) float32 {
		return base + rng.Float32()*sizeFactor
	}

	switch kind {
	case Sphere:
		r := dim(1)
		s := physics.NewSphereShape(r)
		s.SetMargin(Margin)
		return engine.SphereGeometry(r), s, nil

	case Box:
		size := mgl32.Vec3{dim(1), dim(1), dim(1)}
		s := physics.NewBoxShape(size.Mul(0.5))
		s.SetMargin(Margin)
		return engine.BoxGeometry(size), s, nil

	case Cylinder:
		r := dim(1)
		h := dim(1)
		s := physics.NewCylinderShape(mgl32.Vec3{r, h / 2, r})
		s.SetMargin(Margin)
		return engine.CylinderGeometry(r, h), s, nil

	case Cone:
		r := dim(1)
		h := dim(2)
		return engine.ConeGeometry(r, h), physics.NewConeShape(r, h), nil
	}
	return engine.Geometry{}, nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
}

// Dimensions returns the characteristic size of a collision shape in the same
// layout engine.Geometry uses: radius, height and full box size.
func Dimensions(s physics.Shape) (radius, height float32, size mgl32.Vec3) {
	switch v := s.(type) {
	case *physics.SphereShape:
		return v.Radius, 0, mgl32.Vec3{}
	case *physics.BoxShape:
		return 0, 0, v.HalfExtents().Mul(2)
	case *physics.CylinderShape:
		return v.Radius(), v.Height(), mgl32.Vec3{}
	case *physics.ConeShape:
		return v.Radius(), v.Height(), mgl32.Vec3{}
	}
	return 0, 0, mgl32.Vec3{}
}
