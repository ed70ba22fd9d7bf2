package engine

import (
	"slices"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
)

var nextUID atomic.Uint64

type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

// GameObject is a visual node. It never takes part in simulation; physics state
// is mirrored onto it by UID.
type GameObject struct {
	UID       uint64
	Name      string
	Tags      []string
	Transform Transform
	Geometry  Geometry
	Material  *Material
	Active    bool
	Scene     *Scene
}

func NewGameObject(name string) *GameObject {
	return &GameObject{
		UID:    nextUID.Add(1),
		Name:   name,
		Active: true,
		Transform: Transform{
			Rotation: mgl32.QuatIdent(),
			Scale:    mgl32.Vec3{1, 1, 1},
		},
	}
}

func (g *GameObject) HasTag(tag string) bool {
	return slices.Contains(g.Tags, tag)
}

// Matrix composes translation, rotation and scale.
func (g *GameObject) Matrix() mgl32.Mat4 {
	p, s := g.Transform.Position, g.Transform.Scale
	return mgl32.Translate3D(p.X(), p.Y(), p.Z()).
		Mul4(g.Transform.Rotation.Mat4()).
		Mul4(mgl32.Scale3D(s.X(), s.Y(), s.Z()))
}
