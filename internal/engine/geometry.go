package engine

import (
	"github.com/go-gl/mathgl/mgl32"

	"terrainsim/internal/terrain"
)

type GeometryKind int

const (
	GeometryNone GeometryKind = iota
	GeometrySphere
	GeometryBox
	GeometryCylinder
	GeometryCone
	GeometryTerrain
)

func (k GeometryKind) String() string {
	switch k {
	case GeometrySphere:
		return "sphere"
	case GeometryBox:
		return "box"
	case GeometryCylinder:
		return "cylinder"
	case GeometryCone:
		return "cone"
	case GeometryTerrain:
		return "terrain"
	}
	return "none"
}

// Geometry describes a mesh to build, in the node's local frame, centred on
// its origin. Box uses Size (full extents); round kinds use Radius and Height.
type Geometry struct {
	Kind   GeometryKind
	Radius float32
	Height float32
	Size   mgl32.Vec3
	Mesh   *terrain.Mesh
}

func SphereGeometry(radius float32) Geometry {
	return Geometry{Kind: GeometrySphere, Radius: radius}
}

func BoxGeometry(size mgl32.Vec3) Geometry {
	return Geometry{Kind: GeometryBox, Size: size}
}

func CylinderGeometry(radius, height float32) Geometry {
	return Geometry{Kind: GeometryCylinder, Radius: radius, Height: height}
}

func ConeGeometry(radius, height float32) Geometry {
	return Geometry{Kind: GeometryCone, Radius: radius, Height: height}
}

func TerrainGeometry(mesh *terrain.Mesh) Geometry {
	return Geometry{Kind: GeometryTerrain, Mesh: mesh}
}

// HalfExtents bounds the geometry with an axis-aligned box in local space.
func (g Geometry) HalfExtents() mgl32.Vec3 {
	switch g.Kind {
	case GeometrySphere:
		return mgl32.Vec3{g.Radius, g.Radius, g.Radius}
	case GeometryBox:
		return g.Size.Mul(0.5)
	case GeometryCylinder, GeometryCone:
		return mgl32.Vec3{g.Radius, g.Height / 2, g.Radius}
	case GeometryTerrain:
		if g.Mesh == nil {
			return mgl32.Vec3{}
		}
		return g.Mesh.HalfExtents
	}
	return mgl32.Vec3{}
}
