package world

import (
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"terrainsim/internal/engine"
	"terrainsim/internal/terrain"
)

const (
	sphereRings  = 16
	sphereSlices = 16
	roundSlices  = 24
)

// nodeModel is a GPU model plus the local offset that centres it on the node.
type nodeModel struct {
	model  rl.Model
	offset mgl32.Mat4
}

// buildModel generates a mesh for g. Raylib builds cylinders and cones upward
// from y=0, so they are shifted down by half their height.
func buildModel(g engine.Geometry) (nodeModel, bool) {
	var mesh rl.Mesh
	offset := mgl32.Ident4()

	switch g.Kind {
	case engine.GeometrySphere:
		mesh = rl.GenMeshSphere(g.Radius, sphereRings, sphereSlices)
	case engine.GeometryBox:
		mesh = rl.GenMeshCube(g.Size.X(), g.Size.Y(), g.Size.Z())
	case engine.GeometryCylinder:
		mesh = rl.GenMeshCylinder(g.Radius, g.Height, roundSlices)
		offset = mgl32.Translate3D(0, -g.Height/2, 0)
	case engine.GeometryCone:
		mesh = rl.GenMeshCone(g.Radius, g.Height, roundSlices)
		offset = mgl32.Translate3D(0, -g.Height/2, 0)
	case engine.GeometryTerrain:
		if g.Mesh == nil || g.Mesh.VertexCount() == 0 {
			return nodeModel{}, false
		}
		mesh = uploadTerrainMesh(g.Mesh)
	default:
		return nodeModel{}, false
	}
	return nodeModel{model: rl.LoadModelFromMesh(mesh), offset: offset}, true
}

// uploadTerrainMesh copies m into raylib-owned memory so UnloadModel can free
// it, then uploads it to the GPU.
func uploadTerrainMesh(m *terrain.Mesh) rl.Mesh {
	mesh := rl.Mesh{
		VertexCount:   int32(m.VertexCount()),
		TriangleCount: int32(m.TriangleCount()),
		Vertices:      cFloats(m.Vertices),
		Normals:       cFloats(m.Normals),
		Texcoords:     cFloats(m.TexCoords),
		Indices:       cUint16s(m.Indices),
	}
	rl.UploadMesh(&mesh, false)
	return mesh
}

func cFloats(src []float32) *float32 {
	p := rl.MemAlloc(uint32(len(src) * 4))
	dst := unsafe.Slice((*float32)(p), len(src))
	copy(dst, src)
	return &dst[0]
}

func cUint16s(src []uint16) *uint16 {
	p := rl.MemAlloc(uint32(len(src) * 2))
	dst := unsafe.Slice((*uint16)(p), len(src))
	copy(dst, src)
	return &dst[0]
}
