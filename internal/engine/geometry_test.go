package engine

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"terrainsim/internal/terrain"
)

func TestGeometryHalfExtents(t *testing.T) {
	cases := []struct {
		name string
		geom Geometry
		want mgl32.Vec3
	}{
		{"sphere", SphereGeometry(2), mgl32.Vec3{2, 2, 2}},
		{"box", BoxGeometry(mgl32.Vec3{2, 4, 6}), mgl32.Vec3{1, 2, 3}},
		{"cylinder", CylinderGeometry(1, 3), mgl32.Vec3{1, 1.5, 1}},
		{"cone", ConeGeometry(2, 4), mgl32.Vec3{2, 2, 2}},
		{"terrain without mesh", TerrainGeometry(nil), mgl32.Vec3{}},
		{"none", Geometry{}, mgl32.Vec3{}},
	}
	for _, tc := range cases {
		if got := tc.geom.HalfExtents(); got != tc.want {
			t.Errorf("%s: HalfExtents = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestTerrainHalfExtentsComeFromMesh(t *testing.T) {
	d := terrain.Descriptor{WidthExtents: 40, DepthExtents: 20, Width: 8, Depth: 8, MinHeight: -2, MaxHeight: 8}
	mesh, err := terrain.BuildMesh(d, terrain.Generate(d), 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got := TerrainGeometry(mesh).HalfExtents(); got != mesh.HalfExtents {
		t.Errorf("HalfExtents = %v, want the mesh bounds %v", got, mesh.HalfExtents)
	}

	// The bounds are read from the mesh, not recomputed from its vertices.
	mesh.HalfExtents = mgl32.Vec3{1, 2, 3}
	if got := TerrainGeometry(mesh).HalfExtents(); got != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("HalfExtents = %v, want the stored bounds", got)
	}
}
