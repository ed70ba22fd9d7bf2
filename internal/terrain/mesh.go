package terrain

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is the visual terrain: a plane of (Width-1)x(Depth-1) quads lying in XZ
// whose vertex i takes height sample i. Buffers are laid out the way GPU mesh
// uploads expect them (xyz, xyz, uv, u16 indices).
type Mesh struct {
	Vertices  []float32
	Normals   []float32
	TexCoords []float32
	Indices   []uint16

	// HalfExtents bounds every vertex with a box centred on the origin.
	HalfExtents mgl32.Vec3
}

func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Position returns vertex i.
func (m *Mesh) Position(i int) mgl32.Vec3 {
	return mgl32.Vec3{m.Vertices[i*3], m.Vertices[i*3+1], m.Vertices[i*3+2]}
}

// BuildMesh displaces a plane centred on the origin with the samples of h.
// repeatU/repeatV scale texture coordinates so a grid texture tiles across it.
func BuildMesh(d Descriptor, h *HeightSample, repeatU, repeatV float32) (*Mesh, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if h.Width != d.Width || h.Depth != d.Depth {
		return nil, fmt.Errorf("terrain: sample is %dx%d but descriptor wants %dx%d", h.Width, h.Depth, d.Width, d.Depth)
	}

	w, dep := d.Width, d.Depth
	dx, dz := d.Spacing()
	halfW, halfD := d.WidthExtents/2, d.DepthExtents/2

	m := &Mesh{
		Vertices:  make([]float32, 0, w*dep*3),
		Normals:   make([]float32, 0, w*dep*3),
		TexCoords: make([]float32, 0, w*dep*2),
		Indices:   make([]uint16, 0, (w-1)*(dep-1)*6),
	}

	for row := 0; row < dep; row++ {
		for col := 0; col < w; col++ {
			x := float32(col)*dx - halfW
			z := float32(row)*dz - halfD
			y := h.At(row, col)
			m.Vertices = append(m.Vertices, x, y, z)
			m.HalfExtents = mgl32.Vec3{
				max(m.HalfExtents.X(), absf(x)),
				max(m.HalfExtents.Y(), absf(y)),
				max(m.HalfExtents.Z(), absf(z)),
			}

			n := sampleNormal(h, row, col, dx, dz)
			m.Normals = append(m.Normals, n.X(), n.Y(), n.Z())

			u := float32(col) / float32(w-1) * repeatU
			v := float32(row) / float32(dep-1) * repeatV
			m.TexCoords = append(m.TexCoords, u, v)
		}
	}

	// Two counter-clockwise triangles per cell, facing +Y
	for row := 0; row < dep-1; row++ {
		for col := 0; col < w-1; col++ {
			a := uint16(row*w + col)
			b := uint16((row+1)*w + col)
			c := uint16((row+1)*w + col + 1)
			e := uint16(row*w + col + 1)
			m.Indices = append(m.Indices, a, b, e, b, c, e)
		}
	}

	return m, nil
}

// sampleNormal uses central differences, one-sided at the border.
func sampleNormal(h *HeightSample, row, col int, dx, dz float32) mgl32.Vec3 {
	c0, c1 := max(col-1, 0), min(col+1, h.Width-1)
	r0, r1 := max(row-1, 0), min(row+1, h.Depth-1)

	dhdx := (h.At(row, c1) - h.At(row, c0)) / (float32(c1-c0) * dx)
	dhdz := (h.At(r1, col) - h.At(r0, col)) / (float32(r1-r0) * dz)

	return mgl32.Vec3{-dhdx, 1, -dhdz}.Normalize()
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
