package terrain

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidDescriptor is returned by Validate for dimensions GenerateHeight cannot accept.
var ErrInvalidDescriptor = errors.New("terrain: invalid descriptor")

// MaxGridVertices bounds width*depth so the visual mesh can use 16-bit indices.
const MaxGridVertices = 1 << 16

// Descriptor describes world-space size, grid resolution and height bounds of the terrain.
// The visual mesh and the collision shape are both derived from it.
type Descriptor struct {
	WidthExtents float32 `json:"widthExtents"`
	DepthExtents float32 `json:"depthExtents"`
	Width        int     `json:"width"`
	Depth        int     `json:"depth"`
	MinHeight    float32 `json:"minHeight"`
	MaxHeight    float32 `json:"maxHeight"`
}

// DefaultDescriptor returns the 100x100 world-unit, 128x128 sample terrain.
func DefaultDescriptor() Descriptor {
	return Descriptor{
		WidthExtents: 100,
		DepthExtents: 100,
		Width:        128,
		Depth:        128,
		MinHeight:    -2,
		MaxHeight:    8,
	}
}

func (d Descriptor) Validate() error {
	if d.Width < 2 || d.Depth < 2 {
		return fmt.Errorf("%w: grid %dx%d, need at least 2x2", ErrInvalidDescriptor, d.Width, d.Depth)
	}
	if d.Width*d.Depth > MaxGridVertices {
		return fmt.Errorf("%w: grid %dx%d exceeds %d samples", ErrInvalidDescriptor, d.Width, d.Depth, MaxGridVertices)
	}
	if d.WidthExtents <= 0 || d.DepthExtents <= 0 {
		return fmt.Errorf("%w: extents %.2fx%.2f must be positive", ErrInvalidDescriptor, d.WidthExtents, d.DepthExtents)
	}
	if d.MaxHeight <= d.MinHeight {
		return fmt.Errorf("%w: maxHeight %.2f must exceed minHeight %.2f", ErrInvalidDescriptor, d.MaxHeight, d.MinHeight)
	}
	return nil
}

// Spacing is the world distance between neighbouring samples along X and Z.
func (d Descriptor) Spacing() (dx, dz float32) {
	return d.WidthExtents / float32(d.Width-1), d.DepthExtents / float32(d.Depth-1)
}

// LocalScaling maps grid-unit spacing to world-space extents.
func (d Descriptor) LocalScaling() mgl32.Vec3 {
	dx, dz := d.Spacing()
	return mgl32.Vec3{dx, 1, dz}
}

// Origin is where the collision body sits: the height field's local zero plane
// is the midpoint of the height range.
func (d Descriptor) Origin() mgl32.Vec3 {
	return mgl32.Vec3{0, (d.MaxHeight + d.MinHeight) / 2, 0}
}

// SameGeometry reports whether two descriptors produce the same height sample and mesh.
func (d Descriptor) SameGeometry(o Descriptor) bool {
	return d == o
}

// TextureRepeat returns how many times a grid texture tiles across the terrain.
func (d Descriptor) TextureRepeat(gridSize float32) (u, v float32) {
	dx, dz := d.Spacing()
	return gridSize * dx, gridSize * dz
}
