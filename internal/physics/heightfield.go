package physics

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// HeightfieldTerrainShape is a static Y-up height grid. Its local origin is the
// centre of its bounding box, so raw heights are shifted down by the midpoint of
// [minHeight, maxHeight]; place the owning body at that midpoint to get raw heights
// back in world space. Columns run along X, rows along Z.
type HeightfieldTerrainShape struct {
	width     int
	length    int
	data      []float32
	minHeight float32
	maxHeight float32
	scaling   mgl32.Vec3
	margin    float32
}

// NewHeightfieldTerrainShape takes ownership of data, which must hold width*length
// row-major samples.
func NewHeightfieldTerrainShape(width, length int, data []float32, minHeight, maxHeight float32) (*HeightfieldTerrainShape, error) {
	if width < 2 || length < 2 {
		return nil, fmt.Errorf("physics: heightfield needs at least 2x2 samples, got %dx%d", width, length)
	}
	if len(data) != width*length {
		return nil, fmt.Errorf("physics: heightfield data has %d samples, want %d", len(data), width*length)
	}
	if maxHeight < minHeight {
		return nil, fmt.Errorf("physics: heightfield range [%v, %v] is inverted", minHeight, maxHeight)
	}
	return &HeightfieldTerrainShape{
		width:     width,
		length:    length,
		data:      data,
		minHeight: minHeight,
		maxHeight: maxHeight,
		scaling:   mgl32.Vec3{1, 1, 1},
		margin:    DefaultMargin,
	}, nil
}

func (h *HeightfieldTerrainShape) Type() ShapeType { return HeightfieldShapeType }

// Static shapes have no inertia.
func (h *HeightfieldTerrainShape) CalculateLocalInertia(mass float32) mgl32.Vec3 {
	return mgl32.Vec3{}
}

func (h *HeightfieldTerrainShape) Margin() float32 { return h.margin }

func (h *HeightfieldTerrainShape) SetMargin(margin float32) { h.margin = margin }

func (h *HeightfieldTerrainShape) LocalScaling() mgl32.Vec3 { return h.scaling }

func (h *HeightfieldTerrainShape) SetLocalScaling(s mgl32.Vec3) { h.scaling = s }

func (h *HeightfieldTerrainShape) Width() int { return h.width }

func (h *HeightfieldTerrainShape) Length() int { return h.length }

func (h *HeightfieldTerrainShape) HeightRange() (lo, hi float32) { return h.minHeight, h.maxHeight }

// Data exposes the raw samples. Callers must not modify them.
func (h *HeightfieldTerrainShape) Data() []float32 { return h.data }

func (h *HeightfieldTerrainShape) HalfExtents() mgl32.Vec3 {
	return mgl32.Vec3{
		float32(h.width-1) / 2 * h.scaling.X(),
		(h.maxHeight - h.minHeight) / 2 * h.scaling.Y(),
		float32(h.length-1) / 2 * h.scaling.Z(),
	}
}

func (h *HeightfieldTerrainShape) BoundingRadius() float32 {
	return h.HalfExtents().Len()
}

func (h *HeightfieldTerrainShape) raw(col, row int) float32 {
	return h.data[row*h.width+col]
}

// SurfaceAt returns the local surface height and normal above (x, z) in the shape
// frame, bilinearly interpolated. ok is false outside the grid.
func (h *HeightfieldTerrainShape) SurfaceAt(x, z float32) (y float32, normal mgl32.Vec3, ok bool) {
	sx, sy, sz := h.scaling.X(), h.scaling.Y(), h.scaling.Z()
	gx := x/sx + float32(h.width-1)/2
	gz := z/sz + float32(h.length-1)/2
	if gx < 0 || gz < 0 || gx > float32(h.width-1) || gz > float32(h.length-1) {
		return 0, mgl32.Vec3{}, false
	}

	c0 := min(int(gx), h.width-2)
	r0 := min(int(gz), h.length-2)
	fx := gx - float32(c0)
	fz := gz - float32(r0)

	h00 := h.raw(c0, r0)
	h10 := h.raw(c0+1, r0)
	h01 := h.raw(c0, r0+1)
	h11 := h.raw(c0+1, r0+1)

	top := h00 + (h10-h00)*fx
	bottom := h01 + (h11-h01)*fx
	raw := top + (bottom-top)*fz
	mid := (h.minHeight + h.maxHeight) / 2
	y = (raw - mid) * sy

	// Gradient of the bilinear patch, converted from grid to local units
	dhdx := ((h10 - h00) + (h11-h01-h10+h00)*fz) * sy / sx
	dhdz := ((h01 - h00) + (h11-h01-h10+h00)*fx) * sy / sz
	normal = mgl32.Vec3{-dhdx, 1, -dhdz}.Normalize()
	return y, normal, true
}

// raycastLocal marches a local-frame ray over the grid and refines the first
// crossing by bisection.
func (h *HeightfieldTerrainShape) raycastLocal(origin, dir mgl32.Vec3, maxDistance float32) (float32, mgl32.Vec3, bool) {
	step := min(h.scaling.X(), h.scaling.Z()) / 2
	if step <= 0 {
		return 0, mgl32.Vec3{}, false
	}

	above := func(t float32) (bool, bool) {
		p := origin.Add(dir.Mul(t))
		y, _, ok := h.SurfaceAt(p.X(), p.Z())
		return p.Y() >= y, ok
	}

	prev := float32(0)
	prevAbove, prevOK := above(0)
	for t := step; t <= maxDistance+step; t += step {
		t = min(t, maxDistance)
		cur, ok := above(t)
		if ok && prevOK && prevAbove && !cur {
			lo, hi := prev, t
			for range 12 {
				m := (lo + hi) / 2
				if a, _ := above(m); a {
					lo = m
				} else {
					hi = m
				}
			}
			p := origin.Add(dir.Mul(hi))
			_, n, _ := h.SurfaceAt(p.X(), p.Z())
			return hi, n, true
		}
		prev, prevAbove, prevOK = t, cur, ok
		if t >= maxDistance {
			break
		}
	}
	return 0, mgl32.Vec3{}, false
}

func signf(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}

func absf(x float32) float32 {
	return float32(math.Abs(float64(x)))
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
