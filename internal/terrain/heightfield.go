// Package terrain generates the procedural height field shared by the visual
// terrain mesh and the physics collision shape.
package terrain

import (
	"fmt"
	"math"
)

// phaseMult sets how many ripples fit between the centre and the edge.
const phaseMult = 12.0

// HeightSample is an immutable width x depth grid of elevations, stored row-major.
// Row indexes depth (Z), column indexes width (X).
type HeightSample struct {
	Width     int
	Depth     int
	MinHeight float32
	MaxHeight float32
	data      []float32
}

// GenerateHeight builds concentric sine ripples centred on the grid.
// Non-positive dimensions are a programmer error and panic.
func GenerateHeight(width, depth int, minHeight, maxHeight float32) *HeightSample {
	if width <= 0 || depth <= 0 {
		panic(fmt.Sprintf("terrain: GenerateHeight called with %dx%d grid", width, depth))
	}

	data := make([]float32, width*depth)
	hRange := float64(maxHeight) - float64(minHeight)
	w2 := float64(width) / 2
	d2 := float64(depth) / 2

	for row := 0; row < depth; row++ {
		for col := 0; col < width; col++ {
			dx := (float64(col) - w2) / w2
			dz := (float64(row) - d2) / d2
			radius := math.Sqrt(dx*dx + dz*dz)

			h := (math.Sin(radius*phaseMult)+1)*0.5*hRange + float64(minHeight)
			data[row*width+col] = clampHeight(float32(h), minHeight, maxHeight)
		}
	}

	return &HeightSample{
		Width:     width,
		Depth:     depth,
		MinHeight: minHeight,
		MaxHeight: maxHeight,
		data:      data,
	}
}

// Generate is GenerateHeight driven by a descriptor.
func Generate(d Descriptor) *HeightSample {
	return GenerateHeight(d.Width, d.Depth, d.MinHeight, d.MaxHeight)
}

// float32 rounding can push a sample a hair past the bounds
func clampHeight(h, lo, hi float32) float32 {
	if h < lo {
		return lo
	}
	if h > hi {
		return hi
	}
	return h
}

func (h *HeightSample) At(row, col int) float32 {
	return h.data[row*h.Width+col]
}

// Row returns a copy of one row of samples.
func (h *HeightSample) Row(row int) []float32 {
	out := make([]float32, h.Width)
	copy(out, h.data[row*h.Width:(row+1)*h.Width])
	return out
}

// Len is the number of samples, width*depth.
func (h *HeightSample) Len() int {
	return len(h.data)
}

// Float32s returns a fresh row-major copy of the samples, the layout height-field
// collision shapes consume.
func (h *HeightSample) Float32s() []float32 {
	out := make([]float32, len(h.data))
	copy(out, h.data)
	return out
}

// Range returns the smallest and largest sample actually generated.
func (h *HeightSample) Range() (lo, hi float32) {
	lo, hi = h.data[0], h.data[0]
	for _, v := range h.data[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
