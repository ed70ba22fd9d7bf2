package terrain

import (
	"math"
	"testing"
)

func TestGenerateHeightDeterministic(t *testing.T) {
	a := GenerateHeight(64, 48, -2, 8)
	b := GenerateHeight(64, 48, -2, 8)

	if a.Len() != 64*48 {
		t.Fatalf("Expected %d samples, got %d", 64*48, a.Len())
	}
	for i, v := range a.Float32s() {
		if math.Float32bits(v) != math.Float32bits(b.data[i]) {
			t.Fatalf("Sample %d differs between runs: %v vs %v", i, v, b.data[i])
		}
	}
}

func TestGenerateHeightBounds(t *testing.T) {
	cases := []struct {
		width, depth int
		lo, hi       float32
	}{
		{128, 128, -2, 8},
		{3, 7, 0, 1},
		{33, 17, -50, -10},
		{2, 2, 1.5, 1.75},
	}

	for _, c := range cases {
		h := GenerateHeight(c.width, c.depth, c.lo, c.hi)
		for row := 0; row < c.depth; row++ {
			for col := 0; col < c.width; col++ {
				v := h.At(row, col)
				if v < c.lo || v > c.hi {
					t.Errorf("%dx%d [%v,%v]: sample (%d,%d) = %v out of bounds", c.width, c.depth, c.lo, c.hi, row, col, v)
				}
			}
		}
	}
}

func TestGenerateHeightFixture(t *testing.T) {
	h := GenerateHeight(4, 4, -2, 8)

	// (2,2) is the grid centre: radius 0, sin(0) = 0
	if got := h.At(2, 2); math.Abs(float64(got)-3) > 1e-6 {
		t.Errorf("Centre sample: expected 3, got %v", got)
	}

	r := math.Sqrt(2)
	want := (math.Sin(r*12)+1)*0.5*10 - 2
	got := h.At(0, 0)
	if float32(want) != got {
		t.Errorf("Corner sample: expected %v, got %v", float32(want), got)
	}
	if math.Abs(float64(got)-(-1.765)) > 0.01 {
		t.Errorf("Corner sample: expected about -1.765, got %v", got)
	}
}

func TestGenerateHeightRowMajor(t *testing.T) {
	h := GenerateHeight(5, 3, 0, 10)
	flat := h.Float32s()

	for row := 0; row < 3; row++ {
		r := h.Row(row)
		for col := 0; col < 5; col++ {
			if flat[row*5+col] != r[col] {
				t.Errorf("Row-major mismatch at (%d,%d)", row, col)
			}
		}
	}

	// Copies must not alias the sample
	flat[0] = 999
	if h.At(0, 0) == 999 {
		t.Error("Float32s should return a copy")
	}
}

func TestGenerateHeightPanicsOnBadGrid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for zero-width grid")
		}
	}()
	GenerateHeight(0, 4, 0, 1)
}

func TestDescriptorValidate(t *testing.T) {
	good := DefaultDescriptor()
	if err := good.Validate(); err != nil {
		t.Fatalf("Default descriptor should validate: %v", err)
	}

	bad := []Descriptor{
		{WidthExtents: 10, DepthExtents: 10, Width: 1, Depth: 4, MinHeight: 0, MaxHeight: 1},
		{WidthExtents: 0, DepthExtents: 10, Width: 4, Depth: 4, MinHeight: 0, MaxHeight: 1},
		{WidthExtents: 10, DepthExtents: 10, Width: 4, Depth: 4, MinHeight: 2, MaxHeight: 1},
		{WidthExtents: 10, DepthExtents: 10, Width: 512, Depth: 512, MinHeight: 0, MaxHeight: 1},
	}
	for i, d := range bad {
		if err := d.Validate(); err == nil {
			t.Errorf("Case %d: expected validation error for %+v", i, d)
		}
	}
}

func TestDescriptorScalingAndOrigin(t *testing.T) {
	d := DefaultDescriptor()

	s := d.LocalScaling()
	if math.Abs(float64(s.X())-100.0/127.0) > 1e-6 || s.Y() != 1 || math.Abs(float64(s.Z())-100.0/127.0) > 1e-6 {
		t.Errorf("Unexpected local scaling %v", s)
	}

	o := d.Origin()
	if o.X() != 0 || o.Y() != 3 || o.Z() != 0 {
		t.Errorf("Expected origin (0,3,0), got %v", o)
	}

	u, v := d.TextureRepeat(2)
	if math.Abs(float64(u)-2*100.0/127.0) > 1e-6 || math.Abs(float64(v)-2*100.0/127.0) > 1e-6 {
		t.Errorf("Unexpected texture repeat (%v, %v)", u, v)
	}
}
