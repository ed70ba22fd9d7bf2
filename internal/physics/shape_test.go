package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func vecNear(a, b mgl32.Vec3, eps float32) bool {
	return a.ApproxEqualThreshold(b, eps)
}

func TestSphereInertia(t *testing.T) {
	s := NewSphereShape(1)
	got := s.CalculateLocalInertia(5)
	if !vecNear(got, mgl32.Vec3{2, 2, 2}, 1e-5) {
		t.Errorf("sphere inertia = %v, want (2, 2, 2)", got)
	}
}

func TestBoxInertia(t *testing.T) {
	b := NewBoxShape(mgl32.Vec3{1, 2, 3})
	got := b.CalculateLocalInertia(12)
	// Full extents 2, 4, 6
	want := mgl32.Vec3{16 + 36, 4 + 36, 4 + 16}
	if !vecNear(got, want, 1e-4) {
		t.Errorf("box inertia = %v, want %v", got, want)
	}
}

func TestCylinderInertia(t *testing.T) {
	c := NewCylinderShape(mgl32.Vec3{2, 1.5, 2})
	got := c.CalculateLocalInertia(12)
	// r=2, h=3: side = m(h²/12 + r²/4) = 12*(0.75+1), axis = m r²/2 = 24
	want := mgl32.Vec3{21, 24, 21}
	if !vecNear(got, want, 1e-4) {
		t.Errorf("cylinder inertia = %v, want %v", got, want)
	}
	if c.Height() != 3 || c.Radius() != 2 {
		t.Errorf("cylinder dims = (%v, %v), want (2, 3)", c.Radius(), c.Height())
	}
}

func TestConeInertiaUsesBoundingBox(t *testing.T) {
	c := NewConeShape(1, 3)
	got := c.CalculateLocalInertia(12)
	want := NewBoxShape(mgl32.Vec3{1, 1.5, 1}).CalculateLocalInertia(12)
	if !vecNear(got, want, 1e-5) {
		t.Errorf("cone inertia = %v, want %v", got, want)
	}
}

func TestDefaultMargin(t *testing.T) {
	shapes := []Shape{
		NewSphereShape(1),
		NewBoxShape(mgl32.Vec3{1, 1, 1}),
		NewCylinderShape(mgl32.Vec3{1, 1, 1}),
		NewConeShape(1, 2),
	}
	for _, s := range shapes {
		if s.Margin() != DefaultMargin {
			t.Errorf("%v margin = %v, want %v", s.Type(), s.Margin(), DefaultMargin)
		}
		s.SetMargin(0.05)
		if s.Margin() != 0.05 {
			t.Errorf("%v margin after SetMargin = %v", s.Type(), s.Margin())
		}
	}
}

func TestConeSupport(t *testing.T) {
	c := NewConeShape(1, 2)
	if got := c.Support(mgl32.Vec3{0, 1, 0}); !vecNear(got, mgl32.Vec3{0, 1, 0}, 1e-6) {
		t.Errorf("support up = %v, want apex (0, 1, 0)", got)
	}
	if got := c.Support(mgl32.Vec3{1, -1, 0}); !vecNear(got, mgl32.Vec3{1, -1, 0}, 1e-6) {
		t.Errorf("support down-right = %v, want rim (1, -1, 0)", got)
	}
}

func TestCylinderSupport(t *testing.T) {
	c := NewCylinderShape(mgl32.Vec3{2, 1, 2})
	got := c.Support(mgl32.Vec3{0, -1, 3})
	if !vecNear(got, mgl32.Vec3{0, -1, 2}, 1e-6) {
		t.Errorf("support = %v, want (0, -1, 2)", got)
	}
}

func TestHeightfieldValidation(t *testing.T) {
	if _, err := NewHeightfieldTerrainShape(3, 3, make([]float32, 8), 0, 1); err == nil {
		t.Error("expected error for short data")
	}
	if _, err := NewHeightfieldTerrainShape(1, 3, make([]float32, 3), 0, 1); err == nil {
		t.Error("expected error for single-column grid")
	}
	if _, err := NewHeightfieldTerrainShape(2, 2, make([]float32, 4), 1, 0); err == nil {
		t.Error("expected error for inverted range")
	}
}

func TestHeightfieldSurfaceAt(t *testing.T) {
	// Ramp rising along X from 0 to 1
	hf, err := NewHeightfieldTerrainShape(2, 2, []float32{0, 1, 0, 1}, 0, 1)
	if err != nil {
		t.Fatal(err)
	}

	y, n, ok := hf.SurfaceAt(0, 0)
	if !ok {
		t.Fatal("centre should be on the grid")
	}
	// Raw 0.5 minus the midpoint 0.5
	if absf(y) > 1e-6 {
		t.Errorf("centre height = %v, want 0", y)
	}
	want := mgl32.Vec3{-1, 1, 0}.Normalize()
	if !vecNear(n, want, 1e-5) {
		t.Errorf("normal = %v, want %v", n, want)
	}

	y, _, _ = hf.SurfaceAt(0.5, 0.5)
	if absf(y-0.5) > 1e-6 {
		t.Errorf("corner height = %v, want 0.5", y)
	}

	if _, _, ok := hf.SurfaceAt(0.6, 0); ok {
		t.Error("point outside the grid should not report a surface")
	}
}

func TestHeightfieldScaling(t *testing.T) {
	hf, _ := NewHeightfieldTerrainShape(3, 3, make([]float32, 9), -1, 1)
	hf.SetLocalScaling(mgl32.Vec3{10, 1, 10})

	if _, _, ok := hf.SurfaceAt(9.9, -9.9); !ok {
		t.Error("scaled grid should cover (9.9, -9.9)")
	}
	if _, _, ok := hf.SurfaceAt(10.1, 0); ok {
		t.Error("scaled grid should end at x=10")
	}
	if got := hf.HalfExtents(); !vecNear(got, mgl32.Vec3{10, 1, 10}, 1e-6) {
		t.Errorf("half extents = %v, want (10, 1, 10)", got)
	}
}
