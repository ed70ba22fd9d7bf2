package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestFrustumContains(t *testing.T) {
	c := New(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1})
	c.SetViewport(800, 800)
	f := c.Frustum()

	cases := []struct {
		name   string
		center mgl32.Vec3
		radius float32
		want   bool
	}{
		{"ahead", mgl32.Vec3{0, 0, -10}, 0, true},
		{"behind", mgl32.Vec3{0, 0, 10}, 1, false},
		{"beyond far", mgl32.Vec3{0, 0, -2500}, 1, false},
		{"inside near", mgl32.Vec3{0, 0, -0.05}, 0, false},
		{"far left", mgl32.Vec3{-100, 0, -10}, 1, false},
		{"straddles left edge", mgl32.Vec3{-6.5, 0, -10}, 2, true},
		{"above", mgl32.Vec3{0, 100, -10}, 1, false},
	}
	for _, tc := range cases {
		if got := f.ContainsSphere(tc.center, tc.radius); got != tc.want {
			t.Errorf("%s: ContainsSphere = %v, want %v", tc.name, got, tc.want)
		}
	}

	if !f.ContainsPoint(mgl32.Vec3{1, 1, -20}) {
		t.Error("point ahead should be inside")
	}
	if f.ContainsPoint(mgl32.Vec3{0, 0, 5}) {
		t.Error("point behind should be outside")
	}
}

func TestFrustumPlanesNormalized(t *testing.T) {
	c := New(mgl32.Vec3{3, 4, 5}, mgl32.Vec3{})
	f := c.Frustum()
	for i, p := range f.planes {
		if l := p.Normal.Len(); l < 0.999 || l > 1.001 {
			t.Errorf("plane %d normal length = %v", i, l)
		}
	}
}
