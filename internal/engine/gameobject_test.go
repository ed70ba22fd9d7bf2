package engine

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewGameObject(t *testing.T) {
	obj := NewGameObject("ball")

	if obj.Name != "ball" {
		t.Errorf("Expected name 'ball', got '%s'", obj.Name)
	}
	if obj.UID == 0 {
		t.Error("UID should not be 0")
	}
	if !obj.Active {
		t.Error("New objects should be active")
	}
	if obj.Transform.Rotation != mgl32.QuatIdent() {
		t.Errorf("Expected identity rotation, got %v", obj.Transform.Rotation)
	}
	if obj.Transform.Scale != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("Expected unit scale, got %v", obj.Transform.Scale)
	}
}

func TestGameObjectUniqueUIDs(t *testing.T) {
	seen := make(map[uint64]bool)
	for i := 0; i < 100; i++ {
		uid := NewGameObject("box").UID
		if seen[uid] {
			t.Fatalf("UID %d handed out twice", uid)
		}
		seen[uid] = true
	}
}

func TestGameObjectHasTag(t *testing.T) {
	obj := NewGameObject("ball")
	obj.Tags = []string{"projectile", "dynamic"}

	if !obj.HasTag("projectile") || !obj.HasTag("dynamic") {
		t.Error("HasTag should return true for existing tags")
	}
	if obj.HasTag("terrain") {
		t.Error("HasTag should return false for a missing tag")
	}
	if NewGameObject("box").HasTag("anything") {
		t.Error("HasTag should return false when Tags is empty")
	}
}

func TestGameObjectMatrix(t *testing.T) {
	obj := NewGameObject("box")
	obj.Transform.Position = mgl32.Vec3{1, 2, 3}
	obj.Transform.Rotation = mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})
	obj.Transform.Scale = mgl32.Vec3{2, 2, 2}

	origin := obj.Matrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	if !origin.ApproxEqualThreshold(mgl32.Vec3{1, 2, 3}, 1e-6) {
		t.Errorf("Expected origin to map to (1, 2, 3), got %v", origin)
	}

	// Scaled to (2,0,0), rotated 90° about Y to (0,0,-2), then translated.
	p := obj.Matrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	if !p.ApproxEqualThreshold(mgl32.Vec3{1, 2, 1}, 1e-5) {
		t.Errorf("Expected (1, 2, 1), got %v", p)
	}
}
