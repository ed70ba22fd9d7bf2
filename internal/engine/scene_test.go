package engine

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSceneAddAndLookup(t *testing.T) {
	scene := NewScene("terrain")
	obj := NewGameObject("ball")

	scene.AddGameObject(obj)

	if scene.Len() != 1 {
		t.Errorf("Expected 1 GameObject, got %d", scene.Len())
	}
	if obj.Scene != scene {
		t.Error("GameObject.Scene not set")
	}
	if scene.FindByUID(obj.UID) != obj {
		t.Error("FindByUID should return the added object")
	}
	if scene.FindByUID(99999) != nil {
		t.Error("FindByUID should return nil for an unknown UID")
	}
}

func TestSceneRemoveGameObject(t *testing.T) {
	scene := NewScene("terrain")
	ground := NewGameObject("terrain")
	ball := NewGameObject("ball")
	scene.AddGameObject(ground)
	scene.AddGameObject(ball)

	scene.RemoveGameObject(ground)

	if scene.Len() != 1 || scene.GameObjects[0] != ball {
		t.Fatalf("Expected only the ball to remain, got %v", scene.GameObjects)
	}
	if scene.FindByUID(ground.UID) != nil {
		t.Error("Removed GameObject still in UID map")
	}
	if ground.Scene != nil {
		t.Error("Removed GameObject should drop its scene")
	}

	// Removing twice is harmless.
	scene.RemoveGameObject(ground)
	if scene.Len() != 1 {
		t.Errorf("Expected 1 GameObject, got %d", scene.Len())
	}
}

func TestSceneFindByTag(t *testing.T) {
	scene := NewScene("terrain")
	tagged := []struct {
		name string
		tags []string
	}{
		{"terrain", []string{"terrain"}},
		{"box", []string{"object"}},
		{"cone", []string{"object"}},
		{"ball", []string{"projectile"}},
	}
	for _, tc := range tagged {
		obj := NewGameObject(tc.name)
		obj.Tags = tc.tags
		scene.AddGameObject(obj)
	}

	cases := map[string]int{"terrain": 1, "object": 2, "projectile": 1, "missing": 0}
	for tag, want := range cases {
		if got := len(scene.FindByTag(tag)); got != want {
			t.Errorf("FindByTag(%q) = %d objects, want %d", tag, got, want)
		}
	}
}

func TestSceneAddInitializesMap(t *testing.T) {
	scene := &Scene{}
	obj := NewGameObject("box")
	scene.AddGameObject(obj)

	if scene.FindByUID(obj.UID) != obj {
		t.Error("AddGameObject should work on a zero Scene")
	}
}

func TestSceneSetTransform(t *testing.T) {
	scene := NewScene("terrain")
	obj := NewGameObject("ball")
	scene.AddGameObject(obj)

	rot := mgl32.QuatRotate(1, mgl32.Vec3{0, 0, 1})
	if !scene.SetTransform(obj.UID, mgl32.Vec3{1, 2, 3}, rot) {
		t.Fatal("SetTransform should find the object")
	}
	if obj.Transform.Position != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("Position not written, got %v", obj.Transform.Position)
	}
	if obj.Transform.Rotation != rot {
		t.Errorf("Rotation not written, got %v", obj.Transform.Rotation)
	}
	if obj.Transform.Scale != (mgl32.Vec3{1, 1, 1}) {
		t.Error("SetTransform should leave scale alone")
	}

	if scene.SetTransform(99999, mgl32.Vec3{}, mgl32.QuatIdent()) {
		t.Error("SetTransform should report false for unknown UID")
	}
}
