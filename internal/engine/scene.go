package engine

import "github.com/go-gl/mathgl/mgl32"

type Scene struct {
	Name        string
	GameObjects []*GameObject
	uidMap      map[uint64]*GameObject
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:        name,
		GameObjects: make([]*GameObject, 0),
		uidMap:      make(map[uint64]*GameObject),
	}
}

func (s *Scene) AddGameObject(g *GameObject) {
	if s.uidMap == nil {
		s.uidMap = make(map[uint64]*GameObject)
	}
	g.Scene = s
	s.GameObjects = append(s.GameObjects, g)
	s.uidMap[g.UID] = g
}

func (s *Scene) RemoveGameObject(g *GameObject) {
	delete(s.uidMap, g.UID)
	for i, obj := range s.GameObjects {
		if obj == g {
			s.GameObjects = append(s.GameObjects[:i], s.GameObjects[i+1:]...)
			break
		}
	}
	if g.Scene == s {
		g.Scene = nil
	}
}

func (s *Scene) FindByUID(uid uint64) *GameObject {
	return s.uidMap[uid]
}

func (s *Scene) FindByTag(tag string) []*GameObject {
	var result []*GameObject
	for _, g := range s.GameObjects {
		if g.HasTag(tag) {
			result = append(result, g)
		}
	}
	return result
}

// SetTransform overwrites position and rotation of the object with the given UID.
// It reports false when no such object is in the scene.
func (s *Scene) SetTransform(uid uint64, pos mgl32.Vec3, rot mgl32.Quat) bool {
	g := s.uidMap[uid]
	if g == nil {
		return false
	}
	g.Transform.Position = pos
	g.Transform.Rotation = rot
	return true
}

func (s *Scene) Len() int {
	return len(s.GameObjects)
}
