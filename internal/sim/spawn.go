package sim

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"terrainsim/internal/engine"
	"terrainsim/internal/physics"
	"terrainsim/internal/shapes"
)

// AddObject builds a kind of the given size factor with a random colour and
// registers it at pos. A positive mass also makes it the selected body.
func (c *Context) AddObject(kind shapes.Kind, sizeFactor, mass float32, pos mgl32.Vec3) (BodyID, error) {
	geom, shape, err := shapes.Make(kind, sizeFactor, c.rng)
	if err != nil {
		return 0, err
	}
	id, err := c.addBody(kind.String(), TagObject, geom, shape, c.randomMaterial(), mass, pos)
	if err != nil {
		return 0, err
	}
	if mass > 0 {
		c.Selected = id
	}
	return id, nil
}

// AddObjectAboveTerrain drops an object onto the centre of the terrain.
func (c *Context) AddObjectAboveTerrain(kind shapes.Kind, sizeFactor, mass float32) (BodyID, error) {
	y := c.Params.Terrain.MaxHeight + c.settings.Objects.SpawnHeight
	return c.AddObject(kind, sizeFactor, mass, mgl32.Vec3{0, y, 0})
}

// Populate spawns n random objects in a column over the terrain centre. Each
// gets a size factor in 1..MaxSize and mass proportional to it.
func (c *Context) Populate(n int) error {
	for i := range n {
		kind := shapes.Random(c.rng)
		size := max(1, int(math.Ceil(c.rng.Float64()*float64(c.settings.Objects.MaxSize))))
		mass := float32(size) * c.settings.Objects.MassPerSize
		pos := mgl32.Vec3{c.rng.Float32(), float32(2 * i), c.rng.Float32()}
		if _, err := c.AddObject(kind, float32(size), mass, pos); err != nil {
			return fmt.Errorf("sim: populate object %d: %w", i, err)
		}
	}
	c.logger.Info("populated", "objects", n, "bodies", c.World.NumBodies())
	return nil
}

// addBody creates the visual node and the physics body together.
func (c *Context) addBody(name, tag string, geom engine.Geometry, shape physics.Shape, mat *engine.Material, mass float32, pos mgl32.Vec3) (BodyID, error) {
	node := engine.NewGameObject(name)
	node.Tags = []string{tag}
	node.Geometry = geom
	node.Material = mat
	node.Transform.Position = pos
	c.Scene.AddGameObject(node)

	id, err := c.Registry.CreateBody(node.UID, shape, mass, pos, mgl32.QuatIdent())
	if err != nil {
		c.Scene.RemoveGameObject(node)
		return 0, err
	}
	node.Name = fmt.Sprintf("%s-%d", name, id)
	c.BodyAdded.Invoke(id)
	return id, nil
}

func (c *Context) randomMaterial() *engine.Material {
	return engine.NewMaterial(color.RGBA{
		R: uint8(c.rng.Intn(256)),
		G: uint8(c.rng.Intn(256)),
		B: uint8(c.rng.Intn(256)),
		A: 255,
	})
}
