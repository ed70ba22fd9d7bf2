package sim

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"terrainsim/internal/engine"
	"terrainsim/internal/physics"
	"terrainsim/internal/terrain"
)

// TerrainState is the single live terrain: its inputs, the sample both the mesh
// and the collision shape were built from, and the body/node pair.
type TerrainState struct {
	Descriptor terrain.Descriptor
	Sample     *terrain.HeightSample
	Shape      *physics.HeightfieldTerrainShape
	Mesh       *terrain.Mesh
	Body       BodyID
	Visual     uint64
}

// BuildTerrainShape turns a height sample into a collision shape scaled to the
// descriptor's world extents. Place the body at d.Origin().
func BuildTerrainShape(h *terrain.HeightSample, d terrain.Descriptor, margin float32) (*physics.HeightfieldTerrainShape, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if h.Width != d.Width || h.Depth != d.Depth {
		return nil, fmt.Errorf("sim: sample is %dx%d, descriptor wants %dx%d", h.Width, h.Depth, d.Width, d.Depth)
	}
	shape, err := physics.NewHeightfieldTerrainShape(d.Width, d.Depth, h.Float32s(), d.MinHeight, d.MaxHeight)
	if err != nil {
		return nil, fmt.Errorf("sim: terrain shape: %w", err)
	}
	shape.SetLocalScaling(d.LocalScaling())
	shape.SetMargin(margin)
	return shape, nil
}

// RebuildTerrain regenerates the height sample for d and replaces the terrain
// body and mesh. The previous body is removed before the new one is added, so
// exactly one terrain body exists afterwards.
func (c *Context) RebuildTerrain(d terrain.Descriptor) error {
	if err := d.Validate(); err != nil {
		return err
	}

	sample := terrain.Generate(d)
	shape, err := BuildTerrainShape(sample, d, c.settings.Physics.Margin)
	if err != nil {
		return err
	}
	ru, rv := d.TextureRepeat(c.Params.GridSize)
	mesh, err := terrain.BuildMesh(d, sample, ru, rv)
	if err != nil {
		return err
	}

	node := c.terrainNode()
	node.Geometry = engine.TerrainGeometry(mesh)
	node.Material.RepeatU, node.Material.RepeatV = ru, rv

	old := c.Terrain
	if old != nil && old.Body != 0 {
		if err := c.Registry.RemoveBody(old.Body); err != nil {
			c.logger.Warn("removing old terrain body", "err", err)
		}
	}

	id, err := c.Registry.CreateBody(node.UID, shape, 0, d.Origin(), mgl32.QuatIdent())
	if err != nil {
		return err
	}
	c.Terrain = &TerrainState{
		Descriptor: d,
		Sample:     sample,
		Shape:      shape,
		Mesh:       mesh,
		Body:       id,
		Visual:     node.UID,
	}
	c.Params.Terrain = d

	lo, hi := sample.Range()
	c.logger.Info("terrain built", "grid", fmt.Sprintf("%dx%d", d.Width, d.Depth), "min", lo, "max", hi, "body", id)
	c.TerrainRebuilt.Invoke(c.Terrain)
	return nil
}

// retileTerrain rebuilds the visual mesh with the current grid size. The
// collision body is untouched.
func (c *Context) retileTerrain() error {
	if c.Terrain == nil {
		return nil
	}
	d := c.Terrain.Descriptor
	ru, rv := d.TextureRepeat(c.Params.GridSize)
	mesh, err := terrain.BuildMesh(d, c.Terrain.Sample, ru, rv)
	if err != nil {
		return err
	}
	node := c.terrainNode()
	node.Geometry = engine.TerrainGeometry(mesh)
	node.Material.RepeatU, node.Material.RepeatV = ru, rv
	c.Terrain.Mesh = mesh
	return nil
}

// terrainNode returns the terrain's visual node, creating it on first use.
// The node sits at the world origin; mesh vertices carry raw heights.
func (c *Context) terrainNode() *engine.GameObject {
	if c.Terrain != nil {
		if n := c.Scene.FindByUID(c.Terrain.Visual); n != nil {
			return n
		}
	}
	n := engine.NewGameObject("terrain")
	n.Tags = []string{TagTerrain}
	n.Material = engine.NewMaterial(colorWhite)
	n.Material.Texture = c.Params.GridTexture
	n.Material.Wireframe = c.Params.Wireframe
	c.Scene.AddGameObject(n)
	return n
}
