package sim

import (
	"fmt"
	"image/color"

	"terrainsim/internal/config"
	"terrainsim/internal/engine"
	"terrainsim/internal/terrain"
)

// Update names the function a parameter change triggers in front-ends.
type Update string

const (
	UpdateTexture    Update = "texture"
	UpdateMaterial   Update = "material"
	UpdateBackground Update = "background"
	UpdateAxes       Update = "axes"
	UpdateWireframe  Update = "wireframe"
	UpdateTerrain    Update = "terrain"
)

// ParamChange is published after a parameter was applied.
type ParamChange struct {
	Name   string
	Value  any
	Update Update
}

// Params is the whole externally settable surface.
type Params struct {
	GridTexture string
	GridSize    float32
	Background  color.RGBA
	ShowAxes    bool
	Wireframe   bool
	Ball        engine.Material
	Terrain     terrain.Descriptor
}

func ParamsFromSettings(cfg config.Settings) Params {
	bg, err := config.ParseColor(cfg.Background)
	if err != nil {
		bg = colorWhite
	}
	return Params{
		GridTexture: cfg.GridTexture,
		GridSize:    cfg.GridSize,
		Background:  bg,
		ShowAxes:    cfg.ShowAxes,
		Wireframe:   cfg.Wireframe,
		Ball:        *cfg.BallMaterial.Material(),
		Terrain:     cfg.Terrain,
	}
}

type paramSetter struct {
	update Update
	apply  func(c *Context, v any) error
}

var paramSetters = map[string]paramSetter{
	"gridTexture": {UpdateTexture, func(c *Context, v any) error {
		s, err := asString(v)
		if err != nil {
			return err
		}
		c.Params.GridTexture = s
		if n := c.terrainNode(); n.Material != nil {
			n.Material.Texture = s
		}
		return nil
	}},
	"gridSize": {UpdateTexture, func(c *Context, v any) error {
		f, err := asPositive(v)
		if err != nil {
			return err
		}
		c.Params.GridSize = f
		return c.retileTerrain()
	}},
	"background": {UpdateBackground, func(c *Context, v any) error {
		col, err := asColor(v)
		if err != nil {
			return err
		}
		c.Params.Background = col
		return nil
	}},
	"showAxes": {UpdateAxes, func(c *Context, v any) error {
		b, err := asBool(v)
		if err != nil {
			return err
		}
		c.Params.ShowAxes = b
		return nil
	}},
	"wireframe": {UpdateWireframe, func(c *Context, v any) error {
		b, err := asBool(v)
		if err != nil {
			return err
		}
		c.Params.Wireframe = b
		if n := c.terrainNode(); n.Material != nil {
			n.Material.Wireframe = b
		}
		return nil
	}},
	"ball.color": {UpdateMaterial, func(c *Context, v any) error {
		col, err := asColor(v)
		if err != nil {
			return err
		}
		c.Params.Ball.Color = col
		return nil
	}},
	"ball.transmission":       ballFloat(func(m *engine.Material) *float32 { return &m.Transmission }),
	"ball.opacity":            ballFloat(func(m *engine.Material) *float32 { return &m.Opacity }),
	"ball.roughness":          ballFloat(func(m *engine.Material) *float32 { return &m.Roughness }),
	"ball.metalness":          ballFloat(func(m *engine.Material) *float32 { return &m.Metalness }),
	"ball.clearcoat":          ballFloat(func(m *engine.Material) *float32 { return &m.Clearcoat }),
	"ball.clearcoatRoughness": ballFloat(func(m *engine.Material) *float32 { return &m.ClearcoatRoughness }),
	"ball.ior":                ballFloat(func(m *engine.Material) *float32 { return &m.IOR }),
	"ball.thickness":          ballFloat(func(m *engine.Material) *float32 { return &m.Thickness }),
	"terrain": {UpdateTerrain, func(c *Context, v any) error {
		d, ok := v.(terrain.Descriptor)
		if !ok {
			return fmt.Errorf("want a terrain descriptor, got %T", v)
		}
		return c.RebuildTerrain(d)
	}},
	"terrain.widthExtents":    terrainFloat(func(d *terrain.Descriptor) *float32 { return &d.WidthExtents }),
	"terrain.depthExtents":    terrainFloat(func(d *terrain.Descriptor) *float32 { return &d.DepthExtents }),
	"terrain.minHeight":       terrainFloat(func(d *terrain.Descriptor) *float32 { return &d.MinHeight }),
	"terrain.maxHeight":       terrainFloat(func(d *terrain.Descriptor) *float32 { return &d.MaxHeight }),
	"terrain.width":           terrainInt(func(d *terrain.Descriptor) *int { return &d.Width }),
	"terrain.depth":           terrainInt(func(d *terrain.Descriptor) *int { return &d.Depth }),
}

func ballFloat(field func(*engine.Material) *float32) paramSetter {
	return paramSetter{UpdateMaterial, func(c *Context, v any) error {
		f, err := asFloat(v)
		if err != nil {
			return err
		}
		*field(&c.Params.Ball) = f
		return nil
	}}
}

func terrainFloat(field func(*terrain.Descriptor) *float32) paramSetter {
	return paramSetter{UpdateTerrain, func(c *Context, v any) error {
		f, err := asFloat(v)
		if err != nil {
			return err
		}
		d := c.Params.Terrain
		*field(&d) = f
		return c.RebuildTerrain(d)
	}}
}

func terrainInt(field func(*terrain.Descriptor) *int) paramSetter {
	return paramSetter{UpdateTerrain, func(c *Context, v any) error {
		f, err := asFloat(v)
		if err != nil {
			return err
		}
		d := c.Params.Terrain
		*field(&d) = int(f)
		return c.RebuildTerrain(d)
	}}
}

// SetBallMaterial replaces the projectile material wholesale. Balls already in
// flight keep theirs.
func (c *Context) SetBallMaterial(m engine.Material) {
	c.Params.Ball = m
	c.ParamChanged.Invoke(ParamChange{Name: "ball", Value: m, Update: UpdateMaterial})
}

// ParamNames lists every name SetParam accepts.
func ParamNames() []string {
	names := make([]string, 0, len(paramSetters))
	for n := range paramSetters {
		names = append(names, n)
	}
	return names
}

// SetParam applies one parameter and publishes a ParamChange naming the update
// front-ends must run. Terrain geometry parameters rebuild the terrain; an
// invalid geometry leaves the old terrain in place.
func (c *Context) SetParam(name string, value any) error {
	s, ok := paramSetters[name]
	if !ok {
		return fmt.Errorf("sim: unknown parameter %q", name)
	}
	if err := s.apply(c, value); err != nil {
		return fmt.Errorf("sim: set %s: %w", name, err)
	}
	c.ParamChanged.Invoke(ParamChange{Name: name, Value: value, Update: s.update})
	return nil
}

func asFloat(v any) (float32, error) {
	switch x := v.(type) {
	case float32:
		return x, nil
	case float64:
		return float32(x), nil
	case int:
		return float32(x), nil
	}
	return 0, fmt.Errorf("want a number, got %T", v)
}

func asPositive(v any) (float32, error) {
	f, err := asFloat(v)
	if err == nil && f <= 0 {
		err = fmt.Errorf("want a positive number, got %v", f)
	}
	return f, err
}

func asBool(v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("want a bool, got %T", v)
	}
	return b, nil
}

func asString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("want a string, got %T", v)
	}
	return s, nil
}

func asColor(v any) (color.RGBA, error) {
	switch x := v.(type) {
	case color.RGBA:
		return x, nil
	case string:
		return config.ParseColor(x)
	}
	return color.RGBA{}, fmt.Errorf("want a colour, got %T", v)
}

// TerrainChange returns the command that rebuilds the terrain from from to to
// in a single step, so the descriptor is validated as a whole. ok is false when
// the two produce the same terrain.
func TerrainChange(from, to terrain.Descriptor) (cmd SetParam, ok bool) {
	if from.SameGeometry(to) {
		return SetParam{}, false
	}
	return SetParam{Name: "terrain", Value: to}, true
}
