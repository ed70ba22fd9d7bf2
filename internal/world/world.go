// Package world renders a simulation's scene with raylib.
package world

import (
	"errors"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"terrainsim/internal/assets"
	"terrainsim/internal/sim"
)

const (
	AxesLength = 50

	shaderVS = "assets/shaders/lighting.vs"
	shaderFS = "assets/shaders/lighting.fs"
)

// Light is the single directional light plus ambient term.
type Light struct {
	Direction mgl32.Vec3
	Color     [4]float32
	Ambient   [4]float32
}

func DefaultLight() Light {
	return Light{
		Direction: mgl32.Vec3{-0.35, -1, -0.5}.Normalize(),
		Color:     [4]float32{1, 1, 1, 1},
		Ambient:   [4]float32{0.45, 0.45, 0.45, 1},
	}
}

// World owns the GPU side of one simulation: one model per visual node, the
// grid texture and the lighting shader.
type World struct {
	ctx      *sim.Context
	Shader   rl.Shader
	Light    Light
	models   map[uint64]nodeModel
	textures *textureCache
	grid     rl.Texture2D
	gridPath string
	logger   *log.Logger

	// Drawn and Culled count nodes in the last Draw.
	Drawn  int
	Culled int

	locs shaderLocs
}

type shaderLocs struct {
	lightDir, lightColor, ambient, viewPos, roughness, metalness int32
}

func New(ctx *sim.Context, logger *log.Logger) *World {
	if logger == nil {
		logger = log.Default()
	}
	return &World{
		ctx:      ctx,
		Light:    DefaultLight(),
		models:   make(map[uint64]nodeModel),
		textures: newTextureCache(),
		logger:   logger.WithPrefix("render"),
	}
}

// Initialize loads GPU resources and subscribes to scene changes. Requires an
// open window.
func (w *World) Initialize() {
	w.Shader = rl.LoadShader(shaderVS, shaderFS)
	w.locs = shaderLocs{
		lightDir:   rl.GetShaderLocation(w.Shader, "lightDir"),
		lightColor: rl.GetShaderLocation(w.Shader, "lightColor"),
		ambient:    rl.GetShaderLocation(w.Shader, "ambient"),
		viewPos:    rl.GetShaderLocation(w.Shader, "viewPos"),
		roughness:  rl.GetShaderLocation(w.Shader, "roughness"),
		metalness:  rl.GetShaderLocation(w.Shader, "metalness"),
	}
	w.updateShaderUniforms()
	w.reloadGridTexture()

	w.ctx.TerrainRebuilt.AddListener(func(*sim.TerrainState) {
		w.dropModel(w.ctx.Terrain.Visual)
	})
	w.ctx.ParamChanged.AddListener(w.onParamChanged)
}

func (w *World) onParamChanged(p sim.ParamChange) {
	switch p.Update {
	case sim.UpdateTexture:
		w.reloadGridTexture()
		w.dropModel(w.ctx.Terrain.Visual)
	case sim.UpdateWireframe:
		if !w.ctx.Params.Wireframe {
			w.reloadGridTexture()
			w.dropModel(w.ctx.Terrain.Visual)
		}
	}
}

func (w *World) updateShaderUniforms() {
	d := w.Light.Direction
	rl.SetShaderValue(w.Shader, w.locs.lightDir, []float32{d.X(), d.Y(), d.Z()}, rl.ShaderUniformVec3)
	rl.SetShaderValue(w.Shader, w.locs.lightColor, w.Light.Color[:], rl.ShaderUniformVec4)
	rl.SetShaderValue(w.Shader, w.locs.ambient, w.Light.Ambient[:], rl.ShaderUniformVec4)
}

// MoveLightDir nudges the light direction.
func (w *World) MoveLightDir(dx, dy, dz float32) {
	d := w.Light.Direction.Add(mgl32.Vec3{dx, dy, dz})
	if d.Len() == 0 {
		return
	}
	w.Light.Direction = d.Normalize()
	w.updateShaderUniforms()
}

// reloadGridTexture switches to the current grid texture path. A missing file
// keeps the previous texture.
func (w *World) reloadGridTexture() {
	path := w.ctx.Params.GridTexture
	tex, err := w.textures.load(path)
	if err != nil {
		if errors.Is(err, assets.ErrTextureNotFound) {
			w.logger.Warn("keeping previous texture", "path", path, "err", err)
		} else {
			w.logger.Error("texture load", "path", path, "err", err)
		}
		return
	}
	w.grid, w.gridPath = tex, path
}

func (w *World) dropModel(uid uint64) {
	if m, ok := w.models[uid]; ok {
		rl.UnloadModel(m.model)
		delete(w.models, uid)
	}
}

// model returns the GPU model for a node, building it on first use.
func (w *World) model(uid uint64) (nodeModel, bool) {
	if m, ok := w.models[uid]; ok {
		return m, true
	}
	n := w.ctx.Scene.FindByUID(uid)
	if n == nil {
		return nodeModel{}, false
	}
	m, ok := buildModel(n.Geometry)
	if !ok {
		return nodeModel{}, false
	}
	m.model.Materials.Shader = w.Shader
	if n.HasTag(sim.TagTerrain) && w.grid.ID != 0 {
		rl.SetMaterialTexture(m.model.Materials, rl.MapDiffuse, w.grid)
	}
	w.models[uid] = m
	return m, true
}

// prune unloads models whose node left the scene.
func (w *World) prune() {
	for uid := range w.models {
		if w.ctx.Scene.FindByUID(uid) == nil {
			w.dropModel(uid)
		}
	}
}

func (w *World) Unload() {
	for uid := range w.models {
		w.dropModel(uid)
	}
	w.textures.unload()
	rl.UnloadShader(w.Shader)
}
