package world

import (
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"

	"terrainsim/internal/camera"
	"terrainsim/internal/engine"
)

type drawItem struct {
	node  *engine.GameObject
	model nodeModel
	dist  float32
}

// Draw renders the scene from cam: opaque nodes first, then transparent ones
// back to front. Nodes outside the view frustum are skipped.
func (w *World) Draw(cam *camera.Camera) {
	p := w.ctx.Params
	rl.ClearBackground(p.Background)
	w.prune()

	frustum := cam.Frustum()
	var opaque, transparent []drawItem
	w.Drawn, w.Culled = 0, 0

	for _, n := range w.ctx.Scene.GameObjects {
		if !n.Active || n.Geometry.Kind == engine.GeometryNone {
			continue
		}
		center := n.Transform.Position
		s := n.Transform.Scale
		radius := n.Geometry.HalfExtents().Len() * max(s.X(), s.Y(), s.Z())
		if !frustum.ContainsSphere(center, radius) {
			w.Culled++
			continue
		}
		m, ok := w.model(n.UID)
		if !ok {
			continue
		}
		item := drawItem{node: n, model: m, dist: center.Sub(cam.Position).Len()}
		if n.Material != nil && n.Material.Transparent() {
			transparent = append(transparent, item)
		} else {
			opaque = append(opaque, item)
		}
	}
	sort.Slice(transparent, func(i, j int) bool { return transparent[i].dist > transparent[j].dist })

	rl.SetShaderValue(w.Shader, w.locs.viewPos, []float32{cam.Position.X(), cam.Position.Y(), cam.Position.Z()}, rl.ShaderUniformVec3)

	rl.BeginMode3D(Camera3D(cam))
	for _, it := range opaque {
		w.drawNode(it)
	}
	rl.BeginBlendMode(rl.BlendAlpha)
	for _, it := range transparent {
		w.drawNode(it)
	}
	rl.EndBlendMode()
	if p.ShowAxes {
		drawAxes(AxesLength)
	}
	rl.EndMode3D()

	w.Drawn = len(opaque) + len(transparent)
}

func (w *World) drawNode(it drawItem) {
	n := it.node
	it.model.model.Transform = matrix(n.Matrix().Mul4(it.model.offset))

	tint := rl.White
	var roughness, metalness float32 = 1, 0
	wire := false
	if mat := n.Material; mat != nil {
		tint = mat.EffectiveColor()
		roughness, metalness = mat.Roughness, mat.Metalness
		wire = mat.Wireframe
	}
	rl.SetShaderValue(w.Shader, w.locs.roughness, []float32{roughness}, rl.ShaderUniformFloat)
	rl.SetShaderValue(w.Shader, w.locs.metalness, []float32{metalness}, rl.ShaderUniformFloat)

	if wire {
		rl.DrawModelWires(it.model.model, rl.Vector3{}, 1, tint)
		return
	}
	rl.DrawModel(it.model.model, rl.Vector3{}, 1, tint)
}

// drawAxes draws X red, Y green, Z blue from the origin.
func drawAxes(length float32) {
	origin := rl.Vector3{}
	rl.DrawLine3D(origin, rl.Vector3{X: length}, rl.Red)
	rl.DrawLine3D(origin, rl.Vector3{Y: length}, rl.Green)
	rl.DrawLine3D(origin, rl.Vector3{Z: length}, rl.Blue)
}
