package game

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"terrainsim/internal/engine"
	"terrainsim/internal/shapes"
	"terrainsim/internal/sim"
	"terrainsim/internal/terrain"
)

const (
	panelWidth = 280
	rowHeight  = 22
	rowGap     = 4
	labelWidth = 110
)

// Panel is the settings panel. It never mutates the simulation directly; every
// control pushes a command that the next Tick applies.
type Panel struct {
	ctx  *sim.Context
	page int32

	kind int32
	size float32
	mass float32

	selectedMass float32
	draft        terrain.Descriptor
	draftFor     *sim.TerrainState
}

func NewPanel(ctx *sim.Context) *Panel {
	return &Panel{
		ctx:          ctx,
		size:         1,
		mass:         5,
		selectedMass: 5,
	}
}

func (p *Panel) Width() int {
	return panelWidth
}

// Contains reports whether a screen point is over the panel.
func (p *Panel) Contains(pt rl.Vector2) bool {
	return pt.X <= panelWidth
}

// layout hands out consecutive rows.
type layout struct {
	x, y float32
}

func (l *layout) row() rl.Rectangle {
	r := rl.Rectangle{X: l.x, Y: l.y, Width: panelWidth - 2*l.x, Height: rowHeight}
	l.y += rowHeight + rowGap
	return r
}

// slider draws a labelled slider and returns the new value.
func (l *layout) slider(label string, v, lo, hi float32) float32 {
	r := l.row()
	gui.Label(rl.Rectangle{X: r.X, Y: r.Y, Width: labelWidth, Height: r.Height}, label)
	r.X += labelWidth
	r.Width -= labelWidth + 40
	return gui.Slider(r, "", fmt.Sprintf("%.2f", v), v, lo, hi)
}

func (p *Panel) Draw() {
	h := float32(rl.GetScreenHeight())
	gui.Panel(rl.Rectangle{X: 0, Y: 0, Width: panelWidth, Height: h}, "Settings")

	l := &layout{x: 10, y: 34}
	p.page = gui.ComboBox(l.row(), "Objects;Terrain;View;Ball", p.page)
	l.y += rowGap

	switch p.page {
	case 0:
		p.drawObjects(l)
	case 1:
		p.drawTerrain(l)
	case 2:
		p.drawView(l)
	case 3:
		p.drawBall(l)
	}
}

func (p *Panel) drawObjects(l *layout) {
	p.kind = gui.ComboBox(l.row(), "Sphere;Box;Cylinder;Cone", p.kind)
	p.size = float32(math.Round(float64(l.slider("Size", p.size, 1, 3))))
	p.mass = l.slider("Mass", p.mass, 1, 100)
	if gui.Button(l.row(), "Add object") {
		p.ctx.Push(sim.AddObject{Kind: shapes.Kinds[p.kind], SizeFactor: p.size, Mass: p.mass})
	}

	l.y += rowHeight
	sel := "none"
	if b, ok := p.ctx.Registry.Get(p.ctx.Selected); ok {
		sel = fmt.Sprintf("%s #%d, mass %.1f", b.Kind, b.ID, b.Mass)
	}
	gui.Label(l.row(), "Selected: "+sel)
	p.selectedMass = l.slider("New mass", p.selectedMass, 0.1, 100)
	if gui.Button(l.row(), "Set mass") {
		p.ctx.Push(sim.SetMass{Mass: p.selectedMass})
	}
}

func (p *Panel) drawTerrain(l *layout) {
	// Start a fresh draft whenever the terrain was rebuilt elsewhere
	if p.draftFor != p.ctx.Terrain {
		p.draft = p.ctx.Params.Terrain
		p.draftFor = p.ctx.Terrain
	}
	d := &p.draft
	d.WidthExtents = l.slider("Width extents", d.WidthExtents, 10, 400)
	d.DepthExtents = l.slider("Depth extents", d.DepthExtents, 10, 400)
	d.Width = int(l.slider("Width", float32(d.Width), 2, 256))
	d.Depth = int(l.slider("Depth", float32(d.Depth), 2, 256))
	d.MinHeight = l.slider("Min height", d.MinHeight, -20, 0)
	d.MaxHeight = l.slider("Max height", d.MaxHeight, 1, 40)

	cmd, changed := sim.TerrainChange(p.ctx.Params.Terrain, p.draft)
	label := "Rebuild terrain"
	if changed {
		label = "Apply terrain"
	}
	if gui.Button(l.row(), label) {
		if changed {
			p.ctx.Push(cmd)
		} else {
			p.ctx.Push(sim.RebuildTerrain{})
		}
	}
}

func (p *Panel) drawView(l *layout) {
	params := p.ctx.Params
	if v := l.slider("Grid size", params.GridSize, 0.1, 4); v != params.GridSize {
		p.ctx.Push(sim.SetParam{Name: "gridSize", Value: v})
	}
	if v := gui.CheckBox(l.row(), "Wireframe", params.Wireframe); v != params.Wireframe {
		p.ctx.Push(sim.SetParam{Name: "wireframe", Value: v})
	}
	if v := gui.CheckBox(l.row(), "Show axes", params.ShowAxes); v != params.ShowAxes {
		p.ctx.Push(sim.SetParam{Name: "showAxes", Value: v})
	}
	gui.Label(l.row(), "Background")
	r := l.row()
	r.Height = 120
	r.Width -= 30
	l.y += r.Height - rowHeight
	if v := gui.ColorPicker(r, "", params.Background); v != params.Background {
		p.ctx.Push(sim.SetParam{Name: "background", Value: v})
	}
}

func (p *Panel) drawBall(l *layout) {
	ball := p.ctx.Params.Ball
	gui.Label(l.row(), "Color")
	r := l.row()
	r.Height = 100
	r.Width -= 30
	l.y += r.Height - rowHeight
	if v := gui.ColorPicker(r, "", ball.Color); v != ball.Color {
		p.ctx.Push(sim.SetParam{Name: "ball.color", Value: v})
	}

	for _, f := range []struct {
		name  string
		label string
		value func(*engine.Material) float32
		lo    float32
		hi    float32
	}{
		{"transmission", "Transmission", func(m *engine.Material) float32 { return m.Transmission }, 0, 1},
		{"opacity", "Opacity", func(m *engine.Material) float32 { return m.Opacity }, 0, 1},
		{"roughness", "Roughness", func(m *engine.Material) float32 { return m.Roughness }, 0, 1},
		{"metalness", "Metalness", func(m *engine.Material) float32 { return m.Metalness }, 0, 1},
		{"clearcoat", "Clearcoat", func(m *engine.Material) float32 { return m.Clearcoat }, 0, 1},
		{"clearcoatRoughness", "Coat rough.", func(m *engine.Material) float32 { return m.ClearcoatRoughness }, 0, 1},
		{"ior", "IOR", func(m *engine.Material) float32 { return m.IOR }, 1, 2.33},
		{"thickness", "Thickness", func(m *engine.Material) float32 { return m.Thickness }, 0, 5},
	} {
		old := f.value(&ball)
		if v := l.slider(f.label, old, f.lo, f.hi); v != old {
			p.ctx.Push(sim.SetParam{Name: "ball." + f.name, Value: v})
		}
	}
}
