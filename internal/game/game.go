// Package game runs the windowed front-end: raylib frame loop, orbit camera,
// pointer input and the settings panel.
package game

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"terrainsim/internal/audio"
	"terrainsim/internal/camera"
	"terrainsim/internal/config"
	"terrainsim/internal/sim"
	"terrainsim/internal/world"
)

// orbitTargetY lifts the orbit pivot slightly above the terrain centre.
const orbitTargetY = 2

type Game struct {
	Ctx       *sim.Context
	World     *world.World
	Orbit     *camera.Orbit
	DebugMode bool

	panel    *Panel
	settings config.Settings
	logger   *log.Logger
	audioOn  bool

	// Debug timing (ms)
	updateMs float64
	drawMs   float64
	stats    sim.StepStats
}

func New(ctx *sim.Context, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.Default()
	}
	cam := ctx.Camera
	return &Game{
		Ctx:      ctx,
		World:    world.New(ctx, logger),
		Orbit:    camera.NewOrbit(cam.Position, mgl32.Vec3{0, orbitTargetY, 0}),
		panel:    NewPanel(ctx),
		settings: ctx.Settings(),
		logger:   logger.WithPrefix("game"),
	}
}

func (g *Game) Run() error {
	w := g.settings.Window
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(w.Width), int32(w.Height), w.Title)
	defer rl.CloseWindow()
	if !rl.IsWindowReady() {
		return fmt.Errorf("game: window did not open")
	}
	rl.SetTargetFPS(int32(w.TargetFPS))

	// Initialize world after OpenGL context is created
	g.World.Initialize()
	defer g.World.Unload()
	initRayguiStyle()

	if g.settings.Audio.Enabled {
		if err := audio.Init(g.settings.Audio.Volume); err != nil {
			g.logger.Warn("audio unavailable", "err", err)
		} else {
			g.audioOn = true
			defer audio.Close()
		}
	}
	g.Ctx.Launched.AddListener(g.onLaunched)

	g.resize()
	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
	return nil
}

func (g *Game) onLaunched(id sim.BodyID) {
	if !g.audioOn {
		return
	}
	b, ok := g.Ctx.Registry.Get(id)
	if !ok {
		return
	}
	audio.PlayLaunch(b.Rigid.WorldTransform().Origin, b.Rigid.LinearVelocity().Len())
}

func (g *Game) resize() {
	g.Ctx.Camera.SetViewport(rl.GetScreenWidth(), rl.GetScreenHeight())
}

// pointerNDC is the mouse position in normalized device coordinates.
func pointerNDC() mgl32.Vec2 {
	m := rl.GetMousePosition()
	return camera.PointerNDC(m.X, m.Y, rl.GetScreenWidth(), rl.GetScreenHeight())
}

func (g *Game) Update() {
	updateStart := time.Now()
	deltaTime := rl.GetFrameTime()

	if rl.IsWindowResized() {
		g.resize()
	}

	overPanel := g.panel.Contains(rl.GetMousePosition())

	// Orbit with right drag, zoom with the wheel
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		d := rl.GetMouseDelta()
		g.Orbit.Rotate(d.X, d.Y)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 && !overPanel {
		g.Orbit.Zoom(wheel)
	}
	g.Orbit.Apply(g.Ctx.Camera)

	// Left click launches, shift+click selects
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) && !overPanel {
		ndc := pointerNDC()
		if rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift) {
			g.Ctx.Push(sim.Select{Pointer: ndc})
		} else {
			g.Ctx.Push(sim.Launch{Pointer: ndc})
		}
	}

	// Toggle debug mode
	if rl.IsKeyPressed(rl.KeyF1) {
		g.DebugMode = !g.DebugMode
	}

	// Light controls
	lightSpeed := float32(1.0) * deltaTime
	if rl.IsKeyDown(rl.KeyLeft) {
		g.World.MoveLightDir(-lightSpeed, 0, 0)
	}
	if rl.IsKeyDown(rl.KeyRight) {
		g.World.MoveLightDir(lightSpeed, 0, 0)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.World.MoveLightDir(0, 0, lightSpeed)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.World.MoveLightDir(0, 0, -lightSpeed)
	}

	g.stats = g.Ctx.Tick(deltaTime)

	if g.audioOn {
		c := g.Ctx.Camera
		audio.SetListener(c.Position, c.Forward(), c.Up)
	}

	g.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000.0
}

func (g *Game) Draw() {
	rl.BeginDrawing()

	drawStart := time.Now()
	g.World.Draw(g.Ctx.Camera)
	g.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0

	g.panel.Draw()
	g.DrawUI()
	rl.EndDrawing()
}

func (g *Game) DrawUI() {
	x := int32(g.panel.Width() + 10)
	rl.DrawText("Click to launch, Shift+click to select, right drag to orbit", x, 10, 20, rl.DarkGray)
	rl.DrawText("F1 to toggle debug view", x, 35, 20, rl.DarkGray)
	rl.DrawFPS(x, 60)

	if g.DebugMode {
		d := g.World.Light.Direction
		rl.DrawText(fmt.Sprintf("Light Dir: (%.2f, %.2f, %.2f)", d.X(), d.Y(), d.Z()), x, 85, 16, rl.Yellow)
		rl.DrawText(fmt.Sprintf("Bodies:  %d (%d dynamic)", g.Ctx.Registry.Len(), len(g.Ctx.Registry.Dynamic())), x, 110, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("Steps:   %d, synced %d, skipped %d, contacts %d", g.stats.SubSteps, g.stats.Synced, g.stats.Skipped, g.stats.Contacts), x, 130, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("Nodes:   %d drawn, %d culled", g.World.Drawn, g.World.Culled), x, 150, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("Update:  %.2f ms", g.updateMs), x, 170, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("Draw:    %.2f ms", g.drawMs), x, 190, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("Total:   %.2f ms", g.updateMs+g.drawMs), x, 210, 16, rl.Lime)
	}
}
