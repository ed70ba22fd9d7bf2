// Package sim owns a running simulation: the physics world, the body registry,
// the visual scene it keeps in sync, and the terrain.
package sim

import (
	"image/color"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"

	"terrainsim/internal/camera"
	"terrainsim/internal/config"
	"terrainsim/internal/engine"
	"terrainsim/internal/physics"
)

// Node tags
const (
	TagTerrain    = "terrain"
	TagObject     = "object"
	TagProjectile = "projectile"
)

var colorWhite = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Context is one independent simulation. All methods must be called from the
// goroutine running the frame loop; other goroutines use Push.
type Context struct {
	World    *physics.World
	Registry *Registry
	Scene    *engine.Scene
	Terrain  *TerrainState
	Camera   *camera.Camera
	Params   Params

	// Selected is the body "set mass" applies to. It follows the last spawned object.
	Selected BodyID

	ParamChanged   engine.EventWithArg[ParamChange]
	BodyAdded      engine.EventWithArg[BodyID]
	Launched       engine.EventWithArg[BodyID]
	TerrainRebuilt engine.EventWithArg[*TerrainState]

	settings config.Settings
	queue    Queue
	rng      *rand.Rand
	logger   *log.Logger
}

// NewContext builds the world and the initial terrain from cfg. It does not
// spawn objects; call Populate for that.
func NewContext(cfg config.Settings, logger *log.Logger) (*Context, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}

	world := physics.NewWorld(logger)
	world.Gravity = mgl32.Vec3{0, cfg.Physics.Gravity, 0}
	world.FixedTimeStep = cfg.Physics.FixedTimeStep
	world.MaxSubSteps = cfg.Physics.MaxSubSteps

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	c := &Context{
		World:    world,
		Scene:    engine.NewScene("terrain"),
		Params:   ParamsFromSettings(cfg),
		settings: cfg,
		rng:      rand.New(rand.NewSource(seed)),
		logger:   logger.WithPrefix("sim"),
	}
	c.Registry = NewRegistry(world, c.logger)

	d := cfg.Terrain
	c.Camera = camera.New(mgl32.Vec3{0, d.MaxHeight + 5, d.DepthExtents / 2}, mgl32.Vec3{})
	c.Camera.SetViewport(cfg.Window.Width, cfg.Window.Height)

	if err := c.RebuildTerrain(d); err != nil {
		return nil, err
	}
	c.logger.Info("simulation ready", "seed", seed, "gravity", cfg.Physics.Gravity)
	return c, nil
}

func (c *Context) Settings() config.Settings {
	return c.settings
}

func (c *Context) Logger() *log.Logger {
	return c.logger
}

// Push queues a command for the next Tick. Safe from any goroutine.
func (c *Context) Push(cmd Command) {
	c.queue.Push(cmd)
}

// Tick applies queued commands, then steps and synchronizes.
func (c *Context) Tick(dt float32) StepStats {
	for _, cmd := range c.queue.Drain() {
		if err := cmd.Apply(c); err != nil {
			c.logger.Warn("command failed", "cmd", cmd, "err", err)
		}
	}
	return Step(c.World, c.Registry, c.Scene, dt, c.logger)
}

// SelectAt picks the dynamic body hit by ray, if any.
func (c *Context) SelectAt(ray camera.Ray) (BodyID, bool) {
	hit, ok := c.World.Raycast(ray.Origin, ray.Direction, c.Camera.Far)
	if !ok {
		return 0, false
	}
	b, ok := c.Registry.Lookup(hit.Body)
	if !ok || b.Mass == 0 {
		return 0, false
	}
	c.Selected = b.ID
	return b.ID, true
}

// BodyPosition reads the synchronized position of a body's visual node.
func (c *Context) BodyPosition(id BodyID) (mgl32.Vec3, bool) {
	uid, ok := c.Registry.Visual(id)
	if !ok {
		return mgl32.Vec3{}, false
	}
	n := c.Scene.FindByUID(uid)
	if n == nil {
		return mgl32.Vec3{}, false
	}
	return n.Transform.Position, true
}
