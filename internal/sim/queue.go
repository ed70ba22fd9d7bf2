package sim

import (
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"terrainsim/internal/camera"
	"terrainsim/internal/shapes"
)

// Command is a deferred mutation applied at the start of a tick.
type Command interface {
	Apply(c *Context) error
}

// Queue collects commands from any goroutine until the frame loop drains them.
type Queue struct {
	mu      sync.Mutex
	pending []Command
}

func (q *Queue) Push(cmd Command) {
	q.mu.Lock()
	q.pending = append(q.pending, cmd)
	q.mu.Unlock()
}

// Drain returns the queued commands in push order and empties the queue.
func (q *Queue) Drain() []Command {
	q.mu.Lock()
	defer q.mu.Unlock()
	cmds := q.pending
	q.pending = nil
	return cmds
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// AddObject drops a new object above the terrain centre.
type AddObject struct {
	Kind       shapes.Kind
	SizeFactor float32
	Mass       float32
}

func (a AddObject) Apply(c *Context) error {
	_, err := c.AddObjectAboveTerrain(a.Kind, a.SizeFactor, a.Mass)
	return err
}

func (a AddObject) String() string {
	return fmt.Sprintf("add %v size=%v mass=%v", a.Kind, a.SizeFactor, a.Mass)
}

// SetMass changes the mass of Body, or of the selected body when Body is zero.
type SetMass struct {
	Body BodyID
	Mass float32
}

func (s SetMass) Apply(c *Context) error {
	id := s.Body
	if id == 0 {
		id = c.Selected
	}
	return c.Registry.SetMass(id, s.Mass)
}

func (s SetMass) String() string {
	return fmt.Sprintf("set-mass body=%d mass=%v", s.Body, s.Mass)
}

// RebuildTerrain regenerates the terrain from the current parameters.
type RebuildTerrain struct{}

func (RebuildTerrain) Apply(c *Context) error {
	return c.RebuildTerrain(c.Params.Terrain)
}

func (RebuildTerrain) String() string {
	return "rebuild-terrain"
}

// SetParam changes one entry of the parameter surface.
type SetParam struct {
	Name  string
	Value any
}

func (s SetParam) Apply(c *Context) error {
	return c.SetParam(s.Name, s.Value)
}

func (s SetParam) String() string {
	return fmt.Sprintf("set %s=%v", s.Name, s.Value)
}

// Launch fires a projectile through Pointer (normalized device coordinates)
// using Camera, or the context camera when Camera is nil.
type Launch struct {
	Pointer mgl32.Vec2
	Camera  *camera.Camera
}

func (l Launch) Apply(c *Context) error {
	cam := l.Camera
	if cam == nil {
		cam = c.Camera
	}
	_, err := c.LaunchFromPointer(l.Pointer, cam)
	return err
}

func (l Launch) String() string {
	return fmt.Sprintf("launch at %v", l.Pointer)
}

// Select picks the body under Pointer.
type Select struct {
	Pointer mgl32.Vec2
}

func (s Select) Apply(c *Context) error {
	ray, err := c.Camera.Unproject(s.Pointer)
	if err != nil {
		return err
	}
	if id, ok := c.SelectAt(ray); ok {
		c.logger.Info("selected", "body", id)
	}
	return nil
}
