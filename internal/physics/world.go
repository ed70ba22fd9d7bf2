package physics

import (
	"errors"
	"math"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultFixedTimeStep    = float32(1.0 / 60.0)
	DefaultMaxSubSteps      = 1
	DefaultSolverIterations = 6
)

// Spatial grid cell size - objects within same or neighboring cells are checked
const CellSize = 5.0

var ErrAlreadyInWorld = errors.New("physics: body already added to a world")

// CellKey addresses a spatial hash cell.
type CellKey struct {
	X, Y, Z int
}

func posToCell(pos mgl32.Vec3, size float32) CellKey {
	return CellKey{
		X: int(math.Floor(float64(pos.X() / size))),
		Y: int(math.Floor(float64(pos.Y() / size))),
		Z: int(math.Floor(float64(pos.Z() / size))),
	}
}

// World is a discrete dynamics world with fixed-step integration.
type World struct {
	Gravity          mgl32.Vec3
	FixedTimeStep    float32
	MaxSubSteps      int
	SolverIterations int

	bodies    []*RigidBody
	grid      map[CellKey][]*RigidBody
	contacts  []contact
	localTime float32
	logger    *log.Logger
}

// NewWorld returns a world with gravity (0, -9.8, 0). logger may be nil.
func NewWorld(logger *log.Logger) *World {
	if logger == nil {
		logger = log.Default()
	}
	return &World{
		Gravity:          mgl32.Vec3{0, -9.8, 0},
		FixedTimeStep:    DefaultFixedTimeStep,
		MaxSubSteps:      DefaultMaxSubSteps,
		SolverIterations: DefaultSolverIterations,
		grid:             make(map[CellKey][]*RigidBody),
		logger:           logger.WithPrefix("physics"),
	}
}

func (w *World) AddRigidBody(b *RigidBody) error {
	if b.world != nil {
		return ErrAlreadyInWorld
	}
	b.world = w
	b.UpdateInertiaTensor()
	w.bodies = append(w.bodies, b)
	w.logger.Debug("body added", "shape", b.shape.Type(), "mass", b.mass, "bodies", len(w.bodies))
	return nil
}

// RemoveRigidBody reports whether b was part of this world.
func (w *World) RemoveRigidBody(b *RigidBody) bool {
	if b.world != w {
		return false
	}
	for i, obj := range w.bodies {
		if obj == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			b.world = nil
			w.logger.Debug("body removed", "shape", b.shape.Type(), "bodies", len(w.bodies))
			return true
		}
	}
	return false
}

func (w *World) NumBodies() int {
	return len(w.bodies)
}

// Bodies returns a copy of the body list in insertion order.
func (w *World) Bodies() []*RigidBody {
	out := make([]*RigidBody, len(w.bodies))
	copy(out, w.bodies)
	return out
}

// ContactCount is the number of contacts found in the last substep.
func (w *World) ContactCount() int {
	return len(w.contacts)
}

// StepSimulation advances the world by dt in fixed substeps and returns how many
// were taken. Time that would need more than MaxSubSteps substeps is dropped.
// Motion states are only written when at least one substep ran.
func (w *World) StepSimulation(dt float32) int {
	if dt <= 0 {
		return 0
	}
	fixed := w.FixedTimeStep
	if fixed <= 0 {
		fixed = DefaultFixedTimeStep
	}
	maxSteps := max(w.MaxSubSteps, 1)

	w.localTime += dt
	steps := int(w.localTime / fixed)
	w.localTime -= float32(steps) * fixed
	if steps > maxSteps {
		w.logger.Debug("dropping substeps", "wanted", steps, "max", maxSteps)
		steps = maxSteps
	}

	for range steps {
		w.internalStep(fixed)
	}
	if steps > 0 {
		w.synchronizeMotionStates()
	}
	return steps
}

func (w *World) internalStep(h float32) {
	// 1. Integrate velocities and positions
	for _, b := range w.bodies {
		if b.IsStatic() || !b.IsActive() {
			continue
		}
		b.linearVel = b.linearVel.Add(w.Gravity.Mul(h))
		if b.linearDamp > 0 {
			b.linearVel = b.linearVel.Mul(float32(math.Pow(float64(1-b.linearDamp), float64(h))))
		}
		if b.angularDamp > 0 {
			b.angularVel = b.angularVel.Mul(float32(math.Pow(float64(1-b.angularDamp), float64(h))))
		}
		b.transform.Origin = b.transform.Origin.Add(b.linearVel.Mul(h))
		b.transform.Rotation = integrateRotation(b.transform.Rotation, b.angularVel, h)
		b.UpdateInertiaTensor()
	}

	// 2. Find contacts
	w.detectContacts()

	// 3. Sequential impulses, then positional correction
	for i := range w.contacts {
		wakeOnImpact(&w.contacts[i])
	}
	for range max(w.SolverIterations, 1) {
		for i := range w.contacts {
			resolveVelocity(&w.contacts[i])
		}
	}
	for i := range w.contacts {
		correctPosition(&w.contacts[i])
	}

	// 4. Sleep
	for _, b := range w.bodies {
		if b.IsStatic() || !b.IsActive() {
			continue
		}
		b.trySleep(h)
	}
}

// integrateRotation advances q by angular velocity omega over h.
func integrateRotation(q mgl32.Quat, omega mgl32.Vec3, h float32) mgl32.Quat {
	if omega.Len() == 0 {
		return q
	}
	spin := mgl32.Quat{W: 0, V: omega}.Mul(q).Scale(0.5 * h)
	return q.Add(spin).Normalize()
}

// detectContacts runs a spatial-hash broad phase over dynamic bodies and tests
// every dynamic body against every static one.
func (w *World) detectContacts() {
	w.contacts = w.contacts[:0]
	clear(w.grid)

	var dynamic, static []*RigidBody
	cell := float32(CellSize)
	for _, b := range w.bodies {
		if b.state == DisableSimulation {
			continue
		}
		if b.IsStatic() {
			static = append(static, b)
			continue
		}
		dynamic = append(dynamic, b)
		cell = max(cell, 2*(b.shape.BoundingRadius()+b.shape.Margin()))
	}

	for _, b := range dynamic {
		key := posToCell(b.transform.Origin, cell)
		w.grid[key] = append(w.grid[key], b)
	}

	checked := make(map[[2]*RigidBody]bool)
	for _, b := range dynamic {
		key := posToCell(b.transform.Origin, cell)
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				for dz := -1; dz <= 1; dz++ {
					for _, other := range w.grid[CellKey{key.X + dx, key.Y + dy, key.Z + dz}] {
						if other == b {
							continue
						}
						pair := [2]*RigidBody{b, other}
						if checked[pair] || checked[[2]*RigidBody{other, b}] {
							continue
						}
						checked[pair] = true
						if !b.IsActive() && !other.IsActive() {
							continue
						}
						w.addContact(b, other)
					}
				}
			}
		}
	}

	for _, b := range dynamic {
		if !b.IsActive() {
			continue
		}
		box := BodyAABB(b)
		for _, s := range static {
			if !box.Intersects(BodyAABB(s)) {
				continue
			}
			w.addContact(b, s)
		}
	}
}

func (w *World) addContact(a, b *RigidBody) {
	if !BodyAABB(a).Intersects(BodyAABB(b)) {
		return
	}
	w.contacts = appendContacts(w.contacts, a, b)
}

// synchronizeMotionStates pushes each moving body's transform to its motion state.
func (w *World) synchronizeMotionStates() {
	for _, b := range w.bodies {
		if b.IsStatic() || b.motionState == nil {
			continue
		}
		b.motionState.SetWorldTransform(b.transform)
	}
}
