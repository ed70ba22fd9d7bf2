package sim

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"

	"terrainsim/internal/physics"
)

var (
	ErrUnknownBody = errors.New("sim: unknown body")
	ErrNotDynamic  = errors.New("sim: body is static")
	ErrInvalidMass = errors.New("sim: invalid mass")
)

// BodyID identifies a registered body. Zero is never issued.
type BodyID uint64

// Body is the registry's record of one simulated object.
type Body struct {
	ID    BodyID
	Kind  physics.ShapeType
	Mass  float32
	Rigid *physics.RigidBody
}

// Registry owns every physics body and maps it to the UID of its visual node.
// Bodies with positive mass form the dynamic set that the stepper synchronizes.
type Registry struct {
	world   *physics.World
	bodies  map[BodyID]*Body
	order   []BodyID
	dynamic []BodyID
	visuals map[BodyID]uint64
	nextID  BodyID
	logger  *log.Logger
}

func NewRegistry(world *physics.World, logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.Default()
	}
	return &Registry{
		world:   world,
		bodies:  make(map[BodyID]*Body),
		visuals: make(map[BodyID]uint64),
		logger:  logger,
	}
}

// CreateBody builds a rigid body around shape, adds it to the world and links it
// to the visual node visual. A positive mass makes the body dynamic and keeps it
// permanently awake; zero makes it static.
func (r *Registry) CreateBody(visual uint64, shape physics.Shape, mass float32, pos mgl32.Vec3, rot mgl32.Quat) (BodyID, error) {
	if mass < 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidMass, mass)
	}

	var inertia mgl32.Vec3
	if mass > 0 {
		inertia = shape.CalculateLocalInertia(mass)
	}
	ms := physics.NewDefaultMotionState(physics.NewTransform(pos, rot))
	rigid := physics.NewRigidBody(physics.NewRigidBodyConstructionInfo(mass, ms, shape, inertia))

	if err := r.world.AddRigidBody(rigid); err != nil {
		return 0, fmt.Errorf("sim: add body: %w", err)
	}

	r.nextID++
	id := r.nextID
	rigid.UserIndex = int(id)
	r.bodies[id] = &Body{ID: id, Kind: shape.Type(), Mass: mass, Rigid: rigid}
	r.order = append(r.order, id)
	r.visuals[id] = visual

	if mass > 0 {
		rigid.SetActivationState(physics.DisableDeactivation)
		r.dynamic = append(r.dynamic, id)
	}

	r.logger.Debug("body created", "id", id, "kind", shape.Type(), "mass", mass, "visual", visual)
	return id, nil
}

// SetMass recomputes local inertia from the body's own shape and applies it in
// place. Only dynamic bodies can change mass, and only to a positive value.
func (r *Registry) SetMass(id BodyID, mass float32) error {
	b, ok := r.bodies[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownBody, id)
	}
	if mass <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidMass, mass)
	}
	if b.Mass == 0 {
		return fmt.Errorf("%w: %d", ErrNotDynamic, id)
	}

	inertia := b.Rigid.CollisionShape().CalculateLocalInertia(mass)
	b.Rigid.SetMassProps(mass, inertia)
	b.Mass = mass
	r.logger.Debug("mass changed", "id", id, "mass", mass, "inertia", inertia)
	return nil
}

// RemoveBody detaches the body from the world and forgets it.
func (r *Registry) RemoveBody(id BodyID) error {
	b, ok := r.bodies[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownBody, id)
	}
	r.world.RemoveRigidBody(b.Rigid)
	delete(r.bodies, id)
	delete(r.visuals, id)
	r.order = removeID(r.order, id)
	r.dynamic = removeID(r.dynamic, id)
	r.logger.Debug("body removed", "id", id)
	return nil
}

func removeID(ids []BodyID, id BodyID) []BodyID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

func (r *Registry) Get(id BodyID) (*Body, bool) {
	b, ok := r.bodies[id]
	return b, ok
}

// Lookup finds the registry entry for a rigid body, e.g. from a raycast hit.
func (r *Registry) Lookup(rigid *physics.RigidBody) (*Body, bool) {
	if rigid == nil || rigid.UserIndex <= 0 {
		return nil, false
	}
	b, ok := r.bodies[BodyID(rigid.UserIndex)]
	if !ok || b.Rigid != rigid {
		return nil, false
	}
	return b, true
}

// Visual returns the UID of the node linked to id.
func (r *Registry) Visual(id BodyID) (uint64, bool) {
	uid, ok := r.visuals[id]
	return uid, ok
}

func (r *Registry) IsDynamic(id BodyID) bool {
	b, ok := r.bodies[id]
	return ok && b.Mass > 0
}

// Dynamic returns the dynamic set in creation order.
func (r *Registry) Dynamic() []BodyID {
	out := make([]BodyID, len(r.dynamic))
	copy(out, r.dynamic)
	return out
}

// Bodies returns every body in creation order.
func (r *Registry) Bodies() []*Body {
	out := make([]*Body, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.bodies[id])
	}
	return out
}

func (r *Registry) Len() int {
	return len(r.bodies)
}
