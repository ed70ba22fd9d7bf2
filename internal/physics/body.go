package physics

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ActivationState controls whether a body takes part in simulation steps.
type ActivationState int

const (
	ActiveTag ActivationState = iota + 1
	IslandSleeping
	WantsDeactivation
	// DisableDeactivation keeps a body awake forever.
	DisableDeactivation
	DisableSimulation
)

// Sleep thresholds
const (
	SleepLinearThreshold  = 0.8 // linear speed below which a body may sleep
	SleepAngularThreshold = 1.0 // angular speed below which a body may sleep
	DeactivationTime      = 2.0 // seconds below both thresholds before sleeping
)

// Transform is a rigid placement: rotation about the origin, then translation.
type Transform struct {
	Origin   mgl32.Vec3
	Rotation mgl32.Quat
}

func IdentityTransform() Transform {
	return Transform{Rotation: mgl32.QuatIdent()}
}

func NewTransform(origin mgl32.Vec3, rotation mgl32.Quat) Transform {
	return Transform{Origin: origin, Rotation: rotation}
}

// Apply maps a local point to world space.
func (t Transform) Apply(p mgl32.Vec3) mgl32.Vec3 {
	return t.Origin.Add(t.Rotation.Rotate(p))
}

// InverseApply maps a world point to local space.
func (t Transform) InverseApply(p mgl32.Vec3) mgl32.Vec3 {
	return t.Rotation.Conjugate().Rotate(p.Sub(t.Origin))
}

// MotionState receives a body's world transform after each step. Renderers
// read the transform back from here.
type MotionState interface {
	WorldTransform() Transform
	SetWorldTransform(t Transform)
}

type DefaultMotionState struct {
	transform Transform
}

func NewDefaultMotionState(start Transform) *DefaultMotionState {
	return &DefaultMotionState{transform: start}
}

func (m *DefaultMotionState) WorldTransform() Transform {
	return m.transform
}

func (m *DefaultMotionState) SetWorldTransform(t Transform) {
	m.transform = t
}

// RigidBodyConstructionInfo gathers everything needed to build a RigidBody.
// The start transform is taken from MotionState when one is set.
type RigidBodyConstructionInfo struct {
	Mass           float32
	MotionState    MotionState
	StartTransform Transform
	Shape          Shape
	LocalInertia   mgl32.Vec3

	Friction       float32
	Restitution    float32
	LinearDamping  float32
	AngularDamping float32
}

func NewRigidBodyConstructionInfo(mass float32, ms MotionState, shape Shape, localInertia mgl32.Vec3) RigidBodyConstructionInfo {
	return RigidBodyConstructionInfo{
		Mass:           mass,
		MotionState:    ms,
		StartTransform: IdentityTransform(),
		Shape:          shape,
		LocalInertia:   localInertia,
		Friction:       0.5,
	}
}

type RigidBody struct {
	shape       Shape
	motionState MotionState
	transform   Transform

	mass         float32
	invMass      float32
	localInertia mgl32.Vec3
	invInertia   mgl32.Vec3 // local, per axis
	invInertiaW  mgl32.Mat3 // world space
	linearVel    mgl32.Vec3
	angularVel   mgl32.Vec3
	friction     float32
	restitution  float32
	linearDamp   float32
	angularDamp  float32
	state        ActivationState
	sleepTimer   float32
	world        *World
	UserIndex    int
}

func NewRigidBody(info RigidBodyConstructionInfo) *RigidBody {
	b := &RigidBody{
		shape:       info.Shape,
		motionState: info.MotionState,
		transform:   info.StartTransform,
		friction:    info.Friction,
		restitution: info.Restitution,
		linearDamp:  info.LinearDamping,
		angularDamp: info.AngularDamping,
		state:       ActiveTag,
		UserIndex:   -1,
	}
	if info.MotionState != nil {
		b.transform = info.MotionState.WorldTransform()
	}
	if b.transform.Rotation == (mgl32.Quat{}) {
		b.transform.Rotation = mgl32.QuatIdent()
	}
	b.SetMassProps(info.Mass, info.LocalInertia)
	return b
}

// SetMassProps sets mass and local inertia. A zero mass makes the body static.
func (b *RigidBody) SetMassProps(mass float32, inertia mgl32.Vec3) {
	b.mass = mass
	b.localInertia = inertia
	if mass == 0 {
		b.invMass = 0
	} else {
		b.invMass = 1 / mass
	}
	for i := range 3 {
		if inertia[i] != 0 {
			b.invInertia[i] = 1 / inertia[i]
		} else {
			b.invInertia[i] = 0
		}
	}
	b.UpdateInertiaTensor()
}

// UpdateInertiaTensor refreshes the world-space inverse inertia from the current rotation.
func (b *RigidBody) UpdateInertiaTensor() {
	r := b.transform.Rotation.Mat4().Mat3()
	b.invInertiaW = r.Mul3(mgl32.Diag3(b.invInertia)).Mul3(r.Transpose())
}

func (b *RigidBody) Mass() float32 { return b.mass }

func (b *RigidBody) InvMass() float32 { return b.invMass }

func (b *RigidBody) LocalInertia() mgl32.Vec3 { return b.localInertia }

func (b *RigidBody) IsStatic() bool { return b.invMass == 0 }

func (b *RigidBody) CollisionShape() Shape { return b.shape }

// MotionState may be nil.
func (b *RigidBody) MotionState() MotionState { return b.motionState }

func (b *RigidBody) SetMotionState(ms MotionState) { b.motionState = ms }

func (b *RigidBody) WorldTransform() Transform { return b.transform }

func (b *RigidBody) SetWorldTransform(t Transform) {
	b.transform = t
	b.UpdateInertiaTensor()
}

func (b *RigidBody) LinearVelocity() mgl32.Vec3 { return b.linearVel }

func (b *RigidBody) SetLinearVelocity(v mgl32.Vec3) {
	b.linearVel = v
	b.Activate()
}

func (b *RigidBody) AngularVelocity() mgl32.Vec3 { return b.angularVel }

func (b *RigidBody) Friction() float32 { return b.friction }

func (b *RigidBody) SetFriction(f float32) { b.friction = f }

func (b *RigidBody) Restitution() float32 { return b.restitution }

func (b *RigidBody) SetRestitution(r float32) { b.restitution = r }

func (b *RigidBody) ActivationState() ActivationState { return b.state }

// SetActivationState leaves bodies in DisableDeactivation or DisableSimulation untouched.
func (b *RigidBody) SetActivationState(s ActivationState) {
	if b.state != DisableDeactivation && b.state != DisableSimulation {
		b.state = s
	}
}

func (b *RigidBody) ForceActivationState(s ActivationState) {
	b.state = s
}

// Activate wakes a sleeping body.
func (b *RigidBody) Activate() {
	if b.invMass == 0 {
		return
	}
	if b.state == IslandSleeping || b.state == WantsDeactivation {
		b.state = ActiveTag
	}
	b.sleepTimer = 0
}

func (b *RigidBody) IsActive() bool {
	return b.state != IslandSleeping && b.state != DisableSimulation
}

// InWorld reports whether the body is currently registered with a world.
func (b *RigidBody) InWorld() bool { return b.world != nil }

func (b *RigidBody) velocityAt(r mgl32.Vec3) mgl32.Vec3 {
	return b.linearVel.Add(b.angularVel.Cross(r))
}

func (b *RigidBody) applyImpulse(impulse, r mgl32.Vec3) {
	if b.invMass == 0 {
		return
	}
	b.linearVel = b.linearVel.Add(impulse.Mul(b.invMass))
	b.angularVel = b.angularVel.Add(b.invInertiaW.Mul3x1(r.Cross(impulse)))
}

// trySleep advances the deactivation timer and puts a resting body to sleep.
func (b *RigidBody) trySleep(dt float32) {
	if b.state == DisableDeactivation || b.state == DisableSimulation {
		return
	}
	if b.linearVel.Len() < SleepLinearThreshold && b.angularVel.Len() < SleepAngularThreshold {
		b.sleepTimer += dt
		if b.sleepTimer >= DeactivationTime {
			b.state = IslandSleeping
			b.linearVel = mgl32.Vec3{}
			b.angularVel = mgl32.Vec3{}
		}
		return
	}
	b.sleepTimer = 0
	if b.state == WantsDeactivation {
		b.state = ActiveTag
	}
}
