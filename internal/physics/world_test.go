package physics

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func newSphereBody(mass, radius float32, pos mgl32.Vec3) *RigidBody {
	shape := NewSphereShape(radius)
	ms := NewDefaultMotionState(NewTransform(pos, mgl32.QuatIdent()))
	return NewRigidBody(NewRigidBodyConstructionInfo(mass, ms, shape, shape.CalculateLocalInertia(mass)))
}

// flatGround is a 20x20 heightfield at y=0.
func flatGround(t *testing.T) *RigidBody {
	t.Helper()
	hf, err := NewHeightfieldTerrainShape(3, 3, make([]float32, 9), -1, 1)
	if err != nil {
		t.Fatal(err)
	}
	hf.SetLocalScaling(mgl32.Vec3{10, 1, 10})
	ms := NewDefaultMotionState(IdentityTransform())
	return NewRigidBody(NewRigidBodyConstructionInfo(0, ms, hf, mgl32.Vec3{}))
}

func TestAddRigidBodyTwice(t *testing.T) {
	w := NewWorld(nil)
	b := newSphereBody(1, 1, mgl32.Vec3{})

	if err := w.AddRigidBody(b); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := w.AddRigidBody(b); !errors.Is(err, ErrAlreadyInWorld) {
		t.Errorf("second add err = %v, want ErrAlreadyInWorld", err)
	}
	if w.NumBodies() != 1 {
		t.Errorf("NumBodies = %d, want 1", w.NumBodies())
	}
	if !b.InWorld() {
		t.Error("body should report InWorld after add")
	}
}

func TestRemoveRigidBody(t *testing.T) {
	w := NewWorld(nil)
	a := newSphereBody(1, 1, mgl32.Vec3{})
	b := newSphereBody(1, 1, mgl32.Vec3{5, 0, 0})
	w.AddRigidBody(a)
	w.AddRigidBody(b)

	if !w.RemoveRigidBody(a) {
		t.Fatal("RemoveRigidBody returned false for a member")
	}
	if w.RemoveRigidBody(a) {
		t.Error("second RemoveRigidBody should return false")
	}
	if w.NumBodies() != 1 || w.Bodies()[0] != b {
		t.Errorf("remaining bodies = %v, want only b", w.Bodies())
	}
	if a.InWorld() {
		t.Error("removed body should not report InWorld")
	}
	if err := w.AddRigidBody(a); err != nil {
		t.Errorf("re-adding a removed body: %v", err)
	}
}

func TestStepZeroDelta(t *testing.T) {
	w := NewWorld(nil)
	b := newSphereBody(1, 1, mgl32.Vec3{0, 10, 0})
	w.AddRigidBody(b)

	if n := w.StepSimulation(0); n != 0 {
		t.Errorf("StepSimulation(0) = %d substeps, want 0", n)
	}
	got := b.MotionState().WorldTransform().Origin
	if got != (mgl32.Vec3{0, 10, 0}) {
		t.Errorf("motion state moved to %v on a zero step", got)
	}
}

func TestGravityStep(t *testing.T) {
	w := NewWorld(nil)
	b := newSphereBody(1, 1, mgl32.Vec3{0, 10, 0})
	w.AddRigidBody(b)

	if n := w.StepSimulation(DefaultFixedTimeStep); n != 1 {
		t.Fatalf("substeps = %d, want 1", n)
	}

	h := DefaultFixedTimeStep
	wantV := -9.8 * h
	wantY := 10 + wantV*h
	if v := b.LinearVelocity().Y(); absf(v-wantV) > 1e-5 {
		t.Errorf("vy = %v, want %v", v, wantV)
	}
	got := b.MotionState().WorldTransform().Origin
	if absf(got.Y()-wantY) > 1e-5 {
		t.Errorf("y = %v, want %v", got.Y(), wantY)
	}
	if got != b.WorldTransform().Origin {
		t.Error("motion state should match the body transform after a step")
	}
}

func TestMaxSubStepsClamp(t *testing.T) {
	w := NewWorld(nil)
	w.AddRigidBody(newSphereBody(1, 1, mgl32.Vec3{}))

	if n := w.StepSimulation(0.5); n != DefaultMaxSubSteps {
		t.Errorf("substeps = %d, want %d", n, DefaultMaxSubSteps)
	}

	w = NewWorld(nil)
	w.MaxSubSteps = 10
	if n := w.StepSimulation(3*DefaultFixedTimeStep + 0.001); n != 3 {
		t.Errorf("substeps with MaxSubSteps=10 = %d, want 3", n)
	}
}

func TestNilMotionState(t *testing.T) {
	w := NewWorld(nil)
	shape := NewSphereShape(1)
	info := NewRigidBodyConstructionInfo(1, nil, shape, shape.CalculateLocalInertia(1))
	info.StartTransform = NewTransform(mgl32.Vec3{0, 5, 0}, mgl32.QuatIdent())
	b := NewRigidBody(info)
	w.AddRigidBody(b)

	w.StepSimulation(DefaultFixedTimeStep)

	if b.MotionState() != nil {
		t.Error("motion state should stay nil")
	}
	if b.WorldTransform().Origin.Y() >= 5 {
		t.Error("body without a motion state should still fall")
	}
}

func TestStaticBodyNeverMoves(t *testing.T) {
	w := NewWorld(nil)
	ground := flatGround(t)
	w.AddRigidBody(ground)
	w.AddRigidBody(newSphereBody(10, 1, mgl32.Vec3{0, 3, 0}))

	for range 120 {
		w.StepSimulation(DefaultFixedTimeStep)
	}
	if got := ground.WorldTransform().Origin; got != (mgl32.Vec3{}) {
		t.Errorf("static body moved to %v", got)
	}
}

func TestSphereRestsOnHeightfield(t *testing.T) {
	w := NewWorld(nil)
	w.AddRigidBody(flatGround(t))
	ball := newSphereBody(1, 1, mgl32.Vec3{0, 3, 0})
	w.AddRigidBody(ball)

	if n := w.ContactCount(); n != 0 {
		t.Errorf("ContactCount before stepping = %d, want 0", n)
	}
	// Landed after about 0.65 s and still awake.
	for range 60 {
		w.StepSimulation(DefaultFixedTimeStep)
	}
	if w.ContactCount() == 0 {
		t.Error("landed sphere should be in contact with the ground")
	}
	for range 240 {
		w.StepSimulation(DefaultFixedTimeStep)
	}

	y := ball.MotionState().WorldTransform().Origin.Y()
	if y < 0.9 || y > 1.05 {
		t.Errorf("resting sphere centre y = %v, want about 1", y)
	}
}

func TestSleepAndDisableDeactivation(t *testing.T) {
	w := NewWorld(nil)
	w.AddRigidBody(flatGround(t))
	sleeper := newSphereBody(1, 1, mgl32.Vec3{-5, 1.2, 0})
	awake := newSphereBody(1, 1, mgl32.Vec3{5, 1.2, 0})
	awake.SetActivationState(DisableDeactivation)
	w.AddRigidBody(sleeper)
	w.AddRigidBody(awake)

	for range 240 {
		w.StepSimulation(DefaultFixedTimeStep)
	}

	if got := sleeper.ActivationState(); got != IslandSleeping {
		t.Errorf("resting body state = %d, want IslandSleeping", got)
	}
	if got := awake.ActivationState(); got != DisableDeactivation {
		t.Errorf("pinned body state = %d, want DisableDeactivation", got)
	}

	// Waking is explicit
	sleeper.SetLinearVelocity(mgl32.Vec3{0, 5, 0})
	if !sleeper.IsActive() {
		t.Error("SetLinearVelocity should wake the body")
	}
}

func TestSetActivationStateRespectsDisable(t *testing.T) {
	b := newSphereBody(1, 1, mgl32.Vec3{})
	b.SetActivationState(DisableDeactivation)
	b.SetActivationState(ActiveTag)
	if b.ActivationState() != DisableDeactivation {
		t.Errorf("state = %d, want DisableDeactivation to stick", b.ActivationState())
	}
	b.ForceActivationState(ActiveTag)
	if b.ActivationState() != ActiveTag {
		t.Errorf("ForceActivationState did not apply")
	}
}

func TestSetMassProps(t *testing.T) {
	b := newSphereBody(1, 1, mgl32.Vec3{})
	inertia := b.CollisionShape().CalculateLocalInertia(5)
	b.SetMassProps(5, inertia)

	if b.Mass() != 5 || absf(b.InvMass()-0.2) > 1e-6 {
		t.Errorf("mass = %v inv = %v, want 5 and 0.2", b.Mass(), b.InvMass())
	}
	if !vecNear(b.LocalInertia(), mgl32.Vec3{2, 2, 2}, 1e-5) {
		t.Errorf("inertia = %v, want (2, 2, 2)", b.LocalInertia())
	}

	b.SetMassProps(0, mgl32.Vec3{})
	if !b.IsStatic() {
		t.Error("zero mass should make the body static")
	}
}

func TestRaycastSphere(t *testing.T) {
	w := NewWorld(nil)
	target := newSphereBody(0, 1, mgl32.Vec3{0, 0, -5})
	w.AddRigidBody(target)

	hit, ok := w.Raycast(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, 100)
	if !ok {
		t.Fatal("ray should hit the sphere")
	}
	if hit.Body != target {
		t.Error("wrong body hit")
	}
	if absf(hit.Distance-4) > 1e-4 {
		t.Errorf("distance = %v, want 4", hit.Distance)
	}
	if !vecNear(hit.Normal, mgl32.Vec3{0, 0, 1}, 1e-4) {
		t.Errorf("normal = %v, want (0, 0, 1)", hit.Normal)
	}

	if _, ok := w.Raycast(mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}, 100); ok {
		t.Error("ray pointing away should miss")
	}
}

func TestRaycastBox(t *testing.T) {
	w := NewWorld(nil)
	shape := NewBoxShape(mgl32.Vec3{1, 1, 1})
	info := NewRigidBodyConstructionInfo(0, nil, shape, mgl32.Vec3{})
	info.StartTransform = NewTransform(mgl32.Vec3{5, 0, 0}, mgl32.QuatIdent())
	w.AddRigidBody(NewRigidBody(info))

	hit, ok := w.Raycast(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, 100)
	if !ok {
		t.Fatal("ray should hit the box")
	}
	if absf(hit.Distance-4) > 1e-4 {
		t.Errorf("distance = %v, want 4", hit.Distance)
	}
	if !vecNear(hit.Normal, mgl32.Vec3{-1, 0, 0}, 1e-4) {
		t.Errorf("normal = %v, want (-1, 0, 0)", hit.Normal)
	}
}

func TestRaycastHeightfield(t *testing.T) {
	w := NewWorld(nil)
	w.AddRigidBody(flatGround(t))

	hit, ok := w.Raycast(mgl32.Vec3{1, 10, 1}, mgl32.Vec3{0, -1, 0}, 100)
	if !ok {
		t.Fatal("ray should hit the ground")
	}
	if absf(hit.Distance-10) > 0.01 {
		t.Errorf("distance = %v, want 10", hit.Distance)
	}
	if !vecNear(hit.Normal, mgl32.Vec3{0, 1, 0}, 1e-4) {
		t.Errorf("normal = %v, want up", hit.Normal)
	}
}
