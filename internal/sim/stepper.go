package sim

import (
	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"

	"terrainsim/internal/physics"
)

// TransformSink receives synchronized transforms. *engine.Scene satisfies it.
type TransformSink interface {
	SetTransform(uid uint64, pos mgl32.Vec3, rot mgl32.Quat) bool
}

// StepStats reports one Step call.
type StepStats struct {
	SubSteps int // physics substeps taken
	Synced   int // dynamic bodies written to the sink
	Skipped  int // dynamic bodies without a motion state or visual
	Contacts int // contacts in the last substep, zero when none ran
}

// Step advances world by dt, then copies the motion state of every dynamic body
// into its visual node. All bodies are read after the step completes. A body
// that cannot be synchronized is logged and skipped; the rest still are.
func Step(world *physics.World, reg *Registry, sink TransformSink, dt float32, logger *log.Logger) StepStats {
	if logger == nil {
		logger = log.Default()
	}
	stats := StepStats{SubSteps: world.StepSimulation(dt)}
	if stats.SubSteps > 0 {
		stats.Contacts = world.ContactCount()
	}

	for _, id := range reg.dynamic {
		b := reg.bodies[id]
		ms := b.Rigid.MotionState()
		if ms == nil {
			logger.Warn("missing motion state", "body", id)
			stats.Skipped++
			continue
		}
		uid, ok := reg.visuals[id]
		if !ok {
			logger.Warn("body has no visual", "body", id)
			stats.Skipped++
			continue
		}
		t := ms.WorldTransform()
		if !sink.SetTransform(uid, t.Origin, t.Rotation) {
			logger.Debug("visual node gone", "body", id, "visual", uid)
			stats.Skipped++
			continue
		}
		stats.Synced++
	}
	return stats
}
