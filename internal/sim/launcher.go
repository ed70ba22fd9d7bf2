package sim

import (
	"github.com/go-gl/mathgl/mgl32"

	"terrainsim/internal/camera"
	"terrainsim/internal/engine"
	"terrainsim/internal/physics"
)

// Launch spawns a projectile sphere one unit along ray and sends it along the
// ray at the configured speed. It is an ordinary dynamic body afterwards.
func (c *Context) Launch(ray camera.Ray) (BodyID, error) {
	p := c.settings.Projectile
	dir := ray.Direction
	if dir.Len() == 0 {
		return 0, camera.ErrDegenerateRay
	}
	dir = dir.Normalize()

	shape := physics.NewSphereShape(p.Radius)
	shape.SetMargin(c.settings.Physics.Margin)
	mat := c.Params.Ball.Clone()

	id, err := c.addBody("ball", TagProjectile, engine.SphereGeometry(p.Radius), shape, mat, p.Mass, ray.Origin.Add(dir))
	if err != nil {
		return 0, err
	}
	b, _ := c.Registry.Get(id)
	b.Rigid.SetLinearVelocity(dir.Mul(p.Speed))

	c.logger.Debug("launched", "body", id, "dir", dir)
	c.Launched.Invoke(id)
	return id, nil
}

// LaunchFromPointer unprojects a pointer in normalized device coordinates
// through cam and launches along the resulting ray.
func (c *Context) LaunchFromPointer(ndc mgl32.Vec2, cam *camera.Camera) (BodyID, error) {
	ray, err := cam.Unproject(ndc)
	if err != nil {
		return 0, err
	}
	return c.Launch(ray)
}
