package integrator

import (
	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/scene"
)

// PathIntegrator is the stochastic recursive path tracer.
// It is safe for concurrent use as long as every goroutine owns its sampler.
type PathIntegrator struct {
	scene  *scene.Scene
	config Config
}

// NewPathIntegrator creates a path integrator for a scene
func NewPathIntegrator(sc *scene.Scene, config Config) *PathIntegrator {
	return &PathIntegrator{
		scene:  sc,
		config: config,
	}
}

// Config returns the integrator settings
func (pi *PathIntegrator) Config() Config {
	return pi.config
}

// RayColor computes the color for a primary ray
func (pi *PathIntegrator) RayColor(ray core.Ray, sampler core.Sampler) core.Vec3 {
	color, _ := pi.TracePath(&ray, 0, false, sampler)
	return color
}

// TracePath returns the radiance along ray at recursion index r and whether
// the path resolved to a surface. The resolved color is also stored on the ray
// along with the normal, side, event and surface id of the hit.
//
// Shader mode is used for shadow-style paths: lighting is not evaluated, the
// Fresnel term is dropped and specular bounces are weighted by their cosine.
func (pi *PathIntegrator) TracePath(ray *core.Ray, r int, shader bool, sampler core.Sampler) (core.Vec3, bool) {
	ray.Recursion = r

	// Depth exhausted: no light, even in front of an emitter
	if r >= pi.config.MaxDepth {
		ray.Color = core.Vec3{}
		return core.Vec3{}, false
	}

	// Closest hit, or background on a miss
	hit, isHit := pi.scene.Hit(*ray, pi.config.Epsilon, pi.config.FarBound)
	if !isHit {
		ray.Color = pi.scene.Background
		ray.SurfaceID = 0
		return ray.Color, false
	}

	surface := hit.Surface

	// Emitters fully determine the result
	if surface.IsEmissive() {
		ray.Color = surface.ColorAt(hit)
		ray.SurfaceID = surface.ID()
		return ray.Color, true
	}

	// Normal facing the incoming ray
	hit.Normal = surface.NormalAt(hit.Point, hit.Side)
	ray.Normal = hit.Normal
	ray.Side = hit.Side

	// Light layered under this bounce
	var under core.Vec3
	if !shader && pi.scene.Lighting != nil {
		under = pi.scene.Lighting.Evaluate(pi.scene, ray, hit, pi, sampler)
	}

	attenuation := surface.ColorAt(hit)

	event := SampleEvent(surface.Material(), ray.Direction, hit.Normal, hit.Side, shader, sampler, pi.config.ReflectionFloor)
	ray.Event = event.Event

	// Displace the origin off the surface and weight the continuation
	offset := hit.Normal.Multiply(pi.config.Epsilon)
	cos := event.Direction.Dot(hit.Normal)

	var origin core.Vec3
	intensity := 1.0
	switch event.Event {
	case core.EventReflection:
		origin = hit.Point.Add(offset)
		if shader {
			intensity = cos
		}
	case core.EventRefraction:
		origin = hit.Point.Subtract(offset)
		if shader {
			intensity = -cos
		}
	default:
		origin = hit.Point.Add(offset)
		intensity = cos
	}

	next := core.NewRay(origin, event.Direction)
	incoming, _ := pi.TracePath(&next, r+1, shader, sampler)

	var bounce core.Vec3
	if event.Event == core.EventReflection {
		bounce = incoming.Multiply(intensity)
	} else {
		bounce = incoming.MultiplyVec(attenuation).Multiply(intensity)
	}

	// Transport term first, layered light after
	color := bounce.Add(under)

	ray.SurfaceID = surface.ID()
	ray.Color = color
	return color, true
}
