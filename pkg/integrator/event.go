package integrator

import (
	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/material"
)

// EventSample is the outcome of choosing a transport event at a hit
type EventSample struct {
	Event     core.Event
	Direction core.Vec3 // Outgoing direction
	Schlick   float64   // Fresnel term used for a refraction candidate, 0 otherwise
}

// SampleEvent chooses between reflection, refraction and diffusion for a ray
// arriving with direction dir at a surface whose normal faces the ray.
//
// One draw u1 selects the event by the material coefficients. A refraction
// candidate always draws a second value u2 and turns into a reflection when
// floor < u2 < schlick. Total internal reflection always reflects. In shader
// mode the Fresnel term is zero so candidates refract unless refraction is impossible.
func SampleEvent(mat *material.Material, dir, normal core.Vec3, side core.Side, shader bool, sampler core.Sampler, floor float64) EventSample {
	u1 := sampler.Get1D()

	// Reflection
	if mat.Reflective > 0 && u1 <= mat.Reflective {
		return EventSample{Event: core.EventReflection, Direction: dir.Reflect(normal)}
	}

	// Refraction candidate
	if mat.Refractive > 0 && u1 <= mat.Reflective+mat.Refractive {
		eta := mat.Eta(side)
		cosTheta := -dir.Dot(normal)

		schlick := 0.0
		if !shader {
			schlick = material.Schlick(cosTheta, eta)
		}

		refracted, ok := dir.Refract(normal, cosTheta, eta)
		if !ok {
			schlick = 1.0
		}

		u2 := sampler.Get1D()
		if !ok || (u2 > floor && u2 < schlick) {
			return EventSample{Event: core.EventReflection, Direction: dir.Reflect(normal), Schlick: schlick}
		}
		return EventSample{Event: core.EventRefraction, Direction: refracted, Schlick: schlick}
	}

	// Diffusion over the uniform hemisphere
	return EventSample{
		Event:     core.EventDiffusion,
		Direction: core.SampleUniformHemisphere(normal, sampler.Get2D()),
	}
}
