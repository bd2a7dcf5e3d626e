package scene

import (
	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/geometry"
)

// AmbientFloor is the smallest ambient weight that still contributes
const AmbientFloor = 1.0 / 255.0

// Tracer traces a path through the scene. Lighting evaluators use it to cast
// shadow paths in shader mode.
type Tracer interface {
	TracePath(ray *core.Ray, r int, shader bool, sampler core.Sampler) (core.Vec3, bool)
}

// LightingEvaluator computes the light layered under a bounce at a hit.
// ray.Normal and hit.Normal are set before it is called.
type LightingEvaluator interface {
	Evaluate(sc *Scene, ray *core.Ray, hit *geometry.HitRecord, tracer Tracer, sampler core.Sampler) core.Vec3
}

// Lightings sums several evaluators in order
type Lightings []LightingEvaluator

// Evaluate returns the sum of all evaluator contributions
func (l Lightings) Evaluate(sc *Scene, ray *core.Ray, hit *geometry.HitRecord, tracer Tracer, sampler core.Sampler) core.Vec3 {
	var total core.Vec3
	for _, evaluator := range l {
		total = total.Add(evaluator.Evaluate(sc, ray, hit, tracer, sampler))
	}
	return total
}

// AmbientLighting adds the scene ambient term weighted by the view angle
type AmbientLighting struct{}

// Evaluate returns ambient · surfaceColor · k with k = -(n·dir) · diffusion
func (AmbientLighting) Evaluate(sc *Scene, ray *core.Ray, hit *geometry.HitRecord, tracer Tracer, sampler core.Sampler) core.Vec3 {
	surface := hit.Surface
	k := -hit.Normal.Dot(ray.Direction) * surface.Material().Diffusion()
	if k <= AmbientFloor {
		return core.Vec3{}
	}

	ambient := sc.Ambient.Color.Multiply(sc.Ambient.Ratio)
	return ambient.MultiplyVec(surface.ColorAt(hit)).Multiply(k)
}

// DirectLighting samples every light once and adds unoccluded contributions
type DirectLighting struct {
	Epsilon float64 // Offset along the normal for shadow rays
}

// NewDirectLighting creates a direct lighting evaluator
func NewDirectLighting(epsilon float64) DirectLighting {
	return DirectLighting{Epsilon: epsilon}
}

// Evaluate returns Σ radiance ⊙ surfaceColor · cos · diffusion over visible lights
func (d DirectLighting) Evaluate(sc *Scene, ray *core.Ray, hit *geometry.HitRecord, tracer Tracer, sampler core.Sampler) core.Vec3 {
	surface := hit.Surface
	diffusion := surface.Material().Diffusion()
	if diffusion <= 0 || len(sc.Lights) == 0 {
		return core.Vec3{}
	}

	surfaceColor := surface.ColorAt(hit)
	origin := hit.Point.Add(hit.Normal.Multiply(d.Epsilon))

	var total core.Vec3
	for _, light := range sc.Lights {
		sample, ok := light.Sample(hit.Point, sampler)
		if !ok {
			continue
		}

		cos := hit.Normal.Dot(sample.Direction)
		if cos <= 0 {
			continue
		}

		var radiance core.Vec3
		switch light.(type) {
		case *AreaLight:
			if tracer == nil {
				continue
			}
			// Shadow path in shader mode; whatever it resolves to lights the point
			shadow := core.NewRay(origin, sample.Direction)
			color, hitSomething := tracer.TracePath(&shadow, 0, true, sampler)
			if !hitSomething {
				continue
			}
			radiance = color
		default:
			shadow := core.NewRay(origin, sample.Direction)
			if _, occluded := sc.Hit(shadow, d.Epsilon, sample.Distance); occluded {
				continue
			}
			radiance = sample.Radiance
		}

		total = total.Add(radiance.MultiplyVec(surfaceColor).Multiply(cos * diffusion))
	}

	return total
}
