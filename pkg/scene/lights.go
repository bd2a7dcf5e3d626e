package scene

import (
	"math"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/geometry"
	"github.com/df07/go-stochastic-raytracer/pkg/material"
)

// LightSample is one sampled direction toward a light
type LightSample struct {
	Direction core.Vec3 // Unit direction from the shaded point to the light
	Distance  float64   // Distance to the light, +Inf for directional lights
	Radiance  core.Vec3 // Incoming radiance before occlusion
}

// Light is a light source that can be sampled from a point
type Light interface {
	Sample(point core.Vec3, sampler core.Sampler) (LightSample, bool)
}

// PointLight emits from a single position
type PointLight struct {
	Position core.Vec3
	Color    core.Vec3
	Ratio    float64
}

// NewPointLight creates a point light
func NewPointLight(position, color core.Vec3, ratio float64) *PointLight {
	return &PointLight{Position: position, Color: color, Ratio: ratio}
}

// Sample returns the direction and distance to the light position
func (p *PointLight) Sample(point core.Vec3, sampler core.Sampler) (LightSample, bool) {
	toLight := p.Position.Subtract(point)
	distance := toLight.Length()
	if distance == 0 {
		return LightSample{}, false
	}
	return LightSample{
		Direction: toLight.Multiply(1.0 / distance),
		Distance:  distance,
		Radiance:  p.Color.Multiply(p.Ratio),
	}, true
}

// DirectionalLight lights the whole scene from one direction
type DirectionalLight struct {
	Direction core.Vec3 // Direction the light travels
	Color     core.Vec3
	Ratio     float64
}

// NewDirectionalLight creates a directional light
func NewDirectionalLight(direction, color core.Vec3, ratio float64) *DirectionalLight {
	return &DirectionalLight{Direction: direction.Normalize(), Color: color, Ratio: ratio}
}

// Sample returns the reversed light direction at infinite distance
func (d *DirectionalLight) Sample(point core.Vec3, sampler core.Sampler) (LightSample, bool) {
	if d.Direction.IsZero() {
		return LightSample{}, false
	}
	return LightSample{
		Direction: d.Direction.Negate(),
		Distance:  math.Inf(1),
		Radiance:  d.Color.Multiply(d.Ratio),
	}, true
}

// AreaSurface is an emissive surface with a samplable area
type AreaSurface interface {
	geometry.Surface
	geometry.AreaSampler
}

// AreaLight is an emissive quad or disc. Its emitter is part of the scene's surfaces.
type AreaLight struct {
	Emitter AreaSurface
}

// NewAreaLight wraps an emissive surface as a light
func NewAreaLight(emitter AreaSurface) *AreaLight {
	return &AreaLight{Emitter: emitter}
}

// NewRectangleLight creates a rectangular area light
func NewRectangleLight(center, normal core.Vec3, width, height float64, color core.Vec3, ratio float64) *AreaLight {
	emissive := material.NewEmissive(color.Multiply(ratio))
	return NewAreaLight(geometry.NewRectangle(center, normal, width, height, emissive))
}

// NewDiscLight creates a circular area light
func NewDiscLight(center, normal core.Vec3, diameter float64, color core.Vec3, ratio float64) *AreaLight {
	emissive := material.NewEmissive(color.Multiply(ratio))
	return NewAreaLight(geometry.NewDisc(center, normal, diameter/2, emissive))
}

// Sample picks a uniform point on the emitter
func (a *AreaLight) Sample(point core.Vec3, sampler core.Sampler) (LightSample, bool) {
	target := a.Emitter.SamplePoint(sampler.Get2D())
	toLight := target.Subtract(point)
	distance := toLight.Length()
	if distance == 0 {
		return LightSample{}, false
	}
	return LightSample{
		Direction: toLight.Multiply(1.0 / distance),
		Distance:  distance,
		Radiance:  a.Emitter.Material().Emission,
	}, true
}
