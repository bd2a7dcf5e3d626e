package integrator

import (
	"math"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the radiance arriving along a primary ray
	RayColor(ray core.Ray, sampler core.Sampler) core.Vec3
}

// Config holds the integrator constants
type Config struct {
	MaxDepth        int     // Recursion depth bound D
	Epsilon         float64 // Minimum hit distance and origin displacement along the normal
	FarBound        float64 // Maximum hit distance
	ReflectionFloor float64 // Lower bound of the Fresnel reflection draw
}

// DefaultConfig returns the standard integrator settings
func DefaultConfig() Config {
	return Config{
		MaxDepth:        5,
		Epsilon:         scene.DefaultEpsilon,
		FarBound:        math.Inf(1),
		ReflectionFloor: 1.0 / 255.0,
	}
}

// ConfigForScene returns the default settings with the scene's depth bound.
// A scene depth of 0 is unset and keeps the default; a zero bound is set on
// Config directly.
func ConfigForScene(sc *scene.Scene) Config {
	config := DefaultConfig()
	if sc.SamplingConfig.MaxDepth > 0 {
		config.MaxDepth = sc.SamplingConfig.MaxDepth
	}
	return config
}
