package scene

import (
	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/geometry"
	"github.com/df07/go-stochastic-raytracer/pkg/material"
)

// NewGlassScene creates a row of dielectric spheres with increasing index of
// refraction over a checkered floor, lit by a disc light
func NewGlassScene() *Scene {
	s := NewScene()
	s.CameraConfig = CameraConfig{
		Position:  core.NewVec3(0, 2, -6),
		Direction: core.NewVec3(0, -0.25, 1).Normalize(),
		FOV:       60,
	}
	s.SamplingConfig = SamplingConfig{
		Width:           480,
		Height:          270,
		SamplesPerPixel: 64,
		MaxDepth:        8,
	}
	s.SetAmbient(core.NewVec3(1, 1, 1), 0.15)

	checker := material.NewCheckerboard(core.NewVec3(0.9, 0.9, 0.9), core.NewVec3(0.1, 0.1, 0.4), 0.5)
	s.Add(geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), material.NewMaterial(checker, 0, 0, 1)))

	// Glass spheres from water-like to diamond-like
	iors := []float64{1.1, 1.33, 1.5, 1.9, 2.4}
	for i, ior := range iors {
		x := float64(i-len(iors)/2) * 1.2
		glass := material.NewMaterial(material.NewSolidColor(core.NewVec3(0.95, 0.95, 1.0)), 0.0, 1.0, ior)
		s.Add(geometry.NewSphere(core.NewVec3(x, 0.5, 0), 0.5, glass))
	}

	// Tinted disc standing behind the row
	tint := material.NewMaterial(material.NewSolidColor(core.NewVec3(0.8, 0.4, 0.1)), 0.2, 0.0, 1.0)
	s.Add(geometry.NewDisc(core.NewVec3(0, 1.5, 3), core.NewVec3(0, 0, -1), 1.5, tint))

	s.AddLight(NewDiscLight(core.NewVec3(0, 5, -1), core.NewVec3(0, -1, 0), 2, core.NewVec3(1, 0.95, 0.9), 4))
	s.AddLight(NewDirectionalLight(core.NewVec3(1, -1, 1), core.NewVec3(1, 1, 1), 0.3))

	return s
}
