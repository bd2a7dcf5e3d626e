package scene

import (
	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/geometry"
	"github.com/df07/go-stochastic-raytracer/pkg/material"
)

// NewDefaultScene creates a default scene with spheres, a checkered ground and a point light
func NewDefaultScene() *Scene {
	s := NewScene()
	s.CameraConfig = CameraConfig{
		Position:  core.NewVec3(0, 1, -4),
		Direction: core.NewVec3(0, -0.15, 1).Normalize(),
		FOV:       70,
	}
	s.SamplingConfig = SamplingConfig{
		Width:           400,
		Height:          225, // 16:9 aspect ratio
		SamplesPerPixel: 32,
		MaxDepth:        5,
	}
	s.SetAmbient(core.NewVec3(0.6, 0.7, 1.0), 0.2)

	// Create materials
	checker := material.NewCheckerboard(core.NewVec3(0.8, 0.8, 0.8), core.NewVec3(0.2, 0.2, 0.2), 1.0)
	ground := material.NewMaterial(checker, 0.0, 0.0, 1.0)
	red := material.NewMaterial(material.NewSolidColor(core.NewVec3(0.65, 0.25, 0.2)), 0.0, 0.0, 1.0)
	mirror := material.NewMaterial(material.NewSolidColor(core.NewVec3(0.9, 0.9, 0.9)), 1.0, 0.0, 1.0)
	glass := material.NewMaterial(material.NewSolidColor(core.NewVec3(1, 1, 1)), 0.05, 0.95, 1.5)
	glossy := material.NewMaterial(material.NewSolidColor(core.NewVec3(0.2, 0.3, 0.7)), 0.3, 0.0, 1.0)

	s.Add(
		geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), ground),
		geometry.NewSphere(core.NewVec3(0, 0.5, 0), 0.5, red),
		geometry.NewSphere(core.NewVec3(-1.1, 0.5, 0.3), 0.5, mirror),
		geometry.NewSphere(core.NewVec3(1.1, 0.5, -0.2), 0.5, glass),
		geometry.NewSphere(core.NewVec3(0.4, 0.25, -1.0), 0.25, glossy),
	)

	s.AddLight(NewPointLight(core.NewVec3(-3, 5, -3), core.NewVec3(1, 1, 1), 0.7))

	return s
}
