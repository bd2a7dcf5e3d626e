package scene

import (
	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/geometry"
	"github.com/df07/go-stochastic-raytracer/pkg/material"
)

// NewCornellScene creates a classic Cornell box scene with quad walls and area lighting
func NewCornellScene() *Scene {
	s := NewScene()
	s.CameraConfig = CameraConfig{
		Position:  core.NewVec3(278, 278, -800), // Position camera outside the box looking in
		Direction: core.NewVec3(0, 0, 1),
		FOV:       40.0,
	}
	s.SamplingConfig = SamplingConfig{
		Width:           400,
		Height:          400, // Square aspect ratio for Cornell box
		SamplesPerPixel: 64,
		MaxDepth:        6,
	}
	s.SetAmbient(core.NewVec3(1, 1, 1), 0.05)
	s.Background = core.NewVec3(0, 0, 0) // Black background

	// Create materials
	white := material.NewDiffuse(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewDiffuse(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewDiffuse(core.NewVec3(0.12, 0.45, 0.15))
	mirror := material.NewMaterial(material.NewSolidColor(core.NewVec3(0.9, 0.9, 0.9)), 1.0, 0.0, 1.0)
	glass := material.NewMaterial(material.NewSolidColor(core.NewVec3(1, 1, 1)), 0.0, 1.0, 1.5)

	// Cornell box dimensions (standard 555x555x555 units)
	boxSize := 555.0

	s.Add(
		// Floor (white) - XZ plane at y=0
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), white),
		// Ceiling (white) - XZ plane at y=boxSize
		geometry.NewQuad(core.NewVec3(0, boxSize, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), white),
		// Back wall (white) - XY plane at z=boxSize
		geometry.NewQuad(core.NewVec3(0, 0, boxSize), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), white),
		// Left wall (red) - YZ plane at x=0
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, boxSize), core.NewVec3(0, boxSize, 0), red),
		// Right wall (green) - YZ plane at x=boxSize
		geometry.NewQuad(core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), core.NewVec3(0, boxSize, 0), green),
	)

	// Spheres resting on the floor
	s.Add(
		geometry.NewSphere(core.NewVec3(185, 90, 169), 90, mirror),
		geometry.NewSphere(core.NewVec3(370, 90, 351), 90, glass),
	)

	// Ceiling light slightly below the ceiling, facing down
	s.AddLight(NewRectangleLight(
		core.NewVec3(278, boxSize-1, 278),
		core.NewVec3(0, -1, 0),
		130, 105,
		core.NewVec3(1, 1, 1), 15.0,
	))

	return s
}
