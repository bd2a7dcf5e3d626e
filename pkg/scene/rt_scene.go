package scene

import (
	"fmt"

	"github.com/df07/go-stochastic-raytracer/pkg/geometry"
	"github.com/df07/go-stochastic-raytracer/pkg/loaders"
	"github.com/df07/go-stochastic-raytracer/pkg/material"
)

// LoadRTScene loads an .rt or .rt.gz file and builds the scene.
// Parser warnings are returned alongside the scene.
func LoadRTScene(filename string) (*Scene, []string, error) {
	rt, err := loaders.LoadRT(filename)
	if err != nil {
		return nil, nil, err
	}

	s, err := NewRTScene(rt)
	if err != nil {
		return nil, rt.Warnings, fmt.Errorf("failed to build scene from %s: %w", filename, err)
	}
	return s, rt.Warnings, nil
}

// NewRTScene converts parsed .rt records into a scene
func NewRTScene(rt *loaders.RTScene) (*Scene, error) {
	if rt.Camera == nil {
		return nil, fmt.Errorf("scene has no camera record")
	}

	s := NewScene()
	s.CameraConfig = CameraConfig{
		Position:  rt.Camera.Position,
		Direction: rt.Camera.Direction,
		FOV:       rt.Camera.FOV,
	}

	if res := rt.Resolution; res != nil {
		s.SamplingConfig.Width = res.Width
		s.SamplingConfig.Height = res.Height
		if res.Samples > 0 {
			s.SamplingConfig.SamplesPerPixel = res.Samples
		}
		if res.Depth > 0 {
			s.SamplingConfig.MaxDepth = res.Depth
		}
	}

	if rt.Ambient != nil {
		s.SetAmbient(rt.Ambient.Color, rt.Ambient.Ratio)
	}
	if rt.Background != nil {
		s.Background = *rt.Background
	}

	for _, prim := range rt.Primitives {
		surface, err := newRTSurface(prim)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", prim.Line, err)
		}
		s.Add(surface)
	}

	for _, l := range rt.Lights {
		switch l.Kind {
		case "l":
			s.AddLight(NewPointLight(l.Position, l.Color, l.Ratio))
		case "ld":
			s.AddLight(NewDirectionalLight(l.Normal, l.Color, l.Ratio))
		case "lr":
			s.AddLight(NewRectangleLight(l.Position, l.Normal, l.Width, l.Height, l.Color, l.Ratio))
		case "lc":
			s.AddLight(NewDiscLight(l.Position, l.Normal, l.Diameter, l.Color, l.Ratio))
		default:
			return nil, fmt.Errorf("line %d: unsupported light kind %q", l.Line, l.Kind)
		}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// newRTSurface builds one primitive with its material
func newRTSurface(prim loaders.RTPrimitive) (geometry.Surface, error) {
	var albedo material.ColorSource = material.NewSolidColor(prim.Color)
	if prim.Checker != nil {
		albedo = material.NewCheckerboard(prim.Color, prim.Checker.Color, prim.Checker.Size)
	}
	mat := material.NewMaterial(albedo, prim.Reflective, prim.Refractive, prim.IOR)

	switch prim.Kind {
	case "sp":
		return geometry.NewSphere(prim.Position, prim.Diameter/2, mat), nil
	case "pl":
		return geometry.NewPlane(prim.Position, prim.Normal, mat), nil
	case "plr":
		return geometry.NewRectangle(prim.Position, prim.Normal, prim.Width, prim.Height, mat), nil
	case "plc":
		return geometry.NewDisc(prim.Position, prim.Normal, prim.Diameter/2, mat), nil
	default:
		return nil, fmt.Errorf("unsupported primitive kind %q", prim.Kind)
	}
}
