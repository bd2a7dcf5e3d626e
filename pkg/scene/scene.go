package scene

import (
	"fmt"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/geometry"
)

// DefaultEpsilon is the minimum hit distance used to avoid self-intersection
const DefaultEpsilon = 1e-3

// Scene contains all the elements needed for rendering.
// It is built once and read-only while rendering.
type Scene struct {
	Surfaces       []geometry.Surface // Ordered surfaces, ids 1..n
	Background     core.Vec3          // Radiance returned for rays that miss
	Lighting       LightingEvaluator  // Contribution layered under each bounce
	Lights         []Light
	Ambient        AmbientLight
	CameraConfig   CameraConfig
	SamplingConfig SamplingConfig
}

// AmbientLight is the global ambient term
type AmbientLight struct {
	Color core.Vec3
	Ratio float64
}

// CameraConfig positions the pinhole camera
type CameraConfig struct {
	Position  core.Vec3
	Direction core.Vec3 // View direction
	FOV       float64   // Horizontal field of view in degrees
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum recursion depth
}

// DefaultSamplingConfig returns the sampling settings used when a scene does not set them
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          300,
		SamplesPerPixel: 16,
		MaxDepth:        5,
	}
}

// DefaultCameraConfig returns a camera at the origin looking down +Z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Position:  core.NewVec3(0, 0, 0),
		Direction: core.NewVec3(0, 0, 1),
		FOV:       90,
	}
}

// NewScene creates an empty scene with ambient and direct lighting
func NewScene() *Scene {
	return &Scene{
		Surfaces:       make([]geometry.Surface, 0),
		Lights:         make([]Light, 0),
		Lighting:       Lightings{AmbientLighting{}, NewDirectLighting(DefaultEpsilon)},
		CameraConfig:   DefaultCameraConfig(),
		SamplingConfig: DefaultSamplingConfig(),
	}
}

// Add appends surfaces in order and assigns their ids
func (s *Scene) Add(surfaces ...geometry.Surface) {
	for _, surface := range surfaces {
		s.Surfaces = append(s.Surfaces, surface)
		surface.SetID(len(s.Surfaces))
	}
}

// AddLight registers a light. Area lights also add their emitter surface.
func (s *Scene) AddLight(light Light) {
	s.Lights = append(s.Lights, light)
	if area, ok := light.(*AreaLight); ok {
		s.Add(area.Emitter)
	}
}

// SetAmbient sets the ambient term and derives the background from it
func (s *Scene) SetAmbient(color core.Vec3, ratio float64) {
	s.Ambient = AmbientLight{Color: color, Ratio: ratio}
	s.Background = AmbientBackground(s.Ambient)
}

// AmbientBackground is the background implied by an ambient term: color · min(1, 3·ratio)
func AmbientBackground(ambient AmbientLight) core.Vec3 {
	return ambient.Color.Multiply(min(1, 3*ambient.Ratio))
}

// Hit finds the closest surface hit with tMin < t < tMax.
// Surfaces are tested in insertion order; on equal distances the first one found wins.
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (*geometry.HitRecord, bool) {
	var closest *geometry.HitRecord
	closestSoFar := tMax

	for _, surface := range s.Surfaces {
		if hit, ok := surface.Hit(ray, tMin, closestSoFar); ok {
			closest = hit
			closestSoFar = hit.T
		}
	}

	return closest, closest != nil
}

// SurfaceByID returns the surface with the given id, or nil
func (s *Scene) SurfaceByID(id int) geometry.Surface {
	if id < 1 || id > len(s.Surfaces) {
		return nil
	}
	return s.Surfaces[id-1]
}

// Validate checks materials and sampling settings before rendering
func (s *Scene) Validate() error {
	for i, surface := range s.Surfaces {
		mat := surface.Material()
		if mat == nil {
			return fmt.Errorf("surface %d has no material", i+1)
		}
		if err := mat.Validate(); err != nil {
			return fmt.Errorf("surface %d: %w", i+1, err)
		}
	}
	if s.Lighting == nil {
		return fmt.Errorf("scene has no lighting evaluator")
	}
	cfg := s.SamplingConfig
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.SamplesPerPixel <= 0 {
		return fmt.Errorf("invalid samples per pixel %d", cfg.SamplesPerPixel)
	}
	if cfg.MaxDepth <= 0 {
		return fmt.Errorf("invalid max depth %d", cfg.MaxDepth)
	}
	return nil
}
