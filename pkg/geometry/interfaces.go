package geometry

import (
	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/material"
)

// Surface is a primitive that can be placed in a scene.
// Every primitive kind implements the full capability set.
type Surface interface {
	// Hit returns the intersection with tMin < t < tMax, if any
	Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool)
	// NormalAt returns the unit normal at point facing a ray arriving from side
	NormalAt(point core.Vec3, side core.Side) core.Vec3
	Material() *material.Material
	// ColorAt returns the emission for light surfaces, the albedo otherwise
	ColorAt(hit *HitRecord) core.Vec3
	IsEmissive() bool
	ID() int
	SetID(id int)
}

// AreaSampler is implemented by finite surfaces that can act as area lights
type AreaSampler interface {
	// SamplePoint maps a uniform 2D sample to a point on the surface
	SamplePoint(sample core.Vec2) core.Vec3
	Area() float64
}

// HitRecord contains information about a ray-surface intersection
type HitRecord struct {
	T       float64   // Parameter t along the ray
	Point   core.Vec3 // Point of intersection
	Side    core.Side // Inside when the ray travels against the outward normal
	UV      core.Vec2 // Surface coordinates for color sources
	Normal  core.Vec3 // Normal facing the ray, filled in by NormalAt
	Surface Surface   // Surface that was hit
}

// SetSide classifies the hit by comparing the ray direction with the outward normal
func (h *HitRecord) SetSide(ray core.Ray, outwardNormal core.Vec3) {
	if ray.Direction.Dot(outwardNormal) > 0 {
		h.Side = core.Inside
	} else {
		h.Side = core.Outside
	}
}

// surfaceBase carries the state shared by all primitives
type surfaceBase struct {
	id       int
	material *material.Material
}

// Material returns the surface material
func (s *surfaceBase) Material() *material.Material {
	return s.material
}

// IsEmissive reports whether the surface is a light
func (s *surfaceBase) IsEmissive() bool {
	return s.material != nil && s.material.Emissive
}

// ColorAt returns the emission for lights and the albedo at the hit otherwise
func (s *surfaceBase) ColorAt(hit *HitRecord) core.Vec3 {
	if s.material == nil {
		return core.Vec3{}
	}
	if s.material.Emissive {
		return s.material.Emission
	}
	return s.material.Albedo.Evaluate(hit.UV, hit.Point)
}

// ID returns the scene-assigned identifier, 0 before the surface is added
func (s *surfaceBase) ID() int {
	return s.id
}

// SetID is called by the scene when the surface is added
func (s *surfaceBase) SetID(id int) {
	s.id = id
}

// faceNormal orients an outward normal toward a ray arriving from side
func faceNormal(outwardNormal core.Vec3, side core.Side) core.Vec3 {
	if side == core.Inside {
		return outwardNormal.Negate()
	}
	return outwardNormal
}
