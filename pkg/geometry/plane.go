package geometry

import (
	"math"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/material"
)

// Plane represents an infinite plane defined by a point and normal.
// The normal is treated as outward, so the half-space behind it is the inside.
type Plane struct {
	surfaceBase
	Point  core.Vec3 // A point on the plane
	Normal core.Vec3 // Unit outward normal
	u, v   core.Vec3 // In-plane basis for UV coordinates
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3, mat *material.Material) *Plane {
	n := normal.Normalize()
	u, v := core.OrthonormalBasis(n)
	return &Plane{
		surfaceBase: surfaceBase{material: mat},
		Point:       point,
		Normal:      n,
		u:           u,
		v:           v,
	}
}

// Hit tests if a ray intersects with the plane
func (p *Plane) Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	t, ok := intersectPlane(ray, p.Point, p.Normal, tMin, tMax)
	if !ok {
		return nil, false
	}

	hitPoint := ray.At(t)
	rel := hitPoint.Subtract(p.Point)
	hitRecord := &HitRecord{
		T:       t,
		Point:   hitPoint,
		UV:      core.NewVec2(rel.Dot(p.u), rel.Dot(p.v)),
		Surface: p,
	}
	hitRecord.SetSide(ray, p.Normal)

	return hitRecord, true
}

// NormalAt returns the plane normal facing a ray arriving from side
func (p *Plane) NormalAt(point core.Vec3, side core.Side) core.Vec3 {
	return faceNormal(p.Normal, side)
}

// intersectPlane returns the ray parameter where it crosses the plane through
// point with the given unit normal, if it lies strictly within (tMin, tMax)
func intersectPlane(ray core.Ray, point, normal core.Vec3, tMin, tMax float64) (float64, bool) {
	// Calculate denominator: dot product of ray direction and plane normal
	denominator := ray.Direction.Dot(normal)

	// If denominator is close to zero, ray is parallel to plane (no intersection)
	if math.Abs(denominator) < 1e-8 {
		return 0, false
	}

	// t = (point_on_plane - ray_origin) · normal / (ray_direction · normal)
	t := point.Subtract(ray.Origin).Dot(normal) / denominator
	if t <= tMin || t >= tMax {
		return 0, false
	}
	return t, true
}
