package geometry

import (
	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/material"
)

// Quad represents a rectangular surface defined by a corner and two edge vectors
type Quad struct {
	surfaceBase
	Corner core.Vec3 // One corner of the quad
	U      core.Vec3 // First edge vector
	V      core.Vec3 // Second edge vector
	Normal core.Vec3 // Normal vector (computed from U × V)
	W      core.Vec3 // Cached cross product for barycentric coordinates
	area   float64
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3, mat *material.Material) *Quad {
	cross := u.Cross(v)
	normal := cross.Normalize()

	// w = n / (n · (u × v)) for barycentric coordinate calculations
	var w core.Vec3
	if denom := normal.Dot(cross); denom != 0 {
		w = normal.Multiply(1.0 / denom)
	}

	return &Quad{
		surfaceBase: surfaceBase{material: mat},
		Corner:      corner,
		U:           u,
		V:           v,
		Normal:      normal,
		W:           w,
		area:        cross.Length(),
	}
}

// NewRectangle creates a width × height quad centered on center facing normal
func NewRectangle(center, normal core.Vec3, width, height float64, mat *material.Material) *Quad {
	right, up := core.OrthonormalBasis(normal.Normalize())
	u := right.Multiply(width)
	v := up.Multiply(height)
	corner := center.Subtract(u.Multiply(0.5)).Subtract(v.Multiply(0.5))
	return NewQuad(corner, u, v, mat)
}

// Hit tests if a ray intersects with the quad
func (q *Quad) Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	if q.area == 0 {
		return nil, false
	}

	t, ok := intersectPlane(ray, q.Corner, q.Normal, tMin, tMax)
	if !ok {
		return nil, false
	}

	// Check if hit point is within the quad bounds using barycentric coordinates
	hitPoint := ray.At(t)
	hitVector := hitPoint.Subtract(q.Corner)
	alpha := q.W.Dot(hitVector.Cross(q.V))
	beta := q.W.Dot(q.U.Cross(hitVector))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return nil, false
	}

	hitRecord := &HitRecord{
		T:       t,
		Point:   hitPoint,
		UV:      core.NewVec2(alpha, beta),
		Surface: q,
	}
	hitRecord.SetSide(ray, q.Normal)

	return hitRecord, true
}

// NormalAt returns the quad normal facing a ray arriving from side
func (q *Quad) NormalAt(point core.Vec3, side core.Side) core.Vec3 {
	return faceNormal(q.Normal, side)
}

// SamplePoint returns a uniformly distributed point on the quad
func (q *Quad) SamplePoint(sample core.Vec2) core.Vec3 {
	return q.Corner.Add(q.U.Multiply(sample.X)).Add(q.V.Multiply(sample.Y))
}

// Area returns the quad surface area
func (q *Quad) Area() float64 {
	return q.area
}
