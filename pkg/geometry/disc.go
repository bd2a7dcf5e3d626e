package geometry

import (
	"math"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/material"
)

// Disc represents a circular disc in 3D space
type Disc struct {
	surfaceBase
	Center core.Vec3 // Center of the disc
	Normal core.Vec3 // Normal vector (pointing "up" from the disc)
	Radius float64   // Radius of the disc
	Right  core.Vec3 // Right vector (perpendicular to normal)
	Up     core.Vec3 // Up vector (perpendicular to normal and right)
}

// NewDisc creates a new disc
func NewDisc(center, normal core.Vec3, radius float64, mat *material.Material) *Disc {
	n := normal.Normalize()
	right, up := core.OrthonormalBasis(n)

	return &Disc{
		surfaceBase: surfaceBase{material: mat},
		Center:      center,
		Normal:      n,
		Radius:      radius,
		Right:       right,
		Up:          up,
	}
}

// Hit tests if a ray intersects with the disc
func (d *Disc) Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	t, ok := intersectPlane(ray, d.Center, d.Normal, tMin, tMax)
	if !ok {
		return nil, false
	}

	// Check if intersection point is within disc radius
	hitPoint := ray.At(t)
	centerToHit := hitPoint.Subtract(d.Center)
	if centerToHit.LengthSquared() > d.Radius*d.Radius {
		return nil, false
	}

	// Polar coordinates: u is the angle, v the normalized radius
	x := centerToHit.Dot(d.Right)
	y := centerToHit.Dot(d.Up)
	u := (math.Atan2(y, x) + math.Pi) / (2 * math.Pi)
	var v float64
	if d.Radius > 0 {
		v = math.Sqrt(x*x+y*y) / d.Radius
	}

	hitRecord := &HitRecord{
		T:       t,
		Point:   hitPoint,
		UV:      core.NewVec2(u, v),
		Surface: d,
	}
	hitRecord.SetSide(ray, d.Normal)

	return hitRecord, true
}

// NormalAt returns the disc normal facing a ray arriving from side
func (d *Disc) NormalAt(point core.Vec3, side core.Side) core.Vec3 {
	return faceNormal(d.Normal, side)
}

// SamplePoint samples a random point uniformly on the disc surface
func (d *Disc) SamplePoint(sample core.Vec2) core.Vec3 {
	// Sample uniformly on unit disc using polar coordinates
	r := math.Sqrt(sample.X) * d.Radius
	theta := 2.0 * math.Pi * sample.Y

	x := r * math.Cos(theta)
	y := r * math.Sin(theta)
	return d.Center.Add(d.Right.Multiply(x)).Add(d.Up.Multiply(y))
}

// Area returns the disc surface area
func (d *Disc) Area() float64 {
	return math.Pi * d.Radius * d.Radius
}
