package material

import (
	"math"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// ColorSource provides spatially-varying colors for materials
type ColorSource interface {
	// Evaluate returns color at given UV coordinates and 3D point
	// UV is used for surface-mapped patterns, point for solid patterns
	Evaluate(uv core.Vec2, point core.Vec3) core.Vec3
}

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of UV or position
func (s *SolidColor) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return s.Color
}

// Checkerboard alternates two colors on a 3D grid of cubes with edge Size
type Checkerboard struct {
	Even core.Vec3
	Odd  core.Vec3
	Size float64
}

// NewCheckerboard creates a solid checkerboard pattern.
// A non-positive size falls back to 1.
func NewCheckerboard(even, odd core.Vec3, size float64) *Checkerboard {
	if size <= 0 {
		size = 1
	}
	return &Checkerboard{Even: even, Odd: odd, Size: size}
}

// Evaluate returns the color of the cell containing point
func (c *Checkerboard) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	// Determine which cell we're in
	x := int64(math.Floor(point.X / c.Size))
	y := int64(math.Floor(point.Y / c.Size))
	z := int64(math.Floor(point.Z / c.Size))

	// Alternate colors based on cell parity
	if (x+y+z)%2 == 0 {
		return c.Even
	}
	return c.Odd
}
