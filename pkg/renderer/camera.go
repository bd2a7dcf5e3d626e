package renderer

import (
	"math"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/scene"
)

// Camera generates primary rays for a pinhole camera
type Camera struct {
	origin  core.Vec3
	forward core.Vec3
	right   core.Vec3 // Scaled to half the viewport width
	up      core.Vec3 // Scaled to half the viewport height
	width   int
	height  int
}

// NewCamera creates a camera for an image of width x height pixels.
// The field of view is horizontal, in degrees, clamped to [0, 180].
func NewCamera(config scene.CameraConfig, width, height int) *Camera {
	fov := max(0, min(180, config.FOV))

	forward := config.Direction.Normalize()
	if forward.IsZero() {
		forward = core.NewVec3(0, 0, 1)
	}

	// Screen basis with +X to the right when looking down +Z
	worldUp := core.NewVec3(0, 1, 0)
	if math.Abs(forward.Dot(worldUp)) > 0.999 {
		worldUp = core.NewVec3(0, 0, 1)
	}
	right := worldUp.Cross(forward).Normalize()
	up := forward.Cross(right)

	// Calculate viewport half extents at unit distance
	halfWidth := math.Tan(fov * math.Pi / 360.0)
	halfHeight := halfWidth
	if width > 0 {
		halfHeight = halfWidth * float64(height) / float64(width)
	}

	return &Camera{
		origin:  config.Position,
		forward: forward,
		right:   right.Multiply(halfWidth),
		up:      up.Multiply(halfHeight),
		width:   width,
		height:  height,
	}
}

// GetRay generates a jittered ray through pixel (i, j), with j = 0 the top row
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	jitter := sampler.Get2D()
	return c.rayAt((float64(i)+jitter.X)/float64(c.width), (float64(j)+jitter.Y)/float64(c.height))
}

// rayAt returns the ray through normalized screen coordinates (s, t) in [0,1]², t = 0 at the top
func (c *Camera) rayAt(s, t float64) core.Ray {
	direction := c.forward.
		Add(c.right.Multiply(2*s - 1)).
		Add(c.up.Multiply(1 - 2*t))

	return core.NewRay(c.origin, direction.Normalize())
}
