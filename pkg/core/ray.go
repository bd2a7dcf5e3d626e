package core

// Side tells whether a ray travels outside or inside a surface's volume
type Side int

const (
	Outside Side = iota
	Inside
)

// String returns the side name
func (s Side) String() string {
	if s == Inside {
		return "inside"
	}
	return "outside"
}

// Event is the light-transport event chosen at a bounce
type Event int

const (
	EventNone Event = iota
	EventReflection
	EventRefraction
	EventDiffusion
)

// String returns the event name
func (e Event) String() string {
	switch e {
	case EventReflection:
		return "reflection"
	case EventRefraction:
		return "refraction"
	case EventDiffusion:
		return "diffusion"
	default:
		return "none"
	}
}

// Ray is a ray plus the path state recorded while it is traced.
// A ray belongs to a single TracePath call tree; continuation rays are new values.
type Ray struct {
	Origin    Vec3
	Direction Vec3

	Recursion int   // Recursion index the ray was last traced at
	Side      Side  // Side of the last hit surface the ray arrived from
	Event     Event // Transport event chosen at the last hit
	Color     Vec3  // Radiance resolved for this ray
	Normal    Vec3  // Normal at the last hit, facing the incoming ray
	SurfaceID int   // ID of the last resolved surface, 0 if none
}

// NewRay creates a new ray
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
