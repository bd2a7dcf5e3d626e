package material

import (
	"fmt"
	"math"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// Index of refraction bounds accepted by NewMaterial
const (
	MinIOR = 0.1
	MaxIOR = 10.0
)

// Material describes how a surface splits incoming light between specular
// reflection, dielectric refraction and diffuse scattering, or emits light.
// The remaining fraction 1 - Reflective - Refractive is diffuse.
type Material struct {
	Albedo     ColorSource // Surface color (attenuation)
	Reflective float64     // Probability of mirror reflection
	Refractive float64     // Probability of refraction
	IOR        float64     // Index of refraction used when leaving the medium
	OIR        float64     // Inverse index of refraction (1/IOR) used when entering

	Emission core.Vec3 // Emitted radiance for light surfaces
	Emissive bool
}

// NewMaterial creates a material with the coefficients clamped into range:
// reflective to [0,1], refractive to [0, 1-reflective] and ior to [MinIOR, MaxIOR].
func NewMaterial(albedo ColorSource, reflective, refractive, ior float64) *Material {
	reflective = clamp(reflective, 0, 1)
	refractive = clamp(refractive, 0, 1-reflective)
	ior = clamp(ior, MinIOR, MaxIOR)

	return &Material{
		Albedo:     albedo,
		Reflective: reflective,
		Refractive: refractive,
		IOR:        ior,
		OIR:        1.0 / ior,
	}
}

// NewDiffuse creates a purely diffuse material of a solid color
func NewDiffuse(color core.Vec3) *Material {
	return NewMaterial(NewSolidColor(color), 0, 0, 1)
}

// NewEmissive creates a light-emitting material
func NewEmissive(emission core.Vec3) *Material {
	return &Material{
		Albedo:   NewSolidColor(emission),
		IOR:      1,
		OIR:      1,
		Emission: emission,
		Emissive: true,
	}
}

// Validate reports coefficients that NewMaterial would have clamped.
// Hand-built materials go through this before they are added to a scene.
func (m *Material) Validate() error {
	if m.Albedo == nil {
		return fmt.Errorf("material has no albedo")
	}
	if m.Reflective < 0 || m.Reflective > 1 {
		return fmt.Errorf("reflective %g out of range [0,1]", m.Reflective)
	}
	if m.Refractive < 0 || m.Refractive > 1 {
		return fmt.Errorf("refractive %g out of range [0,1]", m.Refractive)
	}
	if m.Reflective+m.Refractive > 1 {
		return fmt.Errorf("reflective %g + refractive %g exceeds 1", m.Reflective, m.Refractive)
	}
	if m.IOR < MinIOR || m.IOR > MaxIOR {
		return fmt.Errorf("ior %g out of range [%g,%g]", m.IOR, MinIOR, MaxIOR)
	}
	if math.Abs(m.IOR*m.OIR-1) > 1e-9 {
		return fmt.Errorf("oir %g is not the inverse of ior %g", m.OIR, m.IOR)
	}
	return nil
}

// Diffusion returns the fraction of light scattered diffusely
func (m *Material) Diffusion() float64 {
	return max(0, 1-m.Reflective-m.Refractive)
}

// Eta returns the refraction ratio for a ray arriving from side.
// A ray inside the medium uses IOR, a ray outside uses OIR.
func (m *Material) Eta(side core.Side) float64 {
	if side == core.Inside {
		return m.IOR
	}
	return m.OIR
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
