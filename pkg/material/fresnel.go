package material

import (
	"math"
)

// Schlick calculates the Fresnel reflectance using Schlick's approximation.
// eta is the refraction ratio at the interface, cosine the incidence cosine.
func Schlick(cosine, eta float64) float64 {
	cosine = clamp(cosine, 0, 1)

	// Calculate R0 for normal incidence
	r0 := (eta - 1) / (eta + 1)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
