package material

import (
	"math"
	"testing"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

func TestNewMaterial_Clamping(t *testing.T) {
	white := NewSolidColor(core.NewVec3(1, 1, 1))

	tests := []struct {
		name               string
		reflective         float64
		refractive         float64
		ior                float64
		expectedReflective float64
		expectedRefractive float64
		expectedIOR        float64
	}{
		{"In range", 0.2, 0.3, 1.5, 0.2, 0.3, 1.5},
		{"Negative coefficients", -1, -0.5, 1.5, 0, 0, 1.5},
		{"Reflective above one", 2, 0.5, 1.5, 1, 0, 1.5},
		{"Refractive capped by reflective", 0.7, 0.6, 1.5, 0.7, 0.3, 1.5},
		{"IOR below minimum", 0, 1, 0.01, 0, 1, MinIOR},
		{"IOR above maximum", 0, 1, 42, 0, 1, MaxIOR},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMaterial(white, tt.reflective, tt.refractive, tt.ior)

			if math.Abs(m.Reflective-tt.expectedReflective) > 1e-12 {
				t.Errorf("Reflective: got %f, expected %f", m.Reflective, tt.expectedReflective)
			}
			if math.Abs(m.Refractive-tt.expectedRefractive) > 1e-12 {
				t.Errorf("Refractive: got %f, expected %f", m.Refractive, tt.expectedRefractive)
			}
			if math.Abs(m.IOR-tt.expectedIOR) > 1e-12 {
				t.Errorf("IOR: got %f, expected %f", m.IOR, tt.expectedIOR)
			}
			if math.Abs(m.OIR*m.IOR-1) > 1e-12 {
				t.Errorf("OIR should be 1/IOR: got %f for IOR %f", m.OIR, m.IOR)
			}
			if m.Reflective+m.Refractive > 1+1e-12 {
				t.Errorf("reflective + refractive exceeds 1: %f", m.Reflective+m.Refractive)
			}
			if err := m.Validate(); err != nil {
				t.Errorf("Constructed material should validate: %v", err)
			}
		})
	}
}

func TestMaterial_Validate(t *testing.T) {
	white := NewSolidColor(core.NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		material *Material
	}{
		{"Coefficients exceed one", &Material{Albedo: white, Reflective: 0.6, Refractive: 0.6, IOR: 1.5, OIR: 1 / 1.5}},
		{"Negative reflective", &Material{Albedo: white, Reflective: -0.1, IOR: 1, OIR: 1}},
		{"IOR out of range", &Material{Albedo: white, IOR: 20, OIR: 1.0 / 20}},
		{"OIR mismatch", &Material{Albedo: white, IOR: 1.5, OIR: 1.5}},
		{"Missing albedo", &Material{IOR: 1, OIR: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.material.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestMaterial_DiffusionAndEta(t *testing.T) {
	m := NewMaterial(NewSolidColor(core.NewVec3(1, 1, 1)), 0.25, 0.5, 2)

	if math.Abs(m.Diffusion()-0.25) > 1e-12 {
		t.Errorf("Diffusion: got %f, expected 0.25", m.Diffusion())
	}
	if m.Eta(core.Inside) != 2 {
		t.Errorf("Eta inside: got %f, expected IOR 2", m.Eta(core.Inside))
	}
	if m.Eta(core.Outside) != 0.5 {
		t.Errorf("Eta outside: got %f, expected OIR 0.5", m.Eta(core.Outside))
	}
}

func TestNewEmissive(t *testing.T) {
	emission := core.NewVec3(4, 4, 4)
	m := NewEmissive(emission)

	if !m.Emissive {
		t.Error("Emissive material should be flagged emissive")
	}
	if m.Emission != emission {
		t.Errorf("Emission: got %v, expected %v", m.Emission, emission)
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Emissive material should validate: %v", err)
	}
}

func TestSchlick(t *testing.T) {
	tests := []struct {
		name     string
		cosine   float64
		eta      float64
		expected float64
	}{
		{"Normal incidence glass", 1.0, 1.0 / 1.5, 0.04},
		{"Normal incidence inside glass", 1.0, 1.5, 0.04},
		{"Grazing incidence", 0.0, 1.0 / 1.5, 1.0},
		{"Matched indices", 1.0, 1.0, 0.0},
		{"Cosine above one clamps", 2.0, 1.0 / 1.5, 0.04},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Schlick(tt.cosine, tt.eta)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("Schlick(%f, %f): got %f, expected %f", tt.cosine, tt.eta, result, tt.expected)
			}
		})
	}

	// Reflectance increases monotonically toward grazing angles
	prev := Schlick(1.0, 1.0/1.5)
	for cos := 0.9; cos >= 0; cos -= 0.1 {
		r := Schlick(cos, 1.0/1.5)
		if r < prev {
			t.Errorf("Schlick not monotonic: cos=%f gives %f < %f", cos, r, prev)
		}
		prev = r
	}
}
