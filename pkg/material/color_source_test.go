package material

import (
	"testing"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

func TestSolidColor(t *testing.T) {
	color := core.NewVec3(0.2, 0.4, 0.6)
	source := NewSolidColor(color)

	for _, p := range []core.Vec3{core.NewVec3(0, 0, 0), core.NewVec3(-5, 3, 100)} {
		if got := source.Evaluate(core.NewVec2(0.5, 0.5), p); got != color {
			t.Errorf("Evaluate(%v): got %v, expected %v", p, got, color)
		}
	}
}

func TestCheckerboard(t *testing.T) {
	white := core.NewVec3(1, 1, 1)
	black := core.NewVec3(0, 0, 0)
	checker := NewCheckerboard(white, black, 2)

	tests := []struct {
		name     string
		point    core.Vec3
		expected core.Vec3
	}{
		{"Origin cell", core.NewVec3(0.5, 0.5, 0.5), white},
		{"Neighbor along X", core.NewVec3(2.5, 0.5, 0.5), black},
		{"Diagonal neighbor", core.NewVec3(2.5, 2.5, 0.5), white},
		{"Negative side", core.NewVec3(-0.5, 0.5, 0.5), black},
		{"Two steps negative", core.NewVec3(-2.5, 0.5, 0.5), white},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checker.Evaluate(core.Vec2{}, tt.point); got != tt.expected {
				t.Errorf("Evaluate(%v): got %v, expected %v", tt.point, got, tt.expected)
			}
		})
	}

	if fallback := NewCheckerboard(white, black, 0); fallback.Size != 1 {
		t.Errorf("Non-positive size should fall back to 1, got %f", fallback.Size)
	}
}
