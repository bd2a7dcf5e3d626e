package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

func TestQuad_Hit(t *testing.T) {
	// Unit square in the XZ plane at y=0, normal pointing down (U × V)
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1), testMaterial())

	tests := []struct {
		name       string
		origin     core.Vec3
		expectHit  bool
		expectedUV core.Vec2
	}{
		{"Center", core.NewVec3(0.5, 1, 0.5), true, core.NewVec2(0.5, 0.5)},
		{"Near corner", core.NewVec3(0.1, 1, 0.9), true, core.NewVec2(0.1, 0.9)},
		{"Outside U", core.NewVec3(1.5, 1, 0.5), false, core.Vec2{}},
		{"Outside V", core.NewVec3(0.5, 1, -0.1), false, core.Vec2{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.origin, core.NewVec3(0, -1, 0))
			hit, isHit := quad.Hit(ray, 0.001, 1000)
			if isHit != tt.expectHit {
				t.Fatalf("Expected hit=%t, got %t", tt.expectHit, isHit)
			}
			if !isHit {
				return
			}
			if math.Abs(hit.T-1) > 1e-9 {
				t.Errorf("Expected t=1, got %f", hit.T)
			}
			if math.Abs(hit.UV.X-tt.expectedUV.X) > 1e-9 || math.Abs(hit.UV.Y-tt.expectedUV.Y) > 1e-9 {
				t.Errorf("Expected UV %v, got %v", tt.expectedUV, hit.UV)
			}
			// U × V = (1,0,0) × (0,0,1) = (0,-1,0), so a downward ray travels with the normal
			if hit.Side != core.Inside {
				t.Errorf("Expected inside hit, got %v", hit.Side)
			}
			if n := quad.NormalAt(hit.Point, hit.Side); !vecNear(n, core.NewVec3(0, 1, 0)) {
				t.Errorf("Expected normal facing the ray (0,1,0), got %v", n)
			}
		})
	}
}

func TestNewRectangle(t *testing.T) {
	center := core.NewVec3(1, 2, 3)
	normal := core.NewVec3(0, 0, 1)
	rect := NewRectangle(center, normal, 4, 2, testMaterial())

	if !vecNear(rect.Normal, normal) {
		t.Errorf("Rectangle normal: expected %v, got %v", normal, rect.Normal)
	}
	if math.Abs(rect.Area()-8) > 1e-9 {
		t.Errorf("Rectangle area: expected 8, got %f", rect.Area())
	}
	if center := rect.SamplePoint(core.NewVec2(0.5, 0.5)); !vecNear(center, core.NewVec3(1, 2, 3)) {
		t.Errorf("Center sample: expected (1,2,3), got %v", center)
	}

	// Hit through the center along -Z
	hit, isHit := rect.Hit(core.NewRay(core.NewVec3(1, 2, 10), core.NewVec3(0, 0, -1)), 0.001, 100)
	if !isHit {
		t.Fatal("Expected hit through rectangle center")
	}
	if hit.Side != core.Outside {
		t.Errorf("Expected outside hit, got %v", hit.Side)
	}
}

func TestQuad_SamplePoint(t *testing.T) {
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(2, 0, 0), core.NewVec3(0, 3, 0), testMaterial())
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	for i := 0; i < 100; i++ {
		p := quad.SamplePoint(sampler.Get2D())
		if p.X < 0 || p.X > 2 || p.Y < 0 || p.Y > 3 || p.Z != 0 {
			t.Fatalf("Sample %v outside quad", p)
		}
	}
}

func TestQuad_Degenerate(t *testing.T) {
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(2, 0, 0), testMaterial())
	ray := core.NewRay(core.NewVec3(0.5, 1, 0), core.NewVec3(0, -1, 0))
	if _, isHit := quad.Hit(ray, 0.001, 1000); isHit {
		t.Error("Degenerate quad should never be hit")
	}
}
