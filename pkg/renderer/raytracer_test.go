package renderer

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/geometry"
	"github.com/df07/go-stochastic-raytracer/pkg/integrator"
	"github.com/df07/go-stochastic-raytracer/pkg/material"
	"github.com/df07/go-stochastic-raytracer/pkg/scene"
)

// MockIntegrator returns a fixed color and counts calls
type MockIntegrator struct {
	returnColor core.Vec3
	callCount   int
}

func (m *MockIntegrator) RayColor(ray core.Ray, sampler core.Sampler) core.Vec3 {
	m.callCount++
	return m.returnColor
}

// createTestScene creates a small scene with one diffuse sphere in front of the camera
func createTestScene(width, height, spp int) *scene.Scene {
	sc := scene.NewScene()
	sc.SetAmbient(core.NewVec3(1, 1, 1), 0.2)
	sc.CameraConfig = scene.CameraConfig{Position: core.NewVec3(0, 0, 0), Direction: core.NewVec3(0, 0, 1), FOV: 60}
	sc.SamplingConfig = scene.SamplingConfig{Width: width, Height: height, SamplesPerPixel: spp, MaxDepth: 3}
	sc.Add(geometry.NewSphere(core.NewVec3(0, 0, 4), 1, material.NewDiffuse(core.NewVec3(0.8, 0.3, 0.3))))
	sc.AddLight(scene.NewPointLight(core.NewVec3(2, 3, 0), core.NewVec3(1, 1, 1), 0.7))
	return sc
}

func TestRaytracerRenderPass(t *testing.T) {
	sc := createTestScene(8, 6, 3)
	mock := &MockIntegrator{returnColor: core.NewVec3(0.25, 1, 4)}
	rt := NewRaytracer(sc, mock)

	img, stats := rt.RenderPass(core.NewRandomSampler(rand.New(rand.NewSource(1))))

	if img.Bounds() != image.Rect(0, 0, 8, 6) {
		t.Errorf("Expected 8x6 image, got %v", img.Bounds())
	}
	if mock.callCount != 8*6*3 {
		t.Errorf("Expected %d integrator calls, got %d", 8*6*3, mock.callCount)
	}
	if stats.TotalSamples != 144 || stats.MinSamples != 3 || stats.MaxSamplesUsed != 3 || stats.AverageSamples != 3 {
		t.Errorf("Unexpected stats: %+v", stats)
	}

	// Gamma 2: sqrt(0.25) = 0.5, sqrt(1) = 1, sqrt(4) clamps to 1
	expected := color.RGBA{R: 127, G: 255, B: 255, A: 255}
	if got := img.RGBAAt(3, 2); got != expected {
		t.Errorf("Expected pixel %v, got %v", expected, got)
	}
}

func TestRaytracerRenderBoundsOnlyAddsMissingSamples(t *testing.T) {
	sc := createTestScene(4, 4, 1)
	mock := &MockIntegrator{returnColor: core.NewVec3(1, 1, 1)}
	rt := NewRaytracer(sc, mock)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(1)))

	pixelStats := newPixelStatsGrid(4, 4)
	bounds := image.Rect(1, 1, 3, 3)

	rt.RenderBounds(bounds, pixelStats, sampler, 2)
	stats := rt.RenderBounds(bounds, pixelStats, sampler, 5)

	if stats.TotalSamples != 4*3 {
		t.Errorf("Second call should add 3 samples per pixel, got %d total", stats.TotalSamples)
	}
	if mock.callCount != 4*5 {
		t.Errorf("Expected %d calls, got %d", 4*5, mock.callCount)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := 0
			if image.Pt(x, y).In(bounds) {
				want = 5
			}
			if pixelStats[y][x].SampleCount != want {
				t.Errorf("Pixel (%d,%d): expected %d samples, got %d", x, y, want, pixelStats[y][x].SampleCount)
			}
		}
	}
}

func TestRaytracerWithPathIntegrator(t *testing.T) {
	sc := createTestScene(16, 16, 4)
	rt := NewRaytracer(sc, integrator.NewPathIntegrator(sc, integrator.ConfigForScene(sc)))
	img, _ := rt.RenderPass(core.NewRandomSampler(rand.New(rand.NewSource(5))))

	// The sphere fills the center; the corners see the background
	center := img.RGBAAt(8, 8)
	corner := img.RGBAAt(0, 0)
	if center == corner {
		t.Errorf("Center %v should differ from background corner %v", center, corner)
	}

	background := Vec3ToColor(sc.Background)
	if corner != background {
		t.Errorf("Expected background %v in the corner, got %v", background, corner)
	}
}

func TestVec3ToColor(t *testing.T) {
	tests := []struct {
		name     string
		input    core.Vec3
		expected color.RGBA
	}{
		{"Black", core.NewVec3(0, 0, 0), color.RGBA{0, 0, 0, 255}},
		{"White", core.NewVec3(1, 1, 1), color.RGBA{255, 255, 255, 255}},
		{"Overexposed clamps", core.NewVec3(9, 2, 1.5), color.RGBA{255, 255, 255, 255}},
		{"Negative clamps", core.NewVec3(-1, 0, 0), color.RGBA{0, 0, 0, 255}},
		{"Gamma", core.NewVec3(0.25, 0.25, 0.25), color.RGBA{127, 127, 127, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Vec3ToColor(tt.input); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}
