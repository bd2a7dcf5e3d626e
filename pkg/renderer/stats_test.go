package renderer

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

func TestCalculateAverageLuminance(t *testing.T) {
	// Create a 2x2 image
	// Top-left: Red (1, 0, 0) -> Lum = 0.2126
	// Top-right: Green (0, 1, 0) -> Lum = 0.7152
	// Bottom-left: Blue (0, 0, 1) -> Lum = 0.0722
	// Bottom-right: Black (0, 0, 0) -> Lum = 0.0

	// Expected average: (0.2126 + 0.7152 + 0.0722 + 0.0) / 4 = 1.0 / 4 = 0.25

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{0, 0, 0, 255})

	avgLum := CalculateAverageLuminance(img)
	expected := 0.25
	tolerance := 0.0001

	if avgLum < expected-tolerance || avgLum > expected+tolerance {
		t.Errorf("Expected average luminosity %f, got %f", expected, avgLum)
	}
}

func TestCalculateAverageLuminance_White(t *testing.T) {
	// 1x1 White pixel -> Lum = 1.0
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{255, 255, 255, 255})

	avgLum := CalculateAverageLuminance(img)
	expected := 1.0
	tolerance := 0.0001

	if avgLum < expected-tolerance || avgLum > expected+tolerance {
		t.Errorf("Expected average luminosity %f, got %f", expected, avgLum)
	}
}

func TestCalculateAverageLuminance_Empty(t *testing.T) {
	tests := []struct {
		name string
		img  *image.RGBA
	}{
		{"Zero size", image.NewRGBA(image.Rect(0, 0, 0, 0))},
		{"Zero height", image.NewRGBA(image.Rect(0, 0, 5, 0))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if avgLum := CalculateAverageLuminance(tt.img); avgLum != 0 {
				t.Errorf("Expected 0 for an empty image, got %f", avgLum)
			}
		})
	}
}

func TestCalculateAverageLuminance_OffsetBounds(t *testing.T) {
	// Sub-images keep their parent coordinates
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(2, 2, color.RGBA{255, 255, 255, 255})
	img.Set(3, 2, color.RGBA{255, 255, 255, 255})
	sub := img.SubImage(image.Rect(2, 2, 4, 3)).(*image.RGBA)

	if avgLum := CalculateAverageLuminance(sub); math.Abs(avgLum-1.0) > 0.0001 {
		t.Errorf("Expected 1.0 for the white sub-image, got %f", avgLum)
	}
}

func TestPixelStatsVariance(t *testing.T) {
	tests := []struct {
		name     string
		samples  []core.Vec3
		expected float64
	}{
		{"No samples", nil, 0},
		{"Single sample", []core.Vec3{core.NewVec3(1, 1, 1)}, 0},
		{"Constant samples", []core.Vec3{core.NewVec3(0.5, 0.5, 0.5), core.NewVec3(0.5, 0.5, 0.5)}, 0},
		// Luminance 0 and 1: mean 0.5, mean of squares 0.5
		{"Black and white", []core.Vec3{{}, core.NewVec3(1, 1, 1)}, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ps PixelStats
			for _, sample := range tt.samples {
				ps.AddSample(sample)
			}
			if v := ps.Variance(); math.Abs(v-tt.expected) > 1e-9 {
				t.Errorf("Expected variance %f, got %f", tt.expected, v)
			}
		})
	}
}

func TestRenderStatsMeanVariance(t *testing.T) {
	stats := newRenderStats(2, 4)
	stats.update(2)
	stats.addVariance(0.25)
	stats.update(2)
	stats.addVariance(0)
	stats.finalize()

	if math.Abs(stats.MeanVariance-0.125) > 1e-12 {
		t.Errorf("Expected mean variance 0.125, got %f", stats.MeanVariance)
	}
	if stats.AverageSamples != 2 {
		t.Errorf("Expected 2 average samples, got %f", stats.AverageSamples)
	}
}
