package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/integrator"
	"github.com/df07/go-stochastic-raytracer/pkg/scene"
)

// Raytracer samples pixels of a scene through an integrator
type Raytracer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	camera     *Camera
	width      int
	height     int
	config     scene.SamplingConfig
}

// NewRaytracer creates a raytracer using the scene's camera and sampling settings
func NewRaytracer(sc *scene.Scene, integ integrator.Integrator) *Raytracer {
	config := sc.SamplingConfig
	return &Raytracer{
		scene:      sc,
		integrator: integ,
		camera:     NewCamera(sc.CameraConfig, config.Width, config.Height),
		width:      config.Width,
		height:     config.Height,
		config:     config,
	}
}

// Width returns the image width in pixels
func (rt *Raytracer) Width() int { return rt.width }

// Height returns the image height in pixels
func (rt *Raytracer) Height() int { return rt.height }

// SamplePixel traces one jittered camera ray through pixel (i, j)
func (rt *Raytracer) SamplePixel(i, j int, sampler core.Sampler) core.Vec3 {
	ray := rt.camera.GetRay(i, j, sampler)
	return rt.integrator.RayColor(ray, sampler)
}

// RenderBounds brings every pixel inside bounds up to targetSamples
func (rt *Raytracer) RenderBounds(bounds image.Rectangle, pixelStats [][]PixelStats, sampler core.Sampler, targetSamples int) RenderStats {
	stats := newRenderStats(bounds.Dx()*bounds.Dy(), targetSamples)

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			ps := &pixelStats[j][i]
			before := ps.SampleCount
			for ps.SampleCount < targetSamples {
				ps.AddSample(rt.SamplePixel(i, j, sampler))
			}
			stats.update(ps.SampleCount - before)
		}
	}

	stats.finalize()
	return stats
}

// RenderPass renders the whole image at the scene's samples per pixel on the calling goroutine
func (rt *Raytracer) RenderPass(sampler core.Sampler) (*image.RGBA, RenderStats) {
	pixelStats := newPixelStatsGrid(rt.width, rt.height)
	stats := rt.RenderBounds(image.Rect(0, 0, rt.width, rt.height), pixelStats, sampler, rt.config.SamplesPerPixel)
	return ImageFromStats(pixelStats), stats
}

// Vec3ToColor converts a linear color to RGBA with gamma 2.0 and clamping
func Vec3ToColor(colorVec core.Vec3) color.RGBA {
	// Apply gamma correction (gamma = 2.0)
	colorVec = colorVec.GammaCorrect(2.0)

	// Clamp to valid color range
	colorVec = colorVec.Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}

// ImageFromStats builds an image from the averaged pixel statistics
func ImageFromStats(pixelStats [][]PixelStats) *image.RGBA {
	height := len(pixelStats)
	width := 0
	if height > 0 {
		width = len(pixelStats[0])
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, Vec3ToColor(pixelStats[y][x].GetColor()))
		}
	}
	return img
}

// newPixelStatsGrid allocates a height x width grid of pixel statistics
func newPixelStatsGrid(width, height int) [][]PixelStats {
	pixelStats := make([][]PixelStats, height)
	for y := range pixelStats {
		pixelStats[y] = make([]PixelStats, width)
	}
	return pixelStats
}
