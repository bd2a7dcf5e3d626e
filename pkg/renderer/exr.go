package renderer

import (
	"fmt"
	"image"

	"github.com/mrjoshuak/go-openexr/exr"
)

// HDRImageFromStats builds a linear float image from the averaged pixel statistics.
// No gamma or clamping is applied.
func HDRImageFromStats(pixelStats [][]PixelStats) *exr.RGBAImage {
	height := len(pixelStats)
	width := 0
	if height > 0 {
		width = len(pixelStats[0])
	}

	img := exr.NewRGBAImage(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := pixelStats[y][x].GetColor()
			img.SetRGBA(x, y, float32(c.X), float32(c.Y), float32(c.Z), 1)
		}
	}
	return img
}

// SaveEXR writes the current linear radiance estimate as an OpenEXR file
func (pr *ProgressiveRaytracer) SaveEXR(filename string) error {
	if err := exr.EncodeFile(filename, HDRImageFromStats(pr.pixelStats)); err != nil {
		return fmt.Errorf("failed to write EXR %s: %w", filename, err)
	}
	return nil
}
