package renderer

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/df07/go-stochastic-raytracer/pkg/integrator"
)

func TestProgressiveSampleCalculation(t *testing.T) {
	// Test the sample calculation logic without creating a full raytracer
	config := DefaultProgressiveConfig()
	config.InitialSamples = 1
	config.MaxSamplesPerPixel = 50
	config.MaxPasses = 7

	// Create a minimal progressive raytracer for testing
	pr := &ProgressiveRaytracer{
		config: config,
	}

	// Test sample progression with linear distribution
	// Pass 1: 1 sample
	// Pass 2-6: (50-1)/6 = 8.16 -> 8 samples per pass -> 1 + 8*1 = 9, 1 + 8*2 = 17, etc.
	// Pass 7: 50 (final pass gets all remaining)
	expectedTotalSamples := []int{1, 9, 17, 25, 33, 41, 50}

	for pass := 1; pass <= 7; pass++ {
		totalSamples := pr.getSamplesForPass(pass)

		if totalSamples != expectedTotalSamples[pass-1] {
			t.Errorf("Pass %d: expected %d total samples, got %d",
				pass, expectedTotalSamples[pass-1], totalSamples)
		}
	}
}

func TestProgressiveConfig(t *testing.T) {
	// Test default configuration
	config := DefaultProgressiveConfig()

	if config.TileSize != 64 {
		t.Errorf("Expected default tile size 64, got %d", config.TileSize)
	}

	if config.InitialSamples != 1 {
		t.Errorf("Expected default initial samples 1, got %d", config.InitialSamples)
	}

	if config.MaxSamplesPerPixel != 50 {
		t.Errorf("Expected default max samples 50, got %d", config.MaxSamplesPerPixel)
	}

	if config.MaxPasses != 7 {
		t.Errorf("Expected default max passes 7, got %d", config.MaxPasses)
	}

	if config.Seed != 42 {
		t.Errorf("Expected default seed 42, got %d", config.Seed)
	}
}

func TestRenderProgressive(t *testing.T) {
	sc := createTestScene(20, 10, 1)
	pi := integrator.NewPathIntegrator(sc, integrator.ConfigForScene(sc))
	config := ProgressiveConfig{TileSize: 8, InitialSamples: 1, MaxSamplesPerPixel: 5, MaxPasses: 3, NumWorkers: 3, Seed: 1}
	pr := NewProgressiveRaytracer(sc, pi, config, NewSilentLogger())

	passChan, tileChan, errChan := pr.RenderProgressive(context.Background(), RenderOptions{TileUpdates: true})

	tiles := 0
	done := make(chan struct{})
	go func() {
		for range tileChan {
			tiles++
		}
		close(done)
	}()

	var passes []PassResult
	for result := range passChan {
		passes = append(passes, result)
	}
	<-done
	if err := <-errChan; err != nil {
		t.Fatalf("RenderProgressive failed: %v", err)
	}

	expectedSamples := []int{1, 3, 5}
	if len(passes) != len(expectedSamples) {
		t.Fatalf("Expected %d passes, got %d", len(expectedSamples), len(passes))
	}
	for i, pass := range passes {
		if pass.Stats.MinSamples != expectedSamples[i] || pass.Stats.MaxSamplesUsed != expectedSamples[i] {
			t.Errorf("Pass %d: expected %d samples per pixel, got %+v", pass.PassNumber, expectedSamples[i], pass.Stats)
		}
		if pass.Image.Bounds() != image.Rect(0, 0, 20, 10) {
			t.Errorf("Pass %d: unexpected image bounds %v", pass.PassNumber, pass.Image.Bounds())
		}
	}
	if !passes[2].IsLast || passes[0].IsLast {
		t.Error("Only the final pass should be marked last")
	}

	// 3x2 tiles per pass; the buffered channel holds every update
	if tiles != 3*2*3 {
		t.Errorf("Expected 18 tile updates, got %d", tiles)
	}

	// The pool is stopped once rendering finishes
	if _, _, err := pr.RenderPass(1, nil); !errors.Is(err, ErrPoolStopped) {
		t.Errorf("Expected ErrPoolStopped after RenderProgressive, got %v", err)
	}
}

func TestRenderPassAfterClose(t *testing.T) {
	sc := createTestScene(8, 8, 1)
	pi := integrator.NewPathIntegrator(sc, integrator.ConfigForScene(sc))
	pr := NewProgressiveRaytracer(sc, pi, DefaultProgressiveConfig(), NewSilentLogger())

	if _, _, err := pr.RenderPass(1, nil); err != nil {
		t.Fatalf("RenderPass failed: %v", err)
	}
	pr.Close()
	pr.Close()

	img, _, err := pr.RenderPass(2, nil)
	if !errors.Is(err, ErrPoolStopped) || img != nil {
		t.Errorf("Expected ErrPoolStopped and no image, got %v", err)
	}
}

func TestRenderProgressiveCancelled(t *testing.T) {
	sc := createTestScene(8, 8, 1)
	pi := integrator.NewPathIntegrator(sc, integrator.ConfigForScene(sc))
	pr := NewProgressiveRaytracer(sc, pi, DefaultProgressiveConfig(), NewSilentLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	passChan, _, errChan := pr.RenderProgressive(ctx, RenderOptions{})
	for range passChan {
		t.Error("No pass should complete after cancellation")
	}
	if err := <-errChan; err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestNewTileGrid(t *testing.T) {
	// Test tile grid generation for a 400x225 image with 64x64 tiles
	width, height, tileSize := 400, 225, 64
	tiles := NewTileGrid(width, height, tileSize)

	// Calculate expected number of tiles
	expectedTilesX := (width + tileSize - 1) / tileSize   // 7 tiles
	expectedTilesY := (height + tileSize - 1) / tileSize  // 4 tiles
	expectedTotalTiles := expectedTilesX * expectedTilesY // 28 tiles

	if len(tiles) != expectedTotalTiles {
		t.Errorf("Expected %d tiles, got %d", expectedTotalTiles, len(tiles))
	}

	// Test that tiles cover the entire image without gaps or overlaps
	covered := make([][]bool, height)
	for y := range covered {
		covered[y] = make([]bool, width)
	}

	for _, tile := range tiles {
		for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
			for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
				if x >= width || y >= height {
					t.Errorf("Tile %d extends beyond image bounds at (%d,%d)", tile.ID, x, y)
				}
				if covered[y][x] {
					t.Errorf("Pixel (%d,%d) is covered by multiple tiles", x, y)
				}
				covered[y][x] = true
			}
		}
	}

	// Verify all pixels are covered
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !covered[y][x] {
				t.Errorf("Pixel (%d,%d) is not covered by any tile", x, y)
			}
		}
	}
}

func TestTileDeterministicRandom(t *testing.T) {
	// Create two tiles with the same ID
	bounds := image.Rect(0, 0, 64, 64)
	tile1 := NewTile(42, bounds)
	tile2 := NewTile(42, bounds)

	// They should have the same random seed and produce the same sequence
	val1 := tile1.Sampler.Get1D()
	val2 := tile2.Sampler.Get1D()

	if val1 != val2 {
		t.Errorf("Tiles with same ID should produce same random values: %f != %f", val1, val2)
	}

	// Different tile IDs should produce different sequences
	tile3 := NewTile(43, bounds)
	val3 := tile3.Sampler.Get1D()

	if val1 == val3 {
		t.Error("Tiles with different IDs should produce different random values")
	}
}
