package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-stochastic-raytracer/pkg/integrator"
	"github.com/df07/go-stochastic-raytracer/pkg/loaders"
	"github.com/df07/go-stochastic-raytracer/pkg/renderer"
	"github.com/df07/go-stochastic-raytracer/pkg/scene"
)

// scenesDir holds the .rt scenes selectable by name
const scenesDir = "scenes"

func main() {
	sceneType := flag.String("scene", "default", "Built-in scene name, .rt scene name from scenes/, or path to a .rt/.rt.gz file")
	width := flag.Int("width", 0, "Image width (0 = scene default)")
	height := flag.Int("height", 0, "Image height (0 = scene default)")
	spp := flag.Int("spp", 0, "Samples per pixel (0 = scene default)")
	depth := flag.Int("depth", 0, "Maximum recursion depth (0 = scene default)")
	passes := flag.Int("passes", 5, "Number of progressive passes")
	workers := flag.Int("workers", 0, "Number of parallel workers (0 = CPU count)")
	seed := flag.Int64("seed", 42, "Base random seed")
	output := flag.String("output", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	exrOutput := flag.String("exr", "", "Also write the linear radiance to this OpenEXR file")
	checkpoint := flag.String("checkpoint", "", "Write a checkpoint of the accumulated samples to this file")
	resume := flag.String("resume", "", "Resume from a checkpoint file")
	list := flag.Bool("list", false, "List available scenes")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	if *list {
		if err := listScenes(); err != nil {
			fmt.Printf("Error listing scenes: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Println("Starting Stochastic Raytracer...")

	sc, warnings, err := createScene(*sceneType)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	for _, warning := range warnings {
		fmt.Printf("Warning: %s\n", warning)
	}

	applyOverrides(sc, *width, *height, *spp, *depth)
	if err := sc.Validate(); err != nil {
		fmt.Printf("Invalid scene: %v\n", err)
		os.Exit(1)
	}

	outputPath := *output
	if outputPath == "" {
		outputDir := createOutputDir(*sceneType)
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			fmt.Printf("Error creating output directory: %v\n", err)
			os.Exit(1)
		}
		timestamp := time.Now().Format("20060102_150405")
		outputPath = filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))
	}

	config := renderer.DefaultProgressiveConfig()
	config.MaxSamplesPerPixel = sc.SamplingConfig.SamplesPerPixel
	config.MaxPasses = max(1, *passes)
	config.NumWorkers = *workers
	config.Seed = *seed

	logger := renderer.NewDefaultLogger()
	pathIntegrator := integrator.NewPathIntegrator(sc, integrator.ConfigForScene(sc))
	raytracer := renderer.NewProgressiveRaytracer(sc, pathIntegrator, config, logger)

	if *resume != "" {
		if err := raytracer.ResumeFrom(*resume); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}

	// Ctrl-C stops between passes and keeps the last finished pass
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Rendering %dx%d, %d samples per pixel, depth %d\n",
		sc.SamplingConfig.Width, sc.SamplingConfig.Height, sc.SamplingConfig.SamplesPerPixel, sc.SamplingConfig.MaxDepth)

	startTime := time.Now()
	img, stats, renderErr := render(ctx, raytracer)
	if renderErr != nil && img == nil {
		fmt.Printf("Error rendering: %v\n", renderErr)
		os.Exit(1)
	}
	if renderErr != nil {
		fmt.Printf("Rendering stopped early: %v\n", renderErr)
	}

	fmt.Printf("Render completed in %v\n", time.Since(startTime))
	fmt.Printf("Samples per pixel: %.1f (range %d - %d), average luminance %.3f, noise %.5f\n",
		stats.AverageSamples, stats.MinSamples, stats.MaxSamplesUsed, renderer.CalculateAverageLuminance(img), stats.MeanVariance)

	if err := savePNG(outputPath, img); err != nil {
		fmt.Printf("Error saving PNG: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Render saved as %s\n", outputPath)

	if *exrOutput != "" {
		if err := raytracer.SaveEXR(*exrOutput); err != nil {
			fmt.Printf("Error saving EXR: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("HDR render saved as %s\n", *exrOutput)
	}

	if *checkpoint != "" {
		if err := raytracer.SaveCheckpoint(*checkpoint); err != nil {
			fmt.Printf("Error saving checkpoint: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Checkpoint saved as %s\n", *checkpoint)
	}
}

// render runs all passes and returns the last completed image
func render(ctx context.Context, raytracer *renderer.ProgressiveRaytracer) (*image.RGBA, renderer.RenderStats, error) {
	passChan, _, errChan := raytracer.RenderProgressive(ctx, renderer.RenderOptions{})

	var last *renderer.PassResult
	for result := range passChan {
		last = &result
	}
	err := <-errChan

	if last == nil {
		if err == nil {
			err = fmt.Errorf("no pass completed")
		}
		return nil, renderer.RenderStats{}, err
	}
	return last.Image, last.Stats, err
}

// createScene builds a built-in scene or loads an .rt scene by name or path
func createScene(sceneType string) (*scene.Scene, []string, error) {
	if sceneType == "" {
		return nil, nil, fmt.Errorf("scene name cannot be empty")
	}

	if sc, ok := scene.NewBuiltinScene(sceneType); ok {
		return sc, nil, nil
	}

	if path := resolveRTPath(sceneType); path != "" {
		sc, warnings, err := scene.LoadRTScene(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load scene %s: %w", sceneType, err)
		}
		return sc, warnings, nil
	}

	return nil, nil, fmt.Errorf("unknown scene %q (use -list to see available scenes)", sceneType)
}

// resolveRTPath maps a scene argument to an .rt file path, or "" if there is none
func resolveRTPath(sceneType string) string {
	if loaders.IsRTPath(sceneType) {
		return sceneType
	}
	for _, ext := range []string{".rt", ".rt.gz"} {
		candidate := filepath.Join(scenesDir, sceneType+ext)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// createOutputDir returns the output directory for a scene argument
func createOutputDir(sceneType string) string {
	if _, ok := scene.NewBuiltinScene(sceneType); ok {
		return filepath.Join("output", sceneType)
	}

	if loaders.IsRTPath(sceneType) || resolveRTPath(sceneType) != "" {
		base := filepath.Base(sceneType)
		base = strings.TrimSuffix(base, ".gz")
		base = strings.TrimSuffix(base, ".rt")
		return filepath.Join("output", base)
	}

	return filepath.Join("output", "rt-scene")
}

// applyOverrides replaces scene sampling settings with non-zero flag values
func applyOverrides(sc *scene.Scene, width, height, spp, depth int) {
	if width > 0 {
		sc.SamplingConfig.Width = width
	}
	if height > 0 {
		sc.SamplingConfig.Height = height
	}
	if spp > 0 {
		sc.SamplingConfig.SamplesPerPixel = spp
	}
	if depth > 0 {
		sc.SamplingConfig.MaxDepth = depth
	}
}

// savePNG writes an image as PNG, creating parent directories
func savePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return file.Close()
}

// listScenes prints the built-in and .rt scenes
func listScenes() error {
	scenes, err := scene.ListAllScenes(scenesDir)
	if err != nil {
		return err
	}

	fmt.Println("Available scenes:")
	for _, info := range scenes {
		if info.Description != "" {
			fmt.Printf("  %-16s %s - %s\n", info.ID, info.Name, info.Description)
		} else {
			fmt.Printf("  %-16s %s\n", info.ID, info.Name)
		}
	}
	return nil
}

func showHelp() {
	fmt.Println("Stochastic Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	if err := listScenes(); err != nil {
		fmt.Printf("Error listing scenes: %v\n", err)
	}
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png")
}
