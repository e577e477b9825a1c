package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/imageio"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// scenesDir holds the .xml scene files that can be selected by name
const scenesDir = "scenes"

func main() {
	// Parse command line flags
	sceneType := flag.String("scene", "default", "Built-in scene name, scene name from scenes/, or path to an .xml scene file")
	outPath := flag.String("out", "", "Output image (.png, .ppm, .bmp, .tiff); default output/<scene>/render_<timestamp>.png")
	width := flag.Int("width", 0, "Image width in pixels (0 = scene setting); height follows the aspect ratio")
	samples := flag.Int("samples", 0, "Samples per pixel (0 = scene setting)")
	depth := flag.Int("depth", 0, "Maximum ray bounce depth (0 = scene setting)")
	workers := flag.Int("workers", 0, "Number of parallel workers (0 = auto-detect)")
	blockSize := flag.Int("block", renderer.DefaultBlockSize, "Scanlines per work block")
	seed := flag.Int64("seed", 0, "Random seed (0 = time-based)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		printHelp()
		return
	}

	fmt.Println("Starting Path Tracer...")

	selectedScene, err := createScene(*sceneType)
	if err != nil {
		fmt.Printf("Error loading scene: %v\n", err)
		os.Exit(1)
	}
	selectedScene.ApplyOverrides(core.SamplingConfig{
		Width:           *width,
		SamplesPerPixel: *samples,
		MaxDepth:        *depth,
	})

	filename := *outPath
	if filename == "" {
		filename = defaultOutputPath(selectedScene.Name, time.Now())
	}
	if _, err := imageio.EncoderFor(filename); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		fmt.Printf("Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	logger := renderer.NewDefaultLogger()
	raytracer := renderer.NewRaytracer(selectedScene, renderer.RenderConfig{
		BlockSize:  *blockSize,
		NumWorkers: *workers,
		Seed:       *seed,
	}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	watcherDone := make(chan struct{})
	go func() {
		renderer.WatchProgress(ctx, raytracer.Progress(), 250*time.Millisecond, logger)
		close(watcherDone)
	}()

	buffer, stats := raytracer.Render()
	cancel()
	<-watcherDone

	fmt.Printf("Rendered %d pixels (%d samples) in %v\n", stats.TotalPixels, stats.TotalSamples, stats.Duration)

	if err := imageio.Save(filename, buffer); err != nil {
		fmt.Printf("Error saving image: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Render saved as %s\n", filename)
}

// createScene resolves a scene name: built-in scenes first, then
// scenes/<name>.xml, then the name as a file path
func createScene(sceneType string) (*scene.Scene, error) {
	if sceneType == "" {
		return nil, errors.New("scene name cannot be empty")
	}

	for _, name := range scene.ListBuiltins() {
		if name == sceneType {
			return scene.LoadNamed(sceneType)
		}
	}

	if !strings.HasSuffix(strings.ToLower(sceneType), ".xml") {
		candidate := filepath.Join(scenesDir, sceneType+".xml")
		if _, err := os.Stat(candidate); err == nil {
			return scene.LoadNamed(candidate)
		}
	}

	return scene.LoadNamed(sceneType)
}

// defaultOutputPath returns output/<scene>/render_<timestamp>.png
func defaultOutputPath(sceneName string, now time.Time) string {
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", sceneName, fmt.Sprintf("render_%s.png", timestamp))
}

func printHelp() {
	fmt.Println("Path Tracer")
	fmt.Println("Usage: pathtracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Built-in scenes:")
	for _, name := range scene.ListBuiltins() {
		fmt.Printf("  %s\n", name)
	}

	if files, err := scene.ListXMLScenes(scenesDir); err == nil && len(files) > 0 {
		fmt.Println()
		fmt.Println("Scene files:")
		for _, info := range files {
			fmt.Printf("  %-20s %s\n", info.ID, info.Description)
		}
	}
}
