package renderer

import (
	"fmt"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// RenderConfig controls how the work is split across workers
type RenderConfig struct {
	BlockSize  int   // Contiguous scanlines per block
	NumWorkers int   // Number of parallel workers (0 = auto-detect)
	Seed       int64 // Base seed for the worker samplers (0 = time-based)
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		BlockSize:  DefaultBlockSize,
		NumWorkers: 0,
		Seed:       0,
	}
}

// Scene interface to avoid circular imports
type Scene interface {
	GetWorld() geometry.Shape
	GetCameraConfig() core.CameraConfig
	GetBackground() core.Vec3
	GetSamplingConfig() core.SamplingConfig
}

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Printf prints to stdout
func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// Raytracer renders a scene into a PixelBuffer using all workers
type Raytracer struct {
	scene      Scene
	config     RenderConfig
	sampling   core.SamplingConfig
	integrator integrator.Integrator
	progress   *Progress
	logger     core.Logger
}

// NewRaytracer creates a new raytracer. Zero fields in config and in the
// scene's sampling config fall back to their defaults.
func NewRaytracer(scene Scene, config RenderConfig, logger core.Logger) *Raytracer {
	if config.BlockSize <= 0 {
		config.BlockSize = DefaultBlockSize
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}

	sampling := core.DefaultSamplingConfig().Merge(scene.GetSamplingConfig())

	return &Raytracer{
		scene:      scene,
		config:     config,
		sampling:   sampling,
		integrator: integrator.NewPathTracingIntegrator(sampling),
		progress:   NewProgress(sampling.Height),
		logger:     logger,
	}
}

// Progress returns the scanline counter of the render
func (rt *Raytracer) Progress() *Progress {
	return rt.progress
}

// SamplingConfig returns the resolved image size and sampling settings
func (rt *Raytracer) SamplingConfig() core.SamplingConfig {
	return rt.sampling
}

// Render traces every pixel and returns the finished buffer. It blocks until
// all workers have joined.
func (rt *Raytracer) Render() (*PixelBuffer, RenderStats) {
	width, height := rt.sampling.Width, rt.sampling.Height
	buffer := NewPixelBuffer(width, height)

	seed := rt.config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	pool := NewWorkerPool(rt.config.NumWorkers, seed)
	numWorkers := pool.GetNumWorkers()
	blocks := NumBlocks(height, rt.config.BlockSize)

	rt.logger.Printf("Rendering %dx%d at %d samples per pixel, max depth %d\n",
		width, height, rt.sampling.SamplesPerPixel, rt.sampling.MaxDepth)
	rt.logger.Printf("Using %d workers over %d blocks of %d rows\n", numWorkers, blocks, rt.config.BlockSize)

	camera := NewCamera(rt.scene.GetCameraConfig())
	world := rt.scene.GetWorld()
	background := rt.scene.GetBackground()

	start := time.Now()
	pool.Run(func(w *Worker) {
		for _, rows := range BlockRows(w.ID, numWorkers, rt.config.BlockSize, height) {
			for row := rows.Start; row < rows.End; row++ {
				rt.renderRow(row, camera, world, background, buffer, w.Sampler)
				rt.progress.Increment()
			}
		}
	})

	stats := RenderStats{
		TotalPixels:  width * height,
		TotalSamples: width * height * rt.sampling.SamplesPerPixel,
		Blocks:       blocks,
		Workers:      numWorkers,
		Duration:     time.Since(start),
	}
	rt.logger.Printf("Render completed in %v\n", stats.Duration)

	return buffer, stats
}

// renderRow fills one scanline; row counts from the top of the image
func (rt *Raytracer) renderRow(row int, camera *Camera, world geometry.Shape, background core.Vec3, buffer *PixelBuffer, sampler core.Sampler) {
	width, height := rt.sampling.Width, rt.sampling.Height

	// Viewport coordinates run bottom-up
	j := height - 1 - row
	uScale := float64(max(width-1, 1))
	vScale := float64(max(height-1, 1))

	for i := 0; i < width; i++ {
		var ps PixelStats
		for sample := 0; sample < rt.sampling.SamplesPerPixel; sample++ {
			jitter := sampler.Get2D()
			u := (float64(i) + jitter.X) / uScale
			v := (float64(j) + jitter.Y) / vScale

			ray := camera.GetRay(u, v)
			ps.AddSample(rt.integrator.RayColor(ray, world, background, sampler))
		}
		buffer.Set(i, row, ToPixel(ps.GetColor()))
	}
}
