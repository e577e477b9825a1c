package renderer

import (
	"math"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
)

func TestRender_EmptySceneIsBackground(t *testing.T) {
	for _, workers := range []int{1, 2, 8} {
		scene := newTestScene(16, 9, 4)
		rt := NewRaytracer(scene, RenderConfig{BlockSize: 2, NumWorkers: workers, Seed: 7}, &recordingLogger{})

		buffer, stats := rt.Render()

		if buffer.Width != 16 || buffer.Height != 9 {
			t.Fatalf("workers=%d: unexpected buffer size %dx%d", workers, buffer.Width, buffer.Height)
		}
		for i, p := range buffer.Pixels {
			if p != (Pixel{57, 57, 80}) {
				t.Fatalf("workers=%d: pixel %d = %v, expected background", workers, i, p)
			}
		}
		if got := rt.Progress().Completed(); got != 9 {
			t.Errorf("workers=%d: expected 9 completed scanlines, got %d", workers, got)
		}
		if stats.Workers != workers || stats.Blocks != 5 {
			t.Errorf("workers=%d: unexpected stats %+v", workers, stats)
		}
		if stats.TotalPixels != 144 || stats.TotalSamples != 576 {
			t.Errorf("workers=%d: unexpected pixel/sample totals %+v", workers, stats)
		}
	}
}

func TestRender_ProgressEqualsHeight(t *testing.T) {
	for _, workers := range []int{1, 2, 8} {
		scene := newTestScene(4, 37, 1,
			geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewMatte(core.NewVec3(0.5, 0.5, 0.5))))
		rt := NewRaytracer(scene, RenderConfig{BlockSize: 32, NumWorkers: workers, Seed: 1}, &recordingLogger{})
		rt.Render()

		if got := rt.Progress().Completed(); got != 37 {
			t.Errorf("workers=%d: expected 37 scanlines, got %d", workers, got)
		}
	}
}

func TestRender_LightFillingViewIsEmission(t *testing.T) {
	// Camera sits inside a light sphere so every ray hits it
	light := material.NewPointLightIntensity(0.25)
	scene := newTestScene(8, 5, 1, geometry.NewSphere(core.NewVec3(0, 0, 0), 10, light))
	rt := NewRaytracer(scene, RenderConfig{NumWorkers: 3, Seed: 3}, &recordingLogger{})

	buffer, _ := rt.Render()
	for i, p := range buffer.Pixels {
		if p != (Pixel{128, 128, 128}) {
			t.Fatalf("pixel %d = %v, expected emission (128,128,128)", i, p)
		}
	}
}

func TestRender_GroundSceneMissRay(t *testing.T) {
	background := core.NewVec3(0.05, 0.05, 0.1)
	ground := geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewMatte(core.NewVec3(1, 1, 1)))
	world := geometry.NewShapeList(ground)

	// A ray pointing upward misses the ground
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, -1))
	color := integrator.RayColor(ray, world, 50, background, core.NewSeededSampler(5))
	if color != background {
		t.Fatalf("Expected %v, got %v", background, color)
	}

	expected := Pixel{
		R: uint8(256 * math.Sqrt(0.05)),
		G: uint8(256 * math.Sqrt(0.05)),
		B: uint8(256 * math.Sqrt(0.1)),
	}
	if got := ToPixel(color); got != expected {
		t.Errorf("Expected %v, got %v", expected, got)
	}

	// The upper rows of a rendered frame look above the horizon
	greyGround := geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewMatte(core.NewVec3(0.5, 0.5, 0.5)))
	scene := newTestScene(8, 8, 1, greyGround)
	rt := NewRaytracer(scene, RenderConfig{NumWorkers: 2, Seed: 9}, &recordingLogger{})
	buffer, _ := rt.Render()
	for row := 0; row < 3; row++ {
		for x := 0; x < 8; x++ {
			if p := buffer.At(x, row); p != expected {
				t.Errorf("pixel (%d,%d) = %v, expected background %v", x, row, p, expected)
			}
		}
	}
	// The bottom row looks down at the ground, which halves the sky light
	if p := buffer.At(4, 7); p == expected {
		t.Errorf("Expected the ground in the bottom row, got background")
	}
}

func TestRender_SingleRowAndColumn(t *testing.T) {
	scene := newTestScene(1, 1, 2)
	rt := NewRaytracer(scene, RenderConfig{NumWorkers: 4, Seed: 2}, &recordingLogger{})

	buffer, stats := rt.Render()
	if len(buffer.Pixels) != 1 || buffer.Pixels[0] != (Pixel{57, 57, 80}) {
		t.Errorf("Unexpected 1x1 render %v", buffer.Pixels)
	}
	if stats.Blocks != 1 {
		t.Errorf("Expected 1 block, got %d", stats.Blocks)
	}
}

func TestNewRaytracer_Defaults(t *testing.T) {
	scene := newTestScene(0, 0, 0)
	rt := NewRaytracer(scene, RenderConfig{}, &recordingLogger{})

	if rt.config.BlockSize != DefaultBlockSize {
		t.Errorf("Expected default block size %d, got %d", DefaultBlockSize, rt.config.BlockSize)
	}
	if rt.SamplingConfig() != core.DefaultSamplingConfig() {
		t.Errorf("Expected default sampling config, got %+v", rt.SamplingConfig())
	}
	if rt.Progress().Total() != core.DefaultSamplingConfig().Height {
		t.Errorf("Expected progress total %d, got %d", core.DefaultSamplingConfig().Height, rt.Progress().Total())
	}
}

func TestRender_LogsSummary(t *testing.T) {
	logger := &recordingLogger{}
	rt := NewRaytracer(newTestScene(4, 4, 1), RenderConfig{NumWorkers: 2, BlockSize: 2, Seed: 1}, logger)
	rt.Render()

	out := logger.String()
	for _, want := range []string{"Rendering 4x4", "Using 2 workers over 2 blocks", "Render completed"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected log to contain %q, got %q", want, out)
		}
	}
}
