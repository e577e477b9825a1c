package renderer

import (
	"fmt"
	"strings"
	"sync"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// testScene is a minimal Scene for renderer tests
type testScene struct {
	world      *geometry.ShapeList
	camera     core.CameraConfig
	background core.Vec3
	sampling   core.SamplingConfig
}

func newTestScene(width, height, spp int, shapes ...geometry.Shape) *testScene {
	return &testScene{
		world:      geometry.NewShapeList(shapes...),
		camera:     core.DefaultCameraConfig(),
		background: core.NewVec3(0.05, 0.05, 0.1),
		sampling:   core.SamplingConfig{Width: width, Height: height, SamplesPerPixel: spp, MaxDepth: 50},
	}
}

func (s *testScene) GetWorld() geometry.Shape               { return s.world }
func (s *testScene) GetCameraConfig() core.CameraConfig     { return s.camera }
func (s *testScene) GetBackground() core.Vec3               { return s.background }
func (s *testScene) GetSamplingConfig() core.SamplingConfig { return s.sampling }

// recordingLogger collects log output
type recordingLogger struct {
	mu  sync.Mutex
	out strings.Builder
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(&l.out, format, args...)
}

func (l *recordingLogger) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.out.String()
}
