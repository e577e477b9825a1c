package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// DefaultBackground is the flat ambient color seen by rays that escape the scene
var DefaultBackground = core.NewVec3(0.05, 0.05, 0.1)

// Scene contains all the elements needed for rendering. A Scene is itself a
// geometry.Shape: hitting it returns the closest hit among its shapes.
type Scene struct {
	Name           string
	Shapes         *geometry.ShapeList
	CameraConfig   core.CameraConfig
	Background     core.Vec3
	SamplingConfig core.SamplingConfig
}

// NewScene creates an empty scene. A zero sampling height is derived from
// the width and the camera's aspect ratio.
func NewScene(name string, camera core.CameraConfig, background core.Vec3, sampling core.SamplingConfig) *Scene {
	if sampling.Height <= 0 {
		sampling.Height = camera.ImageHeight(sampling.Width)
	}
	return &Scene{
		Name:           name,
		Shapes:         geometry.NewShapeList(),
		CameraConfig:   camera,
		Background:     background,
		SamplingConfig: sampling,
	}
}

// Add appends a shape to the scene
func (s *Scene) Add(shape geometry.Shape) {
	s.Shapes.Add(shape)
}

// AddSphereLight adds a glowing sphere with a uniform white intensity
func (s *Scene) AddSphereLight(center core.Vec3, radius, intensity float64) {
	s.Add(geometry.NewSphere(center, radius, material.NewPointLightIntensity(intensity)))
}

// Hit returns the closest intersection among all shapes in the scene
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return s.Shapes.Hit(ray, tMin, tMax)
}

// GetPrimitiveCount returns the number of top-level shapes in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.Shapes.Len()
}

// ApplyOverrides replaces every positive field of override. Changing the width
// without an explicit height re-derives the height from the aspect ratio.
func (s *Scene) ApplyOverrides(override core.SamplingConfig) {
	s.SamplingConfig = s.SamplingConfig.Merge(override)
	if override.Width > 0 && override.Height <= 0 {
		s.SamplingConfig.Height = s.CameraConfig.ImageHeight(override.Width)
	}
}

// GetWorld returns the scene as the shape to render
func (s *Scene) GetWorld() geometry.Shape {
	return s
}

// GetCameraConfig returns the camera configuration
func (s *Scene) GetCameraConfig() core.CameraConfig {
	return s.CameraConfig
}

// GetBackground returns the flat background color
func (s *Scene) GetBackground() core.Vec3 {
	return s.Background
}

// GetSamplingConfig returns the image size and sampling settings
func (s *Scene) GetSamplingConfig() core.SamplingConfig {
	return s.SamplingConfig
}
