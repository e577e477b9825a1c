package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewDefaultScene creates the demo scene: a ground plane lit by a large glowing
// sphere, a glass ball, a mirror ball and two leaning boxes
func NewDefaultScene() *Scene {
	cameraConfig := core.CameraConfig{
		Origin:         core.NewVec3(0, 0, 2),
		FocalLength:    1.0,
		ViewportHeight: 2.0,
		AspectRatio:    16.0 / 9.0,
	}

	s := NewScene("default", cameraConfig, DefaultBackground, core.SamplingConfig{
		Width:           400,
		SamplesPerPixel: 400,
		MaxDepth:        50,
	})

	// Create materials
	matteGround := material.NewMatte(core.NewVec3(0.5, 0.5, 0.5))
	matteRed := material.NewMatte(core.NewVec3(0.6, 0.1, 0.1))
	matteBlue := material.NewMatte(core.NewVec3(0.1, 0.1, 0.8))
	glass := material.NewGlass(1.5)
	mirror := material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)

	s.Add(geometry.NewPlane(core.NewVec3(0, -0.5, 0), core.NewVec3(0, 1, 0), matteGround))

	// Light up and to the left, bright enough to dominate the dim sky
	s.AddSphereLight(core.NewVec3(-1.8, 2.2, 1.5), 1.6, 15.0)

	s.Add(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, glass))

	s.Add(geometry.NewParallelepiped(
		core.NewVec3(-2, -0.5, -1.5),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0.2, 1, 0),
		core.NewVec3(0, 0, 1),
		matteRed,
	))
	s.Add(geometry.NewParallelepiped(
		core.NewVec3(1, -0.5, -1.5),
		core.NewVec3(1, 0, -0.2),
		core.NewVec3(0, 0.8, 0),
		core.NewVec3(0, 0, 1),
		matteBlue,
	))

	s.Add(geometry.NewSphere(core.NewVec3(0, 1, -1.5), 0.4, mirror))

	return s
}

// NewGroundScene creates a small matte sphere resting on a huge one
func NewGroundScene() *Scene {
	s := NewScene("ground", core.DefaultCameraConfig(), DefaultBackground, core.SamplingConfig{
		Width:           400,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	})

	s.Add(geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewMatte(core.NewVec3(1, 1, 1))))
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewMatte(core.NewVec3(0.7, 0.3, 0.3))))

	return s
}
