package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along ray from world.
	// Rays that escape the world see the flat background color.
	RayColor(ray core.Ray, world geometry.Shape, background core.Vec3, sampler core.Sampler) core.Vec3
}
