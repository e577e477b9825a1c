package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// shadowAcneEpsilon is the minimum hit distance for secondary rays
const shadowAcneEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing
type PathTracingIntegrator struct {
	MaxDepth int
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config core.SamplingConfig) *PathTracingIntegrator {
	return &PathTracingIntegrator{MaxDepth: config.MaxDepth}
}

// RayColor computes the color for a single camera ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Shape, background core.Vec3, sampler core.Sampler) core.Vec3 {
	return RayColor(ray, world, pt.MaxDepth, background, sampler)
}

// RayColor recursively traces ray through world, adding emitted light at each
// hit and attenuating what the scattered ray gathers. Paths end when depth
// reaches zero, the ray escapes, or a material absorbs it.
func RayColor(ray core.Ray, world geometry.Shape, depth int, background core.Vec3, sampler core.Sampler) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	hit, isHit := world.Hit(ray, shadowAcneEpsilon, math.Inf(1))
	if !isHit {
		return background
	}

	emitted := material.Emitted(hit.Material, hit.Point)

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return emitted
	}

	incoming := RayColor(scatter.Scattered, world, depth-1, background, sampler)
	return emitted.Add(scatter.Attenuation.MultiplyVec(incoming))
}
