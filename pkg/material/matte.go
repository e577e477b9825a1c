package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Matte represents a diffuse material
type Matte struct {
	Albedo core.Vec3 // Base color/reflectance
}

// NewMatte creates a new matte material
func NewMatte(albedo core.Vec3) *Matte {
	return &Matte{Albedo: albedo}
}

// Scatter implements the Material interface for diffuse scattering.
// The outgoing direction is the normal offset by a random unit vector,
// which approximates a cosine-weighted hemisphere.
func (m *Matte) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	scatterDirection := hit.Normal.Add(core.RandomUnitVector(sampler))

	// The random vector can cancel the normal exactly
	if scatterDirection.NearZero() {
		scatterDirection = hit.Normal
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, scatterDirection),
		Attenuation: m.Albedo,
	}, true
}
