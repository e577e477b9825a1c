package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// PointLight is a light-emitting material. Components above 1.0 are allowed.
type PointLight struct {
	Emission core.Vec3 // Emitted light color/intensity
}

// NewPointLight creates a new emissive material
func NewPointLight(emission core.Vec3) *PointLight {
	return &PointLight{Emission: emission}
}

// NewPointLightIntensity creates a white light of the given intensity
func NewPointLightIntensity(intensity float64) *PointLight {
	return NewPointLight(core.NewVec3(intensity, intensity, intensity))
}

// Scatter implements the Material interface. Lights never scatter.
func (p *PointLight) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{}, false
}

// Emit returns the emitted light for this material
func (p *PointLight) Emit(point core.Vec3) core.Vec3 {
	return p.Emission
}
