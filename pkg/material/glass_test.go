package material

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestGlass_AttenuationIsWhite(t *testing.T) {
	glass := NewGlass(1.5)
	sampler := core.NewSeededSampler(42)

	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(1, -1, 0))
	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1.0,
		FrontFace: true,
		Material:  glass,
	}

	for i := 0; i < 200; i++ {
		result, scattered := glass.Scatter(ray, hit, sampler)
		if !scattered {
			t.Fatal("Glass should always scatter")
		}
		if result.Attenuation != core.NewVec3(1, 1, 1) {
			t.Fatalf("Expected white attenuation, got %v", result.Attenuation)
		}
	}
}

func TestGlass_TotalInternalReflection(t *testing.T) {
	glass := NewGlass(1.5)

	// Shallow ray leaving the glass
	rayDirection := core.NewVec3(1, -0.1, 0).Normalize()
	ray := core.NewRay(core.NewVec3(0, 0, 0), rayDirection)
	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1.0,
		FrontFace: false,
	}

	cosTheta := -rayDirection.Dot(hit.Normal)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)
	if 1.5*sinTheta <= 1.0 {
		t.Fatalf("Test setup should force total internal reflection")
	}

	expected := core.Reflect(rayDirection, hit.Normal)
	for _, draw := range []float64{0, 0.25, 0.5, 0.999999} {
		sampler := &fixedSampler{v1: draw}
		result, scattered := glass.Scatter(ray, hit, sampler)
		if !scattered {
			t.Fatal("Glass should always scatter")
		}
		if result.Scattered.Direction != expected {
			t.Errorf("draw=%f: expected reflection %v, got %v", draw, expected, result.Scattered.Direction)
		}
	}
}

func TestGlass_ReflectOrRefractByDraw(t *testing.T) {
	glass := NewGlass(1.5)
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 1, 0), FrontFace: true}

	// At normal incidence the reflectance is r0 = 0.04
	tests := []struct {
		name     string
		draw     float64
		expected core.Vec3
	}{
		{"low draw reflects", 0.0, core.NewVec3(0, 1, 0)},
		{"high draw refracts", 0.9, core.NewVec3(0, -1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _ := glass.Scatter(ray, hit, &fixedSampler{v1: tt.draw})
			if result.Scattered.Direction.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, result.Scattered.Direction)
			}
		})
	}
}

func TestReflectance(t *testing.T) {
	tests := []struct {
		name     string
		cosine   float64
		ratio    float64
		expected float64
	}{
		{"normal incidence entering", 1.0, 1.0 / 1.5, 0.04},
		{"normal incidence exiting", 1.0, 1.5, 0.04},
		{"grazing", 0.0, 1.5, 1.0},
		{"matched media", 1.0, 1.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reflectance(tt.cosine, tt.ratio)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}
