package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// DummyMaterial is a test material that absorbs every ray
type DummyMaterial struct{}

func (d DummyMaterial) Scatter(rayIn core.Ray, hit material.HitRecord, sampler core.Sampler) (material.ScatterResult, bool) {
	return material.ScatterResult{}, false
}

func assertVec3(t *testing.T, label string, expected, got core.Vec3) {
	t.Helper()
	const tolerance = 1e-9
	if math.Abs(expected.X-got.X) > tolerance ||
		math.Abs(expected.Y-got.Y) > tolerance ||
		math.Abs(expected.Z-got.Z) > tolerance {
		t.Errorf("Expected %s %v, got %v", label, expected, got)
	}
}
