package material

import "github.com/df07/go-pathtracer/pkg/core"

// fixedSampler returns the same values on every call and counts draws
type fixedSampler struct {
	v1    float64
	v2    core.Vec2
	v3    core.Vec3
	draws int
}

func (f *fixedSampler) Get1D() float64 { f.draws++; return f.v1 }
func (f *fixedSampler) Get2D() core.Vec2 { f.draws++; return f.v2 }
func (f *fixedSampler) Get3D() core.Vec3 { f.draws++; return f.v3 }
