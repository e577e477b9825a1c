package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Parallelepiped is a closed box spanned by three edge vectors from an origin
// corner. Its six faces are quads sharing one material.
type Parallelepiped struct {
	Origin   core.Vec3
	U, V, W  core.Vec3
	Material material.Material
	faces    *ShapeList
}

// NewParallelepiped creates the six faces of the box spanned by u, v, w at origin
func NewParallelepiped(origin, u, v, w core.Vec3, mat material.Material) *Parallelepiped {
	faces := NewShapeList(
		NewQuad(origin, u, v, mat),        // near (u,v)
		NewQuad(origin.Add(w), u, v, mat), // far (u,v)
		NewQuad(origin.Add(v), u, w, mat), // far (u,w)
		NewQuad(origin, u, w, mat),        // near (u,w)
		NewQuad(origin.Add(u), v, w, mat), // far (v,w)
		NewQuad(origin, v, w, mat),        // near (v,w)
	)

	return &Parallelepiped{
		Origin:   origin,
		U:        u,
		V:        v,
		W:        w,
		Material: mat,
		faces:    faces,
	}
}

// Faces returns the quads making up the box
func (p *Parallelepiped) Faces() []Shape {
	return p.faces.Shapes
}

// Hit returns the closest face intersection
func (p *Parallelepiped) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return p.faces.Hit(ray, tMin, tMax)
}
