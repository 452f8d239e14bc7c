package bvh

import (
	"math"

	"github.com/mirstar13/spatialbvh/vecmath"
)

// Triangle is three vertices plus an opaque index (position in the source
// mesh) and an opaque payload, used by the mesh BVH.
type Triangle struct {
	A, B, C vecmath.Vec3
	Index   int
	Payload any
}

// Bounds returns the triangle's AABB.
func (t Triangle) Bounds() AABB {
	return NewAABBFromPoints([]vecmath.Vec3{t.A, t.B, t.C})
}

// Centroid returns the arithmetic mean of the triangle's three vertices.
func (t Triangle) Centroid() vecmath.Vec3 {
	return t.A.Add(t.B).Add(t.C).Scale(1.0 / 3.0)
}

// TriangleHit is the result of a successful ray-triangle intersection.
type TriangleHit struct {
	T       float64
	U, V, W float64 // barycentric coordinates; W = 1-U-V
}

// IntersectTriangle performs the Möller-Trumbore ray-triangle test.
// cullBackface, when true, discards hits on the triangle's back face
// (determinant below epsilon rather than |determinant| below epsilon).
func (r Ray) IntersectTriangle(t Triangle, cullBackface bool) (TriangleHit, bool) {
	edge1 := t.B.Sub(t.A)
	edge2 := t.C.Sub(t.A)

	h := r.Direction.Cross(edge2)
	det := edge1.Dot(h)

	if cullBackface {
		if det < triangleEpsilon {
			return TriangleHit{}, false
		}
	} else if math.Abs(det) < triangleEpsilon {
		return TriangleHit{}, false
	}

	invDet := 1.0 / det
	s := r.Origin.Sub(t.A)
	u := invDet * s.Dot(h)
	if u < 0 || u > 1 {
		return TriangleHit{}, false
	}

	q := s.Cross(edge1)
	v := invDet * r.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return TriangleHit{}, false
	}

	dist := invDet * edge2.Dot(q)
	if dist <= triangleEpsilon {
		return TriangleHit{}, false
	}

	return TriangleHit{T: dist, U: u, V: v, W: 1 - u - v}, true
}
