package bvh

import (
	"testing"

	"github.com/mirstar13/spatialbvh/vecmath"
)

func testTriangle() Triangle {
	return Triangle{
		A: vecmath.Vec3{X: 0, Y: 0, Z: 0},
		B: vecmath.Vec3{X: 1, Y: 0, Z: 0},
		C: vecmath.Vec3{X: 0, Y: 1, Z: 0},
	}
}

func TestIntersectTriangleHit(t *testing.T) {
	tri := testTriangle()
	ray := NewRay(vecmath.Vec3{X: 0.2, Y: 0.2, Z: -5}, vecmath.Vec3{X: 0, Y: 0, Z: 1})

	hit, ok := ray.IntersectTriangle(tri, false)
	if !ok {
		t.Fatal("expected hit")
	}
	if hit.T <= 0 {
		t.Errorf("hit.T = %v, want positive", hit.T)
	}
	if hit.U < 0 || hit.V < 0 || hit.U+hit.V > 1 {
		t.Errorf("barycentric coordinates out of range: u=%v v=%v", hit.U, hit.V)
	}
}

func TestIntersectTriangleMissOutsideEdges(t *testing.T) {
	tri := testTriangle()
	ray := NewRay(vecmath.Vec3{X: 5, Y: 5, Z: -5}, vecmath.Vec3{X: 0, Y: 0, Z: 1})

	if _, ok := ray.IntersectTriangle(tri, false); ok {
		t.Error("expected miss")
	}
}

func TestIntersectTriangleCullBackface(t *testing.T) {
	tri := testTriangle()
	// The triangle winds counter-clockwise seen from +Z, so a ray arriving
	// from -Z sees its back face.
	ray := NewRay(vecmath.Vec3{X: 0.2, Y: 0.2, Z: -5}, vecmath.Vec3{X: 0, Y: 0, Z: 1})

	if _, ok := ray.IntersectTriangle(tri, true); ok {
		t.Error("expected backface-culled ray to miss")
	}
	if _, ok := ray.IntersectTriangle(tri, false); !ok {
		t.Error("expected the same ray to hit without culling")
	}
}

func TestTriangleBoundsAndCentroid(t *testing.T) {
	tri := testTriangle()
	bounds := tri.Bounds()
	want := NewAABB(vecmath.Vec3{X: 0, Y: 0, Z: 0}, vecmath.Vec3{X: 1, Y: 1, Z: 0})
	if bounds != want {
		t.Errorf("Bounds() = %+v, want %+v", bounds, want)
	}

	centroid := tri.Centroid()
	wantCentroid := vecmath.Vec3{X: 1.0 / 3.0, Y: 1.0 / 3.0, Z: 0}
	if centroid != wantCentroid {
		t.Errorf("Centroid() = %+v, want %+v", centroid, wantCentroid)
	}
}
