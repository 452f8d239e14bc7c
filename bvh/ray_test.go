package bvh

import (
	"math"
	"testing"

	"github.com/mirstar13/spatialbvh/vecmath"
)

func TestRayIntersectAABBFromOutside(t *testing.T) {
	box := NewAABB(vecmath.Vec3{X: -1, Y: -1, Z: -1}, vecmath.Vec3{X: 1, Y: 1, Z: 1})
	ray := NewRay(vecmath.Vec3{X: -5, Y: 0, Z: 0}, vecmath.Vec3{X: 1, Y: 0, Z: 0})

	dist, ok := ray.IntersectAABB(box)
	if !ok {
		t.Fatal("expected hit")
	}
	if math.Abs(dist-4) > 1e-9 {
		t.Errorf("entry distance = %v, want 4", dist)
	}
}

func TestRayIntersectAABBMiss(t *testing.T) {
	box := NewAABB(vecmath.Vec3{X: -1, Y: -1, Z: -1}, vecmath.Vec3{X: 1, Y: 1, Z: 1})
	ray := NewRay(vecmath.Vec3{X: -5, Y: 10, Z: 0}, vecmath.Vec3{X: 1, Y: 0, Z: 0})

	if _, ok := ray.IntersectAABB(box); ok {
		t.Error("expected miss")
	}
}

func TestRayIntersectAABBOriginInside(t *testing.T) {
	box := NewAABB(vecmath.Vec3{X: -1, Y: -1, Z: -1}, vecmath.Vec3{X: 1, Y: 1, Z: 1})
	ray := NewRay(vecmath.Vec3{X: 0, Y: 0, Z: 0}, vecmath.Vec3{X: 1, Y: 0, Z: 0})

	dist, ok := ray.IntersectAABB(box)
	if !ok {
		t.Fatal("expected hit")
	}
	if math.Abs(dist-1) > 1e-9 {
		t.Errorf("exit distance for origin-inside ray = %v, want 1", dist)
	}
}

func TestRayIntersectAABBBehindRayMisses(t *testing.T) {
	box := NewAABB(vecmath.Vec3{X: -1, Y: -1, Z: -1}, vecmath.Vec3{X: 1, Y: 1, Z: 1})
	ray := NewRay(vecmath.Vec3{X: 5, Y: 0, Z: 0}, vecmath.Vec3{X: 1, Y: 0, Z: 0})

	if _, ok := ray.IntersectAABB(box); ok {
		t.Error("expected a box entirely behind the ray origin to miss")
	}
}

func TestRayAxisAlignedZeroComponentDoesNotPanic(t *testing.T) {
	box := NewAABB(vecmath.Vec3{X: -1, Y: -1, Z: -1}, vecmath.Vec3{X: 1, Y: 1, Z: 1})
	ray := NewRay(vecmath.Vec3{X: 0, Y: -5, Z: 0}, vecmath.Vec3{X: 0, Y: 1, Z: 0})

	dist, ok := ray.IntersectAABB(box)
	if !ok {
		t.Fatal("expected hit")
	}
	if math.Abs(dist-4) > 1e-9 {
		t.Errorf("entry distance = %v, want 4", dist)
	}
}
