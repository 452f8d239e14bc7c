package bvh

import (
	"testing"

	"github.com/mirstar13/spatialbvh/vecmath"
)

func TestAABBUnionContainsBoth(t *testing.T) {
	a := NewAABB(vecmath.Vec3{X: 0, Y: 0, Z: 0}, vecmath.Vec3{X: 1, Y: 1, Z: 1})
	b := NewAABB(vecmath.Vec3{X: 2, Y: -1, Z: 0.5}, vecmath.Vec3{X: 3, Y: 2, Z: 4})
	u := a.Union(b)

	want := NewAABB(vecmath.Vec3{X: 0, Y: -1, Z: 0}, vecmath.Vec3{X: 3, Y: 2, Z: 4})
	if u != want {
		t.Fatalf("Union() = %+v, want %+v", u, want)
	}
}

func TestAABBEmptyUnionIdentity(t *testing.T) {
	box := NewAABB(vecmath.Vec3{X: 1, Y: 2, Z: 3}, vecmath.Vec3{X: 4, Y: 5, Z: 6})
	u := EmptyAABB().Union(box)
	if u != box {
		t.Fatalf("EmptyAABB().Union(box) = %+v, want %+v", u, box)
	}
}

func TestAABBOverlapsAABB(t *testing.T) {
	a := NewAABB(vecmath.Vec3{X: 0, Y: 0, Z: 0}, vecmath.Vec3{X: 1, Y: 1, Z: 1})
	b := NewAABB(vecmath.Vec3{X: 0.5, Y: 0.5, Z: 0.5}, vecmath.Vec3{X: 2, Y: 2, Z: 2})
	c := NewAABB(vecmath.Vec3{X: 5, Y: 5, Z: 5}, vecmath.Vec3{X: 6, Y: 6, Z: 6})

	if !a.OverlapsAABB(b) {
		t.Error("expected a and b to overlap")
	}
	if a.OverlapsAABB(c) {
		t.Error("expected a and c to not overlap")
	}
}

func TestAABBClosestPointDistance(t *testing.T) {
	box := NewAABB(vecmath.Vec3{X: 0, Y: 0, Z: 0}, vecmath.Vec3{X: 1, Y: 1, Z: 1})

	if d := box.ClosestPointDistance(vecmath.Vec3{X: 0.5, Y: 0.5, Z: 0.5}); d != 0 {
		t.Errorf("distance from inside point = %v, want 0", d)
	}
	if d := box.ClosestPointDistance(vecmath.Vec3{X: 2, Y: 0, Z: 0}); d != 1 {
		t.Errorf("distance from (2,0,0) = %v, want 1", d)
	}
}

func TestAABBLongestAxis(t *testing.T) {
	box := NewAABB(vecmath.Vec3{X: 0, Y: 0, Z: 0}, vecmath.Vec3{X: 1, Y: 5, Z: 2})
	if axis := box.LongestAxis(); axis != 1 {
		t.Errorf("LongestAxis() = %d, want 1", axis)
	}
}

func TestAABBVolumeClampsNegativeExtent(t *testing.T) {
	box := EmptyAABB()
	if v := box.Volume(); v != 0 {
		t.Errorf("Volume() of empty box = %v, want 0", v)
	}
	if a := box.SurfaceArea(); a != 0 {
		t.Errorf("SurfaceArea() of empty box = %v, want 0", a)
	}
}

func TestGrowthVolumeMatchesUnionVolume(t *testing.T) {
	a := NewAABB(vecmath.Vec3{X: 0, Y: 0, Z: 0}, vecmath.Vec3{X: 1, Y: 1, Z: 1})
	b := NewAABB(vecmath.Vec3{X: 0.5, Y: 0.5, Z: 0.5}, vecmath.Vec3{X: 2, Y: 2, Z: 2})
	if got, want := growthVolume(a, b), a.Union(b).Volume(); got != want {
		t.Errorf("growthVolume() = %v, want %v", got, want)
	}
}
