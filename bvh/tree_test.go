package bvh

import (
	"math"
	"testing"

	"github.com/mirstar13/spatialbvh/vecmath"
)

func cube(cx, cy, cz, half float64) AABB {
	return NewAABB(
		vecmath.Vec3{X: cx - half, Y: cy - half, Z: cz - half},
		vecmath.Vec3{X: cx + half, Y: cy + half, Z: cz + half},
	)
}

func TestTreeInsertAndCount(t *testing.T) {
	tree := New()
	if !tree.IsEmpty() {
		t.Fatal("new tree should be empty")
	}

	a := tree.Insert(cube(0, 0, 0, 1), "a")
	b := tree.Insert(cube(10, 0, 0, 1), "b")
	if a == b {
		t.Fatal("expected distinct object ids")
	}
	if tree.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", tree.Count())
	}

	ok, errs := tree.Validate()
	if !ok {
		t.Fatalf("Validate() failed: %v", errs)
	}
}

func TestTreeInsertManyStaysValid(t *testing.T) {
	tree := New(WithMaxLeafSize(4), WithMaxDepth(16))
	for x := 0; x < 10; x++ {
		for y := 0; y < 10; y++ {
			tree.Insert(cube(float64(x), float64(y), 0, 0.4), nil)
		}
	}
	if tree.Count() != 100 {
		t.Fatalf("Count() = %d, want 100", tree.Count())
	}
	ok, errs := tree.Validate()
	if !ok {
		t.Fatalf("Validate() failed after 100 inserts: %v", errs)
	}
}

func TestTreeUpdateMovesBounds(t *testing.T) {
	tree := New()
	id := tree.Insert(cube(0, 0, 0, 1), "obj")

	if err := tree.Update(id, cube(100, 0, 0, 1)); err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	hits := tree.QueryRange(cube(100, 0, 0, 2))
	if len(hits) != 1 || hits[0].ObjectID != id {
		t.Fatalf("QueryRange after Update = %+v, want object %d", hits, id)
	}
	if got := tree.QueryRange(cube(0, 0, 0, 2)); len(got) != 0 {
		t.Fatalf("object still found at old position: %+v", got)
	}
}

func TestTreeUpdateUnknownObjectErrors(t *testing.T) {
	tree := New()
	tree.Insert(cube(0, 0, 0, 1), nil)
	if err := tree.Update(999, cube(0, 0, 0, 1)); err != ErrObjectNotFound {
		t.Fatalf("Update() error = %v, want ErrObjectNotFound", err)
	}
}

func TestTreeRemoveRootLeaf(t *testing.T) {
	tree := New()
	id := tree.Insert(cube(0, 0, 0, 1), nil)
	if err := tree.Remove(id); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if !tree.IsEmpty() {
		t.Fatal("tree should be empty after removing its only object")
	}
}

func TestTreeRemoveAllInvariant(t *testing.T) {
	tree := New()
	var ids []int64
	for i := 0; i < 50; i++ {
		ids = append(ids, tree.Insert(cube(float64(i), 0, 0, 0.3), i))
	}

	for i, id := range ids {
		if err := tree.Remove(id); err != nil {
			t.Fatalf("Remove(%d) error: %v", id, err)
		}
		if tree.Count() != uint32(len(ids)-i-1) {
			t.Fatalf("Count() after removing %d objects = %d, want %d", i+1, tree.Count(), len(ids)-i-1)
		}
		if ok, errs := tree.Validate(); !ok {
			t.Fatalf("Validate() failed after removing %d objects: %v", i+1, errs)
		}
	}
	if !tree.IsEmpty() {
		t.Fatal("tree should be empty after removing every object")
	}
}

func TestTreeRemoveUnknownObjectErrors(t *testing.T) {
	tree := New()
	tree.Insert(cube(0, 0, 0, 1), nil)
	if err := tree.Remove(999); err != ErrObjectNotFound {
		t.Fatalf("Remove() error = %v, want ErrObjectNotFound", err)
	}
}

func TestTreeRaycastFindsObjectAlongAxis(t *testing.T) {
	tree := New()
	near := tree.Insert(cube(5, 0, 0, 1), "near")
	tree.Insert(cube(15, 0, 0, 1), "far")

	ray := NewRay(vecmath.Vec3{X: -5, Y: 0, Z: 0}, vecmath.Vec3{X: 1, Y: 0, Z: 0})
	hit, ok := tree.RaycastFirst(ray, math.Inf(1))
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.ObjectID != near {
		t.Fatalf("RaycastFirst() found object %d, want the nearer object %d", hit.ObjectID, near)
	}

	all := tree.Raycast(ray, math.Inf(1))
	if len(all) != 2 {
		t.Fatalf("Raycast() found %d hits, want 2", len(all))
	}
	if all[0].Distance > all[1].Distance {
		t.Fatalf("Raycast() hits not sorted ascending by Distance: %v", all)
	}
}

func TestTreeFindNearest(t *testing.T) {
	tree := New()
	closeID := tree.Insert(cube(1, 0, 0, 0.5), "close")
	tree.Insert(cube(50, 0, 0, 0.5), "far")

	result, ok := tree.FindNearest(vecmath.Vec3{X: 0, Y: 0, Z: 0}, 0)
	if !ok {
		t.Fatal("expected a nearest result")
	}
	if result.ObjectID != closeID {
		t.Fatalf("FindNearest() = object %d, want %d", result.ObjectID, closeID)
	}
}

func TestTreeFindNearestRespectsMaxDistance(t *testing.T) {
	tree := New()
	tree.Insert(cube(100, 0, 0, 0.5), "far")

	if _, ok := tree.FindNearest(vecmath.Vec3{X: 0, Y: 0, Z: 0}, 1); ok {
		t.Error("expected no result within a max distance of 1")
	}
}

func TestTreeClear(t *testing.T) {
	tree := New()
	tree.Insert(cube(0, 0, 0, 1), nil)
	tree.Insert(cube(5, 0, 0, 1), nil)
	tree.Clear()

	if !tree.IsEmpty() || tree.Count() != 0 {
		t.Fatal("Clear() should empty the tree")
	}
	// next_id must not reset: ids stay monotonic across Clear.
	id := tree.Insert(cube(0, 0, 0, 1), nil)
	if id < 2 {
		t.Errorf("Insert() after Clear assigned id %d, want a monotonically-continued id", id)
	}
}

func TestDefaultBuildStrategyFollowsWithSAH(t *testing.T) {
	sahTree := New(WithSAH(true))
	if got := sahTree.DefaultBuildStrategy(); got != BuildSAH {
		t.Errorf("DefaultBuildStrategy() = %v, want BuildSAH", got)
	}

	medianTree := New(WithSAH(false))
	if got := medianTree.DefaultBuildStrategy(); got != BuildObjectMedian {
		t.Errorf("DefaultBuildStrategy() = %v, want BuildObjectMedian", got)
	}
}

func TestRebuildDefaultPreservesObjectsAndValidity(t *testing.T) {
	tree := New(WithSAH(false))
	for i := 0; i < 12; i++ {
		tree.Insert(cube(float64(i)*3, 0, 0, 1), i)
	}

	tree.RebuildDefault()

	if tree.Count() != 12 {
		t.Fatalf("Count() after RebuildDefault = %d, want 12", tree.Count())
	}
	if ok, errs := tree.Validate(); !ok {
		t.Fatalf("Validate() after RebuildDefault failed: %v", errs)
	}
}
