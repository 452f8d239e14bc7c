package bvh

import "testing"

func TestRefitRecomputesLooseBounds(t *testing.T) {
	tree := New()
	a := tree.Insert(cube(0, 0, 0, 1), nil)
	tree.Insert(cube(10, 0, 0, 1), nil)

	rootBefore := tree.Bounds()

	// Grow a's bounds directly in the arena without going through Update,
	// to simulate bounds having gone loose, then confirm Refit catches up.
	idx := tree.objectMap[a]
	tree.arena.get(idx).bounds = cube(0, 0, 0, 20)

	tree.Refit()
	if tree.Bounds() == rootBefore {
		t.Fatal("Refit() did not grow the root bounds to cover the loosened leaf")
	}
	ok, errs := tree.Validate()
	if !ok {
		t.Fatalf("Validate() failed after Refit: %v", errs)
	}
}

func TestRefitOnEmptyTreeNoOp(t *testing.T) {
	tree := New()
	tree.Refit() // must not panic
	if !tree.IsEmpty() {
		t.Fatal("Refit() must not populate an empty tree")
	}
}
