package bvh

import (
	"testing"

	"github.com/mirstar13/spatialbvh/vecmath"
)

func gridInputs(n int) []BuildInput {
	inputs := make([]BuildInput, 0, n*n)
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			inputs = append(inputs, BuildInput{
				Bounds:  cube(float64(x), float64(y), 0, 0.4),
				Payload: [2]int{x, y},
			})
		}
	}
	return inputs
}

func TestBuildEachStrategyProducesValidTree(t *testing.T) {
	inputs := gridInputs(8)
	for _, strategy := range []BuildStrategy{BuildSAH, BuildObjectMedian, BuildSpatialMedian} {
		tree, ids := Build(inputs, strategy)
		if len(ids) != len(inputs) {
			t.Fatalf("%s: got %d ids, want %d", strategy, len(ids), len(inputs))
		}
		if tree.Count() != uint32(len(inputs)) {
			t.Fatalf("%s: Count() = %d, want %d", strategy, tree.Count(), len(inputs))
		}
		if ok, errs := tree.Validate(); !ok {
			t.Fatalf("%s: Validate() failed: %v", strategy, errs)
		}
	}
}

func TestBuildAssignsDistinctMonotonicIDs(t *testing.T) {
	_, ids := Build(gridInputs(5), BuildSAH)
	seen := make(map[int64]bool)
	for i, id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = true
		if i > 0 && id <= ids[i-1] {
			t.Fatalf("ids not monotonic: ids[%d]=%d <= ids[%d]=%d", i, id, i-1, ids[i-1])
		}
	}
}

func TestRebuildPreservesObjectsAndQueryResults(t *testing.T) {
	tree, ids := Build(gridInputs(6), BuildObjectMedian)

	before := tree.QueryRange(cube(3, 3, 0, 10))
	tree.Rebuild(BuildSAH)
	after := tree.QueryRange(cube(3, 3, 0, 10))

	if len(before) != len(after) {
		t.Fatalf("QueryRange before Rebuild = %d results, after = %d", len(before), len(after))
	}
	if tree.Count() != uint32(len(ids)) {
		t.Fatalf("Count() after Rebuild = %d, want %d", tree.Count(), len(ids))
	}
	if ok, errs := tree.Validate(); !ok {
		t.Fatalf("Validate() failed after Rebuild: %v", errs)
	}
}

func TestBuildDegenerateCoincidentBoundsTerminates(t *testing.T) {
	// Every item has the identical bounds and centroid: object-median
	// sorting is a no-op and spatial-median would see zero extent, so
	// this exercises the fallback chain down to object-median (which
	// always succeeds regardless of coordinate values).
	var inputs []BuildInput
	for i := 0; i < 20; i++ {
		inputs = append(inputs, BuildInput{Bounds: cube(0, 0, 0, 1), Payload: i})
	}
	tree, ids := Build(inputs, BuildSAH)
	if tree.Count() != uint32(len(inputs)) {
		t.Fatalf("Count() = %d, want %d", tree.Count(), len(inputs))
	}
	if ok, errs := tree.Validate(); !ok {
		t.Fatalf("Validate() failed: %v", errs)
	}
	if len(ids) != len(inputs) {
		t.Fatalf("got %d ids, want %d", len(ids), len(inputs))
	}
}

func TestBuildEmptyInput(t *testing.T) {
	tree, ids := Build(nil, BuildSAH)
	if !tree.IsEmpty() || len(ids) != 0 {
		t.Fatal("Build(nil) should produce an empty tree and no ids")
	}
}

func TestObjectMedianSplitAlwaysSeparatesTwoOrMore(t *testing.T) {
	items := []buildItem{
		{centroid: vecmath.Vec3{X: 1}},
		{centroid: vecmath.Vec3{X: 1}},
		{centroid: vecmath.Vec3{X: 1}},
	}
	mid := objectMedianSplit(items)
	if mid <= 0 || mid >= len(items) {
		t.Fatalf("objectMedianSplit() = %d, want a value strictly between 0 and %d", mid, len(items))
	}
}
