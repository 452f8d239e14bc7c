package bvh

import (
	"math"
	"sort"

	"github.com/mirstar13/spatialbvh/vecmath"
)

// BuildStrategy selects how a batch build (Rebuild, or the builder that
// backs it) partitions a set of objects into subtrees (SPEC_FULL.md §4.4).
type BuildStrategy int

const (
	// BuildSAH partitions using a 32-bin surface-area-heuristic cost
	// model, falling back to BuildObjectMedian for subsets too small to
	// bin usefully or for which no bin boundary separates the set.
	BuildSAH BuildStrategy = iota
	// BuildObjectMedian sorts a subset by centroid along its longest
	// axis and splits at the midpoint index. Always produces two
	// non-empty halves for any subset of two or more items.
	BuildObjectMedian
	// BuildSpatialMedian splits at the spatial midpoint of the subset's
	// centroid bounds along their longest axis, falling back to
	// BuildObjectMedian when every centroid lands on the same side.
	BuildSpatialMedian
)

func (s BuildStrategy) String() string {
	switch s {
	case BuildSAH:
		return "sah"
	case BuildObjectMedian:
		return "object-median"
	case BuildSpatialMedian:
		return "spatial-median"
	default:
		return "unknown"
	}
}

// buildItem is one object awaiting placement by the batch builder.
type buildItem struct {
	bounds   AABB
	centroid vecmath.Vec3
	objectID int64
	payload  any
}

// buildFrame is one unit of work on the builder's explicit stack: the
// subset items[lo:hi], and where its resulting subtree root attaches.
// parentIdx == nilIndex means the subtree becomes the tree's root.
type buildFrame struct {
	lo, hi     int
	depth      uint32
	parentIdx  int32
	isLeftSide bool
}

// buildFromItems replaces the tree's entire contents with a fresh
// hierarchy over items, built iteratively via an explicit work stack
// (SPEC_FULL.md §4.4 / §9: "all traversal and build loops are iterative").
// Every internal node's bounds are known directly from its subset's union
// at creation time, so the stack can be processed in any order — no
// post-order dependency on children finishing first.
//
// A subset is split via strategy, falling back to BuildObjectMedian when
// the strategy cannot separate it; object-median always separates two or
// more items, so the build terminates with every item placed regardless
// of how degenerate the input coordinates are. A safety cap on total
// steps independently switches to direct-leaf-emission (peeling one item
// off at a time) if it is ever exceeded.
func (t *Tree) buildFromItems(items []buildItem, strategy BuildStrategy) {
	t.arena.reset()
	t.objectMap = make(map[int64]int32)
	t.count = 0
	t.root = nilIndex

	if len(items) == 0 {
		return
	}

	capSteps := len(items)*2 + buildExtraIterations
	stack := []buildFrame{{0, len(items), 0, nilIndex, false}}

	for steps := 0; len(stack) > 0; steps++ {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := f.hi - f.lo

		if n == 1 {
			it := items[f.lo]
			leaf := t.arena.makeLeaf(it.bounds, it.objectID, it.payload, f.depth)
			t.objectMap[it.objectID] = leaf
			t.count++
			t.attachBuildResult(f, leaf)
			continue
		}

		bounds := EmptyAABB()
		for i := f.lo; i < f.hi; i++ {
			bounds = bounds.Union(items[i].bounds)
		}

		var mid int
		if steps > capSteps {
			logger().Warn("bvh: build exceeded safety cap; falling back to direct leaf emission",
				"remaining_items", n, "step", steps)
			mid = f.lo + 1
		} else {
			mid = t.partitionSubset(items, f.lo, f.hi, strategy)
		}

		internal := t.arena.makeInternal(bounds, nilIndex, nilIndex, f.depth)
		t.attachBuildResult(f, internal)

		stack = append(stack,
			buildFrame{mid, f.hi, f.depth + 1, internal, false},
			buildFrame{f.lo, mid, f.depth + 1, internal, true},
		)
	}
}

func (t *Tree) attachBuildResult(f buildFrame, idx int32) {
	if f.parentIdx == nilIndex {
		t.root = idx
		return
	}
	p := t.arena.get(f.parentIdx)
	if f.isLeftSide {
		p.left = idx
	} else {
		p.right = idx
	}
	t.arena.get(idx).parent = f.parentIdx
}

// partitionSubset splits items[lo:hi] in place and returns the split
// index, following the fallback chain SAH -> object-median (SAH never
// falls back past object-median because object-median cannot degenerate
// for a subset of two or more items).
func (t *Tree) partitionSubset(items []buildItem, lo, hi int, strategy BuildStrategy) int {
	sub := items[lo:hi]

	switch strategy {
	case BuildSAH:
		if uint32(len(sub)) <= sahLeafFallbackRatio*t.maxLeafSize {
			return lo + objectMedianSplit(sub)
		}
		if mid, ok := sahSplit(sub); ok {
			return lo + mid
		}
		return lo + objectMedianSplit(sub)
	case BuildSpatialMedian:
		if mid, ok := spatialMedianSplit(sub); ok {
			return lo + mid
		}
		return lo + objectMedianSplit(sub)
	default:
		return lo + objectMedianSplit(sub)
	}
}

func centroidBoundsOf(sub []buildItem) AABB {
	bounds := EmptyAABB()
	for _, it := range sub {
		bounds = bounds.Union(AABB{Min: it.centroid, Max: it.centroid})
	}
	return bounds
}

// objectMedianSplit sorts sub by centroid along its longest axis and
// splits at the count midpoint. For len(sub) >= 2 this always yields two
// non-empty halves, so it never needs a fallback of its own.
func objectMedianSplit(sub []buildItem) int {
	axis := centroidBoundsOf(sub).LongestAxis()
	sort.Slice(sub, func(i, j int) bool {
		return sub[i].centroid.Axis(axis) < sub[j].centroid.Axis(axis)
	})
	return len(sub) / 2
}

// spatialMedianSplit partitions sub in place around the spatial midpoint
// of its centroid bounds along their longest axis. Reports ok=false if
// every centroid lands on the same side (degenerate for this axis).
func spatialMedianSplit(sub []buildItem) (int, bool) {
	bounds := centroidBoundsOf(sub)
	axis := bounds.LongestAxis()
	threshold := bounds.Center().Axis(axis)

	i, j := 0, len(sub)-1
	for i <= j {
		for i <= j && sub[i].centroid.Axis(axis) < threshold {
			i++
		}
		for i <= j && sub[j].centroid.Axis(axis) >= threshold {
			j--
		}
		if i < j {
			sub[i], sub[j] = sub[j], sub[i]
			i++
			j--
		}
	}
	if i == 0 || i == len(sub) {
		return 0, false
	}
	return i, true
}

// sahSplit evaluates a 32-bin surface-area-heuristic cost model along the
// subset's centroid bounds' longest axis and partitions sub in place at
// the lowest-cost bin boundary. Reports ok=false if the centroid bounds
// are degenerate on that axis, or if no boundary separates at least one
// item to each side.
func sahSplit(sub []buildItem) (int, bool) {
	n := len(sub)
	centroidBounds := centroidBoundsOf(sub)
	axis := centroidBounds.LongestAxis()
	extent := centroidBounds.Size().Axis(axis)
	if extent <= 0 {
		return 0, false
	}
	axisMin := centroidBounds.Min.Axis(axis)

	type bin struct {
		count  int
		bounds AABB
	}
	bins := make([]bin, sahBinCount)
	for i := range bins {
		bins[i].bounds = EmptyAABB()
	}
	binOf := make([]int, n)
	for i, it := range sub {
		frac := (it.centroid.Axis(axis) - axisMin) / extent
		b := int(frac * float64(sahBinCount))
		if b < 0 {
			b = 0
		}
		if b >= sahBinCount {
			b = sahBinCount - 1
		}
		binOf[i] = b
		bins[b].count++
		bins[b].bounds = bins[b].bounds.Union(it.bounds)
	}

	prefixCount := make([]int, sahBinCount+1)
	prefixBounds := make([]AABB, sahBinCount+1)
	prefixBounds[0] = EmptyAABB()
	for i := 0; i < sahBinCount; i++ {
		prefixCount[i+1] = prefixCount[i] + bins[i].count
		prefixBounds[i+1] = prefixBounds[i].Union(bins[i].bounds)
	}
	suffixCount := make([]int, sahBinCount+1)
	suffixBounds := make([]AABB, sahBinCount+1)
	suffixBounds[sahBinCount] = EmptyAABB()
	for i := sahBinCount - 1; i >= 0; i-- {
		suffixCount[i] = suffixCount[i+1] + bins[i].count
		suffixBounds[i] = suffixBounds[i+1].Union(bins[i].bounds)
	}

	parentArea := prefixBounds[sahBinCount].SurfaceArea()
	if parentArea <= 0 {
		return 0, false
	}

	bestBoundary := -1
	bestCost := math.Inf(1)
	for boundary := 1; boundary < sahBinCount; boundary++ {
		leftCount := prefixCount[boundary]
		rightCount := suffixCount[boundary]
		if leftCount == 0 || rightCount == 0 {
			continue
		}
		leftArea := prefixBounds[boundary].SurfaceArea()
		rightArea := suffixBounds[boundary].SurfaceArea()
		cost := sahTraversalCost + sahIntersectionCost*
			(float64(leftCount)*leftArea+float64(rightCount)*rightArea)/parentArea
		if cost < bestCost {
			bestCost = cost
			bestBoundary = boundary
		}
	}
	if bestBoundary < 0 {
		return 0, false
	}

	i, j := 0, n-1
	for i <= j {
		for i <= j && binOf[i] < bestBoundary {
			i++
		}
		for i <= j && binOf[j] >= bestBoundary {
			j--
		}
		if i < j {
			sub[i], sub[j] = sub[j], sub[i]
			binOf[i], binOf[j] = binOf[j], binOf[i]
			i++
			j--
		}
	}
	if i == 0 || i == n {
		return 0, false
	}
	return i, true
}
