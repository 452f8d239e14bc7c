package bvh

import (
	"math"

	"github.com/mirstar13/spatialbvh/vecmath"
)

// meshNode is one node of a static mesh BVH. Unlike the dynamic object
// tree's node, a leaf here spans a contiguous run of the tree's reordered
// triangle slice rather than holding exactly one payload — mesh triangles
// never move after a build, so packing several per leaf costs nothing and
// saves node-pointer chasing during raycasts (SPEC_FULL.md §4.5).
type meshNode struct {
	bounds             AABB
	depth              uint32
	left, right        int32
	triStart, triCount int32
}

// meshConfig holds MeshBVH construction options.
type meshConfig struct {
	maxLeafTriangles uint32
	maxDepth         uint32
}

func defaultMeshConfig() meshConfig {
	return meshConfig{
		maxLeafTriangles: DefaultMeshMaxLeafTriangles,
		maxDepth:         DefaultMeshMaxDepth,
	}
}

// MeshOption configures a MeshBVH at construction.
type MeshOption func(*meshConfig)

// WithMeshMaxLeafTriangles sets the maximum triangle run length a leaf may
// hold. Values below 1 are clamped to 1.
func WithMeshMaxLeafTriangles(n uint32) MeshOption {
	return func(c *meshConfig) {
		if n < 1 {
			n = 1
		}
		c.maxLeafTriangles = n
	}
}

// WithMeshMaxDepth sets the depth at which the builder stops subdividing
// and emits whatever triangles remain as a single oversized leaf. Values
// below 1 are clamped to 1.
func WithMeshMaxDepth(n uint32) MeshOption {
	return func(c *meshConfig) {
		if n < 1 {
			n = 1
		}
		c.maxDepth = n
	}
}

// MeshBVH is a static triangle-mesh bounding volume hierarchy
// (SPEC_FULL.md §4.5). It supports no mutation after construction — a
// geometry change means building a new one, per spec.md's Non-goals
// (no deformable mesh BVH updates).
type MeshBVH struct {
	triangles []Triangle
	nodes     []meshNode
	root      int32

	maxLeafTriangles uint32
	maxDepth         uint32
}

// BuildFromTriangles constructs a MeshBVH over triangles, reordering a
// copy of the slice in place as it partitions.
func BuildFromTriangles(triangles []Triangle, strategy BuildStrategy, opts ...MeshOption) *MeshBVH {
	cfg := defaultMeshConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	m := &MeshBVH{
		triangles:        append([]Triangle(nil), triangles...),
		maxLeafTriangles: cfg.maxLeafTriangles,
		maxDepth:         cfg.maxDepth,
	}
	m.build(strategy)
	return m
}

// BuildFromGeometry assembles triangles from a vertex buffer and a
// triangle-index buffer (three indices per triangle) and builds a
// MeshBVH over them. Payload is attached to every resulting Triangle
// unchanged, matching how the teacher's mesh loader stamped shared
// material data onto generated primitives.
func BuildFromGeometry(vertices []vecmath.Vec3, indices []int, payload any, strategy BuildStrategy, opts ...MeshOption) *MeshBVH {
	triCount := len(indices) / 3
	triangles := make([]Triangle, triCount)
	for i := 0; i < triCount; i++ {
		triangles[i] = Triangle{
			A:       vertices[indices[i*3]],
			B:       vertices[indices[i*3+1]],
			C:       vertices[indices[i*3+2]],
			Index:   i,
			Payload: payload,
		}
	}
	return BuildFromTriangles(triangles, strategy, opts...)
}

// Bounds returns the root node's bounds, or the empty AABB for an empty
// mesh.
func (m *MeshBVH) Bounds() AABB {
	if len(m.nodes) == 0 {
		return EmptyAABB()
	}
	return m.nodes[m.root].bounds
}

// TriangleCount returns the number of triangles in the mesh.
func (m *MeshBVH) TriangleCount() int { return len(m.triangles) }

type meshBuildFrame struct {
	lo, hi     int
	depth      uint32
	parentIdx  int32
	isLeftSide bool
}

func (m *MeshBVH) build(strategy BuildStrategy) {
	m.nodes = m.nodes[:0]
	m.root = nilIndex

	if len(m.triangles) == 0 {
		return
	}

	capSteps := len(m.triangles)*2 + buildExtraIterations
	stack := []meshBuildFrame{{0, len(m.triangles), 0, nilIndex, false}}

	for steps := 0; len(stack) > 0; steps++ {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := f.hi - f.lo

		bounds := EmptyAABB()
		for i := f.lo; i < f.hi; i++ {
			bounds = bounds.Union(m.triangles[i].Bounds())
		}

		forceLeaf := uint32(n) <= m.maxLeafTriangles || f.depth >= m.maxDepth || steps > capSteps
		if forceLeaf {
			idx := m.allocMeshNode(meshNode{
				bounds: bounds, depth: f.depth,
				left: nilIndex, right: nilIndex,
				triStart: int32(f.lo), triCount: int32(n),
			})
			m.attachMeshResult(f, idx)
			continue
		}

		mid := m.partitionTriangles(f.lo, f.hi, strategy)
		if mid <= f.lo || mid >= f.hi {
			logger().Warn("bvh: mesh build could not separate subset; forcing leaf",
				"triangles", n, "depth", f.depth)
			idx := m.allocMeshNode(meshNode{
				bounds: bounds, depth: f.depth,
				left: nilIndex, right: nilIndex,
				triStart: int32(f.lo), triCount: int32(n),
			})
			m.attachMeshResult(f, idx)
			continue
		}

		idx := m.allocMeshNode(meshNode{bounds: bounds, depth: f.depth, left: nilIndex, right: nilIndex, triStart: -1, triCount: 0})
		m.attachMeshResult(f, idx)

		stack = append(stack,
			meshBuildFrame{mid, f.hi, f.depth + 1, idx, false},
			meshBuildFrame{f.lo, mid, f.depth + 1, idx, true},
		)
	}
}

func (m *MeshBVH) allocMeshNode(n meshNode) int32 {
	m.nodes = append(m.nodes, n)
	return int32(len(m.nodes) - 1)
}

func (m *MeshBVH) attachMeshResult(f meshBuildFrame, idx int32) {
	if f.parentIdx == nilIndex {
		m.root = idx
		return
	}
	p := &m.nodes[f.parentIdx]
	if f.isLeftSide {
		p.left = idx
	} else {
		p.right = idx
	}
}

// partitionTriangles mirrors the object builder's partitionSubset over
// m.triangles[lo:hi], following the same SAH -> object-median fallback
// chain.
func (m *MeshBVH) partitionTriangles(lo, hi int, strategy BuildStrategy) int {
	sub := m.triangles[lo:hi]

	switch strategy {
	case BuildSAH:
		if uint32(len(sub)) <= sahLeafFallbackRatio*m.maxLeafTriangles {
			return lo + triangleMedianSplit(sub)
		}
		if mid, ok := triangleSAHSplit(sub); ok {
			return lo + mid
		}
		return lo + triangleMedianSplit(sub)
	case BuildSpatialMedian:
		if mid, ok := triangleSpatialMedianSplit(sub); ok {
			return lo + mid
		}
		return lo + triangleMedianSplit(sub)
	default:
		return lo + triangleMedianSplit(sub)
	}
}

func triangleCentroidBounds(sub []Triangle) AABB {
	bounds := EmptyAABB()
	for _, tri := range sub {
		c := tri.Centroid()
		bounds = bounds.Union(AABB{Min: c, Max: c})
	}
	return bounds
}

func triangleMedianSplit(sub []Triangle) int {
	axis := triangleCentroidBounds(sub).LongestAxis()
	insertionSortTrianglesByAxis(sub, axis)
	return len(sub) / 2
}

// insertionSortTrianglesByAxis avoids importing sort.Slice's interface
// overhead for the typically-small triangle runs the mesh builder splits;
// grounded on the same ordering `sort.Slice` would produce.
func insertionSortTrianglesByAxis(sub []Triangle, axis int) {
	for i := 1; i < len(sub); i++ {
		key := sub[i]
		keyVal := key.Centroid().Axis(axis)
		j := i - 1
		for j >= 0 && sub[j].Centroid().Axis(axis) > keyVal {
			sub[j+1] = sub[j]
			j--
		}
		sub[j+1] = key
	}
}

func triangleSpatialMedianSplit(sub []Triangle) (int, bool) {
	bounds := triangleCentroidBounds(sub)
	axis := bounds.LongestAxis()
	threshold := bounds.Center().Axis(axis)

	i, j := 0, len(sub)-1
	for i <= j {
		for i <= j && sub[i].Centroid().Axis(axis) < threshold {
			i++
		}
		for i <= j && sub[j].Centroid().Axis(axis) >= threshold {
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

func triangleSAHSplit(sub []Triangle) (int, bool) {
	n := len(sub)
	centroidBounds := triangleCentroidBounds(sub)
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
	for i, tri := range sub {
		frac := (tri.Centroid().Axis(axis) - axisMin) / extent
		b := int(frac * float64(sahBinCount))
		if b < 0 {
			b = 0
		}
		if b >= sahBinCount {
			b = sahBinCount - 1
		}
		binOf[i] = b
		bins[b].count++
		bins[b].bounds = bins[b].bounds.Union(tri.Bounds())
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

// MeshRaycastHit is one triangle a ray intersected, in mesh-local space.
type MeshRaycastHit struct {
	Triangle Triangle
	Hit      TriangleHit
}

// Raycast returns every triangle the ray intersects within
// [0, maxDistance] (+Inf means unlimited), in no particular order, via
// an explicit-stack traversal.
func (m *MeshBVH) Raycast(ray Ray, maxDistance float64, cullBackface bool) []MeshRaycastHit {
	var hits []MeshRaycastHit
	if len(m.nodes) == 0 {
		return hits
	}
	stack := []int32{m.root}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &m.nodes[idx]
		if dist, ok := ray.IntersectAABB(n.bounds); !ok || dist > maxDistance {
			continue
		}
		if n.left == nilIndex {
			for i := n.triStart; i < n.triStart+n.triCount; i++ {
				tri := m.triangles[i]
				if hit, ok := ray.IntersectTriangle(tri, cullBackface); ok && hit.T <= maxDistance {
					hits = append(hits, MeshRaycastHit{Triangle: tri, Hit: hit})
				}
			}
			continue
		}
		stack = append(stack, n.left, n.right)
	}
	return hits
}

// RaycastFirst returns the closest triangle the ray intersects within
// [0, maxDistance] (+Inf means unlimited). Children are pushed so the
// nearer one pops first, and any popped node whose entry distance
// already exceeds the best hit found so far (or maxDistance, absent a
// hit yet) is pruned without being examined further.
func (m *MeshBVH) RaycastFirst(ray Ray, maxDistance float64, cullBackface bool) (MeshRaycastHit, bool) {
	var best MeshRaycastHit
	haveBest := false
	if len(m.nodes) == 0 {
		return best, false
	}

	bestDist := maxDistance
	stack := []int32{m.root}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &m.nodes[idx]
		dist, ok := ray.IntersectAABB(n.bounds)
		if !ok || dist > bestDist {
			continue
		}
		if n.left == nilIndex {
			for i := n.triStart; i < n.triStart+n.triCount; i++ {
				tri := m.triangles[i]
				if hit, ok := ray.IntersectTriangle(tri, cullBackface); ok && hit.T <= bestDist {
					if !haveBest || hit.T < best.Hit.T {
						best = MeshRaycastHit{Triangle: tri, Hit: hit}
						haveBest = true
						bestDist = hit.T
					}
				}
			}
			continue
		}

		leftDist, leftOK := ray.IntersectAABB(m.nodes[n.left].bounds)
		rightDist, rightOK := ray.IntersectAABB(m.nodes[n.right].bounds)
		leftOK = leftOK && leftDist <= bestDist
		rightOK = rightOK && rightDist <= bestDist
		switch {
		case leftOK && rightOK:
			if leftDist <= rightDist {
				stack = append(stack, n.right, n.left)
			} else {
				stack = append(stack, n.left, n.right)
			}
		case leftOK:
			stack = append(stack, n.left)
		case rightOK:
			stack = append(stack, n.right)
		}
	}
	return best, haveBest
}

// RaycastBruteForce tests every triangle directly, bypassing the
// hierarchy. Exists as the reference implementation seed scenarios check
// the tree-accelerated traversal against (SPEC_FULL.md §8).
func (m *MeshBVH) RaycastBruteForce(ray Ray, maxDistance float64, cullBackface bool) (MeshRaycastHit, bool) {
	var best MeshRaycastHit
	haveBest := false
	for _, tri := range m.triangles {
		if hit, ok := ray.IntersectTriangle(tri, cullBackface); ok && hit.T <= maxDistance {
			if !haveBest || hit.T < best.Hit.T {
				best = MeshRaycastHit{Triangle: tri, Hit: hit}
				haveBest = true
			}
		}
	}
	return best, haveBest
}

// MeshStats summarizes a mesh BVH's shape.
type MeshStats struct {
	NodeCount     int
	LeafCount     int
	TriangleCount int
	MaxDepth      uint32
}

// Stats collects shape statistics via an explicit-stack traversal.
func (m *MeshBVH) Stats() MeshStats {
	if len(m.nodes) == 0 {
		return MeshStats{}
	}
	var leafCount int
	var maxDepth uint32
	stack := []int32{m.root}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &m.nodes[idx]
		if n.depth > maxDepth {
			maxDepth = n.depth
		}
		if n.left == nilIndex {
			leafCount++
			continue
		}
		stack = append(stack, n.left, n.right)
	}
	return MeshStats{
		NodeCount:     len(m.nodes),
		LeafCount:     leafCount,
		TriangleCount: len(m.triangles),
		MaxDepth:      maxDepth,
	}
}
