package bvh

import (
	"math"
	"sort"

	"github.com/mirstar13/spatialbvh/vecmath"
)

// RaycastHit is one object a ray intersected (SPEC_FULL.md §4.3). Distance
// is the ray's entry distance into the object's bounds, per the slab
// method's returned t value.
type RaycastHit struct {
	ObjectID int64
	Payload  any
	Bounds   AABB
	Distance float64
}

// QueryResult is one object returned by a range or nearest-neighbor query.
type QueryResult struct {
	ObjectID int64
	Payload  any
	Bounds   AABB
}

// Raycast returns every object whose bounds the ray intersects within
// [0, maxDistance], sorted ascending by Distance (maxDistance of +Inf
// means unlimited). Traversal is an explicit-stack depth-first walk; a
// subtree is pruned the moment its bounds miss the ray or its entry
// distance exceeds maxDistance.
func (t *Tree) Raycast(ray Ray, maxDistance float64) []RaycastHit {
	var hits []RaycastHit
	if t.IsEmpty() {
		return hits
	}
	stack := []int32{t.root}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := t.arena.get(idx)
		dist, ok := ray.IntersectAABB(n.bounds)
		if !ok || dist > maxDistance {
			continue
		}
		if n.isLeaf {
			hits = append(hits, RaycastHit{ObjectID: n.objectID, Payload: n.payload, Bounds: n.bounds, Distance: dist})
			continue
		}
		stack = append(stack, n.left, n.right)
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}

// RaycastFirst returns the closest object the ray intersects within
// [0, maxDistance] (+Inf means unlimited). Children are pushed so the
// nearer one pops first, and any popped node whose entry distance
// already exceeds the best hit found so far (or maxDistance, absent a
// hit yet) is pruned without being examined further.
func (t *Tree) RaycastFirst(ray Ray, maxDistance float64) (RaycastHit, bool) {
	var best RaycastHit
	haveBest := false
	if t.IsEmpty() {
		return best, false
	}

	bestDist := maxDistance
	stack := []int32{t.root}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := t.arena.get(idx)
		dist, ok := ray.IntersectAABB(n.bounds)
		if !ok || dist > bestDist {
			continue
		}
		if n.isLeaf {
			if !haveBest || dist < best.Distance {
				best = RaycastHit{ObjectID: n.objectID, Payload: n.payload, Bounds: n.bounds, Distance: dist}
				haveBest = true
				bestDist = dist
			}
			continue
		}

		leftDist, leftOK := ray.IntersectAABB(t.arena.get(n.left).bounds)
		rightDist, rightOK := ray.IntersectAABB(t.arena.get(n.right).bounds)
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

// QueryRange returns every object whose bounds overlap box. This is the
// tree's implementation of the intersect_bounds(box) operation — there is
// no separately named method, since the two are the same set-returning
// query.
func (t *Tree) QueryRange(box AABB) []QueryResult {
	var results []QueryResult
	if t.IsEmpty() {
		return results
	}
	stack := []int32{t.root}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := t.arena.get(idx)
		if !n.bounds.OverlapsAABB(box) {
			continue
		}
		if n.isLeaf {
			results = append(results, QueryResult{ObjectID: n.objectID, Payload: n.payload, Bounds: n.bounds})
			continue
		}
		stack = append(stack, n.left, n.right)
	}
	return results
}

// FindNearest returns the object whose bounds are closest to point, within
// maxDistance (maxDistance <= 0 means unlimited). Pruning compares each
// popped node's closest-point distance against the best found so far;
// children are pushed so the nearer one pops first.
func (t *Tree) FindNearest(point vecmath.Vec3, maxDistance float64) (QueryResult, bool) {
	var best QueryResult
	haveBest := false
	if t.IsEmpty() {
		return best, false
	}

	bestDistSq := maxDistance * maxDistance
	if maxDistance <= 0 {
		bestDistSq = math.Inf(1)
	}

	stack := []int32{t.root}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := t.arena.get(idx)
		distSq := n.bounds.ClosestPointDistanceSq(point)
		if distSq > bestDistSq {
			continue
		}
		if n.isLeaf {
			best = QueryResult{ObjectID: n.objectID, Payload: n.payload, Bounds: n.bounds}
			bestDistSq = distSq
			haveBest = true
			continue
		}

		leftDistSq := t.arena.get(n.left).bounds.ClosestPointDistanceSq(point)
		rightDistSq := t.arena.get(n.right).bounds.ClosestPointDistanceSq(point)
		if leftDistSq <= rightDistSq {
			stack = append(stack, n.right, n.left)
		} else {
			stack = append(stack, n.left, n.right)
		}
	}
	return best, haveBest
}
