package bvh

import (
	"math"

	"github.com/mirstar13/spatialbvh/vecmath"
)

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max vecmath.Vec3
}

// EmptyAABB returns the canonical empty box: min = +Inf, max = -Inf on
// every axis. Unioning anything with it yields that thing unchanged.
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: vecmath.Vec3{X: inf, Y: inf, Z: inf},
		Max: vecmath.Vec3{X: -inf, Y: -inf, Z: -inf},
	}
}

// NewAABB builds a box from explicit min/max corners. Callers needing the
// min/max of a point set should go through NewAABBFromPoints instead.
func NewAABB(min, max vecmath.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints returns the smallest AABB containing every point, or
// the empty AABB if points is empty.
func NewAABBFromPoints(points []vecmath.Vec3) AABB {
	box := EmptyAABB()
	for _, p := range points {
		box.Min = vecmath.Min(box.Min, p)
		box.Max = vecmath.Max(box.Max, p)
	}
	return box
}

// IsEmpty reports whether the box violates min<=max on any axis — the
// representation spec.md uses for "no volume here".
func (a AABB) IsEmpty() bool {
	return a.Min.X > a.Max.X || a.Min.Y > a.Max.Y || a.Min.Z > a.Max.Z
}

// Union returns the smallest box containing both a and b.
func (a AABB) Union(b AABB) AABB {
	return AABB{Min: vecmath.Min(a.Min, b.Min), Max: vecmath.Max(a.Max, b.Max)}
}

// Center returns the box's geometric center.
func (a AABB) Center() vecmath.Vec3 {
	return a.Min.Add(a.Max).Scale(0.5)
}

// Size returns the per-axis extent (max-min); negative on an empty box.
func (a AABB) Size() vecmath.Vec3 {
	return a.Max.Sub(a.Min)
}

// Volume returns the box's volume, clamping each axis extent to
// non-negative first so an empty box yields zero rather than a spurious
// negative product.
func (a AABB) Volume() float64 {
	size := a.Size()
	dx := math.Max(0, size.X)
	dy := math.Max(0, size.Y)
	dz := math.Max(0, size.Z)
	return dx * dy * dz
}

// SurfaceArea returns the box's total surface area, with the same
// negative-extent clamp as Volume.
func (a AABB) SurfaceArea() float64 {
	size := a.Size()
	dx := math.Max(0, size.X)
	dy := math.Max(0, size.Y)
	dz := math.Max(0, size.Z)
	return 2.0 * (dx*dy + dy*dz + dz*dx)
}

// LongestAxis returns the index (0=X, 1=Y, 2=Z) of the box's largest
// extent.
func (a AABB) LongestAxis() int {
	size := a.Size()
	axis := 0
	longest := size.X
	if size.Y > longest {
		axis = 1
		longest = size.Y
	}
	if size.Z > longest {
		axis = 2
	}
	return axis
}

// Expand grows the box by amount on every face.
func (a AABB) Expand(amount float64) AABB {
	d := vecmath.Vec3{X: amount, Y: amount, Z: amount}
	return AABB{Min: a.Min.Sub(d), Max: a.Max.Add(d)}
}

// ContainsPoint reports whether p lies within the closed box.
func (a AABB) ContainsPoint(p vecmath.Vec3) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X &&
		p.Y >= a.Min.Y && p.Y <= a.Max.Y &&
		p.Z >= a.Min.Z && p.Z <= a.Max.Z
}

// OverlapsAABB is the separating-axis overlap test: overlap holds iff,
// for every axis, each box's min does not exceed the other's max.
func (a AABB) OverlapsAABB(b AABB) bool {
	return a.Min.X <= b.Max.X && b.Min.X <= a.Max.X &&
		a.Min.Y <= b.Max.Y && b.Min.Y <= a.Max.Y &&
		a.Min.Z <= b.Max.Z && b.Min.Z <= a.Max.Z
}

// ClosestPoint returns the point on (or in) the box nearest to p.
func (a AABB) ClosestPoint(p vecmath.Vec3) vecmath.Vec3 {
	return p.Clamp(a.Min, a.Max)
}

// ClosestPointDistance returns the Euclidean distance from p to the
// nearest point on the box (zero if p is inside). Used by nearest-neighbor
// queries as the proxy for a payload's distance.
func (a AABB) ClosestPointDistance(p vecmath.Vec3) float64 {
	return math.Sqrt(a.ClosestPointDistanceSq(p))
}

// ClosestPointDistanceSq is the squared form of ClosestPointDistance,
// avoiding a sqrt in the hot comparison path of FindNearest.
func (a AABB) ClosestPointDistanceSq(p vecmath.Vec3) float64 {
	closest := a.ClosestPoint(p)
	return closest.Sub(p).LengthSq()
}

// growthVolume computes, in direct scalar arithmetic with no temporary
// AABB allocation, the volume of the union of a and b. Used by insertion's
// bounds-growth heuristic (SPEC_FULL.md §4.3): growth = growthVolume(child,
// newBounds) - child.Volume().
func growthVolume(a, b AABB) float64 {
	dx := math.Max(0, math.Max(a.Max.X, b.Max.X)-math.Min(a.Min.X, b.Min.X))
	dy := math.Max(0, math.Max(a.Max.Y, b.Max.Y)-math.Min(a.Min.Y, b.Min.Y))
	dz := math.Max(0, math.Max(a.Max.Z, b.Max.Z)-math.Min(a.Min.Z, b.Min.Z))
	return dx * dy * dz
}
