package bvh

import (
	"math"

	"github.com/mirstar13/spatialbvh/vecmath"
)

// Ray is a ray in 3D space. Direction is always unit length; a
// caller-supplied direction is normalized at construction.
type Ray struct {
	Origin    vecmath.Vec3
	Direction vecmath.Vec3
	invDir    vecmath.Vec3
}

// NewRay builds a ray, normalizing direction and precomputing guarded
// reciprocals for the slab test. A component of direction with magnitude
// below rayEpsilon reciprocates to a signed infinity rather than dividing
// by (near) zero.
func NewRay(origin, direction vecmath.Vec3) Ray {
	dir := direction.Normalize()
	return Ray{
		Origin:    origin,
		Direction: dir,
		invDir:    vecmath.Vec3{X: guardedInv(dir.X), Y: guardedInv(dir.Y), Z: guardedInv(dir.Z)},
	}
}

func guardedInv(component float64) float64 {
	if math.Abs(component) < rayEpsilon {
		return math.Copysign(math.Inf(1), component)
	}
	return 1.0 / component
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) vecmath.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// IntersectAABB implements the slab method. It returns the entry distance
// when the origin is outside the box, or the exit distance when the
// origin is inside it (SPEC_FULL.md §9 "Open questions" pins this as the
// implementation's chosen convention for an origin strictly inside the
// box). An empty box always misses.
func (r Ray) IntersectAABB(box AABB) (float64, bool) {
	if box.IsEmpty() {
		return 0, false
	}

	tMin := math.Inf(-1)
	tMax := math.Inf(1)

	for k := 0; k < 3; k++ {
		o := r.Origin.Axis(k)
		invD := r.invDir.Axis(k)
		t1 := (box.Min.Axis(k) - o) * invD
		t2 := (box.Max.Axis(k) - o) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tMin {
			tMin = t1
		}
		if t2 < tMax {
			tMax = t2
		}
	}

	if tMax < math.Max(tMin, 0) {
		return 0, false
	}
	if tMin >= 0 {
		return tMin, true
	}
	if tMax >= 0 {
		return tMax, true
	}
	return 0, false
}

// AABBFaceNormal estimates the outward face normal at a hit point on box,
// by picking the axis of largest |hit-center| component and taking that
// component's sign. SPEC_FULL.md §9 documents this as an approximation
// (incorrect on the face interior of a non-cubic box), retained from the
// donor behavior rather than the geometrically-correct nearer-face
// comparison.
func AABBFaceNormal(box AABB, hit vecmath.Vec3) vecmath.Vec3 {
	d := hit.Sub(box.Center())
	ax, ay, az := math.Abs(d.X), math.Abs(d.Y), math.Abs(d.Z)

	switch {
	case ax >= ay && ax >= az:
		return vecmath.Vec3{X: math.Copysign(1, d.X)}
	case ay >= ax && ay >= az:
		return vecmath.Vec3{Y: math.Copysign(1, d.Y)}
	default:
		return vecmath.Vec3{Z: math.Copysign(1, d.Z)}
	}
}
