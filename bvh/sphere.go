package bvh

import "github.com/mirstar13/spatialbvh/vecmath"

// BoundingSphere is a utility bounding volume. It is not a hierarchy node
// type (spec.md's Non-goals: no beyond-AABB bounding volumes in the query
// tree) but is exposed for callers that want a cheaper overlap test than
// an AABB affords.
type BoundingSphere struct {
	Center vecmath.Vec3
	Radius float64
}

// NewBoundingSphere constructs a sphere; a negative radius is clamped to
// zero.
func NewBoundingSphere(center vecmath.Vec3, radius float64) BoundingSphere {
	if radius < 0 {
		radius = 0
	}
	return BoundingSphere{Center: center, Radius: radius}
}

// IntersectsAABB tests sphere-box overlap via the closest-point-on-box
// distance.
func (s BoundingSphere) IntersectsAABB(box AABB) bool {
	return box.ClosestPointDistanceSq(s.Center) <= s.Radius*s.Radius
}

// IntersectsSphere tests sphere-sphere overlap.
func (s BoundingSphere) IntersectsSphere(o BoundingSphere) bool {
	distSq := s.Center.Sub(o.Center).LengthSq()
	radiusSum := s.Radius + o.Radius
	return distSq <= radiusSum*radiusSum
}
