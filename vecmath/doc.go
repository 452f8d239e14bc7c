// Package vecmath provides the small, fixed vector/matrix API that the
// spatial acceleration core (package bvh) and the scene-graph integration
// facade (package facade) assume is available. It is intentionally minimal:
// a 3D vector, a row-major 4x4 transform matrix, a rotation quaternion, and
// a parented Transform node, trimmed to the operations callers in this
// module actually need.
package vecmath
