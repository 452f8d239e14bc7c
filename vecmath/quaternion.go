package vecmath

import "math"

// Quaternion represents a rotation, avoiding gimbal lock.
type Quaternion struct {
	W, X, Y, Z float64
}

// IdentityQuaternion is the no-rotation quaternion.
func IdentityQuaternion() Quaternion {
	return Quaternion{W: 1}
}

// QuaternionFromEuler builds a quaternion from pitch/yaw/roll radians.
func QuaternionFromEuler(pitch, yaw, roll float64) Quaternion {
	cy := math.Cos(yaw * 0.5)
	sy := math.Sin(yaw * 0.5)
	cp := math.Cos(pitch * 0.5)
	sp := math.Sin(pitch * 0.5)
	cr := math.Cos(roll * 0.5)
	sr := math.Sin(roll * 0.5)

	return Quaternion{
		W: cr*cp*cy + sr*sp*sy,
		X: sr*cp*cy - cr*sp*sy,
		Y: cr*sp*cy + sr*cp*sy,
		Z: cr*cp*sy - sr*sp*cy,
	}
}

// Normalize returns a unit quaternion, or identity if q is near-zero.
func (q Quaternion) Normalize() Quaternion {
	length := math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
	if length < 1e-10 {
		return IdentityQuaternion()
	}
	return Quaternion{q.W / length, q.X / length, q.Y / length, q.Z / length}
}

// ToMatrix converts q to a pure-rotation 4x4 matrix.
func (q Quaternion) ToMatrix() Matrix4x4 {
	xx := q.X * q.X
	yy := q.Y * q.Y
	zz := q.Z * q.Z
	xy := q.X * q.Y
	xz := q.X * q.Z
	yz := q.Y * q.Z
	wx := q.W * q.X
	wy := q.W * q.Y
	wz := q.W * q.Z

	return Matrix4x4{M: [16]float64{
		1 - 2*(yy+zz), 2 * (xy - wz), 2 * (xz + wy), 0,
		2 * (xy + wz), 1 - 2*(xx+zz), 2 * (yz - wx), 0,
		2 * (xz - wy), 2 * (yz + wx), 1 - 2*(xx+yy), 0,
		0, 0, 0, 1,
	}}
}
