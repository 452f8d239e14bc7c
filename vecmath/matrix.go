package vecmath

import "math"

// Matrix4x4 is a row-major 4x4 transform matrix.
type Matrix4x4 struct {
	M [16]float64
}

// Identity returns the identity matrix.
func Identity() Matrix4x4 {
	return Matrix4x4{M: [16]float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}}
}

// Multiply returns m * other.
func (m Matrix4x4) Multiply(other Matrix4x4) Matrix4x4 {
	var result Matrix4x4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += m.M[i*4+k] * other.M[k*4+j]
			}
			if math.Abs(sum) < 1e-10 {
				sum = 0
			}
			result.M[i*4+j] = sum
		}
	}
	return result
}

// TransformPoint applies the full 4x4 transform, including perspective
// divide when the bottom row is not (0,0,0,1).
func (m Matrix4x4) TransformPoint(p Vec3) Vec3 {
	x := m.M[0]*p.X + m.M[1]*p.Y + m.M[2]*p.Z + m.M[3]
	y := m.M[4]*p.X + m.M[5]*p.Y + m.M[6]*p.Z + m.M[7]
	z := m.M[8]*p.X + m.M[9]*p.Y + m.M[10]*p.Z + m.M[11]
	w := m.M[12]*p.X + m.M[13]*p.Y + m.M[14]*p.Z + m.M[15]

	if math.Abs(w) > 1e-10 {
		return Vec3{x / w, y / w, z / w}
	}
	return Vec3{x, y, z}
}

// TransformPointAffine skips the perspective divide; valid whenever the
// matrix's bottom row is (0,0,0,1), which holds for every matrix this
// package constructs (Compose, Invert).
func (m Matrix4x4) TransformPointAffine(p Vec3) Vec3 {
	return Vec3{
		X: m.M[0]*p.X + m.M[1]*p.Y + m.M[2]*p.Z + m.M[3],
		Y: m.M[4]*p.X + m.M[5]*p.Y + m.M[6]*p.Z + m.M[7],
		Z: m.M[8]*p.X + m.M[9]*p.Y + m.M[10]*p.Z + m.M[11],
	}
}

// TransformDirection applies only the rotation/scale block, ignoring
// translation. Used for ray directions and normals.
func (m Matrix4x4) TransformDirection(d Vec3) Vec3 {
	return Vec3{
		X: m.M[0]*d.X + m.M[1]*d.Y + m.M[2]*d.Z,
		Y: m.M[4]*d.X + m.M[5]*d.Y + m.M[6]*d.Z,
		Z: m.M[8]*d.X + m.M[9]*d.Y + m.M[10]*d.Z,
	}
}

// Compose builds a transform matrix from translation, rotation and scale.
func Compose(pos Vec3, rot Quaternion, scale Vec3) Matrix4x4 {
	rotMatrix := rot.ToMatrix()

	var result Matrix4x4
	result.M[0] = rotMatrix.M[0] * scale.X
	result.M[1] = rotMatrix.M[1] * scale.X
	result.M[2] = rotMatrix.M[2] * scale.X
	result.M[3] = pos.X

	result.M[4] = rotMatrix.M[4] * scale.Y
	result.M[5] = rotMatrix.M[5] * scale.Y
	result.M[6] = rotMatrix.M[6] * scale.Y
	result.M[7] = pos.Y

	result.M[8] = rotMatrix.M[8] * scale.Z
	result.M[9] = rotMatrix.M[9] * scale.Z
	result.M[10] = rotMatrix.M[10] * scale.Z
	result.M[11] = pos.Z

	result.M[15] = 1
	return result
}

// Invert returns the inverse of m via the adjugate method, or the identity
// matrix if m is singular (|det| < 1e-10).
func (m Matrix4x4) Invert() Matrix4x4 {
	var inv Matrix4x4
	inv.M[0] = m.M[5]*m.M[10]*m.M[15] - m.M[5]*m.M[11]*m.M[14] - m.M[9]*m.M[6]*m.M[15] +
		m.M[9]*m.M[7]*m.M[14] + m.M[13]*m.M[6]*m.M[11] - m.M[13]*m.M[7]*m.M[10]

	inv.M[4] = -m.M[4]*m.M[10]*m.M[15] + m.M[4]*m.M[11]*m.M[14] + m.M[8]*m.M[6]*m.M[15] -
		m.M[8]*m.M[7]*m.M[14] - m.M[12]*m.M[6]*m.M[11] + m.M[12]*m.M[7]*m.M[10]

	inv.M[8] = m.M[4]*m.M[9]*m.M[15] - m.M[4]*m.M[11]*m.M[13] - m.M[8]*m.M[5]*m.M[15] +
		m.M[8]*m.M[7]*m.M[13] + m.M[12]*m.M[5]*m.M[11] - m.M[12]*m.M[7]*m.M[9]

	inv.M[12] = -m.M[4]*m.M[9]*m.M[14] + m.M[4]*m.M[10]*m.M[13] + m.M[8]*m.M[5]*m.M[14] -
		m.M[8]*m.M[6]*m.M[13] - m.M[12]*m.M[5]*m.M[10] + m.M[12]*m.M[6]*m.M[9]

	inv.M[1] = -m.M[1]*m.M[10]*m.M[15] + m.M[1]*m.M[11]*m.M[14] + m.M[9]*m.M[2]*m.M[15] -
		m.M[9]*m.M[3]*m.M[14] - m.M[13]*m.M[2]*m.M[11] + m.M[13]*m.M[3]*m.M[10]

	inv.M[5] = m.M[0]*m.M[10]*m.M[15] - m.M[0]*m.M[11]*m.M[14] - m.M[8]*m.M[2]*m.M[15] +
		m.M[8]*m.M[3]*m.M[14] + m.M[12]*m.M[2]*m.M[11] - m.M[12]*m.M[3]*m.M[10]

	inv.M[9] = -m.M[0]*m.M[9]*m.M[15] + m.M[0]*m.M[11]*m.M[13] + m.M[8]*m.M[1]*m.M[15] -
		m.M[8]*m.M[3]*m.M[13] - m.M[12]*m.M[1]*m.M[11] + m.M[12]*m.M[3]*m.M[9]

	inv.M[13] = m.M[0]*m.M[9]*m.M[14] - m.M[0]*m.M[10]*m.M[13] - m.M[8]*m.M[1]*m.M[14] +
		m.M[8]*m.M[2]*m.M[13] + m.M[12]*m.M[1]*m.M[10] - m.M[12]*m.M[2]*m.M[9]

	inv.M[2] = m.M[1]*m.M[6]*m.M[15] - m.M[1]*m.M[7]*m.M[14] - m.M[5]*m.M[2]*m.M[15] +
		m.M[5]*m.M[3]*m.M[14] + m.M[13]*m.M[2]*m.M[7] - m.M[13]*m.M[3]*m.M[6]

	inv.M[6] = -m.M[0]*m.M[6]*m.M[15] + m.M[0]*m.M[7]*m.M[14] + m.M[4]*m.M[2]*m.M[15] -
		m.M[4]*m.M[3]*m.M[14] - m.M[12]*m.M[2]*m.M[7] + m.M[12]*m.M[3]*m.M[6]

	inv.M[10] = m.M[0]*m.M[5]*m.M[15] - m.M[0]*m.M[7]*m.M[13] - m.M[4]*m.M[1]*m.M[15] +
		m.M[4]*m.M[3]*m.M[13] + m.M[12]*m.M[1]*m.M[7] - m.M[12]*m.M[3]*m.M[5]

	inv.M[14] = -m.M[0]*m.M[5]*m.M[14] + m.M[0]*m.M[6]*m.M[13] + m.M[4]*m.M[1]*m.M[14] -
		m.M[4]*m.M[2]*m.M[13] - m.M[12]*m.M[1]*m.M[6] + m.M[12]*m.M[2]*m.M[5]

	inv.M[3] = -m.M[1]*m.M[6]*m.M[11] + m.M[1]*m.M[7]*m.M[10] + m.M[5]*m.M[2]*m.M[11] -
		m.M[5]*m.M[3]*m.M[10] - m.M[9]*m.M[2]*m.M[7] + m.M[9]*m.M[3]*m.M[6]

	inv.M[7] = m.M[0]*m.M[6]*m.M[11] - m.M[0]*m.M[7]*m.M[10] - m.M[4]*m.M[2]*m.M[11] +
		m.M[4]*m.M[3]*m.M[10] + m.M[8]*m.M[2]*m.M[7] - m.M[8]*m.M[3]*m.M[6]

	inv.M[11] = -m.M[0]*m.M[5]*m.M[11] + m.M[0]*m.M[7]*m.M[9] + m.M[4]*m.M[1]*m.M[11] -
		m.M[4]*m.M[3]*m.M[9] - m.M[8]*m.M[1]*m.M[7] + m.M[8]*m.M[3]*m.M[5]

	inv.M[15] = m.M[0]*m.M[5]*m.M[10] - m.M[0]*m.M[6]*m.M[9] - m.M[4]*m.M[1]*m.M[10] +
		m.M[4]*m.M[2]*m.M[9] + m.M[8]*m.M[1]*m.M[6] - m.M[8]*m.M[2]*m.M[5]

	det := m.M[0]*inv.M[0] + m.M[1]*inv.M[4] + m.M[2]*inv.M[8] + m.M[3]*inv.M[12]
	if math.Abs(det) < 1e-10 {
		return Identity()
	}

	invDet := 1.0 / det
	for i := range inv.M {
		inv.M[i] *= invDet
	}
	return inv
}
