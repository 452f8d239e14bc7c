package main

import (
	"math"

	"github.com/mirstar13/spatialbvh/vecmath"
)

// flyCamera is a minimal WASD/look fly camera, grounded on the teacher's
// Camera/Transform pair (camera.go, vecmath/transform.go) but collapsed
// into plain fields since the viewer has no scene graph to hang a
// Transform off of.
type flyCamera struct {
	position   vecmath.Vec3
	yaw, pitch float64
	moveSpeed  float64
	lookSpeed  float64
}

func newFlyCamera() *flyCamera {
	return &flyCamera{
		position:  vecmath.Vec3{X: 0, Y: 15, Z: -90},
		yaw:       0,
		pitch:     0,
		moveSpeed: 30,
		lookSpeed: 1.6,
	}
}

// rotation returns the camera's orientation as a rotation matrix; forward
// is -Z and up is +Y, the OpenGL convention the teacher's renderer uses.
func (c *flyCamera) rotation() vecmath.Matrix4x4 {
	return vecmath.QuaternionFromEuler(c.pitch, c.yaw, 0).ToMatrix()
}

func (c *flyCamera) forward() vecmath.Vec3 {
	return c.rotation().TransformDirection(vecmath.Vec3{X: 0, Y: 0, Z: -1})
}

func (c *flyCamera) right() vecmath.Vec3 {
	return c.rotation().TransformDirection(vecmath.Vec3{X: 1, Y: 0, Z: 0})
}

func (c *flyCamera) up() vecmath.Vec3 {
	return c.rotation().TransformDirection(vecmath.Vec3{X: 0, Y: 1, Z: 0})
}

// viewMatrix is the inverse of the camera's world transform, matching
// OpenGLRenderer.updateMatrices's Camera.Transform.GetInverseMatrix().
func (c *flyCamera) viewMatrix() vecmath.Matrix4x4 {
	world := vecmath.Compose(c.position, vecmath.QuaternionFromEuler(c.pitch, c.yaw, 0), vecmath.Vec3{X: 1, Y: 1, Z: 1})
	return world.Invert()
}

// perspective builds a row-major OpenGL clip-space projection matrix, the
// same formula as OpenGLRenderer.buildProjectionMatrix.
func perspective(fovYRadians, aspect, near, far float64) vecmath.Matrix4x4 {
	f := 1.0 / math.Tan(fovYRadians/2.0)
	return vecmath.Matrix4x4{M: [16]float64{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) / (near - far), (2 * far * near) / (near - far),
		0, 0, -1, 0,
	}}
}
