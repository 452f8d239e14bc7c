// Command bvhviewer renders a live spatial index as a wireframe box tree,
// grounded on the teacher's OpenGLRenderer (renderer_opengl.go): same
// GLFW/gl4.1-core bootstrap, same line-shader/VAO/VBO shape, same
// Shutdown teardown order, pointed at a facade.Facade instead of a Scene.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"runtime"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/mirstar13/spatialbvh/bvh"
	"github.com/mirstar13/spatialbvh/facade"
	"github.com/mirstar13/spatialbvh/vecmath"
)

const (
	lineVertexShaderSource = `
#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aColor;

out vec3 FragColor;

uniform mat4 model;
uniform mat4 view;
uniform mat4 proj;

void main() {
    gl_Position = proj * view * model * vec4(aPos, 1.0);
    FragColor = aColor;
}
` + "\x00"

	lineFragmentShaderSource = `
#version 410 core
in vec3 FragColor;
out vec4 color;

void main() {
    color = vec4(FragColor, 1.0);
}
` + "\x00"
)

// demoCollider is a fixed-bounds collider used only to populate the
// viewer's demo scene; it never moves once registered.
type demoCollider struct {
	bounds bvh.AABB
}

func (d *demoCollider) WorldBounds() bvh.AABB { return d.bounds }
func (d *demoCollider) IsEnabled() bool       { return true }

func main() {
	objectCount := flag.Int("objects", 200, "number of demo colliders to scatter into the spatial index")
	maxDrawDepth := flag.Uint("max-depth", 64, "deepest tree level to draw (limits line count for very deep trees)")
	gpuinfo := flag.Bool("gpuinfo", false, "list Vulkan physical devices and exit, without opening a window")
	flag.Parse()

	if *gpuinfo {
		if err := runGPUInfo(); err != nil {
			log.Fatalf("gpuinfo: %v", err)
		}
		return
	}

	if err := run(*objectCount, uint32(*maxDrawDepth)); err != nil {
		log.Fatal(err)
	}
}

func run(objectCount int, maxDrawDepth uint32) error {
	f := facade.New(facade.WithBuildStrategy(bvh.BuildSAH))
	scatterDemoColliders(f, objectCount)

	v, err := newViewer(1280, 800)
	if err != nil {
		return err
	}
	defer v.shutdown()

	cam := newFlyCamera()
	lastTime := glfw.GetTime()

	for !v.window.ShouldClose() {
		now := glfw.GetTime()
		dt := now - lastTime
		lastTime = now

		glfw.PollEvents()
		v.handleInput(cam, f, dt)
		v.draw(cam, f, maxDrawDepth)
		v.window.SwapBuffers()
	}
	return nil
}

// scatterDemoColliders registers objectCount axis-aligned boxes at random
// positions and sizes within a fixed-size world cube, the viewer's stand-
// in for a real scene graph's colliders — grounded on the teacher's fixed
// procedural layouts in scene_examples.go, randomized here since the
// point is to exercise the tree's shape, not reproduce a specific scene.
func scatterDemoColliders(f *facade.Facade, objectCount int) {
	rng := rand.New(rand.NewSource(1))
	const worldHalfExtent = 60.0
	for i := 0; i < objectCount; i++ {
		center := vecmath.Vec3{
			X: (rng.Float64()*2 - 1) * worldHalfExtent,
			Y: (rng.Float64()*2 - 1) * worldHalfExtent * 0.3,
			Z: (rng.Float64()*2 - 1) * worldHalfExtent,
		}
		half := 0.5 + rng.Float64()*2.5
		bounds := bvh.NewAABB(
			vecmath.Vec3{X: center.X - half, Y: center.Y - half, Z: center.Z - half},
			vecmath.Vec3{X: center.X + half, Y: center.Y + half, Z: center.Z + half},
		)
		f.Register(&demoCollider{bounds: bounds})
	}
}

// viewer owns every OpenGL resource the wireframe draw loop touches,
// mirroring the field groupings in OpenGLRenderer (renderer_opengl.go)
// but trimmed to only the line-rendering path.
type viewer struct {
	window *glfw.Window
	width  int
	height int

	lineProgram  uint32
	lineVAO      uint32
	lineVBO      uint32
	uniformModel int32
	uniformView  int32
	uniformProj  int32

	lineVertices []float32

	lastClickState glfw.Action
}

func newViewer(width, height int) (*viewer, error) {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %v", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(width, height, "spatialbvh viewer", nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %v", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %v", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.05, 0.05, 0.08, 1.0)

	v := &viewer{window: window, width: width, height: height, lineVertices: make([]float32, 0, 60000)}
	if err := v.createLineShaderProgram(); err != nil {
		return nil, err
	}
	v.createBuffers()
	gl.Viewport(0, 0, int32(width), int32(height))
	return v, nil
}

func (v *viewer) createLineShaderProgram() error {
	vertexShader, err := compileShader(lineVertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return fmt.Errorf("line vertex shader: %v", err)
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(lineFragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return fmt.Errorf("line fragment shader: %v", err)
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		logMsg := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logMsg))
		return fmt.Errorf("failed to link line program: %v", logMsg)
	}

	v.lineProgram = program
	v.uniformModel = gl.GetUniformLocation(program, gl.Str("model\x00"))
	v.uniformView = gl.GetUniformLocation(program, gl.Str("view\x00"))
	v.uniformProj = gl.GetUniformLocation(program, gl.Str("proj\x00"))
	return nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logMsg := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logMsg))
		return 0, fmt.Errorf("failed to compile shader: %v", logMsg)
	}
	return shader, nil
}

const maxLineVertices = 200000

func (v *viewer) createBuffers() {
	gl.GenVertexArrays(1, &v.lineVAO)
	gl.BindVertexArray(v.lineVAO)

	gl.GenBuffers(1, &v.lineVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, v.lineVBO)
	gl.BufferData(gl.ARRAY_BUFFER, maxLineVertices*6*4, nil, gl.DYNAMIC_DRAW)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 6*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 6*4, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
}

// handleInput polls WASD+QE movement and arrow/IJKL look, the same key
// layout as GLFWInputManager.GetInputState in input_manager.go, and casts
// a ray along the camera's forward vector on a fresh left-click.
func (v *viewer) handleInput(cam *flyCamera, f *facade.Facade, dt float64) {
	w := v.window
	if w.GetKey(glfw.KeyEscape) == glfw.Press {
		w.SetShouldClose(true)
	}

	move := cam.moveSpeed * dt
	if w.GetKey(glfw.KeyW) == glfw.Press {
		cam.position = cam.position.Add(cam.forward().Scale(move))
	}
	if w.GetKey(glfw.KeyS) == glfw.Press {
		cam.position = cam.position.Sub(cam.forward().Scale(move))
	}
	if w.GetKey(glfw.KeyA) == glfw.Press {
		cam.position = cam.position.Sub(cam.right().Scale(move))
	}
	if w.GetKey(glfw.KeyD) == glfw.Press {
		cam.position = cam.position.Add(cam.right().Scale(move))
	}
	if w.GetKey(glfw.KeyE) == glfw.Press {
		cam.position = cam.position.Add(cam.up().Scale(move))
	}
	if w.GetKey(glfw.KeyQ) == glfw.Press {
		cam.position = cam.position.Sub(cam.up().Scale(move))
	}

	look := cam.lookSpeed * dt
	if w.GetKey(glfw.KeyLeft) == glfw.Press || w.GetKey(glfw.KeyJ) == glfw.Press {
		cam.yaw -= look
	}
	if w.GetKey(glfw.KeyRight) == glfw.Press || w.GetKey(glfw.KeyL) == glfw.Press {
		cam.yaw += look
	}
	if w.GetKey(glfw.KeyUp) == glfw.Press || w.GetKey(glfw.KeyI) == glfw.Press {
		cam.pitch -= look
	}
	if w.GetKey(glfw.KeyDown) == glfw.Press || w.GetKey(glfw.KeyK) == glfw.Press {
		cam.pitch += look
	}

	click := w.GetMouseButton(glfw.MouseButtonLeft)
	if click == glfw.Press && v.lastClickState != glfw.Press {
		ray := bvh.NewRay(cam.position, cam.forward())
		if hit, ok := f.RaycastFirst(ray, math.Inf(1)); ok {
			fmt.Printf("hit collider object id=%d at distance=%.2f bounds=%v\n", hit.ObjectID, hit.Distance, hit.Bounds)
		} else {
			fmt.Println("raycast: no hit")
		}
	}
	v.lastClickState = click
}

func (v *viewer) draw(cam *flyCamera, f *facade.Facade, maxDrawDepth uint32) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	v.lineVertices = v.lineVertices[:0]
	v.lineVertices = appendBoxLines(v.lineVertices, f.NodeBoxes(), maxDrawDepth)
	if len(v.lineVertices) > maxLineVertices*6 {
		v.lineVertices = v.lineVertices[:maxLineVertices*6]
	}

	gl.UseProgram(v.lineProgram)
	uploadMatrix(v.uniformModel, vecmath.Identity())
	uploadMatrix(v.uniformView, cam.viewMatrix())
	aspect := float64(v.width) / float64(v.height)
	uploadMatrix(v.uniformProj, perspective(60*math.Pi/180, aspect, 0.1, 2000))

	if len(v.lineVertices) > 0 {
		gl.BindVertexArray(v.lineVAO)
		gl.BindBuffer(gl.ARRAY_BUFFER, v.lineVBO)
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(v.lineVertices)*4, gl.Ptr(v.lineVertices))
		gl.DrawArrays(gl.LINES, 0, int32(len(v.lineVertices)/6))
		gl.BindVertexArray(0)
	}
}

func uploadMatrix(uniform int32, m vecmath.Matrix4x4) {
	var out [16]float32
	for i := 0; i < 16; i++ {
		out[i] = float32(m.M[i])
	}
	gl.UniformMatrix4fv(uniform, 1, true, &out[0])
}

func (v *viewer) shutdown() {
	gl.DeleteBuffers(1, &v.lineVBO)
	gl.DeleteVertexArrays(1, &v.lineVAO)
	gl.DeleteProgram(v.lineProgram)
	v.window.Destroy()
	glfw.Terminate()
}
