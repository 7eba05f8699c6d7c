package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"stilllife/core"
	"stilllife/scene"
)

// Program is a linked shader program handle.
type Program uint32

// Texture is an uploaded 2D texture.
type Texture struct {
	ID            uint32
	Width, Height int
}

// Geometry is the GPU record of one mesh: vertex array, buffers and the
// element or vertex count to draw.
type Geometry struct {
	VAO, VBO, EBO uint32
	Count         int32
	Indexed       bool
}

// Resources holds every GPU record the pipeline may bind, keyed by the
// scene identifiers.
type Resources struct {
	Programs map[scene.ShaderID]Program
	Geometry map[scene.GeometryID]Geometry
	Textures map[scene.TextureID]Texture
}

func NewResources() Resources {
	return Resources{
		Programs: make(map[scene.ShaderID]Program),
		Geometry: make(map[scene.GeometryID]Geometry),
		Textures: make(map[scene.TextureID]Texture),
	}
}

// Device is the GPU state the pipeline drives. The OpenGL implementation
// lives in internal/opengl.
//
// BeginFrame enables depth testing and clears color and depth to
// background. UniformLocation returns -1 when the program has no active
// uniform of that name.
type Device interface {
	BeginFrame(background core.Color)
	UseProgram(p Program)
	UniformLocation(p Program, name string) int32

	UniformMat4(loc int32, m mgl32.Mat4)
	Uniform3f(loc int32, v mgl32.Vec3)
	Uniform2f(loc int32, v mgl32.Vec2)
	Uniform1f(loc int32, v float32)
	Uniform1i(loc int32, v int32)

	BindTexture(unit uint32, t Texture)
	BindGeometry(g Geometry)
	DrawGeometry(g Geometry)
	UnbindGeometry()
}

// Presenter shows the finished frame.
type Presenter interface {
	SwapBuffers()
}
