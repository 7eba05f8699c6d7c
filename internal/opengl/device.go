package opengl

import (
	"fmt"
	"strings"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"stilllife/core"
	"stilllife/renderer"
	"stilllife/scene"
)

// Device is the OpenGL implementation of renderer.Device. It owns the
// shader programs and every buffer and texture it uploads. All methods
// must run on the thread that owns the GL context.
type Device struct {
	programs map[scene.ShaderID]renderer.Program
	meshes   []renderer.Geometry
	textures []renderer.Texture
}

// NewDevice loads the GL function pointers, compiles both programs and
// enables depth testing. A context must be current.
func NewDevice() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	core.Logger().Info("OpenGL initialized",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))

	lit, err := newProgram(litVertSrc, litFragSrc)
	if err != nil {
		return nil, fmt.Errorf("lit shader: %w", err)
	}
	marker, err := newProgram(markerVertSrc, markerFragSrc)
	if err != nil {
		gl.DeleteProgram(lit)
		return nil, fmt.Errorf("marker shader: %w", err)
	}

	return &Device{
		programs: map[scene.ShaderID]renderer.Program{
			scene.ShaderLit:    renderer.Program(lit),
			scene.ShaderMarker: renderer.Program(marker),
		},
	}, nil
}

// Programs returns the compiled programs keyed by shader.
func (d *Device) Programs() map[scene.ShaderID]renderer.Program {
	out := make(map[scene.ShaderID]renderer.Program, len(d.programs))
	for id, p := range d.programs {
		out[id] = p
	}
	return out
}

func (d *Device) SetViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// ── Upload ────────────────────────────────────────────────────────────────────

// UploadMesh copies mesh into a new VAO with position, normal and UV at
// attribute locations 0, 1 and 2.
func (d *Device) UploadMesh(mesh *scene.Mesh) (renderer.Geometry, error) {
	if mesh == nil || len(mesh.Vertices) == 0 {
		return renderer.Geometry{}, fmt.Errorf("mesh has no vertices")
	}

	stride := int32(unsafe.Sizeof(core.Vertex{}))
	g := renderer.Geometry{
		Count:   int32(mesh.DrawCount()),
		Indexed: mesh.Indexed(),
	}

	gl.GenVertexArrays(1, &g.VAO)
	gl.GenBuffers(1, &g.VBO)
	gl.BindVertexArray(g.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, g.VBO)
	gl.BufferData(gl.ARRAY_BUFFER,
		len(mesh.Vertices)*int(stride),
		gl.Ptr(mesh.Vertices),
		gl.STATIC_DRAW)

	var v core.Vertex
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(int(unsafe.Offsetof(v.Position))))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(int(unsafe.Offsetof(v.Normal))))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(int(unsafe.Offsetof(v.UV))))

	if g.Indexed {
		gl.GenBuffers(1, &g.EBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.EBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER,
			len(mesh.Indices)*4,
			gl.Ptr(mesh.Indices),
			gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)

	d.meshes = append(d.meshes, g)
	core.Logger().Debug("mesh uploaded", "mesh", mesh.Name,
		"vertices", len(mesh.Vertices), "indices", len(mesh.Indices))
	return g, nil
}

// UploadTexture uploads RGBA8 pixels with repeat wrapping and trilinear
// filtering.
func (d *Device) UploadTexture(tex *scene.Texture) (renderer.Texture, error) {
	if tex == nil {
		return renderer.Texture{}, fmt.Errorf("nil texture")
	}
	if len(tex.Pixels) == 0 || len(tex.Pixels) != tex.Width*tex.Height*4 {
		return renderer.Texture{}, fmt.Errorf("texture %q has %d bytes for %dx%d RGBA",
			tex.Name, len(tex.Pixels), tex.Width, tex.Height)
	}

	t := renderer.Texture{Width: tex.Width, Height: tex.Height}
	gl.GenTextures(1, &t.ID)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	// Rows are tightly packed regardless of width.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA,
		int32(tex.Width),
		int32(tex.Height),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		unsafe.Pointer(&tex.Pixels[0]),
	)
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	d.textures = append(d.textures, t)
	core.Logger().Debug("texture uploaded", "texture", tex.Name,
		"width", tex.Width, "height", tex.Height)
	return t, nil
}

// ── renderer.Device ───────────────────────────────────────────────────────────

// BeginFrame enables depth testing and clears color and depth.
func (d *Device) BeginFrame(bg core.Color) {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(bg.R, bg.G, bg.B, bg.A)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *Device) UseProgram(p renderer.Program) {
	gl.UseProgram(uint32(p))
}

func (d *Device) UniformLocation(p renderer.Program, name string) int32 {
	return gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00"))
}

func (d *Device) UniformMat4(loc int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

func (d *Device) Uniform3f(loc int32, v mgl32.Vec3) { gl.Uniform3f(loc, v[0], v[1], v[2]) }
func (d *Device) Uniform2f(loc int32, v mgl32.Vec2) { gl.Uniform2f(loc, v[0], v[1]) }
func (d *Device) Uniform1f(loc int32, v float32)    { gl.Uniform1f(loc, v) }
func (d *Device) Uniform1i(loc int32, v int32)      { gl.Uniform1i(loc, v) }

func (d *Device) BindTexture(unit uint32, t renderer.Texture) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
}

func (d *Device) BindGeometry(g renderer.Geometry) {
	gl.BindVertexArray(g.VAO)
}

func (d *Device) DrawGeometry(g renderer.Geometry) {
	if g.Indexed {
		gl.DrawElements(gl.TRIANGLES, g.Count, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, g.Count)
	}
}

func (d *Device) UnbindGeometry() {
	gl.BindVertexArray(0)
}

// Destroy releases every program, buffer and texture the device created.
func (d *Device) Destroy() {
	for _, g := range d.meshes {
		gl.DeleteVertexArrays(1, &g.VAO)
		gl.DeleteBuffers(1, &g.VBO)
		if g.Indexed {
			gl.DeleteBuffers(1, &g.EBO)
		}
	}
	d.meshes = nil
	for _, t := range d.textures {
		gl.DeleteTextures(1, &t.ID)
	}
	d.textures = nil
	for id, p := range d.programs {
		gl.DeleteProgram(uint32(p))
		delete(d.programs, id)
	}
}

// ── Shader helpers ────────────────────────────────────────────────────────────

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vert)
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)
	gl.DeleteShader(vert)
	gl.DeleteShader(frag)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("link failed: %v", strings.TrimRight(log, "\x00"))
	}
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile failed: %v", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}
