package renderer

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"stilllife/core"
	"stilllife/scene"
)

var (
	ErrMissingGeometry   = errors.New("missing geometry")
	ErrMissingProgram    = errors.New("missing program")
	ErrUnsupportedShader = errors.New("unsupported shader")
)

// Frame carries the per-frame camera state.
type Frame struct {
	View           mgl32.Mat4
	Projection     mgl32.Mat4
	CameraPosition mgl32.Vec3
}

// FrameStats reports what one Render call submitted.
type FrameStats struct {
	DrawCalls       int
	Vertices        int
	SkippedUniforms int
	MissingTextures int
}

// Uniform names of the lit program.
const (
	uModel         = "model"
	uView          = "view"
	uProjection    = "projection"
	uUVScale       = "uvScale"
	uTexture       = "uTexture"
	uViewPosition  = "viewPosition"
	uKeyColor      = "lightColor"
	uKeyPos        = "lightPos"
	uKeyAmbient    = "keyAmbient"
	uKeyDiffuse    = "keyDiffuse"
	uKeySpecular   = "keySpecular"
	uKeyShininess  = "keyShininess"
	uFillColor     = "fillColor"
	uFillPos       = "fillPos"
	uFillAmbient   = "fillAmbient"
	uFillDiffuse   = "fillDiffuse"
	uFillSpecular  = "fillSpecular"
	uFillShininess = "fillShininess"
)

var litUniforms = []string{
	uModel, uView, uProjection, uUVScale, uTexture, uViewPosition,
	uKeyColor, uKeyPos, uKeyAmbient, uKeyDiffuse, uKeySpecular, uKeyShininess,
	uFillColor, uFillPos, uFillAmbient, uFillDiffuse, uFillSpecular, uFillShininess,
}

var markerUniforms = []string{uModel, uView, uProjection}

// drawItem is a DrawEntry resolved against Resources.
type drawItem struct {
	name       string
	model      mgl32.Mat4
	geometry   Geometry
	texture    Texture
	hasTexture bool
}

type pass struct {
	program  Program
	uniforms map[string]int32
	items    []drawItem
}

// Pipeline draws a fixed Descriptor once per frame. Everything that does
// not change between frames (model matrices, uniform locations, resource
// lookups) is resolved in NewPipeline.
type Pipeline struct {
	device     Device
	presenter  Presenter
	descriptor *scene.Descriptor

	lit    pass
	marker pass

	reported map[string]bool
}

// NewPipeline validates that every geometry and program the descriptor
// references has a GPU record and resolves uniform locations.
func NewPipeline(device Device, presenter Presenter, res Resources, d *scene.Descriptor) (*Pipeline, error) {
	if d == nil {
		return nil, fmt.Errorf("nil scene descriptor")
	}
	p := &Pipeline{
		device:     device,
		presenter:  presenter,
		descriptor: d,
		reported:   make(map[string]bool),
	}

	for _, shader := range d.Shaders() {
		if _, ok := res.Programs[shader]; !ok {
			return nil, fmt.Errorf("shader %q: %w", shader, ErrMissingProgram)
		}
	}
	// The lit program is always used, even by an empty descriptor.
	litProg, ok := res.Programs[scene.ShaderLit]
	if !ok {
		return nil, fmt.Errorf("shader %q: %w", scene.ShaderLit, ErrMissingProgram)
	}
	p.lit = pass{program: litProg, uniforms: p.locate(litProg, litUniforms)}
	if markerProg, ok := res.Programs[scene.ShaderMarker]; ok {
		p.marker = pass{program: markerProg, uniforms: p.locate(markerProg, markerUniforms)}
	}

	for _, e := range d.Entries {
		g, ok := res.Geometry[e.Geometry]
		if !ok {
			return nil, fmt.Errorf("entry %q geometry %q: %w", e.Name, e.Geometry, ErrMissingGeometry)
		}
		item := drawItem{name: e.Name, model: e.Model(), geometry: g}
		switch e.Shader {
		case scene.ShaderLit:
			item.texture, item.hasTexture = res.Textures[e.Texture]
			if !item.hasTexture {
				core.Logger().Warn("texture not loaded, entry keeps previous binding",
					"entry", e.Name, "texture", e.Texture)
			}
			p.lit.items = append(p.lit.items, item)
		case scene.ShaderMarker:
			p.marker.items = append(p.marker.items, item)
		default:
			return nil, fmt.Errorf("entry %q shader %q: %w", e.Name, e.Shader, ErrUnsupportedShader)
		}
	}

	// Texture unit 0 never changes.
	device.UseProgram(p.lit.program)
	if loc := p.lit.uniforms[uTexture]; loc >= 0 {
		device.Uniform1i(loc, 0)
	}

	core.Logger().Info("render pipeline ready",
		"lit", len(p.lit.items), "markers", len(p.marker.items))
	return p, nil
}

func (p *Pipeline) locate(prog Program, names []string) map[string]int32 {
	locs := make(map[string]int32, len(names))
	for _, name := range names {
		locs[name] = p.device.UniformLocation(prog, name)
	}
	return locs
}

// Render draws one frame and presents it.
func (p *Pipeline) Render(f Frame) FrameStats {
	var stats FrameStats
	dev := p.device
	light := p.descriptor.Lighting

	dev.BeginFrame(p.descriptor.Background)

	dev.UseProgram(p.lit.program)
	u := uniformWriter{p: p, dev: dev, locs: p.lit.uniforms, stats: &stats}
	u.mat4(uView, f.View)
	u.mat4(uProjection, f.Projection)
	u.vec2(uUVScale, p.descriptor.UVScale)
	u.vec3(uViewPosition, f.CameraPosition)

	u.vec3(uKeyColor, light.Key.Color)
	u.vec3(uKeyPos, light.Key.Position)
	u.float(uKeyAmbient, light.Key.Ambient)
	u.float(uKeyDiffuse, light.Key.Diffuse)
	u.float(uKeySpecular, light.Key.Specular)
	u.float(uKeyShininess, light.Key.Shininess)

	u.vec3(uFillColor, light.Fill.Color)
	u.vec3(uFillPos, light.Fill.Position)
	u.float(uFillAmbient, light.Fill.Ambient)
	u.float(uFillDiffuse, light.Fill.Diffuse)
	u.float(uFillSpecular, light.Fill.Specular)
	u.float(uFillShininess, light.Fill.Shininess)

	for _, item := range p.lit.items {
		if item.hasTexture {
			dev.BindTexture(0, item.texture)
		} else {
			stats.MissingTextures++
		}
		p.draw(u, item, &stats)
	}

	if len(p.marker.items) > 0 {
		dev.UseProgram(p.marker.program)
		m := uniformWriter{p: p, dev: dev, locs: p.marker.uniforms, stats: &stats}
		m.mat4(uView, f.View)
		m.mat4(uProjection, f.Projection)
		for _, item := range p.marker.items {
			p.draw(m, item, &stats)
		}
	}

	dev.UnbindGeometry()
	p.presenter.SwapBuffers()
	return stats
}

func (p *Pipeline) draw(u uniformWriter, item drawItem, stats *FrameStats) {
	u.mat4(uModel, item.model)
	p.device.BindGeometry(item.geometry)
	p.device.DrawGeometry(item.geometry)
	stats.DrawCalls++
	stats.Vertices += int(item.geometry.Count)
}

// skipped logs an unresolved uniform the first time it is seen.
func (p *Pipeline) skipped(name string) {
	if p.reported[name] {
		return
	}
	p.reported[name] = true
	core.Logger().Debug("uniform not active, upload skipped", "uniform", name)
}

// uniformWriter uploads by name through a cached location table.
type uniformWriter struct {
	p     *Pipeline
	dev   Device
	locs  map[string]int32
	stats *FrameStats
}

func (w uniformWriter) loc(name string) (int32, bool) {
	loc, ok := w.locs[name]
	if !ok || loc < 0 {
		w.stats.SkippedUniforms++
		w.p.skipped(name)
		return -1, false
	}
	return loc, true
}

func (w uniformWriter) mat4(name string, m mgl32.Mat4) {
	if loc, ok := w.loc(name); ok {
		w.dev.UniformMat4(loc, m)
	}
}

func (w uniformWriter) vec3(name string, v mgl32.Vec3) {
	if loc, ok := w.loc(name); ok {
		w.dev.Uniform3f(loc, v)
	}
}

func (w uniformWriter) vec2(name string, v mgl32.Vec2) {
	if loc, ok := w.loc(name); ok {
		w.dev.Uniform2f(loc, v)
	}
}

func (w uniformWriter) float(name string, v float32) {
	if loc, ok := w.loc(name); ok {
		w.dev.Uniform1f(loc, v)
	}
}
