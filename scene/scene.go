package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"stilllife/core"
)

// DrawEntry is one authored draw: a geometry placed by a transform,
// textured and shaded by a given program.
type DrawEntry struct {
	Name      string
	Geometry  GeometryID
	Transform core.Transform
	Texture   TextureID
	Shader    ShaderID
}

// Model returns the entry's model matrix.
func (e DrawEntry) Model() mgl32.Mat4 {
	return e.Transform.GetMatrix()
}

// Descriptor is the ordered, immutable list of draws that make up a frame.
type Descriptor struct {
	Entries    []DrawEntry
	Lighting   Lighting
	Background core.Color
	// UVScale multiplies texture coordinates of every lit draw.
	UVScale mgl32.Vec2
}

// Geometries lists referenced geometries in first-use order.
func (d *Descriptor) Geometries() []GeometryID {
	seen := make(map[GeometryID]bool)
	var ids []GeometryID
	for _, e := range d.Entries {
		if !seen[e.Geometry] {
			seen[e.Geometry] = true
			ids = append(ids, e.Geometry)
		}
	}
	return ids
}

// Textures lists textures referenced by lit entries in first-use order.
// Marker entries are unlit and sample nothing.
func (d *Descriptor) Textures() []TextureID {
	seen := make(map[TextureID]bool)
	var ids []TextureID
	for _, e := range d.Entries {
		if e.Shader != ShaderLit || seen[e.Texture] {
			continue
		}
		seen[e.Texture] = true
		ids = append(ids, e.Texture)
	}
	return ids
}

// Shaders lists the programs the descriptor draws with.
func (d *Descriptor) Shaders() []ShaderID {
	seen := make(map[ShaderID]bool)
	var ids []ShaderID
	for _, e := range d.Entries {
		if !seen[e.Shader] {
			seen[e.Shader] = true
			ids = append(ids, e.Shader)
		}
	}
	return ids
}

// Filter returns the entries drawn with shader, in authored order.
func (d *Descriptor) Filter(shader ShaderID) []DrawEntry {
	var out []DrawEntry
	for _, e := range d.Entries {
		if e.Shader == shader {
			out = append(out, e)
		}
	}
	return out
}

var DefaultBackground = core.Color{R: 0.1, G: 0.1, B: 0.1, A: 1}

func place(pos, scale mgl32.Vec3, angle float32, axis mgl32.Vec3) core.Transform {
	return core.Transform{Position: pos, Scale: scale, Angle: angle, Axis: axis}
}

func uniform(s float32) mgl32.Vec3 { return mgl32.Vec3{s, s, s} }

// StillLife builds the drink, coasters, box and limes on the table, lit by
// lighting, followed by the key light marker. Rotation angles are radians.
func StillLife(lighting Lighting) *Descriptor {
	yAxis := mgl32.Vec3{0, 1, 0}
	corkScale := mgl32.Vec3{0.26, 0.005, 0.26}
	ceramicScale := mgl32.Vec3{0.27, 0.005, 0.27}
	limeScale := mgl32.Vec3{0.22, 0.15, 0.15}
	limeAxis := mgl32.Vec3{1.5, -0.4, 0.5}
	limePos := mgl32.Vec3{0, -0.45, -0.45}

	lit := func(name string, g GeometryID, t TextureID, tr core.Transform) DrawEntry {
		return DrawEntry{Name: name, Geometry: g, Transform: tr, Texture: t, Shader: ShaderLit}
	}

	entries := []DrawEntry{
		lit("drink_base", GeometryCone, TextureDrink,
			place(mgl32.Vec3{-0.545, -0.5, 0}, mgl32.Vec3{0.25, 0.9, 0.25}, 0, mgl32.Vec3{1, 1, 1})),
		lit("drink_top", GeometryCone, TextureDrink,
			place(mgl32.Vec3{-0.545, 0.3, 0}, mgl32.Vec3{0.25, 0.6, 0.25}, 3.1415, mgl32.Vec3{1, 0, 0})),
		lit("table", GeometryPlane, TexturePlane,
			place(mgl32.Vec3{0, -0.5, 0}, mgl32.Vec3{2, 1, 1.5}, 0, yAxis)),

		lit("cork_1", GeometryCylinder, TextureCork,
			place(mgl32.Vec3{-0.76, -0.425, -0.32}, corkScale, 45, yAxis)),
		lit("cork_2", GeometryCylinder, TextureCork,
			place(mgl32.Vec3{-0.90, -0.445, -0.33}, corkScale, 45, yAxis)),
		lit("cork_3", GeometryCylinder, TextureCork,
			place(mgl32.Vec3{-0.98, -0.465, -0.26}, corkScale, 45, yAxis)),
		lit("cork_4", GeometryCoaster, TextureCork,
			place(mgl32.Vec3{-0.98, -0.485, -0.18}, corkScale, 45, yAxis)),

		lit("ceramic_1", GeometryCoaster, TextureCeramic,
			place(mgl32.Vec3{-0.76, -0.43, -0.32}, ceramicScale, 45, yAxis)),
		lit("ceramic_2", GeometryCoaster, TextureCeramic,
			place(mgl32.Vec3{-0.90, -0.45, -0.33}, ceramicScale, 45, yAxis)),
		lit("ceramic_3", GeometryCoaster, TextureCeramic,
			place(mgl32.Vec3{-0.98, -0.47, -0.26}, ceramicScale, 45, yAxis)),
		lit("ceramic_4", GeometryCoaster, TextureCeramic,
			place(mgl32.Vec3{-0.98, -0.49, -0.18}, ceramicScale, 45, yAxis)),

		lit("lime_pyramid", GeometryPyramid, TextureLime,
			place(mgl32.Vec3{-1, 1.5, -0.6}, uniform(0.5), 0, yAxis)),
		lit("box", GeometryCube, TextureBox,
			place(mgl32.Vec3{0.7, -0.3, -0.4}, mgl32.Vec3{0.5, 0.35, 0.35}, 15, mgl32.Vec3{0, 0.27, 0})),
		lit("lime_wedge", GeometryDome, TextureLime,
			place(limePos, limeScale, 90, limeAxis)),
		lit("lime_body", GeometryLimeBody, TextureSphere,
			place(limePos, limeScale, 90, limeAxis)),
		lit("orb", GeometryOrb, TextureSphere,
			place(mgl32.Vec3{-0.545, 0.38, 0}, uniform(0.35), 45, mgl32.Vec3{-0.85, -0.7, 0.1})),
		lit("lime_slice", GeometryLimeSlice, TextureRind,
			place(mgl32.Vec3{0, -0.4, -0.5}, uniform(0.45), 45, mgl32.Vec3{-1.85, -0.7, 0.1})),

		{
			Name:      "key_light",
			Geometry:  GeometryCone,
			Transform: place(lighting.Key.Position, uniform(lighting.MarkerScale), 0, yAxis),
			Shader:    ShaderMarker,
		},
	}

	return &Descriptor{
		Entries:    entries,
		Lighting:   lighting,
		Background: DefaultBackground,
		UVScale:    mgl32.Vec2{1, 1},
	}
}
