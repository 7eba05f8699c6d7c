package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"stilllife/core"
)

// LoadGeometryGLTF reads the first mesh of a .glb or .gltf file. All of its
// triangle primitives are merged into one Mesh so it can stand in for a
// generated geometry.
func LoadGeometryGLTF(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open gltf %q: %w", path, err)
	}

	for _, gm := range doc.Meshes {
		if len(gm.Primitives) == 0 {
			continue
		}
		merged := &Mesh{Name: gm.Name}
		for pi, prim := range gm.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				core.Logger().Debug("gltf: skipping non-triangle primitive", "path", path, "primitive", pi)
				continue
			}
			if err := appendGLTFPrimitive(doc, prim, merged); err != nil {
				return nil, fmt.Errorf("gltf %q primitive %d: %w", path, pi, err)
			}
		}
		if len(merged.Vertices) == 0 {
			continue
		}
		return merged, nil
	}
	return nil, fmt.Errorf("gltf %q contains no triangle mesh", path)
}

// appendGLTFPrimitive converts one primitive and appends it to dst. Indices
// are rebased onto dst's existing vertices.
func appendGLTFPrimitive(doc *gltf.Document, prim *gltf.Primitive, dst *Mesh) error {
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	var uvs [][2]float32
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return fmt.Errorf("normals: %w", err)
		}
	}
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return fmt.Errorf("texcoords: %w", err)
		}
	}

	base := uint32(len(dst.Vertices))
	for i, p := range positions {
		v := core.Vertex{
			Position: mgl32.Vec3(p),
			Normal:   mgl32.Vec3{0, 1, 0},
		}
		if i < len(normals) {
			v.Normal = mgl32.Vec3(normals[i])
		}
		if i < len(uvs) {
			v.UV = mgl32.Vec2(uvs[i])
		}
		dst.Vertices = append(dst.Vertices, v)
	}

	if prim.Indices == nil {
		for i := range positions {
			dst.Indices = append(dst.Indices, base+uint32(i))
		}
		return nil
	}
	indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
	if err != nil {
		return fmt.Errorf("indices: %w", err)
	}
	for _, i := range indices {
		dst.Indices = append(dst.Indices, base+i)
	}
	return nil
}

// ExportGLTF writes the descriptor as a binary glTF: one mesh per geometry
// and texture pairing, one node per entry carrying its model matrix.
// textureURIs names the image file of each texture; textures missing from
// it are exported untextured. geometryFiles holds the same overrides the
// viewer loads, so the export matches what is drawn.
func ExportGLTF(path string, d *Descriptor, textureURIs map[TextureID]string, geometryFiles map[GeometryID]string) error {
	doc := gltf.NewDocument()

	materials := make(map[TextureID]int)
	material := func(id TextureID) *int {
		uri, ok := textureURIs[id]
		if !ok {
			return nil
		}
		if idx, ok := materials[id]; ok {
			return gltf.Index(idx)
		}
		doc.Images = append(doc.Images, &gltf.Image{Name: id.String(), URI: uri})
		doc.Textures = append(doc.Textures, &gltf.Texture{Source: gltf.Index(len(doc.Images) - 1)})
		doc.Materials = append(doc.Materials, &gltf.Material{
			Name: id.String(),
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
				BaseColorTexture: &gltf.TextureInfo{Index: len(doc.Textures) - 1},
			},
		})
		materials[id] = len(doc.Materials) - 1
		return gltf.Index(materials[id])
	}

	type meshKey struct {
		geometry GeometryID
		texture  TextureID
		lit      bool
	}
	meshes := make(map[meshKey]int)
	built := make(map[GeometryID]*Mesh)

	for _, e := range d.Entries {
		key := meshKey{geometry: e.Geometry, texture: e.Texture, lit: e.Shader == ShaderLit}
		meshIdx, ok := meshes[key]
		if !ok {
			m, ok := built[e.Geometry]
			if !ok {
				var err error
				if m, err = ResolveGeometry(e.Geometry, geometryFiles[e.Geometry]); err != nil {
					return fmt.Errorf("failed to export %s: %w", e.Name, err)
				}
				built[e.Geometry] = m
			}
			prim := writeGLTFPrimitive(doc, m)
			if key.lit {
				prim.Material = material(e.Texture)
			}
			doc.Meshes = append(doc.Meshes, &gltf.Mesh{
				Name:       m.Name,
				Primitives: []*gltf.Primitive{prim},
			})
			meshIdx = len(doc.Meshes) - 1
			meshes[key] = meshIdx
		}

		model := e.Model()
		var matrix [16]float64
		for i, v := range model {
			matrix[i] = float64(v)
		}
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name:   e.Name,
			Mesh:   gltf.Index(meshIdx),
			Matrix: matrix,
		})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	}

	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("failed to save gltf %q: %w", path, err)
	}
	core.Logger().Info("scene exported", "path", path, "nodes", len(doc.Nodes), "meshes", len(doc.Meshes))
	return nil
}

func writeGLTFPrimitive(doc *gltf.Document, m *Mesh) *gltf.Primitive {
	positions := make([][3]float32, len(m.Vertices))
	normals := make([][3]float32, len(m.Vertices))
	uvs := make([][2]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		positions[i] = v.Position
		normals[i] = v.Normal
		uvs[i] = v.UV
	}

	prim := &gltf.Primitive{
		Mode: gltf.PrimitiveTriangles,
		Attributes: map[string]int{
			"POSITION":   modeler.WritePosition(doc, positions),
			"NORMAL":     modeler.WriteNormal(doc, normals),
			"TEXCOORD_0": modeler.WriteTextureCoord(doc, uvs),
		},
	}
	if m.Indexed() {
		prim.Indices = gltf.Index(modeler.WriteIndices(doc, m.Indices))
	}
	return prim
}
