package app

import (
	"fmt"
	"path/filepath"

	"stilllife/core"
	"stilllife/renderer"
	"stilllife/scene"
)

// Uploader moves CPU meshes and textures onto the GPU and hands out the
// compiled programs. internal/opengl.Device implements it.
type Uploader interface {
	UploadMesh(mesh *scene.Mesh) (renderer.Geometry, error)
	UploadTexture(tex *scene.Texture) (renderer.Texture, error)
	Programs() map[scene.ShaderID]renderer.Program
}

// Sources says where textures and geometry overrides live on disk.
type Sources struct {
	TextureDir    string
	TextureFiles  map[scene.TextureID]string
	GeometryFiles map[scene.GeometryID]string // .obj, .gltf or .glb overrides
	Texture       scene.TextureOptions
}

// LoadResources builds or imports every geometry the descriptor draws,
// decodes every texture its lit entries sample and uploads both. A missing
// or undecodable file is an error naming it.
func LoadResources(up Uploader, d *scene.Descriptor, src Sources) (renderer.Resources, error) {
	res := renderer.NewResources()
	for id, p := range up.Programs() {
		res.Programs[id] = p
	}

	for _, id := range d.Geometries() {
		mesh, err := scene.ResolveGeometry(id, src.GeometryFiles[id])
		if err != nil {
			return res, err
		}
		g, err := up.UploadMesh(mesh)
		if err != nil {
			return res, fmt.Errorf("failed to upload geometry %q: %w", id, err)
		}
		res.Geometry[id] = g
	}

	for _, id := range d.Textures() {
		file, ok := src.TextureFiles[id]
		if !ok || file == "" {
			return res, fmt.Errorf("no file configured for texture %q", id)
		}
		path := filepath.Join(src.TextureDir, file)
		tex, err := scene.LoadTexture(path, src.Texture)
		if err != nil {
			return res, fmt.Errorf("texture %q: %w", id, err)
		}
		t, err := up.UploadTexture(tex)
		if err != nil {
			return res, fmt.Errorf("failed to upload texture %q: %w", id, err)
		}
		res.Textures[id] = t
	}

	core.Logger().Info("resources loaded",
		"geometry", len(res.Geometry), "textures", len(res.Textures), "programs", len(res.Programs))
	return res, nil
}
