package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"stilllife/core"
	"stilllife/scene"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestDefaultMatchesScene(t *testing.T) {
	cfg := Default()
	if cfg.CameraConfig() != scene.DefaultCameraConfig() {
		t.Errorf("camera config %+v differs from scene default", cfg.CameraConfig())
	}
	if cfg.ProjectionConfig() != scene.DefaultProjectionConfig() {
		t.Errorf("projection config %+v differs from scene default", cfg.ProjectionConfig())
	}
	if cfg.LightingParams() != scene.DefaultLighting() {
		t.Errorf("lighting %+v differs from scene default", cfg.LightingParams())
	}
	a, b := cfg.PresetPair()
	wantA, wantB := scene.DefaultPresets()
	if a != wantA || b != wantB {
		t.Errorf("presets %+v %+v differ from scene defaults", a, b)
	}
	if cfg.InitialProjection() != scene.Perspective {
		t.Errorf("expected perspective start, got %v", cfg.InitialProjection())
	}
}

func TestSaveLoadKeepsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := Default()
	cfg.Camera.Speed = 5
	cfg.Window.Title = "Table"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Camera.Speed != 5 || got.Window.Title != "Table" {
		t.Errorf("values lost: speed %v title %q", got.Camera.Speed, got.Window.Title)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"window": {"width": 800, "height": 600},
		"bindings": {"exit": "q"}
	}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Window.Width != 800 || cfg.Window.Height != 600 {
		t.Errorf("window size not applied: %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	// Unspecified fields keep their defaults.
	if cfg.Camera.Zoom != 45 {
		t.Errorf("expected default zoom 45, got %v", cfg.Camera.Zoom)
	}

	b, err := cfg.InputBindings()
	if err != nil {
		t.Fatalf("InputBindings: %v", err)
	}
	if b.Exit != core.KeyQ {
		t.Errorf("exit bound to %d, expected Q", b.Exit)
	}
	if b.Forward != core.KeyW || b.ToggleProjection != core.KeyTab {
		t.Errorf("unspecified bindings lost their defaults: %+v", b)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := Load(writeConfig(t, `{"window": `)); err == nil {
		t.Error("expected error for malformed JSON")
	}
	_, err := Load(writeConfig(t, `{"window": {"width": 0}}`))
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for zero width, got %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(c *Config){
		"zoom range":      func(c *Config) { c.Camera.MinZoom, c.Camera.MaxZoom = 50, 10 },
		"near far":        func(c *Config) { c.Projection.Near = 200 },
		"initial mode":    func(c *Config) { c.Projection.Initial = "fisheye" },
		"preset pitch":    func(c *Config) { c.Presets.A.Pitch = -100 },
		"preset mode":     func(c *Config) { c.Presets.B.Projection = "" },
		"unknown action":  func(c *Config) { c.Bindings["jump"] = "space" },
		"unknown key":     func(c *Config) { c.Bindings[ActionExit] = "hyper" },
		"unknown texture": func(c *Config) { c.Textures.Files["marble"] = "marble.jpg" },
		"missing texture": func(c *Config) { delete(c.Textures.Files, "cork") },
		"geometry name":   func(c *Config) { c.Geometry = map[string]string{"teapot": "teapot.glb"} },
		"max size":        func(c *Config) { c.Textures.MaxSize = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestTextureFilesResolveNames(t *testing.T) {
	files, err := Default().TextureFiles()
	if err != nil {
		t.Fatalf("TextureFiles: %v", err)
	}
	if files[scene.TextureCork] != "cork.jpg" {
		t.Errorf("cork file %q", files[scene.TextureCork])
	}
}

func TestGeometryOverrides(t *testing.T) {
	cfg := Default()
	cfg.Geometry = map[string]string{"cube": "box.glb"}
	got, err := cfg.GeometryOverrides()
	if err != nil {
		t.Fatalf("GeometryOverrides: %v", err)
	}
	if len(got) != 1 || got[scene.GeometryCube] != "box.glb" {
		t.Errorf("unexpected overrides %v", got)
	}
}

func TestDescriptorUsesConfig(t *testing.T) {
	cfg := Default()
	cfg.Background = [4]float32{0, 0, 0, 1}
	cfg.UVScale = [2]float32{2, 3}
	cfg.Lighting.Key.Position = [3]float32{4, 5, 6}

	d := cfg.Descriptor()
	if d.Background != (core.Color{R: 0, G: 0, B: 0, A: 1}) {
		t.Errorf("background %v", d.Background)
	}
	if d.UVScale[0] != 2 || d.UVScale[1] != 3 {
		t.Errorf("uv scale %v", d.UVScale)
	}
	marker := d.Filter(scene.ShaderMarker)[0]
	if marker.Transform.Position[0] != 4 || marker.Transform.Position[2] != 6 {
		t.Errorf("marker not at configured key light: %v", marker.Transform.Position)
	}
}
