package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"stilllife/core"
	"stilllife/input"
	"stilllife/scene"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the JSON configuration file. Fields missing from the file keep
// their Default values.
type Config struct {
	Version    string            `json:"version"`
	Window     WindowData        `json:"window"`
	Camera     CameraData        `json:"camera"`
	Projection ProjectionData    `json:"projection"`
	Lighting   LightingData      `json:"lighting"`
	Presets    PresetsData       `json:"presets"`
	Bindings   map[string]string `json:"bindings"` // action -> key name
	Textures   TexturesData      `json:"textures"`
	Geometry   map[string]string `json:"geometry,omitempty"` // geometry -> .obj/.gltf/.glb file
	Background [4]float32        `json:"background"`
	UVScale    [2]float32        `json:"uv_scale"`
	LogLevel   string            `json:"log_level"`
}

type WindowData struct {
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Title        string `json:"title"`
	Resizable    bool   `json:"resizable"`
	VSync        bool   `json:"vsync"`
	CaptureMouse bool   `json:"capture_mouse"`
}

// CameraData stores the initial camera state. Angles are degrees.
type CameraData struct {
	Position    [3]float32 `json:"position"`
	Yaw         float32    `json:"yaw"`
	Pitch       float32    `json:"pitch"`
	Speed       float32    `json:"speed"`
	Sensitivity float32    `json:"sensitivity"`
	Zoom        float32    `json:"zoom"`
	MinZoom     float32    `json:"min_zoom"`
	MaxZoom     float32    `json:"max_zoom"`
}

type OrthoData struct {
	Left   float32 `json:"left"`
	Right  float32 `json:"right"`
	Bottom float32 `json:"bottom"`
	Top    float32 `json:"top"`
	Near   float32 `json:"near"`
	Far    float32 `json:"far"`
}

type ProjectionData struct {
	Initial string    `json:"initial"` // "perspective" or "orthographic"
	Near    float32   `json:"near"`
	Far     float32   `json:"far"`
	Ortho   OrthoData `json:"ortho"`
}

type LightData struct {
	Color     [3]float32 `json:"color"`
	Position  [3]float32 `json:"position"`
	Ambient   float32    `json:"ambient"`
	Diffuse   float32    `json:"diffuse"`
	Specular  float32    `json:"specular"`
	Shininess float32    `json:"shininess"`
}

type LightingData struct {
	Key         LightData `json:"key"`
	Fill        LightData `json:"fill"`
	MarkerScale float32   `json:"marker_scale"`
}

type PresetData struct {
	Name       string     `json:"name"`
	Position   [3]float32 `json:"position"`
	Pitch      float32    `json:"pitch"`
	Projection string     `json:"projection"`
}

type PresetsData struct {
	A PresetData `json:"a"`
	B PresetData `json:"b"`
}

type TexturesData struct {
	Dir     string            `json:"dir"`
	Files   map[string]string `json:"files"` // texture -> file name in Dir
	MaxSize int               `json:"max_size,omitempty"`
}

// Action names accepted in the bindings map.
const (
	ActionForward          = "forward"
	ActionBackward         = "backward"
	ActionLeft             = "left"
	ActionRight            = "right"
	ActionUp               = "up"
	ActionDown             = "down"
	ActionPresetA          = "preset_a"
	ActionPresetB          = "preset_b"
	ActionToggleProjection = "toggle_projection"
	ActionExit             = "exit"
)

// Default mirrors the values the scene package ships with.
func Default() *Config {
	cam := scene.DefaultCameraConfig()
	proj := scene.DefaultProjectionConfig()
	light := scene.DefaultLighting()
	a, b := scene.DefaultPresets()

	files := make(map[string]string)
	for id, f := range scene.DefaultTextureFiles() {
		files[id.String()] = f
	}

	bg := scene.DefaultBackground
	return &Config{
		Version: "1.0",
		Window: WindowData{
			Width:        1400,
			Height:       1000,
			Title:        "Still Life",
			Resizable:    true,
			VSync:        true,
			CaptureMouse: true,
		},
		Camera: CameraData{
			Position:    cam.Position,
			Yaw:         cam.Yaw,
			Pitch:       cam.Pitch,
			Speed:       cam.Speed,
			Sensitivity: cam.Sensitivity,
			Zoom:        cam.Zoom,
			MinZoom:     cam.MinZoom,
			MaxZoom:     cam.MaxZoom,
		},
		Projection: ProjectionData{
			Initial: scene.Perspective.String(),
			Near:    proj.Near,
			Far:     proj.Far,
			Ortho:   OrthoData(proj.Ortho),
		},
		Lighting: LightingData{
			Key:         lightData(light.Key),
			Fill:        lightData(light.Fill),
			MarkerScale: light.MarkerScale,
		},
		Presets: PresetsData{A: presetData(a), B: presetData(b)},
		Bindings: map[string]string{
			ActionForward:          "W",
			ActionBackward:         "S",
			ActionLeft:             "A",
			ActionRight:            "D",
			ActionUp:               "Q",
			ActionDown:             "E",
			ActionPresetA:          "P",
			ActionPresetB:          "O",
			ActionToggleProjection: "Tab",
			ActionExit:             "Escape",
		},
		Textures: TexturesData{
			Dir:   "textures",
			Files: files,
		},
		Background: [4]float32{bg.R, bg.G, bg.B, bg.A},
		UVScale:    [2]float32{1, 1},
		LogLevel:   "info",
	}
}

func lightData(l scene.Light) LightData {
	return LightData{
		Color:     l.Color,
		Position:  l.Position,
		Ambient:   l.Ambient,
		Diffuse:   l.Diffuse,
		Specular:  l.Specular,
		Shininess: l.Shininess,
	}
}

func presetData(p scene.Preset) PresetData {
	return PresetData{
		Name:       p.Name,
		Position:   p.Position,
		Pitch:      p.Pitch,
		Projection: p.Projection.String(),
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	core.Logger().Debug("config loaded", "path", path)
	return cfg, nil
}

// Save writes the configuration as indented JSON.
func Save(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate checks ranges and resolves every name the config refers to.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return invalid("window size %dx%d", c.Window.Width, c.Window.Height)
	}
	cam := c.Camera
	if cam.MinZoom <= 0 || cam.MinZoom > cam.MaxZoom || cam.MaxZoom >= 180 {
		return invalid("zoom range [%v, %v]", cam.MinZoom, cam.MaxZoom)
	}
	if cam.Speed < 0 || cam.Sensitivity < 0 {
		return invalid("negative camera speed or sensitivity")
	}
	if c.Projection.Near <= 0 || c.Projection.Near >= c.Projection.Far {
		return invalid("perspective near %v far %v", c.Projection.Near, c.Projection.Far)
	}
	if c.Projection.Ortho.Near == c.Projection.Ortho.Far {
		return invalid("orthographic near equals far")
	}
	if _, err := scene.ParseProjectionMode(c.Projection.Initial); err != nil {
		return invalid("projection.initial: %v", err)
	}
	for _, p := range []PresetData{c.Presets.A, c.Presets.B} {
		if p.Pitch < -scene.PitchLimit || p.Pitch > scene.PitchLimit {
			return invalid("preset %q pitch %v outside ±%v", p.Name, p.Pitch, scene.PitchLimit)
		}
		if _, err := scene.ParseProjectionMode(p.Projection); err != nil {
			return invalid("preset %q: %v", p.Name, err)
		}
	}
	if _, err := c.InputBindings(); err != nil {
		return err
	}
	if _, err := c.TextureFiles(); err != nil {
		return err
	}
	if _, err := c.GeometryOverrides(); err != nil {
		return err
	}
	if c.Textures.MaxSize < 0 {
		return invalid("textures.max_size %d", c.Textures.MaxSize)
	}
	return nil
}

// ── Conversions ───────────────────────────────────────────────────────────────

func (c *Config) CameraConfig() scene.CameraConfig {
	return scene.CameraConfig{
		Position:    c.Camera.Position,
		Yaw:         c.Camera.Yaw,
		Pitch:       c.Camera.Pitch,
		Speed:       c.Camera.Speed,
		Sensitivity: c.Camera.Sensitivity,
		Zoom:        c.Camera.Zoom,
		MinZoom:     c.Camera.MinZoom,
		MaxZoom:     c.Camera.MaxZoom,
	}
}

func (c *Config) ProjectionConfig() scene.ProjectionConfig {
	return scene.ProjectionConfig{
		Near:  c.Projection.Near,
		Far:   c.Projection.Far,
		Ortho: scene.OrthoBounds(c.Projection.Ortho),
	}
}

// InitialProjection falls back to perspective for an unknown name; Validate
// reports it.
func (c *Config) InitialProjection() scene.ProjectionMode {
	mode, err := scene.ParseProjectionMode(c.Projection.Initial)
	if err != nil {
		return scene.Perspective
	}
	return mode
}

func (c *Config) LightingParams() scene.Lighting {
	return scene.Lighting{
		Key:         c.Lighting.Key.light(),
		Fill:        c.Lighting.Fill.light(),
		MarkerScale: c.Lighting.MarkerScale,
	}
}

func (l LightData) light() scene.Light {
	return scene.Light{
		Color:     l.Color,
		Position:  l.Position,
		Ambient:   l.Ambient,
		Diffuse:   l.Diffuse,
		Specular:  l.Specular,
		Shininess: l.Shininess,
	}
}

func (c *Config) PresetPair() (a, b scene.Preset) {
	return c.Presets.A.preset(), c.Presets.B.preset()
}

func (p PresetData) preset() scene.Preset {
	mode, err := scene.ParseProjectionMode(p.Projection)
	if err != nil {
		mode = scene.Perspective
	}
	return scene.Preset{
		Name:       p.Name,
		Position:   p.Position,
		Pitch:      p.Pitch,
		Projection: mode,
	}
}

func (c *Config) BackgroundColor() core.Color {
	b := c.Background
	return core.Color{R: b[0], G: b[1], B: b[2], A: b[3]}
}

// Descriptor builds the still life with this config's lighting, background
// and UV scale.
func (c *Config) Descriptor() *scene.Descriptor {
	d := scene.StillLife(c.LightingParams())
	d.Background = c.BackgroundColor()
	d.UVScale = mgl32.Vec2(c.UVScale)
	return d
}

// InputBindings resolves key names. Actions missing from the map keep
// their default key.
func (c *Config) InputBindings() (input.Bindings, error) {
	b := input.DefaultBindings()
	slots := map[string]*int{
		ActionForward:          &b.Forward,
		ActionBackward:         &b.Backward,
		ActionLeft:             &b.Left,
		ActionRight:            &b.Right,
		ActionUp:               &b.Up,
		ActionDown:             &b.Down,
		ActionPresetA:          &b.PresetA,
		ActionPresetB:          &b.PresetB,
		ActionToggleProjection: &b.ToggleProjection,
		ActionExit:             &b.Exit,
	}
	for _, action := range sortedKeys(c.Bindings) {
		slot, ok := slots[action]
		if !ok {
			return b, invalid("unknown action %q", action)
		}
		key, ok := core.KeyByName(c.Bindings[action])
		if !ok {
			return b, invalid("action %q: unknown key %q", action, c.Bindings[action])
		}
		*slot = key
	}
	return b, nil
}

// TextureFiles resolves texture names. Every texture the still life
// samples must have a file.
func (c *Config) TextureFiles() (map[scene.TextureID]string, error) {
	files := make(map[scene.TextureID]string, len(c.Textures.Files))
	for _, name := range sortedKeys(c.Textures.Files) {
		id, err := scene.ParseTextureID(name)
		if err != nil {
			return nil, invalid("textures.files: %v", err)
		}
		files[id] = c.Textures.Files[name]
	}
	for _, id := range scene.StillLife(c.LightingParams()).Textures() {
		if files[id] == "" {
			return nil, invalid("no file for texture %q", id)
		}
	}
	return files, nil
}

func (c *Config) GeometryOverrides() (map[scene.GeometryID]string, error) {
	out := make(map[scene.GeometryID]string, len(c.Geometry))
	for _, name := range sortedKeys(c.Geometry) {
		id, err := scene.ParseGeometryID(name)
		if err != nil {
			return nil, invalid("geometry: %v", err)
		}
		out[id] = c.Geometry[name]
	}
	return out, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
