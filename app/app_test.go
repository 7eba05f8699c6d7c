package app

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"stilllife/config"
	"stilllife/core"
	"stilllife/renderer"
	"stilllife/scene"
)

// ── Fakes ─────────────────────────────────────────────────────────────────────

type fakePlatform struct {
	keys    map[int]bool
	x, y    float64
	now     float64
	closed  bool
	title   string
	swaps   int
	polls   int
	width   int
	height  int
	scroll  func(xoff, yoff float64)
	resized func(width, height int)
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{keys: make(map[int]bool), width: 1400, height: 1000}
}

func (f *fakePlatform) IsKeyPressed(key int) bool                   { return f.keys[key] }
func (f *fakePlatform) GetCursorPos() (float64, float64)            { return f.x, f.y }
func (f *fakePlatform) SetScrollCallback(cb func(float64, float64)) { f.scroll = cb }
func (f *fakePlatform) SwapBuffers()                                { f.swaps++ }
func (f *fakePlatform) ShouldClose() bool                           { return f.closed }
func (f *fakePlatform) SetShouldClose(value bool)                   { f.closed = value }
func (f *fakePlatform) PollEvents()                                 { f.polls++ }
func (f *fakePlatform) Time() float64                               { return f.now }
func (f *fakePlatform) GetFramebufferSize() (int, int)              { return f.width, f.height }
func (f *fakePlatform) SetTitle(title string)                       { f.title = title }

func (f *fakePlatform) SetFramebufferSizeCallback(cb func(width, height int)) { f.resized = cb }

// fakeGPU hands out sequential ids and counts draws.
type fakeGPU struct {
	nextID    uint32
	meshes    []string
	textures  []string
	draws     int
	viewports [][2]int
	failMesh  bool
}

func (g *fakeGPU) id() uint32 { g.nextID++; return g.nextID }

func (g *fakeGPU) UploadMesh(m *scene.Mesh) (renderer.Geometry, error) {
	if g.failMesh {
		return renderer.Geometry{}, errors.New("out of memory")
	}
	g.meshes = append(g.meshes, m.Name)
	return renderer.Geometry{VAO: g.id(), Count: int32(m.DrawCount()), Indexed: m.Indexed()}, nil
}

func (g *fakeGPU) UploadTexture(t *scene.Texture) (renderer.Texture, error) {
	g.textures = append(g.textures, t.Name)
	return renderer.Texture{ID: g.id(), Width: t.Width, Height: t.Height}, nil
}

func (g *fakeGPU) Programs() map[scene.ShaderID]renderer.Program {
	return map[scene.ShaderID]renderer.Program{scene.ShaderLit: 1, scene.ShaderMarker: 2}
}

func (g *fakeGPU) SetViewport(width, height int) {
	g.viewports = append(g.viewports, [2]int{width, height})
}

func (g *fakeGPU) BeginFrame(core.Color)                          {}
func (g *fakeGPU) UseProgram(renderer.Program)                    {}
func (g *fakeGPU) UniformLocation(renderer.Program, string) int32 { return 0 }
func (g *fakeGPU) UniformMat4(int32, mgl32.Mat4)                  {}
func (g *fakeGPU) Uniform3f(int32, mgl32.Vec3)                    {}
func (g *fakeGPU) Uniform2f(int32, mgl32.Vec2)                    {}
func (g *fakeGPU) Uniform1f(int32, float32)                       {}
func (g *fakeGPU) Uniform1i(int32, int32)                         {}
func (g *fakeGPU) BindTexture(uint32, renderer.Texture)           {}
func (g *fakeGPU) BindGeometry(renderer.Geometry)                 {}
func (g *fakeGPU) DrawGeometry(renderer.Geometry)                 { g.draws++ }
func (g *fakeGPU) UnbindGeometry()                                {}

// writeTextures puts a 2x2 PNG under every default texture file name.
// Decoding sniffs the format, so the .jpg names are fine.
func writeTextures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{200, 100, 50, 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	for _, file := range scene.DefaultTextureFiles() {
		if err := os.WriteFile(filepath.Join(dir, file), buf.Bytes(), 0644); err != nil {
			t.Fatalf("write texture: %v", err)
		}
	}
	return dir
}

func testSources(t *testing.T) Sources {
	return Sources{
		TextureDir:   writeTextures(t),
		TextureFiles: scene.DefaultTextureFiles(),
	}
}

func newTestApp(t *testing.T) (*App, *fakePlatform, *fakeGPU) {
	t.Helper()
	p := newFakePlatform()
	gpu := &fakeGPU{}
	a, err := New(p, gpu, config.Default(), testSources(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a, p, gpu
}

// ── Clock ─────────────────────────────────────────────────────────────────────

func TestClockFirstTickIsZero(t *testing.T) {
	var c Clock
	if dt := c.Tick(12.5); dt != 0 {
		t.Errorf("first tick = %v, expected 0", dt)
	}
	if dt := c.Tick(13); dt != 0.5 {
		t.Errorf("second tick = %v, expected 0.5", dt)
	}
}

func TestClockBackwardsIsZero(t *testing.T) {
	var c Clock
	c.Tick(10)
	if dt := c.Tick(9); dt != 0 {
		t.Errorf("backwards tick = %v, expected 0", dt)
	}
	if dt := c.Tick(9.25); dt != 0.25 {
		t.Errorf("tick after backwards step = %v, expected 0.25", dt)
	}
}

func TestClockMaxStep(t *testing.T) {
	c := Clock{MaxStep: 0.1}
	c.Tick(0)
	if dt := c.Tick(5); dt != 0.1 {
		t.Errorf("capped tick = %v, expected 0.1", dt)
	}
}

// ── Resources ─────────────────────────────────────────────────────────────────

func TestLoadResourcesCoversDescriptor(t *testing.T) {
	gpu := &fakeGPU{}
	d := scene.StillLife(scene.DefaultLighting())

	res, err := LoadResources(gpu, d, testSources(t))
	if err != nil {
		t.Fatalf("LoadResources: %v", err)
	}
	for _, id := range d.Geometries() {
		if _, ok := res.Geometry[id]; !ok {
			t.Errorf("geometry %s not uploaded", id)
		}
	}
	for _, id := range d.Textures() {
		if _, ok := res.Textures[id]; !ok {
			t.Errorf("texture %s not uploaded", id)
		}
	}
	if len(gpu.meshes) != len(d.Geometries()) {
		t.Errorf("uploaded %d meshes for %d geometries", len(gpu.meshes), len(d.Geometries()))
	}
	if len(res.Programs) != 2 {
		t.Errorf("expected 2 programs, got %d", len(res.Programs))
	}
}

func TestLoadResourcesMissingTexture(t *testing.T) {
	src := testSources(t)
	if err := os.Remove(filepath.Join(src.TextureDir, "cork.jpg")); err != nil {
		t.Fatal(err)
	}

	_, err := LoadResources(&fakeGPU{}, scene.StillLife(scene.DefaultLighting()), src)
	if err == nil {
		t.Fatal("expected error for missing texture file")
	}
	if !errors.Is(err, os.ErrNotExist) || !strings.Contains(err.Error(), "cork.jpg") {
		t.Errorf("error should name the missing file: %v", err)
	}
}

func TestLoadResourcesUnconfiguredTexture(t *testing.T) {
	src := testSources(t)
	src.TextureFiles = map[scene.TextureID]string{}

	if _, err := LoadResources(&fakeGPU{}, scene.StillLife(scene.DefaultLighting()), src); err == nil {
		t.Fatal("expected error when no file is configured")
	}
}

func TestLoadResourcesGeometryOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.glb")
	d := scene.StillLife(scene.DefaultLighting())
	if err := scene.ExportGLTF(path, d, nil, nil); err != nil {
		t.Fatalf("ExportGLTF: %v", err)
	}

	src := testSources(t)
	src.GeometryFiles = map[scene.GeometryID]string{scene.GeometryCube: path}
	gpu := &fakeGPU{}
	if _, err := LoadResources(gpu, d, src); err != nil {
		t.Fatalf("LoadResources: %v", err)
	}

	found := false
	for _, name := range gpu.meshes {
		if name == scene.GeometryCube.String() {
			found = true
		}
	}
	if !found {
		t.Errorf("override mesh not uploaded under the cube name: %v", gpu.meshes)
	}
}

func TestLoadResourcesUploadFailure(t *testing.T) {
	_, err := LoadResources(&fakeGPU{failMesh: true}, scene.StillLife(scene.DefaultLighting()), testSources(t))
	if err == nil || !strings.Contains(err.Error(), "out of memory") {
		t.Errorf("expected wrapped upload error, got %v", err)
	}
}

// ── Loop ──────────────────────────────────────────────────────────────────────

func TestNewSetsViewport(t *testing.T) {
	_, p, gpu := newTestApp(t)
	if len(gpu.viewports) != 1 || gpu.viewports[0] != [2]int{1400, 1000} {
		t.Fatalf("expected initial viewport 1400x1000, got %v", gpu.viewports)
	}
	p.resized(800, 600)
	if gpu.viewports[1] != [2]int{800, 600} {
		t.Errorf("resize not forwarded: %v", gpu.viewports)
	}
}

func TestFrameDrawsAndPresents(t *testing.T) {
	a, p, gpu := newTestApp(t)

	if !a.Frame() {
		t.Fatal("frame reported close on a fresh window")
	}
	if p.swaps != 1 || p.polls != 1 {
		t.Errorf("expected one poll and one swap, got %d and %d", p.polls, p.swaps)
	}
	if gpu.draws != 18 || a.Stats().DrawCalls != 18 {
		t.Errorf("expected 18 draws, got %d (stats %d)", gpu.draws, a.Stats().DrawCalls)
	}
}

func TestFrameMovesCameraWithDelta(t *testing.T) {
	a, p, _ := newTestApp(t)
	start := a.Camera.Position

	p.keys[core.KeyW] = true
	p.now = 1
	a.Frame() // first tick, no movement
	if a.Camera.Position != start {
		t.Fatalf("camera moved on the first frame: %v", a.Camera.Position)
	}
	p.now = 1.1
	a.Frame()
	if a.Camera.Position.Z() >= start.Z() {
		t.Errorf("expected forward motion toward -Z, got %v", a.Camera.Position)
	}
}

func TestExitKeyStopsLoop(t *testing.T) {
	a, p, _ := newTestApp(t)
	p.keys[core.KeyEscape] = true

	a.Run()
	if !p.closed {
		t.Error("exit key did not set the close flag")
	}
	if p.swaps != 0 {
		t.Errorf("expected no frame presented after exit, got %d", p.swaps)
	}
}

func TestRunStopsOnClosedWindow(t *testing.T) {
	a, p, _ := newTestApp(t)
	p.closed = true
	a.Run()
	if p.swaps != 0 {
		t.Errorf("closed window still presented %d frames", p.swaps)
	}
}

func TestTitleReportsFPS(t *testing.T) {
	a, p, _ := newTestApp(t)
	for i := 0; i < 4; i++ {
		p.now = float64(i) * 0.5
		a.Frame()
	}
	if !strings.Contains(p.title, "FPS") || !strings.Contains(p.title, "perspective") {
		t.Errorf("unexpected title %q", p.title)
	}
}

func TestPresetKeySwitchesProjection(t *testing.T) {
	a, p, _ := newTestApp(t)
	p.keys[core.KeyP] = true
	a.Frame()
	if a.Projection.Mode() != scene.Orthographic {
		t.Errorf("preset A should select orthographic, got %v", a.Projection.Mode())
	}
}
