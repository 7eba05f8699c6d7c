package app

import (
	"fmt"

	"stilllife/config"
	"stilllife/core"
	"stilllife/input"
	"stilllife/renderer"
	"stilllife/scene"
)

// Platform is the window and input surface the loop drives.
// platform.Window implements it.
type Platform interface {
	input.Source
	renderer.Presenter

	ShouldClose() bool
	SetShouldClose(value bool)
	PollEvents()
	Time() float64
	GetFramebufferSize() (int, int)
	SetFramebufferSizeCallback(cb func(width, height int))
	SetTitle(title string)
}

// GPU is everything the app needs from the graphics backend.
type GPU interface {
	renderer.Device
	Uploader
	SetViewport(width, height int)
}

// maxFrameStep bounds one frame's delta time in seconds.
const maxFrameStep = 0.25

// App is the explicit context of one viewer session: the camera, the
// projection, the input sampler and the pipeline all hang off it.
type App struct {
	Platform   Platform
	GPU        GPU
	Scene      *scene.Descriptor
	Camera     *scene.Camera
	Projection *scene.ProjectionSelector
	Input      *input.Sampler
	Pipeline   *renderer.Pipeline
	Clock      Clock

	title         string
	width, height int

	// fps report
	frames     int
	lastReport float64
	lastStats  renderer.FrameStats
}

// New loads resources for the configured still life and wires the
// per-frame components together.
func New(p Platform, gpu GPU, cfg *config.Config, src Sources) (*App, error) {
	bindings, err := cfg.InputBindings()
	if err != nil {
		return nil, err
	}
	d := cfg.Descriptor()

	res, err := LoadResources(gpu, d, src)
	if err != nil {
		return nil, fmt.Errorf("failed to load resources: %w", err)
	}
	pipeline, err := renderer.NewPipeline(gpu, p, res, d)
	if err != nil {
		return nil, fmt.Errorf("failed to build render pipeline: %w", err)
	}

	presetA, presetB := cfg.PresetPair()
	a := &App{
		Platform:   p,
		GPU:        gpu,
		Scene:      d,
		Camera:     scene.NewCamera(cfg.CameraConfig()),
		Projection: scene.NewProjectionSelector(cfg.ProjectionConfig(), cfg.InitialProjection()),
		Input:      input.NewSampler(p, bindings, presetA, presetB),
		Pipeline:   pipeline,
		Clock:      Clock{MaxStep: maxFrameStep},
		title:      cfg.Window.Title,
	}

	a.resize(p.GetFramebufferSize())
	p.SetFramebufferSizeCallback(a.resize)
	return a, nil
}

func (a *App) resize(width, height int) {
	a.width, a.height = width, height
	a.GPU.SetViewport(width, height)
	core.Logger().Debug("framebuffer resized", "width", width, "height", height)
}

// Frame runs one iteration: poll, sample input, update the camera and
// draw. It reports false once the window should close.
func (a *App) Frame() bool {
	a.Platform.PollEvents()
	now := a.Platform.Time()
	dt := a.Clock.Tick(now)

	if in := a.Input.Update(a.Camera, a.Projection, dt); in.Exit {
		a.Platform.SetShouldClose(true)
	}
	if a.Platform.ShouldClose() {
		return false
	}

	a.lastStats = a.Pipeline.Render(renderer.Frame{
		View:           a.Camera.ViewMatrix(),
		Projection:     a.Projection.Matrix(a.Camera, a.width, a.height),
		CameraPosition: a.Camera.Position,
	})
	a.report(now)
	return true
}

// report refreshes the window title about once a second.
func (a *App) report(now float64) {
	a.frames++
	elapsed := now - a.lastReport
	if elapsed < 1 {
		return
	}
	fps := float64(a.frames) / elapsed
	pos := a.Camera.Position
	a.Platform.SetTitle(fmt.Sprintf("%s | FPS: %.0f | %s | (%.1f, %.1f, %.1f)",
		a.title, fps, a.Projection.Mode(), pos.X(), pos.Y(), pos.Z()))
	core.Logger().Debug("frame stats", "fps", fps,
		"draws", a.lastStats.DrawCalls, "vertices", a.lastStats.Vertices,
		"skipped_uniforms", a.lastStats.SkippedUniforms, "missing_textures", a.lastStats.MissingTextures)
	a.frames = 0
	a.lastReport = now
}

// Run loops until the window is closed or the exit key is pressed.
func (a *App) Run() {
	core.Logger().Info("entering frame loop", "projection", a.Projection.Mode())
	frames := 0
	for a.Frame() {
		frames++
	}
	core.Logger().Info("frame loop finished", "frames", frames)
}

// Stats returns the counters of the most recent frame.
func (a *App) Stats() renderer.FrameStats {
	return a.lastStats
}
