package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

type ProjectionMode int

const (
	Perspective ProjectionMode = iota
	Orthographic
)

func (m ProjectionMode) String() string {
	switch m {
	case Perspective:
		return "perspective"
	case Orthographic:
		return "orthographic"
	default:
		return fmt.Sprintf("ProjectionMode(%d)", int(m))
	}
}

// ParseProjectionMode accepts the names String returns.
func ParseProjectionMode(name string) (ProjectionMode, error) {
	switch name {
	case "perspective":
		return Perspective, nil
	case "orthographic":
		return Orthographic, nil
	}
	return 0, fmt.Errorf("unknown projection mode %q", name)
}

// OrthoBounds are the literal clip volume of the orthographic mode.
type OrthoBounds struct {
	Left, Right, Bottom, Top, Near, Far float32
}

type ProjectionConfig struct {
	Near, Far float32
	Ortho     OrthoBounds
}

// DefaultProjectionConfig keeps the orthographic volume of the authored
// scene. Left is greater than right, which mirrors the image horizontally.
func DefaultProjectionConfig() ProjectionConfig {
	return ProjectionConfig{
		Near: 0.1,
		Far:  100,
		Ortho: OrthoBounds{
			Left:   800.0 / 120.0,
			Right:  -800.0 / 120.0,
			Bottom: -600.0 / 120.0,
			Top:    600.0 / 120.0,
			Near:   -2.5,
			Far:    6.5,
		},
	}
}

// ProjectionSelector owns the active projection mode.
type ProjectionSelector struct {
	mode ProjectionMode
	cfg  ProjectionConfig
}

// NewProjectionSelector starts in the initial mode.
func NewProjectionSelector(cfg ProjectionConfig, initial ProjectionMode) *ProjectionSelector {
	return &ProjectionSelector{mode: initial, cfg: cfg}
}

// Mode reports the active projection.
func (p *ProjectionSelector) Mode() ProjectionMode { return p.mode }

// Set selects mode directly.
func (p *ProjectionSelector) Set(mode ProjectionMode) { p.mode = mode }

// Toggle flips between perspective and orthographic.
func (p *ProjectionSelector) Toggle() {
	if p.mode == Perspective {
		p.mode = Orthographic
	} else {
		p.mode = Perspective
	}
}

// Matrix returns the projection for the active mode. Perspective takes its
// field of view from the camera's zoom.
func (p *ProjectionSelector) Matrix(cam *Camera, width, height int) mgl32.Mat4 {
	if p.mode == Orthographic {
		o := p.cfg.Ortho
		return mgl32.Ortho(o.Left, o.Right, o.Bottom, o.Top, o.Near, o.Far)
	}
	if height <= 0 {
		height = 1
	}
	aspect := float32(width) / float32(height)
	if aspect <= 0 {
		// Minimized windows report a 0x0 framebuffer.
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(cam.Zoom()), aspect, p.cfg.Near, p.cfg.Far)
}
