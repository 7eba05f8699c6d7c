package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Direction is a camera-relative movement intent.
type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
	Up
	Down
)

// PitchLimit bounds the pitch in degrees. Reaching ±90 would flip the up
// vector.
const PitchLimit = 89.0

var worldUp = mgl32.Vec3{0, 1, 0}

// CameraConfig holds the initial state and tuning of a Camera.
type CameraConfig struct {
	Position    mgl32.Vec3
	Yaw         float32 // degrees
	Pitch       float32 // degrees
	Speed       float32 // units per second
	Sensitivity float32 // degrees per pixel
	Zoom        float32 // vertical field of view in degrees
	MinZoom     float32
	MaxZoom     float32
}

// DefaultCameraConfig places the camera at (0, 0, 8) looking down -Z.
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Position:    mgl32.Vec3{0, 0, 8},
		Yaw:         -90,
		Pitch:       0,
		Speed:       2.5,
		Sensitivity: 0.1,
		Zoom:        45,
		MinZoom:     1,
		MaxZoom:     45,
	}
}

// Basis is the camera's orthonormal frame.
type Basis struct {
	Forward mgl32.Vec3
	Right   mgl32.Vec3
	Up      mgl32.Vec3
}

// Preset is a named vantage point. Applying it overwrites position and
// pitch and leaves yaw alone. Projection is the mode the input layer
// selects alongside it.
type Preset struct {
	Name       string
	Position   mgl32.Vec3
	Pitch      float32
	Projection ProjectionMode
}

// DefaultPresets returns the overhead view (A) and the front view (B).
// The overhead pitch is authored at the pitch limit.
func DefaultPresets() (a, b Preset) {
	a = Preset{Name: "overhead", Position: mgl32.Vec3{-3, 5, -2}, Pitch: -PitchLimit, Projection: Orthographic}
	b = Preset{Name: "front", Position: mgl32.Vec3{0, 0, 10}, Pitch: 0, Projection: Perspective}
	return a, b
}

// Camera is a free-flying yaw/pitch camera.
type Camera struct {
	Position mgl32.Vec3

	yaw, pitch  float32
	zoom        float32
	minZoom     float32
	maxZoom     float32
	speed       float32
	sensitivity float32

	basis Basis
}

// NewCamera builds a camera from cfg, clamping pitch and zoom.
func NewCamera(cfg CameraConfig) *Camera {
	c := &Camera{
		Position:    cfg.Position,
		yaw:         cfg.Yaw,
		pitch:       clampPitch(cfg.Pitch),
		minZoom:     cfg.MinZoom,
		maxZoom:     cfg.MaxZoom,
		speed:       cfg.Speed,
		sensitivity: cfg.Sensitivity,
	}
	c.zoom = mgl32.Clamp(cfg.Zoom, cfg.MinZoom, cfg.MaxZoom)
	c.updateBasis()
	return c
}

// Yaw and Pitch are in degrees; Zoom is the vertical field of view.
func (c *Camera) Yaw() float32   { return c.yaw }
func (c *Camera) Pitch() float32 { return c.pitch }
func (c *Camera) Zoom() float32  { return c.zoom }
func (c *Camera) Basis() Basis   { return c.basis }

// ProcessMovement moves the camera along its own basis. Negative deltaTime
// is treated as zero.
func (c *Camera) ProcessMovement(dir Direction, deltaTime float32) {
	if deltaTime <= 0 {
		return
	}
	velocity := c.speed * deltaTime
	switch dir {
	case Forward:
		c.Position = c.Position.Add(c.basis.Forward.Mul(velocity))
	case Backward:
		c.Position = c.Position.Sub(c.basis.Forward.Mul(velocity))
	case Left:
		c.Position = c.Position.Sub(c.basis.Right.Mul(velocity))
	case Right:
		c.Position = c.Position.Add(c.basis.Right.Mul(velocity))
	case Up:
		c.Position = c.Position.Add(c.basis.Up.Mul(velocity))
	case Down:
		c.Position = c.Position.Sub(c.basis.Up.Mul(velocity))
	}
}

// ProcessLook applies a cursor offset in pixels. A positive yOffset looks
// up. Yaw is unbounded; pitch clamps at PitchLimit.
func (c *Camera) ProcessLook(xOffset, yOffset float32) {
	c.yaw += xOffset * c.sensitivity
	c.pitch = clampPitch(c.pitch + yOffset*c.sensitivity)
	c.updateBasis()
}

// ProcessZoom narrows the field of view for positive scroll deltas.
func (c *Camera) ProcessZoom(scrollDelta float32) {
	if scrollDelta == 0 {
		return
	}
	c.zoom = mgl32.Clamp(c.zoom-scrollDelta, c.minZoom, c.maxZoom)
}

// ApplyPreset snaps position and pitch to p and keeps yaw.
func (c *Camera) ApplyPreset(p Preset) {
	c.Position = p.Position
	c.pitch = clampPitch(p.Pitch)
	c.updateBasis()
}

// ViewMatrix looks from Position along the forward vector.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.basis.Forward), c.basis.Up)
}

func (c *Camera) updateBasis() {
	yaw := float64(mgl32.DegToRad(c.yaw))
	pitch := float64(mgl32.DegToRad(c.pitch))

	forward := mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}.Normalize()
	right := forward.Cross(worldUp).Normalize()

	c.basis = Basis{
		Forward: forward,
		Right:   right,
		Up:      right.Cross(forward).Normalize(),
	}
}

func clampPitch(p float32) float32 {
	return mgl32.Clamp(p, -PitchLimit, PitchLimit)
}
