package input

import (
	"stilllife/core"
	"stilllife/scene"
)

// Source is the slice of the platform window the sampler reads.
type Source interface {
	IsKeyPressed(key int) bool
	GetCursorPos() (float64, float64)
	SetScrollCallback(cb func(xoff, yoff float64))
}

// Bindings maps each action to a key code.
type Bindings struct {
	Forward, Backward, Left, Right, Up, Down int

	PresetA          int
	PresetB          int
	ToggleProjection int
	Exit             int
}

func DefaultBindings() Bindings {
	return Bindings{
		Forward:          core.KeyW,
		Backward:         core.KeyS,
		Left:             core.KeyA,
		Right:            core.KeyD,
		Up:               core.KeyQ,
		Down:             core.KeyE,
		PresetA:          core.KeyP,
		PresetB:          core.KeyO,
		ToggleProjection: core.KeyTab,
		Exit:             core.KeyEscape,
	}
}

func (b Bindings) keys() []int {
	return []int{
		b.Forward, b.Backward, b.Left, b.Right, b.Up, b.Down,
		b.PresetA, b.PresetB, b.ToggleProjection, b.Exit,
	}
}

// Intents is one frame of input, translated from raw device state.
type Intents struct {
	// Move holds the held movement keys, indexed by scene.Direction.
	Move [scene.Down + 1]bool

	LookX, LookY float32
	Scroll       float32

	PresetA          bool
	PresetB          bool
	ToggleProjection bool
	Exit             bool
}

// Sampler polls keys and the cursor once per frame. Movement keys are
// level-triggered; preset, toggle and exit keys fire once per press.
type Sampler struct {
	src      Source
	bindings Bindings
	presetA  scene.Preset
	presetB  scene.Preset

	keys     [core.KeyLastCode + 1]bool
	keysPrev [core.KeyLastCode + 1]bool

	lastX, lastY float64
	firstSample  bool
	scroll       float64
}

func NewSampler(src Source, bindings Bindings, presetA, presetB scene.Preset) *Sampler {
	s := &Sampler{
		src:         src,
		bindings:    bindings,
		presetA:     presetA,
		presetB:     presetB,
		firstSample: true,
	}
	src.SetScrollCallback(s.OnScroll)
	return s
}

// OnScroll accumulates wheel input until the next Sample.
func (s *Sampler) OnScroll(xoff, yoff float64) {
	s.scroll += yoff
}

// Sample reads device state and returns this frame's intents. It does not
// touch the camera.
func (s *Sampler) Sample() Intents {
	copy(s.keysPrev[:], s.keys[:])
	for _, k := range s.bindings.keys() {
		if k >= 0 && k < len(s.keys) {
			s.keys[k] = s.src.IsKeyPressed(k)
		}
	}

	x, y := s.src.GetCursorPos()
	if s.firstSample {
		s.lastX, s.lastY = x, y
		s.firstSample = false
	}
	var in Intents
	in.LookX = float32(x - s.lastX)
	// Screen y grows downward; looking up is positive.
	in.LookY = float32(s.lastY - y)
	s.lastX, s.lastY = x, y

	in.Scroll = float32(s.scroll)
	s.scroll = 0

	b := s.bindings
	in.Move[scene.Forward] = s.down(b.Forward)
	in.Move[scene.Backward] = s.down(b.Backward)
	in.Move[scene.Left] = s.down(b.Left)
	in.Move[scene.Right] = s.down(b.Right)
	in.Move[scene.Up] = s.down(b.Up)
	in.Move[scene.Down] = s.down(b.Down)

	in.PresetA = s.pressed(b.PresetA)
	in.PresetB = s.pressed(b.PresetB)
	in.ToggleProjection = s.pressed(b.ToggleProjection)
	in.Exit = s.pressed(b.Exit)
	return in
}

// Update samples and applies the result to the camera and projection. The
// intents are returned so the caller can act on Exit.
func (s *Sampler) Update(cam *scene.Camera, proj *scene.ProjectionSelector, deltaTime float32) Intents {
	in := s.Sample()

	for dir, held := range in.Move {
		if held {
			cam.ProcessMovement(scene.Direction(dir), deltaTime)
		}
	}
	if in.LookX != 0 || in.LookY != 0 {
		cam.ProcessLook(in.LookX, in.LookY)
	}
	cam.ProcessZoom(in.Scroll)

	if in.PresetA {
		cam.ApplyPreset(s.presetA)
		proj.Set(s.presetA.Projection)
		core.Logger().Debug("preset applied", "preset", s.presetA.Name)
	}
	if in.PresetB {
		cam.ApplyPreset(s.presetB)
		proj.Set(s.presetB.Projection)
		core.Logger().Debug("preset applied", "preset", s.presetB.Name)
	}
	if in.ToggleProjection {
		proj.Toggle()
		core.Logger().Debug("projection toggled", "mode", proj.Mode())
	}
	return in
}

func (s *Sampler) down(key int) bool {
	if key < 0 || key >= len(s.keys) {
		return false
	}
	return s.keys[key]
}

func (s *Sampler) pressed(key int) bool {
	if key < 0 || key >= len(s.keys) {
		return false
	}
	return s.keys[key] && !s.keysPrev[key]
}
