package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"stilllife/core"
)

const epsilon = 1e-4

func approx(a, b float32) bool {
	return core.NearlyEqual(a, b, epsilon)
}

func TestPitchClampsAtLimit(t *testing.T) {
	cam := NewCamera(DefaultCameraConfig())

	for i := 0; i < 100; i++ {
		cam.ProcessLook(0, 1000)
		if cam.Pitch() > PitchLimit {
			t.Fatalf("pitch exceeded limit: %v", cam.Pitch())
		}
	}
	if cam.Pitch() != PitchLimit {
		t.Errorf("expected pitch %v, got %v", PitchLimit, cam.Pitch())
	}

	for i := 0; i < 100; i++ {
		cam.ProcessLook(0, -1000)
	}
	if cam.Pitch() != -PitchLimit {
		t.Errorf("expected pitch %v, got %v", -PitchLimit, cam.Pitch())
	}

	// Clamping must not flip the up vector.
	if cam.Basis().Up.Y() <= 0 {
		t.Errorf("up vector flipped at pitch limit: %v", cam.Basis().Up)
	}
}

func TestYawIsUnbounded(t *testing.T) {
	cam := NewCamera(DefaultCameraConfig())
	cam.ProcessLook(5000, 0)
	if !approx(cam.Yaw(), -90+500) {
		t.Errorf("expected yaw 410, got %v", cam.Yaw())
	}
}

func TestZoomStaysInRange(t *testing.T) {
	cam := NewCamera(DefaultCameraConfig())

	cam.ProcessZoom(100)
	if cam.Zoom() != 1 {
		t.Errorf("expected zoom clamped to 1, got %v", cam.Zoom())
	}
	cam.ProcessZoom(-100)
	if cam.Zoom() != 45 {
		t.Errorf("expected zoom clamped to 45, got %v", cam.Zoom())
	}
}

func TestZoomIsAdditive(t *testing.T) {
	cam := NewCamera(DefaultCameraConfig())
	start := cam.Zoom()

	for _, d := range []float32{10, 3, -8, -5} {
		cam.ProcessZoom(d)
	}
	if cam.Zoom() != start {
		t.Errorf("expected zoom %v after net-zero scroll, got %v", start, cam.Zoom())
	}

	cam.ProcessZoom(0)
	if cam.Zoom() != start {
		t.Errorf("zero scroll changed zoom to %v", cam.Zoom())
	}
}

func TestViewMatrixPlacesEyeAtOrigin(t *testing.T) {
	cam := NewCamera(DefaultCameraConfig())
	cam.ProcessLook(123, -45)
	cam.ProcessMovement(Forward, 0.7)
	cam.ProcessMovement(Up, 0.3)

	eye := cam.ViewMatrix().Mul4x1(cam.Position.Vec4(1)).Vec3()
	if !core.Vec3Near(eye, mgl32.Vec3{}, epsilon) {
		t.Errorf("expected eye at origin, got %v", eye)
	}

	// A point straight ahead lies on the view axis (-Z in view space).
	ahead := cam.Position.Add(cam.Basis().Forward.Mul(2))
	got := cam.ViewMatrix().Mul4x1(ahead.Vec4(1)).Vec3()
	if !core.Vec3Near(got, mgl32.Vec3{0, 0, -2}, epsilon) {
		t.Errorf("expected (0,0,-2), got %v", got)
	}
}

func TestForwardMovementAtZeroYaw(t *testing.T) {
	cfg := DefaultCameraConfig()
	cfg.Yaw = 0
	cfg.Pitch = 0
	cam := NewCamera(cfg)
	start := cam.Position

	cam.ProcessMovement(Forward, 0.5)

	want := start.Add(mgl32.Vec3{cfg.Speed * 0.5, 0, 0})
	if !core.Vec3Near(cam.Position, want, epsilon) {
		t.Errorf("expected %v, got %v", want, cam.Position)
	}
	if cam.Position.Y() != start.Y() || cam.Position.Z() != start.Z() {
		t.Errorf("forward move changed other axes: %v -> %v", start, cam.Position)
	}
}

func TestMovementIgnoresNegativeDelta(t *testing.T) {
	cam := NewCamera(DefaultCameraConfig())
	start := cam.Position
	cam.ProcessMovement(Forward, -1)
	if cam.Position != start {
		t.Errorf("negative delta moved camera to %v", cam.Position)
	}
}

func TestVerticalMovementFollowsCameraUp(t *testing.T) {
	cam := NewCamera(DefaultCameraConfig())
	cam.ProcessLook(0, 300) // pitch up 30 degrees
	start := cam.Position
	up := cam.Basis().Up

	cam.ProcessMovement(Up, 1)
	moved := cam.Position.Sub(start)
	if !core.Vec3Near(moved, up.Mul(2.5), epsilon) {
		t.Errorf("expected move along %v, got %v", up, moved)
	}
}

func TestPresetOverwritesState(t *testing.T) {
	preset := Preset{Name: "overhead", Position: mgl32.Vec3{-3, 5, -2}, Pitch: -89}
	cam := NewCamera(DefaultCameraConfig())

	cam.ProcessLook(40, 70)
	cam.ProcessMovement(Left, 2)
	yaw := cam.Yaw()

	cam.ApplyPreset(preset)
	first, firstPitch := cam.Position, cam.Pitch()

	cam.ApplyPreset(preset)
	if cam.Position != first || cam.Pitch() != firstPitch {
		t.Errorf("preset not idempotent: %v/%v then %v/%v", first, firstPitch, cam.Position, cam.Pitch())
	}
	if first != preset.Position {
		t.Errorf("expected position %v, got %v", preset.Position, first)
	}
	if firstPitch != preset.Pitch {
		t.Errorf("expected pitch %v, got %v", preset.Pitch, firstPitch)
	}
	if cam.Yaw() != yaw {
		t.Errorf("preset changed yaw from %v to %v", yaw, cam.Yaw())
	}
}

func TestLookRightIncreasesForwardX(t *testing.T) {
	cam := NewCamera(DefaultCameraConfig())
	before := cam.Basis().Forward

	cam.ProcessLook(100, 0)

	if !approx(cam.Yaw(), -80) {
		t.Errorf("expected yaw -80, got %v", cam.Yaw())
	}
	after := cam.Basis().Forward
	if after.X() <= before.X() {
		t.Errorf("expected forward.x to increase: %v -> %v", before.X(), after.X())
	}
}

func TestBasisIsOrthonormal(t *testing.T) {
	cam := NewCamera(DefaultCameraConfig())
	cam.ProcessLook(77, 33)
	b := cam.Basis()

	for name, v := range map[string]mgl32.Vec3{"forward": b.Forward, "right": b.Right, "up": b.Up} {
		if !approx(v.Len(), 1) {
			t.Errorf("%s not unit length: %v", name, v.Len())
		}
	}
	if !approx(b.Forward.Dot(b.Right), 0) || !approx(b.Forward.Dot(b.Up), 0) || !approx(b.Right.Dot(b.Up), 0) {
		t.Errorf("basis not orthogonal: %+v", b)
	}
}
