package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type Color struct {
	R, G, B, A float32
}

// Vertex is the interleaved layout shared by every mesh: position, normal
// and texture coordinate, 32 bytes.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
}

// Transform is an authored placement. Angle is in radians about Axis.
type Transform struct {
	Position mgl32.Vec3
	Axis     mgl32.Vec3
	Angle    float32
	Scale    mgl32.Vec3
}

// GetMatrix composes translation * rotation * scale, so a vertex is scaled
// first and translated last.
func (t Transform) GetMatrix() mgl32.Mat4 {
	translation := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rotation := mgl32.Ident4()
	if t.Angle != 0 && t.Axis.Len() > 0 {
		rotation = mgl32.HomogRotate3D(t.Angle, t.Axis.Normalize())
	}
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	return translation.Mul4(rotation).Mul4(scale)
}

// NearlyEqual reports whether a and b differ by at most eps.
func NearlyEqual(a, b, eps float32) bool {
	return math.Abs(float64(a)-float64(b)) <= float64(eps)
}

// Vec3Near compares component by component with an absolute tolerance,
// unlike mgl32's relative ApproxEqual which is strict around zero.
func Vec3Near(a, b mgl32.Vec3, eps float32) bool {
	for i := range a {
		if !NearlyEqual(a[i], b[i], eps) {
			return false
		}
	}
	return true
}
