package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Light is a point light with Phong coefficients.
type Light struct {
	Color     mgl32.Vec3
	Position  mgl32.Vec3
	Ambient   float32
	Diffuse   float32
	Specular  float32
	Shininess float32
}

type Lighting struct {
	Key  Light
	Fill Light
	// MarkerScale sizes the unlit cone drawn at the key light.
	MarkerScale float32
}

// DefaultLighting is a white key light and a warm, weaker fill.
func DefaultLighting() Lighting {
	return Lighting{
		Key: Light{
			Color:     mgl32.Vec3{1, 1, 1},
			Position:  mgl32.Vec3{1, 3, -3},
			Ambient:   0.2,
			Diffuse:   1,
			Specular:  0.3,
			Shininess: 2,
		},
		Fill: Light{
			Color:     mgl32.Vec3{1, 0.9, 0.2},
			Position:  mgl32.Vec3{-8, 11.5, 7},
			Ambient:   0.1,
			Diffuse:   1,
			Specular:  0.5,
			Shininess: 8,
		},
		MarkerScale: 0.25,
	}
}
