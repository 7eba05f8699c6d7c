package scene

import (
	"fmt"
	"math"
)

// GeometryID names a mesh the scene can draw. The GPU record for each one
// lives in the renderer's resource table.
type GeometryID int

const (
	GeometryCone GeometryID = iota
	GeometryPlane
	GeometryCylinder
	GeometryCoaster
	GeometryPyramid
	GeometryCube
	GeometryDome
	GeometryLimeBody
	GeometryOrb
	GeometryLimeSlice

	geometryCount
)

var geometryNames = [geometryCount]string{
	GeometryCone:      "cone",
	GeometryPlane:     "plane",
	GeometryCylinder:  "cylinder",
	GeometryCoaster:   "coaster",
	GeometryPyramid:   "pyramid",
	GeometryCube:      "cube",
	GeometryDome:      "dome",
	GeometryLimeBody:  "lime_body",
	GeometryOrb:       "orb",
	GeometryLimeSlice: "lime_slice",
}

func (g GeometryID) String() string {
	if g >= 0 && g < geometryCount {
		return geometryNames[g]
	}
	return fmt.Sprintf("GeometryID(%d)", int(g))
}

// ParseGeometryID is the inverse of String.
func ParseGeometryID(name string) (GeometryID, error) {
	for i, n := range geometryNames {
		if n == name {
			return GeometryID(i), nil
		}
	}
	return 0, fmt.Errorf("unknown geometry %q", name)
}

// AllGeometries lists every GeometryID in declaration order.
func AllGeometries() []GeometryID {
	ids := make([]GeometryID, geometryCount)
	for i := range ids {
		ids[i] = GeometryID(i)
	}
	return ids
}

type TextureID int

const (
	TexturePlane TextureID = iota
	TextureBox
	TextureDrink
	TextureSphere
	TextureLime
	TextureRind
	TextureCork
	TextureCeramic

	textureCount
)

var textureNames = [textureCount]string{
	TexturePlane:   "plane",
	TextureBox:     "box",
	TextureDrink:   "drink",
	TextureSphere:  "sphere",
	TextureLime:    "lime",
	TextureRind:    "rind",
	TextureCork:    "cork",
	TextureCeramic: "ceramic",
}

func (t TextureID) String() string {
	if t >= 0 && t < textureCount {
		return textureNames[t]
	}
	return fmt.Sprintf("TextureID(%d)", int(t))
}

func ParseTextureID(name string) (TextureID, error) {
	for i, n := range textureNames {
		if n == name {
			return TextureID(i), nil
		}
	}
	return 0, fmt.Errorf("unknown texture %q", name)
}

// DefaultTextureFiles maps every texture to its file name inside the
// texture directory.
func DefaultTextureFiles() map[TextureID]string {
	files := make(map[TextureID]string, textureCount)
	for i, n := range textureNames {
		files[TextureID(i)] = n + ".jpg"
	}
	return files
}

type ShaderID int

const (
	// ShaderLit shades with the key and fill lights and samples a texture.
	ShaderLit ShaderID = iota
	// ShaderMarker draws flat white, used for the light marker.
	ShaderMarker
)

func (s ShaderID) String() string {
	switch s {
	case ShaderLit:
		return "lit"
	case ShaderMarker:
		return "marker"
	default:
		return fmt.Sprintf("ShaderID(%d)", int(s))
	}
}

// BuildGeometry generates the CPU mesh for id.
func BuildGeometry(id GeometryID) (*Mesh, error) {
	var m *Mesh
	switch id {
	case GeometryCone:
		m = CreateCone(0.5, 1, 16)
	case GeometryPlane:
		m = CreatePlane(1.4, 1.0, 1)
	case GeometryCylinder:
		m = CreateCylinder(1, 3, 30)
	case GeometryCoaster:
		m = CreateCoaster(1, 3, 30)
	case GeometryPyramid:
		// Base diagonal of 1, so the corners sit half a unit from the axis.
		m = CreatePyramid(float32(0.5*math.Sqrt2), 0.5)
	case GeometryCube:
		m = CreateCube(1)
	case GeometryDome:
		m = CreateDome(0.3, 0.7, 0.5)
	case GeometryLimeBody:
		m = FlatShade(CreateSphere(2, 72, 24))
	case GeometryOrb:
		m = CreateSphere(0.4, 30, 10)
	case GeometryLimeSlice:
		m = CreateSphere(0.3, 30, 10)
	default:
		return nil, fmt.Errorf("no generator for %v", id)
	}
	m.Name = id.String()
	return m, nil
}
