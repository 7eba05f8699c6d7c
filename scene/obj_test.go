package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"stilllife/core"
)

const quadOBJ = `# unit quad in the XZ plane
o quad
v 0 0 0
v 1 0 0
v 1 0 -1
v 0 0 -1
vt 0 0
vt 1 0
vt 1 1
vt 0 1
f 1/1 2/2 3/3 4/4
`

func TestDecodeOBJFanTriangulates(t *testing.T) {
	m, err := DecodeOBJ("quad", strings.NewReader(quadOBJ))
	if err != nil {
		t.Fatalf("DecodeOBJ: %v", err)
	}
	if len(m.Vertices) != 4 || len(m.Indices) != 6 {
		t.Fatalf("expected 4 vertices and 6 indices, got %d and %d", len(m.Vertices), len(m.Indices))
	}
	// No normals in the file: generated ones face up for CCW winding seen from +Y.
	for i, v := range m.Vertices {
		if !core.Vec3Near(v.Normal, mgl32.Vec3{0, 1, 0}, epsilon) {
			t.Errorf("vertex %d normal %v, expected +Y", i, v.Normal)
		}
	}
	if m.Vertices[2].UV != (mgl32.Vec2{1, 1}) {
		t.Errorf("uv not carried: %v", m.Vertices[2].UV)
	}
}

func TestDecodeOBJSharesCorners(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
f 1//1 2//1 3//1
f 3//1 2//1 1//1
`
	m, err := DecodeOBJ("twice", strings.NewReader(src))
	if err != nil {
		t.Fatalf("DecodeOBJ: %v", err)
	}
	if len(m.Vertices) != 3 {
		t.Errorf("expected 3 shared vertices, got %d", len(m.Vertices))
	}
	if m.Vertices[0].Normal != (mgl32.Vec3{0, 0, 1}) {
		t.Errorf("file normal not used: %v", m.Vertices[0].Normal)
	}
}

func TestDecodeOBJNegativeIndices(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`
	m, err := DecodeOBJ("relative", strings.NewReader(src))
	if err != nil {
		t.Fatalf("DecodeOBJ: %v", err)
	}
	if m.Vertices[1].Position != (mgl32.Vec3{1, 0, 0}) {
		t.Errorf("relative index resolved to %v", m.Vertices[1].Position)
	}
}

func TestDecodeOBJErrors(t *testing.T) {
	cases := map[string]string{
		"no faces":     "v 0 0 0\n",
		"out of range": "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 9\n",
		"bad number":   "v 0 zero 0\n",
		"short face":   "v 0 0 0\nv 1 0 0\nf 1 2\n",
	}
	for name, src := range cases {
		if _, err := DecodeOBJ(name, strings.NewReader(src)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadGeometryByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quad.obj")
	if err := os.WriteFile(path, []byte(quadOBJ), 0644); err != nil {
		t.Fatal(err)
	}
	m, err := LoadGeometry(path)
	if err != nil {
		t.Fatalf("LoadGeometry: %v", err)
	}
	if m.DrawCount() != 6 {
		t.Errorf("expected 6 indices, got %d", m.DrawCount())
	}

	if _, err := LoadGeometry(filepath.Join(dir, "quad.stl")); err == nil {
		t.Error("expected error for unsupported extension")
	}
}
