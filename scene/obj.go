package scene

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"stilllife/core"
)

// LoadGeometry imports a geometry override, picking the format from the
// file extension: .obj, or .gltf/.glb.
func LoadGeometry(path string) (*Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return LoadGeometryOBJ(path)
	case ".gltf", ".glb":
		return LoadGeometryGLTF(path)
	}
	return nil, fmt.Errorf("unsupported geometry format %q", filepath.Ext(path))
}

// ResolveGeometry returns the mesh drawn for id: the file at override when
// one is configured, renamed after id, otherwise the built-in primitive.
func ResolveGeometry(id GeometryID, override string) (*Mesh, error) {
	if override == "" {
		return BuildGeometry(id)
	}
	mesh, err := LoadGeometry(override)
	if err != nil {
		return nil, fmt.Errorf("geometry %q override: %w", id, err)
	}
	mesh.Name = id.String()
	core.Logger().Debug("geometry overridden", "geometry", id, "path", override)
	return mesh, nil
}

// LoadGeometryOBJ reads a Wavefront .obj file into a single mesh. Objects
// and groups are merged; materials are ignored since every draw names its
// own texture.
func LoadGeometryOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj %q: %w", path, err)
	}
	defer f.Close()

	return DecodeOBJ(filepath.Base(path), f)
}

// objRef is one face corner. Indices are 0-based, -1 when absent.
type objRef struct{ v, vt, vn int }

// DecodeOBJ parses OBJ text. Polygons are fan-triangulated and corners that
// repeat the same position/uv/normal triple share a vertex.
func DecodeOBJ(name string, r io.Reader) (*Mesh, error) {
	var (
		positions []mgl32.Vec3
		normals   []mgl32.Vec3
		uvs       []mgl32.Vec2
		corners   []objRef
	)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v", "vn":
			vec, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", name, lineNo, err)
			}
			if fields[0] == "v" {
				positions = append(positions, mgl32.Vec3{vec[0], vec[1], vec[2]})
			} else {
				normals = append(normals, mgl32.Vec3{vec[0], vec[1], vec[2]})
			}

		case "vt":
			vec, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", name, lineNo, err)
			}
			uvs = append(uvs, mgl32.Vec2{vec[0], vec[1]})

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%s:%d: face needs at least 3 vertices", name, lineNo)
			}
			face := make([]objRef, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				ref, err := parseObjRef(tok, len(positions), len(uvs), len(normals))
				if err != nil {
					return nil, fmt.Errorf("%s:%d: %w", name, lineNo, err)
				}
				face = append(face, ref)
			}
			// Fan: 0-1-2, 0-2-3, ...
			for i := 1; i+1 < len(face); i++ {
				corners = append(corners, face[0], face[i], face[i+1])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan obj: %w", err)
	}
	if len(corners) == 0 {
		return nil, fmt.Errorf("no faces found in %q", name)
	}

	vertMap := make(map[objRef]uint32)
	var vertices []core.Vertex
	indices := make([]uint32, 0, len(corners))
	for _, c := range corners {
		if idx, ok := vertMap[c]; ok {
			indices = append(indices, idx)
			continue
		}
		v := core.Vertex{Position: positions[c.v], Normal: mgl32.Vec3{0, 1, 0}}
		if c.vt >= 0 {
			v.UV = uvs[c.vt]
		}
		if c.vn >= 0 {
			v.Normal = normals[c.vn]
		}
		idx := uint32(len(vertices))
		vertices = append(vertices, v)
		vertMap[c] = idx
		indices = append(indices, idx)
	}

	if len(normals) == 0 {
		smoothNormals(vertices, indices)
	}
	return CreateMeshFromData(name, vertices, indices), nil
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d components, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(f)
	}
	return out, nil
}

// parseObjRef parses "v", "v/vt", "v//vn" or "v/vt/vn". OBJ indices are
// 1-based; negative ones count back from the latest element.
func parseObjRef(tok string, nv, nvt, nvn int) (objRef, error) {
	ref := objRef{v: -1, vt: -1, vn: -1}
	parts := strings.Split(tok, "/")
	counts := []int{nv, nvt, nvn}
	dst := []*int{&ref.v, &ref.vt, &ref.vn}
	for i := 0; i < len(parts) && i < 3; i++ {
		if parts[i] == "" {
			continue
		}
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return ref, fmt.Errorf("bad face index %q", tok)
		}
		if n < 0 {
			n = counts[i] + n
		} else {
			n--
		}
		if n < 0 || n >= counts[i] {
			return ref, fmt.Errorf("face index %q out of range", tok)
		}
		*dst[i] = n
	}
	if ref.v < 0 {
		return ref, fmt.Errorf("face vertex %q has no position", tok)
	}
	return ref, nil
}

// smoothNormals writes area-weighted vertex normals.
func smoothNormals(vertices []core.Vertex, indices []uint32) {
	accum := make([]mgl32.Vec3, len(vertices))
	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		p0 := vertices[i0].Position
		n := vertices[i1].Position.Sub(p0).Cross(vertices[i2].Position.Sub(p0))
		accum[i0] = accum[i0].Add(n)
		accum[i1] = accum[i1].Add(n)
		accum[i2] = accum[i2].Add(n)
	}
	for i := range vertices {
		if accum[i].Len() > 0 {
			vertices[i].Normal = accum[i].Normalize()
		}
	}
}
