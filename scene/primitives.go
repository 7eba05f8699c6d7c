package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"stilllife/core"
)

var (
	up   = mgl32.Vec3{0, 1, 0}
	down = mgl32.Vec3{0, -1, 0}
)

func vertex(p, n mgl32.Vec3, u, v float32) core.Vertex {
	return core.Vertex{Position: p, Normal: n, UV: mgl32.Vec2{u, v}}
}

// ring returns the unit circle point for step i of n, in the XZ plane.
func ring(i, n int) (cos, sin float32) {
	theta := float64(i) * 2.0 * math.Pi / float64(n)
	return float32(math.Cos(theta)), float32(math.Sin(theta))
}

// CreateSphere generates a UV-sphere mesh. Sectors run around the Y axis,
// stacks from pole to pole.
func CreateSphere(radius float32, sectors, stacks int) *Mesh {
	if sectors < 3 {
		sectors = 3
	}
	if stacks < 2 {
		stacks = 2
	}

	var vertices []core.Vertex
	var indices []uint32

	for stack := 0; stack <= stacks; stack++ {
		phi := float64(stack) * math.Pi / float64(stacks)
		sinPhi := float32(math.Sin(phi))
		cosPhi := float32(math.Cos(phi))

		for sector := 0; sector <= sectors; sector++ {
			cosT, sinT := ring(sector, sectors)
			normal := mgl32.Vec3{sinPhi * cosT, cosPhi, sinPhi * sinT}
			vertices = append(vertices, vertex(normal.Mul(radius), normal,
				float32(sector)/float32(sectors), float32(stack)/float32(stacks)))
		}
	}

	for stack := 0; stack < stacks; stack++ {
		for sector := 0; sector < sectors; sector++ {
			current := uint32(stack*(sectors+1) + sector)
			next := current + uint32(sectors+1)

			if stack != 0 {
				indices = append(indices, current, current+1, next)
			}
			if stack != stacks-1 {
				indices = append(indices, current+1, next+1, next)
			}
		}
	}

	return CreateMeshFromData("Sphere", vertices, indices)
}

// appendDisc adds a triangle fan closing a circle of the given radius at
// height y. The winding faces along normal.
func appendDisc(vertices []core.Vertex, indices []uint32, radius, y float32, segments int, normal mgl32.Vec3) ([]core.Vertex, []uint32) {
	center := uint32(len(vertices))
	vertices = append(vertices, vertex(mgl32.Vec3{0, y, 0}, normal, 0.5, 0.5))

	for i := 0; i <= segments; i++ {
		cosT, sinT := ring(i, segments)
		vertices = append(vertices, vertex(mgl32.Vec3{cosT * radius, y, sinT * radius}, normal,
			cosT*0.5+0.5, sinT*0.5+0.5))
	}
	for i := 0; i < segments; i++ {
		a := center + 1 + uint32(i)
		if normal.Y() > 0 {
			indices = append(indices, center, a+1, a)
		} else {
			indices = append(indices, center, a, a+1)
		}
	}
	return vertices, indices
}

// appendWall adds the side of a tube between y0 and y1. Inward walls flip
// their normals and winding.
func appendWall(vertices []core.Vertex, indices []uint32, radius, y0, y1 float32, segments int, inward bool) ([]core.Vertex, []uint32) {
	base := uint32(len(vertices))
	for i := 0; i <= segments; i++ {
		cosT, sinT := ring(i, segments)
		normal := mgl32.Vec3{cosT, 0, sinT}
		if inward {
			normal = normal.Mul(-1)
		}
		u := float32(i) / float32(segments)
		vertices = append(vertices,
			vertex(mgl32.Vec3{cosT * radius, y0, sinT * radius}, normal, u, 0),
			vertex(mgl32.Vec3{cosT * radius, y1, sinT * radius}, normal, u, 1))
	}
	for i := 0; i < segments; i++ {
		b := base + uint32(i*2)
		if inward {
			indices = append(indices, b, b+2, b+1, b+2, b+3, b+1)
		} else {
			indices = append(indices, b, b+1, b+2, b+2, b+1, b+3)
		}
	}
	return vertices, indices
}

// CreateCylinder generates a closed cylinder centered on the origin.
func CreateCylinder(radius, height float32, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	half := height / 2

	var vertices []core.Vertex
	var indices []uint32
	vertices, indices = appendWall(vertices, indices, radius, -half, half, segments, false)
	vertices, indices = appendDisc(vertices, indices, radius, half, segments, up)
	vertices, indices = appendDisc(vertices, indices, radius, -half, segments, down)

	return CreateMeshFromData("Cylinder", vertices, indices)
}

// CreateCoaster generates a cylinder whose top face is recessed inside a
// raised rim, the shape of a drink coaster.
func CreateCoaster(radius, height float32, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	half := height / 2
	inner := radius * 0.85
	recess := half - height*0.2

	var vertices []core.Vertex
	var indices []uint32
	vertices, indices = appendWall(vertices, indices, radius, -half, half, segments, false)
	vertices, indices = appendDisc(vertices, indices, radius, -half, segments, down)
	vertices, indices = appendWall(vertices, indices, inner, recess, half, segments, true)
	vertices, indices = appendDisc(vertices, indices, inner, recess, segments, up)

	// Rim: annulus between the inner and outer radius on the top face.
	base := uint32(len(vertices))
	for i := 0; i <= segments; i++ {
		cosT, sinT := ring(i, segments)
		u := float32(i) / float32(segments)
		vertices = append(vertices,
			vertex(mgl32.Vec3{cosT * inner, half, sinT * inner}, up, u, 0),
			vertex(mgl32.Vec3{cosT * radius, half, sinT * radius}, up, u, 1))
	}
	for i := 0; i < segments; i++ {
		b := base + uint32(i*2)
		indices = append(indices, b, b+2, b+1, b+1, b+2, b+3)
	}

	return CreateMeshFromData("Coaster", vertices, indices)
}

// CreateCone generates a cone standing on its base: the base circle lies in
// y = 0 and the tip sits at y = height.
func CreateCone(radius, height float32, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}

	var vertices []core.Vertex
	var indices []uint32

	slope := math.Atan2(float64(radius), float64(height))
	ny := float32(math.Sin(slope))
	nr := float32(math.Cos(slope))

	for i := 0; i < segments; i++ {
		cosA, sinA := ring(i, segments)
		cosB, sinB := ring(i+1, segments)
		cosM, sinM := ring(2*i+1, 2*segments)
		tipNormal := mgl32.Vec3{cosM * nr, ny, sinM * nr}

		base := uint32(len(vertices))
		vertices = append(vertices,
			vertex(mgl32.Vec3{0, height, 0}, tipNormal, (float32(i)+0.5)/float32(segments), 1),
			vertex(mgl32.Vec3{cosA * radius, 0, sinA * radius}, mgl32.Vec3{cosA * nr, ny, sinA * nr}, float32(i)/float32(segments), 0),
			vertex(mgl32.Vec3{cosB * radius, 0, sinB * radius}, mgl32.Vec3{cosB * nr, ny, sinB * nr}, float32(i+1)/float32(segments), 0))
		indices = append(indices, base, base+2, base+1)
	}

	vertices, indices = appendDisc(vertices, indices, radius, 0, segments, down)

	return CreateMeshFromData("Cone", vertices, indices)
}

// CreatePlane generates a flat plane mesh facing +Y.
func CreatePlane(width, depth float32, subdivisions int) *Mesh {
	if subdivisions < 1 {
		subdivisions = 1
	}

	var vertices []core.Vertex
	var indices []uint32

	for z := 0; z <= subdivisions; z++ {
		for x := 0; x <= subdivisions; x++ {
			u := float32(x) / float32(subdivisions)
			v := float32(z) / float32(subdivisions)
			p := mgl32.Vec3{-width/2 + u*width, 0, -depth/2 + v*depth}
			vertices = append(vertices, vertex(p, up, u, 1-v))
		}
	}

	for z := 0; z < subdivisions; z++ {
		for x := 0; x < subdivisions; x++ {
			topLeft := uint32(z*(subdivisions+1) + x)
			topRight := topLeft + 1
			bottomLeft := topLeft + uint32(subdivisions+1)
			bottomRight := bottomLeft + 1

			indices = append(indices, topLeft, bottomLeft, topRight)
			indices = append(indices, topRight, bottomLeft, bottomRight)
		}
	}

	return CreateMeshFromData("Plane", vertices, indices)
}

// cubeFaces lists each face's normal and the two in-plane axes that span it.
var cubeFaces = [6]struct{ n, u, v mgl32.Vec3 }{
	{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
	{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
	{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
}

// CreateCube generates an axis-aligned cube with per-face normals and a
// full texture on every face.
func CreateCube(size float32) *Mesh {
	s := size / 2
	vertices := make([]core.Vertex, 0, 24)
	indices := make([]uint32, 0, 36)

	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for _, f := range cubeFaces {
		base := uint32(len(vertices))
		for _, c := range corners {
			p := f.n.Add(f.u.Mul(c[0])).Add(f.v.Mul(c[1])).Mul(s)
			vertices = append(vertices, vertex(p, f.n, (c[0]+1)/2, (c[1]+1)/2))
		}
		indices = append(indices, base, base+1, base+2, base+2, base+3, base)
	}

	return CreateMeshFromData("Cube", vertices, indices)
}

// CreatePyramid generates a four-sided pyramid whose square base lies in
// y = 0 with the apex at y = height.
func CreatePyramid(width, height float32) *Mesh {
	h := width / 2
	apex := mgl32.Vec3{0, height, 0}
	base := [4]mgl32.Vec3{{-h, 0, -h}, {h, 0, -h}, {h, 0, h}, {-h, 0, h}}

	var vertices []core.Vertex
	var indices []uint32

	vertices = append(vertices,
		vertex(base[0], down, 0, 0),
		vertex(base[1], down, 1, 0),
		vertex(base[2], down, 1, 1),
		vertex(base[3], down, 0, 1))
	indices = append(indices, 0, 1, 2, 0, 2, 3)

	for i := 0; i < 4; i++ {
		a, b := base[i], base[(i+1)%4]
		n := apex.Sub(a).Cross(b.Sub(a)).Normalize()
		first := uint32(len(vertices))
		vertices = append(vertices,
			vertex(a, n, 0, 0),
			vertex(b, n, 1, 0),
			vertex(apex, n, 0.5, 1))
		indices = append(indices, first, first+2, first+1)
	}

	return CreateMeshFromData("Pyramid", vertices, indices)
}

// CreateDome generates the lime wedge: a prism whose square bottom of half
// extent bottom widens to a ridge of half length top at y = height.
func CreateDome(bottom, top, height float32) *Mesh {
	b := bottom
	ridgeL := mgl32.Vec3{-top, height, 0}
	ridgeR := mgl32.Vec3{top, height, 0}
	bl, br := mgl32.Vec3{-b, 0, -b}, mgl32.Vec3{b, 0, -b}
	fl, fr := mgl32.Vec3{-b, 0, b}, mgl32.Vec3{b, 0, b}

	var vertices []core.Vertex
	var indices []uint32

	quad := func(p0, p1, p2, p3, n mgl32.Vec3) {
		first := uint32(len(vertices))
		vertices = append(vertices,
			vertex(p0, n, 0, 0),
			vertex(p1, n, 1, 0),
			vertex(p2, n, 1, 1),
			vertex(p3, n, 0, 1))
		indices = append(indices, first, first+1, first+2, first+2, first+3, first)
	}
	tri := func(p0, p1, p2, n mgl32.Vec3) {
		first := uint32(len(vertices))
		vertices = append(vertices,
			vertex(p0, n, 0, 0),
			vertex(p1, n, 1, 0),
			vertex(p2, n, 0.5, 1))
		indices = append(indices, first, first+1, first+2)
	}
	faceNormal := func(p0, p1, p2 mgl32.Vec3) mgl32.Vec3 {
		return p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
	}

	quad(br, bl, ridgeL, ridgeR, faceNormal(br, bl, ridgeL))
	quad(fl, fr, ridgeR, ridgeL, faceNormal(fl, fr, ridgeR))
	tri(bl, fl, ridgeL, faceNormal(bl, fl, ridgeL))
	tri(fr, br, ridgeR, faceNormal(fr, br, ridgeR))
	quad(bl, br, fr, fl, down)

	return CreateMeshFromData("Dome", vertices, indices)
}
