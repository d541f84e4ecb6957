package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"pbr-engine/core"
)

var white = mgl32.Vec4{1, 1, 1, 1}

// CreateCube builds an axis-aligned cube centered at the origin with 24
// vertices (per-face normals and UVs).
func CreateCube(size float32) *Mesh {
	h := size / 2

	type face struct {
		normal  mgl32.Vec3
		corners [4]mgl32.Vec3
	}
	faces := []face{
		{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h}}},
		{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{h, -h, -h}, {-h, -h, -h}, {-h, h, -h}, {h, h, -h}}},
		{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{h, -h, h}, {h, -h, -h}, {h, h, -h}, {h, h, h}}},
		{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{-h, -h, -h}, {-h, -h, h}, {-h, h, h}, {-h, h, -h}}},
		{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{-h, h, h}, {h, h, h}, {h, h, -h}, {-h, h, -h}}},
		{mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{-h, -h, -h}, {h, -h, -h}, {h, -h, h}, {-h, -h, h}}},
	}
	uvs := [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	vertices := make([]core.Vertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, f := range faces {
		base := uint32(len(vertices))
		for i, corner := range f.corners {
			vertices = append(vertices, core.Vertex{
				Position: corner,
				Normal:   f.normal,
				UV:       uvs[i],
				Color:    white,
			})
		}
		indices = append(indices, base, base+1, base+2, base+2, base+3, base)
	}
	return NewMesh("cube", vertices, indices)
}

// CreateSphere builds a UV sphere. segments is the slice count around the
// equator, rings the stack count pole to pole; both are clamped to sane
// minimums.
func CreateSphere(radius float32, segments, rings int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}

	vertices := make([]core.Vertex, 0, (rings+1)*(segments+1))
	for ring := 0; ring <= rings; ring++ {
		theta := math.Pi * float64(ring) / float64(rings)
		y := float32(math.Cos(theta))
		r := float32(math.Sin(theta))
		for seg := 0; seg <= segments; seg++ {
			phi := 2 * math.Pi * float64(seg) / float64(segments)
			n := mgl32.Vec3{
				r * float32(math.Cos(phi)),
				y,
				r * float32(math.Sin(phi)),
			}
			vertices = append(vertices, core.Vertex{
				Position: n.Mul(radius),
				Normal:   n,
				UV: mgl32.Vec2{
					float32(seg) / float32(segments),
					float32(ring) / float32(rings),
				},
				Color: white,
			})
		}
	}

	indices := make([]uint32, 0, rings*segments*6)
	stride := uint32(segments + 1)
	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			a := uint32(ring)*stride + uint32(seg)
			b := a + stride
			indices = append(indices, a, b, a+1, a+1, b, b+1)
		}
	}
	return NewMesh("sphere", vertices, indices)
}

// CreatePlane builds a flat grid on the XZ plane facing +Y, centered at
// the origin.
func CreatePlane(width, depth float32, subdivisions int) *Mesh {
	if subdivisions < 1 {
		subdivisions = 1
	}
	n := subdivisions

	vertices := make([]core.Vertex, 0, (n+1)*(n+1))
	for z := 0; z <= n; z++ {
		for x := 0; x <= n; x++ {
			u := float32(x) / float32(n)
			v := float32(z) / float32(n)
			vertices = append(vertices, core.Vertex{
				Position: mgl32.Vec3{(u - 0.5) * width, 0, (v - 0.5) * depth},
				Normal:   mgl32.Vec3{0, 1, 0},
				UV:       mgl32.Vec2{u, v},
				Color:    white,
			})
		}
	}

	indices := make([]uint32, 0, n*n*6)
	stride := uint32(n + 1)
	for z := 0; z < n; z++ {
		for x := 0; x < n; x++ {
			a := uint32(z)*stride + uint32(x)
			b := a + stride
			indices = append(indices, a, b, a+1, a+1, b, b+1)
		}
	}
	return NewMesh("plane", vertices, indices)
}
