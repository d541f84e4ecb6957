package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pbr-engine/core"
)

func writeOBJ(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadOBJSharedCornersDeduplicate(t *testing.T) {
	path := writeOBJ(t, t.TempDir(), "quad.obj", `
# two triangles sharing an edge
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3
f 1 3 4
`)

	model, err := LoadOBJ(path)
	require.NoError(t, err)
	require.Len(t, model.Objects, 1)

	mesh := model.Objects[0].Mesh
	require.NotNil(t, mesh)
	assert.Len(t, mesh.Vertices, 4, "shared corners collapse to one vertex")
	assert.Len(t, mesh.Indices, 6)
	assert.Equal(t, 2, mesh.TriangleCount())
}

func TestLoadOBJQuadFanTriangulation(t *testing.T) {
	path := writeOBJ(t, t.TempDir(), "quad.obj", `
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`)

	model, err := LoadOBJ(path)
	require.NoError(t, err)

	mesh := model.Objects[0].Mesh
	assert.Equal(t, 2, mesh.TriangleCount(), "a quad fans into two triangles")
	assert.Len(t, mesh.Vertices, 4)
}

func TestLoadOBJNegativeIndices(t *testing.T) {
	path := writeOBJ(t, t.TempDir(), "neg.obj", `
v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`)

	model, err := LoadOBJ(path)
	require.NoError(t, err)

	mesh := model.Objects[0].Mesh
	require.Len(t, mesh.Vertices, 3)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, mesh.Vertices[0].Position)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, mesh.Vertices[1].Position)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, mesh.Vertices[2].Position)
}

func TestLoadOBJGroupsBecomeObjects(t *testing.T) {
	path := writeOBJ(t, t.TempDir(), "two.obj", `
v 0 0 0
v 1 0 0
v 0 1 0
o first
f 1 2 3
o second
f 3 2 1
`)

	model, err := LoadOBJ(path)
	require.NoError(t, err)
	require.Len(t, model.Objects, 2)

	assert.Equal(t, "two.obj/first", model.Objects[0].Name)
	assert.Equal(t, "two.obj/second", model.Objects[1].Name)
}

func TestLoadOBJUsesProvidedNormalsAndUVs(t *testing.T) {
	path := writeOBJ(t, t.TempDir(), "full.obj", `
v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vt 1 0
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1
`)

	model, err := LoadOBJ(path)
	require.NoError(t, err)

	mesh := model.Objects[0].Mesh
	require.Len(t, mesh.Vertices, 3)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, mesh.Vertices[0].Normal)
	assert.Equal(t, mgl32.Vec2{1, 0}, mesh.Vertices[1].UV)
}

func TestLoadOBJGeneratesNormalsWhenAbsent(t *testing.T) {
	// Triangle in the XZ plane wound so the generated normal points up.
	path := writeOBJ(t, t.TempDir(), "flat.obj", `
v 0 0 0
v 1 0 0
v 0 0 -1
f 1 2 3
`)

	model, err := LoadOBJ(path)
	require.NoError(t, err)

	for _, v := range model.Objects[0].Mesh.Vertices {
		assert.InDelta(t, 0.0, float64(v.Normal.X()), 1e-5)
		assert.InDelta(t, 1.0, float64(v.Normal.Y()), 1e-5)
		assert.InDelta(t, 0.0, float64(v.Normal.Z()), 1e-5)
	}
}

func TestLoadOBJAppliesMaterials(t *testing.T) {
	dir := t.TempDir()
	writeOBJ(t, dir, "mats.mtl", `
newmtl shiny
Kd 0.8 0.2 0.1
Ns 900
Pm 1
d 0.5
newmtl roughpbr
Pr 0.9
`)
	path := writeOBJ(t, dir, "mats.obj", `
mtllib mats.mtl
v 0 0 0
v 1 0 0
v 0 1 0
o metal
usemtl shiny
f 1 2 3
o matte
usemtl roughpbr
f 3 2 1
o bare
usemtl missing
f 1 3 2
`)

	model, err := LoadOBJ(path)
	require.NoError(t, err)
	require.Len(t, model.Objects, 3)

	metal := model.Objects[0]
	assert.InDelta(t, 0.8, float64(metal.Color.R), 1e-5)
	assert.InDelta(t, 0.2, float64(metal.Color.G), 1e-5)
	assert.InDelta(t, 0.5, float64(metal.Color.A), 1e-5, "d maps to alpha")
	assert.Equal(t, float32(1), metal.Metallic)
	// Ns 900 is an extremely tight highlight, clamped at the roughness floor.
	assert.InDelta(t, 0.05, float64(metal.Roughness), 1e-3)

	matte := model.Objects[1]
	assert.InDelta(t, 0.9, float64(matte.Roughness), 1e-5, "Pr sets roughness directly")

	bare := model.Objects[2]
	assert.Equal(t, float32(0.5), bare.Roughness, "unknown material falls back to the default")
	assert.Equal(t, float32(1), bare.Color.A)
}

func TestLoadOBJTrMapsToAlpha(t *testing.T) {
	dir := t.TempDir()
	writeOBJ(t, dir, "glass.mtl", `
newmtl glass
Tr 0.7
`)
	path := writeOBJ(t, dir, "glass.obj", `
mtllib glass.mtl
v 0 0 0
v 1 0 0
v 0 1 0
usemtl glass
f 1 2 3
`)

	model, err := LoadOBJ(path)
	require.NoError(t, err)
	assert.InDelta(t, 0.3, float64(model.Objects[0].Color.A), 1e-5, "Tr is inverted transparency")
	assert.True(t, model.Objects[0].IsTransparent())
}

func TestLoadOBJMissingMTLIsTolerated(t *testing.T) {
	path := writeOBJ(t, t.TempDir(), "orphan.obj", `
mtllib nowhere.mtl
v 0 0 0
v 1 0 0
v 0 1 0
usemtl ghost
f 1 2 3
`)

	model, err := LoadOBJ(path)
	require.NoError(t, err, "a missing material library must not fail the load")
	assert.Equal(t, core.ColorWhite, model.Objects[0].Color)
}

func TestLoadOBJNoGeometry(t *testing.T) {
	path := writeOBJ(t, t.TempDir(), "points.obj", `
v 0 0 0
v 1 0 0
`)

	_, err := LoadOBJ(path)
	assert.Error(t, err)
}

func TestLoadOBJMissingFile(t *testing.T) {
	_, err := LoadOBJ(filepath.Join(t.TempDir(), "absent.obj"))
	assert.Error(t, err)
}

func TestParseFaceVertex(t *testing.T) {
	assert.Equal(t, [3]int{4, -1, -1}, parseFaceVertex("5", 10, 10, 10))
	assert.Equal(t, [3]int{0, 1, 2}, parseFaceVertex("1/2/3", 10, 10, 10))
	assert.Equal(t, [3]int{6, -1, 8}, parseFaceVertex("7//9", 10, 10, 10))
	assert.Equal(t, [3]int{9, -1, -1}, parseFaceVertex("-1", 10, 10, 10))
	assert.Equal(t, [3]int{-1, -1, -1}, parseFaceVertex("junk", 10, 10, 10))
	assert.Equal(t, [3]int{-1, -1, -1}, parseFaceVertex("0", 10, 10, 10), "index zero is invalid in OBJ")
}
