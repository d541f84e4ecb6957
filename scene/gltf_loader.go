package scene

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"pbr-engine/core"
	"pbr-engine/internal/logger"
	"pbr-engine/opengl"
)

// Model is the result of loading a glTF file: one SceneObject per mesh
// primitive, plus the textures they reference. Textures are owned by the
// model; destroy them when the objects are no longer drawn.
type Model struct {
	Objects  []*SceneObject
	Textures []*opengl.Texture
}

// LoadGLTF reads a .gltf or .glb file and converts the default scene's
// mesh-bearing nodes into scene objects. Node hierarchies are flattened one
// level: each node contributes its own translation/rotation/scale. Requires
// a current GL context for texture upload.
func LoadGLTF(path string) (*Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf %q: %w", path, err)
	}

	model := &Model{}
	textureCache := map[int]*opengl.Texture{}

	for nodeIndex, node := range doc.Nodes {
		if node.Mesh == nil {
			continue
		}
		mesh := doc.Meshes[*node.Mesh]

		transform := core.NewTransform()
		tr := node.TranslationOrDefault()
		transform.Position = mgl32.Vec3{float32(tr[0]), float32(tr[1]), float32(tr[2])}
		sc := node.ScaleOrDefault()
		transform.Scale = mgl32.Vec3{float32(sc[0]), float32(sc[1]), float32(sc[2])}
		rot := node.RotationOrDefault()
		transform.Rotation = eulerXYZFromQuat(mgl32.Quat{
			W: float32(rot[3]),
			V: mgl32.Vec3{float32(rot[0]), float32(rot[1]), float32(rot[2])},
		})

		for primIndex, prim := range mesh.Primitives {
			obj, err := loadPrimitive(doc, path, prim, textureCache, model)
			if err != nil {
				logger.Log.Warn("skipping gltf primitive",
					zap.String("path", path),
					zap.Int("node", nodeIndex), zap.Int("primitive", primIndex),
					zap.Error(err))
				continue
			}
			obj.Name = fmt.Sprintf("%s/%s.%d", filepath.Base(path), node.Name, primIndex)
			obj.Transform = transform
			model.Objects = append(model.Objects, obj)
		}
	}

	if len(model.Objects) == 0 {
		return nil, fmt.Errorf("gltf %q: no drawable primitives", path)
	}
	logger.Log.Info("gltf loaded", zap.String("path", path),
		zap.Int("objects", len(model.Objects)), zap.Int("textures", len(model.Textures)))
	return model, nil
}

func loadPrimitive(doc *gltf.Document, path string, prim *gltf.Primitive,
	textureCache map[int]*opengl.Texture, model *Model) (*SceneObject, error) {

	posIndex, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, fmt.Errorf("primitive has no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIndex], nil)
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}

	var normals [][3]float32
	if normalIndex, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, err = modeler.ReadNormal(doc, doc.Accessors[normalIndex], nil)
		if err != nil {
			return nil, fmt.Errorf("read normals: %w", err)
		}
	}

	var uvs [][2]float32
	if uvIndex, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[uvIndex], nil)
		if err != nil {
			return nil, fmt.Errorf("read texcoords: %w", err)
		}
	}

	vertices := make([]core.Vertex, len(positions))
	for i, p := range positions {
		v := core.Vertex{
			Position: mgl32.Vec3{p[0], p[1], p[2]},
			Normal:   mgl32.Vec3{0, 1, 0},
			Color:    mgl32.Vec4{1, 1, 1, 1},
		}
		if i < len(normals) {
			v.Normal = mgl32.Vec3{normals[i][0], normals[i][1], normals[i][2]}
		}
		if i < len(uvs) {
			v.UV = mgl32.Vec2{uvs[i][0], uvs[i][1]}
		}
		vertices[i] = v
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("read indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(vertices))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	obj := NewSceneObject("primitive", NewMesh("gltf", vertices, indices))

	if prim.Material != nil {
		applyGLTFMaterial(doc, path, doc.Materials[*prim.Material], obj, textureCache, model)
	}
	return obj, nil
}

func applyGLTFMaterial(doc *gltf.Document, path string, mat *gltf.Material,
	obj *SceneObject, textureCache map[int]*opengl.Texture, model *Model) {

	pbr := mat.PBRMetallicRoughness
	if pbr == nil {
		return
	}

	factor := pbr.BaseColorFactorOrDefault()
	obj.Color = core.Color{
		R: float32(factor[0]), G: float32(factor[1]),
		B: float32(factor[2]), A: float32(factor[3]),
	}
	obj.Metallic = float32(pbr.MetallicFactorOrDefault())
	obj.Roughness = float32(pbr.RoughnessFactorOrDefault())

	if pbr.BaseColorTexture == nil {
		return
	}
	texIndex := int(pbr.BaseColorTexture.Index)
	if cached, ok := textureCache[texIndex]; ok {
		obj.Texture = cached
		return
	}
	tex, err := loadGLTFTexture(doc, path, texIndex)
	if err != nil {
		logger.Log.Warn("gltf base color texture unavailable",
			zap.String("path", path), zap.Int("texture", texIndex), zap.Error(err))
		return
	}
	textureCache[texIndex] = tex
	model.Textures = append(model.Textures, tex)
	obj.Texture = tex
}

func loadGLTFTexture(doc *gltf.Document, path string, texIndex int) (*opengl.Texture, error) {
	if texIndex < 0 || texIndex >= len(doc.Textures) {
		return nil, fmt.Errorf("texture index %d out of range", texIndex)
	}
	tex := doc.Textures[texIndex]
	if tex.Source == nil {
		return nil, fmt.Errorf("texture %d has no image source", texIndex)
	}
	img := doc.Images[*tex.Source]

	var raw []byte
	switch {
	case img.BufferView != nil:
		data, err := modeler.ReadBufferView(doc, doc.BufferViews[*img.BufferView])
		if err != nil {
			return nil, fmt.Errorf("read image buffer view: %w", err)
		}
		raw = data
	case img.URI != "":
		data, err := os.ReadFile(filepath.Join(filepath.Dir(path), img.URI))
		if err != nil {
			return nil, fmt.Errorf("read image file: %w", err)
		}
		raw = data
	default:
		return nil, fmt.Errorf("image %d has neither buffer view nor uri", *tex.Source)
	}

	decoded, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := decoded.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, decoded, bounds.Min, draw.Src)
	return opengl.NewTextureRGBA(bounds.Dx(), bounds.Dy(), rgba.Pix)
}

// eulerXYZFromQuat extracts Euler angles (radians) such that
// Rx(x)*Ry(y)*Rz(z) reproduces the quaternion's rotation, matching the
// composition order of Transform.ModelMatrix.
func eulerXYZFromQuat(q mgl32.Quat) mgl32.Vec3 {
	m := q.Normalize().Mat4()

	// column-major: m[col*4+row]
	r02 := float64(m[8])  // row 0, col 2
	r12 := float64(m[9])  // row 1, col 2
	r22 := float64(m[10]) // row 2, col 2
	r01 := float64(m[4])  // row 0, col 1
	r00 := float64(m[0])  // row 0, col 0
	r10 := float64(m[1])  // row 1, col 0
	r11 := float64(m[5])  // row 1, col 1

	if r02 > 0.9999 || r02 < -0.9999 {
		// Gimbal lock: pitch at +-90 degrees, fold roll into yaw.
		return mgl32.Vec3{
			float32(math.Atan2(r10, r11)),
			float32(math.Asin(clampF64(r02, -1, 1))),
			0,
		}
	}
	return mgl32.Vec3{
		float32(math.Atan2(-r12, r22)),
		float32(math.Asin(clampF64(r02, -1, 1))),
		float32(math.Atan2(-r01, r00)),
	}
}

func clampF64(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
