package scene

import (
	"bufio"
	"fmt"
	"image"
	"image/draw"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"pbr-engine/core"
	"pbr-engine/internal/logger"
	"pbr-engine/opengl"
)

// objMaterial is a parsed MTL entry mapped onto the engine's PBR
// parameters.
type objMaterial struct {
	color     core.Color
	roughness float32
	metallic  float32
	texture   *opengl.Texture
}

func defaultOBJMaterial() objMaterial {
	return objMaterial{color: core.ColorWhite, roughness: 0.5}
}

// objFace is one triangulated face: three (position, uv, normal) index
// triplets, 0-based, -1 where the component is absent.
type objFace struct {
	v, vt, vn [3]int
}

// LoadOBJ parses a Wavefront .obj file into one SceneObject per
// object/group. A companion .mtl referenced by mtllib is applied: Kd maps
// to the albedo color, Ns to roughness, d/Tr to alpha, map_Kd to the
// albedo texture; the Pr/Pm PBR extension tokens override roughness and
// metallic directly. Requires a current GL context when the MTL references
// textures.
func LoadOBJ(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj %q: %w", path, err)
	}
	defer f.Close()

	dir := filepath.Dir(path)
	model := &Model{}

	var positions []mgl32.Vec3
	var normals []mgl32.Vec3
	var uvs []mgl32.Vec2

	materials := map[string]objMaterial{}

	type objGroup struct {
		name    string
		matName string
		faces   []objFace
	}
	var groups []objGroup
	cur := &objGroup{name: "default"}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) >= 4 {
				positions = append(positions, parseVec3(fields[1:4]))
			}
		case "vn":
			if len(fields) >= 4 {
				normals = append(normals, parseVec3(fields[1:4]))
			}
		case "vt":
			if len(fields) >= 3 {
				u, _ := strconv.ParseFloat(fields[1], 32)
				v, _ := strconv.ParseFloat(fields[2], 32)
				uvs = append(uvs, mgl32.Vec2{float32(u), float32(v)})
			}

		case "o", "g":
			if len(cur.faces) > 0 {
				groups = append(groups, *cur)
			}
			name := "default"
			if len(fields) > 1 {
				name = fields[1]
			}
			// usemtl carries over group boundaries until the next directive.
			cur = &objGroup{name: name, matName: cur.matName}

		case "usemtl":
			if len(fields) > 1 {
				cur.matName = fields[1]
			}

		case "mtllib":
			if len(fields) > 1 {
				mtlPath := filepath.Join(dir, fields[1])
				loaded, err := loadMTL(mtlPath, dir, model)
				if err != nil {
					logger.Log.Warn("obj material library unavailable",
						zap.String("path", mtlPath), zap.Error(err))
					continue
				}
				for name, mat := range loaded {
					materials[name] = mat
				}
			}

		case "f":
			if len(fields) < 4 {
				continue
			}
			corners := make([][3]int, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				corners = append(corners, parseFaceVertex(tok, len(positions), len(uvs), len(normals)))
			}
			// Fan triangulation: 0-1-2, 0-2-3, ...
			for i := 1; i+1 < len(corners); i++ {
				c0, c1, c2 := corners[0], corners[i], corners[i+1]
				cur.faces = append(cur.faces, objFace{
					v:  [3]int{c0[0], c1[0], c2[0]},
					vt: [3]int{c0[1], c1[1], c2[1]},
					vn: [3]int{c0[2], c1[2], c2[2]},
				})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan obj %q: %w", path, err)
	}
	if len(cur.faces) > 0 {
		groups = append(groups, *cur)
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("obj %q: no geometry", path)
	}

	base := filepath.Base(path)
	for _, g := range groups {
		mesh := buildOBJMesh(g.name, g.faces, positions, normals, uvs)

		obj := NewSceneObject(fmt.Sprintf("%s/%s", base, g.name), mesh)
		mat, ok := materials[g.matName]
		if !ok {
			mat = defaultOBJMaterial()
		}
		obj.Color = mat.color
		obj.Roughness = mat.roughness
		obj.Metallic = mat.metallic
		obj.Texture = mat.texture
		model.Objects = append(model.Objects, obj)
	}

	logger.Log.Info("obj loaded", zap.String("path", path),
		zap.Int("objects", len(model.Objects)), zap.Int("textures", len(model.Textures)))
	return model, nil
}

// parseVec3 reads three floats; malformed components parse as zero.
func parseVec3(fields []string) mgl32.Vec3 {
	x, _ := strconv.ParseFloat(fields[0], 32)
	y, _ := strconv.ParseFloat(fields[1], 32)
	z, _ := strconv.ParseFloat(fields[2], 32)
	return mgl32.Vec3{float32(x), float32(y), float32(z)}
}

// parseFaceVertex parses one face token ("v", "v/vt", "v//vn", "v/vt/vn")
// into 0-based (position, uv, normal) indices, -1 where absent. OBJ counts
// from one; negative indices are relative to the pool size at this point
// in the file.
func parseFaceVertex(tok string, nPos, nUV, nNorm int) [3]int {
	resolve := func(s string, pool int) int {
		if s == "" {
			return -1
		}
		n, err := strconv.Atoi(s)
		if err != nil || n == 0 {
			return -1
		}
		if n > 0 {
			return n - 1
		}
		return pool + n
	}

	parts := strings.Split(tok, "/")
	out := [3]int{-1, -1, -1}
	out[0] = resolve(parts[0], nPos)
	if len(parts) > 1 {
		out[1] = resolve(parts[1], nUV)
	}
	if len(parts) > 2 {
		out[2] = resolve(parts[2], nNorm)
	}
	return out
}

// buildOBJMesh deduplicates face corners into an indexed mesh. When the
// file carried no normals they are generated from the triangles.
func buildOBJMesh(name string, faces []objFace, positions, normals []mgl32.Vec3, uvs []mgl32.Vec2) *Mesh {
	type key struct{ v, vt, vn int }
	seen := map[key]uint32{}
	var vertices []core.Vertex
	var indices []uint32

	for _, face := range faces {
		for c := 0; c < 3; c++ {
			k := key{face.v[c], face.vt[c], face.vn[c]}
			idx, ok := seen[k]
			if !ok {
				v := core.Vertex{
					Normal: mgl32.Vec3{0, 1, 0},
					Color:  mgl32.Vec4{1, 1, 1, 1},
				}
				if k.v >= 0 && k.v < len(positions) {
					v.Position = positions[k.v]
				}
				if k.vn >= 0 && k.vn < len(normals) {
					v.Normal = normals[k.vn]
				}
				if k.vt >= 0 && k.vt < len(uvs) {
					v.UV = uvs[k.vt]
				}
				idx = uint32(len(vertices))
				vertices = append(vertices, v)
				seen[k] = idx
			}
			indices = append(indices, idx)
		}
	}

	if len(normals) == 0 {
		generateNormals(vertices, indices)
	}
	return NewMesh(name, vertices, indices)
}

// generateNormals writes area-weighted vertex normals computed from the
// triangle list. Larger triangles contribute more, which matches how the
// surface actually looks.
func generateNormals(vertices []core.Vertex, indices []uint32) {
	accum := make([]mgl32.Vec3, len(vertices))

	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		v0 := vertices[i0].Position
		v1 := vertices[i1].Position
		v2 := vertices[i2].Position
		// Unnormalized cross product: magnitude is twice the triangle area.
		n := v1.Sub(v0).Cross(v2.Sub(v0))
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

// ── MTL parsing ──────────────────────────────────────────────────────────────

// loadMTL reads a material library. Textures are uploaded immediately and
// registered with the model for cleanup.
func loadMTL(path, dir string, model *Model) (map[string]objMaterial, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	mats := map[string]objMaterial{}
	var curName string
	textureCache := map[string]*opengl.Texture{}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		cur, haveCur := mats[curName]

		switch fields[0] {
		case "newmtl":
			curName = fields[1]
			mats[curName] = defaultOBJMaterial()

		case "Kd":
			if haveCur && len(fields) >= 4 {
				rgb := parseVec3(fields[1:4])
				cur.color.R, cur.color.G, cur.color.B = rgb.X(), rgb.Y(), rgb.Z()
				mats[curName] = cur
			}

		case "Ns":
			// Phong exponent to roughness, sqrt(2/(Ns+2)). An explicit Pr
			// wins over this estimate.
			if haveCur {
				ns, _ := strconv.ParseFloat(fields[1], 32)
				r := float32(math.Sqrt(2.0 / (math.Max(ns, 0) + 2.0)))
				cur.roughness = mgl32.Clamp(r, 0.05, 1.0)
				mats[curName] = cur
			}

		case "Pr":
			if haveCur {
				pr, _ := strconv.ParseFloat(fields[1], 32)
				cur.roughness = mgl32.Clamp(float32(pr), 0.05, 1.0)
				mats[curName] = cur
			}

		case "Pm":
			if haveCur {
				pm, _ := strconv.ParseFloat(fields[1], 32)
				cur.metallic = mgl32.Clamp(float32(pm), 0, 1)
				mats[curName] = cur
			}

		case "d":
			if haveCur {
				d, _ := strconv.ParseFloat(fields[1], 32)
				cur.color.A = mgl32.Clamp(float32(d), 0, 1)
				mats[curName] = cur
			}

		case "Tr":
			if haveCur {
				tr, _ := strconv.ParseFloat(fields[1], 32)
				cur.color.A = mgl32.Clamp(1.0-float32(tr), 0, 1)
				mats[curName] = cur
			}

		case "map_Kd":
			if haveCur {
				texPath := filepath.Join(dir, fields[len(fields)-1])
				tex, ok := textureCache[texPath]
				if !ok {
					tex, err = loadImageTexture(texPath)
					if err != nil {
						logger.Log.Warn("obj albedo texture unavailable",
							zap.String("path", texPath), zap.Error(err))
						continue
					}
					textureCache[texPath] = tex
					model.Textures = append(model.Textures, tex)
				}
				cur.texture = tex
				mats[curName] = cur
			}
		}
	}
	return mats, scanner.Err()
}

// loadImageTexture decodes a PNG or JPEG file and uploads it.
func loadImageTexture(path string) (*opengl.Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	decoded, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", path, err)
	}
	bounds := decoded.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, decoded, bounds.Min, draw.Src)
	return opengl.NewTextureRGBA(bounds.Dx(), bounds.Dy(), rgba.Pix)
}
