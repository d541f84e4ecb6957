package material

import (
	"github.com/go-gl/mathgl/mgl32"

	"pbr-engine/opengl"
)

// parameterKind tags which field of parameter is live.
type parameterKind uint8

const (
	kindFloat parameterKind = iota
	kindInt
	kindBool
	kindVec2
	kindVec3
	kindVec4
	kindMat3
	kindMat4
)

// parameter is one typed uniform value. A tagged struct instead of an
// interface keeps uploads allocation-free on the per-frame path.
type parameter struct {
	kind parameterKind

	f  float32
	i  int32
	b  bool
	v2 mgl32.Vec2
	v3 mgl32.Vec3
	v4 mgl32.Vec4
	m3 mgl32.Mat3
	m4 mgl32.Mat4
}

// upload pushes the value to the bound shader under the given uniform name.
func (p parameter) upload(shader *opengl.Shader, name string) {
	switch p.kind {
	case kindFloat:
		shader.SetFloat(name, p.f)
	case kindInt:
		shader.SetInt(name, p.i)
	case kindBool:
		shader.SetBool(name, p.b)
	case kindVec2:
		shader.SetVec2(name, p.v2)
	case kindVec3:
		shader.SetVec3(name, p.v3)
	case kindVec4:
		shader.SetVec4(name, p.v4)
	case kindMat3:
		shader.SetMat3(name, p.m3)
	case kindMat4:
		shader.SetMat4(name, p.m4)
	}
}

// TextureBinding associates a texture with a sampler uniform and a fixed
// texture unit. Bindings are kept in insertion order.
type TextureBinding struct {
	UniformName string
	Texture     *opengl.Texture
	Slot        int
	Cubemap     bool
}
