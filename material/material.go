// Package material implements shader parameter stores: values set from
// anywhere in the frame are cached CPU-side and uploaded in one batch when
// the material is bound for drawing.
package material

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"pbr-engine/internal/logger"
	"pbr-engine/opengl"
)

// Material owns a shader reference, a name-keyed uniform value store and an
// ordered list of texture bindings. Setting a parameter twice overwrites in
// place; nothing reaches the GPU until Bind.
type Material struct {
	name   string
	shader *opengl.Shader

	params   map[string]parameter
	textures []TextureBinding
}

// New creates an empty material. A nil shader is tolerated (parameters
// still accumulate) but Bind will refuse to run.
func New(shader *opengl.Shader, name string) *Material {
	if shader == nil {
		logger.Log.Warn("material created without shader", zap.String("material", name))
	}
	return &Material{
		name:   name,
		shader: shader,
		params: make(map[string]parameter),
	}
}

func (m *Material) Name() string {
	return m.name
}

// Shader returns the program this material uploads into.
func (m *Material) Shader() *opengl.Shader {
	return m.shader
}

// ── Parameter setters ─────────────────────────────────────────────────────────

func (m *Material) SetFloat(name string, v float32) {
	m.params[name] = parameter{kind: kindFloat, f: v}
}

func (m *Material) SetInt(name string, v int32) {
	m.params[name] = parameter{kind: kindInt, i: v}
}

func (m *Material) SetBool(name string, v bool) {
	m.params[name] = parameter{kind: kindBool, b: v}
}

func (m *Material) SetVec2(name string, v mgl32.Vec2) {
	m.params[name] = parameter{kind: kindVec2, v2: v}
}

func (m *Material) SetVec3(name string, v mgl32.Vec3) {
	m.params[name] = parameter{kind: kindVec3, v3: v}
}

func (m *Material) SetVec4(name string, v mgl32.Vec4) {
	m.params[name] = parameter{kind: kindVec4, v4: v}
}

func (m *Material) SetMat3(name string, v mgl32.Mat3) {
	m.params[name] = parameter{kind: kindMat3, m3: v}
}

func (m *Material) SetMat4(name string, v mgl32.Mat4) {
	m.params[name] = parameter{kind: kindMat4, m4: v}
}

// HasParameter reports whether a value was set under this uniform name.
func (m *Material) HasParameter(name string) bool {
	_, ok := m.params[name]
	return ok
}

// ── Textures ──────────────────────────────────────────────────────────────────

// SetTexture binds a texture to a sampler uniform on a fixed unit. Setting
// the same uniform again updates the existing entry in place, preserving
// binding order.
func (m *Material) SetTexture(uniformName string, tex *opengl.Texture, slot int, cubemap bool) {
	for i := range m.textures {
		if m.textures[i].UniformName == uniformName {
			m.textures[i].Texture = tex
			m.textures[i].Slot = slot
			m.textures[i].Cubemap = cubemap
			return
		}
	}
	m.textures = append(m.textures, TextureBinding{
		UniformName: uniformName,
		Texture:     tex,
		Slot:        slot,
		Cubemap:     cubemap,
	})
}

// RemoveTexture drops the binding for a sampler uniform, if present.
func (m *Material) RemoveTexture(uniformName string) {
	for i := range m.textures {
		if m.textures[i].UniformName == uniformName {
			m.textures = append(m.textures[:i], m.textures[i+1:]...)
			return
		}
	}
}

// TextureBindings returns the bindings in insertion order.
func (m *Material) TextureBindings() []TextureBinding {
	return m.textures
}

// ── Binding ───────────────────────────────────────────────────────────────────

// Bind activates the shader, binds every texture to its unit and uploads
// all cached parameters. Call once per object before drawing.
func (m *Material) Bind() {
	if m.shader == nil {
		logger.Log.Error("cannot bind material without shader", zap.String("material", m.name))
		return
	}
	m.shader.Bind()
	m.bindTextures()
	m.uploadParameters()
}

// Unbind deactivates the shader.
func (m *Material) Unbind() {
	if m.shader != nil {
		m.shader.Unbind()
	}
}

func (m *Material) bindTextures() {
	for _, binding := range m.textures {
		if binding.Texture == nil {
			continue
		}
		binding.Texture.Bind(binding.Slot)
		m.shader.SetInt(binding.UniformName, int32(binding.Slot))
	}
}

func (m *Material) uploadParameters() {
	for name, p := range m.params {
		p.upload(m.shader, name)
	}
}
