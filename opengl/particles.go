package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const particleVertexSrc = `
#version 410 core
layout(location = 0) in vec3 a_Position;
layout(location = 1) in vec2 a_UV;
layout(location = 2) in vec4 a_Color;

uniform mat4 u_ViewProjection;

out vec2 v_UV;
out vec4 v_Color;

void main() {
    gl_Position = u_ViewProjection * vec4(a_Position, 1.0);
    v_UV = a_UV;
    v_Color = a_Color;
}
` + "\x00"

// Procedural soft circle: alpha rolls off quadratically toward the quad
// edge, so no texture is needed.
const particleFragmentSrc = `
#version 410 core
in vec2 v_UV;
in vec4 v_Color;

out vec4 o_Color;

void main() {
    float d = length(v_UV - vec2(0.5)) * 2.0;
    vec4 col = v_Color;
    col.a *= clamp(1.0 - d * d, 0.0, 1.0);
    o_Color = col;
}
` + "\x00"

// ParticleRenderer streams pre-built billboard quads into a dynamic vertex
// buffer and draws them blended. The vertex layout is position(3), uv(2),
// color(4) interleaved, six vertices per particle.
type ParticleRenderer struct {
	shader *Shader
	vao    uint32
	vbo    uint32

	// capacity is the allocated VBO size in vertices; the buffer grows but
	// never shrinks, so a burst of particles does not reallocate every
	// frame afterwards.
	capacity int
}

// ParticleFloatsPerVertex is the interleaved stride of the stream buffer.
const ParticleFloatsPerVertex = 9

// NewParticleRenderer compiles the billboard shader and creates the dynamic
// vertex buffer. Requires a current GL context.
func NewParticleRenderer() (*ParticleRenderer, error) {
	shader, err := NewShader("particles", particleVertexSrc, particleFragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("particle renderer: %w", err)
	}

	pr := &ParticleRenderer{shader: shader}
	gl.GenVertexArrays(1, &pr.vao)
	gl.GenBuffers(1, &pr.vbo)

	gl.BindVertexArray(pr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, pr.vbo)
	const stride = int32(ParticleFloatsPerVertex * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 12)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, stride, 20)
	gl.BindVertexArray(0)

	return pr, nil
}

// Draw uploads the interleaved quad vertices and renders them. Additive
// blending is used for glows and fire, standard alpha otherwise. Depth is
// tested against the scene but never written, so particles do not occlude
// each other or later draws.
func (pr *ParticleRenderer) Draw(verts []float32, viewProjection mgl32.Mat4, additive bool) {
	if pr == nil || len(verts) == 0 {
		return
	}
	vertexCount := len(verts) / ParticleFloatsPerVertex

	gl.BindBuffer(gl.ARRAY_BUFFER, pr.vbo)
	byteSize := len(verts) * 4
	if vertexCount > pr.capacity {
		gl.BufferData(gl.ARRAY_BUFFER, byteSize, gl.Ptr(verts), gl.DYNAMIC_DRAW)
		pr.capacity = vertexCount
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, byteSize, gl.Ptr(verts))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	gl.Enable(gl.BLEND)
	if additive {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	} else {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}
	gl.DepthMask(false)

	pr.shader.Bind()
	pr.shader.SetMat4("u_ViewProjection", viewProjection)

	gl.BindVertexArray(pr.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(vertexCount))
	gl.BindVertexArray(0)

	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
}

// Destroy frees the stream buffer and shader. Safe on nil.
func (pr *ParticleRenderer) Destroy() {
	if pr == nil {
		return
	}
	gl.DeleteVertexArrays(1, &pr.vao)
	gl.DeleteBuffers(1, &pr.vbo)
	pr.shader.Destroy()
}
