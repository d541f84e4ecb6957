package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"pbr-engine/core"
)

// Skybox renders a procedural gradient sky on an inverted unit cube. The
// vertex shader forces depth to 1.0 (xyww trick) so the sky only fills
// pixels no scene geometry reached.
type Skybox struct {
	vao    uint32
	vbo    uint32
	shader *Shader

	// ZenithColor is the sky color directly overhead (Y = +1).
	ZenithColor core.Color
	// HorizonColor is the sky color at the horizon (Y = 0).
	HorizonColor core.Color
	// GroundColor is the color below the horizon (Y = -1).
	GroundColor core.Color
}

const skyboxVertexSrc = `
#version 410 core
layout(location = 0) in vec3 a_Position;

uniform mat4 u_SkyViewProjection;

out vec3 v_Direction;

void main() {
    v_Direction = a_Position;
    vec4 pos = u_SkyViewProjection * vec4(a_Position, 1.0);
    // xyww: after perspective divide z/w = 1.0, the far plane
    gl_Position = pos.xyww;
}
` + "\x00"

const skyboxFragmentSrc = `
#version 410 core
in vec3 v_Direction;
out vec4 o_Color;

uniform vec3 u_Zenith;
uniform vec3 u_Horizon;
uniform vec3 u_Ground;

void main() {
    float t = normalize(v_Direction).y;

    vec3 color;
    if (t >= 0.0) {
        color = mix(u_Horizon, u_Zenith, pow(t, 0.4));
    } else {
        color = mix(u_Horizon, u_Ground, min(-t * 3.0, 1.0));
    }
    o_Color = vec4(color, 1.0);
}
` + "\x00"

// 36 positions for a unit cube, wound so the inside faces are visible.
var skyboxVertices = []float32{
	// -Z
	-1, -1, -1, 1, 1, -1, 1, -1, -1,
	1, 1, -1, -1, -1, -1, -1, 1, -1,
	// +Z
	-1, -1, 1, 1, -1, 1, 1, 1, 1,
	1, 1, 1, -1, 1, 1, -1, -1, 1,
	// -X
	-1, 1, 1, -1, 1, -1, -1, -1, -1,
	-1, -1, -1, -1, -1, 1, -1, 1, 1,
	// +X
	1, 1, 1, 1, -1, -1, 1, 1, -1,
	1, -1, -1, 1, 1, 1, 1, -1, 1,
	// -Y
	-1, -1, -1, 1, -1, -1, 1, -1, 1,
	1, -1, 1, -1, -1, 1, -1, -1, -1,
	// +Y
	-1, 1, -1, 1, 1, 1, 1, 1, -1,
	1, 1, 1, -1, 1, -1, -1, 1, 1,
}

// NewSkybox compiles the gradient shader and uploads the cube. Defaults are
// a deep blue zenith, pale horizon and warm brown ground.
func NewSkybox() (*Skybox, error) {
	shader, err := NewShader("skybox", skyboxVertexSrc, skyboxFragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("skybox: %w", err)
	}

	sb := &Skybox{
		shader:       shader,
		ZenithColor:  core.Color{R: 0.10, G: 0.30, B: 0.70, A: 1},
		HorizonColor: core.Color{R: 0.60, G: 0.80, B: 1.00, A: 1},
		GroundColor:  core.Color{R: 0.30, G: 0.25, B: 0.20, A: 1},
	}

	gl.GenVertexArrays(1, &sb.vao)
	gl.GenBuffers(1, &sb.vbo)
	gl.BindVertexArray(sb.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, sb.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(skyboxVertices)*4, gl.Ptr(skyboxVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 12, 0)
	gl.BindVertexArray(0)

	return sb, nil
}

// Draw renders the sky using the camera's view matrix with its translation
// stripped, so the cube stays centered on the viewer.
func (sb *Skybox) Draw(view, projection mgl32.Mat4) {
	skyView := view.Mat3().Mat4()
	skyVP := projection.Mul4(skyView)

	// LEQUAL so depth 1.0 fragments pass against the cleared depth value;
	// mask off so the sky never writes depth.
	gl.DepthFunc(gl.LEQUAL)
	gl.DepthMask(false)

	sb.shader.Bind()
	sb.shader.SetMat4("u_SkyViewProjection", skyVP)
	sb.shader.SetVec3("u_Zenith", sb.ZenithColor.Vec3())
	sb.shader.SetVec3("u_Horizon", sb.HorizonColor.Vec3())
	sb.shader.SetVec3("u_Ground", sb.GroundColor.Vec3())

	gl.BindVertexArray(sb.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 36)
	gl.BindVertexArray(0)

	gl.DepthMask(true)
	gl.DepthFunc(gl.LESS)
}

// Destroy frees the cube buffers and shader.
func (sb *Skybox) Destroy() {
	gl.DeleteVertexArrays(1, &sb.vao)
	gl.DeleteBuffers(1, &sb.vbo)
	sb.shader.Destroy()
}
