package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"pbr-engine/core"
	"pbr-engine/internal/logger"
)

// Renderer is the single entry point for GL draw and state commands. Render
// passes go through it instead of calling gl directly, which keeps state
// changes auditable and the viewport stack coherent.
type Renderer struct {
	viewportStack []core.Viewport
}

// NewRenderer loads the OpenGL function pointers for the current context
// and applies the engine's baseline state (depth testing on, LESS).
func NewRenderer() (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	vendor := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Log.Info("opengl context ready",
		zap.String("version", version), zap.String("renderer", vendor))

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	return &Renderer{}, nil
}

// ── Clearing ──────────────────────────────────────────────────────────────────

// Clear wipes color, depth and stencil buffers with the given color.
func (r *Renderer) Clear(c core.Color) {
	gl.ClearColor(c.R, c.G, c.B, c.A)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)
}

// ClearDepth wipes only the depth buffer.
func (r *Renderer) ClearDepth() {
	gl.Clear(gl.DEPTH_BUFFER_BIT)
}

// ClearStencil wipes only the stencil buffer.
func (r *Renderer) ClearStencil() {
	gl.Clear(gl.STENCIL_BUFFER_BIT)
}

// ── Viewport ──────────────────────────────────────────────────────────────────

func (r *Renderer) SetViewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

// PushViewport saves the current GL viewport so a pass can change it and
// restore it afterwards with PopViewport.
func (r *Renderer) PushViewport() {
	var vp [4]int32
	gl.GetIntegerv(gl.VIEWPORT, &vp[0])
	r.viewportStack = append(r.viewportStack, core.Viewport{
		X: vp[0], Y: vp[1], Width: vp[2], Height: vp[3],
	})
}

// PopViewport restores the most recently pushed viewport.
func (r *Renderer) PopViewport() {
	if len(r.viewportStack) == 0 {
		logger.Log.Warn("PopViewport called with empty stack")
		return
	}
	vp := r.viewportStack[len(r.viewportStack)-1]
	r.viewportStack = r.viewportStack[:len(r.viewportStack)-1]
	gl.Viewport(vp.X, vp.Y, vp.Width, vp.Height)
}

// ── Drawing ───────────────────────────────────────────────────────────────────

// Draw issues an indexed triangle draw for the vertex array.
func (r *Renderer) Draw(va *VertexArray) {
	va.Bind()
	gl.DrawElements(gl.TRIANGLES, va.IndexCount(), gl.UNSIGNED_INT, nil)
	va.Unbind()
}

// DrawInstanced issues the same draw count times; the shader distinguishes
// instances via gl_InstanceID.
func (r *Renderer) DrawInstanced(va *VertexArray, count int) {
	va.Bind()
	gl.DrawElementsInstanced(gl.TRIANGLES, va.IndexCount(), gl.UNSIGNED_INT, nil, int32(count))
	va.Unbind()
}

// ── Depth state ───────────────────────────────────────────────────────────────

func (r *Renderer) EnableDepthTest() {
	gl.Enable(gl.DEPTH_TEST)
}

func (r *Renderer) DisableDepthTest() {
	gl.Disable(gl.DEPTH_TEST)
}

// DepthTestEnabled queries the current GL depth test toggle.
func (r *Renderer) DepthTestEnabled() bool {
	return gl.IsEnabled(gl.DEPTH_TEST)
}

// SetDepthFunc sets the depth comparison (gl.LESS, gl.LEQUAL, ...).
func (r *Renderer) SetDepthFunc(fn uint32) {
	gl.DepthFunc(fn)
}

// SetDepthMask toggles depth buffer writes.
func (r *Renderer) SetDepthMask(write bool) {
	gl.DepthMask(write)
}

// ── Stencil state ─────────────────────────────────────────────────────────────

func (r *Renderer) EnableStencilTest() {
	gl.Enable(gl.STENCIL_TEST)
}

func (r *Renderer) DisableStencilTest() {
	gl.Disable(gl.STENCIL_TEST)
}

func (r *Renderer) SetStencilFunc(fn uint32, ref int32, mask uint32) {
	gl.StencilFunc(fn, ref, mask)
}

func (r *Renderer) SetStencilOp(sfail, dpfail, dppass uint32) {
	gl.StencilOp(sfail, dpfail, dppass)
}

func (r *Renderer) SetStencilMask(mask uint32) {
	gl.StencilMask(mask)
}

// ── Blending ──────────────────────────────────────────────────────────────────

func (r *Renderer) EnableBlending() {
	gl.Enable(gl.BLEND)
}

func (r *Renderer) DisableBlending() {
	gl.Disable(gl.BLEND)
}

func (r *Renderer) SetBlendFunc(src, dst uint32) {
	gl.BlendFunc(src, dst)
}

// ── Polygon offset ────────────────────────────────────────────────────────────

// EnablePolygonOffset biases depth values of filled polygons, used by the
// shadow pass to push occluder depth away from the surface.
func (r *Renderer) EnablePolygonOffset(factor, units float32) {
	gl.Enable(gl.POLYGON_OFFSET_FILL)
	gl.PolygonOffset(factor, units)
}

func (r *Renderer) DisablePolygonOffset() {
	gl.Disable(gl.POLYGON_OFFSET_FILL)
}
