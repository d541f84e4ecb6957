package opengl

import gl "github.com/go-gl/gl/v4.1-core/gl"

// FullscreenQuad draws a screen-covering triangle for post-processing
// passes. The vertex positions come from gl_VertexID in the pass vertex
// shader, so only an empty VAO is needed (core profile requires one bound).
type FullscreenQuad struct {
	vao uint32
}

// NewFullscreenQuad creates the empty VAO.
func NewFullscreenQuad() *FullscreenQuad {
	q := &FullscreenQuad{}
	gl.GenVertexArrays(1, &q.vao)
	return q
}

// Draw issues the fullscreen triangle. The caller binds the pass shader and
// its inputs first.
func (q *FullscreenQuad) Draw() {
	gl.BindVertexArray(q.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)
}

// Destroy deletes the VAO.
func (q *FullscreenQuad) Destroy() {
	if q == nil || q.vao == 0 {
		return
	}
	gl.DeleteVertexArrays(1, &q.vao)
	q.vao = 0
}
