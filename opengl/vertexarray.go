package opengl

import (
	"fmt"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"pbr-engine/core"
)

// VertexArray holds uploaded mesh geometry: a VAO with the engine's
// interleaved vertex layout plus the index buffer.
type VertexArray struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

// NewVertexArray uploads vertices and triangle indices to the GPU.
func NewVertexArray(vertices []core.Vertex, indices []uint32) (*VertexArray, error) {
	if len(vertices) == 0 {
		return nil, fmt.Errorf("vertex array: no vertices")
	}
	if len(indices) == 0 {
		return nil, fmt.Errorf("vertex array: no indices")
	}

	va := &VertexArray{indexCount: int32(len(indices))}

	gl.GenVertexArrays(1, &va.vao)
	gl.BindVertexArray(va.vao)

	gl.GenBuffers(1, &va.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, va.vbo)
	gl.BufferData(gl.ARRAY_BUFFER,
		len(vertices)*int(unsafe.Sizeof(core.Vertex{})), gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &va.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, va.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER,
		len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	var v core.Vertex
	stride := int32(unsafe.Sizeof(v))

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, unsafe.Offsetof(v.Position))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, unsafe.Offsetof(v.Normal))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, unsafe.Offsetof(v.UV))
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointerWithOffset(3, 4, gl.FLOAT, false, stride, unsafe.Offsetof(v.Color))

	gl.BindVertexArray(0)
	return va, nil
}

func (va *VertexArray) Bind() {
	gl.BindVertexArray(va.vao)
}

func (va *VertexArray) Unbind() {
	gl.BindVertexArray(0)
}

// IndexCount returns the number of indices to draw.
func (va *VertexArray) IndexCount() int32 {
	return va.indexCount
}

// Destroy deletes the VAO and its buffers.
func (va *VertexArray) Destroy() {
	if va == nil || va.vao == 0 {
		return
	}
	gl.DeleteBuffers(1, &va.vbo)
	gl.DeleteBuffers(1, &va.ebo)
	gl.DeleteVertexArrays(1, &va.vao)
	va.vao = 0
}
