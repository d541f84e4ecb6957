package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// Texture3D is a volume texture, used by color grading as a 3D lookup
// table: the fragment color indexes the volume and the stored texel is the
// graded color.
type Texture3D struct {
	handle uint32
	size   int
}

// NewTexture3D uploads a size^3 RGB float volume.
func NewTexture3D(size int, data []float32) (*Texture3D, error) {
	if size <= 0 {
		return nil, fmt.Errorf("texture3d: invalid size %d", size)
	}
	if len(data) < size*size*size*3 {
		return nil, fmt.Errorf("texture3d: %d floats for size %d (need %d)",
			len(data), size, size*size*size*3)
	}
	t := &Texture3D{size: size}
	gl.GenTextures(1, &t.handle)
	gl.BindTexture(gl.TEXTURE_3D, t.handle)
	gl.TexImage3D(gl.TEXTURE_3D, 0, gl.RGB16F,
		int32(size), int32(size), int32(size), 0, gl.RGB, gl.FLOAT, gl.Ptr(data))
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_3D, 0)
	return t, nil
}

// NewNeutralLUT creates an identity color grading LUT: every input color
// maps to itself, so applying it changes nothing. Useful as a starting
// point for grading and for validating the LUT sampling path.
func NewNeutralLUT(size int) (*Texture3D, error) {
	if size <= 0 {
		return nil, fmt.Errorf("neutral lut: invalid size %d", size)
	}
	return NewTexture3D(size, neutralLUTData(size))
}

// neutralLUTData fills a size^3 RGB volume where texel (r,g,b) stores the
// normalized coordinate itself. A single-texel LUT stores black rather
// than dividing by zero.
func neutralLUTData(size int) []float32 {
	data := make([]float32, size*size*size*3)
	denom := float32(1)
	if size > 1 {
		denom = float32(size - 1)
	}
	for b := 0; b < size; b++ {
		for g := 0; g < size; g++ {
			for r := 0; r < size; r++ {
				idx := (b*size*size + g*size + r) * 3
				data[idx] = float32(r) / denom
				data[idx+1] = float32(g) / denom
				data[idx+2] = float32(b) / denom
			}
		}
	}
	return data
}

// Bind makes the volume active on the given texture unit.
func (t *Texture3D) Bind(slot int) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(slot))
	gl.BindTexture(gl.TEXTURE_3D, t.handle)
}

// Size returns the edge length of the volume.
func (t *Texture3D) Size() int {
	return t.size
}

// Destroy deletes the GL texture.
func (t *Texture3D) Destroy() {
	if t == nil || t.handle == 0 {
		return
	}
	gl.DeleteTextures(1, &t.handle)
	t.handle = 0
}
