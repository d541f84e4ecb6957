package opengl

import (
	"fmt"
	"math"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"pbr-engine/core"
)

// Image-based lighting maps for the gradient sky. All three maps are
// computed on the CPU at startup: the environment is an analytic vertical
// gradient, so convolving it does not need capture framebuffers.

// NewGradientCubemap builds an RGB16F cubemap of the gradient sky with a
// full mip chain. Sampled with textureLod it doubles as the prefiltered
// specular map: higher mips stand in for rougher reflections.
func NewGradientCubemap(zenith, horizon, ground core.Color, size int) (*Texture, error) {
	if size <= 0 {
		return nil, fmt.Errorf("gradient cubemap: invalid size %d", size)
	}
	t := &Texture{target: gl.TEXTURE_CUBE_MAP, width: size, height: size}
	gl.GenTextures(1, &t.handle)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, t.handle)

	for face := 0; face < 6; face++ {
		data := make([]float32, size*size*3)
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				dir := cubeFaceDirection(face, x, y, size)
				c := skyGradient(dir, zenith.Vec3(), horizon.Vec3(), ground.Vec3())
				idx := (y*size + x) * 3
				data[idx] = c.X()
				data[idx+1] = c.Y()
				data[idx+2] = c.Z()
			}
		}
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(face), 0, gl.RGB16F,
			int32(size), int32(size), 0, gl.RGB, gl.FLOAT, gl.Ptr(data))
	}

	gl.GenerateMipmap(gl.TEXTURE_CUBE_MAP)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return t, nil
}

// NewIrradianceCubemap convolves the gradient sky with a cosine-weighted
// hemisphere per texel. Small sizes (16-32) suffice; irradiance varies
// slowly.
func NewIrradianceCubemap(zenith, horizon, ground core.Color, size int) (*Texture, error) {
	if size <= 0 {
		return nil, fmt.Errorf("irradiance cubemap: invalid size %d", size)
	}
	t := &Texture{target: gl.TEXTURE_CUBE_MAP, width: size, height: size}
	gl.GenTextures(1, &t.handle)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, t.handle)

	for face := 0; face < 6; face++ {
		data := make([]float32, size*size*3)
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				n := cubeFaceDirection(face, x, y, size)
				c := convolveIrradiance(n, zenith.Vec3(), horizon.Vec3(), ground.Vec3())
				idx := (y*size + x) * 3
				data[idx] = c.X()
				data[idx+1] = c.Y()
				data[idx+2] = c.Z()
			}
		}
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(face), 0, gl.RGB16F,
			int32(size), int32(size), 0, gl.RGB, gl.FLOAT, gl.Ptr(data))
	}

	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return t, nil
}

// NewBRDFLUT fills an RG16F lookup of the split-sum environment BRDF using
// the analytic approximation, indexed by (N.V, roughness).
func NewBRDFLUT(size int) (*Texture, error) {
	if size <= 0 {
		return nil, fmt.Errorf("brdf lut: invalid size %d", size)
	}
	data := brdfLUTData(size)

	t := &Texture{target: gl.TEXTURE_2D, width: size, height: size}
	gl.GenTextures(1, &t.handle)
	gl.BindTexture(gl.TEXTURE_2D, t.handle)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RG16F,
		int32(size), int32(size), 0, gl.RG, gl.FLOAT, gl.Ptr(data))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t, nil
}

// ── CPU evaluation ────────────────────────────────────────────────────────────

// cubeFaceDirection maps a texel of a cubemap face to its unit direction,
// following the GL cubemap orientation convention. face is 0..5 in
// +X,-X,+Y,-Y,+Z,-Z order.
func cubeFaceDirection(face, x, y, size int) mgl32.Vec3 {
	u := 2*(float32(x)+0.5)/float32(size) - 1
	v := 2*(float32(y)+0.5)/float32(size) - 1

	var dir mgl32.Vec3
	switch face {
	case 0:
		dir = mgl32.Vec3{1, -v, -u}
	case 1:
		dir = mgl32.Vec3{-1, -v, u}
	case 2:
		dir = mgl32.Vec3{u, 1, v}
	case 3:
		dir = mgl32.Vec3{u, -1, -v}
	case 4:
		dir = mgl32.Vec3{u, -v, 1}
	default:
		dir = mgl32.Vec3{-u, -v, -1}
	}
	return dir.Normalize()
}

// skyGradient evaluates the same vertical gradient the skybox shader draws,
// so reflections and the visible sky agree.
func skyGradient(dir, zenith, horizon, ground mgl32.Vec3) mgl32.Vec3 {
	t := dir.Y()
	if t >= 0 {
		k := float32(math.Pow(float64(t), 0.4))
		return lerpVec3(horizon, zenith, k)
	}
	k := -t * 3
	if k > 1 {
		k = 1
	}
	return lerpVec3(horizon, ground, k)
}

func lerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}

// convolveIrradiance integrates the gradient over the cosine-weighted
// hemisphere around n. Sample counts are fixed; the integrand is smooth.
func convolveIrradiance(n, zenith, horizon, ground mgl32.Vec3) mgl32.Vec3 {
	const phiSteps, thetaSteps = 32, 8

	up := mgl32.Vec3{0, 1, 0}
	if abs32(n.Y()) > 0.999 {
		up = mgl32.Vec3{0, 0, 1}
	}
	right := up.Cross(n).Normalize()
	up = n.Cross(right)

	var sum mgl32.Vec3
	count := 0
	for p := 0; p < phiSteps; p++ {
		phi := 2 * math.Pi * float64(p) / phiSteps
		for q := 0; q < thetaSteps; q++ {
			theta := 0.5 * math.Pi * float64(q) / thetaSteps
			sinT, cosT := float32(math.Sin(theta)), float32(math.Cos(theta))
			cosP, sinP := float32(math.Cos(phi)), float32(math.Sin(phi))

			sample := right.Mul(sinT * cosP).
				Add(up.Mul(sinT * sinP)).
				Add(n.Mul(cosT))
			sum = sum.Add(skyGradient(sample, zenith, horizon, ground).Mul(cosT * sinT))
			count++
		}
	}
	return sum.Mul(math.Pi / float32(count))
}

// envBRDFApprox is the analytic fit to the split-sum environment BRDF
// integral: returns the (scale, bias) pair applied to F0.
func envBRDFApprox(nDotV, roughness float32) (float32, float32) {
	c0 := mgl32.Vec4{-1, -0.0275, -0.572, 0.022}
	c1 := mgl32.Vec4{1, 0.0425, 1.04, -0.04}
	r := c0.Mul(roughness).Add(c1)

	e := float32(math.Exp2(float64(-9.28 * nDotV)))
	a004 := min32(r.X()*r.X(), e)*r.X() + r.Y()
	return -1.04*a004 + r.Z(), 1.04*a004 + r.W()
}

func brdfLUTData(size int) []float32 {
	data := make([]float32, size*size*2)
	for y := 0; y < size; y++ {
		roughness := (float32(y) + 0.5) / float32(size)
		for x := 0; x < size; x++ {
			nDotV := (float32(x) + 0.5) / float32(size)
			a, b := envBRDFApprox(nDotV, roughness)
			idx := (y*size + x) * 2
			data[idx] = a
			data[idx+1] = b
		}
	}
	return data
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
