package material

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"pbr-engine/internal/logger"
	"pbr-engine/opengl"
)

// Factory compiles the engine's built-in shaders once and hands out
// materials that share them. Measured albedo values for the metal presets
// come from published reflectance tables.
type Factory struct {
	litShader     *opengl.Shader
	outlineShader *opengl.Shader
}

// NewFactory compiles the default lit and outline shaders. Failure to
// compile the lit shader is fatal; a broken outline shader only disables
// outlines.
func NewFactory() (*Factory, error) {
	lit, err := opengl.NewShader("defaultlit", defaultLitVertexSrc, defaultLitFragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("material factory: %w", err)
	}

	outline, err := opengl.NewShader("outline", outlineVertexSrc, outlineFragmentSrc)
	if err != nil {
		logger.Log.Error("outline shader unavailable, outlines disabled", zap.Error(err))
		outline = nil
	}

	return &Factory{litShader: lit, outlineShader: outline}, nil
}

// LitShader returns the shared PBR shader.
func (f *Factory) LitShader() *opengl.Shader {
	return f.litShader
}

// OutlineShader returns the flat-color outline shader, or nil if it failed
// to compile.
func (f *Factory) OutlineShader() *opengl.Shader {
	return f.outlineShader
}

// CreatePBR returns a fresh PBR material on the shared lit shader.
func (f *Factory) CreatePBR(name string) *PBRMaterial {
	return NewPBR(f.litShader, name)
}

// ── Presets ───────────────────────────────────────────────────────────────────

func (f *Factory) Gold() *PBRMaterial {
	m := f.CreatePBR("gold")
	m.SetAlbedo(mgl32.Vec3{1.0, 0.766, 0.336})
	m.SetMetallic(1.0)
	m.SetRoughness(0.3)
	return m
}

func (f *Factory) Chrome() *PBRMaterial {
	m := f.CreatePBR("chrome")
	m.SetAlbedo(mgl32.Vec3{0.95, 0.95, 0.95})
	m.SetMetallic(1.0)
	m.SetRoughness(0.1)
	return m
}

func (f *Factory) Copper() *PBRMaterial {
	m := f.CreatePBR("copper")
	m.SetAlbedo(mgl32.Vec3{0.955, 0.637, 0.538})
	m.SetMetallic(1.0)
	m.SetRoughness(0.35)
	return m
}

func (f *Factory) Plastic(color mgl32.Vec3) *PBRMaterial {
	m := f.CreatePBR("plastic")
	m.SetAlbedo(color)
	m.SetMetallic(0.0)
	m.SetRoughness(0.5)
	return m
}

// Destroy releases the shared shaders. Materials created by this factory
// must not be bound afterwards.
func (f *Factory) Destroy() {
	f.litShader.Destroy()
	f.outlineShader.Destroy()
}
