package scene

import "github.com/go-gl/mathgl/mgl32"

// DirectionalLight is an infinitely distant light such as the sun. Only
// the direction and diffuse color reach the shaders; the direction also
// drives the shadow pass.
type DirectionalLight struct {
	Direction mgl32.Vec3
	Color     mgl32.Vec3
}

// NewDirectionalLight returns the default sun: slightly tilted, warm gray.
func NewDirectionalLight() *DirectionalLight {
	return &DirectionalLight{
		Direction: mgl32.Vec3{-0.2, -1, -0.3},
		Color:     mgl32.Vec3{0.8, 0.8, 0.8},
	}
}

// NormalizedDirection returns the unit light direction. A zero direction
// falls back to straight down instead of producing NaNs.
func (l *DirectionalLight) NormalizedDirection() mgl32.Vec3 {
	if l.Direction.LenSqr() < 1e-6 {
		return mgl32.Vec3{0, -1, 0}
	}
	return l.Direction.Normalize()
}

// PointLight is a local light with position and color. Falloff is computed
// in the shader from distance.
type PointLight struct {
	Position mgl32.Vec3
	Color    mgl32.Vec3
}

// Lights is the per-frame snapshot handed to the renderer. It is read for
// the duration of one Render call and never retained, so the application
// stays the owner of the light data.
type Lights struct {
	Directional *DirectionalLight
	Points      []PointLight
}
