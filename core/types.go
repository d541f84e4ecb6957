package core

import "github.com/go-gl/mathgl/mgl32"

// ── Color ─────────────────────────────────────────────────────────────────────

// Color is an RGBA color with float32 components. Values are typically in
// [0, 1] but HDR colors above 1.0 are valid and survive until tone mapping.
type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite = Color{1, 1, 1, 1}
	ColorBlack = Color{0, 0, 0, 1}
	ColorRed   = Color{1, 0, 0, 1}
	ColorGreen = Color{0, 1, 0, 1}
	ColorBlue  = Color{0, 0, 1, 1}
)

// NewColor builds an opaque color from RGB components.
func NewColor(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// Vec3 returns the RGB components as a vector, dropping alpha.
func (c Color) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{c.R, c.G, c.B}
}

// Vec4 returns the full RGBA components as a vector.
func (c Color) Vec4() mgl32.Vec4 {
	return mgl32.Vec4{c.R, c.G, c.B, c.A}
}

// ── Vertex ────────────────────────────────────────────────────────────────────

// Vertex is the interleaved per-vertex layout shared by every mesh.
// Attribute locations: 0=Position, 1=Normal, 2=UV, 3=Color.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
	Color    mgl32.Vec4
}

// ── Transform ─────────────────────────────────────────────────────────────────

// Transform holds a position, Euler rotation (radians, applied X then Y then
// Z) and a non-uniform scale.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
}

// NewTransform returns an identity transform (zero position and rotation,
// unit scale).
func NewTransform() Transform {
	return Transform{Scale: mgl32.Vec3{1, 1, 1}}
}

// RotationDegrees returns the Euler rotation converted to degrees.
func (t *Transform) RotationDegrees() mgl32.Vec3 {
	return mgl32.Vec3{
		mgl32.RadToDeg(t.Rotation.X()),
		mgl32.RadToDeg(t.Rotation.Y()),
		mgl32.RadToDeg(t.Rotation.Z()),
	}
}

// SetRotationDegrees sets the Euler rotation from degrees.
func (t *Transform) SetRotationDegrees(deg mgl32.Vec3) {
	t.Rotation = mgl32.Vec3{
		mgl32.DegToRad(deg.X()),
		mgl32.DegToRad(deg.Y()),
		mgl32.DegToRad(deg.Z()),
	}
}

// ModelMatrix composes translate * rotateX * rotateY * rotateZ * scale.
func (t *Transform) ModelMatrix() mgl32.Mat4 {
	m := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	m = m.Mul4(mgl32.HomogRotate3DX(t.Rotation.X()))
	m = m.Mul4(mgl32.HomogRotate3DY(t.Rotation.Y()))
	m = m.Mul4(mgl32.HomogRotate3DZ(t.Rotation.Z()))
	return m.Mul4(mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
}

// ── Viewport ──────────────────────────────────────────────────────────────────

// Viewport is a pixel rectangle in window coordinates.
type Viewport struct {
	X, Y          int32
	Width, Height int32
}
