package scene

import "github.com/go-gl/mathgl/mgl32"

// Camera is a perspective look-at camera. View and projection matrices are
// cached and rebuilt only after a setter invalidates them.
type Camera struct {
	position mgl32.Vec3
	target   mgl32.Vec3
	up       mgl32.Vec3

	fovY   float32 // radians
	aspect float32
	near   float32
	far    float32

	view       mgl32.Mat4
	projection mgl32.Mat4
	viewDirty  bool
	projDirty  bool
}

// NewCamera builds a camera at (0,0,5) looking at the origin. fovYDegrees
// is the vertical field of view.
func NewCamera(fovYDegrees, aspect, near, far float32) *Camera {
	return &Camera{
		position:  mgl32.Vec3{0, 0, 5},
		target:    mgl32.Vec3{0, 0, 0},
		up:        mgl32.Vec3{0, 1, 0},
		fovY:      mgl32.DegToRad(fovYDegrees),
		aspect:    aspect,
		near:      near,
		far:       far,
		viewDirty: true,
		projDirty: true,
	}
}

// SetPosition moves the camera eye point.
func (c *Camera) SetPosition(pos mgl32.Vec3) {
	c.position = pos
	c.viewDirty = true
}

// Position returns the camera eye point.
func (c *Camera) Position() mgl32.Vec3 {
	return c.position
}

// LookAt aims the camera at a target with the given up hint.
func (c *Camera) LookAt(target, up mgl32.Vec3) {
	c.target = target
	c.up = up
	c.viewDirty = true
}

// Target returns the current look-at point.
func (c *Camera) Target() mgl32.Vec3 {
	return c.target
}

// UpdateAspectRatio recomputes the projection for a new framebuffer size.
// Zero or negative sizes are ignored.
func (c *Camera) UpdateAspectRatio(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.aspect = float32(width) / float32(height)
	c.projDirty = true
}

// ViewMatrix returns the world-to-view transform.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	if c.viewDirty {
		c.view = mgl32.LookAtV(c.position, c.target, c.up)
		c.viewDirty = false
	}
	return c.view
}

// ProjectionMatrix returns the perspective projection.
func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	if c.projDirty {
		c.projection = mgl32.Perspective(c.fovY, c.aspect, c.near, c.far)
		c.projDirty = false
	}
	return c.projection
}

// Forward returns the unit vector from the eye toward the target.
func (c *Camera) Forward() mgl32.Vec3 {
	return c.target.Sub(c.position).Normalize()
}
