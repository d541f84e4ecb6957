package scene

import (
	"pbr-engine/core"
	"pbr-engine/opengl"
)

// SceneObject is one drawable entry in a scene: a mesh reference plus the
// per-object surface and placement state the render paths consume.
type SceneObject struct {
	Name      string
	Mesh      *Mesh
	Transform core.Transform

	// Color multiplies the albedo; an alpha below 1 routes the object
	// through the sorted transparent pass.
	Color     core.Color
	Roughness float32
	Metallic  float32

	// Texture is an optional albedo map; nil means flat color.
	Texture *opengl.Texture

	// InstanceCount above one draws the mesh that many times in a single
	// instanced call; the lit shader fans instances out into an 8-wide
	// grid anchored at this object's transform.
	InstanceCount int

	// Inactive objects are skipped by every pass.
	Active bool
}

// NewSceneObject returns an object with engine defaults: white opaque
// color, dielectric with mid roughness, active.
func NewSceneObject(name string, mesh *Mesh) *SceneObject {
	return &SceneObject{
		Name:      name,
		Mesh:      mesh,
		Transform: core.NewTransform(),
		Color:     core.ColorWhite,
		Roughness: 0.5,
		Metallic:  0,
		Active:    true,
	}
}

// IsTransparent reports whether the object renders in the blended pass.
func (o *SceneObject) IsTransparent() bool {
	return o.Color.A < 1
}
