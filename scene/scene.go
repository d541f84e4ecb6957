// Package scene holds the world-side data the renderer consumes: objects,
// meshes, camera and lights. Nothing here issues GL calls except the lazy
// mesh upload.
package scene

// Scene is an ordered collection of objects. Indices are stable as long as
// nothing is removed, so they double as selection handles.
type Scene struct {
	objects  []*SceneObject
	emitters []*ParticleEmitter
}

// NewScene returns an empty scene.
func NewScene() *Scene {
	return &Scene{}
}

// Add appends an object and returns its index.
func (s *Scene) Add(obj *SceneObject) int {
	s.objects = append(s.objects, obj)
	return len(s.objects) - 1
}

// Object returns the object at index i, or nil when out of range.
func (s *Scene) Object(i int) *SceneObject {
	if i < 0 || i >= len(s.objects) {
		return nil
	}
	return s.objects[i]
}

// Objects returns the backing slice for iteration. Callers must not grow
// or shrink it.
func (s *Scene) Objects() []*SceneObject {
	return s.objects
}

// Size returns the number of objects.
func (s *Scene) Size() int {
	return len(s.objects)
}

// AddEmitter registers a particle emitter with the scene. The caller keeps
// driving its Update; the renderer only reads it.
func (s *Scene) AddEmitter(e *ParticleEmitter) {
	s.emitters = append(s.emitters, e)
}

// Emitters returns the registered particle emitters.
func (s *Scene) Emitters() []*ParticleEmitter {
	return s.emitters
}

// UpdateEmitters advances every emitter by dt seconds.
func (s *Scene) UpdateEmitters(dt float32) {
	for _, e := range s.emitters {
		e.Update(dt)
	}
}

// Destroy releases the GPU geometry of every mesh in the scene.
func (s *Scene) Destroy() {
	for _, obj := range s.objects {
		if obj.Mesh != nil {
			obj.Mesh.Destroy()
		}
	}
}
