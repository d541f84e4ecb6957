// Package editor provides interactive scene tooling on top of the engine:
// mouse picking, selection, an undo/redo command history and orbit camera
// controls. It holds no GPU state; the demo wires the active selection into
// the renderer's outline.
package editor

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"pbr-engine/scene"
)

// Ray is a world-space ray with unit direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// HitResult describes the closest intersection found by PickObject.
// ObjectIndex is the scene index of the hit object, -1 when nothing was
// hit. Triangle is the index of the hit triangle within the object's mesh.
type HitResult struct {
	Hit         bool
	Distance    float32
	Point       mgl32.Vec3
	Normal      mgl32.Vec3
	ObjectIndex int
	Triangle    int
}

// ScreenToRay converts a cursor position to a world-space ray through that
// pixel. Coordinates are in the window space CursorPos reports, with the
// origin at the top-left.
func ScreenToRay(mouseX, mouseY, screenWidth, screenHeight float32, cam *scene.Camera) Ray {
	ndcX := (2.0*mouseX)/screenWidth - 1.0
	ndcY := 1.0 - (2.0*mouseY)/screenHeight

	invVP := cam.ProjectionMatrix().Mul4(cam.ViewMatrix()).Inv()

	// Unproject a point on the near plane and aim from the eye through it.
	near := invVP.Mul4x1(mgl32.Vec4{ndcX, ndcY, -1.0, 1.0})
	nearWorld := near.Vec3().Mul(1.0 / near.W())

	return Ray{
		Origin:    cam.Position(),
		Direction: nearWorld.Sub(cam.Position()).Normalize(),
	}
}

// PickObject tests the ray against every active object and returns the
// closest triangle hit. Bounds are tested first so most objects never reach
// the triangle loop. Instanced objects are picked by their anchor mesh
// only; shader-placed copies are not hit-testable on the CPU.
func PickObject(ray Ray, s *scene.Scene) HitResult {
	closest := HitResult{Distance: float32(math.MaxFloat32), ObjectIndex: -1, Triangle: -1}

	for i, obj := range s.Objects() {
		if !obj.Active || obj.Mesh == nil {
			continue
		}
		model := obj.Transform.ModelMatrix()
		box := obj.Mesh.Bounds().Transformed(model)

		t, hit := rayAABB(ray, box)
		if !hit || t > closest.Distance {
			continue
		}

		if result := rayMesh(ray, obj.Mesh, model); result.Hit && result.Distance < closest.Distance {
			result.ObjectIndex = i
			closest = result
		}
	}
	return closest
}

// rayAABB is the slab test. Division by a zero direction component yields
// IEEE infinities, which the min/max comparisons handle correctly, so no
// epsilon guard is needed.
func rayAABB(ray Ray, box scene.AABB) (float32, bool) {
	var tmin, tmax float32 = -float32(math.MaxFloat32), float32(math.MaxFloat32)
	for axis := 0; axis < 3; axis++ {
		inv := 1.0 / ray.Direction[axis]
		t1 := (box.Min[axis] - ray.Origin[axis]) * inv
		t2 := (box.Max[axis] - ray.Origin[axis]) * inv
		tmin = max(tmin, min(t1, t2))
		tmax = min(tmax, max(t1, t2))
	}
	if tmax < 0 || tmin > tmax {
		return 0, false
	}
	return tmin, true
}

// rayMesh intersects the ray with every triangle of the mesh in world
// space and keeps the closest hit.
func rayMesh(ray Ray, mesh *scene.Mesh, model mgl32.Mat4) HitResult {
	closest := HitResult{Distance: float32(math.MaxFloat32), ObjectIndex: -1, Triangle: -1}

	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		v0 := model.Mul4x1(mesh.Vertices[mesh.Indices[i]].Position.Vec4(1)).Vec3()
		v1 := model.Mul4x1(mesh.Vertices[mesh.Indices[i+1]].Position.Vec4(1)).Vec3()
		v2 := model.Mul4x1(mesh.Vertices[mesh.Indices[i+2]].Position.Vec4(1)).Vec3()

		t, hit := mollerTrumbore(ray, v0, v1, v2)
		if hit && t < closest.Distance {
			closest.Hit = true
			closest.Distance = t
			closest.Point = ray.Origin.Add(ray.Direction.Mul(t))
			closest.Normal = v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
			closest.Triangle = i / 3
		}
	}
	return closest
}

// mollerTrumbore returns the ray parameter of the triangle intersection.
// Back faces count as hits so picking works from inside open meshes.
func mollerTrumbore(ray Ray, v0, v1, v2 mgl32.Vec3) (float32, bool) {
	const epsilon = 1e-7

	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)
	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if a > -epsilon && a < epsilon {
		return 0, false
	}

	f := 1.0 / a
	s := ray.Origin.Sub(v0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return 0, false
	}

	t := f * edge2.Dot(q)
	return t, t > epsilon
}
