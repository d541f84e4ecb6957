package scene

import "github.com/go-gl/mathgl/mgl32"

// Plane is the half-space ax + by + cz + d >= 0. The normal points to the
// inside of the frustum.
type Plane struct {
	Normal mgl32.Vec3
	D      float32
}

// DistanceTo returns the signed distance from a point to the plane,
// positive on the inside.
func (p Plane) DistanceTo(pt mgl32.Vec3) float32 {
	return p.Normal.Dot(pt) + p.D
}

// Frustum holds the six clip planes of a view frustum in the order left,
// right, bottom, top, near, far.
type Frustum struct {
	Planes [6]Plane
}

// FrustumFromVP extracts the frustum planes from a projection*view matrix
// (Gribb/Hartmann). Planes are normalized so DistanceTo returns world
// units.
func FrustumFromVP(vp mgl32.Mat4) Frustum {
	row := func(i int) mgl32.Vec4 {
		return mgl32.Vec4{vp.At(i, 0), vp.At(i, 1), vp.At(i, 2), vp.At(i, 3)}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	var f Frustum
	f.Planes[0] = normalizePlane(r3.Add(r0)) // left
	f.Planes[1] = normalizePlane(r3.Sub(r0)) // right
	f.Planes[2] = normalizePlane(r3.Add(r1)) // bottom
	f.Planes[3] = normalizePlane(r3.Sub(r1)) // top
	f.Planes[4] = normalizePlane(r3.Add(r2)) // near
	f.Planes[5] = normalizePlane(r3.Sub(r2)) // far
	return f
}

func normalizePlane(v mgl32.Vec4) Plane {
	n := mgl32.Vec3{v.X(), v.Y(), v.Z()}
	l := n.Len()
	if l == 0 {
		return Plane{}
	}
	return Plane{Normal: n.Mul(1 / l), D: v.W() / l}
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max mgl32.Vec3
}

// Center returns the box midpoint.
func (box AABB) Center() mgl32.Vec3 {
	return box.Min.Add(box.Max).Mul(0.5)
}

// Transformed returns the axis-aligned box enclosing this box after
// applying m, by transforming all eight corners.
func (box AABB) Transformed(m mgl32.Mat4) AABB {
	mn, mx := box.Min, box.Max
	corners := [8]mgl32.Vec3{
		{mn.X(), mn.Y(), mn.Z()},
		{mx.X(), mn.Y(), mn.Z()},
		{mn.X(), mx.Y(), mn.Z()},
		{mx.X(), mx.Y(), mn.Z()},
		{mn.X(), mn.Y(), mx.Z()},
		{mx.X(), mn.Y(), mx.Z()},
		{mn.X(), mx.Y(), mx.Z()},
		{mx.X(), mx.Y(), mx.Z()},
	}

	first := m.Mul4x1(corners[0].Vec4(1)).Vec3()
	out := AABB{Min: first, Max: first}
	for i := 1; i < 8; i++ {
		p := m.Mul4x1(corners[i].Vec4(1)).Vec3()
		for axis := 0; axis < 3; axis++ {
			if p[axis] < out.Min[axis] {
				out.Min[axis] = p[axis]
			}
			if p[axis] > out.Max[axis] {
				out.Max[axis] = p[axis]
			}
		}
	}
	return out
}

// IntersectsFrustum reports whether any part of the box can be inside the
// frustum. Per plane it tests only the positive vertex, the corner most
// aligned with the plane normal; if that corner is outside, the whole box
// is.
func (box AABB) IntersectsFrustum(f *Frustum) bool {
	for i := range f.Planes {
		p := f.Planes[i]
		var positive mgl32.Vec3
		for axis := 0; axis < 3; axis++ {
			if p.Normal[axis] >= 0 {
				positive[axis] = box.Max[axis]
			} else {
				positive[axis] = box.Min[axis]
			}
		}
		if p.DistanceTo(positive) < 0 {
			return false
		}
	}
	return true
}
