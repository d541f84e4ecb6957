package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"pbr-engine/opengl"
	"pbr-engine/scene"
)

// cameraBillboardAxes extracts the world-space right and up axes from a
// view matrix. They are the first two rows: the view matrix maps world to
// camera space, so its rows are the camera basis vectors in world space.
func cameraBillboardAxes(view mgl32.Mat4) (right, up mgl32.Vec3) {
	right = mgl32.Vec3{view.At(0, 0), view.At(0, 1), view.At(0, 2)}
	up = mgl32.Vec3{view.At(1, 0), view.At(1, 1), view.At(1, 2)}
	return right, up
}

// buildParticleQuads expands live particles into camera-facing quads, two
// triangles each, interleaved as position(3), uv(2), color(4). The quad
// spans particle size along the camera right and up axes.
func buildParticleQuads(particles []scene.Particle, right, up mgl32.Vec3) []float32 {
	const vertsPerParticle = 6
	buf := make([]float32, 0, len(particles)*vertsPerParticle*opengl.ParticleFloatsPerVertex)

	push := func(p mgl32.Vec3, u, v float32, c [4]float32) {
		buf = append(buf, p.X(), p.Y(), p.Z(), u, v, c[0], c[1], c[2], c[3])
	}

	for i := range particles {
		p := &particles[i]
		c := [4]float32{p.Color.R, p.Color.G, p.Color.B, p.Color.A}
		r := right.Mul(p.Size)
		u := up.Mul(p.Size)

		bl := p.Position.Sub(r).Sub(u)
		br := p.Position.Add(r).Sub(u)
		tl := p.Position.Sub(r).Add(u)
		tr := p.Position.Add(r).Add(u)

		push(tl, 0, 1, c)
		push(tr, 1, 1, c)
		push(br, 1, 0, c)

		push(tl, 0, 1, c)
		push(br, 1, 0, c)
		push(bl, 0, 0, c)
	}
	return buf
}

// renderParticles draws every emitter in the scene as billboards into the
// currently bound framebuffer. Runs after the skybox so particles blend
// over the sky, and before outlines so selections stay on top.
func (r *SceneRenderer) renderParticles(sc *scene.Scene, cam *scene.Camera) {
	if r.particles == nil {
		return
	}
	emitters := sc.Emitters()
	if len(emitters) == 0 {
		return
	}

	view := cam.ViewMatrix()
	viewProjection := cam.ProjectionMatrix().Mul4(view)
	right, up := cameraBillboardAxes(view)

	for _, e := range emitters {
		if e.Count() == 0 {
			continue
		}
		verts := buildParticleQuads(e.Particles, right, up)
		r.particles.Draw(verts, viewProjection, e.BlendMode == scene.BlendAdditive)
	}
}
