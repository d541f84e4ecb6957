package scene

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"

	"pbr-engine/core"
)

// BlendMode selects how particle color composites with the scene.
type BlendMode int

const (
	// BlendAlpha is standard alpha blending, for smoke, dust and mist.
	BlendAlpha BlendMode = iota
	// BlendAdditive adds color onto the scene, for fire, sparks and glow.
	BlendAdditive
)

// Particle is one live particle. The renderer reads Position, Size and
// Color; everything else is simulation state.
type Particle struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	Life     float32
	MaxLife  float32
	Size     float32
	Color    core.Color
}

// ParticleEmitter spawns and simulates CPU-side particles. The emitter is
// pure simulation: Update advances it, and the render pipeline reads the
// Particles slice to build camera-facing billboards.
type ParticleEmitter struct {
	Position  mgl32.Vec3
	Direction mgl32.Vec3 // mean emission direction, unit length
	Spread    float32    // cone half-angle in radians

	Rate int // particles per second

	MinLife, MaxLife   float32
	MinSpeed, MaxSpeed float32
	MinSize, MaxSize   float32 // billboard half-size range

	// Color fades linearly from StartColor at birth to EndColor at death.
	// Values above one are fine; the HDR target keeps them and bloom picks
	// them up.
	StartColor core.Color
	EndColor   core.Color

	// Gravity is a constant acceleration; point it up for buoyant smoke.
	Gravity mgl32.Vec3

	BlendMode BlendMode

	// Inactive emitters stop spawning but let live particles finish.
	Active bool

	Particles []Particle

	pool       int
	spawnAccum float32
	rng        *rand.Rand
}

// NewParticleEmitter returns a fire-like emitter: fast, short-lived,
// additive, with an HDR start color so the flame core blooms.
func NewParticleEmitter(maxParticles int) *ParticleEmitter {
	return &ParticleEmitter{
		Direction:  mgl32.Vec3{0, 1, 0},
		Spread:     0.4,
		Rate:       80,
		MinLife:    0.6,
		MaxLife:    1.8,
		MinSpeed:   2.0,
		MaxSpeed:   5.0,
		MinSize:    0.06,
		MaxSize:    0.22,
		StartColor: core.Color{R: 2.2, G: 1.2, B: 0.25, A: 1.0},
		EndColor:   core.Color{R: 0.8, G: 0.05, B: 0.0, A: 0.0},
		Gravity:    mgl32.Vec3{0, 0.3, 0},
		BlendMode:  BlendAdditive,
		Active:     true,
		Particles:  make([]Particle, 0, maxParticles),
		pool:       maxParticles,
		rng:        rand.New(rand.NewSource(42)),
	}
}

// NewSmokeEmitter returns a slow, alpha-blended rising smoke emitter.
func NewSmokeEmitter(maxParticles int) *ParticleEmitter {
	return &ParticleEmitter{
		Direction:  mgl32.Vec3{0, 1, 0},
		Spread:     0.5,
		Rate:       20,
		MinLife:    2.0,
		MaxLife:    4.0,
		MinSpeed:   0.5,
		MaxSpeed:   1.5,
		MinSize:    0.15,
		MaxSize:    0.5,
		StartColor: core.Color{R: 0.3, G: 0.3, B: 0.3, A: 0.4},
		EndColor:   core.Color{R: 0.6, G: 0.6, B: 0.6, A: 0.0},
		Gravity:    mgl32.Vec3{0, 0.1, 0},
		BlendMode:  BlendAlpha,
		Active:     true,
		Particles:  make([]Particle, 0, maxParticles),
		pool:       maxParticles,
		rng:        rand.New(rand.NewSource(99)),
	}
}

// Update advances the simulation by dt seconds: spawns up to the pool
// limit, integrates velocity and position, fades color and size, and
// compacts dead particles in place.
func (e *ParticleEmitter) Update(dt float32) {
	if e.Active {
		e.spawnAccum += float32(e.Rate) * dt
		for e.spawnAccum >= 1.0 && len(e.Particles) < e.pool {
			e.spawnParticle()
			e.spawnAccum -= 1.0
		}
	}

	write := 0
	for i := range e.Particles {
		p := &e.Particles[i]
		p.Life -= dt
		if p.Life <= 0 {
			continue
		}
		p.Velocity = p.Velocity.Add(e.Gravity.Mul(dt))
		p.Position = p.Position.Add(p.Velocity.Mul(dt))

		// t runs 0 at birth to 1 at death.
		t := 1.0 - p.Life/p.MaxLife
		p.Color = lerpColor(e.StartColor, e.EndColor, t)
		p.Size = e.MinSize + (e.MaxSize-e.MinSize)*(1.0-t)

		e.Particles[write] = *p
		write++
	}
	e.Particles = e.Particles[:write]
}

// Count returns the number of live particles.
func (e *ParticleEmitter) Count() int { return len(e.Particles) }

func (e *ParticleEmitter) spawnParticle() {
	life := e.MinLife + e.rng.Float32()*(e.MaxLife-e.MinLife)
	speed := e.MinSpeed + e.rng.Float32()*(e.MaxSpeed-e.MinSpeed)
	dir := randomInCone(e.Direction, e.Spread, e.rng)
	e.Particles = append(e.Particles, Particle{
		Position: e.Position,
		Velocity: dir.Mul(speed),
		Life:     life,
		MaxLife:  life,
		Size:     e.MinSize,
		Color:    e.StartColor,
	})
}

// randomInCone returns a unit vector uniformly distributed over the
// spherical cap of half-angle spread around axis. Sampling cos(theta)
// uniformly in [cos(spread), 1] gives uniform area on the cap, so the
// distribution is not biased toward the pole.
func randomInCone(axis mgl32.Vec3, spread float32, rng *rand.Rand) mgl32.Vec3 {
	phi := rng.Float32() * 2.0 * float32(math.Pi)
	cosMin := float32(math.Cos(float64(spread)))
	cosTheta := cosMin + rng.Float32()*(1.0-cosMin)
	sinTheta := float32(math.Sqrt(float64(1.0 - cosTheta*cosTheta)))

	up := mgl32.Vec3{0, 1, 0}
	if math.Abs(float64(axis.Dot(up))) > 0.99 {
		up = mgl32.Vec3{1, 0, 0}
	}
	right := axis.Cross(up).Normalize()
	up = right.Cross(axis).Normalize()

	sinPhi := float32(math.Sin(float64(phi)))
	cosPhi := float32(math.Cos(float64(phi)))
	return axis.Mul(cosTheta).
		Add(right.Mul(sinTheta * cosPhi)).
		Add(up.Mul(sinTheta * sinPhi)).
		Normalize()
}

func lerpColor(a, b core.Color, t float32) core.Color {
	return core.Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}
