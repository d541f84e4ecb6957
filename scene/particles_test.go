package scene

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pbr-engine/core"
)

func TestEmitterSpawnsAtRate(t *testing.T) {
	e := NewParticleEmitter(1000)
	e.Rate = 100

	e.Update(0.5)
	assert.Equal(t, 50, e.Count())

	e.Update(0.5)
	assert.Equal(t, 100, e.Count(), "no particle dies within MinLife")
}

func TestEmitterAccumulatesFractionalSpawns(t *testing.T) {
	e := NewParticleEmitter(100)
	e.Rate = 10
	e.MinLife = 10
	e.MaxLife = 10

	// 10/s at 60 fps is a fraction per frame; over a full second the
	// accumulator must still produce the full count.
	for i := 0; i < 60; i++ {
		e.Update(1.0 / 60.0)
	}
	assert.InDelta(t, 10, e.Count(), 1)
}

func TestEmitterRespectsPoolLimit(t *testing.T) {
	e := NewParticleEmitter(16)
	e.Rate = 10000

	e.Update(1.0)
	assert.Equal(t, 16, e.Count())
	assert.LessOrEqual(t, cap(e.Particles), 16, "pool must not reallocate")
}

func TestEmitterInactiveStopsSpawning(t *testing.T) {
	e := NewParticleEmitter(100)
	e.Update(0.1)
	require.NotZero(t, e.Count())
	before := e.Count()

	e.Active = false
	e.Update(0.01)
	assert.LessOrEqual(t, e.Count(), before, "inactive emitters only lose particles")
}

func TestEmitterCompactsDeadParticles(t *testing.T) {
	e := NewParticleEmitter(100)
	e.MinLife = 0.2
	e.MaxLife = 0.2

	e.Update(0.1)
	require.NotZero(t, e.Count())

	e.Active = false
	e.Update(0.5)
	assert.Zero(t, e.Count(), "all particles outlived MaxLife")
}

func TestParticleFadesTowardEndColor(t *testing.T) {
	e := NewParticleEmitter(4)
	e.Rate = 1000
	e.MinLife = 1.0
	e.MaxLife = 1.0

	e.Update(0.001)
	require.NotZero(t, e.Count())
	e.Active = false

	e.Update(0.5)
	require.NotZero(t, e.Count())
	p := e.Particles[0]

	// Roughly halfway through its life the color sits between the two
	// endpoints.
	assert.Less(t, p.Color.R, e.StartColor.R)
	assert.Greater(t, p.Color.R, e.EndColor.R)
	assert.Less(t, p.Color.A, e.StartColor.A)
}

func TestParticleGravityIntegration(t *testing.T) {
	e := NewSmokeEmitter(4)
	e.Rate = 1000
	e.Gravity = mgl32.Vec3{0, 10, 0}
	e.MinSpeed = 0
	e.MaxSpeed = 0
	e.MinLife = 10
	e.MaxLife = 10

	e.Update(0.001)
	require.NotZero(t, e.Count())
	e.Active = false

	start := e.Particles[0].Position.Y()
	for i := 0; i < 100; i++ {
		e.Update(0.01)
	}
	assert.Greater(t, e.Particles[0].Position.Y(), start,
		"upward gravity must lift a stationary particle")
}

func TestRandomInConeStaysInsideSpread(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	axis := mgl32.Vec3{0, 1, 0}
	spread := float32(0.4)
	cosMin := float32(math.Cos(float64(spread)))

	for i := 0; i < 200; i++ {
		v := randomInCone(axis, spread, rng)
		assert.InDelta(t, 1.0, float64(v.Len()), 1e-5)
		assert.GreaterOrEqual(t, v.Dot(axis), cosMin-1e-5)
	}
}

func TestRandomInConeHandlesVerticalAxis(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	// Axis parallel to the default up vector exercises the fallback basis.
	v := randomInCone(mgl32.Vec3{0, -1, 0}, 0.3, rng)
	assert.InDelta(t, 1.0, float64(v.Len()), 1e-5)
	assert.Less(t, v.Y(), float32(0))
}

func TestLerpColorEndpoints(t *testing.T) {
	a := core.Color{R: 2.2, G: 1.2, B: 0.25, A: 1}
	b := core.Color{R: 0.8, G: 0.05, B: 0, A: 0}

	assert.Equal(t, a, lerpColor(a, b, 0))
	assert.Equal(t, b, lerpColor(a, b, 1))

	mid := lerpColor(a, b, 0.5)
	assert.InDelta(t, 1.5, float64(mid.R), 1e-5)
	assert.InDelta(t, 0.5, float64(mid.A), 1e-5)
}

func TestSceneUpdateEmitters(t *testing.T) {
	s := NewScene()
	fire := NewParticleEmitter(32)
	smoke := NewSmokeEmitter(32)
	s.AddEmitter(fire)
	s.AddEmitter(smoke)

	require.Len(t, s.Emitters(), 2)

	s.UpdateEmitters(0.25)
	assert.NotZero(t, fire.Count())
	assert.NotZero(t, smoke.Count())
}
