package main

import (
	"fmt"
	stdmath "math"

	"github.com/go-gl/mathgl/mgl32"

	"pbr-engine/core"
	"pbr-engine/opengl"
	"pbr-engine/render"
	"pbr-engine/scene"
)

// dayPalette holds the sky and light values for one key time of day.
type dayPalette struct {
	t            float32    // normalised time 0..1
	zenith       core.Color // sky overhead
	horizon      core.Color // sky at eye level
	ground       core.Color // sky below the horizon
	sunColor     core.Color
	sunIntensity float32
	ambient      core.Color // lower hemisphere bounce color
}

// palettes defines the key sky/light states throughout the day.
// t is ordered 0..1 and wraps (0 == 1).
var palettes = []dayPalette{
	{ // t 0.00: noon, bright midday
		t:            0.00,
		zenith:       core.Color{R: 0.20, G: 0.42, B: 0.90, A: 1},
		horizon:      core.Color{R: 0.58, G: 0.75, B: 0.95, A: 1},
		ground:       core.Color{R: 0.12, G: 0.10, B: 0.08, A: 1},
		sunColor:     core.Color{R: 1.00, G: 0.98, B: 0.92, A: 1},
		sunIntensity: 1.20,
		ambient:      core.Color{R: 0.16, G: 0.18, B: 0.26, A: 1},
	},
	{ // t 0.22: late afternoon, golden hour
		t:            0.22,
		zenith:       core.Color{R: 0.25, G: 0.35, B: 0.65, A: 1},
		horizon:      core.Color{R: 0.95, G: 0.65, B: 0.35, A: 1},
		ground:       core.Color{R: 0.14, G: 0.10, B: 0.07, A: 1},
		sunColor:     core.Color{R: 1.00, G: 0.75, B: 0.45, A: 1},
		sunIntensity: 0.95,
		ambient:      core.Color{R: 0.20, G: 0.15, B: 0.18, A: 1},
	},
	{ // t 0.30: dusk, sun below horizon
		t:            0.30,
		zenith:       core.Color{R: 0.08, G: 0.08, B: 0.22, A: 1},
		horizon:      core.Color{R: 0.45, G: 0.22, B: 0.30, A: 1},
		ground:       core.Color{R: 0.05, G: 0.04, B: 0.05, A: 1},
		sunColor:     core.Color{R: 0.80, G: 0.45, B: 0.35, A: 1},
		sunIntensity: 0.35,
		ambient:      core.Color{R: 0.10, G: 0.08, B: 0.14, A: 1},
	},
	{ // t 0.50: midnight, moonlight only
		t:            0.50,
		zenith:       core.Color{R: 0.01, G: 0.01, B: 0.04, A: 1},
		horizon:      core.Color{R: 0.03, G: 0.04, B: 0.08, A: 1},
		ground:       core.Color{R: 0.01, G: 0.01, B: 0.02, A: 1},
		sunColor:     core.Color{R: 0.40, G: 0.45, B: 0.65, A: 1},
		sunIntensity: 0.12,
		ambient:      core.Color{R: 0.03, G: 0.04, B: 0.08, A: 1},
	},
	{ // t 0.70: pre-dawn
		t:            0.70,
		zenith:       core.Color{R: 0.05, G: 0.06, B: 0.16, A: 1},
		horizon:      core.Color{R: 0.25, G: 0.18, B: 0.28, A: 1},
		ground:       core.Color{R: 0.03, G: 0.03, B: 0.04, A: 1},
		sunColor:     core.Color{R: 0.55, G: 0.45, B: 0.50, A: 1},
		sunIntensity: 0.20,
		ambient:      core.Color{R: 0.06, G: 0.06, B: 0.10, A: 1},
	},
	{ // t 0.78: sunrise
		t:            0.78,
		zenith:       core.Color{R: 0.18, G: 0.28, B: 0.55, A: 1},
		horizon:      core.Color{R: 0.95, G: 0.60, B: 0.40, A: 1},
		ground:       core.Color{R: 0.10, G: 0.08, B: 0.06, A: 1},
		sunColor:     core.Color{R: 1.00, G: 0.70, B: 0.50, A: 1},
		sunIntensity: 0.80,
		ambient:      core.Color{R: 0.14, G: 0.12, B: 0.16, A: 1},
	},
}

// DayNight advances a normalised time of day and retargets the sun, the
// skybox gradient and the ambient terms from interpolated palettes.
type DayNight struct {
	Time   float32 // 0..1, 0 = noon, 0.5 = midnight
	Speed  float32 // seconds for one full day
	Active bool
}

func NewDayNight() *DayNight {
	return &DayNight{Time: 0, Speed: 120, Active: false}
}

// Update advances the time of day. A full cycle takes Speed seconds.
func (dn *DayNight) Update(dt float32) {
	if !dn.Active || dn.Speed <= 0 {
		return
	}
	dn.Time += dt / dn.Speed
	for dn.Time >= 1 {
		dn.Time -= 1
	}
}

func lerpColor(a, b core.Color, t float32) core.Color {
	return core.Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: 1,
	}
}

// samplePalette interpolates between the two key palettes surrounding t.
// The keyframe list wraps, so the segment from the last entry back to the
// first covers the remainder of the night.
func samplePalette(t float32) dayPalette {
	n := len(palettes)
	for i := 0; i < n; i++ {
		a := palettes[i]
		b := palettes[(i+1)%n]
		bt := b.t
		tt := t
		if bt <= a.t { // wrapped segment
			bt += 1
			if tt < a.t {
				tt += 1
			}
		}
		if tt < a.t || tt > bt {
			continue
		}
		span := bt - a.t
		f := float32(0)
		if span > 0 {
			f = (tt - a.t) / span
		}
		return dayPalette{
			t:            t,
			zenith:       lerpColor(a.zenith, b.zenith, f),
			horizon:      lerpColor(a.horizon, b.horizon, f),
			ground:       lerpColor(a.ground, b.ground, f),
			sunColor:     lerpColor(a.sunColor, b.sunColor, f),
			sunIntensity: a.sunIntensity + (b.sunIntensity-a.sunIntensity)*f,
			ambient:      lerpColor(a.ambient, b.ambient, f),
		}
	}
	return palettes[0]
}

// Apply pushes the palette for the current time into the scene. The sun
// swings through a full circle per day: overhead at noon, below the world
// at midnight. Sun intensity is folded into the light color since the
// shaders take a premultiplied color. The baked IBL maps stay noon-colored,
// so only their intensity tracks the sun.
func (dn *DayNight) Apply(sr *render.SceneRenderer, sky *opengl.Skybox, sun *scene.DirectionalLight) {
	p := samplePalette(dn.Time)

	angle := float64(dn.Time * 2 * stdmath.Pi)
	sunDir := mgl32.Vec3{
		float32(stdmath.Sin(angle)),
		-float32(stdmath.Cos(angle)),
		0.35,
	}.Normalize()

	if sun != nil {
		sun.Direction = sunDir
		sun.Color = p.sunColor.Vec3().Mul(p.sunIntensity)
	}
	if sky != nil {
		sky.ZenithColor = p.zenith
		sky.HorizonColor = p.horizon
		sky.GroundColor = p.ground
	}
	if sr != nil {
		sr.SetLowerHemisphereColor(p.ambient.Vec3())
		sr.SetIBLIntensity(0.25 * p.sunIntensity)
		sr.SetClearColor(p.horizon)
	}
}

// TimeOfDayStr formats the current time as a 12-hour clock. Time 0 is noon.
func (dn *DayNight) TimeOfDayStr() string {
	hours := dn.Time*24 + 12
	if hours >= 24 {
		hours -= 24
	}
	h := int(hours)
	m := int((hours - float32(h)) * 60)
	ampm := "AM"
	h12 := h
	if h >= 12 {
		ampm = "PM"
		h12 = h - 12
	}
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%02d:%02d %s", h12, m, ampm)
}
