package main

import (
	"fmt"
	stdmath "math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"pbr-engine/core"
	"pbr-engine/editor"
	"pbr-engine/internal/logger"
	"pbr-engine/material"
	"pbr-engine/opengl"
	"pbr-engine/render"
	"pbr-engine/scene"
)

const sceneFile = "demo_scene.json"

// applyPreset copies a preset material's surface parameters onto an object.
func applyPreset(obj *scene.SceneObject, preset *material.PBRMaterial, alpha float32) {
	albedo := preset.Albedo()
	obj.Color = core.Color{R: albedo.X(), G: albedo.Y(), B: albedo.Z(), A: alpha}
	obj.Metallic = preset.Metallic()
	obj.Roughness = preset.Roughness()
}

// buildScene assembles the demo set: a ground plane, a row of metal spheres,
// two rotating glass cubes and an instanced sphere field. The returned mesh
// map lets a reloaded scene snapshot bind back to live geometry.
func buildScene(s *scene.Scene, factory *material.Factory) (spinning []*scene.SceneObject, meshes map[string]*scene.Mesh) {
	sphereMesh := scene.CreateSphere(1.0, 32, 16)
	cubeMesh := scene.CreateCube(1.0)
	planeMesh := scene.CreatePlane(24, 24, 1)

	meshes = map[string]*scene.Mesh{
		sphereMesh.Name: sphereMesh,
		cubeMesh.Name:   cubeMesh,
		planeMesh.Name:  planeMesh,
	}

	ground := scene.NewSceneObject("Ground", planeMesh)
	ground.Transform.Position = mgl32.Vec3{0, -1, 0}
	ground.Color = core.Color{R: 0.3, G: 0.3, B: 0.35, A: 1}
	ground.Roughness = 0.9
	s.Add(ground)

	gold := scene.NewSceneObject("Gold Sphere", sphereMesh)
	gold.Transform.Position = mgl32.Vec3{-3, 0, 0}
	applyPreset(gold, factory.Gold(), 1)
	s.Add(gold)

	chrome := scene.NewSceneObject("Chrome Sphere", sphereMesh)
	chrome.Transform.Position = mgl32.Vec3{0, 0, 0}
	applyPreset(chrome, factory.Chrome(), 1)
	s.Add(chrome)

	copper := scene.NewSceneObject("Copper Sphere", sphereMesh)
	copper.Transform.Position = mgl32.Vec3{3, 0, 0}
	applyPreset(copper, factory.Copper(), 1)
	s.Add(copper)

	glassA := scene.NewSceneObject("Glass Cube A", cubeMesh)
	glassA.Transform.Position = mgl32.Vec3{-1.5, 0, 3.5}
	glassA.Transform.Scale = mgl32.Vec3{1.4, 1.4, 1.4}
	applyPreset(glassA, factory.Plastic(mgl32.Vec3{0.4, 0.7, 0.9}), 0.35)
	s.Add(glassA)
	spinning = append(spinning, glassA)

	glassB := scene.NewSceneObject("Glass Cube B", cubeMesh)
	glassB.Transform.Position = mgl32.Vec3{1.5, 0, 5}
	glassB.Transform.Scale = mgl32.Vec3{1.4, 1.4, 1.4}
	applyPreset(glassB, factory.Plastic(mgl32.Vec3{0.9, 0.5, 0.4}), 0.55)
	s.Add(glassB)
	spinning = append(spinning, glassB)

	field := scene.NewSceneObject("Sphere Field", sphereMesh)
	field.Transform.Position = mgl32.Vec3{-10, 0, -8}
	field.Transform.Scale = mgl32.Vec3{0.5, 0.5, 0.5}
	field.Color = core.Color{R: 0.6, G: 0.6, B: 0.65, A: 1}
	field.Metallic = 0.8
	field.Roughness = 0.4
	field.InstanceCount = 16
	s.Add(field)

	return spinning, meshes
}

// spinningObjects re-finds the rotating cubes after a scene reload, since a
// reload replaces every object.
func spinningObjects(s *scene.Scene) []*scene.SceneObject {
	var out []*scene.SceneObject
	for _, obj := range s.Objects() {
		if strings.HasPrefix(obj.Name, "Glass Cube") {
			out = append(out, obj)
		}
	}
	return out
}

// loadModel picks the importer from the file extension.
func loadModel(path string) (*scene.Model, error) {
	if strings.EqualFold(filepath.Ext(path), ".obj") {
		return scene.LoadOBJ(path)
	}
	return scene.LoadGLTF(path)
}

func main() {
	logger.Init(false)
	defer logger.Sync()

	cfg := core.DefaultWindowConfig()
	cfg.Title = "PBR Engine - HDR Pipeline"

	window, err := core.NewWindow(cfg)
	if err != nil {
		fmt.Printf("Failed to create window: %v\n", err)
		return
	}
	defer window.Destroy()

	renderer, err := opengl.NewRenderer()
	if err != nil {
		fmt.Printf("Failed to initialize OpenGL: %v\n", err)
		return
	}

	factory, err := material.NewFactory()
	if err != nil {
		fmt.Printf("Failed to build materials: %v\n", err)
		return
	}
	defer factory.Destroy()

	sr := render.NewSceneRenderer(cfg.Width, cfg.Height, factory)
	defer sr.Destroy()

	// Skybox and IBL maps share the same gradient so reflections match the
	// visible sky.
	skybox, err := opengl.NewSkybox()
	if err != nil {
		fmt.Printf("Skybox unavailable (continuing without it): %v\n", err)
	} else {
		defer skybox.Destroy()
		sr.SetSkybox(skybox)

		irradiance, errIrr := opengl.NewIrradianceCubemap(
			skybox.ZenithColor, skybox.HorizonColor, skybox.GroundColor, 16)
		prefiltered, errPre := opengl.NewGradientCubemap(
			skybox.ZenithColor, skybox.HorizonColor, skybox.GroundColor, 64)
		brdfLUT, errLUT := opengl.NewBRDFLUT(256)
		if errIrr == nil && errPre == nil && errLUT == nil {
			sr.SetIBLMaps(irradiance, prefiltered, brdfLUT)
			defer irradiance.Destroy()
			defer prefiltered.Destroy()
			defer brdfLUT.Destroy()
			fmt.Println("IBL enabled (gradient environment)")
		} else {
			fmt.Println("IBL unavailable (continuing without it)")
		}
	}

	s := scene.NewScene()
	defer s.Destroy()
	spinning, meshes := buildScene(s, factory)

	// Optional model as first argument, glTF or OBJ.
	if len(os.Args) > 1 {
		model, err := loadModel(os.Args[1])
		if err != nil {
			fmt.Printf("Failed to load %q: %v\n", os.Args[1], err)
		} else {
			for _, obj := range model.Objects {
				s.Add(obj)
				if obj.Mesh != nil {
					meshes[obj.Mesh.Name] = obj.Mesh
				}
			}
			for _, tex := range model.Textures {
				defer tex.Destroy()
			}
			fmt.Printf("Loaded %q: %d objects\n", os.Args[1], len(model.Objects))
		}
	}

	// Fire and smoke rise from the copper sphere. The fire's HDR start color
	// pushes it over the bloom threshold.
	fire := scene.NewParticleEmitter(256)
	fire.Position = mgl32.Vec3{3, 1.05, 0}
	s.AddEmitter(fire)
	smoke := scene.NewSmokeEmitter(128)
	smoke.Position = mgl32.Vec3{3, 1.3, 0}
	s.AddEmitter(smoke)

	camera := scene.NewCamera(45, float32(cfg.Width)/float32(cfg.Height), 0.1, 100)
	camera.SetPosition(mgl32.Vec3{0, 4, 12})
	camera.LookAt(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})

	window.SetResizeCallback(func(w, h int) {
		sr.OnResize(w, h)
		camera.UpdateAspectRatio(w, h)
	})

	ed := editor.NewEditor(window, s, camera)
	dn := NewDayNight()

	dirLight := scene.NewDirectionalLight()
	dirLight.Direction = mgl32.Vec3{-0.5, -1.0, -0.3}

	// HDR point light intensities well above 1.0 feed the bloom threshold.
	pointLights := []scene.PointLight{
		{Position: mgl32.Vec3{-6, 4, 6}, Color: mgl32.Vec3{25, 22, 18}},
		{Position: mgl32.Vec3{6, 4, 6}, Color: mgl32.Vec3{18, 22, 25}},
		{Position: mgl32.Vec3{-6, 4, -6}, Color: mgl32.Vec3{20, 25, 20}},
		{Position: mgl32.Vec3{6, 4, -6}, Color: mgl32.Vec3{25, 25, 25}},
	}

	// Mild grade so the G toggle is visible against the neutral LUT.
	post := sr.PostProcess()
	post.Saturation = 1.25
	post.Contrast = 1.05

	fmt.Println("Controls: 1/2/3 render path, B bloom, G grading, O outlines, C culling, E particles")
	fmt.Println("          N day/night (,/. cycle speed), Space cycle select, Esc quit")
	fmt.Println("Editor:   LMB pick (Shift adds), MMB orbit (Shift pans), scroll zoom")
	fmt.Println("          arrows/PgUp/PgDn nudge, Ctrl+Z undo, Ctrl+Shift+Z redo")
	fmt.Println("          Shift+D duplicate, X or Del delete, F5 save scene, F9 load scene")

	overlay := &DebugOverlay{}
	outlinesOn := true
	cullingOn := true
	particlesOn := true
	var key1Was, key2Was, key3Was, keyBWas, keyGWas, keyOWas, spaceWas bool
	var keyCWas, keyEWas, keyNWas, commaWas, periodWas, keyF5Was, keyF9Was bool

	lastTime := window.Time()
	fpsTimer := lastTime
	frames := 0
	for !window.ShouldClose() {
		window.PollEvents()

		now := window.Time()
		dt := float32(now - lastTime)
		lastTime = now

		if window.IsKeyPressed(core.KeyEscape) {
			window.RequestClose()
		}

		ed.Update()

		key1 := window.IsKeyPressed(core.Key1)
		if key1 && !key1Was {
			sr.SetRenderPath(render.PathForward)
			fmt.Printf("[Path] %s\n", sr.RenderPathName())
		}
		key1Was = key1

		key2 := window.IsKeyPressed(core.Key2)
		if key2 && !key2Was {
			sr.SetRenderPath(render.PathForwardPlus)
			fmt.Printf("[Path] %s\n", sr.RenderPathName())
		}
		key2Was = key2

		key3 := window.IsKeyPressed(core.Key3)
		if key3 && !key3Was {
			sr.SetRenderPath(render.PathDeferred)
			fmt.Printf("[Path] %s\n", sr.RenderPathName())
		}
		key3Was = key3

		keyB := window.IsKeyPressed(core.KeyB)
		if keyB && !keyBWas {
			post.EnableBloom = !post.EnableBloom
			fmt.Printf("[Bloom] %s\n", map[bool]string{true: "ON", false: "OFF"}[post.EnableBloom])
		}
		keyBWas = keyB

		keyG := window.IsKeyPressed(core.KeyG)
		if keyG && !keyGWas {
			post.EnableColorGrading = !post.EnableColorGrading
			fmt.Printf("[Grading] %s\n", map[bool]string{true: "ON", false: "OFF"}[post.EnableColorGrading])
		}
		keyGWas = keyG

		keyO := window.IsKeyPressed(core.KeyO)
		if keyO && !keyOWas {
			outlinesOn = !outlinesOn
			sr.SetEnableOutlines(outlinesOn)
			fmt.Printf("[Outlines] %s\n", map[bool]string{true: "ON", false: "OFF"}[outlinesOn])
		}
		keyOWas = keyO

		keyC := window.IsKeyPressed(core.KeyC)
		if keyC && !keyCWas {
			cullingOn = !cullingOn
			sr.SetFrustumCulling(cullingOn)
			fmt.Printf("[Culling] %s\n", map[bool]string{true: "ON", false: "OFF"}[cullingOn])
		}
		keyCWas = keyC

		keyE := window.IsKeyPressed(core.KeyE)
		if keyE && !keyEWas {
			particlesOn = !particlesOn
			fire.Active = particlesOn
			smoke.Active = particlesOn
			fmt.Printf("[Particles] %s\n", map[bool]string{true: "ON", false: "OFF"}[particlesOn])
		}
		keyEWas = keyE

		keyN := window.IsKeyPressed(core.KeyN)
		if keyN && !keyNWas {
			dn.Active = !dn.Active
			fmt.Printf("[Day/Night] %s\n", map[bool]string{true: "ON", false: "OFF"}[dn.Active])
		}
		keyNWas = keyN

		comma := window.IsKeyPressed(core.KeyComma)
		if comma && !commaWas {
			dn.Speed *= 2
			fmt.Printf("[Day/Night] %.0fs per day\n", dn.Speed)
		}
		commaWas = comma

		period := window.IsKeyPressed(core.KeyPeriod)
		if period && !periodWas {
			dn.Speed /= 2
			if dn.Speed < 15 {
				dn.Speed = 15
			}
			fmt.Printf("[Day/Night] %.0fs per day\n", dn.Speed)
		}
		periodWas = period

		keyF5 := window.IsKeyPressed(core.KeyF5)
		if keyF5 && !keyF5Was {
			if err := scene.SaveScene(s, sceneFile); err != nil {
				fmt.Printf("[Save] failed: %v\n", err)
			} else {
				fmt.Printf("[Save] %s\n", sceneFile)
			}
		}
		keyF5Was = keyF5

		keyF9 := window.IsKeyPressed(core.KeyF9)
		if keyF9 && !keyF9Was {
			if sd, err := scene.LoadScene(sceneFile); err != nil {
				fmt.Printf("[Load] failed: %v\n", err)
			} else {
				n := sd.Apply(s, meshes)
				spinning = spinningObjects(s)
				ed.Selection.Clear()
				ed.History.Clear()
				fmt.Printf("[Load] %s: %d objects\n", sceneFile, n)
			}
		}
		keyF9Was = keyF9

		space := window.IsKeyPressed(core.KeySpace)
		if space && !spaceWas && s.Size() > 0 {
			next := (ed.Selection.Active() + 1) % s.Size()
			ed.Selection.SelectSingle(next)
			if obj := s.Object(next); obj != nil {
				fmt.Printf("[Select] %d: %s\n", next, obj.Name)
			}
		}
		spaceWas = space

		for _, obj := range spinning {
			obj.Transform.Rotation[1] += 0.6 * dt
		}

		// One light slowly orbits the scene for moving highlights.
		angle := now * 0.4
		pointLights[0].Position = mgl32.Vec3{
			7 * float32(stdmath.Cos(angle)),
			4,
			7 * float32(stdmath.Sin(angle)),
		}

		dn.Update(dt)
		if dn.Active {
			dn.Apply(sr, skybox, dirLight)
		}
		s.UpdateEmitters(dt)
		sr.SetSelectedObject(ed.Selection.Active())

		lights := scene.Lights{Directional: dirLight, Points: pointLights}
		sr.Render(s, camera, renderer, lights)

		window.SwapBuffers()

		frames++
		if now-fpsTimer >= 1 {
			fps := int(float64(frames)/(now-fpsTimer) + 0.5)
			frames = 0
			fpsTimer = now

			live := 0
			for _, e := range s.Emitters() {
				live += e.Count()
			}
			overlay.Clear()
			overlay.AddLine("PBR Engine")
			overlay.AddLine("%d FPS", fps)
			overlay.AddLine("%s", sr.RenderPathName())
			if dn.Active {
				overlay.AddLine("%s", dn.TimeOfDayStr())
			}
			if live > 0 {
				overlay.AddLine("%d particles", live)
			}
			if i := ed.Selection.Active(); i >= 0 {
				if obj := s.Object(i); obj != nil {
					overlay.AddLine("sel %s", obj.Name)
				}
			}
			window.SetTitle(overlay.Title())
		}
	}
}
