// Package mixer loads an animated character and crossfades between its
// clips when the user picks another action.
package mixer

import (
	"context"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/stagecraft"
)

// InitialAction is requested before the model has loaded.
const InitialAction = "walk"

// Demo is the composed scene and its loop. Model, Mixer and Actions stay nil
// until the asset has loaded.
type Demo struct {
	Loop     *stagecraft.Loop
	Panel    *stagecraft.Panel
	Selector *stagecraft.Selector

	Model   *stagecraft.Node
	Mixer   *stagecraft.Mixer
	Actions *stagecraft.ActionController
}

// Loader returns the loader Build uses for cfg: the glTF file at
// cfg.ModelPath, or the built-in bot when no path is set.
func Loader(cfg *stagecraft.RunConfig) stagecraft.Loader {
	if cfg.ModelPath == "" {
		return stagecraft.ProceduralBotLoader
	}
	return stagecraft.GLTFLoader{Path: cfg.ModelPath}
}

// Build composes the static scene and starts loading the model with
// Loader(cfg).
func Build(ctx context.Context, cfg *stagecraft.RunConfig) *Demo {
	return BuildWith(ctx, Loader(cfg))
}

// BuildWith composes the static scene and starts loading the model with l.
// The mixer is created and its update registered on the first frame after
// the load succeeds.
func BuildWith(ctx context.Context, l stagecraft.Loader) *Demo {
	scene := stagecraft.NewScene()
	scene.Background = stagecraft.ColorHex(0x3297a8)
	loop := stagecraft.NewLoop(scene)
	d := &Demo{Loop: loop, Selector: stagecraft.NewSelector(InitialAction)}

	camera := stagecraft.NewCamera("camera", 75, 2, 0.1, 100)
	camera.SetPosition(0, 5, 5)
	camera.LookAt(mgl64.Vec3{0, 1, 0})
	scene.Add(camera)
	loop.AddCamera(camera, "front")

	scene.Add(stagecraft.NewHemisphereLight("hemisphere", stagecraft.ColorWhite, stagecraft.ColorHex(0x8d8d8d), 3))
	dir := stagecraft.NewDirectionalLight("sun", stagecraft.ColorWhite, 3)
	dir.SetPosition(10, 5, 10)
	dir.CastShadow = true
	scene.Add(dir)

	ground := stagecraft.NewMesh("ground", stagecraft.NewPlaneGeometry(100, 100), stagecraft.NewMaterial(stagecraft.ColorHex(0xa86d32)))
	ground.SetEuler(-math.Pi/2, 0, 0)
	scene.Add(ground)
	scene.Add(stagecraft.NewLine("grid", stagecraft.NewGridLines(100, 100)))

	loop.OnLoad(stagecraft.LoadAsync(ctx, l), d.attach)

	d.Panel = stagecraft.NewPanel("animation mixer")
	d.Panel.AddButton(ebiten.KeyW, "walk", func() { d.Selector.Select("walk") })
	d.Panel.AddButton(ebiten.KeyR, "run", func() { d.Selector.Select("run") })
	d.Panel.AddButton(ebiten.KeyI, "idle", func() { d.Selector.Select("idle") })
	loop.AddPanel(d.Panel)
	return d
}

// attach adds the loaded model, binds its clips and registers the mixer
// update followed by the action selection.
func (d *Demo) attach(a *stagecraft.Asset) {
	d.Model = a.Root
	d.Model.Traverse(func(n *stagecraft.Node) {
		if n.Type == stagecraft.NodeTypeMesh {
			n.CastShadow = true
		}
	})
	d.Mixer = stagecraft.NewMixer(d.Model)
	d.Actions = stagecraft.NewActionController(d.Mixer)
	d.Actions.Bind(a.Clips)
	d.Loop.AddUpdatable(d.Mixer.Update)
	d.Loop.AddUpdatable(d.Selector.Updatable(d.Actions))
	d.Loop.Scene().Add(d.Model)
}
