// Package solarsystem is a sun, an earth and a moon spinning in nested
// groups, with switchable axis/grid helpers on every body.
package solarsystem

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/stagecraft"
)

const (
	// spinRate is the rotation speed of the system, the sun and the earth
	// orbit, in radians per second.
	spinRate = 80 * math.Pi / 180
	// moonRate is the moon's spin about its X axis.
	moonRate = 50 * math.Pi / 180
)

// Demo is the composed scene and its loop.
type Demo struct {
	Loop  *stagecraft.Loop
	Panel *stagecraft.Panel
	Orbit *stagecraft.OrbitControls

	System     *stagecraft.Node
	Sun        *stagecraft.Node
	EarthOrbit *stagecraft.Node
	Earth      *stagecraft.Node
	Moon       *stagecraft.Node
	Helpers    []*stagecraft.AxisGridHelper
}

// Build composes the scene and registers its updatables.
func Build(cfg *stagecraft.RunConfig) *Demo {
	scene := stagecraft.NewScene()
	scene.Background = stagecraft.ColorHex(0x272935)
	loop := stagecraft.NewLoop(scene)

	aspect := float64(cfg.Width) / float64(max(cfg.Height, 1))
	camera := stagecraft.NewCamera("camera", 75, aspect, 0.1, 100)
	camera.SetPosition(0, 5, 50)
	camera.LookAt(mgl64.Vec3{0, 0, 0})
	scene.Add(camera)
	loop.AddCamera(camera, "overview")

	scene.Add(stagecraft.NewPointLight("light", stagecraft.ColorWhite, 500))

	d := &Demo{Loop: loop, Orbit: stagecraft.NewOrbitControls(camera, mgl64.Vec3{})}
	loop.AddUpdatable(d.Orbit.Update)

	d.System = stagecraft.NewGroup("solarSystem")
	scene.Add(d.System)

	sphere := stagecraft.NewSphereGeometry(stagecraft.SphereParams{Radius: 1, WidthSegments: 8, HeightSegments: 8})

	d.Sun = stagecraft.NewMesh("sun", sphere, &stagecraft.Material{
		Color:     stagecraft.ColorWhite,
		Emissive:  stagecraft.ColorHex(0xffff00),
		DepthTest: true,
	})
	d.Sun.SetScale(5, 5, 5)
	d.System.AddChild(d.Sun)

	d.EarthOrbit = stagecraft.NewGroup("earthOrbit")
	d.EarthOrbit.SetPosition(10, 0, 0)
	d.System.AddChild(d.EarthOrbit)

	d.Earth = stagecraft.NewMesh("earth", sphere, &stagecraft.Material{
		Color:     stagecraft.ColorHex(0x2233ff),
		Emissive:  stagecraft.ColorHex(0x112244),
		DepthTest: true,
	})
	d.EarthOrbit.AddChild(d.Earth)

	d.Moon = stagecraft.NewMesh("moon", sphere, &stagecraft.Material{
		Color:     stagecraft.ColorHex(0x888888),
		Emissive:  stagecraft.ColorHex(0x222222),
		DepthTest: true,
	})
	d.Moon.SetScale(0.5, 0.5, 0.5)
	d.Moon.SetPosition(2, 0, 0)
	d.EarthOrbit.AddChild(d.Moon)

	loop.AddUpdatable(func(dt float64) { d.System.RotateY(spinRate * dt) })
	loop.AddUpdatable(func(dt float64) { d.Sun.RotateY(spinRate * dt) })
	loop.AddUpdatable(func(dt float64) { d.EarthOrbit.RotateY(spinRate * dt) })
	loop.AddUpdatable(func(dt float64) { d.Moon.RotateX(moonRate * dt) })

	d.Panel = stagecraft.NewPanel("solar system")
	helpers := []struct {
		key   ebiten.Key
		node  *stagecraft.Node
		label string
		units float64
	}{
		{ebiten.KeyDigit1, d.System, "solarSystem", 25},
		{ebiten.KeyDigit2, d.Sun, "sunMesh", 10},
		{ebiten.KeyDigit3, d.EarthOrbit, "earthOrbit", 10},
		{ebiten.KeyDigit4, d.Earth, "earthMesh", 10},
		{ebiten.KeyDigit5, d.Moon, "moonMesh", 10},
	}
	for _, h := range helpers {
		helper := stagecraft.NewAxisGridHelper(h.node, h.units)
		d.Helpers = append(d.Helpers, helper)
		d.Panel.AddToggle(h.key, h.label, helper)
	}
	loop.AddPanel(d.Panel)
	return d
}
