// Package tank drives a tank along a closed spline while it aims its turret
// at a bobbing target. Four camera rigs take turns rendering the scene.
package tank

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/stagecraft"
)

const (
	carWidth  = 4.0
	carHeight = 1.0
	carLength = 8.0

	wheelRadius    = 1.0
	wheelThickness = 0.5
	wheelSegments  = 6

	domeRadius = 2.0

	turretLength = carLength * 0.75 * 0.2

	// cameraSwitchRate is how many rigs per second the view cycles through.
	cameraSwitchRate = 0.25
	// pathSpeed is the fraction of the spline covered per second.
	pathSpeed = 0.05
)

// pathPoints are the spline control points on the ground plane (x, z).
var pathPoints = []mgl64.Vec2{
	{-10, 0}, {-5, 5}, {0, 0}, {5, -5}, {10, 0},
	{5, 10}, {-5, 10}, {-10, -10}, {-15, -8}, {-10, 0},
}

// Rig descriptions, in selection order.
const (
	DescDetached = "detached camera"
	DescTurret   = "on turret looking at target"
	DescTarget   = "near target looking at tank"
	DescTank     = "above back of tank"
)

// Demo is the composed scene and its loop.
type Demo struct {
	Loop *stagecraft.Loop
	// Orbit drives the detached camera while it is the active rig.
	Orbit *stagecraft.OrbitControls

	Tank         *stagecraft.Node
	Body         *stagecraft.Node
	Wheels       []*stagecraft.Node
	TurretPivot  *stagecraft.Node
	TurretCamera *stagecraft.Node
	TargetOrbit  *stagecraft.Node
	TargetBob    *stagecraft.Node
	TargetMesh   *stagecraft.Node
	TargetPivot  *stagecraft.Node
	Curve        *stagecraft.SplineCurve

	targetMaterial *stagecraft.Material
	time           float64
}

func makeCamera(name string, fov float64) *stagecraft.Node {
	return stagecraft.NewCamera(name, fov, 2, 0.1, 1000)
}

// Build composes the scene, applies the pose for t=0 and registers the
// per-frame pose update.
func Build(cfg *stagecraft.RunConfig) *Demo {
	scene := stagecraft.NewScene()
	scene.Background = stagecraft.ColorHex(0xaaaaaa)
	loop := stagecraft.NewLoop(scene)
	d := &Demo{Loop: loop}

	camera := makeCamera("camera", 40)
	camera.SetPosition(8*3, 4*3, 10*3)
	camera.LookAt(mgl64.Vec3{0, 0, 0})
	scene.Add(camera)

	light1 := stagecraft.NewDirectionalLight("light1", stagecraft.ColorWhite, 3)
	light1.SetPosition(0, 20, 0)
	light1.CastShadow = true
	light2 := stagecraft.NewDirectionalLight("light2", stagecraft.ColorWhite, 3)
	light2.SetPosition(1, 2, 4)
	scene.Add(light1, light2)

	ground := stagecraft.NewMesh("ground", stagecraft.NewPlaneGeometry(50, 50), stagecraft.NewMaterial(stagecraft.ColorHex(0xcc8866)))
	ground.SetEuler(-math.Pi/2, 0, 0)
	scene.Add(ground)

	d.Tank = stagecraft.NewGroup("tank")
	scene.Add(d.Tank)

	bodyMaterial := stagecraft.NewMaterial(stagecraft.ColorHex(0x6688aa))
	d.Body = stagecraft.NewMesh("body", stagecraft.NewBoxGeometry(carWidth, carHeight, carLength), bodyMaterial)
	d.Body.SetPosition(0, 1.4, 0)
	d.Body.CastShadow = true
	d.Tank.AddChild(d.Body)

	tankCamera := makeCamera("tankCamera", 75)
	tankCamera.SetPosition(0, 3, -6)
	tankCamera.SetEuler(0, math.Pi, 0)
	d.Body.AddChild(tankCamera)

	wheelGeometry := stagecraft.NewCylinderGeometry(wheelRadius, wheelRadius, wheelThickness, wheelSegments)
	wheelMaterial := stagecraft.NewMaterial(stagecraft.ColorHex(0x888888))
	wx := carWidth/2 + wheelThickness/2
	for _, p := range [][3]float64{
		{-wx, -carHeight / 2, carLength / 3},
		{wx, -carHeight / 2, carLength / 3},
		{-wx, -carHeight / 2, 0},
		{wx, -carHeight / 2, 0},
		{-wx, -carHeight / 2, -carLength / 3},
		{wx, -carHeight / 2, -carLength / 3},
	} {
		w := stagecraft.NewMesh("wheel", wheelGeometry, wheelMaterial)
		w.SetPosition(p[0], p[1], p[2])
		w.CastShadow = true
		d.Body.AddChild(w)
		d.Wheels = append(d.Wheels, w)
	}

	dome := stagecraft.NewMesh("dome", stagecraft.NewSphereGeometry(stagecraft.SphereParams{
		Radius:         domeRadius,
		WidthSegments:  12,
		HeightSegments: 12,
		PhiLength:      math.Pi * 2,
		ThetaLength:    math.Pi * 0.5,
	}), bodyMaterial)
	dome.SetPosition(0, 0.5, 0)
	d.Body.AddChild(dome)

	turret := stagecraft.NewMesh("turret", stagecraft.NewBoxGeometry(0.1, 0.1, turretLength), bodyMaterial)
	turret.SetPosition(0, 0, turretLength*0.5)
	d.TurretPivot = stagecraft.NewGroup("turretPivot")
	d.TurretPivot.SetScale(5, 5, 5)
	d.TurretPivot.SetPosition(0, 0.5, 0)
	d.TurretPivot.AddChild(turret)
	d.Body.AddChild(d.TurretPivot)

	d.TurretCamera = makeCamera("turretCamera", 40)
	d.TurretCamera.SetPosition(0, 0.75*0.2, 0)
	turret.AddChild(d.TurretCamera)

	d.targetMaterial = &stagecraft.Material{Color: stagecraft.ColorHex(0x00ff00), FlatShading: true, DepthTest: true}
	d.TargetMesh = stagecraft.NewMesh("target", stagecraft.NewSphereGeometry(stagecraft.SphereParams{
		Radius: 0.5, WidthSegments: 6, HeightSegments: 3,
	}), d.targetMaterial)
	d.TargetOrbit = stagecraft.NewGroup("targetOrbit")
	elevation := stagecraft.NewGroup("targetElevation")
	d.TargetBob = stagecraft.NewGroup("targetBob")
	scene.Add(d.TargetOrbit)
	d.TargetOrbit.AddChild(elevation)
	elevation.SetPosition(0, 8, carLength*2)
	elevation.AddChild(d.TargetBob)
	d.TargetBob.AddChild(d.TargetMesh)

	targetCamera := makeCamera("targetCamera", 40)
	targetCamera.SetPosition(0, 1, -2)
	targetCamera.SetEuler(0, math.Pi, 0)
	d.TargetPivot = stagecraft.NewGroup("targetCameraPivot")
	d.TargetBob.AddChild(d.TargetPivot)
	d.TargetPivot.AddChild(targetCamera)

	d.Curve = stagecraft.NewSplineCurve(pathPoints)
	var linePoints []mgl64.Vec3
	for _, p := range d.Curve.Points(50) {
		linePoints = append(linePoints, mgl64.Vec3{p.X(), p.Y(), 0})
	}
	path := stagecraft.NewLine("path", stagecraft.NewPolyline(linePoints, stagecraft.ColorHex(0x00ff00)))
	path.SetEuler(math.Pi/2, 0, 0)
	path.SetPosition(0, 0.05, 0)
	scene.Add(path)

	loop.AddCamera(camera, DescDetached)
	loop.AddCamera(d.TurretCamera, DescTurret)
	loop.AddCamera(targetCamera, DescTarget)
	loop.AddCamera(tankCamera, DescTank)

	d.Orbit = stagecraft.NewOrbitControls(camera, mgl64.Vec3{})
	d.Orbit.Active = func() bool {
		rig, ok := loop.Cameras().Active()
		return ok && rig.Node == camera
	}
	loop.AddUpdatable(d.Orbit.Update)

	d.pose(0)
	loop.AddUpdatable(func(dt float64) {
		d.time += dt
		d.pose(d.time)
	})
	loop.AddOverlay(info{loop: loop})
	return d
}

// Time returns the accumulated demo time in seconds.
func (d *Demo) Time() float64 {
	return d.time
}

// pose sets every animated transform for time t. Every value is absolute in
// t, so calling it twice with the same t changes nothing.
func (d *Demo) pose(t float64) {
	d.TargetOrbit.SetEuler(0, t*0.27, 0)
	d.TargetBob.SetPosition(0, math.Sin(t*2)*4, 0)
	d.TargetMesh.SetEuler(t*7, t*13, 0)
	hue := math.Mod(t*10, 1)
	d.targetMaterial.SetHSL(hue, 1, 0.25)

	tankTime := t * pathSpeed
	pos := d.Curve.PointAt(math.Mod(tankTime, 1))
	d.Tank.SetPosition(pos.X(), 0, pos.Y())
	ahead := d.Curve.PointAt(math.Mod(tankTime+0.01, 1))
	d.Tank.LookAt(mgl64.Vec3{ahead.X(), 0, ahead.Y()})

	target := d.TargetMesh.WorldPosition()
	d.TurretPivot.LookAt(target)
	d.TurretCamera.LookAt(target)

	d.TargetPivot.LookAt(d.Tank.WorldPosition())

	for _, w := range d.Wheels {
		w.SetEuler(t*3, 0, math.Pi*0.5)
	}

	d.Loop.Cameras().Select(int(math.Mod(t*cameraSwitchRate, float64(d.Loop.Cameras().Len()))))
}

// info prints the active rig's description.
type info struct {
	loop *stagecraft.Loop
}

func (i info) Draw(screen *ebiten.Image) {
	if rig, ok := i.loop.Cameras().Active(); ok {
		ebitenutil.DebugPrintAt(screen, rig.Desc, 8, 8)
	}
}
