// Package stagecraft is a small retained-mode 3D scene toolkit for
// [Ebitengine], built for self-contained demos.
//
// A demo composes a static scene graph once, registers per-frame updatables
// and hands everything to a [Loop], which implements [ebiten.Game]:
//
//	scene := stagecraft.NewScene()
//	loop := stagecraft.NewLoop(scene)
//
//	cam := stagecraft.NewCamera("camera", 75, 16.0/9, 0.1, 100)
//	cam.SetPosition(0, 5, 50)
//	cam.LookAt(mgl64.Vec3{0, 0, 0})
//	scene.Add(cam)
//	loop.AddCamera(cam, "overview")
//
//	ball := stagecraft.NewMesh("ball", stagecraft.NewSphereGeometry(
//		stagecraft.SphereParams{Radius: 1, WidthSegments: 8, HeightSegments: 8}),
//		stagecraft.NewMaterial(stagecraft.ColorHex(0x2233ff)))
//	scene.Add(ball)
//	loop.AddUpdatable(func(dt float64) { ball.RotateY(dt) })
//
//	stagecraft.Run(loop, stagecraft.DefaultRunConfig())
//
// # Frame loop
//
// Every frame the loop measures the time since the previous frame, runs
// completed asset callbacks, invokes the updatables in registration order
// and renders the active camera rig. Nothing is recovered: a panic in an
// updatable stops the program.
//
// # Scene graph
//
// Every element is a [Node] holding a local position, rotation and scale.
// World transforms compose all ancestors. Cameras, lights, meshes and lines
// are nodes too, so a camera parented to a moving node follows it.
//
// # Rendering
//
// [Renderer] projects triangles on the CPU, shades each face with Lambert
// lighting and submits them back to front through DrawTriangles. Lines are
// stroked afterwards, on top.
//
// # Animation
//
// [Mixer] plays [AnimationClip]s (imported from glTF with [GLTFLoader] or
// built in code) and blends concurrent actions by weight. [ActionController]
// switches between named actions with a timed crossfade tweened by [gween].
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package stagecraft
