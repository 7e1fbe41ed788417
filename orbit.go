package stagecraft

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	// orbitDragDeadZone is how far in pixels the cursor moves before a press
	// becomes a drag.
	orbitDragDeadZone = 4.0
	// orbitPolarMargin keeps the camera off the poles, where LookAt has no
	// stable up vector.
	orbitPolarMargin = 1e-3
)

// pointerState is one frame of mouse input.
type pointerState struct {
	x, y    float64
	pressed bool
	wheel   float64
}

func ebitenPointer() pointerState {
	mx, my := ebiten.CursorPosition()
	_, wy := ebiten.Wheel()
	return pointerState{
		x:       float64(mx),
		y:       float64(my),
		pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		wheel:   wy,
	}
}

// OrbitControls keeps a camera on a sphere around Target, looking at it.
// Dragging with the left mouse button orbits and the wheel zooms. Register
// Update as an Updatable.
type OrbitControls struct {
	Camera *Node
	Target mgl64.Vec3

	// Distance is the sphere radius. Azimuth turns around +Y, with zero on
	// the +Z side of the target. Polar is measured down from +Y.
	Distance float64
	Azimuth  float64
	Polar    float64

	MinDistance float64
	MaxDistance float64
	// RotateSpeed is radians per dragged pixel.
	RotateSpeed float64
	// ZoomSpeed is the fraction of Distance removed per wheel step.
	ZoomSpeed float64

	// Active gates input, e.g. to the frames where Camera is the active rig.
	// Nil means always active.
	Active func() bool

	pointer  func() pointerState
	down     bool
	dragging bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
}

// NewOrbitControls orbits cam around target, starting from cam's current
// position. cam should be a child of the scene root so that its local
// position is its world position.
func NewOrbitControls(cam *Node, target mgl64.Vec3) *OrbitControls {
	o := &OrbitControls{
		Camera:      cam,
		Target:      target,
		MinDistance: 1,
		MaxDistance: 500,
		RotateSpeed: 0.01,
		ZoomSpeed:   0.1,
		pointer:     ebitenPointer,
	}
	offset := cam.Position.Sub(target)
	o.Distance = offset.Len()
	if o.Distance > 0 {
		o.Polar = math.Acos(mgl64.Clamp(offset.Y()/o.Distance, -1, 1))
		o.Azimuth = math.Atan2(offset.X(), offset.Z())
	}
	if o.Distance < o.MinDistance {
		o.MinDistance = o.Distance
	}
	if o.Distance > o.MaxDistance {
		o.MaxDistance = o.Distance
	}
	return o
}

// Update reads the pointer and moves the camera when the orbit changed.
func (o *OrbitControls) Update(float64) {
	if o.Active != nil && !o.Active() {
		o.down, o.dragging = false, false
		return
	}
	p := o.pointer()
	changed := false

	switch {
	case p.pressed && !o.down:
		o.down, o.dragging = true, false
		o.startX, o.startY = p.x, p.y
	case !p.pressed && o.down:
		o.down, o.dragging = false, false
	case p.pressed:
		if !o.dragging && math.Hypot(p.x-o.startX, p.y-o.startY) > orbitDragDeadZone {
			o.dragging = true
		}
		if o.dragging && (p.x != o.lastX || p.y != o.lastY) {
			o.Rotate(-(p.x-o.lastX)*o.RotateSpeed, -(p.y-o.lastY)*o.RotateSpeed)
			changed = true
		}
	}
	o.lastX, o.lastY = p.x, p.y

	if p.wheel != 0 {
		o.Zoom(p.wheel)
		changed = true
	}
	if changed {
		o.Apply()
	}
}

// Rotate turns the orbit by the given angles. Polar is clamped short of the
// poles.
func (o *OrbitControls) Rotate(dAzimuth, dPolar float64) {
	o.Azimuth = math.Mod(o.Azimuth+dAzimuth, 2*math.Pi)
	o.Polar = mgl64.Clamp(o.Polar+dPolar, orbitPolarMargin, math.Pi-orbitPolarMargin)
}

// Zoom scales Distance by (1-ZoomSpeed) per step. Positive steps move in.
func (o *OrbitControls) Zoom(steps float64) {
	o.Distance = mgl64.Clamp(o.Distance*math.Pow(1-o.ZoomSpeed, steps), o.MinDistance, o.MaxDistance)
}

// Apply places the camera on the orbit and points it at Target.
func (o *OrbitControls) Apply() {
	sp, cp := math.Sincos(o.Polar)
	sa, ca := math.Sincos(o.Azimuth)
	pos := o.Target.Add(mgl64.Vec3{sp * sa, cp, sp * ca}.Mul(o.Distance))
	o.Camera.SetPosition(pos.X(), pos.Y(), pos.Z())
	o.Camera.LookAt(o.Target)
}
