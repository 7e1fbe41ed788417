package stagecraft

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func assertColorNear(t *testing.T, name string, got, want Color) {
	t.Helper()
	if !approxEqual(got.R, want.R, 1e-6) || !approxEqual(got.G, want.G, 1e-6) ||
		!approxEqual(got.B, want.B, 1e-6) || !approxEqual(got.A, want.A, 1e-6) {
		t.Errorf("%s = %+v, want %+v", name, got, want)
	}
}

func sceneLights(nodes ...*Node) []litLight {
	s := NewScene()
	s.Add(nodes...)
	s.UpdateWorld()
	return resolveLights(s.Lights())
}

var upAxis = mgl64.Vec3{0, 1, 0}

func TestShadeWithoutLightsIsEmissive(t *testing.T) {
	mat := NewMaterial(ColorWhite)
	mat.Emissive = Color{0.2, 0.3, 0.4, 1}
	got := shade(mat, mgl64.Vec3{}, upAxis, nil)
	assertColorNear(t, "color", got, Color{0.2, 0.3, 0.4, 1})
}

func TestShadeAmbient(t *testing.T) {
	lights := sceneLights(NewAmbientLight("ambient", ColorWhite, math.Pi))
	got := shade(NewMaterial(ColorHex(0x808080)), mgl64.Vec3{}, upAxis, lights)
	want := 128.0 / 255
	assertColorNear(t, "color", got, Color{want, want, want, 1})
}

func TestShadeClampsEmissive(t *testing.T) {
	mat := NewMaterial(ColorWhite)
	mat.Emissive = Color{0.5, 0.5, 0.5, 1}
	lights := sceneLights(NewAmbientLight("ambient", ColorWhite, math.Pi))
	got := shade(mat, mgl64.Vec3{}, upAxis, lights)
	assertColorNear(t, "color", got, ColorWhite)
}

func TestShadeDirectionalFacing(t *testing.T) {
	sun := NewDirectionalLight("sun", ColorWhite, math.Pi)
	sun.SetPosition(0, 10, 0)
	lights := sceneLights(sun)
	mat := NewMaterial(ColorWhite)

	assertColorNear(t, "facing", shade(mat, mgl64.Vec3{}, upAxis, lights), ColorWhite)
	assertColorNear(t, "away", shade(mat, mgl64.Vec3{}, upAxis.Mul(-1), lights), ColorBlack)

	side := shade(mat, mgl64.Vec3{}, mgl64.Vec3{1, 1, 0}.Normalize(), lights)
	assertNear(t, "45 degrees", side.R, math.Sqrt2/2)
}

func TestDirectionalLightAtOriginShinesFromAbove(t *testing.T) {
	lights := sceneLights(NewDirectionalLight("sun", ColorWhite, 1))
	assertVec3Near(t, "dir", lights[0].dir, upAxis)
}

func TestShadeHemisphere(t *testing.T) {
	lights := sceneLights(NewHemisphereLight("hemi", ColorWhite, ColorBlack, math.Pi))
	mat := NewMaterial(ColorWhite)
	assertColorNear(t, "up", shade(mat, mgl64.Vec3{}, upAxis, lights), ColorWhite)
	assertColorNear(t, "down", shade(mat, mgl64.Vec3{}, upAxis.Mul(-1), lights), ColorBlack)
	side := shade(mat, mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, lights)
	assertNear(t, "side", side.R, 0.5)
}

func TestShadePointFalloff(t *testing.T) {
	bulb := NewPointLight("bulb", ColorWhite, 4*math.Pi)
	bulb.SetPosition(0, 2, 0)
	lights := sceneLights(bulb)
	mat := NewMaterial(Color{0.5, 0.5, 0.5, 1})
	got := shade(mat, mgl64.Vec3{}, upAxis, lights)
	assertColorNear(t, "color", got, Color{0.5, 0.5, 0.5, 1})

	// Coincident with the surface: no contribution.
	got = shade(mat, mgl64.Vec3{0, 2, 0}, upAxis, lights)
	assertColorNear(t, "coincident", got, ColorBlack)
}

func TestShadeTransparentMaterialIsOpaque(t *testing.T) {
	mat := &Material{Emissive: ColorWhite}
	got := shade(mat, mgl64.Vec3{}, upAxis, nil)
	if got.A != 1 {
		t.Errorf("alpha = %v, want 1", got.A)
	}
}

func TestHSL(t *testing.T) {
	assertColorNear(t, "red", HSL(0, 1, 0.5), Color{1, 0, 0, 1})
	assertColorNear(t, "white", HSL(0.3, 1, 1), ColorWhite)

	m := NewMaterial(ColorWhite)
	m.SetHSL(2.0/3, 1, 0.5)
	assertColorNear(t, "color", m.Color, Color{0, 0, 1, 1})
	if m.Emissive != m.Color {
		t.Errorf("emissive = %+v, want %+v", m.Emissive, m.Color)
	}
}

func TestColorHex(t *testing.T) {
	if got := ColorHex(0x4b4563).Hex(); got != "#4b4563" {
		t.Errorf("Hex = %q, want #4b4563", got)
	}
	if got := (Color{2, -1, 0.5, 1}).Hex(); got != "#ff0080" {
		t.Errorf("clamped Hex = %q, want #ff0080", got)
	}
}
