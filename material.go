package stagecraft

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Material describes how a mesh is shaded.
type Material struct {
	Color    Color
	Emissive Color
	// FlatShading is informational: the renderer always shades per face.
	FlatShading bool
	// DepthTest false draws the mesh after every depth-sorted mesh.
	DepthTest bool
}

// NewMaterial returns a lit material with the given base color.
func NewMaterial(c Color) *Material {
	return &Material{Color: c, Emissive: ColorBlack, DepthTest: true}
}

// NewEmissiveMaterial returns a material that glows with c regardless of light.
func NewEmissiveMaterial(c Color) *Material {
	return &Material{Color: ColorBlack, Emissive: c, DepthTest: true}
}

// HSL converts hue, saturation and lightness in [0, 1] to an opaque Color.
func HSL(h, s, l float64) Color {
	c := colorful.Hsl(h*360, s, l)
	return Color{R: c.R, G: c.G, B: c.B, A: 1}
}

// SetHSL sets both the base and emissive color from HSL components.
func (m *Material) SetHSL(h, s, l float64) {
	c := HSL(h, s, l)
	m.Color = c
	m.Emissive = c
}

// Hex formats the RGB components as "#rrggbb". Alpha is dropped.
func (c Color) Hex() string {
	cc := c.Clamp()
	return colorful.Color{R: cc.R, G: cc.G, B: cc.B}.Hex()
}
