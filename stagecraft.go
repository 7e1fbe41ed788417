package stagecraft

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default material and light color.
var ColorWhite = Color{1, 1, 1, 1}

// ColorBlack is the zero emissive color.
var ColorBlack = Color{0, 0, 0, 1}

// ColorHex converts a 0xRRGGBB value to an opaque Color.
func ColorHex(hex uint32) Color {
	return Color{
		R: float64((hex>>16)&0xff) / 255,
		G: float64((hex>>8)&0xff) / 255,
		B: float64(hex&0xff) / 255,
		A: 1,
	}
}

// Scale returns c with the RGB components multiplied by f. Alpha is kept.
func (c Color) Scale(f float64) Color {
	return Color{c.R * f, c.G * f, c.B * f, c.A}
}

// Add returns the component-wise RGB sum of c and o. Alpha is kept from c.
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B, c.A}
}

// Modulate returns the component-wise RGB product of c and o.
func (c Color) Modulate(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B, c.A}
}

// Clamp limits every component to [0, 1].
func (c Color) Clamp() Color {
	return Color{clamp01(c.R), clamp01(c.G), clamp01(c.B), clamp01(c.A)}
}

// RGBA converts the color to an 8-bit image/color value.
func (c Color) RGBA() color.RGBA {
	cc := c.Clamp()
	return color.RGBA{
		R: uint8(cc.R*cc.A*255 + 0.5),
		G: uint8(cc.G*cc.A*255 + 0.5),
		B: uint8(cc.B*cc.A*255 + 0.5),
		A: uint8(cc.A*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeGroup  NodeType = iota // transform-only node with no visual output
	NodeTypeMesh                   // renders triangles of a Geometry with a Material
	NodeTypeLine                   // renders line segments (helpers, paths)
	NodeTypeCamera                 // perspective camera; looks down its local -Z
	NodeTypeLight                  // light source contributing to mesh shading
)

// String returns the lower-case node type name.
func (t NodeType) String() string {
	switch t {
	case NodeTypeGroup:
		return "group"
	case NodeTypeMesh:
		return "mesh"
	case NodeTypeLine:
		return "line"
	case NodeTypeCamera:
		return "camera"
	case NodeTypeLight:
		return "light"
	default:
		return "unknown"
	}
}
