package stagecraft

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// LightKind selects how a light contributes to shading.
type LightKind uint8

const (
	LightAmbient     LightKind = iota // uniform light from every direction
	LightHemisphere                   // sky color from above blended with ground color from below
	LightDirectional                  // parallel rays from the light's position toward the origin
	LightPoint                        // omnidirectional, inverse-square falloff
)

// Light holds the parameters of a light node.
type Light struct {
	Kind        LightKind
	Color       Color
	GroundColor Color // LightHemisphere only
	Intensity   float64
}

// NewAmbientLight returns an ambient light node.
func NewAmbientLight(name string, c Color, intensity float64) *Node {
	return NewLight(name, &Light{Kind: LightAmbient, Color: c, Intensity: intensity})
}

// NewHemisphereLight returns a hemisphere light node.
func NewHemisphereLight(name string, sky, ground Color, intensity float64) *Node {
	return NewLight(name, &Light{Kind: LightHemisphere, Color: sky, GroundColor: ground, Intensity: intensity})
}

// NewDirectionalLight returns a directional light node. Its direction is
// from its world position toward the origin.
func NewDirectionalLight(name string, c Color, intensity float64) *Node {
	return NewLight(name, &Light{Kind: LightDirectional, Color: c, Intensity: intensity})
}

// NewPointLight returns a point light node.
func NewPointLight(name string, c Color, intensity float64) *Node {
	return NewLight(name, &Light{Kind: LightPoint, Color: c, Intensity: intensity})
}

// litLight is a light resolved to world space for one frame.
type litLight struct {
	light *Light
	pos   mgl64.Vec3
	dir   mgl64.Vec3 // directional only: unit vector toward the light
}

func resolveLights(nodes []*Node) []litLight {
	out := make([]litLight, 0, len(nodes))
	for _, n := range nodes {
		pos := n.CachedWorldMatrix().Col(3).Vec3()
		ll := litLight{light: n.Light, pos: pos}
		if n.Light.Kind == LightDirectional {
			if pos.Len() == 0 {
				ll.dir = worldUp
			} else {
				ll.dir = pos.Normalize()
			}
		}
		out = append(out, ll)
	}
	return out
}

// shade returns the lit color of a surface point with unit normal n using a
// Lambert model. Emissive is added after lighting; the result is clamped.
func shade(mat *Material, p, n mgl64.Vec3, lights []litLight) Color {
	var irr Color
	for _, l := range lights {
		lc := l.light.Color.Scale(l.light.Intensity)
		switch l.light.Kind {
		case LightAmbient:
			irr = irr.Add(lc)
		case LightHemisphere:
			w := 0.5*n.Dot(worldUp) + 0.5
			sky := l.light.Color.Scale(w)
			ground := l.light.GroundColor.Scale(1 - w)
			irr = irr.Add(sky.Add(ground).Scale(l.light.Intensity))
		case LightDirectional:
			irr = irr.Add(lc.Scale(math.Max(0, n.Dot(l.dir))))
		case LightPoint:
			toLight := l.pos.Sub(p)
			d := toLight.Len()
			if d == 0 {
				continue
			}
			ndl := math.Max(0, n.Dot(toLight.Mul(1/d)))
			irr = irr.Add(lc.Scale(ndl / (d * d)))
		}
	}
	lit := mat.Color.Modulate(irr).Scale(1 / math.Pi)
	out := lit.Add(mat.Emissive)
	out.A = mat.Color.A
	if out.A == 0 {
		out.A = 1
	}
	return out.Clamp()
}
