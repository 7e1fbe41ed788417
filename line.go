package stagecraft

import (
	"github.com/go-gl/mathgl/mgl64"
)

// LineGeometry is a set of line segments in local space. With Strip false,
// Points are consumed in pairs; with Strip true, consecutive points are joined.
type LineGeometry struct {
	Points []mgl64.Vec3
	// Colors holds one color per segment. When shorter than the segment count,
	// Color is used for the remaining segments.
	Colors []Color
	Color  Color
	Width  float64
	Strip  bool
	// DepthTest sorts the segments by depth together with the meshes. With
	// it off they are drawn after every depth-tested primitive.
	DepthTest bool
}

// NumSegments returns the number of drawable segments.
func (l *LineGeometry) NumSegments() int {
	if l.Strip {
		if len(l.Points) < 2 {
			return 0
		}
		return len(l.Points) - 1
	}
	return len(l.Points) / 2
}

// Segment returns the endpoints and color of segment i.
func (l *LineGeometry) Segment(i int) (a, b mgl64.Vec3, c Color) {
	if l.Strip {
		a, b = l.Points[i], l.Points[i+1]
	} else {
		a, b = l.Points[2*i], l.Points[2*i+1]
	}
	c = l.Color
	if i < len(l.Colors) {
		c = l.Colors[i]
	}
	return a, b, c
}

// NewGridLines builds a size x size grid on the XZ plane, centered on the
// origin, with the given number of divisions per side.
func NewGridLines(size float64, divisions int) *LineGeometry {
	divisions = max(1, divisions)
	half := size / 2
	step := size / float64(divisions)
	l := &LineGeometry{Color: ColorHex(0x888888), Width: 1, DepthTest: true}
	center := ColorHex(0x444444)
	for i := 0; i <= divisions; i++ {
		k := -half + float64(i)*step
		l.Points = append(l.Points,
			mgl64.Vec3{-half, 0, k}, mgl64.Vec3{half, 0, k},
			mgl64.Vec3{k, 0, -half}, mgl64.Vec3{k, 0, half},
		)
		c := l.Color
		if i == divisions/2 && divisions%2 == 0 {
			c = center
		}
		l.Colors = append(l.Colors, c, c)
	}
	return l
}

// NewAxesLines builds the three positive axes: X red, Y green, Z blue.
func NewAxesLines(size float64) *LineGeometry {
	return &LineGeometry{
		Points: []mgl64.Vec3{
			{0, 0, 0}, {size, 0, 0},
			{0, 0, 0}, {0, size, 0},
			{0, 0, 0}, {0, 0, size},
		},
		Colors:    []Color{ColorHex(0xff0000), ColorHex(0x00ff00), ColorHex(0x0000ff)},
		Color:     ColorWhite,
		Width:     2,
		DepthTest: true,
	}
}

// NewPolyline joins points with a single-colored line strip.
func NewPolyline(points []mgl64.Vec3, c Color) *LineGeometry {
	return &LineGeometry{Points: points, Color: c, Width: 1, Strip: true, DepthTest: true}
}
