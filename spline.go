package stagecraft

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// defaultArcLengthDivisions is the sampling resolution of the arc-length table.
const defaultArcLengthDivisions = 200

// SplineCurve is a 2D uniform Catmull-Rom spline through a list of control
// points. Point parameterises by control-point index; PointAt parameterises
// by arc length, so equal steps in u travel equal distances.
type SplineCurve struct {
	points    []mgl64.Vec2
	arcLength []float64
}

// NewSplineCurve creates a curve. Panics with fewer than two points.
func NewSplineCurve(points []mgl64.Vec2) *SplineCurve {
	if len(points) < 2 {
		panic("stagecraft: spline needs at least two points")
	}
	c := &SplineCurve{points: append([]mgl64.Vec2(nil), points...)}
	c.buildArcLengths(defaultArcLengthDivisions)
	return c
}

// Point returns the curve position at t in [0, 1].
func (c *SplineCurve) Point(t float64) mgl64.Vec2 {
	pts := c.points
	n := len(pts)
	p := float64(n-1) * t
	i := int(math.Floor(p))
	w := p - float64(i)
	if i >= n-1 {
		i = n - 2
		w = 1
	}
	if i < 0 {
		i, w = 0, 0
	}
	p0 := pts[max(i-1, 0)]
	p1 := pts[i]
	p2 := pts[min(i+1, n-1)]
	p3 := pts[min(i+2, n-1)]
	return mgl64.Vec2{
		catmullRom(w, p0[0], p1[0], p2[0], p3[0]),
		catmullRom(w, p0[1], p1[1], p2[1], p3[1]),
	}
}

func catmullRom(t, p0, p1, p2, p3 float64) float64 {
	v0 := (p2 - p0) * 0.5
	v1 := (p3 - p1) * 0.5
	t2 := t * t
	t3 := t * t2
	return (2*p1-2*p2+v0+v1)*t3 + (-3*p1+3*p2-2*v0-v1)*t2 + v0*t + p1
}

// PointAt returns the position at arc-length fraction u in [0, 1].
func (c *SplineCurve) PointAt(u float64) mgl64.Vec2 {
	return c.Point(c.uToT(u))
}

// Points samples divisions+1 evenly spaced (in t) points along the curve.
func (c *SplineCurve) Points(divisions int) []mgl64.Vec2 {
	divisions = max(1, divisions)
	out := make([]mgl64.Vec2, divisions+1)
	for i := 0; i <= divisions; i++ {
		out[i] = c.Point(float64(i) / float64(divisions))
	}
	return out
}

// Length returns the approximate total arc length.
func (c *SplineCurve) Length() float64 {
	return c.arcLength[len(c.arcLength)-1]
}

func (c *SplineCurve) buildArcLengths(divisions int) {
	c.arcLength = make([]float64, divisions+1)
	last := c.Point(0)
	for i := 1; i <= divisions; i++ {
		p := c.Point(float64(i) / float64(divisions))
		c.arcLength[i] = c.arcLength[i-1] + p.Sub(last).Len()
		last = p
	}
}

// uToT maps an arc-length fraction to the curve parameter t.
func (c *SplineCurve) uToT(u float64) float64 {
	lengths := c.arcLength
	n := len(lengths)
	total := lengths[n-1]
	if total == 0 {
		return u
	}
	target := u * total
	i := sort.SearchFloat64s(lengths, target)
	if i <= 0 {
		return 0
	}
	if i >= n {
		return 1
	}
	before := lengths[i-1]
	segment := lengths[i] - before
	frac := 0.0
	if segment > 0 {
		frac = (target - before) / segment
	}
	return (float64(i-1) + frac) / float64(n-1)
}
