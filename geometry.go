package stagecraft

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// Geometry is an indexed triangle list in local space. Triangles are wound
// counter-clockwise when seen from their front side.
type Geometry struct {
	Positions []mgl64.Vec3
	Indices   []uint32

	// Optional skin influences, one entry per position. Joints index into the
	// owning node's Skin.
	Joints  [][4]uint16
	Weights [][4]float64
}

// Skinned reports whether every position carries joint influences.
func (g *Geometry) Skinned() bool {
	n := len(g.Positions)
	return n > 0 && len(g.Joints) == n && len(g.Weights) == n
}

// Validate checks that every index addresses a position and that skin
// influences, when present, cover every position.
func (g *Geometry) Validate() error {
	n := uint32(len(g.Positions))
	for i, idx := range g.Indices {
		if idx >= n {
			return errors.Errorf("index %d at %d out of range for %d positions", idx, i, n)
		}
	}
	if len(g.Joints) != 0 && len(g.Joints) != len(g.Positions) {
		return errors.Errorf("%d joint influences for %d positions", len(g.Joints), n)
	}
	if len(g.Weights) != len(g.Joints) {
		return errors.Errorf("%d weights for %d joint influences", len(g.Weights), len(g.Joints))
	}
	return nil
}

// NumTriangles returns the number of indexed triangles.
func (g *Geometry) NumTriangles() int {
	return len(g.Indices) / 3
}

// Bounds returns the local-space axis-aligned bounding box.
func (g *Geometry) Bounds() (lo, hi mgl64.Vec3) {
	if len(g.Positions) == 0 {
		return
	}
	lo, hi = g.Positions[0], g.Positions[0]
	for _, p := range g.Positions[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = math.Min(lo[i], p[i])
			hi[i] = math.Max(hi[i], p[i])
		}
	}
	return lo, hi
}

// SphereParams configures NewSphereGeometry. Zero PhiLength or ThetaLength
// select a full sphere.
type SphereParams struct {
	Radius         float64
	WidthSegments  int
	HeightSegments int
	PhiStart       float64
	PhiLength      float64
	ThetaStart     float64
	ThetaLength    float64
}

// NewSphereGeometry builds a UV sphere, or a section of one when the phi and
// theta ranges are restricted (a dome uses ThetaLength = Pi/2).
func NewSphereGeometry(p SphereParams) *Geometry {
	ws := max(3, p.WidthSegments)
	hs := max(2, p.HeightSegments)
	phiLen := p.PhiLength
	if phiLen == 0 {
		phiLen = 2 * math.Pi
	}
	thetaLen := p.ThetaLength
	if thetaLen == 0 {
		thetaLen = math.Pi
	}
	thetaEnd := math.Min(p.ThetaStart+thetaLen, math.Pi)

	g := &Geometry{}
	grid := make([][]uint32, hs+1)
	for iy := 0; iy <= hs; iy++ {
		row := make([]uint32, ws+1)
		v := float64(iy) / float64(hs)
		for ix := 0; ix <= ws; ix++ {
			u := float64(ix) / float64(ws)
			phi := p.PhiStart + u*phiLen
			theta := p.ThetaStart + v*thetaLen
			g.Positions = append(g.Positions, mgl64.Vec3{
				-p.Radius * math.Cos(phi) * math.Sin(theta),
				p.Radius * math.Cos(theta),
				p.Radius * math.Sin(phi) * math.Sin(theta),
			})
			row[ix] = uint32(len(g.Positions) - 1)
		}
		grid[iy] = row
	}
	for iy := 0; iy < hs; iy++ {
		for ix := 0; ix < ws; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 || p.ThetaStart > 0 {
				g.Indices = append(g.Indices, a, b, d)
			}
			if iy != hs-1 || thetaEnd < math.Pi {
				g.Indices = append(g.Indices, b, c, d)
			}
		}
	}
	return g
}

// NewBoxGeometry builds an axis-aligned box centered on the origin.
func NewBoxGeometry(width, height, depth float64) *Geometry {
	hw, hh, hd := width/2, height/2, depth/2
	g := &Geometry{}
	face := func(a, b, c, d mgl64.Vec3) {
		base := uint32(len(g.Positions))
		g.Positions = append(g.Positions, a, b, c, d)
		g.Indices = append(g.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	face(mgl64.Vec3{hw, -hh, hd}, mgl64.Vec3{hw, -hh, -hd}, mgl64.Vec3{hw, hh, -hd}, mgl64.Vec3{hw, hh, hd})     // +X
	face(mgl64.Vec3{-hw, -hh, -hd}, mgl64.Vec3{-hw, -hh, hd}, mgl64.Vec3{-hw, hh, hd}, mgl64.Vec3{-hw, hh, -hd}) // -X
	face(mgl64.Vec3{-hw, hh, hd}, mgl64.Vec3{hw, hh, hd}, mgl64.Vec3{hw, hh, -hd}, mgl64.Vec3{-hw, hh, -hd})     // +Y
	face(mgl64.Vec3{-hw, -hh, -hd}, mgl64.Vec3{hw, -hh, -hd}, mgl64.Vec3{hw, -hh, hd}, mgl64.Vec3{-hw, -hh, hd}) // -Y
	face(mgl64.Vec3{-hw, -hh, hd}, mgl64.Vec3{hw, -hh, hd}, mgl64.Vec3{hw, hh, hd}, mgl64.Vec3{-hw, hh, hd})     // +Z
	face(mgl64.Vec3{hw, -hh, -hd}, mgl64.Vec3{-hw, -hh, -hd}, mgl64.Vec3{-hw, hh, -hd}, mgl64.Vec3{hw, hh, -hd}) // -Z
	return g
}

// NewCylinderGeometry builds a capped cylinder along Y, centered on the origin.
func NewCylinderGeometry(radiusTop, radiusBottom, height float64, radialSegments int) *Geometry {
	segs := max(3, radialSegments)
	hh := height / 2
	g := &Geometry{}
	ring := func(r, y float64) uint32 {
		start := uint32(len(g.Positions))
		for i := 0; i <= segs; i++ {
			theta := float64(i) / float64(segs) * 2 * math.Pi
			g.Positions = append(g.Positions, mgl64.Vec3{r * math.Sin(theta), y, r * math.Cos(theta)})
		}
		return start
	}
	top := ring(radiusTop, hh)
	bottom := ring(radiusBottom, -hh)
	for i := uint32(0); i < uint32(segs); i++ {
		a, b := top+i, bottom+i
		c, d := bottom+i+1, top+i+1
		g.Indices = append(g.Indices, a, b, d, b, c, d)
	}
	addCap := func(start uint32, y float64, flip bool) {
		center := uint32(len(g.Positions))
		g.Positions = append(g.Positions, mgl64.Vec3{0, y, 0})
		for i := uint32(0); i < uint32(segs); i++ {
			if flip {
				g.Indices = append(g.Indices, center, start+i+1, start+i)
			} else {
				g.Indices = append(g.Indices, center, start+i, start+i+1)
			}
		}
	}
	addCap(top, hh, false)
	addCap(bottom, -hh, true)
	return g
}

// NewPlaneGeometry builds a width x height rectangle in the XY plane facing +Z.
func NewPlaneGeometry(width, height float64) *Geometry {
	hw, hh := width/2, height/2
	return &Geometry{
		Positions: []mgl64.Vec3{{-hw, -hh, 0}, {hw, -hh, 0}, {hw, hh, 0}, {-hw, hh, 0}},
		Indices:   []uint32{0, 1, 2, 0, 2, 3},
	}
}
