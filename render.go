package stagecraft

import (
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// maxBatchVertices is the largest vertex count addressable by uint16 indices.
const maxBatchVertices = 65535

// drawKey orders submission. Depth-tested primitives go first, back to
// front, then overlays; RenderOrder outranks depth within each group.
type drawKey struct {
	overlay     bool
	renderOrder int
	depth       float64
}

func (a drawKey) before(b drawKey) bool {
	if a.overlay != b.overlay {
		return !a.overlay
	}
	if a.renderOrder != b.renderOrder {
		return a.renderOrder < b.renderOrder
	}
	return a.depth > b.depth
}

// screenTri is a projected, shaded triangle ready for submission.
type screenTri struct {
	drawKey
	x, y  [3]float32
	color Color
}

// screenLine is a projected line segment.
type screenLine struct {
	drawKey
	x0, y0, x1, y1 float32
	color          Color
	width          float32
}

// Renderer projects the scene on the CPU and submits flat-shaded triangles
// through ebiten's DrawTriangles. It implements SizeSetter so a Resizer can
// drive its buffer size.
type Renderer struct {
	width, height int
	sizeChanges   int

	// ClearColor overrides the scene background when its alpha is non-zero.
	ClearColor Color

	tris  []screenTri
	lines []screenLine
	verts []ebiten.Vertex
	inds  []uint16

	worldPos  []mgl64.Vec3
	jointMats []mgl64.Mat4
}

// NewRenderer creates a renderer with the given buffer size.
func NewRenderer(width, height int) *Renderer {
	return &Renderer{width: width, height: height}
}

// SetSize sets the pixel buffer size.
func (r *Renderer) SetSize(width, height int) {
	r.width, r.height = width, height
	r.sizeChanges++
}

// Size returns the pixel buffer size.
func (r *Renderer) Size() (width, height int) {
	return r.width, r.height
}

// SizeChanges returns how many times SetSize was called.
func (r *Renderer) SizeChanges() int {
	return r.sizeChanges
}

// Render draws scene as seen from camNode into screen.
func (r *Renderer) Render(screen *ebiten.Image, scene *Scene, camNode *Node) {
	bg := scene.Background
	if r.ClearColor.A != 0 {
		bg = r.ClearColor
	}
	screen.Fill(bg.RGBA())
	if camNode == nil {
		return
	}
	r.collect(scene, camNode)
	r.submit(screen)
}

// collect refreshes world transforms and fills r.tris and r.lines, sorted in
// submission order.
func (r *Renderer) collect(scene *Scene, camNode *Node) {
	r.tris = r.tris[:0]
	r.lines = r.lines[:0]
	scene.UpdateWorld()

	lights := resolveLights(scene.Lights())
	vp := ViewProjection(camNode)
	eye := camNode.WorldPosition()
	r.traverse(scene.Root(), vp, eye, lights)

	sort.SliceStable(r.tris, func(i, j int) bool {
		return r.tris[i].before(r.tris[j].drawKey)
	})
	sort.SliceStable(r.lines, func(i, j int) bool {
		return r.lines[i].before(r.lines[j].drawKey)
	})
}

func (r *Renderer) traverse(n *Node, vp mgl64.Mat4, eye mgl64.Vec3, lights []litLight) {
	if !n.Visible {
		return
	}
	switch n.Type {
	case NodeTypeMesh:
		if n.Geometry != nil && n.Material != nil {
			r.emitMesh(n, vp, eye, lights)
		}
	case NodeTypeLine:
		if n.Line != nil {
			r.emitLines(n, vp)
		}
	}
	for _, c := range n.children {
		r.traverse(c, vp, eye, lights)
	}
}

// project maps a world-space point to pixel coordinates and NDC depth. ok is
// false for points at or behind the camera plane.
func (r *Renderer) project(vp mgl64.Mat4, p mgl64.Vec3) (x, y float32, depth float64, ok bool) {
	clip := vp.Mul4x1(p.Vec4(1))
	if clip[3] <= 1e-6 {
		return 0, 0, 0, false
	}
	x = float32((clip[0]/clip[3]*0.5 + 0.5) * float64(r.width))
	y = float32((1 - (clip[1]/clip[3]*0.5 + 0.5)) * float64(r.height))
	return x, y, clip[2] / clip[3], true
}

// worldPositions returns the mesh vertices in world space, skinned when the
// node carries a skin and the geometry has matching influences.
func (r *Renderer) worldPositions(n *Node) []mgl64.Vec3 {
	g := n.Geometry
	if cap(r.worldPos) < len(g.Positions) {
		r.worldPos = make([]mgl64.Vec3, len(g.Positions))
	}
	out := r.worldPos[:len(g.Positions)]
	skinned := n.Skin != nil && g.Skinned()
	if skinned {
		r.jointMats = n.Skin.jointMatrices(r.jointMats[:0])
	}
	for i, p := range g.Positions {
		if skinned {
			if q, ok := skinVertex(p, g.Joints[i], g.Weights[i], r.jointMats); ok {
				out[i] = q
				continue
			}
		}
		out[i] = mgl64.TransformCoordinate(p, n.worldMatrix)
	}
	return out
}

func (r *Renderer) emitMesh(n *Node, vp mgl64.Mat4, eye mgl64.Vec3, lights []litLight) {
	g := n.Geometry
	wp := r.worldPositions(n)
	for t := 0; t+2 < len(g.Indices); t += 3 {
		var tri [3]mgl64.Vec3
		st := screenTri{drawKey: drawKey{overlay: !n.Material.DepthTest, renderOrder: n.RenderOrder}}
		visible := true
		for k := 0; k < 3 && visible; k++ {
			tri[k] = wp[g.Indices[t+k]]
			var d float64
			st.x[k], st.y[k], d, visible = r.project(vp, tri[k])
			st.depth += d / 3
		}
		if !visible {
			continue
		}
		normal := tri[1].Sub(tri[0]).Cross(tri[2].Sub(tri[0]))
		if normal.Len() == 0 {
			continue
		}
		normal = normal.Normalize()
		center := tri[0].Add(tri[1]).Add(tri[2]).Mul(1.0 / 3)
		// Two-sided lighting: face the normal toward the viewer.
		if normal.Dot(eye.Sub(center)) < 0 {
			normal = normal.Mul(-1)
		}
		st.color = shade(n.Material, center, normal, lights)
		r.tris = append(r.tris, st)
	}
}

func (r *Renderer) emitLines(n *Node, vp mgl64.Mat4) {
	l := n.Line
	width := float32(l.Width)
	if width <= 0 {
		width = 1
	}
	for i := 0; i < l.NumSegments(); i++ {
		a, b, c := l.Segment(i)
		x0, y0, d0, ok0 := r.project(vp, mgl64.TransformCoordinate(a, n.worldMatrix))
		x1, y1, d1, ok1 := r.project(vp, mgl64.TransformCoordinate(b, n.worldMatrix))
		if !ok0 || !ok1 {
			continue
		}
		r.lines = append(r.lines, screenLine{
			drawKey: drawKey{overlay: !l.DepthTest, renderOrder: n.RenderOrder, depth: (d0 + d1) / 2},
			x0:      x0,
			y0:      y0,
			x1:      x1,
			y1:      y1,
			color:   c,
			width:   width,
		})
	}
}

// submit draws triangles in batches of at most maxBatchVertices and strokes
// each line at its place in the draw order, flushing the pending batch first.
func (r *Renderer) submit(screen *ebiten.Image) {
	src := ensureWhitePixel()
	r.verts = r.verts[:0]
	r.inds = r.inds[:0]
	flush := func() {
		if len(r.inds) == 0 {
			return
		}
		screen.DrawTriangles(r.verts, r.inds, src, &ebiten.DrawTrianglesOptions{})
		r.verts = r.verts[:0]
		r.inds = r.inds[:0]
	}
	li := 0
	for i := range r.tris {
		t := &r.tris[i]
		for ; li < len(r.lines) && r.lines[li].before(t.drawKey); li++ {
			flush()
			strokeLine(screen, &r.lines[li])
		}
		if len(r.verts)+3 > maxBatchVertices {
			flush()
		}
		base := uint16(len(r.verts))
		cr, cg, cb, ca := float32(t.color.R), float32(t.color.G), float32(t.color.B), float32(t.color.A)
		for k := 0; k < 3; k++ {
			r.verts = append(r.verts, ebiten.Vertex{
				DstX: t.x[k], DstY: t.y[k],
				SrcX: 0.5, SrcY: 0.5,
				ColorR: cr * ca, ColorG: cg * ca, ColorB: cb * ca, ColorA: ca,
			})
		}
		r.inds = append(r.inds, base, base+1, base+2)
	}
	flush()
	for ; li < len(r.lines); li++ {
		strokeLine(screen, &r.lines[li])
	}
}

func strokeLine(screen *ebiten.Image, l *screenLine) {
	vector.StrokeLine(screen, l.x0, l.y0, l.x1, l.y1, l.width, l.color.RGBA(), true)
}

// Stats returns the triangle and line counts of the last collected frame.
func (r *Renderer) Stats() (triangles, lines int) {
	return len(r.tris), len(r.lines)
}

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image used as
// the source texture of untextured triangles.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}
