package stagecraft

// Toggle is anything a panel can show or hide.
type Toggle interface {
	Visible() bool
	SetVisible(bool)
}

// NodeToggle toggles the visibility of a single node.
type NodeToggle struct {
	Node *Node
}

// Visible reports the node's visibility.
func (t NodeToggle) Visible() bool {
	return t.Node.Visible
}

// SetVisible shows or hides the node.
func (t NodeToggle) SetVisible(v bool) {
	t.Node.Visible = v
}

// helperRenderOrder puts helper lines after regular geometry.
const helperRenderOrder = 1

// AxisGridHelper draws a local axes gizmo and a grid on a node. The helper
// lines ignore depth so they stay visible inside solid meshes.
type AxisGridHelper struct {
	Axes *Node
	Grid *Node
}

// NewAxisGridHelper attaches the helper to node. units is the grid size and
// axes length. The helper starts hidden.
func NewAxisGridHelper(node *Node, units float64) *AxisGridHelper {
	if units <= 0 {
		units = 10
	}
	axes := NewLine(node.Name+"_axes", NewAxesLines(units/2))
	axes.RenderOrder = helperRenderOrder + 1
	grid := NewLine(node.Name+"_grid", NewGridLines(units, int(units)))
	grid.RenderOrder = helperRenderOrder
	axes.Line.DepthTest = false
	grid.Line.DepthTest = false
	node.AddChild(grid)
	node.AddChild(axes)
	h := &AxisGridHelper{Axes: axes, Grid: grid}
	h.SetVisible(false)
	return h
}

// Visible reports whether the helper is shown.
func (h *AxisGridHelper) Visible() bool {
	return h.Grid.Visible
}

// SetVisible shows or hides both the axes and the grid.
func (h *AxisGridHelper) SetVisible(v bool) {
	h.Grid.Visible = v
	h.Axes.Visible = v
}
