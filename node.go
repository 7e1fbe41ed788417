package stagecraft

import (
	"slices"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"
)

// nodeIDCounter is atomic because loaders build node trees off the loop
// goroutine.
var nodeIDCounter atomic.Uint32

func nextNodeID() uint32 {
	return nodeIDCounter.Add(1)
}

// Node is one element of the 3D scene tree. Every kind of node shares this
// struct; Type says which of the payload pointers is set.
type Node struct {
	ID   uint32
	Name string
	Type NodeType

	Parent   *Node
	children []*Node

	// Local transform relative to Parent. Mutate through the setters, or
	// call MarkDirty after writing the fields directly.
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3

	// Refreshed by Scene.UpdateWorld.
	worldMatrix    mgl64.Mat4
	transformDirty bool

	// Visible false hides the node and its whole subtree.
	Visible     bool
	RenderOrder int
	CastShadow  bool

	// Tag is free for demo code; the renderer never reads it.
	Tag any

	Geometry *Geometry          // NodeTypeMesh
	Material *Material          // NodeTypeMesh
	Skin     *Skin              // NodeTypeMesh, optional
	Line     *LineGeometry      // NodeTypeLine
	Camera   *PerspectiveCamera // NodeTypeCamera
	Light    *Light             // NodeTypeLight

	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.Rotation = mgl64.QuatIdent()
	n.Scale = mgl64.Vec3{1, 1, 1}
	n.Visible = true
	n.transformDirty = true
	n.worldMatrix = mgl64.Ident4()
}

// NewGroup creates a transform-only node with no visual representation.
func NewGroup(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeGroup}
	nodeDefaults(n)
	return n
}

// NewMesh creates a mesh node drawing geom with mat.
func NewMesh(name string, geom *Geometry, mat *Material) *Node {
	n := &Node{Name: name, Type: NodeTypeMesh, Geometry: geom, Material: mat}
	nodeDefaults(n)
	return n
}

// NewLine creates a node that renders line segments.
func NewLine(name string, line *LineGeometry) *Node {
	n := &Node{Name: name, Type: NodeTypeLine, Line: line}
	nodeDefaults(n)
	return n
}

// NewCamera creates a camera node. The camera looks down its local -Z axis
// and inherits its parent's transform, so attaching it to another node
// builds a camera rig.
func NewCamera(name string, fov, aspect, near, far float64) *Node {
	n := &Node{Name: name, Type: NodeTypeCamera, Camera: NewPerspectiveCamera(fov, aspect, near, far)}
	nodeDefaults(n)
	return n
}

// NewLight creates a light node.
func NewLight(name string, light *Light) *Node {
	n := &Node{Name: name, Type: NodeTypeLight, Light: light}
	nodeDefaults(n)
	return n
}

// --- Hierarchy ---

// AddChild attaches child as the last child of n, detaching it from any
// previous parent. It panics on a nil child or when child is n or one of its
// ancestors.
func (n *Node) AddChild(child *Node) {
	switch {
	case child == nil:
		panic("stagecraft: AddChild with nil node")
	case globalDebug.Load():
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	for p := n; p != nil; p = p.Parent {
		if p == child {
			panic("stagecraft: AddChild of " + child.Name + " under " + n.Name + " forms a cycle")
		}
	}
	if old := child.Parent; old != nil {
		old.children = detach(old.children, child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	child.MarkDirty()
	if globalDebug.Load() {
		debugCheckTreeDepth(child)
	}
}

// Add attaches every node in children, in order.
func (n *Node) Add(children ...*Node) {
	for _, c := range children {
		n.AddChild(c)
	}
}

// RemoveChild detaches a direct child. It panics if child belongs to another
// parent.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("stagecraft: RemoveChild of " + child.Name + ", which is not a child of " + n.Name)
	}
	n.children = detach(n.children, child)
	child.Parent = nil
	child.MarkDirty()
}

// RemoveFromParent detaches n. Root nodes are left alone.
func (n *Node) RemoveFromParent() {
	if p := n.Parent; p != nil {
		p.RemoveChild(n)
	}
}

// Children returns the children in attach order. Callers must not modify
// the slice.
func (n *Node) Children() []*Node { return n.children }

// NumChildren returns the number of direct children.
func (n *Node) NumChildren() int { return len(n.children) }

// ChildAt returns the i-th direct child.
func (n *Node) ChildAt(i int) *Node { return n.children[i] }

// Traverse calls fn for n and every descendant, depth-first, parents before
// children, siblings in insertion order.
func (n *Node) Traverse(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Traverse(fn)
	}
}

// FindByName returns the first node in the subtree (including n) with the
// given name, or nil.
func (n *Node) FindByName(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.children {
		if found := c.FindByName(name); found != nil {
			return found
		}
	}
	return nil
}

// detach returns list without child, keeping order and clearing the freed
// slot.
func detach(list []*Node, child *Node) []*Node {
	i := slices.Index(list, child)
	if i < 0 {
		return list
	}
	return slices.Delete(list, i, i+1)
}

// --- Disposal ---

// Dispose detaches n and releases it together with its subtree. A disposed
// node has ID 0 and must not be attached again.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	release(n)
}

func release(n *Node) {
	for _, c := range n.children {
		c.Parent = nil
		release(c)
	}
	*n = Node{Name: n.Name, Type: n.Type, disposed: true}
}

// IsDisposed reports whether Dispose has run on n or an ancestor.
func (n *Node) IsDisposed() bool {
	return n.disposed
}
