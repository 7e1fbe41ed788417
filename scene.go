package stagecraft

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Scene owns the node tree. It has no behavior of its own beyond refreshing
// world transforms; the Loop drives updates and the Renderer draws it.
type Scene struct {
	root *Node

	// Background is the clear color used when the scene is rendered.
	Background Color
}

// NewScene creates a new scene with a pre-created root group.
func NewScene() *Scene {
	return &Scene{
		root:       NewGroup("root"),
		Background: ColorBlack,
	}
}

// Root returns the scene's root node.
func (s *Scene) Root() *Node {
	return s.root
}

// Add attaches nodes directly under the root, in order.
func (s *Scene) Add(nodes ...*Node) {
	s.root.Add(nodes...)
}

// UpdateWorld refreshes the cached world matrix of every dirty node.
func (s *Scene) UpdateWorld() {
	updateWorldTransform(s.root, mgl64.Ident4(), false)
}

// Lights returns every visible light node, in tree order.
func (s *Scene) Lights() []*Node {
	var out []*Node
	collectLights(s.root, &out)
	return out
}

func collectLights(n *Node, out *[]*Node) {
	if !n.Visible {
		return
	}
	if n.Type == NodeTypeLight && n.Light != nil {
		*out = append(*out, n)
	}
	for _, c := range n.children {
		collectLights(c, out)
	}
}
