package stagecraft

import (
	"github.com/go-gl/mathgl/mgl64"
)

// PerspectiveCamera holds projection parameters. Its position and orientation
// come from the node it is attached to (see NewCamera).
type PerspectiveCamera struct {
	// Fov is the vertical field of view in degrees.
	Fov float64
	// Aspect is width / height of the viewport.
	Aspect float64
	// Near and Far are the clip plane distances.
	Near, Far float64

	projection        mgl64.Mat4
	projectionUpdates int
}

// NewPerspectiveCamera creates a camera and computes its projection matrix.
func NewPerspectiveCamera(fov, aspect, near, far float64) *PerspectiveCamera {
	c := &PerspectiveCamera{Fov: fov, Aspect: aspect, Near: near, Far: far}
	c.projection = c.computeProjection()
	return c
}

// UpdateProjectionMatrix recomputes the projection matrix. Call this after
// changing Fov, Aspect, Near or Far.
func (c *PerspectiveCamera) UpdateProjectionMatrix() {
	c.projection = c.computeProjection()
	c.projectionUpdates++
}

// ProjectionUpdates returns how many times UpdateProjectionMatrix has run.
func (c *PerspectiveCamera) ProjectionUpdates() int {
	return c.projectionUpdates
}

// Projection returns the cached projection matrix.
func (c *PerspectiveCamera) Projection() mgl64.Mat4 {
	return c.projection
}

func (c *PerspectiveCamera) computeProjection() mgl64.Mat4 {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	return mgl64.Perspective(mgl64.DegToRad(c.Fov), aspect, c.Near, c.Far)
}

// viewMatrix returns the view matrix for a camera node: the inverse of its
// world matrix.
func viewMatrix(camNode *Node) mgl64.Mat4 {
	return camNode.WorldMatrix().Inv()
}

// ViewProjection returns projection * view for a camera node.
// Panics if camNode is not a camera.
func ViewProjection(camNode *Node) mgl64.Mat4 {
	if camNode.Camera == nil {
		panic("stagecraft: node is not a camera")
	}
	return camNode.Camera.Projection().Mul4(viewMatrix(camNode))
}
