package stagecraft

import (
	"github.com/go-gl/mathgl/mgl64"
)

// worldUp is the default up vector used by LookAt.
var worldUp = mgl64.Vec3{0, 1, 0}

// LocalMatrix computes the node's local matrix.
//
// Composition order: Translate(Position) * Rotate(Rotation) * Scale(Scale)
func (n *Node) LocalMatrix() mgl64.Mat4 {
	t := mgl64.Translate3D(n.Position[0], n.Position[1], n.Position[2])
	r := n.Rotation.Mat4()
	s := mgl64.Scale3D(n.Scale[0], n.Scale[1], n.Scale[2])
	return t.Mul4(r).Mul4(s)
}

// WorldMatrix computes the node's world matrix by composing the local matrices
// of every ancestor. It does not consult or refresh the per-frame cache, so it
// is always current even in the middle of an update.
func (n *Node) WorldMatrix() mgl64.Mat4 {
	m := n.LocalMatrix()
	for p := n.Parent; p != nil; p = p.Parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// CachedWorldMatrix returns the world matrix computed by the last
// Scene.UpdateWorld call.
func (n *Node) CachedWorldMatrix() mgl64.Mat4 {
	return n.worldMatrix
}

// WorldPosition returns the node's origin in world space.
func (n *Node) WorldPosition() mgl64.Vec3 {
	return n.WorldMatrix().Col(3).Vec3()
}

// WorldRotation returns the node's world orientation with scale removed.
func (n *Node) WorldRotation() mgl64.Quat {
	return rotationOf(n.WorldMatrix())
}

// LocalToWorld converts a local-space point to world space.
func (n *Node) LocalToWorld(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(p, n.WorldMatrix())
}

// WorldToLocal converts a world-space point to this node's local space.
func (n *Node) WorldToLocal(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(p, n.WorldMatrix().Inv())
}

// updateWorldTransform recomputes the cached world matrix of n and its
// subtree. parentRecomputed forces recomputation of this node even if it is
// not dirty.
func updateWorldTransform(n *Node, parent mgl64.Mat4, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldMatrix = parent.Mul4(n.LocalMatrix())
		n.transformDirty = false
	}
	for _, child := range n.children {
		updateWorldTransform(child, n.worldMatrix, recompute)
	}
}

// --- Transform property setters ---

// SetPosition sets the node's local position and marks it dirty.
func (n *Node) SetPosition(x, y, z float64) {
	n.Position = mgl64.Vec3{x, y, z}
	n.transformDirty = true
}

// SetScale sets the node's local scale and marks it dirty.
func (n *Node) SetScale(x, y, z float64) {
	n.Scale = mgl64.Vec3{x, y, z}
	n.transformDirty = true
}

// SetEuler sets the node's rotation from Euler angles in radians, applied in
// XYZ order, and marks it dirty.
func (n *Node) SetEuler(x, y, z float64) {
	n.Rotation = mgl64.AnglesToQuat(x, y, z, mgl64.XYZ)
	n.transformDirty = true
}

// SetQuaternion sets the node's rotation and marks it dirty.
func (n *Node) SetQuaternion(q mgl64.Quat) {
	n.Rotation = q
	n.transformDirty = true
}

// RotateX rotates the node about its local X axis by angle radians.
// A zero angle leaves the rotation bit-for-bit unchanged.
func (n *Node) RotateX(angle float64) {
	n.rotateOnAxis(mgl64.Vec3{1, 0, 0}, angle)
}

// RotateY rotates the node about its local Y axis by angle radians.
func (n *Node) RotateY(angle float64) {
	n.rotateOnAxis(mgl64.Vec3{0, 1, 0}, angle)
}

// RotateZ rotates the node about its local Z axis by angle radians.
func (n *Node) RotateZ(angle float64) {
	n.rotateOnAxis(mgl64.Vec3{0, 0, 1}, angle)
}

func (n *Node) rotateOnAxis(axis mgl64.Vec3, angle float64) {
	if angle == 0 {
		return
	}
	n.Rotation = n.Rotation.Mul(mgl64.QuatRotate(angle, axis))
	n.transformDirty = true
}

// MarkDirty marks the node's transform as dirty, forcing recomputation
// on the next frame. Useful after bulk-setting fields directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// LookAt rotates the node so that it faces the world-space point target.
// Cameras point their -Z axis at the target; every other node points +Z.
// The parent's world rotation is compensated so the result is expressed in
// local space.
func (n *Node) LookAt(target mgl64.Vec3) {
	pos := n.WorldPosition()
	var m mgl64.Mat3
	if n.Type == NodeTypeCamera {
		m = lookRotation(pos, target, worldUp)
	} else {
		m = lookRotation(target, pos, worldUp)
	}
	q := mgl64.Mat4ToQuat(m.Mat4())
	if n.Parent != nil {
		q = n.Parent.WorldRotation().Inverse().Mul(q)
	}
	n.Rotation = q.Normalize()
	n.transformDirty = true
}

// lookRotation builds a rotation whose Z axis points from target to eye.
func lookRotation(eye, target, up mgl64.Vec3) mgl64.Mat3 {
	z := eye.Sub(target)
	if z.Len() == 0 {
		z[2] = 1
	}
	z = z.Normalize()
	x := up.Cross(z)
	if x.Len() == 0 {
		// up and z are parallel
		if up[2] == 1 || up[2] == -1 {
			z[0] += 0.0001
		} else {
			z[2] += 0.0001
		}
		z = z.Normalize()
		x = up.Cross(z)
	}
	x = x.Normalize()
	y := z.Cross(x)
	return mgl64.Mat3FromCols(x, y, z)
}

// rotationOf extracts the rotation part of an affine matrix, removing scale.
func rotationOf(m mgl64.Mat4) mgl64.Quat {
	c0 := m.Col(0).Vec3()
	c1 := m.Col(1).Vec3()
	c2 := m.Col(2).Vec3()
	if l := c0.Len(); l != 0 {
		c0 = c0.Mul(1 / l)
	}
	if l := c1.Len(); l != 0 {
		c1 = c1.Mul(1 / l)
	}
	if l := c2.Len(); l != 0 {
		c2 = c2.Mul(1 / l)
	}
	return mgl64.Mat4ToQuat(mgl64.Mat3FromCols(c0, c1, c2).Mat4()).Normalize()
}
