package stagecraft

import "github.com/go-gl/mathgl/mgl64"

// Skin binds a mesh's vertices to joint nodes. A skinned mesh ignores its
// own node transform: vertices follow the joints' world transforms.
type Skin struct {
	Joints []*Node
	// InverseBind maps mesh space to each joint's space at bind time.
	InverseBind []mgl64.Mat4
}

// NewSkin pairs joints with their inverse bind matrices. Missing matrices
// default to identity.
func NewSkin(joints []*Node, inverseBind []mgl64.Mat4) *Skin {
	s := &Skin{Joints: joints, InverseBind: make([]mgl64.Mat4, len(joints))}
	for i := range s.InverseBind {
		if i < len(inverseBind) {
			s.InverseBind[i] = inverseBind[i]
		} else {
			s.InverseBind[i] = mgl64.Ident4()
		}
	}
	return s
}

// jointMatrices appends world(joint) * inverseBind for every joint to dst.
// World matrices must be current.
func (s *Skin) jointMatrices(dst []mgl64.Mat4) []mgl64.Mat4 {
	for i, j := range s.Joints {
		dst = append(dst, j.worldMatrix.Mul4(s.InverseBind[i]))
	}
	return dst
}

// skinVertex blends p through up to four joint matrices. ok is false when no
// usable weight remains.
func skinVertex(p mgl64.Vec3, joints [4]uint16, weights [4]float64, mats []mgl64.Mat4) (mgl64.Vec3, bool) {
	var out mgl64.Vec3
	total := 0.0
	for k, w := range weights {
		if w <= 0 || int(joints[k]) >= len(mats) {
			continue
		}
		out = out.Add(mgl64.TransformCoordinate(p, mats[joints[k]]).Mul(w))
		total += w
	}
	if total <= 0 {
		return p, false
	}
	return out.Mul(1 / total), true
}
