package stagecraft

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestSkinVertexBlendsWeights(t *testing.T) {
	mats := []mgl64.Mat4{mgl64.Translate3D(2, 0, 0), mgl64.Translate3D(0, 4, 0)}
	got, ok := skinVertex(mgl64.Vec3{1, 1, 1}, [4]uint16{0, 1}, [4]float64{0.5, 0.5}, mats)
	if !ok {
		t.Fatal("expected a skinned vertex")
	}
	assertVec3Near(t, "blend", got, mgl64.Vec3{2, 3, 1})

	// Weights are normalized by their sum.
	got, _ = skinVertex(mgl64.Vec3{}, [4]uint16{0, 1}, [4]float64{1, 3}, mats)
	assertVec3Near(t, "normalized", got, mgl64.Vec3{0.5, 3, 0})
}

func TestSkinVertexIgnoresUnusableInfluences(t *testing.T) {
	mats := []mgl64.Mat4{mgl64.Translate3D(1, 0, 0)}
	got, ok := skinVertex(mgl64.Vec3{}, [4]uint16{0, 9}, [4]float64{1, 1}, mats)
	if !ok {
		t.Fatal("expected the in-range joint to apply")
	}
	assertVec3Near(t, "out-of-range joint", got, mgl64.Vec3{1, 0, 0})

	if _, ok := skinVertex(mgl64.Vec3{}, [4]uint16{0}, [4]float64{}, mats); ok {
		t.Error("zero weights should report no influence")
	}
}

func TestNewSkinPadsInverseBind(t *testing.T) {
	a, b := NewGroup("a"), NewGroup("b")
	s := NewSkin([]*Node{a, b}, []mgl64.Mat4{mgl64.Translate3D(1, 2, 3)})
	if len(s.InverseBind) != 2 {
		t.Fatalf("inverse bind matrices = %d, want 2", len(s.InverseBind))
	}
	if s.InverseBind[1] != mgl64.Ident4() {
		t.Errorf("missing matrix = %v, want identity", s.InverseBind[1])
	}
}

func skinnedStrip() (*Scene, *Node, *Node) {
	root := NewGroup("rig")
	bone := NewGroup("bone")
	geom := NewPlaneGeometry(2, 2)
	geom.Joints = make([][4]uint16, len(geom.Positions))
	geom.Weights = make([][4]float64, len(geom.Positions))
	for i := range geom.Weights {
		geom.Weights[i] = [4]float64{1}
	}
	body := NewMesh("body", geom, NewEmissiveMaterial(ColorWhite))
	body.Skin = NewSkin([]*Node{bone}, nil)
	root.AddChild(bone)
	root.AddChild(body)
	s := NewScene()
	s.Add(root)
	return s, bone, body
}

func TestSkinnedMeshFollowsJoint(t *testing.T) {
	s, bone, body := skinnedStrip()
	// The mesh's own transform is ignored once skinned.
	body.SetPosition(100, 0, 0)
	bone.SetPosition(0, 3, 0)
	s.UpdateWorld()

	r := NewRenderer(10, 10)
	wp := r.worldPositions(body)
	assertVec3Near(t, "vertex 0", wp[0], mgl64.Vec3{-1, 2, 0})
	assertVec3Near(t, "vertex 2", wp[2], mgl64.Vec3{1, 4, 0})
}

func TestUnskinnedMeshUsesNodeTransform(t *testing.T) {
	s, _, body := skinnedStrip()
	body.Skin = nil
	body.SetPosition(5, 0, 0)
	s.UpdateWorld()

	r := NewRenderer(10, 10)
	wp := r.worldPositions(body)
	assertVec3Near(t, "vertex 0", wp[0], mgl64.Vec3{4, -1, 0})
}

func TestGeometryValidate(t *testing.T) {
	g := NewPlaneGeometry(1, 1)
	if err := g.Validate(); err != nil {
		t.Fatalf("plane: %v", err)
	}
	g.Indices = append(g.Indices, 0, 1, 4)
	if err := g.Validate(); err == nil {
		t.Error("expected an error for an index past the positions")
	}

	g = NewPlaneGeometry(1, 1)
	g.Joints = make([][4]uint16, 2)
	g.Weights = make([][4]float64, 2)
	if err := g.Validate(); err == nil {
		t.Error("expected an error for partial influences")
	}
	if g.Skinned() {
		t.Error("partial influences should not count as skinned")
	}
}
