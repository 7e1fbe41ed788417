package stagecraft

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// --- Constructor defaults ---

func TestNewGroupDefaults(t *testing.T) {
	n := NewGroup("g")
	assertNodeDefaults(t, n, "g", NodeTypeGroup)
}

func TestNewMeshDefaults(t *testing.T) {
	geom := NewBoxGeometry(1, 1, 1)
	mat := NewMaterial(ColorWhite)
	n := NewMesh("box", geom, mat)
	assertNodeDefaults(t, n, "box", NodeTypeMesh)
	if n.Geometry != geom || n.Material != mat {
		t.Error("Geometry/Material not set")
	}
}

func TestNewCameraDefaults(t *testing.T) {
	n := NewCamera("cam", 75, 2, 0.1, 100)
	assertNodeDefaults(t, n, "cam", NodeTypeCamera)
	if n.Camera == nil || n.Camera.Fov != 75 || n.Camera.Aspect != 2 {
		t.Errorf("Camera = %+v", n.Camera)
	}
}

func TestNewLightDefaults(t *testing.T) {
	n := NewPointLight("p", ColorWhite, 500)
	assertNodeDefaults(t, n, "p", NodeTypeLight)
	if n.Light.Kind != LightPoint || n.Light.Intensity != 500 {
		t.Errorf("Light = %+v", n.Light)
	}
}

func assertNodeDefaults(t *testing.T, n *Node, name string, typ NodeType) {
	t.Helper()
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Name != name {
		t.Errorf("Name = %q, want %q", n.Name, name)
	}
	if n.Type != typ {
		t.Errorf("Type = %v, want %v", n.Type, typ)
	}
	if n.Scale != (mgl64.Vec3{1, 1, 1}) {
		t.Errorf("Scale = %v, want (1, 1, 1)", n.Scale)
	}
	if n.Rotation != mgl64.QuatIdent() {
		t.Errorf("Rotation = %v, want identity", n.Rotation)
	}
	if !n.Visible {
		t.Error("Visible should be true")
	}
	if !n.transformDirty {
		t.Error("transformDirty should be true")
	}
}

// --- Unique IDs ---

func TestUniqueIDs(t *testing.T) {
	a := NewGroup("a")
	b := NewGroup("b")
	if a.ID == b.ID {
		t.Errorf("IDs should differ: %d == %d", a.ID, b.ID)
	}
}

// --- Tree manipulation ---

func TestAddChild(t *testing.T) {
	parent := NewGroup("parent")
	child := NewGroup("child")
	parent.AddChild(child)
	if child.Parent != parent {
		t.Error("child.Parent should be parent")
	}
	if parent.NumChildren() != 1 || parent.ChildAt(0) != child {
		t.Error("parent should hold child")
	}
}

func TestAddChildReparents(t *testing.T) {
	a := NewGroup("a")
	b := NewGroup("b")
	c := NewGroup("c")
	a.AddChild(c)
	b.AddChild(c)
	if a.NumChildren() != 0 {
		t.Errorf("old parent has %d children, want 0", a.NumChildren())
	}
	if c.Parent != b {
		t.Error("child should be under the new parent")
	}
}

func TestAddChildPanics(t *testing.T) {
	root := NewGroup("root")
	child := NewGroup("child")
	root.AddChild(child)
	assertPanics(t, "nil child", func() { root.AddChild(nil) })
	assertPanics(t, "cycle", func() { child.AddChild(root) })
	assertPanics(t, "self", func() { root.AddChild(root) })
}

func TestAddPreservesOrder(t *testing.T) {
	root := NewGroup("root")
	a, b, c := NewGroup("a"), NewGroup("b"), NewGroup("c")
	root.Add(a, b, c)
	for i, want := range []*Node{a, b, c} {
		if root.ChildAt(i) != want {
			t.Errorf("child %d = %q, want %q", i, root.ChildAt(i).Name, want.Name)
		}
	}
}

func TestRemoveChild(t *testing.T) {
	root := NewGroup("root")
	a, b := NewGroup("a"), NewGroup("b")
	root.Add(a, b)
	root.RemoveChild(a)
	if a.Parent != nil {
		t.Error("removed child should have no parent")
	}
	if root.NumChildren() != 1 || root.ChildAt(0) != b {
		t.Error("remaining child should be b")
	}
	assertPanics(t, "not a child", func() { root.RemoveChild(a) })
}

func TestRemoveFromParentNoParent(t *testing.T) {
	n := NewGroup("n")
	n.RemoveFromParent() // no-op
	if n.Parent != nil {
		t.Error("Parent should stay nil")
	}
}

func TestTraverseOrder(t *testing.T) {
	root := NewGroup("root")
	a, b := NewGroup("a"), NewGroup("b")
	a1 := NewGroup("a1")
	root.Add(a, b)
	a.AddChild(a1)

	var names []string
	root.Traverse(func(n *Node) { names = append(names, n.Name) })
	want := []string{"root", "a", "a1", "b"}
	if len(names) != len(want) {
		t.Fatalf("visited %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("visit %d = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestFindByName(t *testing.T) {
	root := NewGroup("root")
	arm := NewGroup("arm")
	hand := NewGroup("hand")
	root.AddChild(arm)
	arm.AddChild(hand)
	if got := root.FindByName("hand"); got != hand {
		t.Errorf("FindByName(hand) = %v", got)
	}
	if got := root.FindByName("missing"); got != nil {
		t.Errorf("FindByName(missing) = %v, want nil", got)
	}
}

// --- Disposal ---

func TestDispose(t *testing.T) {
	root := NewGroup("root")
	a := NewGroup("a")
	a1 := NewGroup("a1")
	root.AddChild(a)
	a.AddChild(a1)

	a.Dispose()
	if !a.IsDisposed() || !a1.IsDisposed() {
		t.Error("subtree should be disposed")
	}
	if root.NumChildren() != 0 {
		t.Error("disposed node should be removed from its parent")
	}
	if a.ID != 0 {
		t.Error("disposed node ID should be cleared")
	}
	a.Dispose() // second call is a no-op
}

func TestDisposedNodePanicsInDebug(t *testing.T) {
	globalDebug.Store(true)
	defer globalDebug.Store(false)

	n := NewGroup("n")
	n.Dispose()
	assertPanics(t, "AddChild on disposed", func() { NewGroup("p").AddChild(n) })
}
