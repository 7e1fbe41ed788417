package stagecraft

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if !approxEqual(got, want, 1e-6) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertVec3Near(t *testing.T, name string, got, want mgl64.Vec3) {
	t.Helper()
	if !got.ApproxEqualThreshold(want, 1e-6) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertPanics(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

// transformSnapshot records the local TRS of every node under root.
func transformSnapshot(root *Node) map[*Node][3]any {
	out := make(map[*Node][3]any)
	root.Traverse(func(n *Node) {
		out[n] = [3]any{n.Position, n.Rotation, n.Scale}
	})
	return out
}

func assertSameTransforms(t *testing.T, before, after map[*Node][3]any) {
	t.Helper()
	if len(before) != len(after) {
		t.Fatalf("node count changed: %d -> %d", len(before), len(after))
	}
	for n, b := range before {
		if after[n] != b {
			t.Errorf("node %q transform changed: %v -> %v", n.Name, b, after[n])
		}
	}
}

// assertSameRotation accepts q and -q, which encode the same rotation.
func assertSameRotation(t *testing.T, name string, got, want mgl64.Quat) {
	t.Helper()
	if d := math.Abs(got.Normalize().Dot(want.Normalize())); d < 1-1e-9 {
		t.Errorf("%s = %v, want %v (|dot| %v)", name, got, want, d)
	}
}
