package mixer

import (
	"context"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/phanxgames/stagecraft"
)

// waitForLoad steps d with dt=0 until no load is pending.
func waitForLoad(t *testing.T, d *Demo) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for d.Loop.Pending() > 0 {
		if time.Now().After(deadline) {
			t.Fatal("model did not load")
		}
		time.Sleep(time.Millisecond)
		d.Loop.Step(0)
	}
}

func snapshot(root *stagecraft.Node) map[*stagecraft.Node]mgl64.Mat4 {
	out := make(map[*stagecraft.Node]mgl64.Mat4)
	root.Traverse(func(n *stagecraft.Node) { out[n] = n.LocalMatrix() })
	return out
}

func assertUnchanged(t *testing.T, before, after map[*stagecraft.Node]mgl64.Mat4) {
	t.Helper()
	for n, m := range before {
		if after[n] != m {
			t.Errorf("node %q moved on a zero-length frame", n.Name)
		}
	}
}

func TestLoaderSelection(t *testing.T) {
	cfg := stagecraft.DefaultRunConfig()
	if _, ok := Loader(cfg).(stagecraft.LoaderFunc); !ok {
		t.Error("empty model path should use the procedural bot")
	}
	cfg.ModelPath = "bot.glb"
	if l, ok := Loader(cfg).(stagecraft.GLTFLoader); !ok || l.Path != "bot.glb" {
		t.Errorf("Loader = %#v, want a GLTFLoader for bot.glb", Loader(cfg))
	}
}

func TestModelAttachesAfterLoad(t *testing.T) {
	d := Build(context.Background(), stagecraft.DefaultRunConfig())
	if d.Mixer != nil {
		t.Fatal("mixer should not exist before the load completes")
	}
	waitForLoad(t, d)
	if d.Model == nil || d.Model.Parent == nil {
		t.Fatal("model not added to the scene")
	}
	if d.Actions.Current() != InitialAction {
		t.Errorf("current action = %q, want %q", d.Actions.Current(), InitialAction)
	}
}

func TestSelectRunBlends(t *testing.T) {
	d := Build(context.Background(), stagecraft.DefaultRunConfig())
	waitForLoad(t, d)
	d.Loop.Step(0.1)

	d.Selector.Select("run")
	d.Loop.Step(0.1)
	if d.Actions.Current() != "run" || !d.Actions.Blending() {
		t.Fatalf("current %q blending %v, want a blend into run", d.Actions.Current(), d.Actions.Blending())
	}

	// Mid-blend, a zero-length frame must not move anything.
	before := snapshot(d.Model)
	d.Loop.Step(0)
	assertUnchanged(t, before, snapshot(d.Model))

	d.Loop.Step(stagecraft.DefaultBlendDuration)
	if d.Actions.Blending() {
		t.Error("blend should be over")
	}
	if d.Actions.Action("walk").IsRunning() {
		t.Error("walk should have stopped")
	}
	if w := d.Actions.Action("run").Weight(); w != 1 {
		t.Errorf("run weight = %v, want 1", w)
	}

	before = snapshot(d.Model)
	d.Loop.Step(0)
	assertUnchanged(t, before, snapshot(d.Model))
}

func TestMissingClipKeepsPlaying(t *testing.T) {
	d := Build(context.Background(), stagecraft.DefaultRunConfig())
	waitForLoad(t, d)
	d.Selector.Select("dance")
	d.Loop.Step(0.1)
	d.Loop.Step(0.1)
	if d.Actions.Current() != InitialAction {
		t.Errorf("current = %q, want %q", d.Actions.Current(), InitialAction)
	}
}

func TestFailedLoadLeavesSceneEmpty(t *testing.T) {
	d := BuildWith(context.Background(), stagecraft.LoaderFunc(func(context.Context) (*stagecraft.Asset, error) {
		return nil, errors.New("boom")
	}))
	waitForLoad(t, d)
	if d.Mixer != nil || d.Model != nil {
		t.Error("a failed load should not attach anything")
	}
	d.Loop.Step(0.1)
}
