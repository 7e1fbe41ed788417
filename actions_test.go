package stagecraft

import (
	"testing"

	"github.com/pkg/errors"
)

func controllerFixture() (*Mixer, *ActionController) {
	root, _, slide, lift := mixerFixture()
	m := NewMixer(root)
	c := NewActionController(m)
	c.Bind([]*AnimationClip{slide, lift})
	return m, c
}

func TestActionControllerStartsIdle(t *testing.T) {
	_, c := controllerFixture()
	if c.State() != StateIdle || c.Current() != "" {
		t.Errorf("state = %v current = %q, want idle", c.State(), c.Current())
	}
	if len(c.Names()) != 2 {
		t.Errorf("Names = %v, want 2 entries", c.Names())
	}
	if c.BlendDuration != DefaultBlendDuration {
		t.Errorf("BlendDuration = %v, want %v", c.BlendDuration, DefaultBlendDuration)
	}
}

func TestRequestFirstActionStartsWithoutBlend(t *testing.T) {
	_, c := controllerFixture()
	tr, err := c.Request("slide")
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	if tr != TransitionStart {
		t.Errorf("transition = %v, want start", tr)
	}
	if c.State() != StatePlaying || c.Current() != "slide" {
		t.Errorf("state = %v current = %q", c.State(), c.Current())
	}
	a := c.Action("slide")
	if !a.IsRunning() || a.Weight() != 1 {
		t.Errorf("slide running %v weight %v, want running at weight 1", a.IsRunning(), a.Weight())
	}
	if c.Blending() {
		t.Error("no blend expected from idle")
	}
}

func TestRequestCurrentActionIsNoop(t *testing.T) {
	_, c := controllerFixture()
	c.Request("slide")
	tr, err := c.Request("slide")
	if err != nil || tr != TransitionNone {
		t.Errorf("Request(current) = %v, %v, want none, nil", tr, err)
	}
}

func TestRequestOtherActionCrossFades(t *testing.T) {
	m, c := controllerFixture()
	c.Request("slide")
	m.Update(1)

	tr, err := c.Request("lift")
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	if tr != TransitionBlend {
		t.Errorf("transition = %v, want blend", tr)
	}
	if c.Current() != "lift" {
		t.Errorf("current = %q, want lift immediately", c.Current())
	}
	if !c.Blending() {
		t.Error("Blending = false during crossfade")
	}

	m.Update(c.BlendDuration / 2)
	assertNear(t, "slide weight", c.Action("slide").Weight(), 0.5)
	assertNear(t, "lift weight", c.Action("lift").Weight(), 0.5)

	m.Update(c.BlendDuration / 2)
	if c.Blending() {
		t.Error("Blending = true after the fade")
	}
	if c.Action("slide").IsRunning() {
		t.Error("slide should stop after fading out")
	}
	assertNear(t, "lift weight", c.Action("lift").Weight(), 1)
}

func TestRequestUnknownClip(t *testing.T) {
	_, c := controllerFixture()
	c.Request("slide")

	tr, err := c.Request("swim")
	if tr != TransitionNone {
		t.Errorf("transition = %v, want none", tr)
	}
	if !errors.Is(err, ErrClipNotFound) {
		t.Fatalf("err = %v, want ErrClipNotFound", err)
	}
	var cnf *ClipNotFoundError
	if !errors.As(err, &cnf) || cnf.Name != "swim" {
		t.Errorf("err = %#v, want *ClipNotFoundError for swim", err)
	}
	if c.Current() != "slide" || !c.Action("slide").IsRunning() {
		t.Error("current action should keep playing")
	}
}

func TestRequestUnknownClipFromIdle(t *testing.T) {
	_, c := controllerFixture()
	if _, err := c.Request("swim"); err == nil {
		t.Fatal("expected error")
	}
	if c.State() != StateIdle {
		t.Errorf("state = %v, want idle", c.State())
	}
}

func TestTransitionString(t *testing.T) {
	for tr, want := range map[Transition]string{
		TransitionNone:  "none",
		TransitionStart: "start",
		TransitionBlend: "blend",
	} {
		if tr.String() != want {
			t.Errorf("String() = %q, want %q", tr.String(), want)
		}
	}
}

func TestSelectorForwardsRequests(t *testing.T) {
	_, c := controllerFixture()
	sel := NewSelector("slide")
	u := sel.Updatable(c)

	u(0)
	if c.Current() != "slide" {
		t.Errorf("current = %q, want slide", c.Current())
	}

	sel.Select("lift")
	if sel.Requested() != "lift" {
		t.Errorf("Requested = %q, want lift", sel.Requested())
	}
	u(0)
	if c.Current() != "lift" {
		t.Errorf("current = %q, want lift", c.Current())
	}
}

func TestSelectorToleratesMissingClip(t *testing.T) {
	_, c := controllerFixture()
	sel := NewSelector("slide")
	u := sel.Updatable(c)
	u(0)

	sel.Select("swim")
	u(0)
	u(0)
	if c.Current() != "slide" {
		t.Errorf("current = %q, want slide", c.Current())
	}
	if !sel.missing["swim"] {
		t.Error("missing clip not recorded")
	}
}
