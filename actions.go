package stagecraft

// DefaultBlendDuration is the crossfade time between two actions, in seconds.
const DefaultBlendDuration = 0.5

// ActionState is the state of an ActionController.
type ActionState uint8

const (
	StateIdle    ActionState = iota // no action playing yet
	StatePlaying                    // an action is current
)

// Transition reports what a Request did.
type Transition uint8

const (
	TransitionNone  Transition = iota // nothing changed
	TransitionStart                   // first action started without a blend
	TransitionBlend                   // crossfade from the previous action began
)

// String returns the transition name.
func (t Transition) String() string {
	switch t {
	case TransitionStart:
		return "start"
	case TransitionBlend:
		return "blend"
	default:
		return "none"
	}
}

// ActionController keeps at most one current action on a Mixer and switches
// between named actions with a timed crossfade.
type ActionController struct {
	mixer   *Mixer
	actions map[string]*Action
	current string

	// BlendDuration is the crossfade time used by Request.
	BlendDuration float64
}

// NewActionController creates a controller in the idle state.
func NewActionController(mixer *Mixer) *ActionController {
	return &ActionController{
		mixer:         mixer,
		actions:       make(map[string]*Action),
		BlendDuration: DefaultBlendDuration,
	}
}

// Bind creates an action for every clip, keyed by clip name. Later clips
// with a duplicate name replace earlier ones.
func (c *ActionController) Bind(clips []*AnimationClip) {
	for _, clip := range clips {
		c.actions[clip.Name] = c.mixer.ClipAction(clip)
	}
}

// Names returns the bound action names in no particular order.
func (c *ActionController) Names() []string {
	out := make([]string, 0, len(c.actions))
	for name := range c.actions {
		out = append(out, name)
	}
	return out
}

// Action returns the bound action for name, or nil.
func (c *ActionController) Action(name string) *Action {
	return c.actions[name]
}

// Request makes name the current action.
//
// Requesting the current action is a no-op. Requesting a name with no bound
// clip returns a *ClipNotFoundError and leaves the current action playing.
// From the idle state the action starts immediately; otherwise a crossfade of
// BlendDuration seconds begins and name becomes current at once.
func (c *ActionController) Request(name string) (Transition, error) {
	if c.current != "" && name == c.current {
		return TransitionNone, nil
	}
	next, ok := c.actions[name]
	if !ok {
		return TransitionNone, &ClipNotFoundError{Name: name}
	}
	prev := c.actions[c.current]
	c.current = name
	if prev == nil {
		next.Play()
		return TransitionStart, nil
	}
	next.Enabled = true
	next.CrossFadeFrom(prev, c.BlendDuration)
	next.Play()
	return TransitionBlend, nil
}

// Current returns the current action name, or "" when idle.
func (c *ActionController) Current() string {
	return c.current
}

// State returns StateIdle until the first successful Request.
func (c *ActionController) State() ActionState {
	if c.current == "" {
		return StateIdle
	}
	return StatePlaying
}

// Blending reports whether any bound action is mid-fade.
func (c *ActionController) Blending() bool {
	for _, a := range c.actions {
		if a.Fading() {
			return true
		}
	}
	return false
}

// Selector holds the action name last chosen by the user. UI buttons write
// it; a per-frame updatable forwards it to an ActionController.
type Selector struct {
	requested string
	missing   map[string]bool
}

// NewSelector returns a selector with an initial request.
func NewSelector(initial string) *Selector {
	return &Selector{requested: initial, missing: make(map[string]bool)}
}

// Select records a new request.
func (s *Selector) Select(name string) {
	s.requested = name
}

// Requested returns the last selected name.
func (s *Selector) Requested() string {
	return s.requested
}

// Updatable returns a per-frame callback forwarding the selection to c.
// A missing clip is reported once per name in debug mode and never stops
// the loop.
func (s *Selector) Updatable(c *ActionController) Updatable {
	return func(float64) {
		if _, err := c.Request(s.requested); err != nil && !s.missing[s.requested] {
			s.missing[s.requested] = true
			debugf("action request: %v", err)
		}
	}
}
