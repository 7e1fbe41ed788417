package stagecraft

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// scriptStep is one action of a frame script.
type scriptStep struct {
	Action string `yaml:"action"`
	Label  string `yaml:"label,omitempty"`
	Key    string `yaml:"key,omitempty"`
	Frames int    `yaml:"frames,omitempty"`
}

type script struct {
	Steps []scriptStep `yaml:"steps"`
}

// ScriptRunner plays a sequence of key presses, waits and screenshots across
// frames, for unattended runs. Attach it with Loop.SetScript. When the last
// step has run the loop stops.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a YAML script:
//
//	steps:
//	  - action: wait
//	    frames: 30
//	  - action: key
//	    key: R
//	  - action: screenshot
//	    label: run
func LoadScript(data []byte) (*ScriptRunner, error) {
	var s script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(err, "parse script")
	}
	if len(s.Steps) == 0 {
		return nil, errors.New("parse script: no steps")
	}
	for i, st := range s.Steps {
		switch st.Action {
		case "wait", "screenshot":
		case "key":
			if _, ok := parseKey(st.Key); !ok {
				return nil, errors.Errorf("parse script: step %d: unknown key %q", i, st.Key)
			}
		default:
			return nil, errors.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

// SetScript attaches r. Its step runs at the start of every Update.
func (l *Loop) SetScript(r *ScriptRunner) {
	l.script = r
}

// Done reports whether every step has run.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame.
func (r *ScriptRunner) step(l *Loop) {
	if r.done {
		return
	}
	if len(l.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	switch st.Action {
	case "screenshot":
		l.Screenshot(st.Label)
	case "key":
		k, _ := parseKey(st.Key)
		l.InjectKey(k)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(l.injectQueue) == 0 {
		r.done = true
	}
}

// parseKey resolves a key name such as "R", "Digit1" or "Space".
func parseKey(name string) (ebiten.Key, bool) {
	var k ebiten.Key
	if err := k.UnmarshalText([]byte(name)); err != nil {
		return 0, false
	}
	return k, true
}
