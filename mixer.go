package stagecraft

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// weightFade tweens an action's weight. When fadeOut is set the action stops
// once the tween finishes.
type weightFade struct {
	tween   *gween.Tween
	fadeOut bool
}

// propKey identifies one animated property of one node.
type propKey struct {
	node *Node
	path TrackPath
}

// propMixer accumulates the weighted contributions of every running action
// to one property during Mixer.Update.
type propMixer struct {
	key       propKey
	restVec   mgl64.Vec3
	restQuat  mgl64.Quat
	accVec    mgl64.Vec3
	accQuat   mgl64.Quat
	cumWeight float64
}

func (p *propMixer) accumulateVec(v mgl64.Vec3, w float64) {
	if p.cumWeight == 0 {
		p.accVec = v
		p.cumWeight = w
		return
	}
	p.cumWeight += w
	p.accVec = lerpVec3(p.accVec, v, w/p.cumWeight)
}

func (p *propMixer) accumulateQuat(q mgl64.Quat, w float64) {
	if p.cumWeight == 0 {
		p.accQuat = q
		p.cumWeight = w
		return
	}
	p.cumWeight += w
	p.accQuat = slerpShortest(p.accQuat, q, w/p.cumWeight)
}

// apply writes the accumulated value to the node. A total weight below one
// blends toward the rest pose.
func (p *propMixer) apply() {
	if p.cumWeight <= 0 {
		return
	}
	n := p.key.node
	switch p.key.path {
	case PathTranslation:
		v := p.accVec
		if p.cumWeight < 1 {
			v = lerpVec3(v, p.restVec, 1-p.cumWeight)
		}
		n.Position = v
	case PathScale:
		v := p.accVec
		if p.cumWeight < 1 {
			v = lerpVec3(v, p.restVec, 1-p.cumWeight)
		}
		n.Scale = v
	case PathRotation:
		q := p.accQuat
		if p.cumWeight < 1 {
			q = slerpShortest(q, p.restQuat, 1-p.cumWeight)
		}
		n.Rotation = q
	}
	n.transformDirty = true
	p.cumWeight = 0
}

// trackBinding ties a clip track to the property mixer of a resolved node.
type trackBinding struct {
	track *Track
	prop  *propMixer
}

// Action is the playback handle of one clip on one Mixer.
type Action struct {
	mixer    *Mixer
	clip     *AnimationClip
	bindings []trackBinding

	time    float64
	weight  float64
	running bool
	fade    *weightFade

	// Enabled false freezes the action's contribution without stopping it.
	Enabled bool
	// Loop repeats the clip; otherwise the action clamps at the last frame.
	Loop bool
	// TimeScale multiplies dt when advancing the action.
	TimeScale float64
}

// Clip returns the clip played by the action.
func (a *Action) Clip() *AnimationClip {
	return a.clip
}

// Play starts the action at full weight unless a fade is in progress.
func (a *Action) Play() {
	a.Enabled = true
	if a.running {
		return
	}
	a.running = true
	if a.fade == nil {
		a.weight = 1
	}
}

// Stop halts the action and rewinds it.
func (a *Action) Stop() {
	a.running = false
	a.time = 0
	a.weight = 0
	a.fade = nil
}

// IsRunning reports whether the action is playing.
func (a *Action) IsRunning() bool {
	return a.running
}

// Weight returns the current blend weight in [0, 1].
func (a *Action) Weight() float64 {
	return a.weight
}

// Time returns the local playback time in seconds.
func (a *Action) Time() float64 {
	return a.time
}

// Fading reports whether a weight fade is in progress.
func (a *Action) Fading() bool {
	return a.fade != nil
}

// CrossFadeFrom fades this action in and prev out over duration seconds.
// prev is stopped when its fade completes.
func (a *Action) CrossFadeFrom(prev *Action, duration float64) {
	if prev != nil && prev != a {
		prev.fade = &weightFade{
			tween:   gween.New(float32(prev.weight), 0, float32(duration), ease.Linear),
			fadeOut: true,
		}
	}
	a.Enabled = true
	a.weight = 0
	a.fade = &weightFade{tween: gween.New(0, 1, float32(duration), ease.Linear)}
}

func (a *Action) advance(dt float64) {
	if !a.running || !a.Enabled {
		return
	}
	if a.fade != nil {
		w, done := a.fade.tween.Update(float32(dt))
		a.weight = float64(w)
		if done {
			fadeOut := a.fade.fadeOut
			a.fade = nil
			if fadeOut {
				a.Stop()
				return
			}
		}
	}
	a.time += dt * a.TimeScale
	d := a.clip.Duration
	if d <= 0 {
		a.time = 0
		return
	}
	if a.Loop {
		a.time = math.Mod(a.time, d)
		if a.time < 0 {
			a.time += d
		}
	} else if a.time > d {
		a.time = d
	}
}

func (a *Action) contribute() {
	if !a.running || !a.Enabled || a.weight <= 0 {
		return
	}
	for _, b := range a.bindings {
		if b.track.Path == PathRotation {
			b.prop.accumulateQuat(b.track.SampleQuat(a.time), a.weight)
		} else {
			b.prop.accumulateVec(b.track.SampleVec3(a.time), a.weight)
		}
	}
}

// Mixer plays animation clips on the nodes of one subtree, blending every
// running action by weight.
type Mixer struct {
	root    *Node
	actions map[string]*Action
	order   []*Action
	props   map[propKey]*propMixer
	propSeq []*propMixer
	time    float64
}

// NewMixer creates a mixer animating root and its descendants.
func NewMixer(root *Node) *Mixer {
	return &Mixer{
		root:    root,
		actions: make(map[string]*Action),
		props:   make(map[propKey]*propMixer),
	}
}

// Root returns the animated subtree root.
func (m *Mixer) Root() *Node {
	return m.root
}

// Time returns the total time the mixer has advanced.
func (m *Mixer) Time() float64 {
	return m.time
}

// ClipAction returns the action for clip, creating and binding it on first
// use. Tracks naming nodes absent from the subtree are ignored.
func (m *Mixer) ClipAction(clip *AnimationClip) *Action {
	if a, ok := m.actions[clip.Name]; ok {
		return a
	}
	a := &Action{mixer: m, clip: clip, Enabled: true, Loop: true, TimeScale: 1}
	for _, t := range clip.Tracks {
		node := m.root.FindByName(t.NodeName)
		if node == nil {
			debugf("clip %q: no node named %q", clip.Name, t.NodeName)
			continue
		}
		a.bindings = append(a.bindings, trackBinding{track: t, prop: m.prop(node, t.Path)})
	}
	m.actions[clip.Name] = a
	m.order = append(m.order, a)
	return a
}

// ExistingAction returns the action bound for a clip name, or nil.
func (m *Mixer) ExistingAction(name string) *Action {
	return m.actions[name]
}

func (m *Mixer) prop(node *Node, path TrackPath) *propMixer {
	key := propKey{node: node, path: path}
	if p, ok := m.props[key]; ok {
		return p
	}
	p := &propMixer{key: key, restVec: node.Position, restQuat: node.Rotation}
	if path == PathScale {
		p.restVec = node.Scale
	}
	m.props[key] = p
	m.propSeq = append(m.propSeq, p)
	return p
}

// Update advances every running action by dt seconds and writes the blended
// pose to the bound nodes.
func (m *Mixer) Update(dt float64) {
	m.time += dt
	for _, a := range m.order {
		a.advance(dt)
	}
	for _, a := range m.order {
		a.contribute()
	}
	for _, p := range m.propSeq {
		p.apply()
	}
}
