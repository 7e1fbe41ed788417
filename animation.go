package stagecraft

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// TrackPath names the node property a track animates.
type TrackPath uint8

const (
	PathTranslation TrackPath = iota // Node.Position
	PathRotation                     // Node.Rotation
	PathScale                        // Node.Scale
)

// String returns the glTF-style path name.
func (p TrackPath) String() string {
	switch p {
	case PathTranslation:
		return "translation"
	case PathRotation:
		return "rotation"
	case PathScale:
		return "scale"
	default:
		return "unknown"
	}
}

// Track is a keyframed property of one named node. Times are ascending
// seconds. Values hold 3 floats per key (translation, scale) or 4 floats per
// key (rotation quaternion as x, y, z, w).
type Track struct {
	NodeName string
	Path     TrackPath
	Times    []float64
	Values   []float64
}

// NewVectorTrack creates a translation or scale track.
func NewVectorTrack(nodeName string, path TrackPath, times []float64, values []mgl64.Vec3) *Track {
	t := &Track{NodeName: nodeName, Path: path, Times: times, Values: make([]float64, 0, 3*len(values))}
	for _, v := range values {
		t.Values = append(t.Values, v[0], v[1], v[2])
	}
	return t
}

// NewRotationTrack creates a rotation track.
func NewRotationTrack(nodeName string, times []float64, values []mgl64.Quat) *Track {
	t := &Track{NodeName: nodeName, Path: PathRotation, Times: times, Values: make([]float64, 0, 4*len(values))}
	for _, q := range values {
		t.Values = append(t.Values, q.V[0], q.V[1], q.V[2], q.W)
	}
	return t
}

// Duration returns the time of the last keyframe.
func (t *Track) Duration() float64 {
	if len(t.Times) == 0 {
		return 0
	}
	return t.Times[len(t.Times)-1]
}

// segment locates time within the keys and returns the surrounding key
// indices and the interpolation factor. Times outside the range clamp.
func (t *Track) segment(time float64) (i0, i1 int, alpha float64) {
	n := len(t.Times)
	if n == 1 || time <= t.Times[0] {
		return 0, 0, 0
	}
	if time >= t.Times[n-1] {
		return n - 1, n - 1, 0
	}
	i := sort.SearchFloat64s(t.Times, time)
	t0, t1 := t.Times[i-1], t.Times[i]
	if t1 == t0 {
		return i, i, 0
	}
	return i - 1, i, (time - t0) / (t1 - t0)
}

func (t *Track) vec3At(i int) mgl64.Vec3 {
	return mgl64.Vec3{t.Values[3*i], t.Values[3*i+1], t.Values[3*i+2]}
}

func (t *Track) quatAt(i int) mgl64.Quat {
	return mgl64.Quat{W: t.Values[4*i+3], V: mgl64.Vec3{t.Values[4*i], t.Values[4*i+1], t.Values[4*i+2]}}
}

// SampleVec3 linearly interpolates a translation or scale track.
func (t *Track) SampleVec3(time float64) mgl64.Vec3 {
	i0, i1, a := t.segment(time)
	v0 := t.vec3At(i0)
	if i0 == i1 {
		return v0
	}
	return lerpVec3(v0, t.vec3At(i1), a)
}

// SampleQuat spherically interpolates a rotation track.
func (t *Track) SampleQuat(time float64) mgl64.Quat {
	i0, i1, a := t.segment(time)
	q0 := t.quatAt(i0)
	if i0 == i1 {
		return q0
	}
	return slerpShortest(q0, t.quatAt(i1), a)
}

func (t *Track) valid() bool {
	if len(t.Times) == 0 {
		return false
	}
	stride := 3
	if t.Path == PathRotation {
		stride = 4
	}
	return len(t.Values) >= stride*len(t.Times)
}

// slerpShortest interpolates along the shorter arc. q and -q are the same
// rotation, so b is flipped onto a's hemisphere first.
func slerpShortest(a, b mgl64.Quat, t float64) mgl64.Quat {
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	return mgl64.QuatSlerp(a, b, t)
}

func lerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// AnimationClip is a named set of tracks played together.
type AnimationClip struct {
	Name     string
	Duration float64
	Tracks   []*Track
}

// NewAnimationClip creates a clip. A non-positive duration is replaced by the
// longest track duration. Tracks without keys are dropped.
func NewAnimationClip(name string, duration float64, tracks ...*Track) *AnimationClip {
	c := &AnimationClip{Name: name, Duration: duration}
	for _, t := range tracks {
		if t == nil || !t.valid() {
			continue
		}
		c.Tracks = append(c.Tracks, t)
	}
	if c.Duration <= 0 {
		for _, t := range c.Tracks {
			c.Duration = max(c.Duration, t.Duration())
		}
	}
	return c
}
