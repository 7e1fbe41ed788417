package stagecraft

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestVectorTrackSampling(t *testing.T) {
	tr := NewVectorTrack("n", PathTranslation, []float64{0, 1, 3}, []mgl64.Vec3{{0, 0, 0}, {2, 0, 0}, {2, 4, 0}})

	tests := []struct {
		time float64
		want mgl64.Vec3
	}{
		{-1, mgl64.Vec3{0, 0, 0}},
		{0, mgl64.Vec3{0, 0, 0}},
		{0.5, mgl64.Vec3{1, 0, 0}},
		{1, mgl64.Vec3{2, 0, 0}},
		{2, mgl64.Vec3{2, 2, 0}},
		{3, mgl64.Vec3{2, 4, 0}},
		{10, mgl64.Vec3{2, 4, 0}},
	}
	for _, tt := range tests {
		assertVec3Near(t, "sample", tr.SampleVec3(tt.time), tt.want)
	}
}

func TestSingleKeyTrackIsConstant(t *testing.T) {
	tr := NewVectorTrack("n", PathScale, []float64{0.5}, []mgl64.Vec3{{2, 2, 2}})
	for _, at := range []float64{0, 0.5, 5} {
		assertVec3Near(t, "sample", tr.SampleVec3(at), mgl64.Vec3{2, 2, 2})
	}
}

func TestRotationTrackSlerps(t *testing.T) {
	y := mgl64.Vec3{0, 1, 0}
	tr := NewRotationTrack("n", []float64{0, 2}, []mgl64.Quat{
		mgl64.QuatIdent(),
		mgl64.QuatRotate(math.Pi/2, y),
	})
	got := tr.SampleQuat(1)
	want := mgl64.QuatRotate(math.Pi/4, y)
	if !got.ApproxEqualThreshold(want, 1e-9) {
		t.Errorf("SampleQuat(1) = %v, want %v", got, want)
	}
	if !tr.SampleQuat(5).ApproxEqualThreshold(mgl64.QuatRotate(math.Pi/2, y), 1e-9) {
		t.Error("SampleQuat past the end should clamp to the last key")
	}
}

func TestTrackDuration(t *testing.T) {
	tr := NewVectorTrack("n", PathTranslation, []float64{0, 0.25, 1.5}, make([]mgl64.Vec3, 3))
	assertNear(t, "Duration", tr.Duration(), 1.5)
	if (&Track{}).Duration() != 0 {
		t.Error("empty track duration should be 0")
	}
}

func TestTrackPathString(t *testing.T) {
	for path, want := range map[TrackPath]string{
		PathTranslation: "translation",
		PathRotation:    "rotation",
		PathScale:       "scale",
		TrackPath(9):    "unknown",
	} {
		if path.String() != want {
			t.Errorf("%d.String() = %q, want %q", path, path.String(), want)
		}
	}
}

func TestNewAnimationClipDefaultsDuration(t *testing.T) {
	a := NewVectorTrack("a", PathTranslation, []float64{0, 1}, make([]mgl64.Vec3, 2))
	b := NewVectorTrack("b", PathTranslation, []float64{0, 2.5}, make([]mgl64.Vec3, 2))

	c := NewAnimationClip("clip", 0, a, b)
	assertNear(t, "Duration", c.Duration, 2.5)

	c = NewAnimationClip("clip", 4, a, b)
	assertNear(t, "explicit Duration", c.Duration, 4)
}

func TestNewAnimationClipDropsInvalidTracks(t *testing.T) {
	good := NewVectorTrack("good", PathTranslation, []float64{0, 1}, make([]mgl64.Vec3, 2))
	empty := &Track{NodeName: "empty", Path: PathTranslation}
	short := &Track{NodeName: "short", Path: PathRotation, Times: []float64{0, 1}, Values: make([]float64, 6)}

	c := NewAnimationClip("clip", 0, good, nil, empty, short)
	if len(c.Tracks) != 1 || c.Tracks[0] != good {
		t.Fatalf("Tracks = %v, want only the valid track", c.Tracks)
	}
	assertNear(t, "Duration", c.Duration, 1)
}

func TestAssetClipLookup(t *testing.T) {
	a := &Asset{Clips: []*AnimationClip{NewAnimationClip("walk", 1), NewAnimationClip("run", 1)}}
	if a.Clip("run") != a.Clips[1] {
		t.Error("Clip(run) did not return the run clip")
	}
	if a.Clip("swim") != nil {
		t.Error("Clip(swim) should be nil")
	}
}

func TestSampleDoesNotAllocate(t *testing.T) {
	tr := NewVectorTrack("n", PathTranslation, []float64{0, 1, 2}, make([]mgl64.Vec3, 3))
	rot := NewRotationTrack("n", []float64{0, 1}, []mgl64.Quat{mgl64.QuatIdent(), mgl64.QuatIdent()})
	allocs := testing.AllocsPerRun(100, func() {
		_ = tr.SampleVec3(1.5)
		_ = rot.SampleQuat(0.5)
	})
	if allocs != 0 {
		t.Errorf("sampling allocated %v times per run, want 0", allocs)
	}
}

func TestRotationTrackTakesShortArc(t *testing.T) {
	y := mgl64.Vec3{0, 1, 0}
	// The second key is stored with the opposite sign, as exporters often do.
	tr := NewRotationTrack("n", []float64{0, 1}, []mgl64.Quat{
		mgl64.QuatRotate(0.1, y),
		mgl64.QuatRotate(0.3, y).Scale(-1),
	})
	assertSameRotation(t, "SampleQuat(0.5)", tr.SampleQuat(0.5), mgl64.QuatRotate(0.2, y))
}
