package stagecraft

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNewPerspectiveCameraDoesNotCountInitialProjection(t *testing.T) {
	c := NewPerspectiveCamera(75, 2, 0.1, 100)
	if c.ProjectionUpdates() != 0 {
		t.Errorf("ProjectionUpdates = %d, want 0", c.ProjectionUpdates())
	}
	want := mgl64.Perspective(mgl64.DegToRad(75), 2, 0.1, 100)
	if !c.Projection().ApproxEqualThreshold(want, 1e-12) {
		t.Errorf("Projection = %v, want %v", c.Projection(), want)
	}
}

func TestUpdateProjectionMatrix(t *testing.T) {
	c := NewPerspectiveCamera(75, 2, 0.1, 100)
	c.Aspect = 0.5
	c.UpdateProjectionMatrix()
	if c.ProjectionUpdates() != 1 {
		t.Errorf("ProjectionUpdates = %d, want 1", c.ProjectionUpdates())
	}
	want := mgl64.Perspective(mgl64.DegToRad(75), 0.5, 0.1, 100)
	if !c.Projection().ApproxEqualThreshold(want, 1e-12) {
		t.Error("projection not recomputed")
	}
}

func TestViewProjectionCentersTarget(t *testing.T) {
	cam := NewCamera("cam", 60, 1, 0.1, 100)
	cam.SetPosition(3, 4, 10)
	cam.LookAt(mgl64.Vec3{1, 1, 1})

	clip := ViewProjection(cam).Mul4x1(mgl64.Vec4{1, 1, 1, 1})
	if clip[3] <= 0 {
		t.Fatalf("target behind camera: w = %v", clip[3])
	}
	assertNear(t, "ndc x", clip[0]/clip[3], 0)
	assertNear(t, "ndc y", clip[1]/clip[3], 0)
}

func TestViewProjectionPanicsOnNonCamera(t *testing.T) {
	assertPanics(t, "ViewProjection(group)", func() { ViewProjection(NewGroup("g")) })
}

// --- Camera rigs ---

func TestCameraSetSelect(t *testing.T) {
	var s CameraSet
	if _, ok := s.Active(); ok {
		t.Error("empty set should have no active rig")
	}
	s.Select(3) // no-op on empty set

	holder := NewGroup("holder")
	for _, name := range []string{"a", "b", "c", "d"} {
		cam := NewCamera(name, 40, 2, 0.1, 1000)
		holder.AddChild(cam)
		s.Add(cam, "rig "+name)
	}
	if s.Len() != 4 {
		t.Fatalf("Len = %d, want 4", s.Len())
	}
	rig, ok := s.Active()
	if !ok || rig.Desc != "rig a" {
		t.Errorf("first rig should be active, got %q", rig.Desc)
	}

	tests := []struct {
		sel, want int
	}{
		{1, 1},
		{4, 0},
		{7, 3},
		{-1, 3},
	}
	for _, tt := range tests {
		s.Select(tt.sel)
		if s.ActiveIndex() != tt.want {
			t.Errorf("Select(%d): ActiveIndex = %d, want %d", tt.sel, s.ActiveIndex(), tt.want)
		}
	}
	if len(s.Cameras()) != 4 || s.Cameras()[2] != s.Rigs()[2].Node.Camera {
		t.Error("Cameras should list every rig's projection")
	}
}

func TestCameraSetAddRejectsNonCamera(t *testing.T) {
	var s CameraSet
	assertPanics(t, "Add(group)", func() { s.Add(NewGroup("g"), "bad") })
}

func TestCameraRigFollowsParent(t *testing.T) {
	body := NewGroup("body")
	cam := NewCamera("cam", 75, 2, 0.1, 1000)
	cam.SetPosition(0, 3, -6)
	body.AddChild(cam)

	body.SetPosition(10, 0, 0)
	assertVec3Near(t, "rig world", cam.WorldPosition(), mgl64.Vec3{10, 3, -6})
}
