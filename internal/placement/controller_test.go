package placement

import (
	gomath "math"
	"testing"

	"github.com/vitrinelabs/vitrine/pkg/math"
)

func posePos(x, y, z float32) math.Pose {
	return math.Pose{
		Position:    math.Vec3{X: x, Y: y, Z: z},
		Orientation: math.QuatIdentity(),
	}
}

func TestControllerStartsPreviewing(t *testing.T) {
	c := NewController()
	if c.Phase() != Previewing {
		t.Errorf("Phase() = %v, want %v", c.Phase(), Previewing)
	}
	if _, ok := c.Candidate(); ok {
		t.Error("new controller holds a candidate pose")
	}
	if _, ok := c.Anchor(); ok {
		t.Error("new controller holds an anchor pose")
	}
}

func TestSessionStartSeeksSurface(t *testing.T) {
	c := NewController()
	c.OnSessionStart()
	if c.Phase() != SeekingSurface {
		t.Errorf("Phase() = %v, want %v", c.Phase(), SeekingSurface)
	}
}

func TestSessionStartKeepsExistingPlacement(t *testing.T) {
	c := NewController()
	c.OnSessionStart()
	c.OnHitTestPose(posePos(1, 0, 0))
	c.ConfirmPlacement()

	c.OnSessionStart()

	if c.Phase() != Placed {
		t.Errorf("Phase() = %v, want %v", c.Phase(), Placed)
	}
}

func TestHitTestPoseOnlyWhileSeeking(t *testing.T) {
	c := NewController()

	c.OnHitTestPose(posePos(1, 2, 3))
	if _, ok := c.Candidate(); ok {
		t.Error("candidate stored while previewing")
	}

	c.OnSessionStart()
	c.OnHitTestPose(posePos(1, 2, 3))
	if got, ok := c.Candidate(); !ok || got.Position != (math.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("Candidate() = %+v, %v, want stored pose", got, ok)
	}

	c.ConfirmPlacement()
	c.OnHitTestPose(posePos(9, 9, 9))
	if _, ok := c.Candidate(); ok {
		t.Error("candidate stored after placement")
	}
}

func TestNonFinitePoseDropped(t *testing.T) {
	c := NewController()
	c.OnSessionStart()

	bad := posePos(float32(gomath.NaN()), 0, 0)
	c.OnHitTestPose(bad)

	if _, ok := c.Candidate(); ok {
		t.Error("non-finite pose stored as candidate")
	}
}

func TestConfirmWithoutCandidateIsNoop(t *testing.T) {
	c := NewController()
	if c.ConfirmPlacement() {
		t.Error("ConfirmPlacement() while previewing = true, want false")
	}

	c.OnSessionStart()
	if c.ConfirmPlacement() {
		t.Error("ConfirmPlacement() without candidate = true, want false")
	}
	if c.Phase() != SeekingSurface {
		t.Errorf("Phase() = %v, want %v", c.Phase(), SeekingSurface)
	}
}

func TestConfirmUsesLatestCandidate(t *testing.T) {
	c := NewController()
	c.OnSessionStart()
	c.OnHitTestPose(posePos(1, 0, 0))
	c.OnHitTestPose(posePos(0, 0, 5))

	if !c.ConfirmPlacement() {
		t.Fatal("ConfirmPlacement() = false, want true")
	}

	if c.Phase() != Placed {
		t.Errorf("Phase() = %v, want %v", c.Phase(), Placed)
	}
	anchor, ok := c.Anchor()
	if !ok {
		t.Fatal("Anchor() reported no pose after placement")
	}
	if anchor.Position != (math.Vec3{Z: 5}) {
		t.Errorf("anchor position = %+v, want the latest candidate", anchor.Position)
	}
	if _, held := c.Candidate(); held {
		t.Error("candidate survived confirmation")
	}
}

func TestProductChangeResets(t *testing.T) {
	tests := []struct {
		name       string
		presenting bool
		want       Phase
	}{
		{"while presenting", true, SeekingSurface},
		{"while not presenting", false, Previewing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController()
			c.OnSessionStart()
			c.OnHitTestPose(posePos(1, 0, 0))
			c.ConfirmPlacement()

			c.OnProductChange(tt.presenting)

			if c.Phase() != tt.want {
				t.Errorf("Phase() = %v, want %v", c.Phase(), tt.want)
			}
			if _, ok := c.Anchor(); ok {
				t.Error("anchor survived product change")
			}
			if _, ok := c.Candidate(); ok {
				t.Error("candidate survived product change")
			}
		})
	}
}

func TestSessionEndResets(t *testing.T) {
	c := NewController()
	c.OnSessionStart()
	c.OnHitTestPose(posePos(1, 0, 0))
	c.ConfirmPlacement()

	c.OnSessionEnd()

	if c.Phase() != Previewing {
		t.Errorf("Phase() = %v, want %v", c.Phase(), Previewing)
	}
	if _, ok := c.Anchor(); ok {
		t.Error("anchor survived session end")
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{Previewing, "previewing"},
		{SeekingSurface, "seeking-surface"},
		{Placed, "placed"},
		{Phase(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.want)
		}
	}
}
