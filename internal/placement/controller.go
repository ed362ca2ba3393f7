// Package placement owns the state machine that decides whether the
// experience is previewing a product, seeking a real-world surface, or
// anchored to one, plus the user scale applied after anchoring.
package placement

import "github.com/vitrinelabs/vitrine/pkg/math"

// Phase is the current placement state.
type Phase int

const (
	// Previewing shows the product in the plain 3D viewport. It is the
	// phase whenever no AR session is presenting.
	Previewing Phase = iota

	// SeekingSurface means an AR session is presenting and the reticle is
	// following hit-test candidate poses.
	SeekingSurface

	// Placed means the product is anchored to a confirmed pose.
	Placed
)

func (p Phase) String() string {
	switch p {
	case Previewing:
		return "previewing"
	case SeekingSurface:
		return "seeking-surface"
	case Placed:
		return "placed"
	default:
		return "unknown"
	}
}

// Controller is the placement state machine. It is not safe for concurrent
// use; the viewer loop owns it and applies every event.
type Controller struct {
	phase        Phase
	candidate    math.Pose
	hasCandidate bool
	anchor       math.Pose
}

// NewController starts in Previewing.
func NewController() *Controller {
	return &Controller{phase: Previewing}
}

// Phase returns the current placement phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Candidate returns the latest hit-test pose while one is held.
func (c *Controller) Candidate() (math.Pose, bool) {
	return c.candidate, c.hasCandidate
}

// Anchor returns the confirmed pose. Valid only while Placed.
func (c *Controller) Anchor() (math.Pose, bool) {
	return c.anchor, c.phase == Placed
}

// OnSessionStart reacts to the session beginning to present. An existing
// placement survives; otherwise the controller starts seeking a surface.
func (c *Controller) OnSessionStart() {
	if c.phase == Placed {
		return
	}
	c.phase = SeekingSurface
	c.hasCandidate = false
}

// OnHitTestPose stores pose as the candidate for the next confirmation.
// Ignored outside SeekingSurface. Non-finite poses are dropped.
func (c *Controller) OnHitTestPose(pose math.Pose) {
	if c.phase != SeekingSurface || !pose.IsFinite() {
		return
	}
	c.candidate = pose
	c.hasCandidate = true
}

// ConfirmPlacement anchors the product at the most recent candidate pose and
// reports whether the transition happened. Without a candidate, or outside
// SeekingSurface, it is a no-op.
func (c *Controller) ConfirmPlacement() bool {
	if c.phase != SeekingSurface || !c.hasCandidate {
		return false
	}
	c.anchor = c.candidate
	c.candidate = math.Pose{}
	c.hasCandidate = false
	c.phase = Placed
	return true
}

// OnProductChange discards any anchored and candidate poses and returns to
// the baseline phase for the current session state.
func (c *Controller) OnProductChange(presenting bool) {
	c.anchor = math.Pose{}
	c.candidate = math.Pose{}
	c.hasCandidate = false
	if presenting {
		c.phase = SeekingSurface
	} else {
		c.phase = Previewing
	}
}

// OnSessionEnd discards all poses and returns to Previewing.
func (c *Controller) OnSessionEnd() {
	c.anchor = math.Pose{}
	c.candidate = math.Pose{}
	c.hasCandidate = false
	c.phase = Previewing
}
