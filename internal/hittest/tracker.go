// Package hittest tracks the surface poses reported by the AR runtime while
// a placement is being sought.
package hittest

import "github.com/vitrinelabs/vitrine/pkg/math"

// Tracker keeps the most recent hit-test pose. It consumes results only
// while armed; after a placement is confirmed the tracker is disarmed and
// later results change nothing until the next arming.
type Tracker struct {
	armed  bool
	latest math.Pose
	valid  bool
}

// NewTracker starts disarmed.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Arm starts consuming hit-test results, discarding any stale pose.
func (t *Tracker) Arm() {
	t.armed = true
	t.valid = false
}

// Disarm stops consuming results and drops the held pose.
func (t *Tracker) Disarm() {
	t.armed = false
	t.valid = false
}

// Armed reports whether results are being consumed.
func (t *Tracker) Armed() bool {
	return t.armed
}

// Observe records the surface transform reported for one frame and returns
// the decomposed pose. Results are ignored while disarmed, as are transforms
// that do not decompose into a finite pose.
func (t *Tracker) Observe(m math.Mat4) (math.Pose, bool) {
	if !t.armed || !m.IsFinite() {
		return math.Pose{}, false
	}
	pose := math.PoseFromMat4(m)
	if !pose.IsFinite() {
		return math.Pose{}, false
	}
	t.latest = pose
	t.valid = true
	return pose, true
}

// Latest returns the most recently observed pose while armed.
func (t *Tracker) Latest() (math.Pose, bool) {
	if !t.armed || !t.valid {
		return math.Pose{}, false
	}
	return t.latest, true
}
