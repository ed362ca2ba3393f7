// Package session coordinates AR session start and end with the controllers
// that reset around them.
package session

import (
	"go.uber.org/zap"

	"github.com/vitrinelabs/vitrine/internal/hittest"
	"github.com/vitrinelabs/vitrine/internal/logger"
	"github.com/vitrinelabs/vitrine/internal/placement"
)

// Lifecycle owns the presenting flag and fans session transitions out to the
// placement controller, the scale, and the hit-test tracker. All resets run
// synchronously inside Start and End, before the caller publishes another
// frame.
type Lifecycle struct {
	placement *placement.Controller
	scale     *placement.Scale
	tracker   *hittest.Tracker

	presenting bool
	hitTest    bool
}

// NewLifecycle wires a lifecycle to the controllers it resets.
func NewLifecycle(pc *placement.Controller, sc *placement.Scale, tr *hittest.Tracker) *Lifecycle {
	return &Lifecycle{placement: pc, scale: sc, tracker: tr}
}

// Presenting reports whether an AR session is active.
func (l *Lifecycle) Presenting() bool {
	return l.presenting
}

// HitTestAvailable reports whether the active session granted the hit-test
// capability.
func (l *Lifecycle) HitTestAvailable() bool {
	return l.presenting && l.hitTest
}

// Start marks the session as presenting. hitTest reports whether the runtime
// granted the hit-test capability; without it the tracker stays disarmed and
// the reticle never acquires a pose, but the session itself proceeds.
func (l *Lifecycle) Start(hitTest bool) {
	if l.presenting {
		return
	}
	l.presenting = true
	l.hitTest = hitTest

	l.placement.OnSessionStart()
	if hitTest && l.placement.Phase() == placement.SeekingSurface {
		l.tracker.Arm()
	}
	if !hitTest {
		logger.Debug("session has no hit-test capability, placement will not engage")
	}
	logger.Info("ar session started", zap.Bool("hit_test", hitTest))
}

// End marks the session as ended and resets the placement, the scale, and
// the tracker.
func (l *Lifecycle) End() {
	if !l.presenting {
		return
	}
	l.presenting = false
	l.hitTest = false

	l.placement.OnSessionEnd()
	l.scale.Reset()
	l.tracker.Disarm()
	logger.Info("ar session ended")
}
