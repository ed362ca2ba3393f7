package assets

import (
	"github.com/vitrinelabs/vitrine/internal/catalog"
	"github.com/vitrinelabs/vitrine/internal/model"
)

// Status is the lifecycle state of one asset slot.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Slot tracks one independently loaded asset. A failed load is recorded in
// the slot and goes no further; other slots keep their own state.
type Slot struct {
	Product catalog.Product
	Status  Status
	Model   *model.Model
	Err     string
}

// Begin marks the slot as loading product, clearing any previous outcome.
func (s *Slot) Begin(p catalog.Product) {
	*s = Slot{Product: p, Status: StatusLoading}
}

// Resolve records the outcome of a load that the caller has already accepted
// as current for this slot.
func (s *Slot) Resolve(res Result) {
	if res.Err != nil {
		s.Status = StatusFailed
		s.Model = nil
		s.Err = res.Err.Error()
		return
	}
	s.Status = StatusLoaded
	s.Model = res.Model
	s.Err = ""
}

// Reset returns the slot to idle.
func (s *Slot) Reset() {
	*s = Slot{}
}
