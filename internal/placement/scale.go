package placement

// Step is the multiplicative increment applied per scale adjustment.
const Step = 1.5

// Default scale bounds. Five steps in either direction from 1.0 stay inside
// them.
const (
	DefaultMinFactor = 0.125
	DefaultMaxFactor = 8.0
)

// Scale is the user-adjustable uniform multiplier applied to a placed
// product. It composes with the normalization transform and the anchor pose
// but never modifies either.
type Scale struct {
	factor float32
	min    float32
	max    float32
}

// NewScale creates a scale with the given bounds. Invalid bounds fall back
// to the defaults.
func NewScale(min, max float32) *Scale {
	if min <= 0 || max < min {
		min, max = DefaultMinFactor, DefaultMaxFactor
	}
	return &Scale{factor: 1, min: min, max: max}
}

// Factor returns the current multiplier.
func (s *Scale) Factor() float32 {
	return s.factor
}

// Increase multiplies the factor by Step and reports whether it applied.
// A step that would exceed the upper bound is rejected outright, so a
// following Decrease always returns to the previous value.
func (s *Scale) Increase() bool {
	next := s.factor * Step
	if next > s.max {
		return false
	}
	s.factor = next
	return true
}

// Decrease divides the factor by Step and reports whether it applied.
func (s *Scale) Decrease() bool {
	next := s.factor / Step
	if next < s.min {
		return false
	}
	s.factor = next
	return true
}

// Reset returns the factor to 1.0.
func (s *Scale) Reset() {
	s.factor = 1
}
