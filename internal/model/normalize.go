package model

import (
	gomath "math"

	"github.com/vitrinelabs/vitrine/pkg/math"
)

// Transform centers an asset at the origin and fits its largest dimension to
// a target size. It is applied before any user scaling.
type Transform struct {
	Translation math.Vec3
	Scale       float32
}

// IdentityTransform is the no-op transform used when an asset's geometry
// cannot be measured.
func IdentityTransform() Transform {
	return Transform{Scale: 1}
}

// IsIdentity reports whether the transform leaves the asset untouched.
func (t Transform) IsIdentity() bool {
	return t.Scale == 1 && t.Translation == (math.Vec3{})
}

// Normalize computes the transform that moves the center of bounds to the
// origin and scales the largest extent to targetSize. A box that is empty,
// non-finite, or without positive extent yields the identity transform; the
// result is always finite regardless of input.
func Normalize(bounds math.Box, targetSize float32) Transform {
	if bounds.IsEmpty() || !bounds.IsFinite() {
		return IdentityTransform()
	}
	maxDim := bounds.MaxDim()
	if maxDim <= 0 || gomath.IsInf(float64(maxDim), 0) {
		return IdentityTransform()
	}
	scale := targetSize / maxDim
	if !(scale > 0) || gomath.IsInf(float64(scale), 0) {
		return IdentityTransform()
	}
	return Transform{
		Translation: bounds.Center().Scale(-scale),
		Scale:       scale,
	}
}
