package math

import "math"

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max Vec3
}

// EmptyBox returns a box containing nothing. Expanding it with a point yields
// a box containing exactly that point.
func EmptyBox() Box {
	inf := float32(math.Inf(1))
	return Box{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// NewBox creates a box from two corners, swapping components so Min <= Max
// on every axis.
func NewBox(a, b Vec3) Box {
	return Box{Min: a.Min(b), Max: a.Max(b)}
}

// IsEmpty reports whether the box contains no points.
func (b Box) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// IsFinite reports whether both corners are finite.
func (b Box) IsFinite() bool {
	return b.Min.IsFinite() && b.Max.IsFinite()
}

// ExpandPoint returns the box grown to contain p.
func (b Box) ExpandPoint(p Vec3) Box {
	return Box{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Union returns the smallest box containing both boxes.
func (b Box) Union(other Box) Box {
	if b.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return b
	}
	return Box{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

// Center returns the center point of the box.
func (b Box) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the extents of the box along each axis.
func (b Box) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// MaxDim returns the largest extent of the box.
func (b Box) MaxDim() float32 {
	s := b.Size()
	return max(s.X, max(s.Y, s.Z))
}

// Transformed returns the axis-aligned box containing all eight corners of b
// transformed by m. An empty box stays empty.
func (b Box) Transformed(m Mat4) Box {
	if b.IsEmpty() {
		return b
	}

	out := EmptyBox()
	for i := 0; i < 8; i++ {
		corner := Vec3{b.Min.X, b.Min.Y, b.Min.Z}
		if i&1 != 0 {
			corner.X = b.Max.X
		}
		if i&2 != 0 {
			corner.Y = b.Max.Y
		}
		if i&4 != 0 {
			corner.Z = b.Max.Z
		}
		out = out.ExpandPoint(m.TransformVec3(corner))
	}
	return out
}
