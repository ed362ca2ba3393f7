package math

// Pose is a rigid transform (position + orientation) in a tracking
// coordinate space.
type Pose struct {
	Position    Vec3
	Orientation Quat
}

// PoseIdentity returns a pose at the origin with no rotation.
func PoseIdentity() Pose {
	return Pose{Orientation: QuatIdentity()}
}

// PoseFromMat4 extracts the rigid part of m, discarding any scale.
func PoseFromMat4(m Mat4) Pose {
	translation, rotation, _ := m.Decompose()
	return Pose{Position: translation, Orientation: rotation}
}

// Mat4 returns the matrix form of the pose.
func (p Pose) Mat4() Mat4 {
	return Compose(p.Position, p.Orientation, Vec3{X: 1, Y: 1, Z: 1})
}

// IsFinite reports whether every component is a finite number.
func (p Pose) IsFinite() bool {
	return p.Position.IsFinite() && p.Orientation.IsFinite()
}
