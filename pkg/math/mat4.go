package math

import "math"

// Mat4 is a 4x4 matrix in column-major order.
// Layout: [m0 m4 m8  m12]
//
//	[m1 m5 m9  m13]
//	[m2 m6 m10 m14]
//	[m3 m7 m11 m15]
type Mat4 [16]float32

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate returns a translation matrix.
func Translate(x, y, z float32) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

// Scale returns a scale matrix.
func Scale(x, y, z float32) Mat4 {
	return Mat4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// Mul multiplies this matrix by another (m * other).
func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			result[col*4+row] =
				m[0*4+row]*other[col*4+0] +
					m[1*4+row]*other[col*4+1] +
					m[2*4+row]*other[col*4+2] +
					m[3*4+row]*other[col*4+3]
		}
	}
	return result
}

// TransformVec3 transforms a 3D point by this matrix (assumes w=1).
func (m Mat4) TransformVec3(v Vec3) Vec3 {
	x := m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]
	y := m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]
	z := m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]
	w := m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]
	if w != 0 && w != 1 {
		return Vec3{x / w, y / w, z / w}
	}
	return Vec3{x, y, z}
}

// Compose builds a matrix from translation, rotation and scale,
// applied in scale-rotate-translate order.
func Compose(translation Vec3, rotation Quat, scale Vec3) Mat4 {
	m := rotation.ToMat4()
	m[0] *= scale.X
	m[1] *= scale.X
	m[2] *= scale.X
	m[4] *= scale.Y
	m[5] *= scale.Y
	m[6] *= scale.Y
	m[8] *= scale.Z
	m[9] *= scale.Z
	m[10] *= scale.Z
	m[12] = translation.X
	m[13] = translation.Y
	m[14] = translation.Z
	return m
}

// Decompose splits the matrix into translation, rotation and scale.
// A degenerate basis (zero-length column) yields an identity rotation.
func (m Mat4) Decompose() (translation Vec3, rotation Quat, scale Vec3) {
	translation = Vec3{m[12], m[13], m[14]}

	sx := Vec3{m[0], m[1], m[2]}.Length()
	sy := Vec3{m[4], m[5], m[6]}.Length()
	sz := Vec3{m[8], m[9], m[10]}.Length()

	// A negative determinant means one axis is mirrored.
	if m.det3() < 0 {
		sx = -sx
	}
	scale = Vec3{sx, sy, sz}

	r := m
	if sx != 0 {
		r[0] /= sx
		r[1] /= sx
		r[2] /= sx
	}
	if sy != 0 {
		r[4] /= sy
		r[5] /= sy
		r[6] /= sy
	}
	if sz != 0 {
		r[8] /= sz
		r[9] /= sz
		r[10] /= sz
	}
	rotation = QuatFromMat4(r)

	return translation, rotation, scale
}

// IsFinite reports whether every element is a finite number.
func (m Mat4) IsFinite() bool {
	for _, f := range m {
		f64 := float64(f)
		if math.IsNaN(f64) || math.IsInf(f64, 0) {
			return false
		}
	}
	return true
}

// det3 returns the determinant of the upper-left 3x3 portion.
func (m Mat4) det3() float32 {
	return m[0]*(m[5]*m[10]-m[6]*m[9]) -
		m[4]*(m[1]*m[10]-m[2]*m[9]) +
		m[8]*(m[1]*m[6]-m[2]*m[5])
}
