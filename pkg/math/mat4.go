package math

import "github.com/chewxy/math32"

// Mat4 is a 4x4 matrix in row-major order.
// Layout: [m0  m1  m2  m3 ]
//
//	[m4  m5  m6  m7 ]
//	[m8  m9  m10 m11]
//	[m12 m13 m14 m15]
//
// Points are column vectors, so the translation lives in m3, m7 and m11 and
// a product a.Mul(b) applies b first.
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

// At returns the element at row, col.
func (m Mat4) At(row, col int) float32 {
	return m[row*4+col]
}

// Translate returns a translation matrix.
func Translate(x, y, z float32) Mat4 {
	return Mat4{
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
		0, 0, 0, 1,
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

// RotateX returns a rotation matrix around the X axis.
// angle is in radians.
func RotateX(angle float32) Mat4 {
	s, c := math32.Sincos(angle)
	return Mat4{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	}
}

// RotateY returns a rotation matrix around the Y axis.
// angle is in radians.
func RotateY(angle float32) Mat4 {
	s, c := math32.Sincos(angle)
	return Mat4{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotateZ returns a rotation matrix around the Z axis.
// angle is in radians.
func RotateZ(angle float32) Mat4 {
	s, c := math32.Sincos(angle)
	return Mat4{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// RotateEuler returns Rz·Ry·Rx for the given angles in radians: X is applied
// first, then Y, then Z.
func RotateEuler(angles Vec3) Mat4 {
	sa, ca := math32.Sincos(angles.X)
	sb, cb := math32.Sincos(angles.Y)
	sc, cc := math32.Sincos(angles.Z)

	return Mat4{
		cb * cc, sa*sb*cc - ca*sc, ca*sb*cc + sa*sc, 0,
		cb * sc, sa*sb*sc + ca*cc, ca*sb*sc - sa*cc, 0,
		-sb, sa * cb, ca * cb, 0,
		0, 0, 0, 1,
	}
}

// Perspective returns the renderer's projection matrix for a vertical field
// of view in degrees and an aspect ratio. There are no clip planes: depth
// passes through unchanged and w receives -z, so the divide happens later.
func Perspective(fovDeg, aspect float32) Mat4 {
	t := math32.Tan(DegToRad(fovDeg) / 2)
	return Mat4{
		aspect / t, 0, 0, 0,
		0, 1 / t, 0, 0,
		0, 0, 1, 0,
		0, 0, -1, 0,
	}
}

// LookAt returns the world matrix of an object placed at eye whose -Z axis
// points at center. Its inverse is the classic view matrix.
func LookAt(eye, center, up Vec3) Mat4 {
	f := center.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)

	return Mat4{
		s.X, u.X, -f.X, eye.X,
		s.Y, u.Y, -f.Y, eye.Y,
		s.Z, u.Z, -f.Z, eye.Z,
		0, 0, 0, 1,
	}
}

// Add returns m + other.
func (m Mat4) Add(other Mat4) Mat4 {
	for i := range m {
		m[i] += other[i]
	}
	return m
}

// Sub returns m - other.
func (m Mat4) Sub(other Mat4) Mat4 {
	for i := range m {
		m[i] -= other[i]
	}
	return m
}

// MulScalar returns m * s.
func (m Mat4) MulScalar(s float32) Mat4 {
	for i := range m {
		m[i] *= s
	}
	return m
}

// Mul multiplies this matrix by another (m * other).
func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			result[row*4+col] =
				m[row*4+0]*other[0*4+col] +
					m[row*4+1]*other[1*4+col] +
					m[row*4+2]*other[2*4+col] +
					m[row*4+3]*other[3*4+col]
		}
	}
	return result
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	var result Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			result[col*4+row] = m[row*4+col]
		}
	}
	return result
}

// Translation returns the translation column.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[3], m[7], m[11]}
}

// Column returns the first three rows of column col.
func (m Mat4) Column(col int) Vec3 {
	return Vec3{m[col], m[4+col], m[8+col]}
}

// TransformPoint transforms a point (w=1) and performs the perspective
// divide. A w within Epsilon of zero is treated as 1.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	h := m.MulVec4(Vec4{p.X, p.Y, p.Z, 1})
	w := h[3]
	if IsZero(w) {
		w = 1
	}
	return Vec3{h[0] / w, h[1] / w, h[2] / w}
}

// TransformDirection transforms a direction vector (w=0, ignores translation).
func (m Mat4) TransformDirection(d Vec3) Vec3 {
	return Vec3{
		m[0]*d.X + m[1]*d.Y + m[2]*d.Z,
		m[4]*d.X + m[5]*d.Y + m[6]*d.Z,
		m[8]*d.X + m[9]*d.Y + m[10]*d.Z,
	}
}

// TransformHomogeneous transforms a point (w=1) without dividing by w.
func (m Mat4) TransformHomogeneous(p Vec3) Vec4 {
	return m.MulVec4(Vec4{p.X, p.Y, p.Z, 1})
}

// ApproxEqual reports whether every element differs by less than Epsilon.
func (m Mat4) ApproxEqual(other Mat4) bool {
	for i := range m {
		if !ApproxEqual(m[i], other[i]) {
			return false
		}
	}
	return true
}

// Vec4 is a 4-component vector.
type Vec4 [4]float32

// MulVec4 multiplies the matrix by a column Vec4.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2] + m[3]*v[3],
		m[4]*v[0] + m[5]*v[1] + m[6]*v[2] + m[7]*v[3],
		m[8]*v[0] + m[9]*v[1] + m[10]*v[2] + m[11]*v[3],
		m[12]*v[0] + m[13]*v[1] + m[14]*v[2] + m[15]*v[3],
	}
}

// IsRigid reports whether m is a rotation plus translation: unit, pairwise
// orthogonal basis columns and a bottom row of (0, 0, 0, 1), all within tol.
func (m Mat4) IsRigid(tol float32) bool {
	x, y, z := m.Column(0), m.Column(1), m.Column(2)
	for _, c := range [3]Vec3{x, y, z} {
		if math32.Abs(c.Length()-1) > tol {
			return false
		}
	}
	if math32.Abs(x.Dot(y)) > tol || math32.Abs(y.Dot(z)) > tol || math32.Abs(x.Dot(z)) > tol {
		return false
	}
	return math32.Abs(m[12]) <= tol && math32.Abs(m[13]) <= tol &&
		math32.Abs(m[14]) <= tol && math32.Abs(m[15]-1) <= tol
}

// Orthonormalize strips scale and shear from m, keeping the translation and
// the directions of the X and Y columns. Z is rebuilt as X × Y, so
// reflections come out as rotations. ok is false when X or Y collapses.
func (m Mat4) Orthonormalize() (r Mat4, ok bool) {
	x := m.Column(0).Normalize()
	y := m.Column(1)
	y = y.Sub(x.Scale(y.Dot(x))).Normalize()
	if x.IsZero() || y.IsZero() {
		return m, false
	}
	z := x.Cross(y)
	t := m.Translation()
	return Mat4{
		x.X, y.X, z.X, t.X,
		x.Y, y.Y, z.Y, t.Y,
		x.Z, y.Z, z.Z, t.Z,
		0, 0, 0, 1,
	}, true
}

// NormalMatrix returns the transpose of the inverse, which maps normals
// consistently with m under non-uniform scale.
func (m Mat4) NormalMatrix() Mat4 {
	return m.Inverse().Transpose()
}

// Inverse returns the inverse of the matrix.
// Returns identity if the matrix is singular.
func (m Mat4) Inverse() Mat4 {
	// The cofactor expansion is layout agnostic: inverting the flat array as
	// column-major yields the same array as inverting it as row-major.
	c00 := m[5]*m[10]*m[15] - m[5]*m[11]*m[14] - m[9]*m[6]*m[15] + m[9]*m[7]*m[14] + m[13]*m[6]*m[11] - m[13]*m[7]*m[10]
	c01 := -m[1]*m[10]*m[15] + m[1]*m[11]*m[14] + m[9]*m[2]*m[15] - m[9]*m[3]*m[14] - m[13]*m[2]*m[11] + m[13]*m[3]*m[10]
	c02 := m[1]*m[6]*m[15] - m[1]*m[7]*m[14] - m[5]*m[2]*m[15] + m[5]*m[3]*m[14] + m[13]*m[2]*m[7] - m[13]*m[3]*m[6]
	c03 := -m[1]*m[6]*m[11] + m[1]*m[7]*m[10] + m[5]*m[2]*m[11] - m[5]*m[3]*m[10] - m[9]*m[2]*m[7] + m[9]*m[3]*m[6]

	c10 := -m[4]*m[10]*m[15] + m[4]*m[11]*m[14] + m[8]*m[6]*m[15] - m[8]*m[7]*m[14] - m[12]*m[6]*m[11] + m[12]*m[7]*m[10]
	c11 := m[0]*m[10]*m[15] - m[0]*m[11]*m[14] - m[8]*m[2]*m[15] + m[8]*m[3]*m[14] + m[12]*m[2]*m[11] - m[12]*m[3]*m[10]
	c12 := -m[0]*m[6]*m[15] + m[0]*m[7]*m[14] + m[4]*m[2]*m[15] - m[4]*m[3]*m[14] - m[12]*m[2]*m[7] + m[12]*m[3]*m[6]
	c13 := m[0]*m[6]*m[11] - m[0]*m[7]*m[10] - m[4]*m[2]*m[11] + m[4]*m[3]*m[10] + m[8]*m[2]*m[7] - m[8]*m[3]*m[6]

	c20 := m[4]*m[9]*m[15] - m[4]*m[11]*m[13] - m[8]*m[5]*m[15] + m[8]*m[7]*m[13] + m[12]*m[5]*m[11] - m[12]*m[7]*m[9]
	c21 := -m[0]*m[9]*m[15] + m[0]*m[11]*m[13] + m[8]*m[1]*m[15] - m[8]*m[3]*m[13] - m[12]*m[1]*m[11] + m[12]*m[3]*m[9]
	c22 := m[0]*m[5]*m[15] - m[0]*m[7]*m[13] - m[4]*m[1]*m[15] + m[4]*m[3]*m[13] + m[12]*m[1]*m[7] - m[12]*m[3]*m[5]
	c23 := -m[0]*m[5]*m[11] + m[0]*m[7]*m[9] + m[4]*m[1]*m[11] - m[4]*m[3]*m[9] - m[8]*m[1]*m[7] + m[8]*m[3]*m[5]

	c30 := -m[4]*m[9]*m[14] + m[4]*m[10]*m[13] + m[8]*m[5]*m[14] - m[8]*m[6]*m[13] - m[12]*m[5]*m[10] + m[12]*m[6]*m[9]
	c31 := m[0]*m[9]*m[14] - m[0]*m[10]*m[13] - m[8]*m[1]*m[14] + m[8]*m[2]*m[13] + m[12]*m[1]*m[10] - m[12]*m[2]*m[9]
	c32 := -m[0]*m[5]*m[14] + m[0]*m[6]*m[13] + m[4]*m[1]*m[14] - m[4]*m[2]*m[13] - m[12]*m[1]*m[6] + m[12]*m[2]*m[5]
	c33 := m[0]*m[5]*m[10] - m[0]*m[6]*m[9] - m[4]*m[1]*m[10] + m[4]*m[2]*m[9] + m[8]*m[1]*m[6] - m[8]*m[2]*m[5]

	det := m[0]*c00 + m[4]*c01 + m[8]*c02 + m[12]*c03

	if det == 0 {
		return Identity()
	}

	invDet := 1.0 / det

	return Mat4{
		c00 * invDet, c01 * invDet, c02 * invDet, c03 * invDet,
		c10 * invDet, c11 * invDet, c12 * invDet, c13 * invDet,
		c20 * invDet, c21 * invDet, c22 * invDet, c23 * invDet,
		c30 * invDet, c31 * invDet, c32 * invDet, c33 * invDet,
	}
}
