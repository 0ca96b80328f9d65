package boardview

import "math"

// Matrix3 represents a 2D affine transformation.
// It stores the top two rows of a 3x3 matrix in row-major order; the
// bottom row is implicitly (0, 0, 1):
//
//	| a  b  c |
//	| d  e  f |
//	| 0  0  1 |
//
// This represents the transformation:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
//
// Matrix3 is a value type. Operations return new matrices and never
// mutate their operands.
type Matrix3 struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation.
func Identity() Matrix3 {
	return Matrix3{
		A: 1, B: 0, C: 0,
		D: 0, E: 1, F: 0,
	}
}

// Translation creates a translation matrix.
func Translation(x, y float64) Matrix3 {
	return Matrix3{
		A: 1, B: 0, C: x,
		D: 0, E: 1, F: y,
	}
}

// Scaling creates a scaling matrix.
func Scaling(x, y float64) Matrix3 {
	return Matrix3{
		A: x, B: 0, C: 0,
		D: 0, E: y, F: 0,
	}
}

// Rotation creates a rotation matrix.
func Rotation(a Angle) Matrix3 {
	sin, cos := math.Sincos(a.Radians())
	return Matrix3{
		A: cos, B: -sin, C: 0,
		D: sin, E: cos, F: 0,
	}
}

// Mul multiplies two matrices (m * other). Applying the result transforms
// by other first, then by m.
func (m Matrix3) Mul(other Matrix3) Matrix3 {
	return Matrix3{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// Translate returns the matrix composed with a translation.
func (m Matrix3) Translate(x, y float64) Matrix3 {
	return m.Mul(Translation(x, y))
}

// Scale returns the matrix composed with a scale.
func (m Matrix3) Scale(x, y float64) Matrix3 {
	return m.Mul(Scaling(x, y))
}

// Rotate returns the matrix composed with a rotation.
func (m Matrix3) Rotate(a Angle) Matrix3 {
	return m.Mul(Rotation(a))
}

// Transform applies the transformation to a point.
func (m Matrix3) Transform(p Vec2) Vec2 {
	return Vec2{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// TransformAll applies the transformation to every point, returning a
// new slice. The input is not modified.
func (m Matrix3) TransformAll(pts []Vec2) []Vec2 {
	out := make([]Vec2, len(pts))
	for i, p := range pts {
		out[i] = m.Transform(p)
	}
	return out
}

// TransformVector applies the transformation without translation.
func (m Matrix3) TransformVector(v Vec2) Vec2 {
	return Vec2{
		X: m.A*v.X + m.B*v.Y,
		Y: m.D*v.X + m.E*v.Y,
	}
}

// Inverse returns the inverse matrix.
// The second return value is false if the matrix is singular.
func (m Matrix3) Inverse() (Matrix3, bool) {
	det := m.A*m.E - m.B*m.D
	if math.Abs(det) < 1e-12 {
		return Identity(), false
	}

	invDet := 1.0 / det
	return Matrix3{
		A: m.E * invDet,
		B: -m.B * invDet,
		C: (m.B*m.F - m.C*m.E) * invDet,
		D: -m.D * invDet,
		E: m.A * invDet,
		F: (m.C*m.D - m.A*m.F) * invDet,
	}, true
}

// AbsScale returns the average absolute scale factor of the matrix.
// Used to convert scalar widths (stroke width, tick length) between
// coordinate spaces.
func (m Matrix3) AbsScale() float64 {
	sx := math.Hypot(m.A, m.D)
	sy := math.Hypot(m.B, m.E)
	return (sx + sy) / 2
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix3) IsIdentity() bool {
	return m.A == 1 && m.B == 0 && m.C == 0 &&
		m.D == 0 && m.E == 1 && m.F == 0
}
