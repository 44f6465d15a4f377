package sketch

import "math"

// Matrix represents a 2D affine transformation matrix.
// It uses a 2x3 matrix in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// This represents the transformation:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{
		A: 1, B: 0, C: 0,
		D: 0, E: 1, F: 0,
	}
}

// TranslateMatrix creates a translation matrix.
func TranslateMatrix(x, y float64) Matrix {
	return Matrix{
		A: 1, B: 0, C: x,
		D: 0, E: 1, F: y,
	}
}

// ScaleMatrix creates a scaling matrix.
func ScaleMatrix(x, y float64) Matrix {
	return Matrix{
		A: x, B: 0, C: 0,
		D: 0, E: y, F: 0,
	}
}

// RotateMatrix creates a rotation matrix (angle in radians).
// Positive angles turn +X towards +Y, which is clockwise on a y-down page.
func RotateMatrix(angle float64) Matrix {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Matrix{
		A: cos, B: -sin, C: 0,
		D: sin, E: cos, F: 0,
	}
}

// ShearMatrix creates a shear matrix.
func ShearMatrix(x, y float64) Matrix {
	return Matrix{
		A: 1, B: x, C: 0,
		D: y, E: 1, F: 0,
	}
}

// Multiply returns m * other: the result applies other first, then m.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// TransformPoint applies the transformation to a point.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// TransformPolyline returns a new polyline with every point transformed.
func (m Matrix) TransformPolyline(line Polyline) Polyline {
	out := make(Polyline, len(line))
	for i, p := range line {
		out[i] = m.TransformPoint(p)
	}
	return out
}

// Determinant returns the determinant of the linear part.
func (m Matrix) Determinant() float64 {
	return m.A*m.E - m.B*m.D
}

// Invert returns the inverse matrix and true, or the identity and false if
// the matrix is singular.
func (m Matrix) Invert() (Matrix, bool) {
	det := m.Determinant()
	if math.Abs(det) < 1e-12 {
		return Identity(), false
	}

	invDet := 1.0 / det
	return Matrix{
		A: m.E * invDet,
		B: -m.B * invDet,
		C: (m.B*m.F - m.C*m.E) * invDet,
		D: -m.D * invDet,
		E: m.A * invDet,
		F: (m.C*m.D - m.A*m.F) * invDet,
	}, true
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m.A == 1 && m.B == 0 && m.C == 0 &&
		m.D == 0 && m.E == 1 && m.F == 0
}

// IsTranslationOnly returns true if the linear part is the identity.
func (m Matrix) IsTranslationOnly() bool {
	return m.A == 1 && m.B == 0 && m.D == 0 && m.E == 1
}

// IsScaleOnly returns true if the matrix has no rotation or shear.
// Translation and negative or zero scales are allowed.
func (m Matrix) IsScaleOnly() bool {
	return m.B == 0 && m.D == 0
}

// IsFinite reports whether every coefficient is finite.
func (m Matrix) IsFinite() bool {
	for _, v := range [...]float64{m.A, m.B, m.C, m.D, m.E, m.F} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// MaxScaleFactor returns the largest factor by which the matrix stretches
// any vector, i.e. the largest singular value of the linear part.
//
// It is the square root of the larger eigenvalue of M^T*M:
//
//	| p  q |   p = a*a + d*d
//	| q  r |   q = a*b + d*e,  r = b*b + e*e
func (m Matrix) MaxScaleFactor() float64 {
	if m.IsScaleOnly() {
		return math.Max(math.Abs(m.A), math.Abs(m.E))
	}
	p := m.A*m.A + m.D*m.D
	r := m.B*m.B + m.E*m.E
	q := m.A*m.B + m.D*m.E
	diff := p - r
	disc := math.Sqrt(diff*diff + 4*q*q)
	return math.Sqrt((p + r + disc) / 2)
}
