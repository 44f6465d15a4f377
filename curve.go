package sketch

// BezierPoint evaluates one coordinate of a cubic Bezier curve at t, where
// a and d are the end points and b and c the control points. Call it once
// per axis.
func BezierPoint(a, b, c, d, t float64) float64 {
	mt := 1 - t
	return mt*mt*mt*a + 3*mt*mt*t*b + 3*mt*t*t*c + t*t*t*d
}

// BezierTangent evaluates one coordinate of the derivative of a cubic
// Bezier curve at t.
func BezierTangent(a, b, c, d, t float64) float64 {
	mt := 1 - t
	return 3*mt*mt*(b-a) + 6*mt*t*(c-b) + 3*t*t*(d-c)
}
