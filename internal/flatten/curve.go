package flatten

import "github.com/gogpu/sketch/internal/geom"

// QuadBez represents a quadratic Bezier curve with control points P0, P1, P2.
type QuadBez struct {
	P0, P1, P2 geom.Point
}

// Eval evaluates the curve at parameter t (0 to 1).
func (q QuadBez) Eval(t float64) geom.Point {
	mt := 1.0 - t
	return geom.Point{
		X: mt*mt*q.P0.X + 2*mt*t*q.P1.X + t*t*q.P2.X,
		Y: mt*mt*q.P0.Y + 2*mt*t*q.P1.Y + t*t*q.P2.Y,
	}
}

// Raise elevates the quadratic to an exactly equivalent cubic Bezier curve.
func (q QuadBez) Raise() CubicBez {
	// C1 = P0 + 2/3 * (P1 - P0), C2 = P2 + 2/3 * (P1 - P2)
	return CubicBez{
		P0: q.P0,
		P1: geom.Point{
			X: q.P0.X + (2.0/3.0)*(q.P1.X-q.P0.X),
			Y: q.P0.Y + (2.0/3.0)*(q.P1.Y-q.P0.Y),
		},
		P2: geom.Point{
			X: q.P2.X + (2.0/3.0)*(q.P1.X-q.P2.X),
			Y: q.P2.Y + (2.0/3.0)*(q.P1.Y-q.P2.Y),
		},
		P3: q.P2,
	}
}

// CubicBez represents a cubic Bezier curve with control points P0, P1, P2, P3.
// P0 is the start point, P1 and P2 are control points, P3 is the end point.
type CubicBez struct {
	P0, P1, P2, P3 geom.Point
}

// Eval evaluates the curve at parameter t (0 to 1).
func (c CubicBez) Eval(t float64) geom.Point {
	mt := 1.0 - t
	mt2 := mt * mt
	mt3 := mt2 * mt
	t2 := t * t
	t3 := t2 * t

	// (1-t)^3 * P0 + 3(1-t)^2*t * P1 + 3(1-t)*t^2 * P2 + t^3 * P3
	return geom.Point{
		X: mt3*c.P0.X + 3*mt2*t*c.P1.X + 3*mt*t2*c.P2.X + t3*c.P3.X,
		Y: mt3*c.P0.Y + 3*mt2*t*c.P1.Y + 3*mt*t2*c.P2.Y + t3*c.P3.Y,
	}
}

// Tangent returns the (unnormalized) derivative of the curve at t.
func (c CubicBez) Tangent(t float64) geom.Point {
	mt := 1.0 - t
	return geom.Point{
		X: 3*mt*mt*(c.P1.X-c.P0.X) + 6*mt*t*(c.P2.X-c.P1.X) + 3*t*t*(c.P3.X-c.P2.X),
		Y: 3*mt*mt*(c.P1.Y-c.P0.Y) + 6*mt*t*(c.P2.Y-c.P1.Y) + 3*t*t*(c.P3.Y-c.P2.Y),
	}
}

// ControlNetLength returns the length of the polygon through the four
// control points, an upper bound of the curve length.
func (c CubicBez) ControlNetLength() float64 {
	return c.P0.Distance(c.P1) + c.P1.Distance(c.P2) + c.P2.Distance(c.P3)
}

// IsPoint reports whether all control points coincide.
func (c CubicBez) IsPoint() bool {
	return c.P0 == c.P1 && c.P1 == c.P2 && c.P2 == c.P3
}
