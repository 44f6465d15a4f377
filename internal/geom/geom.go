// Package geom holds the point and polyline types shared by the sketch
// package and its internal algorithms.
package geom

import "math"

// Point represents a 2D point or vector.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Dot returns the dot product of two vectors.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the 2D cross product (scalar).
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Length returns the length of the vector.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// Normalize returns a unit vector in the same direction.
func (p Point) Normalize() Point {
	length := p.Length()
	if length < 1e-12 {
		return Point{}
	}
	return Point{X: p.X / length, Y: p.Y / length}
}

// Perp returns the vector rotated by 90 degrees (x, y) -> (-y, x).
func (p Point) Perp() Point {
	return Point{X: -p.Y, Y: p.X}
}

// Lerp performs linear interpolation between two points.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// IsFinite reports whether both coordinates are finite.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Polyline is an ordered sequence of points joined by straight segments.
type Polyline []Point

// Clone returns a deep copy of the polyline.
func (l Polyline) Clone() Polyline {
	if l == nil {
		return nil
	}
	out := make(Polyline, len(l))
	copy(out, l)
	return out
}

// IsClosed reports whether the last point equals the first one.
func (l Polyline) IsClosed() bool {
	return len(l) > 2 && l[0] == l[len(l)-1]
}

// DistinctCount returns the number of distinct vertices, up to a maximum
// of limit. Points equal to the first are not counted again.
func (l Polyline) DistinctCount(limit int) int {
	if len(l) == 0 {
		return 0
	}
	n := 1
	for _, p := range l[1:] {
		if p != l[0] {
			n++
			if n >= limit {
				return n
			}
		}
	}
	return n
}

// Length returns the total length of the polyline.
func (l Polyline) Length() float64 {
	var total float64
	for i := 1; i < len(l); i++ {
		total += l[i-1].Distance(l[i])
	}
	return total
}

// Reversed returns a copy of the polyline with the point order reversed.
func (l Polyline) Reversed() Polyline {
	out := make(Polyline, len(l))
	for i, p := range l {
		out[len(l)-1-i] = p
	}
	return out
}
