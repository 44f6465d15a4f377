package sketch

import "github.com/gogpu/sketch/internal/geom"

// Point represents a 2D point or vector.
type Point = geom.Point

// Polyline is an ordered sequence of points. A polyline whose first and
// last points are equal (with more than two points) is closed.
type Polyline = geom.Polyline

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return geom.Pt(x, y)
}
