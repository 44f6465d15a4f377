// Package flatten converts parametric curves into polylines whose segments
// do not exceed a maximum chord length.
//
// All functions take the tolerance in the curve's own coordinate frame.
// Callers drawing under a transform divide the global tolerance by the
// transform's maximum scale factor before calling in, which keeps the
// apparent smoothness independent of scale.
package flatten

import (
	"math"

	"github.com/gogpu/sketch/internal/geom"
)

const (
	// MinEllipseSegments is the lower bound on the segment count of a full
	// circle or ellipse.
	MinEllipseSegments = 4

	// maxSegments bounds the output of a single primitive.
	maxSegments = 1 << 20

	// lengthMargin oversamples beziers so that the arc-length estimate error
	// never pushes a chord above the tolerance.
	lengthMargin = 1.15
)

// SegmentCount returns the number of segments used to approximate an arc
// of the given radius and angular sweep (radians) at tolerance eps.
func SegmentCount(radius, sweep, eps float64) int {
	if eps <= 0 || radius <= 0 {
		return 1
	}
	n := math.Ceil(math.Abs(sweep) * radius / eps)
	if n > maxSegments {
		return maxSegments
	}
	if n < 1 {
		return 1
	}
	return int(n)
}

// Ellipse returns a closed polyline approximating the ellipse centred on c
// with radii rx and ry. The first point is repeated at the end.
func Ellipse(c geom.Point, rx, ry, eps float64) geom.Polyline {
	n := max(SegmentCount(math.Max(rx, ry), 2*math.Pi, eps), MinEllipseSegments)
	line := make(geom.Polyline, n+1)
	for i := range n {
		a := 2 * math.Pi * float64(i) / float64(n)
		line[i] = geom.Point{X: c.X + rx*math.Cos(a), Y: c.Y + ry*math.Sin(a)}
	}
	line[n] = line[0]
	return line
}

// Arc returns an open polyline along the ellipse centred on c from angle
// start to angle stop (radians, measured from +X towards +Y). When stop is
// smaller than start, it is advanced by full turns so that the arc always
// runs in the positive direction.
func Arc(c geom.Point, rx, ry, start, stop, eps float64) geom.Polyline {
	const twoPi = 2 * math.Pi
	if stop < start {
		stop += math.Ceil((start-stop)/twoPi) * twoPi
	}
	sweep := stop - start
	n := SegmentCount(math.Max(rx, ry), sweep, eps)
	line := make(geom.Polyline, n+1)
	for i := 0; i <= n; i++ {
		a := start + sweep*float64(i)/float64(n)
		line[i] = geom.Point{X: c.X + rx*math.Cos(a), Y: c.Y + ry*math.Sin(a)}
	}
	return line
}

// Cubic flattens a cubic Bezier curve. Samples are spaced uniformly along
// the curve length so that no chord exceeds eps. A curve whose control
// points all coincide yields a single point.
func Cubic(c CubicBez, eps float64) geom.Polyline {
	if c.IsPoint() {
		return geom.Polyline{c.P0}
	}
	net := c.ControlNetLength()

	// Arc-length table over a fine uniform parameter sampling.
	fine := clampInt(int(math.Ceil(4*net/eps)), 16, 1<<14)
	ts := make([]float64, fine+1)
	cum := make([]float64, fine+1)
	prev := c.P0
	for i := 1; i <= fine; i++ {
		t := float64(i) / float64(fine)
		p := c.Eval(t)
		ts[i] = t
		cum[i] = cum[i-1] + p.Distance(prev)
		prev = p
	}
	total := cum[fine]

	n := clampInt(int(math.Ceil(lengthMargin*total/eps)), 1, maxSegments)
	line := make(geom.Polyline, 0, n+1)
	line = append(line, c.P0)
	j := 1
	for i := 1; i < n; i++ {
		target := total * float64(i) / float64(n)
		for j < fine && cum[j] < target {
			j++
		}
		span := cum[j] - cum[j-1]
		t := ts[j]
		if span > 0 {
			t = ts[j-1] + (ts[j]-ts[j-1])*(target-cum[j-1])/span
		}
		line = append(line, c.Eval(t))
	}
	line = append(line, c.P3)
	return line
}

// Quad flattens a quadratic Bezier curve by raising it to a cubic.
func Quad(q QuadBez, eps float64) geom.Polyline {
	return Cubic(q.Raise(), eps)
}

// Corners holds the four corner radii of a rounded rectangle.
type Corners struct {
	TopLeft, TopRight, BottomRight, BottomLeft float64
}

// IsZero reports whether all radii are zero.
func (r Corners) IsZero() bool {
	return r == Corners{}
}

// Fit scales the radii down uniformly when two radii sharing an edge are
// longer than the edge itself.
func (r Corners) Fit(w, h float64) Corners {
	ratio := 1.0
	check := func(edge, a, b float64) {
		if s := a + b; s > edge && s > 0 {
			ratio = math.Min(ratio, edge/s)
		}
	}
	check(w, r.TopLeft, r.TopRight)
	check(w, r.BottomLeft, r.BottomRight)
	check(h, r.TopLeft, r.BottomLeft)
	check(h, r.TopRight, r.BottomRight)
	if ratio == 1 {
		return r
	}
	return Corners{
		TopLeft:     r.TopLeft * ratio,
		TopRight:    r.TopRight * ratio,
		BottomRight: r.BottomRight * ratio,
		BottomLeft:  r.BottomLeft * ratio,
	}
}

// Rect returns the closed outline of an axis-aligned rectangle with
// top-left corner (x, y), clockwise in screen coordinates (Y down). With
// zero radii the result is exactly the five points (x,y), (x+w,y),
// (x+w,y+h), (x,y+h), (x,y).
func Rect(x, y, w, h float64, radii Corners, eps float64) geom.Polyline {
	if radii.IsZero() {
		return geom.Polyline{
			{X: x, Y: y},
			{X: x + w, Y: y},
			{X: x + w, Y: y + h},
			{X: x, Y: y + h},
			{X: x, Y: y},
		}
	}
	r := radii.Fit(w, h)
	line := make(geom.Polyline, 0, 16)
	add := func(p geom.Point) {
		if len(line) == 0 || line[len(line)-1] != p {
			line = append(line, p)
		}
	}
	corner := func(cx, cy, radius, from float64) {
		if radius <= 0 {
			add(geom.Point{X: cx, Y: cy})
			return
		}
		for _, p := range Arc(geom.Point{X: cx, Y: cy}, radius, radius, from, from+math.Pi/2, eps) {
			add(p)
		}
	}

	add(geom.Point{X: x + r.TopLeft, Y: y})
	corner(x+w-r.TopRight, y+r.TopRight, r.TopRight, -math.Pi/2)
	corner(x+w-r.BottomRight, y+h-r.BottomRight, r.BottomRight, 0)
	corner(x+r.BottomLeft, y+h-r.BottomLeft, r.BottomLeft, math.Pi/2)
	corner(x+r.TopLeft, y+r.TopLeft, r.TopLeft, math.Pi)
	if line[len(line)-1] != line[0] {
		line = append(line, line[0])
	}
	return line
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
