package sketch

import (
	"math"

	"github.com/gogpu/sketch/internal/flatten"
)

// DefaultPathTolerance is the chord tolerance used when a Path is read
// through its Geometry methods rather than drawn with Sketch.DrawPath.
const DefaultPathTolerance = 0.1

// PathElement represents a single element in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo moves to a point without drawing.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a line to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isPathElement() {}

// Path is a vector path built from lines and Bezier curves. Paths are
// flattened when drawn, at the tolerance in effect for the drawing frame.
//
// All closed subpaths of a path form a single filled region under the
// even-odd rule: the first closed subpath is the exterior and the others
// are holes.
type Path struct {
	elements []PathElement
	start    Point // Starting point of current subpath
	current  Point // Current point
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{
		elements: make([]PathElement, 0, 16),
	}
}

// MoveTo moves to a point without drawing.
func (p *Path) MoveTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start = pt
	p.current = pt
}

// LineTo draws a line to a point.
func (p *Path) LineTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
}

// QuadraticTo draws a quadratic Bezier curve.
func (p *Path) QuadraticTo(cx, cy, x, y float64) {
	ctrl := Pt(cx, cy)
	pt := Pt(x, y)
	p.elements = append(p.elements, QuadTo{Control: ctrl, Point: pt})
	p.current = pt
}

// CubicTo draws a cubic Bezier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	ctrl1 := Pt(c1x, c1y)
	ctrl2 := Pt(c2x, c2y)
	pt := Pt(x, y)
	p.elements = append(p.elements, CubicTo{
		Control1: ctrl1,
		Control2: ctrl2,
		Point:    pt,
	})
	p.current = pt
}

// Close closes the current subpath by drawing a line to the start point.
func (p *Path) Close() {
	p.elements = append(p.elements, Close{})
	p.current = p.start
}

// Elements returns the path elements.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// CurrentPoint returns the current point.
func (p *Path) CurrentPoint() Point {
	return p.current
}

// HasCurrentPoint returns true if the path has a current point.
// A path has a current point after MoveTo, LineTo, or any curve operation.
func (p *Path) HasCurrentPoint() bool {
	return len(p.elements) > 0
}

// Transform applies a transformation matrix to all points in the path.
func (p *Path) Transform(m Matrix) *Path {
	result := NewPath()
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			pt := m.TransformPoint(e.Point)
			result.MoveTo(pt.X, pt.Y)
		case LineTo:
			pt := m.TransformPoint(e.Point)
			result.LineTo(pt.X, pt.Y)
		case QuadTo:
			ctrl := m.TransformPoint(e.Control)
			pt := m.TransformPoint(e.Point)
			result.QuadraticTo(ctrl.X, ctrl.Y, pt.X, pt.Y)
		case CubicTo:
			ctrl1 := m.TransformPoint(e.Control1)
			ctrl2 := m.TransformPoint(e.Control2)
			pt := m.TransformPoint(e.Point)
			result.CubicTo(ctrl1.X, ctrl1.Y, ctrl2.X, ctrl2.Y, pt.X, pt.Y)
		case Close:
			result.Close()
		}
	}
	return result
}

// Rectangle adds a rectangle to the path.
func (p *Path) Rectangle(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// Circle adds a closed circle to the path as a new subpath.
func (p *Path) Circle(cx, cy, r float64) {
	p.Ellipse(cx, cy, r, r)
}

// Ellipse adds a closed, axis-aligned ellipse to the path as a new subpath.
func (p *Path) Ellipse(cx, cy, rx, ry float64) {
	p.MoveTo(cx+rx, cy)
	p.ellipticalArc(cx, cy, rx, ry, 0, 2*math.Pi)
	p.Close()
}

// Arc adds a circular arc to the path, from angle1 to angle2 (radians)
// around (cx, cy). The arc is connected to the current point by a line, or
// starts a new subpath when there is none. angle2 is advanced by full turns
// until it is not below angle1.
func (p *Path) Arc(cx, cy, r, angle1, angle2 float64) {
	const twoPi = 2 * math.Pi
	if angle2 < angle1 {
		angle2 += math.Ceil((angle1-angle2)/twoPi) * twoPi
	}
	if angle2 == angle1 {
		return
	}
	start := Pt(cx+r*math.Cos(angle1), cy+r*math.Sin(angle1))
	switch {
	case !p.HasCurrentPoint():
		p.MoveTo(start.X, start.Y)
	case p.current != start:
		p.LineTo(start.X, start.Y)
	}
	p.ellipticalArc(cx, cy, r, r, angle1, angle2)
}

// ellipticalArc appends cubic segments of at most a quarter turn following
// the ellipse from a1 to a2. The current point must be the arc start.
func (p *Path) ellipticalArc(cx, cy, rx, ry, a1, a2 float64) {
	n := int(math.Ceil(math.Abs(a2-a1) / (math.Pi / 2)))
	step := (a2 - a1) / float64(n)
	// tangent length of a cubic approximating a circular arc of angle step
	k := 4.0 / 3 * math.Tan(step/4)
	for i := range n {
		t1 := a1 + float64(i)*step
		t2 := t1 + step
		if i == n-1 {
			t2 = a2
		}
		cos1, sin1 := math.Cos(t1), math.Sin(t1)
		cos2, sin2 := math.Cos(t2), math.Sin(t2)
		p.CubicTo(
			cx+rx*(cos1-k*sin1), cy+ry*(sin1+k*cos1),
			cx+rx*(cos2+k*sin2), cy+ry*(sin2-k*cos2),
			cx+rx*cos2, cy+ry*sin2,
		)
	}
}

// RoundedRectangle adds a closed rectangle with corner radius r. The radius
// is limited to half the shorter side; a non-positive radius gives a plain
// rectangle.
func (p *Path) RoundedRectangle(x, y, w, h, r float64) {
	r = min(r, math.Min(w, h)/2)
	if r <= 0 {
		p.Rectangle(x, y, w, h)
		return
	}
	p.MoveTo(x+r, y)
	p.Arc(x+w-r, y+r, r, -math.Pi/2, 0)
	p.Arc(x+w-r, y+h-r, r, 0, math.Pi/2)
	p.Arc(x+r, y+h-r, r, math.Pi/2, math.Pi)
	p.Arc(x+r, y+r, r, math.Pi, 3*math.Pi/2)
	p.Close()
}

// Flatten converts the path to polylines with chord tolerance tolerance.
// Open subpaths become polylines; closed subpaths become one polygon.
func (p *Path) Flatten(tolerance float64) Geometry {
	var g flatPath
	var cur Polyline
	var start Point
	finish := func(closed bool) {
		if closed {
			cur = closeRing(cur)
			if g.polygon.Exterior == nil {
				g.polygon.Exterior = cur
			} else {
				g.polygon.Holes = append(g.polygon.Holes, cur)
			}
		} else if len(cur) > 1 {
			g.lines = append(g.lines, cur)
		}
		cur = nil
	}
	last := func() Point {
		if len(cur) == 0 {
			return start
		}
		return cur[len(cur)-1]
	}
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			finish(false)
			start = e.Point
			cur = Polyline{e.Point}
		case LineTo:
			if len(cur) == 0 {
				cur = Polyline{start}
			}
			cur = append(cur, e.Point)
		case QuadTo:
			q := flatten.QuadBez{P0: last(), P1: e.Control, P2: e.Point}
			if len(cur) == 0 {
				cur = Polyline{start}
			}
			cur = append(cur, flatten.Quad(q, tolerance)[1:]...)
		case CubicTo:
			c := flatten.CubicBez{P0: last(), P1: e.Control1, P2: e.Control2, P3: e.Point}
			if len(cur) == 0 {
				cur = Polyline{start}
			}
			cur = append(cur, flatten.Cubic(c, tolerance)[1:]...)
		case Close:
			if len(cur) > 0 {
				finish(true)
			}
		}
	}
	finish(false)
	return g
}

// Polylines returns the open subpaths flattened at DefaultPathTolerance.
func (p *Path) Polylines() []Polyline {
	return p.Flatten(DefaultPathTolerance).Polylines()
}

// Polygons returns the closed subpaths flattened at DefaultPathTolerance.
func (p *Path) Polygons() []PolygonRings {
	return p.Flatten(DefaultPathTolerance).Polygons()
}

// flatPath is a flattened Path.
type flatPath struct {
	lines   []Polyline
	polygon PolygonRings
}

func (g flatPath) Polylines() []Polyline { return g.lines }

func (g flatPath) Polygons() []PolygonRings {
	if g.polygon.Exterior == nil {
		return nil
	}
	return []PolygonRings{g.polygon}
}

// DrawPath draws p in the current frame. The path is mapped to page
// coordinates first and its curves are flattened there at the detail
// value, so anisotropic scaling keeps the chord tolerance exact.
func (s *Sketch) DrawPath(p *Path) error {
	if p == nil {
		return argError("DrawPath", "nil path")
	}
	g := p.Transform(s.matrix).Flatten(s.DetailValue())
	return s.drawParts("DrawPath", geometryParts(g), Identity())
}
