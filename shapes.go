package sketch

import (
	"math"

	"github.com/gogpu/sketch/internal/flatten"
)

// ArcMode selects how an arc is closed.
type ArcMode int

const (
	// ArcOpen draws only the curve.
	ArcOpen ArcMode = iota
	// ArcChord closes the arc with a straight line between its end points.
	ArcChord
	// ArcPie closes the arc through the ellipse center.
	ArcPie
)

// shape is a primitive in local coordinates.
type shape struct {
	line     Polyline
	holes    []Polyline
	fillable bool
}

// transformed maps a local shape into page coordinates.
func (sh shape) transformed(m Matrix) shape {
	out := shape{line: m.TransformPolyline(sh.line), fillable: sh.fillable}
	for _, h := range sh.holes {
		out.holes = append(out.holes, m.TransformPolyline(h))
	}
	return out
}

// validate reports non-finite coordinates of a shape in page coordinates.
func (sh shape) validate(op string) error {
	if !allFinite(sh.line) {
		return argError(op, "non-finite coordinate after transform")
	}
	for _, h := range sh.holes {
		if !allFinite(h) {
			return argError(op, "non-finite hole coordinate after transform")
		}
	}
	return nil
}

// emit transforms a local shape and stores it.
func (s *Sketch) emit(op string, sh shape) error {
	return s.emitGlobal(op, sh.transformed(s.matrix))
}

// emitGlobal stores a shape already in page coordinates on the selected
// stroke and fill layers.
func (s *Sketch) emitGlobal(op string, sh shape) error {
	if err := sh.validate(op); err != nil {
		return err
	}
	if sh.line.DistinctCount(2) < 2 {
		s.drop(op, "fewer than 2 distinct points")
		return nil
	}
	holes := make([]Polyline, 0, len(sh.holes))
	for _, h := range sh.holes {
		if h.DistinctCount(2) < 2 {
			s.drop(op, "hole with fewer than 2 distinct points")
			continue
		}
		holes = append(holes, h)
	}

	if s.strokeLayer != 0 {
		l := s.layer(s.strokeLayer)
		l.Strokes = append(l.Strokes, StrokePath{Line: sh.line, Weight: s.weight, Join: s.join})
		for _, h := range holes {
			l.Strokes = append(l.Strokes, StrokePath{Line: h, Weight: s.weight, Join: s.join, Hole: true})
		}
	}
	if sh.fillable && s.fillLayer != 0 {
		var strokeWidth float64
		if s.strokeLayer != 0 {
			strokeWidth = float64(s.weight) * s.penWidth(s.strokeLayer)
		}
		fill := FillShape{Exterior: sh.line.Clone(), StrokeWidth: strokeWidth}
		for _, h := range holes {
			fill.Holes = append(fill.Holes, h.Clone())
		}
		l := s.layer(s.fillLayer)
		l.Fills = append(l.Fills, fill)
	}
	return nil
}

func allFinite(line Polyline) bool {
	for _, p := range line {
		if !p.IsFinite() {
			return false
		}
	}
	return true
}

func checkFinite(op string, vals ...float64) error {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return argError(op, "non-finite argument %v", v)
		}
	}
	return nil
}

func closeRing(pts []Point) Polyline {
	line := make(Polyline, len(pts), len(pts)+1)
	copy(line, pts)
	if len(line) > 0 && line[0] != line[len(line)-1] {
		line = append(line, line[0])
	}
	return line
}

// Line draws a straight line from (x1, y1) to (x2, y2).
func (s *Sketch) Line(x1, y1, x2, y2 float64) error {
	if err := checkFinite("Line", x1, y1, x2, y2); err != nil {
		return err
	}
	return s.emit("Line", shape{line: Polyline{Pt(x1, y1), Pt(x2, y2)}})
}

// rectBox converts Rect arguments to a corner, width and height according
// to the rect mode. Negative extents are flipped.
func rectBox(mode Mode, a, b, c, d float64) (x, y, w, h float64) {
	switch mode {
	case ModeCorners:
		x, y, w, h = a, b, c-a, d-b
	case ModeCenter:
		x, y, w, h = a-c/2, b-d/2, c, d
	case ModeRadius:
		x, y, w, h = a-c, b-d, 2*c, 2*d
	default:
		x, y, w, h = a, b, c, d
	}
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	return x, y, w, h
}

// Rect draws a rectangle. The arguments are interpreted according to
// RectMode; by default they are the top-left corner, width and height.
func (s *Sketch) Rect(a, b, c, d float64) error {
	if err := checkFinite("Rect", a, b, c, d); err != nil {
		return err
	}
	x, y, w, h := rectBox(s.rectMode, a, b, c, d)
	return s.emit("Rect", shape{line: flatten.Rect(x, y, w, h, flatten.Corners{}, s.Epsilon()), fillable: true})
}

// Square draws a square of side extent. In ModeRadius, extent is half the side.
func (s *Sketch) Square(x, y, extent float64) error {
	if s.rectMode == ModeCorners {
		return s.withRectMode(ModeCorner, func() error { return s.Rect(x, y, extent, extent) })
	}
	return s.Rect(x, y, extent, extent)
}

func (s *Sketch) withRectMode(m Mode, fn func() error) error {
	prev := s.rectMode
	s.rectMode = m
	defer func() { s.rectMode = prev }()
	return fn()
}

// RoundedRect draws a rectangle with rounded corners. radii holds either
// one radius for all corners or four radii in the order top-left,
// top-right, bottom-right, bottom-left. Radii too large for the rectangle
// are scaled down proportionally.
func (s *Sketch) RoundedRect(a, b, c, d float64, radii ...float64) error {
	if err := checkFinite("RoundedRect", append([]float64{a, b, c, d}, radii...)...); err != nil {
		return err
	}
	var corners flatten.Corners
	switch len(radii) {
	case 1:
		corners = flatten.Corners{TopLeft: radii[0], TopRight: radii[0], BottomRight: radii[0], BottomLeft: radii[0]}
	case 4:
		corners = flatten.Corners{TopLeft: radii[0], TopRight: radii[1], BottomRight: radii[2], BottomLeft: radii[3]}
	default:
		return argError("RoundedRect", "want 1 or 4 radii, got %d", len(radii))
	}
	for _, r := range radii {
		if r < 0 {
			return argError("RoundedRect", "negative corner radius %v", r)
		}
	}
	x, y, w, h := rectBox(s.rectMode, a, b, c, d)
	corners = corners.Fit(w, h)
	return s.emit("RoundedRect", shape{line: flatten.Rect(x, y, w, h, corners, s.Epsilon()), fillable: true})
}

// ellipseBox converts Ellipse arguments to a center and radii according to
// the ellipse mode.
func ellipseBox(op string, mode Mode, a, b, c, d float64) (cx, cy, rx, ry float64, err error) {
	if mode == ModeCorners {
		return (a + c) / 2, (b + d) / 2, math.Abs(c-a) / 2, math.Abs(d-b) / 2, nil
	}
	if c < 0 || d < 0 {
		return 0, 0, 0, 0, argError(op, "negative size %vx%v", c, d)
	}
	switch mode {
	case ModeCorner:
		return a + c/2, b + d/2, c / 2, d / 2, nil
	case ModeRadius:
		return a, b, c, d, nil
	default:
		return a, b, c / 2, d / 2, nil
	}
}

// Circle draws a circle of the given radius centered on (x, y).
func (s *Sketch) Circle(x, y, radius float64) error {
	if err := checkFinite("Circle", x, y, radius); err != nil {
		return err
	}
	if radius < 0 {
		return argError("Circle", "negative radius %v", radius)
	}
	if radius == 0 {
		s.drop("Circle", "zero radius")
		return nil
	}
	return s.emit("Circle", shape{line: flatten.Ellipse(Pt(x, y), radius, radius, s.Epsilon()), fillable: true})
}

// Ellipse draws an ellipse. The arguments are interpreted according to
// EllipseMode; by default they are the center, width and height.
func (s *Sketch) Ellipse(a, b, c, d float64) error {
	if err := checkFinite("Ellipse", a, b, c, d); err != nil {
		return err
	}
	cx, cy, rx, ry, err := ellipseBox("Ellipse", s.ellipseMode, a, b, c, d)
	if err != nil {
		return err
	}
	if rx == 0 || ry == 0 {
		s.drop("Ellipse", "zero radius")
		return nil
	}
	return s.emit("Ellipse", shape{line: flatten.Ellipse(Pt(cx, cy), rx, ry, s.Epsilon()), fillable: true})
}

// Arc draws part of an ellipse from angle start to angle stop (radians,
// turning from +X towards +Y). The ellipse arguments follow EllipseMode.
func (s *Sketch) Arc(a, b, c, d, start, stop float64, mode ArcMode) error {
	if err := checkFinite("Arc", a, b, c, d, start, stop); err != nil {
		return err
	}
	cx, cy, rx, ry, err := ellipseBox("Arc", s.ellipseMode, a, b, c, d)
	if err != nil {
		return err
	}
	if rx == 0 || ry == 0 {
		s.drop("Arc", "zero radius")
		return nil
	}
	line := flatten.Arc(Pt(cx, cy), rx, ry, start, stop, s.Epsilon())
	switch mode {
	case ArcChord:
		line = closeRing(line)
	case ArcPie:
		line = closeRing(append(line, Pt(cx, cy)))
	default:
		return s.emit("Arc", shape{line: line})
	}
	return s.emit("Arc", shape{line: line, fillable: true})
}

// Point draws a dot: a circle whose diameter is the stroke pen width.
// Nothing is drawn when stroking is disabled.
func (s *Sketch) Point(x, y float64) error {
	if err := checkFinite("Point", x, y); err != nil {
		return err
	}
	c := s.matrix.TransformPoint(Pt(x, y))
	if !c.IsFinite() {
		return argError("Point", "non-finite coordinate after transform")
	}
	return s.dot("Point", c)
}

// dot draws a pen-width circle centered on c, in page coordinates.
func (s *Sketch) dot(op string, c Point) error {
	if s.strokeLayer == 0 {
		return nil
	}
	r := s.StrokePenWidth() / 2
	return s.emitGlobal(op, shape{line: flatten.Ellipse(c, r, r, s.DetailValue())})
}

// Triangle draws a closed triangle.
func (s *Sketch) Triangle(x1, y1, x2, y2, x3, y3 float64) error {
	if err := checkFinite("Triangle", x1, y1, x2, y2, x3, y3); err != nil {
		return err
	}
	return s.emit("Triangle", shape{line: closeRing([]Point{Pt(x1, y1), Pt(x2, y2), Pt(x3, y3)}), fillable: true})
}

// Quad draws a closed quadrilateral.
func (s *Sketch) Quad(x1, y1, x2, y2, x3, y3, x4, y4 float64) error {
	if err := checkFinite("Quad", x1, y1, x2, y2, x3, y3, x4, y4); err != nil {
		return err
	}
	pts := []Point{Pt(x1, y1), Pt(x2, y2), Pt(x3, y3), Pt(x4, y4)}
	return s.emit("Quad", shape{line: closeRing(pts), fillable: true})
}

// Polyline draws an open polyline through points.
func (s *Sketch) Polyline(points []Point) error {
	if !allFinite(points) {
		return argError("Polyline", "non-finite coordinate")
	}
	return s.emit("Polyline", shape{line: Polyline(points)})
}

// Polygon draws a closed polygon with optional holes. Rings are closed
// automatically.
func (s *Sketch) Polygon(points []Point, holes ...[]Point) error {
	if !allFinite(points) {
		return argError("Polygon", "non-finite coordinate")
	}
	sh := shape{line: closeRing(points), fillable: true}
	for _, h := range holes {
		if !allFinite(h) {
			return argError("Polygon", "non-finite hole coordinate")
		}
		sh.holes = append(sh.holes, closeRing(h))
	}
	return s.emit("Polygon", sh)
}

// RegularPolygon draws a regular polygon with n sides inscribed in a
// circle of radius r, starting at angle rotation.
func (s *Sketch) RegularPolygon(n int, x, y, r, rotation float64) error {
	if err := checkFinite("RegularPolygon", x, y, r, rotation); err != nil {
		return err
	}
	if n < 3 {
		return argError("RegularPolygon", "need at least 3 sides, got %d", n)
	}
	if r < 0 {
		return argError("RegularPolygon", "negative radius %v", r)
	}
	angle := 2 * math.Pi / float64(n)
	pts := make([]Point, n)
	for i := range n {
		a := rotation + angle*float64(i)
		pts[i] = Pt(x+r*math.Cos(a), y+r*math.Sin(a))
	}
	return s.emit("RegularPolygon", shape{line: closeRing(pts), fillable: true})
}

// Bezier draws a cubic Bezier curve from (x1, y1) to (x4, y4) with control
// points (x2, y2) and (x3, y3).
func (s *Sketch) Bezier(x1, y1, x2, y2, x3, y3, x4, y4 float64) error {
	if err := checkFinite("Bezier", x1, y1, x2, y2, x3, y3, x4, y4); err != nil {
		return err
	}
	c := flatten.CubicBez{P0: Pt(x1, y1), P1: Pt(x2, y2), P2: Pt(x3, y3), P3: Pt(x4, y4)}
	if c.IsPoint() {
		s.drop("Bezier", "zero-length curve")
		return nil
	}
	return s.emit("Bezier", shape{line: flatten.Cubic(c, s.Epsilon())})
}

// QuadraticBezier draws a quadratic Bezier curve from (x1, y1) to (x2, y2)
// with control point (cx, cy).
func (s *Sketch) QuadraticBezier(x1, y1, cx, cy, x2, y2 float64) error {
	if err := checkFinite("QuadraticBezier", x1, y1, cx, cy, x2, y2); err != nil {
		return err
	}
	q := flatten.QuadBez{P0: Pt(x1, y1), P1: Pt(cx, cy), P2: Pt(x2, y2)}
	if q.Raise().IsPoint() {
		s.drop("QuadraticBezier", "zero-length curve")
		return nil
	}
	return s.emit("QuadraticBezier", shape{line: flatten.Quad(q, s.Epsilon())})
}
