package sketch

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/tdewolff/canvas"

	"github.com/gogpu/sketch/internal/flatten"
)

// BooleanOp selects how a primitive is combined with the area of a Shape.
type BooleanOp int

const (
	// Union adds the primitive to the area.
	Union BooleanOp = iota
	// Difference cuts the primitive out of the area.
	Difference
	// Intersection keeps only the part of the area covered by the primitive.
	Intersection
	// SymmetricDifference keeps the parts covered by exactly one of the two.
	SymmetricDifference
)

// String returns the operation name.
func (op BooleanOp) String() string {
	switch op {
	case Union:
		return "union"
	case Difference:
		return "difference"
	case Intersection:
		return "intersection"
	case SymmetricDifference:
		return "symmetric difference"
	default:
		return fmt.Sprintf("BooleanOp(%d)", int(op))
	}
}

// Shape is a reusable drawing made of an area, open lines and isolated
// points. Closed primitives are merged into the area with a boolean
// operation; open ones are kept as lines. Nothing is transformed or
// hatched until the shape is drawn with Sketch.Shape, so a shape can be
// reworked and drawn any number of times.
//
// Primitives follow the rect and ellipse modes of the sketch that created
// the shape and are tessellated at its tolerance at the time of the call.
type Shape struct {
	sk     *Sketch
	area   canvas.Paths
	lines  []Polyline
	points []Point
}

// CreateShape returns an empty Shape bound to the modes and tolerance of s.
func (s *Sketch) CreateShape() *Shape {
	return &Shape{sk: s}
}

// IsEmpty reports whether the shape has no area, lines or points.
func (sh *Shape) IsEmpty() bool {
	return sh.area.Empty() && len(sh.lines) == 0 && len(sh.points) == 0
}

// Point adds an isolated point.
func (sh *Shape) Point(x, y float64) error {
	if err := checkFinite("Shape.Point", x, y); err != nil {
		return err
	}
	sh.points = append(sh.points, Pt(x, y))
	return nil
}

// Line adds an open line segment.
func (sh *Shape) Line(x1, y1, x2, y2 float64) error {
	if err := checkFinite("Shape.Line", x1, y1, x2, y2); err != nil {
		return err
	}
	sh.lines = append(sh.lines, Polyline{Pt(x1, y1), Pt(x2, y2)})
	return nil
}

// Polyline adds an open polyline.
func (sh *Shape) Polyline(points []Point) error {
	if !allFinite(points) {
		return argError("Shape.Polyline", "non-finite coordinate")
	}
	sh.lines = append(sh.lines, Polyline(points).Clone())
	return nil
}

// Bezier adds a cubic Bezier curve as an open line.
func (sh *Shape) Bezier(x1, y1, x2, y2, x3, y3, x4, y4 float64) error {
	if err := checkFinite("Shape.Bezier", x1, y1, x2, y2, x3, y3, x4, y4); err != nil {
		return err
	}
	c := flatten.CubicBez{P0: Pt(x1, y1), P1: Pt(x2, y2), P2: Pt(x3, y3), P3: Pt(x4, y4)}
	if c.IsPoint() {
		sh.sk.drop("Shape.Bezier", "zero-length curve")
		return nil
	}
	sh.lines = append(sh.lines, flatten.Cubic(c, sh.sk.Epsilon()))
	return nil
}

// Rect combines a rectangle with the area. The arguments follow the rect
// mode of the sketch.
func (sh *Shape) Rect(a, b, c, d float64, op BooleanOp) error {
	if err := checkFinite("Shape.Rect", a, b, c, d); err != nil {
		return err
	}
	x, y, w, h := rectBox(sh.sk.rectMode, a, b, c, d)
	return sh.combine("Shape.Rect", op, flatten.Rect(x, y, w, h, flatten.Corners{}, sh.sk.Epsilon()), nil)
}

// Square combines a square with the area. In ModeRadius, extent is half
// the side.
func (sh *Shape) Square(x, y, extent float64, op BooleanOp) error {
	if sh.sk.rectMode == ModeCorners {
		if err := checkFinite("Shape.Square", x, y, extent); err != nil {
			return err
		}
		x, y, w, h := rectBox(ModeCorner, x, y, extent, extent)
		return sh.combine("Shape.Square", op, flatten.Rect(x, y, w, h, flatten.Corners{}, sh.sk.Epsilon()), nil)
	}
	return sh.Rect(x, y, extent, extent, op)
}

// Circle combines a circle of the given radius centered on (x, y) with the
// area.
func (sh *Shape) Circle(x, y, radius float64, op BooleanOp) error {
	if err := checkFinite("Shape.Circle", x, y, radius); err != nil {
		return err
	}
	if radius < 0 {
		return argError("Shape.Circle", "negative radius %v", radius)
	}
	if radius == 0 {
		sh.sk.drop("Shape.Circle", "zero radius")
		return nil
	}
	return sh.combine("Shape.Circle", op, flatten.Ellipse(Pt(x, y), radius, radius, sh.sk.Epsilon()), nil)
}

// Ellipse combines an ellipse with the area. The arguments follow the
// ellipse mode of the sketch.
func (sh *Shape) Ellipse(a, b, c, d float64, op BooleanOp) error {
	if err := checkFinite("Shape.Ellipse", a, b, c, d); err != nil {
		return err
	}
	cx, cy, rx, ry, err := ellipseBox("Shape.Ellipse", sh.sk.ellipseMode, a, b, c, d)
	if err != nil {
		return err
	}
	if rx == 0 || ry == 0 {
		sh.sk.drop("Shape.Ellipse", "zero radius")
		return nil
	}
	return sh.combine("Shape.Ellipse", op, flatten.Ellipse(Pt(cx, cy), rx, ry, sh.sk.Epsilon()), nil)
}

// Arc adds an arc. An ArcOpen arc is an open line and only accepts Union;
// chord and pie arcs are combined with the area.
func (sh *Shape) Arc(a, b, c, d, start, stop float64, mode ArcMode, op BooleanOp) error {
	if err := checkFinite("Shape.Arc", a, b, c, d, start, stop); err != nil {
		return err
	}
	cx, cy, rx, ry, err := ellipseBox("Shape.Arc", sh.sk.ellipseMode, a, b, c, d)
	if err != nil {
		return err
	}
	if mode == ArcOpen && op != Union {
		return argError("Shape.Arc", "open arcs only support union, got %v", op)
	}
	if rx == 0 || ry == 0 {
		sh.sk.drop("Shape.Arc", "zero radius")
		return nil
	}
	line := flatten.Arc(Pt(cx, cy), rx, ry, start, stop, sh.sk.Epsilon())
	switch mode {
	case ArcChord:
		return sh.combine("Shape.Arc", op, closeRing(line), nil)
	case ArcPie:
		return sh.combine("Shape.Arc", op, closeRing(append(line, Pt(cx, cy))), nil)
	default:
		sh.lines = append(sh.lines, line)
		return nil
	}
}

// Triangle combines a triangle with the area.
func (sh *Shape) Triangle(x1, y1, x2, y2, x3, y3 float64, op BooleanOp) error {
	if err := checkFinite("Shape.Triangle", x1, y1, x2, y2, x3, y3); err != nil {
		return err
	}
	return sh.combine("Shape.Triangle", op, closeRing([]Point{Pt(x1, y1), Pt(x2, y2), Pt(x3, y3)}), nil)
}

// Quad combines a quadrilateral with the area.
func (sh *Shape) Quad(x1, y1, x2, y2, x3, y3, x4, y4 float64, op BooleanOp) error {
	if err := checkFinite("Shape.Quad", x1, y1, x2, y2, x3, y3, x4, y4); err != nil {
		return err
	}
	pts := []Point{Pt(x1, y1), Pt(x2, y2), Pt(x3, y3), Pt(x4, y4)}
	return sh.combine("Shape.Quad", op, closeRing(pts), nil)
}

// Polygon combines a polygon with optional holes with the area. Rings are
// closed automatically.
func (sh *Shape) Polygon(points []Point, holes [][]Point, op BooleanOp) error {
	if !allFinite(points) {
		return argError("Shape.Polygon", "non-finite coordinate")
	}
	rings := make([]Polyline, 0, len(holes))
	for _, h := range holes {
		if !allFinite(h) {
			return argError("Shape.Polygon", "non-finite hole coordinate")
		}
		rings = append(rings, closeRing(h))
	}
	return sh.combine("Shape.Polygon", op, closeRing(points), rings)
}

// Geometry adds g. Its polygons are combined with the area using op, its
// polylines become lines and its points become points. Polylines only
// accept Union.
func (sh *Shape) Geometry(g Geometry, op BooleanOp) error {
	if g == nil {
		return argError("Shape.Geometry", "nil geometry")
	}
	if f, ok := g.(Flattener); ok {
		g = f.Flatten(sh.sk.Epsilon())
	}
	p := geometryParts(g)
	for _, pt := range p.points {
		if !pt.IsFinite() {
			return argError("Shape.Geometry", "non-finite point")
		}
	}
	for _, part := range p.shapes {
		if err := part.validate("Shape.Geometry"); err != nil {
			return err
		}
		if !part.fillable && op != Union {
			return argError("Shape.Geometry", "open lines only support union, got %v", op)
		}
	}
	if err := checkOp("Shape.Geometry", op); err != nil {
		return err
	}
	sh.points = append(sh.points, p.points...)
	for _, part := range p.shapes {
		if !part.fillable {
			sh.lines = append(sh.lines, part.line.Clone())
			continue
		}
		if err := sh.combine("Shape.Geometry", op, part.line, part.holes); err != nil {
			return err
		}
	}
	return nil
}

// Shape combines the area of other with the area of sh and adds the lines
// and points of other.
func (sh *Shape) Shape(other *Shape, op BooleanOp) error {
	if other == nil {
		return argError("Shape.Shape", "nil shape")
	}
	if err := checkOp("Shape.Shape", op); err != nil {
		return err
	}
	sh.apply(op, copyPaths(other.area))
	for _, l := range other.lines {
		sh.lines = append(sh.lines, l.Clone())
	}
	sh.points = append(sh.points, other.points...)
	return nil
}

func checkOp(op string, bop BooleanOp) error {
	if bop < Union || bop > SymmetricDifference {
		return argError(op, "unknown boolean operation %d", int(bop))
	}
	return nil
}

// combine merges the polygon exterior/holes into the area.
func (sh *Shape) combine(op string, bop BooleanOp, exterior Polyline, holes []Polyline) error {
	if err := checkOp(op, bop); err != nil {
		return err
	}
	if exterior.DistinctCount(3) < 3 {
		sh.sk.drop(op, "fewer than 3 distinct points")
		return nil
	}
	p := ringPath(exterior)
	for _, h := range holes {
		if h.DistinctCount(3) < 3 {
			sh.sk.drop(op, "hole with fewer than 3 distinct points")
			continue
		}
		p = p.Append(ringPath(h))
	}
	sh.apply(bop, canvas.Paths(p.Split()).Settle(canvas.EvenOdd))
	return nil
}

// apply combines a settled area q with the current area. Settled areas
// group a filling ring with its holes in one path; the boolean operations
// take one ring per path, hence the splits.
func (sh *Shape) apply(bop BooleanOp, q canvas.Paths) {
	a, b := subpaths(sh.area), subpaths(q)
	switch {
	case sh.area.Empty():
		if bop == Union || bop == SymmetricDifference {
			sh.area = q
		}
	case q.Empty():
		if bop == Intersection {
			sh.area = nil
		}
	case bop == Union:
		sh.area = a.Or(b)
	case bop == Difference:
		sh.area = a.Not(b)
	case bop == Intersection:
		sh.area = a.And(b)
	case bop == SymmetricDifference:
		sh.area = a.Xor(b)
	}
}

// subpaths splits every path of ps into its subpaths.
func subpaths(ps canvas.Paths) canvas.Paths {
	var out canvas.Paths
	for _, p := range ps {
		out = append(out, p.Split()...)
	}
	return out
}

func copyPaths(ps canvas.Paths) canvas.Paths {
	out := make(canvas.Paths, len(ps))
	for i, p := range ps {
		out[i] = p.Copy()
	}
	return out
}

// ringPath converts a closed ring to a closed canvas path.
func ringPath(ring Polyline) *canvas.Path {
	pl := &canvas.Polyline{}
	for _, p := range ring {
		pl.Add(p.X, p.Y)
	}
	return pl.ToPath()
}

// Polygons returns the area as polygons with holes.
func (sh *Shape) Polygons() []PolygonRings {
	var out []PolygonRings
	for _, p := range sh.area {
		var r PolygonRings
		for i, sub := range p.Split() {
			ring := pathRing(sub)
			if ring.DistinctCount(3) < 3 {
				continue
			}
			if i == 0 {
				r.Exterior = ring
			} else {
				r.Holes = append(r.Holes, ring)
			}
		}
		if r.Exterior != nil {
			out = append(out, r)
		}
	}
	return out
}

// Polylines returns the open lines of the shape.
func (sh *Shape) Polylines() []Polyline {
	return sh.lines
}

// Points returns the isolated points of the shape.
func (sh *Shape) Points() []Point {
	return sh.points
}

// pathRing reads the vertices of a flat, closed canvas subpath.
func pathRing(p *canvas.Path) Polyline {
	coords := canvas.PolylineFromPathCoords(p).Coords()
	ring := make(Polyline, len(coords))
	for i, c := range coords {
		ring[i] = Pt(c.X, c.Y)
	}
	return closeRing(ring)
}

// compile returns the shape's content, with lines and points covered by the
// area removed when requested.
func (sh *Shape) compile(maskLines, maskPoints bool) parts {
	polys := sh.Polygons()
	var rings []*canvas.Polyline
	if maskLines || maskPoints {
		for _, p := range polys {
			rings = append(rings, ringPolyline(p.Exterior))
			for _, h := range p.Holes {
				rings = append(rings, ringPolyline(h))
			}
		}
	}

	var out parts
	for _, pt := range sh.points {
		if maskPoints && covered(rings, pt) {
			continue
		}
		out.points = append(out.points, pt)
	}
	for _, p := range polys {
		out.shapes = append(out.shapes, shape{line: p.Exterior, holes: p.Holes, fillable: true})
	}
	for _, l := range sh.lines {
		pieces := []Polyline{l}
		if maskLines && len(rings) > 0 {
			pieces = maskLine(l, polys, rings)
		}
		for _, piece := range pieces {
			out.shapes = append(out.shapes, shape{line: piece})
		}
	}
	return out
}

func ringPolyline(ring Polyline) *canvas.Polyline {
	pl := &canvas.Polyline{}
	for _, p := range ring {
		pl.Add(p.X, p.Y)
	}
	return pl
}

// covered reports whether pt lies inside the area bounded by rings, using
// the even-odd rule.
func covered(rings []*canvas.Polyline, pt Point) bool {
	inside := false
	for _, r := range rings {
		if r.FillCount(pt.X, pt.Y) != 0 {
			inside = !inside
		}
	}
	return inside
}

// maskLine returns the parts of l outside the area. l is cut wherever it
// crosses a ring edge and every piece is kept or dropped whole.
func maskLine(l Polyline, polys []PolygonRings, rings []*canvas.Polyline) []Polyline {
	var edges [][2]Point
	addEdges := func(ring Polyline) {
		for i := 1; i < len(ring); i++ {
			edges = append(edges, [2]Point{ring[i-1], ring[i]})
		}
	}
	for _, p := range polys {
		addEdges(p.Exterior)
		for _, h := range p.Holes {
			addEdges(h)
		}
	}

	var out []Polyline
	var cur Polyline
	flush := func() {
		if len(cur) > 1 {
			out = append(out, cur)
		}
		cur = nil
	}
	for i := 1; i < len(l); i++ {
		a, b := l[i-1], l[i]
		ts := []float64{0, 1}
		for _, e := range edges {
			if t, ok := crossing(a, b, e[0], e[1]); ok {
				ts = append(ts, t)
			}
		}
		slices.SortFunc(ts, cmp.Compare[float64])
		ts = slices.Compact(ts)
		for j := 1; j < len(ts); j++ {
			p0, p1 := a.Lerp(b, ts[j-1]), a.Lerp(b, ts[j])
			if covered(rings, p0.Lerp(p1, 0.5)) {
				flush()
				continue
			}
			if len(cur) == 0 {
				cur = append(cur, p0)
			}
			cur = append(cur, p1)
		}
	}
	flush()
	return out
}

// crossing returns the parameter along ab at which it crosses the segment
// cd, excluding the end points of ab.
func crossing(a, b, c, d Point) (float64, bool) {
	ab, cd, ac := b.Sub(a), d.Sub(c), c.Sub(a)
	den := ab.Cross(cd)
	if math.Abs(den) < 1e-12 {
		return 0, false
	}
	t := ac.Cross(cd) / den
	u := ac.Cross(ab) / den
	if t <= 0 || t >= 1 || u < 0 || u > 1 {
		return 0, false
	}
	return t, true
}

// Shape draws sh in the current frame. The area is stroked and filled like
// a polygon, lines are stroked and points are drawn like Sketch.Point.
// With maskLines or maskPoints, the lines or points covered by the area
// are left out, which keeps them clear of the hatching. Masking when a fill
// layer is active matches the usual intent:
//
//	s.Shape(sh, s.FillLayer() != 0, s.FillLayer() != 0)
func (s *Sketch) Shape(sh *Shape, maskLines, maskPoints bool) error {
	if sh == nil {
		return argError("Shape", "nil shape")
	}
	return s.drawParts("Shape", sh.compile(maskLines, maskPoints), s.matrix)
}
