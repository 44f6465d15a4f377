package sketch

// PolygonRings is a polygon with an exterior ring and optional holes.
type PolygonRings struct {
	Exterior Polyline
	Holes    []Polyline
}

// Geometry is planar geometry that can be drawn with Sketch.Geometry.
// Polylines are stroked only; polygons are stroked and filled, with hole
// rings stroked as separate paths tagged Hole and excluded from the fill.
type Geometry interface {
	Polylines() []Polyline
	Polygons() []PolygonRings
}

// PointSet is implemented by geometries that contain isolated points.
// Each point is drawn like Sketch.Point.
type PointSet interface {
	Points() []Point
}

// Flattener is implemented by geometries with curved segments. Sketch.Geometry
// prefers Flatten at the current tolerance over the Geometry methods.
type Flattener interface {
	Flatten(tolerance float64) Geometry
}

// LineString is a single open polyline.
type LineString []Point

// Polylines returns the line string itself.
func (g LineString) Polylines() []Polyline { return []Polyline{Polyline(g)} }

// Polygons returns nil.
func (g LineString) Polygons() []PolygonRings { return nil }

// MultiLineString is a set of open polylines.
type MultiLineString [][]Point

// Polylines returns every member line.
func (g MultiLineString) Polylines() []Polyline {
	out := make([]Polyline, len(g))
	for i, l := range g {
		out[i] = Polyline(l)
	}
	return out
}

// Polygons returns nil.
func (g MultiLineString) Polygons() []PolygonRings { return nil }

// PolygonShape is a polygon with holes. Rings need not repeat their first
// point.
type PolygonShape struct {
	Exterior []Point
	Holes    [][]Point
}

// Polylines returns nil; the rings are reported by Polygons.
func (g PolygonShape) Polylines() []Polyline { return nil }

// Polygons returns the polygon as a single entry.
func (g PolygonShape) Polygons() []PolygonRings {
	return []PolygonRings{g.rings()}
}

func (g PolygonShape) rings() PolygonRings {
	r := PolygonRings{Exterior: Polyline(g.Exterior)}
	for _, h := range g.Holes {
		r.Holes = append(r.Holes, Polyline(h))
	}
	return r
}

// MultiPolygon is a set of polygons.
type MultiPolygon []PolygonShape

// Polylines returns nil.
func (g MultiPolygon) Polylines() []Polyline { return nil }

// Polygons returns every member polygon.
func (g MultiPolygon) Polygons() []PolygonRings {
	out := make([]PolygonRings, len(g))
	for i, p := range g {
		out[i] = p.rings()
	}
	return out
}

// MultiPoint is a set of isolated points.
type MultiPoint []Point

// Polylines returns nil.
func (g MultiPoint) Polylines() []Polyline { return nil }

// Polygons returns nil.
func (g MultiPoint) Polygons() []PolygonRings { return nil }

// Points returns the points.
func (g MultiPoint) Points() []Point { return g }

// GeometryCollection groups heterogeneous geometries.
type GeometryCollection []Geometry

// Polylines returns the polylines of all members in order.
func (g GeometryCollection) Polylines() []Polyline {
	var out []Polyline
	for _, m := range g {
		out = append(out, m.Polylines()...)
	}
	return out
}

// Polygons returns the polygons of all members in order.
func (g GeometryCollection) Polygons() []PolygonRings {
	var out []PolygonRings
	for _, m := range g {
		out = append(out, m.Polygons()...)
	}
	return out
}

// Points returns the points of all members that implement PointSet.
func (g GeometryCollection) Points() []Point {
	var out []Point
	for _, m := range g {
		if ps, ok := m.(PointSet); ok {
			out = append(out, ps.Points()...)
		}
	}
	return out
}

// Geometry draws g. Points are drawn first, then polylines, then polygons.
// Every member is transformed and checked before anything is drawn, so an
// invalid member leaves the sketch unchanged.
func (s *Sketch) Geometry(g Geometry) error {
	if g == nil {
		return argError("Geometry", "nil geometry")
	}
	if f, ok := g.(Flattener); ok {
		g = f.Flatten(s.Epsilon())
	}
	return s.drawParts("Geometry", geometryParts(g), s.matrix)
}

// parts holds the members of a geometry in local coordinates.
type parts struct {
	points []Point
	shapes []shape
}

// geometryParts splits g into points and shapes, closing polygon rings.
func geometryParts(g Geometry) parts {
	var p parts
	if ps, ok := g.(PointSet); ok {
		p.points = ps.Points()
	}
	for _, l := range g.Polylines() {
		p.shapes = append(p.shapes, shape{line: l})
	}
	for _, r := range g.Polygons() {
		sh := shape{line: closeRing(r.Exterior), fillable: true}
		for _, h := range r.Holes {
			sh.holes = append(sh.holes, closeRing(h))
		}
		p.shapes = append(p.shapes, sh)
	}
	return p
}

// drawParts maps p through m, validates every member, and only then draws.
func (s *Sketch) drawParts(op string, p parts, m Matrix) error {
	centers := make([]Point, len(p.points))
	for i, pt := range p.points {
		c := m.TransformPoint(pt)
		if !pt.IsFinite() || !c.IsFinite() {
			return argError(op, "non-finite point")
		}
		centers[i] = c
	}
	global := make([]shape, len(p.shapes))
	for i, sh := range p.shapes {
		global[i] = sh.transformed(m)
		if err := global[i].validate(op); err != nil {
			return err
		}
	}
	for _, c := range centers {
		if err := s.dot(op, c); err != nil {
			return err
		}
	}
	for _, sh := range global {
		if err := s.emitGlobal(op, sh); err != nil {
			return err
		}
	}
	return nil
}
