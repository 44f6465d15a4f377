package sketch

import (
	"maps"
	"slices"

	"github.com/gogpu/sketch/internal/stroke"
)

// DefaultPenWidth is the pen width, in pixels, of layers without an
// explicit width.
const DefaultPenWidth = 1.0

// JoinStyle is the shape of stroke-weight offsets at direction changes.
type JoinStyle int

const (
	// JoinRound connects offset lines with arcs.
	JoinRound JoinStyle = iota
	// JoinMiter extends offset lines to a corner, falling back to a bevel
	// when the corner would be longer than MiterLimit times the offset.
	JoinMiter
	// JoinBevel connects offset lines with a straight segment.
	JoinBevel
)

// MiterLimit is the maximum ratio of miter length to offset distance.
const MiterLimit = stroke.MiterLimit

// String returns the join name.
func (j JoinStyle) String() string {
	return stroke.Join(j).String()
}

// StrokePath is one logical stroke. Weight and Join are captured when the
// stroke is drawn. Hole marks interior rings of polygons.
type StrokePath struct {
	Line   Polyline
	Weight int
	Join   JoinStyle
	Hole   bool
}

// FillShape is a closed region to hatch. StrokeWidth is the width of the
// outline drawn around it, or 0 when the shape is not stroked.
type FillShape struct {
	Exterior    Polyline
	Holes       []Polyline
	StrokeWidth float64
}

// Layer holds the geometry drawn with one pen. Layers are append-only
// while drawing.
type Layer struct {
	ID      int
	Strokes []StrokePath
	Fills   []FillShape

	penWidth float64 // 0 when unset
	weight   int
	join     JoinStyle
}

func newLayer(id int) *Layer {
	return &Layer{ID: id, weight: 1, join: JoinRound}
}

// PenWidth returns the layer's explicit pen width and whether it is set.
func (l *Layer) PenWidth() (float64, bool) {
	return l.penWidth, l.penWidth > 0
}

// StrokeWeight returns the stroke weight last set while this layer was the
// stroke layer.
func (l *Layer) StrokeWeight() int {
	return l.weight
}

// StrokeJoin returns the join style last set while this layer was the
// stroke layer.
func (l *Layer) StrokeJoin() JoinStyle {
	return l.join
}

// IsEmpty reports whether the layer holds no geometry.
func (l *Layer) IsEmpty() bool {
	return len(l.Strokes) == 0 && len(l.Fills) == 0
}

// Clone returns a deep copy of the layer.
func (l *Layer) Clone() *Layer {
	c := *l
	c.Strokes = make([]StrokePath, len(l.Strokes))
	for i, sp := range l.Strokes {
		sp.Line = sp.Line.Clone()
		c.Strokes[i] = sp
	}
	c.Fills = make([]FillShape, len(l.Fills))
	for i, f := range l.Fills {
		c.Fills[i] = f.transformed(Identity())
	}
	return &c
}

// transformed returns a deep copy of the stroke path with m applied.
func (sp StrokePath) transformed(m Matrix) StrokePath {
	sp.Line = m.TransformPolyline(sp.Line)
	return sp
}

// transformed returns a deep copy of the fill with m applied. The stroke
// width is scaled by the largest stretch of m.
func (f FillShape) transformed(m Matrix) FillShape {
	out := FillShape{
		Exterior:    m.TransformPolyline(f.Exterior),
		StrokeWidth: f.StrokeWidth,
	}
	if !m.IsIdentity() {
		out.StrokeWidth *= m.MaxScaleFactor()
	}
	if len(f.Holes) > 0 {
		out.Holes = make([]Polyline, len(f.Holes))
		for i, h := range f.Holes {
			out.Holes[i] = m.TransformPolyline(h)
		}
	}
	return out
}

// layer returns the layer with the given id, creating it if needed.
func (s *Sketch) layer(id int) *Layer {
	l, ok := s.layers[id]
	if !ok {
		l = newLayer(id)
		s.layers[id] = l
	}
	return l
}

// Layers returns the ids of all layers in ascending order.
func (s *Sketch) Layers() []int {
	return slices.Sorted(maps.Keys(s.layers))
}

// Layer returns a deep copy of the layer with the given id.
func (s *Sketch) Layer(id int) (*Layer, bool) {
	l, ok := s.layers[id]
	if !ok {
		return nil, false
	}
	return l.Clone(), true
}

// penWidth returns the effective pen width of layer id.
func (s *Sketch) penWidth(id int) float64 {
	if l, ok := s.layers[id]; ok && l.penWidth > 0 {
		return l.penWidth
	}
	return s.defaultPenWidth
}
