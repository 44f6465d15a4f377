package sketch

import (
	"context"
	"errors"
	"math"

	"seehuhn.de/go/geom/rect"

	"github.com/gogpu/sketch/internal/hatch"
	"github.com/gogpu/sketch/internal/stroke"
)

// Pipeline transforms a finished document, for example by merging,
// reordering or simplifying lines. spec is a whitespace separated command
// sequence whose meaning is defined by the implementation.
type Pipeline interface {
	Run(ctx context.Context, spec string, doc *Document) (*Document, error)
}

// Document is a plottable snapshot of a sketch: every layer reduced to
// plain polylines in page pixels, with stroke weights expanded and fills
// hatched.
type Document struct {
	Page   PageSize
	Layers []DocumentLayer
}

// DocumentLayer is the geometry of one pen.
type DocumentLayer struct {
	ID       int
	PenWidth float64
	Lines    []Polyline
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	c := &Document{Page: d.Page, Layers: make([]DocumentLayer, len(d.Layers))}
	for i, l := range d.Layers {
		lines := make([]Polyline, len(l.Lines))
		for j, line := range l.Lines {
			lines[j] = line.Clone()
		}
		c.Layers[i] = DocumentLayer{ID: l.ID, PenWidth: l.PenWidth, Lines: lines}
	}
	return c
}

// Layer returns the layer with the given id, or nil.
func (d *Document) Layer(id int) *DocumentLayer {
	for i := range d.Layers {
		if d.Layers[i].ID == id {
			return &d.Layers[i]
		}
	}
	return nil
}

// LineCount returns the number of polylines across all layers.
func (d *Document) LineCount() int {
	n := 0
	for _, l := range d.Layers {
		n += len(l.Lines)
	}
	return n
}

// Bounds returns the bounding box of all points. ok is false for an empty
// document.
func (d *Document) Bounds() (b rect.Rect, ok bool) {
	b = rect.Rect{LLx: math.Inf(1), LLy: math.Inf(1), URx: math.Inf(-1), URy: math.Inf(-1)}
	for _, l := range d.Layers {
		for _, line := range l.Lines {
			for _, p := range line {
				b.LLx = math.Min(b.LLx, p.X)
				b.LLy = math.Min(b.LLy, p.Y)
				b.URx = math.Max(b.URx, p.X)
				b.URy = math.Max(b.URy, p.Y)
				ok = true
			}
		}
	}
	if !ok {
		return rect.Rect{}, false
	}
	return b, true
}

// Translate moves every point by (dx, dy) in place.
func (d *Document) Translate(dx, dy float64) {
	for _, l := range d.Layers {
		for _, line := range l.Lines {
			for i := range line {
				line[i].X += dx
				line[i].Y += dy
			}
		}
	}
}

// Document builds a snapshot of the sketch for display, pipelines and
// serialization. The sketch is not modified.
func (s *Sketch) Document() *Document {
	doc := &Document{Page: s.Page()}
	detail := s.DetailValue()
	var h hatch.Hatcher
	for _, id := range s.Layers() {
		l := s.layers[id]
		pw := s.penWidth(id)
		dl := DocumentLayer{ID: id, PenWidth: pw}
		for _, sp := range l.Strokes {
			dl.Lines = append(dl.Lines, stroke.Expand(sp.Line, stroke.Style{
				Weight:  sp.Weight,
				Spacing: pw,
				Join:    stroke.Join(sp.Join),
				Detail:  detail,
			})...)
		}
		for _, f := range l.Fills {
			inset := pw / 2
			if f.StrokeWidth > 0 {
				inset += f.StrokeWidth / 2
			} else {
				dl.Lines = append(dl.Lines, f.Exterior.Clone())
				for _, hole := range f.Holes {
					dl.Lines = append(dl.Lines, hole.Clone())
				}
			}
			dl.Lines = append(dl.Lines, h.Lines(hatch.Shape{Exterior: f.Exterior, Holes: f.Holes}, pw, inset)...)
		}
		doc.Layers = append(doc.Layers, dl)
	}
	return doc
}

// Vpype runs the configured pipeline on the document and replaces the
// content of every layer with the pipeline output. Fills are cleared, as
// their hatching is part of the output; output lines are stored as
// weight-1 strokes. On error the sketch is left unchanged.
func (s *Sketch) Vpype(ctx context.Context, spec string) error {
	if s.pipeline == nil {
		return ErrNoPipeline
	}
	doc := s.Document()
	Logger().Info("sketch: running pipeline", "spec", spec, "layers", len(doc.Layers), "lines", doc.LineCount())

	out, err := s.pipeline.Run(ctx, spec, doc)
	if err != nil {
		return &PipelineError{Spec: spec, Err: err}
	}
	if out == nil {
		return &PipelineError{Spec: spec, Err: errors.New("pipeline returned no document")}
	}

	layers := make(map[int]*Layer, len(s.layers))
	for id, l := range s.layers {
		nl := newLayer(id)
		nl.penWidth, nl.weight, nl.join = l.penWidth, l.weight, l.join
		layers[id] = nl
	}
	for _, dl := range out.Layers {
		if dl.ID < 1 {
			return &PipelineError{Spec: spec, Err: errors.New("output layer id must be >= 1")}
		}
		l, ok := layers[dl.ID]
		if !ok {
			l = newLayer(dl.ID)
			if dl.PenWidth > 0 && dl.PenWidth != s.defaultPenWidth {
				l.penWidth = dl.PenWidth
			}
			layers[dl.ID] = l
		}
		for _, line := range dl.Lines {
			if !allFinite(line) {
				return &PipelineError{Spec: spec, Err: errors.New("output contains non-finite coordinates")}
			}
			if len(line) < 2 {
				continue
			}
			l.Strokes = append(l.Strokes, StrokePath{Line: line.Clone(), Weight: 1, Join: JoinRound})
		}
	}
	s.layers = layers
	Logger().Info("sketch: pipeline done", "spec", spec, "lines", out.LineCount())
	return nil
}
