// Package hatch converts filled regions into parallel plotter strokes.
//
// A region is an exterior ring with optional hole rings. Horizontal
// scanlines spaced by the pen width are intersected with every ring edge
// and the crossings are paired using the even-odd rule, so holes (and
// nested islands inside holes) are respected without any orientation
// requirements on the rings.
//
// Consecutive scanlines alternate direction (boustrophedon order) to keep
// pen-up travel short.
package hatch

import (
	"cmp"
	"math"
	"slices"

	"github.com/gogpu/sketch/internal/geom"
)

// Shape is a closed region to fill.
type Shape struct {
	Exterior geom.Polyline
	Holes    []geom.Polyline
}

// edge is a non-horizontal ring segment with y0 < y1. reach is the
// horizontal distance from the edge at which a point is one unit away
// from it, 1/|sin| of the edge angle.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	reach  float64
}

func newEdge(p0, p1 geom.Point) edge {
	if p0.Y > p1.Y {
		p0, p1 = p1, p0
	}
	return edge{
		x0: p0.X, y0: p0.Y, x1: p1.X, y1: p1.Y,
		reach: math.Hypot(p1.X-p0.X, p1.Y-p0.Y) / (p1.Y - p0.Y),
	}
}

// crossing is where a scanline meets an edge.
type crossing struct {
	x, reach float64
}

func (e edge) xAtY(y float64) float64 {
	t := (y - e.y0) / (e.y1 - e.y0)
	return e.x0 + (e.x1-e.x0)*t
}

// Hatcher produces fill strokes. It keeps scratch buffers between calls
// and must not be shared between goroutines.
type Hatcher struct {
	edges []edge
	xs    []crossing
}

// Lines returns the hatch segments covering shape. Rows are spaced by
// spacing and centered vertically in the shape bounds. Each span is
// shortened at both ends so that its end points lie at least inset away
// from the edge they were cut from; spans that vanish are skipped.
func (h *Hatcher) Lines(shape Shape, spacing, inset float64) []geom.Polyline {
	if spacing <= 0 || math.IsNaN(spacing) {
		return nil
	}
	h.edges = h.edges[:0]
	h.addRing(shape.Exterior)
	for _, hole := range shape.Holes {
		h.addRing(hole)
	}
	if len(h.edges) == 0 {
		return nil
	}

	yMin, yMax := math.MaxFloat64, -math.MaxFloat64
	for _, e := range h.edges {
		yMin = math.Min(yMin, e.y0)
		yMax = math.Max(yMax, e.y1)
	}
	height := yMax - yMin
	rows := max(1, int(math.Floor(height/spacing)))
	offset := (height - float64(rows-1)*spacing) / 2

	var out []geom.Polyline
	for k := range rows {
		y := yMin + offset + float64(k)*spacing
		spans := h.scanline(y, inset)
		if k%2 == 1 {
			for i := len(spans) - 2; i >= 0; i -= 2 {
				out = append(out, geom.Polyline{{X: spans[i+1], Y: y}, {X: spans[i], Y: y}})
			}
			continue
		}
		for i := 0; i+1 < len(spans); i += 2 {
			out = append(out, geom.Polyline{{X: spans[i], Y: y}, {X: spans[i+1], Y: y}})
		}
	}
	return out
}

// Lines is a convenience wrapper using a throwaway Hatcher.
func Lines(shape Shape, spacing, inset float64) []geom.Polyline {
	var h Hatcher
	return h.Lines(shape, spacing, inset)
}

func (h *Hatcher) addRing(ring geom.Polyline) {
	if len(ring) < 3 {
		return
	}
	n := len(ring)
	if ring[0] == ring[n-1] {
		n--
	}
	for i := range n {
		p0 := ring[i]
		p1 := ring[(i+1)%n]
		if p0.Y == p1.Y {
			continue
		}
		h.edges = append(h.edges, newEdge(p0, p1))
	}
}

// scanline returns the inset span end points at y as x0,x1 pairs sorted
// from left to right.
func (h *Hatcher) scanline(y, inset float64) []float64 {
	h.xs = h.xs[:0]
	for _, e := range h.edges {
		if e.y0 <= y && y < e.y1 {
			h.xs = append(h.xs, crossing{x: e.xAtY(y), reach: e.reach})
		}
	}
	slices.SortFunc(h.xs, func(a, b crossing) int { return cmp.Compare(a.x, b.x) })

	spans := make([]float64, 0, len(h.xs))
	for i := 0; i+1 < len(h.xs); i += 2 {
		x0 := h.xs[i].x + inset*h.xs[i].reach
		x1 := h.xs[i+1].x - inset*h.xs[i+1].reach
		if x1 <= x0 {
			continue
		}
		spans = append(spans, x0, x1)
	}
	return spans
}
