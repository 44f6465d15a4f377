package sketch

// Sketch embeds the content of other into s, transformed by the current
// matrix. Layers are matched by id. A layer's pen width is taken from other
// only when the layer of s has no pen width of its own and holds no
// geometry yet, so the hatch spacing of fills already drawn never changes.
//
// The content is deep-copied: later changes to other do not affect s.
func (s *Sketch) Sketch(other *Sketch) error {
	if other == nil {
		return argError("Sketch", "nil sub-sketch")
	}
	if other == s {
		return argError("Sketch", "a sketch cannot embed itself")
	}

	m := s.matrix
	ids := other.Layers()
	strokes := make([][]StrokePath, len(ids))
	fills := make([][]FillShape, len(ids))
	for i, id := range ids {
		src := other.layers[id]
		for _, sp := range src.Strokes {
			t := sp.transformed(m)
			if !allFinite(t.Line) {
				return argError("Sketch", "non-finite coordinate after transform")
			}
			strokes[i] = append(strokes[i], t)
		}
		for _, f := range src.Fills {
			fills[i] = append(fills[i], f.transformed(m))
		}
	}

	for i, id := range ids {
		src := other.layers[id]
		dst := s.layer(id)
		if dst.penWidth == 0 && dst.IsEmpty() {
			switch {
			case src.penWidth > 0:
				dst.penWidth = src.penWidth
			case other.defaultPenWidth != s.defaultPenWidth:
				dst.penWidth = other.defaultPenWidth
			}
		}
		dst.Strokes = append(dst.Strokes, strokes[i]...)
		dst.Fills = append(dst.Fills, fills[i]...)
	}
	return nil
}
