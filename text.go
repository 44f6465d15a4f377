package sketch

import (
	"github.com/gogpu/sketch/internal/typeset"
)

// DefaultTextSize is the em size, in pixels, used when no size is given.
const DefaultTextSize = 18.0

// TextMode selects how Text is affected by the current transform.
type TextMode int

const (
	// TextTransform lays out text in the local frame; the transform scales,
	// rotates and skews the glyphs.
	TextTransform TextMode = iota
	// TextLabel transforms only the anchor point. Glyphs keep their size
	// and stay upright on the page.
	TextLabel
)

// TextAlign is the horizontal alignment of text relative to its anchor.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// Font is a parsed TrueType or OpenType font.
type Font struct {
	f *typeset.Font
}

// LoadFont parses font data for use with WithFont or SetFont.
func LoadFont(data []byte) (*Font, error) {
	f, err := typeset.Parse(data)
	if err != nil {
		return nil, err
	}
	return &Font{f: f}, nil
}

// DefaultFont returns the bundled Go Regular font.
func DefaultFont() *Font {
	return &Font{f: typeset.Default()}
}

// Name returns the font family name.
func (f *Font) Name() string {
	return f.f.Name()
}

type textOptions struct {
	size        float64
	align       TextAlign
	width       float64
	lineSpacing float64
}

// TextOption configures a single Text call.
type TextOption func(*textOptions)

// WithTextSize sets the em size in local units.
func WithTextSize(size float64) TextOption {
	return func(o *textOptions) { o.size = size }
}

// WithTextAlign sets the horizontal alignment.
func WithTextAlign(a TextAlign) TextOption {
	return func(o *textOptions) { o.align = a }
}

// WithTextWidth wraps lines at spaces so that none is wider than width.
func WithTextWidth(width float64) TextOption {
	return func(o *textOptions) { o.width = width }
}

// WithTextLineSpacing sets the baseline distance in multiples of the size.
func WithTextLineSpacing(f float64) TextOption {
	return func(o *textOptions) { o.lineSpacing = f }
}

// SetFont sets the font used by Text. nil restores the default font.
func (s *Sketch) SetFont(f *Font) {
	s.font = f
}

// TextMode sets how subsequent Text calls use the transform.
func (s *Sketch) TextMode(m TextMode) {
	s.textMode = m
}

func (s *Sketch) fontOrDefault() *typeset.Font {
	if s.font != nil {
		return s.font.f
	}
	return typeset.Default()
}

// TextWidth returns the advance of a single line of text at the given size.
func (s *Sketch) TextWidth(str string, size float64) float64 {
	return s.fontOrDefault().Measure(str, size)
}

// Text draws str with its first baseline at (x, y). Glyph outlines form a
// single closed shape, hatched with the even-odd rule when a fill layer is
// selected. Runes missing from the font are skipped and logged.
func (s *Sketch) Text(str string, x, y float64, opts ...TextOption) error {
	const op = "Text"
	if err := checkFinite(op, x, y); err != nil {
		return err
	}
	o := textOptions{size: DefaultTextSize}
	for _, opt := range opts {
		opt(&o)
	}
	if err := checkFinite(op, o.size, o.width, o.lineSpacing); err != nil {
		return err
	}
	if o.size <= 0 {
		return argError(op, "text size must be positive, got %v", o.size)
	}
	if o.align < AlignLeft || o.align > AlignRight {
		return argError(op, "unknown alignment %d", int(o.align))
	}

	eps := s.Epsilon()
	var place Matrix
	if s.textMode == TextLabel {
		eps = s.DetailValue()
		p := s.matrix.TransformPoint(Pt(x, y))
		place = TranslateMatrix(p.X, p.Y)
	} else {
		place = s.matrix.Multiply(TranslateMatrix(x, y))
	}

	font := s.fontOrDefault()
	res, err := font.Layout(str, typeset.Options{
		Size:        o.size,
		Align:       typeset.Align(o.align),
		LineSpacing: o.lineSpacing,
		Width:       o.width,
	}, eps)
	if err != nil {
		return argError(op, "%v", err)
	}
	if len(res.Missing) > 0 {
		Logger().Warn("sketch: missing glyphs", "font", font.Name(), "runes", string(res.Missing))
	}

	var rings []Polyline
	for _, c := range res.Outlines {
		if c.DistinctCount(3) < 3 {
			continue
		}
		rings = append(rings, place.TransformPolyline(c))
	}
	if len(rings) == 0 {
		if str != "" {
			s.drop(op, "no glyph outlines")
		}
		return nil
	}
	return s.emitGlobal(op, shape{line: rings[0], holes: rings[1:], fillable: true})
}
