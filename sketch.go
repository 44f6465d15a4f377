package sketch

import (
	"math"
	"math/rand/v2"

	"github.com/gogpu/sketch/internal/noise"
)

// detailFraction is the default tessellation tolerance as a fraction of
// the page diagonal.
const detailFraction = 1.0 / 5000

// Mode selects how the arguments of Rect and Ellipse are interpreted.
type Mode int

const (
	// ModeCorner: x, y is the top-left corner; the next pair is width and height.
	ModeCorner Mode = iota
	// ModeCorners: x1, y1 and x2, y2 are opposite corners.
	ModeCorners
	// ModeCenter: x, y is the center; the next pair is width and height.
	ModeCenter
	// ModeRadius: x, y is the center; the next pair is half width and half height.
	ModeRadius
)

// Sketch accumulates drawing calls into layers.
//
// A Sketch is not safe for concurrent use.
type Sketch struct {
	matrix Matrix
	stack  []Matrix

	layers      map[int]*Layer
	strokeLayer int // 0 when stroking is disabled
	fillLayer   int // 0 when filling is disabled
	weight      int
	join        JoinStyle

	detail      float64
	detailSet   bool
	rectMode    Mode
	ellipseMode Mode
	textMode    TextMode

	seed      uint64
	rng       *rand.Rand
	noiseSeed uint64
	noise     *noise.Field

	page            PageSize
	landscape       bool
	centered        bool
	defaultPenWidth float64

	pipeline    Pipeline
	font        *Font
	diagnostics []Diagnostic
}

// New creates a Sketch with layer 1 selected for stroking and no fill.
func New(opts ...Option) *Sketch {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	o.resolveSeeds()

	s := &Sketch{
		matrix:          Identity(),
		layers:          make(map[int]*Layer),
		strokeLayer:     1,
		weight:          1,
		join:            JoinRound,
		rectMode:        ModeCorner,
		ellipseMode:     ModeCenter,
		page:            o.page,
		landscape:       o.landscape,
		centered:        o.centered,
		defaultPenWidth: o.defaultPenWidth,
		pipeline:        o.pipeline,
		font:            o.font,
	}
	if s.defaultPenWidth <= 0 {
		s.defaultPenWidth = DefaultPenWidth
	}
	if o.detail > 0 {
		s.detail = o.detail
		s.detailSet = true
	}
	s.RandomSeed(o.seed)
	s.NoiseSeed(o.noiseSeed)
	return s
}

// Size sets the page size in pixels. The default detail follows the page
// diagonal until Detail is called.
func (s *Sketch) Size(width, height float64, landscape bool) error {
	if !(width > 0) || !(height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return argError("Size", "page dimensions must be positive and finite, got %vx%v", width, height)
	}
	s.page = PageSize{Width: width, Height: height}
	s.landscape = landscape
	return nil
}

// SizeNamed sets the page size from a name or "WxH" string, see ParsePageSize.
func (s *Sketch) SizeNamed(name string, landscape bool) error {
	p, err := ParsePageSize(name)
	if err != nil {
		return err
	}
	return s.Size(p.Width, p.Height, landscape)
}

// SetCentered controls whether the drawing is centered on the page when saved.
func (s *Sketch) SetCentered(centered bool) {
	s.centered = centered
}

// Page returns the effective page size, with orientation applied.
func (s *Sketch) Page() PageSize {
	if s.landscape {
		return s.page.Landscape()
	}
	return s.page
}

// Width returns the page width in pixels.
func (s *Sketch) Width() float64 {
	return s.Page().Width
}

// Height returns the page height in pixels.
func (s *Sketch) Height() float64 {
	return s.Page().Height
}

// Detail sets the maximum chord length, in page pixels, of tessellated curves.
func (s *Sketch) Detail(px float64) error {
	if !(px > 0) || math.IsInf(px, 0) {
		return argError("Detail", "detail must be positive and finite, got %v", px)
	}
	s.detail = px
	s.detailSet = true
	return nil
}

// DetailLength sets the detail from a length string such as "0.1mm".
func (s *Sketch) DetailLength(length string) error {
	px, err := ParseLength(length)
	if err != nil {
		return err
	}
	return s.Detail(px)
}

// DetailValue returns the chord tolerance in page pixels.
func (s *Sketch) DetailValue() float64 {
	if s.detailSet {
		return s.detail
	}
	return s.page.Diagonal() * detailFraction
}

// Epsilon returns the chord tolerance in the current local frame.
func (s *Sketch) Epsilon() float64 {
	d := s.DetailValue()
	scale := s.matrix.MaxScaleFactor()
	if scale < 1e-12 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return d
	}
	return d / scale
}

// RectMode sets how Rect, RoundedRect and Square interpret their arguments.
func (s *Sketch) RectMode(m Mode) {
	s.rectMode = m
}

// EllipseMode sets how Ellipse and Arc interpret their arguments.
func (s *Sketch) EllipseMode(m Mode) {
	s.ellipseMode = m
}

// Stroke selects the layer that subsequent shapes are outlined on.
// The layer is created if it does not exist.
func (s *Sketch) Stroke(id int) error {
	if id < 1 {
		return argError("Stroke", "layer id must be >= 1, got %d", id)
	}
	s.strokeLayer = id
	s.layer(id)
	return nil
}

// NoStroke disables outlining of subsequent shapes.
func (s *Sketch) NoStroke() {
	s.strokeLayer = 0
}

// Fill selects the layer that subsequent closed shapes are hatched on.
// The layer is created if it does not exist.
func (s *Sketch) Fill(id int) error {
	if id < 1 {
		return argError("Fill", "layer id must be >= 1, got %d", id)
	}
	s.fillLayer = id
	s.layer(id)
	return nil
}

// NoFill disables filling of subsequent shapes.
func (s *Sketch) NoFill() {
	s.fillLayer = 0
}

// StrokeLayer returns the current stroke layer, or 0 if stroking is disabled.
func (s *Sketch) StrokeLayer() int {
	return s.strokeLayer
}

// FillLayer returns the current fill layer, or 0 if filling is disabled.
func (s *Sketch) FillLayer() int {
	return s.fillLayer
}

// StrokeWeight sets how many parallel lines, spaced by the pen width, each
// subsequent stroke is drawn with.
func (s *Sketch) StrokeWeight(n int) error {
	if n < 1 {
		return argError("StrokeWeight", "weight must be >= 1, got %d", n)
	}
	s.weight = n
	if s.strokeLayer != 0 {
		s.layer(s.strokeLayer).weight = n
	}
	return nil
}

// StrokeJoin sets the join style of subsequent weighted strokes.
func (s *Sketch) StrokeJoin(j JoinStyle) error {
	if j < JoinRound || j > JoinBevel {
		return argError("StrokeJoin", "unknown join style %d", int(j))
	}
	s.join = j
	if s.strokeLayer != 0 {
		s.layer(s.strokeLayer).join = j
	}
	return nil
}

// PenWidth sets the pen width, in pixels, of a layer.
func (s *Sketch) PenWidth(width float64, layer int) error {
	if !(width > 0) || math.IsInf(width, 0) {
		return argError("PenWidth", "width must be positive and finite, got %v", width)
	}
	if layer < 1 {
		return argError("PenWidth", "layer id must be >= 1, got %d", layer)
	}
	s.layer(layer).penWidth = width
	return nil
}

// PenWidthLength sets a layer's pen width from a length string such as "0.3mm".
func (s *Sketch) PenWidthLength(width string, layer int) error {
	px, err := ParseLength(width)
	if err != nil {
		return err
	}
	return s.PenWidth(px, layer)
}

// SetDefaultPenWidth sets the pen width of layers without an explicit width.
func (s *Sketch) SetDefaultPenWidth(width float64) error {
	if !(width > 0) || math.IsInf(width, 0) {
		return argError("SetDefaultPenWidth", "width must be positive and finite, got %v", width)
	}
	s.defaultPenWidth = width
	return nil
}

// StrokePenWidth returns the pen width of the current stroke layer, or of
// the default pen when stroking is disabled.
func (s *Sketch) StrokePenWidth() float64 {
	return s.penWidth(s.strokeLayer)
}

// FillPenWidth returns the pen width of the current fill layer, or of the
// default pen when filling is disabled.
func (s *Sketch) FillPenWidth() float64 {
	return s.penWidth(s.fillLayer)
}

// Diagnostics returns the geometry dropped so far.
func (s *Sketch) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(s.diagnostics))
	copy(out, s.diagnostics)
	return out
}

// drop records dropped geometry.
func (s *Sketch) drop(op, reason string) {
	s.diagnostics = append(s.diagnostics, Diagnostic{Op: op, Reason: reason})
	Logger().Debug("sketch: geometry dropped", "op", op, "reason", reason)
}
