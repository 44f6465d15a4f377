// Package typeset turns strings into glyph outline polylines.
//
// Shaping (kerning, ligatures, script detection) is done with
// go-text/typesetting's HarfBuzz port; glyph outlines are read with
// golang.org/x/image/font/sfnt and flattened at the caller's tolerance.
// Output coordinates are y-down with the first baseline at y = 0.
package typeset

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/sketch/internal/flatten"
	"github.com/gogpu/sketch/internal/geom"
)

// ErrEmptyFont is returned by Parse for empty font data.
var ErrEmptyFont = errors.New("typeset: empty font data")

// DefaultLineSpacing is the baseline distance in multiples of the font size.
const DefaultLineSpacing = 1.2

// Align is the horizontal alignment of each line relative to the origin.
type Align int

const (
	// AlignLeft starts lines at the origin.
	AlignLeft Align = iota
	// AlignCenter centers lines on the origin.
	AlignCenter
	// AlignRight ends lines at the origin.
	AlignRight
)

// Font is a parsed font usable for both shaping and outline extraction.
// It is safe for concurrent use.
type Font struct {
	name   string
	shaper *gotext.Font
	glyphs *sfnt.Font
}

// Parse parses TrueType or OpenType font data.
func Parse(data []byte) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFont
	}
	face, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("typeset: parse font: %w", err)
	}
	glyphs, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("typeset: parse outlines: %w", err)
	}
	name, err := glyphs.Name(nil, sfnt.NameIDFamily)
	if err != nil || name == "" {
		name = "unknown"
	}
	return &Font{name: name, shaper: face.Font, glyphs: glyphs}, nil
}

var defaultFont = sync.OnceValues(func() (*Font, error) {
	return Parse(goregular.TTF)
})

// Default returns the bundled Go Regular font.
func Default() *Font {
	f, err := defaultFont()
	if err != nil {
		// goregular.TTF is embedded and known to parse.
		panic(err)
	}
	return f
}

// Name returns the font family name.
func (f *Font) Name() string {
	return f.name
}

// Options controls layout.
type Options struct {
	Size        float64 // em size in output units
	Align       Align
	LineSpacing float64 // baseline distance in multiples of Size; <= 0 uses DefaultLineSpacing
	Width       float64 // wrap width; <= 0 disables wrapping
}

// Result holds laid out text.
type Result struct {
	Outlines []geom.Polyline // closed glyph contours
	Missing  []rune          // runes the font has no glyph for, in order of appearance
	Width    float64         // advance of the widest line
	Lines    int
}

// Layout shapes text and returns its glyph contours flattened with chord
// tolerance eps. Lines are split at '\n' and, if opts.Width is positive,
// wrapped at spaces.
func (f *Font) Layout(text string, opts Options, eps float64) (Result, error) {
	if opts.Size <= 0 {
		return Result{}, fmt.Errorf("typeset: invalid size %v", opts.Size)
	}
	if eps <= 0 {
		return Result{}, fmt.Errorf("typeset: invalid tolerance %v", eps)
	}
	spacing := opts.LineSpacing
	if spacing <= 0 {
		spacing = DefaultLineSpacing
	}

	l := layouter{font: f, face: gotext.NewFace(f.shaper), size: opts.Size}
	var res Result
	var buf sfnt.Buffer
	y := 0.0
	for _, line := range l.lines(text, opts.Width) {
		glyphs, advance := l.shape(line)
		res.Width = max(res.Width, advance)
		var x0 float64
		switch opts.Align {
		case AlignCenter:
			x0 = -advance / 2
		case AlignRight:
			x0 = -advance
		}
		for _, g := range glyphs {
			if g.gid == 0 {
				res.Missing = append(res.Missing, g.r)
				continue
			}
			contours, err := f.outline(&buf, g.gid, opts.Size, geom.Pt(x0+g.x, y+g.y), eps)
			if err != nil {
				return Result{}, err
			}
			res.Outlines = append(res.Outlines, contours...)
		}
		y += opts.Size * spacing
		res.Lines++
	}
	return res, nil
}

// Measure returns the advance of a single line of text.
func (f *Font) Measure(text string, size float64) float64 {
	l := layouter{font: f, face: gotext.NewFace(f.shaper), size: size}
	_, advance := l.shape([]rune(text))
	return advance
}

type placedGlyph struct {
	gid  sfnt.GlyphIndex
	r    rune
	x, y float64
}

type layouter struct {
	font   *Font
	face   *gotext.Face
	shaper shaping.HarfbuzzShaper
	size   float64
}

func (l *layouter) shape(runes []rune) ([]placedGlyph, float64) {
	if len(runes) == 0 {
		return nil, 0
	}
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      l.face,
		Size:      fixed.Int26_6(l.size * 64),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}
	out := l.shaper.Shape(input)

	glyphs := make([]placedGlyph, 0, len(out.Glyphs))
	var x float64
	for _, g := range out.Glyphs {
		var r rune
		if idx := g.TextIndex(); idx >= 0 && idx < len(runes) {
			r = runes[idx]
		}
		glyphs = append(glyphs, placedGlyph{
			gid: sfnt.GlyphIndex(g.GlyphID),
			r:   r,
			x:   x + fixedToFloat(g.XOffset),
			// go-text offsets are y-up
			y: -fixedToFloat(g.YOffset),
		})
		x += fixedToFloat(g.Advance)
	}
	return glyphs, x
}

// lines splits text at newlines and greedily wraps each paragraph to width.
func (l *layouter) lines(text string, width float64) [][]rune {
	var out [][]rune
	for _, para := range strings.Split(text, "\n") {
		if width <= 0 {
			out = append(out, []rune(para))
			continue
		}
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, nil)
			continue
		}
		current := words[0]
		for _, w := range words[1:] {
			candidate := current + " " + w
			if _, adv := l.shape([]rune(candidate)); adv > width {
				out = append(out, []rune(current))
				current = w
				continue
			}
			current = candidate
		}
		out = append(out, []rune(current))
	}
	return out
}

// outline loads a glyph at size and returns its flattened contours
// translated to origin.
func (f *Font) outline(buf *sfnt.Buffer, gid sfnt.GlyphIndex, size float64, origin geom.Point, eps float64) ([]geom.Polyline, error) {
	segments, err := f.glyphs.LoadGlyph(buf, gid, fixed.Int26_6(size*64), nil)
	if err != nil {
		return nil, fmt.Errorf("typeset: load glyph %d: %w", gid, err)
	}

	var contours []geom.Polyline
	var cur geom.Polyline
	closeContour := func() {
		if len(cur) > 1 {
			if cur[0] != cur[len(cur)-1] {
				cur = append(cur, cur[0])
			}
			contours = append(contours, cur)
		}
		cur = nil
	}
	pt := func(p fixed.Point26_6) geom.Point {
		return geom.Pt(origin.X+fixedToFloat(p.X), origin.Y+fixedToFloat(p.Y))
	}

	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			closeContour()
			cur = geom.Polyline{pt(seg.Args[0])}
		case sfnt.SegmentOpLineTo:
			cur = append(cur, pt(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			q := flatten.QuadBez{P0: last(cur), P1: pt(seg.Args[0]), P2: pt(seg.Args[1])}
			cur = append(cur, flatten.Quad(q, eps)[1:]...)
		case sfnt.SegmentOpCubeTo:
			c := flatten.CubicBez{P0: last(cur), P1: pt(seg.Args[0]), P2: pt(seg.Args[1]), P3: pt(seg.Args[2])}
			cur = append(cur, flatten.Cubic(c, eps)[1:]...)
		}
	}
	closeContour()
	return contours, nil
}

func last(line geom.Polyline) geom.Point {
	if len(line) == 0 {
		return geom.Point{}
	}
	return line[len(line)-1]
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
