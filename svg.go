package sketch

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// ColorMode selects how strokes are colored in SVG output.
type ColorMode int

const (
	// ColorNone draws everything in black.
	ColorNone ColorMode = iota
	// ColorLayer gives every layer its own color.
	ColorLayer
	// ColorPath gives every path its own color, useful to inspect line order.
	ColorPath
)

// palette is cycled through by ColorLayer and ColorPath.
var palette = []string{"#0000ff", "#008000", "#ff0000", "#00bfbf", "#bf00bf", "#bfbf00", "#000000"}

type saveOptions struct {
	layerLabel  string
	colorMode   ColorMode
	description string
}

// SaveOption configures WriteSVG and Save.
type SaveOption func(*saveOptions)

// WithLayerLabel sets the fmt format used for layer names. It receives the
// layer id. The default is "%d".
func WithLayerLabel(format string) SaveOption {
	return func(o *saveOptions) { o.layerLabel = format }
}

// WithColorMode sets the stroke coloring.
func WithColorMode(m ColorMode) SaveOption {
	return func(o *saveOptions) { o.colorMode = m }
}

// WithDescription adds a <desc> element to the document.
func WithDescription(desc string) SaveOption {
	return func(o *saveOptions) { o.description = desc }
}

const (
	inkscapeNS = `xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape"`
	coordScale = 1000 // coordinates are rounded to 1/coordScale px
	saveMode   = 0o644
)

// WriteSVG writes the expanded document as SVG. Page dimensions are given in
// millimeters, coordinates in CSS pixels. Each layer becomes an Inkscape
// layer group. The sketch is not modified.
func (s *Sketch) WriteSVG(w io.Writer, opts ...SaveOption) error {
	o := saveOptions{layerLabel: "%d", colorMode: ColorLayer}
	for _, opt := range opts {
		opt(&o)
	}
	if o.colorMode < ColorNone || o.colorMode > ColorPath {
		return argError("WriteSVG", "unknown color mode %d", int(o.colorMode))
	}
	if label := fmt.Sprintf(o.layerLabel, 1); strings.Contains(label, "%!") {
		return argError("WriteSVG", "layer label %q must format exactly one integer", o.layerLabel)
	}

	doc := s.Document()
	if s.centered {
		if b, ok := doc.Bounds(); ok {
			doc.Translate((doc.Page.Width-b.Dx())/2-b.LLx, (doc.Page.Height-b.Dy())/2-b.LLy)
		}
	}

	bw := bufio.NewWriter(w)
	canvas := svg.New(bw)
	mm := float64(Millimeter)
	canvas.Startraw(
		fmt.Sprintf(`width="%smm"`, formatCoord(doc.Page.Width/mm)),
		fmt.Sprintf(`height="%smm"`, formatCoord(doc.Page.Height/mm)),
		fmt.Sprintf(`viewBox="0 0 %s %s"`, formatCoord(doc.Page.Width), formatCoord(doc.Page.Height)),
		inkscapeNS,
	)
	if o.description != "" {
		canvas.Desc(o.description)
	}

	var pathIndex int
	for i, l := range doc.Layers {
		if len(l.Lines) == 0 {
			continue
		}
		attrs := []string{
			fmt.Sprintf(`id="layer%d"`, l.ID),
			`inkscape:groupmode="layer"`,
			fmt.Sprintf(`inkscape:label="%s"`, xmlEscape(fmt.Sprintf(o.layerLabel, l.ID))),
			`fill="none"`,
			fmt.Sprintf(`stroke-width="%s"`, formatCoord(l.PenWidth)),
			`stroke-linecap="round"`,
			`stroke-linejoin="round"`,
		}
		switch o.colorMode {
		case ColorNone:
			attrs = append(attrs, `stroke="#000000"`)
		case ColorLayer:
			attrs = append(attrs, fmt.Sprintf(`stroke="%s"`, palette[i%len(palette)]))
		}
		canvas.Group(attrs...)
		for _, line := range l.Lines {
			if o.colorMode == ColorPath {
				canvas.Path(pathData(line), fmt.Sprintf(`stroke="%s"`, palette[pathIndex%len(palette)]))
				pathIndex++
				continue
			}
			canvas.Path(pathData(line))
		}
		canvas.Gend()
	}
	canvas.End()

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("sketch: write svg: %w", err)
	}
	return nil
}

// Save writes the sketch to path. The format is chosen by extension; only
// ".svg" is supported. The file is written to a temporary name in the same
// directory and renamed into place, so a failed save leaves no partial file.
// The saved file is readable by everyone and writable by the owner.
func (s *Sketch) Save(path string, opts ...SaveOption) (err error) {
	if ext := filepath.Ext(path); fold(ext) != ".svg" {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("sketch: save: %w", err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	if err = s.WriteSVG(f, opts...); err != nil {
		return err
	}
	if err = f.Chmod(saveMode); err != nil {
		return fmt.Errorf("sketch: save: %w", err)
	}
	if err = f.Sync(); err != nil {
		return fmt.Errorf("sketch: save: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("sketch: save: %w", err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("sketch: save: %w", err)
	}
	Logger().Info("sketch: saved", "path", path, "layers", len(s.layers))
	return nil
}

// pathData returns the SVG path data of a polyline. Closed polylines end
// with Z instead of repeating the first point.
func pathData(line Polyline) string {
	var b strings.Builder
	n := len(line)
	closed := line.IsClosed()
	if closed {
		n--
	}
	for i := range n {
		if i == 0 {
			b.WriteByte('M')
		} else {
			b.WriteString(" L")
		}
		b.WriteString(formatCoord(line[i].X))
		b.WriteByte(',')
		b.WriteString(formatCoord(line[i].Y))
	}
	if closed {
		b.WriteString(" Z")
	}
	return b.String()
}

func formatCoord(v float64) string {
	v = math.Round(v*coordScale) / coordScale
	if v == 0 {
		v = 0 // no "-0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var xmlReplacer = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func xmlEscape(s string) string {
	return xmlReplacer.Replace(s)
}
