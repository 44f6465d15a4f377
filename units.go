package sketch

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// Unit is a physical length unit. Its value is the number of CSS pixels
// (1/96 inch) per unit.
type Unit float64

// Supported units.
const (
	Pixel      Unit = 1
	Inch       Unit = 96
	Millimeter Unit = 96 / 25.4
	Centimeter Unit = 96 / 2.54
	Meter      Unit = 9600 / 2.54
	TypePoint  Unit = 96.0 / 72
	Pica       Unit = 16
)

var unitNames = map[string]Unit{
	"px": Pixel,
	"in": Inch,
	"mm": Millimeter,
	"cm": Centimeter,
	"m":  Meter,
	"pt": TypePoint,
	"pc": Pica,
}

// Pixels converts v in unit u to pixels.
func (u Unit) Pixels(v float64) float64 {
	return v * float64(u)
}

// String returns the unit abbreviation, or the pixel factor for custom units.
func (u Unit) String() string {
	for name, v := range unitNames {
		if v == u {
			return name
		}
	}
	return strconv.FormatFloat(float64(u), 'g', -1, 64) + "px"
}

// ParseUnit looks up a unit by abbreviation, ignoring case.
func ParseUnit(s string) (Unit, error) {
	u, ok := unitNames[fold(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, s)
	}
	return u, nil
}

// ParseLength parses a number with an optional unit suffix, such as "12",
// "0.3mm" or "2.5 in", and returns the length in pixels.
func ParseLength(s string) (float64, error) {
	v, u, err := parseLength(s)
	if err != nil {
		return 0, err
	}
	if u == 0 {
		u = Pixel
	}
	return u.Pixels(v), nil
}

// parseLength returns the number and unit of s. The unit is 0 when s has
// no suffix.
func parseLength(s string) (float64, Unit, error) {
	s = strings.TrimSpace(s)
	end := len(s)
	for end > 0 {
		c := s[end-1]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			end--
			continue
		}
		break
	}
	num, suffix := strings.TrimSpace(s[:end]), s[end:]
	// exponent notation such as "1e3" ends in a digit and is kept whole
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("sketch: invalid length %q: %w", s, err)
	}
	if suffix == "" {
		return v, 0, nil
	}
	u, err := ParseUnit(suffix)
	if err != nil {
		return 0, 0, err
	}
	return v, u, nil
}

// PageSize is a page extent in pixels.
type PageSize struct {
	Width, Height float64
}

// Standard page sizes.
var (
	PageA0        = pageMM(841, 1189)
	PageA1        = pageMM(594, 841)
	PageA2        = pageMM(420, 594)
	PageA3        = pageMM(297, 420)
	PageA4        = pageMM(210, 297)
	PageA5        = pageMM(148, 210)
	PageA6        = pageMM(105, 148)
	PageB4        = pageMM(250, 353)
	PageB5        = pageMM(176, 250)
	PageLetter    = pageIn(8.5, 11)
	PageLegal     = pageIn(8.5, 14)
	PageExecutive = pageIn(7.25, 10.5)
	PageTabloid   = pageIn(11, 17)
)

var pageNames = map[string]PageSize{
	"a0":        PageA0,
	"a1":        PageA1,
	"a2":        PageA2,
	"a3":        PageA3,
	"a4":        PageA4,
	"a5":        PageA5,
	"a6":        PageA6,
	"b4":        PageB4,
	"b5":        PageB5,
	"letter":    PageLetter,
	"legal":     PageLegal,
	"executive": PageExecutive,
	"tabloid":   PageTabloid,
}

func pageMM(w, h float64) PageSize {
	return PageSize{Width: Millimeter.Pixels(w), Height: Millimeter.Pixels(h)}
}

func pageIn(w, h float64) PageSize {
	return PageSize{Width: Inch.Pixels(w), Height: Inch.Pixels(h)}
}

// Landscape returns the page with its longer side horizontal.
func (p PageSize) Landscape() PageSize {
	if p.Height > p.Width {
		return PageSize{Width: p.Height, Height: p.Width}
	}
	return p
}

// Diagonal returns the length of the page diagonal in pixels.
func (p PageSize) Diagonal() float64 {
	return Pt(p.Width, p.Height).Length()
}

// ParsePageSize parses a page size name such as "a4" or "letter", or an
// explicit "WxH" size such as "20x30cm" or "8inx10in". A unit on the height
// alone applies to both dimensions. Names are case-insensitive.
func ParsePageSize(s string) (PageSize, error) {
	key := fold(strings.TrimSpace(s))
	if p, ok := pageNames[key]; ok {
		return p, nil
	}
	ws, hs, ok := strings.Cut(key, "x")
	if !ok {
		return PageSize{}, fmt.Errorf("%w: %q", ErrUnknownPageSize, s)
	}
	w, wu, err := parseLength(ws)
	if err != nil {
		return PageSize{}, fmt.Errorf("%w: %q: %w", ErrUnknownPageSize, s, err)
	}
	h, hu, err := parseLength(hs)
	if err != nil {
		return PageSize{}, fmt.Errorf("%w: %q: %w", ErrUnknownPageSize, s, err)
	}
	if hu == 0 {
		hu = Pixel
	}
	if wu == 0 {
		wu = hu
	}
	p := PageSize{Width: wu.Pixels(w), Height: hu.Pixels(h)}
	if p.Width <= 0 || p.Height <= 0 {
		return PageSize{}, fmt.Errorf("%w: %q: dimensions must be positive", ErrUnknownPageSize, s)
	}
	return p, nil
}

// PageNames returns the recognized page size names in sorted order.
func PageNames() []string {
	return slices.Sorted(maps.Keys(pageNames))
}

func fold(s string) string {
	return cases.Fold().String(s)
}
