package sketch

import (
	"errors"
	"math"
	"testing"
)

func TestParseLength(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"12", 12},
		{"12px", 12},
		{"1in", 96},
		{"1IN", 96},
		{"25.4mm", 96},
		{"2.54 cm", 96},
		{"0.0254m", 96},
		{"72pt", 96},
		{"6pc", 96},
		{"-1in", -96},
		{"1e1px", 10},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLength(tt.in)
			if err != nil {
				t.Fatalf("ParseLength(%q) error = %v", tt.in, err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ParseLength(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseLengthErrors(t *testing.T) {
	if _, err := ParseLength("3furlongs"); !errors.Is(err, ErrUnknownUnit) {
		t.Errorf("unknown unit error = %v, want ErrUnknownUnit", err)
	}
	for _, in := range []string{"", "mm", "abc", "1.2.3cm"} {
		if _, err := ParseLength(in); err == nil {
			t.Errorf("ParseLength(%q) should fail", in)
		}
	}
}

func TestUnitString(t *testing.T) {
	tests := []struct {
		u    Unit
		want string
	}{
		{Pixel, "px"},
		{Millimeter, "mm"},
		{Inch, "in"},
		{TypePoint, "pt"},
		{Unit(3), "3px"},
	}
	for _, tt := range tests {
		if got := tt.u.String(); got != tt.want {
			t.Errorf("Unit(%v).String() = %q, want %q", float64(tt.u), got, tt.want)
		}
	}
}

func TestParsePageSize(t *testing.T) {
	tests := []struct {
		in   string
		want PageSize
	}{
		{"a4", PageA4},
		{"A3", PageA3},
		{"Letter", PageLetter},
		{"tabloid", PageTabloid},
		{"20x30cm", PageSize{Centimeter.Pixels(20), Centimeter.Pixels(30)}},
		{"8inx10in", PageSize{768, 960}},
		{"100x200", PageSize{100, 200}},
		{"10mmx1in", PageSize{Millimeter.Pixels(10), 96}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePageSize(tt.in)
			if err != nil {
				t.Fatalf("ParsePageSize(%q) error = %v", tt.in, err)
			}
			if math.Abs(got.Width-tt.want.Width) > 1e-9 || math.Abs(got.Height-tt.want.Height) > 1e-9 {
				t.Errorf("ParsePageSize(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParsePageSizeErrors(t *testing.T) {
	for _, in := range []string{"a9", "0x10", "axb", "10x-5"} {
		if _, err := ParsePageSize(in); !errors.Is(err, ErrUnknownPageSize) {
			t.Errorf("ParsePageSize(%q) error = %v, want ErrUnknownPageSize", in, err)
		}
	}
}

func TestPageLandscape(t *testing.T) {
	l := PageA4.Landscape()
	if l.Width != PageA4.Height || l.Height != PageA4.Width {
		t.Errorf("Landscape() = %+v", l)
	}
	if l.Landscape() != l {
		t.Error("Landscape() of a landscape page should be unchanged")
	}
}

func TestPageNamesSorted(t *testing.T) {
	names := PageNames()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("PageNames() not sorted: %v", names)
		}
	}
	for _, name := range names {
		if _, err := ParsePageSize(name); err != nil {
			t.Errorf("ParsePageSize(%q) error = %v", name, err)
		}
	}
}
