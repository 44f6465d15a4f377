package sketch

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func TestSize(t *testing.T) {
	s := New()
	if err := s.Size(400, 300, false); err != nil {
		t.Fatal(err)
	}
	if s.Width() != 400 || s.Height() != 300 {
		t.Errorf("size = %vx%v, want 400x300", s.Width(), s.Height())
	}
	if err := s.Size(400, 300, true); err != nil {
		t.Fatal(err)
	}
	if s.Width() != 400 || s.Height() != 300 {
		t.Errorf("landscape of a landscape page = %vx%v, want 400x300", s.Width(), s.Height())
	}
	if err := s.SizeNamed("a4", true); err != nil {
		t.Fatal(err)
	}
	if s.Width() != PageA4.Height || s.Height() != PageA4.Width {
		t.Errorf("a4 landscape = %vx%v", s.Width(), s.Height())
	}

	for _, bad := range [][2]float64{{0, 10}, {10, -1}, {math.Inf(1), 10}, {math.NaN(), 10}} {
		if err := s.Size(bad[0], bad[1], false); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Size(%v, %v) error = %v, want ErrInvalidArgument", bad[0], bad[1], err)
		}
	}
	if err := s.SizeNamed("napkin", false); !errors.Is(err, ErrUnknownPageSize) {
		t.Errorf("SizeNamed(napkin) error = %v, want ErrUnknownPageSize", err)
	}
}

func TestDetail(t *testing.T) {
	s := New(WithPageSize(PageSize{Width: 3000, Height: 4000}))
	if got, want := s.DetailValue(), 5000*detailFraction; math.Abs(got-want) > 1e-12 {
		t.Errorf("default DetailValue() = %v, want %v", got, want)
	}
	if err := s.Detail(0.25); err != nil {
		t.Fatal(err)
	}
	if s.DetailValue() != 0.25 {
		t.Errorf("DetailValue() = %v, want 0.25", s.DetailValue())
	}
	if err := s.DetailLength("1mm"); err != nil {
		t.Fatal(err)
	}
	if math.Abs(s.DetailValue()-float64(Millimeter)) > 1e-12 {
		t.Errorf("DetailValue() = %v, want 1mm", s.DetailValue())
	}
	for _, bad := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if err := s.Detail(bad); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Detail(%v) error = %v, want ErrInvalidArgument", bad, err)
		}
	}
}

func TestEpsilon(t *testing.T) {
	tests := []struct {
		name  string
		apply func(s *Sketch)
		want  float64
	}{
		{"identity", func(*Sketch) {}, 1},
		{"translate", func(s *Sketch) { s.Translate(50, 50) }, 1},
		{"scale 4", func(s *Sketch) { s.Scale(4) }, 0.25},
		{"scale xy", func(s *Sketch) { s.ScaleXY(0.5, 2) }, 0.5},
		{"rotate", func(s *Sketch) { s.Rotate(1.2) }, 1},
		{"degenerate", func(s *Sketch) { s.Scale(0) }, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(WithDetail(1))
			tt.apply(s)
			if got := s.Epsilon(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Epsilon() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLayerSelection(t *testing.T) {
	s := New()
	if err := s.Stroke(3); err != nil {
		t.Fatal(err)
	}
	if err := s.Fill(5); err != nil {
		t.Fatal(err)
	}
	if s.StrokeLayer() != 3 || s.FillLayer() != 5 {
		t.Errorf("layers = %d/%d, want 3/5", s.StrokeLayer(), s.FillLayer())
	}
	if got, want := s.Layers(), []int{3, 5}; !slices.Equal(got, want) {
		t.Errorf("Layers() = %v, want %v", got, want)
	}
	s.NoStroke()
	s.NoFill()
	if s.StrokeLayer() != 0 || s.FillLayer() != 0 {
		t.Errorf("after NoStroke/NoFill layers = %d/%d, want 0/0", s.StrokeLayer(), s.FillLayer())
	}

	for _, id := range []int{0, -2} {
		if err := s.Stroke(id); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Stroke(%d) error = %v, want ErrInvalidArgument", id, err)
		}
		if err := s.Fill(id); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Fill(%d) error = %v, want ErrInvalidArgument", id, err)
		}
	}
}

func TestStrokeWeightAndJoin(t *testing.T) {
	s := New()
	if err := s.StrokeWeight(3); err != nil {
		t.Fatal(err)
	}
	if err := s.StrokeJoin(JoinMiter); err != nil {
		t.Fatal(err)
	}
	l, ok := s.Layer(1)
	if !ok {
		t.Fatal("layer 1 missing")
	}
	if l.StrokeWeight() != 3 || l.StrokeJoin() != JoinMiter {
		t.Errorf("layer metadata = %d/%v, want 3/miter", l.StrokeWeight(), l.StrokeJoin())
	}
	if err := s.StrokeWeight(0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("StrokeWeight(0) error = %v", err)
	}
	if err := s.StrokeJoin(JoinStyle(9)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("StrokeJoin(9) error = %v", err)
	}
}

func TestPenWidth(t *testing.T) {
	s := New()
	if err := s.PenWidth(2.5, 1); err != nil {
		t.Fatal(err)
	}
	if err := s.PenWidthLength("1mm", 2); err != nil {
		t.Fatal(err)
	}
	if err := s.SetDefaultPenWidth(0.7); err != nil {
		t.Fatal(err)
	}
	if s.StrokePenWidth() != 2.5 {
		t.Errorf("StrokePenWidth() = %v, want 2.5", s.StrokePenWidth())
	}
	if err := s.Fill(2); err != nil {
		t.Fatal(err)
	}
	if math.Abs(s.FillPenWidth()-float64(Millimeter)) > 1e-12 {
		t.Errorf("FillPenWidth() = %v, want 1mm", s.FillPenWidth())
	}
	if err := s.Fill(9); err != nil {
		t.Fatal(err)
	}
	if s.FillPenWidth() != 0.7 {
		t.Errorf("unconfigured layer pen width = %v, want default 0.7", s.FillPenWidth())
	}
	if err := s.PenWidth(-1, 1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("PenWidth(-1) error = %v", err)
	}
	if err := s.PenWidth(1, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("PenWidth(layer 0) error = %v", err)
	}
}

func TestLayerReturnsCopy(t *testing.T) {
	s := New()
	if err := s.Line(0, 0, 10, 0); err != nil {
		t.Fatal(err)
	}
	l, _ := s.Layer(1)
	l.Strokes[0].Line[0].X = 99
	l.Strokes = nil

	again, _ := s.Layer(1)
	if len(again.Strokes) != 1 || again.Strokes[0].Line[0].X != 0 {
		t.Error("mutating the returned layer changed the sketch")
	}
	if _, ok := s.Layer(42); ok {
		t.Error("Layer(42) should not exist")
	}
}
