package geom

import (
	"math"
	"testing"
)

func TestPointOps(t *testing.T) {
	p := Pt(3, 4)
	if got := p.Length(); got != 5 {
		t.Errorf("Length() = %v, want 5", got)
	}
	if got := p.Perp(); got != Pt(-4, 3) {
		t.Errorf("Perp() = %v, want (-4,3)", got)
	}
	n := p.Normalize()
	if math.Abs(n.Length()-1) > 1e-12 {
		t.Errorf("Normalize().Length() = %v, want 1", n.Length())
	}
	if got := (Point{}).Normalize(); got != (Point{}) {
		t.Errorf("zero.Normalize() = %v, want zero", got)
	}
	if got := Pt(0, 0).Lerp(Pt(10, 20), 0.5); got != Pt(5, 10) {
		t.Errorf("Lerp = %v, want (5,10)", got)
	}
}

func TestPointIsFinite(t *testing.T) {
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"finite", Pt(1, 2), true},
		{"nan x", Pt(math.NaN(), 0), false},
		{"inf y", Pt(0, math.Inf(-1)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.IsFinite(); got != tt.want {
				t.Errorf("IsFinite() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPolyline(t *testing.T) {
	square := Polyline{Pt(0, 0), Pt(1, 0), Pt(1, 1), Pt(0, 1), Pt(0, 0)}
	if !square.IsClosed() {
		t.Error("square should be closed")
	}
	if got := square.Length(); got != 4 {
		t.Errorf("Length() = %v, want 4", got)
	}
	if got := square.DistinctCount(2); got != 2 {
		t.Errorf("DistinctCount(2) = %v, want 2", got)
	}
	same := Polyline{Pt(1, 1), Pt(1, 1), Pt(1, 1)}
	if got := same.DistinctCount(2); got != 1 {
		t.Errorf("DistinctCount(2) = %v, want 1", got)
	}
	rev := Polyline{Pt(0, 0), Pt(1, 0), Pt(2, 0)}.Reversed()
	if rev[0] != Pt(2, 0) || rev[2] != Pt(0, 0) {
		t.Errorf("Reversed() = %v", rev)
	}

	clone := square.Clone()
	clone[0] = Pt(9, 9)
	if square[0] != Pt(0, 0) {
		t.Error("Clone() must not share storage")
	}
}
