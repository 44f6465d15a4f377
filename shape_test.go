package sketch

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// The boolean operations snap vertices to a fine grid.
var near = cmpopts.EquateApprox(0, 1e-6)

func ringArea(ring Polyline) float64 {
	a := 0.0
	for i := 1; i < len(ring); i++ {
		a += ring[i-1].Cross(ring[i])
	}
	return math.Abs(a) / 2
}

func shapeArea(sh *Shape) float64 {
	total := 0.0
	for _, p := range sh.Polygons() {
		total += ringArea(p.Exterior)
		for _, h := range p.Holes {
			total -= ringArea(h)
		}
	}
	return total
}

func TestShapeBooleanOps(t *testing.T) {
	tests := []struct {
		op   BooleanOp
		want float64
	}{
		{Union, 175},
		{Difference, 75},
		{Intersection, 25},
		{SymmetricDifference, 150},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			sh := New().CreateShape()
			if err := sh.Rect(0, 0, 10, 10, Union); err != nil {
				t.Fatal(err)
			}
			if err := sh.Rect(5, 5, 10, 10, tt.op); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, shapeArea(sh), near); diff != "" {
				t.Errorf("area mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestShapeEmptyArea(t *testing.T) {
	tests := []struct {
		op        BooleanOp
		wantEmpty bool
	}{
		{Union, false},
		{Difference, true},
		{Intersection, true},
		{SymmetricDifference, false},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			sh := New().CreateShape()
			if err := sh.Circle(0, 0, 5, tt.op); err != nil {
				t.Fatal(err)
			}
			if sh.IsEmpty() != tt.wantEmpty {
				t.Errorf("IsEmpty() = %v, want %v", sh.IsEmpty(), tt.wantEmpty)
			}
		})
	}
}

func TestShapeDifferencePunchesHole(t *testing.T) {
	s := New()
	if err := s.Fill(2); err != nil {
		t.Fatal(err)
	}
	sh := s.CreateShape()
	if err := sh.Rect(0, 0, 100, 100, Union); err != nil {
		t.Fatal(err)
	}
	if err := sh.Circle(50, 50, 20, Difference); err != nil {
		t.Fatal(err)
	}
	if err := s.Shape(sh, true, true); err != nil {
		t.Fatal(err)
	}

	l1, _ := s.Layer(1)
	holes := 0
	for _, sp := range l1.Strokes {
		if sp.Hole {
			holes++
		}
	}
	if len(l1.Strokes) != 2 || holes != 1 {
		t.Fatalf("strokes=%d holes=%d, want 2/1", len(l1.Strokes), holes)
	}

	l2, _ := s.Layer(2)
	if len(l2.Fills) != 1 || len(l2.Fills[0].Holes) != 1 {
		t.Fatalf("fills = %+v, want one fill with one hole", l2.Fills)
	}
	for _, p := range l2.Fills[0].Holes[0] {
		if d := p.Distance(Pt(50, 50)); math.Abs(d-20) > 1e-6 {
			t.Errorf("hole vertex %v at distance %v from center, want 20", p, d)
		}
	}
	if diff := cmp.Diff(10000.0, ringArea(l2.Fills[0].Exterior), near); diff != "" {
		t.Errorf("exterior area mismatch (-want +got):\n%s", diff)
	}
}

func TestShapeMasking(t *testing.T) {
	tests := []struct {
		name     string
		mask     bool
		wantOpen []Polyline
		wantDots int
	}{
		{
			name:     "masked",
			mask:     true,
			wantOpen: []Polyline{{Pt(-5, 5), Pt(0, 5)}, {Pt(10, 5), Pt(15, 5)}},
			wantDots: 1,
		},
		{
			name:     "unmasked",
			mask:     false,
			wantOpen: []Polyline{{Pt(-5, 5), Pt(15, 5)}},
			wantDots: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			sh := s.CreateShape()
			if err := sh.Rect(0, 0, 10, 10, Union); err != nil {
				t.Fatal(err)
			}
			if err := sh.Line(-5, 5, 15, 5); err != nil {
				t.Fatal(err)
			}
			if err := sh.Point(5, 5); err != nil {
				t.Fatal(err)
			}
			if err := sh.Point(20, 20); err != nil {
				t.Fatal(err)
			}
			if err := s.Shape(sh, tt.mask, tt.mask); err != nil {
				t.Fatal(err)
			}

			l, _ := s.Layer(1)
			var open []Polyline
			closed := 0
			for _, sp := range l.Strokes {
				if sp.Line.IsClosed() {
					closed++
				} else {
					open = append(open, sp.Line)
				}
			}
			if diff := cmp.Diff(tt.wantOpen, open, near); diff != "" {
				t.Errorf("lines mismatch (-want +got):\n%s", diff)
			}
			// One closed stroke is the square outline.
			if closed-1 != tt.wantDots {
				t.Errorf("dots = %d, want %d", closed-1, tt.wantDots)
			}
		})
	}
}

func TestShapeFollowsTransform(t *testing.T) {
	s := New()
	sh := s.CreateShape()
	if err := sh.Rect(0, 0, 10, 10, Union); err != nil {
		t.Fatal(err)
	}
	s.Translate(100, 0)
	if err := s.Shape(sh, false, false); err != nil {
		t.Fatal(err)
	}
	for _, p := range firstStroke(t, s, 1) {
		if p.X < 100-1e-6 || p.X > 110+1e-6 || p.Y < -1e-6 || p.Y > 10+1e-6 {
			t.Errorf("vertex %v outside translated square", p)
		}
	}
}

func TestShapePolygonWithHole(t *testing.T) {
	sh := New().CreateShape()
	square := []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10)}
	hole := []Point{Pt(2, 2), Pt(4, 2), Pt(4, 4), Pt(2, 4)}
	if err := sh.Polygon(square, [][]Point{hole}, Union); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(96.0, shapeArea(sh), near); diff != "" {
		t.Errorf("area mismatch (-want +got):\n%s", diff)
	}
}

func TestShapeCombinesShapes(t *testing.T) {
	s := New()
	a, b := s.CreateShape(), s.CreateShape()
	if err := a.Rect(0, 0, 10, 10, Union); err != nil {
		t.Fatal(err)
	}
	if err := b.Rect(5, 5, 10, 10, Union); err != nil {
		t.Fatal(err)
	}
	if err := b.Line(0, 20, 10, 20); err != nil {
		t.Fatal(err)
	}
	if err := a.Shape(b, Union); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(175.0, shapeArea(a), near); diff != "" {
		t.Errorf("area mismatch (-want +got):\n%s", diff)
	}
	if len(a.Polylines()) != 1 {
		t.Errorf("Polylines() = %v, want the line of b", a.Polylines())
	}

	// b is unaffected by later changes to a.
	if err := a.Rect(0, 0, 100, 100, Difference); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(100.0, shapeArea(b), near); diff != "" {
		t.Errorf("area of b mismatch (-want +got):\n%s", diff)
	}
}

func TestShapeSquareCornersMode(t *testing.T) {
	s := New()
	s.RectMode(ModeCorners)
	sh := s.CreateShape()
	if err := sh.Square(10, 10, -4, Union); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(16.0, shapeArea(sh), near); diff != "" {
		t.Errorf("area mismatch (-want +got):\n%s", diff)
	}
}

func TestShapeErrors(t *testing.T) {
	s := New()
	sh := s.CreateShape()
	tests := []struct {
		name string
		err  error
	}{
		{"unknown op", sh.Rect(0, 0, 1, 1, BooleanOp(9))},
		{"non-finite rect", sh.Rect(0, math.NaN(), 1, 1, Union)},
		{"open arc difference", sh.Arc(0, 0, 10, 10, 0, math.Pi, ArcOpen, Difference)},
		{"open geometry intersection", sh.Geometry(LineString{Pt(0, 0), Pt(1, 1)}, Intersection)},
		{"nil other", sh.Shape(nil, Union)},
		{"nil geometry", sh.Geometry(nil, Union)},
		{"draw nil", s.Shape(nil, false, false)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, ErrInvalidArgument) {
				t.Errorf("error = %v, want ErrInvalidArgument", tt.err)
			}
		})
	}
	if !sh.IsEmpty() {
		t.Error("failed calls changed the shape")
	}
}
