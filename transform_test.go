package sketch

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func firstStroke(t *testing.T, s *Sketch, layer int) Polyline {
	t.Helper()
	l, ok := s.Layer(layer)
	if !ok || len(l.Strokes) == 0 {
		t.Fatalf("layer %d has no strokes", layer)
	}
	return l.Strokes[0].Line
}

func TestPushPopRoundTrip(t *testing.T) {
	s := New()
	s.Translate(3, 4)
	before := s.Transform()

	s.Push()
	s.Rotate(0.3)
	s.Scale(2)
	if s.StackDepth() != 1 {
		t.Errorf("StackDepth() = %d, want 1", s.StackDepth())
	}
	if err := s.Pop(); err != nil {
		t.Fatal(err)
	}
	if s.Transform() != before {
		t.Errorf("Transform() after Pop = %v, want %v", s.Transform(), before)
	}
	if s.StackDepth() != 0 {
		t.Errorf("StackDepth() = %d, want 0", s.StackDepth())
	}
}

func TestPopEmpty(t *testing.T) {
	s := New()
	err := s.Pop()
	if !errors.Is(err, ErrUnbalancedStack) {
		t.Fatalf("Pop() error = %v, want ErrUnbalancedStack", err)
	}
	var ue *UnbalancedStackError
	if !errors.As(err, &ue) || ue.Op != "Pop" {
		t.Errorf("Pop() error = %#v", err)
	}
}

func TestTransformOrder(t *testing.T) {
	s := New()
	s.Translate(10, 0)
	s.Rotate(math.Pi / 2)
	if err := s.Line(0, 0, 1, 0); err != nil {
		t.Fatal(err)
	}
	want := Polyline{Pt(10, 0), Pt(10, 1)}
	if diff := cmp.Diff(want, firstStroke(t, s, 1), approx); diff != "" {
		t.Errorf("rotated line mismatch (-want +got):\n%s", diff)
	}
}

func TestResetMatrixKeepsDepth(t *testing.T) {
	s := New()
	s.Push()
	s.Scale(5)
	s.ResetMatrix()
	if !s.Transform().IsIdentity() {
		t.Error("ResetMatrix did not reset")
	}
	if s.StackDepth() != 1 {
		t.Errorf("StackDepth() = %d, want 1", s.StackDepth())
	}
}

func TestPushMatrixRestoresUnbalanced(t *testing.T) {
	s := New()
	s.Translate(1, 1)
	before := s.Transform()
	func() {
		defer s.PushMatrix()()
		s.Scale(3)
		s.Push()
		s.Push()
		s.Rotate(1)
	}()
	if s.Transform() != before || s.StackDepth() != 0 {
		t.Errorf("after scope: transform %v depth %d", s.Transform(), s.StackDepth())
	}
}

func TestPushMatrixRestoresAfterInnerPop(t *testing.T) {
	s := New()
	s.Translate(5, 5)
	before := s.Transform()
	func() {
		defer s.PushMatrix()()
		s.Translate(100, 0)
		if err := s.Pop(); err != nil {
			t.Fatal(err)
		}
		s.Scale(3)
	}()
	if s.Transform() != before {
		t.Errorf("Transform() = %v, want %v", s.Transform(), before)
	}
	if s.StackDepth() != 0 {
		t.Errorf("StackDepth() = %d, want 0", s.StackDepth())
	}
}

func TestWithMatrix(t *testing.T) {
	s := New()
	sentinel := errors.New("stop")
	err := s.WithMatrix(func() error {
		s.Translate(5, 5)
		return sentinel
	})
	if err != sentinel {
		t.Errorf("WithMatrix error = %v, want sentinel", err)
	}
	if !s.Transform().IsIdentity() || s.StackDepth() != 0 {
		t.Error("WithMatrix did not restore on error return")
	}

	func() {
		defer func() { _ = recover() }()
		_ = s.WithMatrix(func() error {
			s.Scale(2)
			panic("boom")
		})
	}()
	if !s.Transform().IsIdentity() || s.StackDepth() != 0 {
		t.Error("WithMatrix did not restore after panic")
	}
}

func TestWithResetMatrix(t *testing.T) {
	s := New()
	s.Translate(7, 0)
	before := s.Transform()
	err := s.WithResetMatrix(func() error {
		if !s.Transform().IsIdentity() {
			t.Error("transform not reset inside scope")
		}
		return s.Line(0, 0, 1, 0)
	})
	if err != nil {
		t.Fatal(err)
	}
	if s.Transform() != before {
		t.Error("transform not restored")
	}
	if diff := cmp.Diff(Polyline{Pt(0, 0), Pt(1, 0)}, firstStroke(t, s, 1)); diff != "" {
		t.Errorf("line mismatch (-want +got):\n%s", diff)
	}
}

func TestScaleLength(t *testing.T) {
	s := New()
	if err := s.ScaleLength("1cm"); err != nil {
		t.Fatal(err)
	}
	if err := s.Line(0, 0, 1, 0); err != nil {
		t.Fatal(err)
	}
	want := Polyline{Pt(0, 0), Pt(float64(Centimeter), 0)}
	if diff := cmp.Diff(want, firstStroke(t, s, 1), approx); diff != "" {
		t.Errorf("scaled line mismatch (-want +got):\n%s", diff)
	}
	if err := s.ScaleLength("2 parsecs"); err == nil {
		t.Error("ScaleLength with unknown unit should fail")
	}
}
