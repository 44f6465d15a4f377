package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/sketch"
)

func doc(lines ...sketch.Polyline) *sketch.Document {
	return &sketch.Document{
		Page:   sketch.PageA4,
		Layers: []sketch.DocumentLayer{{ID: 1, PenWidth: 1, Lines: lines}},
	}
}

func line(coords ...float64) sketch.Polyline {
	l := make(sketch.Polyline, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		l = append(l, sketch.Pt(coords[i], coords[i+1]))
	}
	return l
}

func TestParse(t *testing.T) {
	steps, err := Parse("  linemerge -t 1mm   reloop linesort --no-flip\ttranslate 1cm 2 ")
	if err != nil {
		t.Fatal(err)
	}
	type parsed struct {
		Name string
		Args []string
	}
	var got []parsed
	for _, s := range steps {
		got = append(got, parsed{s.Name, s.Args})
	}
	want := []parsed{
		{"linemerge", []string{"-t", "1mm"}},
		{"reloop", nil},
		{"linesort", []string{"--no-flip"}},
		{"translate", []string{"1cm", "2"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		spec string
		want error
	}{
		{"warp 9", ErrUnknownCommand},
		{"linemerge -t", ErrInvalidArgs},
		{"linemerge -t 3furlongs", ErrInvalidArgs},
		{"linesort extra", ErrInvalidArgs},
		{"multipass -n 0", ErrInvalidArgs},
		{"translate 1", ErrInvalidArgs},
		{"scale", ErrInvalidArgs},
		{"scale x", ErrInvalidArgs},
		{"rotate", ErrInvalidArgs},
		{"filter --closed --not-closed", ErrInvalidArgs},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			if _, err := Parse(tt.spec); !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.spec, err, tt.want)
			}
		})
	}
}

func TestRunDoesNotModifyInput(t *testing.T) {
	in := doc(line(0, 0, 10, 0), line(10, 0, 20, 0))
	before := in.Clone()
	out, err := New().Run(context.Background(), "linemerge translate 5 5", in)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(before, in); diff != "" {
		t.Errorf("input modified (-before +after):\n%s", diff)
	}
	want := []sketch.Polyline{line(5, 5, 15, 5, 25, 5)}
	if diff := cmp.Diff(want, out.Layers[0].Lines); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRunEmptySpec(t *testing.T) {
	in := doc(line(0, 0, 1, 1))
	out, err := New().Run(context.Background(), "   ", in)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("empty spec changed the document (-in +out):\n%s", diff)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New().Run(ctx, "linesort", doc(line(0, 0, 1, 1))); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestRunCommandError(t *testing.T) {
	boom := errors.New("boom")
	Register("test-fail", func([]string) (Command, error) {
		return func(context.Context, *sketch.Document, *Env) error { return boom }, nil
	})
	t.Cleanup(func() { Unregister("test-fail") })

	_, err := New().Run(context.Background(), "linesort test-fail", doc(line(0, 0, 1, 1)))
	if !errors.Is(err, boom) {
		t.Errorf("Run() error = %v, want wrapped boom", err)
	}
}

func TestReloopDeterministic(t *testing.T) {
	ring := line(0, 0, 10, 0, 10, 10, 5, 15, 0, 10, 0, 0)
	run := func(seed uint64) sketch.Polyline {
		out, err := New(WithSeed(seed)).Run(context.Background(), "reloop", doc(ring))
		if err != nil {
			t.Fatal(err)
		}
		return out.Layers[0].Lines[0]
	}
	a, b := run(3), run(3)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed, different result (-a +b):\n%s", diff)
	}
	if !a.IsClosed() || len(a) != len(ring) {
		t.Errorf("reloop result %v is not a ring of the same size", a)
	}
}

func TestSketchVpype(t *testing.T) {
	s := sketch.New(sketch.WithSeed(1), sketch.WithPipeline(New(WithSeed(1))))
	for i := range 5 {
		x := float64(i) * 10
		if err := s.Line(x, 0, x+10, 0); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Vpype(context.Background(), "linemerge linesort"); err != nil {
		t.Fatal(err)
	}
	l, _ := s.Layer(1)
	if len(l.Strokes) != 1 {
		t.Fatalf("got %d strokes after linemerge, want 1", len(l.Strokes))
	}
	if n := len(l.Strokes[0].Line); n != 6 {
		t.Errorf("merged line has %d points, want 6", n)
	}

	l0, _ := s.Layer(1)
	err := s.Vpype(context.Background(), "warp linesort")
	var pe *sketch.PipelineError
	if !errors.As(err, &pe) || !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("Vpype(bad spec) error = %v", err)
	}
	l1, _ := s.Layer(1)
	if diff := cmp.Diff(l0.Strokes, l1.Strokes); diff != "" {
		t.Errorf("failed pipeline changed the sketch (-before +after):\n%s", diff)
	}
}
