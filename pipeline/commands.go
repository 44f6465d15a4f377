package pipeline

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/gogpu/sketch"
)

// DefaultTolerance is the default distance used by linemerge, reloop and
// linesimplify: 0.05mm.
var DefaultTolerance = sketch.Millimeter.Pixels(0.05)

func init() {
	Register("linemerge", newLineMerge)
	Register("linesort", newLineSort)
	Register("reloop", newReloop)
	Register("linesimplify", newLineSimplify)
	Register("multipass", newMultipass)
	Register("reverse", newReverse)
	Register("filter", newFilter)
	Register("translate", newTranslate)
	Register("scale", newScale)
	Register("rotate", newRotate)
}

// lengthValue is a flag.Value accepting lengths with units.
type lengthValue float64

func (v *lengthValue) String() string { return strconv.FormatFloat(float64(*v), 'g', -1, 64) }

func (v *lengthValue) Set(s string) error {
	px, err := sketch.ParseLength(s)
	if err != nil {
		return err
	}
	*v = lengthValue(px)
	return nil
}

// parseFlags parses args with fs and returns the positional arguments.
func parseFlags(fs *flag.FlagSet, args []string) ([]string, error) {
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgs, err)
	}
	return fs.Args(), nil
}

func noPositional(name string, rest []string) error {
	if len(rest) > 0 {
		return fmt.Errorf("%w: %s takes no positional arguments, got %q", ErrInvalidArgs, name, rest)
	}
	return nil
}

func toleranceFlag(name string, args []string) (float64, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	tol := lengthValue(DefaultTolerance)
	fs.Var(&tol, "t", "tolerance")
	fs.Var(&tol, "tolerance", "tolerance")
	rest, err := parseFlags(fs, args)
	if err != nil {
		return 0, err
	}
	if err := noPositional(name, rest); err != nil {
		return 0, err
	}
	if tol < 0 {
		return 0, fmt.Errorf("%w: negative tolerance %v", ErrInvalidArgs, float64(tol))
	}
	return float64(tol), nil
}

// eachLayer applies fn to the lines of every layer, checking ctx between
// layers.
func eachLayer(ctx context.Context, doc *sketch.Document, fn func([]sketch.Polyline) []sketch.Polyline) error {
	for i := range doc.Layers {
		if err := ctx.Err(); err != nil {
			return err
		}
		doc.Layers[i].Lines = fn(doc.Layers[i].Lines)
	}
	return nil
}

func newLineMerge(args []string) (Command, error) {
	tol, err := toleranceFlag("linemerge", args)
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context, doc *sketch.Document, _ *Env) error {
		return eachLayer(ctx, doc, func(lines []sketch.Polyline) []sketch.Polyline {
			return mergeLines(lines, tol)
		})
	}, nil
}

func newLineSort(args []string) (Command, error) {
	fs := flag.NewFlagSet("linesort", flag.ContinueOnError)
	noFlip := fs.Bool("no-flip", false, "keep line directions")
	rest, err := parseFlags(fs, args)
	if err != nil {
		return nil, err
	}
	if err := noPositional("linesort", rest); err != nil {
		return nil, err
	}
	return func(ctx context.Context, doc *sketch.Document, _ *Env) error {
		return eachLayer(ctx, doc, func(lines []sketch.Polyline) []sketch.Polyline {
			return sortLines(lines, !*noFlip)
		})
	}, nil
}

func newReloop(args []string) (Command, error) {
	tol, err := toleranceFlag("reloop", args)
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context, doc *sketch.Document, env *Env) error {
		return eachLayer(ctx, doc, func(lines []sketch.Polyline) []sketch.Polyline {
			for i, l := range lines {
				lines[i] = reloop(l, tol, env.Rand.IntN)
			}
			return lines
		})
	}, nil
}

func newLineSimplify(args []string) (Command, error) {
	tol, err := toleranceFlag("linesimplify", args)
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context, doc *sketch.Document, _ *Env) error {
		return eachLayer(ctx, doc, func(lines []sketch.Polyline) []sketch.Polyline {
			for i, l := range lines {
				lines[i] = simplify(l, tol)
			}
			return lines
		})
	}, nil
}

func newMultipass(args []string) (Command, error) {
	fs := flag.NewFlagSet("multipass", flag.ContinueOnError)
	n := fs.Int("n", 2, "number of passes")
	fs.IntVar(n, "count", 2, "number of passes")
	rest, err := parseFlags(fs, args)
	if err != nil {
		return nil, err
	}
	if err := noPositional("multipass", rest); err != nil {
		return nil, err
	}
	if *n < 1 {
		return nil, fmt.Errorf("%w: pass count must be >= 1, got %d", ErrInvalidArgs, *n)
	}
	return func(ctx context.Context, doc *sketch.Document, _ *Env) error {
		return eachLayer(ctx, doc, func(lines []sketch.Polyline) []sketch.Polyline {
			for i, l := range lines {
				lines[i] = multipass(l, *n)
			}
			return lines
		})
	}, nil
}

func newReverse(args []string) (Command, error) {
	fs := flag.NewFlagSet("reverse", flag.ContinueOnError)
	flip := fs.Bool("f", false, "also reverse each line")
	fs.BoolVar(flip, "flip", false, "also reverse each line")
	rest, err := parseFlags(fs, args)
	if err != nil {
		return nil, err
	}
	if err := noPositional("reverse", rest); err != nil {
		return nil, err
	}
	return func(ctx context.Context, doc *sketch.Document, _ *Env) error {
		return eachLayer(ctx, doc, func(lines []sketch.Polyline) []sketch.Polyline {
			out := make([]sketch.Polyline, len(lines))
			for i, l := range lines {
				if *flip {
					l = l.Reversed()
				}
				out[len(lines)-1-i] = l
			}
			return out
		})
	}, nil
}

func newFilter(args []string) (Command, error) {
	fs := flag.NewFlagSet("filter", flag.ContinueOnError)
	minLen := lengthValue(0)
	maxLen := lengthValue(math.Inf(1))
	fs.Var(&minLen, "min-length", "drop lines shorter than this")
	fs.Var(&maxLen, "max-length", "drop lines longer than this")
	closed := fs.Bool("closed", false, "keep only closed lines")
	notClosed := fs.Bool("not-closed", false, "keep only open lines")
	rest, err := parseFlags(fs, args)
	if err != nil {
		return nil, err
	}
	if err := noPositional("filter", rest); err != nil {
		return nil, err
	}
	if *closed && *notClosed {
		return nil, fmt.Errorf("%w: --closed and --not-closed are exclusive", ErrInvalidArgs)
	}
	return func(ctx context.Context, doc *sketch.Document, _ *Env) error {
		return eachLayer(ctx, doc, func(lines []sketch.Polyline) []sketch.Polyline {
			out := lines[:0]
			for _, l := range lines {
				length := l.Length()
				switch {
				case length < float64(minLen), length > float64(maxLen):
				case *closed && !l.IsClosed(), *notClosed && l.IsClosed():
				default:
					out = append(out, l)
				}
			}
			return out
		})
	}, nil
}

func newTranslate(args []string) (Command, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("%w: translate takes dx dy, got %q", ErrInvalidArgs, args)
	}
	dx, err := sketch.ParseLength(args[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgs, err)
	}
	dy, err := sketch.ParseLength(args[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgs, err)
	}
	return func(_ context.Context, doc *sketch.Document, _ *Env) error {
		doc.Translate(dx, dy)
		return nil
	}, nil
}

func newScale(args []string) (Command, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, fmt.Errorf("%w: scale takes sx [sy], got %q", ErrInvalidArgs, args)
	}
	factors := make([]float64, len(args))
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, fmt.Errorf("%w: bad scale factor %q", ErrInvalidArgs, a)
		}
		factors[i] = f
	}
	sx, sy := factors[0], factors[0]
	if len(factors) == 2 {
		sy = factors[1]
	}
	return func(_ context.Context, doc *sketch.Document, _ *Env) error {
		aroundCenter(doc, sketch.ScaleMatrix(sx, sy))
		return nil
	}, nil
}

func newRotate(args []string) (Command, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: rotate takes an angle in degrees, got %q", ErrInvalidArgs, args)
	}
	deg, err := strconv.ParseFloat(args[0], 64)
	if err != nil || math.IsInf(deg, 0) || math.IsNaN(deg) {
		return nil, fmt.Errorf("%w: bad angle %q", ErrInvalidArgs, args[0])
	}
	return func(_ context.Context, doc *sketch.Document, _ *Env) error {
		aroundCenter(doc, sketch.RotateMatrix(deg*math.Pi/180))
		return nil
	}, nil
}

// aroundCenter applies m about the center of the document bounds.
func aroundCenter(doc *sketch.Document, m sketch.Matrix) {
	b, ok := doc.Bounds()
	if !ok {
		return
	}
	cx, cy := (b.LLx+b.URx)/2, (b.LLy+b.URy)/2
	t := sketch.TranslateMatrix(cx, cy).Multiply(m).Multiply(sketch.TranslateMatrix(-cx, -cy))
	for _, l := range doc.Layers {
		for _, line := range l.Lines {
			for i, p := range line {
				line[i] = t.TransformPoint(p)
			}
		}
	}
}
