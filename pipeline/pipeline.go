package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/gogpu/sketch"
)

var (
	// ErrUnknownCommand is returned for spec tokens that should start a
	// command but name no registered one.
	ErrUnknownCommand = errors.New("pipeline: unknown command")

	// ErrInvalidArgs is returned when a command cannot parse its arguments.
	ErrInvalidArgs = errors.New("pipeline: invalid arguments")
)

// pcgStream is the PCG increment paired with the runner seed.
const pcgStream = 0x9e3779b97f4a7c15

// Step is one parsed command of a spec.
type Step struct {
	Name string
	Args []string
	cmd  Command
}

// Parse splits spec into steps and validates every command's arguments.
func Parse(spec string) ([]Step, error) {
	var steps []Step
	for _, tok := range strings.Fields(spec) {
		if IsRegistered(tok) {
			steps = append(steps, Step{Name: fold(tok)})
			continue
		}
		if len(steps) == 0 {
			return nil, fmt.Errorf("%w %q", ErrUnknownCommand, tok)
		}
		last := &steps[len(steps)-1]
		last.Args = append(last.Args, tok)
	}
	for i := range steps {
		cmd, err := newCommand(steps[i].Name, steps[i].Args)
		if err != nil {
			return nil, fmt.Errorf("pipeline: %s: %w", steps[i].Name, err)
		}
		steps[i].cmd = cmd
	}
	return steps, nil
}

// Runner executes pipeline specs. It implements sketch.Pipeline.
// A Runner is safe for concurrent use.
type Runner struct {
	seed uint64
}

var _ sketch.Pipeline = (*Runner)(nil)

// Option configures a Runner.
type Option func(*Runner)

// WithSeed seeds the randomness used by commands such as reloop.
func WithSeed(seed uint64) Option {
	return func(r *Runner) {
		r.seed = seed
	}
}

// New creates a Runner. Without WithSeed the seed is 0.
func New(opts ...Option) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run parses spec and applies its commands in order to a copy of doc.
// doc itself is never modified. The whole spec is validated before any
// command runs.
func (r *Runner) Run(ctx context.Context, spec string, doc *sketch.Document) (*sketch.Document, error) {
	if doc == nil {
		return nil, errors.New("pipeline: nil document")
	}
	steps, err := Parse(spec)
	if err != nil {
		return nil, err
	}
	out := doc.Clone()
	env := &Env{Rand: rand.New(rand.NewPCG(r.seed, pcgStream))}
	for _, st := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sketch.Logger().Debug("pipeline: command", "name", st.Name, "args", st.Args, "lines", out.LineCount())
		if err := st.cmd(ctx, out, env); err != nil {
			return nil, fmt.Errorf("pipeline: %s: %w", st.Name, err)
		}
	}
	return out, nil
}
