// Package pipeline post-processes sketch documents with a small command
// language, in the spirit of plotter line optimizers.
//
// A pipeline spec is a whitespace separated list of commands, each followed
// by its arguments:
//
//	linemerge -t 0.1mm linesimplify reloop linesort
//
// Every registered command name starts a new command; the tokens up to the
// next command name are its arguments. Lengths accept unit suffixes such as
// "mm" or "in" and default to pixels.
//
// # Usage
//
// A Runner implements sketch.Pipeline:
//
//	s := sketch.New(sketch.WithPipeline(pipeline.New(pipeline.WithSeed(1))))
//	// draw ...
//	if err := s.Vpype(ctx, "linemerge linesort"); err != nil {
//	    // the sketch is unchanged
//	}
//
// # Built-in Commands
//
//   - linemerge [-t tol]: join lines whose end points are within tol
//   - linesort [--no-flip]: reorder lines to shorten pen-up travel
//   - reloop [-t tol]: start closed lines at a random vertex
//   - linesimplify [-t tol]: drop vertices closer than tol to the line
//   - multipass [-n count]: trace every line count times
//   - reverse [-f]: reverse line order, and with -f line direction
//   - filter [--min-length L] [--max-length L] [--closed] [--not-closed]
//   - translate dx dy, scale sx [sy], rotate deg
//
// Further commands can be added with Register, following the
// database/sql driver pattern.
package pipeline
