package sketch

import (
	"errors"
	"fmt"
)

// Sentinel errors for the sketch package.
var (
	// ErrInvalidArgument is matched by every *ArgumentError.
	ErrInvalidArgument = errors.New("sketch: invalid argument")

	// ErrUnbalancedStack is matched by *UnbalancedStackError.
	ErrUnbalancedStack = errors.New("sketch: pop without matching push")

	// ErrNoPipeline is returned by Vpype when no pipeline is configured.
	ErrNoPipeline = errors.New("sketch: no pipeline configured")

	// ErrUnknownFormat is returned by Save for unsupported file extensions.
	ErrUnknownFormat = errors.New("sketch: unknown output format")

	// ErrUnknownUnit is returned when parsing an unrecognized length unit.
	ErrUnknownUnit = errors.New("sketch: unknown unit")

	// ErrUnknownPageSize is returned when parsing an unrecognized page size.
	ErrUnknownPageSize = errors.New("sketch: unknown page size")
)

// ArgumentError reports a malformed argument to a drawing call, such as a
// negative radius or a non-finite coordinate.
type ArgumentError struct {
	Op     string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("sketch: %s: %s", e.Op, e.Reason)
}

// Is reports whether target is ErrInvalidArgument.
func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func argError(op, format string, args ...any) error {
	return &ArgumentError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

// UnbalancedStackError is returned by Pop when the transform stack is empty.
type UnbalancedStackError struct {
	Op string
}

func (e *UnbalancedStackError) Error() string {
	return fmt.Sprintf("sketch: %s: transform stack is empty", e.Op)
}

// Is reports whether target is ErrUnbalancedStack.
func (e *UnbalancedStackError) Is(target error) bool {
	return target == ErrUnbalancedStack
}

// PipelineError wraps a failure of the geometry pipeline. The sketch's
// layers are unchanged when it is returned.
type PipelineError struct {
	Spec string
	Err  error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("sketch: pipeline %q: %v", e.Spec, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Diagnostic records geometry that was dropped instead of drawn.
type Diagnostic struct {
	Op     string
	Reason string
}

func (d Diagnostic) String() string {
	return d.Op + ": " + d.Reason
}
