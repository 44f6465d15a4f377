package sketch

import (
	"errors"
	"fmt"
	"testing"
)

func TestArgumentErrorIs(t *testing.T) {
	err := argError("Circle", "negative radius %v", -1.0)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("errors.Is(%v, ErrInvalidArgument) = false", err)
	}
	wrapped := fmt.Errorf("draw: %w", err)
	var ae *ArgumentError
	if !errors.As(wrapped, &ae) || ae.Op != "Circle" {
		t.Errorf("errors.As did not find ArgumentError in %v", wrapped)
	}
	if got, want := err.Error(), "sketch: Circle: negative radius -1"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestUnbalancedStackErrorIs(t *testing.T) {
	var err error = &UnbalancedStackError{Op: "Pop"}
	if !errors.Is(err, ErrUnbalancedStack) {
		t.Error("UnbalancedStackError should match ErrUnbalancedStack")
	}
	if errors.Is(err, ErrInvalidArgument) {
		t.Error("UnbalancedStackError should not match ErrInvalidArgument")
	}
}

func TestPipelineErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &PipelineError{Spec: "linemerge", Err: inner}
	if !errors.Is(err, inner) {
		t.Error("PipelineError should unwrap to its cause")
	}
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{Op: "Line", Reason: "fewer than 2 distinct points"}
	if got, want := d.String(), "Line: fewer than 2 distinct points"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
