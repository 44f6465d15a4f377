package pipeline

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/sketch"
)

func nopFactory(args []string) (Command, error) {
	return func(context.Context, *sketch.Document, *Env) error { return nil }, nil
}

func TestBuiltinsRegistered(t *testing.T) {
	for _, name := range []string{
		"linemerge", "linesort", "reloop", "linesimplify", "multipass",
		"reverse", "filter", "translate", "scale", "rotate",
	} {
		if !IsRegistered(name) {
			t.Errorf("%s is not registered", name)
		}
	}
	if !IsRegistered("LineMerge") {
		t.Error("lookup is case sensitive")
	}
	names := Commands()
	if !slices.IsSorted(names) {
		t.Errorf("Commands() not sorted: %v", names)
	}
}

func TestRegisterAndUnregister(t *testing.T) {
	Register("test-nop", nopFactory)
	t.Cleanup(func() { Unregister("test-nop") })

	if !slices.Contains(Commands(), "test-nop") {
		t.Fatal("registered command missing from Commands()")
	}
	if _, err := Parse("test-nop"); err != nil {
		t.Errorf("Parse(test-nop) error = %v", err)
	}
	Unregister("test-nop")
	if IsRegistered("test-nop") {
		t.Error("Unregister did not remove the command")
	}
	Unregister("never-registered")
}

func TestRegisterNilFactory(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Register(nil) did not panic")
		}
	}()
	Register("test-nil", nil)
}

func TestRegisterDuplicate(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register did not panic")
		}
	}()
	Register("LINESORT", nopFactory)
}

func TestNewCommandUnknown(t *testing.T) {
	if _, err := newCommand("warp", nil); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("newCommand(warp) error = %v, want ErrUnknownCommand", err)
	}
}
