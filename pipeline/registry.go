package pipeline

import (
	"context"
	"fmt"
	"maps"
	"math/rand/v2"
	"slices"
	"sync"

	"golang.org/x/text/cases"

	"github.com/gogpu/sketch"
)

// Env is shared by the commands of a single Run.
type Env struct {
	// Rand is seeded from the Runner, so commands that randomize are
	// reproducible.
	Rand *rand.Rand
}

// Command transforms a document in place.
type Command func(ctx context.Context, doc *sketch.Document, env *Env) error

// Factory parses the arguments of one command occurrence.
type Factory func(args []string) (Command, error)

// Registry state - protected by mutex for thread-safe access.
var (
	registryMu sync.RWMutex
	commands   = make(map[string]Factory)
)

// Register registers a command factory under name. Names are matched
// without regard to case.
//
// Register panics if factory is nil or the name is already registered.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("pipeline: Register factory is nil")
	}
	key := fold(name)
	if _, dup := commands[key]; dup {
		panic("pipeline: Register called twice for " + name)
	}
	commands[key] = factory
}

// Unregister removes a command. It is a no-op for unknown names.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(commands, fold(name))
}

// Commands returns the registered command names in sorted order.
func Commands() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return slices.Sorted(maps.Keys(commands))
}

// IsRegistered reports whether name is a registered command.
func IsRegistered(name string) bool {
	_, ok := lookup(name)
	return ok
}

func lookup(name string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := commands[fold(name)]
	return f, ok
}

func newCommand(name string, args []string) (Command, error) {
	f, ok := lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownCommand, name)
	}
	return f(args)
}

func fold(s string) string {
	return cases.Fold().String(s)
}
