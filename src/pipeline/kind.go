package pipeline

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sofmeright/pipewright/src/config"
)

// Unit is one independently executed piece of a job. Non-matrix jobs plan a
// single unit; matrix jobs plan one per cell; the integration kind plans one
// per smoke invocation.
type Unit struct {
	Job      string
	Cell     string
	Advisory bool

	// Command is the external tool invocation (argv form).
	Command []string

	// InProcess replaces Command for kinds implemented natively (secrets).
	// Returns captured output and whether the check passed.
	InProcess func(ctx context.Context, rootDir string) (output string, ok bool, err error)
}

// Kind is the interface every built-in job kind implements. A kind supplies
// default gating and expands a manifest entry into execution units.
type Kind interface {
	Name() string
	Advisory() bool
	Units(tools config.ToolsConfig, matrix config.MatrixSpec) ([]Unit, error)
}

var (
	registryMu sync.RWMutex
	registry   = map[string]func() Kind{}
)

// Register adds a kind constructor to the global registry.
// Called from init() in each kind file.
func Register(name string, constructor func() Kind) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("pipeline: duplicate kind registration: %s", name))
	}
	registry[name] = constructor
}

// Get returns a new instance of the named kind.
func Get(name string) (Kind, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("pipeline: unknown kind: %s", name)
	}
	return ctor(), nil
}

// All returns sorted names of all registered kinds.
func All() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
