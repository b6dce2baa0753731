// Package registry holds named factories for child nodes, so manifests
// and other declarative surfaces can reference validators and
// transformers by name.
package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/marcusfrdk/clix"
	"github.com/marcusfrdk/clix/internal/humanize"
)

// Factory builds one child node from its declarative arguments.
type Factory func(args Args) (clix.Child, error)

// Module is the interface child-node packages implement to contribute
// their factories to a registry.
type Module interface {
	Register(r *Registry)
}

// Registry maps child names to factories for a single application
// instance.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under the given name. Registering the same
// name twice is a programming error and panics.
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[name]; exists {
		panic(fmt.Sprintf("child factory with name '%s' already registered", name))
	}
	slog.Debug("Registering child factory.", "name", name)
	r.factories[name] = factory
}

// Install lets each module contribute its factories.
func (r *Registry) Install(modules ...Module) {
	for _, m := range modules {
		m.Register(r)
	}
}

// New builds a child from a registered factory.
func (r *Registry) New(name string, args Args) (clix.Child, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown child %q (known: %s)", name, humanize.List(r.Names()))
	}
	return factory(args)
}

// Names returns the registered factory names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
