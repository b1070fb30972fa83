package cmd

import (
	"sort"
	"sync"
)

// DefaultRegistry is the process-wide registry filled by command packages' init().
var DefaultRegistry = NewRegistry()

// Registry stores commands by name and remembers registration order. It does
// not dispatch; adapters look commands up and invoke them with their own context.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
	order    []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds a command. Registering a name twice replaces the earlier
// command but keeps its original position.
func (r *Registry) Register(c Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.commands[c.Name()]; !exists {
		r.order = append(r.order, c.Name())
	}
	r.commands[c.Name()] = c
}

// Get returns the command with the given name, or nil.
func (r *Registry) Get(name string) Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.commands[name]
}

// GetAll returns all registered commands, sorted by name.
func (r *Registry) GetAll() []Command {
	list := r.Ordered()
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name() < list[j].Name()
	})
	return list
}

// Ordered returns all registered commands in registration order.
func (r *Registry) Ordered() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]Command, 0, len(r.order))
	for _, name := range r.order {
		list = append(list, r.commands[name])
	}
	return list
}

// Len reports how many commands are registered.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
