// Package command provides command registration and lookup for slashline.
// It manages the registry of slash commands together with their handlers,
// help text and argument specifications.
package command

import (
	"fmt"
	"strings"
	"sync"

	"slashline/pkg/slashtypes"
)

// Entry holds one registered command: its handler, help text and the ordered
// argument specifications that drive both parsing and completion.
type Entry struct {
	Name    string
	Help    string
	Specs   []slashtypes.ArgSpec
	Handler slashtypes.Handler
}

// Spec returns the argument spec with the given name, if declared.
func (e *Entry) Spec(name string) (slashtypes.ArgSpec, bool) {
	for _, s := range e.Specs {
		if s.Name == name {
			return s, true
		}
	}
	return slashtypes.ArgSpec{}, false
}

// Registry manages command registration and lookup. Registration order is
// preserved for help listing and command-name completion. The registry is
// populated during application setup and read-only afterwards, but access is
// guarded for safety.
type Registry struct {
	mu      sync.RWMutex
	order   []string
	entries map[string]*Entry
}

// NewRegistry creates a new empty command registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*Entry),
	}
}

// Register adds a command to the registry. The name must carry a leading
// slash and be unique; argument names must be unique within the command and
// defaults must convert under their declared type. Specs are reordered to
// required-before-optional, preserving declaration order within each group,
// so positional matching stays well defined.
func (r *Registry) Register(name, help string, specs []slashtypes.ArgSpec, handler slashtypes.Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if !strings.HasPrefix(name, "/") {
		return fmt.Errorf("command %s must start with '/'", name)
	}
	if handler == nil {
		return fmt.Errorf("command %s has no handler", name)
	}
	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("command %s already registered", name)
	}

	seen := make(map[string]bool, len(specs))
	for _, s := range specs {
		if s.Name == "" {
			return fmt.Errorf("command %s has an unnamed argument", name)
		}
		if seen[s.Name] {
			return fmt.Errorf("command %s declares argument %s twice", name, s.Name)
		}
		seen[s.Name] = true
		if s.HasDefault && !s.Repeat {
			if _, err := slashtypes.Convert(s.Type, s.Default); err != nil {
				return fmt.Errorf("command %s argument %s: default %w", name, s.Name, err)
			}
		}
	}

	r.entries[name] = &Entry{
		Name:    name,
		Help:    help,
		Specs:   normalizeSpecs(specs),
		Handler: handler,
	}
	r.order = append(r.order, name)
	return nil
}

// Resolve retrieves a command entry by name. Returns the entry and true if
// found, or nil and false otherwise.
func (r *Registry) Resolve(name string) (*Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, exists := r.entries[name]
	return entry, exists
}

// Entries returns all registered commands in registration order.
func (r *Registry) Entries() []*Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]*Entry, 0, len(r.order))
	for _, name := range r.order {
		entries = append(entries, r.entries[name])
	}
	return entries
}

// Names returns all registered command names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// IsValidCommand checks if a command exists in the registry.
func (r *Registry) IsValidCommand(name string) bool {
	_, exists := r.Resolve(name)
	return exists
}

// normalizeSpecs orders required specs before optional ones, keeping
// declaration order within each group.
func normalizeSpecs(specs []slashtypes.ArgSpec) []slashtypes.ArgSpec {
	ordered := make([]slashtypes.ArgSpec, 0, len(specs))
	for _, s := range specs {
		if s.Required() {
			ordered = append(ordered, s)
		}
	}
	for _, s := range specs {
		if !s.Required() {
			ordered = append(ordered, s)
		}
	}
	return ordered
}
