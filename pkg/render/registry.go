package render

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry stores implementations by their Name(), guarding against
// duplicates. It is safe for concurrent use.
type Registry[T Named] struct {
	mu      sync.RWMutex
	entries map[string]T
}

// NewRegistry creates an empty registry.
func NewRegistry[T Named]() *Registry[T] {
	return &Registry[T]{
		entries: make(map[string]T),
	}
}

// Register adds an entry by name. Duplicate or empty names return an error.
func (r *Registry[T]) Register(entry T) error {
	if any(entry) == nil {
		return fmt.Errorf("render: entry is required")
	}
	name := strings.TrimSpace(entry.Name())
	if name == "" {
		return fmt.Errorf("render: name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("render: %q already registered", name)
	}
	r.entries[name] = entry
	return nil
}

// Get retrieves an entry by name.
func (r *Registry[T]) Get(name string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[name]
	if !ok {
		var zero T
		return zero, fmt.Errorf("render: %q not found", name)
	}
	return entry, nil
}

// List returns the registered names sorted.
func (r *Registry[T]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
