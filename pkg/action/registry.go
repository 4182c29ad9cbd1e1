package action

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores action definitions keyed by registered name.
// It owns its state and provides clear input->output transformations.
type Registry struct {
	mu      sync.RWMutex
	actions map[string]*Definition
}

// NewRegistry creates a new action registry that owns its state
func NewRegistry() *Registry {
	return &Registry{
		actions: make(map[string]*Definition),
	}
}

// Register adds an action definition (write operation)
func (r *Registry) Register(def *Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}

	name := def.RegisteredName()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.actions[name]; exists {
		return fmt.Errorf("%w: %s", ErrExists, name)
	}

	// Store a copy to prevent external mutations
	defCopy := *def
	defCopy.Command = append([]string(nil), def.Command...)
	r.actions[name] = &defCopy

	return nil
}

// Deregister removes an action by registered name (write operation)
func (r *Registry) Deregister(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidDefinition)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.actions[name]; !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	delete(r.actions, name)
	return nil
}

// Get retrieves an action by registered name (read operation)
func (r *Registry) Get(name string) (*Definition, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidDefinition)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	def, exists := r.actions[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	// Return a copy to prevent external mutations
	defCopy := *def
	defCopy.Command = append([]string(nil), def.Command...)
	return &defCopy, nil
}

// List returns all registered actions sorted by name (read operation)
func (r *Registry) List() ([]*Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	actions := make([]*Definition, 0, len(r.actions))
	for _, def := range r.actions {
		defCopy := *def
		defCopy.Command = append([]string(nil), def.Command...)
		actions = append(actions, &defCopy)
	}

	sort.Slice(actions, func(i, j int) bool {
		return actions[i].RegisteredName() < actions[j].RegisteredName()
	})

	return actions, nil
}

// Exists checks if an action is registered (read operation)
func (r *Registry) Exists(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.actions[name]
	return exists
}

// Count returns the number of registered actions
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.actions)
}
