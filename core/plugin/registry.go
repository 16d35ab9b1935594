package plugin

import (
	"fmt"
	"sync"
)

// Registry keeps the factories of every category in registration order.
// Safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[Category][]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[Category][]Factory)}
}

// Register adds f to category. Registering a name twice is an error.
func (r *Registry) Register(category Category, f Factory) error {
	if f == nil || IsNull(f) {
		return ErrInvalidFactory
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.factories[category] {
		if existing.Match(f.Name()) {
			return fmt.Errorf("%w: %s/%s", ErrDuplicateFactory, category, f.Name())
		}
	}
	r.factories[category] = append(r.factories[category], f)
	return nil
}

// Select returns the first factory of category that matches name, or the
// Null factory of that category.
func (r *Registry) Select(category Category, name string) Factory {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, f := range r.factories[category] {
		if f.Match(name) {
			return f
		}
	}
	return Null(category)
}

// Factories lists the factories of category.
func (r *Registry) Factories(category Category) []Factory {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Factory, len(r.factories[category]))
	copy(out, r.factories[category])
	return out
}
