package utils

import (
	"sync"
)

// Registry provides a generic, thread-safe registry that remembers insertion order.
// Re-registering a key replaces its value but keeps its original position.
type Registry[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
	order []K
}

// NewRegistry creates a new generic registry
func NewRegistry[K comparable, V any]() *Registry[K, V] {
	return &Registry[K, V]{
		items: make(map[K]V),
	}
}

// Register adds an item to the registry. When the key was already present it returns
// the value it replaced.
func (r *Registry[K, V]) Register(key K, value V) (previous V, replaced bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	previous, replaced = r.items[key]
	if !replaced {
		r.order = append(r.order, key)
	}
	r.items[key] = value
	return previous, replaced
}

// Get retrieves an item from the registry
func (r *Registry[K, V]) Get(key K) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, exists := r.items[key]
	return value, exists
}

// List returns all keys in insertion order
func (r *Registry[K, V]) List() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]K, len(r.order))
	copy(keys, r.order)
	return keys
}

// Values returns all values in key insertion order
func (r *Registry[K, V]) Values() []V {
	r.mu.RLock()
	defer r.mu.RUnlock()

	values := make([]V, 0, len(r.order))
	for _, key := range r.order {
		values = append(values, r.items[key])
	}
	return values
}

// Size returns the number of items in the registry
func (r *Registry[K, V]) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}
