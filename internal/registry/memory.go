package registry

import (
	"context"
	"fmt"
	"maps"
	"sync"
)

// MemoryRegistry implements Registry using in-memory storage
type MemoryRegistry struct {
	mu       sync.RWMutex
	bindings map[string]string
}

// NewMemoryRegistry creates a new in-memory registry
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		bindings: make(map[string]string),
	}
}

// Bind binds name to addr, replacing any previous binding
func (m *MemoryRegistry) Bind(ctx context.Context, name, addr string) error {
	if err := validateBinding(name, addr); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.bindings[name] = addr
	return nil
}

// Lookup returns the address bound to name
func (m *MemoryRegistry) Lookup(ctx context.Context, name string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	addr, ok := m.bindings[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNameNotFound, name)
	}
	return addr, nil
}

// Unbind removes the binding for name
func (m *MemoryRegistry) Unbind(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.bindings[name]; !ok {
		return fmt.Errorf("%w: %s", ErrNameNotFound, name)
	}
	delete(m.bindings, name)
	return nil
}

// List returns a copy of all bindings
func (m *MemoryRegistry) List(ctx context.Context) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return maps.Clone(m.bindings), nil
}
