package schema

import (
	"fmt"
	"sync"
)

// Registry maps preference domains to manifests. It is safe for
// concurrent use.
type Registry struct {
	mu        sync.RWMutex
	manifests map[string]*Manifest
}

func NewRegistry() *Registry {
	return &Registry{manifests: make(map[string]*Manifest)}
}

// Register adds m to the registry.
func (r *Registry) Register(m *Manifest) error {
	if m == nil {
		return fmt.Errorf("cannot register nil manifest")
	}
	if m.Domain == "" {
		return fmt.Errorf("manifest must have a domain")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.manifests[m.Domain]; exists {
		return fmt.Errorf("manifest %q already registered", m.Domain)
	}

	r.manifests[m.Domain] = m
	return nil
}

// Manifest looks up a manifest by domain.
func (r *Registry) Manifest(domain string) *Manifest {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.manifests[domain]
}

// All returns all registered manifests.
func (r *Registry) All() map[string]*Manifest {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]*Manifest, len(r.manifests))
	for k, v := range r.manifests {
		result[k] = v
	}
	return result
}

func (r *Registry) Lookup(domain string, keyPath []string) (*Constraint, bool) {
	m := r.Manifest(domain)
	if m == nil {
		return nil, false
	}
	return m.Constraint(keyPath)
}

var global = NewRegistry()

// Register registers a manifest in the global registry.
func Register(m *Manifest) error {
	return global.Register(m)
}

// Lookup looks up a manifest in the global registry.
func Lookup(domain string) *Manifest {
	return global.Manifest(domain)
}

// All returns all manifests in the global registry.
func All() map[string]*Manifest {
	return global.All()
}

// Global returns the global registry as a Source.
func Global() *Registry {
	return global
}
