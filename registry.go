// File: confumo/registry.go
package confumo

import (
	"fmt"
	"sync"
)

// Registry manages one Config instance per concrete identity. Distinct
// identities (typically one per embedding application or component) get
// distinct singleton slots. All operations serialize the check-then-create
// sequence, so concurrent callers cannot construct duplicates.
type Registry struct {
	mu        sync.Mutex
	instances map[string]*Config
	promoted  map[string]map[string]any
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		instances: make(map[string]*Config),
		promoted:  make(map[string]map[string]any),
	}
}

// Instance returns the singleton for identity, constructing it with build
// on first call. Subsequent calls return the stored instance and ignore
// the new builder entirely — matching the historical get_instance
// contract. Use Reset when a rebuild with fresh arguments is required.
func (r *Registry) Instance(identity string, build *Builder) (*Config, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cfg, ok := r.instances[identity]; ok {
		return cfg, nil
	}

	if build == nil {
		return nil, fmt.Errorf("%w: %s (nil builder)", ErrNoInstance, identity)
	}

	cfg, err := build.Build()
	if err != nil {
		return nil, err
	}

	r.instances[identity] = cfg
	return cfg, nil
}

// Lookup returns the stored instance for identity without constructing.
func (r *Registry) Lookup(identity string) (*Config, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cfg, ok := r.instances[identity]
	return cfg, ok
}

// Reset clears the stored instance and any promoted namespace for
// identity. The next Instance call reconstructs from scratch. Intended as
// the escape hatch for test isolation.
func (r *Registry) Reset(identity string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.instances, identity)
	delete(r.promoted, identity)
}

// ResetAll clears every stored instance and promoted namespace.
func (r *Registry) ResetAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.instances = make(map[string]*Config)
	r.promoted = make(map[string]map[string]any)
}

// Promote snapshots the identity's instance attributes into a shared
// namespace for ambient access. The snapshot is a deep copy taken now;
// later mutation of the instance does not update the namespace until
// Promote is called again.
func (r *Registry) Promote(identity string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cfg, ok := r.instances[identity]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoInstance, identity)
	}

	r.promoted[identity] = cfg.Snapshot()
	return nil
}

// Promoted returns a deep copy of the promoted namespace for identity.
func (r *Registry) Promoted(identity string) (map[string]any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ns, ok := r.promoted[identity]
	if !ok {
		return nil, false
	}
	return deepCopyMap(ns), true
}

// PromotedValue returns a single promoted attribute for identity.
func (r *Registry) PromotedValue(identity, key string) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ns, ok := r.promoted[identity]
	if !ok {
		return nil, false
	}
	v, ok := ns[normalizeKey(key)]
	return deepCopyValue(v), ok
}

// Default registry instance and initialization guard.
var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default returns the process-wide registry, creating it on first call.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// GetInstance returns the singleton for identity from the default
// registry, constructing it with build on first call.
func GetInstance(identity string, build *Builder) (*Config, error) {
	return Default().Instance(identity, build)
}

// ResetInstance clears identity's slot in the default registry.
func ResetInstance(identity string) {
	Default().Reset(identity)
}
