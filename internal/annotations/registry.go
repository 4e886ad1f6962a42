package annotations

import (
	"sort"
	"sync"
)

// Constructor builds one fresh annotation instance for a directive
// occurrence
type Constructor func() Annotation

// Registry maps directive identifiers to annotation constructors. It is
// populated once during startup and read-only afterwards; tests construct
// isolated registries instead of sharing the process-wide one.
type Registry struct {
	mu    sync.RWMutex
	kinds map[string]Constructor
}

// NewRegistry creates an empty, isolated registry
func NewRegistry() *Registry {
	return &Registry{kinds: make(map[string]Constructor)}
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide registry. The host must finish
// registering kinds before any parsing begins; reads are unsynchronized
// beyond that one-shot barrier.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Register inserts the constructor under its kind's canonical name (the
// directive identifier; the implementing Go type carries the "Annotation"
// suffix). Re-registering a name overwrites the previous entry, which keeps
// startup registration idempotent.
func (r *Registry) Register(ctor Constructor) {
	name := ctor().Name()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds[name] = ctor
}

// Lookup resolves a directive identifier to its constructor. An
// unregistered identifier is an UnknownAnnotationError naming it.
func (r *Registry) Lookup(name string) (Constructor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctor, ok := r.kinds[name]
	if !ok {
		return nil, &UnknownAnnotationError{Name: name}
	}
	return ctor, nil
}

// Names returns the registered identifiers, sorted
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.kinds))
	for name := range r.kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
