// Package registry provides the process-wide mapping of store name to
// store handle, per spec.md §4.5. It is the sole indirection between
// callers and store handles — callers never see raw table names, and
// algorithms never carry a hidden global store reference (spec.md §9's
// "algorithm context via hidden global state" re-architecture: every
// caller resolves a handle explicitly through this registry and threads
// it as a parameter from there on).
package registry

import (
	"fmt"
	"sort"
	"sync"
)

// Handle is the minimal surface the registry needs from a store
// implementation: enough to register/unregister and to report its
// adapter kind for introspection. The concrete *memory.Store satisfies
// this implicitly.
type Handle interface {
	Name() string
	AdapterKind() string
	Close()
}

// entry pairs a handle with its adapter kind, cached separately in case a
// future adapter kind needs to be known before the handle finishes
// constructing itself.
type entry struct {
	handle  Handle
	adapter string
}

// Registry is a concurrency-safe store_name -> handle map.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// New creates an empty registry. Most processes want the package-level
// Default registry instead; New exists for tests that need isolation.
func New() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds a handle under name. It fails if name is already taken by
// a live handle — callers must Unregister (via store Stop) first.
func (r *Registry) Register(name string, h Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("registry: store %q already registered", name)
	}
	r.entries[name] = entry{handle: h, adapter: h.AdapterKind()}
	return nil
}

// Unregister removes name. It does not close the handle itself — callers
// close the handle before or after calling Unregister; order doesn't
// matter since the registry only holds a reference.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, name)
}

// Lookup resolves name to its handle and adapter kind.
func (r *Registry) Lookup(name string) (Handle, string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	if !ok {
		return nil, "", false
	}
	return e.handle, e.adapter, true
}

// Names returns all currently registered store names, sorted, for
// introspection (status commands, diagnostics).
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for n := range r.entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Default is the process-wide registry used by the public facade (see
// graphstore.go) unless a caller explicitly constructs its own.
var Default = New()
