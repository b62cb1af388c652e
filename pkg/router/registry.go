package router

import (
	"net/http"
	"sort"
	"sync"
)

// Registry maps unit identifiers to loaded views.
//
// Generated routes_gen.go files register every view at init time; views can
// also be registered by hand. A registered module is returned as the same
// Unit on every Load, so repeated discovery is idempotent.
type Registry struct {
	mu    sync.RWMutex
	units map[string]*Unit[http.Handler]
}

// DefaultRegistry is the registry used by the package-level Register.
var DefaultRegistry = NewRegistry()

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		units: make(map[string]*Unit[http.Handler]),
	}
}

// Register exposes view as the unit for module (e.g., "colors/add").
// A nil view unregisters the module. Registering a module twice replaces
// the earlier view.
func (r *Registry) Register(module string, view http.Handler, opts ...UnitOption) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if view == nil {
		delete(r.units, module)
		return
	}
	r.units[module] = &Unit[http.Handler]{
		View:     view,
		Override: NewOverride(opts...),
	}
}

// Load implements Loader. Unregistered modules have no view.
func (r *Registry) Load(c Candidate) (*Unit[http.Handler], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.units[c.Module], nil
}

// Modules returns the registered module identifiers, sorted.
func (r *Registry) Modules() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	modules := make([]string, 0, len(r.units))
	for m := range r.units {
		modules = append(modules, m)
	}
	sort.Strings(modules)
	return modules
}

// Register adds a view to DefaultRegistry.
func Register(module string, view http.Handler, opts ...UnitOption) {
	DefaultRegistry.Register(module, view, opts...)
}
