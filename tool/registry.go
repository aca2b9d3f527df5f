package tool

import (
	"sync"

	"github.com/lumos-data/lumos/logging"
)

// Registry is a catalog of tools keyed by name. Registration is expected to
// happen once at startup; reads dominate afterwards. All methods are safe
// for concurrent use.
//
// Core logic takes an explicit *Registry so it stays testable; Default()
// exists as a convenience for simple embeddings.
type Registry struct {
	mu     sync.RWMutex
	tools  map[string]Tool
	logger logging.Logger
}

// NewRegistry constructs an empty registry.
func NewRegistry(optFns ...func(o *RegistryOptions)) *Registry {
	opts := RegistryOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Registry{
		tools:  make(map[string]Tool),
		logger: logging.OrNoOp(opts.Logger),
	}
}

// RegistryOptions configures a Registry.
type RegistryOptions struct {
	Logger logging.Logger
}

// Register inserts a tool, overwriting any existing tool with the same name.
// Last write wins; the schema is accepted as-is.
func (r *Registry) Register(t Tool) {
	r.mu.Lock()
	r.tools[t.Name()] = t
	r.mu.Unlock()
	r.logger.Info("tool.registered", "tool", t.Name())
}

// Get returns the tool registered under name, or false when absent.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// List returns all registered tools. Callers must not depend on the order.
func (r *Registry) List() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t)
	}
	return out
}

// Resolve returns the subset of tools matching the given names, in the order
// given. Names not present in the registry are silently dropped.
func (r *Registry) Resolve(names ...string) []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Tool, 0, len(names))
	for _, name := range names {
		if t, ok := r.tools[name]; ok {
			out = append(out, t)
		}
	}
	return out
}

// Unregister removes the tool registered under name, if any.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	_, existed := r.tools[name]
	delete(r.tools, name)
	r.mu.Unlock()
	if existed {
		r.logger.Info("tool.unregistered", "tool", name)
	}
}

// Clear removes all registered tools.
func (r *Registry) Clear() {
	r.mu.Lock()
	r.tools = make(map[string]Tool)
	r.mu.Unlock()
	r.logger.Info("tool.registry.cleared")
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry. Prefer passing an explicit
// *Registry; this exists for simple embeddings.
func Default() *Registry { return defaultRegistry }
