package rules

import "sync"

// ScriptFunc is a native callback referenced from a node payload by opaque
// id. The consumer that applies the result decides when to invoke it.
type ScriptFunc func(ctx *Context, targets []string) error

// ScriptRegistry maps opaque ids to native callbacks. It is the single
// deliberate dynamic-dispatch seam in the engine: payloads reference hooks
// the evaluator has no compile-time knowledge of. Writes are expected during
// the content-registration phase, before any gameplay evaluation.
type ScriptRegistry struct {
	mu  sync.RWMutex
	fns map[string]ScriptFunc
}

func NewScriptRegistry() *ScriptRegistry {
	return &ScriptRegistry{fns: make(map[string]ScriptFunc)}
}

// Register binds id to fn, replacing any previous binding.
func (r *ScriptRegistry) Register(id string, fn ScriptFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fns[id] = fn
}

// Get returns the callback bound to id, if any.
func (r *ScriptRegistry) Get(id string) (ScriptFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.fns[id]
	return fn, ok
}

// Clear removes all bindings. Intended for teardown between isolated test runs.
func (r *ScriptRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fns = make(map[string]ScriptFunc)
}

// scripts is the process-wide registry consulted by Evaluate for payload
// scriptId lookup. Populate it during content registration.
var scripts = NewScriptRegistry()

// Scripts returns the process-wide script registry.
func Scripts() *ScriptRegistry { return scripts }
