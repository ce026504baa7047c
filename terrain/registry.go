// Package terrain resolves terrain keys to definitions and reacts to tile
// events by evaluating a tile's reaction rule set.
package terrain

import (
	"sync"

	"github.com/mkrall/riposte/rules"
)

// Definition describes one terrain kind. Only Reactions is read by the
// reaction adapter; the remaining fields serve the wider runtime.
type Definition struct {
	Key       string
	Name      string
	Passable  bool
	Reactions []*rules.EffectNode
}

// Registry maps terrain keys to definitions. Registration happens at
// content-load time, before gameplay.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]*Definition
}

func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Definition)}
}

// Register adds or replaces a definition under its key.
func (r *Registry) Register(def *Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs[def.Key] = def
}

// Get returns the definition for key, if registered.
func (r *Registry) Get(key string) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[key]
	return def, ok
}

// Reactions returns the reaction rule set for key, or nil when the terrain
// is unregistered or declares none.
func (r *Registry) Reactions(key string) []*rules.EffectNode {
	def, ok := r.Get(key)
	if !ok {
		return nil
	}
	return def.Reactions
}
