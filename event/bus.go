// Package event carries combat notifications between the battle runtime and
// the rule-engine consumers. Delivery is synchronous and in-process: a
// publish returns only after every subscribed handler has run.
package event

import "sync"

// Kind identifies the category of a combat notification.
type Kind string

const (
	KindDamageResolved  Kind = "damage_resolved"
	KindTerrainChanged  Kind = "terrain_changed"
	KindUnitEnteredTile Kind = "unit_entered_tile"
)

// DamageResolved is emitted by the combat event source once per applied hit.
type DamageResolved struct {
	DefenderID   string  `json:"defenderId"`
	Amount       int     `json:"amount"`
	Critical     bool    `json:"critical"`
	AffinityMult float64 `json:"affinityMult"`
}

// TerrainChanged is emitted by the terrain adapter per applied transform.
type TerrainChanged struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	From string `json:"from"`
	To   string `json:"to"`
}

// UnitEnteredTile is emitted by the movement layer when a unit enters a tile.
type UnitEnteredTile struct {
	UnitID string `json:"unitId"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

// Handler receives a published event. The concrete type matches the Kind it
// was subscribed under.
type Handler func(e any)

// Bus is a minimal synchronous pub/sub hub. Subscription is expected during
// setup; publishing happens from the single battle-step goroutine.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Kind][]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[Kind][]Handler)}
}

// Subscribe registers h for events of the given kind.
func (b *Bus) Subscribe(kind Kind, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[kind] = append(b.handlers[kind], h)
}

// Publish delivers e to every handler subscribed under kind, in subscription
// order.
func (b *Bus) Publish(kind Kind, e any) {
	b.mu.RLock()
	hs := b.handlers[kind]
	b.mu.RUnlock()

	for _, h := range hs {
		h(e)
	}
}
