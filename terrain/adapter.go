package terrain

import (
	"log/slog"

	"github.com/mkrall/riposte/event"
	"github.com/mkrall/riposte/model"
	"github.com/mkrall/riposte/rules"
)

// Adapter reacts to tile events by evaluating the tile terrain's reaction
// rule set. It never mutates a snapshot: transforms produce a new one, and
// move-enter evaluation returns raw results for the movement layer to apply.
type Adapter struct {
	registry *Registry
	bus      *event.Bus
}

// NewAdapter builds an adapter. bus may be nil when no terrain-changed
// notifications are wanted.
func NewAdapter(registry *Registry, bus *event.Bus) *Adapter {
	return &Adapter{registry: registry, bus: bus}
}

// OnSkillHitTile evaluates the hit tile's reaction rules against the skill's
// tags and applies every terrain-transform payload in evaluator order, last
// write winning. It returns the same state reference when nothing transforms,
// so callers can detect "no change" without a deep comparison. Out-of-bounds
// coordinates and tiles whose terrain declares no reactions are no-ops.
func (a *Adapter) OnSkillHitTile(state *model.BattleState, x, y int, tags []string, casterID string) *model.BattleState {
	if state == nil || state.Terrain == nil || !state.Terrain.InBounds(x, y) {
		return state
	}
	key, _ := state.Terrain.At(x, y)
	reactions := a.registry.Reactions(key)
	if len(reactions) == 0 {
		return state
	}

	ctx := &rules.Context{
		Owner:      rules.TileID(x, y),
		Triggering: casterID,
		Trigger:    rules.TriggerHitByTag,
		Tags:       tags,
		Position:   &model.Point{X: x, Y: y},
	}
	results := rules.Evaluate(reactions, rules.TriggerHitByTag, ctx, state)

	cur := state
	for _, r := range results {
		to, ok := r.Payload[rules.PayloadTransformTerrainTo].(string)
		if !ok || to == "" {
			continue
		}
		from, _ := cur.Terrain.At(x, y)
		next := cur.WithTerrain(x, y, to)
		if next == cur {
			continue
		}
		cur = next
		slog.Debug("terrain transformed", "rule", r.Rule.Name, "x", x, "y", y, "from", from, "to", to)
		if a.bus != nil {
			a.bus.Publish(event.KindTerrainChanged, event.TerrainChanged{X: x, Y: y, From: from, To: to})
		}
	}
	return cur
}

// OnUnitEnterTile evaluates the entered tile's reaction rules under the
// move-enter trigger and returns the raw results for the movement layer to
// apply. The adapter applies nothing itself.
func (a *Adapter) OnUnitEnterTile(state *model.BattleState, unitID string, x, y int) []rules.Result {
	if state == nil || state.Terrain == nil || !state.Terrain.InBounds(x, y) {
		return nil
	}
	key, _ := state.Terrain.At(x, y)
	reactions := a.registry.Reactions(key)
	if len(reactions) == 0 {
		return nil
	}

	ctx := &rules.Context{
		Owner:      rules.TileID(x, y),
		Triggering: unitID,
		Trigger:    rules.TriggerMoveEnter,
		Position:   &model.Point{X: x, Y: y},
	}
	return rules.Evaluate(reactions, rules.TriggerMoveEnter, ctx, state)
}
