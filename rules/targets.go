package rules

import "github.com/mkrall/riposte/model"

// resolveTargets turns a fired node's symbolic selector into concrete entity
// or tile ids. Degenerate cases (missing context ids, unresolvable owner)
// resolve to an empty list, never an error.
func resolveTargets(n *EffectNode, ctx *Context, state StateReader) []string {
	switch n.Target {
	case SelectSelf:
		return []string{ctx.Owner}

	case SelectTriggeringEntity:
		if ctx.Triggering == "" {
			return nil
		}
		return []string{ctx.Triggering}

	case SelectEventTarget:
		if ctx.EventTarget == "" {
			return nil
		}
		return []string{ctx.EventTarget}

	case SelectAlliesInRange:
		return entitiesInRange(n, ctx, state, true)

	case SelectEnemiesInRange:
		return entitiesInRange(n, ctx, state, false)

	case SelectTile:
		if ctx.Position == nil {
			return nil
		}
		return []string{TileID(ctx.Position.X, ctx.Position.Y)}
	}
	return nil
}

// entitiesInRange scans live entities within payload.range (default 1)
// Manhattan tiles of the owner, filtered by team relation. The owner itself
// is always excluded. Membership depends only on positions at call time.
func entitiesInRange(n *EffectNode, ctx *Context, state StateReader, allies bool) []string {
	owner, ok := state.EntityByID(ctx.Owner)
	if !ok {
		return nil
	}
	rng := payloadInt(n.Payload, PayloadRange, 1)

	var out []string
	for _, e := range state.LiveEntities() {
		if e.ID == owner.ID {
			continue
		}
		if allies != (e.Team == owner.Team) {
			continue
		}
		if manhattan(owner, e) <= rng {
			out = append(out, e.ID)
		}
	}
	return out
}

func manhattan(a, b model.Entity) int {
	return model.Manhattan(a.Pos(), b.Pos())
}

// payloadInt reads a numeric payload entry, tolerating the int/float mix
// produced by content decoders.
func payloadInt(p map[string]any, key string, def int) int {
	if p == nil {
		return def
	}
	if f, ok := toFloat(p[key]); ok {
		return int(f)
	}
	return def
}

func payloadBool(p map[string]any, key string) bool {
	b, _ := p[key].(bool)
	return b
}

func payloadString(p map[string]any, key string) (string, bool) {
	s, ok := p[key].(string)
	return s, ok && s != ""
}
