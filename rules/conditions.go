package rules

import (
	"log/slog"
	"math"
	"slices"
)

// evalCondition dispatches a single condition to its predicate. Unrecognized
// type tags evaluate true: forward-declared or externally-scripted condition
// kinds must never silently break older rule sets. Lookup failures (an id
// absent from state) degrade the single condition to false so one bad node
// cannot block its siblings.
func evalCondition(c *Condition, ctx *Context, state StateReader) bool {
	switch c.Type {
	case CondIsEnemy, CondIsAlly:
		owner, okO := state.EntityByID(ctx.Owner)
		other, okT := state.EntityByID(ctx.Triggering)
		if !okO || !okT {
			return false
		}
		if c.Type == CondIsEnemy {
			return owner.Team != other.Team
		}
		return owner.Team == other.Team

	case CondDistance:
		dist := math.Inf(1)
		if ctx.Distance != nil {
			dist = float64(*ctx.Distance)
		}
		want, ok := toFloat(c.Value)
		if !ok {
			return false
		}
		return compareFloat(c.Op, dist, want)

	case CondTargetInWeaponRange:
		owner, okO := state.EntityByID(ctx.Owner)
		target, okT := state.EntityByID(ctx.EventTarget)
		if !okO || !okT {
			return false
		}
		return manhattan(owner, target) <= owner.AttackRange

	case CondCurrentAP:
		owner, ok := state.EntityByID(ctx.Owner)
		if !ok {
			return false
		}
		want, okV := toFloat(c.Value)
		if !okV {
			return false
		}
		return compareFloat(c.Op, float64(owner.AP), want)

	case CondOwnerAlive:
		owner, ok := state.EntityByID(ctx.Owner)
		return ok && owner.Alive()

	case CondTargetAlive:
		target, ok := state.EntityByID(ctx.EventTarget)
		return ok && target.Alive()

	case CondHasTag:
		return slices.Contains(ctx.Tags, c.Tag)

	case CondIncomingDamageGteHP:
		dmg, okD := toFloat(ctx.Vars[VarIncomingDamage])
		hp, okH := toFloat(ctx.Vars[VarTargetHP])
		return okD && okH && dmg >= hp

	case CondCustomVar:
		got, ok := ctx.Vars[c.Tag]
		if !ok {
			return false
		}
		if b, isBool := got.(bool); isBool {
			want, wantBool := c.Value.(bool)
			if !wantBool {
				return false
			}
			if c.Op == "!=" {
				return b != want
			}
			return b == want
		}
		gotN, okG := toFloat(got)
		wantN, okW := toFloat(c.Value)
		if okG && okW {
			return compareFloat(c.Op, gotN, wantN)
		}
		// String vars support equality only.
		gotS, isStr := got.(string)
		wantS, wantStr := c.Value.(string)
		if !isStr || !wantStr {
			return false
		}
		if c.Op == "!=" {
			return gotS != wantS
		}
		return gotS == wantS

	case CondExpr:
		return evalExpr(c, ctx, state)

	default:
		// Fail-open: a deliberate compatibility policy, not a bug.
		slog.Debug("unrecognized condition type, passing", "type", c.Type)
		return true
	}
}

// compareFloat applies an authored comparison operator. An empty operator
// defaults to equality; an unrecognized one fails the comparison.
func compareFloat(op string, a, b float64) bool {
	switch op {
	case "", "==":
		return a == b
	case "!=":
		return a != b
	case ">=":
		return a >= b
	case "<=":
		return a <= b
	case ">":
		return a > b
	case "<":
		return a < b
	}
	return false
}

// toFloat normalizes authored numeric values. YAML and JSON decoders hand
// back a mix of int, int64, and float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	return 0, false
}
