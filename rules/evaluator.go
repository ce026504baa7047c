package rules

import "sort"

// Evaluate runs the node set against a single event and returns the fired
// results in application order. It is a pure function of its inputs plus the
// process-wide script registry (used for payload scriptId lookup only): it
// never mutates nodes or state, never emits notifications, and never panics
// on malformed authored content.
//
// Ordering: matching nodes fire by priority descending; equal-priority nodes
// keep their authored relative order. The stable sort is a hard requirement,
// hence sort.SliceStable rather than sort.Slice.
func Evaluate(nodes []*EffectNode, trigger Trigger, ctx *Context, state StateReader) []Result {
	matched := make([]*EffectNode, 0, len(nodes))
	for _, n := range nodes {
		if n != nil && n.Trigger == trigger {
			matched = append(matched, n)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Priority > matched[j].Priority
	})

	var results []Result
	for _, n := range matched {
		if !conditionsPass(n, ctx, state) {
			continue
		}
		r := Result{
			Rule:               n,
			Targets:            resolveTargets(n, ctx, state),
			InterruptsMovement: payloadBool(n.Payload, PayloadInterruptMovement),
			Payload:            n.Payload,
		}
		if id, ok := payloadString(n.Payload, PayloadScriptID); ok {
			r.Script, _ = Scripts().Get(id)
		}
		results = append(results, r)
	}
	return results
}

// conditionsPass applies a node's conditions with logical AND. Any failing
// condition skips the whole node; there is no partial firing.
func conditionsPass(n *EffectNode, ctx *Context, state StateReader) bool {
	for i := range n.Conditions {
		if !evalCondition(&n.Conditions[i], ctx, state) {
			return false
		}
	}
	return true
}
