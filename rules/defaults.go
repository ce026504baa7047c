package rules

// DefaultPassives returns the built-in baseline passive set every unit gets
// unless its definition declares overrides. The fallback exists so authors
// need not redeclare zone-of-control, counter-attack, and chain-assist on
// every unit. A fresh slice is returned per call; nodes are shared nowhere.
func DefaultPassives() []*EffectNode {
	return []*EffectNode{
		{
			Name:     "zone-of-control-interrupt",
			Category: "movement",
			Trigger:  TriggerMoveLeave,
			Target:   SelectTriggeringEntity,
			Priority: 100,
			Conditions: []Condition{
				{Type: CondIsEnemy},
				{Type: CondDistance, Op: "==", Value: 1},
			},
			Payload: map[string]any{
				PayloadInterruptMovement: true,
			},
		},
		{
			Name:     "counter-attack",
			Category: "reaction",
			Trigger:  TriggerAfterDamaged,
			Target:   SelectTriggeringEntity,
			Priority: 50,
			Conditions: []Condition{
				{Type: CondIsEnemy},
				{Type: CondOwnerAlive},
				{Type: CondTargetAlive},
				{Type: CondTargetInWeaponRange},
			},
			Payload: map[string]any{
				PayloadAction: ActionCounterAttack,
			},
		},
		{
			Name:     "chain-assist",
			Category: "reaction",
			Trigger:  TriggerAfterDamaged,
			Target:   SelectAlliesInRange,
			Priority: 10,
			Conditions: []Condition{
				{Type: CondIsEnemy},
				{Type: CondOwnerAlive},
			},
			Payload: map[string]any{
				PayloadAction: ActionChainAssist,
				PayloadRange:  2,
			},
		},
	}
}

// EffectivePassives resolves a unit's passive set: non-empty unit-specific
// overrides win, otherwise the built-in defaults apply.
func EffectivePassives(overrides []*EffectNode) []*EffectNode {
	if len(overrides) > 0 {
		return overrides
	}
	return DefaultPassives()
}
