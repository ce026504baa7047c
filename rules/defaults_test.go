package rules

import "testing"

func TestEffectivePassivesFallback(t *testing.T) {
	defaults := EffectivePassives(nil)
	if len(defaults) != 3 {
		t.Fatalf("default passive set has %d nodes, want 3", len(defaults))
	}

	override := []*EffectNode{{Name: "custom", Trigger: TriggerAfterDamaged, Target: SelectSelf}}
	got := EffectivePassives(override)
	if len(got) != 1 || got[0].Name != "custom" {
		t.Errorf("non-empty overrides should win, got %v nodes", len(got))
	}

	if got := EffectivePassives([]*EffectNode{}); len(got) != 3 {
		t.Error("empty overrides should fall back to defaults")
	}
}

func TestDefaultCounterAttackFires(t *testing.T) {
	// u1 damaged by adjacent enemy u2: the baseline counter-attack applies.
	dist := 1
	ctx := &Context{
		Owner:       "u1",
		Triggering:  "u2",
		EventTarget: "u2",
		Trigger:     TriggerAfterDamaged,
		Distance:    &dist,
	}
	results := Evaluate(DefaultPassives(), TriggerAfterDamaged, ctx, testState())

	var counter *Result
	for i := range results {
		if action, _ := results[i].Payload[PayloadAction].(string); action == ActionCounterAttack {
			counter = &results[i]
			break
		}
	}
	if counter == nil {
		t.Fatal("default set should produce a counter-attack result")
	}
	if len(counter.Targets) != 1 || counter.Targets[0] != "u2" {
		t.Errorf("counter targets = %v, want [u2]", counter.Targets)
	}
}

func TestDefaultCounterAttackRespectsRange(t *testing.T) {
	// u4 is far outside u1's weapon range: no counter.
	dist := 8
	ctx := &Context{
		Owner:       "u1",
		Triggering:  "u4",
		EventTarget: "u4",
		Trigger:     TriggerAfterDamaged,
		Distance:    &dist,
	}
	results := Evaluate(DefaultPassives(), TriggerAfterDamaged, ctx, testState())
	for _, r := range results {
		if action, _ := r.Payload[PayloadAction].(string); action == ActionCounterAttack {
			t.Error("counter-attack should not fire outside weapon range")
		}
	}
}

func TestDefaultChainAssistTargetsAllies(t *testing.T) {
	dist := 1
	ctx := &Context{
		Owner:       "u1",
		Triggering:  "u2",
		EventTarget: "u2",
		Trigger:     TriggerAfterDamaged,
		Distance:    &dist,
	}
	results := Evaluate(DefaultPassives(), TriggerAfterDamaged, ctx, testState())

	for _, r := range results {
		if action, _ := r.Payload[PayloadAction].(string); action != ActionChainAssist {
			continue
		}
		// u3 is the blue ally within the assist range of 2; u1 is excluded.
		if len(r.Targets) != 1 || r.Targets[0] != "u3" {
			t.Errorf("chain-assist targets = %v, want [u3]", r.Targets)
		}
		return
	}
	t.Fatal("default set should produce a chain-assist result")
}

func TestDefaultPassivesFreshPerCall(t *testing.T) {
	a := DefaultPassives()
	b := DefaultPassives()
	if a[0] == b[0] {
		t.Error("DefaultPassives should return fresh nodes per call")
	}
}
