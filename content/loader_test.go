package content

import (
	"strings"
	"testing"

	"github.com/mkrall/riposte/model"
	"github.com/mkrall/riposte/rules"
	"github.com/mkrall/riposte/terrain"
)

func evalState() *model.BattleState {
	return &model.BattleState{
		Entities: []model.Entity{
			{ID: "pikeman", Team: "blue", X: 0, Y: 0, HP: 15, MaxHP: 15, AP: 2, AttackRange: 2},
			{ID: "raider", Team: "red", X: 0, Y: 2, HP: 12, MaxHP: 12, AP: 2, AttackRange: 1},
		},
		Acting: "raider",
	}
}

const samplePack = `
units:
  - id: knight
    team: blue
  - id: pikeman
    team: blue
    passives:
      - name: braced-counter
        category: reaction
        trigger: after-damaged
        target: TriggeringEntity
        priority: 80
        conditions:
          - type: IsEnemy
          - type: Distance
            op: "<="
            value: 2
          - type: Expr
            expression: NumVar("incomingDamage") < NumVar("targetHP")
        payload:
          action: counter_attack
equipment:
  - id: spiked-shield
    rules:
      - name: thorns
        trigger: after-damaged
        target: TriggeringEntity
        payload:
          scriptId: thorns_damage
terrains:
  - key: forest
    name: Forest
    reactions:
      - name: forest-ignites
        trigger: hit-by-tag
        target: Tile
        conditions:
          - type: HasTag
            tag: Fire
        payload:
          transformTerrainTo: burning_forest
  - key: lava
    name: Lava
    passable: false
`

func TestLoadPack(t *testing.T) {
	pack, err := Load(strings.NewReader(samplePack))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(pack.Units) != 2 {
		t.Fatalf("loaded %d units, want 2", len(pack.Units))
	}
	if len(pack.Units[0].Passives) != 0 {
		t.Error("knight declares no passives")
	}

	passives := pack.Units[1].Passives
	if len(passives) != 1 {
		t.Fatalf("pikeman has %d passives, want 1", len(passives))
	}
	node := passives[0]
	if node.Trigger != rules.TriggerAfterDamaged || node.Target != rules.SelectTriggeringEntity {
		t.Errorf("parsed node = %+v, wrong trigger or selector", node)
	}
	if node.Priority != 80 || len(node.Conditions) != 3 {
		t.Errorf("node priority/conditions = %d/%d, want 80/3", node.Priority, len(node.Conditions))
	}
	if action, _ := node.Payload[rules.PayloadAction].(string); action != rules.ActionCounterAttack {
		t.Errorf("payload action = %q", action)
	}

	if len(pack.Equipment) != 1 || len(pack.Equipment[0].Rules) != 1 {
		t.Fatal("equipment rules not loaded")
	}
	if id, _ := pack.Equipment[0].Rules[0].Payload[rules.PayloadScriptID].(string); id != "thorns_damage" {
		t.Errorf("equipment scriptId = %q", id)
	}

	if len(pack.Terrains) != 2 {
		t.Fatalf("loaded %d terrains, want 2", len(pack.Terrains))
	}
	if pack.Terrains[0].Key != "forest" || !pack.Terrains[0].Passable {
		t.Errorf("forest definition = %+v", pack.Terrains[0])
	}
	if pack.Terrains[1].Passable {
		t.Error("lava should honor passable: false")
	}
}

func TestLoadedPackDrivesEvaluation(t *testing.T) {
	pack, err := Load(strings.NewReader(samplePack))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// YAML values arrive as ints; conditions must still compare correctly,
	// and the Expr condition must have been precompiled.
	st := evalState()
	dist := 2
	ctx := &rules.Context{
		Owner:       "pikeman",
		Triggering:  "raider",
		EventTarget: "raider",
		Trigger:     rules.TriggerAfterDamaged,
		Distance:    &dist,
		Vars: map[string]any{
			rules.VarIncomingDamage: 4.0,
			rules.VarTargetHP:       15.0,
		},
	}
	results := rules.Evaluate(pack.Units[1].Passives, rules.TriggerAfterDamaged, ctx, st)
	if len(results) != 1 {
		t.Fatalf("loaded passive should fire, got %d results", len(results))
	}
	if results[0].Targets[0] != "raider" {
		t.Errorf("targets = %v, want [raider]", results[0].Targets)
	}
}

func TestRegisterTerrains(t *testing.T) {
	pack, err := Load(strings.NewReader(samplePack))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	reg := terrain.NewRegistry()
	pack.RegisterTerrains(reg)
	if got := reg.Reactions("forest"); len(got) != 1 {
		t.Errorf("forest reactions = %d, want 1", len(got))
	}
	if _, ok := reg.Get("swamp"); ok {
		t.Error("unregistered terrain should be absent")
	}
}

func TestPassiveSource(t *testing.T) {
	pack, err := Load(strings.NewReader(samplePack))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	src := pack.PassiveSource()
	if got := src("pikeman"); len(got) != 1 {
		t.Errorf("pikeman overrides = %d nodes, want 1", len(got))
	}
	if got := src("knight"); len(got) != 0 {
		t.Error("knight should have no overrides (falls back to defaults)")
	}
	if got := src("unknown"); got != nil {
		t.Error("unknown unit should have no overrides")
	}
}

func TestLoadRejectsUnknownTrigger(t *testing.T) {
	bad := `
units:
  - id: u
    passives:
      - name: broken
        trigger: on-full-moon
        target: Self
`
	if _, err := Load(strings.NewReader(bad)); err == nil {
		t.Fatal("unknown trigger should fail the load")
	}
}

func TestLoadRejectsUnknownSelector(t *testing.T) {
	bad := `
terrains:
  - key: k
    reactions:
      - name: broken
        trigger: hit-by-tag
        target: Everyone
`
	if _, err := Load(strings.NewReader(bad)); err == nil {
		t.Fatal("unknown selector should fail the load")
	}
}

func TestLoadRejectsBrokenExpression(t *testing.T) {
	bad := `
units:
  - id: u
    passives:
      - name: broken
        trigger: after-damaged
        target: Self
        conditions:
          - type: Expr
            expression: "NumVar( <="
`
	if _, err := Load(strings.NewReader(bad)); err == nil {
		t.Fatal("a malformed expression should fail the load")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	if _, err := Load(strings.NewReader("units: [unclosed")); err == nil {
		t.Fatal("malformed YAML should fail the load")
	}
}
