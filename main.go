package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/mkrall/riposte/content"
	"github.com/mkrall/riposte/event"
	"github.com/mkrall/riposte/model"
	"github.com/mkrall/riposte/reaction"
	"github.com/mkrall/riposte/terrain"
)

// demoPack is a small content bundle showing unit overrides, an expr
// condition, and a terrain reaction chain.
const demoPack = `
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
          - type: TargetInWeaponRange
          - type: Expr
            expression: NumVar("incomingDamage") < NumVar("targetHP")
        payload:
          action: counter_attack
terrains:
  - key: forest
    name: Forest
    reactions:
      - name: forest-ignites
        category: terrain
        trigger: hit-by-tag
        target: Tile
        conditions:
          - type: HasTag
            tag: Fire
        payload:
          transformTerrainTo: burning_forest
  - key: burning_forest
    name: Burning Forest
    reactions:
      - name: fire-spreads-out
        category: terrain
        trigger: hit-by-tag
        target: Tile
        conditions:
          - type: HasTag
            tag: Ice
        payload:
          transformTerrainTo: forest
      - name: burn-on-enter
        category: terrain
        trigger: move-enter
        target: TriggeringEntity
        payload:
          interruptMovement: true
`

// world holds the authoritative snapshot for the demo and doubles as the
// orchestrator's dispatcher.
type world struct {
	state *model.BattleState
}

func (w *world) Current() *model.BattleState { return w.state }

func (w *world) DispatchAttack(attackerID, targetID string) error {
	slog.Info("counter-attack lands", "by", attackerID, "target", targetID)
	for i := range w.state.Entities {
		if w.state.Entities[i].ID == targetID {
			w.state.Entities[i].HP -= 3
		}
	}
	return nil
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	pack, err := content.Load(strings.NewReader(demoPack))
	if err != nil {
		slog.Error("failed to load demo content", "error", err)
		os.Exit(1)
	}

	registry := terrain.NewRegistry()
	pack.RegisterTerrains(registry)

	w := &world{
		state: &model.BattleState{
			Entities: []model.Entity{
				{ID: "knight", Team: "blue", X: 2, Y: 2, HP: 20, MaxHP: 20, AP: 2, AttackRange: 1},
				{ID: "pikeman", Team: "blue", X: 3, Y: 2, HP: 15, MaxHP: 15, AP: 2, AttackRange: 2},
				{ID: "raider", Team: "red", X: 2, Y: 3, HP: 12, MaxHP: 12, AP: 2, AttackRange: 1},
			},
			Acting:  "raider",
			Terrain: model.NewTerrainGrid(8, 8, "plains").WithKey(5, 5, "forest"),
		},
	}

	bus := event.NewBus()
	bus.Subscribe(event.KindTerrainChanged, func(e any) {
		tc := e.(event.TerrainChanged)
		slog.Info("terrain changed", "x", tc.X, "y", tc.Y, "from", tc.From, "to", tc.To)
	})

	scheduler := &reaction.ManualScheduler{}
	orch := reaction.NewOrchestrator(w, w, scheduler, pack.PassiveSource())
	orch.Subscribe(bus)

	adapter := terrain.NewAdapter(registry, bus)

	// The raider strikes the knight; the knight's default passives schedule
	// a counter, paid off when the scheduler pumps.
	slog.Info("raider attacks knight")
	bus.Publish(event.KindDamageResolved, event.DamageResolved{
		DefenderID: "knight", Amount: 4, AffinityMult: 1.0,
	})
	scheduler.Fire()

	// A fire skill hits the forest tile.
	slog.Info("fireball hits forest tile", "x", 5, "y", 5)
	w.state = adapter.OnSkillHitTile(w.state, 5, 5, []string{"Fire"}, "raider")

	// The pikeman wanders onto the burning tile; results go back to the
	// movement layer, which here just logs them.
	for _, r := range adapter.OnUnitEnterTile(w.state, "pikeman", 5, 5) {
		slog.Info("tile reaction fired", "rule", r.Rule.Name, "targets", r.Targets)
	}

	key, _ := w.state.Terrain.At(5, 5)
	slog.Info("demo complete", "tile(5,5)", key)
}
