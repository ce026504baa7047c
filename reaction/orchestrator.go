// Package reaction turns damage-resolved notifications into scheduled
// counter-attacks by evaluating the defender's passive rule set.
package reaction

import (
	"log/slog"
	"time"

	"github.com/mkrall/riposte/event"
	"github.com/mkrall/riposte/model"
	"github.com/mkrall/riposte/rules"
)

// DefaultPacingDelay spaces a counter-attack behind the hit that provoked it
// so animations read as cause and effect.
const DefaultPacingDelay = 400 * time.Millisecond

// StateSource yields the authoritative battle snapshot at call time. The
// orchestrator re-fetches through it rather than holding snapshots, because
// state may change between scheduling and firing.
type StateSource interface {
	Current() *model.BattleState
}

// Dispatcher accepts a counter-attack instruction for later application.
type Dispatcher interface {
	DispatchAttack(attackerID, targetID string) error
}

// PassiveSource resolves a unit's declared passive overrides; nil or empty
// means the unit falls back to the built-in defaults.
type PassiveSource func(unitID string) []*rules.EffectNode

// Orchestrator consumes damage-resolved notifications and schedules
// re-validated counter-attacks: DETECT -> EVALUATE -> SCHEDULE -> DONE.
type Orchestrator struct {
	state     StateSource
	dispatch  Dispatcher
	scheduler Scheduler
	passives  PassiveSource
	delay     time.Duration
}

func NewOrchestrator(state StateSource, dispatch Dispatcher, scheduler Scheduler, passives PassiveSource) *Orchestrator {
	return &Orchestrator{
		state:     state,
		dispatch:  dispatch,
		scheduler: scheduler,
		passives:  passives,
		delay:     DefaultPacingDelay,
	}
}

// SetPacingDelay overrides the scheduling delay.
func (o *Orchestrator) SetPacingDelay(d time.Duration) { o.delay = d }

// Subscribe wires the orchestrator to a bus's damage-resolved notifications.
func (o *Orchestrator) Subscribe(bus *event.Bus) {
	bus.Subscribe(event.KindDamageResolved, func(e any) {
		if ev, ok := e.(event.DamageResolved); ok {
			o.HandleDamageResolved(ev)
		}
	})
}

// HandleDamageResolved runs DETECT, EVALUATE, and SCHEDULE for one applied
// hit. At most one counter is scheduled per damage event.
func (o *Orchestrator) HandleDamageResolved(ev event.DamageResolved) {
	st := o.state.Current()

	// DETECT: no reaction from the defeated, the unprovoked, or oneself.
	defender, ok := st.EntityByID(ev.DefenderID)
	if !ok || !defender.Alive() {
		return
	}
	attacker, ok := st.ActingEntity()
	if !ok || attacker.ID == defender.ID {
		return
	}
	if !attacker.Alive() || attacker.Team == defender.Team {
		return
	}

	// EVALUATE: the attacker is both "who caused this" and "who to strike
	// back at", so it fills triggering entity and event target alike.
	dist := model.Manhattan(attacker.Pos(), defender.Pos())
	ctx := &rules.Context{
		Owner:       defender.ID,
		Triggering:  attacker.ID,
		EventTarget: attacker.ID,
		Trigger:     rules.TriggerAfterDamaged,
		Distance:    &dist,
		Vars: map[string]any{
			rules.VarIncomingDamage: float64(ev.Amount),
			rules.VarTargetHP:       float64(defender.HP),
		},
	}
	set := rules.EffectivePassives(o.resolvePassives(defender.ID))
	results := rules.Evaluate(set, rules.TriggerAfterDamaged, ctx, st)

	// SCHEDULE: first basic counter strike wins; capture ids, never entities.
	for _, r := range results {
		action, _ := r.Payload[rules.PayloadAction].(string)
		if action != rules.ActionCounterAttack {
			continue
		}
		counterBy, target := defender.ID, attacker.ID
		taskID := o.scheduler.After(o.delay, func() {
			o.fireCounter(counterBy, target)
		})
		slog.Debug("counter scheduled",
			"task", taskID, "rule", r.Rule.Name, "by", counterBy, "target", target)
		break
	}
}

// fireCounter is the DONE step: re-resolve both participants from the
// then-current state and dispatch only if both are still alive. Either dying
// during the pacing delay is an expected race, aborted silently.
func (o *Orchestrator) fireCounter(counterBy, target string) {
	st := o.state.Current()
	striker, ok := st.EntityByID(counterBy)
	if !ok || !striker.Alive() {
		return
	}
	victim, ok := st.EntityByID(target)
	if !ok || !victim.Alive() {
		return
	}
	if err := o.dispatch.DispatchAttack(counterBy, target); err != nil {
		slog.Error("counter dispatch failed", "by", counterBy, "target", target, "error", err)
	}
}

func (o *Orchestrator) resolvePassives(unitID string) []*rules.EffectNode {
	if o.passives == nil {
		return nil
	}
	return o.passives(unitID)
}
