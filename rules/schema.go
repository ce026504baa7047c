// Package rules implements the declarative tactical-mechanic engine: effect
// nodes authored as data, a pure evaluator that matches them against battle
// events, and the script registry escape hatch.
package rules

import (
	"fmt"

	"github.com/expr-lang/expr/vm"
	"github.com/mkrall/riposte/model"
)

// Trigger is the event kind an effect node listens for.
type Trigger string

const (
	TriggerAfterDamaged Trigger = "after-damaged"
	TriggerMoveEnter    Trigger = "move-enter"
	TriggerMoveLeave    Trigger = "move-leave"
	TriggerHitByTag     Trigger = "hit-by-tag"
)

// ParseTrigger maps an authored trigger string to its Trigger constant.
func ParseTrigger(s string) (Trigger, error) {
	switch t := Trigger(s); t {
	case TriggerAfterDamaged, TriggerMoveEnter, TriggerMoveLeave, TriggerHitByTag:
		return t, nil
	}
	return "", fmt.Errorf("unknown trigger %q", s)
}

// TargetSelector describes which entities or tiles a fired node's effect
// applies to.
type TargetSelector string

const (
	SelectSelf             TargetSelector = "Self"
	SelectTriggeringEntity TargetSelector = "TriggeringEntity"
	SelectEventTarget      TargetSelector = "EventTarget"
	SelectAlliesInRange    TargetSelector = "AlliesInRange"
	SelectEnemiesInRange   TargetSelector = "EnemiesInRange"
	SelectTile             TargetSelector = "Tile"
)

// ParseSelector maps an authored selector string to its TargetSelector constant.
func ParseSelector(s string) (TargetSelector, error) {
	switch sel := TargetSelector(s); sel {
	case SelectSelf, SelectTriggeringEntity, SelectEventTarget,
		SelectAlliesInRange, SelectEnemiesInRange, SelectTile:
		return sel, nil
	}
	return "", fmt.Errorf("unknown target selector %q", s)
}

// Built-in condition type tags. The tag space is deliberately open: anything
// outside this set evaluates fail-open (see evalCondition).
const (
	CondIsEnemy             = "IsEnemy"
	CondIsAlly              = "IsAlly"
	CondDistance            = "Distance"
	CondTargetInWeaponRange = "TargetInWeaponRange"
	CondCurrentAP           = "CurrentAP"
	CondOwnerAlive          = "OwnerAlive"
	CondTargetAlive         = "TargetAlive"
	CondHasTag              = "HasTag"
	CondIncomingDamageGteHP = "IncomingDamageGteHP"
	CondCustomVar           = "CustomVar"
	CondExpr                = "Expr"
)

// Context var names read by the IncomingDamageGteHP condition.
const (
	VarIncomingDamage = "incomingDamage"
	VarTargetHP       = "targetHP"
)

// Condition is one predicate gating whether a node fires. Fields beyond Type
// are optional; each condition kind documents which it reads.
type Condition struct {
	Type       string // condition kind tag; unrecognized kinds evaluate true
	Op         string // comparison operator (==, !=, >=, <=, >, <); default ==
	Value      any    // comparison operand (number, string, or bool)
	Tag        string // tag for HasTag membership; var name for CustomVar
	Expression string // source for Expr conditions

	program *vm.Program // compiled Expression, populated by Compile
}

// Payload keys interpreted by the built-in consumers.
const (
	PayloadRange              = "range"
	PayloadInterruptMovement  = "interruptMovement"
	PayloadScriptID           = "scriptId"
	PayloadAction             = "action"
	PayloadTransformTerrainTo = "transformTerrainTo"
)

// Well-known payload action values.
const (
	ActionCounterAttack = "counter_attack"
	ActionChainAssist   = "chain_assist"
)

// EffectNode is one authored tactical mechanic: trigger + target selector +
// conditions + payload. Nodes are authored offline, loaded at content time,
// and never mutated by evaluation.
type EffectNode struct {
	Name       string         // display id
	Category   string         // informational grouping tag
	Trigger    Trigger        // event kind this node listens for
	Target     TargetSelector // who the effect applies to
	Conditions []Condition    // evaluated in order with logical AND
	Payload    map[string]any // free-form parameters the consumer interprets
	Priority   int            // higher fires earlier; ties keep authored order
}

// Context is the ephemeral per-evaluation bundle describing the triggering
// event. Instances are built by consumers, passed to Evaluate, and discarded.
type Context struct {
	Owner       string         // whose rule set is being evaluated
	Triggering  string         // entity that caused the event, "" if none
	EventTarget string         // entity the event was aimed at, "" if none
	Trigger     Trigger        // event kind being evaluated
	Tags        []string       // tags carried by the triggering action
	Position    *model.Point   // tile position, nil if not tile-scoped
	Distance    *int           // Manhattan distance, nil means unknown (+Inf)
	Vars        map[string]any // free-form numbers/strings/booleans
}

// Result is one fired node. A node can fire with zero resolved targets; that
// is a distinct outcome from its conditions failing, and consumers that care
// must check Targets themselves.
type Result struct {
	Rule               *EffectNode
	Targets            []string       // resolved entity/tile ids, possibly empty
	InterruptsMovement bool           // mirrored from payload
	Payload            map[string]any // echoed from the node, not recomputed
	Script             ScriptFunc     // resolved from payload scriptId, nil if absent
}

// TileID derives the synthetic target id for a tile coordinate.
func TileID(x, y int) string {
	return fmt.Sprintf("tile:%d,%d", x, y)
}

// StateReader is the minimal read-only battle-state capability the evaluator
// needs. *model.BattleState satisfies it.
type StateReader interface {
	EntityByID(id string) (model.Entity, bool)
	LiveEntities() []model.Entity
}
