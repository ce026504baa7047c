package rules

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ConditionEnv wraps the evaluation context and battle state, exposing helper
// methods callable from Expr condition sources. Everything is read-only; an
// expression cannot reach mutation.
type ConditionEnv struct {
	ctx   *Context
	state StateReader
}

func (e ConditionEnv) Owner() string            { return e.ctx.Owner }
func (e ConditionEnv) TriggeringEntity() string { return e.ctx.Triggering }
func (e ConditionEnv) EventTarget() string      { return e.ctx.EventTarget }
func (e ConditionEnv) Trigger() string          { return string(e.ctx.Trigger) }

// Distance returns the context distance, or +Inf when unset.
func (e ConditionEnv) Distance() float64 {
	if e.ctx.Distance == nil {
		return math.Inf(1)
	}
	return float64(*e.ctx.Distance)
}

func (e ConditionEnv) HasTag(tag string) bool {
	for _, t := range e.ctx.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Var returns a custom-variable entry, or nil when absent.
func (e ConditionEnv) Var(name string) any { return e.ctx.Vars[name] }

// NumVar returns a numeric custom variable, or 0 when absent or non-numeric.
func (e ConditionEnv) NumVar(name string) float64 {
	f, _ := toFloat(e.ctx.Vars[name])
	return f
}

func (e ConditionEnv) BoolVar(name string) bool {
	b, _ := e.ctx.Vars[name].(bool)
	return b
}

func (e ConditionEnv) Alive(id string) bool {
	ent, ok := e.state.EntityByID(id)
	return ok && ent.Alive()
}

func (e ConditionEnv) HP(id string) int {
	ent, _ := e.state.EntityByID(id)
	return ent.HP
}

func (e ConditionEnv) AP(id string) int {
	ent, _ := e.state.EntityByID(id)
	return ent.AP
}

func (e ConditionEnv) Team(id string) string {
	ent, _ := e.state.EntityByID(id)
	return ent.Team
}

// Compile precompiles every Expr condition in the node set to bytecode.
// Call it once at content-load time; evaluation then runs the cached
// programs. Returns the first compile error, identifying the node.
func Compile(nodes []*EffectNode) error {
	for _, n := range nodes {
		for i := range n.Conditions {
			c := &n.Conditions[i]
			if c.Type != CondExpr || c.program != nil {
				continue
			}
			prog, err := compileCondition(c.Expression)
			if err != nil {
				return fmt.Errorf("compile node %q: %w", n.Name, err)
			}
			c.program = prog
		}
	}
	return nil
}

func compileCondition(src string) (*vm.Program, error) {
	return expr.Compile(src, expr.Env(ConditionEnv{}), expr.AsBool())
}

// evalExpr runs an Expr condition. Uncompiled conditions are compiled on the
// fly without caching so evaluation stays free of side effects on the node.
// Compile or run errors mean a broken authored expression: the condition
// degrades to false, like a failed entity lookup.
func evalExpr(c *Condition, ctx *Context, state StateReader) bool {
	prog := c.program
	if prog == nil {
		p, err := compileCondition(c.Expression)
		if err != nil {
			slog.Warn("expr condition compile failed", "expression", c.Expression, "error", err)
			return false
		}
		prog = p
	}
	out, err := vm.Run(prog, ConditionEnv{ctx: ctx, state: state})
	if err != nil {
		slog.Warn("expr condition error", "expression", c.Expression, "error", err)
		return false
	}
	b, ok := out.(bool)
	return ok && b
}
