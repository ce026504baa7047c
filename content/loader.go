// Package content loads per-unit, per-equipment, and per-terrain rule
// definitions from YAML. Loading is the one place authoring mistakes are
// surfaced as errors; once loaded, nodes degrade gracefully per the
// evaluator's contracts.
package content

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mkrall/riposte/rules"
	"github.com/mkrall/riposte/terrain"
)

type conditionDef struct {
	Type       string `yaml:"type"`
	Op         string `yaml:"op"`
	Value      any    `yaml:"value"`
	Tag        string `yaml:"tag"`
	Expression string `yaml:"expression"`
}

type ruleDef struct {
	Name       string         `yaml:"name"`
	Category   string         `yaml:"category"`
	Trigger    string         `yaml:"trigger"`
	Target     string         `yaml:"target"`
	Priority   int            `yaml:"priority"`
	Conditions []conditionDef `yaml:"conditions"`
	Payload    map[string]any `yaml:"payload"`
}

type unitDef struct {
	ID       string    `yaml:"id"`
	Team     string    `yaml:"team"`
	Passives []ruleDef `yaml:"passives"`
}

type equipmentDef struct {
	ID    string    `yaml:"id"`
	Rules []ruleDef `yaml:"rules"`
}

type terrainDef struct {
	Key       string    `yaml:"key"`
	Name      string    `yaml:"name"`
	Passable  *bool     `yaml:"passable"`
	Reactions []ruleDef `yaml:"reactions"`
}

type packDef struct {
	Units     []unitDef      `yaml:"units"`
	Equipment []equipmentDef `yaml:"equipment"`
	Terrains  []terrainDef   `yaml:"terrains"`
}

// Unit is a loaded unit definition. Empty Passives means the unit uses the
// built-in default passive set.
type Unit struct {
	ID       string
	Team     string
	Passives []*rules.EffectNode
}

// Equipment is a loaded equipment definition carrying its granted rules.
type Equipment struct {
	ID    string
	Rules []*rules.EffectNode
}

// Pack is one loaded content bundle.
type Pack struct {
	Units     []Unit
	Equipment []Equipment
	Terrains  []*terrain.Definition
}

// Load parses a YAML content bundle and precompiles its Expr conditions.
func Load(r io.Reader) (*Pack, error) {
	var def packDef
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("decode content pack: %w", err)
	}

	pack := &Pack{}
	for _, u := range def.Units {
		nodes, err := buildNodes(u.Passives)
		if err != nil {
			return nil, fmt.Errorf("unit %q: %w", u.ID, err)
		}
		pack.Units = append(pack.Units, Unit{ID: u.ID, Team: u.Team, Passives: nodes})
	}
	for _, e := range def.Equipment {
		nodes, err := buildNodes(e.Rules)
		if err != nil {
			return nil, fmt.Errorf("equipment %q: %w", e.ID, err)
		}
		pack.Equipment = append(pack.Equipment, Equipment{ID: e.ID, Rules: nodes})
	}
	for _, t := range def.Terrains {
		nodes, err := buildNodes(t.Reactions)
		if err != nil {
			return nil, fmt.Errorf("terrain %q: %w", t.Key, err)
		}
		passable := true
		if t.Passable != nil {
			passable = *t.Passable
		}
		pack.Terrains = append(pack.Terrains, &terrain.Definition{
			Key:       t.Key,
			Name:      t.Name,
			Passable:  passable,
			Reactions: nodes,
		})
	}
	return pack, nil
}

// LoadFile loads a content bundle from disk.
func LoadFile(path string) (*Pack, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open content pack: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func buildNodes(defs []ruleDef) ([]*rules.EffectNode, error) {
	var nodes []*rules.EffectNode
	for _, d := range defs {
		trigger, err := rules.ParseTrigger(d.Trigger)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", d.Name, err)
		}
		target, err := rules.ParseSelector(d.Target)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", d.Name, err)
		}
		conds := make([]rules.Condition, 0, len(d.Conditions))
		for _, c := range d.Conditions {
			conds = append(conds, rules.Condition{
				Type:       c.Type,
				Op:         c.Op,
				Value:      c.Value,
				Tag:        c.Tag,
				Expression: c.Expression,
			})
		}
		nodes = append(nodes, &rules.EffectNode{
			Name:       d.Name,
			Category:   d.Category,
			Trigger:    trigger,
			Target:     target,
			Conditions: conds,
			Payload:    d.Payload,
			Priority:   d.Priority,
		})
	}
	if err := rules.Compile(nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

// RegisterTerrains installs every loaded terrain definition into a registry.
func (p *Pack) RegisterTerrains(reg *terrain.Registry) {
	for _, def := range p.Terrains {
		reg.Register(def)
	}
}

// PassiveSource returns a lookup from unit id to its declared passive
// overrides, suitable for the reaction orchestrator.
func (p *Pack) PassiveSource() func(unitID string) []*rules.EffectNode {
	byID := make(map[string][]*rules.EffectNode, len(p.Units))
	for _, u := range p.Units {
		byID[u.ID] = u.Passives
	}
	return func(unitID string) []*rules.EffectNode {
		return byID[unitID]
	}
}
