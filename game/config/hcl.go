package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/wricardo/battlefield-sim/game/engine"
)

// hclHeader is decoded first so board_size can be exposed as a variable to
// the rest of the file, e.g. `exit { x = board_size - 1 }`.
type hclHeader struct {
	BoardSize int      `hcl:"board_size"`
	Remain    hcl.Body `hcl:",remain"`
}

type hclRunConfig struct {
	Name        string          `hcl:"name"`
	Description string          `hcl:"description,optional"`
	Moves       []string        `hcl:"moves,optional"`
	Seed        int64           `hcl:"seed,optional"`
	Start       engine.Position `hcl:"start,block"`
	Exit        engine.Position `hcl:"exit,block"`
	Specials    *hclSpecials    `hcl:"specials,block"`
	Rules       *hclRules       `hcl:"rules,block"`
	Scoring     *hclScoring     `hcl:"scoring,block"`
}

type hclSpecials struct {
	Supplies    int                `hcl:"supplies,optional"`
	Traps       int                `hcl:"traps,optional"`
	SupplyRange *engine.ValueRange `hcl:"supply_range,block"`
	TrapRange   *engine.ValueRange `hcl:"trap_range,block"`
}

type hclRules struct {
	TrapsBlockMovement bool   `hcl:"traps_block_movement,optional"`
	Consumption        string `hcl:"consumption,optional"`
	StopOnExit         bool   `hcl:"stop_on_exit,optional"`
}

type hclScoring struct {
	Strategy   string `hcl:"strategy,optional"`
	Expression string `hcl:"expression,optional"`
}

// DecodeHCL parses an HCL configuration without validating it. Omitted
// specials, rules and scoring blocks keep the built-in defaults.
func DecodeHCL(filename string, src []byte) (*engine.RunConfig, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var header hclHeader
	if diags := gohcl.DecodeBody(file.Body, nil, &header); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"board_size": cty.NumberIntVal(int64(header.BoardSize)),
		},
	}

	var root hclRunConfig
	if diags := gohcl.DecodeBody(header.Remain, evalCtx, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	return translateHCL(header.BoardSize, &root), nil
}

func translateHCL(boardSize int, root *hclRunConfig) *engine.RunConfig {
	cfg := engine.DefaultRunConfig()
	cfg.Name = root.Name
	cfg.Description = root.Description
	cfg.BoardSize = boardSize
	cfg.Start = root.Start
	cfg.Exit = root.Exit
	cfg.Seed = root.Seed
	if root.Moves != nil {
		cfg.Moves = root.Moves
	}

	if s := root.Specials; s != nil {
		cfg.Specials.Supplies = s.Supplies
		cfg.Specials.Traps = s.Traps
		if s.SupplyRange != nil {
			cfg.Specials.SupplyRange = *s.SupplyRange
		}
		if s.TrapRange != nil {
			cfg.Specials.TrapRange = *s.TrapRange
		}
	}

	if r := root.Rules; r != nil {
		cfg.Rules.TrapsBlockMovement = r.TrapsBlockMovement
		cfg.Rules.StopOnExit = r.StopOnExit
		if r.Consumption != "" {
			cfg.Rules.Consumption = engine.Consumption(r.Consumption)
		}
	}

	if sc := root.Scoring; sc != nil {
		if sc.Strategy != "" {
			cfg.Scoring.Strategy = sc.Strategy
		}
		cfg.Scoring.Expression = sc.Expression
	}

	return cfg
}
