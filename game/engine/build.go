package engine

import (
	"fmt"
)

// BuildOptions carries the per-run inputs that are not part of RunConfig
type BuildOptions struct {
	// Seed drives special cell placement. Callers resolve it beforehand so
	// the value can be reported.
	Seed     int64
	Renderer Renderer
}

// NewRunEngine validates cfg and assembles the standard phase pipeline:
// place the exit, scatter supplies and traps, then replay the moves.
func NewRunEngine(cfg *RunConfig, opts BuildOptions) (*Engine, error) {
	if err := ValidateRunConfig(cfg); err != nil {
		return nil, err
	}

	scoring, err := NewScoringStrategy(cfg.Scoring)
	if err != nil {
		return nil, err
	}

	board, err := NewBoard(cfg.BoardSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	phases := []Phase{
		&PlaceExit{Exit: cfg.Exit},
		&PlaceSpecialCells{
			Supplies:    cfg.Specials.Supplies,
			Traps:       cfg.Specials.Traps,
			SupplyRange: cfg.Specials.SupplyRange,
			TrapRange:   cfg.Specials.TrapRange,
			Blocked:     []Position{cfg.Start, cfg.Exit},
			Rand:        NewRand(opts.Seed),
		},
		&RunMoves{
			Moves:       append([]string(nil), cfg.Moves...),
			Scoring:     scoring,
			TrapsBlock:  cfg.Rules.TrapsBlockMovement,
			Consumption: cfg.Rules.Consumption,
		},
	}

	state := NewGameState(cfg.Start)
	state.Meta["config"] = cfg.Name
	state.Meta["seed"] = opts.Seed

	return NewEngine(board, state, phases, opts.Renderer)
}
