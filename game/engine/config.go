package engine

import (
	"fmt"
)

// RunConfig describes one simulation run. It is loaded from JSON or HCL.
type RunConfig struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	BoardSize   int            `json:"board_size"`
	Start       Position       `json:"start"`
	Exit        Position       `json:"exit"`
	Moves       []string       `json:"moves"`
	Seed        int64          `json:"seed,omitempty"`
	Specials    SpecialsConfig `json:"specials"`
	Rules       RulesConfig    `json:"rules"`
	Scoring     ScoringConfig  `json:"scoring"`
}

// SpecialsConfig controls random supply/trap placement
type SpecialsConfig struct {
	Supplies    int        `json:"supplies"`
	Traps       int        `json:"traps"`
	SupplyRange ValueRange `json:"supply_range"`
	TrapRange   ValueRange `json:"trap_range"`
}

// RulesConfig holds movement and consumption policies
type RulesConfig struct {
	TrapsBlockMovement bool        `json:"traps_block_movement"`
	Consumption        Consumption `json:"consumption,omitempty"`
	StopOnExit         bool        `json:"stop_on_exit"`
}

// ScoringConfig selects the scoring strategy
type ScoringConfig struct {
	Strategy   string `json:"strategy,omitempty"`
	Expression string `json:"expression,omitempty"`
}

// DefaultRunConfig returns the built-in 15x15 battlefield
func DefaultRunConfig() *RunConfig {
	return &RunConfig{
		Name:        "classic",
		Description: "15x15 battlefield with 20 supplies and 15 traps",
		BoardSize:   15,
		Start:       Position{X: 0, Y: 0},
		Exit:        Position{X: 14, Y: 14},
		Moves:       []string{"R", "R", "D", "D", "L", "D", "R"},
		Specials: SpecialsConfig{
			Supplies:    20,
			Traps:       15,
			SupplyRange: ValueRange{Min: 5, Max: 20},
			TrapRange:   ValueRange{Min: -15, Max: -3},
		},
		Rules: RulesConfig{
			Consumption: ConsumeNone,
		},
		Scoring: ScoringConfig{
			Strategy: StrategyCellValue,
		},
	}
}

// ValidateRunConfig checks a configuration for correctness. Unrecognized
// move tokens are allowed; they are ignored at run time.
func ValidateRunConfig(config *RunConfig) error {
	if config == nil {
		return fmt.Errorf("%w: config cannot be nil", ErrInvalidConfig)
	}
	if config.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidConfig)
	}

	size := config.BoardSize
	if size < MinBoardSize || size > MaxBoardSize {
		return fmt.Errorf("%w: board_size must be between %d and %d, got %d", ErrInvalidConfig, MinBoardSize, MaxBoardSize, size)
	}

	inBounds := func(p Position) bool {
		return p.X >= 0 && p.Y >= 0 && p.X < size && p.Y < size
	}
	if !inBounds(config.Start) {
		return fmt.Errorf("%w: start %s is outside the %dx%d board", ErrInvalidConfig, config.Start, size, size)
	}
	if !inBounds(config.Exit) {
		return fmt.Errorf("%w: exit %s is outside the %dx%d board", ErrInvalidConfig, config.Exit, size, size)
	}
	if config.Start == config.Exit {
		return fmt.Errorf("%w: start and exit must differ, both are %s", ErrInvalidConfig, config.Start)
	}

	sp := config.Specials
	if sp.Supplies < 0 || sp.Traps < 0 {
		return fmt.Errorf("%w: supplies and traps must be non-negative, got %d and %d", ErrInvalidConfig, sp.Supplies, sp.Traps)
	}
	if err := sp.SupplyRange.check("supply_range"); err != nil {
		return err
	}
	if err := sp.TrapRange.check("trap_range"); err != nil {
		return err
	}
	if need, capacity := sp.Supplies+sp.Traps+2, size*size; need > capacity {
		return fmt.Errorf("%w: %d supplies + %d traps + start + exit need %d cells but the board holds %d",
			ErrInvalidConfig, sp.Supplies, sp.Traps, need, capacity)
	}

	if !config.Rules.Consumption.Valid() {
		return fmt.Errorf("%w: unknown consumption policy %q", ErrInvalidConfig, config.Rules.Consumption)
	}

	if _, err := NewScoringStrategy(config.Scoring); err != nil {
		return err
	}

	return nil
}
