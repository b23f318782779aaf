package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRunConfig_IsValid(t *testing.T) {
	cfg := DefaultRunConfig()
	require.NoError(t, ValidateRunConfig(cfg))

	assert.Equal(t, 15, cfg.BoardSize)
	assert.Equal(t, Position{X: 14, Y: 14}, cfg.Exit)
	assert.Equal(t, []string{"R", "R", "D", "D", "L", "D", "R"}, cfg.Moves)
}

func TestValidateRunConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RunConfig)
		wantErr string
	}{
		{"valid", func(*RunConfig) {}, ""},
		{"missing name", func(c *RunConfig) { c.Name = "" }, "name is required"},
		{"board too small", func(c *RunConfig) { c.BoardSize = 1 }, "board_size must be between"},
		{"board too large", func(c *RunConfig) { c.BoardSize = MaxBoardSize + 1 }, "board_size must be between"},
		{"start out of bounds", func(c *RunConfig) { c.Start = Position{X: -1, Y: 0} }, "start (-1,0) is outside"},
		{"exit out of bounds", func(c *RunConfig) { c.Exit = Position{X: 15, Y: 14} }, "exit (15,14) is outside"},
		{"start equals exit", func(c *RunConfig) { c.Exit = c.Start }, "start and exit must differ"},
		{"negative supplies", func(c *RunConfig) { c.Specials.Supplies = -1 }, "non-negative"},
		{"inverted supply range", func(c *RunConfig) { c.Specials.SupplyRange = ValueRange{Min: 9, Max: 1} }, "supply_range"},
		{"inverted trap range", func(c *RunConfig) { c.Specials.TrapRange = ValueRange{Min: -1, Max: -9} }, "trap_range"},
		{"unbounded supply range", func(c *RunConfig) {
			c.Specials.SupplyRange = ValueRange{Min: math.MinInt, Max: math.MaxInt}
		}, "exceeds the cell value limit"},
		{"trap range below limit", func(c *RunConfig) { c.Specials.TrapRange = ValueRange{Min: -MaxCellValue - 1, Max: -3} }, "trap_range"},
		{"range at limit", func(c *RunConfig) { c.Specials.SupplyRange = ValueRange{Min: -MaxCellValue, Max: MaxCellValue} }, ""},
		{"over capacity", func(c *RunConfig) {
			c.BoardSize = 4
			c.Exit = Position{X: 3, Y: 3}
			c.Specials.Supplies = 10
			c.Specials.Traps = 5
		}, "need 17 cells but the board holds 16"},
		{"exactly full", func(c *RunConfig) {
			c.BoardSize = 4
			c.Exit = Position{X: 3, Y: 3}
			c.Specials.Supplies = 10
			c.Specials.Traps = 4
		}, ""},
		{"unknown consumption", func(c *RunConfig) { c.Rules.Consumption = "eat" }, "unknown consumption policy"},
		{"unknown strategy", func(c *RunConfig) { c.Scoring.Strategy = "vibes" }, "unknown scoring strategy"},
		{"expr without expression", func(c *RunConfig) { c.Scoring.Strategy = StrategyExpr }, "expression cannot be empty"},
		{"bad expression", func(c *RunConfig) {
			c.Scoring = ScoringConfig{Strategy: StrategyExpr, Expression: "cell_value +"}
		}, "compile scoring expression"},
		{"invalid moves are allowed", func(c *RunConfig) { c.Moves = []string{"R", "??", "fly"} }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultRunConfig()
			tt.mutate(cfg)

			err := ValidateRunConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateRunConfig_Nil(t *testing.T) {
	assert.ErrorIs(t, ValidateRunConfig(nil), ErrInvalidConfig)
}

func TestConsumptionValid(t *testing.T) {
	for _, c := range []Consumption{"", ConsumeNone, ConsumeSupplies, ConsumeAll} {
		assert.True(t, c.Valid(), "policy %q", c)
	}
	assert.False(t, Consumption("some").Valid())
}
