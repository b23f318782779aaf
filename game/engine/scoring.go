package engine

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Strategy names accepted in RunConfig.Scoring.Strategy
const (
	StrategyCellValue = "cell_value"
	StrategyExpr      = "expr"
	StrategyNone      = "none"
)

// ScoringStrategy is invoked once per successful move with the entered cell
type ScoringStrategy interface {
	OnCellEntered(cell Cell, state *GameState) error
}

// ScoreByCellValue adds the entered cell's value to the score
type ScoreByCellValue struct{}

func (ScoreByCellValue) OnCellEntered(cell Cell, state *GameState) error {
	state.Score += cell.Value
	return nil
}

// ScoringEnv is the environment visible to scoring expressions. X and Y are
// the entered position; Steps counts successful moves so far.
type ScoringEnv struct {
	CellType  string `expr:"cell_type"`
	CellValue int    `expr:"cell_value"`
	Score     int    `expr:"score"`
	X         int    `expr:"x"`
	Y         int    `expr:"y"`
	Steps     int    `expr:"steps"`
}

// ExprScoring adds the integer result of a compiled expression to the score.
//
// Examples:
//
//	cell_value * 2
//	cell_type == "trap" ? cell_value * 2 : cell_value
//	cell_value > steps ? cell_value - steps : 0
type ExprScoring struct {
	expression string
	program    *vm.Program
}

// NewExprScoring compiles expression against ScoringEnv
func NewExprScoring(expression string) (*ExprScoring, error) {
	if expression == "" {
		return nil, fmt.Errorf("scoring expression cannot be empty")
	}

	program, err := expr.Compile(expression, expr.Env(ScoringEnv{}), expr.AsInt())
	if err != nil {
		return nil, fmt.Errorf("compile scoring expression %q: %w", expression, err)
	}

	return &ExprScoring{expression: expression, program: program}, nil
}

// Expression returns the source expression
func (s *ExprScoring) Expression() string {
	return s.expression
}

func (s *ExprScoring) OnCellEntered(cell Cell, state *GameState) error {
	env := ScoringEnv{
		CellType:  string(cell.Type),
		CellValue: cell.Value,
		Score:     state.Score,
		X:         state.Player.X,
		Y:         state.Player.Y,
		Steps:     len(state.Path),
	}

	out, err := expr.Run(s.program, env)
	if err != nil {
		return fmt.Errorf("evaluate scoring expression: %w", err)
	}

	delta, ok := out.(int)
	if !ok {
		return fmt.Errorf("scoring expression returned %T, want int", out)
	}

	state.Score += delta
	return nil
}

// NewScoringStrategy builds the strategy named in cfg. StrategyNone yields
// a nil strategy, which disables scoring entirely.
func NewScoringStrategy(cfg ScoringConfig) (ScoringStrategy, error) {
	switch cfg.Strategy {
	case "", StrategyCellValue:
		return ScoreByCellValue{}, nil
	case StrategyExpr:
		s, err := NewExprScoring(cfg.Expression)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		return s, nil
	case StrategyNone:
		return nil, nil
	}
	return nil, fmt.Errorf("%w: unknown scoring strategy %q", ErrInvalidConfig, cfg.Strategy)
}
