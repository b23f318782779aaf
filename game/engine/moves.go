package engine

import (
	"context"
	"fmt"

	"github.com/wricardo/battlefield-sim/logging"
)

// Consumption decides what happens to a special cell after it is entered
type Consumption string

const (
	ConsumeNone     Consumption = "none"
	ConsumeSupplies Consumption = "supplies"
	ConsumeAll      Consumption = "all"
)

// Valid reports whether c is a known policy. The zero value means none.
func (c Consumption) Valid() bool {
	switch c {
	case "", ConsumeNone, ConsumeSupplies, ConsumeAll:
		return true
	}
	return false
}

func (c Consumption) consumes(t CellType) bool {
	switch c {
	case ConsumeSupplies:
		return t == Supply
	case ConsumeAll:
		return t == Supply || t == Trap
	}
	return false
}

// RunMoves walks the player through Moves in order. Out-of-bounds moves are
// skipped without an event, as are moves onto a trap when TrapsBlock is set.
// Reaching the exit is not special here; observers of CellEntered decide.
type RunMoves struct {
	Moves       []string
	Scoring     ScoringStrategy
	TrapsBlock  bool
	Consumption Consumption
}

func (p *RunMoves) Name() string { return "run-moves" }

func (p *RunMoves) Apply(ctx context.Context, board *Board, state *GameState, emit EmitFunc) error {
	logger := logging.FromContext(ctx)

	for i, token := range p.Moves {
		if ctx.Err() != nil {
			return context.Cause(ctx)
		}

		dir, ok := ParseDirection(token)
		if !ok {
			logger.Warn("ignoring invalid move", "move", token, "index", i)
			continue
		}

		next := state.Player.Step(dir)
		cell, err := board.Get(next.X, next.Y)
		if err != nil {
			logger.Debug("move out of bounds", "move", string(dir), "target", next.String())
			continue
		}
		if p.TrapsBlock && cell.Type == Trap {
			logger.Debug("move blocked by trap", "move", string(dir), "target", next.String())
			continue
		}

		state.Path = append(state.Path, state.Player)
		state.Player = next
		emit(Event{Kind: MoveApplied, Move: dir, Position: next})

		if p.Scoring != nil {
			before := state.Score
			if err := p.Scoring.OnCellEntered(cell, state); err != nil {
				return fmt.Errorf("scoring move %d at %s: %w", i+1, next, err)
			}
			emit(Event{Kind: ScoreChanged, Delta: state.Score - before, Score: state.Score})
		}

		emit(Event{Kind: CellEntered, Position: next, Cell: cell})

		if p.Consumption.consumes(cell.Type) {
			if err := board.Set(next.X, next.Y, Cell{Type: Empty}); err != nil {
				return err
			}
		}
	}

	return nil
}
