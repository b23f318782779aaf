package engine

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/wricardo/battlefield-sim/logging"
)

// Phase is one ordered unit of board/state mutation, applied once per run
type Phase interface {
	Name() string
	Apply(ctx context.Context, board *Board, state *GameState, emit EmitFunc) error
}

// PlaceExit stamps the exit cell, overwriting whatever was there
type PlaceExit struct {
	Exit Position
}

func (p *PlaceExit) Name() string { return "place-exit" }

func (p *PlaceExit) Apply(ctx context.Context, board *Board, _ *GameState, _ EmitFunc) error {
	if err := board.Set(p.Exit.X, p.Exit.Y, Cell{Type: Exit}); err != nil {
		return fmt.Errorf("place exit: %w", err)
	}
	logging.FromContext(ctx).Debug("exit placed", "position", p.Exit.String())
	return nil
}

// PlaceSpecialCells scatters supplies and then traps into empty cells not
// listed in Blocked, using rejection sampling.
type PlaceSpecialCells struct {
	Supplies    int
	Traps       int
	SupplyRange ValueRange
	TrapRange   ValueRange
	Blocked     []Position
	Rand        *rand.Rand
}

func (p *PlaceSpecialCells) Name() string { return "place-special-cells" }

func (p *PlaceSpecialCells) Apply(ctx context.Context, board *Board, _ *GameState, _ EmitFunc) error {
	if p.Supplies < 0 || p.Traps < 0 {
		return fmt.Errorf("%w: negative special cell count (supplies=%d, traps=%d)", ErrInvalidConfig, p.Supplies, p.Traps)
	}
	if err := p.SupplyRange.check("supply range"); err != nil {
		return err
	}
	if err := p.TrapRange.check("trap range"); err != nil {
		return err
	}

	// Sampling only terminates if every requested cell has somewhere to go.
	free := 0
	board.ForEach(func(x, y int, cell Cell) {
		if cell.Type == Empty && !p.isBlocked(x, y) {
			free++
		}
	})
	if need := p.Supplies + p.Traps; need > free {
		return fmt.Errorf("%w: need %d cells, only %d free", ErrBoardCapacity, need, free)
	}

	rng := p.Rand
	if rng == nil {
		rng = NewRand(ResolveSeed(0))
	}

	p.drop(board, rng, p.Supplies, func() Cell {
		return Cell{Type: Supply, Value: p.SupplyRange.Draw(rng)}
	})
	p.drop(board, rng, p.Traps, func() Cell {
		return Cell{Type: Trap, Value: p.TrapRange.Draw(rng)}
	})

	logging.FromContext(ctx).Debug("special cells placed", "supplies", p.Supplies, "traps", p.Traps)
	return nil
}

func (p *PlaceSpecialCells) isBlocked(x, y int) bool {
	return slices.Contains(p.Blocked, Position{X: x, Y: y})
}

func (p *PlaceSpecialCells) drop(board *Board, rng *rand.Rand, count int, mkCell func() Cell) {
	size := board.Size()
	for placed := 0; placed < count; {
		x, y := rng.IntN(size), rng.IntN(size)
		if board.IsEmpty(x, y) && !p.isBlocked(x, y) {
			board.cells[y][x] = mkCell()
			placed++
		}
	}
}
