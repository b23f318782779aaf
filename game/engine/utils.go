package engine

// ManhattanDistance calculates the Manhattan distance between two positions
func ManhattanDistance(from, to Position) int {
	return abs(from.X-to.X) + abs(from.Y-to.Y)
}

// Plan is the outcome of replaying moves on an open board
type Plan struct {
	Path    []Position // every position occupied, start included
	Invalid int        // tokens that are not directions
	Bumps   int        // moves that would leave the board
}

// PlanMoves replays moves on an open size x size board from start. Invalid
// tokens and out-of-bounds moves are skipped the same way RunMoves skips
// them. Cell contents are unknown here, so traps never block.
func PlanMoves(size int, start Position, moves []string) Plan {
	plan := Plan{Path: []Position{start}}
	pos := start

	for _, token := range moves {
		dir, ok := ParseDirection(token)
		if !ok {
			plan.Invalid++
			continue
		}
		next := pos.Step(dir)
		if next.X < 0 || next.Y < 0 || next.X >= size || next.Y >= size {
			plan.Bumps++
			continue
		}
		pos = next
		plan.Path = append(plan.Path, pos)
	}

	return plan
}

// PlanPath returns the path of PlanMoves
func PlanPath(size int, start Position, moves []string) []Position {
	return PlanMoves(size, start, moves).Path
}

// SumValues totals the values of every cell of the given type
func SumValues(board *Board, cellType CellType) int {
	total := 0
	board.ForEach(func(_, _ int, cell Cell) {
		if cell.Type == cellType {
			total += cell.Value
		}
	})
	return total
}

// abs returns the absolute value of x
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
