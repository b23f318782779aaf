package engine

import "fmt"

// Board is a fixed-size square grid of cells, indexed [y][x].
type Board struct {
	size  int
	cells [][]Cell
}

// NewBoard allocates a size x size board of empty cells
func NewBoard(size int) (*Board, error) {
	if size <= 0 {
		return nil, fmt.Errorf("board size must be positive, got %d", size)
	}

	cells := make([][]Cell, size)
	for y := range cells {
		cells[y] = make([]Cell, size)
		for x := range cells[y] {
			cells[y][x] = Cell{Type: Empty}
		}
	}

	return &Board{size: size, cells: cells}, nil
}

// Size returns the side length of the board
func (b *Board) Size() int {
	return b.size
}

// InBounds reports whether (x,y) lies within [0,size) on both axes
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.size && y < b.size
}

// Get returns the cell at (x,y)
func (b *Board) Get(x, y int) (Cell, error) {
	if !b.InBounds(x, y) {
		return Cell{}, fmt.Errorf("get (%d,%d) on %dx%d board: %w", x, y, b.size, b.size, ErrOutOfRange)
	}
	return b.cells[y][x], nil
}

// Set replaces the cell at (x,y)
func (b *Board) Set(x, y int, cell Cell) error {
	if !b.InBounds(x, y) {
		return fmt.Errorf("set (%d,%d) on %dx%d board: %w", x, y, b.size, b.size, ErrOutOfRange)
	}
	b.cells[y][x] = cell
	return nil
}

// IsEmpty reports whether the cell at (x,y) is Empty. Out-of-range
// coordinates are never empty.
func (b *Board) IsEmpty(x, y int) bool {
	if !b.InBounds(x, y) {
		return false
	}
	return b.cells[y][x].Type == Empty
}

// ForEach visits every cell in row-major order
func (b *Board) ForEach(fn func(x, y int, cell Cell)) {
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			fn(x, y, b.cells[y][x])
		}
	}
}

// Count returns the number of cells of the given type
func (b *Board) Count(cellType CellType) int {
	count := 0
	b.ForEach(func(_, _ int, cell Cell) {
		if cell.Type == cellType {
			count++
		}
	})
	return count
}
