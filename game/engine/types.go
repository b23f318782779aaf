package engine

import (
	"fmt"
	"strings"
)

// CellType represents different types of board cells
type CellType string

const (
	Empty  CellType = "empty"
	Supply CellType = "supply"
	Trap   CellType = "trap"
	Exit   CellType = "exit"

	// Validation constants
	MinBoardSize = 2
	MaxBoardSize = 64
)

// Cell represents a single board cell. Value is the score delta applied
// when the player enters it.
type Cell struct {
	Type  CellType `json:"type"`
	Value int      `json:"value"`
}

// Position represents x,y coordinates. X is the column, Y the row.
type Position struct {
	X int `json:"x" hcl:"x"`
	Y int `json:"y" hcl:"y"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Direction is a single move token.
type Direction string

const (
	Up    Direction = "U"
	Down  Direction = "D"
	Left  Direction = "L"
	Right Direction = "R"
)

// ParseDirection accepts U/D/L/R or up/down/left/right, case-insensitively.
func ParseDirection(token string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "u", "up":
		return Up, true
	case "d", "down":
		return Down, true
	case "l", "left":
		return Left, true
	case "r", "right":
		return Right, true
	}
	return "", false
}

// Step translates p one unit in direction d. Up decreases Y.
func (p Position) Step(d Direction) Position {
	switch d {
	case Up:
		p.Y--
	case Down:
		p.Y++
	case Left:
		p.X--
	case Right:
		p.X++
	}
	return p
}

// GameState is the mutable per-run state shared by every phase
type GameState struct {
	Player Position `json:"player"`
	Score  int      `json:"score"`

	// Path holds every position the player left, in order.
	Path []Position `json:"path"`

	// Meta is an open-ended extension map for collaborators.
	Meta map[string]any `json:"meta,omitempty"`
}

// NewGameState creates a fresh state with the player at start
func NewGameState(start Position) *GameState {
	return &GameState{
		Player: start,
		Path:   []Position{},
		Meta:   make(map[string]any),
	}
}
