package engine

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const PlayerGlyph = "P"

// Fog-of-war glyphs
const (
	HiddenGlyph = " "
	TrailGlyph  = "."
)

// Renderer draws the board after each phase
type Renderer interface {
	Render(board *Board, state *GameState)
}

// Glyph maps a cell type to its single-character representation
func Glyph(t CellType) string {
	switch t {
	case Empty:
		return "."
	case Supply:
		return "C"
	case Trap:
		return "M"
	case Exit:
		return "O"
	}
	return "?"
}

// Frame returns the plain text grid for board and state followed by a
// score line. It is a pure function of its inputs.
func Frame(board *Board, state *GameState) string {
	return frame(board, state, func(glyph string, _ CellType, _ bool) string { return glyph })
}

func frame(board *Board, state *GameState, paint func(glyph string, t CellType, player bool) string) string {
	var sb strings.Builder
	size := board.Size()
	row := make([]string, size)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			cell := board.cells[y][x]
			if x == state.Player.X && y == state.Player.Y {
				row[x] = paint(PlayerGlyph, cell.Type, true)
				continue
			}
			row[x] = paint(Glyph(cell.Type), cell.Type, false)
		}
		sb.WriteString(strings.Join(row, " "))
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "Score: %d\n", state.Score)

	return sb.String()
}

// ASCIIRenderer writes Frame output to Out
type ASCIIRenderer struct {
	Out io.Writer
}

func NewASCIIRenderer(w io.Writer) *ASCIIRenderer {
	return &ASCIIRenderer{Out: w}
}

func (r *ASCIIRenderer) Render(board *Board, state *GameState) {
	fmt.Fprint(r.Out, Frame(board, state))
}

// StyledRenderer colors each glyph with lipgloss. The layout matches
// ASCIIRenderer; colors are dropped when Out is not a terminal.
type StyledRenderer struct {
	Out    io.Writer
	Cells  map[CellType]lipgloss.Style
	Player lipgloss.Style
}

func NewStyledRenderer(w io.Writer) *StyledRenderer {
	r := lipgloss.NewRenderer(w)
	return &StyledRenderer{
		Out: w,
		Cells: map[CellType]lipgloss.Style{
			Empty:  r.NewStyle().Foreground(lipgloss.Color("240")),
			Supply: r.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
			Trap:   r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
			Exit:   r.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		},
		Player: r.NewStyle().Foreground(lipgloss.Color("213")).Bold(true),
	}
}

func (r *StyledRenderer) Render(board *Board, state *GameState) {
	out := frame(board, state, func(glyph string, t CellType, player bool) string {
		if player {
			return r.Player.Render(glyph)
		}
		if style, ok := r.Cells[t]; ok {
			return style.Render(glyph)
		}
		return glyph
	})
	fmt.Fprint(r.Out, out)
}

// RunStats exposes the counters an event subscriber keeps during a run
type RunStats interface {
	SuppliesCollected() int
	TrapsHit() int
}

// FogFrame draws the board as the player has seen it. The exit is always
// visible, cells the player has stood on show their contents (empty ones as
// a trail) and every other cell is hidden. The status line carries the
// supply and trap counters only when stats is non-nil.
func FogFrame(board *Board, state *GameState, supplies int, stats RunStats) string {
	seen := make(map[Position]bool, len(state.Path))
	for _, p := range state.Path {
		seen[p] = true
	}

	var sb strings.Builder
	size := board.Size()
	row := make([]string, size)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			pos := Position{X: x, Y: y}
			cell := board.cells[y][x]
			switch {
			case pos == state.Player:
				row[x] = PlayerGlyph
			case seen[pos] && cell.Type == Empty:
				row[x] = TrailGlyph
			case seen[pos], cell.Type == Exit:
				row[x] = Glyph(cell.Type)
			default:
				row[x] = HiddenGlyph
			}
		}
		sb.WriteString(strings.Join(row, " "))
		sb.WriteByte('\n')
	}

	fmt.Fprintf(&sb, "Pos=%s | Score=%d", state.Player, state.Score)
	if stats != nil {
		fmt.Fprintf(&sb, " | Supplies=%d/%d | Traps hit=%d", stats.SuppliesCollected(), supplies, stats.TrapsHit())
	}
	sb.WriteByte('\n')

	return sb.String()
}

// FogRenderer writes FogFrame output. Attached to an engine it also redraws
// after every applied move. A frame identical to the previous one is not
// written again.
type FogRenderer struct {
	Out      io.Writer
	Supplies int // placed, for the status line
	Stats    RunStats

	last string
}

func NewFogRenderer(w io.Writer) *FogRenderer {
	return &FogRenderer{Out: w}
}

func (r *FogRenderer) Render(board *Board, state *GameState) {
	out := FogFrame(board, state, r.Supplies, r.Stats)
	if out == r.last {
		return
	}
	r.last = out
	fmt.Fprint(r.Out, out)
}

// Attach redraws on CellEntered, the last event of an applied move, so the
// frame includes that move's score. Attach Stats to eng before calling this.
func (r *FogRenderer) Attach(eng *Engine) {
	eng.On(CellEntered, func(Event) {
		r.Render(eng.Board(), eng.State())
	})
}

// NewRenderer picks a renderer by style name: "plain", "styled", "fog" or
// "none". "none" returns a nil Renderer.
func NewRenderer(style string, w io.Writer) (Renderer, error) {
	switch style {
	case "", "plain":
		return NewASCIIRenderer(w), nil
	case "styled":
		return NewStyledRenderer(w), nil
	case "fog":
		return NewFogRenderer(w), nil
	case "none":
		return nil, nil
	}
	return nil, fmt.Errorf("unknown render style %q", style)
}
