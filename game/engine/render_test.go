package engine

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBoard(t *testing.T) (*Board, *GameState) {
	t.Helper()
	board, err := NewBoard(3)
	require.NoError(t, err)
	require.NoError(t, board.Set(1, 0, Cell{Type: Supply, Value: 5}))
	require.NoError(t, board.Set(0, 2, Cell{Type: Trap, Value: -3}))
	require.NoError(t, board.Set(2, 2, Cell{Type: Exit}))

	state := NewGameState(Position{X: 1, Y: 1})
	state.Score = 7
	return board, state
}

func TestFrame(t *testing.T) {
	board, state := sampleBoard(t)

	want := ". C .\n" +
		". P .\n" +
		"M . O\n" +
		"Score: 7\n"
	assert.Equal(t, want, Frame(board, state))
}

func TestFrame_PlayerOverridesCell(t *testing.T) {
	board, state := sampleBoard(t)
	state.Player = Position{X: 2, Y: 2}

	lines := strings.Split(Frame(board, state), "\n")
	assert.Equal(t, "M . P", lines[2])
}

func TestFrame_Idempotent(t *testing.T) {
	board, state := sampleBoard(t)
	assert.Equal(t, Frame(board, state), Frame(board, state))

	var a, b bytes.Buffer
	NewASCIIRenderer(&a).Render(board, state)
	NewASCIIRenderer(&b).Render(board, state)
	assert.Equal(t, a.String(), b.String())
}

func TestGlyph(t *testing.T) {
	assert.Equal(t, ".", Glyph(Empty))
	assert.Equal(t, "C", Glyph(Supply))
	assert.Equal(t, "M", Glyph(Trap))
	assert.Equal(t, "O", Glyph(Exit))
	assert.Equal(t, "?", Glyph(CellType("lava")))
}

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func TestStyledRenderer_SameLayout(t *testing.T) {
	board, state := sampleBoard(t)

	var buf bytes.Buffer
	NewStyledRenderer(&buf).Render(board, state)

	assert.Equal(t, Frame(board, state), ansi.ReplaceAllString(buf.String(), ""))
}

func TestNewRenderer(t *testing.T) {
	var buf bytes.Buffer

	r, err := NewRenderer("plain", &buf)
	require.NoError(t, err)
	assert.IsType(t, &ASCIIRenderer{}, r)

	r, err = NewRenderer("styled", &buf)
	require.NoError(t, err)
	assert.IsType(t, &StyledRenderer{}, r)

	r, err = NewRenderer("fog", &buf)
	require.NoError(t, err)
	assert.IsType(t, &FogRenderer{}, r)

	r, err = NewRenderer("none", &buf)
	require.NoError(t, err)
	assert.Nil(t, r)

	_, err = NewRenderer("neon", &buf)
	assert.Error(t, err)
}

type fixedStats struct{ supplies, traps int }

func (s fixedStats) SuppliesCollected() int { return s.supplies }
func (s fixedStats) TrapsHit() int          { return s.traps }

func TestFogFrame(t *testing.T) {
	board, state := sampleBoard(t)
	state.Path = []Position{{X: 0, Y: 0}, {X: 1, Y: 0}}

	want := ". C  \n" +
		"  P  \n" +
		"    O\n" +
		"Pos=(1,1) | Score=7 | Supplies=2/5 | Traps hit=1\n"
	assert.Equal(t, want, FogFrame(board, state, 5, fixedStats{supplies: 2, traps: 1}))
}

func TestFogFrame_RevealsVisitedTrap(t *testing.T) {
	board, state := sampleBoard(t)
	state.Path = []Position{{X: 0, Y: 2}}

	lines := strings.Split(FogFrame(board, state, 0, nil), "\n")
	assert.Equal(t, "M   O", lines[2])
	assert.Equal(t, "     ", lines[0], "unvisited supply stays hidden")
	assert.Equal(t, "Pos=(1,1) | Score=7", lines[3])
}

func TestFogFrame_ConsumedCellBecomesTrail(t *testing.T) {
	board, state := sampleBoard(t)
	state.Path = []Position{{X: 1, Y: 0}}
	require.NoError(t, board.Set(1, 0, Cell{Type: Empty}))

	lines := strings.Split(FogFrame(board, state, 0, nil), "\n")
	assert.Equal(t, "  .  ", lines[0])
}

func TestFogRenderer_SkipsRepeatedFrames(t *testing.T) {
	board, state := sampleBoard(t)

	var buf bytes.Buffer
	r := NewFogRenderer(&buf)
	r.Render(board, state)
	r.Render(board, state)
	assert.Equal(t, 1, strings.Count(buf.String(), "Pos="))

	state.Score = 8
	r.Render(board, state)
	assert.Equal(t, 2, strings.Count(buf.String(), "Pos="))
}

func TestFogRenderer_RedrawsAfterEachMove(t *testing.T) {
	board, err := NewBoard(3)
	require.NoError(t, err)
	require.NoError(t, board.Set(1, 0, Cell{Type: Supply, Value: 4}))
	state := NewGameState(Position{X: 0, Y: 0})

	moves := &RunMoves{Moves: []string{"R", "up", "jump", "D"}, Scoring: ScoreByCellValue{}}
	var buf bytes.Buffer
	fog := NewFogRenderer(&buf)
	fog.Supplies = 1

	eng, err := NewEngine(board, state, []Phase{&PlaceExit{Exit: Position{X: 2, Y: 2}}, moves}, fog)
	require.NoError(t, err)
	fog.Attach(eng)

	require.NoError(t, eng.Run(context.Background()))

	out := buf.String()
	assert.Equal(t, 3, strings.Count(out, "Pos="), "initial frame plus one per applied move:\n%s", out)
	assert.Contains(t, out, "Pos=(0,0) | Score=0\n")
	assert.Contains(t, out, "P    \n     \n    O\nPos=(0,0)")
	assert.Contains(t, out, ". P  \n     \n    O\nPos=(1,0) | Score=4\n")
	assert.True(t, strings.HasSuffix(out, ". C  \n  P  \n    O\nPos=(1,1) | Score=4\n"), "got:\n%s", out)
}
