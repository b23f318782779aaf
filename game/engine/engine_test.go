package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPhase struct {
	name  string
	calls *[]string
	err   error
	apply func(board *Board, state *GameState, emit EmitFunc)
}

func (p *stubPhase) Name() string { return p.name }

func (p *stubPhase) Apply(_ context.Context, board *Board, state *GameState, emit EmitFunc) error {
	*p.calls = append(*p.calls, "apply:"+p.name)
	if p.apply != nil {
		p.apply(board, state, emit)
	}
	return p.err
}

type stubRenderer struct {
	calls *[]string
}

func (r *stubRenderer) Render(*Board, *GameState) {
	*r.calls = append(*r.calls, "render")
}

func newTestEngine(t *testing.T, phases []Phase, renderer Renderer) *Engine {
	t.Helper()
	board, err := NewBoard(15)
	require.NoError(t, err)
	eng, err := NewEngine(board, NewGameState(Position{}), phases, renderer)
	require.NoError(t, err)
	return eng
}

func TestNewEngine_RequiresBoardAndState(t *testing.T) {
	board, err := NewBoard(3)
	require.NoError(t, err)

	_, err = NewEngine(nil, NewGameState(Position{}), nil, nil)
	assert.Error(t, err)
	_, err = NewEngine(board, nil, nil, nil)
	assert.Error(t, err)
}

func TestEngine_RunsPhasesInOrderAndRendersAfterEach(t *testing.T) {
	var calls []string
	phases := []Phase{
		&stubPhase{name: "a", calls: &calls},
		&stubPhase{name: "b", calls: &calls},
		&stubPhase{name: "c", calls: &calls},
	}
	eng := newTestEngine(t, phases, &stubRenderer{calls: &calls})

	assert.Equal(t, StatusNotStarted, eng.Status())
	assert.Equal(t, -1, eng.CurrentPhase())

	require.NoError(t, eng.Run(context.Background()))

	assert.Equal(t, []string{"apply:a", "render", "apply:b", "render", "apply:c", "render"}, calls)
	assert.Equal(t, StatusDone, eng.Status())
	assert.Equal(t, 2, eng.CurrentPhase())
}

func TestEngine_NilRenderer(t *testing.T) {
	var calls []string
	eng := newTestEngine(t, []Phase{&stubPhase{name: "a", calls: &calls}}, nil)

	require.NoError(t, eng.Run(context.Background()))
	assert.Equal(t, []string{"apply:a"}, calls)
}

func TestEngine_RunOnce(t *testing.T) {
	eng := newTestEngine(t, nil, nil)
	require.NoError(t, eng.Run(context.Background()))
	assert.ErrorIs(t, eng.Run(context.Background()), ErrAlreadyRun)
}

func TestEngine_PhaseFailureStopsRun(t *testing.T) {
	var calls []string
	boom := errors.New("boom")
	phases := []Phase{
		&stubPhase{name: "a", calls: &calls},
		&stubPhase{name: "b", calls: &calls, err: boom},
		&stubPhase{name: "c", calls: &calls},
	}
	eng := newTestEngine(t, phases, &stubRenderer{calls: &calls})

	err := eng.Run(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "phase b")
	assert.Equal(t, []string{"apply:a", "render", "apply:b"}, calls)
	assert.Equal(t, StatusFailed, eng.Status())
	assert.Equal(t, 1, eng.CurrentPhase())
}

func TestEngine_CancelledPhaseStillRenders(t *testing.T) {
	var calls []string
	ctx, cancel := context.WithCancelCause(context.Background())
	phases := []Phase{
		&stubPhase{name: "a", calls: &calls, err: ErrMissionComplete, apply: func(*Board, *GameState, EmitFunc) {
			cancel(ErrMissionComplete)
		}},
		&stubPhase{name: "b", calls: &calls},
	}
	eng := newTestEngine(t, phases, &stubRenderer{calls: &calls})

	err := eng.Run(ctx)
	assert.ErrorIs(t, err, ErrMissionComplete)
	assert.Equal(t, StatusStopped, eng.Status())
	assert.Equal(t, []string{"apply:a", "render"}, calls)
}

func TestEngine_EmitCallsHandlersInRegistrationOrder(t *testing.T) {
	var order []string
	eng := newTestEngine(t, nil, nil)

	eng.On(ScoreChanged, func(Event) { order = append(order, "first") })
	eng.On(ScoreChanged, func(Event) { order = append(order, "second") })
	eng.On(CellEntered, func(Event) { order = append(order, "other") })

	eng.Emit(Event{Kind: ScoreChanged, Delta: 1, Score: 1})
	assert.Equal(t, []string{"first", "second"}, order)

	eng.Emit(Event{Kind: MoveApplied})
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestEngine_FullRun(t *testing.T) {
	board, err := NewBoard(15)
	require.NoError(t, err)
	start, exit := Position{X: 0, Y: 0}, Position{X: 14, Y: 14}
	state := NewGameState(start)

	phases := []Phase{
		&PlaceExit{Exit: exit},
		&PlaceSpecialCells{
			Supplies:    20,
			Traps:       15,
			SupplyRange: ValueRange{Min: 5, Max: 20},
			TrapRange:   ValueRange{Min: -15, Max: -3},
			Blocked:     []Position{start, exit},
			Rand:        NewRand(7),
		},
		&RunMoves{Moves: []string{"R", "R", "D", "D", "L", "D", "R"}, Scoring: ScoreByCellValue{}},
	}

	var out bytes.Buffer
	eng, err := NewEngine(board, state, phases, NewASCIIRenderer(&out))
	require.NoError(t, err)

	sum := 0
	eng.On(CellEntered, func(ev Event) { sum += ev.Cell.Value })

	require.NoError(t, eng.Run(context.Background()))

	assert.Equal(t, Position{X: 2, Y: 3}, state.Player)
	assert.Equal(t, sum, state.Score)
	assert.Equal(t, 3, strings.Count(out.String(), "Score:"))
	assert.Equal(t, 20, board.Count(Supply))
	assert.Equal(t, 15, board.Count(Trap))
}

func TestEvent_JSONKeepsZeroScore(t *testing.T) {
	data, err := json.Marshal(Event{Kind: ScoreChanged, Delta: -3, Score: 0})
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, float64(0), fields["score"])
	assert.Equal(t, float64(-3), fields["delta"])

	data, err = json.Marshal(Event{Kind: ScoreChanged})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"delta":0`)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "not_started", StatusNotStarted.String())
	assert.Equal(t, "running", StatusRunning.String())
	assert.Equal(t, "done", StatusDone.String())
	assert.Equal(t, "stopped", StatusStopped.String())
	assert.Equal(t, "failed", StatusFailed.String())
	assert.Equal(t, "move_applied", MoveApplied.String())
	assert.Equal(t, "score_changed", ScoreChanged.String())
	assert.Equal(t, "cell_entered", CellEntered.String())
}
