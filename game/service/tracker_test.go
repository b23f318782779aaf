package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/battlefield-sim/game/engine"
)

func TestTracker_Counts(t *testing.T) {
	tr := NewTracker(engine.DefaultRunConfig(), nil)

	tr.onMoveApplied(engine.Event{Kind: engine.MoveApplied})
	tr.onScoreChanged(engine.Event{Kind: engine.ScoreChanged, Delta: 12})
	tr.onCellEntered(engine.Event{Kind: engine.CellEntered, Cell: engine.Cell{Type: engine.Supply, Value: 12}})

	tr.onMoveApplied(engine.Event{Kind: engine.MoveApplied})
	tr.onScoreChanged(engine.Event{Kind: engine.ScoreChanged, Delta: -5})
	tr.onCellEntered(engine.Event{Kind: engine.CellEntered, Cell: engine.Cell{Type: engine.Trap, Value: -5}})

	tr.onMoveApplied(engine.Event{Kind: engine.MoveApplied})
	tr.onScoreChanged(engine.Event{Kind: engine.ScoreChanged})
	tr.onCellEntered(engine.Event{Kind: engine.CellEntered, Cell: engine.Cell{Type: engine.Empty}})

	var stats engine.RunStats = tr
	assert.Equal(t, 1, stats.SuppliesCollected())
	assert.Equal(t, 1, stats.TrapsHit())

	var report RunReport
	tr.Fill(&report)

	assert.Equal(t, 3, report.MovesApplied)
	assert.Equal(t, 1, report.SuppliesCollected)
	assert.Equal(t, 1, report.TrapsHit)
	assert.Equal(t, 12, report.PointsGained)
	assert.Equal(t, 5, report.PointsLost)
	assert.Equal(t, 9, report.Events)
	assert.False(t, report.MissionComplete)
}

func TestTracker_ExitWithoutStop(t *testing.T) {
	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	tr := NewTracker(engine.DefaultRunConfig(), cancel)
	tr.onCellEntered(engine.Event{Kind: engine.CellEntered, Cell: engine.Cell{Type: engine.Exit}})

	assert.True(t, tr.MissionComplete())
	assert.NoError(t, ctx.Err())
}

func TestTracker_StopOnExit(t *testing.T) {
	cfg := engine.DefaultRunConfig()
	cfg.Rules.StopOnExit = true

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	tr := NewTracker(cfg, cancel)
	tr.onCellEntered(engine.Event{Kind: engine.CellEntered, Cell: engine.Cell{Type: engine.Exit}})

	require.Error(t, ctx.Err())
	assert.ErrorIs(t, context.Cause(ctx), engine.ErrMissionComplete)
	assert.True(t, tr.MissionComplete())
}

func TestTracker_AttachCountsEngineEvents(t *testing.T) {
	board, err := engine.NewBoard(3)
	require.NoError(t, err)
	require.NoError(t, board.Set(1, 0, engine.Cell{Type: engine.Supply, Value: 4}))

	eng, err := engine.NewEngine(board, engine.NewGameState(engine.Position{}), []engine.Phase{
		&engine.RunMoves{Moves: []string{"R", "D"}, Scoring: engine.ScoreByCellValue{}},
	}, nil)
	require.NoError(t, err)

	tr := NewTracker(engine.DefaultRunConfig(), nil)
	tr.Attach(eng)
	require.NoError(t, eng.Run(context.Background()))

	var report RunReport
	tr.Fill(&report)
	assert.Equal(t, 2, report.MovesApplied)
	assert.Equal(t, 1, report.SuppliesCollected)
	assert.Equal(t, 6, report.Events)
}
