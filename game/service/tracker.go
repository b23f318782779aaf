package service

import (
	"context"

	"github.com/wricardo/battlefield-sim/game/engine"
)

// Tracker collects run statistics from engine events. With stop_on_exit it
// also ends the run by cancelling ctx with engine.ErrMissionComplete the
// first time the exit is entered.
type Tracker struct {
	stopOnExit bool
	cancel     context.CancelCauseFunc

	movesApplied      int
	suppliesCollected int
	trapsHit          int
	pointsGained      int
	pointsLost        int
	missionComplete   bool
	events            int
}

// NewTracker creates a tracker for config. cancel may be nil when the run
// should never be stopped early.
func NewTracker(config *engine.RunConfig, cancel context.CancelCauseFunc) *Tracker {
	return &Tracker{
		stopOnExit: config.Rules.StopOnExit,
		cancel:     cancel,
	}
}

// Attach subscribes the tracker to every event kind of eng
func (t *Tracker) Attach(eng *engine.Engine) {
	eng.On(engine.MoveApplied, t.onMoveApplied)
	eng.On(engine.ScoreChanged, t.onScoreChanged)
	eng.On(engine.CellEntered, t.onCellEntered)
}

func (t *Tracker) onMoveApplied(engine.Event) {
	t.events++
	t.movesApplied++
}

func (t *Tracker) onScoreChanged(ev engine.Event) {
	t.events++
	switch {
	case ev.Delta > 0:
		t.pointsGained += ev.Delta
	case ev.Delta < 0:
		t.pointsLost -= ev.Delta
	}
}

func (t *Tracker) onCellEntered(ev engine.Event) {
	t.events++
	switch ev.Cell.Type {
	case engine.Supply:
		t.suppliesCollected++
	case engine.Trap:
		t.trapsHit++
	case engine.Exit:
		if t.missionComplete {
			return
		}
		t.missionComplete = true
		if t.stopOnExit && t.cancel != nil {
			t.cancel(engine.ErrMissionComplete)
		}
	}
}

// SuppliesCollected returns the number of supply cells entered so far
func (t *Tracker) SuppliesCollected() int {
	return t.suppliesCollected
}

// TrapsHit returns the number of trap cells entered so far
func (t *Tracker) TrapsHit() int {
	return t.trapsHit
}

// MissionComplete reports whether the exit was entered
func (t *Tracker) MissionComplete() bool {
	return t.missionComplete
}

// Fill copies the collected counters into report
func (t *Tracker) Fill(report *RunReport) {
	report.MovesApplied = t.movesApplied
	report.SuppliesCollected = t.suppliesCollected
	report.TrapsHit = t.trapsHit
	report.PointsGained = t.pointsGained
	report.PointsLost = t.pointsLost
	report.MissionComplete = t.missionComplete
	report.Events = t.events
}
