package engine

import (
	"context"
	"fmt"

	"github.com/wricardo/battlefield-sim/logging"
)

// Status is the engine's position in its run lifecycle
type Status int

const (
	StatusNotStarted Status = iota
	StatusRunning
	StatusDone
	StatusStopped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "not_started"
	case StatusRunning:
		return "running"
	case StatusDone:
		return "done"
	case StatusStopped:
		return "stopped"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Engine runs a fixed list of phases against one board and state, in order,
// rendering after each phase. It never imports concrete phases, strategies
// or renderers.
type Engine struct {
	board    *Board
	state    *GameState
	phases   []Phase
	renderer Renderer
	bus      *Bus

	status  Status
	current int
}

// NewEngine creates an engine. renderer may be nil.
func NewEngine(board *Board, state *GameState, phases []Phase, renderer Renderer) (*Engine, error) {
	if board == nil {
		return nil, fmt.Errorf("board cannot be nil")
	}
	if state == nil {
		return nil, fmt.Errorf("state cannot be nil")
	}

	return &Engine{
		board:    board,
		state:    state,
		phases:   phases,
		renderer: renderer,
		bus:      NewBus(),
		current:  -1,
	}, nil
}

// On registers a handler for kind
func (e *Engine) On(kind EventKind, h Handler) {
	e.bus.On(kind, h)
}

// Emit dispatches ev synchronously to every handler for its kind
func (e *Engine) Emit(ev Event) {
	e.bus.Emit(ev)
}

// Run applies each phase to completion and then renders. It may be called
// once. If ctx is cancelled while a phase runs, the board is still rendered,
// the status becomes StatusStopped and the cancellation cause is returned.
func (e *Engine) Run(ctx context.Context) error {
	if e.status != StatusNotStarted {
		return ErrAlreadyRun
	}

	logger := logging.FromContext(ctx)
	e.status = StatusRunning

	for i, phase := range e.phases {
		e.current = i
		logger.Debug("phase started", "phase", phase.Name(), "index", i)

		if err := phase.Apply(ctx, e.board, e.state, e.Emit); err != nil {
			if ctx.Err() != nil {
				e.status = StatusStopped
				e.render()
				logger.Debug("run stopped", "phase", phase.Name(), "cause", err)
				return fmt.Errorf("phase %s: %w", phase.Name(), err)
			}
			e.status = StatusFailed
			return fmt.Errorf("phase %s: %w", phase.Name(), err)
		}

		e.render()
		logger.Debug("phase finished", "phase", phase.Name(), "score", e.state.Score)
	}

	e.status = StatusDone
	return nil
}

func (e *Engine) render() {
	if e.renderer != nil {
		e.renderer.Render(e.board, e.state)
	}
}

// Status returns the lifecycle status
func (e *Engine) Status() Status {
	return e.status
}

// CurrentPhase returns the index of the phase running or last run, or -1
func (e *Engine) CurrentPhase() int {
	return e.current
}

// Board returns the engine's board
func (e *Engine) Board() *Board {
	return e.board
}

// State returns the engine's game state
func (e *Engine) State() *GameState {
	return e.state
}
