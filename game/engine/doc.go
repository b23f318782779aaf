// Package engine provides the core simulation logic for the battlefield sim.
//
// The engine package implements:
//   - A fixed-size square Board of typed Cells (empty, supply, trap, exit)
//   - Phases that stamp the exit, scatter supplies and traps, and walk the
//     player through a scripted move list
//   - Pluggable scoring strategies invoked on every cell entry
//   - A synchronous, typed event bus (move applied, score changed, cell entered)
//   - ASCII, lipgloss and fog-of-war renderers
//   - Run configuration and validation
//
// Core Types:
//
// Engine runs a list of Phase values in order against one Board and one
// GameState, rendering after each phase. RunConfig describes a run and is
// normally loaded through the config package.
//
// Usage:
//
//	board, _ := engine.NewBoard(15)
//	state := engine.NewGameState(engine.Position{X: 0, Y: 0})
//	phases := []engine.Phase{
//		&engine.PlaceExit{Exit: engine.Position{X: 14, Y: 14}},
//		&engine.RunMoves{Moves: []string{"R", "D"}, Scoring: engine.ScoreByCellValue{}},
//	}
//
//	eng, err := engine.NewEngine(board, state, phases, engine.NewASCIIRenderer(os.Stdout))
//	if err != nil {
//		log.Fatal(err)
//	}
//	eng.On(engine.CellEntered, func(ev engine.Event) {
//		if ev.Cell.Type == engine.Exit {
//			fmt.Println("mission complete")
//		}
//	})
//	err = eng.Run(ctx)
//
// Rules:
//
// Moves that would leave the board are ignored without an event. Entering a
// cell triggers the scoring strategy; the default adds the cell's value.
// Reaching the exit is not special inside the move phase: collaborators
// observing CellEntered decide what it means.
package engine
