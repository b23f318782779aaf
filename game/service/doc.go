// Package service provides the business logic layer for the battlefield
// simulator.
//
// The service package implements:
//   - Single and batch simulation runs
//   - Run statistics via an event Tracker
//   - Configuration lookup
//   - Run history
//
// Core Interfaces:
//
// Simulator is the main service interface providing high-level operations.
// SessionManager builds engines and stores runs. ConfigManager loads run
// configurations.
//
// Architecture:
//
// The service layer sits between the CLI and the engine. For every run it
// resolves the seed, creates a session, attaches a Tracker to the engine's
// event bus and runs it under a cancellable context. The Tracker counts
// supplies, traps and points, and when the configuration sets
// stop_on_exit it cancels the run with engine.ErrMissionComplete as soon
// as the exit is entered. That cause is treated as success.
//
// Usage:
//
//	sessions := session.NewManager()
//	configs, _ := config.NewManager("configs")
//	sim := service.NewSimulator(sessions, configs)
//
//	report, err := sim.Run(ctx, "classic", service.RunOptions{Out: os.Stdout})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	batch, err := sim.Batch(ctx, "classic", service.BatchOptions{Runs: 100, Seed: 1})
package service
