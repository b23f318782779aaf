// Package session provides the in-memory run registry for the battlefield
// simulator.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - UUID session identifiers
//   - Engine construction from a run configuration
//   - Age-based cleanup
//
// Core Types:
//
// Manager is the registry. Each service.Session owns one engine built by
// engine.NewRunEngine, the configuration and seed it was built from, and,
// once the run has finished, its report.
//
// Sessions never outlive the process.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", config, engine.BuildOptions{Seed: 42})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
//	sessions := manager.List()
package session
