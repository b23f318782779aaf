// Package config provides configuration management for the battlefield
// simulator.
//
// The config package handles:
//   - Loading run configurations from JSON and HCL files
//   - Configuration validation
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Configurations live in a single directory. A bare name such as "classic"
// resolves to classic.json, then classic.hcl. JSON files mirror
// engine.RunConfig field for field. HCL files use the same attribute names
// and may refer to board_size anywhere below it:
//
//	name       = "corner"
//	board_size = 10
//	moves      = ["R", "R", "D"]
//
//	start {
//	  x = 0
//	  y = 0
//	}
//
//	exit {
//	  x = board_size - 1
//	  y = board_size - 1
//	}
//
//	specials {
//	  supplies = 8
//	  traps    = 6
//	}
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load specific configuration
//	runConfig, err := manager.LoadConfig("corner")
//
//	// Get default configuration
//	defaultConfig := manager.GetDefault()
//
//	// List available configurations
//	configs, err := manager.ListConfigs()
//
// When no classic configuration exists the manager falls back to the first
// valid file in the directory, then to engine.DefaultRunConfig.
package config
