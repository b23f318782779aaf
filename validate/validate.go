// Command validate provides a small CLI that validates the run
// configuration files (JSON and HCL) in a config directory. It checks:
//   - Syntax and required fields
//   - Board size, start and exit placement
//   - Special cell counts, value ranges and board capacity
//   - Consumption policy and scoring strategy (expressions are compiled)
//   - Moves: unknown tokens and moves that would leave the board are reported as warnings
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wricardo/battlefield-sim/game/config"
	"github.com/wricardo/battlefield-sim/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// Errors make a file invalid; Warnings and Info never do.
type ValidationResult struct {
	File     string
	Valid    bool
	Errors   []string
	Warnings []string
	Info     []string
}

// validateConfig loads and validates a single configuration file
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:  filepath.Base(filePath),
		Valid: true,
	}

	cfg, err := config.LoadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	result.Warnings = validateMoves(cfg)

	result.Info = append(result.Info,
		fmt.Sprintf("✓ Name: %s", cfg.Name),
		fmt.Sprintf("✓ Board: %dx%d", cfg.BoardSize, cfg.BoardSize),
		fmt.Sprintf("✓ Start %s, exit %s", cfg.Start, cfg.Exit),
		fmt.Sprintf("✓ Supplies: %d in [%d,%d]", cfg.Specials.Supplies, cfg.Specials.SupplyRange.Min, cfg.Specials.SupplyRange.Max),
		fmt.Sprintf("✓ Traps: %d in [%d,%d]", cfg.Specials.Traps, cfg.Specials.TrapRange.Min, cfg.Specials.TrapRange.Max),
		fmt.Sprintf("✓ Moves: %d", len(cfg.Moves)),
	)
	if cfg.Scoring.Strategy == engine.StrategyExpr {
		result.Info = append(result.Info, fmt.Sprintf("✓ Scoring: %s", cfg.Scoring.Expression))
	}

	return result
}

// validateMoves replays the moves on an empty board and reports tokens that
// will be ignored at run time.
func validateMoves(cfg *engine.RunConfig) []string {
	var warnings []string
	pos := cfg.Start

	for i, token := range cfg.Moves {
		dir, ok := engine.ParseDirection(token)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("Move %d %q is not a direction and will be ignored", i+1, token))
			continue
		}

		next := pos.Step(dir)
		if next.X < 0 || next.Y < 0 || next.X >= cfg.BoardSize || next.Y >= cfg.BoardSize {
			warnings = append(warnings, fmt.Sprintf("Move %d (%s) from %s would leave the board", i+1, dir, pos))
			continue
		}
		pos = next
	}

	return warnings
}

// findConfigFiles returns every .json and .hcl file in dir, sorted
func findConfigFiles(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*" + config.ExtJSON, "*" + config.ExtHCL} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

// main validates every config file in the directory given as the first
// argument (default ../configs), printing a concise report and exiting with
// non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := findConfigFiles(configDir)
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Info {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Println("  ❌ " + err)
			}
		}
		for _, warning := range result.Warnings {
			fmt.Println("  ⚠️  " + warning)
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
