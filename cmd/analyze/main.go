// Command analyze prints quick, human-readable heuristics about the run
// configurations in a config directory. It summarizes board size, special
// cell density, where the scripted moves end up and how many specials the
// path is expected to cross.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/wricardo/battlefield-sim/game/config"
	"github.com/wricardo/battlefield-sim/game/engine"
)

// Analysis holds the heuristics computed for one configuration
type Analysis struct {
	Name         string
	BoardSize    int
	Cells        int
	Specials     int
	Density      float64 // specials per free cell
	ExitDistance int     // Manhattan distance start to exit

	Moves        int
	InvalidMoves int
	Bumps        int // moves that would leave the board
	Path         []engine.Position
	FinalPos     engine.Position
	ReachesExit  bool

	// Expected special cells entered, under Assumptions
	ExpectedSupplies float64
	ExpectedTraps    float64
	ExpectedScore    float64
	Assumptions      []string
}

func main() {
	dir := "configs"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	} else if env := os.Getenv("CONFIG_DIR"); env != "" {
		dir = env
	}

	manager, err := config.NewManager(dir)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	infos, err := manager.ListConfigs()
	if err != nil {
		fmt.Printf("Error listing configs: %v\n", err)
		os.Exit(1)
	}

	for _, info := range infos {
		fmt.Printf("\n=== Analyzing %s ===\n", info.Filename)
		cfg, err := manager.LoadConfig(info.ConfigID)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			continue
		}
		printAnalysis(os.Stdout, analyze(cfg))
	}
}

func analyze(cfg *engine.RunConfig) Analysis {
	n := cfg.BoardSize
	a := Analysis{
		Name:         cfg.Name,
		BoardSize:    n,
		Cells:        n * n,
		Specials:     cfg.Specials.Supplies + cfg.Specials.Traps,
		ExitDistance: engine.ManhattanDistance(cfg.Start, cfg.Exit),
		Moves:        len(cfg.Moves),
	}

	free := a.Cells - 2
	if free > 0 {
		a.Density = float64(a.Specials) / float64(free)
	}

	plan := engine.PlanMoves(n, cfg.Start, cfg.Moves)
	a.Path = plan.Path
	a.InvalidMoves = plan.Invalid
	a.Bumps = plan.Bumps

	// Entries count every step onto a cell that may hold a special; a
	// consumed cell only pays out on its first entry.
	entries := 0
	visited := make(map[engine.Position]bool)
	for i, p := range a.Path[1:] {
		if p == cfg.Exit {
			a.ReachesExit = true
			if cfg.Rules.StopOnExit {
				a.Path = a.Path[:i+2]
				break
			}
		}
		if p != cfg.Start && p != cfg.Exit {
			entries++
			visited[p] = true
		}
	}
	a.FinalPos = a.Path[len(a.Path)-1]

	supplyHits, trapHits := float64(entries), float64(entries)
	switch cfg.Rules.Consumption {
	case engine.ConsumeSupplies:
		supplyHits = float64(len(visited))
	case engine.ConsumeAll:
		supplyHits = float64(len(visited))
		trapHits = float64(len(visited))
	}

	if free > 0 {
		a.ExpectedSupplies = supplyHits * float64(cfg.Specials.Supplies) / float64(free)
		a.ExpectedTraps = trapHits * float64(cfg.Specials.Traps) / float64(free)
		a.ExpectedScore = a.ExpectedSupplies*midpoint(cfg.Specials.SupplyRange) +
			a.ExpectedTraps*midpoint(cfg.Specials.TrapRange)
	}

	a.Assumptions = assumptions(cfg)
	return a
}

// assumptions lists what the estimates take for granted about cfg
func assumptions(cfg *engine.RunConfig) []string {
	notes := []string{"specials are placed uniformly and valued at their range midpoints"}

	consumption := cfg.Rules.Consumption
	if consumption == "" {
		consumption = engine.ConsumeNone
	}
	switch consumption {
	case engine.ConsumeNone:
		notes = append(notes, "consumption none: revisiting a cell scores it again")
	case engine.ConsumeSupplies:
		notes = append(notes, "consumption supplies: a supply pays once, traps hit on every visit")
	case engine.ConsumeAll:
		notes = append(notes, "consumption all: each cell on the path pays at most once")
	}

	if cfg.Rules.TrapsBlockMovement {
		notes = append(notes, "traps block movement: the path assumes no trap is in the way")
	}
	if cfg.Scoring.Strategy == engine.StrategyExpr {
		notes = append(notes, fmt.Sprintf("scoring expression %q is not evaluated; the score uses raw cell values", cfg.Scoring.Expression))
	}
	if cfg.Rules.StopOnExit {
		notes = append(notes, "stop on exit: the path ends at the first exit entry")
	}

	return notes
}

func midpoint(r engine.ValueRange) float64 {
	return (float64(r.Min) + float64(r.Max)) / 2
}

func printAnalysis(w io.Writer, a Analysis) {
	fmt.Fprintf(w, "Name: %s\n", a.Name)
	fmt.Fprintf(w, "Board: %d x %d (%d cells)\n", a.BoardSize, a.BoardSize, a.Cells)
	fmt.Fprintf(w, "Specials: %d (%.0f%% of free cells)\n", a.Specials, a.Density*100)
	fmt.Fprintf(w, "Start to exit: %d steps\n", a.ExitDistance)
	fmt.Fprintf(w, "Moves: %d (%d invalid, %d off-board)\n", a.Moves, a.InvalidMoves, a.Bumps)
	fmt.Fprintf(w, "Final position: %s\n", a.FinalPos)
	fmt.Fprintf(w, "Expected supplies crossed: %.2f\n", a.ExpectedSupplies)
	fmt.Fprintf(w, "Expected traps crossed: %.2f\n", a.ExpectedTraps)
	fmt.Fprintf(w, "Expected score: %.1f\n", a.ExpectedScore)

	if a.ReachesExit {
		fmt.Fprintf(w, "✅ The scripted path reaches the exit\n")
	} else {
		fmt.Fprintf(w, "⚠️  The scripted path never reaches the exit\n")
	}
	if a.InvalidMoves > 0 || a.Bumps > 0 {
		fmt.Fprintf(w, "⚠️  %d of %d moves will be ignored\n", a.InvalidMoves+a.Bumps, a.Moves)
	}
	for _, note := range a.Assumptions {
		fmt.Fprintf(w, "  assumes %s\n", note)
	}
}
