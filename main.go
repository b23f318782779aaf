// Command battlefield-sim runs scripted moves across a randomly seeded
// battlefield and reports the outcome.
//
// It supports four commands:
//  1. "run" (default) – play one configuration and render the board after every phase
//  2. "batch" – play a configuration many times with consecutive seeds and aggregate the scores
//  3. "configs" – list the configurations found in the config directory
//  4. "init" – write the built-in configuration to <config-dir>/classic.json
//
// Flags control the config directory, logging, seeds, move overrides and
// the render style.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/battlefield-sim/game/config"
	"github.com/wricardo/battlefield-sim/game/engine"
	"github.com/wricardo/battlefield-sim/game/service"
	"github.com/wricardo/battlefield-sim/game/session"
	"github.com/wricardo/battlefield-sim/logging"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "battlefield-sim"
)

// defaultConfigDir is used when neither --config-dir nor CONFIG_DIR is set
const defaultConfigDir = "configs"

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newApp builds the command tree. Output goes to the root command's Writer
// and logs to its ErrWriter, so tests can capture both.
func newApp() *cli.Command {
	return &cli.Command{
		Name:           AppName,
		Usage:          "replay scripted moves across a seeded battlefield",
		Version:        Version,
		DefaultCommand: "run",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   defaultConfigDir,
				Usage:   "directory containing run configurations",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "debug, info, warn or error",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "log-format",
				Value:   "text",
				Usage:   "text or json",
				Sources: cli.EnvVars("LOG_FORMAT"),
			},
		},
		Before: setupLogging,
		Commands: []*cli.Command{
			runCommand(),
			batchCommand(),
			configsCommand(),
			initCommand(),
		},
	}
}

func setupLogging(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	errOut := cmd.Root().ErrWriter
	if errOut == nil {
		errOut = os.Stderr
	}

	logger := logging.NewLogger(cmd.String("log-level"), cmd.String("log-format"), errOut)
	slog.SetDefault(logger)
	return logging.WithLogger(ctx, logger), nil
}

func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// initializeServices wires the session registry and config manager into a
// simulator
func initializeServices(configDir string) (service.Simulator, error) {
	configMgr, err := config.NewManager(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config manager: %w", err)
	}
	return service.NewSimulator(session.NewManager(), configMgr), nil
}

// simulatorFor opens the config directory. Without an explicit --config the
// built-in configuration is used when the directory is unavailable.
func simulatorFor(ctx context.Context, cmd *cli.Command) (service.Simulator, error) {
	dir := cmd.String("config-dir")
	sim, err := initializeServices(dir)
	if err == nil {
		return sim, nil
	}
	if cmd.String("config") != "" {
		return nil, err
	}

	logging.FromContext(ctx).Warn("config directory unavailable, using built-in configuration", "dir", dir, "error", err)
	return service.NewSimulator(session.NewManager(), nil), nil
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "play one configuration",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "configuration name (default: classic or the built-in board)"},
			&cli.Int64Flag{Name: "seed", Usage: "placement seed; 0 uses the configured seed or the clock"},
			&cli.StringFlag{Name: "moves", Usage: "comma separated moves replacing the configured list, e.g. R,R,D"},
			&cli.StringFlag{Name: "style", Value: "plain", Usage: "render style: plain, styled, fog or none"},
			&cli.BoolFlag{Name: "json", Usage: "print the run report as JSON"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			sim, err := simulatorFor(ctx, cmd)
			if err != nil {
				return err
			}

			out := stdout(cmd)
			opts := service.RunOptions{
				Out:   out,
				Style: cmd.String("style"),
				Seed:  cmd.Int64("seed"),
				Moves: parseMoves(cmd.String("moves")),
			}
			if cmd.Bool("json") {
				opts.Out = nil
			}

			report, err := sim.Run(ctx, cmd.String("config"), opts)
			if err != nil {
				return err
			}

			if cmd.Bool("json") {
				return writeJSON(out, report)
			}
			printRunSummary(out, report)
			return nil
		},
	}
}

func batchCommand() *cli.Command {
	return &cli.Command{
		Name:  "batch",
		Usage: "play a configuration many times and aggregate the results",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "configuration name"},
			&cli.IntFlag{Name: "runs", Aliases: []string{"n"}, Value: 100, Usage: "number of runs"},
			&cli.Int64Flag{Name: "seed", Usage: "base seed; run i uses seed+i"},
			&cli.StringFlag{Name: "moves", Usage: "comma separated moves replacing the configured list"},
			&cli.IntFlag{Name: "parallel", Usage: "concurrent runs (default: one per CPU)"},
			&cli.BoolFlag{Name: "json", Usage: "print the batch report as JSON"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			sim, err := simulatorFor(ctx, cmd)
			if err != nil {
				return err
			}

			batch, err := sim.Batch(ctx, cmd.String("config"), service.BatchOptions{
				Runs:     cmd.Int("runs"),
				Seed:     cmd.Int64("seed"),
				Moves:    parseMoves(cmd.String("moves")),
				Parallel: cmd.Int("parallel"),
			})
			if err != nil {
				return err
			}

			out := stdout(cmd)
			if cmd.Bool("json") {
				return writeJSON(out, batch)
			}
			printBatchSummary(out, batch)
			return nil
		},
	}
}

func configsCommand() *cli.Command {
	return &cli.Command{
		Name:  "configs",
		Usage: "list available configurations",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			sim, err := initializeServices(cmd.String("config-dir"))
			if err != nil {
				return err
			}

			infos, err := sim.ListConfigs(ctx)
			if err != nil {
				return err
			}

			out := stdout(cmd)
			if len(infos) == 0 {
				fmt.Fprintf(out, "No configurations in %s (run `%s init` to create one)\n", cmd.String("config-dir"), AppName)
				return nil
			}

			rows := make([][]string, 0, len(infos))
			for _, info := range infos {
				rows = append(rows, []string{
					info.ConfigID,
					info.Format,
					fmt.Sprintf("%dx%d", info.BoardSize, info.BoardSize),
					strconv.Itoa(info.Supplies),
					strconv.Itoa(info.Traps),
					strconv.Itoa(info.Moves),
					info.Description,
				})
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("ID", "FORMAT", "BOARD", "SUPPLIES", "TRAPS", "MOVES", "DESCRIPTION").
				Rows(rows...)
			fmt.Fprintln(out, t.String())
			return nil
		},
	}
}

func initCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "write the built-in configuration to <config-dir>/classic.json",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "force", Usage: "overwrite an existing classic.json"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := cmd.String("config-dir")
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create config directory: %w", err)
			}

			path := filepath.Join(dir, config.DefaultConfigName+config.ExtJSON)
			if _, err := os.Stat(path); err == nil && !cmd.Bool("force") {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to check %s: %w", path, err)
			}

			configMgr, err := config.NewManager(dir)
			if err != nil {
				return err
			}
			if err := configMgr.SaveConfig(config.DefaultConfigName, engine.DefaultRunConfig()); err != nil {
				return err
			}

			logging.FromContext(ctx).Info("configuration written", "path", path)
			fmt.Fprintf(stdout(cmd), "Wrote %s\n", path)
			return nil
		},
	}
}

// parseMoves splits a comma separated move list. An empty string yields nil
// so the configured moves are kept.
func parseMoves(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	moves := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			moves = append(moves, p)
		}
	}
	return moves
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printRunSummary(w io.Writer, r *service.RunReport) {
	mission := "incomplete"
	if r.MissionComplete {
		mission = "complete"
	}

	fmt.Fprintf(w, "\nRun %s (%s, seed %d)\n", r.ID, r.ConfigName, r.Seed)
	fmt.Fprintf(w, "  Final position: %s\n", r.FinalPosition)
	fmt.Fprintf(w, "  Score:          %d (+%d / -%d)\n", r.Score, r.PointsGained, r.PointsLost)
	fmt.Fprintf(w, "  Moves:          %d of %d applied\n", r.MovesApplied, r.MovesRequested)
	fmt.Fprintf(w, "  Supplies:       %d collected of %d placed\n", r.SuppliesCollected, r.SuppliesPlaced)
	fmt.Fprintf(w, "  Traps hit:      %d\n", r.TrapsHit)
	fmt.Fprintf(w, "  Mission:        %s\n", mission)
}

func printBatchSummary(w io.Writer, b *service.BatchReport) {
	fmt.Fprintf(w, "Batch %s: %d runs from seed %d\n", b.ConfigName, b.Runs, b.BaseSeed)
	fmt.Fprintf(w, "  Score:     mean %.2f, min %d, max %d\n", b.MeanScore, b.MinScore, b.MaxScore)
	fmt.Fprintf(w, "  Supplies:  %.2f per run\n", b.MeanSupplies)
	fmt.Fprintf(w, "  Traps hit: %.2f per run\n", b.MeanTrapsHit)
	fmt.Fprintf(w, "  Exit rate: %.1f%%\n", b.ExitRate*100)
}
