package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wricardo/battlefield-sim/game/engine"
	"github.com/wricardo/battlefield-sim/logging"
)

// ErrNoConfigSource is returned when a named configuration is requested but
// the simulator was built without a ConfigManager.
var ErrNoConfigSource = errors.New("no configuration source")

// simulatorImpl implements the Simulator interface
type simulatorImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewSimulator creates a new simulator. configs may be nil, in which case
// only the built-in default configuration and RunConfig are available.
func NewSimulator(sessions SessionManager, configs ConfigManager) Simulator {
	return &simulatorImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// Run loads configName (or the default when empty) and runs it
func (s *simulatorImpl) Run(ctx context.Context, configName string, opts RunOptions) (*RunReport, error) {
	config, err := s.resolveConfig(configName)
	if err != nil {
		return nil, err
	}
	return s.RunConfig(ctx, config, opts)
}

// RunConfig runs config once. Reaching the exit with stop_on_exit set is a
// successful run even though the engine reports it as stopped.
func (s *simulatorImpl) RunConfig(ctx context.Context, config *engine.RunConfig, opts RunOptions) (*RunReport, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config cannot be nil", engine.ErrInvalidConfig)
	}
	config = withOverrides(config, opts)

	seed := opts.Seed
	if seed == 0 {
		seed = config.Seed
	}
	seed = engine.ResolveSeed(seed)

	var renderer engine.Renderer
	if opts.Out != nil {
		r, err := engine.NewRenderer(opts.Style, opts.Out)
		if err != nil {
			return nil, err
		}
		renderer = r
	}

	sess, err := s.sessions.Create("", config, engine.BuildOptions{Seed: seed, Renderer: renderer})
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	runCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	tracker := NewTracker(config, cancel)
	tracker.Attach(sess.Engine)

	// The tracker is attached first so fog frames see this move's counters.
	if fog, ok := renderer.(*engine.FogRenderer); ok {
		fog.Supplies = config.Specials.Supplies
		fog.Stats = tracker
		fog.Attach(sess.Engine)
	}

	logger := logging.FromContext(ctx).With("run_id", sess.ID, "config", config.Name)
	runCtx = logging.WithLogger(runCtx, logger)
	logger.Debug("run started", "seed", seed, "board_size", config.BoardSize, "moves", len(config.Moves))

	startedAt := time.Now()
	runErr := sess.Engine.Run(runCtx)
	if errors.Is(runErr, engine.ErrMissionComplete) {
		runErr = nil
	}

	state := sess.Engine.State()
	report := &RunReport{
		ID:             sess.ID,
		ConfigName:     config.Name,
		Seed:           seed,
		Status:         sess.Engine.Status().String(),
		Start:          config.Start,
		Exit:           config.Exit,
		FinalPosition:  state.Player,
		Score:          state.Score,
		Path:           append([]engine.Position(nil), state.Path...),
		MovesRequested: len(config.Moves),
		SuppliesPlaced: config.Specials.Supplies,
		StartedAt:      startedAt,
		Duration:       time.Since(startedAt),
	}
	tracker.Fill(report)
	if runErr != nil {
		report.Error = runErr.Error()
	}

	s.mu.Lock()
	sess.Report = report
	s.mu.Unlock()

	if runErr != nil {
		logger.Error("run failed", "error", runErr, "status", report.Status)
		return report, fmt.Errorf("run %s: %w", sess.ID, runErr)
	}

	logger.Debug("run finished",
		"score", report.Score,
		"final_position", report.FinalPosition.String(),
		"mission_complete", report.MissionComplete,
		"duration", report.Duration,
	)
	return report, nil
}

// Batch runs configName opts.Runs times with consecutive seeds and
// aggregates the results. Runs never render.
func (s *simulatorImpl) Batch(ctx context.Context, configName string, opts BatchOptions) (*BatchReport, error) {
	if opts.Runs < 1 {
		return nil, fmt.Errorf("batch needs at least one run, got %d", opts.Runs)
	}

	config, err := s.resolveConfig(configName)
	if err != nil {
		return nil, err
	}
	if err := engine.ValidateRunConfig(config); err != nil {
		return nil, err
	}

	baseSeed := opts.Seed
	if baseSeed == 0 {
		baseSeed = config.Seed
	}
	baseSeed = engine.ResolveSeed(baseSeed)

	parallel := opts.Parallel
	if parallel <= 0 {
		parallel = runtime.NumCPU()
	}

	reports := make([]*RunReport, opts.Runs)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for i := 0; i < opts.Runs; i++ {
		g.Go(func() error {
			report, err := s.RunConfig(gctx, config, RunOptions{
				Seed:  baseSeed + int64(i),
				Moves: opts.Moves,
			})
			if err != nil {
				return err
			}
			reports[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch %s: %w", config.Name, err)
	}

	batch := Summarize(reports)
	batch.ConfigName = config.Name
	batch.BaseSeed = baseSeed

	logging.FromContext(ctx).Info("batch finished",
		"config", config.Name,
		"runs", batch.Runs,
		"mean_score", batch.MeanScore,
		"exit_rate", batch.ExitRate,
	)
	return batch, nil
}

// Summarize aggregates reports into a BatchReport
func Summarize(reports []*RunReport) *BatchReport {
	batch := &BatchReport{
		Runs:    len(reports),
		Reports: reports,
	}
	if len(reports) == 0 {
		return batch
	}

	batch.MinScore = math.MaxInt
	batch.MaxScore = math.MinInt

	var total, supplies, traps, exits int
	for _, r := range reports {
		total += r.Score
		supplies += r.SuppliesCollected
		traps += r.TrapsHit
		if r.MissionComplete {
			exits++
		}
		batch.MinScore = min(batch.MinScore, r.Score)
		batch.MaxScore = max(batch.MaxScore, r.Score)
	}

	n := float64(len(reports))
	batch.MeanScore = float64(total) / n
	batch.MeanSupplies = float64(supplies) / n
	batch.MeanTrapsHit = float64(traps) / n
	batch.ExitRate = float64(exits) / n
	return batch
}

// GetRun returns the report of a finished run
func (s *simulatorImpl) GetRun(ctx context.Context, runID string) (*RunReport, error) {
	sess, err := s.sessions.Get(runID)
	if err != nil {
		return nil, fmt.Errorf("run not found: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess.Report == nil {
		return nil, fmt.Errorf("run %s has not finished", runID)
	}
	return sess.Report, nil
}

// ListRuns returns every finished run, oldest first
func (s *simulatorImpl) ListRuns(ctx context.Context) ([]*RunReport, error) {
	sessions := s.sessions.List()

	s.mu.RLock()
	defer s.mu.RUnlock()

	reports := make([]*RunReport, 0, len(sessions))
	for _, sess := range sessions {
		if sess.Report != nil {
			reports = append(reports, sess.Report)
		}
	}

	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].StartedAt.Before(reports[j].StartedAt)
	})
	return reports, nil
}

// DeleteRun forgets a run
func (s *simulatorImpl) DeleteRun(ctx context.Context, runID string) error {
	return s.sessions.Delete(runID)
}

// ListConfigs returns the available configurations
func (s *simulatorImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	if s.configs == nil {
		return nil, ErrNoConfigSource
	}
	return s.configs.ListConfigs()
}

// LoadConfig loads a configuration by name
func (s *simulatorImpl) LoadConfig(ctx context.Context, configName string) (*engine.RunConfig, error) {
	return s.resolveConfig(configName)
}

// SaveConfig stores a configuration under configName
func (s *simulatorImpl) SaveConfig(ctx context.Context, configName string, config *engine.RunConfig) error {
	if s.configs == nil {
		return ErrNoConfigSource
	}
	return s.configs.SaveConfig(configName, config)
}

func (s *simulatorImpl) resolveConfig(configName string) (*engine.RunConfig, error) {
	if s.configs == nil {
		if configName != "" {
			return nil, fmt.Errorf("config '%s': %w", configName, ErrNoConfigSource)
		}
		return engine.DefaultRunConfig(), nil
	}

	if configName == "" {
		return s.configs.GetDefault(), nil
	}

	config, err := s.configs.LoadConfig(configName)
	if err != nil {
		if available, listErr := s.configs.ListConfigs(); listErr == nil && len(available) > 0 {
			ids := make([]string, 0, len(available))
			for _, info := range available {
				ids = append(ids, info.ConfigID)
			}
			return nil, fmt.Errorf("failed to load config %s (available: %v): %w", configName, ids, err)
		}
		return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
	}
	return config, nil
}

// withOverrides returns config unchanged, or a shallow copy carrying the
// overridden moves. Cached configurations are never mutated.
func withOverrides(config *engine.RunConfig, opts RunOptions) *engine.RunConfig {
	if opts.Moves == nil {
		return config
	}
	c := *config
	c.Moves = append([]string(nil), opts.Moves...)
	return &c
}
