package service

import (
	"context"
	"time"

	"github.com/wricardo/battlefield-sim/game/engine"
)

// Simulator defines all simulation operations
type Simulator interface {
	// Runs
	Run(ctx context.Context, configName string, opts RunOptions) (*RunReport, error)
	RunConfig(ctx context.Context, config *engine.RunConfig, opts RunOptions) (*RunReport, error)
	Batch(ctx context.Context, configName string, opts BatchOptions) (*BatchReport, error)

	// Run history
	GetRun(ctx context.Context, runID string) (*RunReport, error)
	ListRuns(ctx context.Context) ([]*RunReport, error)
	DeleteRun(ctx context.Context, runID string) error

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.RunConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.RunConfig) error
}

// SessionManager defines run storage operations
type SessionManager interface {
	Create(id string, config *engine.RunConfig, opts engine.BuildOptions) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
}

// ConfigManager handles run configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.RunConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.RunConfig
	SaveConfig(name string, config *engine.RunConfig) error
}

// Session is one engine instance together with what produced it
type Session struct {
	ID        string
	Engine    *engine.Engine
	Config    *engine.RunConfig
	Seed      int64
	CreatedAt time.Time

	// Report is set once the run has finished.
	Report *RunReport
}
