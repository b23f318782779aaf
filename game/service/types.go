package service

import (
	"io"
	"time"

	"github.com/wricardo/battlefield-sim/game/engine"
)

// RunOptions adjusts a single run without touching the stored configuration
type RunOptions struct {
	// Out receives rendered frames. Nil disables rendering.
	Out io.Writer
	// Style selects the renderer: plain, styled or none.
	Style string
	// Seed overrides the configuration seed when non-zero.
	Seed int64
	// Moves replaces the configured move list when non-nil.
	Moves []string
}

// BatchOptions configures repeated runs of one configuration
type BatchOptions struct {
	Runs int
	// Seed is the base seed; run i uses Seed+i. Zero picks one from the clock.
	Seed  int64
	Moves []string
	// Parallel caps concurrent runs. Zero means one per CPU.
	Parallel int
}

// RunReport summarizes a finished run
type RunReport struct {
	ID            string            `json:"id"`
	ConfigName    string            `json:"config_name"`
	Seed          int64             `json:"seed"`
	Status        string            `json:"status"`
	Error         string            `json:"error,omitempty"`
	Start         engine.Position   `json:"start"`
	Exit          engine.Position   `json:"exit"`
	FinalPosition engine.Position   `json:"final_position"`
	Score         int               `json:"score"`
	Path          []engine.Position `json:"path"`

	MovesRequested int `json:"moves_requested"`
	MovesApplied   int `json:"moves_applied"`

	SuppliesPlaced    int  `json:"supplies_placed"`
	SuppliesCollected int  `json:"supplies_collected"`
	TrapsHit          int  `json:"traps_hit"`
	PointsGained      int  `json:"points_gained"`
	PointsLost        int  `json:"points_lost"`
	MissionComplete   bool `json:"mission_complete"`
	Events            int  `json:"events"`

	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// BatchReport aggregates the reports of a batch
type BatchReport struct {
	ConfigName   string       `json:"config_name"`
	Runs         int          `json:"runs"`
	BaseSeed     int64        `json:"base_seed"`
	MeanScore    float64      `json:"mean_score"`
	MinScore     int          `json:"min_score"`
	MaxScore     int          `json:"max_score"`
	ExitRate     float64      `json:"exit_rate"`
	MeanSupplies float64      `json:"mean_supplies"`
	MeanTrapsHit float64      `json:"mean_traps_hit"`
	Reports      []*RunReport `json:"reports,omitempty"`
}

// ConfigInfo provides information about a run configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to pass to Run
	Format      string `json:"format"`
	Name        string `json:"name"`
	Description string `json:"description"`
	BoardSize   int    `json:"board_size"`
	Supplies    int    `json:"supplies"`
	Traps       int    `json:"traps"`
	Moves       int    `json:"moves"`
}
