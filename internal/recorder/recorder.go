package recorder

import (
	"time"

	"MarketHeatmap/internal/model"
)

// RunSnapshot holds the outcome of one heatmap generation run.
type RunSnapshot struct {
	GeneratedAt  time.Time
	OutputPath   string
	Total        int
	Resolved     int
	Observations []model.Observation
}

// Recorder persists run history for later analysis.
type Recorder interface {
	RecordRun(snap *RunSnapshot) error
	Close() error
}
