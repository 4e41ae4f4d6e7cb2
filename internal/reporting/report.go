// Package reporting renders the run results as console text, CSV, and
// Markdown. All display rounding happens here, never in the simulation or
// statistics layers.
package reporting

import (
	"time"

	"wxsim/internal/simulation"
	"wxsim/internal/stats"

	"github.com/google/uuid"
)

// Report collects everything a run produced, ready for rendering.
type Report struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`

	Config simulation.RunConfig `json:"config"`

	// EventNames in original configuration order; fixes CSV column order.
	EventNames []string                 `json:"event_names"`
	Summary    []stats.EventSummary     `json:"summary"`
	Analytic   []simulation.AnalyticRow `json:"analytic"`
	Daily      []simulation.DailyCount  `json:"-"`
}

// New assembles a report from the run outputs.
func New(cfg simulation.RunConfig, names []string, summary []stats.EventSummary, analytic []simulation.AnalyticRow, daily []simulation.DailyCount) *Report {
	return &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now(),
		Config:      cfg,
		EventNames:  names,
		Summary:     summary,
		Analytic:    analytic,
		Daily:       daily,
	}
}
