package reporting

import (
	"fmt"
	"os"
	"strings"
	"time"

	"wxsim/internal/visuals"
)

// RenderMarkdown renders the full run report as a Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Simulation Report\n\n")
	sb.WriteString(fmt.Sprintf("Run: %s\n\n", r.RunID))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))

	// Run parameters
	sb.WriteString("## Run Parameters\n\n")
	sb.WriteString("| Parameter | Value |\n")
	sb.WriteString("|-----------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Days | %d |\n", r.Config.Days))
	sb.WriteString(fmt.Sprintf("| Restarts per Day | %d |\n", r.Config.RestartsPerDay))
	sb.WriteString(fmt.Sprintf("| Window Seconds | %d |\n", r.Config.WindowSeconds()))
	sb.WriteString(fmt.Sprintf("| Delay Bounds | [%.0f, %.0f]s |\n", r.Config.EventMin, r.Config.EventMax))
	sb.WriteString(fmt.Sprintf("| Mean Delay | %.1fs |\n", r.Config.MeanDelay()))
	sb.WriteString(fmt.Sprintf("| Policy | %s |\n", r.Config.Policy))
	sb.WriteString(fmt.Sprintf("| Forbid Immediate Repeat | %v |\n", r.Config.ForbidImmediateRepeat))
	sb.WriteString(fmt.Sprintf("| Seed | %d |\n", r.Config.Seed))
	sb.WriteString("\n")

	// Simulated summary (median is supplemental, shown here only)
	sb.WriteString("## Simulated Distribution\n\n")
	sb.WriteString("| Event | Avg/Day | Avg/Window | Min/Day | Max/Day | Median/Day |\n")
	sb.WriteString("|-------|---------|------------|---------|---------|------------|\n")
	for _, s := range r.Summary {
		sb.WriteString(fmt.Sprintf("| %s | %.2f | %.4f | %d | %d | %.1f |\n",
			s.Event, s.AvgPerDay, s.AvgPerWindow, s.MinPerDay, s.MaxPerDay, s.MedianPerDay))
	}
	sb.WriteString("\n")

	// Analytic expectation
	sb.WriteString("## Analytic Expectation\n\n")
	sb.WriteString("| Event | Bucket | Probability | Per Window | Per Day |\n")
	sb.WriteString("|-------|--------|-------------|------------|---------|\n")
	for _, a := range r.Analytic {
		sb.WriteString(fmt.Sprintf("| %s | %d | %.6f | %.4f | %.2f |\n",
			a.Event, a.Bucket, a.Probability, a.PerWindow, a.PerDay))
	}
	sb.WriteString("\n")

	// Per-day chart
	if chart := visuals.GenerateDailyTotalsChart(r.Daily); chart != "" {
		sb.WriteString("## Events per Day\n\n")
		sb.WriteString(chart)
		sb.WriteString("\n")
	}

	return sb.String()
}

// WriteMarkdown writes the rendered report to path.
func WriteMarkdown(path string, r *Report) error {
	if err := os.WriteFile(path, []byte(RenderMarkdown(r)), 0644); err != nil {
		return fmt.Errorf("writing markdown report: %w", err)
	}
	return nil
}
