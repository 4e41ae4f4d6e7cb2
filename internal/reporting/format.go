package reporting

import (
	"fmt"
	"io"
)

// FormatText writes the run results in human-readable form.
func FormatText(w io.Writer, r *Report) {
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "wxsim - Simulation Results")
	fmt.Fprintln(w, "==========================")
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Days:            %d\n", r.Config.Days)
	fmt.Fprintf(w, "Restarts/day:    %d\n", r.Config.RestartsPerDay)
	fmt.Fprintf(w, "Window seconds:  %d\n", r.Config.WindowSeconds())
	fmt.Fprintf(w, "Delay bounds:    [%.0f, %.0f]s (mean %.1fs)\n",
		r.Config.EventMin, r.Config.EventMax, r.Config.MeanDelay())
	fmt.Fprintf(w, "Policy:          %s\n", r.Config.Policy)
	fmt.Fprintf(w, "Forbid repeats:  %v\n", r.Config.ForbidImmediateRepeat)
	fmt.Fprintf(w, "Seed:            %d\n", r.Config.Seed)
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "Simulated (per event):")
	fmt.Fprintf(w, "  %-16s %12s %12s %10s %10s\n",
		"event", "avg/day", "avg/window", "min/day", "max/day")
	for _, s := range r.Summary {
		fmt.Fprintf(w, "  %-16s %12.2f %12.4f %10d %10d\n",
			s.Event, s.AvgPerDay, s.AvgPerWindow, s.MinPerDay, s.MaxPerDay)
	}
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "Analytic (per event):")
	fmt.Fprintf(w, "  %-16s %8s %12s %12s %12s\n",
		"event", "bucket", "probability", "per-window", "per-day")
	for _, a := range r.Analytic {
		fmt.Fprintf(w, "  %-16s %8d %12.6f %12.4f %12.2f\n",
			a.Event, a.Bucket, a.Probability, a.PerWindow, a.PerDay)
	}
	fmt.Fprintln(w, "")
}
