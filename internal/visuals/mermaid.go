package visuals

import (
	"fmt"
	"math"
	"strings"

	"wxsim/internal/simulation"
)

// GenerateDailyTotalsChart creates a Mermaid xychart-beta of total events
// per simulated day. Long runs are downsampled to keep the chart readable.
func GenerateDailyTotalsChart(daily []simulation.DailyCount) string {
	if len(daily) == 0 {
		return ""
	}

	// Downsample to at most 60 points
	step := 1
	if len(daily) > 60 {
		step = (len(daily) + 59) / 60
	}

	var labels []string
	var values []string
	maxY := 0.0
	for i := 0; i < len(daily); i += step {
		total := daily[i].Total()
		labels = append(labels, fmt.Sprintf("%d", i+1))
		values = append(values, fmt.Sprintf("%d", total))
		if float64(total) > maxY {
			maxY = float64(total)
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Events per Day\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))

	// Breathing room above the highest day
	sb.WriteString(fmt.Sprintf("    y-axis \"Events\" 0 --> %d\n", int(math.Ceil(maxY*1.1))+1))

	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}
