package reporting

import (
	"fmt"
	"os"
	"strings"
)

// RenderDailyCSV renders the wide per-day records as a CSV string. Column
// order is "day" followed by the event names in original configuration
// order.
func RenderDailyCSV(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("day")
	for _, name := range r.EventNames {
		sb.WriteString(",")
		sb.WriteString(csvField(name))
	}
	sb.WriteString("\n")

	// Rows
	for day, counts := range r.Daily {
		sb.WriteString(fmt.Sprintf("%d", day+1))
		for _, name := range r.EventNames {
			sb.WriteString(fmt.Sprintf(",%d", counts[name]))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// csvField quotes a value when it would otherwise break the row.
func csvField(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

// WriteDailyCSV writes the per-day records to path. A failure here leaves
// the already-computed statistics intact; callers report it and move on.
func WriteDailyCSV(path string, r *Report) error {
	if err := os.WriteFile(path, []byte(RenderDailyCSV(r)), 0644); err != nil {
		return fmt.Errorf("writing daily CSV: %w", err)
	}
	return nil
}
