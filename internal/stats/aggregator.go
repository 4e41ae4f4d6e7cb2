package stats

import (
	"sort"

	"wxsim/internal/simulation"
)

// EventSummary reduces one event's per-day counts across the whole run.
type EventSummary struct {
	Event        string  `json:"event"`
	AvgPerDay    float64 `json:"avgPerDay"`
	AvgPerWindow float64 `json:"avgPerWindow"`
	MinPerDay    int     `json:"minPerDay"`
	MaxPerDay    int     `json:"maxPerDay"`
	MedianPerDay float64 `json:"medianPerDay"`
}

// Summarize collects the per-day count maps into average/min/max per event,
// sorted by event name. Zero simulated days yields 0/0/0 for every event.
// No rounding happens here; that belongs to the reporting boundary.
func Summarize(days []simulation.DailyCount, names []string, restartsPerDay int) []EventSummary {
	// Duplicate names in the table collapse into one summary row.
	seen := make(map[string]bool, len(names))
	unique := make([]string, 0, len(names))
	for _, name := range names {
		if !seen[name] {
			seen[name] = true
			unique = append(unique, name)
		}
	}
	sort.Strings(unique)

	summaries := make([]EventSummary, 0, len(unique))
	for _, name := range unique {
		s := EventSummary{Event: name}
		if len(days) > 0 {
			counts := make([]int, len(days))
			total := 0
			s.MinPerDay = days[0][name]
			for i, day := range days {
				c := day[name]
				counts[i] = c
				total += c
				if c < s.MinPerDay {
					s.MinPerDay = c
				}
				if c > s.MaxPerDay {
					s.MaxPerDay = c
				}
			}
			s.AvgPerDay = float64(total) / float64(len(days))
			s.MedianPerDay = MedianDiscrete(counts)
			if restartsPerDay > 0 {
				s.AvgPerWindow = s.AvgPerDay / float64(restartsPerDay)
			}
		}
		summaries = append(summaries, s)
	}
	return summaries
}
