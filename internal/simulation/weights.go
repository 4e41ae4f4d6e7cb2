package simulation

import (
	"errors"
	"math"
)

// ErrNoEvents is returned when a weight table is constructed without entries.
var ErrNoEvents = errors.New("weight table requires at least one event")

// EventSpec names one phenomenon and the relative weight it was configured with.
type EventSpec struct {
	Name   string  `json:"name"`
	Chance float64 `json:"chance"`
}

// WeightTable holds the ordered event list for a run. Order is significant:
// bucket expansion and the zero-sum fallbacks resolve ties by position.
// The table is immutable once constructed.
type WeightTable struct {
	events []EventSpec
}

// NewWeightTable builds a table from the configured events.
func NewWeightTable(events []EventSpec) (*WeightTable, error) {
	if len(events) == 0 {
		return nil, ErrNoEvents
	}
	copied := make([]EventSpec, len(events))
	copy(copied, events)
	return &WeightTable{events: copied}, nil
}

// Events returns the entries in configuration order.
func (t *WeightTable) Events() []EventSpec {
	return t.events
}

// Len returns the number of entries, duplicates included.
func (t *WeightTable) Len() int {
	return len(t.events)
}

// Names returns the event names in configuration order.
func (t *WeightTable) Names() []string {
	names := make([]string, len(t.events))
	for i, e := range t.events {
		names[i] = e.Name
	}
	return names
}

// DistinctNames returns the number of unique event names.
func (t *WeightTable) DistinctNames() int {
	seen := make(map[string]bool, len(t.events))
	for _, e := range t.events {
		seen[e.Name] = true
	}
	return len(seen)
}

// Buckets quantizes each chance into ceil(chance*100) discrete tickets,
// preserving input order.
func (t *WeightTable) Buckets() []int {
	buckets := make([]int, len(t.events))
	for i, e := range t.events {
		buckets[i] = int(math.Ceil(e.Chance * 100))
	}
	return buckets
}

// BaseProbabilities derives the per-event selection probabilities with a
// three-tier fallback: bucket shares when any bucket is positive, raw chance
// shares when any chance is positive, uniform otherwise.
func (t *WeightTable) BaseProbabilities() []float64 {
	probs := make([]float64, len(t.events))

	bucketSum := 0
	buckets := t.Buckets()
	for _, b := range buckets {
		bucketSum += b
	}
	if bucketSum > 0 {
		for i, b := range buckets {
			probs[i] = float64(b) / float64(bucketSum)
		}
		return probs
	}

	chanceSum := 0.0
	for _, e := range t.events {
		chanceSum += e.Chance
	}
	if chanceSum > 0 {
		for i, e := range t.events {
			probs[i] = e.Chance / chanceSum
		}
		return probs
	}

	for i := range probs {
		probs[i] = 1.0 / float64(len(probs))
	}
	return probs
}
