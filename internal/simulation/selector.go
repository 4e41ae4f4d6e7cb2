package simulation

import (
	"fmt"
	"math/rand"
)

// Policy selects the discretization strategy used when drawing events.
type Policy string

const (
	// PolicyBucketExpansion approximates weights by repeating each event
	// ceil(chance*100) times in a flat ticket list.
	PolicyBucketExpansion Policy = "buckets"
	// PolicyWeightedAccumulation draws exactly against the cumulative sum
	// of the raw weights.
	PolicyWeightedAccumulation Policy = "weights"
)

// ParsePolicy converts a CLI/config string into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyBucketExpansion, PolicyWeightedAccumulation:
		return Policy(s), nil
	}
	return "", fmt.Errorf("unknown selection policy %q (expected %q or %q)",
		s, PolicyBucketExpansion, PolicyWeightedAccumulation)
}

// Selector draws one event name per call.
type Selector interface {
	Draw(rng *rand.Rand) string
}

// NewSelector builds the selection primitive for the given policy.
func NewSelector(table *WeightTable, policy Policy) (Selector, error) {
	switch policy {
	case PolicyBucketExpansion:
		return newBucketSelector(table), nil
	case PolicyWeightedAccumulation:
		return newWeightedSelector(table), nil
	}
	return nil, fmt.Errorf("unknown selection policy %q", policy)
}

// bucketSelector draws a uniform index into the expanded ticket list.
type bucketSelector struct {
	names    []string
	expanded []int // event indices, one per ticket
}

func newBucketSelector(table *WeightTable) *bucketSelector {
	s := &bucketSelector{names: table.Names()}
	for i, b := range table.Buckets() {
		for t := 0; t < b; t++ {
			s.expanded = append(s.expanded, i)
		}
	}
	return s
}

func (s *bucketSelector) Draw(rng *rand.Rand) string {
	if len(s.expanded) == 0 {
		// All buckets quantized to zero: fall back to the first event.
		return s.names[0]
	}
	return s.names[s.expanded[rng.Intn(len(s.expanded))]]
}

// weightedSelector accumulates raw weights in table order against a uniform
// draw over [0, total).
type weightedSelector struct {
	events []EventSpec
	total  float64
}

func newWeightedSelector(table *WeightTable) *weightedSelector {
	s := &weightedSelector{events: table.Events()}
	for _, e := range s.events {
		s.total += e.Chance
	}
	return s
}

func (s *weightedSelector) Draw(rng *rand.Rand) string {
	if s.total <= 0 {
		return s.events[0].Name
	}
	r := rng.Float64() * s.total
	acc := 0.0
	for _, e := range s.events {
		acc += e.Chance
		if acc > r {
			return e.Name
		}
	}
	// Floating point can leave r at the very top of the range.
	return s.events[len(s.events)-1].Name
}

// noRepeatAttempts bounds the redraw loop when avoiding immediate repeats.
const noRepeatAttempts = 100

// NoRepeatSelector wraps a selection primitive with probabilistic avoidance
// of immediate repetition: it redraws up to noRepeatAttempts times, then
// accepts the repeat anyway. The avoidance is therefore not a hard
// guarantee. With at most one distinct event the wrapper is inert.
type NoRepeatSelector struct {
	inner    Selector
	distinct int
	last     string
	hasLast  bool
}

// WithNoRepeat wraps inner with repeat avoidance for the given table.
func WithNoRepeat(inner Selector, table *WeightTable) *NoRepeatSelector {
	return &NoRepeatSelector{inner: inner, distinct: table.DistinctNames()}
}

// Draw returns the next event name, avoiding the previous result when
// possible.
func (s *NoRepeatSelector) Draw(rng *rand.Rand) string {
	name := s.inner.Draw(rng)
	if s.hasLast && s.distinct > 1 {
		for attempt := 0; attempt < noRepeatAttempts && name == s.last; attempt++ {
			name = s.inner.Draw(rng)
		}
	}
	s.last = name
	s.hasLast = true
	return name
}
