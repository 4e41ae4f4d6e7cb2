package simulation

import "math"

const (
	// stationaryTolerance stops the power iteration once no probability
	// moves by more than this between steps.
	stationaryTolerance = 1e-12
	// stationaryMaxIterations is the safety brake for the power iteration.
	stationaryMaxIterations = 10000
)

// AnalyticRow is one event's closed-form expectation, independent of any
// simulated counts.
type AnalyticRow struct {
	Event       string  `json:"event"`
	Bucket      int     `json:"bucket"`
	Probability float64 `json:"probability"`
	PerWindow   float64 `json:"perWindow"`
	PerDay      float64 `json:"perDay"`
}

// StationaryProbabilities computes the long-run selection probability per
// event once immediate repeats are forbidden. The process is modeled as a
// Markov chain over event identities with self-transitions disallowed:
// the transition probability from j to i != j is p_i/(1-p_j). The stationary
// vector is found by power iteration starting from the base probabilities,
// renormalizing each step to correct numerical drift. Each iterate is
// averaged with its predecessor: with exactly two events the chain
// alternates deterministically and the raw iteration would swap the entries
// forever, while the damped form settles on the fixed point.
//
// A state with p_j == 1 contributes no outgoing mass and is left frozen for
// that step. That is a known approximation, not exact absorbing-state Markov
// math; the degenerate chain has no meaningful no-repeat behavior anyway.
func StationaryProbabilities(base []float64) []float64 {
	n := len(base)
	stationary := make([]float64, n)
	copy(stationary, base)
	if n <= 1 {
		return stationary
	}

	next := make([]float64, n)
	applied := make([]float64, n)
	for iter := 0; iter < stationaryMaxIterations; iter++ {
		for i := range applied {
			applied[i] = 0
		}
		for j := 0; j < n; j++ {
			den := 1 - base[j]
			if den <= 0 {
				// No outgoing mass: freeze the state for this step.
				applied[j] += stationary[j]
				continue
			}
			for i := 0; i < n; i++ {
				if i == j {
					continue
				}
				applied[i] += stationary[j] * base[i] / den
			}
		}

		// Damped step: kills the periodic component, keeps the fixed point.
		for i := range next {
			next[i] = 0.5 * (applied[i] + stationary[i])
		}

		sum := 0.0
		for _, v := range next {
			sum += v
		}
		if sum > 0 {
			for i := range next {
				next[i] /= sum
			}
		}

		maxDiff := 0.0
		for i := range next {
			if d := math.Abs(next[i] - stationary[i]); d > maxDiff {
				maxDiff = d
			}
		}
		copy(stationary, next)
		if maxDiff < stationaryTolerance {
			break
		}
	}
	return stationary
}

// Analyze produces the analytic expectation table for the run: stationary
// probability per event when repeats are forbidden, base probability
// otherwise, scaled into per-window and per-day counts via the mean delay.
func Analyze(table *WeightTable, cfg RunConfig) []AnalyticRow {
	base := table.BaseProbabilities()
	probs := base
	if cfg.ForbidImmediateRepeat {
		probs = StationaryProbabilities(base)
	}

	perWindowTotal := float64(cfg.WindowSeconds()) / cfg.MeanDelay()
	buckets := table.Buckets()

	rows := make([]AnalyticRow, table.Len())
	for i, name := range table.Names() {
		perWindow := probs[i] * perWindowTotal
		rows[i] = AnalyticRow{
			Event:       name,
			Bucket:      buckets[i],
			Probability: probs[i],
			PerWindow:   perWindow,
			PerDay:      perWindow * float64(cfg.RestartsPerDay),
		}
	}
	return rows
}
