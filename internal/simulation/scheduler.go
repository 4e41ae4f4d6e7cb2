package simulation

import (
	"math/rand"
)

// DailyCount maps event name to the number of occurrences in one simulated day.
type DailyCount map[string]int

// Total returns the sum of all event counts for the day.
func (d DailyCount) Total() int {
	total := 0
	for _, c := range d {
		total += c
	}
	return total
}

// WindowScheduler advances a simulated clock through one restart window.
// Inter-event delays are drawn uniformly from [DelayMin, DelayMax]; the
// bound is inclusive, though Float64 hits DelayMax itself with probability
// zero. An event occurs only while the clock is strictly inside the window,
// so the delay that crosses the boundary records nothing. The number of
// events per window is itself random, bounded above by
// WindowSeconds/DelayMin.
type WindowScheduler struct {
	WindowSeconds float64
	DelayMin      float64
	DelayMax      float64
}

// Run plays out a single window, asking sel for a name at each tick and
// incrementing counts. It returns the number of events recorded.
func (w WindowScheduler) Run(sel Selector, rng *rand.Rand, counts DailyCount) int {
	recorded := 0
	elapsed := 0.0
	for {
		delay := w.DelayMin + rng.Float64()*(w.DelayMax-w.DelayMin)
		elapsed += delay
		if elapsed >= w.WindowSeconds {
			return recorded
		}
		counts[sel.Draw(rng)]++
		recorded++
	}
}

// DayRunner runs the window scheduler once per restart window and sums the
// counters into one per-day map. The selector's last-draw memory is carried
// across windows within a day; each day starts with fresh memory.
type DayRunner struct {
	window   WindowScheduler
	restarts int
	base     Selector
	table    *WeightTable
	noRepeat bool
}

// NewDayRunner builds a runner over the given table and timing parameters.
func NewDayRunner(table *WeightTable, policy Policy, noRepeat bool, windowSeconds float64, delayMin, delayMax float64, restarts int) (*DayRunner, error) {
	base, err := NewSelector(table, policy)
	if err != nil {
		return nil, err
	}
	return &DayRunner{
		window: WindowScheduler{
			WindowSeconds: windowSeconds,
			DelayMin:      delayMin,
			DelayMax:      delayMax,
		},
		restarts: restarts,
		base:     base,
		table:    table,
		noRepeat: noRepeat,
	}, nil
}

// RunDay simulates one full day and returns its event counts. Safe to call
// from concurrent workers as long as each worker supplies its own rng.
func (d *DayRunner) RunDay(rng *rand.Rand) DailyCount {
	sel := d.base
	if d.noRepeat {
		sel = WithNoRepeat(d.base, d.table)
	}
	counts := make(DailyCount, d.table.Len())
	for w := 0; w < d.restarts; w++ {
		d.window.Run(sel, rng, counts)
	}
	return counts
}
