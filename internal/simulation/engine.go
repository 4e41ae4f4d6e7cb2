package simulation

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// secondsPerDay is the simulated day length carved into restart windows.
const secondsPerDay = 86400

// RunConfig holds the parameters of one simulation run. Constructed once
// from external input and read-only thereafter.
type RunConfig struct {
	Days                  int     `json:"days"`
	RestartsPerDay        int     `json:"restartsPerDay"`
	EventMin              float64 `json:"eventMin"`
	EventMax              float64 `json:"eventMax"`
	Policy                Policy  `json:"policy"`
	ForbidImmediateRepeat bool    `json:"forbidImmediateRepeat"`
	Seed                  int64   `json:"seed"`

	// Parallel > 1 runs that many day workers. Pace > 0 waits that long
	// before each day; purely cosmetic pacing, cancellable per day.
	Parallel int           `json:"-"`
	Pace     time.Duration `json:"-"`
}

// WindowSeconds derives the restart window length from the day length.
func (c RunConfig) WindowSeconds() int {
	return secondsPerDay / c.RestartsPerDay
}

// MeanDelay is the expected inter-event gap in seconds.
func (c RunConfig) MeanDelay() float64 {
	return (c.EventMin + c.EventMax) / 2
}

// Validate rejects configurations the simulation cannot run.
func (c RunConfig) Validate() error {
	if c.Days < 1 {
		return fmt.Errorf("days must be >= 1, got %d", c.Days)
	}
	if c.RestartsPerDay < 1 {
		return fmt.Errorf("restartsPerDay must be >= 1, got %d", c.RestartsPerDay)
	}
	if c.EventMin <= 0 {
		return fmt.Errorf("eventMin must be positive, got %g", c.EventMin)
	}
	if c.EventMin > c.EventMax {
		return fmt.Errorf("eventMin %g exceeds eventMax %g", c.EventMin, c.EventMax)
	}
	if _, err := ParsePolicy(string(c.Policy)); err != nil {
		return err
	}
	return nil
}

// Engine drives the whole run: one seeded rng stream per day, so sequential
// and parallel execution produce identical per-day counts.
type Engine struct {
	table *WeightTable
	cfg   RunConfig
}

// NewEngine builds an engine for the table and run parameters.
func NewEngine(table *WeightTable, cfg RunConfig) *Engine {
	return &Engine{table: table, cfg: cfg}
}

// dayRNG derives the independent random stream for one day.
func (e *Engine) dayRNG(day int) *rand.Rand {
	return rand.New(rand.NewSource(e.cfg.Seed + int64(day)))
}

// Run simulates all configured days and returns their counts in day order.
func (e *Engine) Run(ctx context.Context) ([]DailyCount, error) {
	runner, err := NewDayRunner(
		e.table,
		e.cfg.Policy,
		e.cfg.ForbidImmediateRepeat,
		float64(e.cfg.WindowSeconds()),
		e.cfg.EventMin,
		e.cfg.EventMax,
		e.cfg.RestartsPerDay,
	)
	if err != nil {
		return nil, err
	}

	var limiter *rate.Limiter
	if e.cfg.Pace > 0 {
		limiter = rate.NewLimiter(rate.Every(e.cfg.Pace), 1)
	}

	days := make([]DailyCount, e.cfg.Days)

	if e.cfg.Parallel > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(e.cfg.Parallel)
		for day := 0; day < e.cfg.Days; day++ {
			if limiter != nil {
				if err := limiter.Wait(ctx); err != nil {
					return nil, err
				}
			}
			day := day
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				days[day] = runner.RunDay(e.dayRNG(day))
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return days, nil
	}

	for day := 0; day < e.cfg.Days; day++ {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return nil, err
			}
		} else if err := ctx.Err(); err != nil {
			return nil, err
		}
		days[day] = runner.RunDay(e.dayRNG(day))
		if (day+1)%1000 == 0 {
			log.Debug().Int("day", day+1).Int("total", e.cfg.Days).Msg("Simulation progress")
		}
	}
	return days, nil
}
