package simulation

import (
	"context"
	"math"
	"testing"
)

func testRunConfig() RunConfig {
	return RunConfig{
		Days:           50,
		RestartsPerDay: 4,
		EventMin:       1800,
		EventMax:       2100,
		Policy:         PolicyBucketExpansion,
		Seed:           1234,
	}
}

func TestEngine_Deterministic(t *testing.T) {
	table, _ := NewWeightTable([]EventSpec{
		{Name: "Aurora", Chance: 0.85},
		{Name: "Blizzard", Chance: 0.10},
	})
	cfg := testRunConfig()

	first, err := NewEngine(table, cfg).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	second, err := NewEngine(table, cfg).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for day := range first {
		for name, c := range first[day] {
			if second[day][name] != c {
				t.Errorf("Day %d %s: expected identical counts, got %d and %d", day, name, c, second[day][name])
			}
		}
	}
}

func TestEngine_ParallelMatchesSequential(t *testing.T) {
	table, _ := NewWeightTable([]EventSpec{
		{Name: "Aurora", Chance: 0.85},
		{Name: "Blizzard", Chance: 0.10},
	})

	seq := testRunConfig()
	par := testRunConfig()
	par.Parallel = 8

	sequential, err := NewEngine(table, seq).Run(context.Background())
	if err != nil {
		t.Fatalf("Sequential run failed: %v", err)
	}
	parallel, err := NewEngine(table, par).Run(context.Background())
	if err != nil {
		t.Fatalf("Parallel run failed: %v", err)
	}

	for day := range sequential {
		for name, c := range sequential[day] {
			if parallel[day][name] != c {
				t.Errorf("Day %d %s: parallel diverged, %d vs %d", day, name, c, parallel[day][name])
			}
		}
	}
}

func TestEngine_CancelledContext(t *testing.T) {
	table, _ := NewWeightTable([]EventSpec{{Name: "Aurora", Chance: 1.0}})
	cfg := testRunConfig()
	cfg.Days = 100000

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewEngine(table, cfg).Run(ctx); err == nil {
		t.Errorf("Expected error from cancelled context, got nil")
	}
}

func TestEngine_ConvergesTowardAnalytic(t *testing.T) {
	table, _ := NewWeightTable([]EventSpec{
		{Name: "Aurora", Chance: 0.85},
		{Name: "Blizzard", Chance: 0.10},
	})
	cfg := testRunConfig()
	cfg.Days = 2000
	cfg.ForbidImmediateRepeat = true

	daily, err := NewEngine(table, cfg).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	totals := make(map[string]int)
	for _, day := range daily {
		for name, c := range day {
			totals[name] += c
		}
	}

	rows := Analyze(table, cfg)
	for _, row := range rows {
		avgPerDay := float64(totals[row.Event]) / float64(cfg.Days)
		// The analytic count windowSeconds/meanDelay overshoots the true
		// renewal count by roughly half an event per window, so allow a
		// slightly wider band than pure sampling noise would need.
		if math.Abs(avgPerDay-row.PerDay) > row.PerDay*0.06 {
			t.Errorf("%s: simulated avg/day %.2f too far from analytic %.2f", row.Event, avgPerDay, row.PerDay)
		}
	}
}

func TestRunConfig_Validate(t *testing.T) {
	valid := testRunConfig()
	if err := valid.Validate(); err != nil {
		t.Errorf("Expected valid config to pass, got %v", err)
	}

	cases := map[string]func(*RunConfig){
		"zeroDays":       func(c *RunConfig) { c.Days = 0 },
		"zeroRestarts":   func(c *RunConfig) { c.RestartsPerDay = 0 },
		"zeroEventMin":   func(c *RunConfig) { c.EventMin = 0 },
		"invertedBounds": func(c *RunConfig) { c.EventMin = 2000; c.EventMax = 1000 },
		"badPolicy":      func(c *RunConfig) { c.Policy = "dice" },
	}
	for name, mutate := range cases {
		cfg := testRunConfig()
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error, got nil", name)
		}
	}
}

func TestRunConfig_WindowSeconds(t *testing.T) {
	cfg := RunConfig{RestartsPerDay: 4}
	if cfg.WindowSeconds() != 21600 {
		t.Errorf("Expected floor(86400/4) = 21600, got %d", cfg.WindowSeconds())
	}
	cfg.RestartsPerDay = 7
	if cfg.WindowSeconds() != 12342 {
		t.Errorf("Expected floor(86400/7) = 12342, got %d", cfg.WindowSeconds())
	}
}
