package reporting

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"wxsim/internal/simulation"
	"wxsim/internal/stats"
)

func testReport() *Report {
	cfg := simulation.RunConfig{
		Days:                  2,
		RestartsPerDay:        4,
		EventMin:              1800,
		EventMax:              2100,
		Policy:                simulation.PolicyBucketExpansion,
		ForbidImmediateRepeat: true,
		Seed:                  42,
	}
	daily := []simulation.DailyCount{
		{"Aurora": 10, "Blizzard": 2},
		{"Aurora": 12, "Blizzard": 3},
	}
	summary := stats.Summarize(daily, []string{"Aurora", "Blizzard"}, cfg.RestartsPerDay)
	analytic := []simulation.AnalyticRow{
		{Event: "Aurora", Bucket: 85, Probability: 0.5, PerWindow: 5.5, PerDay: 22.2},
		{Event: "Blizzard", Bucket: 10, Probability: 0.5, PerWindow: 5.5, PerDay: 22.2},
	}
	return New(cfg, []string{"Aurora", "Blizzard"}, summary, analytic, daily)
}

func TestRenderDailyCSV_ColumnOrder(t *testing.T) {
	// Column order is day followed by events in configuration order, not
	// alphabetical.
	r := testReport()
	r.EventNames = []string{"Blizzard", "Aurora"}

	csv := RenderDailyCSV(r)
	lines := strings.Split(strings.TrimSpace(csv), "\n")

	if lines[0] != "day,Blizzard,Aurora" {
		t.Errorf("Expected header day,Blizzard,Aurora, got %q", lines[0])
	}
	if lines[1] != "1,2,10" {
		t.Errorf("Expected first row 1,2,10, got %q", lines[1])
	}
	if len(lines) != 3 {
		t.Errorf("Expected header plus 2 day rows, got %d lines", len(lines))
	}
}

func TestRenderDailyCSV_QuotesAwkwardNames(t *testing.T) {
	r := testReport()
	r.EventNames = []string{`Sleet, heavy`, `"Thunder"`}
	r.Daily = []simulation.DailyCount{{`Sleet, heavy`: 3, `"Thunder"`: 1}}

	lines := strings.Split(strings.TrimSpace(RenderDailyCSV(r)), "\n")
	if lines[0] != `day,"Sleet, heavy","""Thunder"""` {
		t.Errorf("Expected quoted header, got %q", lines[0])
	}
	if lines[1] != "1,3,1" {
		t.Errorf("Expected first row 1,3,1, got %q", lines[1])
	}
}

func TestWriteDailyCSV(t *testing.T) {
	r := testReport()
	path := filepath.Join(t.TempDir(), "daily.csv")

	if err := WriteDailyCSV(path, r); err != nil {
		t.Fatalf("WriteDailyCSV failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Reading exported CSV failed: %v", err)
	}
	if !strings.HasPrefix(string(data), "day,Aurora,Blizzard\n") {
		t.Errorf("Unexpected CSV header in %q", string(data))
	}
}

func TestWriteDailyCSV_UnwritableDestination(t *testing.T) {
	r := testReport()
	if err := WriteDailyCSV(filepath.Join(t.TempDir(), "missing", "daily.csv"), r); err == nil {
		t.Errorf("Expected error for unwritable destination, got nil")
	}
}

func TestFormatText_ContainsTables(t *testing.T) {
	var buf bytes.Buffer
	FormatText(&buf, testReport())
	out := buf.String()

	for _, want := range []string{"avg/day", "min/day", "max/day", "bucket", "probability", "Aurora", "Blizzard"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q", want)
		}
	}
}

func TestRenderMarkdown(t *testing.T) {
	r := testReport()
	md := RenderMarkdown(r)

	for _, want := range []string{
		"# Simulation Report",
		r.RunID,
		"## Simulated Distribution",
		"## Analytic Expectation",
		"xychart-beta",
		"| Aurora | 11.00 |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Expected markdown to contain %q", want)
		}
	}
}
