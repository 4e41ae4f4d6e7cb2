package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"wxsim/internal/scenario"
	"wxsim/internal/simulation"
)

// scenarioFile is the object shape of a scenario document.
type scenarioFile struct {
	EventMin float64                `json:"EventMin"`
	EventMax float64                `json:"EventMax"`
	Events   []simulation.EventSpec `json:"Events"`
}

// Generate builds one of the named scenario presets.
func Generate(preset string) (*scenario.Scenario, error) {
	switch preset {
	case "calm":
		return &scenario.Scenario{
			EventMin: 1800,
			EventMax: 2100,
			Events: []simulation.EventSpec{
				{Name: "Clear", Chance: 0.70},
				{Name: "Drizzle", Chance: 0.20},
				{Name: "Fog", Chance: 0.10},
			},
		}, nil
	case "stormy":
		return &scenario.Scenario{
			EventMin: 1200,
			EventMax: 1800,
			Events: []simulation.EventSpec{
				{Name: "Aurora", Chance: 0.85},
				{Name: "Blizzard", Chance: 0.10},
				{Name: "Hail", Chance: 0.05},
			},
		}, nil
	case "degenerate":
		// All-zero weights: exercises the uniform fallback.
		return &scenario.Scenario{
			EventMin: 1800,
			EventMax: 2100,
			Events: []simulation.EventSpec{
				{Name: "Calm", Chance: 0},
				{Name: "Still", Chance: 0},
			},
		}, nil
	}
	return nil, fmt.Errorf("unknown preset %q", preset)
}

// Save writes the scenario as a JSON file named after the preset.
func Save(outDir, preset string, sc *scenario.Scenario) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	doc := scenarioFile{
		EventMin: sc.EventMin,
		EventMax: sc.EventMax,
		Events:   sc.Events,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding scenario: %w", err)
	}

	path := filepath.Join(outDir, preset+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
