// Package scenario loads and normalizes event scenario files.
//
// Two historical JSON shapes are accepted: a bare array of event objects,
// or an object carrying EventMin/EventMax/Events where present fields
// override the timing defaults. A YAML equivalent of the object shape is
// accepted as well.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"wxsim/internal/simulation"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Timing defaults applied when a scenario file does not override them.
const (
	DefaultEventMin = 1800.0
	DefaultEventMax = 2100.0
)

var (
	// ErrBadShape marks a scenario document that is neither of the two
	// recognized shapes.
	ErrBadShape = errors.New("unrecognized scenario shape")
	// ErrNoEvents marks a scenario with an empty event list.
	ErrNoEvents = errors.New("scenario contains no events")
)

// Scenario is the normalized configuration: ordered events plus timing
// bounds in seconds.
type Scenario struct {
	EventMin float64
	EventMax float64
	Events   []simulation.EventSpec
}

// Load reads and parses a scenario file, dispatching on extension:
// .yaml/.yml is parsed as YAML, everything else as JSON.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}

	var s *Scenario
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		s, err = ParseYAML(data)
	default:
		s, err = ParseJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return s, nil
}

// ParseJSON normalizes either JSON shape into a Scenario.
func ParseJSON(data []byte) (*Scenario, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrBadShape)
	}

	root := gjson.ParseBytes(data)
	s := &Scenario{EventMin: DefaultEventMin, EventMax: DefaultEventMax}

	var list gjson.Result
	switch {
	case root.IsArray():
		list = root
	case root.IsObject():
		list = field(root, "Events")
		if !list.IsArray() {
			return nil, fmt.Errorf("%w: object shape requires an Events array", ErrBadShape)
		}
		if v := field(root, "EventMin"); v.Exists() {
			s.EventMin = v.Float()
		}
		if v := field(root, "EventMax"); v.Exists() {
			s.EventMax = v.Float()
		}
	default:
		return nil, fmt.Errorf("%w: expected array or object", ErrBadShape)
	}

	for _, item := range list.Array() {
		s.Events = append(s.Events, simulation.EventSpec{
			Name:   field(item, "Name").String(),
			Chance: field(item, "Chance").Float(),
		})
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// field looks up a key accepting both capitalized and lowercase spellings.
func field(r gjson.Result, key string) gjson.Result {
	if v := r.Get(key); v.Exists() {
		return v
	}
	return r.Get(strings.ToLower(key[:1]) + key[1:])
}

// yamlScenario mirrors the JSON object shape for YAML files.
type yamlScenario struct {
	EventMin *float64 `yaml:"eventMin"`
	EventMax *float64 `yaml:"eventMax"`
	Events   []struct {
		Name   string  `yaml:"name"`
		Chance float64 `yaml:"chance"`
	} `yaml:"events"`
}

// ParseYAML parses the object shape from a YAML document.
func ParseYAML(data []byte) (*Scenario, error) {
	var doc yamlScenario
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadShape, err)
	}

	s := &Scenario{EventMin: DefaultEventMin, EventMax: DefaultEventMax}
	if doc.EventMin != nil {
		s.EventMin = *doc.EventMin
	}
	if doc.EventMax != nil {
		s.EventMax = *doc.EventMax
	}
	for _, e := range doc.Events {
		s.Events = append(s.Events, simulation.EventSpec{Name: e.Name, Chance: e.Chance})
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate rejects scenarios the simulation cannot run. Degenerate weight
// configurations (all zero) are not errors; the selection fallbacks handle
// them.
func (s *Scenario) Validate() error {
	if len(s.Events) == 0 {
		return ErrNoEvents
	}
	for _, e := range s.Events {
		if e.Name == "" {
			return fmt.Errorf("%w: event with empty name", ErrBadShape)
		}
		if e.Chance < 0 {
			return fmt.Errorf("%w: event %q has negative chance %g", ErrBadShape, e.Name, e.Chance)
		}
	}
	if s.EventMin <= 0 {
		return fmt.Errorf("%w: eventMin must be positive, got %g", ErrBadShape, s.EventMin)
	}
	if s.EventMin > s.EventMax {
		return fmt.Errorf("%w: eventMin %g exceeds eventMax %g", ErrBadShape, s.EventMin, s.EventMax)
	}
	return nil
}
