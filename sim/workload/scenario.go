package workload

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ScenarioSpec describes a synthetic workload: a fleet of drivers that come
// online early in the run and a Poisson stream of riders.
// Loaded from YAML via LoadScenario(path).
type ScenarioSpec struct {
	Seed    int64       `yaml:"seed"`
	Horizon int64       `yaml:"horizon"` // riders arrive in [0, horizon)
	Grid    GridSpec    `yaml:"grid"`
	Drivers DriversSpec `yaml:"drivers"`
	Riders  RidersSpec  `yaml:"riders"`
}

// GridSpec bounds the locations drawn for drivers and riders.
type GridSpec struct {
	Rows    int `yaml:"rows"`
	Columns int `yaml:"columns"`
}

// DriversSpec configures the driver fleet.
type DriversSpec struct {
	Count         int   `yaml:"count"`
	SpeedMin      int   `yaml:"speed_min"`
	SpeedMax      int   `yaml:"speed_max"`
	ArrivalWindow int64 `yaml:"arrival_window"` // drivers request in [0, arrival_window]
}

// RidersSpec configures rider arrivals and patience.
type RidersSpec struct {
	Rate        float64 `yaml:"rate"` // riders per tick
	PatienceMin int64   `yaml:"patience_min"`
	PatienceMax int64   `yaml:"patience_max"`
}

// LoadScenario reads and parses a YAML scenario file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadScenario(path string) (*ScenarioSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes a YAML scenario with strict field checking.
func ParseScenario(data []byte) (*ScenarioSpec, error) {
	var spec ScenarioSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return &spec, nil
}

// Validate checks that the scenario is usable by Generate.
func (s *ScenarioSpec) Validate() error {
	if s.Horizon <= 0 {
		return fmt.Errorf("horizon must be positive, got %d", s.Horizon)
	}
	if s.Grid.Rows <= 0 || s.Grid.Columns <= 0 {
		return fmt.Errorf("grid must have positive rows and columns, got %dx%d", s.Grid.Rows, s.Grid.Columns)
	}
	if err := s.Drivers.validate(); err != nil {
		return err
	}
	return s.Riders.validate()
}

func (d *DriversSpec) validate() error {
	if d.Count < 0 {
		return fmt.Errorf("drivers.count must be non-negative, got %d", d.Count)
	}
	if d.SpeedMin <= 0 {
		return fmt.Errorf("drivers.speed_min must be positive, got %d", d.SpeedMin)
	}
	if d.SpeedMax < d.SpeedMin {
		return fmt.Errorf("drivers.speed_max (%d) must be >= speed_min (%d)", d.SpeedMax, d.SpeedMin)
	}
	if d.ArrivalWindow < 0 {
		return fmt.Errorf("drivers.arrival_window must be non-negative, got %d", d.ArrivalWindow)
	}
	return nil
}

func (r *RidersSpec) validate() error {
	if math.IsNaN(r.Rate) || math.IsInf(r.Rate, 0) || r.Rate <= 0 {
		return fmt.Errorf("riders.rate must be a positive finite number, got %f", r.Rate)
	}
	if r.PatienceMin < 0 {
		return fmt.Errorf("riders.patience_min must be non-negative, got %d", r.PatienceMin)
	}
	if r.PatienceMax < r.PatienceMin {
		return fmt.Errorf("riders.patience_max (%d) must be >= patience_min (%d)", r.PatienceMax, r.PatienceMin)
	}
	return nil
}
