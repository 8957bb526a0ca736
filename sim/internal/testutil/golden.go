// Package testutil provides shared test infrastructure for the ride simulator.
// It holds the golden run types and assertion helpers used across the sim
// test packages.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// GoldenDataset represents the structure of testdata/golden_runs.json.
type GoldenDataset struct {
	Runs []GoldenRun `json:"runs"`
}

// GoldenRun is an events file plus the report a full run must produce.
type GoldenRun struct {
	Name    string       `json:"name"`
	Horizon int64        `json:"horizon"` // 0 = run until the queue drains
	Events  []string     `json:"events"`
	Report  GoldenReport `json:"report"`
}

// EventsText joins the run's event lines into an events file body.
func (g GoldenRun) EventsText() string {
	return strings.Join(g.Events, "\n") + "\n"
}

// EffectiveHorizon maps the zero value to an unbounded horizon.
func (g GoldenRun) EffectiveHorizon() int64 {
	if g.Horizon == 0 {
		return math.MaxInt64
	}
	return g.Horizon
}

// GoldenReport represents the expected report of a golden run.
type GoldenReport struct {
	// Exact match counts
	Riders        int `json:"riders"`
	Drivers       int `json:"drivers"`
	Requests      int `json:"requests"`
	Pickups       int `json:"pickups"`
	Dropoffs      int `json:"dropoffs"`
	Cancellations int `json:"cancellations"`

	// Means over riders and drivers
	RiderWaitTime       float64 `json:"rider_wait_time"`
	DriverTotalDistance float64 `json:"driver_total_distance"`
	DriverRideDistance  float64 `json:"driver_ride_distance"`

	SimEndedTime  int64 `json:"sim_ended_time"`
	PendingEvents int   `json:"pending_events"`
}

// LoadGoldenDataset loads the golden runs from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "golden_runs.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}
	if len(dataset.Runs) == 0 {
		t.Fatal("golden dataset has no runs")
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
