package workload

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/ride-sim/ride-sim/sim"
	"github.com/ride-sim/ride-sim/sim/geo"
)

// Generate creates the initial events for a scenario.
// Deterministic given the same spec. Returns events sorted by timestamp,
// drivers before riders within a tick, with sequential IDs per kind.
func Generate(spec *ScenarioSpec) ([]sim.Event, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(spec.Seed))

	drivers := generateDrivers(spec, rng.ForSubsystem(sim.SubsystemDrivers))
	riders := generateRiders(spec, rng.ForSubsystem(sim.SubsystemRiders))

	// Stable sort keeps drivers ahead of riders that share a tick.
	events := append(drivers, riders...)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp() < events[j].Timestamp()
	})
	return events, nil
}

func generateDrivers(spec *ScenarioSpec, rng *rand.Rand) []sim.Event {
	type draw struct {
		ts    int64
		loc   geo.Location
		speed int
	}
	cfg := spec.Drivers
	draws := make([]draw, cfg.Count)
	for i := range draws {
		draws[i] = draw{
			ts:    rng.Int63n(cfg.ArrivalWindow + 1),
			loc:   randomLocation(rng, spec.Grid),
			speed: cfg.SpeedMin + rng.Intn(cfg.SpeedMax-cfg.SpeedMin+1),
		}
	}
	sort.SliceStable(draws, func(i, j int) bool { return draws[i].ts < draws[j].ts })

	events := make([]sim.Event, len(draws))
	for i, d := range draws {
		driver := sim.NewDriver(fmt.Sprintf("driver_%d", i), d.loc, d.speed)
		events[i] = sim.NewDriverRequestEvent(d.ts, driver)
	}
	return events
}

func generateRiders(spec *ScenarioSpec, rng *rand.Rand) []sim.Event {
	sampler := NewPoissonSampler(spec.Riders.Rate)
	span := spec.Riders.PatienceMax - spec.Riders.PatienceMin + 1

	var events []sim.Event
	current := int64(0)
	for {
		current += sampler.SampleIAT(rng)
		if current >= spec.Horizon {
			break
		}
		origin := randomLocation(rng, spec.Grid)
		destination := randomDestination(rng, spec.Grid, origin)
		patience := spec.Riders.PatienceMin + rng.Int63n(span)
		rider := sim.NewRider(fmt.Sprintf("rider_%d", len(events)), patience, origin, destination)
		events = append(events, sim.NewRiderRequestEvent(current, rider))
	}
	return events
}

func randomLocation(rng *rand.Rand, grid GridSpec) geo.Location {
	return geo.Location{Row: rng.Intn(grid.Rows), Column: rng.Intn(grid.Columns)}
}

// randomDestination draws a cell other than origin, unless the grid has only one.
func randomDestination(rng *rand.Rand, grid GridSpec, origin geo.Location) geo.Location {
	if grid.Rows*grid.Columns == 1 {
		return origin
	}
	for {
		if dest := randomLocation(rng, grid); dest != origin {
			return dest
		}
	}
}
