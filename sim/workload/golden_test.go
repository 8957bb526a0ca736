package workload

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ride-sim/ride-sim/sim"
	"github.com/ride-sim/ride-sim/sim/internal/testutil"
)

// TestGoldenRuns parses each golden events file, runs it end to end and
// compares the report against the recorded values.
func TestGoldenRuns(t *testing.T) {
	dataset := testutil.LoadGoldenDataset(t)

	for _, run := range dataset.Runs {
		t.Run(run.Name, func(t *testing.T) {
			events, err := ParseEvents(strings.NewReader(run.EventsText()))
			require.NoError(t, err)

			s := sim.NewSimulator(sim.SimConfig{Horizon: run.EffectiveHorizon()})
			got := s.Run(events)
			want := run.Report

			assert.Equal(t, want.Riders, got.Riders, "riders")
			assert.Equal(t, want.Drivers, got.Drivers, "drivers")
			assert.Equal(t, want.Requests, got.Requests, "requests")
			assert.Equal(t, want.Pickups, got.Pickups, "pickups")
			assert.Equal(t, want.Dropoffs, got.Dropoffs, "dropoffs")
			assert.Equal(t, want.Cancellations, got.Cancellations, "cancellations")
			assert.Equal(t, want.SimEndedTime, got.SimEndedTime, "sim_ended_time")
			assert.Equal(t, want.PendingEvents, got.PendingEvents, "pending_events")

			testutil.AssertFloat64Equal(t, "rider_wait_time", want.RiderWaitTime, got.RiderWaitTime, 1e-9)
			testutil.AssertFloat64Equal(t, "driver_total_distance", want.DriverTotalDistance, got.DriverTotalDistance, 1e-9)
			testutil.AssertFloat64Equal(t, "driver_ride_distance", want.DriverRideDistance, got.DriverRideDistance, 1e-9)
		})
	}
}
