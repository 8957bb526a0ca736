package sim

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// processed describes an executed event as "Kind@tick".
func processed(ev Event) string {
	return fmt.Sprintf("%s@%d", ev.Kind(), ev.Timestamp())
}

// runStepwise drives the simulator one event at a time, checking invariants
// after every action, and returns the executed events in order.
func runStepwise(t *testing.T, s *Simulator, initial []Event, riders []*Rider) []string {
	t.Helper()
	for _, ev := range initial {
		s.Schedule(ev)
	}
	seen := make(map[string]RiderStatus)
	var order []string
	for {
		next := s.Queue.Peek()
		if next == nil || next.Timestamp() > s.Horizon {
			break
		}
		require.True(t, s.Step())
		order = append(order, processed(next))

		for _, d := range s.Dispatcher.Drivers() {
			assertDriverConsistent(t, d)
		}
		assertWaitlistOnlyWaiting(t, s.Dispatcher)
		for _, r := range riders {
			prev, ok := seen[r.ID]
			if ok && prev != RiderWaiting && prev != r.Status {
				t.Fatalf("rider %s left terminal status %s for %s", r.ID, prev, r.Status)
			}
			seen[r.ID] = r.Status
		}
	}
	return order
}

func newTestSimulator(horizon int64) *Simulator {
	return NewSimulator(SimConfig{Horizon: horizon})
}

func TestSimulator_SingleRide_EventChain(t *testing.T) {
	// GIVEN driver D at (0,0) speed 1 requesting at t=0
	// AND rider R (patience 100) from (0,5) to (0,10) requesting at t=1
	d := NewDriver("D", at(0, 0), 1)
	r := NewRider("R", 100, at(0, 5), at(0, 10))
	s := newTestSimulator(math.MaxInt64)

	// WHEN the simulation runs to completion
	order := runStepwise(t, s, []Event{
		NewDriverRequestEvent(0, d),
		NewRiderRequestEvent(1, r),
	}, []*Rider{r})

	// THEN the event chain matches the expected causal sequence
	assert.Equal(t, []string{
		"DriverRequest@0",
		"RiderRequest@1",
		"Pickup@6",
		"Dropoff@11",
		"DriverRequest@11",
		"Cancellation@101",
	}, order)
	assert.Equal(t, RiderSatisfied, r.Status)
	assert.True(t, d.IsIdle)
	assert.Nil(t, d.Destination)
	assert.Equal(t, at(0, 10), d.Location)
	assert.Equal(t, 0, s.Pending())
	assert.Equal(t, int64(101), s.Clock)
}

func TestSimulator_StaleCancellation_FreesDriver(t *testing.T) {
	// GIVEN a rider whose patience (2) runs out before the driver arrives (5 ticks away)
	d := NewDriver("D", at(0, 0), 1)
	r := NewRider("R", 2, at(0, 5), at(0, 10))
	s := newTestSimulator(math.MaxInt64)

	order := runStepwise(t, s, []Event{
		NewDriverRequestEvent(0, d),
		NewRiderRequestEvent(1, r),
	}, []*Rider{r})

	// THEN the pickup frees the driver and re-issues a driver request, with no dropoff
	assert.Equal(t, []string{
		"DriverRequest@0",
		"RiderRequest@1",
		"Cancellation@3",
		"Pickup@6",
		"DriverRequest@6",
	}, order)
	assert.Equal(t, RiderCancelled, r.Status)
	assert.True(t, d.Available())
	assert.Equal(t, at(0, 5), d.Location)
}

func TestSimulator_WaitingRider_ServedAfterDropoff(t *testing.T) {
	// GIVEN one driver and two riders, the second arriving while the driver is busy
	d := NewDriver("D", at(0, 0), 1)
	r1 := NewRider("R1", 50, at(0, 2), at(0, 4))
	r2 := NewRider("R2", 50, at(0, 3), at(0, 0))
	s := newTestSimulator(math.MaxInt64)

	order := runStepwise(t, s, []Event{
		NewDriverRequestEvent(0, d),
		NewRiderRequestEvent(1, r1),
		NewRiderRequestEvent(2, r2),
	}, []*Rider{r1, r2})

	// THEN the dropoff's driver request picks up the waitlisted rider
	assert.Equal(t, []string{
		"DriverRequest@0",
		"RiderRequest@1",
		"RiderRequest@2",
		"Pickup@3",
		"Dropoff@5",
		"DriverRequest@5",
		"Pickup@6",
		"Dropoff@9",
		"DriverRequest@9",
		"Cancellation@51",
		"Cancellation@52",
	}, order)
	assert.Equal(t, RiderSatisfied, r1.Status)
	assert.Equal(t, RiderSatisfied, r2.Status)

	report := s.Report()
	assert.Equal(t, 3.0, report.RiderWaitTime)
	assert.Equal(t, 8.0, report.DriverTotalDistance)
	assert.Equal(t, 5.0, report.DriverRideDistance)
	assert.Equal(t, 2, report.Dropoffs)
	assert.Equal(t, 0, report.Cancellations)
}

func TestSimulator_Run_ReturnsReport(t *testing.T) {
	d := NewDriver("D", at(0, 0), 1)
	r := NewRider("R", 100, at(0, 5), at(0, 10))
	s := newTestSimulator(math.MaxInt64)

	report := s.Run([]Event{NewDriverRequestEvent(0, d), NewRiderRequestEvent(1, r)})

	assert.Equal(t, 5.0, report.RiderWaitTime)
	assert.Equal(t, 10.0, report.DriverTotalDistance)
	assert.Equal(t, 5.0, report.DriverRideDistance)
	assert.Equal(t, int64(101), report.SimEndedTime)
	assert.Equal(t, 0, report.PendingEvents)
	assert.Equal(t, 6, s.Processed)
}

func TestSimulator_Horizon_StopsBeforeLaterEvents(t *testing.T) {
	d := NewDriver("D", at(0, 0), 1)
	r := NewRider("R", 100, at(0, 5), at(0, 10))

	// WHEN the horizon is before the pickup
	s := newTestSimulator(5)
	report := s.Run([]Event{NewDriverRequestEvent(0, d), NewRiderRequestEvent(1, r)})

	// THEN only the two requests run; pickup and cancellation stay queued
	assert.Equal(t, 2, s.Processed)
	assert.Equal(t, 2, report.PendingEvents)
	assert.Equal(t, int64(1), report.SimEndedTime)
	assert.Equal(t, RiderWaiting, r.Status)
}

func TestSimulator_Horizon_IsInclusive(t *testing.T) {
	d := NewDriver("D", at(0, 0), 1)
	r := NewRider("R", 100, at(0, 5), at(0, 10))

	s := newTestSimulator(6)
	s.Run([]Event{NewDriverRequestEvent(0, d), NewRiderRequestEvent(1, r)})

	assert.Equal(t, 3, s.Processed)
	assert.Equal(t, RiderSatisfied, r.Status)
}

func TestSimulator_ExtraRecorders_ReceiveNotifications(t *testing.T) {
	rec := &captureRecorder{}
	s := NewSimulator(SimConfig{Horizon: math.MaxInt64, Recorders: []Recorder{rec}})

	s.Run([]Event{
		NewDriverRequestEvent(0, NewDriver("D", at(0, 0), 1)),
		NewRiderRequestEvent(1, NewRider("R", 100, at(0, 5), at(0, 10))),
	})

	assert.Len(t, rec.calls, len(s.Monitor.All()))
	assert.Len(t, rec.calls, 7)
}

func TestSimulator_Deterministic(t *testing.T) {
	build := func() []Event {
		var evs []Event
		for i := 0; i < 4; i++ {
			evs = append(evs, NewDriverRequestEvent(int64(i%2), NewDriver(fmt.Sprintf("d%d", i), at(i, i), 1+i%3)))
		}
		for i := 0; i < 12; i++ {
			evs = append(evs, NewRiderRequestEvent(int64(i), NewRider(fmt.Sprintf("r%d", i), int64(3+i%5), at(i%4, 7-i%6), at(9-i%3, i%5))))
		}
		return evs
	}

	s1 := newTestSimulator(math.MaxInt64)
	s2 := newTestSimulator(math.MaxInt64)
	r1 := s1.Run(build())
	r2 := s2.Run(build())

	assert.Equal(t, s1.Monitor.All(), s2.Monitor.All())
	assert.Equal(t, r1, r2)
}

func TestSimulator_Schedule_NegativeTimestampPanics(t *testing.T) {
	s := newTestSimulator(10)
	assert.Panics(t, func() {
		s.Schedule(NewDriverRequestEvent(-1, NewDriver("D", at(0, 0), 1)))
	})
}

func TestSimulator_ClockRegression_Panics(t *testing.T) {
	s := newTestSimulator(100)
	s.Clock = 10
	s.Schedule(NewDriverRequestEvent(5, NewDriver("D", at(0, 0), 1)))
	assert.Panics(t, func() { s.Step() })
}

func TestSimulator_Step_EmptyQueue(t *testing.T) {
	assert.False(t, newTestSimulator(10).Step())
}
