package sim

import (
	"testing"

	"github.com/ride-sim/ride-sim/sim/geo"
	"github.com/ride-sim/ride-sim/sim/trace"
)

// notification is one captured Recorder call.
type notification struct {
	Time     int64
	Actor    trace.ActorKind
	Activity trace.ActivityKind
	ID       string
	Location geo.Location
}

// captureRecorder keeps every notification in call order.
type captureRecorder struct {
	calls []notification
}

func (c *captureRecorder) Notify(ts int64, actor trace.ActorKind, activity trace.ActivityKind, id string, loc geo.Location) {
	c.calls = append(c.calls, notification{ts, actor, activity, id, loc})
}

func at(row, col int) geo.Location {
	return geo.Location{Row: row, Column: col}
}

// assertDriverConsistent checks that a driver is idle exactly when it has no destination.
func assertDriverConsistent(t *testing.T, d *Driver) {
	t.Helper()
	if d.IsIdle != (d.Destination == nil) {
		t.Errorf("driver %s: IsIdle=%t but Destination=%v", d.ID, d.IsIdle, d.Destination)
	}
}

// assertWaitlistOnlyWaiting checks that every queued rider is still waiting.
func assertWaitlistOnlyWaiting(t *testing.T, d *Dispatcher) {
	t.Helper()
	for _, r := range d.WaitingRiders() {
		if r.Status != RiderWaiting {
			t.Errorf("rider %s on waitlist with status %s", r.ID, r.Status)
		}
	}
}
