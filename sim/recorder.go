package sim

import (
	"github.com/ride-sim/ride-sim/sim/geo"
	"github.com/ride-sim/ride-sim/sim/trace"
)

// Recorder receives one notification per rider or driver activity.
// Event handlers call it at fixed points; what happens next is up to the
// implementation (trace.Monitor, Prometheus counters, a Kafka stream).
type Recorder interface {
	Notify(timestamp int64, actor trace.ActorKind, activity trace.ActivityKind, id string, loc geo.Location)
}

// MultiRecorder fans each notification out to every recorder, in order.
type MultiRecorder []Recorder

func (m MultiRecorder) Notify(timestamp int64, actor trace.ActorKind, activity trace.ActivityKind, id string, loc geo.Location) {
	for _, r := range m {
		r.Notify(timestamp, actor, activity, id, loc)
	}
}

// compile-time check
var _ Recorder = (*trace.Monitor)(nil)
