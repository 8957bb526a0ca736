// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ride-sim/ride-sim/sim/trace"
)

// SimConfig groups the knobs of a simulation run.
type SimConfig struct {
	// Horizon is the last tick whose events are processed. Events scheduled
	// later stay in the queue.
	Horizon int64
	// Recorders receive every activity notification in addition to the
	// simulator's own Monitor.
	Recorders []Recorder
}

// Simulator is the core object that holds simulation time, the dispatcher,
// and the event loop.
type Simulator struct {
	Clock   int64
	Horizon int64
	// Queue holds pending events ordered by (timestamp, scheduling order)
	Queue      *EventHeap
	Dispatcher *Dispatcher
	// Monitor collects every activity for the final report
	Monitor *trace.Monitor
	// Processed counts events executed so far
	Processed int

	recorder Recorder
}

// NewSimulator creates a simulator with an empty queue and dispatcher.
func NewSimulator(cfg SimConfig) *Simulator {
	monitor := trace.NewMonitor()
	rec := MultiRecorder{monitor}
	rec = append(rec, cfg.Recorders...)
	return &Simulator{
		Clock:      0,
		Horizon:    cfg.Horizon,
		Queue:      NewEventHeap(),
		Dispatcher: NewDispatcher(),
		Monitor:    monitor,
		recorder:   rec,
	}
}

// Schedule pushes an event into the simulator's queue.
func (sim *Simulator) Schedule(ev Event) {
	if ev.Timestamp() < 0 {
		panic(fmt.Sprintf("Schedule: negative timestamp %d for %s", ev.Timestamp(), ev.Kind()))
	}
	sim.Queue.Schedule(ev)
}

// Step pops and executes the next event, scheduling whatever it spawns.
// Returns false when there is nothing left to do before the horizon.
func (sim *Simulator) Step() bool {
	next := sim.Queue.Peek()
	if next == nil || next.Timestamp() > sim.Horizon {
		return false
	}
	ev := sim.Queue.PopNext()
	if ev.Timestamp() < sim.Clock {
		panic(fmt.Sprintf("Clock went backwards: %d < %d", ev.Timestamp(), sim.Clock))
	}
	sim.Clock = ev.Timestamp()
	logrus.Debugf("[tick %07d] Executing %s", sim.Clock, ev)

	spawned := ev.Do(sim.Dispatcher, sim.recorder)
	sim.Processed++
	for _, s := range spawned {
		sim.Schedule(s)
	}
	return true
}

// Run schedules the initial events and processes the queue until it drains
// or the next event lies beyond the horizon.
func (sim *Simulator) Run(initial []Event) *trace.Report {
	for _, ev := range initial {
		sim.Schedule(ev)
	}
	logrus.Infof("[tick %07d] Simulation started with %d events, horizon=%d", sim.Clock, len(initial), sim.Horizon)

	for sim.Step() {
	}

	logrus.Infof("[tick %07d] Simulation ended after %d events, %d pending", sim.Clock, sim.Processed, sim.Queue.Len())
	return sim.Report()
}

// Report summarizes everything recorded so far.
func (sim *Simulator) Report() *trace.Report {
	report := trace.Summarize(sim.Monitor)
	report.SimEndedTime = sim.Clock
	report.PendingEvents = sim.Queue.Len()
	return report
}

// Pending returns the number of events still queued.
func (sim *Simulator) Pending() int {
	return sim.Queue.Len()
}
