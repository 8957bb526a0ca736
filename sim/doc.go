// Package sim provides the core discrete-event simulation engine for ride-sim.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - rider.go, driver.go: the two actors and their small state machines
//   - dispatcher.go: the matching policy (nearest available driver, FIFO riders)
//   - event.go: the five event types and the events each one spawns
//   - simulator.go: the pop-execute-push loop over EventHeap
//
// # Determinism
//
// The simulation is single-threaded. Events are processed in non-decreasing
// timestamp order; events with equal timestamps are processed in the order
// they were scheduled (see EventHeap). Given the same input, every run
// produces the same activity trace.
//
// # Sub-packages
//   - sim/geo/: grid locations and Manhattan distance
//   - sim/trace/: activity recording and the end-of-run report
//   - sim/workload/: event-file parsing and synthetic workload generation
//   - sim/metrics/: Prometheus recorder
//   - sim/stream/: Kafka recorder
package sim
