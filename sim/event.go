package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/ride-sim/ride-sim/sim/trace"
)

// EventKind identifies the variant of an Event.
type EventKind string

const (
	KindRiderRequest  EventKind = "RiderRequest"
	KindDriverRequest EventKind = "DriverRequest"
	KindCancellation  EventKind = "Cancellation"
	KindPickup        EventKind = "Pickup"
	KindDropoff       EventKind = "Dropoff"
)

// Event defines the interface for all simulation events.
// Each event has a Timestamp (in ticks) and a Do method that mutates riders,
// drivers and the dispatcher, and returns the events it spawns.
type Event interface {
	Timestamp() int64
	Kind() EventKind
	Do(d *Dispatcher, rec Recorder) []Event
	String() string
}

// baseEvent provides the timestamp shared by every event.
type baseEvent struct {
	time int64
}

func (e *baseEvent) Timestamp() int64 {
	return e.time
}

// after returns the tick d ticks past t, clamped to math.MaxInt64.
func after(t, d int64) int64 {
	if d > math.MaxInt64-t {
		return math.MaxInt64
	}
	return t + d
}

// RiderRequestEvent represents a rider asking for a driver.
type RiderRequestEvent struct {
	baseEvent
	Rider *Rider
}

func NewRiderRequestEvent(timestamp int64, rider *Rider) *RiderRequestEvent {
	return &RiderRequestEvent{baseEvent: baseEvent{time: timestamp}, Rider: rider}
}

func (e *RiderRequestEvent) Kind() EventKind { return KindRiderRequest }

// Do assigns the nearest available driver, if any, and always schedules the
// rider's cancellation at the end of their patience. A cancellation that fires
// after the pickup is a no-op (see CancellationEvent.Do).
func (e *RiderRequestEvent) Do(d *Dispatcher, rec Recorder) []Event {
	rec.Notify(e.time, trace.ActorRider, trace.ActivityRequest, e.Rider.ID, e.Rider.Origin)

	events := make([]Event, 0, 2)
	if driver := d.RequestDriver(e.Rider); driver != nil {
		travel := driver.StartDrive(e.Rider.Origin)
		events = append(events, NewPickupEvent(after(e.time, travel), e.Rider, driver))
	}
	events = append(events, NewCancellationEvent(after(e.time, e.Rider.Patience), e.Rider))
	return events
}

func (e *RiderRequestEvent) String() string {
	return fmt.Sprintf("%d -- %s: Request a driver", e.time, e.Rider)
}

// DriverRequestEvent represents a driver asking for a rider.
type DriverRequestEvent struct {
	baseEvent
	Driver *Driver
}

func NewDriverRequestEvent(timestamp int64, driver *Driver) *DriverRequestEvent {
	return &DriverRequestEvent{baseEvent: baseEvent{time: timestamp}, Driver: driver}
}

func (e *DriverRequestEvent) Kind() EventKind { return KindDriverRequest }

// Do registers the driver and, if a rider is waiting, starts the drive to them.
// A request from a driver that is already underway is ignored.
func (e *DriverRequestEvent) Do(d *Dispatcher, rec Recorder) []Event {
	if !e.Driver.Available() {
		logrus.Warnf("[tick %07d] ignoring request from busy driver %s", e.time, e.Driver.ID)
		return nil
	}
	rec.Notify(e.time, trace.ActorDriver, trace.ActivityRequest, e.Driver.ID, e.Driver.Location)

	rider := d.RequestRider(e.Driver)
	if rider == nil {
		return nil
	}
	travel := e.Driver.StartDrive(rider.Origin)
	return []Event{NewPickupEvent(after(e.time, travel), rider, e.Driver)}
}

func (e *DriverRequestEvent) String() string {
	return fmt.Sprintf("%d -- %s: Request a rider", e.time, e.Driver)
}

// CancellationEvent represents a rider running out of patience.
type CancellationEvent struct {
	baseEvent
	Rider *Rider
}

func NewCancellationEvent(timestamp int64, rider *Rider) *CancellationEvent {
	return &CancellationEvent{baseEvent: baseEvent{time: timestamp}, Rider: rider}
}

func (e *CancellationEvent) Kind() EventKind { return KindCancellation }

// Do cancels the ride unless the rider has already been picked up.
func (e *CancellationEvent) Do(d *Dispatcher, rec Recorder) []Event {
	if e.Rider.Status == RiderSatisfied {
		return nil
	}
	rec.Notify(e.time, trace.ActorRider, trace.ActivityCancel, e.Rider.ID, e.Rider.Origin)
	e.Rider.CancelledRide()
	d.CancelRide(e.Rider)
	return nil
}

func (e *CancellationEvent) String() string {
	return fmt.Sprintf("%d -- %s: Cancel ride", e.time, e.Rider)
}

// PickupEvent represents a driver arriving at a rider's origin.
type PickupEvent struct {
	baseEvent
	Rider  *Rider
	Driver *Driver
}

func NewPickupEvent(timestamp int64, rider *Rider, driver *Driver) *PickupEvent {
	return &PickupEvent{baseEvent: baseEvent{time: timestamp}, Rider: rider, Driver: driver}
}

func (e *PickupEvent) Kind() EventKind { return KindPickup }

// Do starts the ride if the rider is still waiting. If the rider cancelled
// while the driver was on the way, the driver is freed and asks for a new
// rider at the same tick.
func (e *PickupEvent) Do(d *Dispatcher, rec Recorder) []Event {
	if e.Driver.Destination == nil {
		panic(fmt.Sprintf("Pickup: driver %q is not driving to rider %q", e.Driver.ID, e.Rider.ID))
	}
	rec.Notify(e.time, trace.ActorRider, trace.ActivityPickup, e.Rider.ID, e.Rider.Origin)
	rec.Notify(e.time, trace.ActorDriver, trace.ActivityPickup, e.Driver.ID, *e.Driver.Destination)

	e.Driver.EndDrive()

	switch e.Rider.Status {
	case RiderWaiting:
		travel := e.Driver.StartRide(e.Rider)
		e.Rider.Satisfied()
		return []Event{NewDropoffEvent(after(e.time, travel), e.Rider, e.Driver)}
	case RiderCancelled:
		e.Driver.Release()
		return []Event{NewDriverRequestEvent(e.time, e.Driver)}
	default:
		panic(fmt.Sprintf("Pickup: rider %q is already %s", e.Rider.ID, e.Rider.Status))
	}
}

func (e *PickupEvent) String() string {
	return fmt.Sprintf("%d -- %s: Pickup %s", e.time, e.Driver, e.Rider)
}

// DropoffEvent represents a driver delivering a rider to their destination.
type DropoffEvent struct {
	baseEvent
	Rider  *Rider
	Driver *Driver
}

func NewDropoffEvent(timestamp int64, rider *Rider, driver *Driver) *DropoffEvent {
	return &DropoffEvent{baseEvent: baseEvent{time: timestamp}, Rider: rider, Driver: driver}
}

func (e *DropoffEvent) Kind() EventKind { return KindDropoff }

// Do ends the ride and sends the driver looking for its next rider.
func (e *DropoffEvent) Do(d *Dispatcher, rec Recorder) []Event {
	e.Driver.EndRide()

	rec.Notify(e.time, trace.ActorRider, trace.ActivityDropoff, e.Rider.ID, e.Rider.Destination)
	rec.Notify(e.time, trace.ActorDriver, trace.ActivityDropoff, e.Driver.ID, e.Driver.Location)

	return []Event{NewDriverRequestEvent(e.time, e.Driver)}
}

func (e *DropoffEvent) String() string {
	return fmt.Sprintf("%d -- %s: Drop-off %s", e.time, e.Driver, e.Rider)
}
