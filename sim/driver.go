package sim

import (
	"fmt"
	"math"

	"github.com/ride-sim/ride-sim/sim/geo"
)

// Driver models a vehicle moving over the grid at a constant speed.
//
// A driver is available for dispatch only while IsIdle is true and
// Destination is nil. Destination is non-nil exactly while a drive or ride
// is scheduled and not yet resolved by a Pickup or Dropoff event.
type Driver struct {
	ID          string
	Location    geo.Location
	IsIdle      bool
	Destination *geo.Location

	speed int // grid cells per tick, always positive
}

// NewDriver creates an idle driver. Panics if speed is not positive.
func NewDriver(id string, location geo.Location, speed int) *Driver {
	if speed <= 0 {
		panic(fmt.Sprintf("NewDriver: speed must be positive, got %d for driver %q", speed, id))
	}
	return &Driver{
		ID:       id,
		Location: location,
		IsIdle:   true,
		speed:    speed,
	}
}

// Speed returns the driver's speed in grid cells per tick.
func (d *Driver) Speed() int {
	return d.speed
}

// Available reports whether the dispatcher may hand this driver a new rider.
func (d *Driver) Available() bool {
	return d.IsIdle && d.Destination == nil
}

// TravelTime returns the ticks needed to reach destination from the current
// location. Halves round to the nearest even integer.
func (d *Driver) TravelTime(destination geo.Location) int64 {
	distance := geo.ManhattanDistance(d.Location, destination)
	return int64(math.RoundToEven(float64(distance) / float64(d.speed)))
}

// StartDrive sends the driver towards location and returns the travel time.
func (d *Driver) StartDrive(location geo.Location) int64 {
	d.IsIdle = false
	travel := d.TravelTime(location)
	d.Destination = &location
	return travel
}

// EndDrive moves the driver onto its destination. The idle flag is left
// for the caller to decide.
func (d *Driver) EndDrive() {
	d.arrive("EndDrive")
}

// StartRide carries rider to their destination and returns the travel time.
func (d *Driver) StartRide(rider *Rider) int64 {
	d.IsIdle = false
	dest := rider.Destination
	d.Destination = &dest
	return d.TravelTime(dest)
}

// EndRide drops the rider off and makes the driver idle again.
func (d *Driver) EndRide() {
	d.arrive("EndRide")
	d.IsIdle = true
}

// Release frees a driver whose rider is gone, without moving it.
func (d *Driver) Release() {
	d.Destination = nil
	d.IsIdle = true
}

func (d *Driver) arrive(op string) {
	if d.Destination == nil {
		panic(fmt.Sprintf("%s: driver %q has no destination", op, d.ID))
	}
	d.Location = *d.Destination
	d.Destination = nil
}

// SameAs reports whether two drivers share an identifier.
func (d *Driver) SameAs(other *Driver) bool {
	return other != nil && d.ID == other.ID
}

func (d Driver) String() string {
	dest := "none"
	if d.Destination != nil {
		dest = d.Destination.String()
	}
	return fmt.Sprintf("Driver: (ID: %s, Location: %s, Idle: %t, Speed: %d, Destination: %s)",
		d.ID, d.Location, d.IsIdle, d.speed, dest)
}
