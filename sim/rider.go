// Defines the Rider struct that models a person requesting a ride.
// Tracks identity, patience, trip endpoints and the rider's status.

package sim

import (
	"fmt"

	"github.com/ride-sim/ride-sim/sim/geo"
)

// RiderStatus represents the lifecycle state of a rider.
// Transitions only go forward: waiting -> cancelled or waiting -> satisfied.
type RiderStatus string

const (
	RiderWaiting   RiderStatus = "waiting"
	RiderCancelled RiderStatus = "cancelled"
	RiderSatisfied RiderStatus = "satisfied"
)

type Rider struct {
	ID          string       // Unique identifier for the rider
	Patience    int64        // Ticks the rider waits before cancelling
	Origin      geo.Location // Where the rider is picked up
	Destination geo.Location // Where the rider wants to go
	Status      RiderStatus  // waiting, cancelled, satisfied
}

// NewRider creates a rider in the waiting state.
func NewRider(id string, patience int64, origin, destination geo.Location) *Rider {
	return &Rider{
		ID:          id,
		Patience:    patience,
		Origin:      origin,
		Destination: destination,
		Status:      RiderWaiting,
	}
}

// CancelledRide marks the rider as cancelled. It does not inspect the
// current status; event handlers decide whether the transition is legal.
func (r *Rider) CancelledRide() {
	r.Status = RiderCancelled
}

// Satisfied marks the rider as picked up.
func (r *Rider) Satisfied() {
	r.Status = RiderSatisfied
}

// SameAs reports whether two riders share an identifier.
func (r *Rider) SameAs(other *Rider) bool {
	return other != nil && r.ID == other.ID
}

func (r Rider) String() string {
	return fmt.Sprintf("Rider: (ID: %s, Patience: %d, Origin: %s, Destination: %s, Status: %s)",
		r.ID, r.Patience, r.Origin, r.Destination, r.Status)
}
