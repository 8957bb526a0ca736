// Package trace records what riders and drivers did during a simulation run.
// It depends only on sim/geo, so recorders outside sim/ can use it.
package trace

import (
	"fmt"

	"github.com/ride-sim/ride-sim/sim/geo"
)

// ActorKind distinguishes the two kinds of simulation actors.
type ActorKind string

const (
	ActorRider  ActorKind = "rider"
	ActorDriver ActorKind = "driver"
)

// ActivityKind names a point in an actor's lifecycle.
type ActivityKind string

const (
	ActivityRequest ActivityKind = "request"
	ActivityCancel  ActivityKind = "cancel"
	ActivityPickup  ActivityKind = "pickup"
	ActivityDropoff ActivityKind = "dropoff"
)

// Activity captures a single notification from the simulation.
type Activity struct {
	Time     int64
	Actor    ActorKind
	Kind     ActivityKind
	ID       string
	Location geo.Location
}

func (a Activity) String() string {
	return fmt.Sprintf("%d %s %s %s @ %s", a.Time, a.Actor, a.ID, a.Kind, a.Location)
}
