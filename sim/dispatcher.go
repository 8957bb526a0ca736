package sim

import "fmt"

// Dispatcher matches riders with drivers.
//
// It is the only state shared across events: the roster of every driver that
// has ever requested a rider, and the FIFO list of riders nobody could serve
// yet. A rider is on the list at most once, and only while waiting with no
// driver en route.
type Dispatcher struct {
	drivers []*Driver  // registration order, unique by ID
	waiting *WaitQueue // riders without a driver
}

// NewDispatcher creates a dispatcher with no drivers and no waiting riders.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		drivers: make([]*Driver, 0),
		waiting: &WaitQueue{},
	}
}

// RequestDriver returns the available driver with the shortest travel time to
// the rider's origin, or nil if none is available. Ties go to the driver that
// registered first. When nil is returned the rider joins the waiting list.
//
// The chosen driver is not marked busy; the caller starts the drive.
func (d *Dispatcher) RequestDriver(rider *Rider) *Driver {
	var closest *Driver
	var best int64
	for _, drv := range d.drivers {
		if !drv.Available() {
			continue
		}
		tt := drv.TravelTime(rider.Origin)
		if closest == nil || tt < best {
			closest, best = drv, tt
		}
	}
	if closest == nil {
		d.waiting.mustNotContain(rider)
		d.waiting.Enqueue(rider)
	}
	return closest
}

// RequestRider registers driver if it is new, then hands it the rider that
// has waited longest. Returns nil if nobody is waiting.
func (d *Dispatcher) RequestRider(driver *Driver) *Rider {
	if !d.isRegistered(driver) {
		d.drivers = append(d.drivers, driver)
	}
	return d.waiting.Dequeue()
}

// CancelRide takes rider off the waiting list, if present, and marks it
// cancelled.
func (d *Dispatcher) CancelRide(rider *Rider) {
	d.waiting.Remove(rider)
	rider.CancelledRide()
}

func (d *Dispatcher) isRegistered(driver *Driver) bool {
	for _, drv := range d.drivers {
		if drv.SameAs(driver) {
			return true
		}
	}
	return false
}

// Drivers returns the registered drivers in registration order.
// Callers MUST NOT modify the returned slice.
func (d *Dispatcher) Drivers() []*Driver {
	return d.drivers
}

// WaitingRiders returns the waiting riders, front of the queue first.
// Callers MUST NOT modify the returned slice.
func (d *Dispatcher) WaitingRiders() []*Rider {
	return d.waiting.Items()
}

func (d *Dispatcher) String() string {
	return fmt.Sprintf("Dispatcher: (Drivers: %d, Waiting riders: %s)", len(d.drivers), d.waiting)
}
