package trace

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/stat"

	"github.com/ride-sim/ride-sim/sim/geo"
)

// Report aggregates statistics from a Monitor.
type Report struct {
	RiderWaitTime       float64 // mean ticks from request to pickup or cancel
	DriverTotalDistance float64 // mean grid distance travelled per driver
	DriverRideDistance  float64 // mean grid distance travelled with a rider on board, per driver

	Riders        int
	Drivers       int
	Requests      int // rider requests
	Pickups       int
	Dropoffs      int
	Cancellations int

	SimEndedTime  int64 // clock of the last processed event
	PendingEvents int   // events left unprocessed beyond the horizon
}

// Summarize computes aggregate statistics from a Monitor.
// Safe for nil or empty monitors (returns zero-value fields).
func Summarize(m *Monitor) *Report {
	report := &Report{}
	if m == nil {
		return report
	}

	riders := m.Actors(ActorRider)
	drivers := m.Actors(ActorDriver)
	report.Riders = len(riders)
	report.Drivers = len(drivers)

	waits := make([]float64, 0, len(riders))
	for _, id := range riders {
		acts := m.Activities(ActorRider, id)
		for _, a := range acts {
			switch a.Kind {
			case ActivityRequest:
				report.Requests++
			case ActivityPickup:
				report.Pickups++
			case ActivityDropoff:
				report.Dropoffs++
			case ActivityCancel:
				report.Cancellations++
			}
		}
		// A rider with fewer than two activities never stopped waiting.
		if len(acts) >= 2 {
			waits = append(waits, float64(acts[1].Time-acts[0].Time))
		}
	}

	total := make([]float64, 0, len(drivers))
	ride := make([]float64, 0, len(drivers))
	for _, id := range drivers {
		acts := m.Activities(ActorDriver, id)
		var t, r int
		for i := 1; i < len(acts); i++ {
			d := geo.ManhattanDistance(acts[i-1].Location, acts[i].Location)
			t += d
			if acts[i-1].Kind == ActivityPickup {
				r += d
			}
		}
		total = append(total, float64(t))
		ride = append(ride, float64(r))
	}

	report.RiderWaitTime = mean(waits)
	report.DriverTotalDistance = mean(total)
	report.DriverRideDistance = mean(ride)
	return report
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

// Print writes the report in a human-readable block.
func (r *Report) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Simulation Report ===")
	fmt.Fprintf(w, "Riders               : %d\n", r.Riders)
	fmt.Fprintf(w, "Drivers              : %d\n", r.Drivers)
	fmt.Fprintf(w, "Ride Requests        : %d\n", r.Requests)
	fmt.Fprintf(w, "Pickups              : %d\n", r.Pickups)
	fmt.Fprintf(w, "Dropoffs             : %d\n", r.Dropoffs)
	fmt.Fprintf(w, "Cancellations        : %d\n", r.Cancellations)
	fmt.Fprintf(w, "Rider Wait Time      : %.2f ticks\n", r.RiderWaitTime)
	fmt.Fprintf(w, "Driver Total Distance: %.2f\n", r.DriverTotalDistance)
	fmt.Fprintf(w, "Driver Ride Distance : %.2f\n", r.DriverRideDistance)
	fmt.Fprintf(w, "Simulation Ended At  : %d ticks\n", r.SimEndedTime)
	if r.PendingEvents > 0 {
		fmt.Fprintf(w, "Unprocessed Events   : %d\n", r.PendingEvents)
	}
}
