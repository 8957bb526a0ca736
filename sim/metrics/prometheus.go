// Package metrics exports simulation activity as Prometheus metrics.
//
// A run is a one-shot batch job, so instead of serving /metrics the
// collected registry is written once to a node-exporter textfile.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ride-sim/ride-sim/sim"
	"github.com/ride-sim/ride-sim/sim/geo"
	"github.com/ride-sim/ride-sim/sim/trace"
)

const namespace = "ridesim"

var _ sim.Recorder = (*PromRecorder)(nil)

// PromRecorder counts activities and tracks rider wait times.
type PromRecorder struct {
	activities *prometheus.CounterVec
	clock      prometheus.Gauge
	waits      prometheus.Histogram

	requestedAt map[string]int64 // rider ID -> request tick, until first pickup or cancel
}

// NewPromRecorder registers the recorder's collectors on reg.
func NewPromRecorder(reg prometheus.Registerer) *PromRecorder {
	factory := promauto.With(reg)
	return &PromRecorder{
		activities: factory.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "activities_total", Help: "Recorded activities by actor and kind"},
			[]string{"actor", "activity"},
		),
		clock: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "sim_clock_ticks", Help: "Timestamp of the latest recorded activity",
		}),
		waits: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rider_wait_ticks",
			Help:      "Ticks between a rider's request and their pickup or cancellation",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		requestedAt: make(map[string]int64),
	}
}

func (p *PromRecorder) Notify(timestamp int64, actor trace.ActorKind, activity trace.ActivityKind, id string, _ geo.Location) {
	p.activities.WithLabelValues(string(actor), string(activity)).Inc()
	p.clock.Set(float64(timestamp))

	if actor != trace.ActorRider {
		return
	}
	switch activity {
	case trace.ActivityRequest:
		p.requestedAt[id] = timestamp
	case trace.ActivityPickup, trace.ActivityCancel:
		if start, ok := p.requestedAt[id]; ok {
			p.waits.Observe(float64(timestamp - start))
			delete(p.requestedAt, id)
		}
	}
}

// WriteTextfile writes everything g gathers to path in the text exposition format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
