package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/ride-sim/ride-sim/sim"
	"github.com/ride-sim/ride-sim/sim/metrics"
	"github.com/ride-sim/ride-sim/sim/stream"
	"github.com/ride-sim/ride-sim/sim/trace"
	"github.com/ride-sim/ride-sim/sim/workload"
)

// runOptions is the resolved configuration of one run, after the run config
// file and command-line flags are merged.
type runOptions struct {
	EventsPath      string
	Horizon         int64
	LogLevel        string
	MetricsTextfile string
	KafkaBrokers    []string
	KafkaTopic      string
	KafkaTimeout    time.Duration
}

// activitySink is a recorder whose output is published after the run.
type activitySink interface {
	sim.Recorder
	Flush(ctx context.Context) error
	Close() error
}

// newActivitySink builds the Kafka publisher; tests replace it.
var newActivitySink = func(brokers []string, topic string) activitySink {
	return stream.NewKafkaRecorder(brokers, topic)
}

// runSimulation loads the events, runs them to the horizon, prints the report
// to out and publishes to any configured exporters.
func runSimulation(opts runOptions, out io.Writer) (*trace.Report, error) {
	events, err := workload.LoadEvents(opts.EventsPath)
	if err != nil {
		return nil, err
	}

	var recorders []sim.Recorder
	var registry *prometheus.Registry
	if opts.MetricsTextfile != "" {
		registry = prometheus.NewRegistry()
		recorders = append(recorders, metrics.NewPromRecorder(registry))
	}
	var sink activitySink
	if len(opts.KafkaBrokers) > 0 {
		sink = newActivitySink(opts.KafkaBrokers, opts.KafkaTopic)
		defer func() {
			if err := sink.Close(); err != nil {
				logrus.Warnf("closing kafka writer: %v", err)
			}
		}()
		recorders = append(recorders, sink)
	}

	s := sim.NewSimulator(sim.SimConfig{Horizon: opts.Horizon, Recorders: recorders})
	report := s.Run(events)
	report.Print(out)

	if registry != nil {
		if err := metrics.WriteTextfile(opts.MetricsTextfile, registry); err != nil {
			return report, err
		}
		logrus.Infof("Wrote metrics to %s", opts.MetricsTextfile)
	}
	if sink != nil {
		ctx, cancel := context.WithTimeout(context.Background(), opts.KafkaTimeout)
		defer cancel()
		if err := sink.Flush(ctx); err != nil {
			return report, err
		}
	}
	return report, nil
}

// generateEvents writes the events for a scenario to outPath, or to stdout
// when outPath is empty. A non-nil seed replaces the scenario's seed.
func generateEvents(scenarioPath, outPath string, seed *int64, stdout io.Writer) error {
	spec, err := workload.LoadScenario(scenarioPath)
	if err != nil {
		return err
	}
	if seed != nil {
		spec.Seed = *seed
	}
	events, err := workload.Generate(spec)
	if err != nil {
		return err
	}

	if outPath == "" {
		return workload.WriteEvents(stdout, events)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating events file: %w", err)
	}
	if err := workload.WriteEvents(f, events); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing events file: %w", err)
	}
	logrus.Infof("Wrote %d events to %s", len(events), outPath)
	return nil
}
