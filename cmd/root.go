package cmd

import (
	"math"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// CLI flags for the run command
	eventsPath        string        // Events file to simulate
	simulationHorizon int64         // Last tick to process (inclusive)
	logLevel          string        // Log verbosity level
	configPath        string        // Optional YAML run config
	metricsTextfile   string        // Prometheus textfile output path
	kafkaBrokers      []string      // Kafka brokers for activity publishing
	kafkaTopic        string        // Kafka topic for activity publishing
	kafkaTimeout      time.Duration // Deadline for publishing buffered activities

	// CLI flags for the generate command
	scenarioPath string // YAML scenario file
	outPath      string // Events output path (stdout when empty)
	seed         int64  // Overrides the scenario seed when set
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "ride-sim",
	Short: "Discrete-event simulator for ride-sharing dispatch",
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the ride-sharing simulation",
	Run: func(cmd *cobra.Command, args []string) {
		opts := runOptions{
			EventsPath:      eventsPath,
			Horizon:         simulationHorizon,
			LogLevel:        logLevel,
			MetricsTextfile: metricsTextfile,
			KafkaBrokers:    kafkaBrokers,
			KafkaTopic:      kafkaTopic,
			KafkaTimeout:    kafkaTimeout,
		}
		if configPath != "" {
			cfg, err := LoadRunConfig(configPath)
			if err != nil {
				logrus.Fatalf("Failed to load run config: %v", err)
			}
			cfg.applyTo(&opts, cmd.Flags().Changed)
		}

		// Set up logging
		level, err := logrus.ParseLevel(opts.LogLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", opts.LogLevel)
		}
		logrus.SetLevel(level)

		if opts.EventsPath == "" {
			logrus.Fatalf("Events file not provided. Exiting simulation.")
		}

		if _, err := runSimulation(opts, os.Stdout); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// generateCmd writes a synthetic events file from a scenario
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an events file from a YAML scenario",
	Run: func(cmd *cobra.Command, args []string) {
		if scenarioPath == "" {
			logrus.Fatalf("Scenario file not provided.")
		}
		var seedOverride *int64
		if cmd.Flags().Changed("seed") {
			seedOverride = &seed
		}
		if err := generateEvents(scenarioPath, outPath, seedOverride, os.Stdout); err != nil {
			logrus.Fatalf("Generation failed: %v", err)
		}
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&eventsPath, "events", "", "Events file to simulate")
	runCmd.Flags().Int64Var(&simulationHorizon, "horizon", math.MaxInt64, "Total simulation horizon (in ticks)")
	runCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&configPath, "config", "", "YAML run config; flags set on the command line take precedence")

	// Exporters
	runCmd.Flags().StringVar(&metricsTextfile, "metrics-textfile", "", "Write Prometheus metrics to this textfile after the run")
	runCmd.Flags().StringSliceVar(&kafkaBrokers, "kafka-brokers", nil, "Comma-separated Kafka brokers for publishing activities")
	runCmd.Flags().StringVar(&kafkaTopic, "kafka-topic", "ride-activities", "Kafka topic for published activities")
	runCmd.Flags().DurationVar(&kafkaTimeout, "kafka-timeout", 10*time.Second, "Deadline for publishing activities after the run")

	generateCmd.Flags().StringVar(&scenarioPath, "scenario", "", "YAML scenario file")
	generateCmd.Flags().StringVar(&outPath, "out", "", "Events output file (default stdout)")
	generateCmd.Flags().Int64Var(&seed, "seed", 42, "Override the scenario seed")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(generateCmd)
}
