package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RunConfig is the optional YAML file passed with --config.
// All sections must be listed to satisfy KnownFields(true) strict parsing.
// Horizon is a pointer so an explicit "horizon: 0" is told apart from an
// absent key.
type RunConfig struct {
	Horizon         *int64      `yaml:"horizon"`
	LogLevel        string      `yaml:"log_level"`
	MetricsTextfile string      `yaml:"metrics_textfile"`
	Kafka           KafkaConfig `yaml:"kafka"`
}

// KafkaConfig configures activity publishing.
type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// LoadRunConfig reads a run config with strict field checking.
func LoadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run config: %w", err)
	}
	var cfg RunConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing run config: %w", err)
	}
	if cfg.Horizon != nil && *cfg.Horizon < 0 {
		return nil, fmt.Errorf("horizon must be non-negative, got %d", *cfg.Horizon)
	}
	return &cfg, nil
}

// applyTo fills opts from the file. Values the file leaves empty, and flags
// the user set explicitly, are left alone.
func (c *RunConfig) applyTo(opts *runOptions, changed func(flag string) bool) {
	if c.Horizon != nil && !changed("horizon") {
		opts.Horizon = *c.Horizon
	}
	if c.LogLevel != "" && !changed("log") {
		opts.LogLevel = c.LogLevel
	}
	if c.MetricsTextfile != "" && !changed("metrics-textfile") {
		opts.MetricsTextfile = c.MetricsTextfile
	}
	if len(c.Kafka.Brokers) > 0 && !changed("kafka-brokers") {
		opts.KafkaBrokers = c.Kafka.Brokers
	}
	if c.Kafka.Topic != "" && !changed("kafka-topic") {
		opts.KafkaTopic = c.Kafka.Topic
	}
}
