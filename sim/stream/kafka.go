// Package stream publishes simulation activities to Kafka.
package stream

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/ride-sim/ride-sim/sim"
	"github.com/ride-sim/ride-sim/sim/geo"
	"github.com/ride-sim/ride-sim/sim/trace"
)

var _ sim.Recorder = (*KafkaRecorder)(nil)

// marshalActivity encodes message values; tests replace it.
var marshalActivity = func(m ActivityMessage) ([]byte, error) { return json.Marshal(m) }

// MessageWriter is the subset of *kafka.Writer the recorder uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ActivityMessage is the JSON value published for each activity.
type ActivityMessage struct {
	Time     int64  `json:"time"`
	Actor    string `json:"actor"`
	Activity string `json:"activity"`
	ID       string `json:"id"`
	Row      int    `json:"row"`
	Column   int    `json:"column"`
}

// KafkaRecorder buffers activities during a run and publishes them on Flush.
// Notify never touches the network.
type KafkaRecorder struct {
	writer  MessageWriter
	pending []kafka.Message
}

// NewKafkaRecorder creates a recorder writing to topic on brokers.
func NewKafkaRecorder(brokers []string, topic string) *KafkaRecorder {
	w := kafka.NewWriter(kafka.WriterConfig{Brokers: brokers, Topic: topic, Balancer: &kafka.LeastBytes{}})
	return NewKafkaRecorderWithWriter(w)
}

// NewKafkaRecorderWithWriter creates a recorder on an existing writer.
func NewKafkaRecorderWithWriter(w MessageWriter) *KafkaRecorder {
	return &KafkaRecorder{writer: w}
}

// Notify queues one message keyed by actor ID, so a partitioner keeps each
// actor's activities in order. An activity that fails to encode is logged
// and dropped.
func (k *KafkaRecorder) Notify(timestamp int64, actor trace.ActorKind, activity trace.ActivityKind, id string, loc geo.Location) {
	b, err := marshalActivity(ActivityMessage{
		Time:     timestamp,
		Actor:    string(actor),
		Activity: string(activity),
		ID:       id,
		Row:      loc.Row,
		Column:   loc.Column,
	})
	if err != nil {
		logrus.Warnf("[tick %07d] dropping %s %s activity for %s: %v", timestamp, actor, activity, id, err)
		return
	}
	k.pending = append(k.pending, kafka.Message{Key: []byte(id), Value: b})
}

// Pending returns the number of activities not yet published.
func (k *KafkaRecorder) Pending() int {
	return len(k.pending)
}

// Flush publishes all buffered activities. On failure the buffer is kept so
// the caller may retry.
func (k *KafkaRecorder) Flush(ctx context.Context) error {
	if len(k.pending) == 0 {
		return nil
	}
	if err := k.writer.WriteMessages(ctx, k.pending...); err != nil {
		return fmt.Errorf("publishing %d activities: %w", len(k.pending), err)
	}
	logrus.Infof("Published %d activities to kafka", len(k.pending))
	k.pending = nil
	return nil
}

func (k *KafkaRecorder) Close() error {
	if k.writer == nil {
		return nil
	}
	return k.writer.Close()
}
