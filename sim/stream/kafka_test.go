package stream

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ride-sim/ride-sim/sim"
	"github.com/ride-sim/ride-sim/sim/geo"
	"github.com/ride-sim/ride-sim/sim/trace"
)

type fakeWriter struct {
	written []kafka.Message
	err     error
	closed  bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.written = append(f.written, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestKafkaRecorder_Flush_PublishesInOrder(t *testing.T) {
	// GIVEN a recorder attached to a single-ride simulation
	w := &fakeWriter{}
	rec := NewKafkaRecorderWithWriter(w)
	s := sim.NewSimulator(sim.SimConfig{Horizon: math.MaxInt64, Recorders: []sim.Recorder{rec}})
	s.Run([]sim.Event{
		sim.NewDriverRequestEvent(0, sim.NewDriver("D", geo.Location{}, 1)),
		sim.NewRiderRequestEvent(1, sim.NewRider("R", 100, geo.Location{Column: 5}, geo.Location{Column: 10})),
	})
	require.Equal(t, 7, rec.Pending())
	assert.Empty(t, w.written, "nothing is sent before Flush")

	// WHEN flushed
	require.NoError(t, rec.Flush(context.Background()))

	// THEN every activity is published in simulation order, keyed by actor ID
	require.Len(t, w.written, 7)
	assert.Equal(t, 0, rec.Pending())
	assert.Equal(t, "D", string(w.written[0].Key))
	assert.Equal(t, "R", string(w.written[1].Key))

	var msg ActivityMessage
	require.NoError(t, json.Unmarshal(w.written[2].Value, &msg))
	assert.Equal(t, ActivityMessage{Time: 6, Actor: "rider", Activity: "pickup", ID: "R", Row: 0, Column: 5}, msg)
}

func TestKafkaRecorder_Notify_EncodeFailure_DropsAndWarns(t *testing.T) {
	// GIVEN an encoder that fails for one actor
	orig := marshalActivity
	t.Cleanup(func() { marshalActivity = orig })
	marshalActivity = func(m ActivityMessage) ([]byte, error) {
		if m.ID == "bad" {
			return nil, errors.New("unsupported value")
		}
		return orig(m)
	}
	hook := logtest.NewGlobal()
	t.Cleanup(hook.Reset)

	// WHEN activities for both actors are recorded
	rec := NewKafkaRecorderWithWriter(&fakeWriter{})
	rec.Notify(1, trace.ActorRider, trace.ActivityRequest, "bad", geo.Location{})
	rec.Notify(2, trace.ActorRider, trace.ActivityRequest, "good", geo.Location{})

	// THEN only the encodable one is buffered and the failure is logged
	assert.Equal(t, 1, rec.Pending())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Contains(t, hook.LastEntry().Message, "dropping rider request activity for bad")
}

func TestKafkaRecorder_Flush_ErrorKeepsBuffer(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	rec := NewKafkaRecorderWithWriter(w)
	rec.Notify(3, trace.ActorDriver, trace.ActivityRequest, "D", geo.Location{Row: 1, Column: 2})

	err := rec.Flush(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, w.err)
	assert.Contains(t, err.Error(), "publishing 1 activities")
	assert.Equal(t, 1, rec.Pending())

	// a retry after recovery succeeds
	w.err = nil
	require.NoError(t, rec.Flush(context.Background()))
	assert.Len(t, w.written, 1)
}

func TestKafkaRecorder_Flush_EmptyIsNoOp(t *testing.T) {
	w := &fakeWriter{err: errors.New("should not be called")}
	assert.NoError(t, NewKafkaRecorderWithWriter(w).Flush(context.Background()))
}

func TestKafkaRecorder_Close(t *testing.T) {
	w := &fakeWriter{}
	require.NoError(t, NewKafkaRecorderWithWriter(w).Close())
	assert.True(t, w.closed)
	assert.NoError(t, (&KafkaRecorder{}).Close())
}

func TestNewKafkaRecorder_BuildsWriter(t *testing.T) {
	rec := NewKafkaRecorder([]string{"localhost:9092"}, "ride-activities")
	kw, ok := rec.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, "ride-activities", kw.Topic)
	assert.NoError(t, rec.Close())
}
