package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockWriter records written messages instead of talking to a broker.
type mockWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *mockWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *mockWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &mockWriter{}
	p := NewKafkaPublisherWithWriter(w)
	at := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

	err := p.Publish(context.Background(), Event{
		Action:   ActionNearest,
		Selected: []string{"aws-eu-north-1"},
		At:       at,
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "nearest", string(msg.Key))
	assert.Equal(t, at, msg.Time)

	var got Event
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, []string{"aws-eu-north-1"}, got.Selected)
	assert.Empty(t, got.Provider)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	p := NewKafkaPublisherWithWriter(&mockWriter{err: errors.New("broker down")})
	err := p.Publish(context.Background(), Event{Action: ActionReset})
	assert.ErrorContains(t, err, "broker down")
}

func TestKafkaPublisher_Close(t *testing.T) {
	w := &mockWriter{}
	require.NoError(t, NewKafkaPublisherWithWriter(w).Close())
	assert.True(t, w.closed)
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NopPublisher{}.Publish(context.Background(), Event{Action: ActionSelect}))
}
