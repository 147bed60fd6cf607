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

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestProducer_PublishEvent(t *testing.T) {
	w := &fakeWriter{}
	p := &Producer{writers: map[string]messageWriter{TopicCart: w}}

	err := p.PublishEvent(context.Background(), TopicCart, "7", map[string]any{
		"type":   "cart_item_added",
		"userID": 7,
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)
	assert.Equal(t, []byte("7"), w.msgs[0].Key)

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, "cart_item_added", got["type"])
	assert.EqualValues(t, 7, got["userID"])
}

func TestProducer_Errors(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	p := &Producer{writers: map[string]messageWriter{TopicUser: w}}

	err := p.PublishEvent(context.Background(), "nope", "1", map[string]any{})
	assert.ErrorIs(t, err, ErrUnknownTopic)

	err = p.PublishEvent(context.Background(), TopicUser, "1", map[string]any{"type": "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestNewProducer(t *testing.T) {
	_, err := NewProducer(nil, Topics)
	require.Error(t, err)

	p, err := NewProducer([]string{"localhost:9092"}, Topics)
	require.NoError(t, err)
	assert.Len(t, p.writers, len(Topics))
	require.NoError(t, p.Close())
}

func TestNoop(t *testing.T) {
	var p Publisher = Noop{}
	assert.NoError(t, p.PublishEvent(context.Background(), TopicCart, "1", nil))
	assert.NoError(t, p.Close())
}

func TestNewProducer_WriterFlushesEachMessage(t *testing.T) {
	p, err := NewProducer([]string{"localhost:9092"}, Topics)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	require.Len(t, p.writers, len(Topics))
	for _, topic := range Topics {
		w, ok := p.writers[topic].(*kafka.Writer)
		require.True(t, ok, topic)
		assert.Equal(t, topic, w.Topic)
		assert.Equal(t, 1, w.BatchSize)
		assert.Equal(t, batchTimeout, w.BatchTimeout)
		assert.Less(t, w.BatchTimeout, 100*time.Millisecond)
		assert.False(t, w.Async)
	}
}
