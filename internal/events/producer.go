package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	TopicUser    = "user_events"
	TopicProduct = "product_events"
	TopicCart    = "cart_events"
)

var Topics = []string{TopicUser, TopicProduct, TopicCart}

var ErrUnknownTopic = errors.New("unknown topic")

type Publisher interface {
	PublishEvent(ctx context.Context, topic, key string, event map[string]any) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	writers map[string]messageWriter
}

// Events are published one at a time on the request path, so the writer
// flushes each message immediately instead of waiting to fill a batch.
const batchTimeout = 5 * time.Millisecond

func newWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchSize:              1,
		BatchTimeout:           batchTimeout,
		WriteTimeout:           5 * time.Second,
	}
}

func NewProducer(brokers, topics []string) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka: no brokers")
	}
	writers := make(map[string]messageWriter, len(topics))
	for _, topic := range topics {
		writers[topic] = newWriter(brokers, topic)
	}
	return &Producer{writers: writers}, nil
}

func (p *Producer) PublishEvent(ctx context.Context, topic, key string, event map[string]any) error {
	w, ok := p.writers[topic]
	if !ok {
		return fmt.Errorf("kafka: %w: %s", ErrUnknownTopic, topic)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
		Time:  time.Now().UTC(),
	}
	if err := w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write failed: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	var errs []error
	for _, w := range p.writers {
		if err := w.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Noop drops every event. Used when KAFKA_BROKERS is empty.
type Noop struct{}

func (Noop) PublishEvent(context.Context, string, string, map[string]any) error { return nil }

func (Noop) Close() error { return nil }
