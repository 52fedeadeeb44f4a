// Package kafka wraps the segmentio reader the notifier worker uses to
// consume status-change events relayed from the outbox table.
package kafka

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
)

// Reader defaults; status-change events are small and sparse, so the
// fetch floor stays low to keep notification latency down.
const (
	defaultMinBytes       = 1 << 10
	defaultMaxBytes       = 10 << 20
	defaultCommitInterval = time.Second
	defaultMaxWait        = 50 * time.Millisecond
)

type Config struct {
	Brokers        []string
	Topic          string
	GroupID        string
	MinBytes       int
	MaxBytes       int
	CommitInterval time.Duration // 0 = sync each msg
	MaxWait        time.Duration
}

// Consumer is the worker-facing face of one consumer-group reader:
// fetch, process, commit. Commits are explicit so a crashed worker
// re-reads rather than drops (delivery is at-least-once end to end).
type Consumer struct {
	r *kafka.Reader
}

func NewConsumerFromConfig(c Config) *Consumer {
	if c.MinBytes <= 0 {
		c.MinBytes = defaultMinBytes
	}
	if c.MaxBytes <= 0 {
		c.MaxBytes = defaultMaxBytes
	}
	if c.CommitInterval <= 0 {
		c.CommitInterval = defaultCommitInterval
	}
	if c.MaxWait <= 0 {
		c.MaxWait = defaultMaxWait
	}

	return &Consumer{r: kafka.NewReader(kafka.ReaderConfig{
		Brokers:        c.Brokers,
		GroupID:        c.GroupID,
		Topic:          c.Topic,
		MinBytes:       c.MinBytes,
		MaxBytes:       c.MaxBytes,
		CommitInterval: c.CommitInterval,
		MaxWait:        c.MaxWait,
	})}
}

type Message = kafka.Message

func (c *Consumer) Fetch(ctx context.Context) (Message, error) {
	return c.r.FetchMessage(ctx)
}

func (c *Consumer) Commit(ctx context.Context, m Message) error {
	return c.r.CommitMessages(ctx, m)
}

func (c *Consumer) Close() error { return c.r.Close() }
