package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Event types emitted over the job lifecycle.
const (
	TypeJobCreated       = "job.created"
	TypeJobStatusChanged = "job.status_changed"
)

// Event is a job lifecycle notification for downstream print-room tooling.
// Clients of the portal itself poll; this stream is for other systems.
type Event struct {
	Type        string    `json:"type"`
	JobID       uuid.UUID `json:"jobId"`
	OwnerID     uuid.UUID `json:"userId"`
	QueueNumber int       `json:"queueNumber"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurredAt"`
}

func message(ev Event) (kafka.Message, error) {
	value, err := json.Marshal(ev)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(ev.JobID.String()),
		Value: value,
	}, nil
}

// KafkaPublisher publishes job lifecycle events to a Kafka topic.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher creates a publisher over the given brokers and topic.
// Brokers is a comma separated address list.
func NewKafkaPublisher(brokers, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(strings.Split(brokers, ",")...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		},
	}
}

// Publish writes the event to the topic, keyed by job id.
func (p *KafkaPublisher) Publish(ctx context.Context, ev Event) error {
	msg, err := message(ev)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher discards events. Used when no broker is configured.
type NopPublisher struct{}

// Publish discards the event.
func (NopPublisher) Publish(ctx context.Context, ev Event) error {
	return nil
}
