package events

import (
	"context"
	"encoding/json"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// UploadCreated is emitted after a successful object write so downstream
// consumers (dashboard feeds, processing jobs) can react.
type UploadCreated struct {
	UserID    string    `json:"user_id"`
	Kind      string    `json:"kind"`
	FileName  string    `json:"file_name"`
	Key       string    `json:"key"`
	Size      int64     `json:"size"`
	PublicURL string    `json:"public_url"`
	CreatedAt time.Time `json:"created_at"`
}

// Publisher writes upload events to Kafka. A nil *Publisher is a no-op, so
// the pipeline works unchanged when no brokers are configured.
type Publisher struct {
	writer *kafkago.Writer
}

func NewPublisher(brokers []string, topic string) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
		Async:        false,
	}
	return &Publisher{writer: w}
}

func (p *Publisher) PublishUploadCreated(ctx context.Context, ev UploadCreated) error {
	if p == nil {
		return nil
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	msg := kafkago.Message{
		Key:   []byte(ev.UserID),
		Value: b,
		Time:  time.Now(),
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
