// Package events carries sync requests from the API to the worker over Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"partnerbridge/internal/logger"
)

// Topic is the sync-event topic shared by the API producer and the worker
// consumer.
const Topic = "catalog-sync-events"

const (
	TypeSyncPartner = "catalog.sync.partner"
	TypeSyncAll     = "catalog.sync.all"
)

// Event is one sync request. Shop is empty for a full sync.
type Event struct {
	Type      string    `json:"type"`
	Shop      string    `json:"shop,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher writes sync events for the worker to pick up.
type Publisher struct {
	writer *kafka.Writer
	logger *logger.Logger
}

func NewPublisher(brokers string, logger *logger.Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers),
		Topic:    Topic,
		Balancer: &kafka.LeastBytes{},
	}
	return &Publisher{
		writer: writer,
		logger: logger,
	}
}

// PublishSync enqueues a sync of one partner, or of every partner when shop
// is empty. Events for the same shop key to the same partition, so repeated
// requests for one partner stay ordered.
func (p *Publisher) PublishSync(ctx context.Context, shop string) error {
	event := Event{
		Type:      TypeSyncPartner,
		Shop:      shop,
		Timestamp: time.Now(),
	}
	if shop == "" {
		event.Type = TypeSyncAll
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{Value: value}
	if shop != "" {
		msg.Key = []byte(shop)
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish sync event: %w", err)
	}

	p.logger.Debug("Published sync event: type=%s shop=%s", event.Type, shop)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
