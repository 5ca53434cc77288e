package events

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/rentfront/gateway/internal/domain"
)

// OrderPlacedEvent is emitted after a checkout reaches Complete. The
// analytics pipeline consumes it; the gateway does not care who listens.
type OrderPlacedEvent struct {
	SessionID   string    `json:"session_id"`
	ItemCount   int       `json:"item_count"`
	Subtotal    float64   `json:"subtotal"`
	Tax         float64   `json:"tax"`
	TotalAmount float64   `json:"total_amount"`
	Currency    string    `json:"currency"`
	PlacedAt    time.Time `json:"placed_at"`
}

type Publisher interface {
	OrderPlaced(ctx context.Context, order domain.Order) error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(brokers ...string) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    "order-placed",
		Balancer: &kafka.LeastBytes{},
	}
	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) OrderPlaced(ctx context.Context, order domain.Order) error {
	event := OrderPlacedEvent{
		SessionID:   order.SessionID,
		ItemCount:   len(order.Items),
		Subtotal:    order.Subtotal,
		Tax:         order.Tax,
		TotalAmount: order.Total,
		Currency:    order.Currency,
		PlacedAt:    time.Now(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event failed: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(order.SessionID),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("publish order event failed: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	if closer, ok := p.writer.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// NoopPublisher keeps broker-less deployments working.
type NoopPublisher struct{}

func (NoopPublisher) OrderPlaced(context.Context, domain.Order) error {
	return nil
}
