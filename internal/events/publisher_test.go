package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentfront/gateway/internal/domain"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msgs...)
	return nil
}

func TestOrderPlaced_PublishesEvent(t *testing.T) {
	writer := &fakeWriter{}
	sut := &KafkaPublisher{writer: writer}

	order := domain.Order{
		SessionID: "sess-1",
		Items:     []domain.OrderItem{{ProductID: 1, Quantity: 2}},
		Subtotal:  600,
		Tax:       60,
		Total:     660,
		Currency:  "USD",
	}
	require.NoError(t, sut.OrderPlaced(context.Background(), order))

	require.Len(t, writer.messages, 1)
	msg := writer.messages[0]
	assert.Equal(t, "sess-1", string(msg.Key))

	var event OrderPlacedEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, "sess-1", event.SessionID)
	assert.Equal(t, 1, event.ItemCount)
	assert.Equal(t, 660.0, event.TotalAmount)
	assert.Equal(t, "USD", event.Currency)
	assert.False(t, event.PlacedAt.IsZero())
}

func TestOrderPlaced_WriteError(t *testing.T) {
	writer := &fakeWriter{err: errors.New("broker unavailable")}
	sut := &KafkaPublisher{writer: writer}

	err := sut.OrderPlaced(context.Background(), domain.Order{SessionID: "sess-1"})
	require.ErrorContains(t, err, "broker unavailable")
}

func TestNoopPublisher(t *testing.T) {
	sut := NoopPublisher{}
	assert.NoError(t, sut.OrderPlaced(context.Background(), domain.Order{}))
}
