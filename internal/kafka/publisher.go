package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/quickbite/orders/internal/orders/domain"
)

const (
	EventOrderCreated       = "order.created"
	EventOrderCheckedOut    = "order.checked_out"
	EventOrderStatusChanged = "order.status_changed"
)

type orderEvent struct {
	Type       string `json:"type"`
	OrderID    int64  `json:"order_id"`
	Status     string `json:"status,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

// Publisher writes order lifecycle events to a Kafka topic, keyed by
// order id so all events of one order land on the same partition.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher builds a publisher for the given brokers and topic.
func NewPublisher(brokers []string, topic string) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}
	return &Publisher{writer: writer}
}

func (p *Publisher) PublishOrderCreated(ctx context.Context, orderID int64) error {
	return p.publish(ctx, orderEvent{Type: EventOrderCreated, OrderID: orderID})
}

func (p *Publisher) PublishOrderCheckedOut(ctx context.Context, orderID int64) error {
	return p.publish(ctx, orderEvent{Type: EventOrderCheckedOut, OrderID: orderID})
}

func (p *Publisher) PublishOrderStatusChanged(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	return p.publish(ctx, orderEvent{Type: EventOrderStatusChanged, OrderID: orderID, Status: string(status)})
}

func (p *Publisher) publish(ctx context.Context, event orderEvent) error {
	event.OccurredAt = time.Now().UTC().Format(time.RFC3339)

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", event.Type, err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(event.OrderID, 10)),
		Value: data,
		Time:  time.Now(),
	})
	if err != nil {
		return fmt.Errorf("publish %s event: %w", event.Type, err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
