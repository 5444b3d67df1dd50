package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"plataforma-pedidos/internal/domain"
)

const EventOrderCreated = "order.created"

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type OrderCreatedEvent struct {
	OrderID     uint64    `json:"orderId"`
	ClientName  string    `json:"clientName"`
	ClientPhone string    `json:"clientPhone"`
	Latitude    string    `json:"latitude"`
	Longitude   string    `json:"longitude"`
	Products    string    `json:"products"`
	Total       string    `json:"total"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// KafkaPublisher notifies downstream consumers (admin alerts) of new orders.
// Messages are keyed by order id.
type KafkaPublisher struct {
	writer MessageWriter
}

func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) PublishOrderCreated(ctx context.Context, order domain.Order) error {
	payload, err := json.Marshal(OrderCreatedEvent{
		OrderID:     order.ID,
		ClientName:  order.ClientName,
		ClientPhone: order.ClientPhone,
		Latitude:    order.Latitude,
		Longitude:   order.Longitude,
		Products:    order.Products,
		Total:       order.Total,
		Status:      order.Status,
		CreatedAt:   order.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal order event failed: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatUint(order.ID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(EventOrderCreated)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publishing order event: %w", err)
	}
	return nil
}

// NoopPublisher is used when Kafka is not configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderCreated(ctx context.Context, order domain.Order) error {
	return nil
}
