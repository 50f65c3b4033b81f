// Package events publishes order events to kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

const (
	DefaultTopic = "storefront.orders"

	EventTypeHeader    = "event_type"
	OrderSubmittedType = "order.submitted"
)

// MessageWriter is the part of *kafka.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Config struct {
	Brokers []string
	Topic   string
}

// NewWriter builds a kafka writer for cfg. Messages are keyed by order ID, so
// the hash balancer keeps every event of an order on one partition.
func NewWriter(cfg Config) *kafka.Writer {
	topic := cfg.Topic
	if topic == "" {
		topic = DefaultTopic
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		WriteTimeout:           5 * time.Second,
		AllowAutoTopicCreation: true,
	}
}

type Publisher struct {
	writer MessageWriter
}

var _ ports.OrderEventPublisher = (*Publisher)(nil)

func NewPublisher(writer MessageWriter) *Publisher {
	return &Publisher{writer: writer}
}

func (p *Publisher) PublishOrderSubmitted(ctx context.Context, o *order.Order) error {
	msg, err := NewOrderSubmittedMessage(o)
	if err != nil {
		return err
	}
	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish order %s: %w", o.ID().String(), err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

type orderLine struct {
	CatalogItemID string   `json:"catalogItemId"`
	Name          string   `json:"name"`
	Quantity      int      `json:"quantity"`
	UnitPrice     string   `json:"unitPrice"`
	VariantLabel  string   `json:"variantLabel,omitempty"`
	OptionLabels  []string `json:"optionLabels,omitempty"`
}

// OrderSubmitted is the payload of an order.submitted event.
type OrderSubmitted struct {
	OrderID        string      `json:"orderId"`
	OrderNumber    string      `json:"orderNumber"`
	StoreID        string      `json:"storeId"`
	Status         string      `json:"status"`
	CustomerName   string      `json:"customerName"`
	CustomerPhone  string      `json:"customerPhone"`
	DeliveryMethod string      `json:"deliveryMethod"`
	DeliveryFee    *string     `json:"deliveryFee,omitempty"`
	PaymentMethod  string      `json:"paymentMethod"`
	Subtotal       string      `json:"subtotal"`
	Total          string      `json:"total"`
	Items          []orderLine `json:"items"`
	CreatedAt      time.Time   `json:"createdAt"`
}

func NewOrderSubmittedMessage(o *order.Order) (kafka.Message, error) {
	event := OrderSubmitted{
		OrderID:        o.ID().String(),
		OrderNumber:    o.Number(),
		StoreID:        o.StoreID().String(),
		Status:         o.Status().String(),
		CustomerName:   o.Customer().Name,
		CustomerPhone:  o.Customer().WhatsAppNumber,
		DeliveryMethod: string(o.Fulfilment().Method),
		PaymentMethod:  string(o.Payment().Method()),
		Subtotal:       o.Subtotal().String(),
		Total:          o.Total().String(),
		CreatedAt:      o.CreatedAt(),
	}
	if fee, ok := o.DeliveryFee(); ok {
		s := fee.String()
		event.DeliveryFee = &s
	}
	for _, item := range o.Items() {
		event.Items = append(event.Items, orderLine{
			CatalogItemID: item.CatalogItemID(),
			Name:          item.Name(),
			Quantity:      item.Quantity(),
			UnitPrice:     item.UnitPrice().String(),
			VariantLabel:  item.VariantLabel(),
			OptionLabels:  item.OptionLabels(),
		})
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal order event: %w", err)
	}

	return kafka.Message{
		Key:   []byte(event.OrderID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: EventTypeHeader, Value: []byte(OrderSubmittedType)},
		},
	}, nil
}
