// Package rabbitmq publishes committed status events to a topic exchange.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
)

const (
	DefaultExchange   = "shipments"
	routingKeyPrefix  = "shipment.status."
	contentTypeJSON   = "application/json"
	messageTypeStatus = "shipment.status_recorded"
)

var ErrPublishNacked = errors.New("publish NACK from broker")

// StatusEventMessage is the JSON body of a published status event.
type StatusEventMessage struct {
	EventID        string    `json:"event_id"`
	ShipmentID     string    `json:"shipment_id"`
	CarrierID      string    `json:"carrier_id"`
	Status         string    `json:"status"`
	EventTimestamp time.Time `json:"event_timestamp"`
	RecordedAt     time.Time `json:"recorded_at"`
	Sequence       int       `json:"sequence"`
	Source         string    `json:"source"`
	Notes          string    `json:"notes,omitempty"`
	OutOfOrder     bool      `json:"out_of_order"`
}

// RoutingKey returns the topic routing key for a status, e.g. "shipment.status.in_transit".
func RoutingKey(status shipment.Status) string {
	return routingKeyPrefix + status.String()
}

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	GetNextPublishSeqNo() uint64
}

// Publisher implements ports.StatusEventPublisher. Publishes are serialized
// because broker confirms arrive on a single channel in publish order. A
// confirm left behind by a publish whose context ended first is recognized by
// its delivery tag and skipped.
type Publisher struct {
	ch       channel
	acks     <-chan amqp.Confirmation
	exchange string
	log      *zap.Logger

	mu     sync.Mutex
	closer func() error
}

// Dial connects to the broker, declares the durable topic exchange and enables
// publisher confirms.
func Dial(url, exchange string, log *zap.Logger) (*Publisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}

	if err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %q: %w", exchange, err)
	}

	if err = ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("enable publisher confirms: %w", err)
	}
	acks := ch.NotifyPublish(make(chan amqp.Confirmation, 1))

	p := NewPublisher(ch, exchange, log)
	p.acks = acks
	p.closer = func() error {
		return errors.Join(ch.Close(), conn.Close())
	}

	log.Info("connected to rabbitmq", zap.String("exchange", exchange))
	return p, nil
}

// NewPublisher publishes over an already open channel without waiting for confirms.
func NewPublisher(ch channel, exchange string, log *zap.Logger) *Publisher {
	return &Publisher{
		ch:       ch,
		exchange: exchange,
		log:      log.With(zap.String("component", "rabbitmq_publisher")),
	}
}

func (p *Publisher) Publish(ctx context.Context, carrierID kernel.UUID, event *shipment.StatusEvent) error {
	body, err := json.Marshal(StatusEventMessage{
		EventID:        event.ID().String(),
		ShipmentID:     event.ShipmentID().String(),
		CarrierID:      carrierID.String(),
		Status:         event.Status().String(),
		EventTimestamp: event.OccurredAt(),
		RecordedAt:     event.RecordedAt(),
		Sequence:       event.Sequence(),
		Source:         event.Source(),
		Notes:          event.Notes(),
		OutOfOrder:     event.OutOfOrder(),
	})
	if err != nil {
		return fmt.Errorf("encode status event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var tag uint64
	if p.acks != nil {
		tag = p.ch.GetNextPublishSeqNo()
	}

	key := RoutingKey(event.Status())
	err = p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType:  contentTypeJSON,
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID().String(),
		Type:         messageTypeStatus,
		Timestamp:    event.RecordedAt(),
		Headers: amqp.Table{
			"shipment_id": event.ShipmentID().String(),
			"carrier_id":  carrierID.String(),
		},
		Body: body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", key, err)
	}

	if p.acks == nil {
		return nil
	}
	return p.awaitConfirm(ctx, tag, key, event)
}

func (p *Publisher) awaitConfirm(ctx context.Context, tag uint64, key string, event *shipment.StatusEvent) error {
	for {
		select {
		case conf, ok := <-p.acks:
			if !ok {
				return fmt.Errorf("await confirm for %s: %w", key, amqp.ErrClosed)
			}
			if conf.DeliveryTag < tag {
				p.log.Debug("skipping stale publisher confirm",
					zap.Uint64("delivery_tag", conf.DeliveryTag),
					zap.Uint64("expected_tag", tag))
				continue
			}
			if !conf.Ack {
				return ErrPublishNacked
			}
			p.log.Debug("status event published",
				zap.String("routing_key", key),
				zap.String("event_id", event.ID().String()))
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close releases the channel and connection opened by Dial.
func (p *Publisher) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer()
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, kernel.UUID, *shipment.StatusEvent) error {
	return nil
}
