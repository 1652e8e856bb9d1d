package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Envelope wraps every event published to the broker.
// The realtime gateway consumes these and pushes them to connected clients.
type Envelope struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// NewEnvelope builds an envelope with a fresh id and the payload marshaled to JSON
func NewEnvelope(eventType string, payload interface{}) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		ID:         uuid.New().String(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    data,
	}, nil
}

// Publisher publishes events to the message broker
type Publisher interface {
	Publish(ctx context.Context, key string, msg Envelope) error
	Close() error
}

type rmqClient struct {
	conn     *amqp091.Connection
	exchange string
	log      zerolog.Logger
}

// New connects to RabbitMQ and declares the topic exchange
func New(url, exchange string, logger zerolog.Logger) (Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	defer ch.Close()
	if err := ch.ExchangeDeclare(
		exchange, "topic", true, false, false, false, nil,
	); err != nil {
		conn.Close()
		return nil, err
	}

	return &rmqClient{
		conn:     conn,
		exchange: exchange,
		log:      logger,
	}, nil
}

func (r *rmqClient) Publish(ctx context.Context, key string, msg Envelope) error {
	ch, err := r.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return ch.PublishWithContext(ctx, r.exchange, key, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		MessageId:    msg.ID,
		Timestamp:    msg.OccurredAt,
		DeliveryMode: amqp091.Persistent,
		Body:         body,
	})
}

func (r *rmqClient) Close() error {
	return r.conn.Close()
}

// fallbackPublisher is used when no broker is configured.
// Publishes are logged and dropped so the API keeps working without RabbitMQ.
type fallbackPublisher struct {
	log zerolog.Logger
}

// NewFallback creates a no-op publisher
func NewFallback(logger zerolog.Logger) Publisher {
	return &fallbackPublisher{log: logger}
}

func (p *fallbackPublisher) Publish(ctx context.Context, key string, msg Envelope) error {
	p.log.Debug().Str("key", key).Str("type", msg.Type).Msg("event publisher disabled, dropping event")
	return nil
}

func (p *fallbackPublisher) Close() error {
	return nil
}
