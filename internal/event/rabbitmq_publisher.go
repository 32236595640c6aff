package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/traceid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

type publishChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitMQEventPublisher sends ledger events to a durable topic exchange, one short-lived channel per message.
type RabbitMQEventPublisher struct {
	openChannel  func() (publishChannel, error)
	exchangeName string
	now          func() time.Time
	logger       *slog.Logger
}

var _ EventPublisher = (*RabbitMQEventPublisher)(nil)

func NewRabbitMQEventPublisher(conn *amqp.Connection, exchangeName string, logger *slog.Logger) (*RabbitMQEventPublisher, error) {
	if conn == nil {
		return nil, fmt.Errorf("RabbitMQ connection cannot be nil")
	}
	if exchangeName == "" {
		return nil, fmt.Errorf("RabbitMQ exchange name cannot be empty")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	if err := declareExchange(conn, exchangeName); err != nil {
		return nil, err
	}
	logger.Info("Ensured ledger exchange exists", "exchange", exchangeName, "type", amqp.ExchangeTopic)

	return newPublisher(func() (publishChannel, error) { return conn.Channel() }, exchangeName, logger), nil
}

func declareExchange(conn *amqp.Connection, name string) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel for exchange declaration: %w", err)
	}
	defer ch.Close()

	// durable, not auto-deleted, not internal, wait for confirmation
	if err := ch.ExchangeDeclare(name, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange '%s': %w", name, err)
	}
	return nil
}

func newPublisher(open func() (publishChannel, error), exchangeName string, logger *slog.Logger) *RabbitMQEventPublisher {
	return &RabbitMQEventPublisher{
		openChannel:  open,
		exchangeName: exchangeName,
		now:          time.Now,
		logger:       logger.With("component", "RabbitMQEventPublisher", "exchange", exchangeName),
	}
}

func (p *RabbitMQEventPublisher) PublishLoanIssued(ctx context.Context, event LoanIssuedEvent) error {
	return p.publish(ctx, RoutingKeyLoanIssued, event.LoanID, event)
}

func (p *RabbitMQEventPublisher) PublishRepaymentRecorded(ctx context.Context, event RepaymentRecordedEvent) error {
	return p.publish(ctx, RoutingKeyRepaymentRecorded, event.RepaymentID, event)
}

func (p *RabbitMQEventPublisher) PublishLoanSettled(ctx context.Context, event LoanSettledEvent) error {
	return p.publish(ctx, RoutingKeyLoanSettled, event.LoanID, event)
}

// publish tags each message with the request's trace ID so consumers can join it to the access log.
func (p *RabbitMQEventPublisher) publish(ctx context.Context, routingKey string, subjectID int64, payload any) error {
	logCtx := p.logger.With(slog.String("routingKey", routingKey), slog.Int64("subjectID", subjectID))

	body, err := json.Marshal(payload)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to marshal event payload", slog.Any("error", err))
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	channel, err := p.openChannel()
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to open RabbitMQ channel", slog.Any("error", err))
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer channel.Close()

	sentAt := p.now().UTC()
	msg := amqp.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp.Persistent,
		Timestamp:     sentAt,
		Type:          routingKey,
		MessageId:     fmt.Sprintf("%s:%d:%d", routingKey, subjectID, sentAt.UnixNano()),
		CorrelationId: traceid.FromContext(ctx),
		AppId:         publisherAppID,
		Body:          body,
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := channel.PublishWithContext(pubCtx, p.exchangeName, routingKey, false, false, msg); err != nil {
		logCtx.ErrorContext(ctx, "Failed to publish ledger event", slog.Any("error", err))
		return fmt.Errorf("failed to publish message: %w", err)
	}

	logCtx.DebugContext(ctx, "Published ledger event", slog.Int("bodySize", len(body)))
	return nil
}
