package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"bistro-boss/internal/logger"
	"bistro-boss/internal/models"
)

const publishTimeout = 10 * time.Second

// Publisher sends payment events to RabbitMQ
type Publisher struct {
	conn   *Connection
	logger *logger.Logger
}

func NewPublisher(conn *Connection, log *logger.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		logger: log,
	}
}

// PublishPaymentConfirmation enqueues a persistent confirmation task
func (p *Publisher) PublishPaymentConfirmation(ctx context.Context, msg *models.PaymentConfirmation) error {
	if p.conn.IsClosed() {
		if err := p.conn.Reconnect(); err != nil {
			return fmt.Errorf("failed to reconnect: %w", err)
		}
	}

	publishing, err := newPublishing(msg, time.Now())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.conn.Channel().PublishWithContext(ctx,
		ExchangePayments,
		RoutingKeyPaymentConfirmed,
		false, // mandatory
		false, // immediate
		publishing,
	)
	if err != nil {
		p.logger.Error("message_publish_failed",
			fmt.Sprintf("Failed to publish message to exchange %s", ExchangePayments),
			msg.MessageID, err, map[string]interface{}{
				"routing_key":    RoutingKeyPaymentConfirmed,
				"transaction_id": msg.TransactionID,
			})
		return fmt.Errorf("failed to publish message: %w", err)
	}

	p.logger.Debug("message_published", "Payment confirmation queued", msg.MessageID, map[string]interface{}{
		"routing_key":  RoutingKeyPaymentConfirmed,
		"message_size": len(publishing.Body),
	})
	return nil
}

func newPublishing(msg *models.PaymentConfirmation, now time.Time) (amqp091.Publishing, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return amqp091.Publishing{}, fmt.Errorf("failed to marshal message: %w", err)
	}
	return amqp091.Publishing{
		ContentType:  "application/json",
		MessageId:    msg.MessageID,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		Timestamp:    now,
	}, nil
}

func (p *Publisher) Close() error {
	return p.conn.Close()
}
