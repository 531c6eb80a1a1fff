package messaging

import (
	"context"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"bistro-boss/internal/logger"
)

// MessageHandler processes one delivery body. A non-nil error requeues the message.
type MessageHandler func(ctx context.Context, body []byte) error

const handlerTimeout = 30 * time.Second

// Consumer reads deliveries from a queue with manual acknowledgement
type Consumer struct {
	conn        *Connection
	logger      *logger.Logger
	queueName   string
	consumerTag string
	prefetch    int
	retryDelay  time.Duration
}

func NewConsumer(conn *Connection, log *logger.Logger, queueName, consumerTag string, prefetch int, retryDelay time.Duration) *Consumer {
	return &Consumer{
		conn:        conn,
		logger:      log,
		queueName:   queueName,
		consumerTag: consumerTag,
		prefetch:    prefetch,
		retryDelay:  retryDelay,
	}
}

// StartConsuming blocks until ctx is cancelled or the broker cannot be reached again
func (c *Consumer) StartConsuming(ctx context.Context, handler MessageHandler) error {
	for {
		err := c.consume(ctx, handler)
		if ctx.Err() != nil {
			c.logger.Info("consumer_stopped", "Consumer stopped by context", "", nil)
			return ctx.Err()
		}
		if err != nil {
			return err
		}

		c.logger.Warn("consumer_channel_closed", "Message channel closed, attempting to reconnect", "", nil)
		if err := c.conn.Reconnect(); err != nil {
			return fmt.Errorf("failed to reconnect after channel closed: %w", err)
		}
	}
}

func (c *Consumer) consume(ctx context.Context, handler MessageHandler) error {
	ch := c.conn.Channel()
	if err := ch.Qos(c.prefetch, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	msgs, err := ch.Consume(
		c.queueName,   // queue
		c.consumerTag, // consumer
		false,         // auto-ack
		false,         // exclusive
		false,         // no-local
		false,         // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("consumer_started",
		fmt.Sprintf("Started consuming from queue %s", c.queueName),
		"", map[string]interface{}{
			"queue":    c.queueName,
			"consumer": c.consumerTag,
			"prefetch": c.prefetch,
		})

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			c.processMessage(ctx, d, handler)
		}
	}
}

func (c *Consumer) processMessage(ctx context.Context, d amqp091.Delivery, handler MessageHandler) {
	start := time.Now()

	c.logger.Debug("message_received", "Processing message", d.MessageId, map[string]interface{}{
		"queue":        c.queueName,
		"routing_key":  d.RoutingKey,
		"message_size": len(d.Body),
		"redelivered":  d.Redelivered,
	})

	processingCtx, cancel := context.WithTimeout(ctx, handlerTimeout)
	err := handler(processingCtx, d.Body)
	cancel()

	fields := map[string]interface{}{
		"queue":        c.queueName,
		"duration_ms":  time.Since(start).Milliseconds(),
		"delivery_tag": d.DeliveryTag,
	}

	if err == nil {
		c.logger.Debug("message_processed", "Successfully processed message", d.MessageId, fields)
		if ackErr := d.Ack(false); ackErr != nil {
			c.logger.Error("message_ack_failed", "Failed to ack message", d.MessageId, ackErr, nil)
		}
		return
	}

	c.logger.Error("message_processing_failed", "Failed to process message", d.MessageId, err, fields)

	// RabbitMQ redelivers a requeued message immediately.
	select {
	case <-time.After(c.retryDelay):
	case <-ctx.Done():
	}
	if nackErr := d.Nack(false, true); nackErr != nil {
		c.logger.Error("message_nack_failed", "Failed to nack message", d.MessageId, nackErr, nil)
	}
}

// Close cancels the consumer and closes the connection
func (c *Consumer) Close() error {
	if c.conn.IsClosed() {
		return nil
	}
	if err := c.conn.Channel().Cancel(c.consumerTag, false); err != nil {
		c.logger.Error("consumer_cancel_failed", "Failed to cancel consumer", "", err, nil)
	}
	return c.conn.Close()
}
