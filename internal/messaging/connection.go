package messaging

import (
	"fmt"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"bistro-boss/internal/logger"
)

// Topology names shared by the API publisher and the notifier consumer
const (
	ExchangePayments           = "payments_topic"
	QueuePaymentConfirmations  = "payment_confirmations"
	RoutingKeyPaymentConfirmed = "payment.confirmed"
)

const connectRetries = 5

// Connection wraps a RabbitMQ connection and channel with reconnection logic
type Connection struct {
	mu      sync.Mutex
	conn    *amqp091.Connection
	channel *amqp091.Channel
	logger  *logger.Logger
	url     string
}

// Dial connects to url and declares the payment topology
func Dial(url string, log *logger.Logger) (*Connection, error) {
	c := &Connection{
		logger: log,
		url:    url,
	}

	if err := c.connect(); err != nil {
		return nil, fmt.Errorf("failed to establish initial connection: %w", err)
	}
	return c, nil
}

func (c *Connection) connect() error {
	var err error

	for i := 0; i < connectRetries; i++ {
		if err = c.open(); err == nil {
			return nil
		}

		if i < connectRetries-1 {
			wait := time.Duration(i+1) * 2 * time.Second
			c.logger.Error("rabbitmq_connection_failed",
				fmt.Sprintf("Failed to connect to RabbitMQ, retrying in %v", wait),
				"startup", err, map[string]interface{}{"attempt": i + 1})
			time.Sleep(wait)
		}
	}

	return fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", connectRetries, err)
}

func (c *Connection) open() error {
	conn, err := amqp091.Dial(c.url)
	if err != nil {
		return err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return err
	}
	if err := declareTopology(ch); err != nil {
		ch.Close()
		conn.Close()
		return err
	}

	c.conn, c.channel = conn, ch
	return nil
}

// topologyDeclarer is the part of *amqp091.Channel used to declare the topology
type topologyDeclarer interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp091.Table) (amqp091.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp091.Table) error
}

func declareTopology(ch topologyDeclarer) error {
	if err := ch.ExchangeDeclare(
		ExchangePayments, // name
		"topic",          // type
		true,             // durable
		false,            // auto-deleted
		false,            // internal
		false,            // no-wait
		nil,
	); err != nil {
		return fmt.Errorf("failed to declare %s exchange: %w", ExchangePayments, err)
	}

	if _, err := ch.QueueDeclare(
		QueuePaymentConfirmations, // name
		true,                      // durable
		false,                     // delete when unused
		false,                     // exclusive
		false,                     // no-wait
		nil,
	); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", QueuePaymentConfirmations, err)
	}

	if err := ch.QueueBind(
		QueuePaymentConfirmations,
		RoutingKeyPaymentConfirmed,
		ExchangePayments,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("failed to bind queue %s: %w", QueuePaymentConfirmations, err)
	}
	return nil
}

// Channel returns the current channel
func (c *Connection) Channel() *amqp091.Channel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.channel
}

func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.close()
}

func (c *Connection) close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

func (c *Connection) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn == nil || c.conn.IsClosed()
}

// Reconnect drops the current connection and dials again
func (c *Connection) Reconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.close()
	return c.connect()
}
