package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"bistro-boss/internal/logger"
	"bistro-boss/internal/messaging"
	"bistro-boss/internal/models"
)

var errDeliveryPending = errors.New("delivery pending")

type consumer interface {
	StartConsuming(ctx context.Context, handler messaging.MessageHandler) error
	Close() error
}

// Subscriber consumes payment confirmations and fans them out to the senders
type Subscriber struct {
	consumer    consumer
	senders     []Sender
	ledger      Ledger
	maxAttempts int
	logger      *logger.Logger
}

func NewSubscriber(c consumer, ledger Ledger, maxAttempts int, log *logger.Logger, senders ...Sender) *Subscriber {
	return &Subscriber{
		consumer:    c,
		senders:     senders,
		ledger:      ledger,
		maxAttempts: maxAttempts,
		logger:      log,
	}
}

// Start blocks until ctx is cancelled, then closes the consumer
func (s *Subscriber) Start(ctx context.Context) error {
	requestID := logger.GenerateRequestID()
	s.logger.Info("service_started", "Notification subscriber started", requestID, map[string]interface{}{
		"channels":     s.channels(),
		"max_attempts": s.maxAttempts,
	})

	err := s.consumer.StartConsuming(ctx, s.handleConfirmation)

	s.logger.Info("graceful_shutdown", "Stopping notification subscriber", requestID, nil)
	if closeErr := s.consumer.Close(); closeErr != nil {
		s.logger.Error("consumer_close_failed", "Failed to close consumer", requestID, closeErr, nil)
	}

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// handleConfirmation returns an error only when a channel should be retried.
func (s *Subscriber) handleConfirmation(ctx context.Context, body []byte) error {
	var msg models.PaymentConfirmation
	if err := json.Unmarshal(body, &msg); err != nil || msg.MessageID == "" {
		s.logger.Error("message_parsing_failed", "Dropping malformed payment confirmation", "", err, map[string]interface{}{
			"body": string(body),
		})
		return nil
	}

	var pending []string
	for _, sender := range s.senders {
		channel := sender.Channel()

		status, attempts, err := s.ledger.Lookup(ctx, msg.MessageID, channel)
		if err != nil {
			return err
		}
		if status == models.DeliverySent || attempts >= s.maxAttempts {
			continue
		}

		sendErr := sender.Send(ctx, &msg)
		status = models.DeliverySent
		if sendErr != nil {
			status = models.DeliveryFailed
		}

		attempts, err = s.ledger.Record(ctx, &msg, channel, status, sendErr)
		if err != nil {
			return err
		}

		fields := map[string]interface{}{
			"channel":        channel,
			"attempts":       attempts,
			"transaction_id": msg.TransactionID,
		}
		switch {
		case sendErr == nil:
			s.logger.Info("notification_sent", "Payment confirmation delivered", msg.MessageID, fields)
		case attempts >= s.maxAttempts:
			s.logger.Error("notification_abandoned", "Giving up on payment confirmation", msg.MessageID, sendErr, fields)
		default:
			s.logger.Warn("notification_retry", "Payment confirmation will be retried", msg.MessageID, fields)
			pending = append(pending, channel)
		}
	}

	if len(pending) > 0 {
		return fmt.Errorf("%w on %s", errDeliveryPending, strings.Join(pending, ","))
	}
	return nil
}

func (s *Subscriber) channels() []string {
	names := make([]string, 0, len(s.senders))
	for _, sender := range s.senders {
		names = append(names, sender.Channel())
	}
	return names
}
