package notification

import (
	"context"
	"sync"
	"time"

	"bistro-boss/internal/logger"
	"bistro-boss/internal/models"
)

const directSendTimeout = 30 * time.Second

// ConfirmationPublisher enqueues confirmations for the notifier
type ConfirmationPublisher interface {
	PublishPaymentConfirmation(ctx context.Context, msg *models.PaymentConfirmation) error
}

// QueueDispatcher hands confirmations to RabbitMQ without blocking the caller
type QueueDispatcher struct {
	publisher ConfirmationPublisher
	logger    *logger.Logger
	wg        sync.WaitGroup
}

func NewQueueDispatcher(publisher ConfirmationPublisher, log *logger.Logger) *QueueDispatcher {
	return &QueueDispatcher{publisher: publisher, logger: log}
}

// Dispatch returns immediately; publish failures are logged.
func (d *QueueDispatcher) Dispatch(ctx context.Context, msg *models.PaymentConfirmation) {
	ctx = context.WithoutCancel(ctx)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := d.publisher.PublishPaymentConfirmation(ctx, msg); err != nil {
			d.logger.Error("notification_enqueue_failed", "Failed to enqueue payment confirmation", msg.MessageID, err, map[string]interface{}{
				"email":          msg.Email,
				"transaction_id": msg.TransactionID,
			})
		}
	}()
}

// Wait blocks until in-flight publishes finish
func (d *QueueDispatcher) Wait() {
	d.wg.Wait()
}

// DirectDispatcher sends through every sender in-process, used when no queue is configured
type DirectDispatcher struct {
	senders []Sender
	logger  *logger.Logger
	wg      sync.WaitGroup
}

func NewDirectDispatcher(log *logger.Logger, senders ...Sender) *DirectDispatcher {
	return &DirectDispatcher{senders: senders, logger: log}
}

func (d *DirectDispatcher) Dispatch(ctx context.Context, msg *models.PaymentConfirmation) {
	if len(d.senders) == 0 {
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), directSendTimeout)
		defer cancel()

		for _, s := range d.senders {
			if err := s.Send(ctx, msg); err != nil {
				d.logger.Error("notification_send_failed", "Failed to send payment confirmation", msg.MessageID, err, map[string]interface{}{
					"channel": s.Channel(),
					"email":   msg.Email,
				})
				continue
			}
			d.logger.Info("notification_sent", "Payment confirmation sent", msg.MessageID, map[string]interface{}{
				"channel": s.Channel(),
			})
		}
	}()
}

func (d *DirectDispatcher) Wait() {
	d.wg.Wait()
}
