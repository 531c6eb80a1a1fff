package notification

import (
	"context"

	"bistro-boss/internal/models"
)

// Sender delivers a payment confirmation over one channel
type Sender interface {
	Channel() string
	Send(ctx context.Context, msg *models.PaymentConfirmation) error
}
