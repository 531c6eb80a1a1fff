package payments

import (
	"context"

	"bistro-boss/internal/models"
)

type PaymentStore interface {
	ListByEmail(ctx context.Context, email string) ([]models.Payment, error)
	Checkout(ctx context.Context, p *models.Payment) (models.CheckoutResult, error)
}

// Gateway creates payment intents with the card processor
type Gateway interface {
	CreatePaymentIntent(ctx context.Context, amount int64, currency string) (string, error)
}

// Dispatcher hands confirmations off for delivery. It must not block.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg *models.PaymentConfirmation)
}
