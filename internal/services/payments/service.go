package payments

import (
	"context"
	"fmt"
	"time"

	"bistro-boss/internal/logger"
	"bistro-boss/internal/models"
)

// Service converts carts into payments
type Service struct {
	store      PaymentStore
	gateway    Gateway
	dispatcher Dispatcher
	currency   string
	logger     *logger.Logger
	now        func() time.Time
}

func NewService(store PaymentStore, gateway Gateway, dispatcher Dispatcher, currency string, log *logger.Logger) *Service {
	return &Service{
		store:      store,
		gateway:    gateway,
		dispatcher: dispatcher,
		currency:   currency,
		logger:     log,
		now:        time.Now,
	}
}

// CreateIntent asks the processor for a client secret covering price
func (s *Service) CreateIntent(ctx context.Context, req *models.PaymentIntentRequest, requestID string) (*models.PaymentIntentResponse, error) {
	amount := req.AmountInCents()
	if amount <= 0 {
		return nil, models.ValidationError{Field: "price", Message: "must be at least one cent"}
	}

	secret, err := s.gateway.CreatePaymentIntent(ctx, amount, s.currency)
	if err != nil {
		s.logger.Error("payment_intent_failed", "Failed to create payment intent", requestID, err, map[string]interface{}{
			"amount":   amount,
			"currency": s.currency,
		})
		return nil, err
	}

	s.logger.Debug("payment_intent_created", "Payment intent created", requestID, map[string]interface{}{
		"amount": amount,
	})
	return &models.PaymentIntentResponse{ClientSecret: secret}, nil
}

// Checkout stores the payment and clears the paid carts, then queues the confirmation.
// Notification problems never reach the caller.
func (s *Service) Checkout(ctx context.Context, req *models.PaymentRequest, requestID string) (models.CheckoutResult, error) {
	payment, err := req.ToPayment(s.now())
	if err != nil {
		return models.CheckoutResult{}, err
	}

	res, err := s.store.Checkout(ctx, payment)
	if err != nil {
		return models.CheckoutResult{}, fmt.Errorf("checkout: %w", err)
	}

	s.logger.Info("payment_saved", "Payment stored and carts cleared", requestID, map[string]interface{}{
		"email":          payment.Email,
		"transaction_id": payment.TransactionID,
		"carts_removed":  res.DeleteResult.DeletedCount,
	})

	s.dispatcher.Dispatch(ctx, models.NewPaymentConfirmation(payment))
	return res, nil
}

// History lists the payments of email, newest first
func (s *Service) History(ctx context.Context, email string) ([]models.Payment, error) {
	return s.store.ListByEmail(ctx, email)
}
