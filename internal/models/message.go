package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentConfirmation is the task handed to the notification queue after a checkout
type PaymentConfirmation struct {
	MessageID     string    `json:"message_id"`
	Email         string    `json:"email"`
	Amount        float64   `json:"amount"`
	TransactionID string    `json:"transaction_id"`
	PaymentID     string    `json:"payment_id"`
	PaidAt        time.Time `json:"paid_at"`
}

// NewPaymentConfirmation creates a confirmation task for a stored payment
func NewPaymentConfirmation(p *Payment) *PaymentConfirmation {
	return &PaymentConfirmation{
		MessageID:     uuid.NewString(),
		Email:         p.Email,
		Amount:        p.Price,
		TransactionID: p.TransactionID,
		PaymentID:     p.ID.Hex(),
		PaidAt:        p.Date,
	}
}

// Delivery channels recorded in the notification ledger
const (
	ChannelEmail    = "email"
	ChannelTelegram = "telegram"
)

// DeliveryStatus is the outcome of one delivery attempt
type DeliveryStatus string

const (
	DeliverySent   DeliveryStatus = "sent"
	DeliveryFailed DeliveryStatus = "failed"
)
