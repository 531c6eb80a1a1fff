package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const PaymentStatusPending = "pending"

type Payment struct {
	ID            primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Email         string               `json:"email" bson:"email"`
	Price         float64              `json:"price" bson:"price"`
	TransactionID string               `json:"transactionId" bson:"transactionId"`
	Date          time.Time            `json:"date" bson:"date"`
	Status        string               `json:"status" bson:"status"`
	CartIDs       []primitive.ObjectID `json:"cartIds" bson:"cartIds"`
	MenuItemIDs   []primitive.ObjectID `json:"menuItemIds" bson:"menuItemIds"`
}

type PaymentRequest struct {
	Email         string    `json:"email" binding:"required,email"`
	Price         float64   `json:"price" binding:"required,gt=0"`
	TransactionID string    `json:"transactionId" binding:"required"`
	Date          time.Time `json:"date"`
	Status        string    `json:"status"`
	CartIDs       []string  `json:"cartIds" binding:"required,min=1"`
	MenuItemIDs   []string  `json:"menuItemIds"`
}

// ToPayment validates the referenced ids and fills server-side defaults.
func (r *PaymentRequest) ToPayment(now time.Time) (*Payment, error) {
	cartIDs, err := ParseIDs("cartIds", r.CartIDs)
	if err != nil {
		return nil, err
	}
	menuItemIDs, err := ParseIDs("menuItemIds", r.MenuItemIDs)
	if err != nil {
		return nil, err
	}

	p := &Payment{
		Email:         r.Email,
		Price:         r.Price,
		TransactionID: r.TransactionID,
		Date:          r.Date,
		Status:        r.Status,
		CartIDs:       cartIDs,
		MenuItemIDs:   menuItemIDs,
	}
	if p.Date.IsZero() {
		p.Date = now.UTC()
	}
	if p.Status == "" {
		p.Status = PaymentStatusPending
	}
	return p, nil
}

// PaymentIntentRequest asks the processor for a client secret.
type PaymentIntentRequest struct {
	Price float64 `json:"price" binding:"required,gt=0"`
}

// AmountInCents converts the price into the processor's smallest currency unit.
func (r *PaymentIntentRequest) AmountInCents() int64 {
	return int64(math.Round(r.Price * 100))
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// CheckoutResult is returned by POST /payments.
type CheckoutResult struct {
	PaymentResult InsertResult `json:"paymentResult"`
	DeleteResult  DeleteResult `json:"deleteResult"`
}
