package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingStatus tracks a table booking. The only transition is pending -> Done.
type BookingStatus string

const (
	BookingPending BookingStatus = "pending"
	BookingDone    BookingStatus = "Done"
)

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	return s == BookingPending && next == BookingDone
}

type Booking struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Phone     string             `json:"phone" bson:"phone"`
	Date      string             `json:"date" bson:"date"`
	Time      string             `json:"time" bson:"time"`
	Guests    int                `json:"guests" bson:"guests"`
	Status    BookingStatus      `json:"status" bson:"status"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

type BookingRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email" binding:"required,email"`
	Phone  string `json:"phone"`
	Date   string `json:"date" binding:"required"`
	Time   string `json:"time" binding:"required"`
	Guests int    `json:"guests" binding:"required,min=1,max=50"`
}

// ToBooking always starts a booking as pending; the client cannot pick a status.
func (r *BookingRequest) ToBooking(now time.Time) *Booking {
	return &Booking{
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Date:      r.Date,
		Time:      r.Time,
		Guests:    r.Guests,
		Status:    BookingPending,
		CreatedAt: now.UTC(),
	}
}

type UserBookings struct {
	MyBookings []Booking `json:"myBookings"`
	Total      int64     `json:"total"`
}

type AllBookings struct {
	AllBookings   []Booking `json:"allBookings"`
	TotalBookings int64     `json:"totalBookings"`
}
