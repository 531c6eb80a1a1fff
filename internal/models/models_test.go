package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBookingStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to BookingStatus
		want     bool
	}{
		{BookingPending, BookingDone, true},
		{BookingDone, BookingPending, false},
		{BookingDone, BookingDone, false},
		{BookingPending, BookingPending, false},
		{"", BookingDone, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to), "%q -> %q", tt.from, tt.to)
	}
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("superadmin").Valid())
	assert.False(t, Role("").Valid())
}

func TestCreateUserRequest_ToUserDefaultsRole(t *testing.T) {
	req := CreateUserRequest{Name: " Ann ", Email: "ann@example.com"}
	u := req.ToUser()

	assert.Equal(t, RoleUser, u.Role)
	assert.Equal(t, "Ann", u.Name)
	assert.False(t, u.IsAdmin())
}

func TestParseID(t *testing.T) {
	id := primitive.NewObjectID()

	got, err := ParseID(id.Hex())
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ParseID("not-an-id")
	assert.True(t, errors.Is(err, ErrInvalidID))
}

func TestPaymentRequest_ToPayment(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	cart := primitive.NewObjectID()
	menu := primitive.NewObjectID()

	req := PaymentRequest{
		Email:         "ann@example.com",
		Price:         42.5,
		TransactionID: "pi_123",
		CartIDs:       []string{cart.Hex()},
		MenuItemIDs:   []string{menu.Hex()},
	}
	p, err := req.ToPayment(now)
	require.NoError(t, err)

	assert.Equal(t, []primitive.ObjectID{cart}, p.CartIDs)
	assert.Equal(t, []primitive.ObjectID{menu}, p.MenuItemIDs)
	assert.Equal(t, now, p.Date)
	assert.Equal(t, PaymentStatusPending, p.Status)
}

func TestPaymentRequest_ToPaymentRejectsBadCartID(t *testing.T) {
	req := PaymentRequest{CartIDs: []string{primitive.NewObjectID().Hex(), "bogus"}}

	_, err := req.ToPayment(time.Now())

	var verr ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "cartIds[1]", verr.Field)
}

func TestPaymentIntentRequest_AmountInCents(t *testing.T) {
	assert.Equal(t, int64(1999), (&PaymentIntentRequest{Price: 19.99}).AmountInCents())
	assert.Equal(t, int64(500), (&PaymentIntentRequest{Price: 5}).AmountInCents())
}

func TestMenuItemPatch(t *testing.T) {
	name := "Soup"
	price := 0.0

	empty := MenuItemPatch{}
	assert.Error(t, empty.Validate())

	onlyName := MenuItemPatch{Name: &name}
	require.NoError(t, onlyName.Validate())
	assert.Equal(t, map[string]interface{}{"name": "Soup"}, onlyName.Fields())

	badPrice := MenuItemPatch{Price: &price}
	assert.Error(t, badPrice.Validate())
}

func TestBookingRequest_ToBookingStartsPending(t *testing.T) {
	req := BookingRequest{Email: "ann@example.com", Date: "2026-10-20", Time: "19:00", Guests: 2}

	b := req.ToBooking(time.Now())

	assert.Equal(t, BookingPending, b.Status)
}
