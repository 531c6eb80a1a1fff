package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bistro-boss/internal/logger"
	"bistro-boss/internal/models"
)

// Service manages table bookings and their status lifecycle
type Service struct {
	store  BookingStore
	admins AdminChecker
	logger *logger.Logger
	now    func() time.Time
}

func NewService(store BookingStore, admins AdminChecker, log *logger.Logger) *Service {
	return &Service{
		store:  store,
		admins: admins,
		logger: log,
		now:    time.Now,
	}
}

func (s *Service) Create(ctx context.Context, req *models.BookingRequest) (models.InsertResult, error) {
	return s.store.Insert(ctx, req.ToBooking(s.now()))
}

func (s *Service) ForUser(ctx context.Context, email string) (*models.UserBookings, error) {
	list, err := s.store.ListByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	total, err := s.store.CountByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return &models.UserBookings{MyBookings: list, Total: total}, nil
}

func (s *Service) All(ctx context.Context) (*models.AllBookings, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &models.AllBookings{AllBookings: list, TotalBookings: total}, nil
}

// MarkDone moves a pending booking to Done. Marking a booking that is already Done
// matches it without modifying anything.
func (s *Service) MarkDone(ctx context.Context, id primitive.ObjectID, requestID string) (models.UpdateResult, error) {
	b, err := s.store.Get(ctx, id)
	if err != nil {
		return models.UpdateResult{}, err
	}
	if b.Status == models.BookingDone {
		return models.UpdateResult{Acknowledged: true, MatchedCount: 1}, nil
	}
	if !b.Status.CanTransitionTo(models.BookingDone) {
		return models.UpdateResult{}, models.ValidationError{
			Field:   "status",
			Message: fmt.Sprintf("cannot move booking from %q to %q", b.Status, models.BookingDone),
		}
	}

	res, err := s.store.Transition(ctx, id, b.Status, models.BookingDone)
	if errors.Is(err, models.ErrNotFound) {
		// a concurrent update already moved it
		return models.UpdateResult{Acknowledged: true, MatchedCount: 1}, nil
	}
	if err != nil {
		return models.UpdateResult{}, err
	}

	s.logger.Info("booking_completed", "Booking marked as done", requestID, map[string]interface{}{
		"booking_id": id.Hex(),
		"email":      b.Email,
	})
	return res, nil
}

// Cancel deletes a booking on behalf of its owner or an admin
func (s *Service) Cancel(ctx context.Context, id primitive.ObjectID, callerEmail, requestID string) (models.DeleteResult, error) {
	b, err := s.store.Get(ctx, id)
	if err != nil {
		return models.DeleteResult{}, err
	}

	if b.Email != callerEmail {
		admin, err := s.admins.IsAdmin(ctx, callerEmail)
		if err != nil {
			return models.DeleteResult{}, err
		}
		if !admin {
			return models.DeleteResult{}, models.ErrForbidden
		}
	}

	res, err := s.store.Delete(ctx, id)
	if err != nil {
		return res, err
	}
	s.logger.Info("booking_cancelled", "Booking deleted", requestID, map[string]interface{}{
		"booking_id": id.Hex(),
		"by":         callerEmail,
	})
	return res, nil
}
