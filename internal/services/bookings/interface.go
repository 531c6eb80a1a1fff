package bookings

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bistro-boss/internal/models"
)

type BookingStore interface {
	Insert(ctx context.Context, b *models.Booking) (models.InsertResult, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	ListByEmail(ctx context.Context, email string) ([]models.Booking, error)
	CountByEmail(ctx context.Context, email string) (int64, error)
	List(ctx context.Context) ([]models.Booking, error)
	Count(ctx context.Context) (int64, error)
	Transition(ctx context.Context, id primitive.ObjectID, from, to models.BookingStatus) (models.UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteResult, error)
}

// AdminChecker resolves whether an email belongs to an admin
type AdminChecker interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}
