package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"bistro-boss/internal/database"
	"bistro-boss/internal/models"
)

type BookingRepository struct {
	coll *mongo.Collection
}

func NewBookingRepository(db *database.MongoDB) *BookingRepository {
	return &BookingRepository{coll: db.Collection(database.CollectionBookings)}
}

func (r *BookingRepository) Insert(ctx context.Context, b *models.Booking) (models.InsertResult, error) {
	return insertOne(ctx, r.coll, b)
}

func (r *BookingRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	return findOne[models.Booking](ctx, r.coll, bson.M{"_id": id})
}

func (r *BookingRepository) ListByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	return findAll[models.Booking](ctx, r.coll, bson.M{"email": email})
}

func (r *BookingRepository) CountByEmail(ctx context.Context, email string) (int64, error) {
	return countByEmail(ctx, r.coll, email)
}

func (r *BookingRepository) List(ctx context.Context) ([]models.Booking, error) {
	return findAll[models.Booking](ctx, r.coll, bson.M{})
}

func (r *BookingRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return n, nil
}

// Transition moves a booking from one status to the next. The current status is part
// of the filter, so a booking that is not in `from` is reported as not found.
func (r *BookingRepository) Transition(ctx context.Context, id primitive.ObjectID, from, to models.BookingStatus) (models.UpdateResult, error) {
	return updateByID(ctx, r.coll,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to}},
	)
}

func (r *BookingRepository) Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteResult, error) {
	return deleteOne(ctx, r.coll, bson.M{"_id": id})
}
