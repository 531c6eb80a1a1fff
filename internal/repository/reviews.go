package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"bistro-boss/internal/database"
	"bistro-boss/internal/models"
)

type ReviewRepository struct {
	coll *mongo.Collection
}

func NewReviewRepository(db *database.MongoDB) *ReviewRepository {
	return &ReviewRepository{coll: db.Collection(database.CollectionReviews)}
}

func (r *ReviewRepository) List(ctx context.Context) ([]models.Review, error) {
	return findAll[models.Review](ctx, r.coll, bson.M{})
}

func (r *ReviewRepository) Insert(ctx context.Context, review *models.Review) (models.InsertResult, error) {
	return insertOne(ctx, r.coll, review)
}
