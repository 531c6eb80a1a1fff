package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"bistro-boss/internal/database"
	"bistro-boss/internal/models"
)

type CartRepository struct {
	coll *mongo.Collection
}

func NewCartRepository(db *database.MongoDB) *CartRepository {
	return &CartRepository{coll: db.Collection(database.CollectionCarts)}
}

func (r *CartRepository) ListByEmail(ctx context.Context, email string) ([]models.CartItem, error) {
	return findAll[models.CartItem](ctx, r.coll, bson.M{"email": email})
}

func (r *CartRepository) Insert(ctx context.Context, item *models.CartItem) (models.InsertResult, error) {
	return insertOne(ctx, r.coll, item)
}

func (r *CartRepository) Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteResult, error) {
	return deleteOne(ctx, r.coll, bson.M{"_id": id})
}
