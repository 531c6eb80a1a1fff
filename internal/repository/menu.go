package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"bistro-boss/internal/database"
	"bistro-boss/internal/models"
)

type MenuRepository struct {
	coll *mongo.Collection
}

func NewMenuRepository(db *database.MongoDB) *MenuRepository {
	return &MenuRepository{coll: db.Collection(database.CollectionMenu)}
}

func (r *MenuRepository) List(ctx context.Context) ([]models.MenuItem, error) {
	return findAll[models.MenuItem](ctx, r.coll, bson.M{})
}

func (r *MenuRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error) {
	return findOne[models.MenuItem](ctx, r.coll, bson.M{"_id": id})
}

func (r *MenuRepository) Insert(ctx context.Context, item *models.MenuItem) (models.InsertResult, error) {
	return insertOne(ctx, r.coll, item)
}

// Update replaces only the given fields.
func (r *MenuRepository) Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (models.UpdateResult, error) {
	return updateByID(ctx, r.coll, bson.M{"_id": id}, bson.M{"$set": bson.M(fields)})
}

func (r *MenuRepository) Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteResult, error) {
	return deleteOne(ctx, r.coll, bson.M{"_id": id})
}
