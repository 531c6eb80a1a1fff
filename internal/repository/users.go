package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"bistro-boss/internal/database"
	"bistro-boss/internal/models"
)

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *database.MongoDB) *UserRepository {
	return &UserRepository{coll: db.Collection(database.CollectionUsers)}
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	return findAll[models.User](ctx, r.coll, bson.M{})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](ctx, r.coll, bson.M{"email": email})
}

// Insert stores a new user; a duplicate email yields models.ErrConflict.
func (r *UserRepository) Insert(ctx context.Context, u *models.User) (models.InsertResult, error) {
	return insertOne(ctx, r.coll, u)
}

func (r *UserRepository) SetRole(ctx context.Context, id primitive.ObjectID, role models.Role) (models.UpdateResult, error) {
	return updateByID(ctx, r.coll, bson.M{"_id": id}, bson.M{"$set": bson.M{"role": role}})
}

func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteResult, error) {
	return deleteOne(ctx, r.coll, bson.M{"_id": id})
}
