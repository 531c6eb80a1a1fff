package users

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bistro-boss/internal/models"
)

type UserStore interface {
	List(ctx context.Context) ([]models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, u *models.User) (models.InsertResult, error)
	SetRole(ctx context.Context, id primitive.ObjectID, role models.Role) (models.UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteResult, error)
}
