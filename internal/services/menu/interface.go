package menu

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bistro-boss/internal/models"
)

type MenuStore interface {
	List(ctx context.Context) ([]models.MenuItem, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error)
	Insert(ctx context.Context, item *models.MenuItem) (models.InsertResult, error)
	Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (models.UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteResult, error)
}
