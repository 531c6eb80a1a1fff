package users

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bistro-boss/internal/logger"
	"bistro-boss/internal/models"
)

// Service implements user registration and role management
type Service struct {
	store  UserStore
	logger *logger.Logger
}

func NewService(store UserStore, log *logger.Logger) *Service {
	return &Service{
		store:  store,
		logger: log,
	}
}

func (s *Service) List(ctx context.Context) ([]models.User, error) {
	return s.store.List(ctx)
}

// Register stores a new ordinary user. It reports created=false, without error, when the
// email is already registered, including when a concurrent registration wins the race.
func (s *Service) Register(ctx context.Context, req *models.CreateUserRequest, requestID string) (models.InsertResult, bool, error) {
	u := req.ToUser()

	_, err := s.store.FindByEmail(ctx, u.Email)
	switch {
	case err == nil:
		return models.InsertResult{}, false, nil
	case !errors.Is(err, models.ErrNotFound):
		return models.InsertResult{}, false, fmt.Errorf("lookup user: %w", err)
	}

	res, err := s.store.Insert(ctx, u)
	if errors.Is(err, models.ErrConflict) {
		return models.InsertResult{}, false, nil
	}
	if err != nil {
		return models.InsertResult{}, false, fmt.Errorf("insert user: %w", err)
	}

	s.logger.Info("user_registered", "User registered", requestID, map[string]interface{}{
		"email": u.Email,
	})
	return res, true, nil
}

// IsAdmin reports whether the stored record for email carries the admin role
func (s *Service) IsAdmin(ctx context.Context, email string) (bool, error) {
	u, err := s.store.FindByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return u.IsAdmin(), nil
}

func (s *Service) Promote(ctx context.Context, id primitive.ObjectID, requestID string) (models.UpdateResult, error) {
	res, err := s.store.SetRole(ctx, id, models.RoleAdmin)
	if err != nil {
		return res, err
	}
	s.logger.Info("user_promoted", "User promoted to admin", requestID, map[string]interface{}{
		"user_id": id.Hex(),
	})
	return res, nil
}

func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteResult, error) {
	return s.store.Delete(ctx, id)
}
