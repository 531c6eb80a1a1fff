package stats

import (
	"context"
	"fmt"

	"bistro-boss/internal/models"
)

type StatsStore interface {
	UserStats(ctx context.Context, email string) (*models.UserStats, error)
	AdminStats(ctx context.Context) (*models.AdminStats, error)
	OrderStats(ctx context.Context) ([]models.CategoryStat, error)
}

// Service exposes the read-only dashboards
type Service struct {
	store StatsStore
}

func NewService(store StatsStore) *Service {
	return &Service{store: store}
}

func (s *Service) ForUser(ctx context.Context, email string) (*models.UserStats, error) {
	st, err := s.store.UserStats(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("user stats: %w", err)
	}
	return st, nil
}

func (s *Service) Admin(ctx context.Context) (*models.AdminStats, error) {
	st, err := s.store.AdminStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin stats: %w", err)
	}
	return st, nil
}

// Orders returns revenue per menu category; never nil.
func (s *Service) Orders(ctx context.Context) ([]models.CategoryStat, error) {
	st, err := s.store.OrderStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("order stats: %w", err)
	}
	if st == nil {
		st = []models.CategoryStat{}
	}
	return st, nil
}
