package auth

import (
	"context"
	"errors"
	"fmt"

	"bistro-boss/internal/models"
)

// UserFinder is the slice of the user store the role gate needs
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// Gate resolves roles from the stored user record, never from token claims.
type Gate struct {
	users UserFinder
}

func NewGate(users UserFinder) *Gate {
	return &Gate{users: users}
}

// IsAdmin reports whether email belongs to a stored admin. Unknown emails are not admins.
func (g *Gate) IsAdmin(ctx context.Context, email string) (bool, error) {
	u, err := g.users.FindByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup role: %w", err)
	}
	return u.IsAdmin(), nil
}

// RequireAdmin fails with ErrForbidden unless id belongs to an admin
func (g *Gate) RequireAdmin(ctx context.Context, id *Identity) error {
	if id == nil {
		return models.ErrUnauthorized
	}
	admin, err := g.IsAdmin(ctx, id.Email)
	if err != nil {
		return err
	}
	if !admin {
		return models.ErrForbidden
	}
	return nil
}

// RequireSelf fails with ErrForbidden unless id was issued for email
func RequireSelf(id *Identity, email string) error {
	if id == nil {
		return models.ErrUnauthorized
	}
	if id.Email != email {
		return models.ErrForbidden
	}
	return nil
}
