package repository

import (
	"context"

	"github.com/vaxcare/vaxcare-backend/internal/domain"
)

// Usecases depend on interfaces, not concrete implementations, so the
// storage engine can be swapped and tests can inject fakes.
type UserRepository interface {
	// Create inserts a new user; returns domain.ErrEmailTaken when the
	// (lowercased) email is already registered.
	Create(ctx context.Context, email, passwordHash string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	UpdateLastLogin(ctx context.Context, id string) error
	// FindOverview joins the user with their profile for GET /me.
	FindOverview(ctx context.Context, id string) (*domain.UserOverview, error)
}
