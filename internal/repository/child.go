package repository

import (
	"context"

	"github.com/vaxcare/vaxcare-backend/internal/domain"
)

// All single-record operations conjoin childID with userID: a child owned
// by another user is indistinguishable from one that does not exist.
type ChildRepository interface {
	List(ctx context.Context, userID string) ([]*domain.Child, error)
	GetByID(ctx context.Context, childID, userID string) (*domain.Child, error)
	Create(ctx context.Context, c *domain.Child) (*domain.Child, error)
	Update(ctx context.Context, c *domain.Child) (*domain.Child, error)
	// Delete returns the deleted child's name for the confirmation message.
	Delete(ctx context.Context, childID, userID string) (string, error)
}
