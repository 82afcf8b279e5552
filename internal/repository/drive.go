package repository

import (
	"context"

	"github.com/vaxcare/vaxcare-backend/internal/domain"
)

// Drives are public; only active drives are ever returned.
type DriveRepository interface {
	List(ctx context.Context, f domain.DriveFilter) ([]*domain.Drive, error)
	GetByID(ctx context.Context, id string) (*domain.Drive, error)
	ListByLocation(ctx context.Context, location string, limit int) ([]*domain.Drive, error)
	// ListUpcoming returns active drives within the next `days` days.
	ListUpcoming(ctx context.Context, days int) ([]*domain.Drive, error)
	Search(ctx context.Context, query string, limit int) ([]*domain.Drive, error)
}
