package repository

import (
	"context"

	"github.com/vaxcare/vaxcare-backend/internal/domain"
)

type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID string) (*domain.HealthProfile, error)
	// Upsert creates the profile on first save and updates it afterwards.
	Upsert(ctx context.Context, p *domain.HealthProfile) (*domain.HealthProfile, error)
	Delete(ctx context.Context, userID string) error
}
