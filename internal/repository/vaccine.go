package repository

import (
	"context"

	"github.com/vaxcare/vaxcare-backend/internal/domain"
)

type VaccineRepository interface {
	// ListSchedule returns the standard schedule ordered by sequence.
	ListSchedule(ctx context.Context) ([]*domain.StandardVaccine, error)
	GetVaccine(ctx context.Context, id string) (*domain.StandardVaccine, error)

	// ListRecords returns the user's records, optionally narrowed to one
	// child, joined with vaccine and child names.
	ListRecords(ctx context.Context, userID string, childID *string) ([]*domain.VaccineRecord, error)
	// ListChildHistory returns an owned child's records newest-first.
	ListChildHistory(ctx context.Context, childID string) ([]*domain.VaccineRecord, error)

	// RecordExists checks for a duplicate (user, vaccine, child) entry.
	// A nil childID matches only records with no child.
	RecordExists(ctx context.Context, userID, vaccineID string, childID *string) (bool, error)
	CreateRecord(ctx context.Context, r *domain.VaccineRecord) (*domain.VaccineRecord, error)
	UpdateRecord(ctx context.Context, r *domain.VaccineRecord) (*domain.VaccineRecord, error)
	DeleteRecord(ctx context.Context, recordID, userID string) error

	// Dashboard aggregates.
	CountRecords(ctx context.Context, userID string) (int, error)
	CountMandatory(ctx context.Context) (int, error)
	ListCompleted(ctx context.Context, userID string) ([]*domain.StandardVaccine, error)
	ListUpcoming(ctx context.Context, userID string, limit int) ([]*domain.StandardVaccine, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]*domain.VaccineRecord, error)
}
