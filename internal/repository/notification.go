package repository

import (
	"context"

	"github.com/vaxcare/vaxcare-backend/internal/domain"
)

type NotificationRepository interface {
	List(ctx context.Context, userID string) ([]*domain.Notification, error)
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	MarkRead(ctx context.Context, id, userID string) (*domain.Notification, error)
	Delete(ctx context.Context, id, userID string) error
}

// DueReminder is one child/vaccine combination whose due age has passed
// without an administered record or an existing reminder notification.
type DueReminder struct {
	UserID         string
	UserEmail      string
	ChildID        string
	ChildName      string
	VaccineID      string
	VaccineName    string
	RecommendedAge string
}

type ReminderRepository interface {
	ListDue(ctx context.Context, limit int) ([]*DueReminder, error)
}
