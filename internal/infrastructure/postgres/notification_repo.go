package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vaxcare/vaxcare-backend/internal/domain"
	"github.com/vaxcare/vaxcare-backend/internal/repository"
)

type NotificationRepository struct {
	pool *pgxpool.Pool
}

func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

const notificationColumns = `id, user_id, title, message, notification_type, is_read, created_at`

func (r *NotificationRepository) List(ctx context.Context, userID string) ([]*domain.Notification, error) {
	query := `
		SELECT ` + notificationColumns + `
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*domain.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	query := `
		INSERT INTO notifications (user_id, title, message, notification_type)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + notificationColumns

	row := r.pool.QueryRow(ctx, query, n.UserID, n.Title, n.Message, n.Type)
	return scanNotification(row)
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID string) (*domain.Notification, error) {
	query := `
		UPDATE notifications
		SET is_read = true
		WHERE id = $1 AND user_id = $2
		RETURNING ` + notificationColumns

	return scanNotification(r.pool.QueryRow(ctx, query, id, userID))
}

func (r *NotificationRepository) Delete(ctx context.Context, id, userID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM notifications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

// ListDue finds child/vaccine pairs past their due age with no administered
// record and no prior reminder for the same pair. The reminder title encodes
// the pair, which is what makes the engine idempotent across runs.
func (r *NotificationRepository) ListDue(ctx context.Context, limit int) ([]*repository.DueReminder, error) {
	query := `
		SELECT u.id, u.email, c.id, c.name, sv.id, sv.name, sv.recommended_age
		FROM children c
		JOIN users u ON c.user_id = u.id
		CROSS JOIN standard_vaccines sv
		WHERE u.is_active = true
		  AND sv.is_mandatory = true
		  AND c.date_of_birth + sv.recommended_age_weeks * INTERVAL '1 week' <= NOW()
		  AND NOT EXISTS (
			SELECT 1 FROM user_vaccines uv
			WHERE uv.child_id = c.id AND uv.vaccine_id = sv.id
		  )
		  AND NOT EXISTS (
			SELECT 1 FROM notifications n
			WHERE n.user_id = u.id
			  AND n.notification_type = $1
			  AND n.title = c.name || ': ' || sv.name || ' due'
		  )
		ORDER BY c.created_at, sv.sequence_order
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, domain.NotificationTypeVaccineReminder, limit)
	if err != nil {
		return nil, fmt.Errorf("list due reminders: %w", err)
	}
	defer rows.Close()

	var due []*repository.DueReminder
	for rows.Next() {
		var d repository.DueReminder
		err := rows.Scan(
			&d.UserID, &d.UserEmail, &d.ChildID, &d.ChildName,
			&d.VaccineID, &d.VaccineName, &d.RecommendedAge,
		)
		if err != nil {
			return nil, fmt.Errorf("scan due reminder: %w", err)
		}
		due = append(due, &d)
	}
	return due, rows.Err()
}

func scanNotification(row pgx.Row) (*domain.Notification, error) {
	var n domain.Notification
	err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("scan notification: %w", err)
	}
	return &n, nil
}
