package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/vaxcare/vaxcare-backend/internal/domain"
	"github.com/vaxcare/vaxcare-backend/internal/repository"
)

type NotificationUsecase struct {
	notifications repository.NotificationRepository
}

func NewNotificationUsecase(notifications repository.NotificationRepository) *NotificationUsecase {
	return &NotificationUsecase{notifications: notifications}
}

func (u *NotificationUsecase) List(ctx context.Context, userID string) ([]*domain.Notification, error) {
	notifications, err := u.notifications.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

func (u *NotificationUsecase) MarkRead(ctx context.Context, id, userID string) (*domain.Notification, error) {
	n, err := u.notifications.MarkRead(ctx, id, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			return nil, domain.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("mark notification read: %w", err)
	}
	return n, nil
}

func (u *NotificationUsecase) Delete(ctx context.Context, id, userID string) error {
	err := u.notifications.Delete(ctx, id, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			return domain.ErrNotificationNotFound
		}
		return fmt.Errorf("delete notification: %w", err)
	}
	return nil
}
