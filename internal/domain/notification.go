package domain

import (
	"errors"
	"time"
)

var ErrNotificationNotFound = errors.New("notification not found")

const (
	NotificationTypeVaccineReminder = "vaccine_reminder"
	NotificationTypeDrive           = "drive_announcement"
	NotificationTypeGeneral         = "general"
)

type Notification struct {
	ID        string
	UserID    string
	Title     string
	Message   string
	Type      string
	IsRead    bool
	CreatedAt time.Time
}
