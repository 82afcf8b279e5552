package domain

import (
	"errors"
	"time"
)

var ErrDriveNotFound = errors.New("vaccine drive not found")

type DriveType string

const (
	DriveTypeVaccine DriveType = "vaccine"
	DriveTypeSafety  DriveType = "safety"
)

// Drive is a public vaccination or safety drive. Drives are not owned by
// any user; listing endpoints are public with optional personalization.
type Drive struct {
	ID          string
	Title       string
	Description string
	Type        DriveType
	Location    string
	Address     string
	Date        time.Time
	StartTime   string
	EndTime     string
	Organizer   string
	ContactInfo string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DriveFilter narrows a drive listing. Zero value = all active drives.
type DriveFilter struct {
	Location     string
	Type         DriveType
	UpcomingOnly bool
}

// IsUpcoming reports whether the drive date is today or later.
func (d *Drive) IsUpcoming(now time.Time) bool {
	y, m, day := now.Date()
	today := time.Date(y, m, day, 0, 0, 0, 0, now.Location())
	return !d.Date.Before(today)
}
