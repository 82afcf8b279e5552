package domain

import (
	"errors"
	"time"
)

var ErrProfileNotFound = errors.New("profile not found")

// HealthAlert is advisory guidance attached to a profile save, derived from
// the reported symptoms.
type HealthAlert struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type HealthProfile struct {
	ID                string
	UserID            string
	FullName          string
	DateOfBirth       time.Time
	BloodGroup        string
	GeneticConditions string
	KnownAllergies    string
	CurrentSymptoms   string
	Location          string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
