package domain

import (
	"errors"
	"time"
)

var (
	ErrVaccineNotFound = errors.New("vaccine not found")
	ErrRecordNotFound  = errors.New("vaccine record not found")
	ErrRecordDuplicate = errors.New("this vaccine has already been recorded")
)

// StandardVaccine is one entry of the national immunization schedule.
type StandardVaccine struct {
	ID                  string
	Name                string
	RecommendedAge      string
	RecommendedAgeWeeks int
	Description         string
	SequenceOrder       int
	IsMandatory         bool
}

// VaccineRecord is an administered dose, owned by a user and optionally
// attached to one of their children (nil ChildID = the user themselves).
type VaccineRecord struct {
	ID                 string
	UserID             string
	ChildID            *string
	VaccineID          string
	AdministeredDate   time.Time
	HealthcareProvider string
	BatchNumber        string
	Notes              string
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Joined fields, populated by list queries.
	VaccineName        string
	VaccineDescription string
	RecommendedAge     string
	SequenceOrder      int
	ChildName          *string
}

// DashboardStats summarizes a user's progress through the mandatory schedule.
type DashboardStats struct {
	CompletedVaccines    int `json:"completedVaccines"`
	TotalVaccines        int `json:"totalVaccines"`
	UpcomingVaccines     int `json:"upcomingVaccines"`
	FamilyMembers        int `json:"familyMembers"`
	CompletionPercentage int `json:"completionPercentage"`
}
