package domain

import (
	"errors"
	"time"
)

var ErrChildNotFound = errors.New("child not found")

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

type Child struct {
	ID                 string
	UserID             string
	Name               string
	DateOfBirth        time.Time
	Gender             Gender
	BirthWeight        *float64 // kilograms, nil when not recorded
	BirthComplications string
	VaccinesCompleted  int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// AgeInWeeks returns the child's age in full weeks as of now.
func (c *Child) AgeInWeeks(now time.Time) int {
	if now.Before(c.DateOfBirth) {
		return 0
	}
	return int(now.Sub(c.DateOfBirth).Hours() / (24 * 7))
}
