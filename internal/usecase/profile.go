package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vaxcare/vaxcare-backend/internal/domain"
	"github.com/vaxcare/vaxcare-backend/internal/repository"
)

type ProfileUsecase struct {
	profiles repository.ProfileRepository
}

func NewProfileUsecase(profiles repository.ProfileRepository) *ProfileUsecase {
	return &ProfileUsecase{profiles: profiles}
}

func (u *ProfileUsecase) Get(ctx context.Context, userID string) (*domain.HealthProfile, error) {
	p, err := u.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return p, nil
}

type SaveProfileInput struct {
	UserID            string
	FullName          string
	DateOfBirth       time.Time
	BloodGroup        string
	GeneticConditions string
	KnownAllergies    string
	CurrentSymptoms   string
	Location          string
}

// SaveProfileResult reports whether the save created the profile (first
// submission) or updated an existing one, plus any symptom-derived alerts.
type SaveProfileResult struct {
	Profile *domain.HealthProfile
	Created bool
	Alerts  []domain.HealthAlert
}

func (u *ProfileUsecase) Save(ctx context.Context, input SaveProfileInput) (*SaveProfileResult, error) {
	created := false
	if _, err := u.profiles.FindByUserID(ctx, input.UserID); err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			return nil, fmt.Errorf("find profile: %w", err)
		}
		created = true
	}

	p, err := u.profiles.Upsert(ctx, &domain.HealthProfile{
		UserID:            input.UserID,
		FullName:          input.FullName,
		DateOfBirth:       input.DateOfBirth,
		BloodGroup:        input.BloodGroup,
		GeneticConditions: input.GeneticConditions,
		KnownAllergies:    input.KnownAllergies,
		CurrentSymptoms:   input.CurrentSymptoms,
		Location:          input.Location,
	})
	if err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	return &SaveProfileResult{
		Profile: p,
		Created: created,
		Alerts:  symptomAlerts(input.CurrentSymptoms),
	}, nil
}

func (u *ProfileUsecase) Delete(ctx context.Context, userID string) error {
	err := u.profiles.Delete(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return domain.ErrProfileNotFound
		}
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

// symptomAlerts flags symptoms that should defer vaccination.
func symptomAlerts(symptoms string) []domain.HealthAlert {
	if symptoms == "" {
		return nil
	}
	lowered := strings.ToLower(symptoms)
	for _, keyword := range []string{"fever", "cough", "rash"} {
		if strings.Contains(lowered, keyword) {
			return []domain.HealthAlert{{
				Type:    "warning",
				Message: "Based on your symptoms, please consult a healthcare provider before getting vaccinated.",
			}}
		}
	}
	return nil
}
