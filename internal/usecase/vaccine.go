package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vaxcare/vaxcare-backend/internal/domain"
	"github.com/vaxcare/vaxcare-backend/internal/repository"
)

type VaccineUsecase struct {
	vaccines repository.VaccineRepository
	children repository.ChildRepository
}

func NewVaccineUsecase(vaccines repository.VaccineRepository, children repository.ChildRepository) *VaccineUsecase {
	return &VaccineUsecase{vaccines: vaccines, children: children}
}

func (u *VaccineUsecase) Schedule(ctx context.Context) ([]*domain.StandardVaccine, error) {
	schedule, err := u.vaccines.ListSchedule(ctx)
	if err != nil {
		return nil, fmt.Errorf("list schedule: %w", err)
	}
	return schedule, nil
}

func (u *VaccineUsecase) Records(ctx context.Context, userID string, childID *string) ([]*domain.VaccineRecord, error) {
	records, err := u.vaccines.ListRecords(ctx, userID, childID)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

// Dashboard aggregates a user's progress through the mandatory schedule.
type Dashboard struct {
	Stats     domain.DashboardStats
	Completed []*domain.StandardVaccine
	Upcoming  []*domain.StandardVaccine
	Recent    []*domain.VaccineRecord
}

func (u *VaccineUsecase) Dashboard(ctx context.Context, userID string) (*Dashboard, error) {
	completed, err := u.vaccines.CountRecords(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count records: %w", err)
	}
	total, err := u.vaccines.CountMandatory(ctx)
	if err != nil {
		return nil, fmt.Errorf("count mandatory: %w", err)
	}
	completedList, err := u.vaccines.ListCompleted(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list completed: %w", err)
	}
	upcoming, err := u.vaccines.ListUpcoming(ctx, userID, 5)
	if err != nil {
		return nil, fmt.Errorf("list upcoming: %w", err)
	}
	recent, err := u.vaccines.ListRecent(ctx, userID, 5)
	if err != nil {
		return nil, fmt.Errorf("list recent: %w", err)
	}
	children, err := u.children.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}

	pct := 0
	if total > 0 {
		pct = int(float64(completed)/float64(total)*100 + 0.5)
	}

	return &Dashboard{
		Stats: domain.DashboardStats{
			CompletedVaccines:    completed,
			TotalVaccines:        total,
			UpcomingVaccines:     total - completed,
			FamilyMembers:        len(children) + 1, // children plus the user
			CompletionPercentage: pct,
		},
		Completed: completedList,
		Upcoming:  upcoming,
		Recent:    recent,
	}, nil
}

type RecordInput struct {
	UserID             string
	ChildID            *string
	VaccineID          string
	AdministeredDate   time.Time
	HealthcareProvider string
	BatchNumber        string
	Notes              string
}

// Record stores an administered dose. The vaccine must exist, the child (if
// given) must belong to the caller, and the same user/child/vaccine
// combination may only be recorded once.
func (u *VaccineUsecase) Record(ctx context.Context, input RecordInput) (*domain.VaccineRecord, error) {
	vaccine, err := u.vaccines.GetVaccine(ctx, input.VaccineID)
	if err != nil {
		if errors.Is(err, domain.ErrVaccineNotFound) {
			return nil, domain.ErrVaccineNotFound
		}
		return nil, fmt.Errorf("get vaccine: %w", err)
	}

	if input.ChildID != nil {
		if _, err := u.children.GetByID(ctx, *input.ChildID, input.UserID); err != nil {
			if errors.Is(err, domain.ErrChildNotFound) {
				return nil, domain.ErrChildNotFound
			}
			return nil, fmt.Errorf("get child: %w", err)
		}
	}

	exists, err := u.vaccines.RecordExists(ctx, input.UserID, input.VaccineID, input.ChildID)
	if err != nil {
		return nil, fmt.Errorf("check duplicate: %w", err)
	}
	if exists {
		return nil, domain.ErrRecordDuplicate
	}

	record, err := u.vaccines.CreateRecord(ctx, &domain.VaccineRecord{
		UserID:             input.UserID,
		ChildID:            input.ChildID,
		VaccineID:          input.VaccineID,
		AdministeredDate:   input.AdministeredDate,
		HealthcareProvider: input.HealthcareProvider,
		BatchNumber:        input.BatchNumber,
		Notes:              input.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("create record: %w", err)
	}

	record.VaccineName = vaccine.Name
	record.VaccineDescription = vaccine.Description
	return record, nil
}

func (u *VaccineUsecase) UpdateRecord(ctx context.Context, recordID string, input RecordInput) (*domain.VaccineRecord, error) {
	record, err := u.vaccines.UpdateRecord(ctx, &domain.VaccineRecord{
		ID:                 recordID,
		UserID:             input.UserID,
		ChildID:            input.ChildID,
		VaccineID:          input.VaccineID,
		AdministeredDate:   input.AdministeredDate,
		HealthcareProvider: input.HealthcareProvider,
		BatchNumber:        input.BatchNumber,
		Notes:              input.Notes,
	})
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("update record: %w", err)
	}
	return record, nil
}

func (u *VaccineUsecase) DeleteRecord(ctx context.Context, recordID, userID string) error {
	err := u.vaccines.DeleteRecord(ctx, recordID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.ErrRecordNotFound
		}
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}
