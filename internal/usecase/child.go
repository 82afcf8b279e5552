package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vaxcare/vaxcare-backend/internal/domain"
	"github.com/vaxcare/vaxcare-backend/internal/repository"
)

type ChildUsecase struct {
	children repository.ChildRepository
	vaccines repository.VaccineRepository
}

func NewChildUsecase(children repository.ChildRepository, vaccines repository.VaccineRepository) *ChildUsecase {
	return &ChildUsecase{children: children, vaccines: vaccines}
}

func (u *ChildUsecase) List(ctx context.Context, userID string) ([]*domain.Child, error) {
	children, err := u.children.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	return children, nil
}

// ChildDetail is a child together with their vaccination history.
type ChildDetail struct {
	Child   *domain.Child
	History []*domain.VaccineRecord
}

func (u *ChildUsecase) Get(ctx context.Context, childID, userID string) (*ChildDetail, error) {
	child, err := u.children.GetByID(ctx, childID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrChildNotFound) {
			return nil, domain.ErrChildNotFound
		}
		return nil, fmt.Errorf("get child: %w", err)
	}

	// History is fetched only after the ownership check above.
	history, err := u.vaccines.ListChildHistory(ctx, child.ID)
	if err != nil {
		return nil, fmt.Errorf("child history: %w", err)
	}

	return &ChildDetail{Child: child, History: history}, nil
}

type ChildInput struct {
	UserID             string
	Name               string
	DateOfBirth        time.Time
	Gender             domain.Gender
	BirthWeight        *float64
	BirthComplications string
}

// newbornRecommendations is returned with every newly registered child.
var newbornRecommendations = []string{
	"Schedule BCG and Hepatitis B vaccines immediately after birth",
	"Keep vaccination records safe and accessible",
	"Consult your pediatrician for personalized vaccination schedule",
}

// CreateChildResult carries the stored child plus onboarding guidance:
// the child's age and the first vaccines of the standard schedule.
type CreateChildResult struct {
	Child            *domain.Child
	AgeInWeeks       int
	UpcomingVaccines []*domain.StandardVaccine
	Recommendations  []string
}

func (u *ChildUsecase) Create(ctx context.Context, input ChildInput) (*CreateChildResult, error) {
	child, err := u.children.Create(ctx, &domain.Child{
		UserID:             input.UserID,
		Name:               input.Name,
		DateOfBirth:        input.DateOfBirth,
		Gender:             input.Gender,
		BirthWeight:        input.BirthWeight,
		BirthComplications: input.BirthComplications,
	})
	if err != nil {
		return nil, fmt.Errorf("create child: %w", err)
	}

	schedule, err := u.vaccines.ListSchedule(ctx)
	if err != nil {
		return nil, fmt.Errorf("list schedule: %w", err)
	}
	upcoming := make([]*domain.StandardVaccine, 0, 10)
	for _, v := range schedule {
		if v.SequenceOrder <= 10 {
			upcoming = append(upcoming, v)
		}
	}

	return &CreateChildResult{
		Child:            child,
		AgeInWeeks:       child.AgeInWeeks(time.Now()),
		UpcomingVaccines: upcoming,
		Recommendations:  newbornRecommendations,
	}, nil
}

func (u *ChildUsecase) Update(ctx context.Context, childID string, input ChildInput) (*domain.Child, error) {
	child, err := u.children.Update(ctx, &domain.Child{
		ID:                 childID,
		UserID:             input.UserID,
		Name:               input.Name,
		DateOfBirth:        input.DateOfBirth,
		Gender:             input.Gender,
		BirthWeight:        input.BirthWeight,
		BirthComplications: input.BirthComplications,
	})
	if err != nil {
		if errors.Is(err, domain.ErrChildNotFound) {
			return nil, domain.ErrChildNotFound
		}
		return nil, fmt.Errorf("update child: %w", err)
	}
	return child, nil
}

// Delete removes an owned child and returns the child's name.
func (u *ChildUsecase) Delete(ctx context.Context, childID, userID string) (string, error) {
	name, err := u.children.Delete(ctx, childID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrChildNotFound) {
			return "", domain.ErrChildNotFound
		}
		return "", fmt.Errorf("delete child: %w", err)
	}
	return name, nil
}
