package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/vaxcare/vaxcare-backend/internal/domain"
	"github.com/vaxcare/vaxcare-backend/internal/repository"
)

const (
	defaultLocationLimit = 10
	defaultSearchLimit   = 20
	upcomingWindowDays   = 30
)

type DriveUsecase struct {
	drives repository.DriveRepository
}

func NewDriveUsecase(drives repository.DriveRepository) *DriveUsecase {
	return &DriveUsecase{drives: drives}
}

func (u *DriveUsecase) List(ctx context.Context, f domain.DriveFilter) ([]*domain.Drive, error) {
	drives, err := u.drives.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list drives: %w", err)
	}
	return drives, nil
}

func (u *DriveUsecase) Get(ctx context.Context, id string) (*domain.Drive, error) {
	drive, err := u.drives.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrDriveNotFound) {
			return nil, domain.ErrDriveNotFound
		}
		return nil, fmt.Errorf("get drive: %w", err)
	}
	return drive, nil
}

func (u *DriveUsecase) ByLocation(ctx context.Context, location string, limit int) ([]*domain.Drive, error) {
	if limit <= 0 {
		limit = defaultLocationLimit
	}
	drives, err := u.drives.ListByLocation(ctx, location, limit)
	if err != nil {
		return nil, fmt.Errorf("list drives by location: %w", err)
	}
	return drives, nil
}

func (u *DriveUsecase) UpcomingMonth(ctx context.Context) ([]*domain.Drive, error) {
	drives, err := u.drives.ListUpcoming(ctx, upcomingWindowDays)
	if err != nil {
		return nil, fmt.Errorf("list upcoming drives: %w", err)
	}
	return drives, nil
}

func (u *DriveUsecase) Search(ctx context.Context, query string, limit int) ([]*domain.Drive, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	drives, err := u.drives.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search drives: %w", err)
	}
	return drives, nil
}
