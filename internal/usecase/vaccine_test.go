package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vaxcare/vaxcare-backend/internal/domain"
	"github.com/vaxcare/vaxcare-backend/internal/usecase"
)

type fakeVaccineRepo struct {
	listSchedule  func(ctx context.Context) ([]*domain.StandardVaccine, error)
	getVaccine    func(ctx context.Context, id string) (*domain.StandardVaccine, error)
	listRecords   func(ctx context.Context, userID string, childID *string) ([]*domain.VaccineRecord, error)
	listHistory   func(ctx context.Context, childID string) ([]*domain.VaccineRecord, error)
	recordExists  func(ctx context.Context, userID, vaccineID string, childID *string) (bool, error)
	createRecord  func(ctx context.Context, r *domain.VaccineRecord) (*domain.VaccineRecord, error)
	updateRecord  func(ctx context.Context, r *domain.VaccineRecord) (*domain.VaccineRecord, error)
	deleteRecord  func(ctx context.Context, recordID, userID string) error
	countRecords  func(ctx context.Context, userID string) (int, error)
	countMandat   func(ctx context.Context) (int, error)
	listCompleted func(ctx context.Context, userID string) ([]*domain.StandardVaccine, error)
	listUpcoming  func(ctx context.Context, userID string, limit int) ([]*domain.StandardVaccine, error)
	listRecent    func(ctx context.Context, userID string, limit int) ([]*domain.VaccineRecord, error)
}

func (r *fakeVaccineRepo) ListSchedule(ctx context.Context) ([]*domain.StandardVaccine, error) {
	return r.listSchedule(ctx)
}

func (r *fakeVaccineRepo) GetVaccine(ctx context.Context, id string) (*domain.StandardVaccine, error) {
	return r.getVaccine(ctx, id)
}

func (r *fakeVaccineRepo) ListRecords(ctx context.Context, userID string, childID *string) ([]*domain.VaccineRecord, error) {
	return r.listRecords(ctx, userID, childID)
}

func (r *fakeVaccineRepo) ListChildHistory(ctx context.Context, childID string) ([]*domain.VaccineRecord, error) {
	return r.listHistory(ctx, childID)
}

func (r *fakeVaccineRepo) RecordExists(ctx context.Context, userID, vaccineID string, childID *string) (bool, error) {
	return r.recordExists(ctx, userID, vaccineID, childID)
}

func (r *fakeVaccineRepo) CreateRecord(ctx context.Context, rec *domain.VaccineRecord) (*domain.VaccineRecord, error) {
	return r.createRecord(ctx, rec)
}

func (r *fakeVaccineRepo) UpdateRecord(ctx context.Context, rec *domain.VaccineRecord) (*domain.VaccineRecord, error) {
	return r.updateRecord(ctx, rec)
}

func (r *fakeVaccineRepo) DeleteRecord(ctx context.Context, recordID, userID string) error {
	return r.deleteRecord(ctx, recordID, userID)
}

func (r *fakeVaccineRepo) CountRecords(ctx context.Context, userID string) (int, error) {
	return r.countRecords(ctx, userID)
}

func (r *fakeVaccineRepo) CountMandatory(ctx context.Context) (int, error) {
	return r.countMandat(ctx)
}

func (r *fakeVaccineRepo) ListCompleted(ctx context.Context, userID string) ([]*domain.StandardVaccine, error) {
	return r.listCompleted(ctx, userID)
}

func (r *fakeVaccineRepo) ListUpcoming(ctx context.Context, userID string, limit int) ([]*domain.StandardVaccine, error) {
	return r.listUpcoming(ctx, userID, limit)
}

func (r *fakeVaccineRepo) ListRecent(ctx context.Context, userID string, limit int) ([]*domain.VaccineRecord, error) {
	return r.listRecent(ctx, userID, limit)
}

type fakeChildRepo struct {
	list    func(ctx context.Context, userID string) ([]*domain.Child, error)
	getByID func(ctx context.Context, childID, userID string) (*domain.Child, error)
	create  func(ctx context.Context, c *domain.Child) (*domain.Child, error)
	update  func(ctx context.Context, c *domain.Child) (*domain.Child, error)
	delete  func(ctx context.Context, childID, userID string) (string, error)
}

func (r *fakeChildRepo) List(ctx context.Context, userID string) ([]*domain.Child, error) {
	return r.list(ctx, userID)
}

func (r *fakeChildRepo) GetByID(ctx context.Context, childID, userID string) (*domain.Child, error) {
	return r.getByID(ctx, childID, userID)
}

func (r *fakeChildRepo) Create(ctx context.Context, c *domain.Child) (*domain.Child, error) {
	return r.create(ctx, c)
}

func (r *fakeChildRepo) Update(ctx context.Context, c *domain.Child) (*domain.Child, error) {
	return r.update(ctx, c)
}

func (r *fakeChildRepo) Delete(ctx context.Context, childID, userID string) (string, error) {
	return r.delete(ctx, childID, userID)
}

func bcgVaccine() *domain.StandardVaccine {
	return &domain.StandardVaccine{ID: "vac-1", Name: "BCG", Description: "Tuberculosis", IsMandatory: true}
}

func TestRecord_UnknownVaccine(t *testing.T) {
	vaccines := &fakeVaccineRepo{
		getVaccine: func(_ context.Context, _ string) (*domain.StandardVaccine, error) {
			return nil, domain.ErrVaccineNotFound
		},
	}
	uc := usecase.NewVaccineUsecase(vaccines, &fakeChildRepo{})

	_, err := uc.Record(context.Background(), usecase.RecordInput{UserID: "user-1", VaccineID: "missing"})
	if !errors.Is(err, domain.ErrVaccineNotFound) {
		t.Errorf("err = %v, want ErrVaccineNotFound", err)
	}
}

// A child owned by someone else must surface as not found, not forbidden.
func TestRecord_ForeignChild(t *testing.T) {
	vaccines := &fakeVaccineRepo{
		getVaccine: func(_ context.Context, _ string) (*domain.StandardVaccine, error) {
			return bcgVaccine(), nil
		},
	}
	children := &fakeChildRepo{
		getByID: func(_ context.Context, _, _ string) (*domain.Child, error) {
			return nil, domain.ErrChildNotFound
		},
	}
	uc := usecase.NewVaccineUsecase(vaccines, children)

	childID := "someone-elses-child"
	_, err := uc.Record(context.Background(), usecase.RecordInput{
		UserID:    "user-1",
		ChildID:   &childID,
		VaccineID: "vac-1",
	})
	if !errors.Is(err, domain.ErrChildNotFound) {
		t.Errorf("err = %v, want ErrChildNotFound", err)
	}
}

func TestRecord_Duplicate(t *testing.T) {
	vaccines := &fakeVaccineRepo{
		getVaccine: func(_ context.Context, _ string) (*domain.StandardVaccine, error) {
			return bcgVaccine(), nil
		},
		recordExists: func(_ context.Context, _, _ string, _ *string) (bool, error) {
			return true, nil
		},
	}
	uc := usecase.NewVaccineUsecase(vaccines, &fakeChildRepo{})

	_, err := uc.Record(context.Background(), usecase.RecordInput{UserID: "user-1", VaccineID: "vac-1"})
	if !errors.Is(err, domain.ErrRecordDuplicate) {
		t.Errorf("err = %v, want ErrRecordDuplicate", err)
	}
}

func TestRecord_FillsVaccineDetails(t *testing.T) {
	vaccines := &fakeVaccineRepo{
		getVaccine: func(_ context.Context, _ string) (*domain.StandardVaccine, error) {
			return bcgVaccine(), nil
		},
		recordExists: func(_ context.Context, _, _ string, _ *string) (bool, error) {
			return false, nil
		},
		createRecord: func(_ context.Context, r *domain.VaccineRecord) (*domain.VaccineRecord, error) {
			stored := *r
			stored.ID = "rec-1"
			return &stored, nil
		},
	}
	uc := usecase.NewVaccineUsecase(vaccines, &fakeChildRepo{})

	record, err := uc.Record(context.Background(), usecase.RecordInput{
		UserID:           "user-1",
		VaccineID:        "vac-1",
		AdministeredDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if record.ID != "rec-1" {
		t.Errorf("ID = %q", record.ID)
	}
	if record.VaccineName != "BCG" || record.VaccineDescription != "Tuberculosis" {
		t.Errorf("vaccine details not filled: %q %q", record.VaccineName, record.VaccineDescription)
	}
}

func TestDashboard_Stats(t *testing.T) {
	vaccines := &fakeVaccineRepo{
		countRecords: func(_ context.Context, _ string) (int, error) { return 3, nil },
		countMandat:  func(_ context.Context) (int, error) { return 12, nil },
		listCompleted: func(_ context.Context, _ string) ([]*domain.StandardVaccine, error) {
			return []*domain.StandardVaccine{bcgVaccine()}, nil
		},
		listUpcoming: func(_ context.Context, _ string, _ int) ([]*domain.StandardVaccine, error) {
			return nil, nil
		},
		listRecent: func(_ context.Context, _ string, _ int) ([]*domain.VaccineRecord, error) {
			return nil, nil
		},
	}
	children := &fakeChildRepo{
		list: func(_ context.Context, _ string) ([]*domain.Child, error) {
			return []*domain.Child{{ID: "child-1"}, {ID: "child-2"}}, nil
		},
	}
	uc := usecase.NewVaccineUsecase(vaccines, children)

	dash, err := uc.Dashboard(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if dash.Stats.CompletedVaccines != 3 || dash.Stats.TotalVaccines != 12 {
		t.Errorf("counts = %d/%d", dash.Stats.CompletedVaccines, dash.Stats.TotalVaccines)
	}
	if dash.Stats.UpcomingVaccines != 9 {
		t.Errorf("upcoming = %d, want 9", dash.Stats.UpcomingVaccines)
	}
	if dash.Stats.CompletionPercentage != 25 {
		t.Errorf("percentage = %d, want 25", dash.Stats.CompletionPercentage)
	}
	if dash.Stats.FamilyMembers != 3 {
		t.Errorf("family members = %d, want 3", dash.Stats.FamilyMembers)
	}
}

func TestChildGet_HistoryOnlyAfterOwnershipCheck(t *testing.T) {
	historyCalled := false
	vaccines := &fakeVaccineRepo{
		listHistory: func(_ context.Context, _ string) ([]*domain.VaccineRecord, error) {
			historyCalled = true
			return nil, nil
		},
	}
	children := &fakeChildRepo{
		getByID: func(_ context.Context, _, _ string) (*domain.Child, error) {
			return nil, domain.ErrChildNotFound
		},
	}
	uc := usecase.NewChildUsecase(children, vaccines)

	if _, err := uc.Get(context.Background(), "child-1", "user-1"); !errors.Is(err, domain.ErrChildNotFound) {
		t.Fatalf("err = %v, want ErrChildNotFound", err)
	}
	if historyCalled {
		t.Error("history fetched for a child the caller does not own")
	}
}

func TestChildCreate_ReturnsOnboardingGuidance(t *testing.T) {
	vaccines := &fakeVaccineRepo{
		listSchedule: func(_ context.Context) ([]*domain.StandardVaccine, error) {
			return []*domain.StandardVaccine{
				{ID: "vac-1", SequenceOrder: 1},
				{ID: "vac-2", SequenceOrder: 10},
				{ID: "vac-3", SequenceOrder: 11},
			}, nil
		},
	}
	children := &fakeChildRepo{
		create: func(_ context.Context, c *domain.Child) (*domain.Child, error) {
			stored := *c
			stored.ID = "child-1"
			return &stored, nil
		},
	}
	uc := usecase.NewChildUsecase(children, vaccines)

	result, err := uc.Create(context.Background(), usecase.ChildInput{
		UserID:      "user-1",
		Name:        "Asel",
		DateOfBirth: time.Now().AddDate(0, 0, -21),
		Gender:      domain.GenderFemale,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if result.AgeInWeeks != 3 {
		t.Errorf("age = %d weeks, want 3", result.AgeInWeeks)
	}
	if len(result.UpcomingVaccines) != 2 {
		t.Errorf("upcoming = %d vaccines, want the first 2", len(result.UpcomingVaccines))
	}
	if len(result.Recommendations) == 0 {
		t.Error("no recommendations returned")
	}
}
