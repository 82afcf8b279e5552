package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vaxcare/vaxcare-backend/internal/domain"
)

type VaccineRepository struct {
	pool *pgxpool.Pool
}

func NewVaccineRepository(pool *pgxpool.Pool) *VaccineRepository {
	return &VaccineRepository{pool: pool}
}

const vaccineColumns = `id, name, recommended_age, recommended_age_weeks,
	description, sequence_order, is_mandatory`

func (r *VaccineRepository) ListSchedule(ctx context.Context) ([]*domain.StandardVaccine, error) {
	query := `SELECT ` + vaccineColumns + ` FROM standard_vaccines ORDER BY sequence_order`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list schedule: %w", err)
	}
	defer rows.Close()
	return collectVaccines(rows)
}

func (r *VaccineRepository) GetVaccine(ctx context.Context, id string) (*domain.StandardVaccine, error) {
	query := `SELECT ` + vaccineColumns + ` FROM standard_vaccines WHERE id = $1`
	return scanVaccine(r.pool.QueryRow(ctx, query, id))
}

const recordSelect = `
	SELECT uv.id, uv.user_id, uv.child_id, uv.vaccine_id, uv.administered_date,
	       uv.healthcare_provider, uv.batch_number, uv.notes,
	       uv.created_at, uv.updated_at,
	       sv.name, sv.description, sv.recommended_age, sv.sequence_order,
	       c.name
	FROM user_vaccines uv
	JOIN standard_vaccines sv ON uv.vaccine_id = sv.id
	LEFT JOIN children c ON uv.child_id = c.id`

func (r *VaccineRepository) ListRecords(ctx context.Context, userID string, childID *string) ([]*domain.VaccineRecord, error) {
	query := recordSelect + `
		WHERE uv.user_id = $1 AND ($2::uuid IS NULL OR uv.child_id = $2)
		ORDER BY uv.administered_date DESC, sv.sequence_order`

	rows, err := r.pool.Query(ctx, query, userID, childID)
	if err != nil {
		return nil, fmt.Errorf("list vaccine records: %w", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

func (r *VaccineRepository) ListChildHistory(ctx context.Context, childID string) ([]*domain.VaccineRecord, error) {
	query := recordSelect + `
		WHERE uv.child_id = $1
		ORDER BY uv.administered_date DESC`

	rows, err := r.pool.Query(ctx, query, childID)
	if err != nil {
		return nil, fmt.Errorf("list child history: %w", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

func (r *VaccineRepository) RecordExists(ctx context.Context, userID, vaccineID string, childID *string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM user_vaccines
			WHERE user_id = $1 AND vaccine_id = $2
			  AND child_id IS NOT DISTINCT FROM $3
		)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, vaccineID, childID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check record exists: %w", err)
	}
	return exists, nil
}

func (r *VaccineRepository) CreateRecord(ctx context.Context, rec *domain.VaccineRecord) (*domain.VaccineRecord, error) {
	query := `
		INSERT INTO user_vaccines (
			user_id, child_id, vaccine_id, administered_date,
			healthcare_provider, batch_number, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	created := *rec
	err := r.pool.QueryRow(ctx, query,
		rec.UserID, rec.ChildID, rec.VaccineID, rec.AdministeredDate,
		rec.HealthcareProvider, rec.BatchNumber, rec.Notes,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create vaccine record: %w", err)
	}
	return &created, nil
}

func (r *VaccineRepository) UpdateRecord(ctx context.Context, rec *domain.VaccineRecord) (*domain.VaccineRecord, error) {
	query := `
		UPDATE user_vaccines
		SET child_id = $1, vaccine_id = $2, administered_date = $3,
		    healthcare_provider = $4, batch_number = $5, notes = $6,
		    updated_at = NOW()
		WHERE id = $7 AND user_id = $8
		RETURNING id, created_at, updated_at`

	updated := *rec
	err := r.pool.QueryRow(ctx, query,
		rec.ChildID, rec.VaccineID, rec.AdministeredDate,
		rec.HealthcareProvider, rec.BatchNumber, rec.Notes,
		rec.ID, rec.UserID,
	).Scan(&updated.ID, &updated.CreatedAt, &updated.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("update vaccine record: %w", err)
	}
	return &updated, nil
}

func (r *VaccineRepository) DeleteRecord(ctx context.Context, recordID, userID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM user_vaccines WHERE id = $1 AND user_id = $2`,
		recordID, userID)
	if err != nil {
		return fmt.Errorf("delete vaccine record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func (r *VaccineRepository) CountRecords(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM user_vaccines WHERE user_id = $1`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

func (r *VaccineRepository) CountMandatory(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM standard_vaccines WHERE is_mandatory = true`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count mandatory: %w", err)
	}
	return n, nil
}

func (r *VaccineRepository) ListCompleted(ctx context.Context, userID string) ([]*domain.StandardVaccine, error) {
	query := `
		SELECT DISTINCT sv.id, sv.name, sv.recommended_age, sv.recommended_age_weeks,
		       sv.description, sv.sequence_order, sv.is_mandatory
		FROM user_vaccines uv
		JOIN standard_vaccines sv ON uv.vaccine_id = sv.id
		WHERE uv.user_id = $1`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list completed: %w", err)
	}
	defer rows.Close()
	return collectVaccines(rows)
}

func (r *VaccineRepository) ListUpcoming(ctx context.Context, userID string, limit int) ([]*domain.StandardVaccine, error) {
	query := `
		SELECT ` + vaccineColumns + `
		FROM standard_vaccines sv
		WHERE sv.is_mandatory = true
		  AND sv.id NOT IN (
			SELECT DISTINCT vaccine_id FROM user_vaccines WHERE user_id = $1
		  )
		ORDER BY sv.sequence_order
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list upcoming: %w", err)
	}
	defer rows.Close()
	return collectVaccines(rows)
}

func (r *VaccineRepository) ListRecent(ctx context.Context, userID string, limit int) ([]*domain.VaccineRecord, error) {
	query := recordSelect + `
		WHERE uv.user_id = $1
		ORDER BY uv.administered_date DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent: %w", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

func scanVaccine(row pgx.Row) (*domain.StandardVaccine, error) {
	var v domain.StandardVaccine
	err := row.Scan(
		&v.ID, &v.Name, &v.RecommendedAge, &v.RecommendedAgeWeeks,
		&v.Description, &v.SequenceOrder, &v.IsMandatory,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVaccineNotFound
		}
		return nil, fmt.Errorf("scan vaccine: %w", err)
	}
	return &v, nil
}

func collectVaccines(rows pgx.Rows) ([]*domain.StandardVaccine, error) {
	var vaccines []*domain.StandardVaccine
	for rows.Next() {
		v, err := scanVaccine(rows)
		if err != nil {
			return nil, err
		}
		vaccines = append(vaccines, v)
	}
	return vaccines, rows.Err()
}

func collectRecords(rows pgx.Rows) ([]*domain.VaccineRecord, error) {
	var records []*domain.VaccineRecord
	for rows.Next() {
		var rec domain.VaccineRecord
		err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.ChildID, &rec.VaccineID, &rec.AdministeredDate,
			&rec.HealthcareProvider, &rec.BatchNumber, &rec.Notes,
			&rec.CreatedAt, &rec.UpdatedAt,
			&rec.VaccineName, &rec.VaccineDescription, &rec.RecommendedAge,
			&rec.SequenceOrder, &rec.ChildName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan vaccine record: %w", err)
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}
