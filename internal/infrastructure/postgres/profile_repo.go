package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vaxcare/vaxcare-backend/internal/domain"
)

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

const profileColumns = `id, user_id, full_name, date_of_birth, blood_group,
	genetic_conditions, known_allergies, current_symptoms, location,
	created_at, updated_at`

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*domain.HealthProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM user_profiles WHERE user_id = $1`
	return scanProfile(r.pool.QueryRow(ctx, query, userID))
}

func (r *ProfileRepository) Upsert(ctx context.Context, p *domain.HealthProfile) (*domain.HealthProfile, error) {
	query := `
		INSERT INTO user_profiles (
			user_id, full_name, date_of_birth, blood_group,
			genetic_conditions, known_allergies, current_symptoms, location
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			full_name          = EXCLUDED.full_name,
			date_of_birth      = EXCLUDED.date_of_birth,
			blood_group        = EXCLUDED.blood_group,
			genetic_conditions = EXCLUDED.genetic_conditions,
			known_allergies    = EXCLUDED.known_allergies,
			current_symptoms   = EXCLUDED.current_symptoms,
			location           = EXCLUDED.location,
			updated_at         = NOW()
		RETURNING ` + profileColumns

	row := r.pool.QueryRow(ctx, query,
		p.UserID,
		p.FullName,
		p.DateOfBirth,
		p.BloodGroup,
		p.GeneticConditions,
		p.KnownAllergies,
		p.CurrentSymptoms,
		p.Location,
	)
	return scanProfile(row)
}

func (r *ProfileRepository) Delete(ctx context.Context, userID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM user_profiles WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func scanProfile(row pgx.Row) (*domain.HealthProfile, error) {
	var p domain.HealthProfile
	err := row.Scan(
		&p.ID, &p.UserID, &p.FullName, &p.DateOfBirth, &p.BloodGroup,
		&p.GeneticConditions, &p.KnownAllergies, &p.CurrentSymptoms,
		&p.Location, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	return &p, nil
}
