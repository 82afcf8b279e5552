package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vaxcare/vaxcare-backend/internal/domain"
)

type ChildRepository struct {
	pool *pgxpool.Pool
}

func NewChildRepository(pool *pgxpool.Pool) *ChildRepository {
	return &ChildRepository{pool: pool}
}

// childSelect includes the administered-vaccine count per child.
const childSelect = `
	SELECT c.id, c.user_id, c.name, c.date_of_birth, c.gender, c.birth_weight,
	       c.birth_complications, COUNT(uv.id), c.created_at, c.updated_at
	FROM children c
	LEFT JOIN user_vaccines uv ON c.id = uv.child_id`

const childGroupBy = `
	GROUP BY c.id, c.user_id, c.name, c.date_of_birth, c.gender, c.birth_weight,
	         c.birth_complications, c.created_at, c.updated_at`

func (r *ChildRepository) List(ctx context.Context, userID string) ([]*domain.Child, error) {
	query := childSelect + ` WHERE c.user_id = $1` + childGroupBy + `
		ORDER BY c.created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	defer rows.Close()

	var children []*domain.Child
	for rows.Next() {
		c, err := scanChild(rows)
		if err != nil {
			return nil, err
		}
		children = append(children, c)
	}
	return children, rows.Err()
}

func (r *ChildRepository) GetByID(ctx context.Context, childID, userID string) (*domain.Child, error) {
	query := childSelect + ` WHERE c.id = $1 AND c.user_id = $2` + childGroupBy

	return scanChild(r.pool.QueryRow(ctx, query, childID, userID))
}

func (r *ChildRepository) Create(ctx context.Context, c *domain.Child) (*domain.Child, error) {
	query := `
		INSERT INTO children (user_id, name, date_of_birth, gender, birth_weight, birth_complications)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, name, date_of_birth, gender, birth_weight,
		          birth_complications, 0, created_at, updated_at`

	row := r.pool.QueryRow(ctx, query,
		c.UserID, c.Name, c.DateOfBirth, c.Gender, c.BirthWeight, c.BirthComplications,
	)
	return scanChild(row)
}

func (r *ChildRepository) Update(ctx context.Context, c *domain.Child) (*domain.Child, error) {
	query := `
		UPDATE children
		SET name = $1, date_of_birth = $2, gender = $3,
		    birth_weight = $4, birth_complications = $5, updated_at = NOW()
		WHERE id = $6 AND user_id = $7
		RETURNING id, user_id, name, date_of_birth, gender, birth_weight,
		          birth_complications,
		          (SELECT COUNT(*) FROM user_vaccines uv WHERE uv.child_id = children.id),
		          created_at, updated_at`

	row := r.pool.QueryRow(ctx, query,
		c.Name, c.DateOfBirth, c.Gender, c.BirthWeight, c.BirthComplications,
		c.ID, c.UserID,
	)
	return scanChild(row)
}

func (r *ChildRepository) Delete(ctx context.Context, childID, userID string) (string, error) {
	var name string
	err := r.pool.QueryRow(ctx,
		`DELETE FROM children WHERE id = $1 AND user_id = $2 RETURNING name`,
		childID, userID,
	).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrChildNotFound
		}
		return "", fmt.Errorf("delete child: %w", err)
	}
	return name, nil
}

func scanChild(row pgx.Row) (*domain.Child, error) {
	var c domain.Child
	err := row.Scan(
		&c.ID, &c.UserID, &c.Name, &c.DateOfBirth, &c.Gender, &c.BirthWeight,
		&c.BirthComplications, &c.VaccinesCompleted, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrChildNotFound
		}
		return nil, fmt.Errorf("scan child: %w", err)
	}
	return &c, nil
}
