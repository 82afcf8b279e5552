package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vaxcare/vaxcare-backend/internal/domain"
)

type DriveRepository struct {
	pool *pgxpool.Pool
}

func NewDriveRepository(pool *pgxpool.Pool) *DriveRepository {
	return &DriveRepository{pool: pool}
}

const driveColumns = `id, title, description, drive_type, location, address,
	drive_date, start_time, end_time, organizer, contact_info, is_active,
	created_at, updated_at`

func (r *DriveRepository) List(ctx context.Context, f domain.DriveFilter) ([]*domain.Drive, error) {
	query := `SELECT ` + driveColumns + ` FROM vaccine_drives WHERE is_active = true`
	var args []any

	if f.Location != "" {
		args = append(args, "%"+f.Location+"%")
		n := strconv.Itoa(len(args))
		query += ` AND (location ILIKE $` + n + ` OR address ILIKE $` + n + `)`
	}
	if f.Type != "" {
		args = append(args, f.Type)
		query += ` AND drive_type = $` + strconv.Itoa(len(args))
	}
	if f.UpcomingOnly {
		query += ` AND drive_date >= CURRENT_DATE`
	}
	query += ` ORDER BY drive_date ASC, start_time ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list drives: %w", err)
	}
	defer rows.Close()
	return collectDrives(rows)
}

func (r *DriveRepository) GetByID(ctx context.Context, id string) (*domain.Drive, error) {
	query := `SELECT ` + driveColumns + ` FROM vaccine_drives WHERE id = $1 AND is_active = true`
	return scanDrive(r.pool.QueryRow(ctx, query, id))
}

func (r *DriveRepository) ListByLocation(ctx context.Context, location string, limit int) ([]*domain.Drive, error) {
	query := `
		SELECT ` + driveColumns + `
		FROM vaccine_drives
		WHERE is_active = true
		  AND (location ILIKE $1 OR address ILIKE $1)
		  AND drive_date >= CURRENT_DATE
		ORDER BY drive_date ASC, start_time ASC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, "%"+location+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("list drives by location: %w", err)
	}
	defer rows.Close()
	return collectDrives(rows)
}

func (r *DriveRepository) ListUpcoming(ctx context.Context, days int) ([]*domain.Drive, error) {
	query := `
		SELECT ` + driveColumns + `
		FROM vaccine_drives
		WHERE is_active = true
		  AND drive_date >= CURRENT_DATE
		  AND drive_date <= CURRENT_DATE + $1 * INTERVAL '1 day'
		ORDER BY drive_date ASC, start_time ASC`

	rows, err := r.pool.Query(ctx, query, days)
	if err != nil {
		return nil, fmt.Errorf("list upcoming drives: %w", err)
	}
	defer rows.Close()
	return collectDrives(rows)
}

func (r *DriveRepository) Search(ctx context.Context, q string, limit int) ([]*domain.Drive, error) {
	// Past drives still match but sort after upcoming ones.
	query := `
		SELECT ` + driveColumns + `
		FROM vaccine_drives
		WHERE is_active = true
		  AND (title ILIKE $1 OR description ILIKE $1
		       OR location ILIKE $1 OR organizer ILIKE $1)
		ORDER BY CASE WHEN drive_date >= CURRENT_DATE THEN 0 ELSE 1 END,
		         drive_date ASC, start_time ASC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, "%"+q+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("search drives: %w", err)
	}
	defer rows.Close()
	return collectDrives(rows)
}

func scanDrive(row pgx.Row) (*domain.Drive, error) {
	var d domain.Drive
	err := row.Scan(
		&d.ID, &d.Title, &d.Description, &d.Type, &d.Location, &d.Address,
		&d.Date, &d.StartTime, &d.EndTime, &d.Organizer, &d.ContactInfo,
		&d.IsActive, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDriveNotFound
		}
		return nil, fmt.Errorf("scan drive: %w", err)
	}
	return &d, nil
}

func collectDrives(rows pgx.Rows) ([]*domain.Drive, error) {
	var drives []*domain.Drive
	for rows.Next() {
		d, err := scanDrive(rows)
		if err != nil {
			return nil, err
		}
		drives = append(drives, d)
	}
	return drives, rows.Err()
}
