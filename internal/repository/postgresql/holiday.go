package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/staffdesk/hr-backoffice/internal/domain/calendar"
	"github.com/staffdesk/hr-backoffice/internal/pkg/database"
)

type holidayRepository struct {
	db *database.DB
}

// Create implements calendar.HolidayRepository.
func (h *holidayRepository) Create(ctx context.Context, holiday calendar.Holiday) (calendar.Holiday, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		INSERT INTO holidays (title, date, type, source, year, is_active, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		holiday.Title,
		holiday.Date,
		holiday.Type,
		holiday.Source,
		holiday.Date.Year(),
		holiday.IsActive,
		holiday.CreatedBy,
	).Scan(&holiday.ID, &holiday.CreatedAt, &holiday.UpdatedAt)

	if err != nil {
		return calendar.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	holiday.Year = holiday.Date.Year()
	return holiday, nil
}

// GetByID implements calendar.HolidayRepository.
func (h *holidayRepository) GetByID(ctx context.Context, id string) (calendar.Holiday, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		SELECT id, title, date, type, source, year, is_active, created_by, created_at, updated_at
		FROM holidays
		WHERE id = $1
	`

	var holiday calendar.Holiday
	err := q.QueryRow(ctx, query, id).Scan(
		&holiday.ID, &holiday.Title, &holiday.Date, &holiday.Type, &holiday.Source,
		&holiday.Year, &holiday.IsActive, &holiday.CreatedBy, &holiday.CreatedAt, &holiday.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return calendar.Holiday{}, calendar.ErrHolidayNotFound
		}
		return calendar.Holiday{}, fmt.Errorf("failed to get holiday: %w", err)
	}

	return holiday, nil
}

// FindActiveByDate implements calendar.HolidayRepository.
func (h *holidayRepository) FindActiveByDate(ctx context.Context, date time.Time) (*calendar.Holiday, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		SELECT id, title, date, type, source, year, is_active, created_by, created_at, updated_at
		FROM holidays
		WHERE date = $1
		  AND is_active = TRUE
		LIMIT 1
	`

	var holiday calendar.Holiday
	err := q.QueryRow(ctx, query, calendar.DayOf(date)).Scan(
		&holiday.ID, &holiday.Title, &holiday.Date, &holiday.Type, &holiday.Source,
		&holiday.Year, &holiday.IsActive, &holiday.CreatedBy, &holiday.CreatedAt, &holiday.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find holiday by date: %w", err)
	}

	return &holiday, nil
}

// ListByYear implements calendar.HolidayRepository.
func (h *holidayRepository) ListByYear(ctx context.Context, year int, activeOnly bool) ([]calendar.Holiday, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		SELECT id, title, date, type, source, year, is_active, created_by, created_at, updated_at
		FROM holidays
		WHERE year = $1
	`
	if activeOnly {
		query += " AND is_active = TRUE"
	}
	query += " ORDER BY date ASC"

	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer rows.Close()

	var holidays []calendar.Holiday
	for rows.Next() {
		var holiday calendar.Holiday
		err := rows.Scan(
			&holiday.ID, &holiday.Title, &holiday.Date, &holiday.Type, &holiday.Source,
			&holiday.Year, &holiday.IsActive, &holiday.CreatedBy, &holiday.CreatedAt, &holiday.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, holiday)
	}

	return holidays, rows.Err()
}

// Upsert implements calendar.HolidayRepository. The sync sweep re-runs freely;
// an existing row on the same date is retitled and reactivated, never
// duplicated.
func (h *holidayRepository) Upsert(ctx context.Context, holiday calendar.Holiday) (calendar.Holiday, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		INSERT INTO holidays (title, date, type, source, year, is_active, created_by)
		VALUES ($1, $2, $3, $4, $5, TRUE, $6)
		ON CONFLICT (date) DO UPDATE
		SET title = EXCLUDED.title,
		    is_active = TRUE,
		    updated_at = NOW()
		RETURNING id, type, source, is_active, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		holiday.Title,
		holiday.Date,
		holiday.Type,
		holiday.Source,
		holiday.Date.Year(),
		holiday.CreatedBy,
	).Scan(&holiday.ID, &holiday.Type, &holiday.Source, &holiday.IsActive, &holiday.CreatedAt, &holiday.UpdatedAt)

	if err != nil {
		return calendar.Holiday{}, fmt.Errorf("failed to upsert holiday: %w", err)
	}

	holiday.Year = holiday.Date.Year()
	return holiday, nil
}

// IsDateInPaidPayrollPeriod implements calendar.HolidayRepository.
func (h *holidayRepository) IsDateInPaidPayrollPeriod(ctx context.Context, date time.Time) (bool, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM payrolls
			WHERE status = 'paid' AND period_start <= $1 AND period_end >= $1
		)
	`

	var referenced bool
	if err := q.QueryRow(ctx, query, date).Scan(&referenced); err != nil {
		return false, fmt.Errorf("failed to check payroll references: %w", err)
	}

	return referenced, nil
}

// Deactivate implements calendar.HolidayRepository.
func (h *holidayRepository) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, h.db)

	query := `
		UPDATE holidays
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1
	`

	ct, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate holiday: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return calendar.ErrHolidayNotFound
	}

	return nil
}

func NewHolidayRepository(db *database.DB) calendar.HolidayRepository {
	return &holidayRepository{db: db}
}
