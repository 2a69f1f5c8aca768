package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/staffdesk/hr-backoffice/internal/domain/calendar"
	"github.com/staffdesk/hr-backoffice/internal/pkg/database"
)

type scheduleRepository struct {
	db *database.DB
}

// GetActiveSchedule implements calendar.ScheduleRepository.
func (s *scheduleRepository) GetActiveSchedule(ctx context.Context) (calendar.OfficeSchedule, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, weekly_off_days, is_active, created_at, updated_at
		FROM office_schedules
		WHERE is_active = TRUE
		LIMIT 1
	`

	var schedule calendar.OfficeSchedule
	err := q.QueryRow(ctx, query).Scan(
		&schedule.ID, &schedule.WeeklyOffDays, &schedule.IsActive, &schedule.CreatedAt, &schedule.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return calendar.OfficeSchedule{}, calendar.ErrScheduleNotFound
		}
		return calendar.OfficeSchedule{}, fmt.Errorf("failed to get active schedule: %w", err)
	}

	return schedule, nil
}

// EnsureDefaultSchedule implements calendar.ScheduleRepository. The partial
// unique index on is_active makes the insert a no-op when an active row
// already exists, so concurrent first calls produce exactly one schedule.
func (s *scheduleRepository) EnsureDefaultSchedule(ctx context.Context) (calendar.OfficeSchedule, error) {
	q := GetQuerier(ctx, s.db)

	insert := `
		INSERT INTO office_schedules (weekly_off_days, is_active)
		VALUES ($1, TRUE)
		ON CONFLICT (is_active) WHERE is_active DO NOTHING
	`

	if _, err := q.Exec(ctx, insert, calendar.DefaultWeeklyOffDays()); err != nil {
		return calendar.OfficeSchedule{}, fmt.Errorf("failed to materialize default schedule: %w", err)
	}

	return s.GetActiveSchedule(ctx)
}

// UpdateActiveSchedule implements calendar.ScheduleRepository.
func (s *scheduleRepository) UpdateActiveSchedule(ctx context.Context, weeklyOffDays []string) (calendar.OfficeSchedule, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		UPDATE office_schedules
		SET weekly_off_days = $1, updated_at = NOW()
		WHERE is_active = TRUE
		RETURNING id, weekly_off_days, is_active, created_at, updated_at
	`

	var schedule calendar.OfficeSchedule
	err := q.QueryRow(ctx, query, weeklyOffDays).Scan(
		&schedule.ID, &schedule.WeeklyOffDays, &schedule.IsActive, &schedule.CreatedAt, &schedule.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return calendar.OfficeSchedule{}, calendar.ErrScheduleNotFound
		}
		return calendar.OfficeSchedule{}, fmt.Errorf("failed to update active schedule: %w", err)
	}

	return schedule, nil
}

// CreateOverride implements calendar.ScheduleRepository.
func (s *scheduleRepository) CreateOverride(ctx context.Context, override calendar.OfficeScheduleOverride) (calendar.OfficeScheduleOverride, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO office_schedule_overrides (start_date, end_date, weekly_off_days, is_active, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		override.StartDate,
		override.EndDate,
		override.WeeklyOffDays,
		override.IsActive,
		override.CreatedBy,
	).Scan(&override.ID, &override.CreatedAt, &override.UpdatedAt)

	if err != nil {
		return calendar.OfficeScheduleOverride{}, fmt.Errorf("failed to create schedule override: %w", err)
	}

	return override, nil
}

// FindActiveOverrides implements calendar.ScheduleRepository. Most recently
// created first; the resolver treats that order as its tie-break.
func (s *scheduleRepository) FindActiveOverrides(ctx context.Context, date time.Time) ([]calendar.OfficeScheduleOverride, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, start_date, end_date, weekly_off_days, is_active, created_by, created_at, updated_at
		FROM office_schedule_overrides
		WHERE is_active = TRUE
		  AND start_date <= $1
		  AND end_date >= $1
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, calendar.DayOf(date))
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule overrides: %w", err)
	}
	defer rows.Close()

	return scanOverrides(rows)
}

// ListOverrides implements calendar.ScheduleRepository.
func (s *scheduleRepository) ListOverrides(ctx context.Context, from, to time.Time, activeOnly bool) ([]calendar.OfficeScheduleOverride, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, start_date, end_date, weekly_off_days, is_active, created_by, created_at, updated_at
		FROM office_schedule_overrides
		WHERE start_date <= $2
		  AND end_date >= $1
	`
	if activeOnly {
		query += " AND is_active = TRUE"
	}
	query += " ORDER BY start_date ASC, created_at DESC"

	rows, err := q.Query(ctx, query, calendar.DayOf(from), calendar.DayOf(to))
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule overrides: %w", err)
	}
	defer rows.Close()

	return scanOverrides(rows)
}

// DeactivateOverride implements calendar.ScheduleRepository.
func (s *scheduleRepository) DeactivateOverride(ctx context.Context, id string) error {
	q := GetQuerier(ctx, s.db)

	query := `
		UPDATE office_schedule_overrides
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1
	`

	ct, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate schedule override: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return calendar.ErrOverrideNotFound
	}

	return nil
}

func scanOverrides(rows pgx.Rows) ([]calendar.OfficeScheduleOverride, error) {
	var overrides []calendar.OfficeScheduleOverride
	for rows.Next() {
		var override calendar.OfficeScheduleOverride
		err := rows.Scan(
			&override.ID, &override.StartDate, &override.EndDate, &override.WeeklyOffDays,
			&override.IsActive, &override.CreatedBy, &override.CreatedAt, &override.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule override: %w", err)
		}
		overrides = append(overrides, override)
	}
	return overrides, rows.Err()
}

func NewScheduleRepository(db *database.DB) calendar.ScheduleRepository {
	return &scheduleRepository{db: db}
}
