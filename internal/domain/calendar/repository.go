package calendar

import (
	"context"
	"time"
)

// HolidayRepository defines data access methods for holiday records.
type HolidayRepository interface {
	// Create creates a new holiday record
	Create(ctx context.Context, holiday Holiday) (Holiday, error)

	// GetByID retrieves a holiday by ID
	GetByID(ctx context.Context, id string) (Holiday, error)

	// FindActiveByDate retrieves the active holiday on the given day, if any.
	// Returns nil when the date has no active holiday.
	FindActiveByDate(ctx context.Context, date time.Time) (*Holiday, error)

	// ListByYear retrieves holidays for a calendar year
	ListByYear(ctx context.Context, year int, activeOnly bool) ([]Holiday, error)

	// Upsert inserts a holiday or reactivates/retitles the existing one on
	// the same date. Used by the holiday sync sweep; idempotent.
	Upsert(ctx context.Context, holiday Holiday) (Holiday, error)

	// IsDateInPaidPayrollPeriod reports whether any paid payroll period
	// covers the given day. Holidays inside paid history are frozen.
	IsDateInPaidPayrollPeriod(ctx context.Context, date time.Time) (bool, error)

	// Deactivate soft-deletes a holiday
	Deactivate(ctx context.Context, id string) error
}

// ScheduleRepository defines data access for the default office schedule and
// its time-bounded overrides.
type ScheduleRepository interface {
	// GetActiveSchedule retrieves the single active default schedule.
	// Returns ErrScheduleNotFound when none has been materialized yet.
	GetActiveSchedule(ctx context.Context) (OfficeSchedule, error)

	// EnsureDefaultSchedule atomically creates the default schedule if no
	// active schedule exists, and returns the active row either way.
	// Concurrent first calls must still produce exactly one active row.
	EnsureDefaultSchedule(ctx context.Context) (OfficeSchedule, error)

	// UpdateActiveSchedule replaces the active schedule's weekly-off days
	UpdateActiveSchedule(ctx context.Context, weeklyOffDays []string) (OfficeSchedule, error)

	// CreateOverride creates a schedule override window
	CreateOverride(ctx context.Context, override OfficeScheduleOverride) (OfficeScheduleOverride, error)

	// FindActiveOverrides retrieves active overrides covering the given day,
	// most recently created first. The order is the resolver's tie-break.
	FindActiveOverrides(ctx context.Context, date time.Time) ([]OfficeScheduleOverride, error)

	// ListOverrides retrieves override windows intersecting [from, to]
	ListOverrides(ctx context.Context, from, to time.Time, activeOnly bool) ([]OfficeScheduleOverride, error)

	// DeactivateOverride soft-deletes an override
	DeactivateOverride(ctx context.Context, id string) error
}
