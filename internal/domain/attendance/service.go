package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// ClockIn opens today's attendance session for the authenticated employee
	ClockIn(ctx context.Context, employeeID string) (Response, error)

	// ClockOut closes the employee's open session
	ClockOut(ctx context.Context, employeeID string) (Response, error)

	// GetMyAttendance retrieves records for the authenticated employee
	GetMyAttendance(ctx context.Context, employeeID string, from, to time.Time) ([]Response, error)

	// ListAttendance retrieves attendance records with filters (admin)
	ListAttendance(ctx context.Context, filter Filter) (ListResponse, error)

	// CorrectAttendance lets an admin fix clock times or status; the record
	// keeps a marker distinguishing it from engine-derived data
	CorrectAttendance(ctx context.Context, req CorrectionRequest) (Response, error)

	// AutoClockOut closes every open session for elapsed days at the
	// configured time. Idempotent; safe to run alongside live clock-outs.
	AutoClockOut(ctx context.Context, now time.Time) (int, error)

	// FillDayStatuses inserts holiday / weekly-off / leave / absent records
	// for elapsed days where employees never clocked in. Idempotent.
	FillDayStatuses(ctx context.Context, day time.Time) (int, error)
}
