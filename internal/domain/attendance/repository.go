package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create creates a new attendance record
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByID retrieves attendance by ID
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate retrieves the record for one employee on one day.
	// Returns nil when the day has no record yet.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// Update updates an existing attendance record
	Update(ctx context.Context, attendance Attendance) error

	// CloseOpenSession sets clock-out on a record only if it is still open.
	// Returns false when the session was already closed, so the auto
	// clock-out sweep cannot race a genuine clock-out.
	CloseOpenSession(ctx context.Context, id string, clockOut time.Time, totalMinutes int, status Status, auto bool) (bool, error)

	// GetOpenSessionsBefore retrieves records with clock-in and no clock-out
	// for dates strictly before the given day.
	GetOpenSessionsBefore(ctx context.Context, day time.Time) ([]Attendance, error)

	// ListByEmployeeAndRange retrieves an employee's records inside the
	// inclusive date window, oldest first.
	ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error)

	// List retrieves attendance records with filters and pagination
	List(ctx context.Context, filter Filter) ([]Attendance, int64, error)

	// BulkCreate inserts sweep-generated records, skipping (employee, date)
	// pairs that already exist.
	BulkCreate(ctx context.Context, records []Attendance) (int, error)
}
