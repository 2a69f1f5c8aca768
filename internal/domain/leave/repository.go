package leave

import (
	"context"
	"time"
)

// LeaveRepository defines data access methods for leave requests.
type LeaveRepository interface {
	// Create creates a new leave request
	Create(ctx context.Context, leave Leave) (Leave, error)

	// GetByID retrieves a leave request by ID
	GetByID(ctx context.Context, id string) (Leave, error)

	// Update updates an existing leave request
	Update(ctx context.Context, leave Leave) error

	// FindApprovedForDate retrieves the approved leave covering the given day
	// for one employee, if any. Returns nil when none covers it.
	FindApprovedForDate(ctx context.Context, employeeID string, date time.Time) (*Leave, error)

	// ListApprovedInRange retrieves approved leaves overlapping the inclusive
	// window for one employee.
	ListApprovedInRange(ctx context.Context, employeeID string, from, to time.Time) ([]Leave, error)

	// HasOverlapping reports whether a pending or approved leave overlaps the
	// window for the employee.
	HasOverlapping(ctx context.Context, employeeID string, from, to time.Time) (bool, error)

	// List retrieves leave requests with filters and pagination
	List(ctx context.Context, filter Filter) ([]Leave, int64, error)
}
