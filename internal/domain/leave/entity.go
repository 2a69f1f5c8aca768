package leave

import (
	"time"
)

// PayStatus controls how an approved leave day counts toward pay.
type PayStatus string

const (
	PayStatusPaid     PayStatus = "Paid"
	PayStatusHalfPaid PayStatus = "HalfPaid"
	PayStatusUnpaid   PayStatus = "Unpaid"
)

// Status enum
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

type Leave struct {
	ID         string
	EmployeeID string
	LeaveType  string
	PayStatus  PayStatus
	StartDate  time.Time
	EndDate    time.Time
	TotalDays  int
	Reason     *string
	Status     Status
	ReviewedBy *string
	ReviewedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	EmployeeName *string
}

// PayWeight returns the fraction of a day the leave counts toward pay:
// Paid = 1, HalfPaid = 0.5, Unpaid = 0.
func (p PayStatus) PayWeight() float64 {
	switch p {
	case PayStatusPaid:
		return 1
	case PayStatusHalfPaid:
		return 0.5
	default:
		return 0
	}
}

// Covers reports whether the leave's inclusive window contains the given day.
func (l Leave) Covers(date time.Time) bool {
	return !date.Before(l.StartDate) && !date.After(l.EndDate)
}
