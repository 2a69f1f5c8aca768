package notification

import (
	"time"
)

// Kind enum of recorded anomalies and audit events.
type Kind string

const (
	KindOverrideConflict   Kind = "override_conflict"
	KindPayrollConflict    Kind = "payroll_conflict"
	KindAutoClockOut       Kind = "auto_clock_out"
	KindHolidaySyncFailure Kind = "holiday_sync_failure"
)

// Event is an anomaly or audit notice raised by the engines. Recording one
// never influences a computation result.
type Event struct {
	ID         string
	Kind       Kind
	Message    string
	EmployeeID *string
	Data       map[string]interface{}
	CreatedAt  time.Time
}
