package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryType enum
type SalaryType string

const (
	SalaryTypeHourly  SalaryType = "Hourly"
	SalaryTypeMonthly SalaryType = "Monthly"
	SalaryTypeProject SalaryType = "Project"
)

// LeaveRule controls deductions for unpaid leave days.
type LeaveRule struct {
	Enabled         bool            `json:"enabled"`
	PerDayDeduction decimal.Decimal `json:"per_day_deduction"`
}

// LateRule converts excess lateness into an equivalent number of unpaid days.
type LateRule struct {
	Enabled             bool `json:"enabled"`
	LateDaysThreshold   int  `json:"late_days_threshold"`
	EquivalentLeaveDays int  `json:"equivalent_leave_days"`
}

// SalaryRule is a named, reusable policy describing how pay is computed for
// the employees assigned to it. Rules referenced by paid payroll records are
// never mutated; historical payslips stay as computed.
type SalaryRule struct {
	ID           string
	Title        string
	SalaryType   SalaryType
	Rate         decimal.Decimal
	OvertimeRate decimal.Decimal
	Bonus        decimal.Decimal
	LeaveRule    LeaveRule
	LateRule     LateRule
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Status enum
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// Payroll is the computed payslip for one employee and pay period.
// Immutable once Status is paid.
type Payroll struct {
	ID              string
	EmployeeID      string
	SalaryRuleID    string
	PeriodStart     time.Time
	PeriodEnd       time.Time
	WorkingDays     int
	PresentDays     int
	LateDays        int
	PaidLeaveDays   decimal.Decimal
	UnpaidLeaveDays decimal.Decimal
	BasicPay        decimal.Decimal
	OvertimePay     decimal.Decimal
	Bonus           decimal.Decimal
	LeaveDeduction  decimal.Decimal
	LateDeduction   decimal.Decimal
	NetPayable      decimal.Decimal
	Status          Status
	PaidAt          *time.Time
	PaidBy          *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO
	EmployeeName *string
}
