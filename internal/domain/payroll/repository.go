package payroll

import (
	"context"
	"time"
)

// SalaryRuleRepository defines data access for salary rules.
type SalaryRuleRepository interface {
	Create(ctx context.Context, rule SalaryRule) (SalaryRule, error)
	GetByID(ctx context.Context, id string) (SalaryRule, error)
	List(ctx context.Context, activeOnly bool) ([]SalaryRule, error)
	Update(ctx context.Context, rule SalaryRule) error
	Deactivate(ctx context.Context, id string) error

	// IsReferencedByPaidPayroll reports whether any paid payroll record
	// references the rule.
	IsReferencedByPaidPayroll(ctx context.Context, id string) (bool, error)
}

// PayrollRepository defines data access for payroll records.
type PayrollRepository interface {
	// Create inserts a payroll record. The store enforces a uniqueness
	// constraint on (employee_id, period_start, period_end); a violation is
	// returned as ErrDuplicatePayrollPeriod.
	Create(ctx context.Context, record Payroll) (Payroll, error)

	GetByID(ctx context.Context, id string) (Payroll, error)

	// GetByEmployeeAndPeriod retrieves the record for one employee and
	// period. Returns nil when none exists.
	GetByEmployeeAndPeriod(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) (*Payroll, error)

	List(ctx context.Context, filter Filter) ([]Payroll, int64, error)

	// MarkPaid finalizes a pending record. Fails with ErrPayrollAlreadyPaid
	// when the record is not pending.
	MarkPaid(ctx context.Context, id string, paidBy string, paidAt time.Time) error
}
