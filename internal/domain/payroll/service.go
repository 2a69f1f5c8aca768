package payroll

import (
	"context"
)

// PayrollService defines business logic for salary rules and payroll
// generation.
type PayrollService interface {
	// Salary rules
	CreateSalaryRule(ctx context.Context, req CreateSalaryRuleRequest) (SalaryRuleResponse, error)
	GetSalaryRule(ctx context.Context, id string) (SalaryRuleResponse, error)
	ListSalaryRules(ctx context.Context, activeOnly bool) ([]SalaryRuleResponse, error)
	UpdateSalaryRule(ctx context.Context, req UpdateSalaryRuleRequest) (SalaryRuleResponse, error)
	DeactivateSalaryRule(ctx context.Context, id string) error

	// GeneratePayroll computes and persists the payslip for one employee and
	// pay period. Exactly one record may exist per (employee, period);
	// recomputation is rejected with ErrDuplicatePayrollPeriod.
	GeneratePayroll(ctx context.Context, req GeneratePayrollRequest) (PayrollResponse, error)

	GetPayroll(ctx context.Context, id string) (PayrollResponse, error)
	ListPayrolls(ctx context.Context, filter Filter) (ListPayrollResponse, error)

	// MarkPaid finalizes a pending payroll record
	MarkPaid(ctx context.Context, id string, paidBy string) (PayrollResponse, error)
}
