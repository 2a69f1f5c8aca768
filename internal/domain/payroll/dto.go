package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/staffdesk/hr-backoffice/internal/pkg/validator"
)

// ========== SALARY RULE DTOs ==========

type CreateSalaryRuleRequest struct {
	Title        string          `json:"title"`
	SalaryType   string          `json:"salary_type"` // "Hourly", "Monthly", "Project"
	Rate         decimal.Decimal `json:"rate"`
	OvertimeRate decimal.Decimal `json:"overtime_rate"`
	Bonus        decimal.Decimal `json:"bonus"`
	LeaveRule    LeaveRule       `json:"leave_rule"`
	LateRule     LateRule        `json:"late_rule"`
}

func (r *CreateSalaryRuleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "is required"})
	}
	if !validator.IsInSlice(r.SalaryType, []string{
		string(SalaryTypeHourly), string(SalaryTypeMonthly), string(SalaryTypeProject),
	}) {
		errs = append(errs, validator.ValidationError{Field: "salary_type", Message: "must be 'Hourly', 'Monthly' or 'Project'"})
	}
	if r.Rate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "rate", Message: "must be non-negative"})
	}
	if r.OvertimeRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "overtime_rate", Message: "must be non-negative"})
	}
	if r.Bonus.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "bonus", Message: "must be non-negative"})
	}
	if r.LeaveRule.Enabled && r.LeaveRule.PerDayDeduction.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "leave_rule.per_day_deduction", Message: "must be non-negative"})
	}
	if r.LateRule.Enabled {
		if r.LateRule.LateDaysThreshold <= 0 {
			errs = append(errs, validator.ValidationError{Field: "late_rule.late_days_threshold", Message: "must be positive"})
		}
		if r.LateRule.EquivalentLeaveDays <= 0 {
			errs = append(errs, validator.ValidationError{Field: "late_rule.equivalent_leave_days", Message: "must be positive"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateSalaryRuleRequest struct {
	ID           string           `json:"-"`
	Title        *string          `json:"title,omitempty"`
	Rate         *decimal.Decimal `json:"rate,omitempty"`
	OvertimeRate *decimal.Decimal `json:"overtime_rate,omitempty"`
	Bonus        *decimal.Decimal `json:"bonus,omitempty"`
	LeaveRule    *LeaveRule       `json:"leave_rule,omitempty"`
	LateRule     *LateRule        `json:"late_rule,omitempty"`
	IsActive     *bool            `json:"is_active,omitempty"`
}

type SalaryRuleResponse struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	SalaryType   string          `json:"salary_type"`
	Rate         decimal.Decimal `json:"rate"`
	OvertimeRate decimal.Decimal `json:"overtime_rate"`
	Bonus        decimal.Decimal `json:"bonus"`
	LeaveRule    LeaveRule       `json:"leave_rule"`
	LateRule     LateRule        `json:"late_rule"`
	IsActive     bool            `json:"is_active"`
}

// ========== PAYROLL DTOs ==========

type GeneratePayrollRequest struct {
	EmployeeID  string `json:"employee_id"`
	PeriodStart string `json:"period_start"` // "2006-01-02"
	PeriodEnd   string `json:"period_end"`   // "2006-01-02", inclusive
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	start, startOK := validator.IsValidDate(r.PeriodStart)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "must be YYYY-MM-DD"})
	}
	end, endOK := validator.IsValidDate(r.PeriodEnd)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must be YYYY-MM-DD"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must not be before period_start"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Filter struct {
	EmployeeID *string
	Status     *Status
	Page       int
	Limit      int
}

type PayrollResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	EmployeeName    *string         `json:"employee_name,omitempty"`
	SalaryRuleID    string          `json:"salary_rule_id"`
	PeriodStart     string          `json:"period_start"`
	PeriodEnd       string          `json:"period_end"`
	WorkingDays     int             `json:"working_days"`
	PresentDays     int             `json:"present_days"`
	LateDays        int             `json:"late_days"`
	PaidLeaveDays   decimal.Decimal `json:"paid_leave_days"`
	UnpaidLeaveDays decimal.Decimal `json:"unpaid_leave_days"`
	BasicPay        decimal.Decimal `json:"basic_pay"`
	OvertimePay     decimal.Decimal `json:"overtime_pay"`
	Bonus           decimal.Decimal `json:"bonus"`
	LeaveDeduction  decimal.Decimal `json:"leave_deduction"`
	LateDeduction   decimal.Decimal `json:"late_deduction"`
	NetPayable      decimal.Decimal `json:"net_payable"`
	Status          string          `json:"status"`
	PaidAt          *string         `json:"paid_at,omitempty"`
}

type ListPayrollResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Payrolls   []PayrollResponse `json:"payrolls"`
}
