package payroll

import "errors"

var (
	ErrSalaryRuleNotFound     = errors.New("salary rule not found")
	ErrSalaryRuleInUse        = errors.New("salary rule is referenced by payroll history and cannot be removed")
	ErrMissingSalaryRule      = errors.New("employee has no active salary rule")
	ErrPayrollNotFound        = errors.New("payroll record not found")
	ErrDuplicatePayrollPeriod = errors.New("payroll already exists for this employee and period")
	ErrPayrollAlreadyPaid     = errors.New("payroll record already paid, cannot modify")
	ErrStaleAttendanceData    = errors.New("period has an open attendance session; run the auto clock-out sweep first")
	ErrInvalidPeriod          = errors.New("invalid payroll period")
	ErrEmployeeNotFound       = errors.New("employee not found")
)
