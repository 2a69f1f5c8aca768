package response

import (
	"errors"
	"net/http"

	"github.com/staffdesk/hr-backoffice/internal/domain/attendance"
	"github.com/staffdesk/hr-backoffice/internal/domain/calendar"
	"github.com/staffdesk/hr-backoffice/internal/domain/employee"
	"github.com/staffdesk/hr-backoffice/internal/domain/leave"
	"github.com/staffdesk/hr-backoffice/internal/domain/payroll"
	"github.com/staffdesk/hr-backoffice/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Calendar domain errors
	case errors.Is(err, calendar.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, calendar.ErrHolidayExists):
		Conflict(w, "An active holiday already exists on this date")
	case errors.Is(err, calendar.ErrOverrideNotFound):
		NotFound(w, "Schedule override not found")
	case errors.Is(err, calendar.ErrScheduleNotFound):
		NotFound(w, "Office schedule not found")
	case errors.Is(err, calendar.ErrInvalidDateRange):
		BadRequest(w, "End date must not be before start date", nil)
	case errors.Is(err, calendar.ErrHolidayReferenced):
		Conflict(w, "Holiday is referenced by payroll history")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "You have already clocked in today")
	case errors.Is(err, attendance.ErrNotClockedIn):
		BadRequest(w, "You have not clocked in yet", nil)
	case errors.Is(err, attendance.ErrAlreadyClockedOut):
		Conflict(w, "You have already clocked out")
	case errors.Is(err, attendance.ErrNonWorkingDay):
		BadRequest(w, "Cannot clock in on a holiday or weekly off", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrOverlappingLeave):
		Conflict(w, "An approved or pending leave already covers part of this window")
	case errors.Is(err, leave.ErrCannotReviewOwnLeave):
		Forbidden(w, "Cannot review your own leave request")
	case errors.Is(err, leave.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrSalaryRuleNotFound):
		NotFound(w, "Salary rule not found")
	case errors.Is(err, payroll.ErrSalaryRuleInUse):
		Conflict(w, "Salary rule is referenced by payroll history")
	case errors.Is(err, payroll.ErrMissingSalaryRule):
		BadRequest(w, "Employee has no active salary rule", nil)
	case errors.Is(err, payroll.ErrPayrollNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrDuplicatePayrollPeriod):
		Conflict(w, "Payroll already exists for this employee and period")
	case errors.Is(err, payroll.ErrPayrollAlreadyPaid):
		Conflict(w, "Payroll record already paid")
	case errors.Is(err, payroll.ErrStaleAttendanceData):
		Conflict(w, "Period has an open attendance session; run the auto clock-out sweep first")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)
	case errors.Is(err, payroll.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrAdminRequired):
		Forbidden(w, "Admin privilege required")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
