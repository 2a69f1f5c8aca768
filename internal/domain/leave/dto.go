package leave

import (
	"github.com/staffdesk/hr-backoffice/internal/pkg/validator"
)

type CreateLeaveRequest struct {
	LeaveType string  `json:"leave_type"`
	PayStatus string  `json:"pay_status"` // "Paid", "HalfPaid", "Unpaid"
	StartDate string  `json:"start_date"` // "2006-01-02"
	EndDate   string  `json:"end_date"`   // "2006-01-02", inclusive
	Reason    *string `json:"reason,omitempty"`
}

func (r *CreateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{Field: "leave_type", Message: "is required"})
	}
	if !validator.IsInSlice(r.PayStatus, []string{
		string(PayStatusPaid), string(PayStatusHalfPaid), string(PayStatusUnpaid),
	}) {
		errs = append(errs, validator.ValidationError{Field: "pay_status", Message: "must be 'Paid', 'HalfPaid' or 'Unpaid'"})
	}
	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Filter struct {
	EmployeeID *string
	Status     *Status
	DateFrom   *string
	DateTo     *string
	Page       int
	Limit      int
}

type Response struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	LeaveType    string  `json:"leave_type"`
	PayStatus    string  `json:"pay_status"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	TotalDays    int     `json:"total_days"`
	Reason       *string `json:"reason,omitempty"`
	Status       string  `json:"status"`
	ReviewedBy   *string `json:"reviewed_by,omitempty"`
}

type ListResponse struct {
	TotalCount int64      `json:"total_count"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"total_pages"`
	Leaves     []Response `json:"leaves"`
}
