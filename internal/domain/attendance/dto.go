package attendance

import (
	"github.com/staffdesk/hr-backoffice/internal/pkg/validator"
)

type Filter struct {
	EmployeeID *string
	Status     *Status
	DateFrom   *string
	DateTo     *string
	Page       int
	Limit      int
}

type CorrectionRequest struct {
	ID           string  `json:"-"`
	ClockInTime  *string `json:"clock_in_time,omitempty"`  // RFC3339
	ClockOutTime *string `json:"clock_out_time,omitempty"` // RFC3339
	Status       *string `json:"status,omitempty"`
}

func (r *CorrectionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "is required"})
	}
	if r.ClockInTime != nil {
		if _, ok := validator.IsValidDateTime(*r.ClockInTime); !ok {
			errs = append(errs, validator.ValidationError{Field: "clock_in_time", Message: "must be an RFC3339 timestamp"})
		}
	}
	if r.ClockOutTime != nil {
		if _, ok := validator.IsValidDateTime(*r.ClockOutTime); !ok {
			errs = append(errs, validator.ValidationError{Field: "clock_out_time", Message: "must be an RFC3339 timestamp"})
		}
	}
	if r.Status != nil && !validator.IsInSlice(*r.Status, []string{
		string(StatusPresent), string(StatusLate), string(StatusAbsent),
		string(StatusLeave), string(StatusGovtHoliday), string(StatusCompanyHoliday),
		string(StatusWeeklyOff),
	}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "is not a valid attendance status"})
	}
	if r.ClockInTime == nil && r.ClockOutTime == nil && r.Status == nil {
		errs = append(errs, validator.ValidationError{Field: "body", Message: "at least one field must be provided"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Response struct {
	ID               string   `json:"id"`
	EmployeeID       string   `json:"employee_id"`
	EmployeeName     *string  `json:"employee_name,omitempty"`
	Date             string   `json:"date"`
	ClockInTime      *string  `json:"clock_in_time"`
	ClockOutTime     *string  `json:"clock_out_time"`
	TotalHours       *float64 `json:"total_hours"`
	LateMinutes      *int     `json:"late_minutes,omitempty"`
	Status           string   `json:"status"`
	AutoClockedOut   bool     `json:"auto_clocked_out"`
	CorrectedByAdmin bool     `json:"corrected_by_admin"`
}

type ListResponse struct {
	TotalCount  int64      `json:"total_count"`
	Page        int        `json:"page"`
	Limit       int        `json:"limit"`
	TotalPages  int        `json:"total_pages"`
	Attendances []Response `json:"attendances"`
}
