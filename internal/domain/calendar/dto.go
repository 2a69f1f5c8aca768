package calendar

import (
	"github.com/staffdesk/hr-backoffice/internal/pkg/validator"
)

type CreateHolidayRequest struct {
	Title     string  `json:"title"`
	Date      string  `json:"date"` // "2006-01-02"
	Type      string  `json:"type"` // "GOVT" or "COMPANY"
	CreatedBy *string `json:"-"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	if r.Type != string(HolidayTypeGovt) && r.Type != string(HolidayTypeCompany) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be 'GOVT' or 'COMPANY'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HolidayResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	Type     string `json:"type"`
	Source   string `json:"source"`
	Year     int    `json:"year"`
	IsActive bool   `json:"is_active"`
}

type UpdateScheduleRequest struct {
	WeeklyOffDays []string `json:"weekly_off_days"`
}

func (r *UpdateScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.WeeklyOffDays) == 0 {
		errs = append(errs, validator.ValidationError{Field: "weekly_off_days", Message: "is required"})
	}
	if len(r.WeeklyOffDays) > 6 {
		errs = append(errs, validator.ValidationError{Field: "weekly_off_days", Message: "must leave at least one working day"})
	}
	for _, day := range r.WeeklyOffDays {
		if !validator.IsValidWeekday(day) {
			errs = append(errs, validator.ValidationError{Field: "weekly_off_days", Message: "contains an invalid weekday name: " + day})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ScheduleResponse struct {
	ID            string   `json:"id"`
	WeeklyOffDays []string `json:"weekly_off_days"`
	IsActive      bool     `json:"is_active"`
}

type CreateOverrideRequest struct {
	StartDate     string   `json:"start_date"` // "2006-01-02"
	EndDate       string   `json:"end_date"`   // "2006-01-02", inclusive
	WeeklyOffDays []string `json:"weekly_off_days"`
	CreatedBy     *string  `json:"-"`
}

func (r *CreateOverrideRequest) Validate() error {
	var errs validator.ValidationErrors

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
	for _, day := range r.WeeklyOffDays {
		if !validator.IsValidWeekday(day) {
			errs = append(errs, validator.ValidationError{Field: "weekly_off_days", Message: "contains an invalid weekday name: " + day})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type OverrideResponse struct {
	ID            string   `json:"id"`
	StartDate     string   `json:"start_date"`
	EndDate       string   `json:"end_date"`
	WeeklyOffDays []string `json:"weekly_off_days"`
	IsActive      bool     `json:"is_active"`
}

type DayStatusResponse struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}
