package calendar

import "errors"

// Calendar domain errors
var (
	ErrHolidayNotFound   = errors.New("holiday not found")
	ErrHolidayExists     = errors.New("an active holiday already exists on this date")
	ErrOverrideNotFound  = errors.New("schedule override not found")
	ErrScheduleNotFound  = errors.New("office schedule not found")
	ErrInvalidDateRange  = errors.New("end date must not be before start date")
	ErrHolidayReferenced = errors.New("holiday is referenced by payroll history and cannot be removed")
)
