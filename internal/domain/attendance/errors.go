package attendance

import "errors"

// Attendance domain errors
var (
	// Clock-in errors
	ErrAlreadyClockedIn  = errors.New("you have already clocked in today")
	ErrNotClockedIn      = errors.New("you have not clocked in yet")
	ErrAlreadyClockedOut = errors.New("you have already clocked out")
	ErrNonWorkingDay     = errors.New("cannot clock in on a holiday or weekly off")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
