package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/staffdesk/hr-backoffice/internal/domain/attendance"
	"github.com/staffdesk/hr-backoffice/internal/domain/calendar"
	"github.com/staffdesk/hr-backoffice/internal/domain/employee"
	"github.com/staffdesk/hr-backoffice/internal/domain/leave"
	"github.com/staffdesk/hr-backoffice/internal/domain/notification"
)

type AttendanceServiceImpl struct {
	attendanceRepo   attendance.AttendanceRepository
	employeeRepo     employee.EmployeeRepository
	leaveRepo        leave.LeaveRepository
	holidayRepo      calendar.HolidayRepository
	calendarSvc      calendar.Service
	sink             notification.Sink
	shift            Shift
	autoClockOutHour int
	autoClockOutMin  int
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	leaveRepo leave.LeaveRepository,
	holidayRepo calendar.HolidayRepository,
	calendarSvc calendar.Service,
	sink notification.Sink,
	shift Shift,
	autoClockOutTime string,
) attendance.AttendanceService {
	t, _ := time.Parse("15:04", autoClockOutTime)
	return &AttendanceServiceImpl{
		attendanceRepo:   attendanceRepo,
		employeeRepo:     employeeRepo,
		leaveRepo:        leaveRepo,
		holidayRepo:      holidayRepo,
		calendarSvc:      calendarSvc,
		sink:             sink,
		shift:            shift,
		autoClockOutHour: t.Hour(),
		autoClockOutMin:  t.Minute(),
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format(time.RFC3339)
	return &format
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, employeeID string) (attendance.Response, error) {
	now := time.Now().UTC()
	today := calendar.DayOf(now)

	existing, err := a.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.Response{}, fmt.Errorf("failed to check today's attendance: %w", err)
	}
	if existing != nil && existing.ClockIn != nil {
		return attendance.Response{}, attendance.ErrAlreadyClockedIn
	}

	dayStatus, err := a.calendarSvc.ResolveDayStatus(ctx, today)
	if err != nil {
		return attendance.Response{}, fmt.Errorf("failed to resolve day status: %w", err)
	}
	if dayStatus != calendar.DayStatusWorkingDay {
		return attendance.Response{}, attendance.ErrNonWorkingDay
	}

	derived := DeriveStatus(DeriveInput{
		DayStatus: dayStatus,
		ClockIn:   &now,
		Shift:     a.shift,
		Now:       now,
	})

	data := attendance.Attendance{
		EmployeeID:  employeeID,
		Date:        today,
		ClockIn:     &now,
		Status:      derived.Status,
		LateMinutes: &derived.LateMinutes,
	}

	created, err := a.attendanceRepo.Create(ctx, data)
	if err != nil {
		return attendance.Response{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return mapAttendanceToResponse(created), nil
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, employeeID string) (attendance.Response, error) {
	now := time.Now().UTC()
	today := calendar.DayOf(now)

	rec, err := a.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.Response{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if rec == nil || rec.ClockIn == nil {
		return attendance.Response{}, attendance.ErrNotClockedIn
	}
	if rec.ClockOut != nil {
		return attendance.Response{}, attendance.ErrAlreadyClockedOut
	}

	derived := DeriveStatus(DeriveInput{
		DayStatus: calendar.DayStatusWorkingDay,
		ClockIn:   rec.ClockIn,
		ClockOut:  &now,
		Shift:     a.shift,
		Now:       now,
	})

	closed, err := a.attendanceRepo.CloseOpenSession(ctx, rec.ID, now, derived.TotalMinutes, derived.Status, false)
	if err != nil {
		return attendance.Response{}, fmt.Errorf("failed to close attendance session: %w", err)
	}
	if !closed {
		return attendance.Response{}, attendance.ErrAlreadyClockedOut
	}

	updated, err := a.attendanceRepo.GetByID(ctx, rec.ID)
	if err != nil {
		return attendance.Response{}, fmt.Errorf("failed to get updated attendance: %w", err)
	}

	return mapAttendanceToResponse(updated), nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Response, error) {
	records, err := a.attendanceRepo.ListByEmployeeAndRange(ctx, employeeID, calendar.DayOf(from), calendar.DayOf(to))
	if err != nil {
		return nil, fmt.Errorf("failed to get my attendance: %w", err)
	}

	responses := make([]attendance.Response, 0, len(records))
	for _, rec := range records {
		responses = append(responses, mapAttendanceToResponse(rec))
	}
	return responses, nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.Filter) (attendance.ListResponse, error) {
	records, total, err := a.attendanceRepo.List(ctx, filter)
	if err != nil {
		return attendance.ListResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	responses := make([]attendance.Response, 0, len(records))
	for _, rec := range records {
		responses = append(responses, mapAttendanceToResponse(rec))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return attendance.ListResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Attendances: responses,
	}, nil
}

// CorrectAttendance implements attendance.AttendanceService.
// Admin corrections are kept distinguishable from engine-derived data.
func (a *AttendanceServiceImpl) CorrectAttendance(ctx context.Context, req attendance.CorrectionRequest) (attendance.Response, error) {
	if err := req.Validate(); err != nil {
		return attendance.Response{}, err
	}

	rec, err := a.attendanceRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.Response{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Response{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	if req.ClockInTime != nil {
		clockIn, _ := time.Parse(time.RFC3339, *req.ClockInTime)
		clockIn = clockIn.UTC()
		rec.ClockIn = &clockIn
	}
	if req.ClockOutTime != nil {
		clockOut, _ := time.Parse(time.RFC3339, *req.ClockOutTime)
		clockOut = clockOut.UTC()
		rec.ClockOut = &clockOut
	}
	if req.Status != nil {
		rec.Status = attendance.Status(*req.Status)
	}

	if rec.ClockIn != nil && rec.ClockOut != nil {
		totalMinutes := int(rec.ClockOut.Sub(*rec.ClockIn).Minutes())
		if totalMinutes < 0 {
			totalMinutes = 0
		}
		rec.TotalMinutes = &totalMinutes
	}

	rec.CorrectedByAdmin = true
	rec.AutoClockedOut = false

	if err := a.attendanceRepo.Update(ctx, rec); err != nil {
		return attendance.Response{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	updated, err := a.attendanceRepo.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.Response{}, fmt.Errorf("failed to get updated attendance: %w", err)
	}

	return mapAttendanceToResponse(updated), nil
}

// AutoClockOut implements attendance.AttendanceService. It only touches
// sessions whose date has fully elapsed and closes them with a conditional
// update, so a concurrent live clock-out always wins. Re-running for an
// already-swept day finds no open sessions and is a no-op.
func (a *AttendanceServiceImpl) AutoClockOut(ctx context.Context, now time.Time) (int, error) {
	today := calendar.DayOf(now.UTC())

	openSessions, err := a.attendanceRepo.GetOpenSessionsBefore(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("failed to get open sessions: %w", err)
	}

	closedCount := 0
	for _, session := range openSessions {
		day := calendar.DayOf(session.Date)
		clockOut := time.Date(day.Year(), day.Month(), day.Day(), a.autoClockOutHour, a.autoClockOutMin, 0, 0, time.UTC)
		if session.ClockIn != nil && clockOut.Before(*session.ClockIn) {
			clockOut = *session.ClockIn
		}

		totalMinutes := 0
		if session.ClockIn != nil {
			totalMinutes = int(clockOut.Sub(*session.ClockIn).Minutes())
		}

		closed, err := a.attendanceRepo.CloseOpenSession(ctx, session.ID, clockOut, totalMinutes, session.Status, true)
		if err != nil {
			slog.Error("failed to auto-close attendance session",
				"attendance_id", session.ID,
				"employee_id", session.EmployeeID,
				"error", err)
			continue
		}
		if !closed {
			// A genuine clock-out landed first.
			continue
		}

		closedCount++
		if a.sink != nil {
			a.sink.Record(ctx, notification.Event{
				Kind:       notification.KindAutoClockOut,
				Message:    fmt.Sprintf("attendance for %s auto-closed at %s", session.Date.Format("2006-01-02"), clockOut.Format("15:04")),
				EmployeeID: &session.EmployeeID,
				Data:       map[string]interface{}{"attendance_id": session.ID},
			})
		}
	}

	if closedCount > 0 {
		slog.Info("auto clock-out sweep closed sessions", "count", closedCount)
	}
	return closedCount, nil
}

// FillDayStatuses implements attendance.AttendanceService. For one elapsed
// day it creates the records employees never produced themselves: holiday,
// weekly off, leave, or absent. Existing records are left alone.
func (a *AttendanceServiceImpl) FillDayStatuses(ctx context.Context, day time.Time) (int, error) {
	day = calendar.DayOf(day)

	dayStatus, err := a.calendarSvc.ResolveDayStatus(ctx, day)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve day status: %w", err)
	}

	var holidayType calendar.HolidayType
	if dayStatus == calendar.DayStatusHoliday {
		holiday, err := a.holidayRepo.FindActiveByDate(ctx, day)
		if err != nil {
			return 0, fmt.Errorf("failed to look up holiday: %w", err)
		}
		if holiday != nil {
			holidayType = holiday.Type
		}
	}

	employees, err := a.employeeRepo.GetActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get active employees: %w", err)
	}

	zero := 0
	var records []attendance.Attendance
	for _, emp := range employees {
		existing, err := a.attendanceRepo.GetByEmployeeAndDate(ctx, emp.ID, day)
		if err != nil {
			slog.Error("failed to check attendance during day-status fill",
				"employee_id", emp.ID, "error", err)
			continue
		}
		if existing != nil {
			continue
		}

		onLeave := false
		if dayStatus == calendar.DayStatusWorkingDay {
			lv, err := a.leaveRepo.FindApprovedForDate(ctx, emp.ID, day)
			if err != nil {
				slog.Error("failed to check leave during day-status fill",
					"employee_id", emp.ID, "error", err)
				continue
			}
			onLeave = lv != nil
		}

		derived := DeriveStatus(DeriveInput{
			DayStatus:       dayStatus,
			HolidayType:     holidayType,
			OnApprovedLeave: onLeave,
			Shift:           a.shift,
		})

		records = append(records, attendance.Attendance{
			EmployeeID:   emp.ID,
			Date:         day,
			Status:       derived.Status,
			TotalMinutes: &zero,
		})
	}

	if len(records) == 0 {
		return 0, nil
	}

	created, err := a.attendanceRepo.BulkCreate(ctx, records)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk create day-status records: %w", err)
	}

	slog.Info("day-status fill created records", "date", day.Format("2006-01-02"), "count", created)
	return created, nil
}

// mapAttendanceToResponse converts an Attendance entity to Response
func mapAttendanceToResponse(rec attendance.Attendance) attendance.Response {
	var totalHours *float64
	if rec.TotalMinutes != nil {
		hours := float64(*rec.TotalMinutes) / 60.0
		totalHours = &hours
	}

	return attendance.Response{
		ID:               rec.ID,
		EmployeeID:       rec.EmployeeID,
		EmployeeName:     rec.EmployeeName,
		Date:             rec.Date.Format("2006-01-02"),
		ClockInTime:      timePtrToString(rec.ClockIn),
		ClockOutTime:     timePtrToString(rec.ClockOut),
		TotalHours:       totalHours,
		LateMinutes:      rec.LateMinutes,
		Status:           string(rec.Status),
		AutoClockedOut:   rec.AutoClockedOut,
		CorrectedByAdmin: rec.CorrectedByAdmin,
	}
}
