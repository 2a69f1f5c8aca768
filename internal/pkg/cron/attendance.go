package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/staffdesk/hr-backoffice/internal/domain/attendance"
)

// AttendanceJobs holds the daily attendance maintenance sweeps. Both sweeps
// only touch elapsed days and are idempotent, so the hourly trigger with the
// midnight gate can fire more than once without harm.
type AttendanceJobs struct {
	attendanceSvc attendance.AttendanceService
	interval      time.Duration
}

func NewAttendanceJobs(attendanceSvc attendance.AttendanceService, interval time.Duration) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceSvc: attendanceSvc,
		interval:      interval,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_clock_out", j.interval, j.AutoClockOut)
	scheduler.AddJob("fill_day_statuses", j.interval, j.FillDayStatuses)
}

// AutoClockOut closes sessions left open on elapsed days.
func (j *AttendanceJobs) AutoClockOut(ctx context.Context) error {
	now := time.Now().UTC()
	if now.Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting auto clock-out job")

	count, err := j.attendanceSvc.AutoClockOut(ctx, now)
	if err != nil {
		return err
	}

	slog.Info("Cron: Auto clock-out finished", "closed", count)
	return nil
}

// FillDayStatuses creates yesterday's holiday, weekly-off, leave, and absent
// records for employees without a clock event.
func (j *AttendanceJobs) FillDayStatuses(ctx context.Context) error {
	now := time.Now().UTC()
	if now.Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting day-status fill job")

	yesterday := now.AddDate(0, 0, -1)
	count, err := j.attendanceSvc.FillDayStatuses(ctx, yesterday)
	if err != nil {
		return err
	}

	slog.Info("Cron: Day-status fill finished", "created", count)
	return nil
}
