package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/staffdesk/hr-backoffice/internal/domain/calendar"
)

// CalendarJobs syncs public holidays from the external feed. The upsert in
// the calendar service makes re-runs harmless.
type CalendarJobs struct {
	calendarSvc calendar.Service
	interval    time.Duration
}

func NewCalendarJobs(calendarSvc calendar.Service, interval time.Duration) *CalendarJobs {
	return &CalendarJobs{
		calendarSvc: calendarSvc,
		interval:    interval,
	}
}

func (j *CalendarJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("holiday_sync", j.interval, j.SyncHolidays)
}

// SyncHolidays refreshes the current and next calendar year. Next year is
// included so December payroll periods resolve against a complete calendar.
func (j *CalendarJobs) SyncHolidays(ctx context.Context) error {
	now := time.Now().UTC()
	if now.Hour() != 1 {
		return nil
	}

	slog.Info("Cron: Starting holiday sync job")

	total := 0
	for _, year := range []int{now.Year(), now.Year() + 1} {
		count, err := j.calendarSvc.SyncHolidays(ctx, year)
		if err != nil {
			return err
		}
		total += count
	}

	slog.Info("Cron: Holiday sync finished", "upserted", total)
	return nil
}
