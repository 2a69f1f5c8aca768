package calendar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/staffdesk/hr-backoffice/internal/domain/calendar"
	"github.com/staffdesk/hr-backoffice/internal/domain/notification"
	"github.com/staffdesk/hr-backoffice/internal/pkg/holidayapi"
)

// lookupTimeout bounds every calendar store fetch so a slow lookup surfaces
// as a failed resolution instead of a hung request.
const lookupTimeout = 5 * time.Second

// HolidayFeed is the external public-holiday source consumed by SyncHolidays.
type HolidayFeed interface {
	PublicHolidays(ctx context.Context, year int) ([]holidayapi.PublicHoliday, error)
}

type CalendarServiceImpl struct {
	holidayRepo  calendar.HolidayRepository
	scheduleRepo calendar.ScheduleRepository
	feed         HolidayFeed
	sink         notification.Sink
}

func NewCalendarService(
	holidayRepo calendar.HolidayRepository,
	scheduleRepo calendar.ScheduleRepository,
	feed HolidayFeed,
	sink notification.Sink,
) calendar.Service {
	return &CalendarServiceImpl{
		holidayRepo:  holidayRepo,
		scheduleRepo: scheduleRepo,
		feed:         feed,
		sink:         sink,
	}
}

// ResolveDayStatus implements calendar.Service.
func (s *CalendarServiceImpl) ResolveDayStatus(ctx context.Context, date time.Time) (calendar.DayStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	day := calendar.DayOf(date)

	holiday, err := s.holidayRepo.FindActiveByDate(ctx, day)
	if err != nil {
		return "", fmt.Errorf("failed to look up holiday: %w", err)
	}

	overrides, err := s.scheduleRepo.FindActiveOverrides(ctx, day)
	if err != nil {
		return "", fmt.Errorf("failed to look up schedule overrides: %w", err)
	}

	schedule, err := s.scheduleRepo.EnsureDefaultSchedule(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load office schedule: %w", err)
	}

	res := ResolveDay(day, holiday, overrides, schedule)
	if res.Ambiguous {
		s.reportAmbiguousOverrides(ctx, day, overrides)
	}

	return res.Status, nil
}

// WorkingDaysBetween implements calendar.Service.
func (s *CalendarServiceImpl) WorkingDaysBetween(ctx context.Context, from, to time.Time) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	start := calendar.DayOf(from)
	end := calendar.DayOf(to)
	if end.Before(start) {
		return 0, calendar.ErrInvalidDateRange
	}

	holidaysByDay := make(map[time.Time]calendar.Holiday)
	for year := start.Year(); year <= end.Year(); year++ {
		holidays, err := s.holidayRepo.ListByYear(ctx, year, true)
		if err != nil {
			return 0, fmt.Errorf("failed to list holidays for %d: %w", year, err)
		}
		for _, h := range holidays {
			holidaysByDay[calendar.DayOf(h.Date)] = h
		}
	}

	overrides, err := s.scheduleRepo.ListOverrides(ctx, start, end, true)
	if err != nil {
		return 0, fmt.Errorf("failed to list schedule overrides: %w", err)
	}

	schedule, err := s.scheduleRepo.EnsureDefaultSchedule(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load office schedule: %w", err)
	}

	count := 0
	ambiguousReported := false
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		var holiday *calendar.Holiday
		if h, ok := holidaysByDay[day]; ok {
			holiday = &h
		}
		res := ResolveDay(day, holiday, overrides, schedule)
		if res.Ambiguous && !ambiguousReported {
			s.reportAmbiguousOverrides(ctx, day, overrides)
			ambiguousReported = true
		}
		if res.Status == calendar.DayStatusWorkingDay {
			count++
		}
	}

	return count, nil
}

func (s *CalendarServiceImpl) reportAmbiguousOverrides(ctx context.Context, day time.Time, overrides []calendar.OfficeScheduleOverride) {
	ids := make([]string, 0, len(overrides))
	for _, o := range overrides {
		ids = append(ids, o.ID)
	}
	slog.Warn("overlapping active schedule overrides with conflicting weekday sets",
		"date", day.Format("2006-01-02"),
		"override_ids", ids)
	if s.sink != nil {
		s.sink.Record(ctx, notification.Event{
			Kind:    notification.KindOverrideConflict,
			Message: fmt.Sprintf("overlapping active overrides cover %s; most recent wins", day.Format("2006-01-02")),
			Data:    map[string]interface{}{"override_ids": ids},
		})
	}
}

// CreateHoliday implements calendar.Service.
func (s *CalendarServiceImpl) CreateHoliday(ctx context.Context, req calendar.CreateHolidayRequest) (calendar.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return calendar.HolidayResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	day := calendar.DayOf(date)

	existing, err := s.holidayRepo.FindActiveByDate(ctx, day)
	if err != nil {
		return calendar.HolidayResponse{}, fmt.Errorf("failed to check existing holiday: %w", err)
	}
	if existing != nil {
		return calendar.HolidayResponse{}, calendar.ErrHolidayExists
	}

	created, err := s.holidayRepo.Create(ctx, calendar.Holiday{
		Title:     req.Title,
		Date:      day,
		Type:      calendar.HolidayType(req.Type),
		Source:    calendar.HolidaySourceAdmin,
		Year:      day.Year(),
		IsActive:  true,
		CreatedBy: req.CreatedBy,
	})
	if err != nil {
		return calendar.HolidayResponse{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	return mapHolidayToResponse(created), nil
}

// ListHolidays implements calendar.Service.
func (s *CalendarServiceImpl) ListHolidays(ctx context.Context, year int) ([]calendar.HolidayResponse, error) {
	holidays, err := s.holidayRepo.ListByYear(ctx, year, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	responses := make([]calendar.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, mapHolidayToResponse(h))
	}
	return responses, nil
}

// DeactivateHoliday implements calendar.Service. Holidays inside a paid
// payroll period are frozen; removing one would rewrite the working-day
// counts that payslip was computed against.
func (s *CalendarServiceImpl) DeactivateHoliday(ctx context.Context, id string) error {
	holiday, err := s.holidayRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, calendar.ErrHolidayNotFound) {
			return calendar.ErrHolidayNotFound
		}
		return fmt.Errorf("failed to get holiday: %w", err)
	}

	referenced, err := s.holidayRepo.IsDateInPaidPayrollPeriod(ctx, calendar.DayOf(holiday.Date))
	if err != nil {
		return fmt.Errorf("failed to check payroll references: %w", err)
	}
	if referenced {
		return calendar.ErrHolidayReferenced
	}

	if err := s.holidayRepo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, calendar.ErrHolidayNotFound) {
			return calendar.ErrHolidayNotFound
		}
		return fmt.Errorf("failed to deactivate holiday: %w", err)
	}
	return nil
}

// GetSchedule implements calendar.Service.
func (s *CalendarServiceImpl) GetSchedule(ctx context.Context) (calendar.ScheduleResponse, error) {
	schedule, err := s.scheduleRepo.EnsureDefaultSchedule(ctx)
	if err != nil {
		return calendar.ScheduleResponse{}, fmt.Errorf("failed to load office schedule: %w", err)
	}
	return mapScheduleToResponse(schedule), nil
}

// UpdateSchedule implements calendar.Service.
func (s *CalendarServiceImpl) UpdateSchedule(ctx context.Context, req calendar.UpdateScheduleRequest) (calendar.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return calendar.ScheduleResponse{}, err
	}

	// Materialize first so there is always a row to update.
	if _, err := s.scheduleRepo.EnsureDefaultSchedule(ctx); err != nil {
		return calendar.ScheduleResponse{}, fmt.Errorf("failed to load office schedule: %w", err)
	}

	updated, err := s.scheduleRepo.UpdateActiveSchedule(ctx, req.WeeklyOffDays)
	if err != nil {
		return calendar.ScheduleResponse{}, fmt.Errorf("failed to update office schedule: %w", err)
	}
	return mapScheduleToResponse(updated), nil
}

// CreateOverride implements calendar.Service.
func (s *CalendarServiceImpl) CreateOverride(ctx context.Context, req calendar.CreateOverrideRequest) (calendar.OverrideResponse, error) {
	if err := req.Validate(); err != nil {
		return calendar.OverrideResponse{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	created, err := s.scheduleRepo.CreateOverride(ctx, calendar.OfficeScheduleOverride{
		StartDate:     calendar.DayOf(start),
		EndDate:       calendar.DayOf(end),
		WeeklyOffDays: req.WeeklyOffDays,
		IsActive:      true,
		CreatedBy:     req.CreatedBy,
	})
	if err != nil {
		return calendar.OverrideResponse{}, fmt.Errorf("failed to create schedule override: %w", err)
	}

	return mapOverrideToResponse(created), nil
}

// ListOverrides implements calendar.Service.
func (s *CalendarServiceImpl) ListOverrides(ctx context.Context, from, to time.Time) ([]calendar.OverrideResponse, error) {
	overrides, err := s.scheduleRepo.ListOverrides(ctx, calendar.DayOf(from), calendar.DayOf(to), false)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule overrides: %w", err)
	}

	responses := make([]calendar.OverrideResponse, 0, len(overrides))
	for _, o := range overrides {
		responses = append(responses, mapOverrideToResponse(o))
	}
	return responses, nil
}

// DeactivateOverride implements calendar.Service.
func (s *CalendarServiceImpl) DeactivateOverride(ctx context.Context, id string) error {
	if err := s.scheduleRepo.DeactivateOverride(ctx, id); err != nil {
		if errors.Is(err, calendar.ErrOverrideNotFound) {
			return calendar.ErrOverrideNotFound
		}
		return fmt.Errorf("failed to deactivate schedule override: %w", err)
	}
	return nil
}

// SyncHolidays implements calendar.Service.
func (s *CalendarServiceImpl) SyncHolidays(ctx context.Context, year int) (int, error) {
	feedHolidays, err := s.feed.PublicHolidays(ctx, year)
	if err != nil {
		if s.sink != nil {
			s.sink.Record(ctx, notification.Event{
				Kind:    notification.KindHolidaySyncFailure,
				Message: fmt.Sprintf("holiday sync for %d failed: %v", year, err),
			})
		}
		return 0, fmt.Errorf("failed to fetch holiday feed: %w", err)
	}

	synced := 0
	for _, fh := range feedHolidays {
		date, err := time.Parse("2006-01-02", fh.Date)
		if err != nil {
			continue
		}
		title := fh.Name
		if fh.LocalName != "" {
			title = fh.LocalName
		}
		_, err = s.holidayRepo.Upsert(ctx, calendar.Holiday{
			Title:    title,
			Date:     calendar.DayOf(date),
			Type:     calendar.HolidayTypeGovt,
			Source:   calendar.HolidaySourceAuto,
			Year:     date.Year(),
			IsActive: true,
		})
		if err != nil {
			return synced, fmt.Errorf("failed to upsert holiday %q: %w", title, err)
		}
		synced++
	}

	slog.Info("holiday sync completed", "year", year, "count", synced)
	return synced, nil
}

// ========== HELPERS ==========

func mapHolidayToResponse(h calendar.Holiday) calendar.HolidayResponse {
	return calendar.HolidayResponse{
		ID:       h.ID,
		Title:    h.Title,
		Date:     h.Date.Format("2006-01-02"),
		Type:     string(h.Type),
		Source:   string(h.Source),
		Year:     h.Year,
		IsActive: h.IsActive,
	}
}

func mapScheduleToResponse(s calendar.OfficeSchedule) calendar.ScheduleResponse {
	return calendar.ScheduleResponse{
		ID:            s.ID,
		WeeklyOffDays: s.WeeklyOffDays,
		IsActive:      s.IsActive,
	}
}

func mapOverrideToResponse(o calendar.OfficeScheduleOverride) calendar.OverrideResponse {
	return calendar.OverrideResponse{
		ID:            o.ID,
		StartDate:     o.StartDate.Format("2006-01-02"),
		EndDate:       o.EndDate.Format("2006-01-02"),
		WeeklyOffDays: o.WeeklyOffDays,
		IsActive:      o.IsActive,
	}
}
