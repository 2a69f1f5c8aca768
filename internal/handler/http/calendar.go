package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/staffdesk/hr-backoffice/internal/domain/calendar"
	"github.com/staffdesk/hr-backoffice/internal/handler/http/middleware"
	"github.com/staffdesk/hr-backoffice/internal/handler/http/response"
)

type CalendarHandler interface {
	ResolveDayStatus(w http.ResponseWriter, r *http.Request)

	CreateHoliday(w http.ResponseWriter, r *http.Request)
	ListHolidays(w http.ResponseWriter, r *http.Request)
	DeleteHoliday(w http.ResponseWriter, r *http.Request)
	SyncHolidays(w http.ResponseWriter, r *http.Request)

	GetSchedule(w http.ResponseWriter, r *http.Request)
	UpdateSchedule(w http.ResponseWriter, r *http.Request)

	CreateOverride(w http.ResponseWriter, r *http.Request)
	ListOverrides(w http.ResponseWriter, r *http.Request)
	DeleteOverride(w http.ResponseWriter, r *http.Request)
}

type CalendarHandlerImpl struct {
	calendarService calendar.Service
}

func NewCalendarHandler(calendarService calendar.Service) CalendarHandler {
	return &CalendarHandlerImpl{calendarService: calendarService}
}

// ResolveDayStatus implements CalendarHandler.
func (c *CalendarHandlerImpl) ResolveDayStatus(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		response.BadRequest(w, "Query parameter 'date' must be YYYY-MM-DD", nil)
		return
	}

	status, err := c.calendarService.ResolveDayStatus(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, calendar.DayStatusResponse{
		Date:   dateStr,
		Status: string(status),
	})
}

// CreateHoliday implements CalendarHandler.
func (c *CalendarHandlerImpl) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req calendar.CreateHolidayRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateHoliday decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if employeeID, ok := middleware.EmployeeIDFromContext(r.Context()); ok {
		req.CreatedBy = &employeeID
	}

	holiday, err := c.calendarService.CreateHoliday(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday created successfully", holiday)
}

// ListHolidays implements CalendarHandler.
func (c *CalendarHandlerImpl) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year := time.Now().UTC().Year()
	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			response.BadRequest(w, "Query parameter 'year' must be a number", nil)
			return
		}
		year = parsed
	}

	holidays, err := c.calendarService.ListHolidays(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, holidays)
}

// DeleteHoliday implements CalendarHandler.
func (c *CalendarHandlerImpl) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Holiday ID is required", nil)
		return
	}

	if err := c.calendarService.DeactivateHoliday(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday removed successfully", nil)
}

// SyncHolidays implements CalendarHandler.
func (c *CalendarHandlerImpl) SyncHolidays(w http.ResponseWriter, r *http.Request) {
	year := time.Now().UTC().Year()
	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			response.BadRequest(w, "Query parameter 'year' must be a number", nil)
			return
		}
		year = parsed
	}

	count, err := c.calendarService.SyncHolidays(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holidays synced successfully", map[string]int{"upserted": count})
}

// GetSchedule implements CalendarHandler.
func (c *CalendarHandlerImpl) GetSchedule(w http.ResponseWriter, r *http.Request) {
	schedule, err := c.calendarService.GetSchedule(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, schedule)
}

// UpdateSchedule implements CalendarHandler.
func (c *CalendarHandlerImpl) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	var req calendar.UpdateScheduleRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateSchedule decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	schedule, err := c.calendarService.UpdateSchedule(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Office schedule updated successfully", schedule)
}

// CreateOverride implements CalendarHandler.
func (c *CalendarHandlerImpl) CreateOverride(w http.ResponseWriter, r *http.Request) {
	var req calendar.CreateOverrideRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateOverride decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if employeeID, ok := middleware.EmployeeIDFromContext(r.Context()); ok {
		req.CreatedBy = &employeeID
	}

	override, err := c.calendarService.CreateOverride(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Schedule override created successfully", override)
}

// ListOverrides implements CalendarHandler.
func (c *CalendarHandlerImpl) ListOverrides(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	from := calendar.DayOf(now.AddDate(0, -1, 0))
	to := calendar.DayOf(now.AddDate(1, 0, 0))

	var err error
	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err = time.Parse("2006-01-02", fromStr)
		if err != nil {
			response.BadRequest(w, "Query parameter 'from' must be YYYY-MM-DD", nil)
			return
		}
	}
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		to, err = time.Parse("2006-01-02", toStr)
		if err != nil {
			response.BadRequest(w, "Query parameter 'to' must be YYYY-MM-DD", nil)
			return
		}
	}

	overrides, err := c.calendarService.ListOverrides(r.Context(), from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, overrides)
}

// DeleteOverride implements CalendarHandler.
func (c *CalendarHandlerImpl) DeleteOverride(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Override ID is required", nil)
		return
	}

	if err := c.calendarService.DeactivateOverride(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule override removed successfully", nil)
}
