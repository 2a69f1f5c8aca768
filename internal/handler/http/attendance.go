package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/staffdesk/hr-backoffice/internal/domain/attendance"
	"github.com/staffdesk/hr-backoffice/internal/domain/calendar"
	"github.com/staffdesk/hr-backoffice/internal/handler/http/middleware"
	"github.com/staffdesk/hr-backoffice/internal/handler/http/response"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Correct(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// ClockIn implements AttendanceHandler.
func (a *AttendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := middleware.EmployeeIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	result, err := a.attendanceService.ClockIn(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked in successfully", result)
}

// ClockOut implements AttendanceHandler.
func (a *AttendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := middleware.EmployeeIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	result, err := a.attendanceService.ClockOut(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked out successfully", result)
}

// GetMyAttendance implements AttendanceHandler.
func (a *AttendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := middleware.EmployeeIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	now := time.Now().UTC()
	from := calendar.DayOf(now).AddDate(0, -1, 0)
	to := calendar.DayOf(now)

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

	records, err := a.attendanceService.GetMyAttendance(r.Context(), employeeID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// List implements AttendanceHandler.
func (a *AttendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := attendance.Filter{
		Page:  1,
		Limit: 20,
	}

	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && page > 0 {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		status := attendance.Status(statusStr)
		filter.Status = &status
	}
	if from := r.URL.Query().Get("from"); from != "" {
		filter.DateFrom = &from
	}
	if to := r.URL.Query().Get("to"); to != "" {
		filter.DateTo = &to
	}

	result, err := a.attendanceService.ListAttendance(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Attendances, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// Correct implements AttendanceHandler.
func (a *AttendanceHandlerImpl) Correct(w http.ResponseWriter, r *http.Request) {
	var req attendance.CorrectionRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Correct decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	req.ID = chi.URLParam(r, "id")

	result, err := a.attendanceService.CorrectAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance corrected successfully", result)
}
