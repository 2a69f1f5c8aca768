package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/staffdesk/hr-backoffice/internal/domain/leave"
	"github.com/staffdesk/hr-backoffice/internal/handler/http/middleware"
	"github.com/staffdesk/hr-backoffice/internal/handler/http/response"
)

type LeaveHandler interface {
	Request(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// Request implements LeaveHandler.
func (l *LeaveHandlerImpl) Request(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := middleware.EmployeeIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req leave.CreateLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Request leave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := l.leaveService.RequestLeave(r.Context(), employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request filed successfully", result)
}

// Approve implements LeaveHandler.
func (l *LeaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	l.review(w, r, l.leaveService.ApproveLeave, "Leave request approved successfully")
}

// Reject implements LeaveHandler.
func (l *LeaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	l.review(w, r, l.leaveService.RejectLeave, "Leave request rejected successfully")
}

func (l *LeaveHandlerImpl) review(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id, reviewerID string) (leave.Response, error), message string) {
	reviewerID, ok := middleware.EmployeeIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave ID is required", nil)
		return
	}

	result, err := fn(r.Context(), id, reviewerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, result)
}

// Get implements LeaveHandler.
func (l *LeaveHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave ID is required", nil)
		return
	}

	result, err := l.leaveService.GetLeave(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements LeaveHandler.
func (l *LeaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := leave.Filter{
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
		status := leave.Status(statusStr)
		filter.Status = &status
	}
	if from := r.URL.Query().Get("from"); from != "" {
		filter.DateFrom = &from
	}
	if to := r.URL.Query().Get("to"); to != "" {
		filter.DateTo = &to
	}

	result, err := l.leaveService.ListLeaves(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Leaves, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}
