package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/staffdesk/hr-backoffice/internal/domain/payroll"
	"github.com/staffdesk/hr-backoffice/internal/handler/http/middleware"
	"github.com/staffdesk/hr-backoffice/internal/handler/http/response"
)

type PayrollHandler interface {
	CreateSalaryRule(w http.ResponseWriter, r *http.Request)
	GetSalaryRule(w http.ResponseWriter, r *http.Request)
	ListSalaryRules(w http.ResponseWriter, r *http.Request)
	UpdateSalaryRule(w http.ResponseWriter, r *http.Request)
	DeactivateSalaryRule(w http.ResponseWriter, r *http.Request)
	Generate(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}

// CreateSalaryRule implements PayrollHandler.
func (p *PayrollHandlerImpl) CreateSalaryRule(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateSalaryRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create salary rule decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := p.payrollService.CreateSalaryRule(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary rule created successfully", result)
}

// GetSalaryRule implements PayrollHandler.
func (p *PayrollHandlerImpl) GetSalaryRule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Salary rule ID is required", nil)
		return
	}

	result, err := p.payrollService.GetSalaryRule(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListSalaryRules implements PayrollHandler.
func (p *PayrollHandlerImpl) ListSalaryRules(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active_only") == "true"

	result, err := p.payrollService.ListSalaryRules(r.Context(), activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateSalaryRule implements PayrollHandler.
func (p *PayrollHandlerImpl) UpdateSalaryRule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Salary rule ID is required", nil)
		return
	}

	var req payroll.UpdateSalaryRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update salary rule decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	result, err := p.payrollService.UpdateSalaryRule(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary rule updated successfully", result)
}

// DeactivateSalaryRule implements PayrollHandler.
func (p *PayrollHandlerImpl) DeactivateSalaryRule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Salary rule ID is required", nil)
		return
	}

	if err := p.payrollService.DeactivateSalaryRule(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary rule deactivated successfully", nil)
}

// Generate implements PayrollHandler.
func (p *PayrollHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req payroll.GeneratePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Generate payroll decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := p.payrollService.GeneratePayroll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll generated successfully", result)
}

// Get implements PayrollHandler.
func (p *PayrollHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payroll ID is required", nil)
		return
	}

	result, err := p.payrollService.GetPayroll(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements PayrollHandler.
func (p *PayrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := payroll.Filter{
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
		status := payroll.Status(statusStr)
		filter.Status = &status
	}

	result, err := p.payrollService.ListPayrolls(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Payrolls, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// MarkPaid implements PayrollHandler.
func (p *PayrollHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	paidBy, ok := middleware.EmployeeIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payroll ID is required", nil)
		return
	}

	result, err := p.payrollService.MarkPaid(r.Context(), id, paidBy)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll marked as paid", result)
}
