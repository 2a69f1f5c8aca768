package employee

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/staffdesk/hr-backoffice/internal/domain/employee"
	"github.com/staffdesk/hr-backoffice/internal/domain/payroll"
	"github.com/staffdesk/hr-backoffice/internal/pkg/validator"
)

type EmployeeServiceImpl struct {
	employeeRepo   employee.EmployeeRepository
	salaryRuleRepo payroll.SalaryRuleRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository, salaryRuleRepo payroll.SalaryRuleRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo:   employeeRepo,
		salaryRuleRepo: salaryRuleRepo,
	}
}

// CreateEmployee implements employee.EmployeeService.
func (e *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Response, error) {
	if err := req.Validate(); err != nil {
		return employee.Response{}, err
	}

	if req.SalaryRuleID != nil {
		if err := e.checkSalaryRule(ctx, *req.SalaryRuleID); err != nil {
			return employee.Response{}, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return employee.Response{}, fmt.Errorf("failed to hash password: %w", err)
	}

	role := employee.Role(req.Role)
	if req.Role == "" {
		role = employee.RoleEmployee
	}

	data := employee.Employee{
		FullName:     req.FullName,
		Email:        req.Email,
		Code:         req.Code,
		PasswordHash: string(hash),
		Role:         role,
		SalaryRuleID: req.SalaryRuleID,
		IsActive:     true,
	}

	created, err := e.employeeRepo.Create(ctx, data)
	if err != nil {
		return employee.Response{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return mapEmployeeToResponse(created), nil
}

// GetEmployee implements employee.EmployeeService.
func (e *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.Response, error) {
	data, err := e.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Response{}, employee.ErrEmployeeNotFound
		}
		return employee.Response{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return mapEmployeeToResponse(data), nil
}

// ListEmployees implements employee.EmployeeService.
func (e *EmployeeServiceImpl) ListEmployees(ctx context.Context) ([]employee.Response, error) {
	employees, err := e.employeeRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.Response, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, mapEmployeeToResponse(emp))
	}
	return responses, nil
}

// UpdateEmployee implements employee.EmployeeService.
func (e *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.Response, error) {
	data, err := e.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Response{}, employee.ErrEmployeeNotFound
		}
		return employee.Response{}, fmt.Errorf("failed to get employee: %w", err)
	}

	if req.FullName != nil {
		data.FullName = *req.FullName
	}
	if req.Email != nil {
		if !validator.IsValidEmail(*req.Email) {
			return employee.Response{}, validator.ValidationErrors{
				{Field: "email", Message: "must be a valid email"},
			}
		}
		data.Email = *req.Email
	}
	if req.Role != nil {
		if !employee.Role(*req.Role).IsValid() {
			return employee.Response{}, validator.ValidationErrors{
				{Field: "role", Message: "must be admin or employee"},
			}
		}
		data.Role = employee.Role(*req.Role)
	}
	if req.SalaryRuleID != nil {
		if err := e.checkSalaryRule(ctx, *req.SalaryRuleID); err != nil {
			return employee.Response{}, err
		}
		data.SalaryRuleID = req.SalaryRuleID
	}

	if err := e.employeeRepo.Update(ctx, data); err != nil {
		return employee.Response{}, fmt.Errorf("failed to update employee: %w", err)
	}

	return mapEmployeeToResponse(data), nil
}

// DeactivateEmployee implements employee.EmployeeService.
func (e *EmployeeServiceImpl) DeactivateEmployee(ctx context.Context, id string) error {
	if _, err := e.employeeRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to get employee: %w", err)
	}

	if err := e.employeeRepo.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("failed to deactivate employee: %w", err)
	}
	return nil
}

func (e *EmployeeServiceImpl) checkSalaryRule(ctx context.Context, id string) error {
	rule, err := e.salaryRuleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, payroll.ErrSalaryRuleNotFound) {
			return payroll.ErrSalaryRuleNotFound
		}
		return fmt.Errorf("failed to get salary rule: %w", err)
	}
	if !rule.IsActive {
		return payroll.ErrSalaryRuleNotFound
	}
	return nil
}

// mapEmployeeToResponse converts an Employee entity to Response
func mapEmployeeToResponse(data employee.Employee) employee.Response {
	return employee.Response{
		ID:           data.ID,
		FullName:     data.FullName,
		Email:        data.Email,
		Code:         data.Code,
		Role:         string(data.Role),
		SalaryRuleID: data.SalaryRuleID,
		IsActive:     data.IsActive,
	}
}
