package employee

import (
	"context"
)

// EmployeeService defines business logic for employee accounts
type EmployeeService interface {
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (Response, error)
	GetEmployee(ctx context.Context, id string) (Response, error)
	ListEmployees(ctx context.Context) ([]Response, error)
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (Response, error)
	DeactivateEmployee(ctx context.Context, id string) error
}
