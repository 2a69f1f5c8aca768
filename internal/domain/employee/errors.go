package employee

import "errors"

// Employee domain errors
var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmailExists      = errors.New("email already registered")
	ErrCodeExists       = errors.New("employee code already exists")
	ErrAdminRequired    = errors.New("admin privilege required")
)
