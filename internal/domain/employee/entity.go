package employee

import (
	"time"
)

type Role string

const (
	RoleAdmin    Role = "admin"    // Manages calendar, payroll and employees
	RoleEmployee Role = "employee" // Regular employee
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

type Employee struct {
	ID           string
	FullName     string
	Email        string
	Code         string
	PasswordHash string
	Role         Role
	SalaryRuleID *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
