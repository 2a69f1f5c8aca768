package employee

import (
	"github.com/staffdesk/hr-backoffice/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	FullName     string  `json:"full_name"`
	Email        string  `json:"email"`
	Code         string  `json:"code"`
	Password     string  `json:"password"`
	Role         string  `json:"role,omitempty"`
	SalaryRuleID *string `json:"salary_rule_id,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email"})
	}
	if !validator.IsValidEmployeeCode(r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "must match NNNN-NNNN"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "must be at least 8 characters"})
	}
	if r.Role != "" && !Role(r.Role).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "must be admin or employee"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID           string  `json:"-"`
	FullName     *string `json:"full_name,omitempty"`
	Email        *string `json:"email,omitempty"`
	Role         *string `json:"role,omitempty"`
	SalaryRuleID *string `json:"salary_rule_id,omitempty"`
}

type Response struct {
	ID           string  `json:"id"`
	FullName     string  `json:"full_name"`
	Email        string  `json:"email"`
	Code         string  `json:"code"`
	Role         string  `json:"role"`
	SalaryRuleID *string `json:"salary_rule_id,omitempty"`
	IsActive     bool    `json:"is_active"`
}
