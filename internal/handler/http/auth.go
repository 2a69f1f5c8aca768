package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/staffdesk/hr-backoffice/internal/domain/employee"
	"github.com/staffdesk/hr-backoffice/internal/handler/http/response"
	"github.com/staffdesk/hr-backoffice/internal/pkg/jwt"
	"github.com/staffdesk/hr-backoffice/internal/pkg/validator"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	employeeRepo employee.EmployeeRepository
	jwtService   jwt.Service
}

func NewAuthHandler(employeeRepo employee.EmployeeRepository, jwtService jwt.Service) AuthHandler {
	return &AuthHandlerImpl{
		employeeRepo: employeeRepo,
		jwtService:   jwtService,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string            `json:"access_token"`
	ExpiresAt   int64             `json:"expires_at"`
	Employee    employee.Response `json:"employee"`
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if !validator.IsValidEmail(req.Email) || req.Password == "" {
		response.Unauthorized(w, "Invalid email or password")
		return
	}

	emp, err := a.employeeRepo.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			response.Unauthorized(w, "Invalid email or password")
			return
		}
		response.HandleError(w, err)
		return
	}
	if !emp.IsActive {
		response.Unauthorized(w, "Invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.Password)); err != nil {
		response.Unauthorized(w, "Invalid email or password")
		return
	}

	token, expiresAt, err := a.jwtService.GenerateAccessToken(emp.ID, emp.Email, string(emp.Role))
	if err != nil {
		slog.Error("Failed to generate access token", "error", err)
		response.InternalServerError(w, "Failed to generate access token")
		return
	}

	response.Success(w, loginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		Employee: employee.Response{
			ID:           emp.ID,
			FullName:     emp.FullName,
			Email:        emp.Email,
			Code:         emp.Code,
			Role:         string(emp.Role),
			SalaryRuleID: emp.SalaryRuleID,
			IsActive:     emp.IsActive,
		},
	})
}
