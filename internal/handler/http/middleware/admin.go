package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/staffdesk/hr-backoffice/internal/domain/employee"
	"github.com/staffdesk/hr-backoffice/internal/handler/http/response"
)

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, "Missing or invalid token")
			return
		}

		role, ok := claims["role"].(string)
		if !ok || employee.Role(role) != employee.RoleAdmin {
			response.HandleError(w, employee.ErrAdminRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
