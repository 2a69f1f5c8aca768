package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/staffdesk/hr-backoffice/internal/handler/http/response"
)

type contextKey string

// EmployeeIDKey carries the authenticated employee's ID through the request
// context.
const EmployeeIDKey contextKey = "employee_id"

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.Unauthorized(w, "Missing or invalid token")
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.Unauthorized(w, "Missing or invalid token")
				return
			}

			employeeID, ok := claims["employee_id"].(string)
			if !ok || employeeID == "" {
				response.Unauthorized(w, "Missing or invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), EmployeeIDKey, employeeID)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// EmployeeIDFromContext returns the authenticated employee's ID, if any.
func EmployeeIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(EmployeeIDKey).(string)
	return id, ok
}
