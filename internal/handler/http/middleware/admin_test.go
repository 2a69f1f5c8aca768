package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffdesk/hr-backoffice/internal/pkg/jwt"
)

func newAdminTestHandler(ja *jwtauth.JWTAuth) http.Handler {
	var h http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h = AdminOnly(h)
	h = AuthRequired(ja)(h)
	return jwtauth.Verifier(ja)(h)
}

func TestAdminOnly(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret-key-for-jwt", "1h")
	handler := newAdminTestHandler(jwtService.JWTAuth())

	tests := []struct {
		name     string
		role     string
		expected int
	}{
		{name: "admin passes", role: "admin", expected: http.StatusOK},
		{name: "employee forbidden", role: "employee", expected: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, _, err := jwtService.GenerateAccessToken("emp-1", "emp@example.com", tt.role)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}

func TestAdminOnly_MissingToken(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret-key-for-jwt", "1h")
	handler := newAdminTestHandler(jwtService.JWTAuth())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
