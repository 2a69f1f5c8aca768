package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type Service interface {
	// GenerateAccessToken issues a token for an authenticated employee.
	GenerateAccessToken(employeeID string, email string, role string) (token string, expiresAt int64, err error)

	// JWTAuth exposes the verifier used by the HTTP middleware.
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey           string
	tokenExpirationTime string
	tokenAuth           *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, tokenExpirationTime string) Service {
	return &JWTService{
		secretKey:           secretKey,
		tokenExpirationTime: tokenExpirationTime,
		tokenAuth:           jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(employeeID string, email string, role string) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.tokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"employee_id": employeeID,
		"email":       email,
		"role":        role,
		"exp":         expiresAt,
	})
	return tokenString, expiresAt, err
}
