package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service verifies access tokens issued by the identity provider. This
// service never mints user credentials; it only checks signatures and reads
// the claims the attendance engine needs (user_id, is_admin).
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	UserIDFromContext(ctx context.Context) (string, error)
	IsAdminFromContext(ctx context.Context) bool
}

type JWTService struct {
	secretKey string
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		secretKey: secretKey,
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// UserIDFromContext extracts the user_id claim set by the jwtauth verifier.
func (j *JWTService) UserIDFromContext(ctx context.Context) (string, error) {
	return UserIDFromContext(ctx)
}

func (j *JWTService) IsAdminFromContext(ctx context.Context) bool {
	return IsAdminFromContext(ctx)
}

// UserIDFromContext reads the user_id claim from a verified request context.
func UserIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}

	return userID, nil
}

// IsAdminFromContext reads the is_admin claim; absent or malformed means false.
func IsAdminFromContext(ctx context.Context) bool {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return false
	}

	isAdmin, ok := claims["is_admin"].(bool)
	return ok && isAdmin
}
