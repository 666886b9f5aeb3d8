package auth

import (
	"context"

	"github.com/attendly/attendance-backend-go/internal/domain/user"
)

// AuthService defines registration and login for the attendance API.
type AuthService interface {
	// Register creates a new user and issues a token. Duplicate email or
	// employee code fails with the corresponding user domain error.
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)

	// Login verifies credentials and issues a token.
	Login(ctx context.Context, req LoginRequest) (AuthResponse, error)

	// Me returns the authenticated caller's public identity.
	Me(ctx context.Context) (user.PublicUser, error)
}
