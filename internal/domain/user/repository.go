package user

import "context"

// UserRepository defines data access methods for user identities.
type UserRepository interface {
	// Create creates a new user. Returns ErrEmailExists or
	// ErrEmployeeCodeExists when the corresponding unique constraint is hit.
	Create(ctx context.Context, u User) (User, error)

	// GetByID retrieves a user by ID. Returns ErrUserNotFound when missing.
	GetByID(ctx context.Context, id string) (User, error)

	// GetByEmail retrieves a user by login email. Returns ErrUserNotFound
	// when missing.
	GetByEmail(ctx context.Context, email string) (User, error)

	// ListByRole retrieves all users with the given role.
	ListByRole(ctx context.Context, role Role) ([]User, error)

	// CountByRole counts users with the given role.
	CountByRole(ctx context.Context, role Role) (int64, error)
}
