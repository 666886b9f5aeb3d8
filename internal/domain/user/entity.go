package user

import "time"

type Role string

const (
	RoleManager  Role = "manager"  // Can view team reports and exports
	RoleEmployee Role = "employee" // Regular employee
)

// Valid reports whether r is one of the closed set of roles.
func (r Role) Valid() bool {
	switch r {
	case RoleManager, RoleEmployee:
		return true
	}
	return false
}

type User struct {
	ID           string
	Name         string
	EmployeeCode string
	Email        string
	PasswordHash string
	Role         Role
	Department   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsManager checks if user is a manager
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

// PublicUser is the credential-free projection of a user embedded in API
// responses. EmployeeCode is serialized as employeeId to match the
// presentation layer's contract.
type PublicUser struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	EmployeeCode string `json:"employeeId"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	Department   string `json:"department"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:           u.ID,
		Name:         u.Name,
		EmployeeCode: u.EmployeeCode,
		Email:        u.Email,
		Role:         u.Role,
		Department:   u.Department,
	}
}
