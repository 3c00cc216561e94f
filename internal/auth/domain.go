package auth

import (
	"time"

	"github.com/solvaders/clubhub/internal/shared"
)

// User represents a stored user account with credentials. The password
// hash never leaves this package.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         shared.Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal strips the credential fields for use outside the package.
func (u *User) Principal() *shared.Principal {
	if u == nil {
		return nil
	}
	return &shared.Principal{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
