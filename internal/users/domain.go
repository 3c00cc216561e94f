package users

import (
	"time"

	"github.com/solvaders/clubhub/internal/shared"
)

// User is the management view of an account; it never carries the
// password hash.
type User struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      shared.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
