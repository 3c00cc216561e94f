package auth

import (
	"unicode"

	"github.com/solvaders/clubhub/internal/shared"
)

// PasswordPolicy describes the complexity rules applied at registration
// and password change. All enabled rules must pass.
type PasswordPolicy struct {
	MinLength    int
	RequireDigit bool
	RequireUpper bool
	RequireLower bool
}

// Validate checks the password against the policy.
func (p PasswordPolicy) Validate(password string) error {
	if len(password) < p.MinLength {
		return shared.ErrWeakPassword
	}
	var hasDigit, hasUpper, hasLower bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		}
	}
	if p.RequireDigit && !hasDigit {
		return shared.ErrWeakPassword
	}
	if p.RequireUpper && !hasUpper {
		return shared.ErrWeakPassword
	}
	if p.RequireLower && !hasLower {
		return shared.ErrWeakPassword
	}
	return nil
}
