package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDuplicateEmail indicates the email is already registered.
	ErrDuplicateEmail = errors.New("duplicate email")
	// ErrDuplicate indicates a uniqueness violation on a resource.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrWeakPassword indicates the password fails the complexity policy.
	ErrWeakPassword = errors.New("weak password")
	// ErrUnauthenticated indicates a missing or invalid bearer token.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrTokenExpired indicates the bearer token expired. Clients get the
	// same 401 status but a distinguishable body so they can prompt a
	// re-login.
	ErrTokenExpired = errors.New("token expired")
	// ErrForbidden indicates an RBAC deny.
	ErrForbidden = errors.New("insufficient permissions")
	// ErrValidation indicates malformed or missing input.
	ErrValidation = errors.New("validation failed")
)
