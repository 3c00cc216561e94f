package users

import (
	"context"
	"strconv"

	"github.com/solvaders/clubhub/internal/auth"
	"github.com/solvaders/clubhub/internal/shared"
)

// Service handles user management business logic. Admin gating happens
// at the routes; the self-or-admin rule for password changes lives here
// because it depends on the target, not just the route.
type Service struct {
	repo   RepositoryPort
	hasher auth.Hasher
	policy auth.PasswordPolicy
	audit  *shared.AuditLogger
}

// NewService builds a Service instance. audit may be nil.
func NewService(repo RepositoryPort, hasher auth.Hasher, policy auth.PasswordPolicy, audit *shared.AuditLogger) *Service {
	return &Service{repo: repo, hasher: hasher, policy: policy, audit: audit}
}

// List returns all users.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// Get returns a single user.
func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// Create adds an account on behalf of an admin.
func (s *Service) Create(ctx context.Context, actor *shared.Principal, req CreateUserRequest) (*User, error) {
	role := shared.Role(req.Role)
	if !role.Valid() {
		return nil, shared.ErrValidation
	}
	if err := s.policy.Validate(req.Password); err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.Create(ctx, req.Name, req.Email, hash, role)
	if err != nil {
		return nil, err
	}
	s.record(ctx, actor, "user.create", user.ID)
	return user, nil
}

// Update rewrites profile fields and the global role.
func (s *Service) Update(ctx context.Context, actor *shared.Principal, id int64, req UpdateUserRequest) (*User, error) {
	role := shared.Role(req.Role)
	if !role.Valid() {
		return nil, shared.ErrValidation
	}
	user, err := s.repo.Update(ctx, id, req.Name, req.Email, role)
	if err != nil {
		return nil, err
	}
	s.record(ctx, actor, "user.update", id)
	return user, nil
}

// UpdatePassword changes the password for the target account. Only the
// account owner or an admin-tier actor may do so.
func (s *Service) UpdatePassword(ctx context.Context, actor *shared.Principal, id int64, password string) error {
	if actor == nil {
		return shared.ErrUnauthenticated
	}
	if actor.ID != id && !actor.Role.AdminTier() {
		return shared.ErrForbidden
	}
	if err := s.policy.Validate(password); err != nil {
		return err
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, id, hash); err != nil {
		return err
	}
	s.record(ctx, actor, "user.password", id)
	return nil
}

// Delete removes an account; memberships cascade.
func (s *Service) Delete(ctx context.Context, actor *shared.Principal, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actor, "user.delete", id)
	return nil
}

func (s *Service) record(ctx context.Context, actor *shared.Principal, action string, entityID int64) {
	if s.audit == nil || actor == nil {
		return
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actor.ID,
		Action:   action,
		Entity:   "user",
		EntityID: strconv.FormatInt(entityID, 10),
	})
}
