package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/solvaders/clubhub/internal/shared"
)

// WelcomeMailer enqueues a welcome mail after registration. Delivery is
// best-effort and never fails the request.
type WelcomeMailer interface {
	EnqueueWelcome(ctx context.Context, email, name string) error
}

// Service wraps credential issuance: registration and login. It is the
// only component that creates tokens.
type Service struct {
	repo      Repository
	hasher    Hasher
	codec     *TokenCodec
	policy    PasswordPolicy
	ttl       time.Duration
	mailer    WelcomeMailer
	logger    *slog.Logger
	dummyHash string
}

// NewService constructs a new Service. mailer may be nil.
func NewService(repo Repository, hasher Hasher, codec *TokenCodec, policy PasswordPolicy, ttl time.Duration, mailer WelcomeMailer, logger *slog.Logger) *Service {
	s := &Service{
		repo:   repo,
		hasher: hasher,
		codec:  codec,
		policy: policy,
		ttl:    ttl,
		mailer: mailer,
		logger: logger,
	}
	// Compared against when login hits an unknown email, so both failure
	// paths pay the same bcrypt cost.
	s.dummyHash, _ = hasher.Hash("clubhub-login-filler")
	return s
}

// RegisterInput carries validated registration fields.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     shared.Role
}

// Register creates a new account. Anonymous callers may only register as
// guest or player (player by default); elevated roles require an
// authenticated admin-tier actor.
func (s *Service) Register(ctx context.Context, actor *shared.Principal, in RegisterInput) (*shared.Principal, error) {
	role := in.Role
	if role == "" {
		role = shared.RolePlayer
	}
	if !role.Valid() {
		return nil, shared.ErrValidation
	}
	if role != shared.RoleGuest && role != shared.RolePlayer {
		if actor == nil || !actor.Role.AdminTier() {
			return nil, shared.ErrForbidden
		}
	}
	if err := s.policy.Validate(in.Password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	user := &User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
	}
	id, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id

	if s.mailer != nil {
		if err := s.mailer.EnqueueWelcome(ctx, user.Email, user.Name); err != nil && s.logger != nil {
			s.logger.Warn("enqueue welcome mail", slog.Any("error", err))
		}
	}
	return user.Principal(), nil
}

// LoginResult carries the issued token and the public profile.
type LoginResult struct {
	Token string
	User  *shared.Principal
}

// Login validates credentials and issues a bearer token. Unknown email
// and wrong password are indistinguishable to the caller: same error,
// same bcrypt cost.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, shared.ErrNotFound) {
		s.hasher.Verify(password, s.dummyHash)
		return nil, shared.ErrInvalidCredentials
	}
	if err != nil {
		if s.logger != nil {
			s.logger.Error("find user by email", slog.Any("error", err))
		}
		return nil, err
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, shared.ErrInvalidCredentials
	}
	token, err := s.codec.Issue(user.ID, user.Role, s.ttl)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user.Principal()}, nil
}
