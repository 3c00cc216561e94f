package rbac

import (
	"context"
	"errors"
	"log/slog"

	"github.com/solvaders/clubhub/internal/shared"
)

// MembershipSource resolves the team-scoped role a user holds on a
// team. Returns shared.ErrNotFound when no membership exists.
type MembershipSource interface {
	MemberRole(ctx context.Context, userID, teamID int64) (shared.TeamRole, error)
}

// Policy evaluates the two-tier authorization model: a cheap global
// allow-list first, then a team-scoped membership lookup for the
// actions that support it. Global and team roles are independent axes
// and are never conflated.
type Policy struct {
	memberships MembershipSource
	logger      *slog.Logger
}

// NewPolicy constructs a Policy.
func NewPolicy(memberships MembershipSource, logger *slog.Logger) *Policy {
	return &Policy{memberships: memberships, logger: logger}
}

// Authorize decides whether the principal may perform action. teamID is
// the target team for team-scoped actions and zero otherwise. A deny is
// always shared.ErrForbidden; callers must not translate it into
// anything more revealing.
func (p *Policy) Authorize(ctx context.Context, principal *shared.Principal, action Action, teamID int64) error {
	if principal == nil {
		return shared.ErrUnauthenticated
	}
	allowed, known := globalAllow[action]
	if !known {
		return shared.ErrForbidden
	}
	if roleAllowed(allowed, principal.Role) {
		return nil
	}
	if !teamScoped[action] || teamID <= 0 {
		return shared.ErrForbidden
	}

	role, err := p.memberships.MemberRole(ctx, principal.ID, teamID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.ErrForbidden
		}
		if p.logger != nil {
			p.logger.Error("membership lookup", slog.Int64("user", principal.ID), slog.Int64("team", teamID), slog.Any("error", err))
		}
		return err
	}
	if role == shared.TeamRoleCoach {
		return nil
	}
	return shared.ErrForbidden
}
