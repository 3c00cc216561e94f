package rbac

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/solvaders/clubhub/internal/shared"
)

// negative cache marker for "no membership".
const noMembership = "none"

// CachedMemberships wraps a MembershipSource with a short-TTL Redis
// cache. Membership writes must call Invalidate; the TTL bounds how
// long a stale entry can outlive a missed invalidation. Redis outages
// fall through to the source.
type CachedMemberships struct {
	client *redis.Client
	source MembershipSource
	ttl    time.Duration
}

// NewCachedMemberships constructs the cache wrapper.
func NewCachedMemberships(client *redis.Client, source MembershipSource, ttl time.Duration) *CachedMemberships {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &CachedMemberships{client: client, source: source, ttl: ttl}
}

// MemberRole implements MembershipSource.
func (c *CachedMemberships) MemberRole(ctx context.Context, userID, teamID int64) (shared.TeamRole, error) {
	key := membershipKey(userID, teamID)
	if c.client != nil {
		cached, err := c.client.Get(ctx, key).Result()
		if err == nil {
			if cached == noMembership {
				return "", shared.ErrNotFound
			}
			return shared.TeamRole(cached), nil
		}
	}

	role, err := c.source.MemberRole(ctx, userID, teamID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) && c.client != nil {
			_ = c.client.Set(ctx, key, noMembership, c.ttl).Err()
		}
		return "", err
	}
	if c.client != nil {
		_ = c.client.Set(ctx, key, string(role), c.ttl).Err()
	}
	return role, nil
}

// Invalidate drops the cached role for a (user, team) pair.
func (c *CachedMemberships) Invalidate(ctx context.Context, userID, teamID int64) {
	if c.client == nil {
		return
	}
	_ = c.client.Del(ctx, membershipKey(userID, teamID)).Err()
}

func membershipKey(userID, teamID int64) string {
	return fmt.Sprintf("rbac:membership:%d:%d", userID, teamID)
}

var _ MembershipSource = (*CachedMemberships)(nil)
