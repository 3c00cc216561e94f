package rbac_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solvaders/clubhub/internal/rbac"
	"github.com/solvaders/clubhub/internal/shared"
	_ "github.com/solvaders/clubhub/testing"
)

func newCachedMemberships(t *testing.T, source rbac.MembershipSource) (*rbac.CachedMemberships, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return rbac.NewCachedMemberships(client, source, time.Minute), mr
}

func TestCachedMembershipsHit(t *testing.T) {
	source := &staticMemberships{roles: map[[2]int64]shared.TeamRole{
		{10, 3}: shared.TeamRoleCoach,
	}}
	cache, _ := newCachedMemberships(t, source)
	ctx := context.Background()

	role, err := cache.MemberRole(ctx, 10, 3)
	require.NoError(t, err)
	assert.Equal(t, shared.TeamRoleCoach, role)
	assert.Equal(t, 1, source.calls)

	// Second read is served from the cache.
	role, err = cache.MemberRole(ctx, 10, 3)
	require.NoError(t, err)
	assert.Equal(t, shared.TeamRoleCoach, role)
	assert.Equal(t, 1, source.calls)
}

func TestCachedMembershipsNegativeCaching(t *testing.T) {
	source := &staticMemberships{}
	cache, _ := newCachedMemberships(t, source)
	ctx := context.Background()

	_, err := cache.MemberRole(ctx, 10, 3)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	_, err = cache.MemberRole(ctx, 10, 3)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Equal(t, 1, source.calls, "missing membership should be cached too")
}

func TestCachedMembershipsInvalidate(t *testing.T) {
	source := &staticMemberships{roles: map[[2]int64]shared.TeamRole{
		{10, 3}: shared.TeamRolePlayer,
	}}
	cache, _ := newCachedMemberships(t, source)
	ctx := context.Background()

	role, err := cache.MemberRole(ctx, 10, 3)
	require.NoError(t, err)
	assert.Equal(t, shared.TeamRolePlayer, role)

	// Promote and invalidate; the next read must see the new role.
	source.roles[[2]int64{10, 3}] = shared.TeamRoleCoach
	cache.Invalidate(ctx, 10, 3)

	role, err = cache.MemberRole(ctx, 10, 3)
	require.NoError(t, err)
	assert.Equal(t, shared.TeamRoleCoach, role)
	assert.Equal(t, 2, source.calls)
}

func TestCachedMembershipsTTLExpiry(t *testing.T) {
	source := &staticMemberships{roles: map[[2]int64]shared.TeamRole{
		{10, 3}: shared.TeamRolePlayer,
	}}
	cache, mr := newCachedMemberships(t, source)
	ctx := context.Background()

	_, err := cache.MemberRole(ctx, 10, 3)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = cache.MemberRole(ctx, 10, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, source.calls, "expired entry should fall back to the source")
}

func TestCachedMembershipsRedisOutage(t *testing.T) {
	source := &staticMemberships{roles: map[[2]int64]shared.TeamRole{
		{10, 3}: shared.TeamRoleCoach,
	}}
	cache, mr := newCachedMemberships(t, source)
	mr.Close()

	role, err := cache.MemberRole(context.Background(), 10, 3)
	require.NoError(t, err)
	assert.Equal(t, shared.TeamRoleCoach, role)
}
