package users_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solvaders/clubhub/internal/auth"
	"github.com/solvaders/clubhub/internal/shared"
	"github.com/solvaders/clubhub/internal/users"
	_ "github.com/solvaders/clubhub/testing"
)

type fakeRepo struct {
	nextID    int64
	users     map[int64]users.User
	passwords map[int64]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, users: map[int64]users.User{}, passwords: map[int64]string{}}
}

func (f *fakeRepo) List(ctx context.Context) ([]users.User, error) {
	var out []users.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id int64) (*users.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &u, nil
}

func (f *fakeRepo) Create(ctx context.Context, name, email, passwordHash string, role shared.Role) (*users.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return nil, shared.ErrDuplicateEmail
		}
	}
	u := users.User{ID: f.nextID, Name: name, Email: email, Role: role}
	f.nextID++
	f.users[u.ID] = u
	f.passwords[u.ID] = passwordHash
	return &u, nil
}

func (f *fakeRepo) Update(ctx context.Context, id int64, name, email string, role shared.Role) (*users.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	u.Name, u.Email, u.Role = name, email, role
	f.users[id] = u
	return &u, nil
}

func (f *fakeRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	if _, ok := f.users[id]; !ok {
		return shared.ErrNotFound
	}
	f.passwords[id] = passwordHash
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return shared.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

var _ users.RepositoryPort = (*fakeRepo)(nil)

func newUsersService(repo users.RepositoryPort) *users.Service {
	policy := auth.PasswordPolicy{MinLength: 8, RequireDigit: true, RequireUpper: true, RequireLower: true}
	return users.NewService(repo, auth.NewHasher(4), policy, nil)
}

func TestCreateHashesPassword(t *testing.T) {
	repo := newFakeRepo()
	svc := newUsersService(repo)

	admin := &shared.Principal{ID: 1, Role: shared.RoleAdmin}
	user, err := svc.Create(context.Background(), admin, users.CreateUserRequest{
		Name:     "Maja Berg",
		Email:    "maja@example.com",
		Password: "Vintern26",
		Role:     "coach",
	})
	require.NoError(t, err)
	assert.Equal(t, shared.RoleCoach, user.Role)
	assert.NotEqual(t, "Vintern26", repo.passwords[user.ID])
	assert.True(t, auth.NewHasher(4).Verify("Vintern26", repo.passwords[user.ID]))
}

func TestCreateRejectsWeakPassword(t *testing.T) {
	svc := newUsersService(newFakeRepo())

	admin := &shared.Principal{ID: 1, Role: shared.RoleAdmin}
	_, err := svc.Create(context.Background(), admin, users.CreateUserRequest{
		Name:     "Maja",
		Email:    "maja@example.com",
		Password: "kort",
		Role:     "player",
	})
	assert.ErrorIs(t, err, shared.ErrWeakPassword)
}

func TestUpdatePasswordSelfOrAdmin(t *testing.T) {
	repo := newFakeRepo()
	svc := newUsersService(repo)
	ctx := context.Background()

	admin := &shared.Principal{ID: 1, Role: shared.RoleAdmin}
	target, err := svc.Create(ctx, admin, users.CreateUserRequest{
		Name: "Erik", Email: "erik@example.com", Password: "Vintern26", Role: "player",
	})
	require.NoError(t, err)

	self := &shared.Principal{ID: target.ID, Role: shared.RolePlayer}
	require.NoError(t, svc.UpdatePassword(ctx, self, target.ID, "Sommaren27"))

	other := &shared.Principal{ID: 99, Role: shared.RolePlayer}
	assert.ErrorIs(t, svc.UpdatePassword(ctx, other, target.ID, "Sommaren27"), shared.ErrForbidden)

	assert.NoError(t, svc.UpdatePassword(ctx, admin, target.ID, "Sommaren28"))

	assert.ErrorIs(t, svc.UpdatePassword(ctx, nil, target.ID, "Sommaren28"), shared.ErrUnauthenticated)
}

func TestUpdatePasswordPolicyApplies(t *testing.T) {
	repo := newFakeRepo()
	svc := newUsersService(repo)
	ctx := context.Background()

	admin := &shared.Principal{ID: 1, Role: shared.RoleAdmin}
	target, err := svc.Create(ctx, admin, users.CreateUserRequest{
		Name: "Erik", Email: "erik@example.com", Password: "Vintern26", Role: "player",
	})
	require.NoError(t, err)

	self := &shared.Principal{ID: target.ID, Role: shared.RolePlayer}
	assert.ErrorIs(t, svc.UpdatePassword(ctx, self, target.ID, "svag"), shared.ErrWeakPassword)
}

func TestUpdateInvalidRole(t *testing.T) {
	repo := newFakeRepo()
	svc := newUsersService(repo)
	admin := &shared.Principal{ID: 1, Role: shared.RoleAdmin}

	_, err := svc.Update(context.Background(), admin, 1, users.UpdateUserRequest{
		Name: "Erik", Email: "erik@example.com", Role: "overlord",
	})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestDeleteMissingUser(t *testing.T) {
	svc := newUsersService(newFakeRepo())
	admin := &shared.Principal{ID: 1, Role: shared.RoleAdmin}
	assert.ErrorIs(t, svc.Delete(context.Background(), admin, 42), shared.ErrNotFound)
}
