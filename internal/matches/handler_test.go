package matches_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solvaders/clubhub/internal/matches"
	"github.com/solvaders/clubhub/internal/rbac"
	"github.com/solvaders/clubhub/internal/shared"
	_ "github.com/solvaders/clubhub/testing"
)

type fakeRepo struct {
	nextID int64
	items  map[int64]matches.Match
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, items: map[int64]matches.Match{}}
}

func (f *fakeRepo) List(ctx context.Context, filter matches.Filter, limit, offset int) ([]matches.Match, error) {
	var out []matches.Match
	for _, m := range f.items {
		if filter.TeamID > 0 && m.TeamID != filter.TeamID {
			continue
		}
		if filter.From != nil && m.ScheduledAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && m.ScheduledAt.After(*filter.To) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeRepo) Count(ctx context.Context, filter matches.Filter) (int, error) {
	items, _ := f.List(ctx, filter, 0, 0)
	return len(items), nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id int64) (*matches.Match, error) {
	m, ok := f.items[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &m, nil
}

func (f *fakeRepo) Create(ctx context.Context, req matches.CreateMatchRequest) (*matches.Match, error) {
	m := matches.Match{
		ID:          f.nextID,
		TeamID:      req.TeamID,
		Opponent:    req.Opponent,
		Location:    req.Location,
		ScheduledAt: req.ScheduledAt,
	}
	f.nextID++
	f.items[m.ID] = m
	return &m, nil
}

func (f *fakeRepo) Update(ctx context.Context, id int64, req matches.UpdateMatchRequest) (*matches.Match, error) {
	m, ok := f.items[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	m.Opponent, m.Location, m.ScheduledAt = req.Opponent, req.Location, req.ScheduledAt
	m.HomeScore, m.AwayScore = req.HomeScore, req.AwayScore
	f.items[id] = m
	return &m, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return shared.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

var _ matches.RepositoryPort = (*fakeRepo)(nil)

type noMemberships struct{}

func (noMemberships) MemberRole(ctx context.Context, userID, teamID int64) (shared.TeamRole, error) {
	return "", shared.ErrNotFound
}

func injectPrincipal(p *shared.Principal) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p != nil {
				r = r.WithContext(shared.ContextWithPrincipal(r.Context(), p))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func newMatchesRouter(repo matches.RepositoryPort, p *shared.Principal) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	guard := rbac.Guard{Policy: rbac.NewPolicy(noMemberships{}, nil)}
	handler := matches.NewHandler(logger, matches.NewService(repo, nil, logger), guard)

	r := chi.NewRouter()
	r.Use(injectPrincipal(p))
	r.Route("/matches", func(r chi.Router) {
		handler.MountRoutes(r)
	})
	r.Route("/teams", func(r chi.Router) {
		handler.MountTeamRoutes(r)
	})
	return r
}

func seedMatch(t *testing.T, repo *fakeRepo, teamID int64, at time.Time) matches.Match {
	t.Helper()
	m, err := repo.Create(context.Background(), matches.CreateMatchRequest{
		TeamID: teamID, Opponent: "Hawks", Location: "Arena", ScheduledAt: at,
	})
	require.NoError(t, err)
	return *m
}

func player() *shared.Principal {
	return &shared.Principal{ID: 5, Role: shared.RolePlayer}
}

func coach() *shared.Principal {
	return &shared.Principal{ID: 6, Role: shared.RoleCoach}
}

func adminUser() *shared.Principal {
	return &shared.Principal{ID: 1, Role: shared.RoleAdmin}
}

func TestListRequiresAuth(t *testing.T) {
	router := newMatchesRouter(newFakeRepo(), nil)

	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/matches", nil))
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestListFilters(t *testing.T) {
	repo := newFakeRepo()
	seedMatch(t, repo, 1, time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC))
	seedMatch(t, repo, 1, time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC))
	seedMatch(t, repo, 2, time.Date(2026, 5, 15, 18, 0, 0, 0, time.UTC))
	router := newMatchesRouter(repo, player())

	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/matches?team_id=1&from=2026-05-15", nil))
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), `"total":1`)
}

func TestListRejectsUnknownSortField(t *testing.T) {
	router := newMatchesRouter(newFakeRepo(), player())

	for _, query := range []string{"?sort=password_hash", "?sort=id%3BDROP%20TABLE", "?order=sideways", "?from=not-a-date"} {
		res := httptest.NewRecorder()
		router.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/matches"+query, nil))
		assert.Equal(t, http.StatusBadRequest, res.Code, "query %s", query)
		assert.Contains(t, res.Body.String(), "ValidationError", "query %s", query)
	}
}

func TestTeamScopedListing(t *testing.T) {
	repo := newFakeRepo()
	seedMatch(t, repo, 1, time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC))
	seedMatch(t, repo, 2, time.Date(2026, 5, 2, 18, 0, 0, 0, time.UTC))
	router := newMatchesRouter(repo, player())

	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/teams/2/matches", nil))
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), `"total":1`)
}

func TestCreateRoleGate(t *testing.T) {
	body := `{"team_id":1,"opponent":"Hawks","location":"Arena","scheduled_at":"2026-05-01T18:00:00Z"}`

	res := httptest.NewRecorder()
	newMatchesRouter(newFakeRepo(), player()).ServeHTTP(res,
		httptest.NewRequest(http.MethodPost, "/matches", strings.NewReader(body)))
	assert.Equal(t, http.StatusForbidden, res.Code)

	res = httptest.NewRecorder()
	newMatchesRouter(newFakeRepo(), coach()).ServeHTTP(res,
		httptest.NewRequest(http.MethodPost, "/matches", strings.NewReader(body)))
	assert.Equal(t, http.StatusCreated, res.Code)
}

func TestDeleteIsAdminOnly(t *testing.T) {
	repo := newFakeRepo()
	seedMatch(t, repo, 1, time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC))

	res := httptest.NewRecorder()
	newMatchesRouter(repo, coach()).ServeHTTP(res,
		httptest.NewRequest(http.MethodDelete, "/matches/1", nil))
	assert.Equal(t, http.StatusForbidden, res.Code)

	res = httptest.NewRecorder()
	newMatchesRouter(repo, adminUser()).ServeHTTP(res,
		httptest.NewRequest(http.MethodDelete, "/matches/1", nil))
	assert.Equal(t, http.StatusNoContent, res.Code)
}

func TestUpdateRecordsScore(t *testing.T) {
	repo := newFakeRepo()
	seedMatch(t, repo, 1, time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC))
	router := newMatchesRouter(repo, coach())

	body := `{"opponent":"Hawks","location":"Arena","scheduled_at":"2026-05-01T18:00:00Z","home_score":3,"away_score":1}`
	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodPut, "/matches/1", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), `"home_score":3`)
	assert.Contains(t, res.Body.String(), `"away_score":1`)
}

func TestGetMissingMatch(t *testing.T) {
	router := newMatchesRouter(newFakeRepo(), player())
	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/matches/99", nil))
	assert.Equal(t, http.StatusNotFound, res.Code)
}
