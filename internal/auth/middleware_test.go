package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/solvaders/clubhub/internal/auth"
	"github.com/solvaders/clubhub/internal/shared"
	_ "github.com/solvaders/clubhub/testing"
)

func seedUser(t *testing.T, repo *memoryRepo, role shared.Role) *auth.User {
	t.Helper()
	user := &auth.User{Name: "Erik Lind", Email: "erik@example.com", PasswordHash: "x", Role: role}
	id, err := repo.Create(context.Background(), user)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	user.ID = id
	return user
}

func principalEcho() (http.Handler, *[]*shared.Principal) {
	var seen []*shared.Principal
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, shared.PrincipalFromContext(r.Context()))
		w.WriteHeader(http.StatusOK)
	}), &seen
}

func errorCode(t *testing.T, res *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Error
}

func TestPrincipalAnonymousPassthrough(t *testing.T) {
	authn := auth.NewAuthenticator(auth.NewTokenCodec("test-secret"), newMemoryRepo(), nil, nil)
	next, seen := principalEcho()

	res := httptest.NewRecorder()
	authn.Principal(next).ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/teams", nil))

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if len(*seen) != 1 || (*seen)[0] != nil {
		t.Fatal("expected anonymous request to reach handler without principal")
	}
}

func TestPrincipalValidToken(t *testing.T) {
	repo := newMemoryRepo()
	user := seedUser(t, repo, shared.RoleCoach)
	codec := auth.NewTokenCodec("test-secret")
	authn := auth.NewAuthenticator(codec, repo, nil, nil)
	next, seen := principalEcho()

	token, err := codec.Issue(user.ID, user.Role, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/teams", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res := httptest.NewRecorder()
	authn.Principal(next).ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	principal := (*seen)[0]
	if principal == nil || principal.ID != user.ID || principal.Role != shared.RoleCoach {
		t.Fatalf("expected resolved principal, got %+v", principal)
	}
}

func TestPrincipalExpiredToken(t *testing.T) {
	repo := newMemoryRepo()
	user := seedUser(t, repo, shared.RolePlayer)

	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := issued
	codec := auth.NewTokenCodec("test-secret").WithNow(func() time.Time { return now })
	authn := auth.NewAuthenticator(codec, repo, nil, nil)
	next, _ := principalEcho()

	token, err := codec.Issue(user.ID, user.Role, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	now = issued.Add(2 * time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/teams", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res := httptest.NewRecorder()
	authn.Principal(next).ServeHTTP(res, req)

	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.Code)
	}
	if code := errorCode(t, res); code != "TokenExpired" {
		t.Fatalf("expected TokenExpired body, got %q", code)
	}
}

func TestPrincipalInvalidTokenRejectedOnPublicRoute(t *testing.T) {
	authn := auth.NewAuthenticator(auth.NewTokenCodec("test-secret"), newMemoryRepo(), nil, nil)
	next, seen := principalEcho()

	for _, token := range []string{"garbage", mustIssue(t, auth.NewTokenCodec("other-secret"), 1)} {
		req := httptest.NewRequest(http.MethodGet, "/teams", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		res := httptest.NewRecorder()
		authn.Principal(next).ServeHTTP(res, req)

		if res.Code != http.StatusUnauthorized {
			t.Fatalf("token %q: expected 401, got %d", token, res.Code)
		}
		if code := errorCode(t, res); code != "Unauthenticated" {
			t.Fatalf("token %q: expected Unauthenticated body, got %q", token, code)
		}
	}
	if len(*seen) != 0 {
		t.Fatal("invalid tokens must not reach the handler")
	}
}

func TestPrincipalDeletedSubject(t *testing.T) {
	codec := auth.NewTokenCodec("test-secret")
	authn := auth.NewAuthenticator(codec, newMemoryRepo(), nil, nil)
	next, _ := principalEcho()

	req := httptest.NewRequest(http.MethodGet, "/teams", nil)
	req.Header.Set("Authorization", "Bearer "+mustIssue(t, codec, 99))
	res := httptest.NewRecorder()
	authn.Principal(next).ServeHTTP(res, req)

	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for deleted subject, got %d", res.Code)
	}
}

func TestRequireAuth(t *testing.T) {
	next, _ := principalEcho()
	guarded := auth.RequireAuth(next)

	res := httptest.NewRecorder()
	guarded.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/users/me", nil))
	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without principal, got %d", res.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	ctx := shared.ContextWithPrincipal(req.Context(), &shared.Principal{ID: 1, Role: shared.RolePlayer})
	res = httptest.NewRecorder()
	guarded.ServeHTTP(res, req.WithContext(ctx))
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 with principal, got %d", res.Code)
	}
}

func mustIssue(t *testing.T, codec *auth.TokenCodec, userID int64) string {
	t.Helper()
	token, err := codec.Issue(userID, shared.RolePlayer, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return token
}
