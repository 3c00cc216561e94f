package auth_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/solvaders/clubhub/internal/auth"
	_ "github.com/solvaders/clubhub/testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAuthRouter(repo auth.Repository) http.Handler {
	handler := auth.NewHandler(testLogger(), newAuthService(repo, nil))
	r := chi.NewRouter()
	r.Route("/auth", func(r chi.Router) {
		handler.MountRoutes(r)
	})
	return r
}

func TestHandlerRegisterAndLogin(t *testing.T) {
	router := newAuthRouter(newMemoryRepo())

	body := `{"name":"Erik Lind","email":"erik@example.com","password":"Vintern26"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", res.Code, res.Body.String())
	}
	if !strings.Contains(res.Body.String(), `"role":"player"`) {
		t.Fatalf("register: expected default player role, got %s", res.Body.String())
	}
	if strings.Contains(res.Body.String(), "password") {
		t.Fatalf("register: response leaks password material: %s", res.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"erik@example.com","password":"Vintern26"}`))
	res = httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", res.Code, res.Body.String())
	}
	if !strings.Contains(res.Body.String(), `"token":"`) {
		t.Fatalf("login: expected a token, got %s", res.Body.String())
	}
}

func TestHandlerRegisterValidation(t *testing.T) {
	router := newAuthRouter(newMemoryRepo())

	cases := []struct {
		name string
		body string
	}{
		{"missing email", `{"name":"Erik","password":"Vintern26"}`},
		{"bad email", `{"name":"Erik","email":"not-an-email","password":"Vintern26"}`},
		{"unknown field", `{"name":"Erik","email":"e@example.com","password":"Vintern26","admin":true}`},
		{"not json", `name=Erik`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(tc.body))
			res := httptest.NewRecorder()
			router.ServeHTTP(res, req)
			if res.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", res.Code, res.Body.String())
			}
		})
	}
}

func TestHandlerRegisterDuplicate(t *testing.T) {
	router := newAuthRouter(newMemoryRepo())
	body := `{"name":"Erik Lind","email":"erik@example.com","password":"Vintern26"}`

	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body)))
	if res.Code != http.StatusCreated {
		t.Fatalf("first register: expected 201, got %d", res.Code)
	}

	res = httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body)))
	if res.Code != http.StatusConflict {
		t.Fatalf("second register: expected 409, got %d", res.Code)
	}
	if code := errorCode(t, res); code != "DuplicateEmail" {
		t.Fatalf("expected DuplicateEmail body, got %q", code)
	}
}

func TestHandlerRegisterElevatedRole(t *testing.T) {
	router := newAuthRouter(newMemoryRepo())

	body := `{"name":"Maja Berg","email":"maja@example.com","password":"Vintern26","role":"admin"}`
	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body)))
	if res.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for anonymous admin registration, got %d", res.Code)
	}
}

func TestHandlerLoginInvalidCredentials(t *testing.T) {
	repo := newMemoryRepo()
	router := newAuthRouter(repo)

	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodPost, "/auth/register",
		strings.NewReader(`{"name":"Erik","email":"erik@example.com","password":"Vintern26"}`)))
	if res.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", res.Code)
	}

	for _, body := range []string{
		`{"email":"erik@example.com","password":"fel"}`,
		`{"email":"okand@example.com","password":"Vintern26"}`,
	} {
		res = httptest.NewRecorder()
		router.ServeHTTP(res, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body)))
		if res.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", res.Code)
		}
		if code := errorCode(t, res); code != "InvalidCredentials" {
			t.Fatalf("expected InvalidCredentials body, got %q", code)
		}
	}
}
