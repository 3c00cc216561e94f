package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/solvaders/clubhub/internal/auth"
	"github.com/solvaders/clubhub/internal/matches"
	"github.com/solvaders/clubhub/internal/observability"
	"github.com/solvaders/clubhub/internal/teams"
	"github.com/solvaders/clubhub/internal/trainings"
	"github.com/solvaders/clubhub/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	Authenticator    *auth.Authenticator
	AuthHandler      *auth.Handler
	UsersHandler     *users.Handler
	TeamsHandler     *teams.Handler
	MatchesHandler   *matches.Handler
	TrainingsHandler *trainings.Handler
	Metrics          *observability.Metrics
}

// NewRouter constructs the chi.Router with Clubhub defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:        params.Logger,
		Config:        params.Config,
		Authenticator: params.Authenticator,
		Metrics:       params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	// Credential endpoints get a tighter budget than the global limit.
	r.Route("/auth", func(r chi.Router) {
		r.Use(httprate.Limit(10, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
		params.AuthHandler.MountRoutes(r)
	})

	r.Route("/users", func(r chi.Router) {
		params.UsersHandler.MountRoutes(r)
	})

	r.Route("/teams", func(r chi.Router) {
		params.TeamsHandler.MountRoutes(r)
		params.MatchesHandler.MountTeamRoutes(r)
		params.TrainingsHandler.MountTeamRoutes(r)
	})

	r.Route("/matches", func(r chi.Router) {
		params.MatchesHandler.MountRoutes(r)
	})

	r.Route("/trainings", func(r chi.Router) {
		params.TrainingsHandler.MountRoutes(r)
	})

	return r
}
