package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/solvaders/clubhub/internal/observability"
	"github.com/solvaders/clubhub/internal/platform/httpx"
	"github.com/solvaders/clubhub/internal/shared"
)

// Authenticator is the access gate: it turns an Authorization header
// into a principal on the request context. It never mutates state.
type Authenticator struct {
	codec   *TokenCodec
	repo    Repository
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewAuthenticator builds the middleware. metrics may be nil.
func NewAuthenticator(codec *TokenCodec, repo Repository, logger *slog.Logger, metrics *observability.Metrics) *Authenticator {
	return &Authenticator{codec: codec, repo: repo, logger: logger, metrics: metrics}
}

// Principal resolves the bearer token when one is present. Requests
// without a token proceed anonymously; a present-but-invalid token is
// rejected even on public routes. Malformed tokens and signature
// mismatches yield the same response so callers cannot tell which.
func (a *Authenticator) Principal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := a.codec.Verify(token)
		if err != nil {
			if errors.Is(err, shared.ErrTokenExpired) {
				a.metrics.AuthRejected("expired")
				httpx.RespondError(w, shared.ErrTokenExpired)
				return
			}
			a.metrics.AuthRejected("invalid")
			httpx.RespondError(w, shared.ErrUnauthenticated)
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			a.metrics.AuthRejected("invalid")
			httpx.RespondError(w, shared.ErrUnauthenticated)
			return
		}

		// Re-resolve the subject so tokens for deleted accounts die.
		user, err := a.repo.FindByID(r.Context(), userID)
		if err != nil {
			if !errors.Is(err, shared.ErrNotFound) && a.logger != nil {
				a.logger.Error("resolve principal", slog.Any("error", err))
			}
			a.metrics.AuthRejected("unknown_subject")
			httpx.RespondError(w, shared.ErrUnauthenticated)
			return
		}

		ctx := shared.ContextWithPrincipal(r.Context(), user.Principal())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth rejects anonymous requests. Mount after Principal.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if shared.PrincipalFromContext(r.Context()) == nil {
			httpx.RespondError(w, shared.ErrUnauthenticated)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
