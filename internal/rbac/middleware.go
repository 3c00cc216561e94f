package rbac

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/solvaders/clubhub/internal/platform/httpx"
	"github.com/solvaders/clubhub/internal/shared"
)

// Guard wires the policy into chi route gates.
type Guard struct {
	Policy *Policy
}

// Require gates a route on an action with no team context.
func (g Guard) Require(action Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := shared.PrincipalFromContext(r.Context())
			if err := g.Policy.Authorize(r.Context(), principal, action, 0); err != nil {
				httpx.RespondError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireTeam gates a route on an action scoped to the team named by
// the URL parameter. Authorization runs before any existence check, so
// a denied caller cannot probe which team ids exist.
func (g Guard) RequireTeam(action Action, param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			teamID, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
			if err != nil || teamID <= 0 {
				httpx.Error(w, http.StatusBadRequest, "invalid team id")
				return
			}
			principal := shared.PrincipalFromContext(r.Context())
			if err := g.Policy.Authorize(r.Context(), principal, action, teamID); err != nil {
				httpx.RespondError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
