package matches

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/solvaders/clubhub/internal/auth"
	"github.com/solvaders/clubhub/internal/platform/httpx"
	"github.com/solvaders/clubhub/internal/rbac"
	"github.com/solvaders/clubhub/internal/shared"
)

// Handler wires HTTP endpoints for matches.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	guard     rbac.Guard
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, guard rbac.Guard) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		guard:     guard,
		validator: validator.New(),
	}
}

// MountRoutes registers match routes under /matches.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth)
		r.Get("/", h.handleList)
		r.Get("/{id}", h.handleGet)
	})
	r.With(h.guard.Require(rbac.ActionMatchCreate)).Post("/", h.handleCreate)
	r.With(h.guard.Require(rbac.ActionMatchUpdate)).Put("/{id}", h.handleUpdate)
	r.With(h.guard.Require(rbac.ActionMatchDelete)).Delete("/{id}", h.handleDelete)
}

// MountTeamRoutes registers the team-scoped listing under /teams.
func (h *Handler) MountTeamRoutes(r chi.Router) {
	r.With(auth.RequireAuth).Get("/{id}/matches", h.handleTeamList)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	filter, bad := ParseFilter(r)
	if len(bad) > 0 {
		httpx.ValidationFields(w, bad)
		return
	}
	h.respondList(w, r, filter)
}

func (h *Handler) handleTeamList(w http.ResponseWriter, r *http.Request) {
	teamID, ok := h.pathID(w, r, "id", "invalid team id")
	if !ok {
		return
	}
	filter, bad := ParseFilter(r)
	if len(bad) > 0 {
		httpx.ValidationFields(w, bad)
		return
	}
	filter.TeamID = teamID
	h.respondList(w, r, filter)
}

func (h *Handler) respondList(w http.ResponseWriter, r *http.Request, filter Filter) {
	page := shared.ParsePageRequest(r)
	matches, pagination, err := h.service.List(r.Context(), filter, page)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ListResponse{Matches: matches, Pagination: pagination})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", "invalid match id")
	if !ok {
		return
	}
	match, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, match)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateMatchRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	if fields := h.validateStruct(req); len(fields) > 0 {
		httpx.ValidationFields(w, fields)
		return
	}

	actor := shared.PrincipalFromContext(r.Context())
	match, err := h.service.Create(r.Context(), actor, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.logger.Info("match created", slog.Int64("id", match.ID), slog.Int64("team", match.TeamID))
	httpx.JSON(w, http.StatusCreated, match)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", "invalid match id")
	if !ok {
		return
	}
	var req UpdateMatchRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	if fields := h.validateStruct(req); len(fields) > 0 {
		httpx.ValidationFields(w, fields)
		return
	}

	actor := shared.PrincipalFromContext(r.Context())
	match, err := h.service.Update(r.Context(), actor, id, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, match)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", "invalid match id")
	if !ok {
		return
	}
	actor := shared.PrincipalFromContext(r.Context())
	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.logger.Info("match deleted", slog.Int64("id", id))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, param, message string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		httpx.Error(w, http.StatusBadRequest, message)
		return 0, false
	}
	return id, true
}

func (h *Handler) validateStruct(req any) []string {
	err := h.validator.Struct(req)
	if err == nil {
		return nil
	}
	var fields []string
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fieldErr := range verrs {
			fields = append(fields, strings.ToLower(fieldErr.Field()))
		}
	}
	if len(fields) == 0 {
		fields = append(fields, "body")
	}
	return fields
}
