package teams

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/solvaders/clubhub/internal/platform/httpx"
	"github.com/solvaders/clubhub/internal/rbac"
	"github.com/solvaders/clubhub/internal/shared"
)

// Handler wires HTTP endpoints for teams and rosters.
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

// MountRoutes registers team routes. Listing and detail are public;
// team CRUD is admin territory; roster mutations fall back to the
// team's own coaches.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Get("/{id}", h.handleDetail)

	r.With(h.guard.Require(rbac.ActionTeamCreate)).Post("/", h.handleCreate)
	r.With(h.guard.Require(rbac.ActionTeamUpdate)).Put("/{id}", h.handleUpdate)
	r.With(h.guard.Require(rbac.ActionTeamDelete)).Delete("/{id}", h.handleDelete)

	r.Route("/{id}/members", func(r chi.Router) {
		r.With(h.guard.Require(rbac.ActionMemberList)).Get("/", h.handleMembers)
		r.With(h.guard.RequireTeam(rbac.ActionMemberAdd, "id")).Post("/", h.handleAddMember)
		r.With(h.guard.RequireTeam(rbac.ActionMemberUpdate, "id")).Put("/{userID}", h.handleUpdateMember)
		r.With(h.guard.RequireTeam(rbac.ActionMemberRemove, "id")).Delete("/{userID}", h.handleRemoveMember)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePageRequest(r)
	teams, pagination, err := h.service.List(r.Context(), page)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if teams == nil {
		teams = []Team{}
	}
	httpx.JSON(w, http.StatusOK, ListResponse{Teams: teams, Pagination: pagination})
}

func (h *Handler) handleDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", "invalid team id")
	if !ok {
		return
	}
	detail, err := h.service.Detail(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, detail)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateTeamRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	if fields := h.validateStruct(req); len(fields) > 0 {
		httpx.ValidationFields(w, fields)
		return
	}

	actor := shared.PrincipalFromContext(r.Context())
	team, err := h.service.Create(r.Context(), actor, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.logger.Info("team created", slog.Int64("id", team.ID), slog.String("name", team.Name))
	httpx.JSON(w, http.StatusCreated, team)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", "invalid team id")
	if !ok {
		return
	}
	var req UpdateTeamRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	if fields := h.validateStruct(req); len(fields) > 0 {
		httpx.ValidationFields(w, fields)
		return
	}

	actor := shared.PrincipalFromContext(r.Context())
	team, err := h.service.Update(r.Context(), actor, id, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, team)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", "invalid team id")
	if !ok {
		return
	}
	actor := shared.PrincipalFromContext(r.Context())
	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.logger.Info("team deleted", slog.Int64("id", id))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleMembers(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", "invalid team id")
	if !ok {
		return
	}
	members, err := h.service.Members(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, members)
}

func (h *Handler) handleAddMember(w http.ResponseWriter, r *http.Request) {
	teamID, ok := h.pathID(w, r, "id", "invalid team id")
	if !ok {
		return
	}
	var req AddMemberRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	if fields := h.validateStruct(req); len(fields) > 0 {
		httpx.ValidationFields(w, fields)
		return
	}

	actor := shared.PrincipalFromContext(r.Context())
	member, err := h.service.AddMember(r.Context(), actor, teamID, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.logger.Info("member added", slog.Int64("team", teamID), slog.Int64("user", member.UserID), slog.String("role", string(member.Role)))
	httpx.JSON(w, http.StatusCreated, member)
}

func (h *Handler) handleUpdateMember(w http.ResponseWriter, r *http.Request) {
	teamID, ok := h.pathID(w, r, "id", "invalid team id")
	if !ok {
		return
	}
	userID, ok := h.pathID(w, r, "userID", "invalid user id")
	if !ok {
		return
	}
	var req UpdateMemberRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	if fields := h.validateStruct(req); len(fields) > 0 {
		httpx.ValidationFields(w, fields)
		return
	}

	actor := shared.PrincipalFromContext(r.Context())
	member, err := h.service.UpdateMember(r.Context(), actor, teamID, userID, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, member)
}

func (h *Handler) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	teamID, ok := h.pathID(w, r, "id", "invalid team id")
	if !ok {
		return
	}
	userID, ok := h.pathID(w, r, "userID", "invalid user id")
	if !ok {
		return
	}
	actor := shared.PrincipalFromContext(r.Context())
	if err := h.service.RemoveMember(r.Context(), actor, teamID, userID); err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.logger.Info("member removed", slog.Int64("team", teamID), slog.Int64("user", userID))
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
