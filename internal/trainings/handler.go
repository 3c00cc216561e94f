package trainings

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

// Handler wires HTTP endpoints for trainings.
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

// MountRoutes registers training routes under /trainings.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth)
		r.Get("/", h.handleList)
		r.Get("/{id}", h.handleGet)
	})
	r.With(h.guard.Require(rbac.ActionTrainingCreate)).Post("/", h.handleCreate)
	r.With(h.guard.Require(rbac.ActionTrainingUpdate)).Put("/{id}", h.handleUpdate)
	r.With(h.guard.Require(rbac.ActionTrainingAttendance)).Post("/{id}/attendance", h.handleAttendance)
	r.With(h.guard.Require(rbac.ActionTrainingDelete)).Delete("/{id}", h.handleDelete)
}

// MountTeamRoutes registers the team-scoped listing under /teams.
func (h *Handler) MountTeamRoutes(r chi.Router) {
	r.With(auth.RequireAuth).Get("/{id}/trainings", h.handleTeamList)
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
	trainings, pagination, err := h.service.List(r.Context(), filter, page)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ListResponse{Trainings: trainings, Pagination: pagination})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", "invalid training id")
	if !ok {
		return
	}
	training, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, training)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateTrainingRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	if fields := h.validateStruct(req); len(fields) > 0 {
		httpx.ValidationFields(w, fields)
		return
	}

	actor := shared.PrincipalFromContext(r.Context())
	training, err := h.service.Create(r.Context(), actor, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.logger.Info("training created", slog.Int64("id", training.ID), slog.Int64("team", training.TeamID))
	httpx.JSON(w, http.StatusCreated, training)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", "invalid training id")
	if !ok {
		return
	}
	var req UpdateTrainingRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	if fields := h.validateStruct(req); len(fields) > 0 {
		httpx.ValidationFields(w, fields)
		return
	}

	actor := shared.PrincipalFromContext(r.Context())
	training, err := h.service.Update(r.Context(), actor, id, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, training)
}

func (h *Handler) handleAttendance(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", "invalid training id")
	if !ok {
		return
	}
	var req AttendanceRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	if fields := h.validateStruct(req); len(fields) > 0 {
		httpx.ValidationFields(w, fields)
		return
	}

	actor := shared.PrincipalFromContext(r.Context())
	training, err := h.service.SetAttendance(r.Context(), actor, id, req.Attendance)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, training)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id", "invalid training id")
	if !ok {
		return
	}
	actor := shared.PrincipalFromContext(r.Context())
	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.logger.Info("training deleted", slog.Int64("id", id))
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
