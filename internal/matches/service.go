package matches

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/solvaders/clubhub/internal/shared"
)

// Service handles match business logic.
type Service struct {
	repo   RepositoryPort
	audit  *shared.AuditLogger
	logger *slog.Logger
}

// NewService builds a Service. audit may be nil.
func NewService(repo RepositoryPort, audit *shared.AuditLogger, logger *slog.Logger) *Service {
	return &Service{repo: repo, audit: audit, logger: logger}
}

// List returns one page of matches matching the filter.
func (s *Service) List(ctx context.Context, filter Filter, page shared.PageRequest) ([]Match, shared.Pagination, error) {
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	matches, err := s.repo.List(ctx, filter, page.PerPage, page.Offset())
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	if matches == nil {
		matches = []Match{}
	}
	return matches, shared.NewPagination(page.Page, page.PerPage, total), nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Match, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, actor *shared.Principal, req CreateMatchRequest) (*Match, error) {
	match, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.record(ctx, actor, "match.create", match.ID)
	return match, nil
}

func (s *Service) Update(ctx context.Context, actor *shared.Principal, id int64, req UpdateMatchRequest) (*Match, error) {
	match, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.record(ctx, actor, "match.update", id)
	return match, nil
}

func (s *Service) Delete(ctx context.Context, actor *shared.Principal, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actor, "match.delete", id)
	return nil
}

func (s *Service) record(ctx context.Context, actor *shared.Principal, action string, matchID int64) {
	if s.audit == nil || actor == nil {
		return
	}
	if err := s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actor.ID,
		Action:   action,
		Entity:   "match",
		EntityID: strconv.FormatInt(matchID, 10),
	}); err != nil && s.logger != nil {
		s.logger.Warn("audit write", slog.String("action", action), slog.Any("error", err))
	}
}
