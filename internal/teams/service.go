package teams

import (
	"context"
	"log/slog"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/solvaders/clubhub/internal/shared"
)

const upcomingLimit = 5

// MembershipInvalidator drops cached team roles after roster writes.
type MembershipInvalidator interface {
	Invalidate(ctx context.Context, userID, teamID int64)
}

// Service handles team and roster business logic.
type Service struct {
	repo        RepositoryPort
	invalidator MembershipInvalidator
	audit       *shared.AuditLogger
	logger      *slog.Logger
}

// NewService builds a Service. invalidator and audit may be nil.
func NewService(repo RepositoryPort, invalidator MembershipInvalidator, audit *shared.AuditLogger, logger *slog.Logger) *Service {
	return &Service{repo: repo, invalidator: invalidator, audit: audit, logger: logger}
}

// List returns one page of teams with pagination metadata.
func (s *Service) List(ctx context.Context, page shared.PageRequest) ([]Team, shared.Pagination, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	teams, err := s.repo.List(ctx, page.PerPage, page.Offset())
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	return teams, shared.NewPagination(page.Page, page.PerPage, total), nil
}

// Detail assembles the full team view. The three collections are
// independent, so they load concurrently.
func (s *Service) Detail(ctx context.Context, id int64) (*Detail, error) {
	team, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := Detail{Team: *team}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		members, err := s.repo.Members(gctx, id)
		detail.Members = members
		return err
	})
	g.Go(func() error {
		matches, err := s.repo.UpcomingMatches(gctx, id, upcomingLimit)
		detail.UpcomingMatches = matches
		return err
	})
	g.Go(func() error {
		trainings, err := s.repo.UpcomingTrainings(gctx, id, upcomingLimit)
		detail.UpcomingTrainings = trainings
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if detail.Members == nil {
		detail.Members = []Member{}
	}
	if detail.UpcomingMatches == nil {
		detail.UpcomingMatches = []UpcomingMatch{}
	}
	if detail.UpcomingTrainings == nil {
		detail.UpcomingTrainings = []UpcomingTraining{}
	}
	return &detail, nil
}

func (s *Service) Create(ctx context.Context, actor *shared.Principal, req CreateTeamRequest) (*Team, error) {
	team, err := s.repo.Create(ctx, req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	s.record(ctx, actor, "team.create", team.ID)
	return team, nil
}

func (s *Service) Update(ctx context.Context, actor *shared.Principal, id int64, req UpdateTeamRequest) (*Team, error) {
	team, err := s.repo.Update(ctx, id, req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	s.record(ctx, actor, "team.update", id)
	return team, nil
}

func (s *Service) Delete(ctx context.Context, actor *shared.Principal, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actor, "team.delete", id)
	return nil
}

// Members lists the roster. The team lookup runs first so a missing
// team reads as 404 rather than an empty roster.
func (s *Service) Members(ctx context.Context, teamID int64) ([]Member, error) {
	if _, err := s.repo.FindByID(ctx, teamID); err != nil {
		return nil, err
	}
	members, err := s.repo.Members(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []Member{}
	}
	return members, nil
}

func (s *Service) AddMember(ctx context.Context, actor *shared.Principal, teamID int64, req AddMemberRequest) (*Member, error) {
	role := shared.TeamRole(req.Role)
	if !role.Valid() {
		return nil, shared.ErrValidation
	}
	member, err := s.repo.AddMember(ctx, teamID, req.UserID, role, req.Position)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, req.UserID, teamID)
	s.record(ctx, actor, "member.add", teamID)
	return member, nil
}

func (s *Service) UpdateMember(ctx context.Context, actor *shared.Principal, teamID, userID int64, req UpdateMemberRequest) (*Member, error) {
	role := shared.TeamRole(req.Role)
	if !role.Valid() {
		return nil, shared.ErrValidation
	}
	member, err := s.repo.UpdateMember(ctx, teamID, userID, role, req.Position)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID, teamID)
	s.record(ctx, actor, "member.update", teamID)
	return member, nil
}

func (s *Service) RemoveMember(ctx context.Context, actor *shared.Principal, teamID, userID int64) error {
	if err := s.repo.RemoveMember(ctx, teamID, userID); err != nil {
		return err
	}
	s.invalidate(ctx, userID, teamID)
	s.record(ctx, actor, "member.remove", teamID)
	return nil
}

func (s *Service) invalidate(ctx context.Context, userID, teamID int64) {
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx, userID, teamID)
	}
}

func (s *Service) record(ctx context.Context, actor *shared.Principal, action string, teamID int64) {
	if s.audit == nil || actor == nil {
		return
	}
	if err := s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actor.ID,
		Action:   action,
		Entity:   "team",
		EntityID: strconv.FormatInt(teamID, 10),
	}); err != nil && s.logger != nil {
		s.logger.Warn("audit write", slog.String("action", action), slog.Any("error", err))
	}
}
