package teams

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/solvaders/clubhub/internal/platform/db"
	"github.com/solvaders/clubhub/internal/shared"
)

// rowQuerier is the slice of pgx shared by pools and transactions.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// RepositoryPort defines data access methods for teams and rosters.
type RepositoryPort interface {
	List(ctx context.Context, limit, offset int) ([]Team, error)
	Count(ctx context.Context) (int, error)
	FindByID(ctx context.Context, id int64) (*Team, error)
	Create(ctx context.Context, name, description string) (*Team, error)
	Update(ctx context.Context, id int64, name, description string) (*Team, error)
	Delete(ctx context.Context, id int64) error

	Members(ctx context.Context, teamID int64) ([]Member, error)
	MemberRole(ctx context.Context, userID, teamID int64) (shared.TeamRole, error)
	AddMember(ctx context.Context, teamID, userID int64, role shared.TeamRole, position string) (*Member, error)
	UpdateMember(ctx context.Context, teamID, userID int64, role shared.TeamRole, position string) (*Member, error)
	RemoveMember(ctx context.Context, teamID, userID int64) error

	UpcomingMatches(ctx context.Context, teamID int64, limit int) ([]UpcomingMatch, error)
	UpcomingTrainings(ctx context.Context, teamID int64, limit int) ([]UpcomingTraining, error)
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const teamColumns = `id, name, description, created_at, updated_at`

func (r *Repository) List(ctx context.Context, limit, offset int) ([]Team, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+teamColumns+` FROM teams ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var teams []Team
	for rows.Next() {
		var team Team
		if err := rows.Scan(&team.ID, &team.Name, &team.Description, &team.CreatedAt, &team.UpdatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM teams`).Scan(&total)
	return total, err
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*Team, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+teamColumns+` FROM teams WHERE id = $1`, id)
	return scanTeam(row)
}

func (r *Repository) Create(ctx context.Context, name, description string) (*Team, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO teams (name, description) VALUES ($1, $2) RETURNING `+teamColumns,
		name, description)
	team, err := scanTeam(row)
	if err != nil {
		return nil, mapConstraint(err)
	}
	return team, nil
}

func (r *Repository) Update(ctx context.Context, id int64, name, description string) (*Team, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE teams SET name = $2, description = $3, updated_at = NOW() WHERE id = $1 RETURNING `+teamColumns,
		id, name, description)
	team, err := scanTeam(row)
	if err != nil {
		return nil, mapConstraint(err)
	}
	return team, nil
}

// Delete removes a team; memberships, matches and trainings cascade.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

const memberColumns = `m.user_id, u.name, u.email, m.role, m.position, m.joined_at`

func (r *Repository) Members(ctx context.Context, teamID int64) ([]Member, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+memberColumns+` FROM memberships m
		 JOIN users u ON u.id = m.user_id
		 WHERE m.team_id = $1 ORDER BY u.name`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var members []Member
	for rows.Next() {
		var member Member
		if err := rows.Scan(&member.UserID, &member.Name, &member.Email, &member.Role, &member.Position, &member.JoinedAt); err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, rows.Err()
}

// MemberRole resolves the team-scoped role for the authorization layer.
func (r *Repository) MemberRole(ctx context.Context, userID, teamID int64) (shared.TeamRole, error) {
	var role shared.TeamRole
	err := r.pool.QueryRow(ctx,
		`SELECT role FROM memberships WHERE user_id = $1 AND team_id = $2`, userID, teamID).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", shared.ErrNotFound
		}
		return "", err
	}
	return role, nil
}

// AddMember inserts a roster entry. The (user_id, team_id) uniqueness
// lives in the store so concurrent adds collapse to one winner. Insert
// and read-back share a transaction so the returned row is the one
// just written.
func (r *Repository) AddMember(ctx context.Context, teamID, userID int64, role shared.TeamRole, position string) (*Member, error) {
	var member *Member
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO memberships (team_id, user_id, role, position) VALUES ($1, $2, $3, $4)`,
			teamID, userID, string(role), position)
		if err != nil {
			return mapConstraint(err)
		}
		member, err = findMember(ctx, tx, teamID, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

func (r *Repository) UpdateMember(ctx context.Context, teamID, userID int64, role shared.TeamRole, position string) (*Member, error) {
	var member *Member
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE memberships SET role = $3, position = $4 WHERE team_id = $1 AND user_id = $2`,
			teamID, userID, string(role), position)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return shared.ErrNotFound
		}
		member, err = findMember(ctx, tx, teamID, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

func (r *Repository) RemoveMember(ctx context.Context, teamID, userID int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM memberships WHERE team_id = $1 AND user_id = $2`, teamID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *Repository) UpcomingMatches(ctx context.Context, teamID int64, limit int) ([]UpcomingMatch, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, opponent, location, scheduled_at FROM matches
		 WHERE team_id = $1 AND scheduled_at >= NOW()
		 ORDER BY scheduled_at LIMIT $2`, teamID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var matches []UpcomingMatch
	for rows.Next() {
		var m UpcomingMatch
		if err := rows.Scan(&m.ID, &m.Opponent, &m.Location, &m.ScheduledAt); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (r *Repository) UpcomingTrainings(ctx context.Context, teamID int64, limit int) ([]UpcomingTraining, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, kind, starts_at FROM trainings
		 WHERE team_id = $1 AND starts_at >= NOW()
		 ORDER BY starts_at LIMIT $2`, teamID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var trainings []UpcomingTraining
	for rows.Next() {
		var t UpcomingTraining
		if err := rows.Scan(&t.ID, &t.Kind, &t.StartsAt); err != nil {
			return nil, err
		}
		trainings = append(trainings, t)
	}
	return trainings, rows.Err()
}

func findMember(ctx context.Context, q rowQuerier, teamID, userID int64) (*Member, error) {
	row := q.QueryRow(ctx,
		`SELECT `+memberColumns+` FROM memberships m
		 JOIN users u ON u.id = m.user_id
		 WHERE m.team_id = $1 AND m.user_id = $2`, teamID, userID)
	var member Member
	err := row.Scan(&member.UserID, &member.Name, &member.Email, &member.Role, &member.Position, &member.JoinedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &member, nil
}

func scanTeam(row pgx.Row) (*Team, error) {
	var team Team
	err := row.Scan(&team.ID, &team.Name, &team.Description, &team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &team, nil
}

// mapConstraint translates store constraint violations into sentinels:
// unique collisions become conflicts, broken references become missing
// targets.
func mapConstraint(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return shared.ErrDuplicate
		case "23503":
			return shared.ErrNotFound
		}
	}
	return err
}

var _ RepositoryPort = (*Repository)(nil)
