package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/gracepoint/protocol-analytics/internal/domain"
	"github.com/gracepoint/protocol-analytics/internal/service/team"
	"github.com/gracepoint/protocol-analytics/internal/service/visitor"
)

// TeamRepo implements team.Repository against PostgreSQL. It reuses
// VisitorRepo for the visitor queries so both sides read the same rows.
type TeamRepo struct {
	db       *sql.DB
	visitors *VisitorRepo
}

// NewTeamRepo creates a Postgres-backed team repository.
func NewTeamRepo(db *sql.DB) *TeamRepo {
	return &TeamRepo{db: db, visitors: NewVisitorRepo(db)}
}

func (r *TeamRepo) GetTeam(ctx context.Context, id string) (*domain.ProtocolTeam, error) {
	t := &domain.ProtocolTeam{}
	var responsibilities pq.StringArray
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, responsibilities, created_at
		FROM protocol_teams
		WHERE id = $1
	`, id).Scan(&t.ID, &t.Name, &responsibilities, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, team.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get team: %w", err)
	}
	t.Responsibilities = responsibilities

	if err := r.loadMembers(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TeamRepo) loadMembers(ctx context.Context, t *domain.ProtocolTeam) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT member_id, name, COALESCE(email,''), role
		FROM protocol_team_members
		WHERE team_id = $1
		ORDER BY name
	`, t.ID)
	if err != nil {
		return fmt.Errorf("load team members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m domain.TeamMember
		var role string
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &role); err != nil {
			return fmt.Errorf("scan team member: %w", err)
		}
		if role == "leader" {
			t.Leader = m
		} else {
			t.Members = append(t.Members, m)
		}
	}
	return rows.Err()
}

func (r *TeamRepo) ListTeams(ctx context.Context) ([]domain.ProtocolTeam, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, responsibilities, created_at
		FROM protocol_teams
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	var out []domain.ProtocolTeam
	for rows.Next() {
		var t domain.ProtocolTeam
		var responsibilities pq.StringArray
		if err := rows.Scan(&t.ID, &t.Name, &responsibilities, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		t.Responsibilities = responsibilities
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		if err := r.loadMembers(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// VisitorsByTeam returns the team's visitor set. Metrics only need the base
// rows; milestone and attendance detail is loaded per visitor on demand.
func (r *TeamRepo) VisitorsByTeam(ctx context.Context, teamID string) ([]domain.Visitor, error) {
	return r.visitors.List(ctx, visitor.ListFilter{TeamID: teamID})
}

func (r *TeamRepo) ShareableStrategies(ctx context.Context) (map[string][]domain.ProtocolStrategy, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, team_id, title, COALESCE(category,''),
		       before_conversion_rate, after_conversion_rate,
		       status, times_shared, times_implemented, created_at
		FROM protocol_strategies
		WHERE status IN ('approved', 'featured')
		ORDER BY team_id, created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list strategies: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.ProtocolStrategy)
	for rows.Next() {
		var s domain.ProtocolStrategy
		if err := rows.Scan(
			&s.ID, &s.TeamID, &s.Title, &s.Category,
			&s.Results.BeforeConversionRate, &s.Results.AfterConversionRate,
			&s.Status, &s.Effectiveness.TimesShared, &s.Effectiveness.TimesImplemented,
			&s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan strategy: %w", err)
		}
		out[s.TeamID] = append(out[s.TeamID], s)
	}
	return out, rows.Err()
}
