// Package postgres implements the service repository interfaces against
// PostgreSQL via database/sql and lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gracepoint/protocol-analytics/internal/domain"
	"github.com/gracepoint/protocol-analytics/internal/service/visitor"
)

// VisitorRepo implements visitor.Repository against PostgreSQL.
type VisitorRepo struct{ db *sql.DB }

// NewVisitorRepo creates a Postgres-backed visitor repository.
func NewVisitorRepo(db *sql.DB) *VisitorRepo { return &VisitorRepo{db: db} }

const visitorColumns = `
	id, name, COALESCE(email,''), COALESCE(phone,''), COALESCE(address,''),
	type, status, monitoring_status, monitoring_start_date, monitoring_end_date,
	welcome_package, home_visit, small_group_intro, ministry_opportunities,
	mentor_assigned, regular_check_ins,
	protocol_team_id, created_at, updated_at`

func scanVisitor(row interface{ Scan(...interface{}) error }) (*domain.Visitor, error) {
	v := &domain.Visitor{}
	err := row.Scan(
		&v.ID, &v.Name, &v.Email, &v.Phone, &v.Address,
		&v.Type, &v.Status, &v.MonitoringStatus, &v.MonitoringStartDate, &v.MonitoringEndDate,
		&v.Checklist.WelcomePackage, &v.Checklist.HomeVisit, &v.Checklist.SmallGroupIntro,
		&v.Checklist.MinistryOpportunities, &v.Checklist.MentorAssigned, &v.Checklist.RegularCheckIns,
		&v.ProtocolTeamID, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *VisitorRepo) Get(ctx context.Context, id string) (*domain.Visitor, error) {
	v, err := scanVisitor(r.db.QueryRowContext(ctx,
		`SELECT `+visitorColumns+` FROM visitors WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, visitor.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get visitor: %w", err)
	}

	if err := r.loadMilestones(ctx, v); err != nil {
		return nil, err
	}
	if err := r.loadAttendance(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (r *VisitorRepo) loadMilestones(ctx context.Context, v *domain.Visitor) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT week, completed, completed_date, COALESCE(notes,''), COALESCE(protocol_member_notes,'')
		FROM visitor_milestones
		WHERE visitor_id = $1
		ORDER BY week
	`, v.ID)
	if err != nil {
		return fmt.Errorf("load milestones: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m domain.Milestone
		if err := rows.Scan(&m.Week, &m.Completed, &m.CompletedDate, &m.Notes, &m.MemberNotes); err != nil {
			return fmt.Errorf("scan milestone: %w", err)
		}
		v.Milestones = append(v.Milestones, m)
	}
	return rows.Err()
}

func (r *VisitorRepo) loadAttendance(ctx context.Context, v *domain.Visitor) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, visitor_id, date, event_type, status
		FROM visitor_attendance
		WHERE visitor_id = $1
		ORDER BY date
	`, v.ID)
	if err != nil {
		return fmt.Errorf("load attendance: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec domain.AttendanceRecord
		if err := rows.Scan(&rec.ID, &rec.VisitorID, &rec.Date, &rec.EventType, &rec.Status); err != nil {
			return fmt.Errorf("scan attendance: %w", err)
		}
		v.AttendanceHistory = append(v.AttendanceHistory, rec)
	}
	return rows.Err()
}

func (r *VisitorRepo) List(ctx context.Context, f visitor.ListFilter) ([]domain.Visitor, error) {
	q := `SELECT ` + visitorColumns + ` FROM visitors WHERE 1=1`
	var args []interface{}
	idx := 1

	if f.TeamID != "" {
		q += fmt.Sprintf(" AND protocol_team_id = $%d", idx)
		args = append(args, f.TeamID)
		idx++
	}
	if f.Status != "" {
		q += fmt.Sprintf(" AND status = $%d", idx)
		args = append(args, f.Status)
		idx++
	}
	if f.MonitoringStatus != "" {
		q += fmt.Sprintf(" AND monitoring_status = $%d", idx)
		args = append(args, f.MonitoringStatus)
		idx++
	}
	q += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list visitors: %w", err)
	}
	defer rows.Close()

	var out []domain.Visitor
	for rows.Next() {
		v, err := scanVisitor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan visitor: %w", err)
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}

// Create inserts the visitor and, for joining visitors, the full milestone
// schedule in the same transaction. The schedule is never partially created.
func (r *VisitorRepo) Create(ctx context.Context, v *domain.Visitor) (string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin create visitor: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO visitors (
			id, name, email, phone, address,
			type, status, monitoring_status, monitoring_start_date, monitoring_end_date,
			protocol_team_id, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		v.ID, v.Name, v.Email, v.Phone, v.Address,
		v.Type, v.Status, v.MonitoringStatus, v.MonitoringStartDate, v.MonitoringEndDate,
		v.ProtocolTeamID, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("insert visitor: %w", err)
	}

	for _, m := range v.Milestones {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO visitor_milestones (visitor_id, week, completed, completed_date, notes, protocol_member_notes)
			VALUES ($1,$2,$3,$4,$5,$6)
		`, v.ID, m.Week, m.Completed, m.CompletedDate, m.Notes, m.MemberNotes)
		if err != nil {
			return "", fmt.Errorf("insert milestone week %d: %w", m.Week, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit create visitor: %w", err)
	}
	return v.ID, nil
}

// UpdateMilestone writes one milestone row. Single atomic write, last write
// wins.
func (r *VisitorRepo) UpdateMilestone(ctx context.Context, visitorID string, m domain.Milestone) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE visitor_milestones
		SET completed = $3, completed_date = $4, notes = $5, protocol_member_notes = $6
		WHERE visitor_id = $1 AND week = $2
	`, visitorID, m.Week, m.Completed, m.CompletedDate, m.Notes, m.MemberNotes)
	if err != nil {
		return fmt.Errorf("update milestone: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update milestone rows: %w", err)
	}
	if n == 0 {
		return visitor.ErrNotFound
	}
	return nil
}

func (r *VisitorRepo) UpdateStatus(ctx context.Context, id string, status domain.VisitorStatus, monitoring domain.MonitoringStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE visitors SET status = $2, monitoring_status = $3, updated_at = NOW()
		WHERE id = $1
	`, id, status, monitoring)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update status rows: %w", err)
	}
	if n == 0 {
		return visitor.ErrNotFound
	}
	return nil
}

func (r *VisitorRepo) UpdateChecklist(ctx context.Context, id string, c domain.IntegrationChecklist) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE visitors SET
			welcome_package = $2, home_visit = $3, small_group_intro = $4,
			ministry_opportunities = $5, mentor_assigned = $6, regular_check_ins = $7,
			updated_at = NOW()
		WHERE id = $1
	`, id, c.WelcomePackage, c.HomeVisit, c.SmallGroupIntro,
		c.MinistryOpportunities, c.MentorAssigned, c.RegularCheckIns)
	if err != nil {
		return fmt.Errorf("update checklist: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update checklist rows: %w", err)
	}
	if n == 0 {
		return visitor.ErrNotFound
	}
	return nil
}

func (r *VisitorRepo) CountEventsSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM events WHERE date >= $1`, since).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}
