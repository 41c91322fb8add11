package visitor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gracepoint/protocol-analytics/internal/analytics"
	"github.com/gracepoint/protocol-analytics/internal/domain"
)

// Service implements visitor business logic. All public methods are safe for
// concurrent use if the underlying repository is concurrency-safe.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a visitor service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithClock overrides the time source. Used by tests for deterministic
// windows.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CreateInput holds the fields for registering a new visitor.
type CreateInput struct {
	Name           string             `json:"name"`
	Email          string             `json:"email"`
	Phone          string             `json:"phone"`
	Address        string             `json:"address"`
	Type           domain.VisitorType `json:"type"`
	ProtocolTeamID string             `json:"protocol_team_id"`
}

// Create validates and persists a new visitor. A joining visitor enters the
// onboarding program immediately: the 90-day monitoring window and all twelve
// milestones are initialized together, never partially.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Visitor, error) {
	if input.Name == "" {
		return nil, ErrMissingName
	}
	if input.ProtocolTeamID == "" {
		return nil, ErrMissingTeam
	}
	if input.Type == "" {
		input.Type = domain.TypeVisiting
	}

	now := s.now()
	v := &domain.Visitor{
		ID:               uuid.New().String(),
		Name:             input.Name,
		Email:            input.Email,
		Phone:            input.Phone,
		Address:          input.Address,
		Type:             input.Type,
		Status:           domain.StatusVisiting,
		MonitoringStatus: domain.MonitoringNone,
		ProtocolTeamID:   input.ProtocolTeamID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if input.Type == domain.TypeJoining {
		start := now
		end := start.AddDate(0, 0, domain.MonitoringWindowDays)
		v.Status = domain.StatusJoining
		v.MonitoringStatus = domain.MonitoringActive
		v.MonitoringStartDate = &start
		v.MonitoringEndDate = &end
		v.Milestones = domain.NewMilestoneSchedule()
	}

	id, err := s.repo.Create(ctx, v)
	if err != nil {
		return nil, fmt.Errorf("create visitor: %w", err)
	}
	v.ID = id
	return v, nil
}

// Get returns a single visitor.
func (s *Service) Get(ctx context.Context, id string) (*domain.Visitor, error) {
	return s.repo.Get(ctx, id)
}

// List returns visitors matching the filter.
func (s *Service) List(ctx context.Context, f ListFilter) ([]domain.Visitor, error) {
	return s.repo.List(ctx, f)
}

// UpdateMilestone applies a single milestone update for a joining visitor and
// persists it as one atomic write. Week must be in 1..12.
func (s *Service) UpdateMilestone(ctx context.Context, visitorID string, week int, completed bool, notes string) (*domain.Visitor, error) {
	v, err := s.repo.Get(ctx, visitorID)
	if err != nil {
		return nil, err
	}
	if v.Type != domain.TypeJoining || len(v.Milestones) == 0 {
		return nil, ErrNotJoining
	}

	if err := analytics.ApplyMilestoneUpdate(v.Milestones, week, completed, notes, s.now()); err != nil {
		return nil, err
	}

	var updated domain.Milestone
	for _, m := range v.Milestones {
		if m.Week == week {
			updated = m
			break
		}
	}
	if err := s.repo.UpdateMilestone(ctx, visitorID, updated); err != nil {
		return nil, fmt.Errorf("persist milestone: %w", err)
	}
	return v, nil
}

// TransitionStatus moves a visitor's coarse status through the transition
// table. Invalid transitions are rejected.
func (s *Service) TransitionStatus(ctx context.Context, id string, to domain.VisitorStatus) (*domain.Visitor, error) {
	v, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransitionStatus(v.Status, to) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, v.Status, to)
	}
	v.Status = to
	if err := s.repo.UpdateStatus(ctx, id, v.Status, v.MonitoringStatus); err != nil {
		return nil, fmt.Errorf("persist status: %w", err)
	}
	return v, nil
}

// TransitionMonitoring moves a visitor's monitoring status through the
// transition table. Reaching converted-to-member also advances the coarse
// status to converted when allowed.
func (s *Service) TransitionMonitoring(ctx context.Context, id string, to domain.MonitoringStatus) (*domain.Visitor, error) {
	v, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransitionMonitoring(v.MonitoringStatus, to) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, v.MonitoringStatus, to)
	}
	v.MonitoringStatus = to
	if to == domain.MonitoringConverted && domain.CanTransitionStatus(v.Status, domain.StatusConverted) {
		v.Status = domain.StatusConverted
	}
	if err := s.repo.UpdateStatus(ctx, id, v.Status, v.MonitoringStatus); err != nil {
		return nil, fmt.Errorf("persist status: %w", err)
	}
	return v, nil
}

// UpdateChecklist replaces the integration checklist flags. The checklist is
// maintained manually and never derived from milestone state.
func (s *Service) UpdateChecklist(ctx context.Context, id string, c domain.IntegrationChecklist) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.UpdateChecklist(ctx, id, c)
}

// Insight computes the derived per-visitor view. The reference event count is
// taken from events since the visitor's creation.
func (s *Service) Insight(ctx context.Context, id string) (analytics.VisitorInsight, error) {
	v, err := s.repo.Get(ctx, id)
	if err != nil {
		return analytics.VisitorInsight{}, err
	}
	expected, err := s.repo.CountEventsSince(ctx, v.CreatedAt)
	if err != nil {
		return analytics.VisitorInsight{}, fmt.Errorf("count expected events: %w", err)
	}
	return analytics.Insight(v, expected, s.now()), nil
}
