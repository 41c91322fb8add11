package team

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gracepoint/protocol-analytics/internal/analytics"
	"github.com/gracepoint/protocol-analytics/internal/domain"
	"github.com/gracepoint/protocol-analytics/internal/notify"
	"github.com/gracepoint/protocol-analytics/internal/recommend"
)

// Service computes team metrics and the recommendation bundle.
type Service struct {
	repo     Repository
	engine   *recommend.Engine
	notifier notify.Notifier
	now      func() time.Time
}

// NewService creates a team analytics service. notifier may be nil when the
// notification service is not configured; acting on items then only logs.
func NewService(repo Repository, notifier notify.Notifier) *Service {
	return &Service{
		repo:     repo,
		engine:   recommend.NewEngine(),
		notifier: notifier,
		now:      time.Now,
	}
}

// WithClock overrides the time source for deterministic tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Metrics computes the performance snapshot for one team.
func (s *Service) Metrics(ctx context.Context, teamID string) (*domain.TeamMetrics, error) {
	t, err := s.repo.GetTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	visitors, err := s.repo.VisitorsByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("load visitors for team %s: %w", teamID, err)
	}
	m := analytics.ComputeTeamMetrics(t, visitors, s.now())
	return &m, nil
}

// AllMetrics computes snapshots for every team. A team whose visitors cannot
// be loaded is skipped with a logged anomaly so one bad team cannot blank the
// whole dashboard.
func (s *Service) AllMetrics(ctx context.Context) ([]domain.TeamMetrics, error) {
	teams, err := s.repo.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	now := s.now()
	out := make([]domain.TeamMetrics, 0, len(teams))
	for i := range teams {
		t := &teams[i]
		visitors, err := s.repo.VisitorsByTeam(ctx, t.ID)
		if err != nil {
			log.Printf("[team.Service] skipping team %s: %v", t.ID, err)
			continue
		}
		out = append(out, analytics.ComputeTeamMetrics(t, visitors, now))
	}
	return out, nil
}

// Bundle computes the full church-wide recommendation output.
func (s *Service) Bundle(ctx context.Context) (*recommend.Bundle, error) {
	metrics, err := s.AllMetrics(ctx)
	if err != nil {
		return nil, err
	}
	strategies, err := s.repo.ShareableStrategies(ctx)
	if err != nil {
		// Strategies only enrich best practices; degrade rather than fail.
		log.Printf("[team.Service] loading strategies failed, using fallback insights: %v", err)
		strategies = nil
	}
	return s.engine.Build(metrics, strategies), nil
}

// ActionInput identifies the action item being acted upon.
type ActionInput struct {
	TeamID   string `json:"team_id"`
	Category string `json:"category"` // "support" or "training"
	Message  string `json:"message"`
}

// ActOn records that a support/training action was explicitly acted upon and
// fires a notification-creation request at the team leader. The notification
// is fire-and-forget and never affects the caller's result.
func (s *Service) ActOn(ctx context.Context, input ActionInput) error {
	t, err := s.repo.GetTeam(ctx, input.TeamID)
	if err != nil {
		return err
	}

	title := "Support action for " + t.Name
	if input.Category == "training" {
		title = "Training scheduled for " + t.Name
	}

	if s.notifier == nil {
		log.Printf("[team.Service] notifier not configured, skipping notification for team %s", t.ID)
		return nil
	}
	notify.Dispatch(s.notifier, notify.Request{
		RecipientID: t.Leader.ID,
		Title:       title,
		Message:     input.Message,
		RelatedID:   t.ID,
	})
	return nil
}
