package team_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gracepoint/protocol-analytics/internal/domain"
	"github.com/gracepoint/protocol-analytics/internal/notify"
	"github.com/gracepoint/protocol-analytics/internal/service/team"
)

type memRepo struct {
	teams      []domain.ProtocolTeam
	visitors   map[string][]domain.Visitor
	strategies map[string][]domain.ProtocolStrategy
	failTeams  map[string]bool
}

func (m *memRepo) GetTeam(_ context.Context, id string) (*domain.ProtocolTeam, error) {
	for i := range m.teams {
		if m.teams[i].ID == id {
			return &m.teams[i], nil
		}
	}
	return nil, team.ErrNotFound
}

func (m *memRepo) ListTeams(_ context.Context) ([]domain.ProtocolTeam, error) {
	return m.teams, nil
}

func (m *memRepo) VisitorsByTeam(_ context.Context, teamID string) ([]domain.Visitor, error) {
	if m.failTeams[teamID] {
		return nil, errors.New("corrupt team data")
	}
	return m.visitors[teamID], nil
}

func (m *memRepo) ShareableStrategies(_ context.Context) (map[string][]domain.ProtocolStrategy, error) {
	return m.strategies, nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notify.Request
	done chan struct{}
}

func (r *recordingNotifier) Send(_ context.Context, req notify.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, req)
	close(r.done)
	return nil
}

var testNow = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

func joiningVisitor(id string, monitoring domain.MonitoringStatus, daysAgo int) domain.Visitor {
	start := testNow.AddDate(0, 0, -daysAgo)
	end := start.AddDate(0, 0, domain.MonitoringWindowDays)
	return domain.Visitor{
		ID:                  id,
		Name:                "Visitor " + id,
		Status:              domain.StatusJoining,
		MonitoringStatus:    monitoring,
		MonitoringStartDate: &start,
		MonitoringEndDate:   &end,
		CreatedAt:           start,
	}
}

func TestMetrics(t *testing.T) {
	repo := &memRepo{
		teams: []domain.ProtocolTeam{{ID: "t1", Name: "Alpha"}},
		visitors: map[string][]domain.Visitor{
			"t1": {
				joiningVisitor("v1", domain.MonitoringConverted, 120),
				joiningVisitor("v2", domain.MonitoringActive, 80),
			},
		},
	}
	svc := team.NewService(repo, nil).WithClock(func() time.Time { return testNow })

	m, err := svc.Metrics(context.Background(), "t1")
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	if m.TotalVisitors != 2 || m.JoiningVisitors != 2 {
		t.Fatalf("unexpected counts: %+v", m)
	}
	if m.ConversionRate != 50 {
		t.Fatalf("expected 50%% conversion, got %d", m.ConversionRate)
	}
	if m.VisitorsAtRisk != 1 {
		t.Fatalf("expected 1 at-risk visitor, got %d", m.VisitorsAtRisk)
	}
}

func TestMetricsUnknownTeam(t *testing.T) {
	svc := team.NewService(&memRepo{}, nil)
	if _, err := svc.Metrics(context.Background(), "nope"); !errors.Is(err, team.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAllMetricsSkipsFailingTeam(t *testing.T) {
	repo := &memRepo{
		teams: []domain.ProtocolTeam{
			{ID: "t1", Name: "Alpha"},
			{ID: "t2", Name: "Beta"},
		},
		failTeams: map[string]bool{"t1": true},
	}
	svc := team.NewService(repo, nil).WithClock(func() time.Time { return testNow })

	metrics, err := svc.AllMetrics(context.Background())
	if err != nil {
		t.Fatalf("all metrics: %v", err)
	}
	if len(metrics) != 1 || metrics[0].TeamID != "t2" {
		t.Fatalf("expected only t2 to survive, got %+v", metrics)
	}
}

func TestBundle(t *testing.T) {
	repo := &memRepo{
		teams: []domain.ProtocolTeam{{ID: "t1", Name: "Alpha"}},
		visitors: map[string][]domain.Visitor{
			"t1": {
				joiningVisitor("v1", domain.MonitoringConverted, 30),
				joiningVisitor("v2", domain.MonitoringConverted, 40),
				joiningVisitor("v3", domain.MonitoringActive, 50),
			},
		},
		strategies: map[string][]domain.ProtocolStrategy{
			"t1": {{Title: "Welcome dinners", Status: domain.StrategyApproved}},
		},
	}
	svc := team.NewService(repo, nil).WithClock(func() time.Time { return testNow })

	b, err := svc.Bundle(context.Background())
	if err != nil {
		t.Fatalf("bundle: %v", err)
	}
	if b.Summary.TotalTeams != 1 {
		t.Fatalf("expected 1 team, got %d", b.Summary.TotalTeams)
	}
	// 2 of 3 joining converted: 67% puts the team in best practices with its
	// documented strategy attached.
	if len(b.BestPractices) != 1 || !b.BestPractices[0].HasRealStrategies {
		t.Fatalf("expected best practice with real strategies: %+v", b.BestPractices)
	}
}

func TestActOnNotifies(t *testing.T) {
	repo := &memRepo{
		teams: []domain.ProtocolTeam{{
			ID:     "t1",
			Name:   "Alpha",
			Leader: domain.TeamMember{ID: "leader-1", Name: "Afia"},
		}},
	}
	n := &recordingNotifier{done: make(chan struct{})}
	svc := team.NewService(repo, n)

	err := svc.ActOn(context.Background(), team.ActionInput{
		TeamID: "t1", Category: "support", Message: "Mentor assigned",
	})
	if err != nil {
		t.Fatalf("act on: %v", err)
	}

	select {
	case <-n.done:
	case <-time.After(2 * time.Second):
		t.Fatal("notification was never dispatched")
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(n.sent))
	}
	if n.sent[0].RecipientID != "leader-1" || n.sent[0].RelatedID != "t1" {
		t.Fatalf("unexpected notification: %+v", n.sent[0])
	}
}

func TestActOnUnknownTeam(t *testing.T) {
	svc := team.NewService(&memRepo{}, nil)
	if err := svc.ActOn(context.Background(), team.ActionInput{TeamID: "nope"}); !errors.Is(err, team.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
