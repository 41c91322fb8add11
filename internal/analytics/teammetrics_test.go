package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gracepoint/protocol-analytics/internal/domain"
)

var testTeam = &domain.ProtocolTeam{ID: "team-1", Name: "Alpha"}

// createdVisitor returns a minimal well-formed visitor created the given
// number of days before now.
func createdVisitor(id string, daysAgo int, now time.Time) domain.Visitor {
	return domain.Visitor{
		ID:        id,
		Name:      "Visitor " + id,
		Type:      domain.TypeVisiting,
		Status:    domain.StatusVisiting,
		CreatedAt: now.AddDate(0, 0, -daysAgo),
	}
}

func TestComputeTeamMetricsCounts(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	joining := createdVisitor("v1", 10, now)
	joining.Status = domain.StatusJoining
	joining.MonitoringStatus = domain.MonitoringActive

	converted := createdVisitor("v2", 200, now)
	converted.Status = domain.StatusConverted
	converted.MonitoringStatus = domain.MonitoringConverted

	plain := createdVisitor("v3", 5, now)

	m := ComputeTeamMetrics(testTeam, []domain.Visitor{joining, converted, plain}, now)
	assert.Equal(t, 3, m.TotalVisitors)
	assert.Equal(t, 1, m.JoiningVisitors)
	assert.Equal(t, 1, m.ConvertedMembers)
	assert.Equal(t, 1, m.ActiveVisitors)
	assert.Equal(t, "team-1", m.TeamID)
	assert.Equal(t, "Alpha", m.TeamName)
}

func TestConversionRateZeroJoining(t *testing.T) {
	now := time.Now()
	m := ComputeTeamMetrics(testTeam, []domain.Visitor{createdVisitor("v1", 3, now)}, now)
	assert.Equal(t, 0, m.ConversionRate)

	// Empty cohort as well.
	m = ComputeTeamMetrics(testTeam, nil, now)
	assert.Equal(t, 0, m.ConversionRate)
	assert.Equal(t, float64(0), m.GrowthTrend)
	assert.Equal(t, domain.TrendStable, m.TrendDirection)
}

func TestGrowthTrendWindows(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	// 2 recent (within 3 months), 10 previous (3-6 months ago): -80%.
	var visitors []domain.Visitor
	visitors = append(visitors,
		createdVisitor("r1", 10, now),
		createdVisitor("r2", 45, now),
	)
	for i := 0; i < 10; i++ {
		visitors = append(visitors, createdVisitor("p"+string(rune('0'+i)), 120+i, now))
	}

	m := ComputeTeamMetrics(testTeam, visitors, now)
	assert.Equal(t, float64(-80), m.GrowthTrend)
	assert.Equal(t, domain.TrendDeclining, m.TrendDirection)
}

func TestGrowthTrendPreviousZero(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	m := ComputeTeamMetrics(testTeam, []domain.Visitor{
		createdVisitor("r1", 10, now),
		createdVisitor("r2", 20, now),
		// Older than both windows: counts in neither.
		createdVisitor("old", 400, now),
	}, now)
	assert.Equal(t, float64(0), m.GrowthTrend)
	assert.Equal(t, domain.TrendStable, m.TrendDirection)
}

func TestClassifyTrendBoundaries(t *testing.T) {
	tests := []struct {
		trend float64
		want  domain.TrendDirection
	}{
		{5.0, domain.TrendStable},
		{-5.0, domain.TrendStable},
		{5.1, domain.TrendGrowing},
		{-5.1, domain.TrendDeclining},
		{0, domain.TrendStable},
		{100, domain.TrendGrowing},
		{-80, domain.TrendDeclining},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, classifyTrend(tt.trend), "trend %v", tt.trend)
	}
}

func TestVisitorsAtRiskDetails(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	atRisk := *monitoredVisitor(domain.MonitoringActive, 80, now)
	atRisk.ID = "risk-1"
	safe := *monitoredVisitor(domain.MonitoringActive, 30, now)
	safe.ID = "safe-1"
	done := *monitoredVisitor(domain.MonitoringCompleted, 85, now)
	done.ID = "done-1"

	m := ComputeTeamMetrics(testTeam, []domain.Visitor{atRisk, safe, done}, now)
	assert.Equal(t, 1, m.VisitorsAtRisk)
	require.Len(t, m.AtRiskDetails, 1)
	assert.Equal(t, atRisk.Name, m.AtRiskDetails[0].Name)
	assert.Equal(t, atRisk.Email, m.AtRiskDetails[0].Email)
	assert.Equal(t, 80, m.AtRiskDetails[0].DaysSinceStart)
}

func TestMalformedVisitorsSkipped(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	good := createdVisitor("ok", 10, now)
	noID := createdVisitor("", 10, now)
	noCreated := domain.Visitor{ID: "bad-date"}

	m := ComputeTeamMetrics(testTeam, []domain.Visitor{good, noID, noCreated}, now)
	assert.Equal(t, 1, m.TotalVisitors)
}

func TestComputeTeamMetricsIdempotent(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	visitors := []domain.Visitor{
		createdVisitor("v1", 10, now),
		*monitoredVisitor(domain.MonitoringActive, 80, now),
	}
	first := ComputeTeamMetrics(testTeam, visitors, now)
	second := ComputeTeamMetrics(testTeam, visitors, now)
	assert.Equal(t, first, second)
}
