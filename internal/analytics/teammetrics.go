package analytics

import (
	"log"
	"time"

	"github.com/gracepoint/protocol-analytics/internal/domain"
)

// Growth trend thresholds: a team is growing above +5%, declining below −5%,
// and stable at exactly ±5.
const trendThreshold = 5.0

// ComputeTeamMetrics derives the full performance snapshot for one team from
// its visitor set. Malformed records are skipped with a logged anomaly rather
// than failing the whole team. Partial metrics beat a blank dashboard.
func ComputeTeamMetrics(team *domain.ProtocolTeam, visitors []domain.Visitor, now time.Time) domain.TeamMetrics {
	m := domain.TeamMetrics{
		TeamID:        team.ID,
		TeamName:      team.Name,
		AtRiskDetails: []domain.AtRiskVisitor{},
	}

	recentStart := now.AddDate(0, -3, 0)
	previousStart := now.AddDate(0, -6, 0)

	var recentCount, previousCount int

	for i := range visitors {
		v := &visitors[i]
		if v.ID == "" || v.CreatedAt.IsZero() {
			log.Printf("[analytics] skipping malformed visitor record (team=%s id=%q createdAt=%v)",
				team.ID, v.ID, v.CreatedAt)
			continue
		}

		m.TotalVisitors++
		if v.Status == domain.StatusJoining {
			m.JoiningVisitors++
		}
		switch v.MonitoringStatus {
		case domain.MonitoringConverted:
			m.ConvertedMembers++
		case domain.MonitoringActive:
			m.ActiveVisitors++
		}

		// Window membership by creation time: recent is [now-3mo, now],
		// previous is [now-6mo, now-3mo).
		if !v.CreatedAt.Before(recentStart) && !v.CreatedAt.After(now) {
			recentCount++
		} else if !v.CreatedAt.Before(previousStart) && v.CreatedAt.Before(recentStart) {
			previousCount++
		}

		if IsAtRisk(v, now) {
			m.VisitorsAtRisk++
			m.AtRiskDetails = append(m.AtRiskDetails, domain.AtRiskVisitor{
				Name:           v.Name,
				Email:          v.Email,
				DaysSinceStart: DaysSinceStart(v, now),
			})
		}
	}

	m.ConversionRate = safePercent(float64(m.ConvertedMembers), float64(m.JoiningVisitors))
	m.GrowthTrend = safeRatioPercent(float64(recentCount), float64(previousCount))
	m.TrendDirection = classifyTrend(m.GrowthTrend)

	return m
}

func classifyTrend(growthTrend float64) domain.TrendDirection {
	switch {
	case growthTrend > trendThreshold:
		return domain.TrendGrowing
	case growthTrend < -trendThreshold:
		return domain.TrendDeclining
	default:
		return domain.TrendStable
	}
}
