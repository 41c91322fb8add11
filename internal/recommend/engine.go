// Package recommend turns the per-team metrics collection into ranked,
// prioritized action lists for the protocol dashboard. Everything here is a
// pure function of the metrics snapshot plus each team's documented
// strategies; recomputing from the same inputs yields identical output.
package recommend

import (
	"fmt"
	"math"
	"sort"

	"github.com/gracepoint/protocol-analytics/internal/domain"
)

// Decision thresholds for the five buckets.
const (
	supportHighPriorityTrend = -20.0
	bestPracticeMinRate      = 50
	bestPracticeLimit        = 3
	trainingMaxRate          = 30
	trainingHighPriorityRate = 15
	trainingMinVolume        = 3
	recognitionLimit         = 3
	strategiesPerTeam        = 3
)

// recognitionAwards maps rank 1..3 to its fixed label.
var recognitionAwards = [recognitionLimit]string{
	"Top Performer",
	"Excellence Award",
	"Outstanding Achievement",
}

// supportPlaybook is the fixed action list attached to every support flag.
var supportPlaybook = []string{
	"Pair the team leader with a mentor from a growing team",
	"Review the team's integration strategy with protocol leadership",
	"Provision additional follow-up resources and materials",
	"Schedule refresher training on visitor integration practices",
}

// Engine generates the recommendation bundle from team metrics.
type Engine struct{}

// NewEngine creates a recommendation engine.
func NewEngine() *Engine { return &Engine{} }

// Build partitions and ranks the metrics collection into the five output
// lists and derives the summary. strategies maps team id to that team's
// documented strategies; only approved/featured entries are surfaced, at most
// three per team.
func (e *Engine) Build(metrics []domain.TeamMetrics, strategies map[string][]domain.ProtocolStrategy) *Bundle {
	b := &Bundle{
		SupportActions:   e.supportActions(metrics),
		BestPractices:    e.bestPractices(metrics, strategies),
		TrainingNeeds:    e.trainingNeeds(metrics),
		MonitoringAlerts: e.monitoringAlerts(metrics),
		Recognition:      e.recognition(metrics),
	}
	b.Summary = e.summarize(metrics, b)
	return b
}

func (e *Engine) supportActions(metrics []domain.TeamMetrics) []SupportAction {
	actions := []SupportAction{}
	for _, m := range sortedByID(metrics) {
		if m.TrendDirection != domain.TrendDeclining {
			continue
		}
		priority := PriorityMedium
		if m.GrowthTrend < supportHighPriorityTrend {
			priority = PriorityHigh
		}
		actions = append(actions, SupportAction{
			TeamID:             m.TeamID,
			TeamName:           m.TeamName,
			Priority:           priority,
			GrowthTrend:        m.GrowthTrend,
			ConversionRate:     m.ConversionRate,
			RecommendedActions: supportPlaybook,
		})
	}
	return actions
}

func (e *Engine) bestPractices(metrics []domain.TeamMetrics, strategies map[string][]domain.ProtocolStrategy) []BestPractice {
	var qualified []domain.TeamMetrics
	for _, m := range metrics {
		if m.ConversionRate >= bestPracticeMinRate || m.TrendDirection == domain.TrendGrowing {
			qualified = append(qualified, m)
		}
	}
	sort.Slice(qualified, func(i, j int) bool {
		if qualified[i].ConversionRate != qualified[j].ConversionRate {
			return qualified[i].ConversionRate > qualified[j].ConversionRate
		}
		return qualified[i].TeamID < qualified[j].TeamID
	})
	if len(qualified) > bestPracticeLimit {
		qualified = qualified[:bestPracticeLimit]
	}

	practices := []BestPractice{}
	for _, m := range qualified {
		bp := BestPractice{
			TeamID:         m.TeamID,
			TeamName:       m.TeamName,
			ConversionRate: m.ConversionRate,
			GrowthTrend:    m.GrowthTrend,
		}
		for _, s := range strategies[m.TeamID] {
			if !s.IsShareable() {
				continue
			}
			bp.Strategies = append(bp.Strategies, StrategyHighlight{
				Title:                 s.Title,
				Category:              s.Category,
				ImprovementPercentage: s.ImprovementPercentage(),
				TimesImplemented:      s.Effectiveness.TimesImplemented,
			})
			if len(bp.Strategies) == strategiesPerTeam {
				break
			}
		}
		bp.HasRealStrategies = len(bp.Strategies) > 0
		if !bp.HasRealStrategies {
			bp.Insight = synthesizeInsight(m)
		}
		practices = append(practices, bp)
	}
	return practices
}

func (e *Engine) trainingNeeds(metrics []domain.TeamMetrics) []TrainingNeed {
	needs := []TrainingNeed{}
	for _, m := range sortedByID(metrics) {
		// The volume gate keeps teams too small for a meaningful rate
		// out of the training list.
		if m.ConversionRate >= trainingMaxRate || m.JoiningVisitors < trainingMinVolume {
			continue
		}
		priority := PriorityMedium
		if m.ConversionRate < trainingHighPriorityRate {
			priority = PriorityHigh
		}
		needs = append(needs, TrainingNeed{
			TeamID:          m.TeamID,
			TeamName:        m.TeamName,
			Priority:        priority,
			ConversionRate:  m.ConversionRate,
			JoiningVisitors: m.JoiningVisitors,
		})
	}
	return needs
}

func (e *Engine) monitoringAlerts(metrics []domain.TeamMetrics) []MonitoringAlert {
	alerts := []MonitoringAlert{}
	for _, m := range sortedByID(metrics) {
		if m.VisitorsAtRisk == 0 {
			continue
		}
		alerts = append(alerts, MonitoringAlert{
			TeamID:         m.TeamID,
			TeamName:       m.TeamName,
			VisitorsAtRisk: m.VisitorsAtRisk,
			Details:        m.AtRiskDetails,
		})
	}
	return alerts
}

func (e *Engine) recognition(metrics []domain.TeamMetrics) []Recognition {
	ranked := make([]domain.TeamMetrics, len(metrics))
	copy(ranked, metrics)
	sort.Slice(ranked, func(i, j int) bool {
		si, sj := recognitionScore(ranked[i]), recognitionScore(ranked[j])
		if si != sj {
			return si > sj
		}
		return ranked[i].TeamID < ranked[j].TeamID
	})
	if len(ranked) > recognitionLimit {
		ranked = ranked[:recognitionLimit]
	}

	out := []Recognition{}
	for i, m := range ranked {
		out = append(out, Recognition{
			Rank:           i + 1,
			Award:          recognitionAwards[i],
			TeamID:         m.TeamID,
			TeamName:       m.TeamName,
			Score:          recognitionScore(m),
			ConversionRate: m.ConversionRate,
			GrowthTrend:    m.GrowthTrend,
		})
	}
	return out
}

// recognitionScore rewards conversion and positive momentum only; negative
// growth contributes 0 rather than penalizing further.
func recognitionScore(m domain.TeamMetrics) float64 {
	return float64(m.ConversionRate)*0.6 + math.Max(m.GrowthTrend, 0)*0.4
}

func (e *Engine) summarize(metrics []domain.TeamMetrics, b *Bundle) Summary {
	s := Summary{
		TotalTeams:           len(metrics),
		TeamsNeedingSupport:  len(b.SupportActions),
		TeamsExcelling:       len(b.BestPractices),
		TeamsNeedingTraining: len(b.TrainingNeeds),
		TeamsWithAlerts:      len(b.MonitoringAlerts),
	}
	var rateSum int
	for _, m := range metrics {
		rateSum += m.ConversionRate
		switch m.TrendDirection {
		case domain.TrendGrowing:
			s.GrowingTeams++
		case domain.TrendDeclining:
			s.DecliningTeams++
		default:
			s.StableTeams++
		}
	}
	if len(metrics) > 0 {
		s.AverageConversionRate = math.Round(float64(rateSum)/float64(len(metrics))*10) / 10
	}
	return s
}

// synthesizeInsight builds a fallback description from the numbers when a
// qualifying team has documented nothing.
func synthesizeInsight(m domain.TeamMetrics) string {
	if m.TrendDirection == domain.TrendGrowing {
		return fmt.Sprintf(
			"%s converts %d%% of joining visitors and grew intake %.1f%% over the last quarter. "+
				"No documented strategies yet. Ask the team to write up what is working.",
			m.TeamName, m.ConversionRate, m.GrowthTrend)
	}
	return fmt.Sprintf(
		"%s converts %d%% of joining visitors. "+
			"No documented strategies yet. Ask the team to write up what is working.",
		m.TeamName, m.ConversionRate)
}

// sortedByID returns a copy ordered by team id so every bucket is emitted in
// a deterministic order regardless of input ordering.
func sortedByID(metrics []domain.TeamMetrics) []domain.TeamMetrics {
	out := make([]domain.TeamMetrics, len(metrics))
	copy(out, metrics)
	sort.Slice(out, func(i, j int) bool { return out[i].TeamID < out[j].TeamID })
	return out
}
