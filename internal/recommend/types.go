package recommend

import "github.com/gracepoint/protocol-analytics/internal/domain"

// Priority ranks how urgently an action item needs attention.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
)

// SupportAction flags a declining team for leadership support.
type SupportAction struct {
	TeamID             string   `json:"team_id"`
	TeamName           string   `json:"team_name"`
	Priority           Priority `json:"priority"`
	GrowthTrend        float64  `json:"growth_trend"`
	ConversionRate     int      `json:"conversion_rate"`
	RecommendedActions []string `json:"recommended_actions"`
}

// StrategyHighlight is a documented strategy attached to a best-practice
// entry.
type StrategyHighlight struct {
	Title                 string  `json:"title"`
	Category              string  `json:"category"`
	ImprovementPercentage float64 `json:"improvement_percentage"`
	TimesImplemented      int     `json:"times_implemented"`
}

// BestPractice surfaces a high-performing team as a model for others. When
// the team has no documented strategies the Insight field carries a
// synthesized summary of its numbers instead, and HasRealStrategies is false
// so the presentation layer can distinguish measured data from inference.
type BestPractice struct {
	TeamID            string              `json:"team_id"`
	TeamName          string              `json:"team_name"`
	ConversionRate    int                 `json:"conversion_rate"`
	GrowthTrend       float64             `json:"growth_trend"`
	HasRealStrategies bool                `json:"has_real_strategies"`
	Strategies        []StrategyHighlight `json:"strategies,omitempty"`
	Insight           string              `json:"insight,omitempty"`
}

// TrainingNeed flags a team whose conversion rate is low across a meaningful
// visitor volume.
type TrainingNeed struct {
	TeamID          string   `json:"team_id"`
	TeamName        string   `json:"team_name"`
	Priority        Priority `json:"priority"`
	ConversionRate  int      `json:"conversion_rate"`
	JoiningVisitors int      `json:"joining_visitors"`
}

// MonitoringAlert flags a team with visitors approaching the end of their
// monitoring window unresolved.
type MonitoringAlert struct {
	TeamID         string                 `json:"team_id"`
	TeamName       string                 `json:"team_name"`
	VisitorsAtRisk int                    `json:"visitors_at_risk"`
	Details        []domain.AtRiskVisitor `json:"details"`
}

// Recognition ranks a team by composite score for public acknowledgement.
type Recognition struct {
	Rank           int     `json:"rank"`
	Award          string  `json:"award"`
	TeamID         string  `json:"team_id"`
	TeamName       string  `json:"team_name"`
	Score          float64 `json:"score"`
	ConversionRate int     `json:"conversion_rate"`
	GrowthTrend    float64 `json:"growth_trend"`
}

// Summary aggregates the bundle-wide statistics. Its counts are derived from
// the same metrics set as the per-bucket lists and always agree with them.
type Summary struct {
	TotalTeams            int     `json:"total_teams"`
	TeamsNeedingSupport   int     `json:"teams_needing_support"`
	TeamsExcelling        int     `json:"teams_excelling"`
	TeamsNeedingTraining  int     `json:"teams_needing_training"`
	TeamsWithAlerts       int     `json:"teams_with_alerts"`
	AverageConversionRate float64 `json:"average_conversion_rate"`
	GrowingTeams          int     `json:"growing_teams"`
	StableTeams           int     `json:"stable_teams"`
	DecliningTeams        int     `json:"declining_teams"`
}

// Bundle is the full recommendation output consumed by the dashboard.
type Bundle struct {
	Summary          Summary           `json:"summary"`
	SupportActions   []SupportAction   `json:"support_actions"`
	BestPractices    []BestPractice    `json:"best_practices"`
	TrainingNeeds    []TrainingNeed    `json:"training_needs"`
	MonitoringAlerts []MonitoringAlert `json:"monitoring_alerts"`
	Recognition      []Recognition     `json:"recognition"`
}
