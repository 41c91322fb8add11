package domain

import "time"

// StrategyStatus enumerates the review lifecycle of a documented strategy.
type StrategyStatus string

const (
	StrategySubmitted StrategyStatus = "submitted"
	StrategyApproved  StrategyStatus = "approved"
	StrategyFeatured  StrategyStatus = "featured"
	StrategyRejected  StrategyStatus = "rejected"
)

// MeasuredResults holds the before/after conversion rates a team measured
// while applying a strategy.
type MeasuredResults struct {
	BeforeConversionRate float64 `json:"before_conversion_rate" db:"before_conversion_rate"`
	AfterConversionRate  float64 `json:"after_conversion_rate" db:"after_conversion_rate"`
}

// StrategyEffectiveness tracks how widely a strategy has spread.
type StrategyEffectiveness struct {
	TimesShared      int `json:"times_shared" db:"times_shared"`
	TimesImplemented int `json:"times_implemented" db:"times_implemented"`
}

// ProtocolStrategy is a documented best practice belonging to one team.
type ProtocolStrategy struct {
	ID            string                `json:"id" db:"id"`
	TeamID        string                `json:"team_id" db:"team_id"`
	Title         string                `json:"title" db:"title"`
	Category      string                `json:"category" db:"category"`
	Results       MeasuredResults       `json:"measured_results"`
	Status        StrategyStatus        `json:"status" db:"status"`
	Effectiveness StrategyEffectiveness `json:"effectiveness"`
	CreatedAt     time.Time             `json:"created_at" db:"created_at"`
}

// ImprovementPercentage is the percentage-point delta between the measured
// after and before conversion rates. It is a difference, not a ratio: a team
// moving from 20% to 35% improved by 15 points.
func (s *ProtocolStrategy) ImprovementPercentage() float64 {
	return s.Results.AfterConversionRate - s.Results.BeforeConversionRate
}

// IsShareable reports whether the strategy may be surfaced to other teams.
func (s *ProtocolStrategy) IsShareable() bool {
	return s.Status == StrategyApproved || s.Status == StrategyFeatured
}
