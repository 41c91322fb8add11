package domain

import "time"

// TeamMember is a user serving on a protocol team.
type TeamMember struct {
	ID    string `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Email string `json:"email" db:"email"`
}

// ProtocolTeam is a group of members responsible for integrating visitors.
// The team does not hold its visitors; visitors reference the team and are
// queried by filter.
type ProtocolTeam struct {
	ID               string       `json:"id" db:"id"`
	Name             string       `json:"name" db:"name"`
	Leader           TeamMember   `json:"leader"`
	Members          []TeamMember `json:"members"`
	Responsibilities []string     `json:"responsibilities"`
	CreatedAt        time.Time    `json:"created_at" db:"created_at"`
}

// TrendDirection classifies a team's visitor-intake growth over two adjacent
// three-month windows.
type TrendDirection string

const (
	TrendGrowing   TrendDirection = "growing"
	TrendStable    TrendDirection = "stable"
	TrendDeclining TrendDirection = "declining"
)

// AtRiskVisitor is one entry in a team's risk detail list.
type AtRiskVisitor struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	DaysSinceStart int    `json:"days_since_start"`
}

// TeamMetrics is the fully derived performance snapshot for one team. It is
// recomputed fresh on every analytics request and never persisted.
type TeamMetrics struct {
	TeamID   string `json:"team_id"`
	TeamName string `json:"team_name"`

	TotalVisitors    int `json:"total_visitors"`
	JoiningVisitors  int `json:"joining_visitors"`
	ConvertedMembers int `json:"converted_members"`
	ActiveVisitors   int `json:"active_visitors"`

	ConversionRate int `json:"conversion_rate"` // whole percent

	GrowthTrend    float64        `json:"growth_trend"` // signed percent
	TrendDirection TrendDirection `json:"trend_direction"`

	VisitorsAtRisk int             `json:"visitors_at_risk"`
	AtRiskDetails  []AtRiskVisitor `json:"at_risk_details"`
}
