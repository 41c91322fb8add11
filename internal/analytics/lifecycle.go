package analytics

import (
	"math"
	"time"

	"github.com/gracepoint/protocol-analytics/internal/domain"
)

// DaysSinceStart returns the whole days elapsed since monitoring started,
// rounded down. Returns 0 when the monitoring window is absent.
func DaysSinceStart(v *domain.Visitor, now time.Time) int {
	if v.MonitoringStartDate == nil {
		return 0
	}
	days := int(math.Floor(now.Sub(*v.MonitoringStartDate).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

// DaysRemaining returns the days left in the monitoring window, rounded up
// and floored at zero. Nil when the visitor is not actively monitored or the
// window is absent: "not applicable", never an error.
func DaysRemaining(v *domain.Visitor, now time.Time) *int {
	if v.MonitoringStatus != domain.MonitoringActive || v.MonitoringEndDate == nil {
		return nil
	}
	days := int(math.Ceil(v.MonitoringEndDate.Sub(now).Hours() / 24))
	if days < 0 {
		days = 0
	}
	return &days
}

// IsAtRisk reports whether an actively monitored visitor is more than 75 days
// into the window without resolution. The predicate is re-evaluated on every
// read: risk is relative to the ever-moving reference time, so a stored flag
// would go stale.
func IsAtRisk(v *domain.Visitor, now time.Time) bool {
	if v.MonitoringStatus != domain.MonitoringActive || v.MonitoringStartDate == nil {
		return false
	}
	return DaysSinceStart(v, now) > domain.AtRiskThresholdDays
}

// VisitorInsight is the per-visitor derived view served to the dashboard.
type VisitorInsight struct {
	AttendanceRate     int               `json:"attendance_rate"`
	MonitoringProgress MilestoneProgress `json:"monitoring_progress"`
	DaysRemaining      *int              `json:"days_remaining"`
	IsAtRisk           bool              `json:"is_at_risk"`
}

// Insight assembles the derived view for one visitor. expectedEvents is the
// reference event count for the attendance period.
func Insight(v *domain.Visitor, expectedEvents int, now time.Time) VisitorInsight {
	return VisitorInsight{
		AttendanceRate:     VisitorAttendance(v.AttendanceHistory, expectedEvents).Rate,
		MonitoringProgress: Progress(v.Milestones),
		DaysRemaining:      DaysRemaining(v, now),
		IsAtRisk:           IsAtRisk(v, now),
	}
}
