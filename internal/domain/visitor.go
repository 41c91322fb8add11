package domain

import (
	"errors"
	"time"
)

// MilestoneCount is the fixed length of the onboarding schedule. All twelve
// milestones are created together when monitoring starts; the schedule is
// never partially initialized.
const MilestoneCount = 12

// MonitoringWindowDays is the fixed length of the monitoring window.
// monitoringEndDate is always monitoringStartDate + 90 days.
const MonitoringWindowDays = 90

// AtRiskThresholdDays is the number of days into the monitoring window after
// which an actively monitored visitor is flagged at risk.
const AtRiskThresholdDays = 75

// VisitorType distinguishes drop-in visitors from those who opted into the
// onboarding program.
type VisitorType string

const (
	TypeVisiting VisitorType = "visiting"
	TypeJoining  VisitorType = "joining"
)

// VisitorStatus enumerates the coarse lifecycle stages of a visitor.
type VisitorStatus string

const (
	StatusVisiting  VisitorStatus = "visiting"
	StatusJoining   VisitorStatus = "joining"
	StatusConverted VisitorStatus = "converted"
)

// MonitoringStatus enumerates the fine-grained onboarding states. It only
// carries meaning for joining visitors.
type MonitoringStatus string

const (
	MonitoringNone      MonitoringStatus = "none"
	MonitoringActive    MonitoringStatus = "active"
	MonitoringCompleted MonitoringStatus = "completed"
	MonitoringConverted MonitoringStatus = "converted-to-member"
	MonitoringInactive  MonitoringStatus = "inactive"
)

// ErrInvalidTransition is returned when a status change is not allowed by the
// transition tables below.
var ErrInvalidTransition = errors.New("invalid status transition")

// statusTransitions is the closed transition table for VisitorStatus.
var statusTransitions = map[VisitorStatus][]VisitorStatus{
	StatusVisiting:  {StatusJoining},
	StatusJoining:   {StatusConverted},
	StatusConverted: {},
}

// monitoringTransitions is the closed transition table for MonitoringStatus.
// Terminal states (converted-to-member) have no outgoing edges; an inactive
// visitor may be re-activated by protocol staff.
var monitoringTransitions = map[MonitoringStatus][]MonitoringStatus{
	MonitoringNone:      {MonitoringActive},
	MonitoringActive:    {MonitoringCompleted, MonitoringConverted, MonitoringInactive},
	MonitoringCompleted: {MonitoringConverted, MonitoringInactive},
	MonitoringInactive:  {MonitoringActive},
	MonitoringConverted: {},
}

// CanTransitionStatus reports whether from → to is an allowed status change.
func CanTransitionStatus(from, to VisitorStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanTransitionMonitoring reports whether from → to is an allowed monitoring
// status change.
func CanTransitionMonitoring(from, to MonitoringStatus) bool {
	for _, next := range monitoringTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Milestone is one of the twelve fixed weekly onboarding steps. It is a value
// type owned by its visitor, identified only by its week number.
type Milestone struct {
	Week          int        `json:"week" db:"week"`
	Completed     bool       `json:"completed" db:"completed"`
	CompletedDate *time.Time `json:"completed_date" db:"completed_date"`
	Notes         string     `json:"notes" db:"notes"`
	MemberNotes   string     `json:"protocol_member_notes" db:"protocol_member_notes"`
}

// IntegrationChecklist is a fixed set of manual integration flags. It is
// maintained by protocol staff and never derived from milestone state.
type IntegrationChecklist struct {
	WelcomePackage        bool `json:"welcome_package" db:"welcome_package"`
	HomeVisit             bool `json:"home_visit" db:"home_visit"`
	SmallGroupIntro       bool `json:"small_group_intro" db:"small_group_intro"`
	MinistryOpportunities bool `json:"ministry_opportunities" db:"ministry_opportunities"`
	MentorAssigned        bool `json:"mentor_assigned" db:"mentor_assigned"`
	RegularCheckIns       bool `json:"regular_check_ins" db:"regular_check_ins"`
}

// AttendanceStatus enumerates the outcome of a single expected visit.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceExcused AttendanceStatus = "excused"
)

// AttendanceRecord is one append-only entry in a visitor's visit history.
type AttendanceRecord struct {
	ID        string           `json:"id" db:"id"`
	VisitorID string           `json:"visitor_id" db:"visitor_id"`
	Date      time.Time        `json:"date" db:"date"`
	EventType string           `json:"event_type" db:"event_type"`
	Status    AttendanceStatus `json:"status" db:"status"`
}

// Visitor is a first-time visitor tracked by a protocol team. Joining
// visitors carry a monitoring window and the full milestone schedule;
// visiting visitors carry neither.
type Visitor struct {
	ID      string `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	Email   string `json:"email" db:"email"`
	Phone   string `json:"phone" db:"phone"`
	Address string `json:"address" db:"address"`

	Type             VisitorType      `json:"type" db:"type"`
	Status           VisitorStatus    `json:"status" db:"status"`
	MonitoringStatus MonitoringStatus `json:"monitoring_status" db:"monitoring_status"`

	MonitoringStartDate *time.Time `json:"monitoring_start_date" db:"monitoring_start_date"`
	MonitoringEndDate   *time.Time `json:"monitoring_end_date" db:"monitoring_end_date"`

	Milestones        []Milestone          `json:"milestones"`
	Checklist         IntegrationChecklist `json:"integration_checklist"`
	AttendanceHistory []AttendanceRecord   `json:"attendance_history"`

	// ProtocolTeamID records the visitor's team membership; the team holds
	// no list of visitors and is always queried by filter.
	ProtocolTeamID string `json:"protocol_team_id" db:"protocol_team_id"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// HasMonitoringWindow reports whether the monitoring window fields are set.
// Risk and days-remaining calculations are not applicable without it.
func (v *Visitor) HasMonitoringWindow() bool {
	return v.MonitoringStartDate != nil && v.MonitoringEndDate != nil
}

// NewMilestoneSchedule returns the full blank schedule, weeks 1..12.
func NewMilestoneSchedule() []Milestone {
	ms := make([]Milestone, MilestoneCount)
	for i := range ms {
		ms[i] = Milestone{Week: i + 1}
	}
	return ms
}
