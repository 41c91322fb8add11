package analytics

import (
	"errors"
	"time"

	"github.com/gracepoint/protocol-analytics/internal/domain"
)

// ErrInvalidMilestoneWeek is returned when a milestone update names a week
// outside the fixed 1..12 schedule.
var ErrInvalidMilestoneWeek = errors.New("milestone week must be between 1 and 12")

// MilestoneProgress summarizes a visitor's position in the onboarding
// schedule.
type MilestoneProgress struct {
	CompletedCount     int `json:"completed_count"`
	TotalCount         int `json:"total_count"`
	ProgressPercentage int `json:"progress_percentage"`
}

// Progress computes completion state over a milestone schedule. TotalCount is
// 12 for any initialized joining visitor; the zero-length guard exists for
// visiting visitors who carry no schedule.
func Progress(milestones []domain.Milestone) MilestoneProgress {
	completed := 0
	for _, m := range milestones {
		if m.Completed {
			completed++
		}
	}
	return MilestoneProgress{
		CompletedCount:     completed,
		TotalCount:         len(milestones),
		ProgressPercentage: safePercent(float64(completed), float64(len(milestones))),
	}
}

// ApplyMilestoneUpdate mutates the single milestone for the given week in
// place. CompletedDate is set only on the transition into completed, and is
// preserved if the milestone is later marked incomplete: updates modify the
// record in place and never erase the historical completion date.
func ApplyMilestoneUpdate(milestones []domain.Milestone, week int, completed bool, notes string, now time.Time) error {
	if week < 1 || week > domain.MilestoneCount {
		return ErrInvalidMilestoneWeek
	}
	for i := range milestones {
		m := &milestones[i]
		if m.Week != week {
			continue
		}
		if completed && !m.Completed {
			d := now
			m.CompletedDate = &d
		}
		m.Completed = completed
		if notes != "" {
			m.Notes = notes
		}
		return nil
	}
	return ErrInvalidMilestoneWeek
}
