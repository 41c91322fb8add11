package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gracepoint/protocol-analytics/internal/domain"
)

func history(statuses ...domain.AttendanceStatus) []domain.AttendanceRecord {
	recs := make([]domain.AttendanceRecord, len(statuses))
	for i, s := range statuses {
		recs[i] = domain.AttendanceRecord{
			Date:      time.Date(2025, 1, 5+i*7, 0, 0, 0, 0, time.UTC),
			EventType: "sunday-service",
			Status:    s,
		}
	}
	return recs
}

func TestVisitorAttendance(t *testing.T) {
	tests := []struct {
		name     string
		history  []domain.AttendanceRecord
		expected int
		wantRate int
	}{
		{"perfect attendance", history(domain.AttendancePresent, domain.AttendancePresent), 2, 100},
		{"two of three", history(domain.AttendancePresent, domain.AttendanceAbsent, domain.AttendancePresent), 3, 67},
		{"excused counts as not present", history(domain.AttendanceExcused, domain.AttendancePresent), 4, 25},
		{"no expected events", history(domain.AttendancePresent), 0, 0},
		{"new visitor with no history", nil, 6, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := VisitorAttendance(tt.history, tt.expected)
			assert.Equal(t, tt.wantRate, s.Rate)
		})
	}
}

func TestTeamAttendancePools(t *testing.T) {
	// Pooled: (9+1)/(10+2) = 83%. Averaging per-visitor rates would give
	// (90+50)/2 = 70%; the convention here is pooled.
	summaries := []AttendanceSummary{
		{PresentCount: 9, ExpectedCount: 10},
		{PresentCount: 1, ExpectedCount: 2},
	}
	team := TeamAttendance(summaries)
	assert.Equal(t, 10, team.PresentCount)
	assert.Equal(t, 12, team.ExpectedCount)
	assert.Equal(t, 83, team.Rate)
}

func TestTeamAttendanceEmpty(t *testing.T) {
	team := TeamAttendance(nil)
	assert.Equal(t, 0, team.Rate)
}
