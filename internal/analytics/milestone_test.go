package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gracepoint/protocol-analytics/internal/domain"
)

func scheduleWithCompleted(n int) []domain.Milestone {
	ms := domain.NewMilestoneSchedule()
	for i := 0; i < n; i++ {
		ms[i].Completed = true
	}
	return ms
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name          string
		milestones    []domain.Milestone
		wantCompleted int
		wantTotal     int
		wantPercent   int
	}{
		{"none completed", scheduleWithCompleted(0), 0, 12, 0},
		{"seven of twelve", scheduleWithCompleted(7), 7, 12, 58},
		{"all completed", scheduleWithCompleted(12), 12, 12, 100},
		{"half completed", scheduleWithCompleted(6), 6, 12, 50},
		{"empty schedule", nil, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Progress(tt.milestones)
			assert.Equal(t, tt.wantCompleted, p.CompletedCount)
			assert.Equal(t, tt.wantTotal, p.TotalCount)
			assert.Equal(t, tt.wantPercent, p.ProgressPercentage)
		})
	}
}

func TestProgressBounds(t *testing.T) {
	for n := 0; n <= 12; n++ {
		p := Progress(scheduleWithCompleted(n))
		assert.GreaterOrEqual(t, p.ProgressPercentage, 0)
		assert.LessOrEqual(t, p.ProgressPercentage, 100)
		assert.Equal(t, n == 12, p.ProgressPercentage == 100)
	}
}

func TestApplyMilestoneUpdate(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	ms := domain.NewMilestoneSchedule()

	require.NoError(t, ApplyMilestoneUpdate(ms, 3, true, "met for coffee", now))
	assert.True(t, ms[2].Completed)
	require.NotNil(t, ms[2].CompletedDate)
	assert.Equal(t, now, *ms[2].CompletedDate)
	assert.Equal(t, "met for coffee", ms[2].Notes)

	// Only the targeted milestone changes.
	for i, m := range ms {
		if i == 2 {
			continue
		}
		assert.False(t, m.Completed)
		assert.Nil(t, m.CompletedDate)
	}
}

func TestApplyMilestoneUpdateStickyDate(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	later := now.Add(48 * time.Hour)
	ms := domain.NewMilestoneSchedule()

	require.NoError(t, ApplyMilestoneUpdate(ms, 5, true, "", now))
	require.NoError(t, ApplyMilestoneUpdate(ms, 5, false, "", later))

	// Un-completing preserves the original completion date.
	assert.False(t, ms[4].Completed)
	require.NotNil(t, ms[4].CompletedDate)
	assert.Equal(t, now, *ms[4].CompletedDate)

	// Re-completing is a fresh transition into completed and stamps anew.
	require.NoError(t, ApplyMilestoneUpdate(ms, 5, true, "", later))
	assert.Equal(t, later, *ms[4].CompletedDate)
}

func TestApplyMilestoneUpdateInvalidWeek(t *testing.T) {
	now := time.Now()
	ms := domain.NewMilestoneSchedule()

	for _, week := range []int{0, -1, 13, 100} {
		err := ApplyMilestoneUpdate(ms, week, true, "", now)
		assert.ErrorIs(t, err, ErrInvalidMilestoneWeek, "week %d", week)
	}
}

func TestApplyMilestoneUpdateKeepsNotesWhenEmpty(t *testing.T) {
	now := time.Now()
	ms := domain.NewMilestoneSchedule()

	require.NoError(t, ApplyMilestoneUpdate(ms, 1, true, "first note", now))
	require.NoError(t, ApplyMilestoneUpdate(ms, 1, true, "", now))
	assert.Equal(t, "first note", ms[0].Notes)

	require.NoError(t, ApplyMilestoneUpdate(ms, 1, true, "revised", now))
	assert.Equal(t, "revised", ms[0].Notes)
}
