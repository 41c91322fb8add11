package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    VisitorStatus
		to      VisitorStatus
		allowed bool
	}{
		{"visiting to joining", StatusVisiting, StatusJoining, true},
		{"joining to converted", StatusJoining, StatusConverted, true},
		{"visiting to converted skips joining", StatusVisiting, StatusConverted, false},
		{"converted is terminal", StatusConverted, StatusJoining, false},
		{"joining back to visiting", StatusJoining, StatusVisiting, false},
		{"self transition", StatusJoining, StatusJoining, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransitionStatus(tt.from, tt.to))
		})
	}
}

func TestCanTransitionMonitoring(t *testing.T) {
	tests := []struct {
		name    string
		from    MonitoringStatus
		to      MonitoringStatus
		allowed bool
	}{
		{"none to active", MonitoringNone, MonitoringActive, true},
		{"active to completed", MonitoringActive, MonitoringCompleted, true},
		{"active to converted", MonitoringActive, MonitoringConverted, true},
		{"active to inactive", MonitoringActive, MonitoringInactive, true},
		{"completed to converted", MonitoringCompleted, MonitoringConverted, true},
		{"inactive reactivated", MonitoringInactive, MonitoringActive, true},
		{"converted is terminal", MonitoringConverted, MonitoringActive, false},
		{"none straight to converted", MonitoringNone, MonitoringConverted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransitionMonitoring(tt.from, tt.to))
		})
	}
}

func TestNewMilestoneSchedule(t *testing.T) {
	ms := NewMilestoneSchedule()
	assert.Len(t, ms, MilestoneCount)
	for i, m := range ms {
		assert.Equal(t, i+1, m.Week)
		assert.False(t, m.Completed)
		assert.Nil(t, m.CompletedDate)
	}
}

func TestImprovementPercentage(t *testing.T) {
	s := ProtocolStrategy{Results: MeasuredResults{BeforeConversionRate: 20, AfterConversionRate: 35}}
	assert.Equal(t, 15.0, s.ImprovementPercentage())

	// A regression is a negative point delta, not a ratio.
	s = ProtocolStrategy{Results: MeasuredResults{BeforeConversionRate: 40, AfterConversionRate: 30}}
	assert.Equal(t, -10.0, s.ImprovementPercentage())
}
