package analytics

import (
	"github.com/gracepoint/protocol-analytics/internal/domain"
)

// AttendanceSummary is the reduced view of a visit history against a known
// number of expected events.
type AttendanceSummary struct {
	PresentCount  int `json:"present_count"`
	ExpectedCount int `json:"expected_count"`
	Rate          int `json:"rate"` // whole percent
}

// CountPresent returns the number of history entries marked present.
func CountPresent(history []domain.AttendanceRecord) int {
	n := 0
	for _, rec := range history {
		if rec.Status == domain.AttendancePresent {
			n++
		}
	}
	return n
}

// VisitorAttendance reduces one visitor's history against the expected event
// count for the period. Rate is 0 when nothing was expected.
func VisitorAttendance(history []domain.AttendanceRecord, expected int) AttendanceSummary {
	present := CountPresent(history)
	return AttendanceSummary{
		PresentCount:  present,
		ExpectedCount: expected,
		Rate:          safePercent(float64(present), float64(expected)),
	}
}

// TeamAttendance pools attendance across a team's visitors: numerators and
// denominators are summed before dividing once. Pooling weights every
// expected event equally; averaging per-visitor rates would instead weight
// every visitor equally and diverge whenever expected-event counts differ.
func TeamAttendance(summaries []AttendanceSummary) AttendanceSummary {
	var present, expected int
	for _, s := range summaries {
		present += s.PresentCount
		expected += s.ExpectedCount
	}
	return AttendanceSummary{
		PresentCount:  present,
		ExpectedCount: expected,
		Rate:          safePercent(float64(present), float64(expected)),
	}
}
