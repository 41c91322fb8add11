package analytics

import "math"

// safePercent returns numerator/denominator as a whole percentage, rounded
// half away from zero. Returns 0 when the denominator is 0.
func safePercent(numerator, denominator float64) int {
	if denominator == 0 {
		return 0
	}
	return int(math.Round(numerator / denominator * 100))
}

// safeRatioPercent returns the signed percentage change from previous to
// recent, rounded to one decimal place. Returns 0 when previous is 0.
func safeRatioPercent(recent, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return math.Round((recent-previous)/previous*1000) / 10
}
