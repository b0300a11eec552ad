package schedule

import "math"

// Aggregate computes the per-class attendance counters from canonical
// records. Late counts into the excused bucket for rate purposes.
//
// When the report provider already computed a rate (a 0-1 fraction), it is
// preferred over the local computation; otherwise the rate is
// attended/(attended+absent), with an empty denominator yielding 0 rather
// than NaN. No rounding happens here.
func Aggregate(records []SessionRecord, reported *ReportSummary) ClassAttendanceSummary {
	summary := ClassAttendanceSummary{TotalSessions: len(records)}

	for _, rec := range records {
		switch rec.AttendanceStatus {
		case StatusPresent:
			summary.Attended++
		case StatusAbsent:
			summary.Absent++
		case StatusExcused, StatusLate:
			summary.Excused++
		case StatusPlanned:
			summary.Upcoming++
		}
	}

	summary.AttendanceRate = resolveRate(summary, reported)
	return summary
}

func resolveRate(summary ClassAttendanceSummary, reported *ReportSummary) float64 {
	if reported != nil && reported.AttendanceRate.Valid {
		rate := reported.AttendanceRate.Float64 * 100
		if !math.IsNaN(rate) && !math.IsInf(rate, 0) {
			return clampRate(rate)
		}
	}
	done := summary.Attended + summary.Absent
	if done == 0 {
		return 0
	}
	return clampRate(float64(summary.Attended) / float64(done) * 100)
}

func clampRate(rate float64) float64 {
	if rate < 0 {
		return 0
	}
	if rate > 100 {
		return 100
	}
	return rate
}
