package schedule

import (
	"testing"

	"github.com/volatiletech/null/v8"
)

func recordsWithStatuses(statuses ...AttendanceStatus) []SessionRecord {
	records := make([]SessionRecord, 0, len(statuses))
	for i, status := range statuses {
		records = append(records, SessionRecord{ID: i + 1, AttendanceStatus: status})
	}
	return records
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name     string
		records  []SessionRecord
		reported *ReportSummary
		want     ClassAttendanceSummary
	}{
		{
			name: "empty input",
			want: ClassAttendanceSummary{},
		},
		{
			name:    "counts per bucket",
			records: recordsWithStatuses(StatusPresent, StatusPresent, StatusAbsent, StatusExcused, StatusLate, StatusPlanned, StatusUnknown),
			want: ClassAttendanceSummary{
				TotalSessions: 7, Attended: 2, Absent: 1, Excused: 2, Upcoming: 1,
				AttendanceRate: float64(2) / 3 * 100,
			},
		},
		{
			name:    "no completed sessions yields 0 not NaN",
			records: recordsWithStatuses(StatusPlanned, StatusPlanned, StatusUnknown),
			want:    ClassAttendanceSummary{TotalSessions: 3, Upcoming: 2, AttendanceRate: 0},
		},
		{
			name:     "reported fraction preferred",
			records:  recordsWithStatuses(StatusPresent, StatusAbsent),
			reported: &ReportSummary{AttendanceRate: null.Float64From(0.825)},
			want:     ClassAttendanceSummary{TotalSessions: 2, Attended: 1, Absent: 1, AttendanceRate: 82.5},
		},
		{
			name:     "reported fraction clamped into range",
			records:  recordsWithStatuses(StatusPresent),
			reported: &ReportSummary{AttendanceRate: null.Float64From(1.7)},
			want:     ClassAttendanceSummary{TotalSessions: 1, Attended: 1, AttendanceRate: 100},
		},
		{
			name:     "absent reported rate falls back to computation",
			records:  recordsWithStatuses(StatusPresent, StatusAbsent, StatusAbsent, StatusAbsent),
			reported: &ReportSummary{},
			want:     ClassAttendanceSummary{TotalSessions: 4, Attended: 1, Absent: 3, AttendanceRate: 25},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aggregate(tt.records, tt.reported)
			if got != tt.want {
				t.Errorf("Aggregate() = %+v, want %+v", got, tt.want)
			}
			if sum := got.Attended + got.Absent + got.Excused + got.Upcoming; sum > got.TotalSessions {
				t.Errorf("bucket sum %d exceeds total %d", sum, got.TotalSessions)
			}
			if got.AttendanceRate < 0 || got.AttendanceRate > 100 {
				t.Errorf("rate %v out of [0,100]", got.AttendanceRate)
			}
		})
	}
}
