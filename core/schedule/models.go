package schedule

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
)

// AttendanceStatus is the canonical attendance outcome of a session.
// Backend vocabulary varies across sources; anything unrecognized maps to
// StatusUnknown so that new values degrade to neutral display instead of
// breaking the pipeline.
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
	StatusLate    AttendanceStatus = "late"
	StatusExcused AttendanceStatus = "excused"
	StatusPlanned AttendanceStatus = "planned"
	StatusUnknown AttendanceStatus = "unknown"
)

var attendanceAliases = map[string]AttendanceStatus{
	"present":  StatusPresent,
	"attended": StatusPresent,
	"absent":   StatusAbsent,
	"missed":   StatusAbsent,
	"late":     StatusLate,
	"tardy":    StatusLate,
	"excused":  StatusExcused,
	"sick":     StatusExcused,
	"planned":  StatusPlanned,
	"upcoming": StatusPlanned,
}

// ParseAttendanceStatus maps a raw status string to an AttendanceStatus,
// falling back to StatusUnknown.
func ParseAttendanceStatus(s string) AttendanceStatus {
	if status, ok := attendanceAliases[core.CleanString(s, true)]; ok {
		return status
	}
	return StatusUnknown
}

// HomeworkStatus tracks homework completion for a session. The empty value
// means no source supplied one.
type HomeworkStatus string

const (
	HomeworkCompleted  HomeworkStatus = "completed"
	HomeworkIncomplete HomeworkStatus = "incomplete"
	HomeworkNone       HomeworkStatus = "no_homework"
)

var homeworkAliases = map[string]HomeworkStatus{
	"completed":   HomeworkCompleted,
	"done":        HomeworkCompleted,
	"incomplete":  HomeworkIncomplete,
	"missing":     HomeworkIncomplete,
	"no_homework": HomeworkNone,
	"none":        HomeworkNone,
}

// ParseHomeworkStatus maps a raw homework string to a HomeworkStatus.
// Empty input stays empty (not supplied); unrecognized input maps to
// HomeworkIncomplete's neutral sibling, HomeworkNone.
func ParseHomeworkStatus(s string) HomeworkStatus {
	cleaned := core.CleanString(s, true)
	if cleaned == "" {
		return ""
	}
	if status, ok := homeworkAliases[cleaned]; ok {
		return status
	}
	return HomeworkNone
}

// scheduleCancelled reports whether a raw schedule status flags the session
// as cancelled at the schedule level.
func scheduleCancelled(status string) bool {
	switch core.CleanString(status, true) {
	case "cancelled", "canceled":
		return true
	}
	return false
}

// RawSession is a schedule entry as delivered by the schedule provider.
// Date is a raw string on purpose: malformed dates are a normal hazard and
// are handled by dropping the entry, not by failing the fetch layer.
type RawSession struct {
	ID           int      `db:"id" json:"id"`
	ClassID      int      `db:"class_id" json:"class_id"`
	Date         string   `db:"session_date" json:"date"`
	StartTime    string   `db:"start_time" json:"start_time"`
	EndTime      string   `db:"end_time" json:"end_time"`
	Room         string   `db:"room" json:"room"`
	Topic        string   `db:"topic" json:"topic"`
	Note         string   `db:"note" json:"note"`
	TeacherNames []string `db:"-" json:"teacher_names"`
	Status       string   `db:"status" json:"status"`
}

// StudentOverride is a student-specific correction of a session's
// attendance state, e.g. actual attendance or makeup linkage.
type StudentOverride struct {
	SessionID         int      `db:"session_id" json:"session_id"`
	StudentID         int      `db:"student_id" json:"student_id"`
	AttendanceStatus  string   `db:"attendance_status" json:"attendance_status"`
	HomeworkStatus    string   `db:"homework_status" json:"homework_status"`
	Note              string   `db:"note" json:"note"`
	IsMakeup          bool     `db:"is_makeup" json:"is_makeup"`
	MakeupSessionID   null.Int `db:"makeup_session_id" json:"makeup_session_id"`
	OriginalSessionID null.Int `db:"original_session_id" json:"original_session_id"`
}

// ReportSession is a server-aggregated, enriched view of a session
// (resolved teacher/room names, sequence numbers).
type ReportSession struct {
	SessionID        int    `db:"session_id" json:"session_id"`
	SequenceNumber   int    `db:"sequence_number" json:"sequence_number"` // 0 = unset
	ClassroomName    string `db:"classroom_name" json:"classroom_name"`
	TeacherName      string `db:"teacher_name" json:"teacher_name"`
	Note             string `db:"note" json:"note"`
	AttendanceStatus string `db:"attendance_status" json:"attendance_status"`
	StartTime        string `db:"start_time" json:"start_time"`
	EndTime          string `db:"end_time" json:"end_time"`
}

// ReportSummary carries the aggregate fields the report provider computes
// server-side. AttendanceRate is a 0-1 fraction.
type ReportSummary struct {
	TotalSessions  int          `db:"total_sessions" json:"total_sessions"`
	Attended       int          `db:"attended" json:"attended"`
	Absent         int          `db:"absent" json:"absent"`
	Excused        int          `db:"excused" json:"excused"`
	AttendanceRate null.Float64 `db:"attendance_rate" json:"attendance_rate"`
}

// ClassReport is the report provider's payload for one student in one class.
type ClassReport struct {
	Sessions []ReportSession `json:"sessions"`
	Summary  ReportSummary   `json:"summary"`
}

// SessionRecord is the canonical merged view of one session after
// reconciling all three sources; exactly one exists per session id.
type SessionRecord struct {
	ID                int              `json:"id"`
	Date              core.Date        `json:"date"`
	StartTime         null.String      `json:"start_time,omitempty"`
	EndTime           null.String      `json:"end_time,omitempty"`
	Room              null.String      `json:"room,omitempty"`
	TeacherName       null.String      `json:"teacher_name,omitempty"`
	Topic             null.String      `json:"topic,omitempty"`
	Note              null.String      `json:"note,omitempty"`
	AttendanceStatus  AttendanceStatus `json:"attendance_status"`
	HomeworkStatus    HomeworkStatus   `json:"homework_status,omitempty"`
	IsMakeup          bool             `json:"is_makeup"`
	MakeupSessionID   null.Int         `json:"makeup_session_id,omitempty"`
	OriginalSessionID null.Int         `json:"original_session_id,omitempty"`
	SequenceNo        null.Int         `json:"sequence_no,omitempty"`
}

// ClassAttendanceSummary aggregates per-class attendance counters.
// AttendanceRate is a percentage in [0,100]; rounding is a rendering concern.
type ClassAttendanceSummary struct {
	TotalSessions  int     `json:"total_sessions"`
	Attended       int     `json:"attended"`
	Absent         int     `json:"absent"`
	Excused        int     `json:"excused"`
	Upcoming       int     `json:"upcoming"`
	AttendanceRate float64 `json:"attendance_rate"`
}

// CalendarDay is one cell of the week grid; Record is nil when no session
// falls on that date.
type CalendarDay struct {
	Date   core.Date      `json:"date"`
	Record *SessionRecord `json:"record,omitempty"`
}

// CalendarWeek is a Monday-aligned week of seven days.
type CalendarWeek struct {
	StartDate core.Date      `json:"start_date"`
	Days      [7]CalendarDay `json:"days"`
}

// FirstOfMonth returns the day with day-of-month == 1 within the week, if any.
// Rendering uses it to anchor month labels on the exact first-of-month date
// rather than on the week's Monday.
func (w CalendarWeek) FirstOfMonth() (core.Date, bool) {
	for _, day := range w.Days {
		if day.Date.Day() == 1 {
			return day.Date, true
		}
	}
	return 0, false
}

// teacherNameSimilarityThreshold is the QuickRatio above which two teacher
// name spellings are treated as the same person.
const teacherNameSimilarityThreshold = 0.9

// joinTeacherNames joins a session's teacher names, collapsing near-duplicate
// spellings; providers occasionally deliver the same teacher twice with minor
// punctuation differences.
func joinTeacherNames(names []string) string {
	kept := make([]string, 0, len(names))
	for _, n := range names {
		if n = core.CleanString(n); n == "" {
			continue
		}
		dup := false
		for _, k := range kept {
			if teacherNameSimilarity(n, k) >= teacherNameSimilarityThreshold {
				dup = true
				break
			}
		}
		if !dup {
			kept = append(kept, n)
		}
	}
	return strings.Join(kept, ", ")
}

func teacherNameSimilarity(a, b string) float64 {
	a, b = strings.ToLower(a), strings.ToLower(b)
	return difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, "")).QuickRatio()
}
