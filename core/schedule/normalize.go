package schedule

import (
	"fmt"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
)

// Normalize merges the three independently-fetched session datasets into one
// canonical SessionRecord per session id.
//
// Field precedence, applied independently per field:
// student override > report entry > schedule default. The schedule is the
// source of truth for identity and date; entries with a missing id or an
// unparseable date are dropped without affecting their siblings. Overrides
// and report entries whose session id has no schedule entry are ignored (the
// schedule alone decides which sessions exist). A session cancelled at the
// schedule level bypasses attendance precedence entirely and surfaces as
// StatusUnknown with the cancellation note preserved.
//
// The merge is order-independent and idempotent: same inputs in any internal
// ordering produce field-for-field identical output.
func Normalize(sched []RawSession, overrides []StudentOverride, reports []ReportSession, today core.Date) map[int]SessionRecord {
	schedByID := dedupeSchedule(sched)
	ovrByID := dedupeOverrides(overrides)
	repByID := dedupeReports(reports)

	records := make(map[int]SessionRecord, len(schedByID))
	for id, entry := range schedByID {
		date, err := core.ParseDate(entry.Date)
		if err != nil {
			continue
		}

		rec := SessionRecord{
			ID:          id,
			Date:        date,
			StartTime:   nullString(entry.StartTime),
			EndTime:     nullString(entry.EndTime),
			Room:        nullString(entry.Room),
			Topic:       nullString(entry.Topic),
			Note:        nullString(entry.Note),
			TeacherName: nullString(joinTeacherNames(entry.TeacherNames)),
		}

		var statusSet bool
		if rep, ok := repByID[id]; ok {
			applyReport(&rec, rep, &statusSet)
		}
		if ovr, ok := ovrByID[id]; ok {
			applyOverride(&rec, ovr, &statusSet)
		}

		switch {
		case scheduleCancelled(entry.Status):
			// cancellation trumps whatever the other sources claim
			rec.AttendanceStatus = StatusUnknown
			if !rec.Note.Valid {
				rec.Note = null.StringFrom("cancelled")
			}
		case !statusSet:
			if today.DaysUntil(rec.Date) >= 0 {
				rec.AttendanceStatus = StatusPlanned
			} else {
				rec.AttendanceStatus = StatusUnknown
			}
		}

		records[id] = rec
	}
	return records
}

func applyReport(rec *SessionRecord, rep ReportSession, statusSet *bool) {
	if rep.SequenceNumber > 0 {
		rec.SequenceNo = null.IntFrom(rep.SequenceNumber)
	}
	overlayString(&rec.Room, rep.ClassroomName)
	overlayString(&rec.TeacherName, rep.TeacherName)
	overlayString(&rec.Note, rep.Note)
	overlayString(&rec.StartTime, rep.StartTime)
	overlayString(&rec.EndTime, rep.EndTime)
	if core.CleanString(rep.AttendanceStatus) != "" {
		rec.AttendanceStatus = ParseAttendanceStatus(rep.AttendanceStatus)
		*statusSet = true
	}
}

func applyOverride(rec *SessionRecord, ovr StudentOverride, statusSet *bool) {
	if core.CleanString(ovr.AttendanceStatus) != "" {
		rec.AttendanceStatus = ParseAttendanceStatus(ovr.AttendanceStatus)
		*statusSet = true
	}
	if hw := ParseHomeworkStatus(ovr.HomeworkStatus); hw != "" {
		rec.HomeworkStatus = hw
	}
	overlayString(&rec.Note, ovr.Note)
	if ovr.IsMakeup {
		rec.IsMakeup = true
	}
	if ovr.MakeupSessionID.Valid {
		rec.MakeupSessionID = ovr.MakeupSessionID
	}
	if ovr.OriginalSessionID.Valid {
		rec.OriginalSessionID = ovr.OriginalSessionID
	}
}

func nullString(s string) null.String {
	s = core.CleanString(s)
	return null.NewString(s, s != "")
}

// overlayString replaces dst when the higher-priority source supplies a value.
func overlayString(dst *null.String, src string) {
	if src = core.CleanString(src); src != "" {
		*dst = null.StringFrom(src)
	}
}

// Duplicate ids within one source would make the merge depend on input
// ordering; each source resolves duplicates by keeping the entry with the
// smallest full rendering, which is arbitrary but stable.

func dedupeSchedule(entries []RawSession) map[int]RawSession {
	out := make(map[int]RawSession, len(entries))
	for _, e := range entries {
		if e.ID <= 0 {
			continue
		}
		if prev, ok := out[e.ID]; !ok || renderKey(e) < renderKey(prev) {
			out[e.ID] = e
		}
	}
	return out
}

func dedupeOverrides(entries []StudentOverride) map[int]StudentOverride {
	out := make(map[int]StudentOverride, len(entries))
	for _, e := range entries {
		if e.SessionID <= 0 {
			continue
		}
		if prev, ok := out[e.SessionID]; !ok || renderKey(e) < renderKey(prev) {
			out[e.SessionID] = e
		}
	}
	return out
}

func dedupeReports(entries []ReportSession) map[int]ReportSession {
	out := make(map[int]ReportSession, len(entries))
	for _, e := range entries {
		if e.SessionID <= 0 {
			continue
		}
		if prev, ok := out[e.SessionID]; !ok || renderKey(e) < renderKey(prev) {
			out[e.SessionID] = e
		}
	}
	return out
}

func renderKey(v interface{}) string { return fmt.Sprintf("%+v", v) }
