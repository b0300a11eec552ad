package schedule

import "github.com/trezcool/darasa/core"

// defaultRangeWeeks is the projected span when only one range bound can be
// resolved.
const defaultRangeWeeks = 12

// Project buckets canonical records into a Monday-aligned week grid covering
// the requested date range.
//
// Range resolution: explicit bounds win; otherwise the min/max record dates
// are used. With no records and no explicit bounds the output is empty — no
// fabricated range. A resolvable start with no end spans defaultRangeWeeks
// aligned weeks (and symmetrically for an end with no start). The resolved
// range expands outward to the Monday week containing the start and the
// Sunday week containing the end; every day cell either carries the record
// whose date matches exactly or stays empty.
func Project(records []SessionRecord, rangeStart, rangeEnd *core.Date) []CalendarWeek {
	start, end, ok := resolveRange(records, rangeStart, rangeEnd)
	if !ok {
		return nil
	}
	if end.Before(start) {
		start, end = end, start
	}

	byDate := recordsByDate(records)

	first := start.StartOfWeek()
	last := end.EndOfWeek()

	weeks := make([]CalendarWeek, 0, (first.DaysUntil(last)+1)/7)
	for monday := first; !monday.After(last); monday = monday.AddDays(7) {
		week := CalendarWeek{StartDate: monday}
		for i := 0; i < 7; i++ {
			date := monday.AddDays(i)
			week.Days[i] = CalendarDay{Date: date, Record: byDate[date]}
		}
		weeks = append(weeks, week)
	}
	return weeks
}

func resolveRange(records []SessionRecord, rangeStart, rangeEnd *core.Date) (start, end core.Date, ok bool) {
	var haveStart, haveEnd bool
	if rangeStart != nil {
		start, haveStart = *rangeStart, true
	}
	if rangeEnd != nil {
		end, haveEnd = *rangeEnd, true
	}

	if (!haveStart || !haveEnd) && len(records) > 0 {
		min, max := records[0].Date, records[0].Date
		for _, rec := range records[1:] {
			if rec.Date.Before(min) {
				min = rec.Date
			}
			if rec.Date.After(max) {
				max = rec.Date
			}
		}
		if !haveStart {
			start, haveStart = min, true
		}
		if !haveEnd {
			end, haveEnd = max, true
		}
	}

	switch {
	case haveStart && haveEnd:
		return start, end, true
	case haveStart:
		return start, start.StartOfWeek().AddDays(defaultRangeWeeks*7 - 1), true
	case haveEnd:
		return end.EndOfWeek().AddDays(-defaultRangeWeeks*7 + 1), end, true
	}
	return 0, 0, false
}

// recordsByDate indexes records by exact calendar date. When two records
// share a date the one with the lowest (sequenceNo, id) wins the cell.
func recordsByDate(records []SessionRecord) map[core.Date]*SessionRecord {
	byDate := make(map[core.Date]*SessionRecord, len(records))
	for i := range records {
		rec := records[i]
		prev, ok := byDate[rec.Date]
		if !ok || lessForCell(rec, *prev) {
			byDate[rec.Date] = &rec
		}
	}
	return byDate
}

func lessForCell(a, b SessionRecord) bool {
	aSeq, bSeq := cellSeq(a), cellSeq(b)
	if aSeq != bSeq {
		return aSeq < bSeq
	}
	return a.ID < b.ID
}

func cellSeq(rec SessionRecord) int {
	if rec.SequenceNo.Valid {
		return rec.SequenceNo.Int
	}
	return int(^uint(0) >> 1) // unset sorts last
}

// MonthLabels maps week indexes to the date a month label should anchor on.
// The first week always qualifies; any later week qualifies when it contains
// the first day of a month, and the label anchors on that exact date.
func MonthLabels(weeks []CalendarWeek) map[int]core.Date {
	labels := make(map[int]core.Date, len(weeks)/4+1)
	for i, week := range weeks {
		if first, ok := week.FirstOfMonth(); ok {
			labels[i] = first
			continue
		}
		if i == 0 {
			labels[i] = week.StartDate
		}
	}
	return labels
}
