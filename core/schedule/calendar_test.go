package schedule

import (
	"testing"
	"time"

	"github.com/trezcool/darasa/core"
)

func datePtr(d core.Date) *core.Date { return &d }

func recordOn(id int, year int, month time.Month, day int) SessionRecord {
	return SessionRecord{ID: id, Date: core.NewDate(year, month, day), AttendanceStatus: StatusPlanned}
}

// checkGridInvariants asserts the structural week-grid invariants: 7 days per
// week, contiguous dates, consecutive Mondays.
func checkGridInvariants(t *testing.T, weeks []CalendarWeek) {
	t.Helper()
	for wi, week := range weeks {
		if week.StartDate.WeekdayIndex() != 0 {
			t.Errorf("week %d start %s is not a Monday", wi, week.StartDate)
		}
		for di, day := range week.Days {
			if want := week.StartDate.AddDays(di); day.Date != want {
				t.Errorf("week %d day %d date = %s, want %s", wi, di, day.Date, want)
			}
		}
		if wi > 0 {
			if diff := weeks[wi-1].StartDate.DaysUntil(week.StartDate); diff != 7 {
				t.Errorf("week %d starts %d days after week %d, want 7", wi, diff, wi-1)
			}
		}
	}
}

func TestProject_rangeResolution(t *testing.T) {
	tests := []struct {
		name      string
		records   []SessionRecord
		start     *core.Date
		end       *core.Date
		wantWeeks int
		wantFirst core.Date
	}{
		{
			name:      "no records no range",
			wantWeeks: 0,
		},
		{
			name:      "range derived from records",
			records:   []SessionRecord{recordOn(1, 2024, time.March, 1), recordOn(2, 2024, time.March, 22)},
			wantWeeks: 4, // Feb 26 .. Mar 18 Mondays
			wantFirst: core.NewDate(2024, time.February, 26),
		},
		{
			name:      "start only defaults to 12 weeks",
			start:     datePtr(core.NewDate(2024, time.March, 1)),
			wantWeeks: 12,
			wantFirst: core.NewDate(2024, time.February, 26),
		},
		{
			name:      "end only mirrors 12 weeks back",
			end:       datePtr(core.NewDate(2024, time.March, 1)),
			wantWeeks: 12,
			wantFirst: core.NewDate(2023, time.December, 11),
		},
		{
			name:      "single explicit day is one week",
			start:     datePtr(core.NewDate(2024, time.March, 6)),
			end:       datePtr(core.NewDate(2024, time.March, 6)),
			wantWeeks: 1,
			wantFirst: core.NewDate(2024, time.March, 4),
		},
		{
			name:      "single-week range",
			start:     datePtr(core.NewDate(2024, time.March, 5)),
			end:       datePtr(core.NewDate(2024, time.March, 8)),
			wantWeeks: 1,
			wantFirst: core.NewDate(2024, time.March, 4),
		},
		{
			name:      "swapped bounds tolerated",
			start:     datePtr(core.NewDate(2024, time.March, 8)),
			end:       datePtr(core.NewDate(2024, time.March, 5)),
			wantWeeks: 1,
			wantFirst: core.NewDate(2024, time.March, 4),
		},
		{
			name:      "year boundary has no special casing",
			start:     datePtr(core.NewDate(2023, time.December, 28)),
			end:       datePtr(core.NewDate(2024, time.January, 3)),
			wantWeeks: 2,
			wantFirst: core.NewDate(2023, time.December, 25),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			weeks := Project(tt.records, tt.start, tt.end)
			if len(weeks) != tt.wantWeeks {
				t.Fatalf("Project() produced %d weeks, want %d", len(weeks), tt.wantWeeks)
			}
			if tt.wantWeeks > 0 && weeks[0].StartDate != tt.wantFirst {
				t.Errorf("first week start = %s, want %s", weeks[0].StartDate, tt.wantFirst)
			}
			checkGridInvariants(t, weeks)
		})
	}
}

func TestProject_recordPlacement(t *testing.T) {
	records := []SessionRecord{
		recordOn(1, 2024, time.March, 1),
		recordOn(2, 2024, time.March, 6),
		recordOn(3, 2024, time.March, 22),
	}
	weeks := Project(records, nil, nil)
	checkGridInvariants(t, weeks)

	// every record's date appears in exactly one cell
	placed := make(map[int]int)
	for _, week := range weeks {
		for _, day := range week.Days {
			if day.Record != nil {
				placed[day.Record.ID]++
			}
		}
	}
	for _, rec := range records {
		if placed[rec.ID] != 1 {
			t.Errorf("record %d placed %d times, want exactly 1", rec.ID, placed[rec.ID])
		}
	}
}

func TestProject_duplicateDateCell(t *testing.T) {
	a := recordOn(31, 2024, time.March, 6)
	b := recordOn(20, 2024, time.March, 6)
	weeks := Project([]SessionRecord{a, b}, nil, nil)
	if len(weeks) != 1 {
		t.Fatalf("got %d weeks, want 1", len(weeks))
	}
	day := weeks[0].Days[2] // Wednesday
	if day.Record == nil || day.Record.ID != 20 {
		t.Errorf("cell carries record %+v, want lowest id 20", day.Record)
	}
}

func TestMonthLabels(t *testing.T) {
	weeks := Project(nil,
		datePtr(core.NewDate(2024, time.February, 20)),
		datePtr(core.NewDate(2024, time.March, 10)),
	)
	if len(weeks) != 3 {
		t.Fatalf("got %d weeks, want 3", len(weeks))
	}
	labels := MonthLabels(weeks)

	// week 0 always labels, anchored on its Monday (no 1st inside)
	if got, ok := labels[0]; !ok || got != core.NewDate(2024, time.February, 19) {
		t.Errorf("labels[0] = %v %v, want 2024-02-19", got, ok)
	}
	// week 1 (Feb 26 - Mar 3) contains March 1st
	if got, ok := labels[1]; !ok || got != core.NewDate(2024, time.March, 1) {
		t.Errorf("labels[1] = %v %v, want 2024-03-01", got, ok)
	}
	if _, ok := labels[2]; ok {
		t.Error("labels[2] should not qualify")
	}
}
