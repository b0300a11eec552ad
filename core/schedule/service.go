package schedule

import (
	"context"
	"fmt"
	"hash/fnv"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
)

type (
	// Repository fetches the raw session datasets for a class/student pair.
	// Implementations return empty collections, not errors, when a source
	// simply has no rows yet.
	Repository interface {
		GetClassSchedule(ctx context.Context, classID int) ([]RawSession, error)
		GetStudentOverrides(ctx context.Context, classID, studentID int) ([]StudentOverride, error)
		GetClassReport(ctx context.Context, classID, studentID int) (ClassReport, error)
	}

	// AttendanceView is the canonical records plus their aggregate summary.
	AttendanceView struct {
		Records []SessionRecord        `json:"records"`
		Summary ClassAttendanceSummary `json:"summary"`
	}

	// CalendarView is the week grid plus month label anchors keyed by week index.
	CalendarView struct {
		Weeks  []CalendarWeek    `json:"weeks"`
		Labels map[int]core.Date `json:"labels"`
	}

	Service struct {
		repo Repository

		// today is injectable for tests; defaults to core.Today.
		today func() core.Date

		// Normalization is memoized per (class, student) on a hash of the raw
		// snapshot. Purely a performance shortcut: a stale or missing entry
		// only costs a recompute.
		mu   sync.Mutex
		memo map[memoKey]memoEntry
	}

	memoKey struct {
		classID   int
		studentID int
	}

	memoEntry struct {
		hash uint64
		view AttendanceView
	}
)

func NewService(repo Repository) *Service {
	return &Service{
		repo:  repo,
		today: core.Today,
		memo:  make(map[memoKey]memoEntry),
	}
}

// Attendance returns the canonical session records for a student in a class,
// sorted by date, together with the attendance summary.
func (svc *Service) Attendance(ctx context.Context, classID, studentID int) (AttendanceView, error) {
	return svc.attendance(ctx, classID, studentID)
}

// Calendar projects the student's sessions onto a Monday-aligned week grid.
// Either range bound may be nil; see Project for range resolution.
func (svc *Service) Calendar(ctx context.Context, classID, studentID int, start, end *core.Date) (CalendarView, error) {
	view, err := svc.attendance(ctx, classID, studentID)
	if err != nil {
		return CalendarView{}, err
	}
	weeks := Project(view.Records, start, end)
	return CalendarView{Weeks: weeks, Labels: MonthLabels(weeks)}, nil
}

func (svc *Service) attendance(ctx context.Context, classID, studentID int) (AttendanceView, error) {
	sched, err := svc.repo.GetClassSchedule(ctx, classID)
	if err != nil {
		return AttendanceView{}, errors.Wrap(err, "fetching class schedule")
	}
	overrides, err := svc.repo.GetStudentOverrides(ctx, classID, studentID)
	if err != nil {
		return AttendanceView{}, errors.Wrap(err, "fetching student overrides")
	}
	report, err := svc.repo.GetClassReport(ctx, classID, studentID)
	if err != nil {
		return AttendanceView{}, errors.Wrap(err, "fetching class report")
	}

	today := svc.today()
	hash := snapshotHash(sched, overrides, report, today)
	key := memoKey{classID: classID, studentID: studentID}

	svc.mu.Lock()
	if entry, ok := svc.memo[key]; ok && entry.hash == hash {
		svc.mu.Unlock()
		return entry.view, nil
	}
	svc.mu.Unlock()

	records := SortedRecords(Normalize(sched, overrides, report.Sessions, today))
	view := AttendanceView{
		Records: records,
		Summary: Aggregate(records, &report.Summary),
	}

	svc.mu.Lock()
	svc.memo[key] = memoEntry{hash: hash, view: view}
	svc.mu.Unlock()
	return view, nil
}

// SortedRecords flattens a normalized map into a slice ordered by
// (date, sequenceNo, id) for display.
func SortedRecords(records map[int]SessionRecord) []SessionRecord {
	out := make([]SessionRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date.Before(out[j].Date)
		}
		if si, sj := cellSeq(out[i]), cellSeq(out[j]); si != sj {
			return si < sj
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// snapshotHash fingerprints the raw inputs independently of their internal
// ordering, so refetches that shuffle rows still hit the memo.
func snapshotHash(sched []RawSession, overrides []StudentOverride, report ClassReport, today core.Date) uint64 {
	keys := make([]string, 0, len(sched)+len(overrides)+len(report.Sessions)+2)
	for _, e := range sched {
		keys = append(keys, "s"+renderKey(e))
	}
	for _, e := range overrides {
		keys = append(keys, "o"+renderKey(e))
	}
	for _, e := range report.Sessions {
		keys = append(keys, "r"+renderKey(e))
	}
	keys = append(keys, "m"+renderKey(report.Summary), "d"+today.String())
	sort.Strings(keys)

	h := fnv.New64a()
	for _, k := range keys {
		_, _ = fmt.Fprintln(h, k)
	}
	return h.Sum64()
}
