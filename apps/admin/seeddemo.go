package main

import (
	"context"
	"fmt"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/schedule"
)

const (
	demoClassID   = 1
	demoStudentID = 1
)

// seedDemo loads a small but representative dataset for local development:
// past and upcoming sessions, a cancellation, a makeup pair and a report
// with a precomputed rate.
func (cli *commandLine) seedDemo(ctx context.Context) error {
	today := core.Today()
	day := func(offset int) string { return today.AddDays(offset).String() }

	sessions := []schedule.RawSession{
		{ID: 1, ClassID: demoClassID, Date: day(-14), StartTime: "09:00", EndTime: "11:00", Room: "B2", Topic: "Intro", TeacherNames: []string{"A. Kalenga"}},
		{ID: 2, ClassID: demoClassID, Date: day(-7), StartTime: "09:00", EndTime: "11:00", Room: "B2", Topic: "Basics", TeacherNames: []string{"A. Kalenga"}},
		{ID: 3, ClassID: demoClassID, Date: day(-3), StartTime: "14:00", EndTime: "16:00", Room: "B2", Topic: "Practice", Status: "cancelled", Note: "teacher unavailable"},
		{ID: 4, ClassID: demoClassID, Date: day(-1), StartTime: "14:00", EndTime: "16:00", Room: "C1", Topic: "Practice (makeup)"},
		{ID: 5, ClassID: demoClassID, Date: day(0), StartTime: "09:00", EndTime: "11:00", Room: "B2", Topic: "Review"},
		{ID: 6, ClassID: demoClassID, Date: day(7), StartTime: "09:00", EndTime: "11:00", Room: "B2", Topic: "Exam"},
	}
	if err := cli.schedRepo.ReplaceClassSchedule(ctx, demoClassID, sessions); err != nil {
		return err
	}

	overrides := []schedule.StudentOverride{
		{SessionID: 1, StudentID: demoStudentID, AttendanceStatus: "present", HomeworkStatus: "completed"},
		{SessionID: 2, StudentID: demoStudentID, AttendanceStatus: "absent", Note: "sick leave pending"},
		{SessionID: 4, StudentID: demoStudentID, AttendanceStatus: "present", IsMakeup: true, OriginalSessionID: null.IntFrom(3)},
	}
	for _, ovr := range overrides {
		if err := cli.schedRepo.UpsertStudentOverride(ctx, ovr); err != nil {
			return err
		}
	}

	report := schedule.ClassReport{
		Sessions: []schedule.ReportSession{
			{SessionID: 1, SequenceNumber: 1, ClassroomName: "Room B2", TeacherName: "Alain Kalenga"},
			{SessionID: 2, SequenceNumber: 2, ClassroomName: "Room B2", TeacherName: "Alain Kalenga"},
			{SessionID: 4, SequenceNumber: 3, ClassroomName: "Room C1", TeacherName: "Alain Kalenga"},
		},
		Summary: schedule.ReportSummary{
			TotalSessions:  6,
			Attended:       2,
			Absent:         1,
			AttendanceRate: null.Float64From(2.0 / 3),
		},
	}
	if err := cli.schedRepo.ReplaceClassReport(ctx, demoClassID, demoStudentID, report); err != nil {
		return err
	}

	fmt.Printf("demo data loaded: class %d, student %d\n", demoClassID, demoStudentID)
	return nil
}
