package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/schedule"
)

type scheduleRepository struct {
	db *sqlx.DB
}

var _ schedule.Repository = (*scheduleRepository)(nil) // interface compliance check

func NewScheduleRepository(db *sql.DB) *scheduleRepository {
	return &scheduleRepository{db: sqlx.NewDb(db, "postgres")}
}

// rawSessionRow maps the session table; teacher_names is a Postgres array.
type rawSessionRow struct {
	schedule.RawSession
	TeacherNames pq.StringArray `db:"teacher_names"`
}

func (r rawSessionRow) toRawSession() schedule.RawSession {
	s := r.RawSession
	s.TeacherNames = []string(r.TeacherNames)
	return s
}

func (repo scheduleRepository) GetClassSchedule(ctx context.Context, classID int) ([]schedule.RawSession, error) {
	var rows []rawSessionRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT id, class_id, session_date, start_time, end_time, room, topic, note, teacher_names, status
		FROM session
		WHERE class_id = $1
		ORDER BY id`, classID)
	if err != nil {
		return nil, errors.Wrap(err, "selecting sessions")
	}

	sessions := make([]schedule.RawSession, 0, len(rows))
	for _, row := range rows {
		sessions = append(sessions, row.toRawSession())
	}
	return sessions, nil
}

func (repo scheduleRepository) GetStudentOverrides(ctx context.Context, classID, studentID int) ([]schedule.StudentOverride, error) {
	var overrides []schedule.StudentOverride
	err := repo.db.SelectContext(ctx, &overrides, `
		SELECT o.session_id, o.student_id, o.attendance_status, o.homework_status, o.note,
		       o.is_makeup, o.makeup_session_id, o.original_session_id
		FROM session_override o
		JOIN session s ON s.id = o.session_id
		WHERE s.class_id = $1 AND o.student_id = $2
		ORDER BY o.session_id`, classID, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "selecting overrides")
	}
	return overrides, nil
}

func (repo scheduleRepository) GetClassReport(ctx context.Context, classID, studentID int) (schedule.ClassReport, error) {
	var report schedule.ClassReport

	err := repo.db.SelectContext(ctx, &report.Sessions, `
		SELECT session_id, sequence_number, classroom_name, teacher_name, note,
		       attendance_status, start_time, end_time
		FROM report_session
		WHERE class_id = $1 AND student_id = $2
		ORDER BY session_id`, classID, studentID)
	if err != nil {
		return schedule.ClassReport{}, errors.Wrap(err, "selecting report sessions")
	}

	err = repo.db.GetContext(ctx, &report.Summary, `
		SELECT total_sessions, attended, absent, excused, attendance_rate
		FROM report_summary
		WHERE class_id = $1 AND student_id = $2`, classID, studentID)
	if err != nil && err != sql.ErrNoRows { // a missing summary is a normal partial-availability case
		return schedule.ClassReport{}, errors.Wrap(err, "selecting report summary")
	}
	return report, nil
}

// ReplaceClassSchedule swaps a class' schedule entries wholesale; used by
// the admin seed command and by the sync job that mirrors the upstream
// schedule provider.
func (repo scheduleRepository) ReplaceClassSchedule(ctx context.Context, classID int, sessions []schedule.RawSession) error {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning tx")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx, `DELETE FROM session WHERE class_id = $1`, classID); err != nil {
		return errors.Wrap(err, "clearing sessions")
	}
	for _, s := range sessions {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO session (id, class_id, session_date, start_time, end_time, room, topic, note, teacher_names, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			s.ID, classID, s.Date, s.StartTime, s.EndTime, s.Room, s.Topic, s.Note, pq.Array(s.TeacherNames), s.Status)
		if err != nil {
			return errors.Wrapf(err, "inserting session %d", s.ID)
		}
	}
	return errors.Wrap(tx.Commit(), "committing tx")
}

// ReplaceClassReport swaps the report payload for a class/student pair.
func (repo scheduleRepository) ReplaceClassReport(ctx context.Context, classID, studentID int, report schedule.ClassReport) error {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning tx")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx, `DELETE FROM report_session WHERE class_id = $1 AND student_id = $2`, classID, studentID); err != nil {
		return errors.Wrap(err, "clearing report sessions")
	}
	for _, s := range report.Sessions {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO report_session (class_id, student_id, session_id, sequence_number, classroom_name,
			                            teacher_name, note, attendance_status, start_time, end_time)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			classID, studentID, s.SessionID, s.SequenceNumber, s.ClassroomName,
			s.TeacherName, s.Note, s.AttendanceStatus, s.StartTime, s.EndTime)
		if err != nil {
			return errors.Wrapf(err, "inserting report session %d", s.SessionID)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO report_summary (class_id, student_id, total_sessions, attended, absent, excused, attendance_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (class_id, student_id) DO UPDATE SET
			total_sessions = EXCLUDED.total_sessions,
			attended = EXCLUDED.attended,
			absent = EXCLUDED.absent,
			excused = EXCLUDED.excused,
			attendance_rate = EXCLUDED.attendance_rate`,
		classID, studentID, report.Summary.TotalSessions, report.Summary.Attended,
		report.Summary.Absent, report.Summary.Excused, report.Summary.AttendanceRate)
	if err != nil {
		return errors.Wrap(err, "upserting report summary")
	}
	return errors.Wrap(tx.Commit(), "committing tx")
}

// UpsertStudentOverride records a student-specific attendance correction.
func (repo scheduleRepository) UpsertStudentOverride(ctx context.Context, ovr schedule.StudentOverride) error {
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO session_override (session_id, student_id, attendance_status, homework_status, note,
		                              is_makeup, makeup_session_id, original_session_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (session_id, student_id) DO UPDATE SET
			attendance_status = EXCLUDED.attendance_status,
			homework_status = EXCLUDED.homework_status,
			note = EXCLUDED.note,
			is_makeup = EXCLUDED.is_makeup,
			makeup_session_id = EXCLUDED.makeup_session_id,
			original_session_id = EXCLUDED.original_session_id`,
		ovr.SessionID, ovr.StudentID, ovr.AttendanceStatus, ovr.HomeworkStatus, ovr.Note,
		ovr.IsMakeup, ovr.MakeupSessionID, ovr.OriginalSessionID)
	return errors.Wrap(err, "upserting override")
}
