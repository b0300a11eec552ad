package inmemdb

import (
	"context"

	"github.com/trezcool/darasa/core/schedule"
)

type scheduleRepository struct {
	db *DB
}

var _ schedule.Repository = (*scheduleRepository)(nil)

func NewScheduleRepository(db *DB) *scheduleRepository {
	return &scheduleRepository{db: db}
}

func (repo *scheduleRepository) GetClassSchedule(_ context.Context, classID int) ([]schedule.RawSession, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return append([]schedule.RawSession(nil), repo.db.sessions[classID]...), nil
}

func (repo *scheduleRepository) GetStudentOverrides(_ context.Context, classID, studentID int) ([]schedule.StudentOverride, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	sessionIDs := make(map[int]bool)
	for _, s := range repo.db.sessions[classID] {
		sessionIDs[s.ID] = true
	}

	var overrides []schedule.StudentOverride
	for _, ovr := range repo.db.overrides[studentID] {
		if sessionIDs[ovr.SessionID] {
			overrides = append(overrides, ovr)
		}
	}
	return overrides, nil
}

func (repo *scheduleRepository) GetClassReport(_ context.Context, classID, studentID int) (schedule.ClassReport, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.db.reports[reportKey{classID: classID, studentID: studentID}], nil
}

// SetClassSchedule replaces a class' schedule entries; seeding/test helper.
func (repo *scheduleRepository) SetClassSchedule(classID int, sessions []schedule.RawSession) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.sessions[classID] = append([]schedule.RawSession(nil), sessions...)
}

// AddStudentOverride records a student-specific correction; seeding/test helper.
func (repo *scheduleRepository) AddStudentOverride(ovr schedule.StudentOverride) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.overrides[ovr.StudentID] = append(repo.db.overrides[ovr.StudentID], ovr)
}

// SetClassReport stores the report payload for a class/student pair.
func (repo *scheduleRepository) SetClassReport(classID, studentID int, report schedule.ClassReport) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.reports[reportKey{classID: classID, studentID: studentID}] = report
}
