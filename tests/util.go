package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/darasa/core/request"
	"github.com/trezcool/darasa/core/schedule"
)

func NewSession(id, classID int, date, startTime, endTime, room, topic string, teachers ...string) schedule.RawSession {
	return schedule.RawSession{
		ID:           id,
		ClassID:      classID,
		Date:         date,
		StartTime:    startTime,
		EndTime:      endTime,
		Room:         room,
		Topic:        topic,
		TeacherNames: teachers,
	}
}

func CreateRequest(
	t *testing.T,
	repo request.Repository,
	studentID, classID int,
	kind request.Kind,
	deadline, contactEmail string,
	createdAt ...time.Time,
) request.Request {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	req := request.Request{
		PublicID:     uuid.New().String(),
		StudentID:    studentID,
		ClassID:      classID,
		Kind:         kind,
		Status:       request.StatusPending,
		Deadline:     deadline,
		ContactEmail: contactEmail,
		CreatedAt:    tstamp,
		UpdatedAt:    tstamp,
	}
	req, err := repo.CreateRequest(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateRequest() failed: %v", err)
	}
	return req
}
