// Package inmemdb provides in-memory repositories backing tests and DEV
// mode, where running Postgres is overkill.
package inmemdb

import (
	"sync"

	"github.com/trezcool/darasa/core/request"
	"github.com/trezcool/darasa/core/schedule"
)

type (
	reportKey struct {
		classID   int
		studentID int
	}

	DB struct {
		mutex sync.RWMutex

		sessions  map[int][]schedule.RawSession       // by classID
		overrides map[int][]schedule.StudentOverride  // by studentID
		reports   map[reportKey]schedule.ClassReport

		requestPK int
		requests  map[int]request.Request
	}
)

func NewDB() *DB {
	return &DB{
		sessions:  make(map[int][]schedule.RawSession),
		overrides: make(map[int][]schedule.StudentOverride),
		reports:   make(map[reportKey]schedule.ClassReport),
		requests:  make(map[int]request.Request),
	}
}

// Reset empties all tables; test helper.
func (db *DB) Reset() {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	db.sessions = make(map[int][]schedule.RawSession)
	db.overrides = make(map[int][]schedule.StudentOverride)
	db.reports = make(map[reportKey]schedule.ClassReport)
	db.requests = make(map[int]request.Request)
	db.requestPK = 0
}
