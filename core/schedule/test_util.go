package schedule

import (
	"github.com/trezcool/darasa/core"
)

// NewServiceMock returns a Service with a pinned clock for deterministic tests.
func NewServiceMock(repo Repository, today func() core.Date) *Service {
	svc := NewService(repo)
	svc.today = today
	return svc
}
