package request

import (
	"github.com/trezcool/darasa/core"
)

// NewServiceMock returns a Service with a pinned clock for deterministic tests.
func NewServiceMock(repo Repository, mailSvc core.EmailService, conf *core.Config, today func() core.Date) *Service {
	svc := NewService(repo, mailSvc, conf)
	svc.today = today
	return svc
}
