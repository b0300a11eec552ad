package request

import (
	"context"
	"errors"
	"net/mail"
	"sort"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/urgency"
)

var (
	// errors
	ErrNotFound       = errors.New("request not found")
	ErrAlreadyDecided = errors.New("request has already been decided")
)

type (
	Repository interface {
		CreateRequest(ctx context.Context, req Request) (Request, error)
		GetRequestByID(ctx context.Context, id int) (Request, error)
		QueryAllRequests(ctx context.Context) ([]Request, error)
		QueryRequestsByStatus(ctx context.Context, status Status) ([]Request, error)
		UpdateRequest(ctx context.Context, req Request) (Request, error)
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
		conf    *core.Config

		// today is injectable for tests; defaults to core.Today.
		today func() core.Date
	}
)

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config) *Service {
	return &Service{
		repo:    repo,
		mailSvc: mailSvc,
		conf:    conf,
		today:   core.Today,
	}
}

func (svc *Service) Create(ctx context.Context, nr NewRequest) (Request, error) {
	now := time.Now().UTC()
	req := Request{
		PublicID:     uuid.New().String(),
		StudentID:    nr.StudentID,
		ClassID:      nr.ClassID,
		Kind:         Kind(nr.Kind),
		Status:       StatusPending,
		Deadline:     nr.Deadline,
		Note:         null.NewString(nr.Note, nr.Note != ""),
		ContactEmail: nr.ContactEmail,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return svc.repo.CreateRequest(ctx, req)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Request, error) {
	return svc.repo.GetRequestByID(ctx, id)
}

// Query returns all requests decorated with deadline urgency, most urgent
// first; requests with an unreadable deadline sort last instead of blowing
// up the comparator.
func (svc *Service) Query(ctx context.Context) ([]View, error) {
	reqs, err := svc.repo.QueryAllRequests(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "querying requests")
	}

	today := svc.today()
	views := make([]View, 0, len(reqs))
	for _, req := range reqs {
		views = append(views, View{
			Request: req,
			Urgency: urgency.ClassifyString(req.Deadline, today),
		})
	}
	sort.SliceStable(views, func(i, j int) bool {
		if vi, vj := views[i].Urgency.SortValue(), views[j].Urgency.SortValue(); vi != vj {
			return vi < vj
		}
		return views[i].ID < views[j].ID
	})
	return views, nil
}

// Decide approves or rejects a pending request.
func (svc *Service) Decide(ctx context.Context, id int, dr DecideRequest) (Request, error) {
	req, err := svc.repo.GetRequestByID(ctx, id)
	if err != nil {
		return Request{}, err
	}
	if !req.IsPending() {
		return Request{}, core.NewValidationError(ErrAlreadyDecided)
	}

	if *dr.Approve {
		req.Status = StatusApproved
	} else {
		req.Status = StatusRejected
	}
	if dr.Note != "" {
		req.Note = null.StringFrom(dr.Note)
	}
	now := time.Now().UTC()
	req.UpdatedAt = now
	req.DecidedAt = null.TimeFrom(now)
	return svc.repo.UpdateRequest(ctx, req)
}

// ExpireOverdue flips pending requests whose deadline is already past to
// StatusExpired; returns how many were expired.
func (svc *Service) ExpireOverdue(ctx context.Context) (int, error) {
	pending, err := svc.repo.QueryRequestsByStatus(ctx, StatusPending)
	if err != nil {
		return 0, pkgerrors.Wrap(err, "querying pending requests")
	}

	today := svc.today()
	var expired int
	for _, req := range pending {
		u := urgency.ClassifyString(req.Deadline, today)
		if u.Tier != urgency.TierOverdue {
			continue
		}
		req.Status = StatusExpired
		req.UpdatedAt = time.Now().UTC()
		if _, err = svc.repo.UpdateRequest(ctx, req); err != nil {
			return expired, pkgerrors.Wrapf(err, "expiring request %d", req.ID)
		}
		expired++
	}
	return expired, nil
}

// SendDeadlineReminders emails students whose pending request deadline is
// today or near (within conf.ReminderThresholdDays); returns how many
// reminders were sent.
func (svc *Service) SendDeadlineReminders(ctx context.Context) (int, error) {
	pending, err := svc.repo.QueryRequestsByStatus(ctx, StatusPending)
	if err != nil {
		return 0, pkgerrors.Wrap(err, "querying pending requests")
	}

	today := svc.today()
	var sent int
	for _, req := range pending {
		u := urgency.ClassifyString(req.Deadline, today)
		if !u.DaysUntil.Valid || u.DaysUntil.Int < 0 || u.DaysUntil.Int > svc.conf.ReminderThresholdDays {
			continue
		}
		if req.ContactEmail == "" {
			continue
		}
		svc.mailSvc.SendMessages(&core.EmailMessage{
			To:           []mail.Address{{Address: req.ContactEmail}},
			Subject:      "Request deadline approaching",
			TemplateName: "deadline-reminder",
			TemplateData: View{Request: req, Urgency: u},
		})
		sent++
	}
	return sent, nil
}
