package request

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/urgency"
)

// Kind is the type of a training request.
type Kind string

const (
	KindEnrollment Kind = "enrollment"
	KindMakeup     Kind = "makeup"
	KindLeave      Kind = "leave"
)

// Status is the lifecycle state of a request.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusExpired  Status = "expired"
)

// Request is a student's training/registration request with a deadline.
// Deadline stays a raw string: upstream systems occasionally deliver empty
// or malformed dates and those must degrade to an unknown urgency badge,
// not break listing.
type Request struct {
	ID           int         `db:"id" json:"id"`
	PublicID     string      `db:"public_id" json:"public_id"`
	StudentID    int         `db:"student_id" json:"student_id"`
	ClassID      int         `db:"class_id" json:"class_id"`
	Kind         Kind        `db:"kind" json:"kind"`
	Status       Status      `db:"status" json:"status"`
	Deadline     string      `db:"deadline" json:"deadline"`
	Note         null.String `db:"note" json:"note,omitempty"`
	ContactEmail string      `db:"contact_email" json:"contact_email"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"` // UTC
	UpdatedAt    time.Time   `db:"updated_at" json:"updated_at"` // UTC
	DecidedAt    null.Time   `db:"decided_at" json:"decided_at,omitempty"`
}

func (r Request) IsPending() bool { return r.Status == StatusPending }

// View is a Request decorated with its deadline urgency for badge rendering
// and sort order.
type View struct {
	Request
	Urgency urgency.Urgency `json:"urgency"`
}

// NewRequest contains information needed to create a Request.
type NewRequest struct {
	StudentID    int    `json:"student_id" validate:"required,min=1"`
	ClassID      int    `json:"class_id" validate:"required,min=1"`
	Kind         string `json:"kind" validate:"required,oneof=enrollment makeup leave"`
	Deadline     string `json:"deadline" validate:"omitempty,caldate"`
	Note         string `json:"note"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
}

func (nr *NewRequest) Validate(validate *validator.Validate) error {
	nr.Kind = core.CleanString(nr.Kind, true /* lower */)
	nr.Deadline = core.CleanString(nr.Deadline)
	nr.Note = core.CleanString(nr.Note)
	nr.ContactEmail = core.CleanString(nr.ContactEmail, true /* lower */)
	return validate.Struct(nr)
}

// DecideRequest approves or rejects a pending Request.
type DecideRequest struct {
	Approve *bool  `json:"approve" validate:"required"`
	Note    string `json:"note"`
}

func (dr *DecideRequest) Validate(validate *validator.Validate) error {
	dr.Note = core.CleanString(dr.Note)
	return validate.Struct(dr)
}
