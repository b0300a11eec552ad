package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/request"
)

type requestRepository struct {
	db *sqlx.DB
}

var _ request.Repository = (*requestRepository)(nil) // interface compliance check

func NewRequestRepository(db *sql.DB) *requestRepository {
	return &requestRepository{db: sqlx.NewDb(db, "postgres")}
}

const requestColumns = `id, public_id, student_id, class_id, kind, status, deadline, note, contact_email, created_at, updated_at, decided_at`

func (repo requestRepository) CreateRequest(ctx context.Context, req request.Request) (request.Request, error) {
	err := repo.db.QueryRowContext(ctx, `
		INSERT INTO request (public_id, student_id, class_id, kind, status, deadline, note, contact_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		req.PublicID, req.StudentID, req.ClassID, req.Kind, req.Status, req.Deadline,
		req.Note, req.ContactEmail, req.CreatedAt, req.UpdatedAt,
	).Scan(&req.ID)
	if err != nil {
		return request.Request{}, errors.Wrap(err, "inserting request")
	}
	return req, nil
}

func (repo requestRepository) GetRequestByID(ctx context.Context, id int) (request.Request, error) {
	var req request.Request
	err := repo.db.GetContext(ctx, &req, `SELECT `+requestColumns+` FROM request WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return request.Request{}, request.ErrNotFound
	}
	if err != nil {
		return request.Request{}, errors.Wrap(err, "selecting request")
	}
	return req, nil
}

func (repo requestRepository) QueryAllRequests(ctx context.Context) ([]request.Request, error) {
	var reqs []request.Request
	err := repo.db.SelectContext(ctx, &reqs, `SELECT `+requestColumns+` FROM request ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "selecting requests")
	}
	return reqs, nil
}

func (repo requestRepository) QueryRequestsByStatus(ctx context.Context, status request.Status) ([]request.Request, error) {
	var reqs []request.Request
	err := repo.db.SelectContext(ctx, &reqs, `SELECT `+requestColumns+` FROM request WHERE status = $1 ORDER BY id`, status)
	if err != nil {
		return nil, errors.Wrap(err, "selecting requests by status")
	}
	return reqs, nil
}

func (repo requestRepository) UpdateRequest(ctx context.Context, req request.Request) (request.Request, error) {
	res, err := repo.db.ExecContext(ctx, `
		UPDATE request
		SET status = $1, note = $2, updated_at = $3, decided_at = $4
		WHERE id = $5`,
		req.Status, req.Note, req.UpdatedAt, req.DecidedAt, req.ID)
	if err != nil {
		return request.Request{}, errors.Wrap(err, "updating request")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return request.Request{}, request.ErrNotFound
	}
	return req, nil
}
