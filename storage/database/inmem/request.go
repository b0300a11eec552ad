package inmemdb

import (
	"context"

	"github.com/trezcool/darasa/core/request"
)

type requestRepository struct {
	db *DB
}

var _ request.Repository = (*requestRepository)(nil)

func NewRequestRepository(db *DB) *requestRepository {
	return &requestRepository{db: db}
}

func (repo *requestRepository) CreateRequest(_ context.Context, req request.Request) (request.Request, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.requestPK++
	req.ID = repo.db.requestPK
	repo.db.requests[req.ID] = req
	return req, nil
}

func (repo *requestRepository) GetRequestByID(_ context.Context, id int) (request.Request, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if req, ok := repo.db.requests[id]; ok {
		return req, nil
	}
	return request.Request{}, request.ErrNotFound
}

func (repo *requestRepository) QueryAllRequests(_ context.Context) ([]request.Request, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	reqs := make([]request.Request, 0, len(repo.db.requests))
	for _, req := range repo.db.requests {
		reqs = append(reqs, req)
	}
	return reqs, nil
}

func (repo *requestRepository) QueryRequestsByStatus(_ context.Context, status request.Status) ([]request.Request, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var reqs []request.Request
	for _, req := range repo.db.requests {
		if req.Status == status {
			reqs = append(reqs, req)
		}
	}
	return reqs, nil
}

func (repo *requestRepository) UpdateRequest(_ context.Context, req request.Request) (request.Request, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.requests[req.ID]; !ok {
		return request.Request{}, request.ErrNotFound
	}
	repo.db.requests[req.ID] = req
	return req, nil
}
