package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core/request"
	"github.com/trezcool/darasa/core/urgency"
	"github.com/trezcool/darasa/tests"
)

func Test_requestApi_query(t *testing.T) {
	db.Reset()

	// deadlines relative to the pinned clock (2024-03-15)
	overdue := testutil.CreateRequest(t, reqRepo, 3, 7, request.KindMakeup, "2024-03-12", "a@test.cd")
	dueToday := testutil.CreateRequest(t, reqRepo, 4, 7, request.KindLeave, "2024-03-15", "b@test.cd")
	near := testutil.CreateRequest(t, reqRepo, 5, 7, request.KindEnrollment, "2024-03-17", "c@test.cd")
	normal := testutil.CreateRequest(t, reqRepo, 6, 7, request.KindEnrollment, "2024-03-20", "d@test.cd")
	unknown := testutil.CreateRequest(t, reqRepo, 7, 7, request.KindLeave, "soon", "e@test.cd")

	wantData := marchallObj(t, []request.View{
		{Request: overdue, Urgency: urgency.Urgency{Tier: urgency.TierOverdue, DaysUntil: null.IntFrom(-3)}},
		{Request: dueToday, Urgency: urgency.Urgency{Tier: urgency.TierToday, DaysUntil: null.IntFrom(0)}},
		{Request: near, Urgency: urgency.Urgency{Tier: urgency.TierNear, DaysUntil: null.IntFrom(2)}},
		{Request: normal, Urgency: urgency.Urgency{Tier: urgency.TierNormal, DaysUntil: null.IntFrom(5)}},
		{Request: unknown, Urgency: urgency.Urgency{Tier: urgency.TierUnknown}},
	})

	tt := httpTest{name: "most urgent first", path: "/v1/requests", wantCode: http.StatusOK, wantData: wantData}
	req, rec := newRequest(http.MethodGet, tt.path)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, tt, rec)
}

func Test_requestApi_create(t *testing.T) {
	db.Reset()

	t.Run("ok", func(t *testing.T) {
		body := marchallObj(t, request.NewRequest{
			StudentID:    3,
			ClassID:      7,
			Kind:         "makeup",
			Deadline:     "2024-03-20",
			ContactEmail: "Student@Test.CD",
		})
		req, rec := newRequest(http.MethodPost, "/v1/requests", body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusCreated, rec.Body.String())
		}

		var created request.Request
		if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
			t.Fatalf("unmarshalling Request: %v", err)
		}
		if created.ID == 0 || created.PublicID == "" {
			t.Errorf("missing generated ids: %+v", created)
		}
		if created.Status != request.StatusPending {
			t.Errorf("Status = %v; want %v", created.Status, request.StatusPending)
		}
		if created.Kind != request.KindMakeup {
			t.Errorf("Kind = %v; want %v", created.Kind, request.KindMakeup)
		}
		if created.ContactEmail != "student@test.cd" {
			t.Errorf("ContactEmail = %v; want cleaned lowercase", created.ContactEmail)
		}
	})

	tests := []httpTest{
		{
			name:     "required fields",
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"student_id": "this field is required",
				"class_id":   "this field is required",
				"kind":       "this field is required",
			}),
		},
		{
			name:     "unknown kind",
			body:     marchallObj(t, request.NewRequest{StudentID: 3, ClassID: 7, Kind: "party"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"kind": "kind must be one of [enrollment makeup leave]"}),
		},
		{
			name:     "malformed deadline",
			body:     marchallObj(t, request.NewRequest{StudentID: 3, ClassID: 7, Kind: "leave", Deadline: "03/20/2024"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"deadline": "must be a valid date in YYYY-MM-DD format"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/requests", tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_requestApi_decide(t *testing.T) {
	db.Reset()

	pending := testutil.CreateRequest(t, reqRepo, 3, 7, request.KindEnrollment, "2024-03-20", "a@test.cd")

	t.Run("approve", func(t *testing.T) {
		req, rec := newRequest(http.MethodPut, fmt.Sprintf("/v1/requests/%d/decide", pending.ID), []byte(`{"approve": true, "note": "welcome"}`))
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}

		var decided request.Request
		if err := json.Unmarshal(rec.Body.Bytes(), &decided); err != nil {
			t.Fatalf("unmarshalling Request: %v", err)
		}
		if decided.Status != request.StatusApproved {
			t.Errorf("Status = %v; want %v", decided.Status, request.StatusApproved)
		}
		if !decided.DecidedAt.Valid {
			t.Error("DecidedAt not set")
		}
		if decided.Note.String != "welcome" {
			t.Errorf("Note = %v; want welcome", decided.Note)
		}
	})

	tests := []httpTest{
		{
			name:     "already decided",
			path:     fmt.Sprintf("/v1/requests/%d/decide", pending.ID),
			body:     []byte(`{"approve": false}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "request has already been decided"}),
		},
		{
			name:     "unknown request",
			path:     "/v1/requests/999/decide",
			body:     []byte(`{"approve": true}`),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
		{
			name:     "missing approve",
			path:     fmt.Sprintf("/v1/requests/%d/decide", pending.ID),
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"approve": "this field is required"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPut, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
