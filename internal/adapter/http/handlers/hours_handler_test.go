package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"marketplace_escrow/internal/adapter/http/dto/response"
	"marketplace_escrow/internal/adapter/http/handlers/mocks"
	"marketplace_escrow/internal/domain/entities"
	"marketplace_escrow/internal/usecase"

	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestHoursHandler_SubmitHours(t *testing.T) {
	t.Run("invalid amount", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIHoursUseCase(ctrl)
		h := NewHoursHandler(uc, zap.NewNop())

		r := newRouter()
		r.POST("/v1/orders/:order_id/hours", withActor(provider), h.SubmitHours)

		w := doRequest(r, http.MethodPost, "/v1/orders/ord-1/hours", `{"hours":3,"amount":0}`)
		expectStatus(t, w, http.StatusBadRequest)
	})

	t.Run("blocked provider", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIHoursUseCase(ctrl)
		h := NewHoursHandler(uc, zap.NewNop())

		r := newRouter()
		r.POST("/v1/orders/:order_id/hours", withActor(provider), h.SubmitHours)

		uc.EXPECT().SubmitHours(gomock.Any(), provider, "ord-1", gomock.Any()).Return(entities.TimeEntry{}, usecase.ErrProviderBlocked)

		w := doRequest(r, http.MethodPost, "/v1/orders/ord-1/hours", `{"hours":3,"amount":3000}`)
		expectStatus(t, w, http.StatusForbidden)
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIHoursUseCase(ctrl)
		h := NewHoursHandler(uc, zap.NewNop())

		r := newRouter()
		r.POST("/v1/orders/:order_id/hours", withActor(provider), h.SubmitHours)

		in := usecase.HoursInput{Hours: 3, Amount: 3000, Description: "extra cleaning"}
		uc.EXPECT().SubmitHours(gomock.Any(), provider, "ord-1", in).
			Return(entities.TimeEntry{ID: "e-1", OrderID: "ord-1", Amount: 3000, Status: entities.BillingStatusBillablePending}, nil)

		w := doRequest(r, http.MethodPost, "/v1/orders/ord-1/hours", `{"hours":3,"amount":3000,"description":" extra cleaning "}`)
		expectStatus(t, w, http.StatusCreated)

		var res response.TimeEntryResponse
		if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
			t.Fatalf("invalid response json: %v", err)
		}
		if res.BillingStatus != "billable_pending" {
			t.Fatalf("unexpected response: %+v", res)
		}
	})
}

func TestHoursHandler_RecordAndSubmit(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIHoursUseCase(ctrl)
	h := NewHoursHandler(uc, zap.NewNop())

	r := newRouter()
	r.POST("/v1/orders/:order_id/hours/draft", withActor(provider), h.RecordHours)
	r.POST("/v1/orders/:order_id/hours/:entry_id/submit", withActor(provider), h.SubmitForApproval)

	gomock.InOrder(
		uc.EXPECT().RecordHours(gomock.Any(), provider, "ord-1", usecase.HoursInput{Hours: 1, Amount: 1000}).
			Return(entities.TimeEntry{ID: "e-1", Status: entities.BillingStatusPending}, nil),
		uc.EXPECT().SubmitForApproval(gomock.Any(), provider, "ord-1", "e-1").
			Return(entities.TimeEntry{ID: "e-1", Status: entities.BillingStatusBillablePending}, nil),
	)

	expectStatus(t, doRequest(r, http.MethodPost, "/v1/orders/ord-1/hours/draft", `{"hours":1,"amount":1000}`), http.StatusCreated)
	expectStatus(t, doRequest(r, http.MethodPost, "/v1/orders/ord-1/hours/e-1/submit", ""), http.StatusOK)
}

func TestHoursHandler_ApproveHours(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "transferred", wantStatus: http.StatusOK},
		{name: "gateway failure", err: &usecase.Error{Kind: usecase.ErrUpstreamPaymentFailure, Msg: "capture failed"}, wantStatus: http.StatusBadGateway},
		{name: "capture in progress", err: usecase.ErrCaptureInProgress, wantStatus: http.StatusConflict},
		{name: "not billable", err: usecase.ErrEntryNotBillable, wantStatus: http.StatusConflict},
		{name: "unknown entry", err: usecase.ErrTimeEntryNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			uc := mocks.NewMockIHoursUseCase(ctrl)
			h := NewHoursHandler(uc, zap.NewNop())

			r := newRouter()
			r.POST("/v1/orders/:order_id/hours/:entry_id/approve", withActor(customer), h.ApproveHours)

			uc.EXPECT().ApproveHours(gomock.Any(), customer, "ord-1", "e-1").
				Return(entities.TimeEntry{ID: "e-1", Status: entities.BillingStatusTransferred}, tt.err)

			w := doRequest(r, http.MethodPost, "/v1/orders/ord-1/hours/e-1/approve", "")
			expectStatus(t, w, tt.wantStatus)
		})
	}
}

func TestHoursHandler_RetryRejectList(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIHoursUseCase(ctrl)
	h := NewHoursHandler(uc, zap.NewNop())

	r := newRouter()
	r.POST("/v1/orders/:order_id/hours/:entry_id/retry-capture", withActor(customer), h.RetryCapture)
	r.POST("/v1/orders/:order_id/hours/:entry_id/reject", withActor(customer), h.RejectHours)
	r.GET("/v1/orders/:order_id/hours", withActor(customer), h.ListHours)

	uc.EXPECT().RetryCapture(gomock.Any(), customer, "ord-1", "e-1").Return(entities.TimeEntry{ID: "e-1", Status: entities.BillingStatusTransferred}, nil)
	uc.EXPECT().RejectHours(gomock.Any(), customer, "ord-1", "e-2", "not agreed").Return(entities.TimeEntry{ID: "e-2", Status: entities.BillingStatusRejected}, nil)
	uc.EXPECT().RejectHours(gomock.Any(), customer, "ord-1", "e-3", "").Return(entities.TimeEntry{}, usecase.ErrEntryNotBillable)
	uc.EXPECT().ListHours(gomock.Any(), customer, "ord-1").Return([]entities.TimeEntry{{ID: "e-1"}, {ID: "e-2"}}, nil)

	expectStatus(t, doRequest(r, http.MethodPost, "/v1/orders/ord-1/hours/e-1/retry-capture", ""), http.StatusOK)
	expectStatus(t, doRequest(r, http.MethodPost, "/v1/orders/ord-1/hours/e-2/reject", `{"reason":"not agreed"}`), http.StatusOK)
	expectStatus(t, doRequest(r, http.MethodPost, "/v1/orders/ord-1/hours/e-3/reject", ""), http.StatusConflict)

	w := doRequest(r, http.MethodGet, "/v1/orders/ord-1/hours", "")
	expectStatus(t, w, http.StatusOK)
	var list response.ListResponse[response.TimeEntryResponse]
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}
	if list.Count != 2 || list.Items[1].ID != "e-2" {
		t.Fatalf("unexpected list: %+v", list)
	}
}
