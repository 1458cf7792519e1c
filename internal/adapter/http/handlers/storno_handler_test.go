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

func TestStornoHandler_RequestCancellation(t *testing.T) {
	t.Run("reason required", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIStornoUseCase(ctrl)
		h := NewStornoHandler(uc, zap.NewNop())

		r := newRouter()
		r.POST("/v1/orders/:order_id/storno", withActor(customer), h.RequestCancellation)

		w := doRequest(r, http.MethodPost, "/v1/orders/ord-1/storno", `{"priority":"high"}`)
		expectStatus(t, w, http.StatusBadRequest)
	})

	t.Run("unknown type", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIStornoUseCase(ctrl)
		h := NewStornoHandler(uc, zap.NewNop())

		r := newRouter()
		r.POST("/v1/orders/:order_id/storno", withActor(customer), h.RequestCancellation)

		w := doRequest(r, http.MethodPost, "/v1/orders/ord-1/storno", `{"reason":"late","storno_type":"fraud"}`)
		expectStatus(t, w, http.StatusBadRequest)
	})

	t.Run("already disputed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIStornoUseCase(ctrl)
		h := NewStornoHandler(uc, zap.NewNop())

		r := newRouter()
		r.POST("/v1/orders/:order_id/storno", withActor(customer), h.RequestCancellation)

		uc.EXPECT().RequestCancellation(gomock.Any(), customer, "ord-1", gomock.Any()).Return(entities.StornoRequest{}, usecase.ErrOpenStornoExists)

		w := doRequest(r, http.MethodPost, "/v1/orders/ord-1/storno", `{"reason":"late"}`)
		expectStatus(t, w, http.StatusConflict)
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIStornoUseCase(ctrl)
		h := NewStornoHandler(uc, zap.NewNop())

		r := newRouter()
		r.POST("/v1/orders/:order_id/storno", withActor(customer), h.RequestCancellation)

		in := usecase.CancellationInput{Reason: "provider did not show up", Type: entities.StornoTypeDeliveryDelay, Priority: entities.StornoPriorityHigh}
		uc.EXPECT().RequestCancellation(gomock.Any(), customer, "ord-1", in).Return(entities.StornoRequest{
			ID:                "st-1",
			OrderID:           "ord-1",
			Status:            entities.StornoStatusPending,
			ProvisionalRefund: 9500,
		}, nil)

		w := doRequest(r, http.MethodPost, "/v1/orders/ord-1/storno", `{"reason":"provider did not show up","storno_type":"delivery_delay","priority":"high"}`)
		expectStatus(t, w, http.StatusCreated)

		var res response.StornoRequestResponse
		if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
			t.Fatalf("invalid response json: %v", err)
		}
		if res.ID != "st-1" || res.ProvisionalRefund != 9500 || res.Status != "pending" {
			t.Fatalf("unexpected response: %+v", res)
		}
	})
}

func TestStornoHandler_ListRequests(t *testing.T) {
	t.Run("invalid limit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIStornoUseCase(ctrl)
		h := NewStornoHandler(uc, zap.NewNop())

		r := newRouter()
		r.GET("/v1/admin/storno-requests", withActor(admin), h.ListRequests)

		w := doRequest(r, http.MethodGet, "/v1/admin/storno-requests?limit=abc", "")
		expectStatus(t, w, http.StatusBadRequest)
	})

	t.Run("filtered", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIStornoUseCase(ctrl)
		h := NewStornoHandler(uc, zap.NewNop())

		r := newRouter()
		r.GET("/v1/admin/storno-requests", withActor(admin), h.ListRequests)

		uc.EXPECT().ListRequests(gomock.Any(), admin, entities.StornoStatusUnderReview, 5).
			Return([]entities.StornoRequest{{ID: "st-1", Status: entities.StornoStatusUnderReview}}, nil)

		w := doRequest(r, http.MethodGet, "/v1/admin/storno-requests?status=under_review&limit=5", "")
		expectStatus(t, w, http.StatusOK)
	})
}

func TestStornoHandler_Decide(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		in         *usecase.DecisionInput
		err        error
		wantStatus int
	}{
		{
			name:       "approve partial refund",
			body:       `{"outcome":"approve","refund_amount":5000,"admin_notes":"half"}`,
			in:         &usecase.DecisionInput{Outcome: entities.StornoOutcomeApprove, RefundAmount: 5000, AdminNotes: "half"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "reject and release",
			body:       `{"outcome":"reject","release":true}`,
			in:         &usecase.DecisionInput{Outcome: entities.StornoOutcomeReject, Release: true},
			wantStatus: http.StatusOK,
		},
		{
			name:       "refund failed upstream",
			body:       `{"outcome":"approve"}`,
			in:         &usecase.DecisionInput{Outcome: entities.StornoOutcomeApprove},
			err:        &usecase.Error{Kind: usecase.ErrUpstreamPaymentFailure, Msg: "refund failed"},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "already decided",
			body:       `{"outcome":"reject"}`,
			in:         &usecase.DecisionInput{Outcome: entities.StornoOutcomeReject},
			err:        usecase.ErrStornoRequestNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "unknown outcome",
			body:       `{"outcome":"maybe"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "negative refund",
			body:       `{"outcome":"approve","refund_amount":-1}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			uc := mocks.NewMockIStornoUseCase(ctrl)
			h := NewStornoHandler(uc, zap.NewNop())

			r := newRouter()
			r.POST("/v1/admin/storno-requests/:request_id/decision", withActor(admin), h.Decide)

			if tt.in != nil {
				uc.EXPECT().Decide(gomock.Any(), admin, "st-1", *tt.in).
					Return(entities.StornoRequest{ID: "st-1", Status: entities.StornoStatusCompleted, Outcome: tt.in.Outcome}, tt.err)
			}

			w := doRequest(r, http.MethodPost, "/v1/admin/storno-requests/st-1/decision", tt.body)
			expectStatus(t, w, tt.wantStatus)
		})
	}
}

func TestStornoHandler_AdminOperations(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIStornoUseCase(ctrl)
	h := NewStornoHandler(uc, zap.NewNop())

	r := newRouter()
	r.PATCH("/v1/admin/storno-requests/:request_id/review", withActor(admin), h.MarkUnderReview)
	r.GET("/v1/admin/providers/:provider_id/stats", withActor(admin), h.GetProviderStats)
	r.POST("/v1/admin/providers/:provider_id/unblock", withActor(admin), h.UnblockProvider)

	uc.EXPECT().MarkUnderReview(gomock.Any(), admin, "st-1").Return(entities.StornoRequest{ID: "st-1", Status: entities.StornoStatusUnderReview}, nil)
	uc.EXPECT().GetProviderStats(gomock.Any(), admin, "prov-1").Return(entities.ProviderStats{ProviderID: "prov-1", TotalOrders: 10, StornoRequests: 9, StornoRate: 90, IsBlocked: true}, nil)
	uc.EXPECT().UnblockProvider(gomock.Any(), admin, "prov-1", "reviewed").Return(entities.ProviderStats{ProviderID: "prov-1", UnblockedBy: "admin-1"}, nil)
	uc.EXPECT().GetProviderStats(gomock.Any(), admin, "prov-404").Return(entities.ProviderStats{}, usecase.ErrProviderStatsNotFound)

	expectStatus(t, doRequest(r, http.MethodPatch, "/v1/admin/storno-requests/st-1/review", ""), http.StatusOK)

	w := doRequest(r, http.MethodGet, "/v1/admin/providers/prov-1/stats", "")
	expectStatus(t, w, http.StatusOK)
	var stats response.ProviderStatsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}
	if !stats.IsBlocked || stats.StornoRate != 90 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	expectStatus(t, doRequest(r, http.MethodPost, "/v1/admin/providers/prov-1/unblock", `{"note":"reviewed"}`), http.StatusOK)
	expectStatus(t, doRequest(r, http.MethodGet, "/v1/admin/providers/prov-404/stats", ""), http.StatusNotFound)
}
