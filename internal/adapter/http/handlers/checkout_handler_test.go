package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"marketplace_escrow/internal/adapter/http/dto/response"
	"marketplace_escrow/internal/adapter/http/handlers/mocks"
	"marketplace_escrow/internal/usecase"

	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestCheckoutHandler_Finalize(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		escrowID   string
		result     usecase.FinalizeResult
		err        error
		wantStatus int
	}{
		{name: "first call creates", body: `{"escrow_id":"esc-1"}`, escrowID: "esc-1", result: usecase.FinalizeResult{OrderID: "ord-1", Created: true}, wantStatus: http.StatusCreated},
		{name: "repeat returns existing", escrowID: "", result: usecase.FinalizeResult{OrderID: "ord-1"}, wantStatus: http.StatusOK},
		{name: "escrow linked elsewhere", body: `{"escrow_id":"esc-2"}`, escrowID: "esc-2", err: usecase.ErrEscrowAlreadyLinked, wantStatus: http.StatusConflict},
		{name: "retry budget exhausted", escrowID: "", err: usecase.ErrTransientStoreConflict, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			uc := mocks.NewMockIFinalizeUseCase(ctrl)
			h := NewCheckoutHandler(uc, zap.NewNop())

			r := newRouter()
			r.POST("/v1/checkout/:draft_id/finalize", withActor(customer), h.Finalize)

			uc.EXPECT().Finalize(gomock.Any(), customer, "d-1", tt.escrowID).Return(tt.result, tt.err)

			w := doRequest(r, "POST", "/v1/checkout/d-1/finalize", tt.body)
			expectStatus(t, w, tt.wantStatus)
			if tt.err != nil {
				return
			}
			var res response.FinalizeResponse
			if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
				t.Fatalf("invalid response json: %v", err)
			}
			if res.OrderID != "ord-1" || res.Created != tt.result.Created {
				t.Fatalf("unexpected response: %+v", res)
			}
		})
	}

	t.Run("invalid body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIFinalizeUseCase(ctrl)
		h := NewCheckoutHandler(uc, zap.NewNop())

		r := newRouter()
		r.POST("/v1/checkout/:draft_id/finalize", withActor(customer), h.Finalize)

		w := doRequest(r, "POST", "/v1/checkout/d-1/finalize", `{"escrow_id":`)
		expectStatus(t, w, http.StatusBadRequest)
	})
}
