package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"marketplace_escrow/internal/adapter/http/dto/response"
	"marketplace_escrow/internal/adapter/http/handlers/mocks"
	"marketplace_escrow/internal/domain/entities"
	"marketplace_escrow/internal/usecase"

	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

const draftBody = `{"id":"d-1","category":"cleaning","price_amount":10000,"currency":"EUR","buyer_service_fee":500,"seller_commission":1000,"provider_id":"prov-1"}`

func TestDraftHandler_CreateDraft(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIDraftUseCase(ctrl)
		h := NewDraftHandler(uc, zap.NewNop())

		r := newRouter()
		r.POST("/v1/drafts", withActor(customer), h.CreateDraft)

		w := doRequest(r, http.MethodPost, "/v1/drafts", "{")
		expectStatus(t, w, http.StatusBadRequest)
	})

	t.Run("missing price", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIDraftUseCase(ctrl)
		h := NewDraftHandler(uc, zap.NewNop())

		r := newRouter()
		r.POST("/v1/drafts", withActor(customer), h.CreateDraft)

		w := doRequest(r, http.MethodPost, "/v1/drafts", `{"id":"d-1","category":"cleaning","currency":"EUR"}`)
		expectStatus(t, w, http.StatusBadRequest)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIDraftUseCase(ctrl)
		h := NewDraftHandler(uc, zap.NewNop())

		r := newRouter()
		r.POST("/v1/drafts", h.CreateDraft)

		w := doRequest(r, http.MethodPost, "/v1/drafts", draftBody)
		expectStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("usecase returns mapped error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIDraftUseCase(ctrl)
		h := NewDraftHandler(uc, zap.NewNop())

		r := newRouter()
		r.POST("/v1/drafts", withActor(customer), h.CreateDraft)

		uc.EXPECT().CreateDraft(gomock.Any(), customer, gomock.Any()).Return(entities.Draft{}, usecase.ErrDraftAlreadyExists)

		w := doRequest(r, http.MethodPost, "/v1/drafts", draftBody)
		expectStatus(t, w, http.StatusConflict)
		if body := decodeError(t, w); body.Error.Code != "CONFLICT" || body.Success {
			t.Fatalf("unexpected error body: %+v", body)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIDraftUseCase(ctrl)
		h := NewDraftHandler(uc, zap.NewNop())

		r := newRouter()
		r.POST("/v1/drafts", withActor(customer), h.CreateDraft)

		now := time.Now().UTC()
		uc.EXPECT().CreateDraft(gomock.Any(), customer, gomock.Any()).DoAndReturn(
			func(_ any, _ entities.Actor, d entities.Draft) (entities.Draft, error) {
				if d.ID != "d-1" || d.PriceAmount != 10000 || d.ProviderID != "prov-1" {
					t.Fatalf("unexpected draft passed to usecase: %+v", d)
				}
				d.CustomerID = "cust-1"
				d.Status = entities.DraftStatusOpen
				d.CreatedAt = now
				return d, nil
			})

		w := doRequest(r, http.MethodPost, "/v1/drafts", draftBody)
		expectStatus(t, w, http.StatusCreated)

		var res response.DraftResponse
		if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
			t.Fatalf("invalid response json: %v", err)
		}
		if res.ID != "d-1" || res.Status != "open" || res.CheckoutTotal != 10500 {
			t.Fatalf("unexpected response: %+v", res)
		}
	})
}

func TestDraftHandler_GetDraft(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIDraftUseCase(ctrl)
		h := NewDraftHandler(uc, zap.NewNop())

		r := newRouter()
		r.GET("/v1/drafts/:draft_id", withActor(customer), h.GetDraft)

		uc.EXPECT().GetDraft(gomock.Any(), customer, "d-404").Return(entities.Draft{}, usecase.ErrDraftNotFound)

		w := doRequest(r, http.MethodGet, "/v1/drafts/d-404", "")
		expectStatus(t, w, http.StatusNotFound)
	})

	t.Run("forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIDraftUseCase(ctrl)
		h := NewDraftHandler(uc, zap.NewNop())

		r := newRouter()
		r.GET("/v1/drafts/:draft_id", withActor(provider), h.GetDraft)

		uc.EXPECT().GetDraft(gomock.Any(), provider, "d-1").Return(entities.Draft{}, usecase.ErrNotAuthorized)

		w := doRequest(r, http.MethodGet, "/v1/drafts/d-1", "")
		expectStatus(t, w, http.StatusForbidden)
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIDraftUseCase(ctrl)
		h := NewDraftHandler(uc, zap.NewNop())

		r := newRouter()
		r.GET("/v1/drafts/:draft_id", withActor(customer), h.GetDraft)

		uc.EXPECT().GetDraft(gomock.Any(), customer, "d-1").Return(entities.Draft{ID: "d-1", Status: entities.DraftStatusConverted, ConvertedToOrderID: "ord-1"}, nil)

		w := doRequest(r, http.MethodGet, "/v1/drafts/d-1", "")
		expectStatus(t, w, http.StatusOK)
	})
}
