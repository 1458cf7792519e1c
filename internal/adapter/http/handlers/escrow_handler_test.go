package handlers

import (
	"net/http"
	"testing"

	"marketplace_escrow/internal/adapter/http/handlers/mocks"
	"marketplace_escrow/internal/domain/entities"
	"marketplace_escrow/internal/usecase"

	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestEscrowHandler(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIEscrowUseCase(ctrl)
		h := NewEscrowHandler(uc, zap.NewNop())

		r := newRouter()
		r.POST("/v1/internal/escrows", h.CreateEscrow)

		uc.EXPECT().CreateEscrow(gomock.Any(), entities.Escrow{ID: "esc-1", Amount: 10500, Currency: "EUR"}).
			Return(entities.Escrow{ID: "esc-1", Amount: 10500, Currency: "EUR", Status: entities.EscrowStatusPending}, nil)

		w := doRequest(r, http.MethodPost, "/v1/internal/escrows", `{"id":"esc-1","amount":10500,"currency":"EUR"}`)
		expectStatus(t, w, http.StatusCreated)
	})

	t.Run("create rejects non-positive amount", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIEscrowUseCase(ctrl)
		h := NewEscrowHandler(uc, zap.NewNop())

		r := newRouter()
		r.POST("/v1/internal/escrows", h.CreateEscrow)

		w := doRequest(r, http.MethodPost, "/v1/internal/escrows", `{"id":"esc-1","amount":0,"currency":"EUR"}`)
		expectStatus(t, w, http.StatusBadRequest)
	})

	t.Run("create duplicate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIEscrowUseCase(ctrl)
		h := NewEscrowHandler(uc, zap.NewNop())

		r := newRouter()
		r.POST("/v1/internal/escrows", h.CreateEscrow)

		uc.EXPECT().CreateEscrow(gomock.Any(), gomock.Any()).Return(entities.Escrow{}, usecase.ErrEscrowAlreadyExists)

		w := doRequest(r, http.MethodPost, "/v1/internal/escrows", `{"id":"esc-1","amount":10500,"currency":"EUR"}`)
		expectStatus(t, w, http.StatusConflict)
	})

	t.Run("get", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIEscrowUseCase(ctrl)
		h := NewEscrowHandler(uc, zap.NewNop())

		r := newRouter()
		r.GET("/v1/internal/escrows/:escrow_id", h.GetEscrow)

		uc.EXPECT().GetEscrow(gomock.Any(), "esc-404").Return(entities.Escrow{}, usecase.ErrEscrowNotFound)

		w := doRequest(r, http.MethodGet, "/v1/internal/escrows/esc-404", "")
		expectStatus(t, w, http.StatusNotFound)
	})
}
