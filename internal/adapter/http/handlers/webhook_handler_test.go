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

var webhookActor = entities.SystemActor("payments-webhook")

type webhookMocks struct {
	escrow   *mocks.MockIEscrowUseCase
	finalize *mocks.MockIFinalizeUseCase
	hours    *mocks.MockIHoursUseCase
}

func newWebhookRouter(t *testing.T) (*webhookMocks, func(body string) int) {
	ctrl := gomock.NewController(t)
	m := &webhookMocks{
		escrow:   mocks.NewMockIEscrowUseCase(ctrl),
		finalize: mocks.NewMockIFinalizeUseCase(ctrl),
		hours:    mocks.NewMockIHoursUseCase(ctrl),
	}
	h := NewWebhookHandler(m.escrow, m.finalize, m.hours, zap.NewNop())

	r := newRouter()
	r.POST("/v1/webhooks/payments", withActor(webhookActor), h.PaymentNotification)
	return m, func(body string) int {
		return doRequest(r, http.MethodPost, "/v1/webhooks/payments", body).Code
	}
}

func TestWebhookHandler_PaymentNotification(t *testing.T) {
	t.Run("escrow held", func(t *testing.T) {
		m, post := newWebhookRouter(t)
		m.escrow.EXPECT().MarkFunded(gomock.Any(), "esc-1", entities.EscrowStatusHeld, "mp-1").
			Return(entities.Escrow{ID: "esc-1", Status: entities.EscrowStatusHeld}, nil)

		if code := post(`{"type":"escrow.held","escrow_id":"esc-1","processor_payment_id":"mp-1"}`); code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}
	})

	t.Run("escrow funded out of order", func(t *testing.T) {
		m, post := newWebhookRouter(t)
		m.escrow.EXPECT().MarkFunded(gomock.Any(), "esc-1", entities.EscrowStatusFunded, "").
			Return(entities.Escrow{}, usecase.ErrEscrowNotAdvanceable)

		if code := post(`{"type":"escrow.funded","escrow_id":"esc-1"}`); code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", code)
		}
	})

	t.Run("checkout succeeded funds then finalizes", func(t *testing.T) {
		m, post := newWebhookRouter(t)
		gomock.InOrder(
			m.escrow.EXPECT().MarkFunded(gomock.Any(), "esc-1", entities.EscrowStatusFunded, "mp-1").
				Return(entities.Escrow{ID: "esc-1", Status: entities.EscrowStatusFunded}, nil),
			m.finalize.EXPECT().Finalize(gomock.Any(), webhookActor, "d-1", "esc-1").
				Return(usecase.FinalizeResult{OrderID: "ord-1", Created: true}, nil),
		)

		if code := post(`{"type":"checkout.succeeded","draft_id":"d-1","escrow_id":"esc-1","processor_payment_id":"mp-1"}`); code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}
	})

	t.Run("checkout succeeded without escrow", func(t *testing.T) {
		m, post := newWebhookRouter(t)
		m.finalize.EXPECT().Finalize(gomock.Any(), webhookActor, "d-1", "").
			Return(usecase.FinalizeResult{OrderID: "ord-1"}, nil)

		if code := post(`{"type":"checkout.succeeded","draft_id":"d-1"}`); code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}
	})

	t.Run("checkout retry budget exhausted", func(t *testing.T) {
		m, post := newWebhookRouter(t)
		m.finalize.EXPECT().Finalize(gomock.Any(), webhookActor, "d-1", "").
			Return(usecase.FinalizeResult{}, usecase.ErrTransientStoreConflict)

		if code := post(`{"type":"checkout.succeeded","draft_id":"d-1"}`); code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", code)
		}
	})

	t.Run("hours captured", func(t *testing.T) {
		m, post := newWebhookRouter(t)
		m.hours.EXPECT().ConfirmTransfer(gomock.Any(), "ord-1", "e-1", "mp-9").
			Return(entities.TimeEntry{ID: "e-1", Status: entities.BillingStatusTransferred}, nil)

		if code := post(`{"type":"hours.captured","order_id":"ord-1","entry_id":"e-1","processor_payment_id":"mp-9"}`); code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}
	})

	t.Run("invalid notifications", func(t *testing.T) {
		_, post := newWebhookRouter(t)
		for _, body := range []string{
			`{`,
			`{"draft_id":"d-1"}`,
			`{"type":"payment.updated"}`,
			`{"type":"checkout.succeeded"}`,
			`{"type":"hours.captured","order_id":"ord-1"}`,
		} {
			if code := post(body); code != http.StatusBadRequest {
				t.Fatalf("expected 400 for %s, got %d", body, code)
			}
		}
	})
}
