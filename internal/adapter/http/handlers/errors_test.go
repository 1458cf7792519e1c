package handlers

import (
	"errors"
	"net/http"
	"testing"

	"marketplace_escrow/internal/usecase"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{name: "not found", err: usecase.ErrOrderNotFound, wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND", wantMsg: "order not found"},
		{name: "invalid state", err: usecase.ErrOrderNotClearing, wantStatus: http.StatusConflict, wantCode: "INVALID_STATE"},
		{name: "conflict", err: usecase.ErrOpenStornoExists, wantStatus: http.StatusConflict, wantCode: "CONFLICT"},
		{name: "transient", err: usecase.ErrTransientStoreConflict, wantStatus: http.StatusServiceUnavailable, wantCode: "TRANSIENT_CONFLICT", wantMsg: "Concurrent update detected, please retry"},
		{name: "upstream", err: &usecase.Error{Kind: usecase.ErrUpstreamPaymentFailure, Msg: "capture failed", Err: errors.New("timeout")}, wantStatus: http.StatusBadGateway, wantCode: "PAYMENT_PROVIDER_ERROR", wantMsg: "capture failed"},
		{name: "forbidden", err: usecase.ErrProviderBlocked, wantStatus: http.StatusForbidden, wantCode: "FORBIDDEN", wantMsg: "provider is blocked"},
		{name: "invalid input", err: usecase.ErrInvalidReason, wantStatus: http.StatusBadRequest, wantCode: "INVALID_REQUEST"},
		{name: "unknown", err: errors.New("db down"), wantStatus: http.StatusInternalServerError, wantCode: "INTERNAL_ERROR", wantMsg: "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := mapError(tt.err)
			if appErr.HTTPStatus != tt.wantStatus || appErr.Code != tt.wantCode {
				t.Fatalf("expected %d/%s, got %d/%s", tt.wantStatus, tt.wantCode, appErr.HTTPStatus, appErr.Code)
			}
			if tt.wantMsg != "" && appErr.Message != tt.wantMsg {
				t.Fatalf("expected message %q, got %q", tt.wantMsg, appErr.Message)
			}
			if !errors.Is(appErr, tt.err) {
				t.Fatalf("app error must wrap the cause")
			}
		})
	}
}
