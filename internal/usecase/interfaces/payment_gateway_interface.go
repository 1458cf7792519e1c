package interfaces

import (
	"context"
	"encoding/json"
)

// CaptureRequest describes a charge for approved additional hours.
// Amount comes from the store, never from the caller.
type CaptureRequest struct {
	Reference   string
	Amount      int64
	Currency    string
	Description string
	PayerID     string
}

// RefundRequest describes a (possibly partial) refund of an escrowed payment.
type RefundRequest struct {
	Reference          string
	ProcessorReference string
	Amount             int64
	FullAmount         int64
}

// ProviderResult is the processor's answer, kept raw for traceability.
type ProviderResult struct {
	ProviderPaymentID string
	ProviderStatus    string
	ProviderResponse  json.RawMessage
}

// Settled reports whether the processor confirmed the money movement.
func (r ProviderResult) Settled() bool {
	switch r.ProviderStatus {
	case "approved", "accredited", "succeeded":
		return true
	}
	return false
}

// IPaymentGateway abstracts the external payment processor (e.g. Mercado Pago).
type IPaymentGateway interface {
	Capture(ctx context.Context, req CaptureRequest) (ProviderResult, error)
	Refund(ctx context.Context, req RefundRequest) (ProviderResult, error)
}
