package request

import (
	"errors"
	"strings"
	"time"
)

const (
	WebhookEscrowHeld        = "escrow.held"
	WebhookEscrowFunded      = "escrow.funded"
	WebhookCheckoutSucceeded = "checkout.succeeded"
	WebhookHoursCaptured     = "hours.captured"
)

var (
	ErrMissingDraftID          = errors.New("draft_id is required")
	ErrMissingEscrowID         = errors.New("escrow_id is required")
	ErrMissingTimeEntry        = errors.New("order_id and entry_id are required")
	ErrUnknownWebhookEventType = errors.New("unknown webhook event type")
)

// PaymentWebhookRequest is a payment processor notification relayed by the
// checkout integration.
type PaymentWebhookRequest struct {
	Type               string `json:"type" binding:"required"`
	DraftID            string `json:"draft_id"`
	EscrowID           string `json:"escrow_id"`
	OrderID            string `json:"order_id"`
	EntryID            string `json:"entry_id"`
	ProcessorPaymentID string `json:"processor_payment_id"`
}

// Validate checks that the identifiers needed by the event type are present.
func (r PaymentWebhookRequest) Validate() error {
	switch strings.TrimSpace(r.Type) {
	case WebhookEscrowHeld, WebhookEscrowFunded:
		if strings.TrimSpace(r.EscrowID) == "" {
			return ErrMissingEscrowID
		}
	case WebhookCheckoutSucceeded:
		if strings.TrimSpace(r.DraftID) == "" {
			return ErrMissingDraftID
		}
	case WebhookHoursCaptured:
		if strings.TrimSpace(r.OrderID) == "" || strings.TrimSpace(r.EntryID) == "" {
			return ErrMissingTimeEntry
		}
	default:
		return ErrUnknownWebhookEventType
	}
	return nil
}

// SweepRequest triggers a clearing sweep. Now defaults to the server clock.
type SweepRequest struct {
	Now   *time.Time `json:"now"`
	Limit int        `json:"limit" binding:"gte=0"`
}
