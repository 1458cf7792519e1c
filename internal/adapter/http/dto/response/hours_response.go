package response

import (
	"time"

	"marketplace_escrow/internal/domain/entities"
)

type TimeEntryResponse struct {
	ID                 string     `json:"id"`
	OrderID            string     `json:"order_id"`
	ProviderID         string     `json:"provider_id"`
	Hours              float64    `json:"hours"`
	Amount             int64      `json:"amount"`
	Description        string     `json:"description,omitempty"`
	BillingStatus      string     `json:"billing_status"`
	ProcessorPaymentID string     `json:"processor_payment_id,omitempty"`
	CaptureAttempts    int        `json:"capture_attempts"`
	LastCaptureError   string     `json:"last_capture_error,omitempty"`
	RejectionReason    string     `json:"rejection_reason,omitempty"`
	ApprovedAt         *time.Time `json:"approved_at,omitempty"`
	TransferredAt      *time.Time `json:"transferred_at,omitempty"`
	RejectedAt         *time.Time `json:"rejected_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func FromTimeEntry(e entities.TimeEntry) TimeEntryResponse {
	return TimeEntryResponse{
		ID:                 e.ID,
		OrderID:            e.OrderID,
		ProviderID:         e.ProviderID,
		Hours:              e.Hours,
		Amount:             e.Amount,
		Description:        e.Description,
		BillingStatus:      string(e.Status),
		ProcessorPaymentID: e.ProcessorPaymentID,
		CaptureAttempts:    e.CaptureAttempts,
		LastCaptureError:   e.LastCaptureError,
		RejectionReason:    e.RejectionReason,
		ApprovedAt:         e.ApprovedAt,
		TransferredAt:      e.TransferredAt,
		RejectedAt:         e.RejectedAt,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}
