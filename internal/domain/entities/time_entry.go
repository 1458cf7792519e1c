package entities

import "time"

// BillingStatus is the approval status of an additional-hours entry.
type BillingStatus string

const (
	BillingStatusPending         BillingStatus = "pending"
	BillingStatusBillablePending BillingStatus = "billable_pending"
	BillingStatusApproved        BillingStatus = "approved"
	BillingStatusTransferred     BillingStatus = "transferred"
	BillingStatusRejected        BillingStatus = "rejected"
)

// TimeEntry is a provider's claim for extra billable time on an order.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (order_id-index): order_id
//
// Only transferred entries count towards the order total.
type TimeEntry struct {
	ID          string        `json:"id"`
	OrderID     string        `json:"order_id"`
	ProviderID  string        `json:"provider_id"`
	Hours       float64       `json:"hours"`
	Amount      int64         `json:"amount"`
	Description string        `json:"description,omitempty"`
	Status      BillingStatus `json:"billing_status"`

	ProcessorPaymentID string     `json:"processor_payment_id,omitempty"`
	CaptureStartedAt   *time.Time `json:"capture_started_at,omitempty"`
	CaptureAttempts    int        `json:"capture_attempts"`
	LastCaptureError   string     `json:"last_capture_error,omitempty"`
	RejectionReason    string     `json:"rejection_reason,omitempty"`

	ApprovedAt    *time.Time `json:"approved_at,omitempty"`
	TransferredAt *time.Time `json:"transferred_at,omitempty"`
	RejectedAt    *time.Time `json:"rejected_at,omitempty"`

	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CaptureLeaseHeld reports whether another caller is still within its capture window.
func (e TimeEntry) CaptureLeaseHeld(now time.Time, lease time.Duration) bool {
	return e.CaptureStartedAt != nil && now.Before(e.CaptureStartedAt.Add(lease))
}
