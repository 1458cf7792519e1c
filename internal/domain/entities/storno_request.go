package entities

import "time"

// StornoStatus is the review status of a cancellation request.
type StornoStatus string

const (
	StornoStatusPending     StornoStatus = "pending"
	StornoStatusUnderReview StornoStatus = "under_review"
	StornoStatusApproved    StornoStatus = "approved"
	StornoStatusRejected    StornoStatus = "rejected"
	StornoStatusCompleted   StornoStatus = "completed"
)

// IsOpen reports whether the request still awaits an admin decision.
func (s StornoStatus) IsOpen() bool {
	return s == StornoStatusPending || s == StornoStatusUnderReview
}

type StornoType string

const (
	StornoTypeNormal        StornoType = "normal"
	StornoTypeDeliveryDelay StornoType = "delivery_delay"
)

type StornoPriority string

const (
	StornoPriorityNormal StornoPriority = "normal"
	StornoPriorityHigh   StornoPriority = "high"
	StornoPriorityUrgent StornoPriority = "urgent"
)

type StornoOutcome string

const (
	StornoOutcomeApprove StornoOutcome = "approve"
	StornoOutcomeReject  StornoOutcome = "reject"
)

// RequesterKind tags who raised a cancellation request.
type RequesterKind string

const (
	RequesterCustomer RequesterKind = "customer"
	RequesterProvider RequesterKind = "provider"
)

// Requester identifies the party that raised a request.
type Requester struct {
	Kind RequesterKind `json:"kind"`
	ID   string        `json:"id"`
}

// StornoRequest is a human-reviewed cancellation (dispute) of an order.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (order_id-index): order_id
//   - GSI2 (status-index): status
type StornoRequest struct {
	ID          string         `json:"id"`
	OrderID     string         `json:"order_id"`
	ProviderID  string         `json:"provider_id,omitempty"`
	RequestedBy Requester      `json:"requested_by"`
	Reason      string         `json:"reason"`
	Type        StornoType     `json:"storno_type"`
	Priority    StornoPriority `json:"priority"`
	Status      StornoStatus   `json:"status"`

	ProvisionalRefund int64  `json:"provisional_refund"`
	Currency          string `json:"currency"`

	Outcome         StornoOutcome `json:"outcome,omitempty"`
	RefundAmount    int64         `json:"refund_amount"`
	RefundStartedAt *time.Time    `json:"refund_started_at,omitempty"`
	AdminNotes      string        `json:"admin_notes,omitempty"`
	ReviewedBy      string        `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time    `json:"reviewed_at,omitempty"`

	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RefundLeaseHeld reports whether an approval is already moving money for this request.
func (r StornoRequest) RefundLeaseHeld(now time.Time, lease time.Duration) bool {
	return r.RefundStartedAt != nil && now.Before(r.RefundStartedAt.Add(lease))
}
