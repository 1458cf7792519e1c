package entities

import "time"

// EscrowStatus represents the custody state of a payment.
type EscrowStatus string

const (
	EscrowStatusPending  EscrowStatus = "pending"
	EscrowStatusHeld     EscrowStatus = "held"
	EscrowStatusFunded   EscrowStatus = "funded"
	EscrowStatusReleased EscrowStatus = "released"
	EscrowStatusRefunded EscrowStatus = "refunded"
)

// IsLinkable reports whether an order may still be attached to an escrow in this status.
func (s EscrowStatus) IsLinkable() bool {
	switch s {
	case EscrowStatusPending, EscrowStatusHeld, EscrowStatusFunded:
		return true
	}
	return false
}

// IsSettled reports whether the funds have left custody.
func (s EscrowStatus) IsSettled() bool {
	return s == EscrowStatusReleased || s == EscrowStatusRefunded
}

// escrowFundingRank orders the pre-settlement statuses; funding only moves forward.
var escrowFundingRank = map[EscrowStatus]int{
	EscrowStatusPending: 0,
	EscrowStatusHeld:    1,
	EscrowStatusFunded:  2,
}

// CanAdvanceTo reports whether a funding update from s to next is monotonic.
func (s EscrowStatus) CanAdvanceTo(next EscrowStatus) bool {
	cur, ok := escrowFundingRank[s]
	if !ok {
		return false
	}
	n, ok := escrowFundingRank[next]
	if !ok {
		return false
	}
	return n > cur
}

// Escrow is the per-payment custody record.
//
// Storage model (DynamoDB):
//   - PK: id
//
// ProcessorReference keeps the payment processor's payment id so refunds can be issued.
// FinalOrderID is set once, by finalization, while the escrow is still linkable.
type Escrow struct {
	ID                 string       `json:"id" validate:"required,max=128"`
	Amount             int64        `json:"amount" validate:"gt=0"`
	Currency           string       `json:"currency" validate:"required,len=3"`
	Status             EscrowStatus `json:"status"`
	ProcessorReference string       `json:"processor_reference,omitempty"`
	FinalOrderID       string       `json:"final_order_id,omitempty"`

	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
