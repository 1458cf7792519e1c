package entities

import "time"

// OrderStatus is the settlement status of an order.
type OrderStatus string

const (
	OrderStatusDraft                   OrderStatus = "draft"
	OrderStatusPaymentReceivedClearing OrderStatus = "payment_received_clearing"
	OrderStatusDisputed                OrderStatus = "disputed"
	OrderStatusReleasedToProvider      OrderStatus = "released_to_provider"
	OrderStatusRefundedToCustomer      OrderStatus = "refunded_to_customer"
)

// IsTerminal reports whether no further transition is allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusReleasedToProvider || s == OrderStatusRefundedToCustomer
}

// Order is the durable, billable unit of work.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (status-clearing_ends_at-index): status + clearing_ends_at, used by the clearing sweep
//
// Time entries reference the order by OrderID; they are never embedded so that
// transactional updates can target either record.
type Order struct {
	ID          string `json:"id"`
	CustomerID  string `json:"customer_id"`
	ProviderID  string `json:"provider_id,omitempty"`
	CompanyID   string `json:"company_id,omitempty"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory,omitempty"`
	Description string `json:"description,omitempty"`

	JobDateFrom          time.Time `json:"job_date_from"`
	JobDateTo            time.Time `json:"job_date_to"`
	TotalCalculatedHours float64   `json:"total_calculated_hours"`

	BaseAmount       int64  `json:"base_amount"`
	AdditionalAmount int64  `json:"additional_amount"`
	TotalAmount      int64  `json:"total_amount"`
	PlatformFee      int64  `json:"platform_fee"`
	Currency         string `json:"currency"`

	Status              OrderStatus `json:"status"`
	EscrowID            string      `json:"escrow_id,omitempty"`
	SourceDraftID       string      `json:"source_draft_id"`
	OpenStornoRequestID string      `json:"open_storno_request_id,omitempty"`

	PaidAt         time.Time  `json:"paid_at"`
	ClearingEndsAt time.Time  `json:"clearing_ends_at"`
	SettledAmount  int64      `json:"settled_amount"`
	RefundedAmount int64      `json:"refunded_amount"`
	SettledAt      *time.Time `json:"settled_at,omitempty"`

	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsParty reports whether the actor is the customer or provider of the order.
func (o Order) IsParty(a Actor) bool {
	return o.IsCustomer(a) || o.IsProvider(a)
}

// IsCustomer reports whether the actor is the customer of the order.
func (o Order) IsCustomer(a Actor) bool {
	return a.Role == RoleCustomer && a.UserID != "" && a.UserID == o.CustomerID
}

// IsProvider reports whether the actor acts for the provider of the order, either
// personally or through the provider's company account.
func (o Order) IsProvider(a Actor) bool {
	if a.Role != RoleProvider {
		return false
	}
	if a.UserID != "" && a.UserID == o.ProviderID {
		return true
	}
	return a.CompanyID != "" && a.CompanyID == o.CompanyID
}
