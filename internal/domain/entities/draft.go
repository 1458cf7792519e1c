package entities

import "time"

// DraftStatus represents the lifecycle of a checkout draft.
//
// A draft is mutated exactly once, by finalization, and is never deleted.
type DraftStatus string

const (
	DraftStatusOpen      DraftStatus = "open"
	DraftStatusConverted DraftStatus = "converted"
)

// Draft is an unconfirmed order request created at checkout initiation.
//
// Storage model (DynamoDB):
//   - PK: id (caller-assigned, doubles as the finalization idempotency key)
//
// Monetary representation:
//   - all amounts are minor currency units (cents).
type Draft struct {
	ID          string `json:"id" validate:"required,max=128"`
	Category    string `json:"category" validate:"required"`
	Subcategory string `json:"subcategory"`
	Description string `json:"description"`

	CustomerID string `json:"customer_id" validate:"required"`
	ProviderID string `json:"provider_id,omitempty"`
	CompanyID  string `json:"company_id,omitempty"`

	JobDateFrom      time.Time `json:"job_date_from"`
	JobDateTo        time.Time `json:"job_date_to"`
	JobDurationHours float64   `json:"job_duration_hours" validate:"gte=0"`

	PriceAmount      int64  `json:"price_amount" validate:"gt=0"`
	Currency         string `json:"currency" validate:"required,len=3"`
	BuyerServiceFee  int64  `json:"buyer_service_fee" validate:"gte=0"`
	SellerCommission int64  `json:"seller_commission" validate:"gte=0"`

	Status             DraftStatus `json:"status"`
	ConvertedToOrderID string      `json:"converted_to_order_id,omitempty"`
	ConvertedAt        *time.Time  `json:"converted_at,omitempty"`

	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsConverted reports whether the draft has already produced an order.
// Status is the source of truth; ConvertedToOrderID is data only.
func (d Draft) IsConverted() bool {
	return d.Status == DraftStatusConverted
}
