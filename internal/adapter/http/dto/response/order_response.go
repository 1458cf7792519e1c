package response

import (
	"time"

	"marketplace_escrow/internal/domain/entities"
	"marketplace_escrow/internal/usecase"
)

type OrderResponse struct {
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

	Status              string `json:"status"`
	EscrowID            string `json:"escrow_id,omitempty"`
	SourceDraftID       string `json:"source_draft_id"`
	OpenStornoRequestID string `json:"open_storno_request_id,omitempty"`

	PaidAt         time.Time  `json:"paid_at"`
	ClearingEndsAt time.Time  `json:"clearing_ends_at"`
	SettledAmount  int64      `json:"settled_amount"`
	RefundedAmount int64      `json:"refunded_amount"`
	SettledAt      *time.Time `json:"settled_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func FromOrder(o entities.Order) OrderResponse {
	return OrderResponse{
		ID:                   o.ID,
		CustomerID:           o.CustomerID,
		ProviderID:           o.ProviderID,
		CompanyID:            o.CompanyID,
		Category:             o.Category,
		Subcategory:          o.Subcategory,
		Description:          o.Description,
		JobDateFrom:          o.JobDateFrom,
		JobDateTo:            o.JobDateTo,
		TotalCalculatedHours: o.TotalCalculatedHours,
		BaseAmount:           o.BaseAmount,
		AdditionalAmount:     o.AdditionalAmount,
		TotalAmount:          o.TotalAmount,
		PlatformFee:          o.PlatformFee,
		Currency:             o.Currency,
		Status:               string(o.Status),
		EscrowID:             o.EscrowID,
		SourceDraftID:        o.SourceDraftID,
		OpenStornoRequestID:  o.OpenStornoRequestID,
		PaidAt:               o.PaidAt,
		ClearingEndsAt:       o.ClearingEndsAt,
		SettledAmount:        o.SettledAmount,
		RefundedAmount:       o.RefundedAmount,
		SettledAt:            o.SettledAt,
		CreatedAt:            o.CreatedAt,
		UpdatedAt:            o.UpdatedAt,
	}
}

type SweepResponse struct {
	Scanned  int `json:"scanned"`
	Released int `json:"released"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

func FromSweepResult(r usecase.SweepResult) SweepResponse {
	return SweepResponse{Scanned: r.Scanned, Released: r.Released, Skipped: r.Skipped, Failed: r.Failed}
}

// ListResponse wraps collection endpoints.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

func NewListResponse[E, T any](items []E, conv func(E) T) ListResponse[T] {
	out := make([]T, 0, len(items))
	for _, it := range items {
		out = append(out, conv(it))
	}
	return ListResponse[T]{Items: out, Count: len(out)}
}
