package response

import (
	"time"

	"marketplace_escrow/internal/domain/entities"
)

type StornoRequestResponse struct {
	ID                string     `json:"id"`
	OrderID           string     `json:"order_id"`
	ProviderID        string     `json:"provider_id,omitempty"`
	RequestedByKind   string     `json:"requested_by_kind"`
	RequestedByID     string     `json:"requested_by_id"`
	Reason            string     `json:"reason"`
	StornoType        string     `json:"storno_type"`
	Priority          string     `json:"priority"`
	Status            string     `json:"status"`
	ProvisionalRefund int64      `json:"provisional_refund"`
	Currency          string     `json:"currency"`
	Outcome           string     `json:"outcome,omitempty"`
	RefundAmount      int64      `json:"refund_amount"`
	AdminNotes        string     `json:"admin_notes,omitempty"`
	ReviewedBy        string     `json:"reviewed_by,omitempty"`
	ReviewedAt        *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func FromStornoRequest(r entities.StornoRequest) StornoRequestResponse {
	return StornoRequestResponse{
		ID:                r.ID,
		OrderID:           r.OrderID,
		ProviderID:        r.ProviderID,
		RequestedByKind:   string(r.RequestedBy.Kind),
		RequestedByID:     r.RequestedBy.ID,
		Reason:            r.Reason,
		StornoType:        string(r.Type),
		Priority:          string(r.Priority),
		Status:            string(r.Status),
		ProvisionalRefund: r.ProvisionalRefund,
		Currency:          r.Currency,
		Outcome:           string(r.Outcome),
		RefundAmount:      r.RefundAmount,
		AdminNotes:        r.AdminNotes,
		ReviewedBy:        r.ReviewedBy,
		ReviewedAt:        r.ReviewedAt,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

type ProviderStatsResponse struct {
	ProviderID     string     `json:"provider_id"`
	TotalOrders    int64      `json:"total_orders"`
	StornoRequests int64      `json:"storno_requests"`
	StornoRate     float64    `json:"storno_rate"`
	IsBlocked      bool       `json:"is_blocked"`
	BlockReason    string     `json:"block_reason,omitempty"`
	BlockedAt      *time.Time `json:"blocked_at,omitempty"`
	UnblockedBy    string     `json:"unblocked_by,omitempty"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func FromProviderStats(s entities.ProviderStats) ProviderStatsResponse {
	return ProviderStatsResponse{
		ProviderID:     s.ProviderID,
		TotalOrders:    s.TotalOrders,
		StornoRequests: s.StornoRequests,
		StornoRate:     s.StornoRate,
		IsBlocked:      s.IsBlocked,
		BlockReason:    s.BlockReason,
		BlockedAt:      s.BlockedAt,
		UnblockedBy:    s.UnblockedBy,
		UpdatedAt:      s.UpdatedAt,
	}
}
