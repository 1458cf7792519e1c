package response

import (
	"time"

	"marketplace_escrow/internal/domain/entities"
)

type DraftResponse struct {
	ID                 string     `json:"id"`
	Category           string     `json:"category"`
	Subcategory        string     `json:"subcategory,omitempty"`
	Description        string     `json:"description,omitempty"`
	CustomerID         string     `json:"customer_id"`
	ProviderID         string     `json:"provider_id,omitempty"`
	CompanyID          string     `json:"company_id,omitempty"`
	JobDateFrom        time.Time  `json:"job_date_from"`
	JobDateTo          time.Time  `json:"job_date_to"`
	JobDurationHours   float64    `json:"job_duration_hours"`
	PriceAmount        int64      `json:"price_amount"`
	BuyerServiceFee    int64      `json:"buyer_service_fee"`
	SellerCommission   int64      `json:"seller_commission"`
	CheckoutTotal      int64      `json:"checkout_total"`
	Currency           string     `json:"currency"`
	Status             string     `json:"status"`
	ConvertedToOrderID string     `json:"converted_to_order_id,omitempty"`
	ConvertedAt        *time.Time `json:"converted_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func FromDraft(d entities.Draft) DraftResponse {
	return DraftResponse{
		ID:                 d.ID,
		Category:           d.Category,
		Subcategory:        d.Subcategory,
		Description:        d.Description,
		CustomerID:         d.CustomerID,
		ProviderID:         d.ProviderID,
		CompanyID:          d.CompanyID,
		JobDateFrom:        d.JobDateFrom,
		JobDateTo:          d.JobDateTo,
		JobDurationHours:   d.JobDurationHours,
		PriceAmount:        d.PriceAmount,
		BuyerServiceFee:    d.BuyerServiceFee,
		SellerCommission:   d.SellerCommission,
		CheckoutTotal:      d.PriceAmount + d.BuyerServiceFee,
		Currency:           d.Currency,
		Status:             string(d.Status),
		ConvertedToOrderID: d.ConvertedToOrderID,
		ConvertedAt:        d.ConvertedAt,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}

type FinalizeResponse struct {
	OrderID string `json:"order_id"`
	Created bool   `json:"created"`
}

type EscrowResponse struct {
	ID                 string    `json:"id"`
	Amount             int64     `json:"amount"`
	Currency           string    `json:"currency"`
	Status             string    `json:"status"`
	ProcessorReference string    `json:"processor_reference,omitempty"`
	FinalOrderID       string    `json:"final_order_id,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func FromEscrow(e entities.Escrow) EscrowResponse {
	return EscrowResponse{
		ID:                 e.ID,
		Amount:             e.Amount,
		Currency:           e.Currency,
		Status:             string(e.Status),
		ProcessorReference: e.ProcessorReference,
		FinalOrderID:       e.FinalOrderID,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}
