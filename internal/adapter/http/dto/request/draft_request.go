package request

import (
	"strings"
	"time"

	"marketplace_escrow/internal/domain/entities"
)

// CreateDraftRequest is the checkout payload. Amounts are minor currency units.
type CreateDraftRequest struct {
	ID          string `json:"id" binding:"required,max=128"`
	Category    string `json:"category" binding:"required"`
	Subcategory string `json:"subcategory"`
	Description string `json:"description"`

	CustomerID string `json:"customer_id"`
	ProviderID string `json:"provider_id"`
	CompanyID  string `json:"company_id"`

	JobDateFrom      time.Time `json:"job_date_from"`
	JobDateTo        time.Time `json:"job_date_to"`
	JobDurationHours float64   `json:"job_duration_hours" binding:"gte=0"`

	PriceAmount      int64  `json:"price_amount" binding:"required,gt=0"`
	Currency         string `json:"currency" binding:"required,len=3"`
	BuyerServiceFee  int64  `json:"buyer_service_fee" binding:"gte=0"`
	SellerCommission int64  `json:"seller_commission" binding:"gte=0"`
}

func (r CreateDraftRequest) ToEntity() entities.Draft {
	return entities.Draft{
		ID:               strings.TrimSpace(r.ID),
		Category:         strings.TrimSpace(r.Category),
		Subcategory:      strings.TrimSpace(r.Subcategory),
		Description:      r.Description,
		CustomerID:       strings.TrimSpace(r.CustomerID),
		ProviderID:       strings.TrimSpace(r.ProviderID),
		CompanyID:        strings.TrimSpace(r.CompanyID),
		JobDateFrom:      r.JobDateFrom,
		JobDateTo:        r.JobDateTo,
		JobDurationHours: r.JobDurationHours,
		PriceAmount:      r.PriceAmount,
		Currency:         r.Currency,
		BuyerServiceFee:  r.BuyerServiceFee,
		SellerCommission: r.SellerCommission,
	}
}

// FinalizeRequest is the optional body of the success-page finalize call.
type FinalizeRequest struct {
	EscrowID string `json:"escrow_id"`
}
