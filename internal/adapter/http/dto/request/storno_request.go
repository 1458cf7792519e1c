package request

import (
	"strings"

	"marketplace_escrow/internal/domain/entities"
	"marketplace_escrow/internal/usecase"
)

type CancellationRequest struct {
	Reason     string `json:"reason" binding:"required"`
	StornoType string `json:"storno_type" binding:"omitempty,oneof=normal delivery_delay"`
	Priority   string `json:"priority" binding:"omitempty,oneof=normal high urgent"`
}

func (r CancellationRequest) ToInput() usecase.CancellationInput {
	return usecase.CancellationInput{
		Reason:   strings.TrimSpace(r.Reason),
		Type:     entities.StornoType(r.StornoType),
		Priority: entities.StornoPriority(r.Priority),
	}
}

// DecisionRequest is an admin ruling. RefundAmount 0 refunds the provisional amount.
type DecisionRequest struct {
	Outcome      string `json:"outcome" binding:"required,oneof=approve reject"`
	RefundAmount int64  `json:"refund_amount" binding:"gte=0"`
	AdminNotes   string `json:"admin_notes"`
	Release      bool   `json:"release"`
}

func (r DecisionRequest) ToInput() usecase.DecisionInput {
	return usecase.DecisionInput{
		Outcome:      entities.StornoOutcome(r.Outcome),
		RefundAmount: r.RefundAmount,
		AdminNotes:   strings.TrimSpace(r.AdminNotes),
		Release:      r.Release,
	}
}

type UnblockRequest struct {
	Note string `json:"note"`
}
