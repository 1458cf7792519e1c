package request

import (
	"strings"

	"marketplace_escrow/internal/domain/entities"
)

type CreateEscrowRequest struct {
	ID                 string `json:"id" binding:"required,max=128"`
	Amount             int64  `json:"amount" binding:"required,gt=0"`
	Currency           string `json:"currency" binding:"required,len=3"`
	ProcessorReference string `json:"processor_reference"`
}

func (r CreateEscrowRequest) ToEntity() entities.Escrow {
	return entities.Escrow{
		ID:                 strings.TrimSpace(r.ID),
		Amount:             r.Amount,
		Currency:           r.Currency,
		ProcessorReference: strings.TrimSpace(r.ProcessorReference),
	}
}
