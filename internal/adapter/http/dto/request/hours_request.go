package request

import (
	"strings"

	"marketplace_escrow/internal/usecase"
)

type HoursRequest struct {
	Hours       float64 `json:"hours" binding:"gte=0"`
	Amount      int64   `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description"`
}

func (r HoursRequest) ToInput() usecase.HoursInput {
	return usecase.HoursInput{Hours: r.Hours, Amount: r.Amount, Description: strings.TrimSpace(r.Description)}
}

type RejectHoursRequest struct {
	Reason string `json:"reason"`
}
